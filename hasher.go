// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ssz

import (
	"fmt"
)

// Hasher is an SSZ Merkle Hash Root computer. Each field of a container is
// reduced to a single 32 byte chunk as it is defined, and the container's root
// is the Merkle root of those chunks once all fields are done.
type Hasher struct {
	codec   *Codec // Self-referencing to pass DefineSSZ calls through (API trick)
	err     error  // Any hashing error to halt future hashing calls
	threads bool   // Whether to hash large collections concurrently

	chunks []byte   // Field roots of the containers being hashed, stacked
	buf    [32]byte // Integer conversion buffer
}

// fail records an error unless one was already hit.
func (h *Hasher) fail(err error) {
	if h.err == nil {
		h.err = err
	}
}

// hashRoot appends the root of the next field.
func (h *Hasher) hashRoot(root [32]byte) {
	h.chunks = append(h.chunks, root[:]...)
}

// hashChunk appends a basic value of at most 32 bytes as the next field root,
// zero padded to a full chunk.
func (h *Hasher) hashChunk(blob []byte) {
	h.chunks = append(h.chunks, blob...)
	h.chunks = append(h.chunks, zeroChunk[:BytesPerChunk-len(blob)]...)
}

// merkleize computes the Merkle root of a chunk sequence, retaining the first
// error hit.
func (h *Hasher) merkleize(chunks []byte, limit uint64) [32]byte {
	if h.err != nil {
		return [32]byte{}
	}
	var (
		root [32]byte
		err  error
	)
	if h.threads {
		root, err = MerkleizeConcurrent(chunks, limit)
	} else {
		root, err = Merkleize(chunks, limit)
	}
	if err != nil {
		h.fail(err)
	}
	return root
}

// hashBytes packs a serialized blob into chunks and appends their Merkle root
// as the next field root.
func (h *Hasher) hashBytes(blob []byte, limit uint64) {
	chunks, _ := Pack(blob, 1)
	h.hashRoot(h.merkleize(chunks, limit))
}

// hashBytesWithLength is analogous to hashBytes, but mixes in the item count of
// the collection the blob is the serialization of.
func (h *Hasher) hashBytesWithLength(blob []byte, limit uint64, length uint64) {
	chunks, _ := Pack(blob, 1)
	h.hashRoot(MixInLength(h.merkleize(chunks, limit), length))
}

// hashBitlist appends the root of an encoded bitlist. Only the data bits are
// merkleized, the delimiter is dropped and the bit count is mixed in.
func (h *Hasher) hashBitlist(list []byte, maxBits uint64) {
	if len(list) > 0 {
		if _, err := ValidateBitlist(list, maxBits); err != nil {
			h.fail(err)
			h.hashRoot([32]byte{})
			return
		}
	}
	data, size := bitlistChunks(nil, list)
	h.hashBytesWithLength(data, (maxBits+255)/256, size)
}

// hashObject computes the root of a container by stacking its field roots on
// top of the enclosing container's and merkleizing them.
func (h *Hasher) hashObject(obj Object) [32]byte {
	pos := len(h.chunks)
	obj.DefineSSZ(h.codec)

	if (len(h.chunks)-pos)%BytesPerChunk != 0 {
		panic(fmt.Sprintf("ssz: %T produced misaligned field roots", obj))
	}
	root := h.merkleize(h.chunks[pos:], 0)
	h.chunks = h.chunks[:pos]
	return root
}

// hash computes the root of a top level object.
func (h *Hasher) hash(obj Object) ([32]byte, error) {
	root := h.hashObject(obj)

	err := h.err
	h.err, h.chunks = nil, h.chunks[:0]
	if err != nil {
		return [32]byte{}, err
	}
	return root, nil
}
