// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ssz

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/minio/sha256-simd"
	"github.com/prysmaticlabs/gohashtree"
	"golang.org/x/sync/errgroup"
)

// Hash is a Merkle hash of an ssz object.
type Hash = [32]byte

// zeroChunk is a chunk full of zeroes, the leaf used for padding.
var zeroChunk [BytesPerChunk]byte

// zeroHashes contains the roots of all-zero subtrees of every depth: index 0 is
// the zero chunk, index i+1 is the hash of two index i roots. The table is
// filled in once on package load and is read-only afterwards.
var zeroHashes [65][32]byte

func init() {
	var pair [64]byte
	for i := 0; i < 64; i++ {
		copy(pair[:32], zeroHashes[i][:])
		copy(pair[32:], zeroHashes[i][:])
		zeroHashes[i+1] = sha256.Sum256(pair[:])
	}
}

// ZeroHash returns the root of an all-zero subtree of the given depth.
func ZeroHash(depth int) [32]byte {
	return zeroHashes[depth]
}

// hashPair hashes two sibling nodes into their parent.
func hashPair(left, right [32]byte) [32]byte {
	var pair [64]byte
	copy(pair[:32], left[:])
	copy(pair[32:], right[:])
	return sha256.Sum256(pair[:])
}

// Pack copies a sequence of serialized values into 32 byte aligned chunks,
// zero padding the last one. The stride is the width of a single value and
// must divide the input length; it lets callers pack arrays of non-byte
// primitives contiguously.
func Pack(values []byte, stride int) ([]byte, error) {
	if stride <= 0 || len(values)%stride != 0 {
		return nil, fmt.Errorf("%w: %d bytes, stride %d", ErrStrideMismatch, len(values), stride)
	}
	chunks := make([]byte, (len(values)+BytesPerChunk-1)/BytesPerChunk*BytesPerChunk)
	copy(chunks, values)
	return chunks, nil
}

// PackBits packs a logical bit sequence into chunks. An empty sequence packs
// into a single chunk holding just the 0x01 marker.
func PackBits(bits []bool) []byte {
	if len(bits) == 0 {
		chunks := make([]byte, BytesPerChunk)
		chunks[0] = 0x01
		return chunks
	}
	chunks, _ := Pack(MarshalBitvector(nil, bits), 1)
	return chunks
}

// MixInLength hashes a root together with the 32 byte little-endian encoding of
// a collection length.
func MixInLength(root [32]byte, length uint64) [32]byte {
	var mix [32]byte
	binary.LittleEndian.PutUint64(mix[:8], length)
	return hashPair(root, mix)
}

// MixInSelector hashes a root together with a union selector byte.
func MixInSelector(root [32]byte, selector uint8) [32]byte {
	var mix [32]byte
	mix[0] = selector
	return hashPair(root, mix)
}

// Merkleize computes the Merkle root of a sequence of chunks. If limit is zero
// the tree is sized to the next power of two of the chunk count, otherwise to
// the next power of two of the limit, which must not be exceeded.
//
// The chunks slice must be a multiple of 32 bytes and is not modified.
func Merkleize(chunks []byte, limit uint64) ([32]byte, error) {
	scratch := make([]byte, len(chunks), len(chunks)+BytesPerChunk)
	copy(scratch, chunks)
	return merkleizeInPlace(scratch, limit, false)
}

// MerkleizeConcurrent is analogous to Merkleize, but hashes independent
// subtrees on multiple goroutines when the input is large enough to be worth it.
func MerkleizeConcurrent(chunks []byte, limit uint64) ([32]byte, error) {
	scratch := make([]byte, len(chunks), len(chunks)+BytesPerChunk)
	copy(scratch, chunks)
	return merkleizeInPlace(scratch, limit, true)
}

// merkleizeInPlace computes the Merkle root of the chunks, reusing the input
// slice as scratch space for the intermediate layers.
func merkleizeInPlace(input []byte, limit uint64, threads bool) ([32]byte, error) {
	if len(input)%BytesPerChunk != 0 {
		return [32]byte{}, fmt.Errorf("%w: %d bytes, chunk size %d", ErrStrideMismatch, len(input), BytesPerChunk)
	}
	count := uint64(len(input) / BytesPerChunk)
	if limit == 0 {
		limit = count
	} else if count > limit {
		return [32]byte{}, fmt.Errorf("%w: %d chunks, limit %d", ErrLimitExceeded, count, limit)
	}
	depth := treeDepth(limit)
	if count == 0 {
		return zeroHashes[depth], nil
	}
	if threads && count >= concurrencyThreshold {
		return merkleizeConcurrent(input, depth)
	}
	return merkleizeLayers(input, depth)
}

// concurrencyThreshold is the number of chunks above which a tree is split up
// into subtrees hashed on separate goroutines.
const concurrencyThreshold = 1024

// treeDepth returns the depth of the smallest binary tree holding n leaves.
func treeDepth(n uint64) int {
	if n <= 1 {
		return 0
	}
	return bits.Len64(n - 1)
}

// merkleizeLayers hashes the chunks layer by layer up to the requested depth,
// padding odd layers with the zero hash of that depth.
func merkleizeLayers(input []byte, depth int) ([32]byte, error) {
	for i := 0; i < depth; i++ {
		if (len(input)/BytesPerChunk)&1 == 1 {
			input = append(input, zeroHashes[i][:]...)
		}
		if err := gohashtree.HashByteSlice(input, input); err != nil {
			return [32]byte{}, err
		}
		input = input[:len(input)/2]
	}
	var root [32]byte
	copy(root[:], input)
	return root, nil
}

// merkleizeConcurrent splits the leaves into power-of-two sized subtrees,
// hashes them in parallel and then combines the subtree roots.
func merkleizeConcurrent(input []byte, depth int) ([32]byte, error) {
	var (
		count    = len(input) / BytesPerChunk
		subDepth = treeDepth(uint64(count)) - 3 // up to 8 subtrees
		subSize  = (1 << subDepth) * BytesPerChunk
		subtrees = (len(input) + subSize - 1) / subSize
		roots    = make([]byte, subtrees*BytesPerChunk, (subtrees+1)*BytesPerChunk)
	)
	var group errgroup.Group
	for i := 0; i < subtrees; i++ {
		i := i
		group.Go(func() error {
			start, end := i*subSize, (i+1)*subSize
			if end > len(input) {
				end = len(input)
			}
			// The last subtree may be partial, hash it in its own scratch
			// space so padding does not spill into its neighbour.
			leaves := input[start:end]
			if i == subtrees-1 {
				leaves = append(make([]byte, 0, len(leaves)+BytesPerChunk), leaves...)
			}
			root, err := merkleizeLayers(leaves, subDepth)
			if err != nil {
				return err
			}
			copy(roots[i*BytesPerChunk:], root[:])
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return [32]byte{}, err
	}
	// Continue hashing from the subtree level upwards
	for i := subDepth; i < depth; i++ {
		if (len(roots)/BytesPerChunk)&1 == 1 {
			roots = append(roots, zeroHashes[i][:]...)
		}
		if err := gohashtree.HashByteSlice(roots, roots); err != nil {
			return [32]byte{}, err
		}
		roots = roots[:len(roots)/2]
	}
	var root [32]byte
	copy(root[:], roots)
	return root, nil
}
