// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ssz

import (
	"encoding/binary"
	"fmt"
)

// Encoder is an SSZ serializer assembling containers out of two buffers. It
// has the following behaviors:
//
//  1. Every container being encoded gets its own fixed and variable buffer
//     from a pool. Fixed fields and 4-byte offset slots go into the former,
//     the payloads of variable fields into the latter.
//
//  2. The offset slots are patched once the container's fields are all done,
//     each to the fixed part's size plus the amount of variable data already
//     emitted before the field's payload. The container's encoding is then
//     the fixed buffer followed by the variable one.
//
//  3. The encoder does not return errors from individual field definitions.
//     The first failure is retained and halts all future operations, user
//     code checks for it once at the end.
type Encoder struct {
	codec *Codec // Self-referencing to pass DefineSSZ calls through (API trick)
	err   error  // Any encoding error to halt future encoding calls

	fixed   *buffer // Fixed part of the container being encoded
	dynamic *buffer // Variable part of the container being encoded

	offsets  []int // Positions of the offset slots within the fixed part
	contents []int // Positions of the variable payloads within the dynamic part

	buf     [32]byte // Integer conversion buffer
	scratch []byte   // Scratch space for serializing collections
}

// fail records an error unless one was already hit.
func (enc *Encoder) fail(err error) {
	if enc.err == nil {
		enc.err = err
	}
}

// encodeFixed appends a blob to the fixed part of the current container.
func (enc *Encoder) encodeFixed(blob []byte) {
	if enc.err != nil {
		return
	}
	if err := enc.fixed.Write(blob); err != nil {
		enc.fail(err)
	}
}

// encodeOffset reserves an offset slot in the fixed part of the current
// container, to be filled in when the container is assembled.
func (enc *Encoder) encodeOffset() {
	if enc.err != nil {
		return
	}
	pos, err := enc.fixed.Reserve(BytesPerLengthOffset)
	if err != nil {
		enc.fail(err)
		return
	}
	enc.offsets = append(enc.offsets, pos)
}

// startContent marks the start of the next variable field's payload.
func (enc *Encoder) startContent() {
	if enc.err != nil {
		return
	}
	enc.contents = append(enc.contents, enc.dynamic.Len())
}

// encodeContent appends the payload of the next variable field.
func (enc *Encoder) encodeContent(blob []byte) {
	if enc.err != nil {
		return
	}
	enc.startContent()
	if err := enc.dynamic.Write(blob); err != nil {
		enc.fail(err)
	}
}

// encodeObject serializes a container into the dst buffer. The buffers and
// offset tracking of the enclosing container are stashed away while the child
// is being encoded.
func (enc *Encoder) encodeObject(dst *buffer, obj Object) {
	if enc.err != nil {
		return
	}
	fixed, dynamic, offsets, contents := enc.fixed, enc.dynamic, enc.offsets, enc.contents
	defer func() {
		putBuffer(enc.fixed)
		putBuffer(enc.dynamic)
		enc.fixed, enc.dynamic, enc.offsets, enc.contents = fixed, dynamic, offsets, contents
	}()
	enc.fixed, enc.dynamic, enc.offsets, enc.contents = getBuffer(), getBuffer(), nil, nil

	obj.DefineSSZ(enc.codec)
	if enc.err != nil {
		return
	}
	if len(enc.offsets) != len(enc.contents) {
		panic(fmt.Sprintf("ssz: %T defines %d offsets but %d dynamic fields", obj, len(enc.offsets), len(enc.contents)))
	}
	// Patch the offset slots now that the fixed part size is final
	base := uint64(enc.fixed.Len())
	for i, slot := range enc.offsets {
		offset := base + uint64(enc.contents[i])
		if offset > MaxSerializedSize {
			enc.fail(fmt.Errorf("%w: offset %d out of range", ErrAllocationFailure, offset))
			return
		}
		binary.LittleEndian.PutUint32(enc.fixed.data[slot:], uint32(offset))
	}
	if err := dst.Write(enc.fixed.Bytes()); err != nil {
		enc.fail(err)
		return
	}
	if err := dst.Write(enc.dynamic.Bytes()); err != nil {
		enc.fail(err)
	}
}

// encode serializes a top level object into the out buffer.
func (enc *Encoder) encode(out *buffer, obj Object) error {
	enc.encodeObject(out, obj)

	err := enc.err
	enc.err = nil
	return err
}
