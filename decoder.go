// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ssz

import (
	"encoding/binary"
	"fmt"
)

// Decoder is an SSZ deserializer operating on an in-memory blob. It has the
// following behaviors:
//
//  1. Every container is decoded out of the exact slice of bytes it occupies,
//     fixed fields and offsets read from its front with a cursor, variable
//     payloads sliced out between consecutive offsets.
//
//  2. Offsets are validated the moment they are read, before any of them is
//     trusted: the first must equal the size of the container's fixed part,
//     subsequent ones must not decrease and none may point past the end of the
//     container.
//
//  3. The decoder does not return errors from individual field definitions.
//     The first failure is retained and halts all future operations, user
//     code checks for it once at the end.
//
//  4. Decoded collections never alias the input blob.
type Decoder struct {
	codec *Codec // Self-referencing to pass DefineSSZ calls through (API trick)
	sizer *Sizer // Sizer to compute the fixed part sizes of containers
	err   error  // Any decoding error to halt future decoding calls

	buf     []byte   // Bytes of the container being decoded
	pos     int      // Read cursor within the fixed part
	fixed   uint64   // Size of the container's fixed part
	offsets []uint32 // Offsets read so far from the fixed part
	next    int      // Index of the next variable payload to consume
}

// fail records an error unless one was already hit.
func (dec *Decoder) fail(err error) {
	if dec.err == nil {
		dec.err = err
	}
}

// decodeFixed consumes the next n bytes of the fixed part. A nil slice is
// returned if decoding already failed or the container is too short.
func (dec *Decoder) decodeFixed(n int) []byte {
	if dec.err != nil {
		return nil
	}
	if dec.pos+n > len(dec.buf) {
		dec.fail(fmt.Errorf("%w: need %d bytes at position %d, have %d", ErrTruncatedInput, n, dec.pos, len(dec.buf)))
		return nil
	}
	blob := dec.buf[dec.pos : dec.pos+n : dec.pos+n]
	dec.pos += n
	return blob
}

// decodeOffset consumes and validates the next offset of the fixed part.
func (dec *Decoder) decodeOffset() {
	blob := dec.decodeFixed(BytesPerLengthOffset)
	if blob == nil {
		return
	}
	offset := binary.LittleEndian.Uint32(blob)

	if len(dec.offsets) == 0 {
		if uint64(offset) != dec.fixed {
			dec.fail(fmt.Errorf("%w: %w: have %d, want %d", ErrMalformedOffset, ErrFirstOffsetMismatch, offset, dec.fixed))
			return
		}
	} else if prev := dec.offsets[len(dec.offsets)-1]; offset < prev {
		dec.fail(fmt.Errorf("%w: %w: %d after %d", ErrMalformedOffset, ErrBadOffsetProgression, offset, prev))
		return
	}
	if uint64(offset) > uint64(len(dec.buf)) {
		if uint64(len(dec.buf)) < dec.fixed {
			dec.fail(fmt.Errorf("%w: have %d bytes, fixed part %d", ErrTruncatedInput, len(dec.buf), dec.fixed))
			return
		}
		dec.fail(fmt.Errorf("%w: %w: %d beyond %d bytes", ErrMalformedOffset, ErrOffsetBeyondCapacity, offset, len(dec.buf)))
		return
	}
	dec.offsets = append(dec.offsets, offset)
}

// decodeContent returns the payload of the next variable field, running from
// its offset to the next one (or the end of the container for the last).
func (dec *Decoder) decodeContent() ([]byte, bool) {
	if dec.err != nil {
		return nil, false
	}
	if dec.next >= len(dec.offsets) {
		panic(fmt.Sprintf("ssz: dynamic field %d defined without offset", dec.next))
	}
	start, end := dec.offsets[dec.next], uint32(len(dec.buf))
	if dec.next+1 < len(dec.offsets) {
		end = dec.offsets[dec.next+1]
	}
	dec.next++
	return dec.buf[start:end:end], true
}

// decodeStaticObject decodes a static container out of the fixed part.
func (dec *Decoder) decodeStaticObject(obj Object) {
	if dec.err != nil {
		return
	}
	if blob := dec.decodeFixed(int(dec.sizer.sizeObject(obj, true))); blob != nil {
		dec.decodeObject(blob, obj)
	}
}

// decodeObject decodes a container from the exact blob it occupies. The
// cursor and offsets of the enclosing container are stashed away while the
// child is being decoded.
func (dec *Decoder) decodeObject(blob []byte, obj Object) {
	if dec.err != nil {
		return
	}
	buf, pos, fixed, offsets, next := dec.buf, dec.pos, dec.fixed, dec.offsets, dec.next
	defer func() {
		dec.buf, dec.pos, dec.fixed, dec.offsets, dec.next = buf, pos, fixed, offsets, next
	}()
	dec.buf, dec.pos, dec.fixed, dec.offsets, dec.next = blob, 0, dec.sizer.sizeObject(obj, true), nil, 0

	obj.DefineSSZ(dec.codec)
	if dec.err != nil {
		return
	}
	// Without variable fields, the fixed part must span the entire blob
	if len(dec.offsets) == 0 && dec.pos != len(dec.buf) {
		dec.fail(fmt.Errorf("%w: %d trailing bytes after %T", ErrLengthMismatch, len(dec.buf)-dec.pos, obj))
	}
}

// decode parses a top level object out of the blob.
func (dec *Decoder) decode(blob []byte, obj Object) error {
	dec.decodeObject(blob, obj)

	err := dec.err
	dec.err = nil
	return err
}
