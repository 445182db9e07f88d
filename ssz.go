// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package ssz is a Simple Serialize (SSZ) encoder, decoder and Merkle hasher.
package ssz

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

// Object defines the methods a type needs to implement to be used as a ssz
// encodable, decodable and hashable object.
type Object interface {
	// DefineSSZ defines how an object would be encoded/decoded/hashed. Fields
	// are declared in order, fixed fields and offsets first, the contents of
	// the dynamic fields afterwards, in the same order as their offsets.
	DefineSSZ(codec *Codec)
}

// encoderPool is a pool of SSZ encoders to reuse some tiny internal helpers
// without hitting Go's GC constantly.
var encoderPool = sync.Pool{
	New: func() any {
		codec := &Codec{enc: new(Encoder)}
		codec.enc.codec = codec
		return codec
	},
}

// decoderPool is a pool of SSZ decoders to reuse some tiny internal helpers
// without hitting Go's GC constantly.
var decoderPool = sync.Pool{
	New: func() any {
		codec := &Codec{dec: new(Decoder)}
		codec.dec.codec = codec
		codec.dec.sizer = newSizer()
		return codec
	},
}

// hasherPool is a pool of SSZ hashers to reuse some tiny internal helpers
// without hitting Go's GC constantly.
var hasherPool = sync.Pool{
	New: func() any {
		codec := &Codec{has: new(Hasher)}
		codec.has.codec = codec
		return codec
	},
}

// sizerPool is a pool of SSZ sizers to reuse some tiny internal helpers
// without hitting Go's GC constantly.
var sizerPool = sync.Pool{
	New: func() any { return newSizer() },
}

// newSizer creates a sizer wired into its own codec.
func newSizer() *Sizer {
	codec := &Codec{siz: new(Sizer)}
	codec.siz.codec = codec
	return codec.siz
}

// encodeToBuffer serializes the object into a pooled buffer. The caller owns
// the returned buffer and must put it back into the pool.
func encodeToBuffer(obj Object) (*buffer, error) {
	codec := encoderPool.Get().(*Codec)
	defer encoderPool.Put(codec)

	out := getBuffer()
	if err := codec.enc.encode(out, obj); err != nil {
		putBuffer(out)
		return nil, err
	}
	return out, nil
}

// EncodeToStream serializes the object into a data stream. Do not use this
// method with a bytes.Buffer to write into a []byte slice, as that will do
// double the byte copying. For that use case, use EncodeToBytes instead.
func EncodeToStream(w io.Writer, obj Object) error {
	out, err := encodeToBuffer(obj)
	if err != nil {
		return err
	}
	defer putBuffer(out)

	_, err = w.Write(out.Bytes())
	return err
}

// EncodeToBytes serializes the object into a caller provided byte buffer and
// returns the number of bytes written. If the buffer is too small, an error is
// returned and the buffer is left untouched. Use Size to find out the required
// capacity upfront.
func EncodeToBytes(buf []byte, obj Object) (int, error) {
	out, err := encodeToBuffer(obj)
	if err != nil {
		return 0, err
	}
	defer putBuffer(out)

	if out.Len() > len(buf) {
		return 0, fmt.Errorf("%w: buffer %d bytes, object %d bytes", ErrBufferTooSmall, len(buf), out.Len())
	}
	return copy(buf, out.Bytes()), nil
}

// MarshalSSZ serializes the object into a freshly allocated byte slice owned by
// the caller.
func MarshalSSZ(obj Object) ([]byte, error) {
	out, err := encodeToBuffer(obj)
	if err != nil {
		return nil, err
	}
	defer putBuffer(out)

	return append([]byte(nil), out.Bytes()...), nil
}

// DecodeFromStream parses an object with the given size out of a stream. Do not
// use this method with a bytes.Buffer to read from a []byte slice, as that will
// double the byte copying. For that use case, use DecodeFromBytes instead.
func DecodeFromStream(r io.Reader, obj Object, size uint32) error {
	blob := make([]byte, size)
	if _, err := io.ReadFull(r, blob); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: %w", ErrTruncatedInput, err)
		}
		return err
	}
	return DecodeFromBytes(blob, obj)
}

// DecodeFromBytes parses an object from a byte buffer. The entire buffer must be
// consumed by the object. The decoded object does not retain the buffer.
func DecodeFromBytes(blob []byte, obj Object) error {
	codec := decoderPool.Get().(*Codec)
	defer decoderPool.Put(codec)

	return codec.dec.decode(blob, obj)
}

// HashSequential computes the ssz merkle root of the object on a single thread.
// This is useful for processing small objects with stable runtime and O(1) GC
// guarantees.
func HashSequential(obj Object) ([32]byte, error) {
	codec := hasherPool.Get().(*Codec)
	defer hasherPool.Put(codec)

	return codec.has.hash(obj)
}

// HashConcurrent computes the ssz merkle root of the object on potentially multiple
// concurrent threads (iff some data segments are large enough to be worth it). This
// is useful for processing large objects, but will place a bigger load on your CPU
// and GC; and might be more variable timing wise depending on other load.
func HashConcurrent(obj Object) ([32]byte, error) {
	codec := hasherPool.Get().(*Codec)
	defer hasherPool.Put(codec)

	codec.has.threads = true
	defer func() { codec.has.threads = false }()

	return codec.has.hash(obj)
}

// Size retrieves the serialized size of a ssz object, independent if it's a
// static or a dynamic one.
func Size(obj Object) uint32 {
	sizer := sizerPool.Get().(*Sizer)
	defer sizerPool.Put(sizer)

	size := sizer.sizeObject(obj, false)
	if size > MaxSerializedSize {
		return MaxSerializedSize
	}
	return uint32(size)
}
