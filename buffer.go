// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ssz

import (
	"fmt"
	"sync"
)

// bufferInitialCapacity is the capacity of a freshly allocated buffer.
const bufferInitialCapacity = 128

// bufferPool is a pool of growable buffers to reuse for the fixed and variable
// areas of containers being encoded.
var bufferPool = sync.Pool{
	New: func() any { return new(buffer) },
}

// buffer is a growable byte sequence used to accumulate serialized output. Its
// length only ever increases until reset, capacity doubles on overflow.
type buffer struct {
	data []byte
}

// getBuffer retrieves an empty buffer from the pool.
func getBuffer() *buffer {
	buf := bufferPool.Get().(*buffer)
	buf.data = buf.data[:0]
	return buf
}

// putBuffer returns a buffer into the pool.
func putBuffer(buf *buffer) {
	bufferPool.Put(buf)
}

// Len returns the number of bytes accumulated.
func (b *buffer) Len() int {
	return len(b.data)
}

// Bytes returns the accumulated bytes. The slice is only valid until the next
// mutation or until the buffer is returned to the pool.
func (b *buffer) Bytes() []byte {
	return b.data
}

// grow ensures room for n more bytes, doubling the capacity as many times as
// needed.
func (b *buffer) grow(n int) error {
	need := uint64(len(b.data)) + uint64(n)
	if need > MaxSerializedSize {
		return fmt.Errorf("%w: need %d bytes, max %d", ErrAllocationFailure, need, uint64(MaxSerializedSize))
	}
	if need <= uint64(cap(b.data)) {
		return nil
	}
	capacity := uint64(cap(b.data))
	if capacity == 0 {
		capacity = bufferInitialCapacity
	}
	for capacity < need {
		capacity <<= 1
	}
	data := make([]byte, len(b.data), capacity)
	copy(data, b.data)
	b.data = data
	return nil
}

// Write appends the blob to the buffer.
func (b *buffer) Write(blob []byte) error {
	if err := b.grow(len(blob)); err != nil {
		return err
	}
	b.data = append(b.data, blob...)
	return nil
}

// Reserve appends n zero bytes and returns the position they start at.
func (b *buffer) Reserve(n int) (int, error) {
	if err := b.grow(n); err != nil {
		return 0, err
	}
	pos := len(b.data)
	b.data = b.data[:pos+n]
	clear(b.data[pos:])
	return pos, nil
}
