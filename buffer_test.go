// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ssz

import (
	"bytes"
	"errors"
	"testing"
)

// Tests that buffers start small and double their capacity as they fill up.
func TestBufferGrowth(t *testing.T) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := buf.Write([]byte{1, 2, 3}); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	if c := cap(buf.Bytes()); c < bufferInitialCapacity {
		t.Errorf("initial capacity too small: have %d, want at least %d", c, bufferInitialCapacity)
	}
	before := cap(buf.Bytes())
	if err := buf.Write(make([]byte, before)); err != nil {
		t.Fatalf("failed to write past capacity: %v", err)
	}
	if c := cap(buf.Bytes()); c != 2*before {
		t.Errorf("grown capacity mismatch: have %d, want %d", c, 2*before)
	}
	if buf.Len() != before+3 || !bytes.Equal(buf.Bytes()[:3], []byte{1, 2, 3}) {
		t.Errorf("content lost while growing: %x", buf.Bytes()[:3])
	}
}

// Tests that reserved space is zeroed even when reusing pooled memory.
func TestBufferReserve(t *testing.T) {
	buf := getBuffer()
	defer putBuffer(buf)

	buf.Write(bytes.Repeat([]byte{0xff}, 16))
	buf.data = buf.data[:4]

	pos, err := buf.Reserve(8)
	if err != nil {
		t.Fatalf("failed to reserve: %v", err)
	}
	if pos != 4 {
		t.Errorf("reserved position mismatch: have %d, want %d", pos, 4)
	}
	if want := append(bytes.Repeat([]byte{0xff}, 4), make([]byte, 8)...); !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("reserved content mismatch: have %x, want %x", buf.Bytes(), want)
	}
}

// Tests that buffers refuse to grow beyond the maximum serialized size.
func TestBufferLimit(t *testing.T) {
	buf := new(buffer)
	if err := buf.grow(MaxSerializedSize + 1); !errors.Is(err, ErrAllocationFailure) {
		t.Errorf("allocation error mismatch: have %v, want %v", err, ErrAllocationFailure)
	}
	if buf.Len() != 0 {
		t.Errorf("failed growth modified the buffer: %d bytes", buf.Len())
	}
}
