// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ssz

import (
	"bytes"
	"errors"
	"slices"
	"testing"
)

// Tests that bitvectors are packed LSB first into the minimal number of bytes.
func TestBitvectorEncoding(t *testing.T) {
	tests := []struct {
		bits []bool
		want []byte
	}{
		{[]bool{true}, []byte{0x01}},
		{[]bool{false, true, true, false}, []byte{0x06}},
		{[]bool{true, false, false, false, false, false, false, false}, []byte{0x01}},
		{[]bool{false, false, false, false, false, false, false, false, true}, []byte{0x00, 0x01}},
	}
	for i, tt := range tests {
		have := MarshalBitvector(nil, tt.bits)
		if !bytes.Equal(have, tt.want) {
			t.Errorf("test %d: encoding mismatch: have %x, want %x", i, have, tt.want)
		}
		bits, err := UnmarshalBitvector(have, uint64(len(tt.bits)))
		if err != nil {
			t.Errorf("test %d: failed to decode: %v", i, err)
			continue
		}
		if !slices.Equal(bits, tt.bits) {
			t.Errorf("test %d: decoding mismatch: have %v, want %v", i, bits, tt.bits)
		}
	}
}

// Tests that bitvectors reject inputs of the wrong size or with set padding.
func TestBitvectorDecodingFailures(t *testing.T) {
	tests := []struct {
		blob []byte
		size uint64
		err  error
	}{
		{[]byte{0x1f}, 4, ErrInvalidPadding},
		{[]byte{0x80}, 7, ErrInvalidPadding},
		{[]byte{0xff, 0x02}, 9, ErrInvalidPadding},
		{[]byte{0x0f, 0x00}, 4, ErrLengthMismatch},
		{[]byte{0xff}, 9, ErrLengthMismatch},
		{nil, 1, ErrLengthMismatch},
	}
	for i, tt := range tests {
		if _, err := UnmarshalBitvector(tt.blob, tt.size); !errors.Is(err, tt.err) {
			t.Errorf("test %d: error mismatch: have %v, want %v", i, err, tt.err)
		}
	}
	// Full bytes have no padding to check
	if _, err := UnmarshalBitvector([]byte{0xff, 0xff}, 16); err != nil {
		t.Errorf("failed to decode full bitvector: %v", err)
	}
}

// Tests that bitlists carry the delimiter right after the last data bit.
func TestBitlistEncoding(t *testing.T) {
	tests := []struct {
		bits []bool
		want []byte
	}{
		{nil, []byte{0x01}},
		{[]bool{true}, []byte{0x03}},
		{[]bool{true, true, false}, []byte{0x0b}},
		{[]bool{true, true, true, true, true, true, true, true}, []byte{0xff, 0x01}},
		{[]bool{false, false, false, false, false, false, false, false, false}, []byte{0x00, 0x02}},
	}
	for i, tt := range tests {
		have := MarshalBitlist(nil, tt.bits)
		if !bytes.Equal(have, tt.want) {
			t.Errorf("test %d: encoding mismatch: have %x, want %x", i, have, tt.want)
		}
	}
}

// Tests that every bitlist length up to the maximum survives a round trip.
func TestBitlistLengthRecovery(t *testing.T) {
	const maxBits = 20

	for n := 0; n <= maxBits; n++ {
		bits := make([]bool, n)
		for i := range bits {
			bits[i] = i%3 == 0
		}
		blob := MarshalBitlist(nil, bits)
		if want := n/8 + 1; len(blob) != want {
			t.Errorf("bitlist of %d bits: encoded size mismatch: have %d, want %d", n, len(blob), want)
		}
		size, err := ValidateBitlist(blob, maxBits)
		if err != nil {
			t.Errorf("bitlist of %d bits: failed to validate: %v", n, err)
			continue
		}
		if size != uint64(n) {
			t.Errorf("bitlist of %d bits: size mismatch: have %d", n, size)
		}
		dec, err := UnmarshalBitlist(blob, maxBits)
		if err != nil {
			t.Errorf("bitlist of %d bits: failed to decode: %v", n, err)
			continue
		}
		if !slices.Equal(dec, bits) {
			t.Errorf("bitlist of %d bits: decoding mismatch: have %v, want %v", n, dec, bits)
		}
	}
}

// Tests that malformed bitlists are rejected with the right error.
func TestBitlistDecodingFailures(t *testing.T) {
	tests := []struct {
		blob    []byte
		maxBits uint64
		err     error
	}{
		{nil, 8, ErrMissingDelimiter},
		{[]byte{0x00}, 8, ErrMissingDelimiter},
		{[]byte{0x00, 0x00}, 8, ErrMissingDelimiter},
		{[]byte{0x01, 0x00}, 8, ErrInvalidPadding},
		{[]byte{0xff, 0x00}, 16, ErrInvalidPadding},
		{[]byte{0x00, 0x02}, 8, ErrMaxItemsExceeded},
		{[]byte{0x80}, 6, ErrMaxItemsExceeded},
	}
	for i, tt := range tests {
		if _, err := UnmarshalBitlist(tt.blob, tt.maxBits); !errors.Is(err, tt.err) {
			t.Errorf("test %d: error mismatch: have %v, want %v", i, err, tt.err)
		}
	}
}

// Tests the conversion between logical bits and go-bitfield lists.
func TestBitlistConversions(t *testing.T) {
	bits := []bool{true, false, true, true, false, false, false, false, true, false}

	list := BitlistFromBools(bits)
	if list.Len() != uint64(len(bits)) {
		t.Fatalf("bitfield length mismatch: have %d, want %d", list.Len(), len(bits))
	}
	if have := BoolsFromBitlist(list); !slices.Equal(have, bits) {
		t.Errorf("bits mismatch: have %v, want %v", have, bits)
	}
	if have := BoolsFromBitlist(BitlistFromBools(nil)); len(have) != 0 {
		t.Errorf("empty bitlist expanded into %v", have)
	}
}

// Tests that the delimiter is stripped before merkleizing a bitlist and that no
// empty trailing byte is left over.
func TestBitlistChunks(t *testing.T) {
	tests := []struct {
		list []byte
		data []byte
		size uint64
	}{
		{[]byte{0x01}, []byte{}, 0},
		{[]byte{0x0b}, []byte{0x03}, 3},
		{[]byte{0xff, 0x01}, []byte{0xff}, 8},
		{[]byte{0x00, 0x02}, []byte{}, 9},
		{[]byte{0x05, 0x06}, []byte{0x05, 0x02}, 10},
	}
	for i, tt := range tests {
		data, size := bitlistChunks(nil, tt.list)
		if !bytes.Equal(data, tt.data) {
			t.Errorf("test %d: data mismatch: have %x, want %x", i, data, tt.data)
		}
		if size != tt.size {
			t.Errorf("test %d: size mismatch: have %d, want %d", i, size, tt.size)
		}
	}
}
