// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ssz

import (
	"bytes"
	"errors"
	"testing"
)

// Tests that unions prefix their payload with the selector and split back.
func TestUnionEncoding(t *testing.T) {
	blob, err := MarshalUnion(nil, 2, MarshalUint16(nil, 0xbeef))
	if err != nil {
		t.Fatalf("failed to encode union: %v", err)
	}
	if want := []byte{0x02, 0xef, 0xbe}; !bytes.Equal(blob, want) {
		t.Errorf("encoding mismatch: have %x, want %x", blob, want)
	}
	selector, payload, err := UnmarshalUnion(blob)
	if err != nil {
		t.Fatalf("failed to decode union: %v", err)
	}
	if selector != 2 || !bytes.Equal(payload, blob[1:]) {
		t.Errorf("decoding mismatch: have %d/%x, want %d/%x", selector, payload, 2, blob[1:])
	}
	// The None variant is a lone zero byte
	if blob, err = MarshalUnion(nil, 0, nil); err != nil || !bytes.Equal(blob, []byte{0x00}) {
		t.Errorf("none encoding mismatch: have %x/%v, want 00", blob, err)
	}
}

// Tests that invalid selectors and payloads are rejected in both directions.
func TestUnionFailures(t *testing.T) {
	if _, err := MarshalUnion(nil, 128, []byte{1}); !errors.Is(err, ErrInvalidSelector) {
		t.Errorf("high selector encoding error mismatch: have %v, want %v", err, ErrInvalidSelector)
	}
	if _, err := MarshalUnion(nil, 0, []byte{1}); !errors.Is(err, ErrInvalidSelector) {
		t.Errorf("none payload encoding error mismatch: have %v, want %v", err, ErrInvalidSelector)
	}
	if _, _, err := UnmarshalUnion(nil); !errors.Is(err, ErrTruncatedInput) {
		t.Errorf("empty decoding error mismatch: have %v, want %v", err, ErrTruncatedInput)
	}
	if _, _, err := UnmarshalUnion([]byte{0xff, 0x00}); !errors.Is(err, ErrInvalidSelector) {
		t.Errorf("high selector decoding error mismatch: have %v, want %v", err, ErrInvalidSelector)
	}
	if _, _, err := UnmarshalUnion([]byte{0x00, 0x00}); !errors.Is(err, ErrInvalidSelector) {
		t.Errorf("none payload decoding error mismatch: have %v, want %v", err, ErrInvalidSelector)
	}
}

// Tests that union roots mix the selector into the variant root.
func TestUnionHashing(t *testing.T) {
	root, err := HashUnion(0, [32]byte{})
	if err != nil {
		t.Fatalf("failed to hash none variant: %v", err)
	}
	if want := MixInSelector([32]byte{}, 0); root != want {
		t.Errorf("none root mismatch: have %x, want %x", root, want)
	}
	var variant [32]byte
	variant[0] = 0x2a

	if root, _ = HashUnion(1, variant); root != hashPair(variant, [32]byte{1}) {
		t.Errorf("variant root mismatch: have %x", root)
	}
	if _, err := HashUnion(0, variant); !errors.Is(err, ErrInvalidSelector) {
		t.Errorf("none variant error mismatch: have %v, want %v", err, ErrInvalidSelector)
	}
	if _, err := HashUnion(200, variant); !errors.Is(err, ErrInvalidSelector) {
		t.Errorf("high selector error mismatch: have %v, want %v", err, ErrInvalidSelector)
	}
}
