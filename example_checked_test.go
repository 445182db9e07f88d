// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ssz_test

import (
	"errors"
	"fmt"

	"github.com/sszkit/ssz"
)

func ExampleDecodeFromBytes_malformed() {
	// Fixed part of a Payout with the memo offset pointing into itself
	blob := []byte{
		0x07, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x03, 0x00, 0x00, 0x00,
		0x10, 0x00, 0x00, 0x00,
	}
	err := ssz.DecodeFromBytes(blob, new(Payout))

	fmt.Println(errors.Is(err, ssz.ErrMalformedOffset))
	fmt.Println(err)

	// Static objects must span their input exactly
	err = ssz.DecodeFromBytes(make([]byte, 45), new(Withdrawal))

	fmt.Println(errors.Is(err, ssz.ErrLengthMismatch))
	fmt.Println(err)
	// Output:
	// true
	// ssz: malformed offset: ssz: first offset mismatch: have 3, want 16
	// true
	// ssz: length mismatch: 1 trailing bytes after *ssz_test.Withdrawal
}
