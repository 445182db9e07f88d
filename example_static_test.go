// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ssz_test

import (
	"bytes"
	"fmt"

	"github.com/sszkit/ssz"
)

type Address [20]byte

type Withdrawal struct {
	Index     uint64
	Validator uint64
	Address   Address
	Amount    uint64
}

func (w *Withdrawal) DefineSSZ(codec *ssz.Codec) {
	ssz.DefineUint64(codec, &w.Index)          // Field (0) - Index          -  8 bytes
	ssz.DefineUint64(codec, &w.Validator)      // Field (1) - ValidatorIndex -  8 bytes
	ssz.DefineStaticBytes(codec, w.Address[:]) // Field (2) - Address        - 20 bytes
	ssz.DefineUint64(codec, &w.Amount)         // Field (3) - Amount         -  8 bytes
}

func ExampleEncodeToStream() {
	withdrawal := &Withdrawal{
		Index:     123,
		Validator: 456,
		Address:   Address{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20},
		Amount:    789,
	}
	out := new(bytes.Buffer)
	if err := ssz.EncodeToStream(out, withdrawal); err != nil {
		panic(err)
	}
	hash, err := ssz.HashSequential(withdrawal)
	if err != nil {
		panic(err)
	}
	fmt.Printf("ssz: %#x\nhash: %#x\n", out, hash)
	// Output:
	// ssz: 0x7b00000000000000c8010000000000000102030405060708090a0b0c0d0e0f10111213141503000000000000
	// hash: 0xfec4ae6a00072ad89de4d71145c729931b112b7ddcaa0384f16db04a566ad8d0
}

func ExampleEncodeToBytes() {
	blob := make([]byte, ssz.Size(new(Withdrawal)))
	if _, err := ssz.EncodeToBytes(blob, new(Withdrawal)); err != nil {
		panic(err)
	}
	hash, _ := ssz.HashSequential(new(Withdrawal))

	fmt.Printf("ssz: %#x\nhash: %#x\n", blob, hash)
	// Output:
	// ssz: 0x0000000000000000000000000000000000000000000000000000000000000000000000000000000000000000
	// hash: 0xdb56114e00fdd4c1f85c892bf35ac9a89289aaecb1ebd0a96cde606a748b5d71
}
