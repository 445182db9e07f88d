// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ssz

import (
	"fmt"
	"math/bits"

	"github.com/prysmaticlabs/go-bitfield"
)

// MarshalBitvector appends the packed, LSB-first encoding of a fixed length
// bit sequence. Unused high bits of the last byte are left zero.
func MarshalBitvector(dst []byte, bits []bool) []byte {
	start := len(dst)
	dst = append(dst, make([]byte, (len(bits)+7)>>3)...)
	for i, bit := range bits {
		if bit {
			dst[start+i>>3] |= 1 << (i & 0x7)
		}
	}
	return dst
}

// UnmarshalBitvector parses a bitvector of exactly size bits.
func UnmarshalBitvector(buf []byte, size uint64) ([]bool, error) {
	if err := validateBitvector(buf, size); err != nil {
		return nil, err
	}
	out := make([]bool, size)
	for i := uint64(0); i < size; i++ {
		out[i] = buf[i>>3]&(1<<(i&0x7)) != 0
	}
	return out, nil
}

// validateBitvector checks that a packed bitvector has the exact byte length
// for size bits and that nothing is set in its padding.
func validateBitvector(buf []byte, size uint64) error {
	if want := (size + 7) >> 3; uint64(len(buf)) != want {
		return fmt.Errorf("%w: bitvector of %d bits from %d bytes, want %d", ErrLengthMismatch, size, len(buf), want)
	}
	if rem := size & 0x7; rem != 0 {
		if junk := buf[len(buf)-1] >> rem; junk != 0 {
			return fmt.Errorf("%w: bit %d set, size %d bits", ErrInvalidPadding, size+uint64(bits.TrailingZeros8(junk)), size)
		}
	}
	return nil
}

// MarshalBitlist appends the packed encoding of a variable length bit sequence,
// terminated by the delimiter bit at position len(bits).
func MarshalBitlist(dst []byte, bits []bool) []byte {
	start := len(dst)
	dst = append(dst, make([]byte, (len(bits)>>3)+1)...)
	for i, bit := range bits {
		if bit {
			dst[start+i>>3] |= 1 << (i & 0x7)
		}
	}
	dst[start+len(bits)>>3] |= 1 << (len(bits) & 0x7)
	return dst
}

// UnmarshalBitlist parses a delimited bitlist holding at most maxBits bits.
func UnmarshalBitlist(buf []byte, maxBits uint64) ([]bool, error) {
	size, err := ValidateBitlist(buf, maxBits)
	if err != nil {
		return nil, err
	}
	out := make([]bool, size)
	for i := uint64(0); i < size; i++ {
		out[i] = buf[i>>3]&(1<<(i&0x7)) != 0
	}
	return out, nil
}

// ValidateBitlist checks the delimiter and bounds of an encoded bitlist and
// returns the number of data bits it carries.
func ValidateBitlist(buf []byte, maxBits uint64) (uint64, error) {
	if len(buf) == 0 {
		return 0, fmt.Errorf("%w: empty input", ErrMissingDelimiter)
	}
	high := buf[len(buf)-1]
	if high == 0 {
		for _, b := range buf {
			if b != 0 {
				return 0, fmt.Errorf("%w: zero byte after delimiter", ErrInvalidPadding)
			}
		}
		return 0, fmt.Errorf("%w: all %d bytes zero", ErrMissingDelimiter, len(buf))
	}
	size := uint64(len(buf)-1)<<3 + uint64(bits.Len8(high)) - 1
	if size > maxBits {
		return 0, fmt.Errorf("%w: decoded %d bits, max %d bits", ErrMaxItemsExceeded, size, maxBits)
	}
	return size, nil
}

// BitlistFromBools converts a logical bit sequence into a go-bitfield list.
func BitlistFromBools(bits []bool) bitfield.Bitlist {
	return bitfield.Bitlist(MarshalBitlist(nil, bits))
}

// BoolsFromBitlist expands a go-bitfield list into its logical bits.
func BoolsFromBitlist(list bitfield.Bitlist) []bool {
	out := make([]bool, list.Len())
	for i := range out {
		out[i] = list.BitAt(uint64(i))
	}
	return out
}

// bitlistChunks strips the delimiter off an encoded bitlist, returning the
// packed data bits for merkleization along with the logical length.
func bitlistChunks(dst []byte, list []byte) ([]byte, uint64) {
	if len(list) == 0 || list[len(list)-1] == 0 {
		return dst, 0
	}
	msb := uint8(bits.Len8(list[len(list)-1])) - 1
	size := uint64(len(list)-1)<<3 + uint64(msb)

	start := len(dst)
	dst = append(dst, list...)
	dst[len(dst)-1] &^= 1 << msb

	// A delimiter alone in the last byte leaves an empty trailing byte which
	// would otherwise turn into a spurious chunk.
	end := len(dst)
	for end > start && dst[end-1] == 0 {
		end--
	}
	return dst[:end], size
}
