// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ssz

import "fmt"

// MaxUnionSelector is the largest selector a union may use.
const MaxUnionSelector = 127

// validateSelector checks a union selector against its payload. Selector 0 is
// the None variant and carries nothing.
func validateSelector(selector uint8, empty bool) error {
	if selector > MaxUnionSelector {
		return fmt.Errorf("%w: selector %d, max %d", ErrInvalidSelector, selector, MaxUnionSelector)
	}
	if selector == 0 && !empty {
		return fmt.Errorf("%w: payload for None variant", ErrInvalidSelector)
	}
	return nil
}

// MarshalUnion appends the encoding of a union value: the selector byte
// followed by the serialized variant.
func MarshalUnion(dst []byte, selector uint8, payload []byte) ([]byte, error) {
	if err := validateSelector(selector, len(payload) == 0); err != nil {
		return dst, err
	}
	dst = append(dst, selector)
	return append(dst, payload...), nil
}

// UnmarshalUnion splits an encoded union into its selector and the serialized
// variant. The payload aliases the input buffer.
func UnmarshalUnion(buf []byte) (uint8, []byte, error) {
	if len(buf) == 0 {
		return 0, nil, fmt.Errorf("%w: missing union selector", ErrTruncatedInput)
	}
	if err := validateSelector(buf[0], len(buf) == 1); err != nil {
		return 0, nil, err
	}
	return buf[0], buf[1:], nil
}

// HashUnion computes the root of a union value out of the root of its selected
// variant. The None variant hashes as the zero chunk.
func HashUnion(selector uint8, root [32]byte) ([32]byte, error) {
	if err := validateSelector(selector, root == [32]byte{}); err != nil {
		return [32]byte{}, err
	}
	return MixInSelector(root, selector), nil
}
