// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ssz

import (
	"encoding/binary"
	"fmt"
)

// SizeOf returns the encoded byte size of a single element of basic type T.
func SizeOf[T Basic]() int {
	var zero T
	switch any(zero).(type) {
	case bool, uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	case uint64:
		return 8
	case Uint128:
		return 16
	default:
		return 32
	}
}

// appendBasic appends the encoding of a single basic element.
func appendBasic[T Basic](dst []byte, v T) []byte {
	switch n := any(v).(type) {
	case bool:
		return MarshalBool(dst, n)
	case uint8:
		return append(dst, n)
	case uint16:
		return binary.LittleEndian.AppendUint16(dst, n)
	case uint32:
		return binary.LittleEndian.AppendUint32(dst, n)
	case uint64:
		return binary.LittleEndian.AppendUint64(dst, n)
	case Uint128:
		return append(dst, n[:]...)
	case Uint256:
		return append(dst, n[:]...)
	}
	panic("unreachable")
}

// parseBasic decodes a single basic element from a buffer of exactly its size.
func parseBasic[T Basic](buf []byte, v *T) error {
	switch n := any(v).(type) {
	case *bool:
		var err error
		*n, err = decodeBool(buf[0])
		return err
	case *uint8:
		*n = buf[0]
	case *uint16:
		*n = binary.LittleEndian.Uint16(buf)
	case *uint32:
		*n = binary.LittleEndian.Uint32(buf)
	case *uint64:
		*n = binary.LittleEndian.Uint64(buf)
	case *Uint128:
		copy(n[:], buf)
	case *Uint256:
		copy(n[:], buf)
	}
	return nil
}

// MarshalVector appends the encoding of a fixed length vector of basic items.
// The vector length is owned by the schema, the items are simply concatenated.
func MarshalVector[T Basic](dst []byte, items []T) []byte {
	for _, item := range items {
		dst = appendBasic(dst, item)
	}
	return dst
}

// UnmarshalVector parses a vector of exactly size items.
func UnmarshalVector[T Basic](buf []byte, size uint64) ([]T, error) {
	itemSize := uint64(SizeOf[T]())
	if uint64(len(buf)) != size*itemSize {
		return nil, fmt.Errorf("%w: vector of %d items from %d bytes, item size %d", ErrLengthMismatch, size, len(buf), itemSize)
	}
	return parseBasics[T](buf, size, int(itemSize))
}

// MarshalList appends the encoding of a variable length list of basic items.
// The encoding is the same as a vector's, the length is implied by the size.
func MarshalList[T Basic](dst []byte, items []T) []byte {
	return MarshalVector(dst, items)
}

// UnmarshalList parses a list of at most maxItems items, deriving the item count
// from the length of the input.
func UnmarshalList[T Basic](buf []byte, maxItems uint64) ([]T, error) {
	itemSize := SizeOf[T]()
	if len(buf)%itemSize != 0 {
		return nil, fmt.Errorf("%w: list of %d bytes, item size %d", ErrLengthMismatch, len(buf), itemSize)
	}
	items := uint64(len(buf) / itemSize)
	if items > maxItems {
		return nil, fmt.Errorf("%w: decoded %d, max %d", ErrMaxItemsExceeded, items, maxItems)
	}
	return parseBasics[T](buf, items, itemSize)
}

// parseBasics splits a pre-validated buffer into count items.
func parseBasics[T Basic](buf []byte, count uint64, itemSize int) ([]T, error) {
	out := make([]T, count)
	for i := range out {
		if err := parseBasic(buf[i*itemSize:(i+1)*itemSize], &out[i]); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	return out, nil
}

// chunkLimit returns the number of chunks a list of maxItems basic items packs
// into when merkleized.
func chunkLimit[T Basic](maxItems uint64) uint64 {
	return (maxItems*uint64(SizeOf[T]()) + BytesPerChunk - 1) / BytesPerChunk
}
