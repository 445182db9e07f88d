// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ssz

import (
	"encoding/binary"
	"fmt"

	"github.com/prysmaticlabs/go-bitfield"
)

// Codec is a unified SSZ encoder, decoder, hasher and sizer that allows simple
// structs to define their schemas once and have that work for all operations
// at once. Exactly one of the operating modes is set at any time.
type Codec struct {
	enc *Encoder
	dec *Decoder
	has *Hasher
	siz *Sizer
}

// DefineBool defines the next field as a 1 byte boolean.
func DefineBool[T ~bool](c *Codec, v *T) {
	switch {
	case c.enc != nil:
		c.enc.encodeFixed(MarshalBool(c.enc.buf[:0], bool(*v)))
	case c.dec != nil:
		if blob := c.dec.decodeFixed(1); blob != nil {
			b, err := decodeBool(blob[0])
			if err != nil {
				c.dec.fail(err)
				return
			}
			*v = T(b)
		}
	case c.has != nil:
		c.has.hashChunk(MarshalBool(c.has.buf[:0], bool(*v)))
	default:
		c.siz.addFixed(1)
	}
}

// DefineUint8 defines the next field as a uint8.
func DefineUint8[T ~uint8](c *Codec, n *T) {
	switch {
	case c.enc != nil:
		c.enc.encodeFixed(MarshalUint8(c.enc.buf[:0], uint8(*n)))
	case c.dec != nil:
		if blob := c.dec.decodeFixed(1); blob != nil {
			*n = T(blob[0])
		}
	case c.has != nil:
		c.has.hashChunk(MarshalUint8(c.has.buf[:0], uint8(*n)))
	default:
		c.siz.addFixed(1)
	}
}

// DefineUint16 defines the next field as a uint16.
func DefineUint16[T ~uint16](c *Codec, n *T) {
	switch {
	case c.enc != nil:
		c.enc.encodeFixed(MarshalUint16(c.enc.buf[:0], uint16(*n)))
	case c.dec != nil:
		if blob := c.dec.decodeFixed(2); blob != nil {
			*n = T(binary.LittleEndian.Uint16(blob))
		}
	case c.has != nil:
		c.has.hashChunk(MarshalUint16(c.has.buf[:0], uint16(*n)))
	default:
		c.siz.addFixed(2)
	}
}

// DefineUint32 defines the next field as a uint32.
func DefineUint32[T ~uint32](c *Codec, n *T) {
	switch {
	case c.enc != nil:
		c.enc.encodeFixed(MarshalUint32(c.enc.buf[:0], uint32(*n)))
	case c.dec != nil:
		if blob := c.dec.decodeFixed(4); blob != nil {
			*n = T(binary.LittleEndian.Uint32(blob))
		}
	case c.has != nil:
		c.has.hashChunk(MarshalUint32(c.has.buf[:0], uint32(*n)))
	default:
		c.siz.addFixed(4)
	}
}

// DefineUint64 defines the next field as a uint64.
func DefineUint64[T ~uint64](c *Codec, n *T) {
	switch {
	case c.enc != nil:
		c.enc.encodeFixed(MarshalUint64(c.enc.buf[:0], uint64(*n)))
	case c.dec != nil:
		if blob := c.dec.decodeFixed(8); blob != nil {
			*n = T(binary.LittleEndian.Uint64(blob))
		}
	case c.has != nil:
		c.has.hashChunk(MarshalUint64(c.has.buf[:0], uint64(*n)))
	default:
		c.siz.addFixed(8)
	}
}

// DefineUint128 defines the next field as a little-endian uint128.
func DefineUint128(c *Codec, n *Uint128) {
	switch {
	case c.enc != nil:
		c.enc.encodeFixed(n[:])
	case c.dec != nil:
		if blob := c.dec.decodeFixed(16); blob != nil {
			copy(n[:], blob)
		}
	case c.has != nil:
		c.has.hashChunk(n[:])
	default:
		c.siz.addFixed(16)
	}
}

// DefineUint256 defines the next field as a little-endian uint256.
func DefineUint256(c *Codec, n *Uint256) {
	switch {
	case c.enc != nil:
		c.enc.encodeFixed(n[:])
	case c.dec != nil:
		if blob := c.dec.decodeFixed(32); blob != nil {
			copy(n[:], blob)
		}
	case c.has != nil:
		c.has.hashChunk(n[:])
	default:
		c.siz.addFixed(32)
	}
}

// DefineStaticBytes defines the next field as static binary blob. The blob is
// expected to be a slice of the field's backing array (e.g. `obj.Root[:]`) so
// decoding can fill it in place.
func DefineStaticBytes(c *Codec, blob []byte) {
	switch {
	case c.enc != nil:
		c.enc.encodeFixed(blob)
	case c.dec != nil:
		if data := c.dec.decodeFixed(len(blob)); data != nil {
			copy(blob, data)
		}
	case c.has != nil:
		c.has.hashBytes(blob, 0)
	default:
		c.siz.addFixed(uint64(len(blob)))
	}
}

// DefineBitvector defines the next field as a packed bitvector of size bits.
// The bits slice must span the field's backing array of (size+7)/8 bytes.
func DefineBitvector(c *Codec, bits []byte, size uint64) {
	if uint64(len(bits)) != (size+7)>>3 {
		panic(fmt.Sprintf("ssz: bitvector of %d bits backed by %d bytes", size, len(bits)))
	}
	switch {
	case c.enc != nil:
		if err := validateBitvector(bits, size); err != nil {
			c.enc.fail(err)
			return
		}
		c.enc.encodeFixed(bits)
	case c.dec != nil:
		if data := c.dec.decodeFixed(len(bits)); data != nil {
			if err := validateBitvector(data, size); err != nil {
				c.dec.fail(err)
				return
			}
			copy(bits, data)
		}
	case c.has != nil:
		if err := validateBitvector(bits, size); err != nil {
			c.has.fail(err)
			return
		}
		c.has.hashBytes(bits, (size+255)/256)
	default:
		c.siz.addFixed(uint64(len(bits)))
	}
}

// DefineBitlistOffset defines the next field as a dynamic slice of (packed)
// bits. A nil bitlist is treated as the empty one.
func DefineBitlistOffset(c *Codec, bits *bitfield.Bitlist, maxBits uint64) {
	switch {
	case c.enc != nil:
		c.enc.encodeOffset()
	case c.dec != nil:
		c.dec.decodeOffset()
	case c.has != nil:
		c.has.hashBitlist(*bits, maxBits)
	default:
		c.siz.addOffset()
	}
}

// DefineBitlistContent defines the next field as a dynamic slice of (packed)
// bits.
func DefineBitlistContent(c *Codec, bits *bitfield.Bitlist, maxBits uint64) {
	switch {
	case c.enc != nil:
		if len(*bits) == 0 {
			c.enc.encodeContent(emptyBitlist)
			return
		}
		if _, err := ValidateBitlist(*bits, maxBits); err != nil {
			c.enc.fail(err)
			return
		}
		c.enc.encodeContent(*bits)
	case c.dec != nil:
		blob, ok := c.dec.decodeContent()
		if !ok {
			return
		}
		if _, err := ValidateBitlist(blob, maxBits); err != nil {
			c.dec.fail(err)
			return
		}
		*bits = append((*bits)[:0], blob...)
	case c.siz != nil:
		if len(*bits) == 0 {
			c.siz.addContent(1)
			return
		}
		c.siz.addContent(uint64(len(*bits)))
	}
}

// emptyBitlist is the encoding of a bitlist without data bits.
var emptyBitlist = []byte{0x01}

// DefineVector defines the next field as a static vector of basic items. The
// items slice must span the field's backing array, its length is the vector
// length.
func DefineVector[T Basic](c *Codec, items []T) {
	switch {
	case c.enc != nil:
		c.enc.scratch = MarshalVector(c.enc.scratch[:0], items)
		c.enc.encodeFixed(c.enc.scratch)
	case c.dec != nil:
		if blob := c.dec.decodeFixed(len(items) * SizeOf[T]()); blob != nil {
			for i := range items {
				if err := parseBasic(blob[i*SizeOf[T]():(i+1)*SizeOf[T]()], &items[i]); err != nil {
					c.dec.fail(fmt.Errorf("item %d: %w", i, err))
					return
				}
			}
		}
	case c.has != nil:
		c.has.hashBytes(MarshalVector(nil, items), chunkLimit[T](uint64(len(items))))
	default:
		c.siz.addFixed(uint64(len(items) * SizeOf[T]()))
	}
}

// DefineListOffset defines the next field as a dynamic list of basic items.
func DefineListOffset[T Basic](c *Codec, items *[]T, maxItems uint64) {
	switch {
	case c.enc != nil:
		c.enc.encodeOffset()
	case c.dec != nil:
		c.dec.decodeOffset()
	case c.has != nil:
		if uint64(len(*items)) > maxItems {
			c.has.fail(fmt.Errorf("%w: list of %d items, max %d", ErrMaxItemsExceeded, len(*items), maxItems))
			return
		}
		c.has.hashBytesWithLength(MarshalList(nil, *items), chunkLimit[T](maxItems), uint64(len(*items)))
	default:
		c.siz.addOffset()
	}
}

// DefineListContent defines the next field as a dynamic list of basic items.
func DefineListContent[T Basic](c *Codec, items *[]T, maxItems uint64) {
	switch {
	case c.enc != nil:
		if uint64(len(*items)) > maxItems {
			c.enc.fail(fmt.Errorf("%w: list of %d items, max %d", ErrMaxItemsExceeded, len(*items), maxItems))
			return
		}
		c.enc.scratch = MarshalList(c.enc.scratch[:0], *items)
		c.enc.encodeContent(c.enc.scratch)
	case c.dec != nil:
		blob, ok := c.dec.decodeContent()
		if !ok {
			return
		}
		list, err := UnmarshalList[T](blob, maxItems)
		if err != nil {
			c.dec.fail(err)
			return
		}
		*items = list
	case c.siz != nil:
		c.siz.addContent(uint64(len(*items) * SizeOf[T]()))
	}
}

// DefineDynamicBytesOffset defines the next field as dynamic binary blob.
func DefineDynamicBytesOffset(c *Codec, blob *[]byte, maxSize uint64) {
	switch {
	case c.enc != nil:
		c.enc.encodeOffset()
	case c.dec != nil:
		c.dec.decodeOffset()
	case c.has != nil:
		if uint64(len(*blob)) > maxSize {
			c.has.fail(fmt.Errorf("%w: blob of %d bytes, max %d", ErrMaxItemsExceeded, len(*blob), maxSize))
			return
		}
		c.has.hashBytesWithLength(*blob, (maxSize+31)/32, uint64(len(*blob)))
	default:
		c.siz.addOffset()
	}
}

// DefineDynamicBytesContent defines the next field as dynamic binary blob.
func DefineDynamicBytesContent(c *Codec, blob *[]byte, maxSize uint64) {
	switch {
	case c.enc != nil:
		if uint64(len(*blob)) > maxSize {
			c.enc.fail(fmt.Errorf("%w: blob of %d bytes, max %d", ErrMaxItemsExceeded, len(*blob), maxSize))
			return
		}
		c.enc.encodeContent(*blob)
	case c.dec != nil:
		data, ok := c.dec.decodeContent()
		if !ok {
			return
		}
		if uint64(len(data)) > maxSize {
			c.dec.fail(fmt.Errorf("%w: decoded %d bytes, max %d", ErrMaxItemsExceeded, len(data), maxSize))
			return
		}
		*blob = append(make([]byte, 0, len(data)), data...)
	case c.siz != nil:
		c.siz.addContent(uint64(len(*blob)))
	}
}

// DefineStaticObject defines the next field as a static ssz object. A nil
// object is allocated when decoding and treated as the zero value otherwise.
func DefineStaticObject[T newableStaticObject[U], U any](c *Codec, obj *T) {
	ensureStatic[T, U]()
	if c.dec != nil {
		if *obj == nil {
			*obj = T(new(U))
		}
		c.dec.decodeStaticObject(*obj)
		return
	}
	o := *obj
	if o == nil {
		o = zeroValueStatic[T, U]()
	}
	switch {
	case c.enc != nil:
		c.enc.encodeObject(c.enc.fixed, o)
	case c.has != nil:
		c.has.hashRoot(c.has.hashObject(o))
	default:
		c.siz.addFixed(c.siz.sizeObject(o, true))
	}
}

// DefineDynamicObjectOffset defines the next field as a dynamic ssz object.
func DefineDynamicObjectOffset[T newableDynamicObject[U], U any](c *Codec, obj *T) {
	switch {
	case c.enc != nil:
		c.enc.encodeOffset()
	case c.dec != nil:
		c.dec.decodeOffset()
	case c.has != nil:
		o := *obj
		if o == nil {
			o = zeroValueDynamic[T, U]()
		}
		c.has.hashRoot(c.has.hashObject(o))
	default:
		c.siz.addOffset()
	}
}

// DefineDynamicObjectContent defines the next field as a dynamic ssz object.
func DefineDynamicObjectContent[T newableDynamicObject[U], U any](c *Codec, obj *T) {
	if c.dec != nil {
		blob, ok := c.dec.decodeContent()
		if !ok {
			return
		}
		if *obj == nil {
			*obj = T(new(U))
		}
		c.dec.decodeObject(blob, *obj)
		return
	}
	o := *obj
	if o == nil {
		o = zeroValueDynamic[T, U]()
	}
	switch {
	case c.enc != nil:
		c.enc.startContent()
		c.enc.encodeObject(c.enc.dynamic, o)
	case c.siz != nil:
		if !c.siz.fixed {
			c.siz.addContent(c.siz.sizeObject(o, false))
		}
	}
}

// DefineSliceOfStaticObjectsOffset defines the next field as a dynamic list of
// static ssz objects.
func DefineSliceOfStaticObjectsOffset[T newableStaticObject[U], U any](c *Codec, objs *[]T, maxItems uint64) {
	ensureStatic[T, U]()
	switch {
	case c.enc != nil:
		c.enc.encodeOffset()
	case c.dec != nil:
		c.dec.decodeOffset()
	case c.has != nil:
		if uint64(len(*objs)) > maxItems {
			c.has.fail(fmt.Errorf("%w: list of %d objects, max %d", ErrMaxItemsExceeded, len(*objs), maxItems))
			return
		}
		roots := make([]byte, 0, len(*objs)*BytesPerChunk)
		for _, obj := range *objs {
			var o Object = obj
			if obj == nil {
				o = zeroValueStatic[T, U]()
			}
			root := c.has.hashObject(o)
			roots = append(roots, root[:]...)
		}
		c.has.hashRoot(MixInLength(c.has.merkleize(roots, maxItems), uint64(len(*objs))))
	default:
		c.siz.addOffset()
	}
}

// DefineSliceOfStaticObjectsContent defines the next field as a dynamic list
// of static ssz objects.
func DefineSliceOfStaticObjectsContent[T newableStaticObject[U], U any](c *Codec, objs *[]T, maxItems uint64) {
	ensureStatic[T, U]()
	switch {
	case c.enc != nil:
		if uint64(len(*objs)) > maxItems {
			c.enc.fail(fmt.Errorf("%w: list of %d objects, max %d", ErrMaxItemsExceeded, len(*objs), maxItems))
			return
		}
		c.enc.startContent()
		for _, obj := range *objs {
			var o Object = obj
			if obj == nil {
				o = zeroValueStatic[T, U]()
			}
			c.enc.encodeObject(c.enc.dynamic, o)
		}
	case c.dec != nil:
		blob, ok := c.dec.decodeContent()
		if !ok {
			return
		}
		itemSize := c.dec.sizer.sizeObject(zeroValueStatic[T, U](), true)
		if itemSize == 0 || uint64(len(blob))%itemSize != 0 {
			c.dec.fail(fmt.Errorf("%w: list of %d bytes, item size %d", ErrLengthMismatch, len(blob), itemSize))
			return
		}
		count := uint64(len(blob)) / itemSize
		if count > maxItems {
			c.dec.fail(fmt.Errorf("%w: decoded %d, max %d", ErrMaxItemsExceeded, count, maxItems))
			return
		}
		list := make([]T, count)
		for i := range list {
			list[i] = T(new(U))
			c.dec.decodeObject(blob[uint64(i)*itemSize:uint64(i+1)*itemSize], list[i])
		}
		*objs = list
	case c.siz != nil:
		if !c.siz.fixed {
			c.siz.addContent(uint64(len(*objs)) * c.siz.sizeObject(zeroValueStatic[T, U](), true))
		}
	}
}
