package dexio

// ULEB128 reads an unsigned LEB128 value: 7-bit chunks, little-endian,
// terminated by a chunk whose high bit is clear. DEX never legally
// encodes more than 5 bytes for a 32-bit value; a 6th continuation byte
// is treated as malformed rather than read forever.
func (c *Cursor) ULEB128() (uint32, error) {
	var result uint32
	var shift uint
	for i := 0; i < 5; i++ {
		b, err := c.UByte()
		if err != nil {
			return 0, err
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
	return 0, newErr(KindBadLEB, c.pos, "uleb128 exceeds 5 bytes")
}

// SLEB128 reads a signed LEB128 value, sign-extending from the bit
// position of the last chunk read.
func (c *Cursor) SLEB128() (int32, error) {
	var result int32
	var shift uint
	var b byte
	var err error
	for i := 0; i < 5; i++ {
		b, err = c.UByte()
		if err != nil {
			return 0, err
		}
		result |= int32(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			if shift < 32 && b&0x40 != 0 {
				result |= -1 << shift
			}
			return result, nil
		}
	}
	return 0, newErr(KindBadLEB, c.pos, "sleb128 exceeds 5 bytes")
}

// ULEB128p1 reads an unsigned LEB128 encoding a value shifted by one,
// used by DEX wherever a -1 sentinel ("no value") must round-trip
// through an unsigned varint; returns the decoded signed value.
func (c *Cursor) ULEB128p1() (int32, error) {
	v, err := c.ULEB128()
	if err != nil {
		return 0, err
	}
	return int32(v) - 1, nil
}

// ReadIntBits implements the DEX encoded_value integer packing: hint's
// bits 5..7 carry (length-1), and that many bytes are read little-endian
// and sign-extended to 64 bits from the top bit of the last byte read.
func (c *Cursor) ReadIntBits(hint byte) (int64, error) {
	length := int((hint>>5)&0x7) + 1
	raw, err := c.Bytes(length)
	if err != nil {
		return 0, err
	}
	var result int64
	for i, b := range raw {
		result |= int64(b) << (8 * uint(i))
	}
	shift := uint(64 - 8*length)
	return (result << shift) >> shift, nil
}

// ReadUintBits is ReadIntBits without sign extension.
func (c *Cursor) ReadUintBits(hint byte) (uint64, error) {
	length := int((hint>>5)&0x7) + 1
	raw, err := c.Bytes(length)
	if err != nil {
		return 0, err
	}
	var result uint64
	for i, b := range raw {
		result |= uint64(b) << (8 * uint(i))
	}
	return result, nil
}

// ReadFloatBits implements VALUE_FLOAT/VALUE_DOUBLE packing: the encoded
// length's bytes are read little-endian and left-aligned into a 64-bit
// word (the DEX writer zero-pads on the low end, so a 4-byte float lands
// in the high 32 bits and must be shifted right by 32 before reinterpreting
// as float32 bits).
func (c *Cursor) ReadFloatBits(hint byte) (uint64, error) {
	length := int((hint>>5)&0x7) + 1
	raw, err := c.Bytes(length)
	if err != nil {
		return 0, err
	}
	var result uint64
	for i, b := range raw {
		result |= uint64(b) << (8 * uint(i))
	}
	return result << uint(64-8*length), nil
}
