package dex

import (
	"fmt"
	"math"

	"dxread/internal/dexio"
)

// DEX encoded_value type tags (low 5 bits of the leading byte).
const (
	evByte       = 0x00
	evShort      = 0x02
	evChar       = 0x03
	evInt        = 0x04
	evLong       = 0x06
	evFloat      = 0x10
	evDouble     = 0x11
	evString     = 0x17
	evType       = 0x18
	evField      = 0x19
	evMethod     = 0x1a
	evEnum       = 0x1b
	evArray      = 0x1c
	evAnnotation = 0x1d
	evNull       = 0x1e
	evBoolean    = 0x1f
)

// decodeValue reads one encoded_value from c, resolving any field/type/
// method/string index through the pool, per §4.4.
func (p *pool) decodeValue(c *dexio.Cursor) (Value, error) {
	b, err := c.UByte()
	if err != nil {
		return Value{}, err
	}
	tag := b & 0x1f

	switch tag {
	case evByte:
		v, err := c.ReadIntBits(b)
		return Value{Tag: ValByte, Int: v}, err
	case evShort:
		v, err := c.ReadIntBits(b)
		return Value{Tag: ValShort, Int: v}, err
	case evChar:
		v, err := c.ReadUintBits(b)
		return Value{Tag: ValChar, Int: int64(v)}, err
	case evInt:
		v, err := c.ReadIntBits(b)
		return Value{Tag: ValInt, Int: v}, err
	case evLong:
		// §9: source reuses read_uint_bits for VALUE_LONG despite the
		// name; DEX treats it as signed, so we sign-extend here.
		v, err := c.ReadIntBits(b)
		return Value{Tag: ValLong, Int: v}, err
	case evFloat:
		raw, err := c.ReadFloatBits(b)
		if err != nil {
			return Value{}, err
		}
		return Value{Tag: ValFloat, Float32: math.Float32frombits(uint32(raw >> 32))}, nil
	case evDouble:
		raw, err := c.ReadFloatBits(b)
		if err != nil {
			return Value{}, err
		}
		return Value{Tag: ValDouble, Float64: math.Float64frombits(raw)}, nil
	case evString:
		idx, err := c.ReadUintBits(b)
		if err != nil {
			return Value{}, err
		}
		s, err := p.getString(int32(idx))
		return Value{Tag: ValString, Str: s}, err
	case evType:
		idx, err := c.ReadUintBits(b)
		if err != nil {
			return Value{}, err
		}
		t, err := p.getType(int32(idx))
		return Value{Tag: ValType, Str: t}, err
	case evField:
		idx, err := c.ReadUintBits(b)
		if err != nil {
			return Value{}, err
		}
		f, err := p.getField(uint32(idx))
		return Value{Tag: ValField, Field: &f}, err
	case evMethod:
		idx, err := c.ReadUintBits(b)
		if err != nil {
			return Value{}, err
		}
		m, err := p.getMethod(uint32(idx))
		return Value{Tag: ValMethod, Method: &m}, err
	case evEnum:
		idx, err := c.ReadUintBits(b)
		if err != nil {
			return Value{}, err
		}
		f, err := p.getField(uint32(idx))
		return Value{Tag: ValEnum, Field: &f}, err
	case evArray:
		arr, err := p.decodeEncodedArray(c)
		return Value{Tag: ValArray, Array: arr}, err
	case evAnnotation:
		ann, err := p.decodeEncodedAnnotation(c)
		return Value{Tag: ValAnnotation, Annotation: &ann}, err
	case evNull:
		return Value{Tag: ValNull}, nil
	case evBoolean:
		return Value{Tag: ValBool, Bool: (b>>5)&0x3 != 0}, nil
	default:
		return Value{}, &dexio.Error{Kind: dexio.KindBadEval, Off: c.Pos(), Msg: fmt.Sprintf("unsupported encoded_value type 0x%x", tag)}
	}
}

// decodeEncodedArray reads an encoded_array: a ULEB128 size followed by
// that many encoded_values.
func (p *pool) decodeEncodedArray(c *dexio.Cursor) ([]Value, error) {
	size, err := c.ULEB128()
	if err != nil {
		return nil, err
	}
	out := make([]Value, 0, size)
	for i := uint32(0); i < size; i++ {
		v, err := p.decodeValue(c)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// decodeEncodedAnnotation reads an encoded_annotation: a type index, a
// ULEB128 element count, and that many (name index, encoded_value)
// pairs, in declaration order.
func (p *pool) decodeEncodedAnnotation(c *dexio.Cursor) (Annotation, error) {
	typeIdx, err := c.ULEB128()
	if err != nil {
		return Annotation{}, err
	}
	typ, err := p.getType(int32(typeIdx))
	if err != nil {
		return Annotation{}, err
	}
	size, err := c.ULEB128()
	if err != nil {
		return Annotation{}, err
	}
	elems := make([]AnnotationElement, 0, size)
	for i := uint32(0); i < size; i++ {
		nameIdx, err := c.ULEB128()
		if err != nil {
			return Annotation{}, err
		}
		name, err := p.getString(int32(nameIdx))
		if err != nil {
			return Annotation{}, err
		}
		val, err := p.decodeValue(c)
		if err != nil {
			return Annotation{}, err
		}
		elems = append(elems, AnnotationElement{Name: name, Value: val})
	}
	return Annotation{Type: typ, Elements: elems}, nil
}

// decodeStaticValues decodes the encoded_array at a static_values_off,
// or returns nil for offset 0 (no static initializers), per §4.5.
func (p *pool) decodeStaticValues(off uint32) ([]Value, error) {
	if off == 0 {
		return nil, nil
	}
	c := p.h.image.Cursor(int(off))
	return p.decodeEncodedArray(c)
}
