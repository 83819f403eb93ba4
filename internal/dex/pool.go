package dex

import (
	lru "github.com/hashicorp/golang-lru"

	"dxread/internal/dexio"
)

// pool provides idempotent, pure lookups into the six ID tables and the
// raw pools they reference by offset (§4.3). Every lookup positions a
// fresh dexio.Cursor before reading, so concurrent lookups from nested
// calls (e.g. resolving a method's owner type while its parameter list
// is still being decoded) never disturb each other.
//
// Results are memoized per Reader in small LRU caches: string and type
// lookups repeat heavily (a type used by many fields/methods, a string
// used by many annotations), and since pipe is allowed to run to
// completion on a single goroutine there is no synchronization to add.
type pool struct {
	h           *header
	stringCache *lru.Cache
	typeCache   *lru.Cache
}

func newPool(h *header, cacheSize int) *pool {
	if cacheSize <= 0 {
		cacheSize = 1
	}
	// lru.New only fails on a non-positive size, which we've just ruled out.
	sc, _ := lru.New(cacheSize)
	tc, _ := lru.New(cacheSize)
	return &pool{h: h, stringCache: sc, typeCache: tc}
}

// getString resolves a string_ids index. Index -1 is the null string
// sentinel used throughout DEX to signal "absent".
func (p *pool) getString(idx int32) (string, error) {
	if idx == -1 {
		return "", nil
	}
	if v, ok := p.stringCache.Get(idx); ok {
		return v.(string), nil
	}
	if idx < 0 || int(idx) >= p.h.stringIDs.count {
		return "", &dexio.Error{Kind: dexio.KindBounds, Off: p.h.stringIDs.offset, Msg: "string index out of range"}
	}
	c := p.h.image.Cursor(p.h.stringIDs.offset + int(idx)*4)
	dataOff, err := c.UInt()
	if err != nil {
		return "", err
	}
	dc := p.h.image.Cursor(int(dataOff))
	n, err := dc.ULEB128()
	if err != nil {
		return "", err
	}
	s, err := dc.DecodeMUTF8(int(n))
	if err != nil {
		return "", err
	}
	p.stringCache.Add(idx, s)
	return s, nil
}

// getType resolves a type_ids index to its string descriptor
// ("Lfoo/Bar;", "I", "[J", ...).
func (p *pool) getType(idx int32) (string, error) {
	if idx == -1 {
		return "", nil
	}
	if v, ok := p.typeCache.Get(idx); ok {
		return v.(string), nil
	}
	if idx < 0 || int(idx) >= p.h.typeIDs.count {
		return "", &dexio.Error{Kind: dexio.KindBounds, Off: p.h.typeIDs.offset, Msg: "type index out of range"}
	}
	c := p.h.image.Cursor(p.h.typeIDs.offset + int(idx)*4)
	strIdx, err := c.UInt()
	if err != nil {
		return "", err
	}
	s, err := p.getString(int32(strIdx))
	if err != nil {
		return "", err
	}
	p.typeCache.Add(idx, s)
	return s, nil
}

// getField decodes the 8-byte field_id_item at index idx and resolves
// its owner/name/type.
func (p *pool) getField(idx uint32) (Field, error) {
	if int(idx) >= p.h.fieldIDs.count {
		return Field{}, &dexio.Error{Kind: dexio.KindBounds, Off: p.h.fieldIDs.offset, Msg: "field index out of range"}
	}
	c := p.h.image.Cursor(p.h.fieldIDs.offset + int(idx)*8)
	ownerIdx, err := c.UShort()
	if err != nil {
		return Field{}, err
	}
	typeIdx, err := c.UShort()
	if err != nil {
		return Field{}, err
	}
	nameIdx, err := c.UInt()
	if err != nil {
		return Field{}, err
	}
	owner, err := p.getType(int32(ownerIdx))
	if err != nil {
		return Field{}, err
	}
	typ, err := p.getType(int32(typeIdx))
	if err != nil {
		return Field{}, err
	}
	name, err := p.getString(int32(nameIdx))
	if err != nil {
		return Field{}, err
	}
	return Field{Owner: owner, Name: name, Type: typ}, nil
}

// getMethod decodes the 8-byte method_id_item at index idx, then
// dereferences the proto table for its parameter/return types.
func (p *pool) getMethod(idx uint32) (Method, error) {
	if int(idx) >= p.h.methodIDs.count {
		return Method{}, &dexio.Error{Kind: dexio.KindBounds, Off: p.h.methodIDs.offset, Msg: "method index out of range"}
	}
	c := p.h.image.Cursor(p.h.methodIDs.offset + int(idx)*8)
	ownerIdx, err := c.UShort()
	if err != nil {
		return Method{}, err
	}
	protoIdx, err := c.UShort()
	if err != nil {
		return Method{}, err
	}
	nameIdx, err := c.UInt()
	if err != nil {
		return Method{}, err
	}
	owner, err := p.getType(int32(ownerIdx))
	if err != nil {
		return Method{}, err
	}
	name, err := p.getString(int32(nameIdx))
	if err != nil {
		return Method{}, err
	}

	if int(protoIdx) >= p.h.protoIDs.count {
		return Method{}, &dexio.Error{Kind: dexio.KindBounds, Off: p.h.protoIDs.offset, Msg: "proto index out of range"}
	}
	pc := p.h.image.Cursor(p.h.protoIDs.offset + int(protoIdx)*12)
	pc.Skip(4) // shorty_idx: a redundant short-form descriptor, not needed
	retIdx, err := pc.UInt()
	if err != nil {
		return Method{}, err
	}
	paramsOff, err := pc.UInt()
	if err != nil {
		return Method{}, err
	}
	ret, err := p.getType(int32(retIdx))
	if err != nil {
		return Method{}, err
	}
	params, err := p.getTypeList(paramsOff)
	if err != nil {
		return Method{}, err
	}
	return Method{Owner: owner, Name: name, Params: params, Return: ret}, nil
}

// getTypeList decodes a type_list at a byte offset into the image.
// Offset 0 means "no list" and yields an empty slice, per §4.3.
func (p *pool) getTypeList(off uint32) ([]string, error) {
	if off == 0 {
		return nil, nil
	}
	c := p.h.image.Cursor(int(off))
	size, err := c.UInt()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, size)
	for i := uint32(0); i < size; i++ {
		idx, err := c.UShort()
		if err != nil {
			return nil, err
		}
		t, err := p.getType(int32(idx))
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
