package dex

import (
	"dxread/internal/dexio"
)

const (
	headerSize      = 0x70
	endianTagWant   = 0x12345678
	magicPrefix     = "dex\n"
	supportedMagic  = "dex\n035\x00"
	strideStringID  = 4
	strideTypeID    = 4
	strideProtoID   = 12
	strideFieldID   = 8
	strideMethodID  = 8
	strideClassDef  = 32
	offEndianTag    = 0x28
	offHeaderSize   = 0x24
	offStringIDs    = 0x38
	offTypeIDs      = 0x40
	offProtoIDs     = 0x48
	offFieldIDs     = 0x50
	offMethodIDs    = 0x58
	offClassDefs    = 0x60
)

// section is a (count, offset) pair identifying one of the six
// fixed-stride ID tables described in §3.
type section struct {
	count  int
	offset int
}

// header holds the parsed six section descriptors plus the raw image
// they were carved from. Nothing here is mutated after parseHeader
// returns.
type header struct {
	image      *dexio.Buffer
	stringIDs  section
	typeIDs    section
	protoIDs   section
	fieldIDs   section
	methodIDs  section
	classDefs  section
	versionRaw string
}

// parseHeader validates the DEX header and carves the six section
// descriptors out of image, per §4.2. Version/header-size/endian
// mismatches are non-fatal WARNs recorded in diags; a too-small image or
// a missing "dex\n" magic prefix is structural-fatal.
func parseHeader(image *dexio.Buffer, diags *dexio.Diags) (*header, error) {
	if image.Len() < headerSize {
		return nil, &DexError{Msg: "File too small"}
	}

	magic := image.Bytes()[:8]
	h := &header{image: image}
	if string(magic[:4]) != magicPrefix {
		return nil, &DexError{Msg: "not a .dex or zip"}
	}
	h.versionRaw = string(magic[4:7])
	if h.versionRaw != "035" {
		diags.Warn(-1, "", 0, dexio.DiagHeaderVersion, "unsupported dex version %q, attempting to parse anyway", h.versionRaw)
	}

	c := image.Cursor(offHeaderSize)
	if hsz, err := c.UInt(); err != nil {
		return nil, err
	} else if hsz != headerSize {
		diags.Warn(-1, "", offHeaderSize, dexio.DiagHeaderMismatch, "header_size = 0x%x, want 0x%x", hsz, headerSize)
	}

	c.Seek(offEndianTag)
	if tag, err := c.UInt(); err != nil {
		return nil, err
	} else if tag != endianTagWant {
		diags.Warn(-1, "", offEndianTag, dexio.DiagHeaderMismatch, "endian_tag = 0x%x, want 0x%x", tag, uint32(endianTagWant))
	}

	readSection := func(off int) (section, error) {
		c := image.Cursor(off)
		count, err := c.UInt()
		if err != nil {
			return section{}, err
		}
		offset, err := c.UInt()
		if err != nil {
			return section{}, err
		}
		return section{count: int(count), offset: int(offset)}, nil
	}

	var err error
	if h.stringIDs, err = readSection(offStringIDs); err != nil {
		return nil, err
	}
	if h.typeIDs, err = readSection(offTypeIDs); err != nil {
		return nil, err
	}
	if h.protoIDs, err = readSection(offProtoIDs); err != nil {
		return nil, err
	}
	if h.fieldIDs, err = readSection(offFieldIDs); err != nil {
		return nil, err
	}
	if h.methodIDs, err = readSection(offMethodIDs); err != nil {
		return nil, err
	}
	if h.classDefs, err = readSection(offClassDefs); err != nil {
		return nil, err
	}
	return h, nil
}
