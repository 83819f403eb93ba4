package dex

// Fmt names one of the fixed instruction encodings from §4.8.1. The
// numeric width of each form (10x, 22t, 35c, ...) follows the usual DEX
// naming convention: width in code units, then a letter per operand
// shape.
type Fmt int

const (
	FmtUnknown Fmt = iota
	Fmt10x         // op
	Fmt12x         // op vA, vB
	Fmt11n         // op vA, #+B  (4-bit literal)
	Fmt11x         // op vAA
	Fmt10t         // op +AA        (branch)
	Fmt20t         // op +AAAA      (branch)
	Fmt22x         // op vAA, vBBBB
	Fmt21t         // op vAA, +BBBB (branch)
	Fmt21s         // op vAA, #+BBBB
	Fmt21h         // op vAA, #+BBBB0000[...]
	Fmt21c         // op vAA, kind@BBBB
	Fmt23x         // op vAA, vBB, vCC
	Fmt22b         // op vAA, vBB, #+CC
	Fmt22t         // op vA, vB, +CCCC (branch)
	Fmt22s         // op vA, vB, #+CCCC
	Fmt22c         // op vA, vB, kind@CCCC
	Fmt32x         // op vAAAA, vBBBB
	Fmt30t         // op +AAAAAAAA (branch)
	Fmt31i         // op vAA, #+BBBBBBBB
	Fmt31t         // op vAA, +BBBBBBBB (payload offset)
	Fmt31c         // op vAA, kind@BBBBBBBB
	Fmt35c         // op {vC,vD,vE,vF,vG}, kind@BBBB
	Fmt3rc         // op {vCCCC .. vNNNN}, kind@BBBB
	Fmt51l         // op vAA, #+BBBBBBBBBBBBBBBB
)

// IndexType names what an operand's pool index refers to, per §4.8.1's
// index-type column.
type IndexType int

const (
	IdxNone IndexType = iota
	IdxString
	IdxType
	IdxField
	IdxMethod
)

// Op is one decoded opcode's static shape: its mnemonic, code-unit
// layout, and (if it references the constant pool) what kind of index
// it carries. Op values are looked up once per instruction from a
// 256-entry table built in init.
type Op struct {
	Code   byte
	Name   string
	Format Fmt
	Index  IndexType
}

var opTable [256]Op

func reg(code byte, name string, f Fmt) {
	opTable[code] = Op{Code: code, Name: name, Format: f}
}

func idx(code byte, name string, f Fmt, it IndexType) {
	opTable[code] = Op{Code: code, Name: name, Format: f, Index: it}
}

func init() {
	for i := range opTable {
		opTable[i] = Op{Code: byte(i), Name: "unused", Format: FmtUnknown}
	}

	reg(0x00, "nop", Fmt10x)
	reg(0x01, "move", Fmt12x)
	reg(0x02, "move/from16", Fmt22x)
	reg(0x03, "move/16", Fmt32x)
	reg(0x04, "move-wide", Fmt12x)
	reg(0x05, "move-wide/from16", Fmt22x)
	reg(0x06, "move-wide/16", Fmt32x)
	reg(0x07, "move-object", Fmt12x)
	reg(0x08, "move-object/from16", Fmt22x)
	reg(0x09, "move-object/16", Fmt32x)
	reg(0x0a, "move-result", Fmt11x)
	reg(0x0b, "move-result-wide", Fmt11x)
	reg(0x0c, "move-result-object", Fmt11x)
	reg(0x0d, "move-exception", Fmt11x)
	reg(0x0e, "return-void", Fmt10x)
	reg(0x0f, "return", Fmt11x)
	reg(0x10, "return-wide", Fmt11x)
	reg(0x11, "return-object", Fmt11x)
	reg(0x12, "const/4", Fmt11n)
	reg(0x13, "const/16", Fmt21s)
	reg(0x14, "const", Fmt31i)
	reg(0x15, "const/high16", Fmt21h)
	reg(0x16, "const-wide/16", Fmt21s)
	reg(0x17, "const-wide/32", Fmt31i)
	reg(0x18, "const-wide", Fmt51l)
	reg(0x19, "const-wide/high16", Fmt21h)
	idx(0x1a, "const-string", Fmt21c, IdxString)
	idx(0x1b, "const-string/jumbo", Fmt31c, IdxString)
	idx(0x1c, "const-class", Fmt21c, IdxType)
	reg(0x1d, "monitor-enter", Fmt11x)
	reg(0x1e, "monitor-exit", Fmt11x)
	idx(0x1f, "check-cast", Fmt21c, IdxType)
	idx(0x20, "instance-of", Fmt22c, IdxType)
	reg(0x21, "array-length", Fmt12x)
	idx(0x22, "new-instance", Fmt21c, IdxType)
	idx(0x23, "new-array", Fmt22c, IdxType)
	idx(0x24, "filled-new-array", Fmt35c, IdxType)
	idx(0x25, "filled-new-array/range", Fmt3rc, IdxType)
	reg(0x26, "fill-array-data", Fmt31t)
	reg(0x27, "throw", Fmt11x)
	reg(0x28, "goto", Fmt10t)
	reg(0x29, "goto/16", Fmt20t)
	reg(0x2a, "goto/32", Fmt30t)
	reg(0x2b, "packed-switch", Fmt31t)
	reg(0x2c, "sparse-switch", Fmt31t)

	cmpNames := []string{"cmpl-float", "cmpg-float", "cmpl-double", "cmpg-double", "cmp-long"}
	for i, n := range cmpNames {
		reg(byte(0x2d+i), n, Fmt23x)
	}
	ifTestNames := []string{"if-eq", "if-ne", "if-lt", "if-ge", "if-gt", "if-le"}
	for i, n := range ifTestNames {
		reg(byte(0x32+i), n, Fmt22t)
	}
	ifTestzNames := []string{"if-eqz", "if-nez", "if-ltz", "if-gez", "if-gtz", "if-lez"}
	for i, n := range ifTestzNames {
		reg(byte(0x38+i), n, Fmt21t)
	}

	arrayOpNames := []string{"aget", "aget-wide", "aget-object", "aget-boolean", "aget-byte", "aget-char", "aget-short",
		"aput", "aput-wide", "aput-object", "aput-boolean", "aput-byte", "aput-char", "aput-short"}
	for i, n := range arrayOpNames {
		reg(byte(0x44+i), n, Fmt23x)
	}
	instanceOpNames := []string{"iget", "iget-wide", "iget-object", "iget-boolean", "iget-byte", "iget-char", "iget-short",
		"iput", "iput-wide", "iput-object", "iput-boolean", "iput-byte", "iput-char", "iput-short"}
	for i, n := range instanceOpNames {
		idx(byte(0x52+i), n, Fmt22c, IdxField)
	}
	staticOpNames := []string{"sget", "sget-wide", "sget-object", "sget-boolean", "sget-byte", "sget-char", "sget-short",
		"sput", "sput-wide", "sput-object", "sput-boolean", "sput-byte", "sput-char", "sput-short"}
	for i, n := range staticOpNames {
		idx(byte(0x60+i), n, Fmt21c, IdxField)
	}

	invokeNames := []string{"invoke-virtual", "invoke-super", "invoke-direct", "invoke-static", "invoke-interface"}
	for i, n := range invokeNames {
		idx(byte(0x6e+i), n, Fmt35c, IdxMethod)
	}
	// 0x73 unused
	invokeRangeNames := []string{"invoke-virtual/range", "invoke-super/range", "invoke-direct/range", "invoke-static/range", "invoke-interface/range"}
	for i, n := range invokeRangeNames {
		idx(byte(0x74+i), n, Fmt3rc, IdxMethod)
	}

	unopNames := []string{"neg-int", "not-int", "neg-long", "not-long", "neg-float", "neg-double",
		"int-to-long", "int-to-float", "int-to-double", "long-to-int", "long-to-float", "long-to-double",
		"float-to-int", "float-to-long", "float-to-double", "double-to-int", "double-to-long", "double-to-float",
		"int-to-byte", "int-to-char", "int-to-short"}
	for i, n := range unopNames {
		reg(byte(0x7b+i), n, Fmt12x)
	}

	binopNames := []string{"add-int", "sub-int", "mul-int", "div-int", "rem-int", "and-int", "or-int", "xor-int", "shl-int", "shr-int", "ushr-int",
		"add-long", "sub-long", "mul-long", "div-long", "rem-long", "and-long", "or-long", "xor-long", "shl-long", "shr-long", "ushr-long",
		"add-float", "sub-float", "mul-float", "div-float", "rem-float",
		"add-double", "sub-double", "mul-double", "div-double", "rem-double"}
	for i, n := range binopNames {
		reg(byte(0x90+i), n, Fmt23x)
	}
	for i, n := range binopNames {
		reg(byte(0xb0+i), n+"/2addr", Fmt12x)
	}

	lit16Names := []string{"add-int/lit16", "rsub-int", "mul-int/lit16", "div-int/lit16", "rem-int/lit16", "and-int/lit16", "or-int/lit16", "xor-int/lit16"}
	for i, n := range lit16Names {
		reg(byte(0xd0+i), n, Fmt22s)
	}
	lit8Names := []string{"add-int/lit8", "rsub-int/lit8", "mul-int/lit8", "div-int/lit8", "rem-int/lit8", "and-int/lit8", "or-int/lit8", "xor-int/lit8", "shl-int/lit8", "shr-int/lit8", "ushr-int/lit8"}
	for i, n := range lit8Names {
		reg(byte(0xd8+i), n, Fmt22b)
	}
}

// width returns the width in 16-bit code units of an instruction
// with the given format, excluding any inline switch/array-data payload
// (those are separate pseudo-instructions discovered via the offset
// operand, per §4.8.2).
func (f Fmt) width() int {
	switch f {
	case Fmt10x, Fmt12x, Fmt11n:
		return 1
	case Fmt11x, Fmt10t:
		return 1
	case Fmt20t, Fmt22x, Fmt21t, Fmt21s, Fmt21h, Fmt21c, Fmt23x, Fmt22b, Fmt22t, Fmt22s, Fmt22c:
		return 2
	case Fmt32x, Fmt30t, Fmt31i, Fmt31t, Fmt31c:
		return 3
	case Fmt35c, Fmt3rc:
		return 3
	case Fmt51l:
		return 5
	default:
		return 1
	}
}

const (
	packedSwitchPayloadIdent  = 0x0100
	sparseSwitchPayloadIdent  = 0x0200
	fillArrayDataPayloadIdent = 0x0300
)
