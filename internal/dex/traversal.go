package dex

import "dxread/internal/dexio"

const (
	codeItemHeaderSize = 16 // registers_size,ins_size,outs_size,tries_size u2 x4 + debug_info_off,insns_size u4 x2
)

// codeUnit is one position in an instruction stream, measured in 16-bit
// code units from the start of insns (matches Label's unit).
type codeUnit = uint32

// walkCode parses one method's code_item and drives its DexCodeVisitor
// through a two-pass traversal, per §4.8: pass A discovers every
// reachable instruction start from a reachability worklist seeded at
// offset 0 and every try-handler address, pass B walks the discovered
// offsets in ascending order emitting labels and decoded instructions.
func (r *Reader) walkCode(ci int, mv DexMethodVisitor, method Method, isStatic bool, codeOff uint32) error {
	cv := mv.VisitCode()
	if cv == nil {
		return nil
	}

	c := r.h.image.Cursor(int(codeOff))
	registersSize, err := c.UShort()
	if err != nil {
		return err
	}
	insSize, err := c.UShort()
	if err != nil {
		return err
	}
	_, err = c.UShort() // outs_size: only relevant to a verifier/register allocator, not to decoding
	if err != nil {
		return err
	}
	triesSize, err := c.UShort()
	if err != nil {
		return err
	}
	debugInfoOff, err := c.UInt()
	if err != nil {
		return err
	}
	insnsSize, err := c.UInt()
	if err != nil {
		return err
	}

	insnsOff := int(codeOff) + codeItemHeaderSize
	insnsByteLen := int(insnsSize) * 2
	insnsBuf, err := r.h.image.Slice(insnsOff, insnsByteLen)
	if err != nil {
		return err
	}

	cv.VisitRegister(int(registersSize))

	triesOff := insnsOff + insnsByteLen
	if triesSize > 0 && insnsSize%2 != 0 {
		triesOff += 2 // padding to align the try_item array
	}
	handlersBase := handlerListBase(triesOff, int(triesSize))

	tries, err := r.decodeTries(triesOff, int(triesSize))
	if err != nil {
		return err
	}

	t := &traversal{
		r:            r,
		buf:          insnsBuf,
		units:        int(insnsSize),
		bad:          make(map[codeUnit]bool),
		visits:       make(map[codeUnit]bool),
		starts:       make(map[codeUnit]bool),
		labels:       make(map[codeUnit]bool),
		handlersBase: handlersBase,
	}
	if err := t.discover(tries); err != nil {
		return err
	}

	if !r.has(FlagSkipDebug) && debugInfoOff != 0 {
		dv := cv.VisitDebug()
		if dv != nil {
			if err := r.walkDebug(dv, debugInfoOff, method, isStatic, int(registersSize), int(insSize)); err != nil {
				return err
			}
		}
	}

	for _, ti := range tries {
		handlers, err := r.decodeCatchHandlers(handlersBase, int(ti.HandlerOff))
		if err != nil {
			return err
		}
		start := Label(ti.StartAddr)
		end := Label(ti.StartAddr + uint32(ti.InsnCount))
		cv.VisitTryCatch(start, end, handlers)
	}

	if err := t.emit(cv); err != nil {
		return err
	}
	cv.VisitEnd()
	return nil
}

// traversal holds the state shared between pass A (discover) and pass B
// (emit) for one method body.
type traversal struct {
	r            *Reader
	buf          *dexio.Buffer
	units        int
	bad          map[codeUnit]bool
	visits       map[codeUnit]bool // every code unit occupied by a discovered instruction/payload
	starts       map[codeUnit]bool // discovered instruction/payload/bad-op start addresses
	labels       map[codeUnit]bool // every branch/switch/handler target, even one landing mid-instruction
	handlersBase int
}

func (t *traversal) cursorAt(unit codeUnit) *dexio.Cursor {
	return t.buf.Cursor(int(unit) * 2)
}

// discover runs pass A: a worklist-driven reachability walk seeded at
// offset 0 and every try-handler address (handlers are not necessarily
// reachable by straight-line fallthrough).
func (t *traversal) discover(tries []tryItem) error {
	work := []codeUnit{0}
	seenRoot := map[codeUnit]bool{0: true}
	pushRoot := func(u codeUnit) {
		if !seenRoot[u] {
			seenRoot[u] = true
			work = append(work, u)
		}
	}
	// Handler entry addresses must also seed the worklist; decode them
	// once here (cheaply — handler lists are small) purely to harvest
	// target addresses, independent of the VisitTryCatch dispatch in
	// walkCode.
	for _, ti := range tries {
		handlers, err := t.r.decodeCatchHandlers(t.handlersBase, int(ti.HandlerOff))
		if err != nil {
			return err
		}
		for _, h := range handlers {
			t.labels[codeUnit(h.Handler)] = true
			pushRoot(codeUnit(h.Handler))
		}
	}

	for len(work) > 0 {
		addr := work[len(work)-1]
		work = work[:len(work)-1]
		if t.visits[addr] || t.bad[addr] || int(addr) >= t.units {
			continue
		}

		kind, payloadLen := t.peekPayload(addr)
		if kind != payloadNone {
			t.markRange(addr, payloadLen)
			continue // data island: no fallthrough, no successors
		}

		c := t.cursorAt(addr)
		opByte, err := c.UByte()
		if err != nil {
			t.bad[addr] = true
			t.starts[addr] = true
			continue
		}
		op := opTable[opByte]
		if op.Format == FmtUnknown {
			t.bad[addr] = true
			t.starts[addr] = true
			continue
		}
		width := codeUnit(op.Format.width())
		if int(addr)+int(width) > t.units {
			t.bad[addr] = true
			t.starts[addr] = true
			continue
		}
		t.markRange(addr, int(width))

		switch classifyControlFlow(op) {
		case flowFallthrough:
			pushRoot(addr + width)
		case flowUnconditionalBranch:
			target, err := t.branchTarget(addr, op)
			if err != nil {
				t.bad[addr] = true
				continue
			}
			t.labels[target] = true
			pushRoot(target)
		case flowConditionalBranch:
			target, err := t.branchTarget(addr, op)
			if err != nil {
				t.bad[addr] = true
				continue
			}
			t.labels[target] = true
			regA, regB, err := t.compareOperands(addr, op)
			if err == nil && op.Format == Fmt22t && regA == regB {
				// degenerate compare: v == v, v >= v and v <= v are always
				// true; v != v, v < v and v > v are never true
				switch op.Name {
				case "if-eq", "if-ge", "if-le":
					pushRoot(target)
				default:
					pushRoot(addr + width)
				}
				continue
			}
			pushRoot(target)
			pushRoot(addr + width)
		case flowSwitch:
			targets, err := t.switchTargets(addr, op)
			if err != nil {
				t.bad[addr] = true
				continue
			}
			for _, tg := range targets {
				t.labels[tg] = true
				pushRoot(tg)
			}
			pushRoot(addr + width)
		case flowTerminal:
			// return/throw: no successors
		}
	}
	return nil
}

func (t *traversal) markRange(start codeUnit, lenUnits int) {
	for i := 0; i < lenUnits; i++ {
		t.visits[start+codeUnit(i)] = true
	}
	t.starts[start] = true
}

type payloadKind int

const (
	payloadNone payloadKind = iota
	payloadPackedSwitch
	payloadSparseSwitch
	payloadFillArray
)

// peekPayload checks whether addr looks like one of the three payload
// pseudo-instructions (identified by their 16-bit ident, which overlaps
// opcode 0x00 "nop" as the low byte) and returns its length in code
// units if so.
func (t *traversal) peekPayload(addr codeUnit) (payloadKind, int) {
	c := t.cursorAt(addr)
	ident, err := c.UShort()
	if err != nil {
		return payloadNone, 0
	}
	switch ident {
	case packedSwitchPayloadIdent:
		size, err := c.UShort()
		if err != nil {
			return payloadNone, 0
		}
		return payloadPackedSwitch, 4 + int(size)*2
	case sparseSwitchPayloadIdent:
		size, err := c.UShort()
		if err != nil {
			return payloadNone, 0
		}
		return payloadSparseSwitch, 2 + int(size)*4
	case fillArrayDataPayloadIdent:
		elemWidth, err := c.UShort()
		if err != nil {
			return payloadNone, 0
		}
		size, err := c.UInt()
		if err != nil {
			return payloadNone, 0
		}
		dataBytes := int(size) * int(elemWidth)
		units := 4 + (dataBytes+1)/2
		return payloadFillArray, units
	default:
		return payloadNone, 0
	}
}

type flowClass int

const (
	flowFallthrough flowClass = iota
	flowUnconditionalBranch
	flowConditionalBranch
	flowSwitch
	flowTerminal
)

func classifyControlFlow(op Op) flowClass {
	switch op.Name {
	case "goto", "goto/16", "goto/32":
		return flowUnconditionalBranch
	case "if-eq", "if-ne", "if-lt", "if-ge", "if-gt", "if-le",
		"if-eqz", "if-nez", "if-ltz", "if-gez", "if-gtz", "if-lez":
		return flowConditionalBranch
	case "packed-switch", "sparse-switch":
		return flowSwitch
	case "return-void", "return", "return-wide", "return-object", "throw":
		return flowTerminal
	default:
		return flowFallthrough
	}
}

// branchTarget decodes just the target offset of a branch instruction
// at addr, without materializing the rest of its operands.
func (t *traversal) branchTarget(addr codeUnit, op Op) (codeUnit, error) {
	c := t.cursorAt(addr)
	c.Skip(1) // opcode byte
	switch op.Format {
	case Fmt10t:
		b, err := c.SByte()
		if err != nil {
			return 0, err
		}
		return codeUnit(int64(addr) + int64(b)), nil
	case Fmt20t:
		c.Skip(1)
		v, err := c.SShort()
		if err != nil {
			return 0, err
		}
		return codeUnit(int64(addr) + int64(v)), nil
	case Fmt21t:
		c.Skip(1)
		v, err := c.SShort()
		if err != nil {
			return 0, err
		}
		return codeUnit(int64(addr) + int64(v)), nil
	case Fmt22t:
		c.Skip(1)
		v, err := c.SShort()
		if err != nil {
			return 0, err
		}
		return codeUnit(int64(addr) + int64(v)), nil
	case Fmt30t:
		c.Skip(1)
		v, err := c.SInt()
		if err != nil {
			return 0, err
		}
		return codeUnit(int64(addr) + int64(v)), nil
	default:
		return 0, &dexio.Error{Kind: dexio.KindBadEval, Off: int(addr) * 2, Msg: "not a branch format"}
	}
}

// compareOperands returns the (a, b) register pair for a two-register
// compare format (Fmt22t), used only for the degenerate-compare check.
func (t *traversal) compareOperands(addr codeUnit, op Op) (int, int, error) {
	if op.Format != Fmt22t {
		return 0, 0, &dexio.Error{Msg: "not fmt22t"}
	}
	c := t.cursorAt(addr)
	c.Skip(1)
	b1, err := c.UByte()
	if err != nil {
		return 0, 0, err
	}
	return int(b1 & 0xf), int((b1 >> 4) & 0xf), nil
}

// switchTargets decodes the target address list for a packed-switch or
// sparse-switch instruction by following its payload offset.
func (t *traversal) switchTargets(addr codeUnit, op Op) ([]codeUnit, error) {
	c := t.cursorAt(addr)
	c.Skip(2) // opcode + AA register byte
	rel, err := c.SInt()
	if err != nil {
		return nil, err
	}
	payloadAddr := codeUnit(int64(addr) + int64(rel))
	pc := t.cursorAt(payloadAddr)
	ident, err := pc.UShort()
	if err != nil {
		return nil, err
	}
	var out []codeUnit
	switch ident {
	case packedSwitchPayloadIdent:
		size, err := pc.UShort()
		if err != nil {
			return nil, err
		}
		if _, err := pc.SInt(); err != nil { // first_key
			return nil, err
		}
		for i := uint16(0); i < size; i++ {
			rel, err := pc.SInt()
			if err != nil {
				return nil, err
			}
			out = append(out, codeUnit(int64(addr)+int64(rel)))
		}
	case sparseSwitchPayloadIdent:
		size, err := pc.UShort()
		if err != nil {
			return nil, err
		}
		for i := uint16(0); i < size; i++ {
			if _, err := pc.SInt(); err != nil { // key
				return nil, err
			}
		}
		for i := uint16(0); i < size; i++ {
			rel, err := pc.SInt()
			if err != nil {
				return nil, err
			}
			out = append(out, codeUnit(int64(addr)+int64(rel)))
		}
	default:
		return nil, &dexio.Error{Kind: dexio.KindBadEval, Off: int(payloadAddr) * 2, Msg: "switch payload not found at target"}
	}
	return out, nil
}

// emit runs pass B: walks the full offset range in ascending order,
// emitting a label and the decoded instruction (or a bad-op placeholder)
// for each discovered start, per invariant #2. A target address that
// landed mid-instruction during discover (never became a start because
// a wider instruction from a different root already claimed its code
// unit) still gets its VisitLabel call here, flushed independently of
// the instruction-start walk — every recorded branch/switch/handler
// target surfaces as a label even when it has no statement of its own.
func (t *traversal) emit(cv DexCodeVisitor) error {
	for addr := codeUnit(0); int(addr) < t.units; addr++ {
		if !t.starts[addr] {
			if t.labels[addr] {
				cv.VisitLabel(Label(addr))
			}
			continue
		}
		if t.bad[addr] {
			cv.VisitLabel(Label(addr))
			cv.VisitBadOp(Label(addr))
			continue
		}
		if kind, _ := t.peekPayload(addr); kind != payloadNone {
			continue // payload islands carry no visitor call of their own
		}
		if err := t.emitInsn(addr, cv); err != nil {
			return err
		}
	}
	return nil
}

func nibblePair(b byte) (lo, hi int) {
	return int(b & 0xf), int((b >> 4) & 0xf)
}

// emitInsn decodes the single instruction at addr and dispatches it to
// the matching DexCodeVisitor statement method, per the operand layouts
// in §4.8.1.
func (t *traversal) emitInsn(addr codeUnit, cv DexCodeVisitor) error {
	c := t.cursorAt(addr)
	opByte, err := c.UByte()
	if err != nil {
		return err
	}
	op := opTable[opByte]
	cv.VisitLabel(Label(addr))

	switch op.Format {
	case Fmt10x:
		cv.VisitStmt0R(op)

	case Fmt12x:
		b1, err := c.UByte()
		if err != nil {
			return err
		}
		a, b := nibblePair(b1)
		cv.VisitStmt2R(op, a, b)

	case Fmt11n:
		b1, err := c.UByte()
		if err != nil {
			return err
		}
		a, litNibble := nibblePair(b1)
		lit := int64(int8(litNibble<<4) >> 4)
		cv.VisitConstStmt(op, a, Value{Tag: ValInt, Int: lit})

	case Fmt11x:
		a, err := c.UByte()
		if err != nil {
			return err
		}
		cv.VisitStmt1R(op, int(a))

	case Fmt10t:
		b, err := c.SByte()
		if err != nil {
			return err
		}
		cv.VisitJumpStmt(op, nil, Label(int64(addr)+int64(b)))

	case Fmt20t:
		if _, err := c.UByte(); err != nil {
			return err
		}
		v, err := c.SShort()
		if err != nil {
			return err
		}
		cv.VisitJumpStmt(op, nil, Label(int64(addr)+int64(v)))

	case Fmt30t:
		if _, err := c.UByte(); err != nil {
			return err
		}
		v, err := c.SInt()
		if err != nil {
			return err
		}
		cv.VisitJumpStmt(op, nil, Label(int64(addr)+int64(v)))

	case Fmt22x:
		a, err := c.UByte()
		if err != nil {
			return err
		}
		b, err := c.UShort()
		if err != nil {
			return err
		}
		cv.VisitStmt2R(op, int(a), int(b))

	case Fmt32x:
		if _, err := c.UByte(); err != nil {
			return err
		}
		a, err := c.UShort()
		if err != nil {
			return err
		}
		b, err := c.UShort()
		if err != nil {
			return err
		}
		cv.VisitStmt2R(op, int(a), int(b))

	case Fmt21t:
		a, err := c.UByte()
		if err != nil {
			return err
		}
		v, err := c.SShort()
		if err != nil {
			return err
		}
		cv.VisitJumpStmt(op, []int{int(a)}, Label(int64(addr)+int64(v)))

	case Fmt21s:
		a, err := c.UByte()
		if err != nil {
			return err
		}
		v, err := c.SShort()
		if err != nil {
			return err
		}
		tag := ValInt
		if op.Name == "const-wide/16" {
			tag = ValLong
		}
		cv.VisitConstStmt(op, int(a), Value{Tag: tag, Int: int64(v)})

	case Fmt21h:
		a, err := c.UByte()
		if err != nil {
			return err
		}
		v, err := c.SShort()
		if err != nil {
			return err
		}
		shift := uint(16)
		tag := ValInt
		if op.Name == "const-wide/high16" {
			shift = 48
			tag = ValLong
		}
		cv.VisitConstStmt(op, int(a), Value{Tag: tag, Int: int64(v) << shift})

	case Fmt21c:
		a, err := c.UByte()
		if err != nil {
			return err
		}
		idx, err := c.UShort()
		if err != nil {
			return err
		}
		if err := t.dispatchIndexed(cv, op, []int{int(a)}, uint32(idx)); err != nil {
			return err
		}

	case Fmt31c:
		a, err := c.UByte()
		if err != nil {
			return err
		}
		idx, err := c.UInt()
		if err != nil {
			return err
		}
		if err := t.dispatchIndexed(cv, op, []int{int(a)}, idx); err != nil {
			return err
		}

	case Fmt23x:
		a, err := c.UByte()
		if err != nil {
			return err
		}
		bc, err := c.UShort()
		if err != nil {
			return err
		}
		cv.VisitStmt3R(op, int(a), int(bc&0xff), int((bc>>8)&0xff))

	case Fmt22b:
		a, err := c.UByte()
		if err != nil {
			return err
		}
		bc, err := c.UShort()
		if err != nil {
			return err
		}
		b := int(bc & 0xff)
		lit := int64(int8(bc >> 8))
		cv.VisitStmt2R1N(op, int(a), b, lit)

	case Fmt22t:
		b1, err := c.UByte()
		if err != nil {
			return err
		}
		a, b := nibblePair(b1)
		v, err := c.SShort()
		if err != nil {
			return err
		}
		cv.VisitJumpStmt(op, []int{a, b}, Label(int64(addr)+int64(v)))

	case Fmt22s:
		b1, err := c.UByte()
		if err != nil {
			return err
		}
		a, b := nibblePair(b1)
		v, err := c.SShort()
		if err != nil {
			return err
		}
		cv.VisitStmt2R1N(op, a, b, int64(v))

	case Fmt22c:
		b1, err := c.UByte()
		if err != nil {
			return err
		}
		a, b := nibblePair(b1)
		idx, err := c.UShort()
		if err != nil {
			return err
		}
		if err := t.dispatchIndexed(cv, op, []int{a, b}, uint32(idx)); err != nil {
			return err
		}

	case Fmt31i:
		a, err := c.UByte()
		if err != nil {
			return err
		}
		v, err := c.SInt()
		if err != nil {
			return err
		}
		tag := ValInt
		if op.Name == "const-wide/32" {
			tag = ValLong
		}
		cv.VisitConstStmt(op, int(a), Value{Tag: tag, Int: int64(v)})

	case Fmt51l:
		a, err := c.UByte()
		if err != nil {
			return err
		}
		lo, err := c.UInt()
		if err != nil {
			return err
		}
		hi, err := c.UInt()
		if err != nil {
			return err
		}
		cv.VisitConstStmt(op, int(a), Value{Tag: ValLong, Int: int64(uint64(hi)<<32 | uint64(lo))})

	case Fmt31t:
		a, err := c.UByte()
		if err != nil {
			return err
		}
		rel, err := c.SInt()
		if err != nil {
			return err
		}
		payloadAddr := codeUnit(int64(addr) + int64(rel))
		switch op.Name {
		case "fill-array-data":
			elementWidth, data, err := t.readFillArrayPayload(payloadAddr)
			if err != nil {
				return err
			}
			cv.VisitFillArrayDataStmt(op, int(a), elementWidth, data)
		case "packed-switch":
			firstKey, targets, err := t.readPackedSwitchPayload(addr, payloadAddr)
			if err != nil {
				return err
			}
			cv.VisitPackedSwitchStmt(op, int(a), firstKey, targets)
		case "sparse-switch":
			keys, targets, err := t.readSparseSwitchPayload(addr, payloadAddr)
			if err != nil {
				return err
			}
			cv.VisitSparseSwitchStmt(op, int(a), keys, targets)
		}

	case Fmt35c:
		b1, err := c.UByte()
		if err != nil {
			return err
		}
		argCount, g := nibblePair(b1)
		idx, err := c.UShort()
		if err != nil {
			return err
		}
		cdef, err := c.UShort()
		if err != nil {
			return err
		}
		cReg, dReg := nibblePair(byte(cdef & 0xff))
		eReg, fReg := nibblePair(byte(cdef >> 8))
		all := []int{cReg, dReg, eReg, fReg, g}
		regs := all[:argCount]
		if op.Index == IdxMethod {
			method, err := t.r.pool.getMethod(uint32(idx))
			if err != nil {
				return err
			}
			cv.VisitMethodStmt(op, regs, method)
		} else {
			typ, err := t.r.pool.getType(int32(idx))
			if err != nil {
				return err
			}
			cv.VisitFilledNewArrayStmt(op, regs, typ)
		}

	case Fmt3rc:
		count, err := c.UByte()
		if err != nil {
			return err
		}
		idx, err := c.UShort()
		if err != nil {
			return err
		}
		first, err := c.UShort()
		if err != nil {
			return err
		}
		regs := make([]int, count)
		for i := 0; i < int(count); i++ {
			regs[i] = int(first) + i
		}
		if op.Index == IdxMethod {
			method, err := t.r.pool.getMethod(uint32(idx))
			if err != nil {
				return err
			}
			cv.VisitMethodStmt(op, regs, method)
		} else {
			typ, err := t.r.pool.getType(int32(idx))
			if err != nil {
				return err
			}
			cv.VisitFilledNewArrayStmt(op, regs, typ)
		}

	default:
		cv.VisitBadOp(Label(addr))
	}
	return nil
}

// dispatchIndexed resolves op's constant-pool index per its IndexType
// and routes to the right statement visitor: field ops carry a Field;
// const-string/const-string-jumbo/const-class are literal-loading
// opcodes and carry their resolved string/type through VisitConstStmt,
// same as any other constant load; every other type-indexed opcode
// (check-cast, instance-of, new-instance, new-array) carries a bare
// type string through VisitTypeStmt.
func (t *traversal) dispatchIndexed(cv DexCodeVisitor, op Op, regs []int, idx uint32) error {
	switch op.Index {
	case IdxField:
		field, err := t.r.pool.getField(idx)
		if err != nil {
			return err
		}
		cv.VisitFieldStmt(op, regs, field)
	case IdxType:
		typ, err := t.r.pool.getType(int32(idx))
		if err != nil {
			return err
		}
		if op.Name == "const-class" {
			cv.VisitConstStmt(op, regs[0], Value{Tag: ValType, Str: typ})
			return nil
		}
		cv.VisitTypeStmt(op, regs, typ)
	case IdxString:
		s, err := t.r.pool.getString(int32(idx))
		if err != nil {
			return err
		}
		cv.VisitConstStmt(op, regs[0], Value{Tag: ValString, Str: s})
	default:
		return &dexio.Error{Msg: "instruction has no index type"}
	}
	return nil
}

func (t *traversal) readFillArrayPayload(payloadAddr codeUnit) (int, []byte, error) {
	pc := t.cursorAt(payloadAddr)
	if _, err := pc.UShort(); err != nil { // ident
		return 0, nil, err
	}
	elemWidth, err := pc.UShort()
	if err != nil {
		return 0, nil, err
	}
	size, err := pc.UInt()
	if err != nil {
		return 0, nil, err
	}
	data, err := pc.Bytes(int(size) * int(elemWidth))
	if err != nil {
		return 0, nil, err
	}
	return int(elemWidth), data, nil
}

func (t *traversal) readPackedSwitchPayload(insnAddr, payloadAddr codeUnit) (int32, []Label, error) {
	pc := t.cursorAt(payloadAddr)
	if _, err := pc.UShort(); err != nil {
		return 0, nil, err
	}
	size, err := pc.UShort()
	if err != nil {
		return 0, nil, err
	}
	firstKey, err := pc.SInt()
	if err != nil {
		return 0, nil, err
	}
	targets := make([]Label, size)
	for i := uint16(0); i < size; i++ {
		rel, err := pc.SInt()
		if err != nil {
			return 0, nil, err
		}
		targets[i] = Label(int64(insnAddr) + int64(rel))
	}
	return firstKey, targets, nil
}

func (t *traversal) readSparseSwitchPayload(insnAddr, payloadAddr codeUnit) ([]int32, []Label, error) {
	pc := t.cursorAt(payloadAddr)
	if _, err := pc.UShort(); err != nil {
		return nil, nil, err
	}
	size, err := pc.UShort()
	if err != nil {
		return nil, nil, err
	}
	keys := make([]int32, size)
	for i := uint16(0); i < size; i++ {
		k, err := pc.SInt()
		if err != nil {
			return nil, nil, err
		}
		keys[i] = k
	}
	targets := make([]Label, size)
	for i := uint16(0); i < size; i++ {
		rel, err := pc.SInt()
		if err != nil {
			return nil, nil, err
		}
		targets[i] = Label(int64(insnAddr) + int64(rel))
	}
	return keys, targets, nil
}
