// Package cfgutil is a debugging aid, not a disassembler: it builds a
// control-flow graph purely from the labels and jump/switch targets a
// dex.Reader already emits while walking a method body. It never
// re-opens the byte image and decodes no instruction semantics beyond
// what dex.DexCodeVisitor already hands it.
package cfgutil

import "dxread/internal/dex"

// insn is one decoded instruction as seen by Recorder, kept only long
// enough to derive basic-block boundaries and call sites.
type insn struct {
	addr     dex.Label
	op       dex.Op
	targets  []dex.Label
	terminal bool
	callee   string
	bad      bool
}

// Recorder implements dex.DexCodeVisitor, accumulating the shape of one
// method body (labels, branch/switch targets, terminal instructions,
// and invoked method names) without interpreting any operand values.
type Recorder struct {
	regs  int
	insns []insn
	cur   *insn
}

var _ dex.DexCodeVisitor = (*Recorder)(nil)

func (r *Recorder) VisitRegister(n int) { r.regs = n }

func (r *Recorder) VisitLabel(label dex.Label) {
	r.insns = append(r.insns, insn{addr: label})
	r.cur = &r.insns[len(r.insns)-1]
}

func (r *Recorder) VisitTryCatch(start, end dex.Label, handlers []dex.TryCatchHandler) {}

func (r *Recorder) VisitDebug() dex.DexDebugVisitor { return nil }

func (r *Recorder) VisitStmt0R(op dex.Op)                       { r.setOp(op) }
func (r *Recorder) VisitStmt1R(op dex.Op, a int)                { r.setOp(op) }
func (r *Recorder) VisitStmt2R(op dex.Op, a, b int)             { r.setOp(op) }
func (r *Recorder) VisitStmt3R(op dex.Op, a, b, c int)          { r.setOp(op) }
func (r *Recorder) VisitStmt2R1N(op dex.Op, a, b int, lit int64) { r.setOp(op) }
func (r *Recorder) VisitConstStmt(op dex.Op, a int, value dex.Value) { r.setOp(op) }

func (r *Recorder) VisitFieldStmt(op dex.Op, regs []int, field dex.Field) { r.setOp(op) }

func (r *Recorder) VisitTypeStmt(op dex.Op, regs []int, typ string) { r.setOp(op) }

func (r *Recorder) VisitJumpStmt(op dex.Op, regs []int, target dex.Label) {
	r.setOp(op)
	r.cur.targets = append(r.cur.targets, target)
}

func (r *Recorder) VisitFillArrayDataStmt(op dex.Op, a int, elementWidth int, data []byte) {
	r.setOp(op)
}

func (r *Recorder) VisitPackedSwitchStmt(op dex.Op, a int, firstKey int32, targets []dex.Label) {
	r.setOp(op)
	r.cur.targets = append(r.cur.targets, targets...)
}

func (r *Recorder) VisitSparseSwitchStmt(op dex.Op, a int, keys []int32, targets []dex.Label) {
	r.setOp(op)
	r.cur.targets = append(r.cur.targets, targets...)
}

func (r *Recorder) VisitMethodStmt(op dex.Op, regs []int, method dex.Method) {
	r.setOp(op)
	r.cur.callee = method.String()
}

func (r *Recorder) VisitFilledNewArrayStmt(op dex.Op, regs []int, typ string) { r.setOp(op) }

func (r *Recorder) VisitBadOp(offset dex.Label) {
	r.insns = append(r.insns, insn{addr: offset, bad: true})
	r.cur = &r.insns[len(r.insns)-1]
}

func (r *Recorder) VisitEnd() {}

// Callees returns the invoke-target method names collected while
// visiting, in instruction order, for callers building a whole-file
// call graph on top of one Recorder per method.
func (r *Recorder) Callees() []string {
	var out []string
	for _, ins := range r.insns {
		if ins.callee != "" {
			out = append(out, ins.callee)
		}
	}
	return out
}

func (r *Recorder) setOp(op dex.Op) {
	r.cur.op = op
	switch op.Name {
	case "return-void", "return", "return-wide", "return-object", "throw",
		"goto", "goto/16", "goto/32":
		r.cur.terminal = true
	}
}
