package cfgutil

import (
	"strings"
	"testing"

	"dxread/internal/dex"
)

func TestRecorder_LinearReturnVoid(t *testing.T) {
	r := &Recorder{}
	r.VisitRegister(2)
	r.VisitLabel(0)
	r.VisitStmt0R(dex.Op{Name: "return-void"})
	r.VisitEnd()

	if r.regs != 2 {
		t.Fatalf("regs = %d, want 2", r.regs)
	}
	cfg := r.BuildFuncCFG("run")
	if len(cfg.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(cfg.Blocks))
	}
	if !cfg.Blocks[0].Term {
		t.Error("expected the single block to be terminal")
	}
	if len(cfg.Blocks[0].Succs) != 0 {
		t.Errorf("Succs = %v, want none", cfg.Blocks[0].Succs)
	}
}

func TestRecorder_ConditionalBranchSplitsBlocks(t *testing.T) {
	r := &Recorder{}
	r.VisitRegister(1)

	r.VisitLabel(0)
	r.VisitJumpStmt(dex.Op{Name: "if-eqz"}, []int{0}, dex.Label(4))

	r.VisitLabel(2)
	r.VisitStmt0R(dex.Op{Name: "return-void"})

	r.VisitLabel(4)
	r.VisitStmt0R(dex.Op{Name: "return-void"})
	r.VisitEnd()

	cfg := r.BuildFuncCFG("branch")
	if len(cfg.Blocks) != 3 {
		t.Fatalf("blocks = %d, want 3 (if-eqz, fallthrough, target)", len(cfg.Blocks))
	}
	head := cfg.Blocks[0]
	if len(head.Succs) != 2 {
		t.Fatalf("head Succs = %v, want 2 (fallthrough + branch target)", head.Succs)
	}
}

func TestRecorder_GotoIsUnconditionalWithSingleSuccessor(t *testing.T) {
	r := &Recorder{}
	r.VisitRegister(0)
	r.VisitLabel(0)
	r.VisitJumpStmt(dex.Op{Name: "goto"}, nil, dex.Label(2))
	r.VisitLabel(2)
	r.VisitStmt0R(dex.Op{Name: "return-void"})
	r.VisitEnd()

	cfg := r.BuildFuncCFG("jump")
	head := cfg.Blocks[0]
	if len(head.Succs) != 1 {
		t.Fatalf("Succs = %v, want exactly 1 for an unconditional goto", head.Succs)
	}
	if head.Succs[0].Cond != "" {
		t.Errorf("Succs[0].Cond = %q, want empty for an unconditional jump", head.Succs[0].Cond)
	}
}

func TestRecorder_MethodStmtRecordsCallSite(t *testing.T) {
	r := &Recorder{}
	r.VisitRegister(1)
	r.VisitLabel(0)
	r.VisitMethodStmt(dex.Op{Name: "invoke-static"}, []int{0}, dex.Method{
		Owner: "Lfoo;", Name: "bar", Return: "V",
	})
	r.VisitLabel(3)
	r.VisitStmt0R(dex.Op{Name: "return-void"})
	r.VisitEnd()

	cfg := r.BuildFuncCFG("call")
	var calls []string
	for _, b := range cfg.Blocks {
		for _, c := range b.Calls {
			calls = append(calls, c.Callee)
		}
	}
	if len(calls) != 1 || calls[0] != "Lfoo;->bar()V" {
		t.Errorf("calls = %v, want [Lfoo;->bar()V]", calls)
	}
}

func TestRecorder_BadOpIsNotTerminal(t *testing.T) {
	r := &Recorder{}
	r.VisitRegister(0)
	r.VisitBadOp(dex.Label(0))
	r.VisitEnd()

	cfg := r.BuildFuncCFG("bad")
	if len(cfg.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(cfg.Blocks))
	}
	if cfg.Blocks[0].Term {
		t.Error("a lone unrecognized opcode should not be treated as a block terminator")
	}
}

func TestRecorder_Callees(t *testing.T) {
	r := &Recorder{}
	r.VisitRegister(1)
	r.VisitLabel(0)
	r.VisitMethodStmt(dex.Op{Name: "invoke-static"}, []int{0}, dex.Method{Owner: "Lfoo;", Name: "bar", Return: "V"})
	r.VisitLabel(3)
	r.VisitStmt0R(dex.Op{Name: "return-void"})
	r.VisitEnd()

	got := r.Callees()
	if len(got) != 1 || got[0] != "Lfoo;->bar()V" {
		t.Errorf("Callees() = %v, want [Lfoo;->bar()V]", got)
	}
}

func TestRenderDOT_ContainsFuncName(t *testing.T) {
	r := &Recorder{}
	r.VisitRegister(0)
	r.VisitLabel(0)
	r.VisitStmt0R(dex.Op{Name: "return-void"})
	r.VisitEnd()

	dot := RenderDOT("run", r, "run")
	if !strings.Contains(dot, "run") {
		t.Errorf("RenderDOT output missing function name: %s", dot)
	}
}
