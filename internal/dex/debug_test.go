package dex

import (
	"testing"

	"dxread/internal/dexio"
)

type recordingDebugVisitor struct {
	lines        []int
	offsets      []Label
	prologue     []Label
	epilogue     []Label
	startLocals  []int
	restartLocals []int
	ended        bool
}

func (v *recordingDebugVisitor) VisitParameterName(index int, name string) {}
func (v *recordingDebugVisitor) VisitStartLocal(reg int, name, typ, sig string, offset Label) {
	v.startLocals = append(v.startLocals, reg)
}
func (v *recordingDebugVisitor) VisitRestartLocal(reg int, offset Label) {
	v.restartLocals = append(v.restartLocals, reg)
}
func (v *recordingDebugVisitor) VisitEndLocal(reg int, offset Label) {}
func (v *recordingDebugVisitor) VisitLineNumber(line int, offset Label) {
	v.lines = append(v.lines, line)
	v.offsets = append(v.offsets, offset)
}
func (v *recordingDebugVisitor) VisitPrologue(offset Label) { v.prologue = append(v.prologue, offset) }
func (v *recordingDebugVisitor) VisitEpilogue(offset Label) { v.epilogue = append(v.epilogue, offset) }
func (v *recordingDebugVisitor) VisitEnd()                  { v.ended = true }

func TestWalkDebug_SpecialOpcodeAndPrologue(t *testing.T) {
	// line_start=1, parameters_size=0, DBG_ADVANCE_PC diff=2, one special
	// opcode (0x1a: adjusted=16 -> address+=1, line+=-3), DBG_SET_PROLOGUE_END,
	// DBG_END_SEQUENCE.
	trailer := []byte{0x01, 0x00, 0x01, 0x02, 0x1a, 0x07, 0x00}
	image, off := buildDexWithTrailer(t, trailer)
	r, err := OpenBytes(image, Config{})
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}

	dv := &recordingDebugVisitor{}
	if err := r.walkDebug(dv, uint32(off), Method{}, true, 0, 0); err != nil {
		t.Fatalf("walkDebug: %v", err)
	}

	if len(dv.lines) != 1 || dv.lines[0] != -2 || dv.offsets[0] != Label(3) {
		t.Errorf("line events = %v @ %v, want [-2] @ [3]", dv.lines, dv.offsets)
	}
	if len(dv.prologue) != 1 || dv.prologue[0] != Label(3) {
		t.Errorf("prologue events = %v, want [3]", dv.prologue)
	}
	if !dv.ended {
		t.Error("expected VisitEnd")
	}
}

func TestWalkDebug_RestartLocalAfterStart(t *testing.T) {
	// line_start=1, params_size=0, START_LOCAL v0 (name=-1, type=-1),
	// RESTART_LOCAL v0, END_SEQUENCE.
	trailer := []byte{0x01, 0x00, 0x03, 0x00, 0x00, 0x00, 0x06, 0x00, 0x00}
	image, off := buildDexWithTrailer(t, trailer)
	r, err := OpenBytes(image, Config{})
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}

	dv := &recordingDebugVisitor{}
	if err := r.walkDebug(dv, uint32(off), Method{}, true, 0, 0); err != nil {
		t.Fatalf("walkDebug: %v", err)
	}
	if len(dv.startLocals) != 1 || dv.startLocals[0] != 0 {
		t.Errorf("startLocals = %v, want [0]", dv.startLocals)
	}
	if len(dv.restartLocals) != 1 || dv.restartLocals[0] != 0 {
		t.Errorf("restartLocals = %v, want [0]", dv.restartLocals)
	}
	if !dv.ended {
		t.Error("expected VisitEnd")
	}
}

func TestWalkDebug_RestartLocalWithoutStartFails(t *testing.T) {
	// line_start=1, params_size=0, RESTART_LOCAL v1 with no prior
	// START_LOCAL, END_SEQUENCE.
	trailer := []byte{0x01, 0x00, 0x06, 0x01, 0x00}
	image, off := buildDexWithTrailer(t, trailer)
	r, err := OpenBytes(image, Config{})
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}

	dv := &recordingDebugVisitor{}
	err = r.walkDebug(dv, uint32(off), Method{}, true, 0, 0)
	if err == nil {
		t.Fatal("expected an error for RESTART_LOCAL on an untouched register")
	}
	de, ok := err.(*dexio.Error)
	if !ok {
		t.Fatalf("error type = %T, want *dexio.Error", err)
	}
	if de.Kind != dexio.KindBadDebug {
		t.Errorf("error Kind = %v, want %v", de.Kind, dexio.KindBadDebug)
	}
}

func TestIsWideDescriptor(t *testing.T) {
	tests := []struct {
		desc string
		want bool
	}{
		{"J", true},
		{"D", true},
		{"I", false},
		{"Ljava/lang/String;", false},
	}
	for _, tt := range tests {
		if got := isWideDescriptor(tt.desc); got != tt.want {
			t.Errorf("isWideDescriptor(%q) = %v, want %v", tt.desc, got, tt.want)
		}
	}
}
