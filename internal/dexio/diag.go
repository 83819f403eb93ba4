package dexio

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// DiagKind classifies a non-fatal issue encountered while decoding.
// Every kind here corresponds to a WARN case the reader's error-handling
// design calls out by name.
type DiagKind string

const (
	DiagHeaderVersion    DiagKind = "header_version"
	DiagHeaderMismatch   DiagKind = "header_mismatch"
	DiagDupMethod        DiagKind = "duplicated_method"
	DiagMissingCtorFlag  DiagKind = "missing_constructor_flag"
	DiagZeroWidthInsn    DiagKind = "zero_width_instruction"
	DiagJumpOutOfRange   DiagKind = "jump_out_of_insn"
	DiagIndexOutOfRange  DiagKind = "index_out_of_range"
	DiagBadSwitchPayload DiagKind = "bad_switch_payload"
	DiagBadDebug         DiagKind = "bad_debug"
	DiagClassSkipped     DiagKind = "class_skipped"
)

// Diag records one warning: what kind it was, where it happened, and
// which class/method it happened in, mirroring the way the reader wraps
// fatal errors with the same context (§7).
type Diag struct {
	ClassIndex  int
	MethodDescr string
	Offset      int64
	Kind        DiagKind
	Msg         string
}

func (d Diag) String() string {
	if d.MethodDescr != "" {
		return fmt.Sprintf("[%s] class#%d %s @0x%x: %s", d.Kind, d.ClassIndex, d.MethodDescr, d.Offset, d.Msg)
	}
	return fmt.Sprintf("[%s] class#%d @0x%x: %s", d.Kind, d.ClassIndex, d.Offset, d.Msg)
}

// Diags accumulates warnings for the lifetime of its owner (a Reader
// keeps one across all its Pipe runs) and, when a logger is attached,
// forwards each one as a structured logrus entry. Accumulation happens
// unconditionally so tests can assert on invariants (e.g. "a duplicated
// method warning was emitted") without depending on log output, while
// callers that attach a logger get the same information as a live trace.
type Diags struct {
	items  []Diag
	logger *logrus.Entry
}

// NewDiags creates an accumulator. logger may be nil, in which case
// warnings are only accumulated, never printed.
func NewDiags(logger *logrus.Entry) *Diags {
	return &Diags{logger: logger}
}

// Warn records a warning and, if a logger is attached, logs it.
func (d *Diags) Warn(classIndex int, methodDescr string, offset int64, kind DiagKind, format string, args ...any) {
	diag := Diag{
		ClassIndex:  classIndex,
		MethodDescr: methodDescr,
		Offset:      offset,
		Kind:        kind,
		Msg:         fmt.Sprintf(format, args...),
	}
	d.items = append(d.items, diag)
	if d.logger != nil {
		d.logger.WithFields(logrus.Fields{
			"kind":   string(kind),
			"class":  classIndex,
			"method": methodDescr,
			"offset": offset,
		}).Warn(diag.Msg)
	}
}

// Items returns every warning recorded so far, in emission order.
func (d *Diags) Items() []Diag { return d.items }

// Len returns the number of warnings recorded so far.
func (d *Diags) Len() int { return len(d.items) }
