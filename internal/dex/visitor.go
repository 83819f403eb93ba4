package dex

// A null return from any factory method below means "skip this
// subtree" — the reader must not (and does not) do any work whose only
// purpose is feeding that subtree.

// DexFileVisitor is the root of the visitor tree, handed one visit call
// per class_def_item in class_defs order.
type DexFileVisitor interface {
	Visit(accessFlags AccessFlags, class string, super string, interfaces []string) DexClassVisitor
	VisitEnd()
}

// DexClassVisitor receives everything scoped to one class.
type DexClassVisitor interface {
	VisitSource(sourceFile string)
	VisitAnnotation(annotationType string, visibility Visibility) DexAnnotationVisitor
	VisitField(accessFlags AccessFlags, field Field, constant *Value) DexFieldVisitor
	VisitMethod(accessFlags AccessFlags, method Method) DexMethodVisitor
	VisitEnd()
}

// DexFieldVisitor receives annotations attached to one field.
type DexFieldVisitor interface {
	VisitAnnotation(annotationType string, visibility Visibility) DexAnnotationVisitor
	VisitEnd()
}

// DexMethodVisitor receives annotations, parameter annotations, and the
// code body of one method.
type DexMethodVisitor interface {
	VisitAnnotation(annotationType string, visibility Visibility) DexAnnotationVisitor
	VisitParameterAnnotation(index int) DexAnnotationVisitor
	VisitCode() DexCodeVisitor
	VisitEnd()
}

// DexAnnotationVisitor receives the (name, value) elements of one
// annotation_item or nested encoded_annotation.
type DexAnnotationVisitor interface {
	Visit(name string, value Value)
	VisitEnd()
}

// DexCodeVisitor receives register counts, labels, try/catch entries,
// the debug sub-visitor, and every decoded instruction of one method
// body, in strictly increasing offset order (invariant #2).
type DexCodeVisitor interface {
	VisitRegister(totalRegisters int)
	VisitLabel(label Label)
	VisitTryCatch(start, end Label, handlers []TryCatchHandler)
	VisitDebug() DexDebugVisitor

	// Statement family, one call per decoded instruction (§4.8.2).
	VisitStmt0R(op Op)
	VisitStmt1R(op Op, a int)
	VisitStmt2R(op Op, a, b int)
	VisitStmt3R(op Op, a, b, c int)
	VisitStmt2R1N(op Op, a, b int, lit int64)
	VisitConstStmt(op Op, a int, value Value)
	VisitFieldStmt(op Op, regs []int, field Field)
	VisitTypeStmt(op Op, regs []int, typ string)
	VisitJumpStmt(op Op, regs []int, target Label)
	VisitFillArrayDataStmt(op Op, a int, elementWidth int, data []byte)
	VisitPackedSwitchStmt(op Op, a int, firstKey int32, targets []Label)
	VisitSparseSwitchStmt(op Op, a int, keys []int32, targets []Label)
	VisitMethodStmt(op Op, regs []int, method Method)
	VisitFilledNewArrayStmt(op Op, regs []int, typ string)

	// BadOp marks an offset Pass A could not classify (unassigned opcode
	// or an undefined format) so Pass B still emits a placeholder there.
	VisitBadOp(offset Label)

	VisitEnd()
}

// DexDebugVisitor receives the events the debug-info micro-VM produces.
type DexDebugVisitor interface {
	VisitParameterName(index int, name string)
	VisitStartLocal(reg int, name, typ, sig string, offset Label)
	VisitRestartLocal(reg int, offset Label)
	VisitEndLocal(reg int, offset Label)
	VisitLineNumber(line int, offset Label)
	VisitPrologue(offset Label)
	VisitEpilogue(offset Label)
	VisitEnd()
}
