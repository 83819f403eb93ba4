package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dxread/internal/dex"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <path>",
	Short: "Print every class, field, method and instruction found",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dex.Open(args[0], &dumpFileVisitor{}, buildConfig()); err != nil {
			return fmt.Errorf("pipe: %w", err)
		}
		return nil
	},
}

type dumpFileVisitor struct{}

func (d *dumpFileVisitor) Visit(accessFlags dex.AccessFlags, class, super string, interfaces []string) dex.DexClassVisitor {
	fmt.Printf("class %s extends %s (access %#x)\n", class, super, uint32(accessFlags))
	return &dumpClassVisitor{class: class}
}
func (d *dumpFileVisitor) VisitEnd() {}

type dumpClassVisitor struct {
	class string
}

func (c *dumpClassVisitor) VisitSource(sourceFile string) {
	fmt.Printf("  source %s\n", sourceFile)
}

func (c *dumpClassVisitor) VisitAnnotation(annotationType string, visibility dex.Visibility) dex.DexAnnotationVisitor {
	fmt.Printf("  @%s (%s)\n", annotationType, visibility)
	return nil
}

func (c *dumpClassVisitor) VisitField(accessFlags dex.AccessFlags, field dex.Field, constant *dex.Value) dex.DexFieldVisitor {
	if constant != nil {
		fmt.Printf("  field (access %#x) %s = %+v\n", uint32(accessFlags), field.String(), *constant)
	} else {
		fmt.Printf("  field (access %#x) %s\n", uint32(accessFlags), field.String())
	}
	return nil
}

func (c *dumpClassVisitor) VisitMethod(accessFlags dex.AccessFlags, method dex.Method) dex.DexMethodVisitor {
	fmt.Printf("  method (access %#x) %s\n", uint32(accessFlags), method.String())
	return &dumpMethodVisitor{}
}

func (c *dumpClassVisitor) VisitEnd() {}

type dumpMethodVisitor struct{}

func (m *dumpMethodVisitor) VisitAnnotation(annotationType string, visibility dex.Visibility) dex.DexAnnotationVisitor {
	return nil
}
func (m *dumpMethodVisitor) VisitParameterAnnotation(index int) dex.DexAnnotationVisitor { return nil }

func (m *dumpMethodVisitor) VisitCode() dex.DexCodeVisitor {
	return &dumpCodeVisitor{}
}
func (m *dumpMethodVisitor) VisitEnd() {}

type dumpCodeVisitor struct{}

func (c *dumpCodeVisitor) VisitRegister(totalRegisters int) {
	fmt.Printf("    registers %d\n", totalRegisters)
}
func (c *dumpCodeVisitor) VisitLabel(label dex.Label) {
	fmt.Printf("    %04x:\n", label)
}
func (c *dumpCodeVisitor) VisitTryCatch(start, end dex.Label, handlers []dex.TryCatchHandler) {
	fmt.Printf("    try %04x..%04x %v\n", start, end, handlers)
}
func (c *dumpCodeVisitor) VisitDebug() dex.DexDebugVisitor { return nil }

func (c *dumpCodeVisitor) VisitStmt0R(op dex.Op) {
	fmt.Printf("      %s\n", op.Name)
}
func (c *dumpCodeVisitor) VisitStmt1R(op dex.Op, a int) {
	fmt.Printf("      %s v%d\n", op.Name, a)
}
func (c *dumpCodeVisitor) VisitStmt2R(op dex.Op, a, b int) {
	fmt.Printf("      %s v%d, v%d\n", op.Name, a, b)
}
func (c *dumpCodeVisitor) VisitStmt3R(op dex.Op, a, b, e int) {
	fmt.Printf("      %s v%d, v%d, v%d\n", op.Name, a, b, e)
}
func (c *dumpCodeVisitor) VisitStmt2R1N(op dex.Op, a, b int, lit int64) {
	fmt.Printf("      %s v%d, v%d, #%d\n", op.Name, a, b, lit)
}
func (c *dumpCodeVisitor) VisitConstStmt(op dex.Op, a int, value dex.Value) {
	fmt.Printf("      %s v%d, %+v\n", op.Name, a, value)
}
func (c *dumpCodeVisitor) VisitFieldStmt(op dex.Op, regs []int, field dex.Field) {
	fmt.Printf("      %s %v, %s\n", op.Name, regs, field.String())
}
func (c *dumpCodeVisitor) VisitTypeStmt(op dex.Op, regs []int, typ string) {
	fmt.Printf("      %s %v, %s\n", op.Name, regs, typ)
}
func (c *dumpCodeVisitor) VisitJumpStmt(op dex.Op, regs []int, target dex.Label) {
	fmt.Printf("      %s %v, %04x\n", op.Name, regs, target)
}
func (c *dumpCodeVisitor) VisitFillArrayDataStmt(op dex.Op, a int, elementWidth int, data []byte) {
	fmt.Printf("      %s v%d, width=%d, len=%d\n", op.Name, a, elementWidth, len(data))
}
func (c *dumpCodeVisitor) VisitPackedSwitchStmt(op dex.Op, a int, firstKey int32, targets []dex.Label) {
	fmt.Printf("      %s v%d, first=%d, targets=%v\n", op.Name, a, firstKey, targets)
}
func (c *dumpCodeVisitor) VisitSparseSwitchStmt(op dex.Op, a int, keys []int32, targets []dex.Label) {
	fmt.Printf("      %s v%d, keys=%v, targets=%v\n", op.Name, a, keys, targets)
}
func (c *dumpCodeVisitor) VisitMethodStmt(op dex.Op, regs []int, method dex.Method) {
	fmt.Printf("      %s %v, %s\n", op.Name, regs, method.String())
}
func (c *dumpCodeVisitor) VisitFilledNewArrayStmt(op dex.Op, regs []int, typ string) {
	fmt.Printf("      %s %v, %s\n", op.Name, regs, typ)
}
func (c *dumpCodeVisitor) VisitBadOp(offset dex.Label) {
	fmt.Printf("    %04x: <bad opcode>\n", offset)
}
func (c *dumpCodeVisitor) VisitEnd() {}
