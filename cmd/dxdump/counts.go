package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dxread/internal/dex"
)

var countsCmd = &cobra.Command{
	Use:   "counts <path>",
	Short: "Print class/field/method counts for a .dex or archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := &countVisitor{}
		if err := dex.Open(args[0], c, buildConfig()); err != nil {
			return fmt.Errorf("pipe: %w", err)
		}
		fmt.Printf("classes:  %d\n", c.classes)
		fmt.Printf("fields:   %d\n", c.fields)
		fmt.Printf("methods:  %d\n", c.methods)
		fmt.Printf("with code: %d\n", c.withCode)
		return nil
	},
}

type countVisitor struct {
	classes, fields, methods, withCode int
}

func (c *countVisitor) Visit(accessFlags dex.AccessFlags, class, super string, interfaces []string) dex.DexClassVisitor {
	c.classes++
	return &countClassVisitor{parent: c}
}
func (c *countVisitor) VisitEnd() {}

type countClassVisitor struct {
	parent *countVisitor
}

func (c *countClassVisitor) VisitSource(sourceFile string) {}
func (c *countClassVisitor) VisitAnnotation(annotationType string, visibility dex.Visibility) dex.DexAnnotationVisitor {
	return nil
}
func (c *countClassVisitor) VisitField(accessFlags dex.AccessFlags, field dex.Field, constant *dex.Value) dex.DexFieldVisitor {
	c.parent.fields++
	return nil
}
func (c *countClassVisitor) VisitMethod(accessFlags dex.AccessFlags, method dex.Method) dex.DexMethodVisitor {
	c.parent.methods++
	return &countMethodVisitor{parent: c.parent}
}
func (c *countClassVisitor) VisitEnd() {}

type countMethodVisitor struct {
	parent *countVisitor
}

func (m *countMethodVisitor) VisitAnnotation(annotationType string, visibility dex.Visibility) dex.DexAnnotationVisitor {
	return nil
}
func (m *countMethodVisitor) VisitParameterAnnotation(index int) dex.DexAnnotationVisitor { return nil }
func (m *countMethodVisitor) VisitCode() dex.DexCodeVisitor {
	m.parent.withCode++
	return nil
}
func (m *countMethodVisitor) VisitEnd() {}
