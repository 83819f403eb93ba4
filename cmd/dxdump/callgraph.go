package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zboralski/lattice/render"

	"dxread/internal/callgraph"
	"dxread/internal/cfgutil"
	"dxread/internal/dex"
)

var callgraphCmd = &cobra.Command{
	Use:   "callgraph <path>",
	Short: "Render the whole-file method call graph as Graphviz DOT",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fv := &callgraphFileVisitor{}
		if err := dex.Open(args[0], fv, buildConfig()); err != nil {
			return fmt.Errorf("pipe: %w", err)
		}
		g := callgraph.Build(fv.funcs)
		fmt.Println(render.DOT(g, "callgraph"))
		return nil
	},
}

type callgraphFileVisitor struct {
	funcs []callgraph.FuncInfo
}

func (f *callgraphFileVisitor) Visit(accessFlags dex.AccessFlags, class, super string, interfaces []string) dex.DexClassVisitor {
	return &callgraphClassVisitor{parent: f, class: class}
}
func (f *callgraphFileVisitor) VisitEnd() {}

type callgraphClassVisitor struct {
	parent *callgraphFileVisitor
	class  string
}

func (c *callgraphClassVisitor) VisitSource(sourceFile string) {}
func (c *callgraphClassVisitor) VisitAnnotation(annotationType string, visibility dex.Visibility) dex.DexAnnotationVisitor {
	return nil
}
func (c *callgraphClassVisitor) VisitField(accessFlags dex.AccessFlags, field dex.Field, constant *dex.Value) dex.DexFieldVisitor {
	return nil
}
func (c *callgraphClassVisitor) VisitMethod(accessFlags dex.AccessFlags, method dex.Method) dex.DexMethodVisitor {
	return &callgraphMethodVisitor{parent: c.parent, name: method.String()}
}
func (c *callgraphClassVisitor) VisitEnd() {}

type callgraphMethodVisitor struct {
	parent *callgraphFileVisitor
	name   string
	rec    *cfgutil.Recorder
}

func (m *callgraphMethodVisitor) VisitAnnotation(annotationType string, visibility dex.Visibility) dex.DexAnnotationVisitor {
	return nil
}
func (m *callgraphMethodVisitor) VisitParameterAnnotation(index int) dex.DexAnnotationVisitor {
	return nil
}
func (m *callgraphMethodVisitor) VisitCode() dex.DexCodeVisitor {
	m.rec = &cfgutil.Recorder{}
	return m.rec
}
func (m *callgraphMethodVisitor) VisitEnd() {
	var callees []string
	if m.rec != nil {
		callees = m.rec.Callees()
	}
	m.parent.funcs = append(m.parent.funcs, callgraph.FuncInfo{Name: m.name, Callees: callees})
}
