package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dxread/internal/cfgutil"
	"dxread/internal/dex"
)

var cfgCmd = &cobra.Command{
	Use:   "cfg <path> <class> <method>",
	Short: "Render one method's control-flow graph as Graphviz DOT",
	Long: `cfg finds the first method named <method> on the class named
<class> (both exact, e.g. class "Lcom/example/Foo;" method "bar") and
prints its control-flow graph as Graphviz DOT to stdout.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, class, method := args[0], args[1], args[2]
		fv := &cfgFileVisitor{wantClass: class, wantMethod: method}
		if err := dex.Open(path, fv, buildConfig()); err != nil {
			return fmt.Errorf("pipe: %w", err)
		}
		if fv.rec == nil {
			return fmt.Errorf("method %s->%s not found (or has no code)", class, method)
		}
		fmt.Println(cfgutil.RenderDOT(method, fv.rec, method))
		return nil
	},
}

type cfgFileVisitor struct {
	wantClass, wantMethod string
	rec                   *cfgutil.Recorder
}

func (f *cfgFileVisitor) Visit(accessFlags dex.AccessFlags, class, super string, interfaces []string) dex.DexClassVisitor {
	if f.rec != nil || class != f.wantClass {
		return nil
	}
	return &cfgClassVisitor{parent: f}
}
func (f *cfgFileVisitor) VisitEnd() {}

type cfgClassVisitor struct {
	parent *cfgFileVisitor
}

func (c *cfgClassVisitor) VisitSource(sourceFile string) {}
func (c *cfgClassVisitor) VisitAnnotation(annotationType string, visibility dex.Visibility) dex.DexAnnotationVisitor {
	return nil
}
func (c *cfgClassVisitor) VisitField(accessFlags dex.AccessFlags, field dex.Field, constant *dex.Value) dex.DexFieldVisitor {
	return nil
}
func (c *cfgClassVisitor) VisitMethod(accessFlags dex.AccessFlags, method dex.Method) dex.DexMethodVisitor {
	if c.parent.rec != nil || method.Name != c.parent.wantMethod {
		return nil
	}
	return &cfgMethodVisitor{parent: c.parent}
}
func (c *cfgClassVisitor) VisitEnd() {}

type cfgMethodVisitor struct {
	parent *cfgFileVisitor
}

func (m *cfgMethodVisitor) VisitAnnotation(annotationType string, visibility dex.Visibility) dex.DexAnnotationVisitor {
	return nil
}
func (m *cfgMethodVisitor) VisitParameterAnnotation(index int) dex.DexAnnotationVisitor { return nil }
func (m *cfgMethodVisitor) VisitCode() dex.DexCodeVisitor {
	rec := &cfgutil.Recorder{}
	m.parent.rec = rec
	return rec
}
func (m *cfgMethodVisitor) VisitEnd() {}
