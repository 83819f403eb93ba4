// Package callgraph builds a whole-file call graph across every method
// body a dex.Reader visits, as opposed to internal/cfgutil which only
// ever looks at one method at a time.
package callgraph

import "github.com/zboralski/lattice"

// FuncInfo is one method's name plus the callee names its body invokes,
// already resolved to the "Lowner;->name(params)return" form.
type FuncInfo struct {
	Name    string
	Callees []string
}

// Build constructs a lattice.Graph with one node per method and one edge
// per distinct callee it invokes. Methods that call nothing still get a
// node so isolated leaves show up in the rendered graph.
func Build(funcs []FuncInfo) *lattice.Graph {
	g := &lattice.Graph{}
	for _, f := range funcs {
		g.Nodes = append(g.Nodes, f.Name)
		for _, callee := range f.Callees {
			if callee == "" {
				continue
			}
			g.Edges = append(g.Edges, lattice.Edge{
				Caller: f.Name,
				Callee: callee,
			})
		}
	}
	g.Dedup()
	return g
}
