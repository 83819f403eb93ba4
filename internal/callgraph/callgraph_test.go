package callgraph

import "testing"

func TestBuild_NodesAndEdges(t *testing.T) {
	g := Build([]FuncInfo{
		{Name: "Lfoo;->a()V", Callees: []string{"Lfoo;->b()V", ""}},
		{Name: "Lfoo;->b()V", Callees: nil},
	})
	if len(g.Nodes) != 2 {
		t.Fatalf("Nodes = %v, want 2", g.Nodes)
	}
	if len(g.Edges) != 1 || g.Edges[0].Caller != "Lfoo;->a()V" || g.Edges[0].Callee != "Lfoo;->b()V" {
		t.Errorf("Edges = %v, want a single a->b edge", g.Edges)
	}
}

func TestBuild_DedupsRepeatedEdges(t *testing.T) {
	g := Build([]FuncInfo{
		{Name: "Lfoo;->a()V", Callees: []string{"Lfoo;->b()V", "Lfoo;->b()V"}},
	})
	if len(g.Edges) != 1 {
		t.Errorf("Edges = %v, want the duplicate call collapsed to one edge", g.Edges)
	}
}
