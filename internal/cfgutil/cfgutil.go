package cfgutil

import (
	"sort"

	"github.com/zboralski/lattice"
	"github.com/zboralski/lattice/render"

	"dxread/internal/dex"
)

// BuildFuncCFG partitions a recorded method body into basic blocks the
// usual way: a new block starts at instruction 0, at every jump/switch
// target, and at whatever instruction immediately follows a branch,
// switch or non-fallthrough instruction. This mirrors the leader-based approach
// the disassembler CFG builder uses, just driven by decoded dex
// instructions instead of decoded machine instructions.
func (r *Recorder) BuildFuncCFG(name string) *lattice.FuncCFG {
	insns := r.insns
	if len(insns) == 0 {
		return &lattice.FuncCFG{Name: name}
	}

	indexOf := make(map[dex.Label]int, len(insns))
	for i, ins := range insns {
		indexOf[ins.addr] = i
	}

	leaders := map[int]bool{0: true}
	for i, ins := range insns {
		for _, t := range ins.targets {
			if idx, ok := indexOf[t]; ok {
				leaders[idx] = true
			}
		}
		if (ins.terminal || len(ins.targets) > 0) && i+1 < len(insns) {
			leaders[i+1] = true
		}
	}

	var starts []int
	for idx := range leaders {
		starts = append(starts, idx)
	}
	sort.Ints(starts)

	blockOf := make([]int, len(insns))
	for bi, start := range starts {
		end := len(insns)
		if bi+1 < len(starts) {
			end = starts[bi+1]
		}
		for i := start; i < end; i++ {
			blockOf[i] = bi
		}
	}

	cfg := &lattice.FuncCFG{Name: name}
	for bi, start := range starts {
		end := len(insns)
		if bi+1 < len(starts) {
			end = starts[bi+1]
		}
		block := &lattice.BasicBlock{ID: bi, Start: start, End: end}

		last := insns[end-1]
		block.Term = last.terminal && len(last.targets) == 0

		succSeen := make(map[int]bool)
		addSucc := func(target int, cond string) {
			if succSeen[target] {
				return
			}
			succSeen[target] = true
			block.Succs = append(block.Succs, lattice.Successor{BlockID: target, Cond: cond})
		}
		for _, t := range last.targets {
			if idx, ok := indexOf[t]; ok {
				cond := ""
				if len(last.targets) == 1 && !isUnconditional(last.op) {
					cond = "true"
				}
				addSucc(blockOf[idx], cond)
			}
		}
		if !last.terminal && end < len(insns) {
			cond := ""
			if len(last.targets) > 0 {
				cond = "false"
			}
			addSucc(blockOf[end], cond)
		}

		for i := start; i < end; i++ {
			if insns[i].callee != "" {
				block.Calls = append(block.Calls, lattice.CallSite{Offset: i, Callee: insns[i].callee})
			}
		}
		cfg.Blocks = append(cfg.Blocks, block)
	}
	return cfg
}

func isUnconditional(op dex.Op) bool {
	switch op.Name {
	case "goto", "goto/16", "goto/32":
		return true
	default:
		return false
	}
}

// RenderDOT builds a CFGGraph out of one recorded method and renders it
// as Graphviz DOT, for ad hoc inspection while debugging a decoding
// issue — not part of any decoding path.
func RenderDOT(name string, r *Recorder, title string) string {
	cfg := &lattice.CFGGraph{Funcs: []*lattice.FuncCFG{r.BuildFuncCFG(name)}}
	return render.DOTCFG(cfg, title)
}

