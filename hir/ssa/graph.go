// Package ssa implements CFG→SSA conversion and the critical-edge
// pass: phi placement on iterated dominance frontiers, renaming via a
// stack-per-variable dominator-tree DFS, home/load/store cleanup, and
// synthetic-block edge splitting.
package ssa

import (
	"github.com/eval1749/elang-sub001/hir"
	"github.com/eval1749/elang-sub001/hir/cfg"
)

// GraphOf adapts fn to the cfg.Graph interface hir/domtree and
// hir/cfg's traversal helpers expect.
func GraphOf(fn *hir.Function) cfg.Graph[*hir.BasicBlock] {
	return cfg.FuncGraph[*hir.BasicBlock]{
		EntryFn:                     fn.EntryBlock,
		PredecessorsFn:              (*hir.BasicBlock).Predecessors,
		SuccessorsFn:                (*hir.BasicBlock).Successors,
		HasMoreThanOnePredecessorFn: (*hir.BasicBlock).HasMoreThanOnePredecessor,
	}
}
