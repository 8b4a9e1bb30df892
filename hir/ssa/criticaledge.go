package ssa

import (
	"github.com/eval1749/elang-sub001/hir"
	"github.com/eval1749/elang-sub001/hir/cfg"
)

// SplitCriticalEdges eliminates every critical edge in ed's function:
// an edge P→S is critical when P has >= 2 successors and either S has
// a phi or the edge is a back edge in RPO. Each such edge is split by
// a synthetic straight-line block inserted immediately after P.
func SplitCriticalEdges(ed *hir.Editor) {
	fn := ed.Function()
	rpo := cfg.ReversePostOrder(GraphOf(fn))
	rpoPos := make(map[*hir.BasicBlock]int, len(rpo))
	for i, b := range rpo {
		rpoPos[b] = i
	}

	for _, p := range rpo {
		succs := p.Successors()
		if len(succs) < 2 {
			continue
		}
		for _, s := range succs {
			if isCriticalEdge(p, s, rpoPos) {
				splitEdge(ed, p, s)
			}
		}
	}
}

func isCriticalEdge(p, s *hir.BasicBlock, rpoPos map[*hir.BasicBlock]int) bool {
	if len(s.Phis()) > 0 {
		return true
	}
	return rpoPos[s] <= rpoPos[p] // back edge: target at or before source in RPO
}

// splitEdge inserts a new block immediately after p that jumps straight
// to s, retargets p's terminator from s to the new block, and
// re-keys s's phi inputs from p to the new block.
func splitEdge(ed *hir.Editor, p, s *hir.BasicBlock) {
	ref := ed.Function().Blocks().Next(p)
	n := ed.NewBasicBlockBefore(ref)
	ed.SetJump(s)
	ed.Commit()

	ed.Edit(p)
	rewriteTerminatorTarget(ed, p, s, n)
	ed.Commit()

	ed.ReplacePhiInputs(s, p, n)
}

func rewriteTerminatorTarget(ed *hir.Editor, p, oldTarget, newTarget *hir.BasicBlock) {
	term := p.LastInstruction()
	for idx := 0; idx < term.OperandCount(); idx++ {
		if bb, ok := term.Operand(idx).(*hir.BasicBlock); ok && bb == oldTarget {
			ed.SetInput(term, idx, newTarget)
		}
	}
}
