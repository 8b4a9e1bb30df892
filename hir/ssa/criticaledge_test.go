package ssa

import (
	"testing"

	"github.com/eval1749/elang-sub001/hir"
	"github.com/eval1749/elang-sub001/hir/varusage"
)

// TestCriticalEdgePhiSplit exercises the "S has a phi" critical-edge
// condition: h1 has two successors (Body, Merge), Merge gains a phi
// during SSA conversion, so the forward edge h1->Merge must be split
// even though it is not a back edge.
func TestCriticalEdgePhiSplit(t *testing.T) {
	types := hir.NewTypeFactory()
	voidTy := types.VoidType()
	i32 := types.PrimitiveType(hir.KindInt32)
	fn := hir.NewFunction(types.FunctionType(i32, voidTy))
	ed := hir.NewEditor(types, fn)

	ptrI32 := types.PointerType(i32)
	stackalloc := hir.NewReference(types.FunctionType(ptrI32, voidTy), "stackalloc")

	body := ed.NewBasicBlockBefore(ed.ExitBlock())
	ed.Commit()
	h1 := ed.NewBasicBlockBefore(ed.ExitBlock())
	ed.Commit()
	merge := ed.NewBasicBlockBefore(ed.ExitBlock())
	ed.Commit()

	entry := ed.EntryBlock()
	ed.Edit(entry)
	dropPlaceholderReturn(ed, entry)
	h := ed.NewHomeCall(stackalloc, types.DefaultValue(voidTy))
	ed.NewStore(h, types.IntLiteral(i32, 0))
	ed.SetJump(h1)
	ed.Commit()

	ed.Edit(h1)
	ed.SetBranch(types.BoolLiteral(true), body, merge)
	ed.Commit()

	ed.Edit(body)
	ed.NewStore(h, types.IntLiteral(i32, 20))
	ed.SetJump(merge)
	ed.Commit()

	ed.Edit(merge)
	loaded := ed.NewLoad(h)
	ed.SetReturn(loaded)
	ed.Commit()

	vu := varusage.Analyze(fn, []*hir.Instruction{h})
	ConvertToSSA(types, ed, vu)

	if len(merge.Phis()) != 1 {
		t.Fatalf("merge should carry exactly 1 phi before edge splitting, got %d", len(merge.Phis()))
	}
	phi := merge.Phis()[0]

	SplitCriticalEdges(ed)

	if p := phi.InputFor(h1); p != nil {
		t.Errorf("phi should no longer have an input keyed by h1 directly, got %v", p.Value())
	}

	h1Succs := h1.Successors()
	if len(h1Succs) != 2 {
		t.Fatalf("h1 should still have 2 successors after splitting, got %d", len(h1Succs))
	}
	var synthetic *hir.BasicBlock
	for _, s := range h1Succs {
		if s != body {
			synthetic = s
		}
	}
	if synthetic == nil {
		t.Fatalf("could not find h1's synthetic successor")
	}
	if synthetic == merge {
		t.Fatalf("h1->merge edge should have been split through a new block, not left direct")
	}
	succs := synthetic.Successors()
	if len(succs) != 1 || succs[0] != merge {
		t.Fatalf("synthetic block should jump straight to merge, got %v", succs)
	}
	if p := phi.InputFor(synthetic); p == nil {
		t.Errorf("phi should now have an input keyed by the synthetic block")
	}
}

// TestSplitCriticalEdgesBackEdge exercises the "back edge in RPO"
// critical-edge condition on a while-with-break loop: body has two
// successors (continue back to the header, break forward to a merge
// block), and the continue edge is a back edge even though the header
// never gains a phi in this fixture.
func TestSplitCriticalEdgesBackEdge(t *testing.T) {
	types := hir.NewTypeFactory()
	voidTy := types.VoidType()
	fn := hir.NewFunction(types.FunctionType(voidTy, voidTy))
	ed := hir.NewEditor(types, fn)

	header := ed.NewBasicBlockBefore(ed.ExitBlock())
	ed.Commit()
	body := ed.NewBasicBlockBefore(ed.ExitBlock())
	ed.Commit()
	brk := ed.NewBasicBlockBefore(ed.ExitBlock())
	ed.Commit()
	merge := ed.NewBasicBlockBefore(ed.ExitBlock())
	ed.Commit()

	entry := ed.EntryBlock()
	ed.Edit(entry)
	dropPlaceholderReturn(ed, entry)
	ed.SetJump(header)
	ed.Commit()

	ed.Edit(header)
	ed.SetBranch(types.BoolLiteral(true), body, merge)
	ed.Commit()

	ed.Edit(body)
	ed.SetBranch(types.BoolLiteral(false), header, brk)
	ed.Commit()

	ed.Edit(brk)
	ed.SetJump(merge)
	ed.Commit()

	ed.Edit(merge)
	ed.SetReturn(types.DefaultValue(voidTy))
	ed.Commit()

	SplitCriticalEdges(ed)

	bodySuccs := body.Successors()
	if len(bodySuccs) != 2 {
		t.Fatalf("body should still have 2 successors, got %d", len(bodySuccs))
	}
	var synthetic *hir.BasicBlock
	for _, s := range bodySuccs {
		if s != brk {
			synthetic = s
		}
	}
	if synthetic == nil {
		t.Fatalf("could not find body's synthetic back-edge successor")
	}
	if synthetic == header {
		t.Fatalf("body->header back edge should have been split through a new block")
	}
	succs := synthetic.Successors()
	if len(succs) != 1 || succs[0] != header {
		t.Fatalf("synthetic block should jump straight to header, got %v", succs)
	}

	headerSuccs := header.Successors()
	if len(headerSuccs) != 2 || headerSuccs[0] != body || headerSuccs[1] != merge {
		t.Errorf("header's forward edges should remain unsplit, got %v", headerSuccs)
	}
}
