package ssa

import (
	"testing"

	"github.com/eval1749/elang-sub001/hir"
	"github.com/eval1749/elang-sub001/hir/varusage"
)

func dropPlaceholderReturn(ed *hir.Editor, b *hir.BasicBlock) {
	if last := b.LastInstruction(); last != nil && last.IsTerminator() {
		ed.RemoveInstruction(last)
	}
}

// TestConvertToSSAStraightLine exercises the straight-line case: a
// single, single-block home is fully promoted (no phi needed) and the
// store sequence collapses into a straight chain of calls feeding on
// one another's results, ending in a bare `ret`.
func TestConvertToSSAStraightLine(t *testing.T) {
	types := hir.NewTypeFactory()
	voidTy := types.VoidType()
	i32 := types.PrimitiveType(hir.KindInt32)
	fn := hir.NewFunction(types.FunctionType(i32, voidTy))
	ed := hir.NewEditor(types, fn)

	ptrI32 := types.PointerType(i32)
	stackalloc := hir.NewReference(types.FunctionType(ptrI32, voidTy), "stackalloc")
	unary := types.FunctionType(i32, i32)
	bar := hir.NewReference(unary, "Bar")
	baz := hir.NewReference(unary, "Baz")

	entry := ed.EntryBlock()
	ed.Edit(entry)
	dropPlaceholderReturn(ed, entry)
	h := ed.NewHomeCall(stackalloc, types.DefaultValue(voidTy))
	ed.NewStore(h, types.IntLiteral(i32, 1))
	t1 := ed.NewLoad(h)
	r := ed.NewCall(bar, t1)
	ed.NewStore(h, r)
	t2 := ed.NewLoad(h)
	r2 := ed.NewCall(baz, t2)
	ed.NewStore(h, r2)
	t3 := ed.NewLoad(h)
	ed.SetReturn(t3)
	ed.Commit()

	vu := varusage.Analyze(fn, []*hir.Instruction{h})
	if len(vu.Locals) != 1 || !vu.Locals[0].IsLocal() {
		t.Fatalf("expected h classified SingleBlock/local, got %+v", vu.Locals)
	}

	ConvertToSSA(types, ed, vu)

	if entry.Phis() != nil {
		t.Errorf("straight-line entry should have no phis, got %v", entry.Phis())
	}

	var calls []*hir.Instruction
	var ret *hir.Instruction
	entry.Instructions().Each(func(instr *hir.Instruction) {
		switch instr.Opcode() {
		case hir.OpCall:
			calls = append(calls, instr)
		case hir.OpLoad, hir.OpStore:
			t.Errorf("load/store should have been eliminated, found %v", instr.Opcode())
		case hir.OpReturn:
			ret = instr
		}
	})
	if len(calls) != 2 {
		t.Fatalf("want 2 surviving calls (Bar, Baz), got %d", len(calls))
	}
	if calls[0].Operand(1) != types.IntLiteral(i32, 1) {
		t.Errorf("Bar's argument should be the literal 1, got %v", calls[0].Operand(1))
	}
	if calls[1].Operand(1) != hir.Value(calls[0]) {
		t.Errorf("Baz's argument should be Bar's result, got %v", calls[1].Operand(1))
	}
	if ret == nil {
		t.Fatalf("entry has no return instruction")
	}
	if ret.Operand(0) != hir.Value(calls[1]) {
		t.Errorf("return operand should be Baz's result, got %v", ret.Operand(0))
	}

	if h.BasicBlock() != nil {
		t.Errorf("home instruction h should be detached after Phase C cleanup")
	}
}

// buildDiamond constructs a diamond's pre-SSA shape: entry branches to
// b1/b2, each storing a distinct literal into h, both jumping to
// merge, which loads h and returns it.
func buildDiamond(types *hir.TypeFactory) (*hir.Function, *hir.Editor, *hir.Instruction) {
	voidTy := types.VoidType()
	i32 := types.PrimitiveType(hir.KindInt32)
	fn := hir.NewFunction(types.FunctionType(i32, voidTy))
	ed := hir.NewEditor(types, fn)

	ptrI32 := types.PointerType(i32)
	stackalloc := hir.NewReference(types.FunctionType(ptrI32, voidTy), "stackalloc")

	b1 := ed.NewBasicBlockBefore(ed.ExitBlock())
	ed.Commit()
	b2 := ed.NewBasicBlockBefore(ed.ExitBlock())
	ed.Commit()
	merge := ed.NewBasicBlockBefore(ed.ExitBlock())
	ed.Commit()

	entry := ed.EntryBlock()
	ed.Edit(entry)
	dropPlaceholderReturn(ed, entry)
	h := ed.NewHomeCall(stackalloc, types.DefaultValue(voidTy))
	ed.SetBranch(types.BoolLiteral(true), b1, b2)
	ed.Commit()

	ed.Edit(b1)
	ed.NewStore(h, types.IntLiteral(i32, 10))
	ed.SetJump(merge)
	ed.Commit()

	ed.Edit(b2)
	ed.NewStore(h, types.IntLiteral(i32, 20))
	ed.SetJump(merge)
	ed.Commit()

	ed.Edit(merge)
	loaded := ed.NewLoad(h)
	ed.SetReturn(loaded)
	ed.Commit()

	return fn, ed, h
}

// TestConvertToSSADiamondProducesPhi checks that a diamond merge block
// gets exactly one phi with inputs 10 (from b1) and 20 (from b2), and
// that the return operand becomes that phi.
func TestConvertToSSADiamondProducesPhi(t *testing.T) {
	types := hir.NewTypeFactory()
	fn, ed, h := buildDiamond(types)
	i32 := types.PrimitiveType(hir.KindInt32)

	vu := varusage.Analyze(fn, []*hir.Instruction{h})
	d := vu.ByHome[h]
	if d.Usage != varusage.MultiBlock {
		t.Fatalf("h should classify MultiBlock (written from b1 and b2), got %v", d.Usage)
	}

	ConvertToSSA(types, ed, vu)

	var merge *hir.BasicBlock
	fn.Blocks().Each(func(b *hir.BasicBlock) {
		if len(b.Phis()) > 0 {
			merge = b
		}
	})
	if merge == nil {
		t.Fatalf("expected exactly one block with a phi")
	}
	phis := merge.Phis()
	if len(phis) != 1 {
		t.Fatalf("expected exactly 1 phi at merge, got %d", len(phis))
	}
	phi := phis[0]

	want := map[int]hir.Value{}
	phi.Inputs().Each(func(p *hir.PhiInput) {
		want[p.Block().ID()] = p.Value()
	})
	if len(want) != 2 {
		t.Fatalf("phi should have exactly 2 inputs, got %d", len(want))
	}
	var got10, got20 bool
	for _, v := range want {
		if v == hir.Value(types.IntLiteral(i32, 10)) {
			got10 = true
		}
		if v == hir.Value(types.IntLiteral(i32, 20)) {
			got20 = true
		}
	}
	if !got10 || !got20 {
		t.Errorf("phi inputs = %v, want one 10 and one 20", want)
	}

	ret := merge.LastInstruction()
	if ret.Opcode() != hir.OpReturn {
		t.Fatalf("merge's last instruction is %v, want OpReturn", ret.Opcode())
	}
	if ret.Operand(0) != hir.Value(phi) {
		t.Errorf("return operand should be the phi, got %v", ret.Operand(0))
	}
}

