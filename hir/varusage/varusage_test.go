package varusage

import (
	"testing"

	"github.com/eval1749/elang-sub001/hir"
)

func buildFunctionWithHome(t *testing.T) (*hir.Function, *hir.Editor, *hir.Instruction, *hir.Type) {
	t.Helper()
	types := hir.NewTypeFactory()
	voidTy := types.VoidType()
	i32 := types.PrimitiveType(hir.KindInt32)
	fn := hir.NewFunction(types.FunctionType(i32, voidTy))
	ed := hir.NewEditor(types, fn)

	ptrI32 := types.PointerType(i32)
	stackalloc := hir.NewReference(types.FunctionType(ptrI32, voidTy), "stackalloc")

	entry := ed.EntryBlock()
	ed.Edit(entry)
	if last := entry.LastInstruction(); last != nil && last.IsTerminator() {
		ed.RemoveInstruction(last)
	}
	h := ed.NewHomeCall(stackalloc, types.DefaultValue(voidTy))
	ed.NewStore(h, types.IntLiteral(i32, 1))
	loaded := ed.NewLoad(h)
	ed.SetReturn(loaded)
	ed.Commit()

	return fn, ed, h, i32
}

// TestSingleBlockHome checks that a home only ever touched from its own
// block classifies as SingleBlock and is excluded from phi placement.
func TestSingleBlockHome(t *testing.T) {
	fn, _, h, _ := buildFunctionWithHome(t)
	r := Analyze(fn, []*hir.Instruction{h})

	d := r.ByHome[h]
	if d.Usage != SingleBlock {
		t.Fatalf("Usage = %v, want SingleBlock", d.Usage)
	}
	if !d.IsLocal() {
		t.Fatalf("IsLocal() = false, want true")
	}
	if len(r.Locals) != 1 || r.Locals[0] != d {
		t.Fatalf("Locals = %v, want [%v]", r.Locals, d)
	}
}

// TestMultiBlockHome checks that a home stored/loaded from more than
// one block is promoted to MultiBlock but still appears in Locals
// (Phase A's SingleBlock skip is a phi-placement optimization, not a
// promotion-eligibility filter).
func TestMultiBlockHome(t *testing.T) {
	types := hir.NewTypeFactory()
	voidTy := types.VoidType()
	i32 := types.PrimitiveType(hir.KindInt32)
	fn := hir.NewFunction(types.FunctionType(i32, voidTy))
	ed := hir.NewEditor(types, fn)

	ptrI32 := types.PointerType(i32)
	stackalloc := hir.NewReference(types.FunctionType(ptrI32, voidTy), "stackalloc")

	entry := ed.EntryBlock()
	ed.Edit(entry)
	if last := entry.LastInstruction(); last != nil && last.IsTerminator() {
		ed.RemoveInstruction(last)
	}
	h := ed.NewHomeCall(stackalloc, types.DefaultValue(voidTy))
	ed.Commit()

	b1 := ed.NewBasicBlockBefore(ed.ExitBlock())
	ed.NewStore(h, types.IntLiteral(i32, 7))
	loaded := ed.NewLoad(h)
	ed.SetReturn(loaded)
	ed.Commit()

	ed.Edit(entry)
	ed.SetJump(b1)
	ed.Commit()

	r := Analyze(fn, []*hir.Instruction{h})
	d := r.ByHome[h]
	if d.Usage != MultiBlock {
		t.Fatalf("Usage = %v, want MultiBlock", d.Usage)
	}
	if d.IsLocal() {
		t.Fatalf("IsLocal() = true, want false for a MultiBlock home")
	}
	if len(r.Locals) != 1 {
		t.Fatalf("Locals = %v, want the MultiBlock home still included", r.Locals)
	}
	if !r.NonLocalWrites[h] {
		t.Errorf("expected h to be recorded in NonLocalWrites once written from b1")
	}
}
