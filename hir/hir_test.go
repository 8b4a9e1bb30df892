package hir

import "testing"

// TestTypeInterning checks that structurally equal constructor calls
// return the identical *Type (pointer equality).
func TestTypeInterning(t *testing.T) {
	f := NewTypeFactory()
	i32a := f.PrimitiveType(KindInt32)
	i32b := f.PrimitiveType(KindInt32)
	if i32a != i32b {
		t.Fatalf("PrimitiveType(KindInt32) not interned: %p != %p", i32a, i32b)
	}

	p1 := f.PointerType(i32a)
	p2 := f.PointerType(i32b)
	if p1 != p2 {
		t.Fatalf("PointerType not interned")
	}

	arr1 := f.ArrayType(i32a, []int{4, -1})
	arr2 := f.ArrayType(i32a, []int{4, -1})
	if arr1 != arr2 {
		t.Fatalf("ArrayType not interned")
	}
	if arr1 == f.ArrayType(i32a, []int{4}) {
		t.Fatalf("ArrayType with different dims incorrectly interned together")
	}

	tup1 := f.TupleType([]*Type{i32a, f.BoolType()})
	tup2 := f.TupleType([]*Type{i32a, f.BoolType()})
	if tup1 != tup2 {
		t.Fatalf("TupleType not interned")
	}

	fn1 := f.FunctionType(i32a, f.VoidType())
	fn2 := f.FunctionType(i32a, f.VoidType())
	if fn1 != fn2 {
		t.Fatalf("FunctionType not interned")
	}

	ext1 := f.ExternalType("Widget")
	ext2 := f.ExternalType("Widget")
	if ext1 != ext2 {
		t.Fatalf("ExternalType not interned")
	}

	if got := p1.String(); got != "*int32" {
		t.Errorf("PointerType.String() = %q, want %q", got, "*int32")
	}
	if got := arr1.String(); got != "int32[4][]" {
		t.Errorf("ArrayType.String() = %q, want %q", got, "int32[4][]")
	}
	if got := fn1.String(); got != "int32(void)" {
		t.Errorf("FunctionType.String() = %q, want %q", got, "int32(void)")
	}
}

// TestLiteralInterning checks that literal constructors cache by value,
// and that default values are stable per type.
func TestLiteralInterning(t *testing.T) {
	f := NewTypeFactory()
	i32 := f.PrimitiveType(KindInt32)

	a := f.IntLiteral(i32, 42)
	b := f.IntLiteral(i32, 42)
	if a != b {
		t.Fatalf("IntLiteral(42) not interned")
	}
	if c := f.IntLiteral(i32, 43); c == a {
		t.Fatalf("IntLiteral(43) incorrectly aliases IntLiteral(42)")
	}

	d1 := f.DefaultValue(i32)
	d2 := f.DefaultValue(i32)
	if d1 != d2 {
		t.Fatalf("DefaultValue not stable across calls")
	}
	if lit, ok := d1.(*IntLit); !ok || lit.Value != 0 {
		t.Fatalf("DefaultValue(int32) = %#v, want IntLit{0}", d1)
	}

	ptrTy := f.PointerType(i32)
	n1 := f.DefaultValue(ptrTy)
	n2 := f.NullLiteral(ptrTy)
	if n1 != n2 {
		t.Fatalf("NullLiteral/DefaultValue disagree on pointer default")
	}
}

// TestUseDefIntegrity checks that attaching and replacing operands
// maintains the use-def invariant: every operand slot appears in
// exactly its referent's Users() list.
func TestUseDefIntegrity(t *testing.T) {
	types := NewTypeFactory()
	i32 := types.PrimitiveType(KindInt32)
	fn := NewFunction(types.FunctionType(i32, types.VoidType()))
	ed := NewEditor(types, fn)

	entry := ed.EntryBlock()
	ed.Edit(entry)
	if last := entry.LastInstruction(); last != nil && last.IsTerminator() {
		ed.RemoveInstruction(last)
	}
	one := types.IntLiteral(i32, 1)
	two := types.IntLiteral(i32, 2)
	ref := NewReference(types.FunctionType(i32, i32), "Id")
	call := ed.NewCall(ref, one)
	ed.SetReturn(call)
	ed.Commit()

	if one.Users().Len() != 1 {
		t.Fatalf("literal one has %d users, want 1", one.Users().Len())
	}
	if call.Users().Len() != 1 {
		t.Fatalf("call result has %d users, want 1 (the return)", call.Users().Len())
	}

	ed.Edit(entry)
	ed.SetInput(call, 1, two)
	ed.Commit()

	if one.Users().Len() != 0 {
		t.Fatalf("replaced operand still lists one as a user")
	}
	if two.Users().Len() != 1 {
		t.Fatalf("two has %d users after SetInput, want 1", two.Users().Len())
	}
}

// TestEditorRoundTrip checks that an empty void->void function formats
// to the expected entry/exit text.
func TestEditorRoundTrip(t *testing.T) {
	types := NewTypeFactory()
	voidTy := types.VoidType()
	fn := NewFunction(types.FunctionType(voidTy, voidTy))
	NewEditor(types, fn)

	got := FormatFunction(fn)
	want := "Function void(void)\n" +
		"block1:\n" +
		"  // In:\n" +
		"  // Out: block2\n" +
		"  entry\n" +
		"  ret void, block2\n" +
		"block2:\n" +
		"  // In: block1\n" +
		"  // Out:\n" +
		"  exit\n"
	if got != want {
		t.Fatalf("FormatFunction mismatch:\n got:\n%s\nwant:\n%s", got, want)
	}
	if diags := ValidateFunction(fn); len(diags) != 0 {
		t.Fatalf("unexpected diagnostics on a freshly initialized function: %v", diags)
	}
}

// TestE6ValidationFailure checks that corrupting a return's exit-block
// operand surfaces ValidateInstructionOperand at index 1, without
// panicking.
func TestE6ValidationFailure(t *testing.T) {
	types := NewTypeFactory()
	i32 := types.PrimitiveType(KindInt32)
	fn := NewFunction(types.FunctionType(i32, types.VoidType()))
	ed := NewEditor(types, fn)

	entry := ed.EntryBlock()
	notExit := ed.NewBasicBlockBefore(ed.ExitBlock())
	ed.SetJump(ed.ExitBlock())
	ed.Commit()

	ed.Edit(entry)
	ret := entry.LastInstruction()
	ed.SetInput(ret, 1, notExit)
	ed.Commit()

	diags := ValidateFunction(fn)
	found := false
	for _, d := range diags {
		if d.Code != ValidateInstructionOperand {
			continue
		}
		if detail, ok := d.Detail[0].(*intDetail); ok && detail.N == 1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a ValidateInstructionOperand diagnostic at index 1, got %v", diags)
	}
}
