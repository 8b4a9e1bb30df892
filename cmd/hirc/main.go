// Command hirc is a driver shim, not a production compiler driver: it
// builds one of a handful of hand-wired HIR fixtures (there is no
// textual-HIR parser), runs the full varusage -> SSA -> critical-edge
// pipeline over it, and prints the result.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/eval1749/elang-sub001/hir"
	"github.com/eval1749/elang-sub001/hir/ssa"
	"github.com/eval1749/elang-sub001/hir/varusage"
)

type fixture func(*hir.TypeFactory) (*hir.Function, *hir.Editor, []*hir.Instruction)

var fixtures = map[string]fixture{
	"e1": buildE1, // empty function
	"e2": buildE2, // straight-line SSA
	"e3": buildE3, // diamond merge
}

func main() {
	name := flag.String("fixture", "e3", "demo fixture to build and run (e1, e2, e3)")
	skipSSA := flag.Bool("skip-ssa", false, "print the pre-SSA function instead of converting it")
	verbose := flag.Bool("v", false, "log each pipeline stage to stderr")
	flag.Parse()

	logger := log.New(os.Stderr, "hirc: ", 0)

	build, ok := fixtures[*name]
	if !ok {
		logger.Fatalf("unknown fixture %q (want one of e1, e2, e3)", *name)
	}

	types := hir.NewTypeFactory()
	fn, ed, homes := build(types)
	if *verbose {
		logger.Printf("built fixture %q: %d home(s)", *name, len(homes))
	}

	if !*skipSSA && len(homes) > 0 {
		vu := varusage.Analyze(fn, homes)
		if *verbose {
			logger.Printf("varusage: %d local home(s) of %d total", len(vu.Locals), len(homes))
		}
		ssa.ConvertToSSA(types, ed, vu)
		ssa.SplitCriticalEdges(ed)
		if *verbose {
			logger.Printf("converted to SSA and split critical edges")
		}
	}

	if diags := hir.ValidateFunction(fn); len(diags) > 0 {
		for _, d := range diags {
			logger.Printf("diagnostic: %s", d.String())
		}
	}

	fmt.Print(hir.FormatFunction(fn))
}

// dropPlaceholderReturn removes the synthetic `return <default>` that
// Editor.NewEditor installs on an empty function's entry block, so the
// fixture builders below can Append real instructions before the
// block's actual terminator: a block's terminator must be its last
// instruction.
func dropPlaceholderReturn(ed *hir.Editor, b *hir.BasicBlock) {
	if last := b.LastInstruction(); last != nil && last.IsTerminator() {
		ed.RemoveInstruction(last)
	}
}

// buildE1 builds `f : void -> void` with an empty body: the Editor's
// own initialization already yields exactly this shape.
func buildE1(types *hir.TypeFactory) (*hir.Function, *hir.Editor, []*hir.Instruction) {
	voidTy := types.VoidType()
	fn := hir.NewFunction(types.FunctionType(voidTy, voidTy))
	ed := hir.NewEditor(types, fn)
	return fn, ed, nil
}

// buildE2 builds a single-home straight-line pre-SSA shape: home h is
// stored/loaded/called through three times, ending in `return t3`.
func buildE2(types *hir.TypeFactory) (*hir.Function, *hir.Editor, []*hir.Instruction) {
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

	return fn, ed, []*hir.Instruction{h}
}

// buildE3 builds a diamond pre-SSA shape: entry branches to B1/B2,
// each storing to h, both jumping to a merge block that loads h and
// returns it.
func buildE3(types *hir.TypeFactory) (*hir.Function, *hir.Editor, []*hir.Instruction) {
	voidTy := types.VoidType()
	i32 := types.PrimitiveType(hir.KindInt32)
	fn := hir.NewFunction(types.FunctionType(i32, voidTy))
	ed := hir.NewEditor(types, fn)

	ptrI32 := types.PointerType(i32)
	stackalloc := hir.NewReference(types.FunctionType(ptrI32, voidTy), "stackalloc")

	// b1/b2/merge are allocated (and committed empty) before entry's
	// terminator is rebuilt: a block may never sit on the edit stack
	// without a terminator across a Commit, so entry's home call and
	// its real branch must land in the same Edit/Commit pass below.
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

	return fn, ed, []*hir.Instruction{h}
}
