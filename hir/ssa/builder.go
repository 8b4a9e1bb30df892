package ssa

import (
	"github.com/eval1749/elang-sub001/hir"
	"github.com/eval1749/elang-sub001/hir/cfg"
	"github.com/eval1749/elang-sub001/hir/domtree"
	"github.com/eval1749/elang-sub001/hir/varusage"
)

// builder holds the state threaded through all three phases of
// CFG-to-SSA conversion: phi placement, rename, cleanup. It pairs an
// editor and a dominator tree with a per-home rename-stack table.
type builder struct {
	ed      *hir.Editor
	types   *hir.TypeFactory
	domTree *domtree.Tree[*hir.BasicBlock]
	stacks  map[*hir.Instruction]*renameStack
	phiHome map[*hir.Instruction]*hir.Instruction
}

// ConvertToSSA promotes every home listed in vu.Locals to SSA form:
// phi placement on iterated dominance frontiers, rename via
// dominator-tree DFS, then removal of the now-dead home/load/store
// instructions. ed's function must already have its dominator-reachable
// shape settled (blocks/edges fixed) before conversion.
func ConvertToSSA(types *hir.TypeFactory, ed *hir.Editor, vu *varusage.Result) {
	b := &builder{
		ed:      ed,
		types:   types,
		domTree: domtree.Build(GraphOf(ed.Function())),
		stacks:  make(map[*hir.Instruction]*renameStack, len(vu.Locals)),
		phiHome: make(map[*hir.Instruction]*hir.Instruction),
	}

	// Phase A: phi placement.
	for _, d := range vu.Locals {
		b.registerVariable(d)
		if d.IsLocal() {
			continue
		}
		b.insertPhis(d)
	}

	// Phase B: rename, starting from the entry block.
	b.renameBlock(ed.EntryBlock())

	// Phase C: cleanup — the home instructions themselves are now
	// unread (every load/store referencing them was retired during
	// rename), so they can be removed.
	for _, d := range vu.Locals {
		ed.Edit(d.Home.BasicBlock())
		ed.RemoveInstruction(d.Home)
		ed.Commit()
	}

	b.verifyDominance()
}

// verifyDominance panics if rename produced a value whose use is not
// dominated by its def: for every non-phi operand referencing another
// instruction in a different block, that instruction's block must
// strictly dominate the use's block; for every phi input, the fed
// value's block must dominate (reflexively allowed) the corresponding
// predecessor block.
func (b *builder) verifyDominance() {
	b.ed.Function().Blocks().Each(func(useBlock *hir.BasicBlock) {
		useBlock.Instructions().Each(func(instr *hir.Instruction) {
			if instr.Opcode() == hir.OpPhi {
				instr.Inputs().Each(func(p *hir.PhiInput) {
					def, ok := p.Value().(*hir.Instruction)
					if !ok {
						return
					}
					defBlock := def.BasicBlock()
					if defBlock == nil || !b.domTree.Dominates(defBlock, p.Block()) {
						panic("hir/ssa: phi input not dominated by its predecessor")
					}
				})
				return
			}
			for idx := 0; idx < instr.OperandCount(); idx++ {
				def, ok := instr.Operand(idx).(*hir.Instruction)
				if !ok {
					continue
				}
				defBlock := def.BasicBlock()
				if defBlock == nil || defBlock == useBlock {
					continue
				}
				if !b.domTree.StrictlyDominates(defBlock, useBlock) {
					panic("hir/ssa: use not dominated by its def after SSA conversion")
				}
			}
		})
	})
}

func (b *builder) registerVariable(d *varusage.Data) {
	def := b.types.DefaultValue(d.Home.Type().Pointee())
	b.stacks[d.Home] = &renameStack{values: []hir.Value{def}}
}

// insertPhis runs phi placement for one home: seed the work set
// with the dominance frontier of the entry block (a home may be
// live-in at a join even before any store the walk has seen), then
// with the dominance frontier of every block containing a store to the
// home, inserting (and recording) one phi per visited block and
// re-seeding with that block's own frontier until the set is empty.
func (b *builder) insertPhis(d *varusage.Data) {
	work := cfg.NewIndexSet()
	idToBlock := make(map[int]*hir.BasicBlock)
	enqueue := func(blk *hir.BasicBlock) {
		if _, seen := idToBlock[blk.ID()]; seen {
			return
		}
		idToBlock[blk.ID()] = blk
		work.Add(blk.ID())
	}

	for _, f := range b.domTree.Frontiers(b.ed.EntryBlock()) {
		enqueue(f)
	}
	d.Home.Users().Each(func(op *hir.Operand) {
		user := op.Owner()
		if user == nil || user.Opcode() != hir.OpStore {
			return
		}
		for _, f := range b.domTree.Frontiers(user.BasicBlock()) {
			enqueue(f)
		}
	})

	for {
		id, ok := work.Take()
		if !ok {
			break
		}
		blk := idToBlock[id]
		b.ed.Edit(blk)
		phi := b.ed.NewPhi(d.Home.Type().Pointee())
		b.ed.Commit()
		b.phiHome[phi] = d.Home
		for _, f := range b.domTree.Frontiers(blk) {
			enqueue(f)
		}
	}
}

// renameBlock runs once per dominator-tree node in preorder (recursion
// IS the dominator-tree DFS): push this block's phis, retire its loads
// and stores against the current top-of-stack values, patch every
// successor's phi input for this block's edge, recurse into dominator
// children, then pop exactly what was pushed.
func (b *builder) renameBlock(blk *hir.BasicBlock) {
	var killList []*renameStack
	push := func(s *renameStack, v hir.Value) {
		s.push(v)
		killList = append(killList, s)
	}

	b.ed.Edit(blk)
	for _, phi := range blk.Phis() {
		home, ok := b.phiHome[phi]
		if !ok {
			continue
		}
		push(b.stacks[home], phi)
	}
	blk.Instructions().EachSafe(func(instr *hir.Instruction) {
		switch instr.Opcode() {
		case hir.OpLoad:
			home, ok := instr.Operand(0).(*hir.Instruction)
			if !ok {
				return
			}
			stack, tracked := b.stacks[home]
			if !tracked {
				return
			}
			b.ed.ReplaceAll(instr, stack.top())
			b.ed.RemoveInstruction(instr)
		case hir.OpStore:
			home, ok := instr.Operand(0).(*hir.Instruction)
			if !ok {
				return
			}
			stack, tracked := b.stacks[home]
			if !tracked {
				return
			}
			push(stack, instr.Operand(1))
			b.ed.RemoveInstruction(instr)
		}
	})
	b.ed.Commit()

	for _, succ := range blk.Successors() {
		for _, phi := range succ.Phis() {
			home, ok := b.phiHome[phi]
			if !ok {
				continue
			}
			value := b.stacks[home].top()
			b.ed.Edit(succ)
			b.ed.SetPhiInput(phi, blk, value)
			b.ed.Commit()
		}
	}

	for _, child := range b.domTree.Children(blk) {
		b.renameBlock(child)
	}

	for i := len(killList) - 1; i >= 0; i-- {
		killList[i].pop()
	}
}
