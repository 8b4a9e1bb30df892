package hir

import "github.com/eval1749/elang-sub001/hir/dlist"

func blockElem(b *BasicBlock) *dlist.Elem[BasicBlock] { return &b.funcElem }

// BasicBlock is a Value (predecessors are recovered from its use-def
// users, since every branch/return operand pointing at it is itself an
// Operand in its Users() list) and an ordered container of
// Instructions, belonging to at most one Function at a time.
type BasicBlock struct {
	ValueBase

	fn      *Function
	id      int
	instrs  *dlist.List[Instruction]
	funcElem dlist.Elem[BasicBlock]
}

func newBasicBlock(voidType *Type) *BasicBlock {
	b := &BasicBlock{}
	b.init(voidType)
	b.instrs = dlist.New(instructionElem)
	return b
}

// Function returns the owning function, or nil if detached.
func (b *BasicBlock) Function() *Function { return b.fn }

// ID returns the block's debug/ordering identifier; 0 means detached.
func (b *BasicBlock) ID() int { return b.id }

// Instructions returns the block's ordered instruction list,
// including phis (which live at the head of the list).
func (b *BasicBlock) Instructions() *dlist.List[Instruction] { return b.instrs }

// FirstInstruction returns the first instruction, or nil if empty.
func (b *BasicBlock) FirstInstruction() *Instruction { return b.instrs.First() }

// LastInstruction returns the last instruction, or nil if empty.
func (b *BasicBlock) LastInstruction() *Instruction { return b.instrs.Last() }

// Phis returns the block's phi instructions, in list order. Phis are
// kept at the head of the instruction list by the Editor (see
// Editor.NewPhi); the scan still walks the whole list. Returns nil
// when the block has no phis.
func (b *BasicBlock) Phis() []*Instruction {
	var out []*Instruction
	b.instrs.Each(func(i *Instruction) {
		if i.opcode == OpPhi {
			out = append(out, i)
		}
	})
	return out
}

// Predecessors returns the blocks with an edge into b, derived from
// b's use-def users: every Operand in b.Users() whose owning
// instruction is a terminator naming b as a block operand.
func (b *BasicBlock) Predecessors() []*BasicBlock {
	var out []*BasicBlock
	seen := make(map[*BasicBlock]bool)
	b.Users().Each(func(op *Operand) {
		instr := op.Owner()
		if instr == nil || !instr.IsTerminator() {
			return
		}
		pred := instr.BasicBlock()
		if pred != nil && !seen[pred] {
			seen[pred] = true
			out = append(out, pred)
		}
	})
	return out
}

// Successors returns b's CFG successors, derived from its terminator's
// block operands.
func (b *BasicBlock) Successors() []*BasicBlock {
	last := b.LastInstruction()
	if last == nil {
		return nil
	}
	return last.BlockOperands()
}

// HasMoreThanOnePredecessor reports whether b has more than one
// distinct predecessor block, without materializing the full slice.
// Counts distinct blocks, not operand slots: a block whose terminator
// names the same target twice (e.g. br cond, b, b) has one
// predecessor, not two.
func (b *BasicBlock) HasMoreThanOnePredecessor() bool {
	seen := make(map[*BasicBlock]bool)
	found := false
	b.Users().Each(func(op *Operand) {
		if found {
			return
		}
		instr := op.Owner()
		if instr == nil || !instr.IsTerminator() {
			return
		}
		pred := instr.BasicBlock()
		if pred == nil || seen[pred] {
			return
		}
		seen[pred] = true
		if len(seen) > 1 {
			found = true
		}
	})
	return found
}

// IsEntry reports whether b is its function's entry block.
func (b *BasicBlock) IsEntry() bool {
	return b.fn != nil && b.fn.EntryBlock() == b
}

// IsExit reports whether b is its function's exit block.
func (b *BasicBlock) IsExit() bool {
	return b.fn != nil && b.fn.ExitBlock() == b
}
