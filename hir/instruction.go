package hir

import "github.com/eval1749/elang-sub001/hir/dlist"

// Pos is an opaque source-location token attached to every
// instruction. Deliberately not go/token.Pos or any richer structure:
// line/column bookkeeping is out of scope here, so Pos exists only to
// round-trip, never to be printed by the formatter.
type Pos int

// NoPos is the zero value, meaning "no location".
const NoPos Pos = 0

func instructionElem(i *Instruction) *dlist.Elem[Instruction] { return &i.blockElem }

// maxFixedOperands is the widest fixed-operand shape among the
// opcodes (conditional Branch and Call/Store/Return all need at most
// 3 slots): cond, true_block, false_block.
const maxFixedOperands = 3

// Instruction is a concrete instance of an Opcode. Rather than one Go
// type per opcode, a single struct carries a small fixed operand array
// sized generously enough for every shape in the closed opcode set,
// plus a side list for Phi's variable arity: Phi needs genuine
// per-predecessor inputs, not a fixed operand count, so its arity
// can't fit the fixed array the other opcodes share.
type Instruction struct {
	ValueBase

	opcode    Opcode
	block     *BasicBlock
	id        int
	pos       Pos
	blockElem dlist.Elem[Instruction]

	operands  [maxFixedOperands]Operand
	noperands int

	// Phi only: variable-arity per-predecessor inputs.
	phiInputs *dlist.List[PhiInput]

	// home marks a pointer-returning Call as a variable home (see
	// Editor.NewHomeCall); consulted by hir/varusage and hir/ssa.
	home bool
}

func newPhiInputList() *dlist.List[PhiInput] { return dlist.New(phiInputElem) }

// IsHome reports whether this instruction was tagged as a variable
// home via Editor.NewHomeCall.
func (i *Instruction) IsHome() bool { return i.home }

func phiInputElem(p *PhiInput) *dlist.Elem[PhiInput] { return &p.elem }

// PhiInput pairs one predecessor block with the SSA value flowing in
// from it. It is its own use-def node, distinct from Instruction's
// fixed operand array, since a Phi's arity varies with the block's
// predecessor count.
type PhiInput struct {
	elem  dlist.Elem[PhiInput]
	block *BasicBlock
	opnd  Operand
}

// Block returns the predecessor this input corresponds to.
func (p *PhiInput) Block() *BasicBlock { return p.block }

// Value returns the SSA value supplied for that predecessor.
func (p *PhiInput) Value() Value { return p.opnd.Value() }

// Opcode returns the instruction's opcode.
func (i *Instruction) Opcode() Opcode { return i.opcode }

// BasicBlock returns the block this instruction belongs to, or nil if
// detached.
func (i *Instruction) BasicBlock() *BasicBlock { return i.block }

// Function returns the owning function, or nil if detached.
func (i *Instruction) Function() *Function {
	if i.block == nil {
		return nil
	}
	return i.block.Function()
}

// ID returns the instruction's debug/ordering identifier. Zero means
// detached: an attached instruction always has a non-zero id.
func (i *Instruction) ID() int { return i.id }

// Pos returns the instruction's opaque source-location token.
func (i *Instruction) Pos() Pos { return i.pos }

// OperandCount returns how many fixed operand slots are in use. For
// Phi this is always 0 (use Inputs() instead).
func (i *Instruction) OperandCount() int { return i.noperands }

// Operand returns the value in fixed operand slot idx. Panics if idx
// is out of range for this instruction's current shape.
func (i *Instruction) Operand(idx int) Value {
	if idx < 0 || idx >= i.noperands {
		panic("hir: Operand index out of range")
	}
	return i.operands[idx].Value()
}

// Inputs returns the Phi's per-predecessor input list. Panics if the
// instruction is not a Phi.
func (i *Instruction) Inputs() *dlist.List[PhiInput] {
	if i.opcode != OpPhi {
		panic("hir: Inputs of non-phi instruction")
	}
	return i.phiInputs
}

// InputFor returns the Phi's input for block, or nil if none exists
// yet.
func (i *Instruction) InputFor(block *BasicBlock) *PhiInput {
	if i.opcode != OpPhi {
		panic("hir: InputFor of non-phi instruction")
	}
	var found *PhiInput
	i.phiInputs.Each(func(p *PhiInput) {
		if p.block == block {
			found = p
		}
	})
	return found
}

// IsConditionalBranch reports whether this Branch has the 3-operand
// (cond, true, false) shape.
func (i *Instruction) IsConditionalBranch() bool {
	return i.opcode == OpBranch && i.noperands == 3
}

// IsUnconditionalBranch reports whether this Branch has the 1-operand
// (target) shape.
func (i *Instruction) IsUnconditionalBranch() bool {
	return i.opcode == OpBranch && i.noperands == 1
}

// IsTerminator reports whether this instruction ends a block: Exit,
// Branch (either shape), Return.
func (i *Instruction) IsTerminator() bool {
	switch i.opcode {
	case OpExit, OpBranch, OpReturn:
		return true
	default:
		return false
	}
}

// BlockOperands returns the block-typed fixed operands of a
// terminator, in operand order. Return's second operand
// (the exit block it jumps to) counts as a block operand just as much
// as Branch's targets — omitting it would disconnect every returning
// block from exit in the CFG view. Non-terminators, and Exit (which
// has no operands at all), return nil.
func (i *Instruction) BlockOperands() []*BasicBlock {
	switch i.opcode {
	case OpBranch:
		if i.noperands == 1 {
			return []*BasicBlock{i.operands[0].Value().(*BasicBlock)}
		}
		return []*BasicBlock{
			i.operands[1].Value().(*BasicBlock),
			i.operands[2].Value().(*BasicBlock),
		}
	case OpReturn:
		return []*BasicBlock{i.operands[1].Value().(*BasicBlock)}
	default:
		return nil
	}
}
