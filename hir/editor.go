package hir

// Editor is the sole mutator of a Function's IR: BasicBlock and
// Instruction expose no raw mutating methods of their own, so every
// structural change to a function goes through an Editor, which tracks
// which blocks are currently open for editing and validates them on
// close.
type Editor struct {
	types *TypeFactory
	fn    *Function
	stack []*BasicBlock
}

// NewEditor opens an editor over fn, using types to manufacture any
// instructions needed to bring fn into its canonical initial shape
// (an empty function gets synthetic entry/exit blocks).
func NewEditor(types *TypeFactory, fn *Function) *Editor {
	e := &Editor{types: types, fn: fn}
	e.initializeFunctionIfNeeded()
	return e
}

// Function returns the function under edit.
func (e *Editor) Function() *Function { return e.fn }

// EntryBlock is a shortcut for Function().EntryBlock().
func (e *Editor) EntryBlock() *BasicBlock { return e.fn.EntryBlock() }

// ExitBlock is a shortcut for Function().ExitBlock().
func (e *Editor) ExitBlock() *BasicBlock { return e.fn.ExitBlock() }

func (e *Editor) current() *BasicBlock {
	if len(e.stack) == 0 {
		panic("hir: Editor has no block open for editing; call Edit first")
	}
	return e.stack[len(e.stack)-1]
}

// Edit opens block for edits; edit calls stack, so a nested Edit on a
// different block is fine, but re-entering a block already on the
// stack panics. Validates the block immediately if it is already
// non-empty.
func (e *Editor) Edit(block *BasicBlock) {
	for _, b := range e.stack {
		if b == block {
			panic("hir: Editor.Edit: block already being edited")
		}
	}
	e.stack = append(e.stack, block)
	if block.instrs.Empty() {
		return
	}
	if !ValidateBlock(block) {
		panic("hir: Editor.Edit: block fails validation on entry")
	}
}

// Commit closes every block currently being edited, validating each
// one, and reports whether all of them passed. It does not panic on
// validation failure: that's reported through the return value, not
// raised as a programmer error the way an empty edit stack is.
func (e *Editor) Commit() bool {
	if len(e.stack) == 0 {
		panic("hir: Editor.Commit with no open edit")
	}
	ok := true
	for _, b := range e.stack {
		if !ValidateBlock(b) {
			ok = false
		}
	}
	e.stack = e.stack[:0]
	return ok
}

// ScopedEdit opens block, runs fn, then commits, so callers don't have
// to pair Edit/Commit by hand for a single self-contained edit.
func (e *Editor) ScopedEdit(block *BasicBlock, fn func()) bool {
	e.Edit(block)
	fn()
	return e.Commit()
}

func (e *Editor) initializeFunctionIfNeeded() {
	if !e.fn.blocks.Empty() {
		return
	}
	voidTy := e.types.VoidType()
	entry := newBasicBlock(voidTy)
	exit := newBasicBlock(voidTy)

	// Exit is created before entry because entry's synthesized return
	// instruction refers to the exit block.
	e.fn.blocks.Append(entry)
	e.fn.blocks.Append(exit)
	entry.fn = e.fn
	entry.id = e.fn.nextBlockID()
	exit.fn = e.fn
	exit.id = e.fn.nextBlockID()

	e.ScopedEdit(exit, func() {
		e.Append(e.newFixed(OpExit, voidTy))
	})
	e.ScopedEdit(entry, func() {
		paramsTy := e.fn.ParametersType()
		e.Append(e.newFixed(OpEntry, paramsTy))
		e.SetReturn(e.types.DefaultValue(e.fn.ReturnType()))
	})
}

func (e *Editor) newFixed(op Opcode, outTy *Type) *Instruction {
	i := &Instruction{opcode: op}
	i.init(outTy)
	return i
}

func (e *Editor) attachOperand(i *Instruction, idx int, v Value) {
	i.operands[idx].owner = i
	i.operands[idx].set(v)
}

// Append appends newInstr to the block currently being edited,
// assigning it an id and attaching it to that block.
func (e *Editor) Append(newInstr *Instruction) {
	b := e.current()
	if newInstr.block != nil || newInstr.id != 0 {
		panic("hir: Editor.Append: instruction already attached")
	}
	b.instrs.Append(newInstr)
	newInstr.id = e.fn.nextInstructionID()
	newInstr.block = b
}

// InsertBefore inserts newInstr within the block currently being
// edited, immediately before ref. ref == nil behaves as Append.
func (e *Editor) InsertBefore(newInstr, ref *Instruction) {
	if ref == nil {
		e.Append(newInstr)
		return
	}
	b := e.current()
	if ref.block != b {
		panic("hir: Editor.InsertBefore: ref not in block under edit")
	}
	if newInstr.block != nil || newInstr.id != 0 {
		panic("hir: Editor.InsertBefore: instruction already attached")
	}
	b.instrs.InsertBefore(newInstr, ref)
	newInstr.id = e.fn.nextInstructionID()
	newInstr.block = b
}

// RemoveInstruction detaches oldInstr from its block and resets every
// operand slot, preserving the use-def invariant.
func (e *Editor) RemoveInstruction(oldInstr *Instruction) {
	b := e.current()
	if oldInstr.block != b {
		panic("hir: Editor.RemoveInstruction: instruction not in block under edit")
	}
	if oldInstr.opcode == OpPhi {
		oldInstr.phiInputs.Each(func(p *PhiInput) { p.opnd.reset() })
	} else {
		for idx := 0; idx < oldInstr.noperands; idx++ {
			oldInstr.operands[idx].reset()
		}
	}
	b.instrs.Remove(oldInstr)
	oldInstr.block = nil
}

// NewBasicBlock allocates a block and splices it immediately before
// the function's exit block, pushing it onto the edit stack.
func (e *Editor) NewBasicBlock() *BasicBlock {
	return e.NewBasicBlockBefore(e.fn.ExitBlock())
}

// NewBasicBlockBefore allocates a block and splices it immediately
// before ref, pushing it onto the edit stack.
func (e *Editor) NewBasicBlockBefore(ref *BasicBlock) *BasicBlock {
	b := newBasicBlock(e.types.VoidType())
	b.fn = e.fn
	b.id = e.fn.nextBlockID()
	if ref == nil {
		e.fn.blocks.Append(b)
	} else {
		e.fn.blocks.InsertBefore(b, ref)
	}
	e.stack = append(e.stack, b)
	return b
}

// SetBranch replaces the current block's terminator with a
// conditional branch.
func (e *Editor) SetBranch(cond Value, trueBlock, falseBlock *BasicBlock) *Instruction {
	e.removeExistingTerminator()
	instr := e.newFixed(OpBranch, e.types.VoidType())
	instr.noperands = 3
	e.attachOperand(instr, 0, cond)
	e.attachOperand(instr, 1, trueBlock)
	e.attachOperand(instr, 2, falseBlock)
	e.Append(instr)
	return instr
}

// SetJump replaces the current block's terminator with an
// unconditional branch to target.
func (e *Editor) SetJump(target *BasicBlock) *Instruction {
	e.removeExistingTerminator()
	instr := e.newFixed(OpBranch, e.types.VoidType())
	instr.noperands = 1
	e.attachOperand(instr, 0, target)
	e.Append(instr)
	return instr
}

// SetReturn replaces the current block's terminator with a return of
// value, targeting the function's exit block.
func (e *Editor) SetReturn(value Value) *Instruction {
	e.removeExistingTerminator()
	instr := e.newFixed(OpReturn, e.types.VoidType())
	instr.noperands = 2
	e.attachOperand(instr, 0, value)
	e.attachOperand(instr, 1, e.fn.ExitBlock())
	e.Append(instr)
	return instr
}

func (e *Editor) removeExistingTerminator() {
	b := e.current()
	last := b.LastInstruction()
	if last != nil && last.IsTerminator() {
		e.RemoveInstruction(last)
	}
}

// NewCall appends a call instruction invoking callee (of function
// type) with args, producing a value of callee's return type.
func (e *Editor) NewCall(callee, args Value) *Instruction {
	funcTy := callee.Type()
	instr := e.newFixed(OpCall, funcTy.ReturnType())
	instr.noperands = 2
	e.attachOperand(instr, 0, callee)
	e.attachOperand(instr, 1, args)
	e.Append(instr)
	return instr
}

// NewHomeCall is NewCall with the result additionally marked as a
// variable "home": the instruction that first materializes the memory
// cell backing a source variable. A home is, structurally, a
// pointer-returning Call (e.g. to a "stackalloc" Reference) tagged for
// hir/varusage and hir/ssa to find; there is no dedicated alloc opcode.
func (e *Editor) NewHomeCall(callee, args Value) *Instruction {
	instr := e.NewCall(callee, args)
	instr.home = true
	return instr
}

// NewLoad appends a load instruction reading through ptr.
func (e *Editor) NewLoad(ptr Value) *Instruction {
	instr := e.newFixed(OpLoad, ptr.Type().Pointee())
	instr.noperands = 1
	e.attachOperand(instr, 0, ptr)
	e.Append(instr)
	return instr
}

// NewStore appends a store instruction writing value through ptr.
func (e *Editor) NewStore(ptr, value Value) *Instruction {
	instr := e.newFixed(OpStore, e.types.VoidType())
	instr.noperands = 2
	e.attachOperand(instr, 0, ptr)
	e.attachOperand(instr, 1, value)
	e.Append(instr)
	return instr
}

// NewPhi inserts a new phi of type outTy at the head of the current
// block's instruction list (phi lists live before non-phi
// instructions, so that rename (hir/ssa) can find all of a block's
// phis before processing other instructions).
func (e *Editor) NewPhi(outTy *Type) *Instruction {
	b := e.current()
	instr := e.newFixed(OpPhi, outTy)
	instr.phiInputs = newPhiInputList()
	if first := b.FirstInstruction(); first != nil {
		e.InsertBefore(instr, first)
	} else {
		e.Append(instr)
	}
	return instr
}

// SetInput rewrites operand slot idx of instr to newValue, maintaining
// use-def edges.
func (e *Editor) SetInput(instr *Instruction, idx int, newValue Value) {
	instr.operands[idx].replace(newValue)
}

// SetPhiInput finds phi's input for pred (creating one if absent) and
// sets it to value.
func (e *Editor) SetPhiInput(phi *Instruction, pred *BasicBlock, value Value) {
	if existing := phi.InputFor(pred); existing != nil {
		existing.opnd.replace(value)
		return
	}
	p := &PhiInput{block: pred}
	p.opnd.owner = phi
	p.opnd.set(value)
	phi.phiInputs.Append(p)
}

// ReplacePhiInputs rewrites every phi input in phiBlock keyed by
// oldPred to be keyed by newPred instead; used by the critical-edge
// pass.
func (e *Editor) ReplacePhiInputs(phiBlock *BasicBlock, oldPred, newPred *BasicBlock) {
	for _, phi := range phiBlock.Phis() {
		if p := phi.InputFor(oldPred); p != nil {
			p.block = newPred
		}
	}
}

// ReplaceAll rewrites every use of oldValue in the function to
// newValue (used by hir/ssa Phase B to retire loads).
func (e *Editor) ReplaceAll(oldValue, newValue Value) {
	for _, op := range oldValue.Users().Slice() {
		op.replace(newValue)
	}
}
