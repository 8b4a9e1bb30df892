package hir

import "github.com/eval1749/elang-sub001/hir/dlist"

// Function owns an ordered list of BasicBlocks; the first is the
// unique entry (first instruction `entry`), the last is the unique
// exit (first instruction `exit`).
type Function struct {
	ValueBase

	funcType *Type
	blocks   *dlist.List[BasicBlock]
	nextBID  int
	nextIID  int

	// Locals is a caller-managed list of local-to-function homes.
	// Nothing in this module fills or reads it: hir/varusage reports
	// its homes in varusage.Result.Locals, which is what hir/ssa uses.
	Locals []*Instruction
}

// NewFunction constructs an empty function of the given function
// type. It has no blocks yet; NewEditor creates the canonical
// entry/exit pair when an editor is opened over it.
func NewFunction(funcType *Type) *Function {
	f := &Function{funcType: funcType}
	f.init(funcType)
	f.blocks = dlist.New(blockElem)
	return f
}

// FunctionType returns the function's (return, parameters) type.
func (f *Function) FunctionType() *Type { return f.funcType }

// ReturnType is a shortcut for FunctionType().ReturnType().
func (f *Function) ReturnType() *Type { return f.funcType.ReturnType() }

// ParametersType is a shortcut for FunctionType().ParametersType().
func (f *Function) ParametersType() *Type { return f.funcType.ParametersType() }

// Blocks returns the function's ordered block list.
func (f *Function) Blocks() *dlist.List[BasicBlock] { return f.blocks }

// EntryBlock returns the first block, or nil if the function is empty.
func (f *Function) EntryBlock() *BasicBlock { return f.blocks.First() }

// ExitBlock returns the last block, or nil if the function is empty.
func (f *Function) ExitBlock() *BasicBlock { return f.blocks.Last() }

func (f *Function) nextBlockID() int {
	f.nextBID++
	return f.nextBID
}

func (f *Function) nextInstructionID() int {
	f.nextIID++
	return f.nextIID
}
