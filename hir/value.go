package hir

import "github.com/eval1749/elang-sub001/hir/dlist"

// Value is a node of the dataflow graph: it carries a Type and an
// intrusive use-def list of its consumers. BasicBlock, Function,
// Instruction, every Literal kind, and Reference all implement Value.
type Value interface {
	Type() *Type
	// Users returns the use-def list of Operand slots that currently
	// reference this value. O(1) to maintain under Editor mutation.
	Users() *dlist.List[Operand]

	isValue()
}

// operandElem extracts the link Operand uses to belong to its value's
// Users() list.
func operandElem(o *Operand) *dlist.Elem[Operand] { return &o.elem }

// ValueBase is embedded by every concrete Value implementation; it
// supplies the Type/Users bookkeeping every node in the graph needs.
type ValueBase struct {
	typ   *Type
	users *dlist.List[Operand]
}

func (v *ValueBase) init(typ *Type) {
	v.typ = typ
	v.users = dlist.New(operandElem)
}

func (v *ValueBase) Type() *Type                  { return v.typ }
func (v *ValueBase) Users() *dlist.List[Operand]   { return v.users }
func (*ValueBase) isValue()                        {}

// Operand is a use-def edge: one operand slot of an Instruction
// (or PhiInput, see instruction.go), linked into the value it
// currently reads. Invariant: for every instruction I and operand slot
// s of I, s.value is a Value and I is in s.value.users — maintained by
// Operand.set/reset, which only Editor and this package call.
type Operand struct {
	elem  dlist.Elem[Operand]
	owner *Instruction
	value Value
}

// Value returns the operand's current referent, or nil if unset.
func (o *Operand) Value() Value { return o.value }

// Owner returns the instruction this operand slot belongs to. For a
// PhiInput's operand (see instruction.go PhiInput) this is the phi.
// Nil only for a slot that was never attached.
func (o *Operand) Owner() *Instruction { return o.owner }

// set attaches the operand to value, appending it to value's users
// list. The operand must currently be detached.
func (o *Operand) set(value Value) {
	if o.value != nil {
		panic("hir: Operand.set on an attached operand; call reset first")
	}
	o.value = value
	if value != nil {
		value.Users().Append(o)
	}
}

// reset detaches the operand from its current value, if any.
func (o *Operand) reset() {
	if o.value == nil {
		return
	}
	o.value.Users().Remove(o)
	o.value = nil
}

// replace atomically swaps the operand's referent from its current
// value to newValue, preserving the use-def invariant.
func (o *Operand) replace(newValue Value) {
	o.reset()
	o.set(newValue)
}

// Reference is a named symbolic value, used for call targets such as
// external functions.
type Reference struct {
	ValueBase
	Name string
}

// NewReference constructs a Reference of type typ named name. Unlike
// the interned literal kinds, references are not deduplicated by the
// factory here; callers (the external lowering layer) own reference
// identity.
func NewReference(typ *Type, name string) *Reference {
	r := &Reference{Name: name}
	r.init(typ)
	return r
}
