package hir

import (
	"fmt"
	"strings"
)

// RegisterClass classifies how a value of a Type is physically held:
// general-purpose register, floating-point register, a tuple split
// across several registers/slots, or no storage at all (void). General
// and Integer are not distinguished as separate classes since every
// backend treats them identically for register allocation purposes.
type RegisterClass int

const (
	General RegisterClass = iota
	Float
	TupleClass
	VoidClass
)

func (r RegisterClass) String() string {
	switch r {
	case General:
		return "general"
	case Float:
		return "float"
	case TupleClass:
		return "tuple"
	case VoidClass:
		return "void"
	default:
		return "invalid"
	}
}

// Signedness of an integer primitive type.
type Signedness int

const (
	Unsigned Signedness = iota
	Signed
)

// Kind discriminates the Type tagged union.
type Kind int

const (
	KindVoid Kind = iota
	KindBool
	KindChar
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindPointer
	KindArray
	KindTuple
	KindFunction
	KindExternal
	KindString
)

var primitiveBitSize = map[Kind]int{
	KindBool: 1, KindChar: 16,
	KindInt8: 8, KindInt16: 16, KindInt32: 32, KindInt64: 64,
	KindUint8: 8, KindUint16: 16, KindUint32: 32, KindUint64: 64,
	KindFloat32: 32, KindFloat64: 64,
}

var primitiveSigned = map[Kind]Signedness{
	KindInt8: Signed, KindInt16: Signed, KindInt32: Signed, KindInt64: Signed,
	KindUint8: Unsigned, KindUint16: Unsigned, KindUint32: Unsigned, KindUint64: Unsigned,
}

// Type is an interned node of the HIR type system. Two calls to a
// TypeFactory constructor with structurally equal arguments return the
// same *Type (pointer equality).
type Type struct {
	kind Kind

	// KindPointer
	pointee *Type

	// KindArray
	elem *Type
	dims []int // -1 means unbounded

	// KindTuple
	members []*Type

	// KindFunction
	ret    *Type
	params *Type

	// KindExternal
	name string

	def  Value // cached default_value, see TypeFactory.DefaultValue
	lits map[litKey]Value
}

// Kind returns the type's discriminant.
func (t *Type) Kind() Kind { return t.kind }

// IsVoid reports whether t is the void type.
func (t *Type) IsVoid() bool { return t.kind == KindVoid }

// IsFloat reports whether t is a floating-point primitive.
func (t *Type) IsFloat() bool { return t.kind == KindFloat32 || t.kind == KindFloat64 }

// BitSize returns the primitive's bit width, or 0 for non-primitives.
func (t *Type) BitSize() int { return primitiveBitSize[t.kind] }

// Signedness returns the primitive integer's signedness. Meaningless
// for non-integer kinds.
func (t *Type) Signedness() Signedness { return primitiveSigned[t.kind] }

// RegisterClass classifies how values of t are physically represented.
func (t *Type) RegisterClass() RegisterClass {
	switch t.kind {
	case KindVoid:
		return VoidClass
	case KindFloat32, KindFloat64:
		return Float
	case KindTuple:
		return TupleClass
	default:
		return General
	}
}

// Pointee returns the pointed-to type. Panics if t is not KindPointer.
func (t *Type) Pointee() *Type {
	if t.kind != KindPointer {
		panic("hir: Pointee of non-pointer type")
	}
	return t.pointee
}

// Element returns the array element type. Panics if t is not KindArray.
func (t *Type) Element() *Type {
	if t.kind != KindArray {
		panic("hir: Element of non-array type")
	}
	return t.elem
}

// Dims returns the array's per-dimension sizes (-1 = unbounded).
func (t *Type) Dims() []int {
	if t.kind != KindArray {
		panic("hir: Dims of non-array type")
	}
	return t.dims
}

// Members returns the tuple's member types. Panics if t is not KindTuple.
func (t *Type) Members() []*Type {
	if t.kind != KindTuple {
		panic("hir: Members of non-tuple type")
	}
	return t.members
}

// ReturnType returns the function's return type. Panics if t is not
// KindFunction.
func (t *Type) ReturnType() *Type {
	if t.kind != KindFunction {
		panic("hir: ReturnType of non-function type")
	}
	return t.ret
}

// ParametersType returns the function's parameters type (a tuple type
// or a single non-tuple type). Panics if t is not KindFunction.
func (t *Type) ParametersType() *Type {
	if t.kind != KindFunction {
		panic("hir: ParametersType of non-function type")
	}
	return t.params
}

// ExternalName returns the external reference's name. Panics if t is
// not KindExternal.
func (t *Type) ExternalName() string {
	if t.kind != KindExternal {
		panic("hir: ExternalName of non-external type")
	}
	return t.name
}

// String renders t using the type system's textual-format conventions.
func (t *Type) String() string {
	switch t.kind {
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindUint8:
		return "uint8"
	case KindUint16:
		return "uint16"
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	case KindPointer:
		return "*" + t.pointee.String()
	case KindArray:
		var b strings.Builder
		b.WriteString(t.elem.String())
		for _, d := range t.dims {
			if d < 0 {
				b.WriteString("[]")
			} else {
				fmt.Fprintf(&b, "[%d]", d)
			}
		}
		return b.String()
	case KindTuple:
		parts := make([]string, len(t.members))
		for i, m := range t.members {
			parts[i] = m.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindFunction:
		return t.ret.String() + "(" + t.params.String() + ")"
	case KindExternal:
		return t.name
	default:
		return "<invalid type>"
	}
}
