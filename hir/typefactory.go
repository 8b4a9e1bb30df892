package hir

import (
	"fmt"
	"strings"
)

// litKey identifies an interned small literal within a primitive
// Type's literal cache.
type litKey string

// TypeFactory interns Type nodes and their default/literal values. All
// nodes allocated by a factory live in that factory's arena and are
// immortal for the lifetime of the factory.
type TypeFactory struct {
	arena *Arena[Type]

	primitives map[Kind]*Type
	pointers   map[*Type]*Type
	arrays     map[string]*Type
	tuples     map[string]*Type
	functions  map[string]*Type
	externals  map[string]*Type
	strings    *Type
}

// NewTypeFactory constructs an empty factory with its own arena.
func NewTypeFactory() *TypeFactory {
	f := &TypeFactory{
		arena:      NewArena[Type](),
		primitives: make(map[Kind]*Type),
		pointers:   make(map[*Type]*Type),
		arrays:     make(map[string]*Type),
		tuples:     make(map[string]*Type),
		functions:  make(map[string]*Type),
		externals:  make(map[string]*Type),
	}
	return f
}

var allPrimitiveKinds = []Kind{
	KindVoid, KindBool, KindChar,
	KindInt8, KindInt16, KindInt32, KindInt64,
	KindUint8, KindUint16, KindUint32, KindUint64,
	KindFloat32, KindFloat64,
}

// PrimitiveType interns and returns the primitive type for kind.
// kind must be one of the primitive Kind constants (not Pointer,
// Array, Tuple, Function, External, or String).
func (f *TypeFactory) PrimitiveType(kind Kind) *Type {
	if t, ok := f.primitives[kind]; ok {
		return t
	}
	t := f.arena.New()
	t.kind = kind
	t.lits = make(map[litKey]Value)
	f.primitives[kind] = t
	return t
}

// VoidType interns the void type.
func (f *TypeFactory) VoidType() *Type { return f.PrimitiveType(KindVoid) }

// BoolType interns the bool type.
func (f *TypeFactory) BoolType() *Type { return f.PrimitiveType(KindBool) }

// StringType interns the singleton string type.
func (f *TypeFactory) StringType() *Type {
	if f.strings == nil {
		t := f.arena.New()
		t.kind = KindString
		t.lits = make(map[litKey]Value)
		f.strings = t
	}
	return f.strings
}

// PointerType interns *pointee.
func (f *TypeFactory) PointerType(pointee *Type) *Type {
	if t, ok := f.pointers[pointee]; ok {
		return t
	}
	t := f.arena.New()
	t.kind = KindPointer
	t.pointee = pointee
	f.pointers[pointee] = t
	return t
}

// ArrayType interns an array of elem with the given per-dimension
// sizes (-1 = unbounded).
func (f *TypeFactory) ArrayType(elem *Type, dims []int) *Type {
	key := arrayKey(elem, dims)
	if t, ok := f.arrays[key]; ok {
		return t
	}
	t := f.arena.New()
	t.kind = KindArray
	t.elem = elem
	t.dims = append([]int(nil), dims...)
	f.arrays[key] = t
	return t
}

func arrayKey(elem *Type, dims []int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%p", elem)
	for _, d := range dims {
		fmt.Fprintf(&b, ",%d", d)
	}
	return b.String()
}

// TupleType interns a tuple of members. Arity must be >= 2 and no
// member may be void; callers (typically the variable/AST lowering
// layer, out of this package's scope) are responsible for that
// precondition, TupleType itself only interns.
func (f *TypeFactory) TupleType(members []*Type) *Type {
	key := memberKey(members)
	if t, ok := f.tuples[key]; ok {
		return t
	}
	t := f.arena.New()
	t.kind = KindTuple
	t.members = append([]*Type(nil), members...)
	f.tuples[key] = t
	return t
}

func memberKey(members []*Type) string {
	var b strings.Builder
	for i, m := range members {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%p", m)
	}
	return b.String()
}

// FunctionType interns a function type (return, parameters).
func (f *TypeFactory) FunctionType(ret, params *Type) *Type {
	key := fmt.Sprintf("%p:%p", ret, params)
	if t, ok := f.functions[key]; ok {
		return t
	}
	t := f.arena.New()
	t.kind = KindFunction
	t.ret = ret
	t.params = params
	f.functions[key] = t
	return t
}

// ExternalType interns a named external (class/interface/struct)
// reference type.
func (f *TypeFactory) ExternalType(name string) *Type {
	if t, ok := f.externals[name]; ok {
		return t
	}
	t := f.arena.New()
	t.kind = KindExternal
	t.name = name
	f.externals[name] = t
	return t
}

// DefaultValue returns t's canonical default value: the interned zero
// literal for integer/float primitives, the void singleton for void,
// the typed null singleton for pointer/reference/array/string.
func (f *TypeFactory) DefaultValue(t *Type) Value {
	if t.def != nil {
		return t.def
	}
	var v Value
	switch t.kind {
	case KindVoid:
		vl := &VoidLit{}
		vl.init(t)
		v = vl
	case KindBool:
		v = f.BoolLiteral(false)
	case KindChar:
		v = f.IntLiteral(t, 0)
	case KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint8, KindUint16, KindUint32, KindUint64:
		v = f.IntLiteral(t, 0)
	case KindFloat32, KindFloat64:
		v = f.FloatLiteral(t, 0)
	case KindPointer, KindExternal, KindArray, KindString:
		v = f.NullLiteral(t)
	default:
		panic("hir: DefaultValue has no default for " + t.String())
	}
	t.def = v
	return v
}

// BoolLiteral interns the bool literal for value.
func (f *TypeFactory) BoolLiteral(value bool) Value {
	t := f.PrimitiveType(KindBool)
	key := litKey(fmt.Sprintf("b%v", value))
	if v, ok := t.lits[key]; ok {
		return v
	}
	v := &BoolLit{Value: value}
	v.init(t)
	t.lits[key] = v
	return v
}

// IntLiteral interns the integer literal for value under kind-aware
// type t (the signedness/width come from t).
func (f *TypeFactory) IntLiteral(t *Type, value int64) Value {
	key := litKey(fmt.Sprintf("i%d", value))
	if v, ok := t.lits[key]; ok {
		return v
	}
	v := &IntLit{Value: value}
	v.init(t)
	t.lits[key] = v
	return v
}

// FloatLiteral interns the float literal for value under t.
func (f *TypeFactory) FloatLiteral(t *Type, value float64) Value {
	key := litKey(fmt.Sprintf("f%v", value))
	if v, ok := t.lits[key]; ok {
		return v
	}
	v := &FloatLit{Value: value}
	v.init(t)
	t.lits[key] = v
	return v
}

// StringLiteral interns a string literal by content.
func (f *TypeFactory) StringLiteral(value string) Value {
	t := f.StringType()
	key := litKey("s" + value)
	if v, ok := t.lits[key]; ok {
		return v
	}
	v := &StringLit{Value: value}
	v.init(t)
	t.lits[key] = v
	return v
}

// NullLiteral interns the typed null singleton for t (pointer, array,
// string, or external reference type).
func (f *TypeFactory) NullLiteral(t *Type) Value {
	key := litKey("null")
	cache := t.lits
	if cache == nil {
		cache = make(map[litKey]Value)
		t.lits = cache
	}
	if v, ok := cache[key]; ok {
		return v
	}
	v := &NullLit{}
	v.init(t)
	cache[key] = v
	return v
}
