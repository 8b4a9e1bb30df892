package hir

import (
	"fmt"
	"strconv"
)

// Literal variants: one per type. Small literals are interned per
// type; strings are interned by content. Construction and interning is
// the TypeFactory's job (typefactory.go); these types only hold the
// payload.

// BoolLit is the interned bool literal.
type BoolLit struct {
	ValueBase
	Value bool
}

func (l *BoolLit) String() string { return fmt.Sprintf("bool %v", l.Value) }

// IntLit is an interned integer literal (any of int8..int64,
// uint8..uint64, or char); its Type carries width and signedness.
type IntLit struct {
	ValueBase
	Value int64
}

func (l *IntLit) String() string {
	if l.typ.Signedness() == Unsigned {
		return fmt.Sprintf("%s %d", l.typ, uint64(l.Value))
	}
	return fmt.Sprintf("%s %d", l.typ, l.Value)
}

// FloatLit is an interned floating-point literal.
type FloatLit struct {
	ValueBase
	Value float64
}

func (l *FloatLit) String() string {
	suffix := "f64"
	if l.typ.Kind() == KindFloat32 {
		suffix = "f32"
	}
	return fmt.Sprintf("%s %s%s", l.typ, strconv.FormatFloat(l.Value, 'g', -1, 64), suffix)
}

// StringLit is a string literal, interned by content.
type StringLit struct {
	ValueBase
	Value string
}

func (l *StringLit) String() string { return fmt.Sprintf("string %q", l.Value) }

// NullLit is the typed null singleton for a pointer/array/string/
// external type.
type NullLit struct {
	ValueBase
}

func (l *NullLit) String() string {
	return fmt.Sprintf("static_cast<%s>(null)", l.typ)
}

// VoidLit is the void singleton value.
type VoidLit struct {
	ValueBase
}

func (l *VoidLit) String() string { return "void" }
