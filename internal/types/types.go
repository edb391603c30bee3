// Package types defines the value types the source language can denote.
//
// A Type is a closed sum of three shapes: Simple, Pointer, and Function.
// The package is pure — it holds no compilation state, only the value
// vocabulary shared by the binder, the typer and the lowering pass.
package types

import (
	"fmt"
	"strings"
)

// Kind tags which of the three Type shapes a value holds.
type Kind int

const (
	KindSimple Kind = iota
	KindPointer
	KindFunction
)

// Simple enumerates the scalar value types, plus the two sentinels (Void,
// Ellipsis) that are never the type of a runtime value but still need to
// flow through the same Type representation.
type Simple int

const (
	Int Simple = iota
	Float
	Char
	Bool
	Void
	Ellipsis
)

// String names a Simple kind the way diagnostics and the IR printer expect.
func (s Simple) String() string {
	switch s {
	case Int:
		return "int"
	case Float:
		return "float"
	case Char:
		return "char"
	case Bool:
		return "bool"
	case Void:
		return "void"
	case Ellipsis:
		return "..."
	default:
		return fmt.Sprintf("simple(%d)", int(s))
	}
}

// Type is a value type: Simple, Pointer (depth + element), or Function
// (parameter vector + return type, with an optional trailing ellipsis).
type Type struct {
	Kind Kind

	// Valid when Kind == KindSimple.
	Simple Simple

	// Valid when Kind == KindPointer: Elem is always a Simple element type
	// and Depth is the number of '*' applied to it (>= 1).
	Depth int
	Elem  Simple

	// Valid when Kind == KindFunction. Params may end with a Type whose
	// Simple == Ellipsis; when it does, Variadic is true and that trailing
	// entry is not itself a parameter.
	Params   []*Type
	Return   *Type
	Variadic bool
}

// Convenience constructors.

func NewSimple(s Simple) *Type { return &Type{Kind: KindSimple, Simple: s} }

func NewPointer(depth int, elem Simple) *Type {
	return &Type{Kind: KindPointer, Depth: depth, Elem: elem}
}

func NewFunction(params []*Type, ret *Type) *Type {
	t := &Type{Kind: KindFunction, Params: params, Return: ret}
	if n := len(params); n > 0 && params[n-1].Kind == KindSimple && params[n-1].Simple == Ellipsis {
		t.Variadic = true
	}
	return t
}

var (
	IntType   = NewSimple(Int)
	FloatType = NewSimple(Float)
	CharType  = NewSimple(Char)
	BoolType  = NewSimple(Bool)
	VoidType  = NewSimple(Void)
	// CharPtr is the type of string literals: char*.
	CharPtr = NewPointer(1, Char)
)

// String renders the canonical textual form of a Type. Two Types are equal
// iff their canonical strings are equal.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case KindSimple:
		return t.Simple.String()
	case KindPointer:
		return t.Elem.String() + strings.Repeat("*", t.Depth)
	case KindFunction:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}

		return fmt.Sprintf("%s(%s)", t.Return.String(), strings.Join(parts, ", "))
	default:
		return "<invalid type>"
	}
}

// Equal reports whether two Types denote the same value type.
func Equal(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.String() == b.String()
}

// IsSimple reports whether t is the Simple type s.
func (t *Type) IsSimple(s Simple) bool {
	return t != nil && t.Kind == KindSimple && t.Simple == s
}

// IsInteger reports whether t is usable as an integer operand (int, bool
// or char, all lowered to an integer IR type).
func (t *Type) IsInteger() bool {
	return t.IsSimple(Int) || t.IsSimple(Bool) || t.IsSimple(Char)
}

// IsFunction reports whether t is a Function type.
func (t *Type) IsFunction() bool { return t != nil && t.Kind == KindFunction }

// IsVoid reports whether t is the Void simple type.
func (t *Type) IsVoid() bool { return t.IsSimple(Void) }

// Merge implements the statement-type merge relation used while checking
// that every control path through a compound statement agrees on what it
// returns: merge(void, t) = t, merge(t, void) = t, merge(t, t) = t,
// otherwise the merge is undefined (ok == false).
func Merge(a, b *Type) (*Type, bool) {
	if a == nil {
		return b, b != nil
	}

	if b == nil {
		return a, a != nil
	}

	if a.IsVoid() {
		return b, true
	}

	if b.IsVoid() {
		return a, true
	}

	if Equal(a, b) {
		return a, true
	}

	return nil, false
}
