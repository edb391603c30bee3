// Package mir implements the SSA-like intermediate representation: modules
// of functions, functions of basic blocks, basic blocks of instructions.
// A lightweight SSA-lite representation sits between the source-level AST
// and whatever a backend would eventually consume.
package mir

import (
	"fmt"
	"strings"
)

// TypeKind enumerates the IR's own primitive type vocabulary. It is
// deliberately smaller than the source Type system: every source Simple
// type maps onto one of these, and every Pointer type is a nest of Ptr.
type TypeKind int

const (
	TyI32 TypeKind = iota
	TyF32
	TyI8
	TyI1
	TyVoid
	TyPtr
	TyFunc
)

// IRType is the IR's type representation, lowered from a types.Type by the
// codegen package.
type IRType struct {
	Kind TypeKind

	// Valid when Kind == TyPtr.
	Elem *IRType

	// Valid when Kind == TyFunc.
	Params   []IRType
	Ret      *IRType
	Variadic bool
}

func Primitive(k TypeKind) IRType { return IRType{Kind: k} }

func PointerTo(elem IRType) IRType { return IRType{Kind: TyPtr, Elem: &elem} }

func FuncType(params []IRType, ret IRType, variadic bool) IRType {
	return IRType{Kind: TyFunc, Params: params, Ret: &ret, Variadic: variadic}
}

// String renders the type the way the printer emits it in instruction text.
func (t IRType) String() string {
	switch t.Kind {
	case TyI32:
		return "i32"
	case TyF32:
		return "f32"
	case TyI8:
		return "i8"
	case TyI1:
		return "i1"
	case TyVoid:
		return "void"
	case TyPtr:
		return t.Elem.String() + "*"
	case TyFunc:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}

		variadic := ""
		if t.Variadic {
			if len(parts) > 0 {
				variadic = ", "
			}

			variadic += "..."
		}

		return fmt.Sprintf("%s (%s%s)", t.Ret.String(), strings.Join(parts, ", "), variadic)
	default:
		return "<invalid-ir-type>"
	}
}

// Equal compares two IRTypes structurally.
func (t IRType) Equal(o IRType) bool {
	return t.String() == o.String()
}

// IsInteger reports whether values of this type participate in the integer
// binary/unary operation set (i32, i8, i1 are all integer-class).
func (t IRType) IsInteger() bool {
	return t.Kind == TyI32 || t.Kind == TyI8 || t.Kind == TyI1
}
