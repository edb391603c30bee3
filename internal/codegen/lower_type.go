package codegen

import (
	"github.com/cclang/cc/internal/mir"
	"github.com/cclang/cc/internal/types"
)

// LowerType implements the Type→IRType lowering spec.md §3 describes: a
// simple type maps to the matching IR primitive, a pointer maps to its
// element's IR type wrapped *depth* times, and a function type maps to an
// IR function type whose variadic flag mirrors the ellipsis.
//
// This lives in codegen rather than in the types package so that the type
// system itself stays a pure, IR-independent leaf.
func LowerType(t *types.Type) mir.IRType {
	switch t.Kind {
	case types.KindSimple:
		return lowerSimple(t.Simple)
	case types.KindPointer:
		result := lowerSimple(t.Elem)
		for i := 0; i < t.Depth; i++ {
			result = mir.PointerTo(result)
		}

		return result
	case types.KindFunction:
		params := make([]mir.IRType, 0, len(t.Params))

		for _, p := range t.Params {
			if p.IsSimple(types.Ellipsis) {
				continue
			}

			params = append(params, LowerType(p))
		}

		return mir.FuncType(params, LowerType(t.Return), t.Variadic)
	default:
		return mir.Primitive(mir.TyVoid)
	}
}

func lowerSimple(s types.Simple) mir.IRType {
	switch s {
	case types.Int:
		return mir.Primitive(mir.TyI32)
	case types.Float:
		return mir.Primitive(mir.TyF32)
	case types.Char:
		return mir.Primitive(mir.TyI8)
	case types.Bool:
		return mir.Primitive(mir.TyI1)
	default:
		return mir.Primitive(mir.TyVoid)
	}
}
