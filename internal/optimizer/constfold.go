package optimizer

import "github.com/cclang/cc/internal/mir"

// propagateConstants folds every binary instruction whose two operands are
// both integer constants: compute the result with signed 64-bit arithmetic,
// replace every use of the instruction with the folded constant, and erase
// it. Division and remainder by a literal zero are left unfolded — the
// instruction keeps running (and the runtime division trap, if any, is the
// program's problem) rather than this compiler panicking on `1/0` in
// source it is merely compiling.
func propagateConstants(fn *mir.Function) bool {
	changed := false

	for _, bb := range fn.Blocks {
		kept := bb.Instr[:0]

		for _, instr := range bb.Instr {
			if folded, ok := tryFold(instr); ok {
				replaceAllUses(fn, instr, folded)

				changed = true

				continue
			}

			kept = append(kept, instr)
		}

		bb.Instr = kept
	}

	return changed
}

func tryFold(instr *mir.Instruction) (*mir.ConstInt, bool) {
	if instr.Op != mir.OpBinOp {
		return nil, false
	}

	lhs, ok := instr.LHS.(*mir.ConstInt)
	if !ok {
		return nil, false
	}

	rhs, ok := instr.RHS.(*mir.ConstInt)
	if !ok {
		return nil, false
	}

	v, ok := foldBinOp(instr.Bin, lhs.Val, rhs.Val)
	if !ok {
		return nil, false
	}

	return &mir.ConstInt{Val: truncateToWidth(v, instr.Typ), Typ: instr.Typ}, true
}

// truncateToWidth wraps v to the bit width instr.Typ carries, the way the
// running instruction itself would: i32/i8 wrap with sign, i1 keeps only
// its low bit. A folded constant must match what the unfolded instruction
// would have produced, or folding changes the program's observable result.
func truncateToWidth(v int64, t mir.IRType) int64 {
	switch t.Kind {
	case mir.TyI32:
		return int64(int32(v))
	case mir.TyI8:
		return int64(int8(v))
	case mir.TyI1:
		return v & 1
	default:
		return v
	}
}

// foldBinOp computes nine operations: add, sub, mul, sdiv, srem, and, or,
// xor, shl. Anything else (including the ashr this language's >> lowers
// to) is reported unfoldable, matching the original lab, whose switch
// handled the identical nine cases.
func foldBinOp(op mir.BinOpKind, lhs, rhs int64) (int64, bool) {
	switch op {
	case mir.BinAdd:
		return lhs + rhs, true
	case mir.BinSub:
		return lhs - rhs, true
	case mir.BinMul:
		return lhs * rhs, true
	case mir.BinSDiv:
		if rhs == 0 {
			return 0, false
		}

		return lhs / rhs, true
	case mir.BinSRem:
		if rhs == 0 {
			return 0, false
		}

		return lhs % rhs, true
	case mir.BinAnd:
		return lhs & rhs, true
	case mir.BinOr:
		return lhs | rhs, true
	case mir.BinXor:
		return lhs ^ rhs, true
	case mir.BinShl:
		return lhs << uint(rhs), true
	default:
		return 0, false
	}
}
