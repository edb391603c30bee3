package optimizer

import "github.com/cclang/cc/internal/mir"

// This IR keeps no use-lists: an instruction lists its operands but no
// value lists its users. Every query below answers that by scanning the
// function directly, the same way the original lab's own passes re-walk
// the instruction stream rather than trust cached use information.

// replaceAllUses rewrites every operand in fn that currently reads old so
// it reads replacement instead.
func replaceAllUses(fn *mir.Function, old, replacement mir.Value) {
	for _, bb := range fn.Blocks {
		for _, instr := range bb.Instr {
			if instr.Addr == old {
				instr.Addr = replacement
			}

			if instr.Val == old {
				instr.Val = replacement
			}

			if instr.LHS == old {
				instr.LHS = replacement
			}

			if instr.RHS == old {
				instr.RHS = replacement
			}

			if instr.Operand == old {
				instr.Operand = replacement
			}

			if instr.RetVal == old {
				instr.RetVal = replacement
			}

			if instr.Cond == old {
				instr.Cond = replacement
			}

			for i, a := range instr.Args {
				if a == old {
					instr.Args[i] = replacement
				}
			}
		}
	}
}

// isUsed reports whether any instruction in fn reads v as an operand.
func isUsed(fn *mir.Function, v mir.Value) bool {
	for _, bb := range fn.Blocks {
		for _, instr := range bb.Instr {
			if instr.Addr == v || instr.Val == v || instr.LHS == v || instr.RHS == v ||
				instr.Operand == v || instr.RetVal == v || instr.Cond == v {
				return true
			}

			for _, a := range instr.Args {
				if a == v {
					return true
				}
			}
		}
	}

	return false
}

// eraseInstr removes target from bb in place.
func eraseInstr(bb *mir.BasicBlock, target *mir.Instruction) {
	kept := bb.Instr[:0]

	for _, instr := range bb.Instr {
		if instr != target {
			kept = append(kept, instr)
		}
	}

	bb.Instr = kept
}

// collectAllocas returns every alloca instruction in fn, in the order they
// appear.
func collectAllocas(fn *mir.Function) []*mir.Instruction {
	var allocas []*mir.Instruction

	for _, bb := range fn.Blocks {
		for _, instr := range bb.Instr {
			if instr.Op == mir.OpAlloca {
				allocas = append(allocas, instr)
			}
		}
	}

	return allocas
}

// allocaUses is the load/store instructions addressing one alloca.
type allocaUses struct {
	loads  []*mir.Instruction
	stores []*mir.Instruction
}

func usesOf(fn *mir.Function, alloca *mir.Instruction) allocaUses {
	var u allocaUses

	for _, bb := range fn.Blocks {
		for _, instr := range bb.Instr {
			switch {
			case instr.Op == mir.OpStore && instr.Addr == mir.Value(alloca):
				u.stores = append(u.stores, instr)
			case instr.Op == mir.OpLoad && instr.Addr == mir.Value(alloca):
				u.loads = append(u.loads, instr)
			}
		}
	}

	return u
}

// indexInBlock returns instr's position within bb, or -1 if absent.
func indexInBlock(bb *mir.BasicBlock, instr *mir.Instruction) int {
	for i, in := range bb.Instr {
		if in == instr {
			return i
		}
	}

	return -1
}
