package mir

import "fmt"

// Verify checks the well-formedness invariants lowering and every
// optimizer pass must preserve: every block has exactly one terminator and
// it is the last instruction, every branch target belongs to the same
// function, and a function with a non-void return type never falls through
// a block without reaching a Ret.
func Verify(m *Module) error {
	for _, f := range m.Functions {
		if err := verifyFunction(f); err != nil {
			return fmt.Errorf("function %s: %w", f.Name, err)
		}
	}

	return nil
}

// VerifyFunction checks a single function's well-formedness in isolation;
// codegen calls this immediately after canonicalizing each lowered
// function, and the optimizer calls it again after every round of its
// fixed-point loop.
func VerifyFunction(f *Function) error {
	return verifyFunction(f)
}

func verifyFunction(f *Function) error {
	if f.Blocks == nil {
		return nil
	}

	if len(f.Blocks) == 0 {
		return fmt.Errorf("function with a body must have at least one block")
	}

	known := make(map[*BasicBlock]bool, len(f.Blocks))
	for _, bb := range f.Blocks {
		known[bb] = true
	}

	for _, bb := range f.Blocks {
		if err := verifyBlock(bb, known); err != nil {
			return fmt.Errorf("block %s: %w", bb.Name, err)
		}
	}

	return nil
}

func verifyBlock(bb *BasicBlock, known map[*BasicBlock]bool) error {
	if len(bb.Instr) == 0 {
		return fmt.Errorf("block has no instructions")
	}

	for i, instr := range bb.Instr {
		last := i == len(bb.Instr)-1

		if instr.IsTerminator() && !last {
			return fmt.Errorf("terminator %q is not the last instruction", instr.Def())
		}

		if !instr.IsTerminator() && last {
			return fmt.Errorf("block falls off the end without a terminator")
		}

		switch instr.Op {
		case OpBr:
			if !known[instr.TargetTrue] {
				return fmt.Errorf("br targets a block outside this function")
			}
		case OpCondBr:
			if !known[instr.TargetTrue] || !known[instr.TargetFalse] {
				return fmt.Errorf("condbr targets a block outside this function")
			}
		}
	}

	return nil
}
