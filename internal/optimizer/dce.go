package optimizer

import "github.com/cclang/cc/internal/mir"

// removeDeadStores erases every alloca that has no loads at all (so no
// store to it can ever be observed), along with every store addressing it.
func removeDeadStores(fn *mir.Function) bool {
	changed := false

	for _, alloca := range collectAllocas(fn) {
		u := usesOf(fn, alloca)
		if len(u.loads) > 0 {
			continue
		}

		for _, store := range u.stores {
			eraseInstr(store.Block, store)
		}

		eraseInstr(alloca.Block, alloca)

		changed = true
	}

	return changed
}

// removeDeadInstructions erases any non-terminator, non-store, non-call
// instruction that nothing in fn reads. Terminators always matter for
// control flow, stores matter for their side effect regardless of whether
// the slot is ever read again, and calls may have side effects the
// language doesn't model.
func removeDeadInstructions(fn *mir.Function) bool {
	changed := false

	for _, bb := range fn.Blocks {
		kept := bb.Instr[:0]

		for _, instr := range bb.Instr {
			if instr.IsTerminator() || instr.Op == mir.OpStore || instr.Op == mir.OpCall {
				kept = append(kept, instr)

				continue
			}

			if isUsed(fn, instr) {
				kept = append(kept, instr)

				continue
			}

			changed = true
		}

		bb.Instr = kept
	}

	return changed
}
