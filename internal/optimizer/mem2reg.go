package optimizer

import "github.com/cclang/cc/internal/mir"

// promoteAllocas applies mem-to-register rules to every alloca in fn:
// skip allocas with no stores or no loads (dead-store elimination
// handles those), fully resolve the single-store case via dominance, walk
// same-block multi-store allocas in program order, and leave genuine
// multi-block multi-store cases untouched (no phi-node insertion).
func promoteAllocas(fn *mir.Function) bool {
	changed := false

	for _, alloca := range collectAllocas(fn) {
		u := usesOf(fn, alloca)

		if len(u.stores) == 0 || len(u.loads) == 0 {
			continue
		}

		if len(u.stores) == 1 {
			if promoteSingleStore(fn, alloca, u) {
				changed = true
			}

			continue
		}

		if promoteSameBlockMultiStore(alloca, u) {
			changed = true
		}
	}

	return changed
}

// promoteSingleStore replaces every load dominated by the alloca's sole
// store with the store's value. If every load was dominated (none read the
// slot before the store ran on every path reaching it), the store and the
// alloca itself are also erased.
func promoteSingleStore(fn *mir.Function, alloca *mir.Instruction, u allocaUses) bool {
	store := u.stores[0]
	dom := computeDomTree(fn)

	changed := false
	someLoadBeforeStore := false

	for _, load := range u.loads {
		var dominated bool

		if load.Block == store.Block {
			dominated = indexInBlock(store.Block, store) < indexInBlock(load.Block, load)
		} else {
			dominated = dom.dominates(store.Block, load.Block)
		}

		if dominated {
			replaceAllUses(fn, load, store.Val)
			eraseInstr(load.Block, load)

			changed = true
		} else {
			someLoadBeforeStore = true
		}
	}

	if !someLoadBeforeStore {
		eraseInstr(store.Block, store)
		eraseInstr(alloca.Block, alloca)

		changed = true
	}

	return changed
}

// promoteSameBlockMultiStore handles an alloca whose every load and store
// lie in one block: walk it in order, track the most recently stored
// value, and replace each load encountered with that value. Loads that
// precede any store of this alloca are left alone.
func promoteSameBlockMultiStore(alloca *mir.Instruction, u allocaUses) bool {
	block := u.stores[0].Block

	for _, load := range u.loads {
		if load.Block != block {
			return false
		}
	}

	for _, store := range u.stores {
		if store.Block != block {
			return false
		}
	}

	changed := false
	var prevStore *mir.Instruction

	kept := block.Instr[:0]

	for _, instr := range block.Instr {
		switch {
		case instr.Op == mir.OpStore && instr.Addr == mir.Value(alloca):
			prevStore = instr
			kept = append(kept, instr)
		case instr.Op == mir.OpLoad && instr.Addr == mir.Value(alloca) && prevStore != nil:
			replaceAllUses(block.Func, instr, prevStore.Val)
			changed = true
		default:
			kept = append(kept, instr)
		}
	}

	block.Instr = kept

	return changed
}
