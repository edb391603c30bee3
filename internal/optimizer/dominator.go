package optimizer

import "github.com/cclang/cc/internal/mir"

// domTree answers "does a dominate b" queries over one function's control
// flow graph. The lab this repository is grounded on asked LLVM's
// DominatorTree for the same answer; without an equivalent Go binding this
// computes the same relation directly: Dom(entry) = {entry}, and
// Dom(b) = {b} union the intersection of Dom(p) over every predecessor p,
// iterated to a fixed point. Functions in this language are small enough
// that the naive dataflow form is plenty fast.
type domTree struct {
	dom map[*mir.BasicBlock]map[*mir.BasicBlock]bool
}

func computeDomTree(fn *mir.Function) *domTree {
	preds := predecessors(fn)

	all := make(map[*mir.BasicBlock]bool, len(fn.Blocks))
	for _, bb := range fn.Blocks {
		all[bb] = true
	}

	dom := make(map[*mir.BasicBlock]map[*mir.BasicBlock]bool, len(fn.Blocks))
	entry := fn.Blocks[0]
	dom[entry] = map[*mir.BasicBlock]bool{entry: true}

	for _, bb := range fn.Blocks[1:] {
		dom[bb] = cloneSet(all)
	}

	for changed := true; changed; {
		changed = false

		for _, bb := range fn.Blocks[1:] {
			var meet map[*mir.BasicBlock]bool

			for _, p := range preds[bb] {
				if meet == nil {
					meet = cloneSet(dom[p])
				} else {
					meet = intersect(meet, dom[p])
				}
			}

			if meet == nil {
				meet = map[*mir.BasicBlock]bool{}
			}

			meet[bb] = true

			if !setEqual(meet, dom[bb]) {
				dom[bb] = meet
				changed = true
			}
		}
	}

	return &domTree{dom: dom}
}

// dominates reports whether a dominates b; a block always dominates itself.
func (t *domTree) dominates(a, b *mir.BasicBlock) bool {
	return t.dom[b][a]
}

func predecessors(fn *mir.Function) map[*mir.BasicBlock][]*mir.BasicBlock {
	preds := make(map[*mir.BasicBlock][]*mir.BasicBlock, len(fn.Blocks))

	for _, bb := range fn.Blocks {
		term := bb.Terminator()
		if term == nil {
			continue
		}

		switch term.Op {
		case mir.OpBr:
			preds[term.TargetTrue] = append(preds[term.TargetTrue], bb)
		case mir.OpCondBr:
			preds[term.TargetTrue] = append(preds[term.TargetTrue], bb)
			preds[term.TargetFalse] = append(preds[term.TargetFalse], bb)
		}
	}

	return preds
}

func cloneSet(s map[*mir.BasicBlock]bool) map[*mir.BasicBlock]bool {
	out := make(map[*mir.BasicBlock]bool, len(s))
	for k := range s {
		out[k] = true
	}

	return out
}

func intersect(a, b map[*mir.BasicBlock]bool) map[*mir.BasicBlock]bool {
	out := make(map[*mir.BasicBlock]bool)

	for k := range a {
		if b[k] {
			out[k] = true
		}
	}

	return out
}

func setEqual(a, b map[*mir.BasicBlock]bool) bool {
	if len(a) != len(b) {
		return false
	}

	for k := range a {
		if !b[k] {
			return false
		}
	}

	return true
}
