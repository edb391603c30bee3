// Package optimizer runs the two fixed-point driver passes a lowered
// module goes through before it is printed: mem-to-register promotion
// (paired with dead-store and dead-instruction elimination) and constant
// folding (paired with dead-instruction elimination).
//
// Both drivers are grounded directly in the original lab's
// code_optimization.cpp, one function at a time, iterated until a pass
// makes no further change. The lab's DominatorTree (LLVM's) is replaced
// here by a hand-rolled iterative dominator-set computation, and its
// per-value use-lists are replaced by direct operand scans, since this IR
// keeps neither.
package optimizer

import (
	"github.com/cclang/cc/internal/diag"
	"github.com/cclang/cc/internal/mir"
)

// Optimize runs both driver passes over every defined function in m.
// A verifier failure after any mutation is treated as a compiler bug and
// reported as a CategoryOptimizer diagnostic, so the pipeline aborts
// uniformly rather than panicking, matching every other phase's
// error-return idiom.
func Optimize(m *mir.Module) (bool, []diag.Diagnostic) {
	diags := diag.NewEngine(diag.CategoryOptimizer)

	for _, fn := range m.Functions {
		if fn.Blocks == nil {
			continue
		}

		if !runToFixedPoint(fn, diags, mem2regStep) {
			continue
		}

		runToFixedPoint(fn, diags, constantFoldStep)
	}

	return diags.OK(), diags.Diagnostics()
}

// mem2regStep runs one iteration of promotion + dead-store elimination +
// dead-instruction elimination, reporting whether any of the three changed
// the function.
func mem2regStep(fn *mir.Function) bool {
	changed := promoteAllocas(fn)
	changed = removeDeadStores(fn) || changed
	changed = removeDeadInstructions(fn) || changed

	return changed
}

// constantFoldStep runs one iteration of constant propagation + dead
// instruction elimination.
func constantFoldStep(fn *mir.Function) bool {
	changed := propagateConstants(fn)
	changed = removeDeadInstructions(fn) || changed

	return changed
}

// runToFixedPoint repeats pass on fn, verifying after every mutation, until
// a round makes no change. It returns false (and stops iterating) the
// moment verification fails, so the caller does not feed a broken function
// into the next driver.
func runToFixedPoint(fn *mir.Function, diags *diag.Engine, pass func(*mir.Function) bool) bool {
	for {
		changed := pass(fn)

		if err := mir.VerifyFunction(fn); err != nil {
			diags.Errorf(fn.Line, "internal error: ir verification failed for %q during optimization: %v", fn.Name, err)

			return false
		}

		if !changed {
			return true
		}
	}
}
