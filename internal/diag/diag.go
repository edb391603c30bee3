// Package diag collects and renders compiler diagnostics.
//
// Severity levels and a wide category catalogue make sense for an
// IDE-facing compiler but have no job here, so this package keeps only
// what every phase of a single-file batch compiler actually needs: a
// category per phase and a "[Line No N] message" rendering.
package diag

import (
	"fmt"
	"strings"
)

// Category identifies which phase raised a diagnostic.
type Category int

const (
	CategoryParse Category = iota
	CategoryBinding
	CategoryTyping
	CategoryLowering
	CategoryOptimizer
)

func (c Category) String() string {
	switch c {
	case CategoryParse:
		return "parse"
	case CategoryBinding:
		return "binding"
	case CategoryTyping:
		return "typing"
	case CategoryLowering:
		return "lowering"
	case CategoryOptimizer:
		return "optimizer"
	default:
		return "unknown"
	}
}

// Diagnostic is one reported error, tied to the source line of the
// offending node.
type Diagnostic struct {
	Category Category
	Line     int
	Message  string
}

// String renders the diagnostic exactly as spec.md §6/§7 requires:
// "[Line No N] message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("[Line No %d] %s", d.Line, d.Message)
}

// Engine accumulates diagnostics across one phase so that every error in a
// compilation is reported, not just the first.
type Engine struct {
	category Category
	diags    []Diagnostic
}

// NewEngine starts an engine for one phase's diagnostics.
func NewEngine(category Category) *Engine {
	return &Engine{category: category}
}

// Errorf records a diagnostic at line and returns false, so call sites can
// write "return e.Errorf(...)" from a bool-returning check function.
func (e *Engine) Errorf(line int, format string, args ...interface{}) bool {
	e.diags = append(e.diags, Diagnostic{
		Category: e.category,
		Line:     line,
		Message:  fmt.Sprintf(format, args...),
	})

	return false
}

// OK reports whether no diagnostic has been recorded.
func (e *Engine) OK() bool { return len(e.diags) == 0 }

// Diagnostics returns every diagnostic recorded so far, in report order.
func (e *Engine) Diagnostics() []Diagnostic { return e.diags }

// String renders every diagnostic, one per line.
func (e *Engine) String() string {
	lines := make([]string, len(e.diags))
	for i, d := range e.diags {
		lines[i] = d.String()
	}

	return strings.Join(lines, "\n")
}
