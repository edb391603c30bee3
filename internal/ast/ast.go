// Package ast defines the typed syntax tree the binder, typer, and lowering
// pass all walk. Node kinds are a closed, exhaustively-enumerated set (a
// tagged variant, not an open class hierarchy), so downstream passes
// dispatch on concrete Go type with a type switch rather than through a
// formal Visitor interface.
package ast

import (
	"fmt"
	"io"
	"strings"

	"github.com/cclang/cc/internal/mir"
	"github.com/cclang/cc/internal/types"
)

// Node is the common shape every node satisfies: a source line for
// diagnostics, and the two fields semantic analysis fills in — a resolved
// Type and, after lowering, the IR value or location the node produced.
type Node interface {
	Line() int
	NodeType() *types.Type
	SetNodeType(t *types.Type)
	IRValue() mir.Value
	SetIRValue(v mir.Value)
	String() string
	Dump(w io.Writer, indent int)
}

// Base is embedded by every concrete node and supplies the fields common to
// Node. node_type defaults to void until a semantic pass sets it.
type Base struct {
	SourceLine int
	Typ        *types.Type
	IR         mir.Value
}

func (b *Base) Line() int { return b.SourceLine }

func (b *Base) NodeType() *types.Type {
	if b.Typ == nil {
		return types.VoidType
	}

	return b.Typ
}

func (b *Base) SetNodeType(t *types.Type) { b.Typ = t }
func (b *Base) IRValue() mir.Value        { return b.IR }
func (b *Base) SetIRValue(v mir.Value)    { b.IR = v }

func indentStr(n int) string { return strings.Repeat("  ", n) }

func dumpLine(w io.Writer, indent int, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s%s\n", indentStr(indent), fmt.Sprintf(format, args...))
}

func dumpChild(w io.Writer, indent int, n Node) {
	if n == nil {
		dumpLine(w, indent, "<nil>")

		return
	}

	n.Dump(w, indent)
}

// BinaryOp is the operator vocabulary of a Binary node. FUNC_CALL repurposes
// Binary as a call expression: LHS is the callee, RHS is the ArgumentList.
type BinaryOp int

const (
	BinPlus BinaryOp = iota
	BinMinus
	BinMult
	BinDiv
	BinMod
	BinOr
	BinAnd
	BinXor
	BinLShift
	BinRShift
	BinGT
	BinGTE
	BinLT
	BinLTE
	BinEqual
	BinNotEqual
	BinLogicalOr
	BinLogicalAnd
	BinFuncCall
)

var binaryOpNames = map[BinaryOp]string{
	BinPlus: "+", BinMinus: "-", BinMult: "*", BinDiv: "/", BinMod: "%",
	BinOr: "|", BinAnd: "&", BinXor: "^", BinLShift: "<<", BinRShift: ">>",
	BinGT: ">", BinGTE: ">=", BinLT: "<", BinLTE: "<=",
	BinEqual: "==", BinNotEqual: "!=", BinLogicalOr: "||", BinLogicalAnd: "&&",
	BinFuncCall: "call",
}

func (op BinaryOp) String() string { return binaryOpNames[op] }

// IsComparison reports whether op is one of the six relational/equality
// operators, which always produce bool regardless of operand type.
func (op BinaryOp) IsComparison() bool {
	switch op {
	case BinGT, BinGTE, BinLT, BinLTE, BinEqual, BinNotEqual:
		return true
	default:
		return false
	}
}

// IsLogical reports whether op is one of the two logical operators, which
// also produce bool.
func (op BinaryOp) IsLogical() bool {
	return op == BinLogicalOr || op == BinLogicalAnd
}

// UnaryOp is the operator vocabulary of a Unary node.
type UnaryOp int

const (
	UnPlus UnaryOp = iota
	UnNeg
	UnPreInc
	UnPreDec
	UnPostInc
	UnPostDec
	UnNot
	UnLogicalNot
)

var unaryOpNames = map[UnaryOp]string{
	UnPlus: "+", UnNeg: "-", UnPreInc: "++(pre)", UnPreDec: "--(pre)",
	UnPostInc: "++(post)", UnPostDec: "--(post)", UnNot: "~", UnLogicalNot: "!",
}

func (op UnaryOp) String() string { return unaryOpNames[op] }

// IsIncDec reports whether op is one of the four increment/decrement forms.
func (op UnaryOp) IsIncDec() bool {
	switch op {
	case UnPreInc, UnPreDec, UnPostInc, UnPostDec:
		return true
	default:
		return false
	}
}

// IsPost reports whether op is a post-increment/decrement, which yields the
// pre-operation value rather than the updated one.
func (op UnaryOp) IsPost() bool { return op == UnPostInc || op == UnPostDec }

// AssignOp is the operator vocabulary of an Assignment node.
type AssignOp int

const (
	AssignPlain AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
	AssignAnd
	AssignOr
	AssignXor
	AssignShl
	AssignShr
)

var assignOpNames = map[AssignOp]string{
	AssignPlain: "=", AssignAdd: "+=", AssignSub: "-=", AssignMul: "*=",
	AssignDiv: "/=", AssignMod: "%=", AssignAnd: "&=", AssignOr: "|=",
	AssignXor: "^=", AssignShl: "<<=", AssignShr: ">>=",
}

func (op AssignOp) String() string { return assignOpNames[op] }

// BinOp returns the integer operation a compound assignment desugars to.
// Calling it on AssignPlain is a programming error; plain assignment has no
// matching binary op.
func (op AssignOp) BinOp() BinaryOp {
	switch op {
	case AssignAdd:
		return BinPlus
	case AssignSub:
		return BinMinus
	case AssignMul:
		return BinMult
	case AssignDiv:
		return BinDiv
	case AssignMod:
		return BinMod
	case AssignAnd:
		return BinAnd
	case AssignOr:
		return BinOr
	case AssignXor:
		return BinXor
	case AssignShl:
		return BinLShift
	case AssignShr:
		return BinRShift
	default:
		panic("ast: AssignPlain has no matching BinaryOp")
	}
}
