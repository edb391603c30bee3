package ast

import (
	"fmt"
	"io"

	"github.com/cclang/cc/internal/types"
)

// TranslationUnit is the root node: the whole source file, a sequence of
// top-level declarations and function definitions.
type TranslationUnit struct {
	Base
	Decls []Node
}

func (n *TranslationUnit) String() string { return "TranslationUnit" }
func (n *TranslationUnit) Dump(w io.Writer, indent int) {
	dumpLine(w, indent, "TranslationUnit")

	for _, d := range n.Decls {
		dumpChild(w, indent+1, d)
	}
}

// Declaration is a top-level or local variable/function declaration with no
// body (e.g. "int x;" or "int f(int);").
type Declaration struct {
	Base
	Specifiers *DeclSpecifiers
	Decl       *Declarator
}

func (n *Declaration) String() string {
	return fmt.Sprintf("Declaration(%s)", n.Decl.Direct.Name)
}

func (n *Declaration) Dump(w io.Writer, indent int) {
	dumpLine(w, indent, "Declaration: %s", n.Decl.Direct.Name)
	dumpChild(w, indent+1, n.Specifiers)
	dumpChild(w, indent+1, n.Decl)
}

// FunctionDefinition is a function declarator paired with a body.
type FunctionDefinition struct {
	Base
	Specifiers *DeclSpecifiers
	Decl       *Declarator
	Body       *Compound
}

func (n *FunctionDefinition) String() string {
	return fmt.Sprintf("FunctionDefinition(%s)", n.Decl.Direct.Name)
}

func (n *FunctionDefinition) Dump(w io.Writer, indent int) {
	dumpLine(w, indent, "FunctionDefinition: %s", n.Decl.Direct.Name)
	dumpChild(w, indent+1, n.Specifiers)
	dumpChild(w, indent+1, n.Decl)
	dumpChild(w, indent+1, n.Body)
}

// DeclSpecifiers holds the base type and any qualifiers preceding a
// declarator.
type DeclSpecifiers struct {
	Base
	Type       *TypeSpecifier
	Qualifiers []*TypeQualifier
}

func (n *DeclSpecifiers) String() string { return "DeclSpecifiers(" + n.Type.String() + ")" }
func (n *DeclSpecifiers) Dump(w io.Writer, indent int) {
	dumpLine(w, indent, "DeclSpecifiers")
	dumpChild(w, indent+1, n.Type)

	for _, q := range n.Qualifiers {
		dumpChild(w, indent+1, q)
	}
}

// TypeSpecifier names one of the scalar base types.
type TypeSpecifier struct {
	Base
	Kind types.Simple
}

func (n *TypeSpecifier) String() string { return n.Kind.String() }
func (n *TypeSpecifier) Dump(w io.Writer, indent int) {
	dumpLine(w, indent, "TypeSpecifier: %s", n.Kind)
}

// TypeQualifier is a qualifier keyword (e.g. const) attached to a
// declaration; the core passes do not act on it, it is carried through for
// completeness of the grammar spec.md's node-kind list names.
type TypeQualifier struct {
	Base
	Name string
}

func (n *TypeQualifier) String() string { return n.Name }
func (n *TypeQualifier) Dump(w io.Writer, indent int) {
	dumpLine(w, indent, "TypeQualifier: %s", n.Name)
}

// Declarator is a pointer depth applied to a DirectDeclarator.
type Declarator struct {
	Base
	PointerDepth int
	Direct       *DirectDeclarator
}

func (n *Declarator) String() string {
	return fmt.Sprintf("Declarator(depth=%d, %s)", n.PointerDepth, n.Direct.String())
}

func (n *Declarator) Dump(w io.Writer, indent int) {
	dumpLine(w, indent, "Declarator: pointerDepth=%d", n.PointerDepth)
	dumpChild(w, indent+1, n.Direct)
}

// DirectDeclarator names the identifier being declared and, if it declares
// a function, its parameter list.
type DirectDeclarator struct {
	Base
	Name   string
	Params *ParameterList // nil for a non-function declarator
}

func (n *DirectDeclarator) IsFunction() bool { return n.Params != nil }

func (n *DirectDeclarator) String() string {
	if n.Params != nil {
		return n.Name + "(...)"
	}

	return n.Name
}

func (n *DirectDeclarator) Dump(w io.Writer, indent int) {
	dumpLine(w, indent, "DirectDeclarator: %s", n.Name)

	if n.Params != nil {
		dumpChild(w, indent+1, n.Params)
	}
}

// ParameterList is a function declarator's formal parameters plus an
// optional trailing ellipsis marking the function variadic.
type ParameterList struct {
	Base
	Params   []*ParameterDecl
	Ellipsis *Ellipsis // nil unless the list ends in "..."
}

func (n *ParameterList) String() string { return "ParameterList" }
func (n *ParameterList) Dump(w io.Writer, indent int) {
	dumpLine(w, indent, "ParameterList")

	for _, p := range n.Params {
		dumpChild(w, indent+1, p)
	}

	if n.Ellipsis != nil {
		dumpChild(w, indent+1, n.Ellipsis)
	}
}

// ParameterDecl is one named, typed formal parameter.
type ParameterDecl struct {
	Base
	Specifiers *DeclSpecifiers
	Decl       *Declarator
}

func (n *ParameterDecl) String() string { return n.Decl.Direct.Name }
func (n *ParameterDecl) Dump(w io.Writer, indent int) {
	dumpLine(w, indent, "ParameterDecl: %s", n.Decl.Direct.Name)
	dumpChild(w, indent+1, n.Specifiers)
	dumpChild(w, indent+1, n.Decl)
}

// Ellipsis marks a variadic parameter-list tail ("...").
type Ellipsis struct {
	Base
}

func (n *Ellipsis) String() string               { return "..." }
func (n *Ellipsis) Dump(w io.Writer, indent int) { dumpLine(w, indent, "Ellipsis") }

// Identifier is a bare name reference.
type Identifier struct {
	Base
	Name string
}

func (n *Identifier) String() string { return n.Name }
func (n *Identifier) Dump(w io.Writer, indent int) {
	dumpLine(w, indent, "Identifier: %s", n.Name)
}

// IntegerLiteral is a decimal int constant.
type IntegerLiteral struct {
	Base
	Value int32
}

func (n *IntegerLiteral) String() string { return fmt.Sprintf("%d", n.Value) }
func (n *IntegerLiteral) Dump(w io.Writer, indent int) {
	dumpLine(w, indent, "IntegerLiteral: %d", n.Value)
}

// FloatLiteral is a decimal float constant.
type FloatLiteral struct {
	Base
	Value float32
}

func (n *FloatLiteral) String() string { return fmt.Sprintf("%g", n.Value) }
func (n *FloatLiteral) Dump(w io.Writer, indent int) {
	dumpLine(w, indent, "FloatLiteral: %g", n.Value)
}

// StringLiteral is a quoted string constant, typed char*.
type StringLiteral struct {
	Base
	Value []byte
}

func (n *StringLiteral) String() string { return fmt.Sprintf("%q", string(n.Value)) }
func (n *StringLiteral) Dump(w io.Writer, indent int) {
	dumpLine(w, indent, "StringLiteral: %q", string(n.Value))
}

// Compound is a brace-delimited block; it introduces its own scope unless
// it is the immediate body of a FunctionDefinition (see the binder's
// prologue handling).
type Compound struct {
	Base
	Children []Node
}

func (n *Compound) String() string { return "Compound" }
func (n *Compound) Dump(w io.Writer, indent int) {
	dumpLine(w, indent, "Compound")

	for _, c := range n.Children {
		dumpChild(w, indent+1, c)
	}
}

// Expression is a comma sequence of assignment-expressions; it may be
// empty (a bare ";").
type Expression struct {
	Base
	Children []Node
}

func (n *Expression) String() string { return "Expression" }
func (n *Expression) Dump(w io.Writer, indent int) {
	dumpLine(w, indent, "Expression")

	for _, c := range n.Children {
		dumpChild(w, indent+1, c)
	}
}

// Assignment is "lhs op rhs" for the plain and compound assignment
// operators; lhs must be an Identifier.
type Assignment struct {
	Base
	LHS Node
	Op  AssignOp
	RHS Node
}

func (n *Assignment) String() string { return "Assignment(" + n.Op.String() + ")" }
func (n *Assignment) Dump(w io.Writer, indent int) {
	dumpLine(w, indent, "Assignment: %s", n.Op)
	dumpChild(w, indent+1, n.LHS)
	dumpChild(w, indent+1, n.RHS)
}

// Binary is a two-operand expression; when Op is BinFuncCall, LHS is the
// callee and RHS is the ArgumentList.
type Binary struct {
	Base
	LHS Node
	Op  BinaryOp
	RHS Node
}

func (n *Binary) String() string { return "Binary(" + n.Op.String() + ")" }
func (n *Binary) Dump(w io.Writer, indent int) {
	dumpLine(w, indent, "Binary: %s", n.Op)
	dumpChild(w, indent+1, n.LHS)
	dumpChild(w, indent+1, n.RHS)
}

// Unary is a one-operand expression, including the four increment/decrement
// forms.
type Unary struct {
	Base
	Op      UnaryOp
	Operand Node
}

func (n *Unary) String() string { return "Unary(" + n.Op.String() + ")" }
func (n *Unary) Dump(w io.Writer, indent int) {
	dumpLine(w, indent, "Unary: %s", n.Op)
	dumpChild(w, indent+1, n.Operand)
}

// Return is "return expr;". The parser builds a JumpStatement, not a
// Return, for a bare "return;"; a Return with a nil Expr is lowered as
// "return void".
type Return struct {
	Base
	Expr Node
}

func (n *Return) String() string { return "Return" }
func (n *Return) Dump(w io.Writer, indent int) {
	dumpLine(w, indent, "Return")

	if n.Expr != nil {
		dumpChild(w, indent+1, n.Expr)
	}
}

// IfThenElse is "if (cond) then" or "if (cond) then else else_". Else is
// nil in the single-arm form.
type IfThenElse struct {
	Base
	Cond Node
	Then Node
	Else Node
}

func (n *IfThenElse) String() string { return "IfThenElse" }
func (n *IfThenElse) Dump(w io.Writer, indent int) {
	dumpLine(w, indent, "IfThenElse")
	dumpChild(w, indent+1, n.Cond)
	dumpChild(w, indent+1, n.Then)

	if n.Else != nil {
		dumpChild(w, indent+1, n.Else)
	}
}

// While is "while (cond) body".
type While struct {
	Base
	Cond Node
	Body Node
}

func (n *While) String() string { return "While" }
func (n *While) Dump(w io.Writer, indent int) {
	dumpLine(w, indent, "While")
	dumpChild(w, indent+1, n.Cond)
	dumpChild(w, indent+1, n.Body)
}

// ArgumentList is the comma-separated argument expressions of a call.
type ArgumentList struct {
	Base
	Args []Node
}

func (n *ArgumentList) String() string { return "ArgumentList" }
func (n *ArgumentList) Dump(w io.Writer, indent int) {
	dumpLine(w, indent, "ArgumentList")

	for _, a := range n.Args {
		dumpChild(w, indent+1, a)
	}
}

// JumpStatement is a bare "return;" with no value, distinct from
// Return(expr). Its statement type is void; the typer does not check
// that the enclosing function returns void.
type JumpStatement struct {
	Base
}

func (n *JumpStatement) String() string { return "JumpStatement(return)" }
func (n *JumpStatement) Dump(w io.Writer, indent int) {
	dumpLine(w, indent, "JumpStatement: return")
}
