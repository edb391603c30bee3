// Package resolver implements the binding pass: it walks a translation
// unit verifying every identifier resolves to an in-scope declaration and
// that no two declarations in the same innermost scope share a name.
package resolver

import (
	"github.com/cclang/cc/internal/ast"
	"github.com/cclang/cc/internal/diag"
	"github.com/cclang/cc/internal/symtab"
)

// Bind runs the binding pass over tu. It returns whether every identifier
// resolved and every scope was free of redeclarations, plus the
// diagnostics recorded along the way (more than one error may be reported
// per compilation).
func Bind(tu *ast.TranslationUnit) (bool, []diag.Diagnostic) {
	b := &binder{
		syms:  symtab.New[ast.Node](),
		diags: diag.NewEngine(diag.CategoryBinding),
	}

	b.syms.Push()

	for _, d := range tu.Decls {
		b.bindTopLevel(d)
	}

	b.syms.Pop()

	return b.diags.OK(), b.diags.Diagnostics()
}

type binder struct {
	syms  *symtab.Table[ast.Node]
	diags *diag.Engine
}

func (b *binder) redeclare(name string, line int) {
	prev, _ := b.syms.LookupInnermost(name)
	b.diags.Errorf(line, "redeclaration of %q, previously declared at line %d", name, prev.Line())
}

func (b *binder) insert(name string, node ast.Node, line int) {
	if !b.syms.Insert(name, node) {
		b.redeclare(name, line)
	}
}

func (b *binder) bindTopLevel(n ast.Node) {
	switch v := n.(type) {
	case *ast.Declaration:
		b.bindDeclaration(v)
	case *ast.FunctionDefinition:
		b.bindFunctionDefinition(v)
	default:
		b.bindNode(n)
	}
}

// bindDeclaration records the declared identifier in the current frame,
// then binds its declarator (which, for a function declarator, pushes and
// pops its own parameter frame — no body exists to inherit it).
func (b *binder) bindDeclaration(d *ast.Declaration) {
	name := d.Decl.Direct.Name
	b.insert(name, d, d.Line())
	b.bindDeclarator(d.Decl, false)
}

// bindDeclarator binds decl's direct declarator. prologue controls whether
// a pushed parameter frame is left in place for the caller (a
// FunctionDefinition body) instead of being popped immediately.
func (b *binder) bindDeclarator(decl *ast.Declarator, prologue bool) {
	b.bindDirectDeclarator(decl.Direct, prologue)
}

func (b *binder) bindDirectDeclarator(dd *ast.DirectDeclarator, prologue bool) {
	if dd.Params == nil {
		return
	}

	b.syms.Push()

	for _, p := range dd.Params.Params {
		name := p.Decl.Direct.Name
		b.insert(name, p, p.Line())
	}

	if !prologue {
		b.syms.Pop()
	}
}

// bindFunctionDefinition implements the prologue protocol: the declarator
// is bound with its parameter frame left in place, the body's statements
// are bound directly into that same frame (the body's own Compound does
// not push another), and the parameter frame is popped once the whole
// definition has been processed.
func (b *binder) bindFunctionDefinition(f *ast.FunctionDefinition) {
	name := f.Decl.Direct.Name
	b.insert(name, f, f.Line())
	b.bindDeclarator(f.Decl, true)
	b.bindCompoundChildren(f.Body)
	b.syms.Pop()
}

func (b *binder) bindCompoundChildren(c *ast.Compound) {
	for _, child := range c.Children {
		b.bindNode(child)
	}
}

func (b *binder) bindNode(n ast.Node) {
	if n == nil {
		return
	}

	switch v := n.(type) {
	case *ast.Declaration:
		b.bindDeclaration(v)
	case *ast.FunctionDefinition:
		b.bindFunctionDefinition(v)
	case *ast.Compound:
		b.syms.Push()
		b.bindCompoundChildren(v)
		b.syms.Pop()
	case *ast.Expression:
		for _, c := range v.Children {
			b.bindNode(c)
		}
	case *ast.Assignment:
		b.bindNode(v.LHS)
		b.bindNode(v.RHS)
	case *ast.Binary:
		b.bindNode(v.LHS)
		b.bindNode(v.RHS)
	case *ast.Unary:
		b.bindNode(v.Operand)
	case *ast.Return:
		b.bindNode(v.Expr)
	case *ast.JumpStatement:
		// no operand to bind
	case *ast.IfThenElse:
		b.bindNode(v.Cond)
		b.bindNode(v.Then)
		b.bindNode(v.Else)
	case *ast.While:
		b.bindNode(v.Cond)
		b.bindNode(v.Body)
	case *ast.ArgumentList:
		for _, a := range v.Args {
			b.bindNode(a)
		}
	case *ast.Identifier:
		if _, ok := b.syms.Lookup(v.Name); !ok {
			b.diags.Errorf(v.Line(), "undefined identifier %q", v.Name)
		}
	case *ast.IntegerLiteral, *ast.FloatLiteral, *ast.StringLiteral:
		// leaves
	}
}
