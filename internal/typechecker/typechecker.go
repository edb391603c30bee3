// Package typechecker implements the typing pass: it assigns a Type to
// every node, checks operator/call arities and operand types, and computes
// the "statement type" that verifies every control path through a function
// agrees on what it returns.
package typechecker

import (
	"github.com/cclang/cc/internal/ast"
	"github.com/cclang/cc/internal/diag"
	"github.com/cclang/cc/internal/symtab"
	"github.com/cclang/cc/internal/types"
)

// Type runs the typing pass over tu, which must already have passed
// binding. It returns whether every rule held, plus the diagnostics
// recorded along the way.
func Type(tu *ast.TranslationUnit) (bool, []diag.Diagnostic) {
	t := &typer{
		syms:  symtab.New[ast.Node](),
		diags: diag.NewEngine(diag.CategoryTyping),
	}

	t.syms.Push()

	for _, d := range tu.Decls {
		t.typeTopLevel(d)
	}

	t.syms.Pop()

	return t.diags.OK(), t.diags.Diagnostics()
}

type typer struct {
	syms  *symtab.Table[ast.Node]
	diags *diag.Engine
}

func (t *typer) typeTopLevel(n ast.Node) {
	switch v := n.(type) {
	case *ast.Declaration:
		t.typeDeclaration(v)
	case *ast.FunctionDefinition:
		t.typeFunctionDefinition(v)
	}
}

// declaredType builds the Type a declarator denotes from its specifiers and
// pointer/parameter shape.
func (t *typer) declaredType(specs *ast.DeclSpecifiers, declr *ast.Declarator) *types.Type {
	base := specs.Type.Kind
	direct := declr.Direct

	if direct.Params == nil {
		return scalarType(base, declr.PointerDepth)
	}

	list := direct.Params
	params := make([]*types.Type, 0, len(list.Params)+1)

	for _, p := range list.Params {
		params = append(params, t.declaredType(p.Specifiers, p.Decl))
	}

	if list.Ellipsis != nil {
		params = append(params, types.NewSimple(types.Ellipsis))
	}

	return types.NewFunction(params, scalarType(base, declr.PointerDepth))
}

func scalarType(base types.Simple, depth int) *types.Type {
	if depth == 0 {
		return types.NewSimple(base)
	}

	return types.NewPointer(depth, base)
}

// typeDeclaration types a declaration (global or local, variable or
// function-prototype) and registers it so later Identifier lookups can
// find its Type.
func (t *typer) typeDeclaration(d *ast.Declaration) {
	ty := t.declaredType(d.Specifiers, d.Decl)

	if d.Decl.Direct.IsFunction() && t.syms.Depth() != 1 {
		t.diags.Errorf(d.Line(), "function declaration %q must appear at global scope", d.Decl.Direct.Name)
	}

	d.SetNodeType(ty)
	t.syms.Insert(d.Decl.Direct.Name, d)
}

// typeFunctionDefinition types a function definition: ellipsis is rejected
// here (only a declaration's prototype may be variadic), the function name
// is registered before the body is typed (for recursive calls), and the
// body's computed statement type must equal the declared return type.
func (t *typer) typeFunctionDefinition(f *ast.FunctionDefinition) {
	if f.Decl.Direct.Params != nil && f.Decl.Direct.Params.Ellipsis != nil {
		t.diags.Errorf(f.Line(), "function definition %q may not declare a variadic parameter list", f.Decl.Direct.Name)
	}

	ty := t.declaredType(f.Specifiers, f.Decl)
	f.SetNodeType(ty)
	t.syms.Insert(f.Decl.Direct.Name, f)

	t.syms.Push()

	if f.Decl.Direct.Params != nil {
		for _, p := range f.Decl.Direct.Params.Params {
			pty := t.declaredType(p.Specifiers, p.Decl)
			p.SetNodeType(pty)
			t.syms.Insert(p.Decl.Direct.Name, p)
		}
	}

	bodyTy := t.typeCompound(f.Body)

	if !types.Equal(bodyTy, ty.Return) {
		t.diags.Errorf(f.Line(), "function %q: body type %s does not match declared return type %s",
			f.Decl.Direct.Name, bodyTy, ty.Return)
	}

	t.syms.Pop()
}

// statementType computes the "statement type" contribution a node makes to
// its enclosing compound's merge chain: control-flow constructs propagate
// whatever their branches/body can return, everything else (declarations,
// bare expressions) contributes void, matching spec's "expression
// statements contribute void regardless of their expression type" rule
// generalized to every non-control-flow statement kind.
func (t *typer) statementType(n ast.Node) *types.Type {
	switch v := n.(type) {
	case *ast.Compound:
		return t.typeCompound(v)
	case *ast.IfThenElse:
		return t.typeIf(v)
	case *ast.While:
		return t.typeWhile(v)
	case *ast.Return:
		return t.typeReturn(v)
	case *ast.JumpStatement:
		v.SetNodeType(types.VoidType)

		return types.VoidType
	default:
		t.typeNode(n)

		return types.VoidType
	}
}

func (t *typer) typeCompound(c *ast.Compound) *types.Type {
	running := types.VoidType

	for _, child := range c.Children {
		childTy := t.statementType(child)

		merged, ok := types.Merge(running, childTy)
		if !ok {
			t.diags.Errorf(child.Line(), "incompatible statement types %s and %s", running, childTy)

			continue
		}

		running = merged
	}

	c.SetNodeType(running)

	return running
}

func (t *typer) typeIf(n *ast.IfThenElse) *types.Type {
	condTy := t.typeNode(n.Cond)
	if !condTy.IsSimple(types.Bool) {
		t.diags.Errorf(n.Cond.Line(), "if condition must be bool, got %s", condTy)
	}

	result := t.statementType(n.Then)

	if n.Else != nil {
		elseTy := t.statementType(n.Else)

		merged, ok := types.Merge(result, elseTy)
		if !ok {
			t.diags.Errorf(n.Line(), "incompatible branch types %s and %s", result, elseTy)
		} else {
			result = merged
		}
	}

	n.SetNodeType(result)

	return result
}

func (t *typer) typeWhile(n *ast.While) *types.Type {
	condTy := t.typeNode(n.Cond)
	if !condTy.IsSimple(types.Bool) {
		t.diags.Errorf(n.Cond.Line(), "while condition must be bool, got %s", condTy)
	}

	bodyTy := t.statementType(n.Body)
	n.SetNodeType(bodyTy)

	return bodyTy
}

func (t *typer) typeReturn(n *ast.Return) *types.Type {
	ty := types.VoidType
	if n.Expr != nil {
		ty = t.typeNode(n.Expr)
	}

	n.SetNodeType(ty)

	return ty
}

// typeNode types an expression (or, for a Declaration reached as a
// statement, a declaration) and returns its own Type — as opposed to
// statementType's merge contribution.
func (t *typer) typeNode(n ast.Node) *types.Type {
	if n == nil {
		return types.VoidType
	}

	switch v := n.(type) {
	case *ast.Declaration:
		t.typeDeclaration(v)

		return v.NodeType()
	case *ast.IntegerLiteral:
		v.SetNodeType(types.IntType)

		return types.IntType
	case *ast.FloatLiteral:
		v.SetNodeType(types.FloatType)

		return types.FloatType
	case *ast.StringLiteral:
		v.SetNodeType(types.CharPtr)

		return types.CharPtr
	case *ast.Identifier:
		return t.typeIdentifier(v)
	case *ast.Expression:
		return t.typeExpression(v)
	case *ast.Assignment:
		return t.typeAssignment(v)
	case *ast.Binary:
		return t.typeBinary(v)
	case *ast.Unary:
		return t.typeUnary(v)
	default:
		return types.VoidType
	}
}

func (t *typer) typeIdentifier(v *ast.Identifier) *types.Type {
	node, ok := t.syms.Lookup(v.Name)
	if !ok {
		t.diags.Errorf(v.Line(), "undefined identifier %q", v.Name)
		v.SetNodeType(types.VoidType)

		return types.VoidType
	}

	ty := node.NodeType()
	v.SetNodeType(ty)

	return ty
}

func (t *typer) typeExpression(v *ast.Expression) *types.Type {
	last := types.VoidType
	for _, c := range v.Children {
		last = t.typeNode(c)
	}

	v.SetNodeType(last)

	return last
}

func (t *typer) typeAssignment(n *ast.Assignment) *types.Type {
	lhsTy := t.typeNode(n.LHS)
	rhsTy := t.typeNode(n.RHS)

	if !types.Equal(lhsTy, rhsTy) {
		t.diags.Errorf(n.Line(), "assignment type mismatch: %s = %s", lhsTy, rhsTy)
	}

	n.SetNodeType(lhsTy)

	return lhsTy
}

func (t *typer) typeBinary(n *ast.Binary) *types.Type {
	if n.Op == ast.BinFuncCall {
		return t.typeCall(n)
	}

	lhsTy := t.typeNode(n.LHS)
	rhsTy := t.typeNode(n.RHS)

	if !types.Equal(lhsTy, rhsTy) {
		t.diags.Errorf(n.Line(), "operand type mismatch: %s %s %s", lhsTy, n.Op, rhsTy)
	}

	result := lhsTy
	if n.Op.IsComparison() || n.Op.IsLogical() {
		result = types.BoolType
	}

	n.SetNodeType(result)

	return result
}

func (t *typer) typeCall(n *ast.Binary) *types.Type {
	calleeTy := t.typeNode(n.LHS)

	args, _ := n.RHS.(*ast.ArgumentList)

	var argNodes []ast.Node
	if args != nil {
		argNodes = args.Args
	}

	argTypes := make([]*types.Type, len(argNodes))
	for i, a := range argNodes {
		argTypes[i] = t.typeNode(a)
	}

	if args != nil {
		args.SetNodeType(types.VoidType)
	}

	if !calleeTy.IsFunction() {
		t.diags.Errorf(n.Line(), "call target is not a function")
		n.SetNodeType(types.VoidType)

		return types.VoidType
	}

	checkArgs(t.diags, n.Line(), calleeTy, argTypes)

	n.SetNodeType(calleeTy.Return)

	return calleeTy.Return
}

func checkArgs(diags *diag.Engine, line int, calleeTy *types.Type, argTypes []*types.Type) {
	params := calleeTy.Params

	required := params
	if calleeTy.Variadic {
		required = params[:len(params)-1]
	}

	if calleeTy.Variadic {
		if len(argTypes) < len(required) {
			diags.Errorf(line, "incompatible number of arguments")

			return
		}
	} else if len(argTypes) != len(required) {
		diags.Errorf(line, "incompatible number of arguments")

		return
	}

	for i, p := range required {
		if !types.Equal(p, argTypes[i]) {
			diags.Errorf(line, "argument %d type mismatch: expected %s, got %s", i+1, p, argTypes[i])
		}
	}
}

func (t *typer) typeUnary(n *ast.Unary) *types.Type {
	operandTy := t.typeNode(n.Operand)

	var result *types.Type

	switch n.Op {
	case ast.UnLogicalNot:
		if !operandTy.IsSimple(types.Bool) {
			t.diags.Errorf(n.Line(), "logical not requires bool, got %s", operandTy)
		}

		result = types.BoolType
	default:
		if !operandTy.IsSimple(types.Int) {
			t.diags.Errorf(n.Line(), "operator %s requires int, got %s", n.Op, operandTy)
		}

		result = types.IntType
	}

	n.SetNodeType(result)

	return result
}
