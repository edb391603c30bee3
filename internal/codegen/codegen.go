// Package codegen lowers a bound and typed translation unit to the MIR
// intermediate representation: one IR function per source function
// definition, allocas and loads/stores for locals, branches for control
// flow, and calls for function invocation.
package codegen

import (
	"github.com/cclang/cc/internal/ast"
	"github.com/cclang/cc/internal/diag"
	"github.com/cclang/cc/internal/mir"
	"github.com/cclang/cc/internal/symtab"
	"github.com/cclang/cc/internal/types"
)

// Lower lowers tu (which must already be bound and typed) into a fresh MIR
// module. It returns the module, whether every function verified, and any
// diagnostics recorded (a verifier failure is reported as a lowering
// diagnostic rather than panicking, so the driver can abort the pipeline
// the same way any other phase failure does).
func Lower(tu *ast.TranslationUnit, moduleName string) (*mir.Module, bool, []diag.Diagnostic) {
	l := &lowerer{
		diags:  diag.NewEngine(diag.CategoryLowering),
		module: mir.NewModule(moduleName),
		vars:   symtab.New[mir.Value](),
		funcs:  symtab.New[*mir.Function](),
	}
	l.b = mir.NewBuilder(l.module)

	l.vars.Push()
	l.funcs.Push()

	for _, d := range tu.Decls {
		l.lowerTopLevel(d)
	}

	l.funcs.Pop()
	l.vars.Pop()

	return l.module, l.diags.OK(), l.diags.Diagnostics()
}

type lowerer struct {
	diags  *diag.Engine
	module *mir.Module
	b      *mir.Builder
	vars   *symtab.Table[mir.Value]
	funcs  *symtab.Table[*mir.Function]
}

func (l *lowerer) lowerTopLevel(n ast.Node) {
	switch v := n.(type) {
	case *ast.Declaration:
		l.lowerGlobalDeclaration(v)
	case *ast.FunctionDefinition:
		l.lowerFunctionDefinition(v)
	}
}

func lowerParams(list *ast.ParameterList) []*mir.Param {
	if list == nil {
		return nil
	}

	params := make([]*mir.Param, 0, len(list.Params))

	for i, p := range list.Params {
		params = append(params, &mir.Param{
			Name: p.Decl.Direct.Name,
			Typ:  LowerType(p.NodeType()),
			Idx:  i,
		})
	}

	return params
}

// declareFunction registers ty/name/paramList as an IR function, reusing an
// existing declaration (e.g. a forward prototype seen earlier) instead of
// creating a duplicate.
func (l *lowerer) declareFunction(ty *types.Type, name string, paramList *ast.ParameterList, line int) *mir.Function {
	if fn, ok := l.funcs.LookupInnermost(name); ok {
		return fn
	}

	fn := mir.NewFunction(name, lowerParams(paramList), LowerType(ty.Return), ty.Variadic)
	fn.Line = line
	l.module.Functions = append(l.module.Functions, fn)
	l.funcs.Insert(name, fn)

	return fn
}

func (l *lowerer) lowerGlobalDeclaration(d *ast.Declaration) {
	ty := d.NodeType()
	name := d.Decl.Direct.Name

	if ty.IsFunction() {
		l.declareFunction(ty, name, d.Decl.Direct.Params, d.Line())

		return
	}

	g := &mir.GlobalVar{Name: name, Typ: LowerType(ty)}
	l.module.Globals = append(l.module.Globals, g)
	l.vars.Insert(name, g)
}

func (l *lowerer) lowerFunctionDefinition(f *ast.FunctionDefinition) {
	ty := f.NodeType()
	fn := l.declareFunction(ty, f.Decl.Direct.Name, f.Decl.Direct.Params, f.Line())

	l.b.SetFunction(fn)
	entry := fn.NewBlock("entry")
	l.b.SetInsertPoint(entry)

	l.vars.Push()

	if f.Decl.Direct.Params != nil {
		for i, p := range f.Decl.Direct.Params.Params {
			formal := fn.Params[i]
			slot := l.b.Alloca(formal.Typ, formal.Name)
			l.b.Store(formal, slot)
			l.vars.Insert(p.Decl.Direct.Name, slot)
		}
	}

	l.lowerCompoundChildren(f.Body)

	if fn.RetType.Kind == mir.TyVoid && l.b.InsertBlock().Terminator() == nil {
		l.b.RetVoid()
	}

	l.vars.Pop()

	canonicalizeFunction(fn)

	if err := mir.VerifyFunction(fn); err != nil {
		l.diags.Errorf(f.Line(), "internal error: ir verification failed for %q: %v", fn.Name, err)
	}
}

// canonicalizeFunction truncates every block at its first terminator and
// drops any block left with no instructions at all (an if/else merge block
// that both arms already terminated past, e.g.).
func canonicalizeFunction(fn *mir.Function) {
	kept := fn.Blocks[:0]

	for _, bb := range fn.Blocks {
		bb.Canonicalize()

		if len(bb.Instr) > 0 {
			kept = append(kept, bb)
		}
	}

	fn.Blocks = kept
}

func (l *lowerer) lowerCompoundChildren(c *ast.Compound) {
	for _, child := range c.Children {
		l.lowerStmt(child)
	}
}

func (l *lowerer) lowerStmt(n ast.Node) {
	switch v := n.(type) {
	case *ast.Compound:
		l.vars.Push()
		l.lowerCompoundChildren(v)
		l.vars.Pop()
	case *ast.Declaration:
		l.lowerLocalDeclaration(v)
	case *ast.Return:
		l.lowerReturn(v)
	case *ast.JumpStatement:
		l.b.RetVoid()
	case *ast.IfThenElse:
		l.lowerIf(v)
	case *ast.While:
		l.lowerWhile(v)
	default:
		l.lowerExpr(n)
	}
}

func (l *lowerer) lowerLocalDeclaration(d *ast.Declaration) {
	irTy := LowerType(d.NodeType())
	slot := l.b.Alloca(irTy, d.Decl.Direct.Name)
	l.vars.Insert(d.Decl.Direct.Name, slot)
}

func (l *lowerer) lowerReturn(n *ast.Return) {
	if n.Expr == nil {
		l.b.RetVoid()

		return
	}

	l.b.Ret(l.lowerExpr(n.Expr))
}

// lowerIf creates then/else/merge blocks in source order, emits the
// cond-br from the block active on entry, lowers each arm ending it with a
// jump to merge unless the arm already terminated, and leaves the
// insertion point on merge.
func (l *lowerer) lowerIf(n *ast.IfThenElse) {
	fn := l.b.Func()

	thenBB := fn.NewBlock("if.then")

	var elseBB *mir.BasicBlock
	if n.Else != nil {
		elseBB = fn.NewBlock("if.else")
	}

	mergeBB := fn.NewBlock("if.merge")

	falseTarget := mergeBB
	if elseBB != nil {
		falseTarget = elseBB
	}

	cond := l.lowerExpr(n.Cond)
	l.b.CondBr(cond, thenBB, falseTarget)

	l.b.SetInsertPoint(thenBB)
	l.lowerStmt(n.Then)

	if l.b.InsertBlock().Terminator() == nil {
		l.b.Br(mergeBB)
	}

	if elseBB != nil {
		l.b.SetInsertPoint(elseBB)
		l.lowerStmt(n.Else)

		if l.b.InsertBlock().Terminator() == nil {
			l.b.Br(mergeBB)
		}
	}

	l.b.SetInsertPoint(mergeBB)
}

// lowerWhile creates cond/body/merge blocks, jumps into cond, lowers the
// condition and branches to body/merge, lowers the body and jumps back to
// cond, and leaves the insertion point on merge.
func (l *lowerer) lowerWhile(n *ast.While) {
	fn := l.b.Func()

	condBB := fn.NewBlock("while.cond")
	bodyBB := fn.NewBlock("while.body")
	mergeBB := fn.NewBlock("while.merge")

	if l.b.InsertBlock().Terminator() == nil {
		l.b.Br(condBB)
	}

	l.b.SetInsertPoint(condBB)
	cond := l.lowerExpr(n.Cond)
	l.b.CondBr(cond, bodyBB, mergeBB)

	l.b.SetInsertPoint(bodyBB)
	l.lowerStmt(n.Body)

	if l.b.InsertBlock().Terminator() == nil {
		l.b.Br(condBB)
	}

	l.b.SetInsertPoint(mergeBB)
}

func (l *lowerer) lowerExpr(n ast.Node) mir.Value {
	switch v := n.(type) {
	case *ast.Identifier:
		addr, ok := l.vars.Lookup(v.Name)
		if !ok {
			return &mir.ConstInt{Typ: mir.Primitive(mir.TyI32)}
		}

		return l.b.Load(addr)
	case *ast.IntegerLiteral:
		return &mir.ConstInt{Val: int64(v.Value), Typ: mir.Primitive(mir.TyI32)}
	case *ast.FloatLiteral:
		return &mir.ConstFloat{Val: v.Value}
	case *ast.StringLiteral:
		return l.b.GlobalStringPtr(l.module.InternString(string(v.Value)))
	case *ast.Expression:
		var last mir.Value

		for _, c := range v.Children {
			last = l.lowerExpr(c)
		}

		return last
	case *ast.Assignment:
		return l.lowerAssignment(v)
	case *ast.Binary:
		if v.Op == ast.BinFuncCall {
			return l.lowerCall(v)
		}

		return l.lowerBinary(v)
	case *ast.Unary:
		return l.lowerUnary(v)
	default:
		return nil
	}
}

func (l *lowerer) lowerAssignment(n *ast.Assignment) mir.Value {
	id, ok := n.LHS.(*ast.Identifier)
	if !ok {
		return nil
	}

	addr, _ := l.vars.Lookup(id.Name)

	if n.Op == ast.AssignPlain {
		val := l.lowerExpr(n.RHS)
		l.b.Store(val, addr)

		return val
	}

	rhs := l.lowerExpr(n.RHS)
	lhsVal := l.b.Load(addr)
	result := l.b.BinOp(binOpToMIR(n.Op.BinOp()), lhsVal, rhs)
	l.b.Store(result, addr)

	return lhsVal
}

func (l *lowerer) lowerBinary(n *ast.Binary) mir.Value {
	lhs := l.lowerExpr(n.LHS)
	rhs := l.lowerExpr(n.RHS)

	if n.Op.IsComparison() {
		return l.b.Cmp(cmpOpToMIR(n.Op), lhs, rhs)
	}

	if n.Op.IsLogical() {
		op := mir.BinAnd
		if n.Op == ast.BinLogicalOr {
			op = mir.BinOr
		}

		return l.b.BinOp(op, l.toBool(lhs), l.toBool(rhs))
	}

	return l.b.BinOp(binOpToMIR(n.Op), lhs, rhs)
}

// toBool normalizes v to i1 via "v != 0", the coercion a non-bool operand
// of && or || needs before the bitwise and/or runs on i1 rather than on
// the operand's own (possibly wider) type.
func (l *lowerer) toBool(v mir.Value) mir.Value {
	if v.Type().Kind == mir.TyI1 {
		return v
	}

	return l.b.Cmp(mir.CmpNe, v, &mir.ConstInt{Typ: v.Type()})
}

func (l *lowerer) lowerCall(n *ast.Binary) mir.Value {
	callee, ok := n.LHS.(*ast.Identifier)
	if !ok {
		return nil
	}

	fn, ok := l.funcs.Lookup(callee.Name)
	if !ok {
		return nil
	}

	var argNodes []ast.Node
	if args, ok := n.RHS.(*ast.ArgumentList); ok {
		argNodes = args.Args
	}

	argVals := make([]mir.Value, len(argNodes))
	for i, a := range argNodes {
		argVals[i] = l.lowerExpr(a)
	}

	return l.b.Call(fn, argVals)
}

func (l *lowerer) lowerUnary(n *ast.Unary) mir.Value {
	switch n.Op {
	case ast.UnPlus:
		return l.lowerExpr(n.Operand)
	case ast.UnNeg:
		v := l.lowerExpr(n.Operand)

		return l.b.BinOp(mir.BinSub, &mir.ConstInt{Typ: v.Type()}, v)
	case ast.UnNot, ast.UnLogicalNot:
		v := l.lowerExpr(n.Operand)

		return l.b.BinOp(mir.BinXor, v, &mir.ConstInt{Val: -1, Typ: v.Type()})
	case ast.UnPreInc, ast.UnPreDec, ast.UnPostInc, ast.UnPostDec:
		return l.lowerIncDec(n)
	default:
		return nil
	}
}

// lowerIncDec implements the four increment/decrement forms: load, add or
// subtract one, store back; pre-forms yield the updated value, post-forms
// yield the value read before the update.
func (l *lowerer) lowerIncDec(n *ast.Unary) mir.Value {
	id, ok := n.Operand.(*ast.Identifier)
	if !ok {
		return nil
	}

	addr, _ := l.vars.Lookup(id.Name)
	old := l.b.Load(addr)

	op := mir.BinAdd
	if n.Op == ast.UnPreDec || n.Op == ast.UnPostDec {
		op = mir.BinSub
	}

	updated := l.b.BinOp(op, old, &mir.ConstInt{Val: 1, Typ: old.Type()})
	l.b.Store(updated, addr)

	if n.Op.IsPost() {
		return old
	}

	return updated
}

func binOpToMIR(op ast.BinaryOp) mir.BinOpKind {
	switch op {
	case ast.BinPlus:
		return mir.BinAdd
	case ast.BinMinus:
		return mir.BinSub
	case ast.BinMult:
		return mir.BinMul
	case ast.BinDiv:
		return mir.BinSDiv
	case ast.BinMod:
		return mir.BinSRem
	case ast.BinAnd:
		return mir.BinAnd
	case ast.BinOr:
		return mir.BinOr
	case ast.BinXor:
		return mir.BinXor
	case ast.BinLShift:
		return mir.BinShl
	case ast.BinRShift:
		return mir.BinAShr
	default:
		return mir.BinAdd
	}
}

func cmpOpToMIR(op ast.BinaryOp) mir.CmpPred {
	switch op {
	case ast.BinEqual:
		return mir.CmpEq
	case ast.BinNotEqual:
		return mir.CmpNe
	case ast.BinLT:
		return mir.CmpSlt
	case ast.BinLTE:
		return mir.CmpSle
	case ast.BinGT:
		return mir.CmpSgt
	case ast.BinGTE:
		return mir.CmpSge
	default:
		return mir.CmpEq
	}
}
