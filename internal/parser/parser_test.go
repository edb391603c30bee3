package parser

import (
	"testing"

	"github.com/cclang/cc/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.TranslationUnit {
	t.Helper()

	tu, ok, diags := Parse(src)
	if !ok {
		t.Fatalf("parse failed: %v", diags)
	}

	return tu
}

func TestS1EmptyMainReturningZero(t *testing.T) {
	tu := mustParse(t, "int main(){ return 0; }")

	if len(tu.Decls) != 1 {
		t.Fatalf("expected 1 top-level decl, got %d", len(tu.Decls))
	}

	fn, ok := tu.Decls[0].(*ast.FunctionDefinition)
	if !ok {
		t.Fatalf("expected a FunctionDefinition, got %T", tu.Decls[0])
	}

	if fn.Decl.Direct.Name != "main" {
		t.Fatalf("expected main, got %q", fn.Decl.Direct.Name)
	}

	if len(fn.Body.Children) != 1 {
		t.Fatalf("expected 1 statement in body, got %d", len(fn.Body.Children))
	}

	ret, ok := fn.Body.Children[0].(*ast.Return)
	if !ok {
		t.Fatalf("expected a Return, got %T", fn.Body.Children[0])
	}

	lit, ok := ret.Expr.(*ast.IntegerLiteral)
	if !ok || lit.Value != 0 {
		t.Fatalf("expected return 0, got %v", ret.Expr)
	}
}

func TestFunctionDeclarationWithoutBody(t *testing.T) {
	tu := mustParse(t, "int f();")

	decl, ok := tu.Decls[0].(*ast.Declaration)
	if !ok {
		t.Fatalf("expected a Declaration, got %T", tu.Decls[0])
	}

	if decl.Decl.Direct.Params == nil || len(decl.Decl.Direct.Params.Params) != 0 {
		t.Fatalf("expected an empty parameter list, got %v", decl.Decl.Direct.Params)
	}
}

func TestVariadicParameterList(t *testing.T) {
	tu := mustParse(t, "int f(int x, ...);")

	decl := tu.Decls[0].(*ast.Declaration)
	params := decl.Decl.Direct.Params

	if len(params.Params) != 1 || params.Ellipsis == nil {
		t.Fatalf("expected one named parameter plus an ellipsis, got %+v", params)
	}
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	tu := mustParse(t, "int main(){ int a; int b; a = b = 1; return a; }")

	fn := tu.Decls[0].(*ast.FunctionDefinition)
	assign := fn.Body.Children[2].(*ast.Expression).Children[0].(*ast.Assignment)

	if assign.Op != ast.AssignPlain {
		t.Fatalf("expected plain assignment, got %v", assign.Op)
	}

	inner, ok := assign.RHS.(*ast.Assignment)
	if !ok {
		t.Fatalf("expected a nested Assignment on the rhs, got %T", assign.RHS)
	}

	if _, ok := inner.RHS.(*ast.IntegerLiteral); !ok {
		t.Fatalf("expected the innermost rhs to be a literal, got %T", inner.RHS)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3).
	tu := mustParse(t, "int main(){ return 1 + 2 * 3; }")

	fn := tu.Decls[0].(*ast.FunctionDefinition)
	ret := fn.Body.Children[0].(*ast.Return)
	top := ret.Expr.(*ast.Binary)

	if top.Op != ast.BinPlus {
		t.Fatalf("expected top-level +, got %v", top.Op)
	}

	if _, ok := top.RHS.(*ast.Binary); !ok {
		t.Fatalf("expected the rhs to be the nested multiplication, got %T", top.RHS)
	}
}

func TestFunctionCallArguments(t *testing.T) {
	tu := mustParse(t, "int f(int x); int main(){ return f(41); }")

	fn := tu.Decls[1].(*ast.FunctionDefinition)
	ret := fn.Body.Children[0].(*ast.Return)
	call := ret.Expr.(*ast.Binary)

	if call.Op != ast.BinFuncCall {
		t.Fatalf("expected a call, got %v", call.Op)
	}

	callee, ok := call.LHS.(*ast.Identifier)
	if !ok || callee.Name != "f" {
		t.Fatalf("expected callee f, got %v", call.LHS)
	}

	args := call.RHS.(*ast.ArgumentList)
	if len(args.Args) != 1 {
		t.Fatalf("expected one argument, got %d", len(args.Args))
	}
}

func TestIfElseBothArms(t *testing.T) {
	tu := mustParse(t, "int main(){ if (1 > 0) return 1; else return 2; }")

	fn := tu.Decls[0].(*ast.FunctionDefinition)
	ite := fn.Body.Children[0].(*ast.IfThenElse)

	if ite.Else == nil {
		t.Fatal("expected an else arm")
	}

	cond := ite.Cond.(*ast.Binary)
	if cond.Op != ast.BinGT {
		t.Fatalf("expected >, got %v", cond.Op)
	}
}

func TestWhileLoop(t *testing.T) {
	tu := mustParse(t, "int main(){ int i; while (i < 10) i = i + 1; return i; }")

	fn := tu.Decls[0].(*ast.FunctionDefinition)

	if _, ok := fn.Body.Children[1].(*ast.While); !ok {
		t.Fatalf("expected a While statement, got %T", fn.Body.Children[1])
	}
}

func TestBareReturnProducesJumpStatement(t *testing.T) {
	tu := mustParse(t, "void f(){ return; }")

	fn := tu.Decls[0].(*ast.FunctionDefinition)

	if _, ok := fn.Body.Children[0].(*ast.JumpStatement); !ok {
		t.Fatalf("expected a JumpStatement, got %T", fn.Body.Children[0])
	}
}

func TestPointerDeclarator(t *testing.T) {
	tu := mustParse(t, "int main(){ int* p; return 0; }")

	fn := tu.Decls[0].(*ast.FunctionDefinition)
	decl := fn.Body.Children[0].(*ast.Declaration)

	if decl.Decl.PointerDepth != 1 {
		t.Fatalf("expected pointer depth 1, got %d", decl.Decl.PointerDepth)
	}
}

func TestIncDecPreAndPost(t *testing.T) {
	tu := mustParse(t, "int main(){ int i; i++; ++i; return i; }")

	fn := tu.Decls[0].(*ast.FunctionDefinition)

	post := fn.Body.Children[1].(*ast.Expression).Children[0].(*ast.Unary)
	if post.Op != ast.UnPostInc {
		t.Fatalf("expected post-increment, got %v", post.Op)
	}

	pre := fn.Body.Children[2].(*ast.Expression).Children[0].(*ast.Unary)
	if pre.Op != ast.UnPreInc {
		t.Fatalf("expected pre-increment, got %v", pre.Op)
	}
}

func TestFirstSyntaxErrorAbortsWithLineNumber(t *testing.T) {
	_, ok, diags := Parse("int main(){ return }")
	if ok {
		t.Fatal("expected parsing to fail on the missing return expression")
	}

	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", len(diags), diags)
	}

	if diags[0].Line != 1 {
		t.Fatalf("expected the error on line 1, got %d", diags[0].Line)
	}
}

func TestS6MismatchedArityStillParses(t *testing.T) {
	// Arity/type mismatches are a typing error (S6), not a parse error —
	// the parser itself must accept this input.
	tu := mustParse(t, "int f(); int main(){ return f(1); }")

	if len(tu.Decls) != 2 {
		t.Fatalf("expected 2 top-level decls, got %d", len(tu.Decls))
	}
}
