package codegen

import (
	"strings"
	"testing"

	"github.com/cclang/cc/internal/ast"
	"github.com/cclang/cc/internal/resolver"
	"github.com/cclang/cc/internal/typechecker"
	"github.com/cclang/cc/internal/types"
)

func specs(k types.Simple) *ast.DeclSpecifiers {
	return &ast.DeclSpecifiers{Type: &ast.TypeSpecifier{Kind: k}}
}

func declarator(name string, params *ast.ParameterList) *ast.Declarator {
	return &ast.Declarator{Direct: &ast.DirectDeclarator{Name: name, Params: params}}
}

// compile runs the full bind -> type -> lower pipeline, failing the test on
// any phase error, and returns the rendered module text.
func compile(t *testing.T, tu *ast.TranslationUnit) string {
	t.Helper()

	if ok, diags := resolver.Bind(tu); !ok {
		t.Fatalf("binding failed: %v", diags)
	}

	if ok, diags := typechecker.Type(tu); !ok {
		t.Fatalf("typing failed: %v", diags)
	}

	m, ok, diags := Lower(tu, "test")
	if !ok {
		t.Fatalf("lowering failed: %v", diags)
	}

	return m.String()
}

func TestMainReturningZero(t *testing.T) {
	// int main() { return 0; }
	tu := &ast.TranslationUnit{Decls: []ast.Node{
		&ast.FunctionDefinition{
			Specifiers: specs(types.Int),
			Decl:       declarator("main", &ast.ParameterList{}),
			Body: &ast.Compound{Children: []ast.Node{
				&ast.Return{Expr: &ast.IntegerLiteral{Value: 0}},
			}},
		},
	}}

	out := compile(t, tu)

	if !strings.Contains(out, "define i32 @main()") {
		t.Fatalf("missing main signature in:\n%s", out)
	}

	if !strings.Contains(out, "ret i32 0") {
		t.Fatalf("missing ret i32 0 in:\n%s", out)
	}
}

func TestCallLowersArgumentAndCallee(t *testing.T) {
	// int f(int x) { return x+1; } int main() { return f(41); }
	fParams := &ast.ParameterList{Params: []*ast.ParameterDecl{
		{Specifiers: specs(types.Int), Decl: declarator("x", nil)},
	}}
	f := &ast.FunctionDefinition{
		Specifiers: specs(types.Int),
		Decl:       declarator("f", fParams),
		Body: &ast.Compound{Children: []ast.Node{
			&ast.Return{Expr: &ast.Binary{
				LHS: &ast.Identifier{Name: "x"},
				Op:  ast.BinPlus,
				RHS: &ast.IntegerLiteral{Value: 1},
			}},
		}},
	}
	main := &ast.FunctionDefinition{
		Specifiers: specs(types.Int),
		Decl:       declarator("main", &ast.ParameterList{}),
		Body: &ast.Compound{Children: []ast.Node{
			&ast.Return{Expr: &ast.Binary{
				LHS: &ast.Identifier{Name: "f"},
				Op:  ast.BinFuncCall,
				RHS: &ast.ArgumentList{Args: []ast.Node{&ast.IntegerLiteral{Value: 41}}},
			}},
		}},
	}

	out := compile(t, &ast.TranslationUnit{Decls: []ast.Node{f, main}})

	if !strings.Contains(out, "call i32 @f(i32 41)") {
		t.Fatalf("missing call to f in:\n%s", out)
	}
}

func TestIfElseBothArmsTerminateDropsMergeBlock(t *testing.T) {
	// int main() { if (1 > 0) return 1; else return 2; }
	tu := &ast.TranslationUnit{Decls: []ast.Node{
		&ast.FunctionDefinition{
			Specifiers: specs(types.Int),
			Decl:       declarator("main", &ast.ParameterList{}),
			Body: &ast.Compound{Children: []ast.Node{
				&ast.IfThenElse{
					Cond: &ast.Binary{LHS: &ast.IntegerLiteral{Value: 1}, Op: ast.BinGT, RHS: &ast.IntegerLiteral{Value: 0}},
					Then: &ast.Return{Expr: &ast.IntegerLiteral{Value: 1}},
					Else: &ast.Return{Expr: &ast.IntegerLiteral{Value: 2}},
				},
			}},
		},
	}}

	out := compile(t, tu)

	if strings.Contains(out, "if.merge") {
		t.Fatalf("expected empty merge block to be dropped, got:\n%s", out)
	}

	if !strings.Contains(out, "ret i32 1") || !strings.Contains(out, "ret i32 2") {
		t.Fatalf("expected both arms to return, got:\n%s", out)
	}
}

func TestLocalVariableAssignmentLowersToAllocaLoadStore(t *testing.T) {
	// int main() { int a; a = 2; a = a + 3; return a; }
	tu := &ast.TranslationUnit{Decls: []ast.Node{
		&ast.FunctionDefinition{
			Specifiers: specs(types.Int),
			Decl:       declarator("main", &ast.ParameterList{}),
			Body: &ast.Compound{Children: []ast.Node{
				&ast.Declaration{Specifiers: specs(types.Int), Decl: declarator("a", nil)},
				&ast.Assignment{LHS: &ast.Identifier{Name: "a"}, Op: ast.AssignPlain, RHS: &ast.IntegerLiteral{Value: 2}},
				&ast.Assignment{LHS: &ast.Identifier{Name: "a"}, Op: ast.AssignPlain, RHS: &ast.Binary{
					LHS: &ast.Identifier{Name: "a"}, Op: ast.BinPlus, RHS: &ast.IntegerLiteral{Value: 3},
				}},
				&ast.Return{Expr: &ast.Identifier{Name: "a"}},
			}},
		},
	}}

	out := compile(t, tu)

	if !strings.Contains(out, "alloca i32 ; a") {
		t.Fatalf("expected an alloca for a, got:\n%s", out)
	}
}

func TestLogicalAndNormalizesNonBoolOperandsToI1(t *testing.T) {
	// bool main() { return 2 && 1; }
	tu := &ast.TranslationUnit{Decls: []ast.Node{
		&ast.FunctionDefinition{
			Specifiers: specs(types.Bool),
			Decl:       declarator("main", &ast.ParameterList{}),
			Body: &ast.Compound{Children: []ast.Node{
				&ast.Return{Expr: &ast.Binary{
					LHS: &ast.IntegerLiteral{Value: 2}, Op: ast.BinLogicalAnd, RHS: &ast.IntegerLiteral{Value: 1},
				}},
			}},
		},
	}}

	out := compile(t, tu)

	if !strings.Contains(out, "icmp ne i32 2, 0") || !strings.Contains(out, "icmp ne i32 1, 0") {
		t.Fatalf("expected both operands coerced to i1 via icmp ne, got:\n%s", out)
	}

	if !strings.Contains(out, "and i1") {
		t.Fatalf("expected the logical and to run on i1, got:\n%s", out)
	}
}
