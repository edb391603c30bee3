package resolver

import (
	"testing"

	"github.com/cclang/cc/internal/ast"
	"github.com/cclang/cc/internal/types"
)

func intSpecifiers() *ast.DeclSpecifiers {
	return &ast.DeclSpecifiers{Type: &ast.TypeSpecifier{Kind: types.Int}}
}

func ident(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func decl(name string) *ast.Declaration {
	return &ast.Declaration{
		Specifiers: intSpecifiers(),
		Decl:       &ast.Declarator{Direct: &ast.DirectDeclarator{Name: name}},
	}
}

func TestUndefinedIdentifierIsReported(t *testing.T) {
	tu := &ast.TranslationUnit{
		Decls: []ast.Node{
			&ast.FunctionDefinition{
				Specifiers: intSpecifiers(),
				Decl:       &ast.Declarator{Direct: &ast.DirectDeclarator{Name: "main", Params: &ast.ParameterList{}}},
				Body: &ast.Compound{Children: []ast.Node{
					&ast.Return{Expr: ident("missing")},
				}},
			},
		},
	}

	ok, diags := Bind(tu)
	if ok {
		t.Fatal("expected binding to fail")
	}

	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %v", diags)
	}
}

func TestParameterVisibleInFunctionBody(t *testing.T) {
	params := &ast.ParameterList{Params: []*ast.ParameterDecl{
		{Specifiers: intSpecifiers(), Decl: &ast.Declarator{Direct: &ast.DirectDeclarator{Name: "x"}}},
	}}

	tu := &ast.TranslationUnit{
		Decls: []ast.Node{
			&ast.FunctionDefinition{
				Specifiers: intSpecifiers(),
				Decl:       &ast.Declarator{Direct: &ast.DirectDeclarator{Name: "f", Params: params}},
				Body: &ast.Compound{Children: []ast.Node{
					&ast.Return{Expr: ident("x")},
				}},
			},
		},
	}

	ok, diags := Bind(tu)
	if !ok {
		t.Fatalf("expected binding to succeed, got diagnostics: %v", diags)
	}
}

func TestDuplicateDeclarationInSameScopeIsReported(t *testing.T) {
	tu := &ast.TranslationUnit{
		Decls: []ast.Node{
			decl("x"),
			decl("x"),
		},
	}

	ok, diags := Bind(tu)
	if ok {
		t.Fatal("expected binding to fail on redeclaration")
	}

	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %v", diags)
	}
}

func TestShadowingInNestedScopeIsNotADuplicate(t *testing.T) {
	tu := &ast.TranslationUnit{
		Decls: []ast.Node{
			&ast.FunctionDefinition{
				Specifiers: intSpecifiers(),
				Decl:       &ast.Declarator{Direct: &ast.DirectDeclarator{Name: "main", Params: &ast.ParameterList{}}},
				Body: &ast.Compound{Children: []ast.Node{
					decl("x"),
					&ast.Compound{Children: []ast.Node{
						decl("x"),
					}},
					&ast.JumpStatement{},
				}},
			},
		},
	}

	ok, diags := Bind(tu)
	if !ok {
		t.Fatalf("expected shadowing to be allowed, got diagnostics: %v", diags)
	}
}
