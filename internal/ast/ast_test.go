package ast

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cclang/cc/internal/types"
)

func TestBaseDefaultsToVoidType(t *testing.T) {
	id := &Identifier{Name: "x"}

	if got := id.NodeType(); got != types.VoidType {
		t.Fatalf("NodeType() = %v, want VoidType", got)
	}

	id.SetNodeType(types.IntType)

	if got := id.NodeType(); !types.Equal(got, types.IntType) {
		t.Fatalf("NodeType() after SetNodeType = %v, want int", got)
	}
}

func TestAssignOpBinOpMapping(t *testing.T) {
	cases := map[AssignOp]BinaryOp{
		AssignAdd: BinPlus,
		AssignSub: BinMinus,
		AssignMul: BinMult,
		AssignShl: BinLShift,
	}

	for op, want := range cases {
		if got := op.BinOp(); got != want {
			t.Errorf("%v.BinOp() = %v, want %v", op, got, want)
		}
	}
}

func TestAssignPlainBinOpPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for AssignPlain.BinOp()")
		}
	}()

	AssignPlain.BinOp()
}

func TestBinaryOpClassification(t *testing.T) {
	if !BinGT.IsComparison() || BinPlus.IsComparison() {
		t.Fatal("IsComparison misclassified an operator")
	}

	if !BinLogicalAnd.IsLogical() || BinXor.IsLogical() {
		t.Fatal("IsLogical misclassified an operator")
	}
}

func TestUnaryOpIncDecAndPost(t *testing.T) {
	if !UnPostInc.IsIncDec() || !UnPostInc.IsPost() {
		t.Fatal("UnPostInc should be both IsIncDec and IsPost")
	}

	if !UnPreDec.IsIncDec() || UnPreDec.IsPost() {
		t.Fatal("UnPreDec should be IsIncDec but not IsPost")
	}

	if UnNot.IsIncDec() {
		t.Fatal("UnNot should not be IsIncDec")
	}
}

func TestTranslationUnitDumpIncludesChildren(t *testing.T) {
	tu := &TranslationUnit{
		Decls: []Node{
			&Declaration{
				Specifiers: &DeclSpecifiers{Type: &TypeSpecifier{Kind: types.Int}},
				Decl: &Declarator{
					Direct: &DirectDeclarator{Name: "x"},
				},
			},
		},
	}

	var buf bytes.Buffer
	tu.Dump(&buf, 0)

	out := buf.String()
	if !strings.Contains(out, "TranslationUnit") {
		t.Fatalf("dump missing root node: %q", out)
	}

	if !strings.Contains(out, "Declaration: x") {
		t.Fatalf("dump missing declaration: %q", out)
	}

	if !strings.Contains(out, "TypeSpecifier: int") {
		t.Fatalf("dump missing type specifier: %q", out)
	}
}
