// Package parser implements a hand-written recursive-descent parser that
// builds the AST node set internal/ast describes, in the idiom of the
// teacher's internal/parser: one method per grammar production, with
// precedence-climbing for the binary-operator expression chain. It does
// not attempt error recovery — the first syntax error aborts the parse.
package parser

import (
	"strconv"

	"github.com/cclang/cc/internal/ast"
	"github.com/cclang/cc/internal/diag"
	"github.com/cclang/cc/internal/lexer"
	"github.com/cclang/cc/internal/types"
)

// Parse scans and parses src into a translation unit. It returns the parsed
// unit, whether parsing succeeded, and (on failure) exactly one diagnostic
// naming the first syntax error encountered.
func Parse(src string) (tu *ast.TranslationUnit, ok bool, diags []diag.Diagnostic) {
	p := &parser{lex: lexer.New(src), diags: diag.NewEngine(diag.CategoryParse)}
	p.advance()
	p.advance()

	defer func() {
		if r := recover(); r != nil {
			abort, isAbort := r.(parseAbort)
			if !isAbort {
				panic(r)
			}

			tu = nil
			ok = false
			diags = []diag.Diagnostic{{Category: diag.CategoryParse, Line: abort.line, Message: abort.message}}
		}
	}()

	tu = p.parseTranslationUnit()

	return tu, true, nil
}

// parseAbort unwinds the parser on the first syntax error; Parse recovers
// it and turns it into a diagnostic instead of letting it escape.
type parseAbort struct {
	line    int
	message string
}

type parser struct {
	lex       *lexer.Lexer
	cur, peek lexer.Token
	diags     *diag.Engine
}

func (p *parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *parser) fail(format string, args ...interface{}) {
	p.diags.Errorf(p.cur.Line, format, args...)

	panic(parseAbort{line: p.cur.Line, message: p.diags.Diagnostics()[len(p.diags.Diagnostics())-1].Message})
}

func (p *parser) expect(tt lexer.TokenType) lexer.Token {
	if p.cur.Type != tt {
		p.fail("expected %s, got %s %q", tt, p.cur.Type, p.cur.Literal)
	}

	tok := p.cur
	p.advance()

	return tok
}

func (p *parser) parseTranslationUnit() *ast.TranslationUnit {
	tu := &ast.TranslationUnit{}

	for p.cur.Type != lexer.TokenEOF {
		tu.Decls = append(tu.Decls, p.parseExternalDeclaration())
	}

	return tu
}

func isTypeKeyword(tt lexer.TokenType) bool {
	switch tt {
	case lexer.TokenKwInt, lexer.TokenKwFloat, lexer.TokenKwChar, lexer.TokenKwBool, lexer.TokenKwVoid:
		return true
	default:
		return false
	}
}

func (p *parser) parseExternalDeclaration() ast.Node {
	line := p.cur.Line
	specifiers := p.parseDeclSpecifiers()
	decl := p.parseDeclarator()

	if p.cur.Type == lexer.TokenLBrace {
		body := p.parseCompound()

		return &ast.FunctionDefinition{Base: ast.Base{SourceLine: line}, Specifiers: specifiers, Decl: decl, Body: body}
	}

	p.expect(lexer.TokenSemi)

	return &ast.Declaration{Base: ast.Base{SourceLine: line}, Specifiers: specifiers, Decl: decl}
}

func (p *parser) parseDeclSpecifiers() *ast.DeclSpecifiers {
	line := p.cur.Line

	var kind types.Simple

	switch p.cur.Type {
	case lexer.TokenKwInt:
		kind = types.Int
	case lexer.TokenKwFloat:
		kind = types.Float
	case lexer.TokenKwChar:
		kind = types.Char
	case lexer.TokenKwBool:
		kind = types.Bool
	case lexer.TokenKwVoid:
		kind = types.Void
	default:
		p.fail("expected a type, got %s %q", p.cur.Type, p.cur.Literal)
	}

	p.advance()

	return &ast.DeclSpecifiers{
		Base: ast.Base{SourceLine: line},
		Type: &ast.TypeSpecifier{Base: ast.Base{SourceLine: line}, Kind: kind},
	}
}

func (p *parser) parsePointerDepth() int {
	depth := 0

	for p.cur.Type == lexer.TokenStar {
		depth++
		p.advance()
	}

	return depth
}

func (p *parser) parseDeclarator() *ast.Declarator {
	line := p.cur.Line
	depth := p.parsePointerDepth()
	nameTok := p.expect(lexer.TokenIdent)

	dd := &ast.DirectDeclarator{Base: ast.Base{SourceLine: nameTok.Line}, Name: nameTok.Literal}

	if p.cur.Type == lexer.TokenLParen {
		dd.Params = p.parseParameterList()
	}

	return &ast.Declarator{Base: ast.Base{SourceLine: line}, PointerDepth: depth, Direct: dd}
}

func (p *parser) parseParameterList() *ast.ParameterList {
	line := p.cur.Line
	p.expect(lexer.TokenLParen)

	list := &ast.ParameterList{Base: ast.Base{SourceLine: line}}

	if p.cur.Type == lexer.TokenRParen {
		p.advance()

		return list
	}

	for {
		if p.cur.Type == lexer.TokenEllipsis {
			eLine := p.cur.Line
			p.advance()
			list.Ellipsis = &ast.Ellipsis{Base: ast.Base{SourceLine: eLine}}

			break
		}

		list.Params = append(list.Params, p.parseParameterDecl())

		if p.cur.Type == lexer.TokenComma {
			p.advance()

			continue
		}

		break
	}

	p.expect(lexer.TokenRParen)

	return list
}

func (p *parser) parseParameterDecl() *ast.ParameterDecl {
	line := p.cur.Line
	specifiers := p.parseDeclSpecifiers()
	depth := p.parsePointerDepth()

	name := ""
	nameLine := p.cur.Line

	if p.cur.Type == lexer.TokenIdent {
		name = p.cur.Literal
		p.advance()
	}

	decl := &ast.Declarator{
		Base:         ast.Base{SourceLine: nameLine},
		PointerDepth: depth,
		Direct:       &ast.DirectDeclarator{Base: ast.Base{SourceLine: nameLine}, Name: name},
	}

	return &ast.ParameterDecl{Base: ast.Base{SourceLine: line}, Specifiers: specifiers, Decl: decl}
}

func (p *parser) parseCompound() *ast.Compound {
	line := p.cur.Line
	p.expect(lexer.TokenLBrace)

	c := &ast.Compound{Base: ast.Base{SourceLine: line}}

	for p.cur.Type != lexer.TokenRBrace && p.cur.Type != lexer.TokenEOF {
		c.Children = append(c.Children, p.parseBlockItem())
	}

	p.expect(lexer.TokenRBrace)

	return c
}

func (p *parser) parseBlockItem() ast.Node {
	if isTypeKeyword(p.cur.Type) {
		return p.parseLocalDeclaration()
	}

	return p.parseStatement()
}

func (p *parser) parseLocalDeclaration() ast.Node {
	line := p.cur.Line
	specifiers := p.parseDeclSpecifiers()
	decl := p.parseDeclarator()
	p.expect(lexer.TokenSemi)

	return &ast.Declaration{Base: ast.Base{SourceLine: line}, Specifiers: specifiers, Decl: decl}
}

func (p *parser) parseStatement() ast.Node {
	switch p.cur.Type {
	case lexer.TokenLBrace:
		return p.parseCompound()
	case lexer.TokenKwIf:
		return p.parseIf()
	case lexer.TokenKwWhile:
		return p.parseWhile()
	case lexer.TokenKwReturn:
		return p.parseReturn()
	case lexer.TokenSemi:
		line := p.cur.Line
		p.advance()

		return &ast.Expression{Base: ast.Base{SourceLine: line}}
	default:
		return p.parseExpressionStatement()
	}
}

func (p *parser) parseIf() ast.Node {
	line := p.cur.Line
	p.advance()
	p.expect(lexer.TokenLParen)
	cond := p.parseExpression()
	p.expect(lexer.TokenRParen)
	then := p.parseStatement()

	var els ast.Node

	if p.cur.Type == lexer.TokenKwElse {
		p.advance()

		els = p.parseStatement()
	}

	return &ast.IfThenElse{Base: ast.Base{SourceLine: line}, Cond: cond, Then: then, Else: els}
}

func (p *parser) parseWhile() ast.Node {
	line := p.cur.Line
	p.advance()
	p.expect(lexer.TokenLParen)
	cond := p.parseExpression()
	p.expect(lexer.TokenRParen)
	body := p.parseStatement()

	return &ast.While{Base: ast.Base{SourceLine: line}, Cond: cond, Body: body}
}

func (p *parser) parseReturn() ast.Node {
	line := p.cur.Line
	p.advance()

	if p.cur.Type == lexer.TokenSemi {
		p.advance()

		return &ast.JumpStatement{Base: ast.Base{SourceLine: line}}
	}

	expr := p.parseExpression()
	p.expect(lexer.TokenSemi)

	return &ast.Return{Base: ast.Base{SourceLine: line}, Expr: expr}
}

func (p *parser) parseExpressionStatement() ast.Node {
	line := p.cur.Line
	expr := p.parseCommaExpression(line)
	p.expect(lexer.TokenSemi)

	return expr
}

// parseCommaExpression parses a comma-separated sequence of
// assignment-expressions and wraps it in an Expression node, even when it
// holds exactly one child, so the typer's void-contribution rule for
// expression statements applies uniformly.
func (p *parser) parseCommaExpression(line int) *ast.Expression {
	e := &ast.Expression{Base: ast.Base{SourceLine: line}}
	e.Children = append(e.Children, p.parseAssignment())

	for p.cur.Type == lexer.TokenComma {
		p.advance()

		e.Children = append(e.Children, p.parseAssignment())
	}

	return e
}

func (p *parser) parseExpression() ast.Node {
	return p.parseAssignment()
}

var assignOps = map[lexer.TokenType]ast.AssignOp{
	lexer.TokenAssign:    ast.AssignPlain,
	lexer.TokenPlusEq:    ast.AssignAdd,
	lexer.TokenMinusEq:   ast.AssignSub,
	lexer.TokenStarEq:    ast.AssignMul,
	lexer.TokenSlashEq:   ast.AssignDiv,
	lexer.TokenPercentEq: ast.AssignMod,
	lexer.TokenAmpEq:     ast.AssignAnd,
	lexer.TokenPipeEq:    ast.AssignOr,
	lexer.TokenCaretEq:   ast.AssignXor,
	lexer.TokenShlEq:     ast.AssignShl,
	lexer.TokenShrEq:     ast.AssignShr,
}

// parseAssignment is right-associative: "a = b = c" parses as a = (b = c).
func (p *parser) parseAssignment() ast.Node {
	line := p.cur.Line
	lhs := p.parseLogicalOr()

	if op, ok := assignOps[p.cur.Type]; ok {
		p.advance()

		rhs := p.parseAssignment()

		return &ast.Assignment{Base: ast.Base{SourceLine: line}, LHS: lhs, Op: op, RHS: rhs}
	}

	return lhs
}

// binaryLevel is one row of the precedence table: the tokens recognized at
// this level and the next-tighter-binding production to call for operands.
type binaryLevel struct {
	ops  map[lexer.TokenType]ast.BinaryOp
	next func(*parser) ast.Node
}

var binaryLevels = []binaryLevel{
	{ops: map[lexer.TokenType]ast.BinaryOp{lexer.TokenOrOr: ast.BinLogicalOr}, next: (*parser).parseLogicalAnd},
	{ops: map[lexer.TokenType]ast.BinaryOp{lexer.TokenAndAnd: ast.BinLogicalAnd}, next: (*parser).parseBitOr},
	{ops: map[lexer.TokenType]ast.BinaryOp{lexer.TokenPipe: ast.BinOr}, next: (*parser).parseBitXor},
	{ops: map[lexer.TokenType]ast.BinaryOp{lexer.TokenCaret: ast.BinXor}, next: (*parser).parseBitAnd},
	{ops: map[lexer.TokenType]ast.BinaryOp{lexer.TokenAmp: ast.BinAnd}, next: (*parser).parseEquality},
	{ops: map[lexer.TokenType]ast.BinaryOp{lexer.TokenEq: ast.BinEqual, lexer.TokenNe: ast.BinNotEqual}, next: (*parser).parseRelational},
	{ops: map[lexer.TokenType]ast.BinaryOp{
		lexer.TokenLt: ast.BinLT, lexer.TokenLe: ast.BinLTE, lexer.TokenGt: ast.BinGT, lexer.TokenGe: ast.BinGTE,
	}, next: (*parser).parseShift},
	{ops: map[lexer.TokenType]ast.BinaryOp{lexer.TokenShl: ast.BinLShift, lexer.TokenShr: ast.BinRShift}, next: (*parser).parseAdditive},
	{ops: map[lexer.TokenType]ast.BinaryOp{lexer.TokenPlus: ast.BinPlus, lexer.TokenMinus: ast.BinMinus}, next: (*parser).parseMultiplicative},
	{ops: map[lexer.TokenType]ast.BinaryOp{
		lexer.TokenStar: ast.BinMult, lexer.TokenSlash: ast.BinDiv, lexer.TokenPercent: ast.BinMod,
	}, next: (*parser).parseUnary},
}

func (p *parser) parseLeftAssoc(level int) ast.Node {
	lv := binaryLevels[level]
	lhs := lv.next(p)

	for {
		op, ok := lv.ops[p.cur.Type]
		if !ok {
			return lhs
		}

		line := p.cur.Line
		p.advance()
		rhs := lv.next(p)
		lhs = &ast.Binary{Base: ast.Base{SourceLine: line}, LHS: lhs, Op: op, RHS: rhs}
	}
}

func (p *parser) parseLogicalOr() ast.Node      { return p.parseLeftAssoc(0) }
func (p *parser) parseLogicalAnd() ast.Node     { return p.parseLeftAssoc(1) }
func (p *parser) parseBitOr() ast.Node          { return p.parseLeftAssoc(2) }
func (p *parser) parseBitXor() ast.Node         { return p.parseLeftAssoc(3) }
func (p *parser) parseBitAnd() ast.Node         { return p.parseLeftAssoc(4) }
func (p *parser) parseEquality() ast.Node       { return p.parseLeftAssoc(5) }
func (p *parser) parseRelational() ast.Node     { return p.parseLeftAssoc(6) }
func (p *parser) parseShift() ast.Node          { return p.parseLeftAssoc(7) }
func (p *parser) parseAdditive() ast.Node       { return p.parseLeftAssoc(8) }
func (p *parser) parseMultiplicative() ast.Node { return p.parseLeftAssoc(9) }

var unaryPrefixOps = map[lexer.TokenType]ast.UnaryOp{
	lexer.TokenPlus:  ast.UnPlus,
	lexer.TokenMinus: ast.UnNeg,
	lexer.TokenBang:  ast.UnLogicalNot,
	lexer.TokenTilde: ast.UnNot,
	lexer.TokenInc:   ast.UnPreInc,
	lexer.TokenDec:   ast.UnPreDec,
}

func (p *parser) parseUnary() ast.Node {
	if op, ok := unaryPrefixOps[p.cur.Type]; ok {
		line := p.cur.Line
		p.advance()
		operand := p.parseUnary()

		return &ast.Unary{Base: ast.Base{SourceLine: line}, Op: op, Operand: operand}
	}

	return p.parsePostfix()
}

func (p *parser) parsePostfix() ast.Node {
	expr := p.parsePrimary()

	for {
		switch p.cur.Type {
		case lexer.TokenLParen:
			line := expr.Line()
			args := p.parseArgumentList()
			expr = &ast.Binary{Base: ast.Base{SourceLine: line}, LHS: expr, Op: ast.BinFuncCall, RHS: args}
		case lexer.TokenInc:
			line := p.cur.Line
			p.advance()
			expr = &ast.Unary{Base: ast.Base{SourceLine: line}, Op: ast.UnPostInc, Operand: expr}
		case lexer.TokenDec:
			line := p.cur.Line
			p.advance()
			expr = &ast.Unary{Base: ast.Base{SourceLine: line}, Op: ast.UnPostDec, Operand: expr}
		default:
			return expr
		}
	}
}

func (p *parser) parseArgumentList() *ast.ArgumentList {
	line := p.cur.Line
	p.expect(lexer.TokenLParen)

	list := &ast.ArgumentList{Base: ast.Base{SourceLine: line}}

	if p.cur.Type == lexer.TokenRParen {
		p.advance()

		return list
	}

	list.Args = append(list.Args, p.parseAssignment())

	for p.cur.Type == lexer.TokenComma {
		p.advance()

		list.Args = append(list.Args, p.parseAssignment())
	}

	p.expect(lexer.TokenRParen)

	return list
}

func (p *parser) parsePrimary() ast.Node {
	tok := p.cur
	line := tok.Line

	switch tok.Type {
	case lexer.TokenIdent:
		p.advance()

		return &ast.Identifier{Base: ast.Base{SourceLine: line}, Name: tok.Literal}
	case lexer.TokenInt:
		v, err := strconv.ParseInt(tok.Literal, 10, 32)
		if err != nil {
			p.fail("malformed integer literal %q", tok.Literal)
		}

		p.advance()

		return &ast.IntegerLiteral{Base: ast.Base{SourceLine: line}, Value: int32(v)}
	case lexer.TokenFloat:
		v, err := strconv.ParseFloat(tok.Literal, 32)
		if err != nil {
			p.fail("malformed float literal %q", tok.Literal)
		}

		p.advance()

		return &ast.FloatLiteral{Base: ast.Base{SourceLine: line}, Value: float32(v)}
	case lexer.TokenString:
		p.advance()

		return &ast.StringLiteral{Base: ast.Base{SourceLine: line}, Value: []byte(tok.Literal)}
	case lexer.TokenLParen:
		p.advance()

		inner := p.parseExpression()
		p.expect(lexer.TokenRParen)

		return inner
	default:
		p.fail("unexpected token %s %q", tok.Type, tok.Literal)

		panic("unreachable")
	}
}
