package parser

import (
	"fmt"

	"iona/internal/ast"
	"iona/internal/diag"
	"iona/internal/token"
)

// parseFunction parses "fn NAME(args) -> ReturnType { [metadata] [contracts] statements }".
func (p *Parser) parseFunction() Output[*ast.Function] {
	p.pushTrace("parse_function")
	defer p.popTrace()

	start := p.peek().Pos
	var diags []diag.Diagnostic
	diags = append(diags, p.thenIgnore(token.KwFn).Diagnostics...)
	p.skipWhitespace()
	nameOut := p.thenIdentifier()
	diags = append(diags, nameOut.Diagnostics...)
	if !nameOut.Ok {
		return Output[*ast.Function]{Diagnostics: diags}
	}

	p.skipWhitespace()
	diags = append(diags, p.thenIgnore(token.LParen).Diagnostics...)
	p.skipWhitespace()
	argsOut := p.parseFieldList(true)
	diags = append(diags, argsOut.Diagnostics...)
	p.skipWhitespace()
	diags = append(diags, p.thenIgnore(token.RParen).Diagnostics...)

	p.skipWhitespace()
	returns := ast.Primitive(ast.TVoid)
	if p.at(token.Minus) && p.peekAt(1).Kind == token.RAngle {
		p.advance()
		p.advance()
		p.skipWhitespace()
		retOut := p.parseType()
		diags = append(diags, retOut.Diagnostics...)
		returns = retOut.Value
	}

	p.skipWhitespace()
	diags = append(diags, p.thenIgnore(token.LBrace).Diagnostics...)
	p.skipWhitespace()

	var meta metadata
	if p.at(token.At) && p.peekAt(1).Kind == token.KwMetadata {
		p.advance()
		p.advance()
		p.skipWhitespace()
		metaOut := p.parseMetadataBlock()
		diags = append(diags, metaOut.Diagnostics...)
		meta = metaOut.Value
		p.skipWhitespace()
	}

	var contracts []ast.FunctionContract
	if p.at(token.At) && p.peekAt(1).Kind == token.KwContracts {
		p.advance()
		p.advance()
		p.skipWhitespace()
		contractsOut := p.parseContractsBlock()
		diags = append(diags, contractsOut.Diagnostics...)
		contracts = contractsOut.Value
		p.skipWhitespace()
	}

	stmtsOut := p.parseStatementsUntilBrace()
	diags = append(diags, stmtsOut.Diagnostics...)

	p.skipWhitespace()
	diags = append(diags, p.thenIgnore(token.RBrace).Diagnostics...)

	return Output[*ast.Function]{
		Value: &ast.Function{
			Name: nameOut.Value, Pos: start,
			Args: argsOut.Value, Returns: returns,
			DataProperties: meta.Properties,
			Permissions:    meta.Permissions,
			Contracts:      contracts,
			Statements:     stmtsOut.Value,
		},
		Ok:          true,
		Diagnostics: diags,
	}
}

// parseStatementsUntilBrace parses statements until the closing '}' or
// until the infinite-loop guard (1000 iterations) trips, per spec §4.4.
func (p *Parser) parseStatementsUntilBrace() Output[[]ast.Statement] {
	var out []ast.Statement
	var diags []diag.Diagnostic
	for i := 0; i < maxStatementIterations; i++ {
		p.skipWhitespace()
		if p.at(token.RBrace) || p.at(token.EOF) {
			break
		}
		before := p.pos
		stmtOut := p.parseStatement()
		diags = append(diags, stmtOut.Diagnostics...)
		if stmtOut.Ok {
			out = append(out, stmtOut.Value)
		}
		if p.pos == before {
			break
		}
	}
	return Output[[]ast.Statement]{Value: out, Ok: true, Diagnostics: diags}
}

// parseStatement dispatches on the leading keyword, per spec §4.4.
func (p *Parser) parseStatement() Output[ast.Statement] {
	p.pushTrace("parse_statement")
	defer p.popTrace()

	switch p.peek().Kind {
	case token.KwLet:
		return p.parseLetStatement()
	case token.KwIf:
		return p.parseConditional()
	case token.KwMatch:
		return p.parseMatch()
	case token.KwReturn:
		return p.parseReturnStatement()
	case token.Ident:
		return p.parseExprLedStatement()
	default:
		bad := p.peek()
		p.skipToNextNewline()
		return None[ast.Statement](diag.New(diag.Error,
			fmt.Sprintf("unexpected token %s at start of statement", bad.Kind), bad.Pos))
	}
}

func (p *Parser) parseLetStatement() Output[ast.Statement] {
	start := p.peek().Pos
	var diags []diag.Diagnostic
	diags = append(diags, p.thenIgnore(token.KwLet).Diagnostics...)
	p.skipWhitespace()
	nameOut := p.thenIdentifier()
	diags = append(diags, nameOut.Diagnostics...)
	p.skipWhitespace()
	diags = append(diags, p.thenIgnore(token.Colon).Diagnostics...)
	p.skipWhitespace()
	typeOut := p.parseType()
	diags = append(diags, typeOut.Diagnostics...)
	p.skipWhitespace()
	diags = append(diags, p.thenIgnore(token.Equals).Diagnostics...)
	p.skipWhitespace()
	exprOut := p.ParseExpr(0)
	diags = append(diags, exprOut.Diagnostics...)
	p.skipWhitespace()
	diags = append(diags, p.thenIgnore(token.Semi).Diagnostics...)

	if !nameOut.Ok || !exprOut.Ok {
		return Output[ast.Statement]{Diagnostics: diags}
	}
	return Output[ast.Statement]{
		Value: ast.Statement{
			Kind: ast.StmtVariableDeclaration, Pos: start,
			Name: nameOut.Value, Type: typeOut.Value, Expr: exprOut.Value,
		},
		Ok:          true,
		Diagnostics: diags,
	}
}

func (p *Parser) parseReturnStatement() Output[ast.Statement] {
	start := p.peek().Pos
	var diags []diag.Diagnostic
	diags = append(diags, p.thenIgnore(token.KwReturn).Diagnostics...)
	p.skipWhitespace()
	var retExpr *ast.Expr
	if !p.at(token.Semi) {
		exprOut := p.ParseExpr(0)
		diags = append(diags, exprOut.Diagnostics...)
		retExpr = exprOut.Value
	}
	p.skipWhitespace()
	diags = append(diags, p.thenIgnore(token.Semi).Diagnostics...)
	return Output[ast.Statement]{
		Value:       ast.Statement{Kind: ast.StmtReturn, Pos: start, Expr: retExpr},
		Ok:          true,
		Diagnostics: diags,
	}
}

// parseExprLedStatement parses an expression, then either "= expr ;"
// (assignment) or ";" (bare call statement). Only a bare Variable on the
// left of "=" is a valid assignment target.
func (p *Parser) parseExprLedStatement() Output[ast.Statement] {
	start := p.peek().Pos
	exprOut := p.ParseExpr(0)
	diags := append([]diag.Diagnostic(nil), exprOut.Diagnostics...)
	if !exprOut.Ok {
		p.skipToNextNewline()
		return Output[ast.Statement]{Diagnostics: diags}
	}
	p.skipWhitespace()
	if p.at(token.Equals) {
		p.advance()
		p.skipWhitespace()
		rhsOut := p.ParseExpr(0)
		diags = append(diags, rhsOut.Diagnostics...)
		p.skipWhitespace()
		diags = append(diags, p.thenIgnore(token.Semi).Diagnostics...)
		if exprOut.Value.Kind != ast.ExprVariable {
			diags = append(diags, diag.New(diag.Error, "assignment target must be a variable", start))
			return Output[ast.Statement]{Diagnostics: diags}
		}
		return Output[ast.Statement]{
			Value:       ast.Statement{Kind: ast.StmtVariableMutation, Pos: start, Name: exprOut.Value.Name, Expr: rhsOut.Value},
			Ok:          rhsOut.Ok,
			Diagnostics: diags,
		}
	}
	if p.at(token.Semi) {
		p.advance()
		return Output[ast.Statement]{
			Value:       ast.Statement{Kind: ast.StmtFunctionCall, Pos: start, Expr: exprOut.Value},
			Ok:          true,
			Diagnostics: diags,
		}
	}
	bad := p.peek()
	diags = append(diags, diag.New(diag.Error,
		fmt.Sprintf("expected '=' or ';' after expression, found %s", bad.Kind), bad.Pos))
	p.skipToNextNewline()
	return Output[ast.Statement]{Diagnostics: diags}
}
