package parser

import (
	"iona/internal/ast"
	"iona/internal/diag"
	"iona/internal/token"
)

// parseConditional parses "if cond { … } (elif cond { … })* (else { … })?".
// Each branch's computations are a statement list; the else branch's
// condition is nil.
func (p *Parser) parseConditional() Output[ast.Statement] {
	start := p.peek().Pos
	var diags []diag.Diagnostic
	var branches []ast.Branch

	diags = append(diags, p.thenIgnore(token.KwIf).Diagnostics...)
	branch, bdiags := p.parseConditionalBranch()
	diags = append(diags, bdiags...)
	branches = append(branches, branch)

	for {
		p.skipWhitespace()
		if !p.at(token.KwElif) {
			break
		}
		p.advance()
		branch, bdiags := p.parseConditionalBranch()
		diags = append(diags, bdiags...)
		branches = append(branches, branch)
	}

	p.skipWhitespace()
	if p.at(token.KwElse) {
		p.advance()
		p.skipWhitespace()
		diags = append(diags, p.thenIgnore(token.LBrace).Diagnostics...)
		bodyOut := p.parseStatementsUntilBrace()
		diags = append(diags, bodyOut.Diagnostics...)
		diags = append(diags, p.thenIgnore(token.RBrace).Diagnostics...)
		branches = append(branches, ast.Branch{Condition: nil, Computations: bodyOut.Value})
	}

	return Output[ast.Statement]{
		Value:       ast.Statement{Kind: ast.StmtConditional, Pos: start, Branches: branches},
		Ok:          true,
		Diagnostics: diags,
	}
}

// parseConditionalBranch parses "cond { statements }" - the shared tail
// of if/elif arms.
func (p *Parser) parseConditionalBranch() (ast.Branch, []diag.Diagnostic) {
	var diags []diag.Diagnostic
	p.skipWhitespace()
	condOut := p.ParseExpr(0)
	diags = append(diags, condOut.Diagnostics...)
	p.skipWhitespace()
	diags = append(diags, p.thenIgnore(token.LBrace).Diagnostics...)
	bodyOut := p.parseStatementsUntilBrace()
	diags = append(diags, bodyOut.Diagnostics...)
	diags = append(diags, p.thenIgnore(token.RBrace).Diagnostics...)
	return ast.Branch{Condition: condOut.Value, Computations: bodyOut.Value}, diags
}

// parseMatch parses "match expr { pattern => (expr; | { stmts }) ,* }".
// "_" is the catch-all, producing a nil-condition branch. A
// single-expression arm is lowered to a Return(expr) statement. The
// scrutinee is carried on the resulting Statement's Expr field, since
// Statement has no dedicated slot for it; pattern comparison against the
// scrutinee is left to semantic analysis, out of the parser's scope.
func (p *Parser) parseMatch() Output[ast.Statement] {
	start := p.peek().Pos
	var diags []diag.Diagnostic

	diags = append(diags, p.thenIgnore(token.KwMatch).Diagnostics...)
	p.skipWhitespace()
	scrutineeOut := p.ParseExpr(0)
	diags = append(diags, scrutineeOut.Diagnostics...)
	p.skipWhitespace()
	diags = append(diags, p.thenIgnore(token.LBrace).Diagnostics...)

	var branches []ast.Branch
	for {
		p.skipWhitespace()
		if p.at(token.RBrace) || p.at(token.EOF) {
			break
		}
		var cond *ast.Expr
		if p.at(token.Underscore) {
			p.advance()
		} else {
			patOut := p.ParseExpr(0)
			diags = append(diags, patOut.Diagnostics...)
			cond = patOut.Value
		}
		p.skipWhitespace()
		diags = append(diags, p.thenIgnore(token.FatArrow).Diagnostics...)
		p.skipWhitespace()

		var computations []ast.Statement
		if p.at(token.LBrace) {
			p.advance()
			bodyOut := p.parseStatementsUntilBrace()
			diags = append(diags, bodyOut.Diagnostics...)
			diags = append(diags, p.thenIgnore(token.RBrace).Diagnostics...)
			computations = bodyOut.Value
		} else {
			exprOut := p.ParseExpr(0)
			diags = append(diags, exprOut.Diagnostics...)
			if exprOut.Ok {
				computations = []ast.Statement{{Kind: ast.StmtReturn, Pos: start, Expr: exprOut.Value}}
			}
			p.skipWhitespace()
			diags = append(diags, p.thenIgnore(token.Semi).Diagnostics...)
		}
		branches = append(branches, ast.Branch{Condition: cond, Computations: computations})

		// Trailing comma is optional: lookahead() decides whether one is
		// present without destructively consuming whitespace if it isn't.
		if p.lookahead().Kind == token.Comma {
			p.skipWhitespace()
			p.advance() // the comma
		}
	}
	diags = append(diags, p.thenIgnore(token.RBrace).Diagnostics...)

	return Output[ast.Statement]{
		Value:       ast.Statement{Kind: ast.StmtConditional, Pos: start, Expr: scrutineeOut.Value, Branches: branches},
		Ok:          true,
		Diagnostics: diags,
	}
}
