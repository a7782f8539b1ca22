package parser

import (
	"fmt"

	"iona/internal/ast"
	"iona/internal/diag"
	"iona/internal/token"
)

// precedence returns the binding power of an infix operator token, or -1
// if it is not an infix operator. Table per spec §4.3.
func precedence(k token.Kind) int {
	switch k {
	case token.Plus, token.Minus:
		return 4
	case token.Star, token.Slash, token.Percent:
		return 5
	case token.LAngle, token.RAngle:
		return 3
	case token.Dot, token.LBracket:
		return 6
	default:
		return -1
	}
}

// identBinaryOp maps the "and"/"or" keyword-like identifiers to their
// precedence level; they are lexed as plain identifiers since they are
// not in the reserved-word table.
func identBinaryOp(text string) (ast.BinaryOp, int, bool) {
	switch text {
	case "or":
		return ast.OpOr, 1, true
	case "and":
		return ast.OpAnd, 2, true
	default:
		return 0, 0, false
	}
}

func tokenBinaryOp(k token.Kind) (ast.BinaryOp, bool) {
	switch k {
	case token.Plus:
		return ast.OpAdd, true
	case token.Minus:
		return ast.OpSubtract, true
	case token.Star:
		return ast.OpMultiply, true
	case token.Slash:
		return ast.OpDivide, true
	case token.Percent:
		return ast.OpModulo, true
	case token.LAngle:
		return ast.OpLessThan, true
	case token.RAngle:
		return ast.OpGreaterThan, true
	default:
		return 0, false
	}
}

// ParseExpr parses an expression with the given minimum precedence. This
// is the Pratt parser's entry point; top-level callers always pass 0.
func (p *Parser) ParseExpr(minPrecedence int) Output[*ast.Expr] {
	p.pushTrace("parse_expr")
	defer p.popTrace()

	p.exprDepth++
	defer func() { p.exprDepth-- }()
	if p.exprDepth > maxExprDepth {
		p.fatal = true
		return None[*ast.Expr](diag.New(diag.Error,
			"expression nesting exceeds maximum depth", p.peek().Pos))
	}

	left := p.parsePrefix()
	if !left.Ok {
		return left
	}

	for {
		p.skipWhitespace()
		tok := p.peek()

		if tok.Kind == token.Ident {
			if op, prec, ok := identBinaryOp(tok.Text); ok && prec >= minPrecedence {
				p.advance()
				p.skipWhitespace()
				right := p.ParseExpr(prec + 1)
				if !right.Ok {
					return Output[*ast.Expr]{Diagnostics: append(left.Diagnostics, right.Diagnostics...)}
				}
				left = Some(&ast.Expr{
					Kind: ast.ExprBinaryOp, Pos: tok.Pos,
					Left: left.Value, Op: op, Right: right.Value,
				}).WithDiagnostics(append(left.Diagnostics, right.Diagnostics...)...)
				continue
			}
			break
		}

		if tok.Kind == token.Dot {
			left = p.parseDotSuffix(left)
			continue
		}
		if tok.Kind == token.LBracket {
			left = p.parseIndexSuffix(left)
			continue
		}

		prec := precedence(tok.Kind)
		if prec < 0 || prec < minPrecedence {
			break
		}
		op, ok := tokenBinaryOp(tok.Kind)
		if !ok {
			break
		}
		p.advance()
		p.skipWhitespace()
		right := p.ParseExpr(prec + 1)
		if !right.Ok {
			return Output[*ast.Expr]{Diagnostics: append(left.Diagnostics, right.Diagnostics...)}
		}
		left = Some(&ast.Expr{
			Kind: ast.ExprBinaryOp, Pos: tok.Pos,
			Left: left.Value, Op: op, Right: right.Value,
		}).WithDiagnostics(append(left.Diagnostics, right.Diagnostics...)...)
	}
	return left
}

// parsePrefix parses a literal, parenthesized expression, identifier
// (possibly a call), or unary minus.
func (p *Parser) parsePrefix() Output[*ast.Expr] {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return Some(&ast.Expr{Kind: ast.ExprIntLit, Pos: tok.Pos, IntVal: tok.IntVal})
	case token.FloatLit:
		p.advance()
		return Some(&ast.Expr{Kind: ast.ExprFloatLit, Pos: tok.Pos, FloatVal: tok.FloatVal})
	case token.StringLit:
		p.advance()
		return Some(&ast.Expr{Kind: ast.ExprStringLit, Pos: tok.Pos, StringVal: tok.Text})
	case token.Minus:
		p.advance()
		p.skipWhitespace()
		operand := p.ParseExpr(6)
		if !operand.Ok {
			return operand
		}
		return Some(&ast.Expr{Kind: ast.ExprUnaryOp, Pos: tok.Pos, UnOp: ast.OpNegate, Operand: operand.Value}).
			WithDiagnostics(operand.Diagnostics...)
	case token.LParen:
		p.advance()
		p.skipWhitespace()
		inner := p.ParseExpr(0)
		p.skipWhitespace()
		closeOut := p.thenIgnore(token.RParen)
		diags := append(append([]diag.Diagnostic(nil), inner.Diagnostics...), closeOut.Diagnostics...)
		if !inner.Ok {
			return Output[*ast.Expr]{Diagnostics: diags}
		}
		return Output[*ast.Expr]{Value: inner.Value, Ok: true, Diagnostics: diags}
	case token.Ident:
		p.advance()
		if p.at(token.LParen) {
			argsOut := p.parseParenArgList()
			return Output[*ast.Expr]{
				Value:       &ast.Expr{Kind: ast.ExprFunctionCall, Pos: tok.Pos, Name: tok.Text, Args: argsOut.Value},
				Ok:          true,
				Diagnostics: argsOut.Diagnostics,
			}
		}
		return Some(&ast.Expr{Kind: ast.ExprVariable, Pos: tok.Pos, Name: tok.Text})
	default:
		return None[*ast.Expr](diag.New(diag.Error,
			fmt.Sprintf("expected expression, found %s", tok.Kind), tok.Pos))
	}
}

func (p *Parser) parseDotSuffix(left Output[*ast.Expr]) Output[*ast.Expr] {
	dotTok := p.advance() // '.'
	p.skipWhitespace()
	nameOut := p.thenIdentifier()
	if !nameOut.Ok {
		return Output[*ast.Expr]{Diagnostics: append(left.Diagnostics, nameOut.Diagnostics...)}
	}
	if p.at(token.LParen) {
		argsOut := p.parseParenArgList()
		return Output[*ast.Expr]{
			Value: &ast.Expr{Kind: ast.ExprMethodCall, Pos: dotTok.Pos, Object: left.Value, Name: nameOut.Value, Args: argsOut.Value},
			Ok:    true,
			Diagnostics: append(append(left.Diagnostics, nameOut.Diagnostics...), argsOut.Diagnostics...),
		}
	}
	return Output[*ast.Expr]{
		Value:       &ast.Expr{Kind: ast.ExprPropertyAccess, Pos: dotTok.Pos, Object: left.Value, Name: nameOut.Value},
		Ok:          true,
		Diagnostics: append(left.Diagnostics, nameOut.Diagnostics...),
	}
}

func (p *Parser) parseIndexSuffix(left Output[*ast.Expr]) Output[*ast.Expr] {
	openTok := p.advance() // '['
	p.skipWhitespace()
	idx := p.ParseExpr(0)
	p.skipWhitespace()
	closeOut := p.thenIgnore(token.RBracket)
	diags := append(append(append([]diag.Diagnostic(nil), left.Diagnostics...), idx.Diagnostics...), closeOut.Diagnostics...)
	if !idx.Ok {
		return Output[*ast.Expr]{Diagnostics: diags}
	}
	return Output[*ast.Expr]{
		Value:       &ast.Expr{Kind: ast.ExprIndexAccess, Pos: openTok.Pos, Object: left.Value, Index: idx.Value},
		Ok:          true,
		Diagnostics: diags,
	}
}

// parseParenArgList parses a "(" comma-separated-expressions ")" suffix,
// used by both function calls and method calls.
func (p *Parser) parseParenArgList() Output[[]*ast.Expr] {
	p.advance() // '('
	p.skipWhitespace()
	argsOut := parseListCommaSeparated(p, func() Output[*ast.Expr] { return p.ParseExpr(0) })
	p.skipWhitespace()
	closeOut := p.thenIgnore(token.RParen)
	return Output[[]*ast.Expr]{
		Value:       argsOut.Value,
		Ok:          true,
		Diagnostics: append(argsOut.Diagnostics, closeOut.Diagnostics...),
	}
}
