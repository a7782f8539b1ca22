package parser

import (
	"fmt"

	"iona/internal/ast"
	"iona/internal/diag"
	"iona/internal/token"
)

// metadata is the parsed contents of an @metadata block. Struct/enum
// declarations only ever populate Properties and Traits; functions only
// ever populate Properties and Permissions.
type metadata struct {
	Properties  []ast.DataProperty
	Traits      []ast.Trait
	Permissions []ast.Perm
}

func parseDataProperty(name string) (ast.DataProperty, bool) {
	switch name {
	case "Public":
		return ast.PropPublic, true
	case "Export":
		return ast.PropExport, true
	default:
		return 0, false
	}
}

func parseTrait(name string) ast.Trait {
	switch name {
	case "Eq":
		return ast.Trait{Kind: ast.TraitEq}
	case "Show":
		return ast.Trait{Kind: ast.TraitShow}
	default:
		return ast.Trait{Kind: ast.TraitCustom, Name: name}
	}
}

func parsePermission(name string) ast.Perm {
	switch name {
	case "ReadFile":
		return ast.Perm{Kind: ast.PermReadFile}
	case "WriteFile":
		return ast.Perm{Kind: ast.PermWriteFile}
	case "ReadIO":
		return ast.Perm{Kind: ast.PermReadIO}
	case "WriteIO":
		return ast.Perm{Kind: ast.PermWriteIO}
	case "HTTPAny":
		return ast.Perm{Kind: ast.PermHTTPAny}
	case "HTTPGet":
		return ast.Perm{Kind: ast.PermHTTPGet}
	case "HTTPPost":
		return ast.Perm{Kind: ast.PermHTTPPost}
	default:
		return ast.Perm{Kind: ast.PermCustom, Name: name}
	}
}

// parseMetadataBlock parses "@metadata { Is: ...; Derives: ...; Uses: ...; }".
// An unknown leading token inside the block is recorded and skipped to
// the next newline so the remaining lines still parse, per spec §4.4.
func (p *Parser) parseMetadataBlock() Output[metadata] {
	p.pushTrace("parse_metadata_block")
	defer p.popTrace()

	var out metadata
	var diags []diag.Diagnostic

	openOut := p.thenIgnore(token.LBrace)
	diags = append(diags, openOut.Diagnostics...)

	for {
		p.skipWhitespace()
		if p.at(token.RBrace) || p.at(token.EOF) {
			break
		}
		switch p.peek().Kind {
		case token.KwIs:
			p.advance()
			diags = append(diags, p.thenIgnore(token.Colon).Diagnostics...)
			items := parseListCommaSeparated(p, p.thenIdentifier)
			diags = append(diags, items.Diagnostics...)
			for _, name := range items.Value {
				if prop, ok := parseDataProperty(name); ok {
					out.Properties = append(out.Properties, prop)
				} else {
					out.Permissions = append(out.Permissions, parsePermission(name))
				}
			}
			diags = append(diags, p.thenIgnore(token.Semi).Diagnostics...)
		case token.KwDerives:
			p.advance()
			diags = append(diags, p.thenIgnore(token.Colon).Diagnostics...)
			items := parseListCommaSeparated(p, p.thenIdentifier)
			diags = append(diags, items.Diagnostics...)
			for _, name := range items.Value {
				out.Traits = append(out.Traits, parseTrait(name))
			}
			diags = append(diags, p.thenIgnore(token.Semi).Diagnostics...)
		case token.KwUses:
			p.advance()
			diags = append(diags, p.thenIgnore(token.Colon).Diagnostics...)
			items := parseListCommaSeparated(p, p.thenIdentifier)
			diags = append(diags, items.Diagnostics...)
			for _, name := range items.Value {
				out.Permissions = append(out.Permissions, parsePermission(name))
			}
			diags = append(diags, p.thenIgnore(token.Semi).Diagnostics...)
		default:
			bad := p.peek()
			diags = append(diags, diag.New(diag.Error,
				fmt.Sprintf("unknown metadata key %s", bad.Kind), bad.Pos))
			p.skipToNextNewline()
		}
	}
	diags = append(diags, p.thenIgnore(token.RBrace).Diagnostics...)
	return Output[metadata]{Value: out, Ok: true, Diagnostics: diags}
}

// parseContractsBlock parses "@contracts { In: (expr, "msg") Out: (expr, "msg") }".
// A malformed line is recovered by skipping to the next newline so
// subsequent contracts still parse, per spec §4.4.
func (p *Parser) parseContractsBlock() Output[[]ast.FunctionContract] {
	p.pushTrace("parse_contracts_block")
	defer p.popTrace()

	var out []ast.FunctionContract
	var diags []diag.Diagnostic

	diags = append(diags, p.thenIgnore(token.LBrace).Diagnostics...)

	for {
		p.skipWhitespace()
		if p.at(token.RBrace) || p.at(token.EOF) {
			break
		}
		var kind ast.ContractKind
		switch p.peek().Kind {
		case token.KwIn:
			kind = ast.ContractInput
		case token.KwOut:
			kind = ast.ContractOutput
		default:
			bad := p.peek()
			diags = append(diags, diag.New(diag.Error,
				fmt.Sprintf("expected In or Out, found %s", bad.Kind), bad.Pos))
			p.skipToNextNewline()
			continue
		}
		p.advance()
		diags = append(diags, p.thenIgnore(token.Colon).Diagnostics...)
		p.skipWhitespace()
		if !p.at(token.LParen) {
			diags = append(diags, diag.New(diag.Error,
				"expected '(' after contract keyword", p.peek().Pos))
			p.skipToNextNewline()
			continue
		}
		p.advance()
		p.skipWhitespace()
		condOut := p.ParseExpr(0)
		diags = append(diags, condOut.Diagnostics...)
		if !condOut.Ok {
			p.skipToNextNewline()
			continue
		}
		p.skipWhitespace()
		diags = append(diags, p.thenIgnore(token.Comma).Diagnostics...)
		p.skipWhitespace()
		if !p.at(token.StringLit) {
			diags = append(diags, diag.New(diag.Error,
				"expected string message in contract", p.peek().Pos))
			p.skipToNextNewline()
			continue
		}
		msgTok := p.advance()
		p.skipWhitespace()
		diags = append(diags, p.thenIgnore(token.RParen).Diagnostics...)
		out = append(out, ast.FunctionContract{Kind: kind, Condition: condOut.Value, Message: msgTok.Text})
	}
	diags = append(diags, p.thenIgnore(token.RBrace).Diagnostics...)
	return Output[[]ast.FunctionContract]{Value: out, Ok: true, Diagnostics: diags}
}

// skipToNextNewline advances the cursor past tokens until (and including)
// the next NewLine or EOF - the block-local error-recovery discipline.
func (p *Parser) skipToNextNewline() {
	for !p.at(token.NewLine) && !p.at(token.EOF) {
		p.advance()
	}
	if p.at(token.NewLine) {
		p.advance()
	}
}
