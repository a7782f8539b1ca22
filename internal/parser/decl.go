package parser

import (
	"fmt"

	"iona/internal/ast"
	"iona/internal/diag"
	"iona/internal/token"
)

// parseTopLevelItem dispatches on the next non-whitespace token, per
// spec §4.4's top-level dispatch table.
func (p *Parser) parseTopLevelItem() Output[ast.Node] {
	p.skipWhitespace()
	switch p.peek().Kind {
	case token.KwStruct:
		return Map(p.parseStruct(), func(s *ast.Struct) ast.Node {
			return ast.Node{Kind: ast.NodeStructDeclaration, Struct: s}
		})
	case token.KwEnum:
		return Map(p.parseEnum(), func(e *ast.Enum) ast.Node {
			return ast.Node{Kind: ast.NodeEnumDeclaration, Enum: e}
		})
	case token.KwImport:
		return Map(p.parseImport(), func(i *ast.Import) ast.Node {
			return ast.Node{Kind: ast.NodeImportStatement, Import: i}
		})
	case token.KwFn:
		return Map(p.parseFunction(), func(f *ast.Function) ast.Node {
			return ast.Node{Kind: ast.NodeFunctionDeclaration, Function: f}
		})
	default:
		got := p.peek()
		return None[ast.Node](diag.New(diag.Error,
			fmt.Sprintf("expected struct, enum, import or fn, found %s", got.Kind), got.Pos))
	}
}

// parseImport parses "import NAME with Item1, Item2;".
func (p *Parser) parseImport() Output[*ast.Import] {
	p.pushTrace("parse_import")
	defer p.popTrace()

	start := p.peek().Pos
	var diags []diag.Diagnostic
	diags = append(diags, p.thenIgnore(token.KwImport).Diagnostics...)
	p.skipWhitespace()
	nameOut := p.thenIdentifier()
	diags = append(diags, nameOut.Diagnostics...)
	if !nameOut.Ok {
		return Output[*ast.Import]{Diagnostics: diags}
	}

	var items []string
	p.skipWhitespace()
	if p.at(token.KwWith) {
		p.advance()
		p.skipWhitespace()
		itemsOut := parseListCommaSeparated(p, p.thenIdentifier)
		diags = append(diags, itemsOut.Diagnostics...)
		items = itemsOut.Value
	}
	p.skipWhitespace()
	diags = append(diags, p.thenIgnore(token.Semi).Diagnostics...)

	return Output[*ast.Import]{
		Value:       &ast.Import{Pos: start, File: nameOut.Value, Items: items},
		Ok:          true,
		Diagnostics: diags,
	}
}

// parseFieldList parses comma-separated fields, where typed controls
// whether a ": Type" suffix is required (structs) or optional and
// defaulted to Void when absent (enums).
func (p *Parser) parseFieldList(typed bool) Output[[]ast.Field] {
	return parseListCommaSeparated(p, func() Output[ast.Field] {
		p.skipWhitespace()
		nameOut := p.thenIdentifier()
		if !nameOut.Ok {
			return Output[ast.Field]{Diagnostics: nameOut.Diagnostics}
		}
		p.skipWhitespace()
		if !p.at(token.Colon) {
			if typed {
				return Output[ast.Field]{Diagnostics: append(nameOut.Diagnostics,
					diag.New(diag.Error, "expected ':' in field declaration", p.peek().Pos))}
			}
			return Output[ast.Field]{Value: ast.Field{Name: nameOut.Value, Type: ast.Primitive(ast.TVoid)}, Ok: true, Diagnostics: nameOut.Diagnostics}
		}
		p.advance()
		p.skipWhitespace()
		typeOut := p.parseType()
		return Output[ast.Field]{
			Value:       ast.Field{Name: nameOut.Value, Type: typeOut.Value},
			Ok:          typeOut.Ok,
			Diagnostics: append(nameOut.Diagnostics, typeOut.Diagnostics...),
		}
	})
}

// parseStruct parses "struct NAME { field,* @metadata { ... } }". The
// metadata block is mandatory for structs.
func (p *Parser) parseStruct() Output[*ast.Struct] {
	p.pushTrace("parse_struct")
	defer p.popTrace()

	start := p.peek().Pos
	var diags []diag.Diagnostic
	diags = append(diags, p.thenIgnore(token.KwStruct).Diagnostics...)
	p.skipWhitespace()
	nameOut := p.thenIdentifier()
	diags = append(diags, nameOut.Diagnostics...)
	if !nameOut.Ok {
		return Output[*ast.Struct]{Diagnostics: diags}
	}
	p.skipWhitespace()
	diags = append(diags, p.thenIgnore(token.LBrace).Diagnostics...)
	p.skipWhitespace()

	fieldsOut := p.parseFieldList(true)
	diags = append(diags, fieldsOut.Diagnostics...)

	p.skipWhitespace()
	diags = append(diags, p.thenIgnore(token.At).Diagnostics...)
	diags = append(diags, p.thenIgnore(token.KwMetadata).Diagnostics...)
	p.skipWhitespace()
	metaOut := p.parseMetadataBlock()
	diags = append(diags, metaOut.Diagnostics...)

	p.skipWhitespace()
	diags = append(diags, p.thenIgnore(token.RBrace).Diagnostics...)

	return Output[*ast.Struct]{
		Value: &ast.Struct{
			Name: nameOut.Value, Pos: start,
			Fields:         fieldsOut.Value,
			DataProperties: metaOut.Value.Properties,
			DataTraits:     metaOut.Value.Traits,
		},
		Ok:          true,
		Diagnostics: diags,
	}
}

// parseEnum parses "enum NAME { variant,* @metadata { ... } }". Variant
// fields may omit ": Type", defaulting to Void (payload-less variant).
func (p *Parser) parseEnum() Output[*ast.Enum] {
	p.pushTrace("parse_enum")
	defer p.popTrace()

	start := p.peek().Pos
	var diags []diag.Diagnostic
	diags = append(diags, p.thenIgnore(token.KwEnum).Diagnostics...)
	p.skipWhitespace()
	nameOut := p.thenIdentifier()
	diags = append(diags, nameOut.Diagnostics...)
	if !nameOut.Ok {
		return Output[*ast.Enum]{Diagnostics: diags}
	}
	p.skipWhitespace()
	diags = append(diags, p.thenIgnore(token.LBrace).Diagnostics...)
	p.skipWhitespace()

	fieldsOut := p.parseFieldList(false)
	diags = append(diags, fieldsOut.Diagnostics...)

	p.skipWhitespace()
	diags = append(diags, p.thenIgnore(token.At).Diagnostics...)
	diags = append(diags, p.thenIgnore(token.KwMetadata).Diagnostics...)
	p.skipWhitespace()
	metaOut := p.parseMetadataBlock()
	diags = append(diags, metaOut.Diagnostics...)

	p.skipWhitespace()
	diags = append(diags, p.thenIgnore(token.RBrace).Diagnostics...)

	return Output[*ast.Enum]{
		Value: &ast.Enum{
			Name: nameOut.Value, Pos: start,
			Fields:         fieldsOut.Value,
			DataProperties: metaOut.Value.Properties,
			DataTraits:     metaOut.Value.Traits,
		},
		Ok:          true,
		Diagnostics: diags,
	}
}
