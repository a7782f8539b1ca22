package parser

import (
	"fmt"

	"iona/internal/ast"
	"iona/internal/diag"
	"iona/internal/token"
)

var primitiveTypes = map[string]ast.TypeKind{
	"Int":      ast.TInt,
	"Float":    ast.TFloat,
	"String":   ast.TString,
	"Bool":     ast.TBool,
	"Size":     ast.TSize,
	"Byte":     ast.TByte,
	"Void":     ast.TVoid,
	"Auto":     ast.TAuto,
	"RawCType": ast.TRawCType,
}

var containerTypes = map[string]ast.TypeKind{
	"Array":  ast.TArray,
	"Map":    ast.TMap,
	"Shared": ast.TShared,
}

// parseType dispatches on the leading identifier's name, per spec §4.4.
func (p *Parser) parseType() Output[ast.Type] {
	p.pushTrace("parse_type")
	defer p.popTrace()

	if p.at(token.KwGeneric) {
		p.advance()
		openOut := p.thenIgnore(token.LAngle)
		nameOut := p.thenIdentifier()
		closeOut := p.thenIgnore(token.RAngle)
		diags := append(append(openOut.Diagnostics, nameOut.Diagnostics...), closeOut.Diagnostics...)
		if !nameOut.Ok {
			return Output[ast.Type]{Diagnostics: diags}
		}
		return Output[ast.Type]{Value: ast.GenericOf(nameOut.Value), Ok: true, Diagnostics: diags}
	}

	if !p.at(token.Ident) {
		got := p.peek()
		return None[ast.Type](diag.New(diag.Error,
			fmt.Sprintf("expected type name, found %s", got.Kind), got.Pos))
	}
	tok := p.advance()

	if kind, ok := containerTypes[tok.Text]; ok {
		openOut := p.thenIgnore(token.LAngle)
		elemOut := p.parseType()
		closeOut := p.thenIgnore(token.RAngle)
		diags := append(append(openOut.Diagnostics, elemOut.Diagnostics...), closeOut.Diagnostics...)
		if !elemOut.Ok {
			return Output[ast.Type]{Diagnostics: diags}
		}
		elem := elemOut.Value
		result := ast.Type{Kind: kind, Elem: &elem}
		return Output[ast.Type]{Value: result, Ok: true, Diagnostics: diags}
	}

	if kind, ok := primitiveTypes[tok.Text]; ok {
		return Some(ast.Primitive(kind))
	}

	return Some(ast.CustomOf(tok.Text))
}
