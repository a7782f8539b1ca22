package ast

import "iona/internal/source"

// ExprKind is the closed set of expression forms (spec §3).
type ExprKind uint8

const (
	ExprIntLit ExprKind = iota
	ExprFloatLit
	ExprStringLit
	ExprVariable
	ExprPropertyAccess
	ExprFunctionCall
	ExprMethodCall
	ExprBinaryOp
	ExprUnaryOp
	ExprIndexAccess
)

// BinaryOp is the closed set of binary operators the expression parser
// recognizes. Their binding powers live in the parser's precedence table
// (§4.3), not in this constant order.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpLessThan
	OpGreaterThan
	OpAnd
	OpOr
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	case OpModulo:
		return "%"
	case OpLessThan:
		return "<"
	case OpGreaterThan:
		return ">"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	default:
		return "?"
	}
}

// UnaryOp is the closed set of unary operators. Negate is currently the
// only member (spec §3).
type UnaryOp uint8

const (
	OpNegate UnaryOp = iota
)

// Expr is a single expression-tree node. Only the fields relevant to Kind
// are populated; this mirrors the teacher's tagged-payload style without
// the arena indirection, since iona expressions never need to outlive the
// function body that produced them.
type Expr struct {
	Kind ExprKind
	Pos  source.Position

	// ExprIntLit / ExprFloatLit / ExprStringLit
	IntVal    int64
	FloatVal  float64
	StringVal string

	// ExprVariable: Name. ExprFunctionCall: Name, Args.
	// ExprPropertyAccess: Object, Name. ExprMethodCall: Object, Name, Args.
	Name   string
	Object *Expr
	Args   []*Expr

	// ExprBinaryOp
	Left  *Expr
	Op    BinaryOp
	Right *Expr

	// ExprUnaryOp
	UnOp    UnaryOp
	Operand *Expr

	// ExprIndexAccess
	Index *Expr
}
