package ast

import "iona/internal/source"

// DataProperty is a declaration-level modifier shared by structs, enums
// and functions (spec §3).
type DataProperty uint8

const (
	PropPublic DataProperty = iota
	PropExport
)

// DataTrait is a derivable trait for structs and enums. TraitCustom
// carries an arbitrary name supplied via `Derives`.
type DataTrait uint8

const (
	TraitEq DataTrait = iota
	TraitShow
	TraitCustom
)

// Trait pairs a DataTrait tag with the name payload TraitCustom carries.
type Trait struct {
	Kind DataTrait
	Name string // populated only for TraitCustom
}

// Permission is an effect label a function declares via `Uses`.
// PermCustom carries an arbitrary name.
type Permission uint8

const (
	PermReadFile Permission = iota
	PermWriteFile
	PermReadIO
	PermWriteIO
	PermHTTPAny
	PermHTTPGet
	PermHTTPPost
	PermCustom
)

// Perm pairs a Permission tag with the name payload PermCustom carries.
type Perm struct {
	Kind Permission
	Name string // populated only for PermCustom
}

// ContractKind distinguishes a function's precondition from its
// postcondition contracts.
type ContractKind uint8

const (
	ContractInput ContractKind = iota
	ContractOutput
)

// Field is a (name, type) pair used for struct fields, enum variants and
// function parameters.
type Field struct {
	Name string
	Type Type
}

// Struct is a product type: every field carries a concrete type.
type Struct struct {
	Name           string
	Pos            source.Position
	Fields         []Field
	DataProperties []DataProperty
	DataTraits     []Trait
}

// Enum is a tagged union: a variant's Field.Type is Void for a
// payload-less variant.
type Enum struct {
	Name           string
	Pos            source.Position
	Fields         []Field
	DataProperties []DataProperty
	DataTraits     []Trait
}

// FunctionContract is one pre/post-condition attached via a function's
// `contracts` block.
type FunctionContract struct {
	Kind      ContractKind
	Condition *Expr
	Message   string
}

// Function is a top-level callable declaration.
type Function struct {
	Name           string
	Pos            source.Position
	Args           []Field
	Returns        Type
	DataProperties []DataProperty
	Permissions    []Perm
	Contracts      []FunctionContract
	Statements     []Statement
}

// Import is a single `import` statement: file names the imported module,
// items lists the names pulled from it (empty means "import everything
// public").
type Import struct {
	Pos   source.Position
	File  string
	Items []string
}

// NodeKind tags which declaration a Node carries.
type NodeKind uint8

const (
	NodeStructDeclaration NodeKind = iota
	NodeEnumDeclaration
	NodeImportStatement
	NodeFunctionDeclaration
)

// Node is the tagged variant every top-level declaration is wrapped in
// before being appended to a module's AST (spec §3, ASTNode).
type Node struct {
	Kind     NodeKind
	Struct   *Struct
	Enum     *Enum
	Import   *Import
	Function *Function
}

// File is the parsed result for a single module: its ordered top-level
// declarations. The diagnostics produced while parsing it are returned
// separately by parser.ParseModule.
type File struct {
	ModuleName string
	Nodes      []Node
}
