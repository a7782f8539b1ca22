package ast

import "fmt"

// TypeKind is the closed set of type constructors the language supports.
type TypeKind uint8

const (
	TVoid TypeKind = iota
	TInt
	TFloat
	TString
	TBool
	TSize
	TByte
	TAuto
	TRawCType

	// Container constructors, each exclusively owning its inner type.
	TArray
	TMap
	TShared

	// Parametric and nominal types.
	TGeneric
	TCustom
)

// Type is structurally hashable through Key: two Types with the same
// structure render the same Key string. Comparing Types with == is not
// structural, since container types compare their Elem pointers, so
// TypeTable keys its maps on Key() (spec §3).
type Type struct {
	Kind TypeKind
	// Name carries the identifier for TGeneric and TCustom.
	Name string
	// Elem is the inner type for TArray, TMap, TShared.
	Elem *Type
}

// Key renders a Type into a string uniquely identifying its structure, for
// use as a map key wherever structurally equal Types must collide.
func (t Type) Key() string {
	switch t.Kind {
	case TArray:
		return "Array<" + t.Elem.Key() + ">"
	case TMap:
		return "Map<" + t.Elem.Key() + ">"
	case TShared:
		return "Shared<" + t.Elem.Key() + ">"
	case TGeneric:
		return "Generic<" + t.Name + ">"
	case TCustom:
		return "Custom<" + t.Name + ">"
	default:
		return t.Kind.String()
	}
}

func (k TypeKind) String() string {
	switch k {
	case TVoid:
		return "Void"
	case TInt:
		return "Int"
	case TFloat:
		return "Float"
	case TString:
		return "String"
	case TBool:
		return "Bool"
	case TSize:
		return "Size"
	case TByte:
		return "Byte"
	case TAuto:
		return "Auto"
	case TRawCType:
		return "RawCType"
	case TArray:
		return "Array"
	case TMap:
		return "Map"
	case TShared:
		return "Shared"
	case TGeneric:
		return "Generic"
	case TCustom:
		return "Custom"
	default:
		return fmt.Sprintf("TypeKind(%d)", uint8(k))
	}
}

// IsContainer reports whether t is one of the three container constructors
// whose monomorphization obligations are collected recursively (spec §9).
func (t Type) IsContainer() bool {
	return t.Kind == TArray || t.Kind == TMap || t.Kind == TShared
}

// Primitive constructs a Type for one of the non-parametric, non-nominal
// kinds. Callers must not pass TArray/TMap/TShared/TGeneric/TCustom.
func Primitive(k TypeKind) Type { return Type{Kind: k} }

// ArrayOf, MapOf and SharedOf construct the three container types.
func ArrayOf(elem Type) Type  { return Type{Kind: TArray, Elem: &elem} }
func MapOf(elem Type) Type    { return Type{Kind: TMap, Elem: &elem} }
func SharedOf(elem Type) Type { return Type{Kind: TShared, Elem: &elem} }

// GenericOf and CustomOf construct parametric and nominal types.
func GenericOf(name string) Type { return Type{Kind: TGeneric, Name: name} }
func CustomOf(name string) Type  { return Type{Kind: TCustom, Name: name} }
