// Package ast holds the XDR data model built from the parse tree, plus the
// semantic indices the emission passes consume.
package ast

// BasicKind enumerates the closed set of XDR scalar categories.
type BasicKind int

const (
	U32 BasicKind = iota
	U64
	I32
	I64
	F32
	F64
	Bool
	String
	Opaque
	Ident
)

// BasicType is a scalar type reference. All primitive spellings canonicalize
// to one kind; anything unrecognized is an identifier reference to a declared
// type, resolved later through the type index.
type BasicType struct {
	Kind BasicKind
	Name string
}

// NewBasicType canonicalizes an IDL type spelling.
func NewBasicType(s string) BasicType {
	switch s {
	case "unsigned int", "unsigned", "uint32_t", "u32":
		return BasicType{Kind: U32, Name: s}
	case "int", "int32_t", "i32":
		return BasicType{Kind: I32, Name: s}
	case "unsigned hyper", "uint64_t", "u64":
		return BasicType{Kind: U64, Name: s}
	case "hyper", "int64_t", "i64":
		return BasicType{Kind: I64, Name: s}
	case "float":
		return BasicType{Kind: F32, Name: s}
	case "double":
		return BasicType{Kind: F64, Name: s}
	case "string":
		return BasicType{Kind: String, Name: s}
	case "opaque":
		return BasicType{Kind: Opaque, Name: s}
	case "bool":
		return BasicType{Kind: Bool, Name: s}
	}
	return BasicType{Kind: Ident, Name: s}
}

// IsPrimitive reports whether the type is one of the fixed-width scalar
// categories (not a string, opaque buffer, or identifier reference).
func (b BasicType) IsPrimitive() bool {
	switch b.Kind {
	case U32, U64, I32, I64, F32, F64, Bool:
		return true
	}
	return false
}

func (b BasicType) String() string {
	return b.Name
}
