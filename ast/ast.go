package ast

// Decl is a top-level XDR declaration.
type Decl interface {
	// DeclName returns the declared identifier.
	DeclName() string
}

// StructField is one field of a struct declaration.
type StructField struct {
	Type     ArrayType
	Name     string
	Optional bool // declared with the XDR pointer/option marker
}

// Struct is an XDR structure.
type Struct struct {
	Name   string
	Fields []StructField
}

func (s *Struct) DeclName() string { return s.Name }

// UnionSwitch is the discriminant declaration of a union.
type UnionSwitch struct {
	Type BasicType
	Var  string
}

// UnionCase is one discriminated arm carrying a payload. Consecutive case
// labels that fall through to one payload share a UnionCase, one value each
// in Values.
type UnionCase struct {
	Values []string
	Type   BasicType
	Name   string
}

// Union is an XDR discriminated union.
//
// Void arms are not UnionCases: their case values are collected in
// VoidCases, with the sentinel "default" recording a void default arm.
// A default arm with a payload is held in Default.
type Union struct {
	Name      string
	Switch    UnionSwitch
	Cases     []UnionCase
	Default   *UnionCase
	VoidCases []string
}

func (u *Union) DeclName() string { return u.Name }

// EnumVariant is one name/value pair of an enum. Value keeps the source
// spelling: decimal, hex, or a reference to a named constant.
type EnumVariant struct {
	Name  string
	Value string
}

// Enum is an XDR enumeration.
type Enum struct {
	Name     string
	Variants []EnumVariant
}

func (e *Enum) DeclName() string { return e.Name }

// Typedef aliases a target type shape under a new name.
type Typedef struct {
	Target ArrayType
	Alias  string
}

func (t *Typedef) DeclName() string { return t.Alias }

// SelfReferential reports whether the alias names its own target, as in
// "typedef uint32_t uint32_t;". Such aliases declare nothing new.
func (t *Typedef) SelfReferential() bool {
	return t.Target.Kind == ArrayNone && t.Target.Inner.Name == t.Alias
}

// Constant is a named constant definition.
type Constant struct {
	Name  string
	Value string
}

func (c *Constant) DeclName() string { return c.Name }

// Ast bundles the declarations with the three indices built over them.
type Ast struct {
	Decls    []Decl
	Consts   *ConstantIndex
	Generics *GenericIndex
	Types    *TypeIndex
}

// New builds the semantic indices over decls. Any duplicate symbol is a
// typed error.
func New(decls []Decl) (*Ast, error) {
	consts, err := BuildConstantIndex(decls)
	if err != nil {
		return nil, err
	}
	types, err := BuildTypeIndex(decls)
	if err != nil {
		return nil, err
	}
	return &Ast{
		Decls:    decls,
		Consts:   consts,
		Generics: BuildGenericIndex(decls),
		Types:    types,
	}, nil
}
