// Package gen contains the emission passes that turn an AST into Go source:
// type declarations, Decode and Encode methods, and WireSize methods. All
// passes are pure string emission into a caller-owned buffer.
package gen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fastxdr/fastxdr/ast"
)

// UnresolvableTypeError reports a reference to a type that is not declared
// anywhere in the definition, or that cannot serve where it is used.
type UnresolvableTypeError struct {
	Name string
}

func (e *UnresolvableTypeError) Error() string {
	return fmt.Sprintf("unresolvable type %q", e.Name)
}

// ArraySizeError reports an array size expression naming an unknown constant
// or a constant that never resolves to a number.
type ArraySizeError struct {
	Size string
}

func (e *ArraySizeError) Error() string {
	return fmt.Sprintf("invalid array size %q", e.Size)
}

var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true,
	"for": true, "func": true, "go": true, "goto": true, "if": true,
	"import": true, "interface": true, "map": true, "package": true,
	"range": true, "return": true, "select": true, "struct": true,
	"switch": true, "type": true, "var": true,
}

// safeName escapes identifiers that collide with Go keywords and lowers the
// XDR boolean literals to their Go spellings.
func safeName(s string) string {
	switch {
	case goKeywords[s]:
		return s + "_v"
	case s == "TRUE", s == "FALSE":
		return strings.ToLower(s)
	}
	return s
}

// armName derives a union arm field name from a case value. Values that are
// not valid identifier starts get a v_ prefix.
func armName(value string) string {
	s := safeName(value)
	if s == "" {
		return s
	}
	if s[0] == '-' {
		s = "n" + s[1:]
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "v_" + s
	}
	return s
}

// tempName derives a local variable name from a field name, stepping around
// the identifiers every generated method body already uses.
func tempName(field string) string {
	s := safeName(field)
	switch s {
	case "v", "dec", "enc", "err", "size":
		return s + "_"
	}
	return s
}

// typeParams renders the type parameter list for a declaration, empty when
// the type does not carry the buffer parameter.
func typeParams(name string, g *ast.GenericIndex) string {
	if g.Contains(name) {
		return "[T xdr.Bytes]"
	}
	return ""
}

// typeArgs renders the type argument list for a use of name.
func typeArgs(name string, g *ast.GenericIndex) string {
	if g.Contains(name) {
		return "[T]"
	}
	return ""
}

// goScalarType renders a scalar type reference, applying the type argument
// when the referenced declaration is generic.
func goScalarType(b ast.BasicType, g *ast.GenericIndex) string {
	switch b.Kind {
	case ast.U32:
		return "uint32"
	case ast.U64:
		return "uint64"
	case ast.I32:
		return "int32"
	case ast.I64:
		return "int64"
	case ast.F32:
		return "float32"
	case ast.F64:
		return "float64"
	case ast.Bool:
		return "bool"
	case ast.String:
		return "string"
	case ast.Opaque:
		return "T"
	}
	return safeName(b.Name) + typeArgs(b.Name, g)
}

// goFieldType renders the Go type of a field. Opaque data is always the
// buffer parameter regardless of cardinality, and strings are always plain
// strings; everything else gets an array or slice wrapper as declared.
func goFieldType(t ast.ArrayType, g *ast.GenericIndex, ci *ast.ConstantIndex) (string, error) {
	switch t.Inner.Kind {
	case ast.Opaque:
		return "T", nil
	case ast.String:
		return "string", nil
	}
	inner := goScalarType(t.Inner, g)
	switch t.Kind {
	case ast.ArrayFixed:
		size, err := arraySizeExpr(t.Size, ci)
		if err != nil {
			return "", err
		}
		return "[" + size + "]" + inner, nil
	case ast.ArrayVariable:
		return "[]" + inner, nil
	}
	return inner, nil
}

// arraySizeExpr renders an array length or maximum, validating that constant
// references eventually resolve to a numeric literal.
func arraySizeExpr(s *ast.ArraySize, ci *ast.ConstantIndex) (string, error) {
	if s == nil {
		return "", nil
	}
	if s.Ref == "" {
		return strconv.FormatUint(uint64(s.N), 10), nil
	}
	seen := make(map[string]bool)
	for cur := s.Ref; ; {
		if seen[cur] {
			return "", &ArraySizeError{Size: s.Ref}
		}
		seen[cur] = true
		sym, ok := ci.Get(cur)
		if !ok {
			return "", &ArraySizeError{Size: s.Ref}
		}
		if _, err := strconv.ParseInt(sym.Value, 0, 64); err == nil {
			return safeName(s.Ref), nil
		}
		cur = sym.Value
	}
}

// switchInfo describes a union discriminant after typedef resolution.
type switchInfo struct {
	goType string // the Go type the decoded discriminant is held as
	enum   string // owning enum name when enum-typed
	kind   ast.BasicKind
}

// resolveSwitch determines how a union discriminant is represented,
// unwinding typedef aliases one hop at a time until it reaches an enum or an
// integral primitive. Anything else cannot discriminate a union.
func resolveSwitch(b ast.BasicType, ti *ast.TypeIndex) (switchInfo, error) {
	seen := make(map[string]bool)
	for {
		switch b.Kind {
		case ast.U32:
			return switchInfo{goType: "uint32", kind: ast.U32}, nil
		case ast.I32:
			return switchInfo{goType: "int32", kind: ast.I32}, nil
		case ast.Bool:
			return switchInfo{goType: "bool", kind: ast.Bool}, nil
		case ast.Ident:
			if seen[b.Name] {
				return switchInfo{}, &UnresolvableTypeError{Name: b.Name}
			}
			seen[b.Name] = true
			d, ok := ti.Get(b.Name)
			if !ok {
				return switchInfo{}, &UnresolvableTypeError{Name: b.Name}
			}
			switch d := d.(type) {
			case *ast.Enum:
				return switchInfo{goType: safeName(d.Name), enum: d.Name, kind: ast.Ident}, nil
			case *ast.Typedef:
				b = d.Target.Inner
			default:
				return switchInfo{}, &UnresolvableTypeError{Name: b.Name}
			}
		default:
			return switchInfo{}, &UnresolvableTypeError{Name: b.Name}
		}
	}
}

// caseLabel renders a union case value as a Go switch case expression.
// Values resolve through the constant index first; a miss means the value is
// a literal. A conversion is added when the value is a variant of a
// different type than the switch expression.
func caseLabel(value string, sw switchInfo, ci *ast.ConstantIndex) string {
	sym, ok := ci.Get(value)
	if !ok {
		return safeName(value)
	}
	name := safeName(sym.Name)
	if sym.Enum != "" && sym.Enum != sw.enum {
		return sw.goType + "(" + name + ")"
	}
	return name
}
