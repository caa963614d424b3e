// Package parse turns XDR interface definition language text into a typed
// parse tree. The tree is deliberately dumb: one node kind per grammar
// production, with the raw source text attached. Semantic lowering happens
// in the ast package.
package parse

import "fmt"

// Kind identifies the grammar production a Node was produced by.
type Kind int

const (
	KindRoot Kind = iota
	KindConstant
	KindTypedef
	KindEnum
	KindEnumVariant
	KindStruct
	KindStructField
	KindUnion
	KindUnionSwitch
	KindUnionCase
	KindUnionDefault
	KindUnionVoid
	KindOption
	KindArrayFixed
	KindArrayVariable
	KindIdent
	KindValue
)

var kindNames = map[Kind]string{
	KindRoot:          "root",
	KindConstant:      "constant",
	KindTypedef:       "typedef",
	KindEnum:          "enum",
	KindEnumVariant:   "enum_variant",
	KindStruct:        "struct",
	KindStructField:   "struct_field",
	KindUnion:         "union",
	KindUnionSwitch:   "union_switch",
	KindUnionCase:     "union_case",
	KindUnionDefault:  "union_default",
	KindUnionVoid:     "union_void",
	KindOption:        "option",
	KindArrayFixed:    "array_fixed",
	KindArrayVariable: "array_variable",
	KindIdent:         "ident",
	KindValue:         "value",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Node is a single parse tree node.
//
// Child layouts by kind:
//
//	constant:      ident(name), value
//	typedef:       ident(target type), ident(alias), [array marker]
//	enum:          ident(name), enum_variant...
//	enum_variant:  ident(name), value
//	struct:        ident(name), struct_field...
//	struct_field:  [option], ident(type), ident(name), [array marker]
//	union:         ident(name), union_switch, union_case..., [union_default]
//	union_switch:  ident(type), ident(var name)
//	union_case:    value..., (union_void | struct_field)
//	union_default: (union_void | struct_field)
//
// Array markers carry the size expression (fixed) or optional maximum
// (variable) in Text.
type Node struct {
	Kind     Kind
	Text     string
	Children []*Node
}

func ident(s string) *Node { return &Node{Kind: KindIdent, Text: s} }
func value(s string) *Node { return &Node{Kind: KindValue, Text: s} }

// Error is a syntax error with the 1-based source line it was detected on.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

func errorf(line int, format string, args ...interface{}) error {
	return &Error{Line: line, Message: fmt.Sprintf(format, args...)}
}
