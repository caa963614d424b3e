package ast

import (
	"fmt"

	"github.com/fastxdr/fastxdr/parse"
)

// Build lowers a parse tree into declarations. The parser guarantees the
// tree's shape, so a malformed node here is a bug, not bad input, and panics.
func Build(root *parse.Node) []Decl {
	if root.Kind != parse.KindRoot {
		panic(fmt.Sprintf("build: expected root node, got %v", root.Kind))
	}
	decls := make([]Decl, 0, len(root.Children))
	for _, n := range root.Children {
		switch n.Kind {
		case parse.KindConstant:
			decls = append(decls, buildConstant(n))
		case parse.KindTypedef:
			decls = append(decls, buildTypedef(n))
		case parse.KindEnum:
			decls = append(decls, buildEnum(n))
		case parse.KindStruct:
			decls = append(decls, buildStruct(n))
		case parse.KindUnion:
			decls = append(decls, buildUnion(n))
		default:
			panic(fmt.Sprintf("build: unexpected top-level node %v", n.Kind))
		}
	}
	return decls
}

func buildConstant(n *parse.Node) *Constant {
	return &Constant{Name: n.Children[0].Text, Value: n.Children[1].Text}
}

func buildTypedef(n *parse.Node) *Typedef {
	target := Scalar(NewBasicType(n.Children[0].Text))
	if len(n.Children) > 2 {
		target = applyArray(target.Inner, n.Children[2])
	}
	// An unbounded variable opaque target is indistinguishable on the wire
	// from a bare opaque, so it collapses to the scalar form.
	if target.Inner.Kind == Opaque && target.Kind == ArrayVariable && target.Size == nil {
		target = Scalar(target.Inner)
	}
	return &Typedef{Target: target, Alias: n.Children[1].Text}
}

func buildEnum(n *parse.Node) *Enum {
	e := &Enum{Name: n.Children[0].Text}
	for _, v := range n.Children[1:] {
		if v.Kind != parse.KindEnumVariant {
			panic(fmt.Sprintf("build: unexpected enum child %v", v.Kind))
		}
		e.Variants = append(e.Variants, EnumVariant{
			Name:  v.Children[0].Text,
			Value: v.Children[1].Text,
		})
	}
	return e
}

func buildStruct(n *parse.Node) *Struct {
	s := &Struct{Name: n.Children[0].Text}
	for _, f := range n.Children[1:] {
		s.Fields = append(s.Fields, buildField(f))
	}
	return s
}

func buildField(n *parse.Node) StructField {
	if n.Kind != parse.KindStructField {
		panic(fmt.Sprintf("build: unexpected field node %v", n.Kind))
	}
	children := n.Children
	f := StructField{}
	if children[0].Kind == parse.KindOption {
		f.Optional = true
		children = children[1:]
	}
	inner := NewBasicType(children[0].Text)
	f.Name = children[1].Text
	f.Type = Scalar(inner)
	if len(children) > 2 {
		f.Type = applyArray(inner, children[2])
	}
	return f
}

func buildUnion(n *parse.Node) *Union {
	sw := n.Children[1]
	u := &Union{
		Name: n.Children[0].Text,
		Switch: UnionSwitch{
			Type: NewBasicType(sw.Children[0].Text),
			Var:  sw.Children[1].Text,
		},
	}
	for _, c := range n.Children[2:] {
		switch c.Kind {
		case parse.KindUnionCase:
			payload := c.Children[len(c.Children)-1]
			values := make([]string, 0, len(c.Children)-1)
			for _, v := range c.Children[:len(c.Children)-1] {
				values = append(values, v.Text)
			}
			if payload.Kind == parse.KindUnionVoid {
				u.VoidCases = append(u.VoidCases, values...)
				continue
			}
			field := buildField(payload)
			u.Cases = append(u.Cases, UnionCase{
				Values: values,
				Type:   field.Type.Inner,
				Name:   field.Name,
			})
		case parse.KindUnionDefault:
			payload := c.Children[0]
			if payload.Kind == parse.KindUnionVoid {
				u.VoidCases = append(u.VoidCases, "default")
				continue
			}
			field := buildField(payload)
			u.Default = &UnionCase{
				Values: []string{"default"},
				Type:   field.Type.Inner,
				Name:   field.Name,
			}
		default:
			panic(fmt.Sprintf("build: unexpected union child %v", c.Kind))
		}
	}
	return u
}

func applyArray(inner BasicType, marker *parse.Node) ArrayType {
	switch marker.Kind {
	case parse.KindArrayFixed:
		size := ParseArraySize(marker.Text)
		return ArrayType{Kind: ArrayFixed, Inner: inner, Size: &size}
	case parse.KindArrayVariable:
		t := ArrayType{Kind: ArrayVariable, Inner: inner}
		if marker.Text != "" {
			size := ParseArraySize(marker.Text)
			t.Size = &size
		}
		return t
	}
	panic(fmt.Sprintf("build: unexpected array marker %v", marker.Kind))
}
