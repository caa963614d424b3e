package gen

import (
	"bytes"
	"fmt"

	"github.com/fastxdr/fastxdr/ast"
)

// Types emits the Go declaration for every definition in declaration order:
// consts for constants, a defined int32 plus a const block for enums, and
// structs for structures, unions and typedef wrappers. The prologue line, when
// non-empty, is placed immediately above each type declaration.
func Types(w *bytes.Buffer, a *ast.Ast, prologue string) error {
	for _, d := range a.Decls {
		var err error
		switch d := d.(type) {
		case *ast.Constant:
			fmt.Fprintf(w, "const %s = %s\n\n", safeName(d.Name), d.Value)
		case *ast.Enum:
			err = typeEnum(w, d, a, prologue)
		case *ast.Struct:
			err = typeStruct(w, d, a, prologue)
		case *ast.Union:
			err = typeUnion(w, d, a, prologue)
		case *ast.Typedef:
			err = typeTypedef(w, d, a, prologue)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writePrologue(w *bytes.Buffer, prologue string) {
	if prologue != "" {
		fmt.Fprintf(w, "%s\n", prologue)
	}
}

func writeAssertion(w *bytes.Buffer, name string, g *ast.GenericIndex) {
	args := ""
	if g.Contains(name) {
		args = "[[]byte]"
	}
	fmt.Fprintf(w, "var _ xdr.Codec = (*%s%s)(nil)\n\n", safeName(name), args)
}

func typeEnum(w *bytes.Buffer, d *ast.Enum, a *ast.Ast, prologue string) error {
	writePrologue(w, prologue)
	name := safeName(d.Name)
	fmt.Fprintf(w, "type %s int32\n\n", name)
	fmt.Fprintf(w, "const (\n")
	for _, v := range d.Variants {
		fmt.Fprintf(w, "\t%s %s = %s\n", safeName(v.Name), name, safeName(v.Value))
	}
	fmt.Fprintf(w, ")\n\n")
	writeAssertion(w, d.Name, a.Generics)
	return nil
}

func typeStruct(w *bytes.Buffer, d *ast.Struct, a *ast.Ast, prologue string) error {
	writePrologue(w, prologue)
	fmt.Fprintf(w, "type %s%s struct {\n", safeName(d.Name), typeParams(d.Name, a.Generics))
	for _, f := range d.Fields {
		ft, err := goFieldType(f.Type, a.Generics, a.Consts)
		if err != nil {
			return err
		}
		if f.Optional {
			ft = "*" + ft
		}
		fmt.Fprintf(w, "\t%s %s%s\n", safeName(f.Name), ft, boundComment(f.Type))
	}
	fmt.Fprintf(w, "}\n\n")
	writeAssertion(w, d.Name, a.Generics)
	return nil
}

// boundComment annotates count-prefixed fields that carry a declared maximum.
func boundComment(t ast.ArrayType) string {
	if t.Kind == ast.ArrayVariable && t.Size != nil {
		return " // max " + t.Size.String()
	}
	return ""
}

func typeUnion(w *bytes.Buffer, d *ast.Union, a *ast.Ast, prologue string) error {
	sw, err := resolveSwitch(d.Switch.Type, a.Types)
	if err != nil {
		return err
	}
	writePrologue(w, prologue)
	fmt.Fprintf(w, "type %s%s struct {\n", safeName(d.Name), typeParams(d.Name, a.Generics))
	fmt.Fprintf(w, "\t%s %s\n", safeName(d.Switch.Var), sw.goType)
	for _, c := range d.Cases {
		pt, err := goFieldType(ast.Scalar(c.Type), a.Generics, a.Consts)
		if err != nil {
			return err
		}
		for _, value := range c.Values {
			fmt.Fprintf(w, "\t%s *%s\n", armName(value), pt)
		}
	}
	if d.Default != nil {
		pt, err := goFieldType(ast.Scalar(d.Default.Type), a.Generics, a.Consts)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\t%s *%s\n", armName("default"), pt)
	}
	fmt.Fprintf(w, "}\n\n")
	writeAssertion(w, d.Name, a.Generics)
	return nil
}

func typeTypedef(w *bytes.Buffer, d *ast.Typedef, a *ast.Ast, prologue string) error {
	if d.SelfReferential() {
		return nil
	}
	ft, err := goFieldType(d.Target, a.Generics, a.Consts)
	if err != nil {
		return err
	}
	writePrologue(w, prologue)
	fmt.Fprintf(w, "type %s%s struct {\n", safeName(d.Alias), typeParams(d.Alias, a.Generics))
	fmt.Fprintf(w, "\tv %s%s\n", ft, boundComment(d.Target))
	fmt.Fprintf(w, "}\n\n")
	writeAssertion(w, d.Alias, a.Generics)
	return nil
}
