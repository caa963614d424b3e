package gen

import (
	"bytes"
	"fmt"

	"github.com/fastxdr/fastxdr/ast"
)

// Size emits a WireSize method for every declared type, computing the exact
// number of bytes Encode produces for the value. Count prefixes and padding
// are included at each variable-length occurrence.
func Size(w *bytes.Buffer, a *ast.Ast) error {
	for _, d := range a.Decls {
		var err error
		switch d := d.(type) {
		case *ast.Enum:
			fmt.Fprintf(w, "func (v *%s) WireSize() int {\n\treturn 4\n}\n\n", safeName(d.Name))
		case *ast.Struct:
			err = sizeStruct(w, d, a)
		case *ast.Union:
			err = sizeUnion(w, d, a)
		case *ast.Typedef:
			err = sizeTypedef(w, d, a)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func primSize(k ast.BasicKind) int {
	switch k {
	case ast.U64, ast.I64, ast.F64:
		return 8
	}
	return 4
}

func sizeStruct(w *bytes.Buffer, d *ast.Struct, a *ast.Ast) error {
	fmt.Fprintf(w, "func (v *%s%s) WireSize() int {\n",
		safeName(d.Name), typeArgs(d.Name, a.Generics))
	fmt.Fprintf(w, "\tsize := 0\n")
	for _, f := range d.Fields {
		fieldSize(w, "\t", "v."+safeName(f.Name), f.Type, f.Optional)
	}
	fmt.Fprintf(w, "\treturn size\n")
	fmt.Fprintf(w, "}\n\n")
	return nil
}

func sizeTypedef(w *bytes.Buffer, d *ast.Typedef, a *ast.Ast) error {
	if d.SelfReferential() {
		return nil
	}
	fmt.Fprintf(w, "func (v *%s%s) WireSize() int {\n",
		safeName(d.Alias), typeArgs(d.Alias, a.Generics))
	fmt.Fprintf(w, "\tsize := 0\n")
	fieldSize(w, "\t", "v.v", d.Target, false)
	fmt.Fprintf(w, "\treturn size\n")
	fmt.Fprintf(w, "}\n\n")
	return nil
}

// fieldSize emits the statements accumulating one field's wire size.
func fieldSize(w *bytes.Buffer, indent, lvalue string, t ast.ArrayType, optional bool) {
	if optional {
		fmt.Fprintf(w, "%sif %s != nil {\n", indent, lvalue)
		fmt.Fprintf(w, "%s\tsize += 4\n", indent)
		pointeeSize(w, indent+"\t", lvalue, t.Inner)
		fmt.Fprintf(w, "%s} else {\n", indent)
		fmt.Fprintf(w, "%s\tsize += 4\n", indent)
		fmt.Fprintf(w, "%s}\n", indent)
		return
	}

	switch t.Inner.Kind {
	case ast.String:
		fmt.Fprintf(w, "%ssize += 4 + len(%s) + xdr.Pad(len(%s))\n", indent, lvalue, lvalue)
		return
	case ast.Opaque:
		if t.Kind == ast.ArrayFixed {
			fmt.Fprintf(w, "%ssize += len(%s) + xdr.Pad(len(%s))\n", indent, lvalue, lvalue)
		} else {
			fmt.Fprintf(w, "%ssize += 4 + len(%s) + xdr.Pad(len(%s))\n", indent, lvalue, lvalue)
		}
		return
	}

	switch t.Kind {
	case ast.ArrayNone:
		if t.Inner.Kind == ast.Ident {
			fmt.Fprintf(w, "%ssize += %s.WireSize()\n", indent, lvalue)
			return
		}
		fmt.Fprintf(w, "%ssize += %d\n", indent, primSize(t.Inner.Kind))
		return
	case ast.ArrayFixed:
		sizeLoop(w, indent, lvalue, t.Inner)
		return
	case ast.ArrayVariable:
		fmt.Fprintf(w, "%ssize += 4\n", indent)
		sizeLoop(w, indent, lvalue, t.Inner)
		return
	}
}

func sizeLoop(w *bytes.Buffer, indent, lvalue string, b ast.BasicType) {
	switch b.Kind {
	case ast.Ident:
		fmt.Fprintf(w, "%sfor i := range %s {\n", indent, lvalue)
		fmt.Fprintf(w, "%s\tsize += %s[i].WireSize()\n", indent, lvalue)
		fmt.Fprintf(w, "%s}\n", indent)
	case ast.String:
		fmt.Fprintf(w, "%sfor i := range %s {\n", indent, lvalue)
		fmt.Fprintf(w, "%s\tsize += 4 + len(%s[i]) + xdr.Pad(len(%s[i]))\n", indent, lvalue, lvalue)
		fmt.Fprintf(w, "%s}\n", indent)
	default:
		fmt.Fprintf(w, "%ssize += %d * len(%s)\n", indent, primSize(b.Kind), lvalue)
	}
}

// pointeeSize accumulates the size of the payload behind an option or union
// arm pointer.
func pointeeSize(w *bytes.Buffer, indent, lvalue string, b ast.BasicType) {
	switch b.Kind {
	case ast.Ident:
		fmt.Fprintf(w, "%ssize += %s.WireSize()\n", indent, lvalue)
	case ast.Opaque, ast.String:
		fmt.Fprintf(w, "%ssize += 4 + len(*%s) + xdr.Pad(len(*%s))\n", indent, lvalue, lvalue)
	default:
		fmt.Fprintf(w, "%ssize += %d\n", indent, primSize(b.Kind))
	}
}

func sizeUnion(w *bytes.Buffer, d *ast.Union, a *ast.Ast) error {
	sw, err := resolveSwitch(d.Switch.Type, a.Types)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "func (v *%s%s) WireSize() int {\n",
		safeName(d.Name), typeArgs(d.Name, a.Generics))
	fmt.Fprintf(w, "\tsize := 4\n")
	fmt.Fprintf(w, "\tswitch v.%s {\n", safeName(d.Switch.Var))
	for _, c := range d.Cases {
		for _, value := range c.Values {
			fmt.Fprintf(w, "\tcase %s:\n", caseLabel(value, sw, a.Consts))
			pointeeSize(w, "\t\t", "v."+armName(value), c.Type)
		}
	}
	if len(voidLabels(d)) > 0 {
		fmt.Fprintf(w, "\tcase %s:\n", joinLabels(voidLabels(d), sw, a.Consts))
		fmt.Fprintf(w, "\t\t// void arm, no payload\n")
	}
	if d.Default != nil {
		fmt.Fprintf(w, "\tdefault:\n")
		pointeeSize(w, "\t\t", "v."+armName("default"), d.Default.Type)
	}
	fmt.Fprintf(w, "\t}\n")
	fmt.Fprintf(w, "\treturn size\n")
	fmt.Fprintf(w, "}\n\n")
	return nil
}
