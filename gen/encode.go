package gen

import (
	"bytes"
	"fmt"

	"github.com/fastxdr/fastxdr/ast"
)

// Encode emits an Encode method for every declared type, writing the exact
// wire layout Decode consumes.
func Encode(w *bytes.Buffer, a *ast.Ast) error {
	for _, d := range a.Decls {
		var err error
		switch d := d.(type) {
		case *ast.Enum:
			encodeEnum(w, d)
		case *ast.Struct:
			err = encodeStruct(w, d, a)
		case *ast.Union:
			err = encodeUnion(w, d, a)
		case *ast.Typedef:
			err = encodeTypedef(w, d, a)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func encodeCall(k ast.BasicKind) string {
	switch k {
	case ast.U32:
		return "EncodeUint32"
	case ast.U64:
		return "EncodeUint64"
	case ast.I32:
		return "EncodeInt32"
	case ast.I64:
		return "EncodeInt64"
	case ast.F32:
		return "EncodeFloat32"
	case ast.F64:
		return "EncodeFloat64"
	case ast.Bool:
		return "EncodeBool"
	}
	panic(fmt.Sprintf("no encode call for basic kind %d", k))
}

func encodeEnum(w *bytes.Buffer, d *ast.Enum) {
	fmt.Fprintf(w, "func (v *%s) Encode(enc *xdr.Encoder) error {\n", safeName(d.Name))
	fmt.Fprintf(w, "\treturn enc.EncodeInt32(int32(*v))\n")
	fmt.Fprintf(w, "}\n\n")
}

func encodeStruct(w *bytes.Buffer, d *ast.Struct, a *ast.Ast) error {
	fmt.Fprintf(w, "func (v *%s%s) Encode(enc *xdr.Encoder) error {\n",
		safeName(d.Name), typeArgs(d.Name, a.Generics))
	for _, f := range d.Fields {
		if err := fieldEncode(w, "\t", "v."+safeName(f.Name), f.Type, f.Optional, a); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "\treturn nil\n")
	fmt.Fprintf(w, "}\n\n")
	return nil
}

func encodeTypedef(w *bytes.Buffer, d *ast.Typedef, a *ast.Ast) error {
	if d.SelfReferential() {
		return nil
	}
	fmt.Fprintf(w, "func (v *%s%s) Encode(enc *xdr.Encoder) error {\n",
		safeName(d.Alias), typeArgs(d.Alias, a.Generics))
	if err := fieldEncode(w, "\t", "v.v", d.Target, false, a); err != nil {
		return err
	}
	fmt.Fprintf(w, "\treturn nil\n")
	fmt.Fprintf(w, "}\n\n")
	return nil
}

// fieldEncode emits the statements that write one field shape from lvalue.
func fieldEncode(w *bytes.Buffer, indent, lvalue string, t ast.ArrayType, optional bool, a *ast.Ast) error {
	if optional {
		fmt.Fprintf(w, "%sif %s != nil {\n", indent, lvalue)
		fmt.Fprintf(w, "%s\tif err := enc.EncodeUint32(1); err != nil {\n", indent)
		fmt.Fprintf(w, "%s\t\treturn err\n", indent)
		fmt.Fprintf(w, "%s\t}\n", indent)
		if err := pointeeEncode(w, indent+"\t", lvalue, t.Inner); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s} else if err := enc.EncodeUint32(0); err != nil {\n", indent)
		fmt.Fprintf(w, "%s\treturn err\n", indent)
		fmt.Fprintf(w, "%s}\n", indent)
		return nil
	}

	switch t.Inner.Kind {
	case ast.String:
		errCheck(w, indent, fmt.Sprintf("enc.EncodeString(%s)", lvalue))
		return nil
	case ast.Opaque:
		call := "EncodeBytes"
		if t.Kind == ast.ArrayFixed {
			call = "EncodeFixedBytes"
		}
		errCheck(w, indent, fmt.Sprintf("enc.%s([]byte(%s))", call, lvalue))
		return nil
	}

	switch t.Kind {
	case ast.ArrayNone:
		if t.Inner.Kind == ast.Ident {
			errCheck(w, indent, fmt.Sprintf("%s.Encode(enc)", lvalue))
			return nil
		}
		errCheck(w, indent, fmt.Sprintf("enc.%s(%s)", encodeCall(t.Inner.Kind), lvalue))
		return nil
	case ast.ArrayFixed:
		encodeLoop(w, indent, lvalue, t.Inner)
		return nil
	case ast.ArrayVariable:
		errCheck(w, indent, fmt.Sprintf("enc.EncodeUint32(uint32(len(%s)))", lvalue))
		encodeLoop(w, indent, lvalue, t.Inner)
		return nil
	}
	panic("unreachable array kind")
}

func encodeLoop(w *bytes.Buffer, indent, lvalue string, b ast.BasicType) {
	fmt.Fprintf(w, "%sfor i := range %s {\n", indent, lvalue)
	switch b.Kind {
	case ast.Ident:
		errCheck(w, indent+"\t", fmt.Sprintf("%s[i].Encode(enc)", lvalue))
	case ast.String:
		errCheck(w, indent+"\t", fmt.Sprintf("enc.EncodeString(%s[i])", lvalue))
	default:
		errCheck(w, indent+"\t", fmt.Sprintf("enc.%s(%s[i])", encodeCall(b.Kind), lvalue))
	}
	fmt.Fprintf(w, "%s}\n", indent)
}

// pointeeEncode writes the payload behind an option or union arm pointer.
func pointeeEncode(w *bytes.Buffer, indent, lvalue string, b ast.BasicType) error {
	switch b.Kind {
	case ast.Ident:
		errCheck(w, indent, fmt.Sprintf("%s.Encode(enc)", lvalue))
	case ast.Opaque:
		errCheck(w, indent, fmt.Sprintf("enc.EncodeBytes([]byte(*%s))", lvalue))
	case ast.String:
		errCheck(w, indent, fmt.Sprintf("enc.EncodeString(*%s)", lvalue))
	default:
		errCheck(w, indent, fmt.Sprintf("enc.%s(*%s)", encodeCall(b.Kind), lvalue))
	}
	return nil
}

func errCheck(w *bytes.Buffer, indent, call string) {
	fmt.Fprintf(w, "%sif err := %s; err != nil {\n", indent, call)
	fmt.Fprintf(w, "%s\treturn err\n", indent)
	fmt.Fprintf(w, "%s}\n", indent)
}

func encodeUnion(w *bytes.Buffer, d *ast.Union, a *ast.Ast) error {
	sw, err := resolveSwitch(d.Switch.Type, a.Types)
	if err != nil {
		return err
	}
	disc := "v." + safeName(d.Switch.Var)
	fmt.Fprintf(w, "func (v *%s%s) Encode(enc *xdr.Encoder) error {\n",
		safeName(d.Name), typeArgs(d.Name, a.Generics))

	switch sw.kind {
	case ast.Ident:
		errCheck(w, "\t", fmt.Sprintf("%s.Encode(enc)", disc))
	case ast.Bool:
		errCheck(w, "\t", fmt.Sprintf("enc.EncodeBool(%s)", disc))
	case ast.I32:
		errCheck(w, "\t", fmt.Sprintf("enc.EncodeInt32(%s)", disc))
	default:
		errCheck(w, "\t", fmt.Sprintf("enc.EncodeUint32(%s)", disc))
	}

	fmt.Fprintf(w, "\tswitch %s {\n", disc)
	for _, c := range d.Cases {
		for _, value := range c.Values {
			fmt.Fprintf(w, "\tcase %s:\n", caseLabel(value, sw, a.Consts))
			if err := pointeeEncode(w, "\t\t", "v."+armName(value), c.Type); err != nil {
				return err
			}
		}
	}
	if len(voidLabels(d)) > 0 {
		fmt.Fprintf(w, "\tcase %s:\n", joinLabels(voidLabels(d), sw, a.Consts))
		fmt.Fprintf(w, "\t\t// void arm, no payload\n")
	}
	if d.Default != nil {
		fmt.Fprintf(w, "\tdefault:\n")
		if err := pointeeEncode(w, "\t\t", "v."+armName("default"), d.Default.Type); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "\t}\n")
	fmt.Fprintf(w, "\treturn nil\n")
	fmt.Fprintf(w, "}\n\n")
	return nil
}
