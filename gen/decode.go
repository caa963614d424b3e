package gen

import (
	"bytes"
	"fmt"

	"github.com/fastxdr/fastxdr/ast"
)

// Decode emits a Decode method for every declared type. Decoding consumes
// from an xdr.Decoder and fails on the first violation of the wire contract:
// short input, unknown enum values or union discriminants, bad option tags,
// or counts above a declared maximum.
func Decode(w *bytes.Buffer, a *ast.Ast) error {
	for _, d := range a.Decls {
		var err error
		switch d := d.(type) {
		case *ast.Enum:
			decodeEnum(w, d)
		case *ast.Struct:
			err = decodeStruct(w, d, a)
		case *ast.Union:
			err = decodeUnion(w, d, a)
		case *ast.Typedef:
			err = decodeTypedef(w, d, a)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func decodeCall(k ast.BasicKind) string {
	switch k {
	case ast.U32:
		return "DecodeUint32"
	case ast.U64:
		return "DecodeUint64"
	case ast.I32:
		return "DecodeInt32"
	case ast.I64:
		return "DecodeInt64"
	case ast.F32:
		return "DecodeFloat32"
	case ast.F64:
		return "DecodeFloat64"
	case ast.Bool:
		return "DecodeBool"
	}
	panic(fmt.Sprintf("no decode call for basic kind %d", k))
}

func decodeEnum(w *bytes.Buffer, d *ast.Enum) {
	name := safeName(d.Name)
	fmt.Fprintf(w, "func (v *%s) Decode(dec *xdr.Decoder) error {\n", name)
	fmt.Fprintf(w, "\td, err := dec.DecodeInt32()\n")
	fmt.Fprintf(w, "\tif err != nil {\n\t\treturn err\n\t}\n")
	fmt.Fprintf(w, "\tswitch %s(d) {\n", name)
	fmt.Fprintf(w, "\tcase ")
	for i, variant := range d.Variants {
		if i > 0 {
			fmt.Fprintf(w, ", ")
		}
		fmt.Fprintf(w, "%s", safeName(variant.Name))
	}
	fmt.Fprintf(w, ":\n")
	fmt.Fprintf(w, "\t\t*v = %s(d)\n", name)
	fmt.Fprintf(w, "\t\treturn nil\n")
	fmt.Fprintf(w, "\t}\n")
	fmt.Fprintf(w, "\treturn &xdr.UnknownVariantError{Value: d}\n")
	fmt.Fprintf(w, "}\n\n")
}

func decodeStruct(w *bytes.Buffer, d *ast.Struct, a *ast.Ast) error {
	fmt.Fprintf(w, "func (v *%s%s) Decode(dec *xdr.Decoder) error {\n",
		safeName(d.Name), typeArgs(d.Name, a.Generics))
	for _, f := range d.Fields {
		if err := fieldDecode(w, "\t", "v."+safeName(f.Name), tempName(f.Name), f.Type, f.Optional, a); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "\treturn nil\n")
	fmt.Fprintf(w, "}\n\n")
	return nil
}

func decodeTypedef(w *bytes.Buffer, d *ast.Typedef, a *ast.Ast) error {
	if d.SelfReferential() {
		return nil
	}
	fmt.Fprintf(w, "func (v *%s%s) Decode(dec *xdr.Decoder) error {\n",
		safeName(d.Alias), typeArgs(d.Alias, a.Generics))
	if err := fieldDecode(w, "\t", "v.v", "x", d.Target, false, a); err != nil {
		return err
	}
	fmt.Fprintf(w, "\treturn nil\n")
	fmt.Fprintf(w, "}\n\n")
	return nil
}

// fieldDecode emits the statements that decode one field shape into lvalue.
// tmp seeds the names of any locals so sibling fields never collide.
func fieldDecode(w *bytes.Buffer, indent, lvalue, tmp string, t ast.ArrayType, optional bool, a *ast.Ast) error {
	if optional {
		return optionDecode(w, indent, lvalue, tmp, t, a)
	}

	switch t.Inner.Kind {
	case ast.String:
		call := "DecodeString()"
		if t.Kind == ast.ArrayVariable && t.Size != nil {
			max, err := arraySizeExpr(t.Size, a.Consts)
			if err != nil {
				return err
			}
			call = "DecodeStringMax(" + max + ")"
		}
		scalarAssign(w, indent, lvalue, tmp, call, "")
		return nil
	case ast.Opaque:
		call := "DecodeBytes()"
		switch t.Kind {
		case ast.ArrayFixed:
			size, err := arraySizeExpr(t.Size, a.Consts)
			if err != nil {
				return err
			}
			call = "DecodeFixedBytes(" + size + ")"
		case ast.ArrayVariable:
			if t.Size != nil {
				max, err := arraySizeExpr(t.Size, a.Consts)
				if err != nil {
					return err
				}
				call = "DecodeBytesMax(" + max + ")"
			}
		}
		scalarAssign(w, indent, lvalue, tmp, call, "T")
		return nil
	}

	switch t.Kind {
	case ast.ArrayNone:
		if t.Inner.Kind == ast.Ident {
			if _, ok := a.Types.Get(t.Inner.Name); !ok {
				return &UnresolvableTypeError{Name: t.Inner.Name}
			}
			fmt.Fprintf(w, "%sif err := %s.Decode(dec); err != nil {\n", indent, lvalue)
			fmt.Fprintf(w, "%s\treturn err\n", indent)
			fmt.Fprintf(w, "%s}\n", indent)
			return nil
		}
		scalarAssign(w, indent, lvalue, tmp, decodeCall(t.Inner.Kind)+"()", "")
		return nil
	case ast.ArrayFixed:
		fmt.Fprintf(w, "%sfor i := range %s {\n", indent, lvalue)
		if err := elemDecode(w, indent+"\t", lvalue+"[i]", tmp, t.Inner, a); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s}\n", indent)
		return nil
	case ast.ArrayVariable:
		fmt.Fprintf(w, "%s%sLen, err := dec.DecodeUint32()\n", indent, tmp)
		fmt.Fprintf(w, "%sif err != nil {\n%s\treturn err\n%s}\n", indent, indent, indent)
		if t.Size != nil {
			max, err := arraySizeExpr(t.Size, a.Consts)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%sif %sLen > %s {\n", indent, tmp, max)
			fmt.Fprintf(w, "%s\treturn xdr.ErrLengthExceeded\n", indent)
			fmt.Fprintf(w, "%s}\n", indent)
		}
		fmt.Fprintf(w, "%s%s = make([]%s, %sLen)\n", indent, lvalue, goScalarType(t.Inner, a.Generics), tmp)
		fmt.Fprintf(w, "%sfor i := range %s {\n", indent, lvalue)
		if err := elemDecode(w, indent+"\t", lvalue+"[i]", tmp, t.Inner, a); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s}\n", indent)
		return nil
	}
	panic("unreachable array kind")
}

// scalarAssign emits a decode of one runtime call into lvalue, optionally
// converting the result (used for opaque buffers).
func scalarAssign(w *bytes.Buffer, indent, lvalue, tmp, call, conv string) {
	fmt.Fprintf(w, "%s%s, err := dec.%s\n", indent, tmp, call)
	fmt.Fprintf(w, "%sif err != nil {\n%s\treturn err\n%s}\n", indent, indent, indent)
	if conv != "" {
		fmt.Fprintf(w, "%s%s = %s(%s)\n", indent, lvalue, conv, tmp)
	} else {
		fmt.Fprintf(w, "%s%s = %s\n", indent, lvalue, tmp)
	}
}

// elemDecode emits the body of an array decode loop for one element.
func elemDecode(w *bytes.Buffer, indent, lvalue, tmp string, b ast.BasicType, a *ast.Ast) error {
	switch b.Kind {
	case ast.Ident:
		if _, ok := a.Types.Get(b.Name); !ok {
			return &UnresolvableTypeError{Name: b.Name}
		}
		fmt.Fprintf(w, "%sif err := %s.Decode(dec); err != nil {\n", indent, lvalue)
		fmt.Fprintf(w, "%s\treturn err\n", indent)
		fmt.Fprintf(w, "%s}\n", indent)
	case ast.String:
		scalarAssign(w, indent, lvalue, tmp, "DecodeString()", "")
	default:
		scalarAssign(w, indent, lvalue, tmp, decodeCall(b.Kind)+"()", "")
	}
	return nil
}

// optionDecode emits the presence-tag dispatch for an optional field: tag 0
// leaves the pointer nil, tag 1 decodes the pointee, anything else fails.
func optionDecode(w *bytes.Buffer, indent, lvalue, tmp string, t ast.ArrayType, a *ast.Ast) error {
	fmt.Fprintf(w, "%s%sTag, err := dec.DecodeUint32()\n", indent, tmp)
	fmt.Fprintf(w, "%sif err != nil {\n%s\treturn err\n%s}\n", indent, indent, indent)
	fmt.Fprintf(w, "%sswitch %sTag {\n", indent, tmp)
	fmt.Fprintf(w, "%scase 0:\n", indent)
	fmt.Fprintf(w, "%s\t%s = nil\n", indent, lvalue)
	fmt.Fprintf(w, "%scase 1:\n", indent)
	if err := pointeeDecode(w, indent+"\t", lvalue, tmp, t.Inner, a); err != nil {
		return err
	}
	fmt.Fprintf(w, "%sdefault:\n", indent)
	fmt.Fprintf(w, "%s\treturn &xdr.UnknownOptionTagError{Tag: %sTag}\n", indent, tmp)
	fmt.Fprintf(w, "%s}\n", indent)
	return nil
}

// pointeeDecode emits the tag-1 branch of an option: allocate and fill the
// pointee.
func pointeeDecode(w *bytes.Buffer, indent, lvalue, tmp string, b ast.BasicType, a *ast.Ast) error {
	switch b.Kind {
	case ast.Ident:
		if _, ok := a.Types.Get(b.Name); !ok {
			return &UnresolvableTypeError{Name: b.Name}
		}
		fmt.Fprintf(w, "%s%s = new(%s)\n", indent, lvalue, goScalarType(b, a.Generics))
		fmt.Fprintf(w, "%sif err := %s.Decode(dec); err != nil {\n", indent, lvalue)
		fmt.Fprintf(w, "%s\treturn err\n", indent)
		fmt.Fprintf(w, "%s}\n", indent)
	case ast.Opaque:
		fmt.Fprintf(w, "%s%s, err := dec.DecodeBytes()\n", indent, tmp)
		fmt.Fprintf(w, "%sif err != nil {\n%s\treturn err\n%s}\n", indent, indent, indent)
		fmt.Fprintf(w, "%s%sVal := T(%s)\n", indent, tmp, tmp)
		fmt.Fprintf(w, "%s%s = &%sVal\n", indent, lvalue, tmp)
	case ast.String:
		fmt.Fprintf(w, "%s%s, err := dec.DecodeString()\n", indent, tmp)
		fmt.Fprintf(w, "%sif err != nil {\n%s\treturn err\n%s}\n", indent, indent, indent)
		fmt.Fprintf(w, "%s%s = &%s\n", indent, lvalue, tmp)
	default:
		fmt.Fprintf(w, "%s%s, err := dec.%s()\n", indent, tmp, decodeCall(b.Kind))
		fmt.Fprintf(w, "%sif err != nil {\n%s\treturn err\n%s}\n", indent, indent, indent)
		fmt.Fprintf(w, "%s%s = &%s\n", indent, lvalue, tmp)
	}
	return nil
}

func decodeUnion(w *bytes.Buffer, d *ast.Union, a *ast.Ast) error {
	sw, err := resolveSwitch(d.Switch.Type, a.Types)
	if err != nil {
		return err
	}
	disc := tempName(d.Switch.Var)
	fmt.Fprintf(w, "func (v *%s%s) Decode(dec *xdr.Decoder) error {\n",
		safeName(d.Name), typeArgs(d.Name, a.Generics))

	switch sw.kind {
	case ast.Ident:
		fmt.Fprintf(w, "\tvar %s %s\n", disc, sw.goType)
		fmt.Fprintf(w, "\tif err := %s.Decode(dec); err != nil {\n\t\treturn err\n\t}\n", disc)
	case ast.Bool:
		fmt.Fprintf(w, "\t%s, err := dec.DecodeBool()\n", disc)
		fmt.Fprintf(w, "\tif err != nil {\n\t\treturn err\n\t}\n")
	case ast.I32:
		fmt.Fprintf(w, "\t%s, err := dec.DecodeInt32()\n", disc)
		fmt.Fprintf(w, "\tif err != nil {\n\t\treturn err\n\t}\n")
	default:
		fmt.Fprintf(w, "\t%s, err := dec.DecodeUint32()\n", disc)
		fmt.Fprintf(w, "\tif err != nil {\n\t\treturn err\n\t}\n")
	}
	fmt.Fprintf(w, "\tv.%s = %s\n", safeName(d.Switch.Var), disc)

	fmt.Fprintf(w, "\tswitch %s {\n", disc)
	for _, c := range d.Cases {
		for _, value := range c.Values {
			fmt.Fprintf(w, "\tcase %s:\n", caseLabel(value, sw, a.Consts))
			if err := armDecode(w, "\t\t", "v."+armName(value), tempName(c.Name), c.Type, a); err != nil {
				return err
			}
		}
	}
	if len(voidLabels(d)) > 0 {
		fmt.Fprintf(w, "\tcase %s:\n", joinLabels(voidLabels(d), sw, a.Consts))
		fmt.Fprintf(w, "\t\t// void arm, no payload\n")
	}
	fmt.Fprintf(w, "\tdefault:\n")
	switch {
	case d.Default != nil:
		if err := armDecode(w, "\t\t", "v."+armName("default"), tempName(d.Default.Name), d.Default.Type, a); err != nil {
			return err
		}
	case unionHasVoidDefault(d):
		fmt.Fprintf(w, "\t\t// void arm, no payload\n")
	default:
		fmt.Fprintf(w, "\t\treturn &xdr.UnknownVariantError{Value: %s}\n", rawDiscriminant(disc, sw, d))
	}
	fmt.Fprintf(w, "\t}\n")
	fmt.Fprintf(w, "\treturn nil\n")
	fmt.Fprintf(w, "}\n\n")
	return nil
}

// armDecode emits the payload decode for one union arm. Arm fields are
// pointers so undischarged arms stay nil.
func armDecode(w *bytes.Buffer, indent, lvalue string, tmp string, b ast.BasicType, a *ast.Ast) error {
	switch b.Kind {
	case ast.Ident:
		if _, ok := a.Types.Get(b.Name); !ok {
			return &UnresolvableTypeError{Name: b.Name}
		}
		fmt.Fprintf(w, "%s%s = new(%s)\n", indent, lvalue, goScalarType(b, a.Generics))
		fmt.Fprintf(w, "%sif err := %s.Decode(dec); err != nil {\n", indent, lvalue)
		fmt.Fprintf(w, "%s\treturn err\n", indent)
		fmt.Fprintf(w, "%s}\n", indent)
		return nil
	}
	return pointeeDecode(w, indent, lvalue, tmp, b, a)
}

// voidLabels returns the case values carrying void payloads, minus the
// sentinel for a void default arm.
func voidLabels(d *ast.Union) []string {
	var out []string
	for _, v := range d.VoidCases {
		if v != "default" {
			out = append(out, v)
		}
	}
	return out
}

func unionHasVoidDefault(d *ast.Union) bool {
	for _, v := range d.VoidCases {
		if v == "default" {
			return true
		}
	}
	return false
}

func joinLabels(values []string, sw switchInfo, ci *ast.ConstantIndex) string {
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = caseLabel(v, sw, ci)
	}
	out := labels[0]
	for _, l := range labels[1:] {
		out += ", " + l
	}
	return out
}

// rawDiscriminant renders the unmatched discriminant as the int32 carried by
// UnknownVariantError.
func rawDiscriminant(disc string, sw switchInfo, d *ast.Union) string {
	switch sw.kind {
	case ast.I32:
		return disc
	case ast.Bool:
		// A bool union without both arms and no default rejects the arm
		// it does not declare.
		if unionCoversLabel(d, "TRUE") {
			return "0"
		}
		return "1"
	}
	return "int32(" + disc + ")"
}

func unionCoversLabel(d *ast.Union, label string) bool {
	for _, c := range d.Cases {
		for _, v := range c.Values {
			if v == label {
				return true
			}
		}
	}
	for _, v := range d.VoidCases {
		if v == label {
			return true
		}
	}
	return false
}
