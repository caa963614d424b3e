package parse

type parser struct {
	toks []token
	pos  int
}

// Parse lexes and parses an XDR definition, returning the root of the parse
// tree. RPC program definitions are rejected.
func Parse(src string) (*Node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	root := &Node{Kind: KindRoot}
	for p.peek().kind != tokEOF {
		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, item)
	}
	return root, nil
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(text string) (token, error) {
	t := p.next()
	if t.text != text {
		return t, errorf(t.line, "expected %q, found %q", text, t.text)
	}
	return t, nil
}

func (p *parser) expectIdent() (token, error) {
	t := p.next()
	if t.kind != tokIdent {
		return t, errorf(t.line, "expected identifier, found %q", t.text)
	}
	return t, nil
}

func (p *parser) parseItem() (*Node, error) {
	t := p.peek()
	switch t.text {
	case "const":
		return p.parseConstant()
	case "typedef":
		return p.parseTypedef()
	case "enum":
		return p.parseEnum()
	case "struct":
		return p.parseStruct()
	case "union":
		return p.parseUnion()
	case "program":
		return nil, errorf(t.line, "RPC program definitions are not supported")
	}
	return nil, errorf(t.line, "expected definition, found %q", t.text)
}

// const NAME = VALUE;
func (p *parser) parseConstant() (*Node, error) {
	p.next()
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("="); err != nil {
		return nil, err
	}
	val, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return &Node{Kind: KindConstant, Children: []*Node{ident(name.text), val}}, nil
}

// A value is a decimal literal, a hex literal, or a reference to a named
// constant.
func (p *parser) parseValue() (*Node, error) {
	t := p.next()
	if t.kind != tokNumber && t.kind != tokIdent {
		return nil, errorf(t.line, "expected value, found %q", t.text)
	}
	return value(t.text), nil
}

// typedef TYPE NAME;  with an optional array suffix on the name.
func (p *parser) parseTypedef() (*Node, error) {
	p.next()
	typ, err := p.parseTypeSpec()
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	n := &Node{Kind: KindTypedef, Children: []*Node{typ, ident(name.text)}}
	arr, err := p.parseArraySuffix()
	if err != nil {
		return nil, err
	}
	if arr != nil {
		n.Children = append(n.Children, arr)
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return n, nil
}

// enum NAME { A = 1, B = 0x2, C = REF };
func (p *parser) parseEnum() (*Node, error) {
	p.next()
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("{"); err != nil {
		return nil, err
	}
	n := &Node{Kind: KindEnum, Children: []*Node{ident(name.text)}}
	for {
		vname, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect("="); err != nil {
			return nil, err
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, &Node{
			Kind:     KindEnumVariant,
			Children: []*Node{ident(vname.text), val},
		})
		if p.peek().text == "," {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expect("}"); err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return n, nil
}

// struct NAME { FIELD... };
func (p *parser) parseStruct() (*Node, error) {
	p.next()
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("{"); err != nil {
		return nil, err
	}
	n := &Node{Kind: KindStruct, Children: []*Node{ident(name.text)}}
	for p.peek().text != "}" {
		f, err := p.parseField()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, f)
	}
	p.next()
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return n, nil
}

// TYPE NAME;  TYPE *NAME;  TYPE NAME[N];  TYPE NAME<>;  TYPE NAME<MAX>;
func (p *parser) parseField() (*Node, error) {
	n := &Node{Kind: KindStructField}
	typ, err := p.parseTypeSpec()
	if err != nil {
		return nil, err
	}
	if p.peek().text == "*" {
		p.next()
		n.Children = append(n.Children, &Node{Kind: KindOption})
	}
	n.Children = append(n.Children, typ)
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	n.Children = append(n.Children, ident(name.text))
	arr, err := p.parseArraySuffix()
	if err != nil {
		return nil, err
	}
	if arr != nil {
		n.Children = append(n.Children, arr)
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return n, nil
}

// union NAME switch (TYPE VAR) { case V: ... default: ... };
func (p *parser) parseUnion() (*Node, error) {
	p.next()
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("switch"); err != nil {
		return nil, err
	}
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	styp, err := p.parseTypeSpec()
	if err != nil {
		return nil, err
	}
	svar, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	if _, err := p.expect("{"); err != nil {
		return nil, err
	}
	n := &Node{Kind: KindUnion, Children: []*Node{
		ident(name.text),
		{Kind: KindUnionSwitch, Children: []*Node{styp, ident(svar.text)}},
	}}
	for p.peek().text == "case" {
		c := &Node{Kind: KindUnionCase}
		// Consecutive case labels fall through to a single payload.
		for p.peek().text == "case" {
			p.next()
			val, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(":"); err != nil {
				return nil, err
			}
			c.Children = append(c.Children, val)
		}
		payload, err := p.parseCasePayload()
		if err != nil {
			return nil, err
		}
		c.Children = append(c.Children, payload)
		n.Children = append(n.Children, c)
	}
	if p.peek().text == "default" {
		p.next()
		if _, err := p.expect(":"); err != nil {
			return nil, err
		}
		payload, err := p.parseCasePayload()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, &Node{Kind: KindUnionDefault, Children: []*Node{payload}})
	}
	if _, err := p.expect("}"); err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return n, nil
}

// A case arm body is void or a single field declaration.
func (p *parser) parseCasePayload() (*Node, error) {
	if p.peek().text == "void" {
		p.next()
		if _, err := p.expect(";"); err != nil {
			return nil, err
		}
		return &Node{Kind: KindUnionVoid}, nil
	}
	return p.parseField()
}

// parseTypeSpec reads a type name, joining the multi-word spellings of the
// unsigned primitives into a single identifier node.
func (p *parser) parseTypeSpec() (*Node, error) {
	t, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if t.text == "unsigned" {
		next := p.peek()
		if next.text == "int" || next.text == "hyper" {
			p.next()
			return ident(t.text + " " + next.text), nil
		}
	}
	return ident(t.text), nil
}

// parseArraySuffix reads an optional [N] or <N?> marker after a name.
func (p *parser) parseArraySuffix() (*Node, error) {
	switch p.peek().text {
	case "[":
		p.next()
		size, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect("]"); err != nil {
			return nil, err
		}
		return &Node{Kind: KindArrayFixed, Text: size.Text}, nil
	case "<":
		p.next()
		n := &Node{Kind: KindArrayVariable}
		if p.peek().text != ">" {
			size, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			n.Text = size.Text
		}
		if _, err := p.expect(">"); err != nil {
			return nil, err
		}
		return n, nil
	}
	return nil, nil
}
