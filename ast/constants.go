package ast

import "fmt"

// Symbol is one entry in the constant index: how a name is matched against in
// emitted code, plus the enum that owns it when it is an enum variant.
type Symbol struct {
	Name  string
	Enum  string // owning enum for variants, empty for plain constants
	Value string
}

// DuplicateSymbolError reports a name declared more than once across the
// constant and enum-variant namespace, or a duplicated type name.
type DuplicateSymbolError struct {
	Symbol string
}

func (e *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("duplicate symbol %q", e.Symbol)
}

// ConstantIndex is a flat symbol table over every named constant and enum
// variant in the definition. Union case labels and array sizes resolve
// through it; a miss means the label is a literal.
type ConstantIndex struct {
	syms map[string]Symbol
}

// BuildConstantIndex walks the declarations once, collecting constants and
// enum variants into a single namespace.
func BuildConstantIndex(decls []Decl) (*ConstantIndex, error) {
	idx := &ConstantIndex{syms: make(map[string]Symbol)}
	for _, d := range decls {
		switch d := d.(type) {
		case *Constant:
			if err := idx.add(Symbol{Name: d.Name, Value: d.Value}); err != nil {
				return nil, err
			}
		case *Enum:
			for _, v := range d.Variants {
				s := Symbol{Name: v.Name, Enum: d.Name, Value: v.Value}
				if err := idx.add(s); err != nil {
					return nil, err
				}
			}
		}
	}
	return idx, nil
}

func (i *ConstantIndex) add(s Symbol) error {
	if _, ok := i.syms[s.Name]; ok {
		return &DuplicateSymbolError{Symbol: s.Name}
	}
	i.syms[s.Name] = s
	return nil
}

// Get looks a name up, reporting whether it is defined.
func (i *ConstantIndex) Get(name string) (Symbol, bool) {
	s, ok := i.syms[name]
	return s, ok
}
