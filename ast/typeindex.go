package ast

// TypeIndex maps declared type names to their declarations for O(1) lookup
// during emission.
type TypeIndex struct {
	m map[string]Decl
}

// BuildTypeIndex indexes every type declaration by name. Constants live in
// their own namespace and are not included.
func BuildTypeIndex(decls []Decl) (*TypeIndex, error) {
	idx := &TypeIndex{m: make(map[string]Decl)}
	for _, d := range decls {
		switch d.(type) {
		case *Struct, *Union, *Enum, *Typedef:
			if _, ok := idx.m[d.DeclName()]; ok {
				return nil, &DuplicateSymbolError{Symbol: d.DeclName()}
			}
			idx.m[d.DeclName()] = d
		}
	}
	return idx, nil
}

// Get looks a type name up.
func (i *TypeIndex) Get(name string) (Decl, bool) {
	d, ok := i.m[name]
	return d, ok
}

// TypedefTarget reports whether name is a typedef alias and, if so, returns
// it. Resolution is one hop: a chain of aliases is unwound one level per
// call, so each use site decides how far to chase.
func (i *TypeIndex) TypedefTarget(name string) (*Typedef, bool) {
	d, ok := i.m[name]
	if !ok {
		return nil, false
	}
	t, ok := d.(*Typedef)
	return t, ok
}
