package ast

// GenericIndex is the set of type names that must carry the byte-buffer type
// parameter: every type that contains opaque data directly, or reaches one
// that does through fields, union arms, or typedef targets.
type GenericIndex struct {
	set map[string]struct{}
}

// BuildGenericIndex computes the transitive opaque-containment closure.
// Each pass marks types whose contained types are opaque or already marked;
// passes repeat until the set stops growing, so declaration order (including
// forward and cyclic references) does not matter.
func BuildGenericIndex(decls []Decl) *GenericIndex {
	idx := &GenericIndex{set: make(map[string]struct{})}
	for {
		before := len(idx.set)
		for _, d := range decls {
			idx.mark(d)
		}
		if len(idx.set) == before {
			return idx
		}
	}
}

func (i *GenericIndex) mark(d Decl) {
	switch d := d.(type) {
	case *Struct:
		for _, f := range d.Fields {
			if i.propagates(f.Type.Inner) {
				i.set[d.Name] = struct{}{}
				return
			}
		}
	case *Union:
		for _, c := range d.Cases {
			if i.propagates(c.Type) {
				i.set[d.Name] = struct{}{}
				return
			}
		}
		if d.Default != nil && i.propagates(d.Default.Type) {
			i.set[d.Name] = struct{}{}
		}
	case *Typedef:
		if i.propagates(d.Target.Inner) {
			i.set[d.Alias] = struct{}{}
		}
	}
}

// propagates reports whether a contained type forces genericity on its
// container: opaque always does, an identifier does once its target is
// marked. Enums and scalar primitives never do.
func (i *GenericIndex) propagates(b BasicType) bool {
	switch b.Kind {
	case Opaque:
		return true
	case Ident:
		return i.Contains(b.Name)
	}
	return false
}

// Contains reports whether name needs the type parameter.
func (i *GenericIndex) Contains(name string) bool {
	_, ok := i.set[name]
	return ok
}

// Len returns the number of generic types.
func (i *GenericIndex) Len() int {
	return len(i.set)
}
