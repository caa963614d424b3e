package ast

import "strconv"

// ArraySize is a fixed-array length or variable-array maximum: either a
// literal or a reference to a named constant.
type ArraySize struct {
	N   uint32
	Ref string // named constant reference when non-empty
}

// ParseArraySize interprets a size expression as a literal if it parses as
// one, falling back to a constant reference.
func ParseArraySize(s string) ArraySize {
	if n, err := strconv.ParseUint(s, 0, 32); err == nil {
		return ArraySize{N: uint32(n)}
	}
	return ArraySize{Ref: s}
}

// String returns the size as it should appear in emitted code.
func (s ArraySize) String() string {
	if s.Ref != "" {
		return s.Ref
	}
	return strconv.FormatUint(uint64(s.N), 10)
}

// ArrayKind classifies a field's cardinality on the wire.
type ArrayKind int

const (
	// ArrayNone is a single value with no count prefix.
	ArrayNone ArrayKind = iota
	// ArrayFixed is a fixed-length array with no count prefix.
	ArrayFixed
	// ArrayVariable is a count-prefixed array, optionally bounded.
	ArrayVariable
)

// ArrayType pairs an element type with its wire cardinality.
type ArrayType struct {
	Kind  ArrayKind
	Inner BasicType
	Size  *ArraySize // fixed length, or variable maximum; nil when unbounded
}

// Scalar wraps a BasicType as a plain, non-array field type.
func Scalar(b BasicType) ArrayType {
	return ArrayType{Kind: ArrayNone, Inner: b}
}
