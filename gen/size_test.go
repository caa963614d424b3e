package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeEnum(t *testing.T) {
	a := buildAst(t, "enum createmode4 { UNCHECKED4 = 0 };")
	assert.Equal(t, "func (v *createmode4) WireSize() int {\n\treturn 4\n}\n\n", run(t, Size, a))
}

func TestSizeStruct(t *testing.T) {
	a := buildAst(t, `
		struct stateid4 {
			uint32_t seqid;
			uint64_t clientid;
			opaque   other[12];
			opaque   data<>;
			string   tag<>;
		};
	`)
	expected := `func (v *stateid4[T]) WireSize() int {
	size := 0
	size += 4
	size += 8
	size += len(v.other) + xdr.Pad(len(v.other))
	size += 4 + len(v.data) + xdr.Pad(len(v.data))
	size += 4 + len(v.tag) + xdr.Pad(len(v.tag))
	return size
}

`
	assert.Equal(t, expected, run(t, Size, a))
}

func TestSizeArrays(t *testing.T) {
	a := buildAst(t, `
		struct nfstime4 { uint32_t seconds; };
		struct s {
			uint32_t fixed[4];
			nfstime4 times<>;
		};
	`)
	out := run(t, Size, a)
	assert.Contains(t, out, "\tsize += 4 * len(v.fixed)\n")
	assert.Contains(t, out, `	size += 4
	for i := range v.times {
		size += v.times[i].WireSize()
	}
`)
}

func TestSizeOptionalField(t *testing.T) {
	a := buildAst(t, `
		struct entry4 {
			uint32_t cookie;
			entry4   *nextentry;
		};
	`)
	assert.Contains(t, run(t, Size, a), `	if v.nextentry != nil {
		size += 4
		size += v.nextentry.WireSize()
	} else {
		size += 4
	}
`)
}

func TestSizeUnion(t *testing.T) {
	a := buildAst(t, `
		enum nfsstat4 { NFS4_OK = 0, NFS4ERR_IO = 5 };
		union READ4res switch (nfsstat4 status) {
		case NFS4_OK:
			opaque data<>;
		case NFS4ERR_IO:
			void;
		default:
			void;
		};
	`)
	out := run(t, Size, a)
	assert.Contains(t, out, `func (v *READ4res[T]) WireSize() int {
	size := 4
	switch v.status {
	case NFS4_OK:
		size += 4 + len(*v.NFS4_OK) + xdr.Pad(len(*v.NFS4_OK))
	case NFS4ERR_IO:
		// void arm, no payload
	}
	return size
}
`)
}

func TestSizeTypedefWrapper(t *testing.T) {
	a := buildAst(t, "typedef opaque verifier4[8];")
	expected := `func (v *verifier4[T]) WireSize() int {
	size := 0
	size += len(v.v) + xdr.Pad(len(v.v))
	return size
}

`
	assert.Equal(t, expected, run(t, Size, a))
}

func TestSizeTypedefVariableOpaque(t *testing.T) {
	// Delegation to an opaque target adds the count prefix and padding.
	a := buildAst(t, "typedef opaque sessionid4<16>;")
	assert.Contains(t, run(t, Size, a), "\tsize += 4 + len(v.v) + xdr.Pad(len(v.v))\n")
}
