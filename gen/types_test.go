package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypesConstant(t *testing.T) {
	a := buildAst(t, "const NFS4_FHSIZE = 128;")
	assert.Equal(t, "const NFS4_FHSIZE = 128\n\n", runTypes(t, a, ""))
}

func TestTypesEnum(t *testing.T) {
	a := buildAst(t, `
		enum createmode4 {
			UNCHECKED4 = 0,
			GUARDED4   = 1,
			EXCLUSIVE4 = 2
		};
	`)
	expected := `type createmode4 int32

const (
	UNCHECKED4 createmode4 = 0
	GUARDED4 createmode4 = 1
	EXCLUSIVE4 createmode4 = 2
)

var _ xdr.Codec = (*createmode4)(nil)

`
	assert.Equal(t, expected, runTypes(t, a, ""))
}

func TestTypesStructGeneric(t *testing.T) {
	a := buildAst(t, `
		struct stateid4 {
			uint32_t seqid;
			opaque   other[12];
		};
	`)
	expected := `type stateid4[T xdr.Bytes] struct {
	seqid uint32
	other T
}

var _ xdr.Codec = (*stateid4[[]byte])(nil)

`
	assert.Equal(t, expected, runTypes(t, a, ""))
}

func TestTypesStructPlain(t *testing.T) {
	a := buildAst(t, `
		struct nfstime4 {
			uint64_t seconds;
			uint32_t nseconds;
		};
	`)
	expected := `type nfstime4 struct {
	seconds uint64
	nseconds uint32
}

var _ xdr.Codec = (*nfstime4)(nil)

`
	assert.Equal(t, expected, runTypes(t, a, ""))
}

func TestTypesPrologue(t *testing.T) {
	a := buildAst(t, "struct nfstime4 { uint32_t seconds; };")
	out := runTypes(t, a, "//nolint:revive")
	assert.True(t, len(out) > 0)
	assert.Contains(t, out, "//nolint:revive\ntype nfstime4 struct {")
}

func TestTypesVariableArrayBoundComment(t *testing.T) {
	a := buildAst(t, "struct l { uint32_t vals<8>; };")
	assert.Contains(t, runTypes(t, a, ""), "\tvals []uint32 // max 8\n")
}

func TestTypesOptionalField(t *testing.T) {
	a := buildAst(t, `
		struct entry4 {
			uint32_t cookie;
			entry4   *nextentry;
		};
	`)
	assert.Contains(t, runTypes(t, a, ""), "\tnextentry *entry4\n")
}

func TestTypesUnion(t *testing.T) {
	a := buildAst(t, `
		enum nfsstat4 { NFS4_OK = 0, NFS4ERR_IO = 5 };
		union READ4res switch (nfsstat4 status) {
		case NFS4_OK:
			uint32_t ok;
		case NFS4ERR_IO:
			void;
		default:
			opaque tag<>;
		};
	`)
	out := runTypes(t, a, "")
	assert.Contains(t, out, "type READ4res[T xdr.Bytes] struct {\n")
	assert.Contains(t, out, "\tstatus nfsstat4\n")
	assert.Contains(t, out, "\tNFS4_OK *uint32\n")
	assert.Contains(t, out, "\tdefault_v *T\n")
	assert.NotContains(t, out, "NFS4ERR_IO *")
}

func TestTypesUnionDigitCase(t *testing.T) {
	a := buildAst(t, `
		union res switch (int status) {
		case 0:
		case 1:
			uint32_t ok;
		default:
			void;
		};
	`)
	out := runTypes(t, a, "")
	assert.Contains(t, out, "\tv_0 *uint32\n")
	assert.Contains(t, out, "\tv_1 *uint32\n")
}

func TestTypesReservedNames(t *testing.T) {
	a := buildAst(t, `
		struct type {
			uint32_t func;
		};
	`)
	out := runTypes(t, a, "")
	assert.Contains(t, out, "type type_v struct {\n")
	assert.Contains(t, out, "\tfunc_v uint32\n")
}

func TestTypesTypedefWrapper(t *testing.T) {
	a := buildAst(t, "typedef opaque verifier4[8];")
	expected := `type verifier4[T xdr.Bytes] struct {
	v T
}

var _ xdr.Codec = (*verifier4[[]byte])(nil)

`
	assert.Equal(t, expected, runTypes(t, a, ""))
}

func TestTypesTypedefSelfReferentialElided(t *testing.T) {
	a := buildAst(t, "typedef uint32_t uint32_t;")
	assert.Equal(t, "", runTypes(t, a, ""))
}

func TestTypesFixedArrayConstantSize(t *testing.T) {
	a := buildAst(t, `
		const NFS4_SESSIONID_SIZE = 16;
		struct s { uint32_t slots[NFS4_SESSIONID_SIZE]; };
	`)
	assert.Contains(t, runTypes(t, a, ""), "\tslots [NFS4_SESSIONID_SIZE]uint32\n")
}

func TestTypesUnknownArraySizeConstant(t *testing.T) {
	a := buildAst(t, "struct s { uint32_t slots[NFS4_MISSING]; };")
	var sizeErr *ArraySizeError
	_, err := runTypesErr(a)
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, "NFS4_MISSING", sizeErr.Size)
}

func TestTypesNonNumericArraySizeConstant(t *testing.T) {
	a := buildAst(t, `
		const A = B;
		const B = A;
		struct s { uint32_t slots[A]; };
	`)
	var sizeErr *ArraySizeError
	_, err := runTypesErr(a)
	require.ErrorAs(t, err, &sizeErr)
}
