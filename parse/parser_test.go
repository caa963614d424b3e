package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConstant(t *testing.T) {
	root, err := Parse("const NFS4_FHSIZE = 128;")
	require.NoError(t, err)
	require.Len(t, root.Children, 1)

	c := root.Children[0]
	assert.Equal(t, KindConstant, c.Kind)
	assert.Equal(t, "NFS4_FHSIZE", c.Children[0].Text)
	assert.Equal(t, "128", c.Children[1].Text)
}

func TestParseConstantHex(t *testing.T) {
	root, err := Parse("const ACL4_SUPPORT = 0x00000001;")
	require.NoError(t, err)
	assert.Equal(t, "0x00000001", root.Children[0].Children[1].Text)
}

func TestParseTypedef(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target string
		alias  string
		marker Kind
		size   string
	}{
		{"scalar", "typedef uint32_t acetype4;", "uint32_t", "acetype4", KindRoot, ""},
		{"unsigned int", "typedef unsigned int mode4;", "unsigned int", "mode4", KindRoot, ""},
		{"unsigned hyper", "typedef unsigned hyper clientid4;", "unsigned hyper", "clientid4", KindRoot, ""},
		{"variable opaque", "typedef opaque utf8string<>;", "opaque", "utf8string", KindArrayVariable, ""},
		{"bounded opaque", "typedef opaque sessionid4<NFS4_MAX>;", "opaque", "sessionid4", KindArrayVariable, "NFS4_MAX"},
		{"fixed opaque", "typedef opaque verifier4[8];", "opaque", "verifier4", KindArrayFixed, "8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Parse(tt.input)
			require.NoError(t, err)
			td := root.Children[0]
			require.Equal(t, KindTypedef, td.Kind)
			assert.Equal(t, tt.target, td.Children[0].Text)
			assert.Equal(t, tt.alias, td.Children[1].Text)
			if tt.marker == KindRoot {
				assert.Len(t, td.Children, 2)
				return
			}
			require.Len(t, td.Children, 3)
			assert.Equal(t, tt.marker, td.Children[2].Kind)
			assert.Equal(t, tt.size, td.Children[2].Text)
		})
	}
}

func TestParseEnum(t *testing.T) {
	root, err := Parse(`
		enum createmode4 {
			UNCHECKED4 = 0,
			GUARDED4   = 0x1,
			EXCLUSIVE4 = SOME_CONST
		};
	`)
	require.NoError(t, err)
	e := root.Children[0]
	require.Equal(t, KindEnum, e.Kind)
	assert.Equal(t, "createmode4", e.Children[0].Text)
	require.Len(t, e.Children, 4)

	v := e.Children[2]
	assert.Equal(t, KindEnumVariant, v.Kind)
	assert.Equal(t, "GUARDED4", v.Children[0].Text)
	assert.Equal(t, "0x1", v.Children[1].Text)
	assert.Equal(t, "SOME_CONST", e.Children[3].Children[1].Text)
}

func TestParseStruct(t *testing.T) {
	root, err := Parse(`
		/* a small structure */
		struct stateid4 {
			uint32_t seqid;      // sequence number
			opaque   other[12];
			opaque   data<>;
			string   tag<128>;
			entry4   *nextentry;
		};
	`)
	require.NoError(t, err)
	s := root.Children[0]
	require.Equal(t, KindStruct, s.Kind)
	assert.Equal(t, "stateid4", s.Children[0].Text)
	require.Len(t, s.Children, 6)

	fixed := s.Children[2]
	require.Len(t, fixed.Children, 3)
	assert.Equal(t, KindArrayFixed, fixed.Children[2].Kind)
	assert.Equal(t, "12", fixed.Children[2].Text)

	variable := s.Children[3]
	assert.Equal(t, KindArrayVariable, variable.Children[2].Kind)
	assert.Equal(t, "", variable.Children[2].Text)

	bounded := s.Children[4]
	assert.Equal(t, "128", bounded.Children[2].Text)

	optional := s.Children[5]
	assert.Equal(t, KindOption, optional.Children[0].Kind)
	assert.Equal(t, "entry4", optional.Children[1].Text)
	assert.Equal(t, "nextentry", optional.Children[2].Text)
}

func TestParseUnion(t *testing.T) {
	root, err := Parse(`
		union createhow4 switch (createmode4 mode) {
		case UNCHECKED4:
		case GUARDED4:
			fattr4 createattrs;
		case EXCLUSIVE4:
			void;
		default:
			verifier4 createverf;
		};
	`)
	require.NoError(t, err)
	u := root.Children[0]
	require.Equal(t, KindUnion, u.Kind)
	assert.Equal(t, "createhow4", u.Children[0].Text)

	sw := u.Children[1]
	require.Equal(t, KindUnionSwitch, sw.Kind)
	assert.Equal(t, "createmode4", sw.Children[0].Text)
	assert.Equal(t, "mode", sw.Children[1].Text)

	// Fallthrough labels accumulate on one case node.
	c := u.Children[2]
	require.Equal(t, KindUnionCase, c.Kind)
	require.Len(t, c.Children, 3)
	assert.Equal(t, "UNCHECKED4", c.Children[0].Text)
	assert.Equal(t, "GUARDED4", c.Children[1].Text)
	assert.Equal(t, KindStructField, c.Children[2].Kind)

	void := u.Children[3]
	assert.Equal(t, KindUnionVoid, void.Children[1].Kind)

	def := u.Children[4]
	require.Equal(t, KindUnionDefault, def.Kind)
	assert.Equal(t, KindStructField, def.Children[0].Kind)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"program block", "program NFS4_PROGRAM { } = 100003;"},
		{"missing semicolon", "const A = 1"},
		{"bad top level", "frobnicate x;"},
		{"unterminated comment", "/* const A = 1;"},
		{"stray character", "const A = 1; @"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
		})
	}
}

func TestParseErrorLine(t *testing.T) {
	_, err := Parse("const A = 1;\nconst B = ;\n")
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
}
