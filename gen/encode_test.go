package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeEnum(t *testing.T) {
	a := buildAst(t, "enum createmode4 { UNCHECKED4 = 0 };")
	expected := `func (v *createmode4) Encode(enc *xdr.Encoder) error {
	return enc.EncodeInt32(int32(*v))
}

`
	assert.Equal(t, expected, run(t, Encode, a))
}

func TestEncodeStruct(t *testing.T) {
	a := buildAst(t, `
		struct stateid4 {
			uint32_t seqid;
			opaque   other[12];
			opaque   data<>;
			string   tag<>;
		};
	`)
	expected := `func (v *stateid4[T]) Encode(enc *xdr.Encoder) error {
	if err := enc.EncodeUint32(v.seqid); err != nil {
		return err
	}
	if err := enc.EncodeFixedBytes([]byte(v.other)); err != nil {
		return err
	}
	if err := enc.EncodeBytes([]byte(v.data)); err != nil {
		return err
	}
	if err := enc.EncodeString(v.tag); err != nil {
		return err
	}
	return nil
}

`
	assert.Equal(t, expected, run(t, Encode, a))
}

func TestEncodeVariableArray(t *testing.T) {
	a := buildAst(t, "struct l { uint32_t vals<8>; };")
	assert.Contains(t, run(t, Encode, a), `	if err := enc.EncodeUint32(uint32(len(v.vals))); err != nil {
		return err
	}
	for i := range v.vals {
		if err := enc.EncodeUint32(v.vals[i]); err != nil {
			return err
		}
	}
`)
}

func TestEncodeOptionalField(t *testing.T) {
	a := buildAst(t, `
		struct entry4 {
			uint32_t cookie;
			entry4   *nextentry;
		};
	`)
	assert.Contains(t, run(t, Encode, a), `	if v.nextentry != nil {
		if err := enc.EncodeUint32(1); err != nil {
			return err
		}
		if err := v.nextentry.Encode(enc); err != nil {
			return err
		}
	} else if err := enc.EncodeUint32(0); err != nil {
		return err
	}
`)
}

func TestEncodeUnion(t *testing.T) {
	a := buildAst(t, `
		enum nfsstat4 { NFS4_OK = 0, NFS4ERR_IO = 5 };
		union READ4res switch (nfsstat4 status) {
		case NFS4_OK:
			uint32_t ok;
		case NFS4ERR_IO:
			void;
		default:
			void;
		};
	`)
	out := run(t, Encode, a)
	assert.Contains(t, out, `func (v *READ4res) Encode(enc *xdr.Encoder) error {
	if err := v.status.Encode(enc); err != nil {
		return err
	}
	switch v.status {
	case NFS4_OK:
		if err := enc.EncodeUint32(*v.NFS4_OK); err != nil {
			return err
		}
	case NFS4ERR_IO:
		// void arm, no payload
	}
	return nil
}
`)
}

func TestEncodeUnionPayloadDefault(t *testing.T) {
	a := buildAst(t, `
		union r switch (unsigned int status) {
		case 0:
			uint32_t ok;
		default:
			opaque tag<>;
		};
	`)
	out := run(t, Encode, a)
	assert.Contains(t, out, "\tif err := enc.EncodeUint32(v.status); err != nil {\n")
	assert.Contains(t, out, `	default:
		if err := enc.EncodeBytes([]byte(*v.default_v)); err != nil {
			return err
		}
`)
}

func TestEncodeTypedefWrapper(t *testing.T) {
	a := buildAst(t, "typedef opaque verifier4[8];")
	expected := `func (v *verifier4[T]) Encode(enc *xdr.Encoder) error {
	if err := enc.EncodeFixedBytes([]byte(v.v)); err != nil {
		return err
	}
	return nil
}

`
	assert.Equal(t, expected, run(t, Encode, a))
}
