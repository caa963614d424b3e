package xdr

// Codec is implemented by every generated type: methods to write the value,
// read it back, and report the exact number of bytes Encode will produce.
type Codec interface {
	Encode(enc *Encoder) error
	Decode(dec *Decoder) error
	WireSize() int
}

// Marshal encodes a value into a fresh buffer sized by its WireSize.
func Marshal(v Codec) ([]byte, error) {
	enc := NewEncoder(make([]byte, v.WireSize()))
	if err := v.Encode(enc); err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}

// Unmarshal decodes data into a value.
func Unmarshal(data []byte, v Codec) error {
	return v.Decode(NewDecoder(data))
}
