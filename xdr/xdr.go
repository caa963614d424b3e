// Package xdr implements the primitive XDR (RFC 4506) wire format used by
// code emitted from the fastxdr generator.
//
// All primitives are big-endian and 4-byte aligned. Variable-length data
// carries a 4-byte count prefix and trailing zero padding to the next 4-byte
// boundary.
package xdr

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"unicode/utf8"
)

// XDR errors
var (
	ErrBufferTooSmall = errors.New("buffer too small")
	ErrInvalidData    = errors.New("invalid XDR data")
	ErrUnexpectedEOF  = errors.New("unexpected end of data")
	ErrInvalidUTF8    = errors.New("non-utf8 characters in string")
	ErrLengthExceeded = errors.New("length exceeds declared maximum")
)

// InvalidBooleanError is returned when a decoded boolean tag is neither 0
// nor 1.
type InvalidBooleanError struct {
	Value uint32
}

func (e *InvalidBooleanError) Error() string {
	return fmt.Sprintf("invalid boolean value %d", e.Value)
}

// UnknownVariantError is returned when a decoded enum value or union
// discriminant matches no declared variant.
type UnknownVariantError struct {
	Value int32
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown variant %d", e.Value)
}

// UnknownOptionTagError is returned when an optional field's presence tag is
// neither 0 (absent) nor 1 (present).
type UnknownOptionTagError struct {
	Tag uint32
}

func (e *UnknownOptionTagError) Error() string {
	return fmt.Sprintf("unknown option variant %d", e.Tag)
}

// Bytes constrains the buffer type generated types are parameterised over.
// Opaque XDR fields decode into a value of the instantiating type, allowing
// callers to pick a plain []byte or a defined slice type of their own.
type Bytes interface {
	~[]byte
}

// Pad returns the number of zero bytes needed to align n up to the next
// 4-byte boundary.
func Pad(n int) int {
	return (4 - (n % 4)) % 4
}

// Encoder provides methods for encoding data in XDR format
type Encoder struct {
	buf []byte
	pos int
}

// NewEncoder creates a new XDR encoder with the provided buffer
func NewEncoder(buf []byte) *Encoder {
	return &Encoder{buf: buf}
}

// Bytes returns the encoded data
func (e *Encoder) Bytes() []byte {
	return e.buf[:e.pos]
}

// Len returns the number of bytes encoded
func (e *Encoder) Len() int {
	return e.pos
}

// Reset resets the encoder to use a new buffer
func (e *Encoder) Reset(buf []byte) {
	e.buf = buf
	e.pos = 0
}

// EncodeUint32 encodes a 32-bit unsigned integer
func (e *Encoder) EncodeUint32(v uint32) error {
	if e.pos+4 > len(e.buf) {
		return ErrBufferTooSmall
	}
	binary.BigEndian.PutUint32(e.buf[e.pos:], v)
	e.pos += 4
	return nil
}

// EncodeUint64 encodes a 64-bit unsigned integer
func (e *Encoder) EncodeUint64(v uint64) error {
	if e.pos+8 > len(e.buf) {
		return ErrBufferTooSmall
	}
	binary.BigEndian.PutUint64(e.buf[e.pos:], v)
	e.pos += 8
	return nil
}

// EncodeInt32 encodes a 32-bit signed integer
func (e *Encoder) EncodeInt32(v int32) error {
	return e.EncodeUint32(uint32(v))
}

// EncodeInt64 encodes a 64-bit signed integer
func (e *Encoder) EncodeInt64(v int64) error {
	return e.EncodeUint64(uint64(v))
}

// EncodeFloat32 encodes a 32-bit IEEE 754 float
func (e *Encoder) EncodeFloat32(v float32) error {
	return e.EncodeUint32(math.Float32bits(v))
}

// EncodeFloat64 encodes a 64-bit IEEE 754 float
func (e *Encoder) EncodeFloat64(v float64) error {
	return e.EncodeUint64(math.Float64bits(v))
}

// EncodeBool encodes a boolean value
func (e *Encoder) EncodeBool(v bool) error {
	if v {
		return e.EncodeUint32(1)
	}
	return e.EncodeUint32(0)
}

// EncodeBytes encodes a variable-length byte array with length prefix
func (e *Encoder) EncodeBytes(v []byte) error {
	if err := e.EncodeUint32(uint32(len(v))); err != nil {
		return err
	}
	return e.EncodeFixedBytes(v)
}

// EncodeFixedBytes encodes a fixed-length byte array without length prefix
func (e *Encoder) EncodeFixedBytes(v []byte) error {
	padLen := Pad(len(v))
	totalLen := len(v) + padLen

	if e.pos+totalLen > len(e.buf) {
		return ErrBufferTooSmall
	}

	copy(e.buf[e.pos:], v)
	e.pos += len(v)

	// Add padding bytes (zeros)
	for i := 0; i < padLen; i++ {
		e.buf[e.pos] = 0
		e.pos++
	}

	return nil
}

// EncodeString encodes a string
func (e *Encoder) EncodeString(v string) error {
	return e.EncodeBytes([]byte(v))
}

// Decoder provides methods for decoding XDR format data
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder creates a new XDR decoder with the provided data
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Remaining returns the number of bytes remaining to be decoded
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.pos
}

// Position returns the current decode position
func (d *Decoder) Position() int {
	return d.pos
}

// Reset resets the decoder to use new data
func (d *Decoder) Reset(buf []byte) {
	d.buf = buf
	d.pos = 0
}

// DecodeUint32 decodes a 32-bit unsigned integer
func (d *Decoder) DecodeUint32() (uint32, error) {
	if d.pos+4 > len(d.buf) {
		return 0, ErrUnexpectedEOF
	}
	v := binary.BigEndian.Uint32(d.buf[d.pos:])
	d.pos += 4
	return v, nil
}

// DecodeUint64 decodes a 64-bit unsigned integer
func (d *Decoder) DecodeUint64() (uint64, error) {
	if d.pos+8 > len(d.buf) {
		return 0, ErrUnexpectedEOF
	}
	v := binary.BigEndian.Uint64(d.buf[d.pos:])
	d.pos += 8
	return v, nil
}

// DecodeInt32 decodes a 32-bit signed integer
func (d *Decoder) DecodeInt32() (int32, error) {
	v, err := d.DecodeUint32()
	return int32(v), err
}

// DecodeInt64 decodes a 64-bit signed integer
func (d *Decoder) DecodeInt64() (int64, error) {
	v, err := d.DecodeUint64()
	return int64(v), err
}

// DecodeFloat32 decodes a 32-bit IEEE 754 float
func (d *Decoder) DecodeFloat32() (float32, error) {
	v, err := d.DecodeUint32()
	return math.Float32frombits(v), err
}

// DecodeFloat64 decodes a 64-bit IEEE 754 float
func (d *Decoder) DecodeFloat64() (float64, error) {
	v, err := d.DecodeUint64()
	return math.Float64frombits(v), err
}

// DecodeBool decodes a boolean value. Only the tags 0 and 1 are valid.
func (d *Decoder) DecodeBool() (bool, error) {
	v, err := d.DecodeUint32()
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, &InvalidBooleanError{Value: v}
}

// DecodeBytes decodes a variable-length byte array
func (d *Decoder) DecodeBytes() ([]byte, error) {
	length, err := d.DecodeUint32()
	if err != nil {
		return nil, err
	}

	if length > math.MaxInt32 {
		return nil, ErrInvalidData
	}

	return d.DecodeFixedBytes(int(length))
}

// DecodeBytesMax decodes a variable-length byte array, rejecting counts above
// the declared maximum.
func (d *Decoder) DecodeBytesMax(max uint32) ([]byte, error) {
	length, err := d.DecodeUint32()
	if err != nil {
		return nil, err
	}

	if length > max {
		return nil, ErrLengthExceeded
	}

	return d.DecodeFixedBytes(int(length))
}

// DecodeFixedBytes decodes a fixed-length byte array
func (d *Decoder) DecodeFixedBytes(length int) ([]byte, error) {
	// Calculate total length including padding
	padLen := Pad(length)
	totalLen := length + padLen

	if d.pos+totalLen > len(d.buf) {
		return nil, ErrUnexpectedEOF
	}

	// Extract the actual data (without padding)
	data := make([]byte, length)
	copy(data, d.buf[d.pos:d.pos+length])
	d.pos += totalLen // Skip data and padding

	return data, nil
}

// DecodeString decodes a string, validating it as UTF-8 text
func (d *Decoder) DecodeString() (string, error) {
	data, err := d.DecodeBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", ErrInvalidUTF8
	}
	return string(data), nil
}

// DecodeStringMax decodes a string with a declared maximum byte length
func (d *Decoder) DecodeStringMax(max uint32) (string, error) {
	data, err := d.DecodeBytesMax(max)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", ErrInvalidUTF8
	}
	return string(data), nil
}
