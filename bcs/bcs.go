package bcs

import (
	"bytes"

	"github.com/artfi/suiops/errors"
	gobcs "github.com/fardream/go-bcs/bcs"
)

// MaxSequenceLength is the largest length of a vector BCS allows.
const MaxSequenceLength = 1<<31 - 1

// Marshaler is implemented by types that can serialize themselves.
type Marshaler interface {
	MarshalBCS(*Encoder)
}

// Unmarshaler is implemented by types that can deserialize themselves.
type Unmarshaler interface {
	UnmarshalBCS(*Decoder)
}

// Marshal returns the BCS serialization of given value.
func Marshal(m Marshaler) []byte {
	var e Encoder
	m.MarshalBCS(&e)
	return e.Data()
}

// Unmarshal deserializes given data into the value. All bytes must be
// consumed.
func Unmarshal(data []byte, u Unmarshaler) error {
	d := NewDecoder(data)
	u.UnmarshalBCS(d)
	return d.Finish()
}

// Encoder accumulates serialized values. Zero value is ready to use.
// Primitive values are encoded by go-bcs.
type Encoder struct {
	buf []byte
}

// Data returns the serialized content.
func (e *Encoder) Data() []byte {
	return e.buf
}

func (e *Encoder) put(v interface{}) {
	e.buf = append(e.buf, gobcs.MustMarshal(v)...)
}

func (e *Encoder) U8(v uint8) {
	e.put(v)
}

func (e *Encoder) U16(v uint16) {
	e.put(v)
}

func (e *Encoder) U32(v uint32) {
	e.put(v)
}

func (e *Encoder) U64(v uint64) {
	e.put(v)
}

func (e *Encoder) Bool(v bool) {
	e.put(v)
}

// ULEB128 writes an unsigned LEB128 encoded value.
func (e *Encoder) ULEB128(v uint32) {
	e.buf = append(e.buf, gobcs.ULEB128Encode(v)...)
}

// Len writes a sequence length.
func (e *Encoder) Len(n int) {
	e.ULEB128(uint32(n))
}

// Variant writes an enum variant tag.
func (e *Encoder) Variant(tag uint32) {
	e.ULEB128(tag)
}

// Bytes writes a length prefixed byte vector.
func (e *Encoder) Bytes(b []byte) {
	e.put(b)
}

// Fixed writes a fixed size byte array. No length is written.
func (e *Encoder) Fixed(b []byte) {
	e.buf = append(e.buf, b...)
}

// Decoder reads serialized values.
type Decoder struct {
	data []byte
	off  int
	err  error
}

func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Err returns the first error encountered.
func (d *Decoder) Err() error {
	return d.err
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.data) - d.off
}

// Finish returns the decoding error if any, or an error if not all data was
// consumed.
func (d *Decoder) Finish() error {
	if d.err != nil {
		return d.err
	}
	if n := d.Remaining(); n != 0 {
		return errors.Wrapf(errors.ErrInput, "%d trailing bytes", n)
	}
	return nil
}

// Fail records an error unless one is already present. Use it from
// Unmarshaler implementations to report invalid values.
func (d *Decoder) Fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

func (d *Decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || d.Remaining() < n {
		d.err = errors.Wrapf(errors.ErrInput, "unexpected end of data: want %d bytes at offset %d, have %d", n, d.off, d.Remaining())
		return nil
	}
	b := d.data[d.off : d.off+n]
	d.off += n
	return b
}

// fixedInt decodes a little endian integer of size bytes into v using
// go-bcs.
func (d *Decoder) fixedInt(size int, v interface{}) {
	b := d.take(size)
	if b == nil {
		return
	}
	if _, err := gobcs.Unmarshal(b, v); err != nil {
		d.Fail(errors.Wrapf(errors.ErrInput, "integer at offset %d: %s", d.off-size, err))
	}
}

func (d *Decoder) U8() uint8 {
	var v uint8
	d.fixedInt(1, &v)
	return v
}

func (d *Decoder) U16() uint16 {
	var v uint16
	d.fixedInt(2, &v)
	return v
}

func (d *Decoder) U32() uint32 {
	var v uint32
	d.fixedInt(4, &v)
	return v
}

func (d *Decoder) U64() uint64 {
	var v uint64
	d.fixedInt(8, &v)
	return v
}

func (d *Decoder) Bool() bool {
	switch v := d.U8(); v {
	case 0:
		return false
	case 1:
		return true
	default:
		d.Fail(errors.Wrapf(errors.ErrInput, "invalid bool value %d", v))
		return false
	}
}

// ULEB128 reads an unsigned LEB128 encoded 32 bit value. Non canonical
// encodings are rejected.
func (d *Decoder) ULEB128() uint32 {
	if d.err != nil {
		return 0
	}
	v, n, err := gobcs.ULEB128Decode[uint64](bytes.NewReader(d.data[d.off:]))
	if err != nil {
		// Running out of data is an input error, anything else overflows.
		end := d.off + n
		truncated := end == len(d.data) && (n == 0 || d.data[end-1]&0x80 != 0)
		if truncated && n < gobcs.MaxUleb128Length {
			d.Fail(errors.Wrapf(errors.ErrInput, "uleb128 at offset %d: %s", d.off, err))
		} else {
			d.Fail(errors.Wrapf(errors.ErrOverflow, "uleb128 at offset %d: %s", d.off, err))
		}
		return 0
	}
	if n > 1 && d.data[d.off+n-1] == 0 {
		d.Fail(errors.Wrap(errors.ErrInput, "non canonical uleb128 encoding"))
		return 0
	}
	if v > 1<<32-1 {
		d.Fail(errors.Wrap(errors.ErrOverflow, "uleb128 value exceeds u32"))
		return 0
	}
	d.off += n
	return uint32(v)
}

// Len reads a sequence length. Lengths that cannot be satisfied by the
// remaining data are rejected early.
func (d *Decoder) Len() int {
	n := d.ULEB128()
	if d.err != nil {
		return 0
	}
	if n > MaxSequenceLength {
		d.Fail(errors.Wrapf(errors.ErrOverflow, "sequence length %d", n))
		return 0
	}
	if int(n) > d.Remaining() {
		d.Fail(errors.Wrapf(errors.ErrInput, "sequence length %d exceeds remaining %d bytes", n, d.Remaining()))
		return 0
	}
	return int(n)
}

// Variant reads an enum variant tag.
func (d *Decoder) Variant() uint32 {
	return d.ULEB128()
}

// Bytes reads a length prefixed byte vector. Returned slice is a copy.
func (d *Decoder) Bytes() []byte {
	n := d.Len()
	return d.Fixed(n)
}

// Fixed reads a fixed size byte array. Returned slice is a copy.
func (d *Decoder) Fixed(n int) []byte {
	b := d.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}
