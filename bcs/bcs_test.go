package bcs

import (
	"bytes"
	"testing"

	"github.com/artfi/suiops/errors"
	"github.com/artfi/suiops/suitest/assert"
)

func TestULEB128(t *testing.T) {
	cases := map[string]struct {
		value uint32
		want  []byte
	}{
		"zero":          {value: 0, want: []byte{0x00}},
		"single byte":   {value: 127, want: []byte{0x7f}},
		"two bytes":     {value: 128, want: []byte{0x80, 0x01}},
		"three bytes":   {value: 16384, want: []byte{0x80, 0x80, 0x01}},
		"max u32 value": {value: 1<<32 - 1, want: []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var e Encoder
			e.ULEB128(tc.value)
			if !bytes.Equal(tc.want, e.Data()) {
				t.Fatalf("want %x, got %x", tc.want, e.Data())
			}
			d := NewDecoder(e.Data())
			assert.Equal(t, tc.value, d.ULEB128())
			assert.Nil(t, d.Finish())
		})
	}
}

func TestDecoderErrors(t *testing.T) {
	cases := map[string]struct {
		data    []byte
		read    func(*Decoder)
		wantErr *errors.Error
	}{
		"non canonical uleb128": {
			data:    []byte{0x80, 0x00},
			read:    func(d *Decoder) { d.ULEB128() },
			wantErr: errors.ErrInput,
		},
		"uleb128 overflow": {
			data:    []byte{0xff, 0xff, 0xff, 0xff, 0x1f},
			read:    func(d *Decoder) { d.ULEB128() },
			wantErr: errors.ErrOverflow,
		},
		"uleb128 beyond u64": {
			data:    []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01},
			read:    func(d *Decoder) { d.ULEB128() },
			wantErr: errors.ErrOverflow,
		},
		"truncated uleb128": {
			data:    []byte{0x80},
			read:    func(d *Decoder) { d.ULEB128() },
			wantErr: errors.ErrInput,
		},
		"truncated u64": {
			data:    []byte{1, 2, 3},
			read:    func(d *Decoder) { d.U64() },
			wantErr: errors.ErrInput,
		},
		"invalid bool": {
			data:    []byte{2},
			read:    func(d *Decoder) { d.Bool() },
			wantErr: errors.ErrInput,
		},
		"vector longer than data": {
			data:    []byte{5, 1, 2},
			read:    func(d *Decoder) { d.Bytes() },
			wantErr: errors.ErrInput,
		},
		"trailing bytes": {
			data:    []byte{1, 2},
			read:    func(d *Decoder) { d.U8() },
			wantErr: errors.ErrInput,
		},
		"errors are sticky": {
			data: []byte{2, 1},
			read: func(d *Decoder) {
				d.Bool()
				d.U8()
			},
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			d := NewDecoder(tc.data)
			tc.read(d)
			if err := d.Finish(); !tc.wantErr.Is(err) {
				t.Fatalf("want %q error, got %+v", tc.wantErr, err)
			}
		})
	}
}

type sample struct {
	flag  bool
	num   uint16
	big   uint64
	blob  []byte
	fixed []byte
}

func (s *sample) MarshalBCS(e *Encoder) {
	e.Bool(s.flag)
	e.U16(s.num)
	e.U64(s.big)
	e.Bytes(s.blob)
	e.Fixed(s.fixed)
}

func (s *sample) UnmarshalBCS(d *Decoder) {
	s.flag = d.Bool()
	s.num = d.U16()
	s.big = d.U64()
	s.blob = d.Bytes()
	s.fixed = d.Fixed(3)
}

func TestStructLayout(t *testing.T) {
	in := &sample{flag: true, num: 0x0102, big: 7, blob: []byte("ab"), fixed: []byte{9, 8, 7}}
	raw := Marshal(in)
	want := []byte{
		0x01,
		0x02, 0x01,
		0x07, 0, 0, 0, 0, 0, 0, 0,
		0x02, 'a', 'b',
		9, 8, 7,
	}
	if !bytes.Equal(want, raw) {
		t.Fatalf("want %x, got %x", want, raw)
	}

	var out sample
	assert.Nil(t, Unmarshal(raw, &out))
	assert.Equal(t, in, &out)
}
