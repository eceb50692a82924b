package tx

import (
	"strings"

	"github.com/artfi/suiops"
	"github.com/artfi/suiops/bcs"
	"github.com/artfi/suiops/errors"
)

// TypeTagKind is the kind of a Move type.
type TypeTagKind uint8

const (
	TypeBool    TypeTagKind = 0
	TypeU8      TypeTagKind = 1
	TypeU64     TypeTagKind = 2
	TypeU128    TypeTagKind = 3
	TypeAddress TypeTagKind = 4
	TypeSigner  TypeTagKind = 5
	TypeVector  TypeTagKind = 6
	TypeStruct  TypeTagKind = 7
	TypeU16     TypeTagKind = 8
	TypeU32     TypeTagKind = 9
	TypeU256    TypeTagKind = 10
)

var primitiveTypes = map[string]TypeTagKind{
	"bool":    TypeBool,
	"u8":      TypeU8,
	"u16":     TypeU16,
	"u32":     TypeU32,
	"u64":     TypeU64,
	"u128":    TypeU128,
	"u256":    TypeU256,
	"address": TypeAddress,
	"signer":  TypeSigner,
}

// StructTag is a fully qualified Move struct type.
type StructTag struct {
	Address    suiops.Address
	Module     string
	Name       string
	TypeParams []TypeTag
}

// TypeTag is a Move type. Elem is set for vectors, Struct for structs.
type TypeTag struct {
	Kind   TypeTagKind
	Elem   *TypeTag
	Struct *StructTag
}

// ParseTypeTag parses a Move type, for example
//   vector<u8>
//   0x2::coin::Coin<0x2::sui::SUI>
func ParseTypeTag(raw string) (TypeTag, error) {
	p := typeParser{s: strings.TrimSpace(raw)}
	t, err := p.parse()
	if err != nil {
		return TypeTag{}, errors.Wrapf(err, "type %q", raw)
	}
	if p.s != "" {
		return TypeTag{}, errors.Wrapf(errors.ErrInput, "type %q: unexpected %q", raw, p.s)
	}
	return t, nil
}

// MustParseTypeTag is like ParseTypeTag but panics on invalid input. Use
// only for constants.
func MustParseTypeTag(raw string) TypeTag {
	t, err := ParseTypeTag(raw)
	if err != nil {
		panic(err)
	}
	return t
}

type typeParser struct {
	s string
}

func (p *typeParser) parse() (TypeTag, error) {
	p.s = strings.TrimLeft(p.s, " ")
	end := strings.IndexAny(p.s, "<>, ")
	if end < 0 {
		end = len(p.s)
	}
	word := p.s[:end]
	p.s = p.s[end:]

	if kind, ok := primitiveTypes[word]; ok {
		return TypeTag{Kind: kind}, nil
	}
	if word == "vector" {
		params, err := p.params()
		if err != nil {
			return TypeTag{}, err
		}
		if len(params) != 1 {
			return TypeTag{}, errors.Wrap(errors.ErrInput, "vector requires exactly one type parameter")
		}
		return TypeTag{Kind: TypeVector, Elem: &params[0]}, nil
	}

	parts := strings.Split(word, "::")
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return TypeTag{}, errors.Wrapf(errors.ErrInput, "invalid struct type %q", word)
	}
	addr, err := suiops.ParseAddress(parts[0])
	if err != nil {
		return TypeTag{}, err
	}
	st := StructTag{Address: addr, Module: parts[1], Name: parts[2]}
	if strings.HasPrefix(p.s, "<") {
		if st.TypeParams, err = p.params(); err != nil {
			return TypeTag{}, err
		}
	}
	return TypeTag{Kind: TypeStruct, Struct: &st}, nil
}

func (p *typeParser) params() ([]TypeTag, error) {
	if !strings.HasPrefix(p.s, "<") {
		return nil, errors.Wrap(errors.ErrInput, "missing type parameters")
	}
	p.s = p.s[1:]
	var params []TypeTag
	for {
		t, err := p.parse()
		if err != nil {
			return nil, err
		}
		params = append(params, t)
		p.s = strings.TrimLeft(p.s, " ")
		switch {
		case strings.HasPrefix(p.s, ","):
			p.s = p.s[1:]
		case strings.HasPrefix(p.s, ">"):
			p.s = p.s[1:]
			return params, nil
		default:
			return nil, errors.Wrap(errors.ErrInput, "unterminated type parameters")
		}
	}
}

// String returns the canonical representation with short addresses.
func (t TypeTag) String() string {
	switch t.Kind {
	case TypeVector:
		return "vector<" + t.Elem.String() + ">"
	case TypeStruct:
		return t.Struct.String()
	}
	for name, kind := range primitiveTypes {
		if kind == t.Kind {
			return name
		}
	}
	return "unknown"
}

func (s StructTag) String() string {
	var b strings.Builder
	b.WriteString("0x" + strings.TrimLeft(s.Address.String()[2:], "0"))
	if s.Address.IsZero() {
		b.WriteString("0")
	}
	b.WriteString("::" + s.Module + "::" + s.Name)
	if len(s.TypeParams) > 0 {
		b.WriteString("<")
		for i, p := range s.TypeParams {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.String())
		}
		b.WriteString(">")
	}
	return b.String()
}

func (t TypeTag) MarshalBCS(e *bcs.Encoder) {
	e.Variant(uint32(t.Kind))
	switch t.Kind {
	case TypeVector:
		t.Elem.MarshalBCS(e)
	case TypeStruct:
		e.Fixed(t.Struct.Address[:])
		e.Bytes([]byte(t.Struct.Module))
		e.Bytes([]byte(t.Struct.Name))
		e.Len(len(t.Struct.TypeParams))
		for _, p := range t.Struct.TypeParams {
			p.MarshalBCS(e)
		}
	}
}

func (t *TypeTag) UnmarshalBCS(d *bcs.Decoder) {
	tag := d.Variant()
	if d.Err() != nil {
		return
	}
	if tag > uint32(TypeU256) {
		d.Fail(errors.Wrapf(errors.ErrInput, "unknown type tag variant %d", tag))
		return
	}
	t.Kind = TypeTagKind(tag)
	switch t.Kind {
	case TypeVector:
		t.Elem = new(TypeTag)
		t.Elem.UnmarshalBCS(d)
	case TypeStruct:
		var s StructTag
		copy(s.Address[:], d.Fixed(suiops.AddressLength))
		s.Module = string(d.Bytes())
		s.Name = string(d.Bytes())
		n := d.Len()
		for i := 0; i < n && d.Err() == nil; i++ {
			var p TypeTag
			p.UnmarshalBCS(d)
			s.TypeParams = append(s.TypeParams, p)
		}
		t.Struct = &s
	}
}
