package suiops

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/artfi/suiops/errors"
)

// AddressLength is the length of all addresses and object identifiers.
const AddressLength = 32

// Address is a 32 byte account identifier. It is derived from a public key
// (or a multisig public key) by hashing it together with the scheme flag.
type Address [AddressLength]byte

// ObjectID identifies an on-chain object. It shares the representation of
// an address.
type ObjectID = Address

// ZeroAddress is the address with all bytes set to zero.
var ZeroAddress Address

// ParseAddress decodes a hex encoded address. The 0x prefix is optional and
// short forms (for example 0x2) are left padded with zeros.
func ParseAddress(raw string) (Address, error) {
	var a Address
	s := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(raw), "0x"), "0X")
	if len(s) == 0 {
		return a, errors.Wrap(errors.ErrEmpty, "address")
	}
	if len(s) > 2*AddressLength {
		return a, errors.Wrapf(errors.ErrInput, "address %q is longer than %d bytes", raw, AddressLength)
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return a, errors.Wrapf(errors.ErrInput, "address %q: %s", raw, err)
	}
	copy(a[AddressLength-len(b):], b)
	return a, nil
}

// MustParseAddress is like ParseAddress but panics on invalid input. Use
// only for constants.
func MustParseAddress(raw string) Address {
	a, err := ParseAddress(raw)
	if err != nil {
		panic(err)
	}
	return a
}

// String returns the canonical, 0x prefixed, lowercase hex representation.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Equals checks if two addresses are the same
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a[:], b[:])
}

// IsZero returns true if all bytes of the address are zero.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// Set implements flag.Value interface.
func (a *Address) Set(raw string) error {
	val, err := ParseAddress(raw)
	if err != nil {
		return err
	}
	*a = val
	return nil
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	return a.Set(enc)
}
