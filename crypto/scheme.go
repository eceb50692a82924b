package crypto

import (
	"strings"

	"github.com/artfi/suiops/errors"
)

// Scheme is the signature scheme of a key. Its numeric value is the flag
// byte used when deriving addresses and serializing signatures.
type Scheme uint8

const (
	Ed25519   Scheme = 0x00
	Secp256k1 Scheme = 0x01
	Secp256r1 Scheme = 0x02
)

// MultiSigFlag is the flag byte of a multisig public key and signature. It
// is not a Scheme, as no single key is of that kind.
const MultiSigFlag byte = 0x03

// Schemes lists all supported schemes.
var Schemes = []Scheme{Ed25519, Secp256k1, Secp256r1}

// ParseScheme returns the scheme for its configuration name.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ed25519":
		return Ed25519, nil
	case "secp256k1":
		return Secp256k1, nil
	case "secp256r1":
		return Secp256r1, nil
	case "":
		return 0, errors.Wrap(errors.ErrConfiguration, "signature scheme not set")
	default:
		return 0, errors.Wrapf(errors.ErrConfiguration, "unsupported signature scheme %q", name)
	}
}

// SchemeFromFlag returns the scheme for a flag byte.
func SchemeFromFlag(flag byte) (Scheme, error) {
	s := Scheme(flag)
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return s, nil
}

func (s Scheme) String() string {
	switch s {
	case Ed25519:
		return "ed25519"
	case Secp256k1:
		return "secp256k1"
	case Secp256r1:
		return "secp256r1"
	default:
		return "unknown"
	}
}

// Flag returns the byte prefix of this scheme.
func (s Scheme) Flag() byte {
	return byte(s)
}

// PublicKeySize returns the length of a serialized public key. ECDSA keys
// are always compressed.
func (s Scheme) PublicKeySize() int {
	switch s {
	case Ed25519:
		return 32
	case Secp256k1, Secp256r1:
		return 33
	default:
		return 0
	}
}

func (s Scheme) Validate() error {
	switch s {
	case Ed25519, Secp256k1, Secp256r1:
		return nil
	default:
		return errors.Wrapf(errors.ErrConfiguration, "unknown signature scheme flag 0x%02x", byte(s))
	}
}

// Set implements flag.Value interface.
func (s *Scheme) Set(raw string) error {
	val, err := ParseScheme(raw)
	if err != nil {
		return err
	}
	*s = val
	return nil
}

// SignatureSize is the size of a signature of any supported scheme.
const SignatureSize = 64
