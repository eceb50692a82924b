package crypto

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"io"
	"strings"

	"github.com/artfi/suiops"
	"github.com/artfi/suiops/errors"
	"golang.org/x/crypto/blake2b"
)

// PublicKey is implemented by the public key of every supported scheme. The
// interface is sealed, there is exactly one implementation per Scheme.
type PublicKey interface {
	Scheme() Scheme
	// Bytes returns the raw key, without the scheme flag.
	Bytes() []byte
	// Verify returns true if sig is a valid 64 byte signature of the
	// given message digest.
	Verify(msg, sig []byte) bool
	Address() suiops.Address
	Equals(PublicKey) bool
	String() string

	sealed()
}

// PrivateKey is implemented by the private key of every supported scheme.
type PrivateKey interface {
	Signer
	// Secret returns a copy of the 32 byte secret.
	Secret() []byte
	// Destroy overwrites the secret material. A destroyed key must not
	// be used anymore.
	Destroy()

	sealed()
}

// Signer produces signatures of message digests. See SigningDigest.
type Signer interface {
	Sign(msg []byte) ([]byte, error)
	PublicKey() PublicKey
}

// NewPublicKey returns the public key of the given scheme, decoded from its
// raw representation.
func NewPublicKey(scheme Scheme, raw []byte) (PublicKey, error) {
	if len(raw) != scheme.PublicKeySize() && scheme.Validate() == nil {
		return nil, errors.Wrapf(errors.ErrInput, "%s public key must be %d bytes, got %d",
			scheme, scheme.PublicKeySize(), len(raw))
	}
	switch scheme {
	case Ed25519:
		return newEd25519PublicKey(raw)
	case Secp256k1:
		return newSecp256k1PublicKey(raw)
	case Secp256r1:
		return newSecp256r1PublicKey(raw)
	default:
		return nil, scheme.Validate()
	}
}

// ParsePublicKey decodes a hex encoded raw public key of given scheme.
func ParsePublicKey(scheme Scheme, raw string) (PublicKey, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(raw), "0x"))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "public key is not hex encoded: %s", err)
	}
	return NewPublicKey(scheme, b)
}

// DecodePublicKey decodes the flag prefixed public key form, as used by
// serialized signatures.
func DecodePublicKey(flagged []byte) (PublicKey, error) {
	if len(flagged) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "public key")
	}
	scheme, err := SchemeFromFlag(flagged[0])
	if err != nil {
		return nil, err
	}
	return NewPublicKey(scheme, flagged[1:])
}

// NewPrivateKey returns a private key of given scheme created from a 32 byte
// secret. The secret is copied.
func NewPrivateKey(scheme Scheme, secret []byte) (PrivateKey, error) {
	if len(secret) != SecretSize {
		return nil, errors.Wrapf(errors.ErrInput, "private key must be %d bytes, got %d", SecretSize, len(secret))
	}
	switch scheme {
	case Ed25519:
		return newEd25519PrivateKey(secret), nil
	case Secp256k1:
		return newSecp256k1PrivateKey(secret)
	case Secp256r1:
		return newSecp256r1PrivateKey(secret)
	default:
		return nil, scheme.Validate()
	}
}

// GenerateKey returns a new random private key of given scheme.
func GenerateKey(scheme Scheme) (PrivateKey, error) {
	return GenerateKeyFrom(scheme, rand.Reader)
}

// GenerateKeyFrom returns a new private key of given scheme, reading the
// secret from r. Use a deterministic reader only in tests.
func GenerateKeyFrom(scheme Scheme, r io.Reader) (PrivateKey, error) {
	if err := scheme.Validate(); err != nil {
		return nil, err
	}
	secret := make([]byte, SecretSize)
	defer zero(secret)
	for {
		if _, err := io.ReadFull(r, secret); err != nil {
			return nil, errors.Wrap(errors.ErrInput, "cannot read randomness")
		}
		key, err := NewPrivateKey(scheme, secret)
		if err == nil {
			return key, nil
		}
		// An ECDSA secret outside of the curve order is very unlikely
		// and is simply drawn again.
		if !errors.ErrInput.Is(err) {
			return nil, err
		}
	}
}

// SecretSize is the size of the private key secret of every scheme.
const SecretSize = 32

// AddressOf returns the address of a public key: the blake2b-256 hash of
// the scheme flag followed by the raw key.
func AddressOf(scheme Scheme, raw []byte) suiops.Address {
	h, _ := blake2b.New256(nil)
	h.Write([]byte{scheme.Flag()})
	h.Write(raw)
	var a suiops.Address
	copy(a[:], h.Sum(nil))
	return a
}

// FlaggedBytes returns the scheme flag followed by the raw public key.
func FlaggedBytes(pub PublicKey) []byte {
	return append([]byte{pub.Scheme().Flag()}, pub.Bytes()...)
}

// keyBase is embedded by all public key implementations and provides the
// scheme independent methods.
type keyBase struct {
	scheme Scheme
	raw    []byte
}

func (k keyBase) Scheme() Scheme {
	return k.scheme
}

func (k keyBase) Bytes() []byte {
	return append([]byte(nil), k.raw...)
}

func (k keyBase) Address() suiops.Address {
	return AddressOf(k.scheme, k.raw)
}

func (k keyBase) Equals(other PublicKey) bool {
	if other == nil {
		return false
	}
	return k.scheme == other.Scheme() && bytes.Equal(k.raw, other.Bytes())
}

// String returns the base64 encoded, flag prefixed key.
func (k keyBase) String() string {
	return base64.StdEncoding.EncodeToString(append([]byte{k.scheme.Flag()}, k.raw...))
}

func (keyBase) sealed() {}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
