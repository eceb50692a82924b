package suitest

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/artfi/suiops"
	"github.com/artfi/suiops/crypto"
)

// NewKey returns a new random private key of given scheme.
func NewKey(t testing.TB, scheme crypto.Scheme) crypto.PrivateKey {
	t.Helper()
	key, err := crypto.GenerateKey(scheme)
	if err != nil {
		t.Fatalf("cannot generate %s key: %s", scheme, err)
	}
	return key
}

// SeededKey returns a private key of given scheme that is always the same
// for the same seed.
func SeededKey(t testing.TB, scheme crypto.Scheme, seed string) crypto.PrivateKey {
	t.Helper()
	secret := sha256.Sum256([]byte(scheme.String() + "/" + seed))
	key, err := crypto.NewPrivateKey(scheme, secret[:])
	if err != nil {
		t.Fatalf("cannot create %s key from seed %q: %s", scheme, seed, err)
	}
	return key
}

// NewAddress returns a random address.
func NewAddress(t testing.TB) suiops.Address {
	t.Helper()
	return NewKey(t, crypto.Ed25519).PublicKey().Address()
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation.
func ParseAddress(t testing.TB, encodedAddress string) suiops.Address {
	t.Helper()

	addr, err := suiops.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// Credential returns a hex encoded credential of given key.
func Credential(t testing.TB, key crypto.PrivateKey) *crypto.Credential {
	t.Helper()
	cred, err := crypto.NewCredential(key.PublicKey().Scheme(), crypto.FormatHex, hex.EncodeToString(key.Secret()), "")
	if err != nil {
		t.Fatalf("cannot create credential: %s", err)
	}
	return cred
}
