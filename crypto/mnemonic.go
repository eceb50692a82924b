package crypto

import (
	"strconv"
	"strings"

	"github.com/artfi/suiops/errors"
	"github.com/stellar/go/exp/crypto/derivation"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"
)

// DerivationPath returns the default derivation path of the first account
// for given scheme.
func DerivationPath(scheme Scheme) (string, error) {
	switch scheme {
	case Ed25519:
		return "m/44'/784'/0'/0'/0'", nil
	case Secp256k1:
		return "m/54'/784'/0'/0/0", nil
	case Secp256r1:
		return "m/74'/784'/0'/0/0", nil
	default:
		return "", scheme.Validate()
	}
}

// KeyFromMnemonic derives a private key of given scheme from a BIP-39
// mnemonic. An empty path selects the scheme's default path.
//
// Ed25519 keys are derived with SLIP-10, which allows only hardened path
// segments. ECDSA keys are derived with BIP-32.
func KeyFromMnemonic(scheme Scheme, mnemonic, path string) (PrivateKey, error) {
	if err := scheme.Validate(); err != nil {
		return nil, err
	}
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid mnemonic: %s", err)
	}
	defer zero(seed)

	if path == "" {
		path, _ = DerivationPath(scheme)
	}

	var secret []byte
	switch scheme {
	case Ed25519:
		key, err := derivation.DeriveForPath(path, seed)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "derive path %q: %s", path, err)
		}
		secret = key.Key
	case Secp256k1, Secp256r1:
		secret, err = deriveBIP32(seed, path)
		if err != nil {
			return nil, err
		}
	}
	defer zero(secret)
	return NewPrivateKey(scheme, secret)
}

func deriveBIP32(seed []byte, path string) ([]byte, error) {
	segments := strings.Split(path, "/")
	if len(segments) < 2 || segments[0] != "m" {
		return nil, errors.Wrapf(errors.ErrInput, "invalid derivation path %q", path)
	}
	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "master key: %s", err)
	}
	for _, seg := range segments[1:] {
		var offset uint32
		if strings.HasSuffix(seg, "'") {
			offset = bip32.FirstHardenedChild
			seg = strings.TrimSuffix(seg, "'")
		}
		n, err := strconv.ParseUint(seg, 10, 31)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "invalid derivation path segment %q", seg)
		}
		if key, err = key.NewChildKey(uint32(n) + offset); err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "derive child %s: %s", seg, err)
		}
	}
	// Serialized keys may have lost leading zeros.
	secret := make([]byte, SecretSize)
	k := key.Key
	if len(k) > SecretSize {
		k = k[len(k)-SecretSize:]
	}
	copy(secret[SecretSize-len(k):], k)
	return secret, nil
}
