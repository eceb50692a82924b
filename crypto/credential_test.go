package crypto

import (
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/artfi/suiops/errors"
	"github.com/artfi/suiops/suitest/assert"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestCredentialFormats(t *testing.T) {
	cases := map[string]struct {
		scheme   Scheme
		format   KeyFormat
		material string
		path     string
		want     string
		wantErr  *errors.Error
	}{
		"bech32": {
			scheme:   Ed25519,
			format:   FormatBech32,
			material: "suiprivkey1qzwkrvvaal745c96s390fyhv9nzygjw9d9any6gewqa6cqcu4elkqqfr3zg",
			want:     "0x304af458e90e97c841685b8cbbc59b909f3e2cf150df590ada4c81452c29737d",
		},
		"bech32 scheme mismatch": {
			scheme:   Secp256k1,
			format:   FormatBech32,
			material: "suiprivkey1qzwkrvvaal745c96s390fyhv9nzygjw9d9any6gewqa6cqcu4elkqqfr3zg",
			wantErr:  errors.ErrConfiguration,
		},
		"bech32 broken checksum": {
			scheme:   Ed25519,
			format:   FormatBech32,
			material: "suiprivkey1qzwkrvvaal745c96s390fyhv9nzygjw9d9any6gewqa6cqcu4elkqqfr3zq",
			wantErr:  errors.ErrConfiguration,
		},
		"hex": {
			scheme:   Ed25519,
			format:   FormatHex,
			material: "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60",
			want:     "0x304af458e90e97c841685b8cbbc59b909f3e2cf150df590ada4c81452c29737d",
		},
		"hex secp256k1": {
			scheme:   Secp256k1,
			format:   FormatHex,
			material: "0x0000000000000000000000000000000000000000000000000000000000000001",
			want:     "0xd4c3524e6642b2e54945c02378024f822ac3f80b0870a5f95f06e68a61890a6c",
		},
		"hex invalid": {
			scheme:   Ed25519,
			format:   FormatHex,
			material: "xyz",
			wantErr:  errors.ErrConfiguration,
		},
		"hex too short": {
			scheme:   Ed25519,
			format:   FormatHex,
			material: "abcd",
			wantErr:  errors.ErrConfiguration,
		},
		"base64 keystore": {
			scheme:   Secp256r1,
			format:   FormatBase64,
			material: base64.StdEncoding.EncodeToString(append([]byte{0x02}, fromHexNoT("0000000000000000000000000000000000000000000000000000000000000001")...)),
			want:     "0x173e0d2ec575814f055dee0c3c0ce1357c9f3d58a8019b04dd369ca263f6db55",
		},
		"base64 wrong flag": {
			scheme:   Ed25519,
			format:   FormatBase64,
			material: base64.StdEncoding.EncodeToString(append([]byte{0x02}, make([]byte, 32)...)),
			wantErr:  errors.ErrConfiguration,
		},
		"mnemonic ed25519": {
			scheme:   Ed25519,
			format:   FormatMnemonic,
			material: testMnemonic,
			want:     "0x5e93a736d04fbb25737aa40bee40171ef79f65fae833749e3c089fe7cc2161f1",
		},
		"mnemonic secp256k1": {
			scheme:   Secp256k1,
			format:   FormatMnemonic,
			material: testMnemonic,
			want:     "0xc61a7f1161020a717f852dca2e9bfc1ffe235145406dfbdccc16e6907c1f5403",
		},
		"mnemonic invalid checksum": {
			scheme:   Ed25519,
			format:   FormatMnemonic,
			material: "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon",
			wantErr:  errors.ErrConfiguration,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			cred, err := NewCredential(tc.scheme, tc.format, tc.material, tc.path)
			assert.Nil(t, err)
			err = WithSigner(cred, func(s Signer) error {
				assert.Equal(t, tc.want, s.PublicKey().Address().String())
				return nil
			})
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func fromHexNoT(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func TestNewCredentialValidation(t *testing.T) {
	_, err := NewCredential(Ed25519, FormatHex, "  ", "")
	assert.IsErr(t, errors.ErrConfiguration, err)
	_, err = NewCredential(Ed25519, KeyFormat("pem"), "abc", "")
	assert.IsErr(t, errors.ErrConfiguration, err)
	_, err = NewCredential(Scheme(5), FormatHex, "abc", "")
	assert.IsErr(t, errors.ErrConfiguration, err)
}

func TestWithSignerDestroysKey(t *testing.T) {
	cred, err := NewCredential(Ed25519, FormatHex, "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60", "")
	assert.Nil(t, err)

	var leaked Signer
	assert.Nil(t, WithSigner(cred, func(s Signer) error {
		leaked = s
		_, err := s.Sign([]byte("msg"))
		return err
	}))
	_, err = leaked.Sign([]byte("msg"))
	assert.IsErr(t, errors.ErrState, err)

	cred.Destroy()
	err = WithSigner(cred, func(Signer) error { return nil })
	assert.IsErr(t, errors.ErrConfiguration, err)
}

func TestWithSignerPropagatesError(t *testing.T) {
	cred, err := NewCredential(Ed25519, FormatHex, "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60", "")
	assert.Nil(t, err)
	err = WithSigner(cred, func(Signer) error { return errors.ErrNetwork.New("boom") })
	assert.IsErr(t, errors.ErrNetwork, err)
}

func TestEncodePrivateKey(t *testing.T) {
	key, err := NewPrivateKey(Ed25519, fromHex(t, "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"))
	assert.Nil(t, err)
	enc, err := EncodePrivateKey(key)
	assert.Nil(t, err)
	assert.Equal(t, "suiprivkey1qzwkrvvaal745c96s390fyhv9nzygjw9d9any6gewqa6cqcu4elkqqfr3zg", enc)
}

func TestMnemonicSecret(t *testing.T) {
	key, err := KeyFromMnemonic(Secp256k1, testMnemonic, "")
	assert.Nil(t, err)
	assert.Equal(t, "0eacf0e4e0835692d7cd1a7c2eea8c1cfa10d3000414d31978e7b6ca657d0684", hex.EncodeToString(key.Secret()))

	key, err = KeyFromMnemonic(Secp256r1, testMnemonic, "")
	assert.Nil(t, err)
	assert.Equal(t, "4877178c47f3c7d7fae6e3cd37a85c1a821f64818e31d41f24a65e6f78446ad1", hex.EncodeToString(key.Secret()))

	key, err = KeyFromMnemonic(Ed25519, testMnemonic, "")
	assert.Nil(t, err)
	assert.Equal(t, "8869cb07178bf67e08d7c4abdf45487dbf379c9a452fcec2836854bf4a3d29b0", hex.EncodeToString(key.Secret()))

	_, err = KeyFromMnemonic(Secp256k1, testMnemonic, "m/54'/x")
	assert.IsErr(t, errors.ErrInput, err)
	_, err = KeyFromMnemonic(Secp256k1, testMnemonic, "54'/784'")
	assert.IsErr(t, errors.ErrInput, err)
	// SLIP-10 supports only hardened segments.
	_, err = KeyFromMnemonic(Ed25519, testMnemonic, "m/44'/784'/0'/0/0")
	assert.IsErr(t, errors.ErrInput, err)
}
