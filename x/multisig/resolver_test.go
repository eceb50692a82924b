package multisig

import (
	"testing"

	"github.com/artfi/suiops/errors"
	"github.com/artfi/suiops/suitest/assert"
)

func TestResolve(t *testing.T) {
	valid := Descriptor{
		Signers: []SignerDescriptor{
			{PublicKey: zeroSeedKey, SchemeType: "ed25519", Weight: 1},
			{PublicKey: rfcKey, SchemeType: "ed25519", Weight: 2},
		},
		Threshold: 1,
	}

	pk, err := Resolve(valid)
	assert.Nil(t, err)
	assert.Equal(t, "0xfb1eade86eb38bc92e8373c4c6f062754fb846a4504cea90c6706b47ead67067", pk.Address().String())

	again, err := Resolve(pk.Descriptor())
	assert.Nil(t, err)
	assert.Equal(t, pk.Address(), again.Address())

	// A serialized identity takes precedence over the configuration.
	fromHex, err := ResolveSerialized(pk.Hex(), Descriptor{})
	assert.Nil(t, err)
	assert.Equal(t, pk.Address(), fromHex.Address())
	fromConfig, err := ResolveSerialized("", valid)
	assert.Nil(t, err)
	assert.Equal(t, pk.Address(), fromConfig.Address())
}

func TestResolveErrors(t *testing.T) {
	cases := map[string]struct {
		desc       Descriptor
		wantFields []string
	}{
		"no signers": {
			desc:       Descriptor{Threshold: 1},
			wantFields: []string{"Signers"},
		},
		"signer without public key": {
			desc: Descriptor{
				Signers:   []SignerDescriptor{{SchemeType: "ed25519", Weight: 1}},
				Threshold: 1,
			},
			wantFields: []string{"Signers.0.PublicKey"},
		},
		"signer without scheme": {
			desc: Descriptor{
				Signers:   []SignerDescriptor{{PublicKey: zeroSeedKey, Weight: 1}},
				Threshold: 1,
			},
			wantFields: []string{"Signers.0.SchemeType"},
		},
		"unsupported scheme and bad weight and no threshold": {
			desc: Descriptor{
				Signers: []SignerDescriptor{
					{PublicKey: zeroSeedKey, SchemeType: "bls", Weight: 1},
					{PublicKey: rfcKey, SchemeType: "ed25519", Weight: 256},
				},
			},
			wantFields: []string{"Signers.0.SchemeType", "Signers.1.Weight", "Threshold"},
		},
		"key of wrong size for scheme": {
			desc: Descriptor{
				Signers:   []SignerDescriptor{{PublicKey: zeroSeedKey, SchemeType: "secp256k1", Weight: 1}},
				Threshold: 1,
			},
			wantFields: []string{"Signers.0.PublicKey"},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := Resolve(tc.desc)
			assert.IsErr(t, errors.ErrConfiguration, err)
			for _, f := range tc.wantFields {
				assert.FieldError(t, err, f, errors.ErrConfiguration)
			}
			assert.IsErr(t, errors.ErrConfiguration, tc.desc.Validate())
		})
	}

	unreachable := Descriptor{
		Signers:   []SignerDescriptor{{PublicKey: zeroSeedKey, SchemeType: "ed25519", Weight: 1}},
		Threshold: 2,
	}
	_, err := Resolve(unreachable)
	assert.IsErr(t, errors.ErrConfiguration, err)
}
