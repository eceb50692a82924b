package crypto

import (
	"testing"

	"github.com/artfi/suiops/errors"
	"github.com/artfi/suiops/suitest/assert"
)

func TestParseScheme(t *testing.T) {
	cases := map[string]struct {
		name    string
		want    Scheme
		wantErr *errors.Error
	}{
		"ed25519":        {name: "ed25519", want: Ed25519},
		"secp256k1":      {name: "secp256k1", want: Secp256k1},
		"secp256r1 case": {name: " Secp256R1", want: Secp256r1},
		"empty":          {name: "", wantErr: errors.ErrConfiguration},
		"unknown":        {name: "bls12381", wantErr: errors.ErrConfiguration},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseScheme(tc.name)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %s", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got)
				assert.Equal(t, byte(got), got.Flag())
			}
		})
	}
}

func TestSchemeFromFlag(t *testing.T) {
	for _, s := range Schemes {
		got, err := SchemeFromFlag(s.Flag())
		assert.Nil(t, err)
		assert.Equal(t, s, got)
	}
	_, err := SchemeFromFlag(MultiSigFlag)
	assert.IsErr(t, errors.ErrConfiguration, err)
	assert.Equal(t, 0, Scheme(9).PublicKeySize())
	assert.Equal(t, "unknown", Scheme(9).String())
}
