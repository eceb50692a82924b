package tx

import (
	"encoding/hex"
	"testing"

	"github.com/artfi/suiops/bcs"
	"github.com/artfi/suiops/errors"
	"github.com/artfi/suiops/suitest/assert"
)

func TestParseTypeTag(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    string
		wantErr *errors.Error
	}{
		"primitive":         {raw: "u64", want: "u64"},
		"vector":            {raw: "vector<u8>", want: "vector<u8>"},
		"nested vector":     {raw: "vector<vector<address>>", want: "vector<vector<address>>"},
		"struct":            {raw: "0x2::sui::SUI", want: "0x2::sui::SUI"},
		"long address":      {raw: "0x0000000000000000000000000000000000000000000000000000000000000002::sui::SUI", want: "0x2::sui::SUI"},
		"generic":           {raw: "0x2::coin::Coin<0x2::sui::SUI>", want: "0x2::coin::Coin<0x2::sui::SUI>"},
		"many params":       {raw: "0xab::pool::Pool<u8, 0x2::sui::SUI>", want: "0xab::pool::Pool<u8, 0x2::sui::SUI>"},
		"missing name":      {raw: "0x2::sui", wantErr: errors.ErrInput},
		"unterminated":      {raw: "vector<u8", wantErr: errors.ErrInput},
		"trailing":          {raw: "u8>", wantErr: errors.ErrInput},
		"vector two params": {raw: "vector<u8,u8>", wantErr: errors.ErrInput},
		"bad address":       {raw: "0xzz::a::B", wantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseTypeTag(tc.raw)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got.String())
			}
		})
	}
}

func TestTypeTagSerialization(t *testing.T) {
	tag := MustParseTypeTag("0x2::sui::SUI")
	// struct variant, address, "sui", "SUI", no type params
	const want = "07" + "0000000000000000000000000000000000000000000000000000000000000002" + "03737569" + "03535549" + "00"
	assert.Equal(t, want, hex.EncodeToString(bcs.Marshal(tag)))

	var decoded TypeTag
	assert.Nil(t, bcs.Unmarshal(bcs.Marshal(tag), &decoded))
	assert.Equal(t, "0x2::sui::SUI", decoded.String())

	assert.Equal(t, "0601", hex.EncodeToString(bcs.Marshal(MustParseTypeTag("vector<u8>"))))
	assert.IsErr(t, errors.ErrInput, bcs.Unmarshal([]byte{0x0b}, &decoded))
}
