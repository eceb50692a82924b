package coin

import (
	"encoding/json"
	"testing"

	"github.com/artfi/suiops/errors"
	"github.com/artfi/suiops/suitest/assert"
)

func TestFromMistCost(t *testing.T) {
	cases := map[string]struct {
		raw     string
		wantSUI string
		wantErr *errors.Error
	}{
		"negative fee": {
			raw:     "-5000000000",
			wantSUI: "5",
		},
		"fractional": {
			raw:     "-1997880",
			wantSUI: "0.00199788",
		},
		"positive rebate": {
			raw:     "988000",
			wantSUI: "0.000988",
		},
		"zero": {
			raw:     "0",
			wantSUI: "0",
		},
		"beyond int64": {
			raw:     "-18446744073709551616",
			wantSUI: "18446744073.709551616",
		},
		"empty": {
			raw:     "",
			wantErr: errors.ErrEmpty,
		},
		"not a number": {
			raw:     "12a",
			wantErr: errors.ErrInput,
		},
		"fraction of mist": {
			raw:     "1.5",
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			c, err := FromMist(tc.raw)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.wantSUI, c.Abs().SUI().String())
			}
		})
	}
}

func TestCoinArithmetic(t *testing.T) {
	a := NewCoin(1500000000)
	b := NewCoin(-500000000)

	assert.Equal(t, "1 SUI", a.Add(b).String())
	assert.Equal(t, "0.5 SUI", b.Abs().String())
	if !a.Add(NewCoin(-1500000000)).IsZero() {
		t.Fatal("coin plus its opposite is not zero")
	}
	if b.IsZero() {
		t.Fatal("non zero coin reported as zero")
	}
}

func TestCoinUint64(t *testing.T) {
	top, err := FromMist("18446744073709551615")
	assert.Nil(t, err)
	v, err := top.Uint64()
	assert.Nil(t, err)
	assert.Equal(t, uint64(18446744073709551615), v)

	_, err = NewCoin(-1).Uint64()
	assert.IsErr(t, errors.ErrInput, err)

	big, err := FromMist("18446744073709551616")
	assert.Nil(t, err)
	_, err = big.Uint64()
	assert.IsErr(t, errors.ErrOverflow, err)
}

func TestParseHumanFormat(t *testing.T) {
	cases := map[string]struct {
		human    string
		wantMist string
		wantErr  *errors.Error
	}{
		"whole sui":        {human: "5 SUI", wantMist: "5000000000"},
		"fractional sui":   {human: "0.05 SUI", wantMist: "50000000"},
		"mist":             {human: "1000 MIST", wantMist: "1000"},
		"no unit":          {human: "42", wantMist: "42"},
		"negative":         {human: "-1.5 SUI", wantMist: "-1500000000"},
		"too many decimal": {human: "0.0000000001 SUI", wantErr: errors.ErrInput},
		"fraction of mist": {human: "1.5 MIST", wantErr: errors.ErrInput},
		"unknown unit":     {human: "4 ETH", wantErr: errors.ErrInput},
		"garbage":          {human: "SUI", wantErr: errors.ErrInput},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			c, err := ParseHumanFormat(tc.human)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.wantMist, c.Mist().String())
			}
		})
	}
}

func TestCoinJSON(t *testing.T) {
	var c Coin
	assert.Nil(t, json.Unmarshal([]byte(`"0.5 SUI"`), &c))
	assert.Equal(t, "500000000", c.Mist().String())

	assert.Nil(t, json.Unmarshal([]byte(`100000000`), &c))
	assert.Equal(t, "0.1 SUI", c.String())

	raw, err := json.Marshal(c)
	assert.Nil(t, err)
	assert.Equal(t, `"0.1 SUI"`, string(raw))

	assert.IsErr(t, errors.ErrInput, json.Unmarshal([]byte(`{}`), &c))
}

func TestIsSUI(t *testing.T) {
	assert.Equal(t, true, IsSUI("0x2::sui::SUI"))
	assert.Equal(t, true, IsSUI("0x0000000000000000000000000000000000000000000000000000000000000002::sui::SUI"))
	assert.Equal(t, false, IsSUI("0x3::sui::SUI"))
	assert.Equal(t, false, IsSUI("0x2::coin::Coin"))
}
