package suiops_test

import (
	"encoding/json"
	"testing"

	"github.com/artfi/suiops"
	"github.com/artfi/suiops/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("short addresses are left padded", t, func() {
		addr, err := suiops.ParseAddress("0x2")
		So(err, ShouldBeNil)
		So(addr.String(), ShouldEqual, "0x0000000000000000000000000000000000000000000000000000000000000002")
	})

	Convey("prefix is optional", t, func() {
		a, err := suiops.ParseAddress("0xabc")
		So(err, ShouldBeNil)
		b, err := suiops.ParseAddress("ABC")
		So(err, ShouldBeNil)
		So(a.Equals(b), ShouldBeTrue)
	})
}

func TestParseAddress(t *testing.T) {
	cases := map[string]struct {
		raw     string
		wantErr *errors.Error
	}{
		"full length": {
			raw: "0x7a1c5bd4a5d4c1d1f1cbf5ea8c9a3c1e7ad8a7e5e1d2c3b4a5968778695a4b3c",
		},
		"empty": {
			raw:     "0x",
			wantErr: errors.ErrEmpty,
		},
		"too long": {
			raw:     "0x007a1c5bd4a5d4c1d1f1cbf5ea8c9a3c1e7ad8a7e5e1d2c3b4a5968778695a4b3c",
			wantErr: errors.ErrInput,
		},
		"not hex": {
			raw:     "0xzz",
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := suiops.ParseAddress(tc.raw)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %v error, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestAddressJSON(t *testing.T) {
	addr := suiops.MustParseAddress("0x5")
	raw, err := json.Marshal(map[string]suiops.Address{"owner": addr})
	require.NoError(t, err)
	assert.Equal(t, `{"owner":"0x0000000000000000000000000000000000000000000000000000000000000005"}`, string(raw))

	var got map[string]suiops.Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got["owner"])
}

func TestDigest(t *testing.T) {
	var zero suiops.Digest
	// 32 zero bytes are encoded as 32 "1" characters in base58.
	assert.Equal(t, "11111111111111111111111111111111", zero.String())

	got, err := suiops.ParseDigest(zero.String())
	require.NoError(t, err)
	assert.Equal(t, zero, got)

	_, err = suiops.ParseDigest("111")
	assert.True(t, errors.ErrInput.Is(err))

	_, err = suiops.ParseDigest("0OIl")
	assert.True(t, errors.ErrInput.Is(err))
}
