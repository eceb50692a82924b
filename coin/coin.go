package coin

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/artfi/suiops/errors"
	"github.com/shopspring/decimal"
)

const (
	// SUI is the type tag of the native coin.
	SUI = "0x2::sui::SUI"

	// Decimals is the number of fractional digits of a SUI value. A
	// single MIST is 10^-Decimals SUI.
	Decimals = 9

	// Ticker is the human readable name of the native coin.
	Ticker = "SUI"
)

// IsSUI returns true if given coin type tag refers to the native coin. Both
// the short and the zero padded address forms are accepted.
func IsSUI(coinType string) bool {
	if coinType == SUI {
		return true
	}
	parts := strings.SplitN(coinType, "::", 2)
	if len(parts) != 2 || parts[1] != "sui::SUI" {
		return false
	}
	addr := strings.TrimLeft(strings.TrimPrefix(parts[0], "0x"), "0")
	return addr == "2"
}

// Coin is an amount of SUI. It can be negative, for example when it
// represents a balance change.
type Coin struct {
	mist decimal.Decimal
}

// NewCoin returns a coin of given amount of MIST.
func NewCoin(mist int64) Coin {
	return Coin{mist: decimal.NewFromInt(mist)}
}

// FromMist parses an integer amount of MIST, as reported by the node. Values
// out of int64 range are handled correctly.
func FromMist(raw string) (Coin, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Coin{}, errors.Wrap(errors.ErrEmpty, "amount")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid amount %q", raw)
	}
	if !d.IsInteger() {
		return Coin{}, errors.Wrapf(errors.ErrInput, "amount %q is not a whole number of MIST", raw)
	}
	return Coin{mist: d}, nil
}

// Mist returns the amount in MIST.
func (c Coin) Mist() decimal.Decimal {
	return c.mist
}

// SUI returns the amount in SUI.
func (c Coin) SUI() decimal.Decimal {
	return c.mist.Shift(-Decimals)
}

// Uint64 returns the amount of MIST. It fails for negative values and
// values that do not fit.
func (c Coin) Uint64() (uint64, error) {
	if c.mist.IsNegative() {
		return 0, errors.Wrapf(errors.ErrInput, "negative amount %s", c)
	}
	b := c.mist.BigInt()
	if !b.IsUint64() {
		return 0, errors.Wrapf(errors.ErrOverflow, "amount %s", c)
	}
	return b.Uint64(), nil
}

// Abs returns the absolute value of the coin. Transaction cost is the
// absolute value of the sender balance change.
func (c Coin) Abs() Coin {
	return Coin{mist: c.mist.Abs()}
}

// Add combines two coins.
func (c Coin) Add(o Coin) Coin {
	return Coin{mist: c.mist.Add(o.mist)}
}

// IsZero returns true amounts are 0
func (c Coin) IsZero() bool {
	return c.mist.IsZero()
}

// String provides a human readable representation of the coin, for example
// "1.5 SUI". The result can be parsed back with ParseHumanFormat.
func (c Coin) String() string {
	return c.SUI().String() + " " + Ticker
}

var humanCoinFormatRx = regexp.MustCompile(`^\s*(-?\d+(?:\.\d+)?)\s*(SUI|MIST)?\s*$`)

// ParseHumanFormat parse a human readable coin representation. Accepted format
// is a string:
//   "<amount> [SUI|MIST]"
// A value without a unit is read as MIST.
func ParseHumanFormat(h string) (Coin, error) {
	m := humanCoinFormatRx.FindStringSubmatch(h)
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin format %q", h)
	}
	d, err := decimal.NewFromString(m[1])
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid amount %q", m[1])
	}
	if m[2] == Ticker {
		d = d.Shift(Decimals)
	}
	if !d.IsInteger() {
		return Coin{}, errors.Wrapf(errors.ErrInput, "%q has more than %d decimal places", h, Decimals)
	}
	return Coin{mist: d}, nil
}

func (c Coin) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Coin) UnmarshalJSON(raw []byte) error {
	// Prioritize human readable format that is a string in format
	// "<amount> [SUI|MIST]"
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		parsed, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	var mist json.Number
	if err := json.Unmarshal(raw, &mist); err != nil {
		return errors.Wrap(errors.ErrInput, "coin must be a string or a number")
	}
	parsed, err := FromMist(mist.String())
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
