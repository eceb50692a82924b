package multisig

import (
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/artfi/suiops"
	"github.com/artfi/suiops/bcs"
	"github.com/artfi/suiops/crypto"
	"github.com/artfi/suiops/errors"
	"golang.org/x/crypto/blake2b"
)

const (
	// MaxParticipants is the largest number of keys a multisig can
	// consist of.
	MaxParticipants = 10

	// Maximum value a weight value can be set to. This is uint8 capacity
	// but because configuration uses plain integers, the limit must be
	// checked manually before conversion.
	maxWeightValue = 255
)

// Weight represents the strength of a signature.
type Weight uint8

func (w Weight) Validate() error {
	if w < 1 {
		return errors.Wrap(errors.ErrConfiguration,
			"weight must be greater than 0")
	}
	return nil
}

// Participant is a single key of a multisig.
type Participant struct {
	PublicKey crypto.PublicKey
	Weight    Weight
}

func (p Participant) Validate() error {
	if p.PublicKey == nil {
		return errors.Wrap(errors.ErrConfiguration, "missing public key")
	}
	return p.Weight.Validate()
}

// PublicKey is the multisig identity: weighted participant keys and the
// threshold that the weights of collected signatures must reach. The order
// of participants is significant, it determines the address.
type PublicKey struct {
	Participants []Participant
	Threshold    uint16
}

var (
	_ bcs.Marshaler   = (*PublicKey)(nil)
	_ bcs.Unmarshaler = (*PublicKey)(nil)
)

// NewPublicKey returns a validated multisig public key.
func NewPublicKey(participants []Participant, threshold uint16) (*PublicKey, error) {
	pk := &PublicKey{
		Participants: append([]Participant(nil), participants...),
		Threshold:    threshold,
	}
	if err := pk.Validate(); err != nil {
		return nil, err
	}
	return pk, nil
}

// Validate enforces participants and threshold boundaries.
func (pk *PublicKey) Validate() error {
	switch n := len(pk.Participants); {
	case n == 0:
		return errors.Wrap(errors.ErrConfiguration, "no participants")
	case n > MaxParticipants:
		return errors.Wrapf(errors.ErrConfiguration, "too many participants: %d, max %d", n, MaxParticipants)
	}
	return validateWeights(pk.Participants, pk.Threshold)
}

// validateWeights returns an error if given participants and threshold
// configuration is not valid.
func validateWeights(ps []Participant, threshold uint16) error {
	for i, p := range ps {
		if err := p.Validate(); err != nil {
			return errors.Wrapf(err, "participant %d", i)
		}
		for _, other := range ps[:i] {
			if p.PublicKey.Equals(other.PublicKey) {
				return errors.Wrapf(errors.ErrConfiguration, "participant %s is listed more than once", p.PublicKey.Address())
			}
		}
	}
	if threshold == 0 {
		return errors.Wrap(errors.ErrConfiguration, "threshold must be greater than 0")
	}
	if total := totalWeight(ps); int(threshold) > total {
		return errors.Wrapf(errors.ErrConfiguration, "threshold %d greater than total weight %d", threshold, total)
	}
	return nil
}

func totalWeight(ps []Participant) int {
	var total int
	for _, p := range ps {
		total += int(p.Weight)
	}
	return total
}

// TotalWeight returns the sum of all participant weights.
func (pk *PublicKey) TotalWeight() int {
	return totalWeight(pk.Participants)
}

// Address returns the multisig address: blake2b-256 of the multisig flag,
// the little endian threshold and every flag prefixed participant key
// followed by its weight.
func (pk *PublicKey) Address() suiops.Address {
	h, _ := blake2b.New256(nil)
	h.Write([]byte{crypto.MultiSigFlag, byte(pk.Threshold), byte(pk.Threshold >> 8)})
	for _, p := range pk.Participants {
		h.Write(crypto.FlaggedBytes(p.PublicKey))
		h.Write([]byte{byte(p.Weight)})
	}
	var a suiops.Address
	copy(a[:], h.Sum(nil))
	return a
}

// Index returns the position of given key among participants, or -1.
func (pk *PublicKey) Index(pub crypto.PublicKey) int {
	for i, p := range pk.Participants {
		if p.PublicKey.Equals(pub) {
			return i
		}
	}
	return -1
}

func (pk *PublicKey) MarshalBCS(e *bcs.Encoder) {
	e.Len(len(pk.Participants))
	for _, p := range pk.Participants {
		e.Variant(uint32(p.PublicKey.Scheme().Flag()))
		e.Fixed(p.PublicKey.Bytes())
		e.U8(uint8(p.Weight))
	}
	e.U16(pk.Threshold)
}

func (pk *PublicKey) UnmarshalBCS(d *bcs.Decoder) {
	n := d.Len()
	if d.Err() != nil {
		return
	}
	if n > MaxParticipants {
		d.Fail(errors.Wrapf(errors.ErrInput, "too many participants: %d", n))
		return
	}
	pk.Participants = make([]Participant, 0, n)
	for i := 0; i < n; i++ {
		scheme, err := crypto.SchemeFromFlag(byte(d.Variant()))
		if d.Err() != nil {
			return
		}
		if err != nil {
			d.Fail(errors.Wrapf(errors.ErrInput, "participant %d: %s", i, err))
			return
		}
		raw := d.Fixed(scheme.PublicKeySize())
		weight := d.U8()
		if d.Err() != nil {
			return
		}
		pub, err := crypto.NewPublicKey(scheme, raw)
		if err != nil {
			d.Fail(errors.Wrapf(err, "participant %d", i))
			return
		}
		pk.Participants = append(pk.Participants, Participant{PublicKey: pub, Weight: Weight(weight)})
	}
	pk.Threshold = d.U16()
}

// Bytes returns the serialized multisig public key.
func (pk *PublicKey) Bytes() []byte {
	return bcs.Marshal(pk)
}

// Hex returns the hex encoded serialized multisig public key. This is the
// pre-serialized identity form accepted by ParsePublicKey.
func (pk *PublicKey) Hex() string {
	return hex.EncodeToString(pk.Bytes())
}

// String returns the base64 encoded, flag prefixed serialized key.
func (pk *PublicKey) String() string {
	return base64.StdEncoding.EncodeToString(append([]byte{crypto.MultiSigFlag}, pk.Bytes()...))
}

// ParsePublicKey decodes a hex encoded, serialized multisig public key and
// validates it.
func ParsePublicKey(raw string) (*PublicKey, error) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "0x")
	if raw == "" {
		return nil, errors.Wrap(errors.ErrConfiguration, "multisig key not provided")
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrConfiguration, "multisig key is not hex encoded: %s", err)
	}
	var pk PublicKey
	if err := bcs.Unmarshal(b, &pk); err != nil {
		return nil, errors.Wrapf(errors.ErrConfiguration, "cannot decode multisig key: %s", err)
	}
	if err := pk.Validate(); err != nil {
		return nil, err
	}
	return &pk, nil
}
