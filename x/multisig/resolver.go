package multisig

import (
	"fmt"

	"github.com/artfi/suiops/crypto"
	"github.com/artfi/suiops/errors"
)

// SignerDescriptor is the configuration of a single multisig participant.
type SignerDescriptor struct {
	// PublicKey is the hex encoded raw public key.
	PublicKey  string `json:"publicKey"`
	SchemeType string `json:"schemeType"`
	Weight     int    `json:"weight"`
}

// Descriptor is the configuration of a multisig identity.
type Descriptor struct {
	Signers   []SignerDescriptor `json:"signers"`
	Threshold int                `json:"threshold"`
}

// Validate checks the descriptor without decoding the keys. All problems
// are reported at once.
func (d *Descriptor) Validate() error {
	_, err := d.participants()
	return err
}

func (d *Descriptor) participants() ([]Participant, error) {
	if len(d.Signers) == 0 {
		return nil, errors.Field("Signers", errors.ErrConfiguration, "signers not provided")
	}

	var (
		errs error
		ps   = make([]Participant, 0, len(d.Signers))
	)
	for i, s := range d.Signers {
		field := fmt.Sprintf("Signers.%d", i)
		if s.PublicKey == "" {
			errs = errors.Append(errs, errors.Field(field+".PublicKey", errors.ErrConfiguration, "public key not found"))
			continue
		}
		if s.SchemeType == "" {
			errs = errors.Append(errs, errors.Field(field+".SchemeType", errors.ErrConfiguration, "scheme type not found"))
			continue
		}
		scheme, err := crypto.ParseScheme(s.SchemeType)
		if err != nil {
			errs = errors.AppendField(errs, field+".SchemeType", err)
			continue
		}
		pub, err := crypto.ParsePublicKey(scheme, s.PublicKey)
		if err != nil {
			errs = errors.Append(errs, errors.Field(field+".PublicKey", errors.ErrConfiguration, err.Error()))
			continue
		}
		if s.Weight < 1 || s.Weight > maxWeightValue {
			errs = errors.Append(errs, errors.Field(field+".Weight", errors.ErrConfiguration,
				"weight is %d and must be between 1 and %d", s.Weight, maxWeightValue))
			continue
		}
		ps = append(ps, Participant{PublicKey: pub, Weight: Weight(s.Weight)})
	}
	if d.Threshold < 1 || d.Threshold > 0xffff {
		errs = errors.Append(errs, errors.Field("Threshold", errors.ErrConfiguration, "threshold not set or out of range"))
	}
	if errs != nil {
		return nil, errs
	}
	return ps, nil
}

// Resolve returns the multisig public key described by the configuration.
// It fails with ErrConfiguration if signers are missing, a signer lacks a
// public key or a scheme, or the threshold is unset or cannot be reached.
func Resolve(d Descriptor) (*PublicKey, error) {
	ps, err := d.participants()
	if err != nil {
		return nil, err
	}
	return NewPublicKey(ps, uint16(d.Threshold))
}

// ResolveSerialized returns the multisig public key from its hex encoded
// serialized form when provided, otherwise from the configuration.
func ResolveSerialized(serialized string, d Descriptor) (*PublicKey, error) {
	if serialized != "" {
		return ParsePublicKey(serialized)
	}
	return Resolve(d)
}

// Descriptor returns the configuration form of the multisig public key.
func (pk *PublicKey) Descriptor() Descriptor {
	d := Descriptor{Threshold: int(pk.Threshold)}
	for _, p := range pk.Participants {
		d.Signers = append(d.Signers, SignerDescriptor{
			PublicKey:  fmt.Sprintf("%x", p.PublicKey.Bytes()),
			SchemeType: p.PublicKey.Scheme().String(),
			Weight:     int(p.Weight),
		})
	}
	return d
}

// ParticipantOf returns the participant signing with given key.
func (pk *PublicKey) ParticipantOf(pub crypto.PublicKey) (Participant, error) {
	i := pk.Index(pub)
	if i < 0 {
		return Participant{}, errors.Wrapf(errors.ErrUnauthorized, "%s is not a multisig participant", pub.Address())
	}
	return pk.Participants[i], nil
}
