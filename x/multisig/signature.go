package multisig

import (
	"encoding/base64"
	"sort"

	"github.com/artfi/suiops/bcs"
	"github.com/artfi/suiops/crypto"
	"github.com/artfi/suiops/errors"
)

// CompressedSignature is a single participant signature without the public
// key, which is known from the multisig public key.
type CompressedSignature struct {
	Scheme crypto.Scheme
	Sig    []byte
}

// Signature is the combined multisig authorization. Bitmap has a bit set
// for every participant index that signed. Signatures are ordered by
// participant index.
type Signature struct {
	Sigs      []CompressedSignature
	Bitmap    uint16
	PublicKey *PublicKey
}

var (
	_ bcs.Marshaler   = (*Signature)(nil)
	_ bcs.Unmarshaler = (*Signature)(nil)
)

// Weigh returns the sum of weights of the participants that created given
// signatures. It fails with ErrUnauthorized if any signature was created by
// a key that is not a participant and with ErrDuplicate if a participant
// signed more than once.
func (pk *PublicKey) Weigh(sigs []*crypto.Signature) (int, error) {
	indexes, err := pk.indexes(sigs)
	if err != nil {
		return 0, err
	}
	var total int
	for _, i := range indexes {
		total += int(pk.Participants[i].Weight)
	}
	return total, nil
}

// HasThreshold returns true if given signatures carry enough weight to
// authorize a transaction. Signatures are not verified.
func (pk *PublicKey) HasThreshold(sigs []*crypto.Signature) bool {
	w, err := pk.Weigh(sigs)
	return err == nil && w >= int(pk.Threshold)
}

func (pk *PublicKey) indexes(sigs []*crypto.Signature) ([]int, error) {
	seen := make(map[int]bool, len(sigs))
	indexes := make([]int, len(sigs))
	for n, s := range sigs {
		if err := s.Validate(); err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidSignature, "signature %d: %s", n, err)
		}
		i := pk.Index(s.PublicKey)
		if i < 0 {
			return nil, errors.Wrapf(errors.ErrInvalidSignature, "signer %s is not a multisig participant", s.Signer())
		}
		if seen[i] {
			return nil, errors.Wrapf(errors.ErrDuplicate, "signer %s", s.Signer())
		}
		seen[i] = true
		indexes[n] = i
	}
	return indexes, nil
}

// Combine merges partial signatures into a multisig signature. The result
// is not verified, use Signature.Verify for that.
//
// It fails with ErrMissingSignatures if no signatures are given or their
// weight does not reach the threshold.
func (pk *PublicKey) Combine(sigs []*crypto.Signature) (*Signature, error) {
	if len(sigs) == 0 {
		return nil, errors.Wrap(errors.ErrMissingSignatures, "no signatures collected")
	}
	indexes, err := pk.indexes(sigs)
	if err != nil {
		return nil, err
	}

	order := make([]int, len(sigs))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return indexes[order[a]] < indexes[order[b]] })

	ms := Signature{PublicKey: pk}
	var weight int
	for _, n := range order {
		i := indexes[n]
		ms.Bitmap |= 1 << uint(i)
		ms.Sigs = append(ms.Sigs, CompressedSignature{
			Scheme: sigs[n].Scheme(),
			Sig:    append([]byte(nil), sigs[n].Sig...),
		})
		weight += int(pk.Participants[i].Weight)
	}
	if weight < int(pk.Threshold) {
		return nil, errors.Wrapf(errors.ErrMissingSignatures, "collected weight %d, threshold %d", weight, pk.Threshold)
	}
	return &ms, nil
}

// Verify checks that every contained signature is a valid signature of
// given transaction bytes by the participant marked in the bitmap and that
// their weight reaches the threshold. The multisig public key must be valid
// and at least one signature present.
func (s *Signature) Verify(txBytes []byte) error {
	if s.PublicKey == nil {
		return errors.Wrap(errors.ErrInvalidSignature, "missing multisig public key")
	}
	if err := s.PublicKey.Validate(); err != nil {
		return errors.Wrapf(errors.ErrInvalidSignature, "multisig public key: %s", err)
	}
	if len(s.Sigs) == 0 {
		return errors.Wrap(errors.ErrMissingSignatures, "no signatures")
	}
	indexes, err := s.signerIndexes()
	if err != nil {
		return err
	}
	msg := crypto.SigningDigest(txBytes)

	var weight int
	for n, i := range indexes {
		p := s.PublicKey.Participants[i]
		cs := s.Sigs[n]
		if cs.Scheme != p.PublicKey.Scheme() {
			return errors.Wrapf(errors.ErrInvalidSignature, "signature %d is %s, participant %s is %s",
				n, cs.Scheme, p.PublicKey.Address(), p.PublicKey.Scheme())
		}
		if !p.PublicKey.Verify(msg, cs.Sig) {
			return errors.Wrapf(errors.ErrInvalidSignature, "signature of %s", p.PublicKey.Address())
		}
		weight += int(p.Weight)
	}
	if weight < int(s.PublicKey.Threshold) {
		return errors.Wrapf(errors.ErrMissingSignatures, "signed weight %d, threshold %d", weight, s.PublicKey.Threshold)
	}
	return nil
}

// signerIndexes returns the participant index of every signature, in
// order, as encoded by the bitmap.
func (s *Signature) signerIndexes() ([]int, error) {
	n := len(s.PublicKey.Participants)
	if s.Bitmap>>uint(n) != 0 {
		return nil, errors.Wrap(errors.ErrInvalidSignature, "bitmap refers to unknown participants")
	}
	var indexes []int
	for i := 0; i < n; i++ {
		if s.Bitmap&(1<<uint(i)) != 0 {
			indexes = append(indexes, i)
		}
	}
	if len(indexes) != len(s.Sigs) {
		return nil, errors.Wrapf(errors.ErrInvalidSignature, "bitmap marks %d signers, got %d signatures", len(indexes), len(s.Sigs))
	}
	return indexes, nil
}

func (s *Signature) MarshalBCS(e *bcs.Encoder) {
	e.Len(len(s.Sigs))
	for _, cs := range s.Sigs {
		e.Variant(uint32(cs.Scheme.Flag()))
		e.Fixed(cs.Sig)
	}
	e.U16(s.Bitmap)
	s.PublicKey.MarshalBCS(e)
}

func (s *Signature) UnmarshalBCS(d *bcs.Decoder) {
	n := d.Len()
	if d.Err() != nil {
		return
	}
	if n > MaxParticipants {
		d.Fail(errors.Wrapf(errors.ErrInput, "too many signatures: %d", n))
		return
	}
	s.Sigs = make([]CompressedSignature, 0, n)
	for i := 0; i < n; i++ {
		scheme, err := crypto.SchemeFromFlag(byte(d.Variant()))
		if d.Err() != nil {
			return
		}
		if err != nil {
			d.Fail(errors.Wrapf(errors.ErrInput, "signature %d: %s", i, err))
			return
		}
		s.Sigs = append(s.Sigs, CompressedSignature{Scheme: scheme, Sig: d.Fixed(crypto.SignatureSize)})
	}
	s.Bitmap = d.U16()
	s.PublicKey = new(PublicKey)
	s.PublicKey.UnmarshalBCS(d)
	if d.Err() != nil {
		return
	}
	if err := s.PublicKey.Validate(); err != nil {
		d.Fail(errors.Wrapf(errors.ErrInvalidSignature, "multisig public key: %s", err))
	}
}

// Bytes returns the serialized signature, prefixed with the multisig flag.
func (s *Signature) Bytes() []byte {
	return append([]byte{crypto.MultiSigFlag}, bcs.Marshal(s)...)
}

// String returns the base64 encoded serialized signature, as accepted by
// the transaction execution RPC.
func (s *Signature) String() string {
	return base64.StdEncoding.EncodeToString(s.Bytes())
}

// ParseSignature decodes a flag prefixed, serialized multisig signature.
func ParseSignature(raw []byte) (*Signature, error) {
	if len(raw) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "multisig signature")
	}
	if raw[0] != crypto.MultiSigFlag {
		return nil, errors.Wrapf(errors.ErrType, "flag 0x%02x is not a multisig signature", raw[0])
	}
	var s Signature
	if err := bcs.Unmarshal(raw[1:], &s); err != nil {
		return nil, errors.Wrap(err, "multisig signature")
	}
	return &s, nil
}

// DecodeSignature decodes a base64 encoded multisig signature.
func DecodeSignature(b64 string) (*Signature, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "multisig signature is not base64 encoded: %s", err)
	}
	return ParseSignature(raw)
}
