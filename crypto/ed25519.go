package crypto

import (
	"github.com/artfi/suiops/errors"
	"golang.org/x/crypto/ed25519"
)

type ed25519PublicKey struct {
	keyBase
}

var _ PublicKey = (*ed25519PublicKey)(nil)

func newEd25519PublicKey(raw []byte) (*ed25519PublicKey, error) {
	if len(raw) != ed25519.PublicKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid ed25519 public key size")
	}
	return &ed25519PublicKey{keyBase{scheme: Ed25519, raw: append([]byte(nil), raw...)}}, nil
}

// Verify verifies the signature was created with this message and public key
func (p *ed25519PublicKey) Verify(msg, sig []byte) bool {
	if len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.raw), msg, sig)
}

type ed25519PrivateKey struct {
	key ed25519.PrivateKey
}

var _ PrivateKey = (*ed25519PrivateKey)(nil)

func newEd25519PrivateKey(seed []byte) *ed25519PrivateKey {
	return &ed25519PrivateKey{key: ed25519.NewKeyFromSeed(seed)}
}

// Sign returns a matching signature for this private key
func (p *ed25519PrivateKey) Sign(msg []byte) ([]byte, error) {
	if p.key == nil {
		return nil, errors.Wrap(errors.ErrState, "private key destroyed")
	}
	return ed25519.Sign(p.key, msg), nil
}

// PublicKey returns the corresponding PublicKey
func (p *ed25519PrivateKey) PublicKey() PublicKey {
	pub := p.key.Public().(ed25519.PublicKey)
	return &ed25519PublicKey{keyBase{scheme: Ed25519, raw: pub}}
}

func (p *ed25519PrivateKey) Secret() []byte {
	return append([]byte(nil), p.key.Seed()...)
}

func (p *ed25519PrivateKey) Destroy() {
	zero(p.key)
	p.key = nil
}

func (*ed25519PrivateKey) sealed() {}
