package crypto

import (
	"crypto/sha256"
	"math/big"

	"github.com/artfi/suiops/errors"
	"github.com/btcsuite/btcd/btcec"
)

type secp256k1PublicKey struct {
	keyBase
	key *btcec.PublicKey
}

var _ PublicKey = (*secp256k1PublicKey)(nil)

func newSecp256k1PublicKey(raw []byte) (*secp256k1PublicKey, error) {
	key, err := btcec.ParsePubKey(raw, btcec.S256())
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid secp256k1 public key: %s", err)
	}
	return &secp256k1PublicKey{
		keyBase: keyBase{scheme: Secp256k1, raw: key.SerializeCompressed()},
		key:     key,
	}, nil
}

// Verify checks a 64 byte r||s signature of the SHA-256 hash of msg. High S
// values are rejected.
func (p *secp256k1PublicKey) Verify(msg, sig []byte) bool {
	r, s, ok := splitSignature(sig, btcec.S256().N)
	if !ok {
		return false
	}
	hash := sha256.Sum256(msg)
	signature := btcec.Signature{R: r, S: s}
	return signature.Verify(hash[:], p.key)
}

type secp256k1PrivateKey struct {
	key *btcec.PrivateKey
}

var _ PrivateKey = (*secp256k1PrivateKey)(nil)

func newSecp256k1PrivateKey(secret []byte) (*secp256k1PrivateKey, error) {
	d := new(big.Int).SetBytes(secret)
	if d.Sign() == 0 || d.Cmp(btcec.S256().N) >= 0 {
		return nil, errors.Wrap(errors.ErrInput, "secp256k1 secret out of range")
	}
	key, _ := btcec.PrivKeyFromBytes(btcec.S256(), secret)
	return &secp256k1PrivateKey{key: key}, nil
}

// Sign returns a deterministic (RFC 6979), low S signature of the SHA-256
// hash of msg.
func (p *secp256k1PrivateKey) Sign(msg []byte) ([]byte, error) {
	if p.key == nil {
		return nil, errors.Wrap(errors.ErrState, "private key destroyed")
	}
	hash := sha256.Sum256(msg)
	sig, err := p.key.Sign(hash[:])
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "secp256k1 sign: %s", err)
	}
	return joinSignature(sig.R, normalizeS(sig.S, btcec.S256().N)), nil
}

func (p *secp256k1PrivateKey) PublicKey() PublicKey {
	pub := p.key.PubKey()
	return &secp256k1PublicKey{
		keyBase: keyBase{scheme: Secp256k1, raw: pub.SerializeCompressed()},
		key:     pub,
	}
}

func (p *secp256k1PrivateKey) Secret() []byte {
	return p.key.Serialize()
}

func (p *secp256k1PrivateKey) Destroy() {
	if p.key != nil {
		p.key.D.SetInt64(0)
	}
	p.key = nil
}

func (*secp256k1PrivateKey) sealed() {}
