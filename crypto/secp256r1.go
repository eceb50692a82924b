package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"math/big"

	"github.com/artfi/suiops/errors"
)

type secp256r1PublicKey struct {
	keyBase
	key *ecdsa.PublicKey
}

var _ PublicKey = (*secp256r1PublicKey)(nil)

func newSecp256r1PublicKey(raw []byte) (*secp256r1PublicKey, error) {
	curve := elliptic.P256()
	x, y := elliptic.UnmarshalCompressed(curve, raw)
	if x == nil {
		return nil, errors.Wrap(errors.ErrInput, "invalid secp256r1 public key")
	}
	return &secp256r1PublicKey{
		keyBase: keyBase{scheme: Secp256r1, raw: append([]byte(nil), raw...)},
		key:     &ecdsa.PublicKey{Curve: curve, X: x, Y: y},
	}, nil
}

// Verify checks a 64 byte r||s signature of the SHA-256 hash of msg. High S
// values are rejected.
func (p *secp256r1PublicKey) Verify(msg, sig []byte) bool {
	r, s, ok := splitSignature(sig, p.key.Curve.Params().N)
	if !ok {
		return false
	}
	hash := sha256.Sum256(msg)
	return ecdsa.Verify(p.key, hash[:], r, s)
}

type secp256r1PrivateKey struct {
	key *ecdsa.PrivateKey
}

var _ PrivateKey = (*secp256r1PrivateKey)(nil)

func newSecp256r1PrivateKey(secret []byte) (*secp256r1PrivateKey, error) {
	curve := elliptic.P256()
	d := new(big.Int).SetBytes(secret)
	if d.Sign() == 0 || d.Cmp(curve.Params().N) >= 0 {
		return nil, errors.Wrap(errors.ErrInput, "secp256r1 secret out of range")
	}
	key := &ecdsa.PrivateKey{D: d}
	key.PublicKey.Curve = curve
	key.PublicKey.X, key.PublicKey.Y = curve.ScalarBaseMult(secret)
	return &secp256r1PrivateKey{key: key}, nil
}

// Sign returns a low S signature of the SHA-256 hash of msg.
func (p *secp256r1PrivateKey) Sign(msg []byte) ([]byte, error) {
	if p.key == nil {
		return nil, errors.Wrap(errors.ErrState, "private key destroyed")
	}
	hash := sha256.Sum256(msg)
	r, s, err := ecdsa.Sign(rand.Reader, p.key, hash[:])
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "secp256r1 sign: %s", err)
	}
	return joinSignature(r, normalizeS(s, p.key.Curve.Params().N)), nil
}

func (p *secp256r1PrivateKey) PublicKey() PublicKey {
	pub := &p.key.PublicKey
	return &secp256r1PublicKey{
		keyBase: keyBase{scheme: Secp256r1, raw: elliptic.MarshalCompressed(pub.Curve, pub.X, pub.Y)},
		key:     pub,
	}
}

func (p *secp256r1PrivateKey) Secret() []byte {
	secret := make([]byte, SecretSize)
	p.key.D.FillBytes(secret)
	return secret
}

func (p *secp256r1PrivateKey) Destroy() {
	if p.key != nil {
		p.key.D.SetInt64(0)
	}
	p.key = nil
}

func (*secp256r1PrivateKey) sealed() {}

// normalizeS returns s or n - s, whichever is lower.
func normalizeS(s, n *big.Int) *big.Int {
	half := new(big.Int).Rsh(n, 1)
	if s.Cmp(half) > 0 {
		return new(big.Int).Sub(n, s)
	}
	return s
}

func joinSignature(r, s *big.Int) []byte {
	sig := make([]byte, SignatureSize)
	r.FillBytes(sig[:32])
	s.FillBytes(sig[32:])
	return sig
}

// splitSignature decodes a compact r||s signature. It fails for zero or out
// of range values and for a high S.
func splitSignature(sig []byte, n *big.Int) (r, s *big.Int, ok bool) {
	if len(sig) != SignatureSize {
		return nil, nil, false
	}
	r = new(big.Int).SetBytes(sig[:32])
	s = new(big.Int).SetBytes(sig[32:])
	if r.Sign() == 0 || s.Sign() == 0 || r.Cmp(n) >= 0 || s.Cmp(n) >= 0 {
		return nil, nil, false
	}
	if s.Cmp(new(big.Int).Rsh(n, 1)) > 0 {
		return nil, nil, false
	}
	return r, s, true
}
