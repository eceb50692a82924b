package crypto

import (
	"encoding/base64"
	"encoding/json"

	"github.com/artfi/suiops"
	"github.com/artfi/suiops/errors"
	"golang.org/x/crypto/blake2b"
)

// IntentScope tells what kind of message is being signed. It is the first
// byte of the intent prefix.
type IntentScope uint8

const (
	TransactionDataIntent IntentScope = 0
	PersonalMessageIntent IntentScope = 3
)

// SigningDigest returns the message that is signed to authorize a
// transaction: blake2b-256 of the intent prefix followed by the transaction
// bytes.
func SigningDigest(txBytes []byte) []byte {
	return IntentDigest(TransactionDataIntent, txBytes)
}

// IntentDigest returns blake2b-256 of the intent (scope, version 0, app id 0)
// followed by msg.
func IntentDigest(scope IntentScope, msg []byte) []byte {
	h, _ := blake2b.New256(nil)
	h.Write([]byte{byte(scope), 0, 0})
	h.Write(msg)
	return h.Sum(nil)
}

// Signature is a single key signature together with the public key that
// created it. Its serialized form is flag || signature || public key.
type Signature struct {
	Sig       []byte
	PublicKey PublicKey
}

// SignTransaction signs the transaction bytes with given signer.
func SignTransaction(signer Signer, txBytes []byte) (*Signature, error) {
	sig, err := signer.Sign(SigningDigest(txBytes))
	if err != nil {
		return nil, errors.Wrap(err, "sign transaction")
	}
	return &Signature{Sig: sig, PublicKey: signer.PublicKey()}, nil
}

// Scheme returns the scheme of the signing key.
func (s *Signature) Scheme() Scheme {
	return s.PublicKey.Scheme()
}

// Signer returns the address of the signing key.
func (s *Signature) Signer() suiops.Address {
	return s.PublicKey.Address()
}

// Verify returns true if this is a valid signature of given transaction.
func (s *Signature) Verify(txBytes []byte) bool {
	if s == nil || s.PublicKey == nil {
		return false
	}
	return s.PublicKey.Verify(SigningDigest(txBytes), s.Sig)
}

func (s *Signature) Validate() error {
	if s == nil {
		return errors.Wrap(errors.ErrEmpty, "signature")
	}
	if s.PublicKey == nil {
		return errors.Wrap(errors.ErrEmpty, "signature public key")
	}
	if len(s.Sig) != SignatureSize {
		return errors.Wrapf(errors.ErrInput, "signature must be %d bytes, got %d", SignatureSize, len(s.Sig))
	}
	return nil
}

// Bytes returns the serialized signature.
func (s *Signature) Bytes() []byte {
	out := make([]byte, 0, 1+len(s.Sig)+s.Scheme().PublicKeySize())
	out = append(out, s.Scheme().Flag())
	out = append(out, s.Sig...)
	return append(out, s.PublicKey.Bytes()...)
}

// String returns the base64 encoded serialized signature. This is the form
// accepted by the transaction execution RPC.
func (s *Signature) String() string {
	return base64.StdEncoding.EncodeToString(s.Bytes())
}

// ParseSignature decodes a serialized single key signature.
func ParseSignature(raw []byte) (*Signature, error) {
	if len(raw) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "signature")
	}
	if raw[0] == MultiSigFlag {
		return nil, errors.Wrap(errors.ErrType, "multisig signature is not a single key signature")
	}
	scheme, err := SchemeFromFlag(raw[0])
	if err != nil {
		return nil, err
	}
	if want := 1 + SignatureSize + scheme.PublicKeySize(); len(raw) != want {
		return nil, errors.Wrapf(errors.ErrInput, "%s signature must be %d bytes, got %d", scheme, want, len(raw))
	}
	pub, err := NewPublicKey(scheme, raw[1+SignatureSize:])
	if err != nil {
		return nil, err
	}
	sig := make([]byte, SignatureSize)
	copy(sig, raw[1:1+SignatureSize])
	return &Signature{Sig: sig, PublicKey: pub}, nil
}

// DecodeSignature decodes a base64 encoded serialized signature.
func DecodeSignature(b64 string) (*Signature, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "signature is not base64 encoded: %s", err)
	}
	return ParseSignature(raw)
}

func (s *Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Signature) UnmarshalJSON(raw []byte) error {
	var b64 string
	if err := json.Unmarshal(raw, &b64); err != nil {
		return errors.Wrap(errors.ErrInput, "signature must be a string")
	}
	sig, err := DecodeSignature(b64)
	if err != nil {
		return err
	}
	*s = *sig
	return nil
}
