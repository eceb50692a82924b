package sigs

import (
	"github.com/artfi/suiops"
	"github.com/artfi/suiops/crypto"
	"github.com/artfi/suiops/errors"
)

// PartialSignature is a signature of a single multisig participant. It is
// the unit persisted in a signature bundle.
type PartialSignature struct {
	// Signer is the address of the key that produced the signature.
	Signer    suiops.Address    `json:"signer"`
	Signature *crypto.Signature `json:"signature"`
}

// Validate checks that the signature is well formed and was made by the
// declared signer. It does not verify the signature against a transaction.
func (p *PartialSignature) Validate() error {
	var errs error
	if p.Signer.IsZero() {
		errs = errors.AppendField(errs, "Signer", errors.ErrEmpty)
	}
	if p.Signature == nil {
		return errors.AppendField(errs, "Signature", errors.ErrEmpty)
	}
	if err := p.Signature.Validate(); err != nil {
		return errors.AppendField(errs, "Signature", err)
	}
	if derived := p.Signature.Signer(); !p.Signer.IsZero() && !derived.Equals(p.Signer) {
		errs = errors.Append(errs, errors.Field("Signer", errors.ErrUnauthorized, "signature made by %s", derived))
	}
	return errs
}

// Signatures returns the signatures of given partial signatures.
func Signatures(parts []*PartialSignature) []*crypto.Signature {
	res := make([]*crypto.Signature, len(parts))
	for i, p := range parts {
		res[i] = p.Signature
	}
	return res
}
