package sigs

import (
	"github.com/artfi/suiops"
	"github.com/artfi/suiops/crypto"
	"github.com/artfi/suiops/errors"
	"github.com/artfi/suiops/x/multisig"
)

// SignTx creates a signature of the exact transaction bytes.
func SignTx(signer crypto.Signer, txBytes []byte) (*PartialSignature, error) {
	sig, err := crypto.SignTransaction(signer, txBytes)
	if err != nil {
		return nil, err
	}
	return &PartialSignature{
		Signer:    sig.Signer(),
		Signature: sig,
	}, nil
}

// Sign opens the credential, signs the transaction bytes and destroys the
// key. The signer identity is derived from the produced signature and must
// be a participant of the multisig. If expected is not zero, the signer must
// also be that address.
func Sign(cred *crypto.Credential, pk *multisig.PublicKey, txBytes []byte, expected suiops.Address) (*PartialSignature, error) {
	var part *PartialSignature
	err := crypto.WithSigner(cred, func(s crypto.Signer) error {
		var err error
		part, err = SignTx(s, txBytes)
		return err
	})
	if err != nil {
		return nil, err
	}

	if !expected.IsZero() && !part.Signer.Equals(expected) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "signed by %s, expected %s", part.Signer, expected)
	}
	if _, err := VerifySignature(pk, part.Signature, txBytes); err != nil {
		return nil, err
	}
	return part, nil
}

// VerifySignature checks that the signature was made by a multisig
// participant and that it is valid for the transaction bytes. The
// participant is returned.
func VerifySignature(pk *multisig.PublicKey, sig *crypto.Signature, txBytes []byte) (multisig.Participant, error) {
	if err := sig.Validate(); err != nil {
		return multisig.Participant{}, errors.Wrap(errors.ErrInvalidSignature, err.Error())
	}
	p, err := pk.ParticipantOf(sig.PublicKey)
	if err != nil {
		return multisig.Participant{}, errors.Wrapf(err, "signer %s", sig.Signer())
	}
	if !sig.Verify(txBytes) {
		return multisig.Participant{}, errors.Wrapf(errors.ErrInvalidSignature, "signer %s", sig.Signer())
	}
	return p, nil
}

// VerifyTxSignatures checks all signatures of the transaction bytes and
// returns the signer addresses, in the order given. Any invalid signature
// fails the whole set.
func VerifyTxSignatures(pk *multisig.PublicKey, txBytes []byte, sigs []*crypto.Signature) ([]suiops.Address, error) {
	signers := make([]suiops.Address, 0, len(sigs))
	for _, sig := range sigs {
		if _, err := VerifySignature(pk, sig, txBytes); err != nil {
			return nil, err
		}
		signers = append(signers, sig.Signer())
	}
	return signers, nil
}
