package coordinator

import (
	"context"

	"github.com/artfi/suiops"
	"github.com/artfi/suiops/bundle"
	"github.com/artfi/suiops/client"
	"github.com/artfi/suiops/coin"
	"github.com/artfi/suiops/crypto"
	"github.com/artfi/suiops/errors"
	"github.com/artfi/suiops/tx"
	"github.com/artfi/suiops/x/multisig"
	"github.com/artfi/suiops/x/sigs"
	"github.com/tendermint/tendermint/libs/log"
)

// Network builds and executes transactions.
type Network interface {
	tx.ChainReader
	Execute(ctx context.Context, txBytes []byte, signatures ...string) (*client.TransactionResponse, error)
}

var _ Network = (*client.Client)(nil)

// Transfer is the intent of moving an object owned by the multisig.
type Transfer struct {
	Recipient suiops.Address
	Object    suiops.ObjectID
	// GasBudget is optional, it is estimated when zero.
	GasBudget uint64
}

func (t Transfer) Validate() error {
	var errs error
	if t.Recipient.IsZero() {
		errs = errors.Append(errs, errors.Field("Recipient", errors.ErrEmpty, "recipient not set"))
	}
	if t.Object.IsZero() {
		errs = errors.Append(errs, errors.Field("Object", errors.ErrEmpty, "object id not set"))
	}
	return errs
}

// Request is a single run of an authorization step.
type Request struct {
	Transfer Transfer
	// Digest selects a transaction already present in the bundle. When
	// empty, the transaction is built from the transfer.
	Digest string
	// Bundle is the path of the signature bundle file.
	Bundle string
	// Credential is the signer key, required by the sign action.
	Credential *crypto.Credential
	// Signer is the optional expected signer address.
	Signer suiops.Address
}

// Outcome is the result of a run.
type Outcome struct {
	Action Action
	Digest suiops.Digest
	// Partial is set by the sign action.
	Partial *sigs.PartialSignature
	// Signers holds the signers of the submitted transaction.
	Signers []suiops.Address
	// Response is set by the combine action.
	Response *client.TransactionResponse
	// Cost is the amount paid by the multisig, set by the combine action
	// when reported by the node.
	Cost *coin.Coin
}

// Coordinator authorizes transactions of a single multisig.
type Coordinator struct {
	pk      *multisig.PublicKey
	network Network
	logger  log.Logger
}

// NewCoordinator returns a coordinator of given multisig.
func NewCoordinator(pk *multisig.PublicKey, network Network) *Coordinator {
	return &Coordinator{
		pk:      pk,
		network: network,
		logger:  log.NewNopLogger(),
	}
}

// WithLogger sets the logger used to report progress.
func (c *Coordinator) WithLogger(l log.Logger) *Coordinator {
	c.logger = l.With("module", "coordinator")
	return c
}

// Address returns the multisig address, the sender of all authorized
// transactions.
func (c *Coordinator) Address() suiops.Address {
	return c.pk.Address()
}

// BuildTransfer builds the transfer transaction sent by the multisig.
func (c *Coordinator) BuildTransfer(ctx context.Context, t Transfer) (*tx.Data, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	b := tx.NewBuilder(c.Address()).WithLogger(c.logger)
	b.TransferObjects([]tx.Argument{b.Object(t.Object)}, b.PureAddress(t.Recipient))
	if t.GasBudget != 0 {
		b.SetGasBudget(t.GasBudget)
	}
	return b.Build(ctx, c.network)
}

// checkSender fails with ErrUnauthorized if the transaction is not sent by
// the multisig.
func (c *Coordinator) checkSender(txBytes []byte) (*tx.Data, error) {
	data, err := tx.Unmarshal(txBytes)
	if err != nil {
		return nil, err
	}
	if addr := c.Address(); !data.Sender.Equals(addr) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "transaction sender %s is not the multisig %s", data.Sender, addr)
	}
	return data, nil
}

// Sign creates a partial signature of the transaction. The signer derived
// from the signature must be a participant and, if expected is set, that
// address.
func (c *Coordinator) Sign(txBytes []byte, cred *crypto.Credential, expected suiops.Address) (*sigs.PartialSignature, error) {
	if _, err := c.checkSender(txBytes); err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, errors.Wrap(errors.ErrConfiguration, "signer key not provided")
	}
	part, err := sigs.Sign(cred, c.pk, txBytes, expected)
	if err != nil {
		return nil, err
	}
	c.logger.Info("transaction signed", "digest", tx.DigestOf(txBytes), "signer", part.Signer)
	return part, nil
}

// Combine merges partial signatures and verifies the result against the
// transaction. It fails with ErrMissingSignatures when there are no
// signatures or not enough weight, and with ErrInvalidSignature when a
// signature is not valid. Each partial signature is checked on its own
// first, so the error names the signer at fault.
func (c *Coordinator) Combine(txBytes []byte, parts []*sigs.PartialSignature) (*multisig.Signature, error) {
	if _, err := c.checkSender(txBytes); err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, errors.Wrap(errors.ErrMissingSignatures, "no partial signatures")
	}
	signers, err := sigs.VerifyTxSignatures(c.pk, txBytes, sigs.Signatures(parts))
	if err != nil {
		return nil, errors.Wrapf(err, "transaction %s", tx.DigestOf(txBytes))
	}
	c.logger.Debug("partial signatures verified", "digest", tx.DigestOf(txBytes), "signers", signers)
	ms, err := c.pk.Combine(sigs.Signatures(parts))
	if err != nil {
		return nil, err
	}
	if err := ms.Verify(txBytes); err != nil {
		return nil, err
	}
	return ms, nil
}

// Submit executes the transaction authorized by the multisig signature.
func (c *Coordinator) Submit(ctx context.Context, txBytes []byte, ms *multisig.Signature) (*client.TransactionResponse, error) {
	res, err := c.network.Execute(ctx, txBytes, ms.String())
	if err != nil {
		return res, errors.Wrapf(err, "submit %s", tx.DigestOf(txBytes))
	}
	c.logger.Info("transaction submitted", "digest", res.Digest)
	return res, nil
}

// Run executes the action for the request. An unknown action fails with
// ErrInvalidAction before the network is used.
func (c *Coordinator) Run(ctx context.Context, action string, req Request) (*Outcome, error) {
	a, err := ParseAction(action)
	if err != nil {
		return nil, err
	}
	if req.Bundle == "" {
		return nil, errors.Wrap(errors.ErrConfiguration, "bundle path not set")
	}
	file, err := bundle.Load(req.Bundle)
	if err != nil {
		return nil, err
	}

	txBytes, err := c.transaction(ctx, a, file, req)
	if err != nil {
		return nil, err
	}
	out := &Outcome{Action: a, Digest: tx.DigestOf(txBytes)}

	switch a {
	case ActionSign:
		part, err := c.Sign(txBytes, req.Credential, req.Signer)
		if err != nil {
			return nil, err
		}
		if err := file.Add(txBytes, part); err != nil {
			return nil, err
		}
		if err := file.Save(); err != nil {
			return nil, err
		}
		out.Partial = part
	case ActionCombine:
		parts, err := file.Signatures(out.Digest)
		if err != nil {
			return nil, err
		}
		ms, err := c.Combine(txBytes, parts)
		if err != nil {
			return nil, err
		}
		res, err := c.Submit(ctx, txBytes, ms)
		if err != nil {
			return nil, err
		}
		for _, p := range parts {
			out.Signers = append(out.Signers, p.Signer)
		}
		out.Response = res
		if cost, err := res.Cost(c.Address()); err == nil {
			out.Cost = &cost
		}
		file.Clear(out.Digest)
		if err := file.Save(); err != nil {
			return out, errors.Wrap(err, "transaction submitted, cannot clear bundle")
		}
	}
	return out, nil
}

// transaction returns the bytes of the transaction the request refers to.
func (c *Coordinator) transaction(ctx context.Context, a Action, file *bundle.File, req Request) ([]byte, error) {
	if req.Digest == "" {
		data, err := c.BuildTransfer(ctx, req.Transfer)
		if err != nil {
			return nil, errors.Wrap(err, "build transfer")
		}
		return data.Bytes(), nil
	}

	digest, err := suiops.ParseDigest(req.Digest)
	if err != nil {
		return nil, err
	}
	e, ok := file.Entry(digest)
	if !ok {
		if a == ActionCombine {
			return nil, errors.Wrapf(errors.ErrMissingSignatures, "no signatures of %s in %q", digest, file.Path())
		}
		return nil, errors.Wrapf(errors.ErrNotFound, "transaction %s in %q", digest, file.Path())
	}
	txBytes, err := e.Bytes()
	if err != nil {
		return nil, err
	}
	if got := tx.DigestOf(txBytes); got != digest {
		return nil, errors.Wrapf(errors.ErrState, "bundle entry %s holds transaction %s", digest, got)
	}
	return txBytes, nil
}
