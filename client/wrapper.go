package client

import (
	"context"
	"encoding/base64"

	"github.com/artfi/suiops/crypto"
	"github.com/artfi/suiops/errors"
	"github.com/artfi/suiops/tx"
)

func encodeBytes(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// SignAndExecute signs the transaction with a single key and submits it.
// The signer must be the transaction sender.
func (c *Client) SignAndExecute(ctx context.Context, data *tx.Data, signer crypto.Signer) (*TransactionResponse, error) {
	if addr := signer.PublicKey().Address(); !addr.Equals(data.Sender) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "signer %s is not the sender %s", addr, data.Sender)
	}
	txBytes := data.Bytes()
	sig, err := crypto.SignTransaction(signer, txBytes)
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	return c.Execute(ctx, txBytes, sig.String())
}

// BuildAndExecute builds the transaction using the node state, signs it
// with a single key and submits it.
func (c *Client) BuildAndExecute(ctx context.Context, b *tx.Builder, signer crypto.Signer) (*TransactionResponse, error) {
	data, err := b.WithLogger(c.logger).Build(ctx, c)
	if err != nil {
		return nil, errors.Wrap(err, "build")
	}
	return c.SignAndExecute(ctx, data, signer)
}
