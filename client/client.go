package client

import (
	"context"
	"strconv"

	"github.com/artfi/suiops"
	"github.com/artfi/suiops/coin"
	"github.com/artfi/suiops/errors"
	"github.com/artfi/suiops/tx"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/ybbus/jsonrpc/v2"
)

const coinsPerPage = 50

// WaitForLocalExecution makes the node return only after the transaction
// effects are available locally.
const WaitForLocalExecution = "WaitForLocalExecution"

// Client is a Sui JSON-RPC client wrapped to provide simple access to the
// chain state required by the tooling.
//
// Basic accessors are declared here. Higher-level API built around them is
// defined in wrapper.go.
type Client struct {
	conn   Connection
	logger log.Logger
}

var _ tx.ChainReader = (*Client)(nil)

// NewClient wraps a Client around an existing JSON-RPC connection.
func NewClient(conn Connection) *Client {
	return &Client{
		conn:   conn,
		logger: log.NewNopLogger(),
	}
}

// WithLogger sets the logger used to report requests.
func (c *Client) WithLogger(l log.Logger) *Client {
	c.logger = l.With("module", "client")
	return c
}

// call invokes given method and decodes the result into out. Any failure,
// including an error returned by the node, is an ErrNetwork. The call is
// aborted when ctx is done or after DefaultTimeout.
func (c *Client) call(ctx context.Context, out interface{}, method string, params ...interface{}) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrapf(errors.ErrNetwork, "%s: %s", method, err)
	}
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	c.logger.Debug("rpc call", "method", method)
	if err := c.conn.Bind(ctx).CallFor(out, method, params...); err != nil {
		if rpcErr, ok := err.(*jsonrpc.RPCError); ok {
			return errors.Wrapf(errors.ErrNetwork, "%s: node error %d: %s", method, rpcErr.Code, rpcErr.Message)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.Wrapf(errors.ErrNetwork, "%s: %s", method, ctxErr)
		}
		return errors.Wrapf(errors.ErrNetwork, "%s: %s", method, err)
	}
	return nil
}

// GetObject returns the current reference, type and owner of an object.
func (c *Client) GetObject(ctx context.Context, id suiops.ObjectID) (*tx.Object, error) {
	var res objectResponse
	if err := c.call(ctx, &res, "sui_getObject", id.String(), objectOptions{ShowType: true, ShowOwner: true}); err != nil {
		return nil, err
	}
	if res.Data == nil {
		if len(res.Error) != 0 {
			return nil, errors.Wrapf(errors.ErrNotFound, "object %s: %s", id, string(res.Error))
		}
		return nil, errors.Wrapf(errors.ErrNotFound, "object %s", id)
	}
	version, err := parseUint(res.Data.Version)
	if err != nil {
		return nil, errors.Wrapf(err, "object %s version", id)
	}
	owner, err := parseOwner(res.Data.Owner)
	if err != nil {
		return nil, errors.Wrapf(err, "object %s owner", id)
	}
	return &tx.Object{
		Ref: tx.ObjectRef{
			ObjectID: res.Data.ObjectID,
			Version:  version,
			Digest:   res.Data.Digest,
		},
		Type:  res.Data.Type,
		Owner: owner,
	}, nil
}

// ReferenceGasPrice returns the gas price of the current epoch.
func (c *Client) ReferenceGasPrice(ctx context.Context) (uint64, error) {
	var price bigint
	if err := c.call(ctx, &price, "suix_getReferenceGasPrice"); err != nil {
		return 0, err
	}
	return uint64(price), nil
}

// GasCoins returns all SUI coins owned by given address.
func (c *Client) GasCoins(ctx context.Context, owner suiops.Address) ([]tx.Coin, error) {
	var (
		coins  []tx.Coin
		cursor *string
	)
	for {
		var page coinPage
		if err := c.call(ctx, &page, "suix_getCoins", owner.String(), coin.SUI, cursor, coinsPerPage); err != nil {
			return nil, err
		}
		for _, d := range page.Data {
			version, err := strconv.ParseUint(d.Version, 10, 64)
			if err != nil {
				return nil, errors.Wrapf(errors.ErrNetwork, "coin %s version %q", d.CoinObjectID, d.Version)
			}
			balance, err := strconv.ParseUint(d.Balance, 10, 64)
			if err != nil {
				return nil, errors.Wrapf(errors.ErrNetwork, "coin %s balance %q", d.CoinObjectID, d.Balance)
			}
			coins = append(coins, tx.Coin{
				Ref: tx.ObjectRef{
					ObjectID: d.CoinObjectID,
					Version:  version,
					Digest:   d.Digest,
				},
				Balance: balance,
			})
		}
		if !page.HasNextPage || page.NextCursor == nil {
			return coins, nil
		}
		cursor = page.NextCursor
	}
}

// DryRun executes a transaction without committing it and returns its
// cost. A transaction that would fail returns an ErrNetwork.
func (c *Client) DryRun(ctx context.Context, txBytes []byte) (*tx.GasCost, error) {
	var res dryRunResponse
	if err := c.call(ctx, &res, "sui_dryRunTransactionBlock", encodeBytes(txBytes)); err != nil {
		return nil, err
	}
	if res.Effects.Status.Status != StatusSuccess {
		return nil, errors.Wrapf(errors.ErrNetwork, "dry run failed: %s", res.Effects.Status.Error)
	}
	return res.Effects.GasUsed.Cost()
}

// Execute submits a signed transaction and waits for its effects. The
// response is returned together with an ErrNetwork if the node reports the
// transaction as failed.
func (c *Client) Execute(ctx context.Context, txBytes []byte, signatures ...string) (*TransactionResponse, error) {
	if len(signatures) == 0 {
		return nil, errors.Wrap(errors.ErrMissingSignatures, "execute")
	}
	opts := responseOptions{
		ShowEffects:        true,
		ShowEvents:         true,
		ShowObjectChanges:  true,
		ShowBalanceChanges: true,
	}
	var res TransactionResponse
	if err := c.call(ctx, &res, "sui_executeTransactionBlock", encodeBytes(txBytes), signatures, opts, WaitForLocalExecution); err != nil {
		return nil, err
	}
	c.logger.Info("transaction executed", "digest", res.Digest)
	if err := res.Failed(); err != nil {
		return &res, err
	}
	return &res, nil
}
