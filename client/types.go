package client

import (
	"encoding/json"
	"strconv"

	"github.com/artfi/suiops"
	"github.com/artfi/suiops/coin"
	"github.com/artfi/suiops/errors"
	"github.com/artfi/suiops/tx"
)

// Execution status reported in transaction effects.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Object change kinds.
const (
	ChangePublished = "published"
	ChangeCreated   = "created"
	ChangeMutated   = "mutated"
	ChangeTransfer  = "transferred"
	ChangeDeleted   = "deleted"
	ChangeWrapped   = "wrapped"
)

// ObjectChange is a change of an object caused by a transaction.
type ObjectChange struct {
	Type       string          `json:"type"`
	Sender     suiops.Address  `json:"sender,omitempty"`
	Owner      json.RawMessage `json:"owner,omitempty"`
	ObjectType string          `json:"objectType,omitempty"`
	ObjectID   suiops.ObjectID `json:"objectId,omitempty"`
	PackageID  suiops.ObjectID `json:"packageId,omitempty"`
	Version    uint64          `json:"version,string,omitempty"`
	Digest     string          `json:"digest,omitempty"`
	Modules    []string        `json:"modules,omitempty"`
}

// BalanceChange is a change of a coin balance of an owner. Amount is
// negative when the owner paid.
type BalanceChange struct {
	Owner    json.RawMessage `json:"owner"`
	CoinType string          `json:"coinType"`
	Amount   string          `json:"amount"`
}

// OwnerAddress returns the address owning the balance.
func (b BalanceChange) OwnerAddress() (suiops.Address, error) {
	owner, err := parseOwner(b.Owner)
	if err != nil {
		return suiops.ZeroAddress, err
	}
	return owner.Address, nil
}

// ExecutionStatus tells whether the transaction was applied.
type ExecutionStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// GasUsed is the gas summary of a transaction, amounts are in MIST.
type GasUsed struct {
	ComputationCost         string `json:"computationCost"`
	StorageCost             string `json:"storageCost"`
	StorageRebate           string `json:"storageRebate"`
	NonRefundableStorageFee string `json:"nonRefundableStorageFee"`
}

// Cost converts the summary to numbers.
func (g GasUsed) Cost() (*tx.GasCost, error) {
	var (
		cost tx.GasCost
		err  error
	)
	if cost.ComputationCost, err = parseUint(g.ComputationCost); err != nil {
		return nil, errors.Wrap(err, "computation cost")
	}
	if cost.StorageCost, err = parseUint(g.StorageCost); err != nil {
		return nil, errors.Wrap(err, "storage cost")
	}
	if cost.StorageRebate, err = parseUint(g.StorageRebate); err != nil {
		return nil, errors.Wrap(err, "storage rebate")
	}
	return &cost, nil
}

// Effects is the subset of transaction effects used by the tooling.
type Effects struct {
	Status  ExecutionStatus `json:"status"`
	GasUsed GasUsed         `json:"gasUsed"`
}

// TransactionResponse is the result of executing a transaction.
type TransactionResponse struct {
	Digest         string          `json:"digest"`
	Effects        *Effects        `json:"effects,omitempty"`
	ObjectChanges  []ObjectChange  `json:"objectChanges,omitempty"`
	BalanceChanges []BalanceChange `json:"balanceChanges,omitempty"`
	Errors         []string        `json:"errors,omitempty"`
}

// Failed returns an error if the node reports that the transaction was not
// applied.
func (r *TransactionResponse) Failed() error {
	if len(r.Errors) != 0 {
		return errors.Wrapf(errors.ErrNetwork, "transaction %s: %v", r.Digest, r.Errors)
	}
	if r.Effects != nil && r.Effects.Status.Status == StatusFailure {
		return errors.Wrapf(errors.ErrNetwork, "transaction %s failed: %s", r.Digest, r.Effects.Status.Error)
	}
	return nil
}

// Cost returns the amount of SUI paid by the owner. Balance changes of
// the owner in other coin types are ignored.
func (r *TransactionResponse) Cost(owner suiops.Address) (coin.Coin, error) {
	var (
		total coin.Coin
		found bool
	)
	for _, b := range r.BalanceChanges {
		if !coin.IsSUI(b.CoinType) {
			continue
		}
		addr, err := b.OwnerAddress()
		if err != nil || !addr.Equals(owner) {
			continue
		}
		amount, err := coin.FromMist(b.Amount)
		if err != nil {
			return total, errors.Wrap(err, "balance change")
		}
		total = total.Add(amount)
		found = true
	}
	if !found {
		return total, errors.Wrapf(errors.ErrMissingData, "no balance change of %s", owner)
	}
	return total.Abs(), nil
}

// Published returns the id of the package published by the transaction.
func (r *TransactionResponse) Published() (suiops.ObjectID, error) {
	for _, c := range r.ObjectChanges {
		if c.Type == ChangePublished {
			return c.PackageID, nil
		}
	}
	return suiops.ZeroAddress, errors.Wrap(errors.ErrMissingData, "no published package")
}

// Created returns the id of the first created object of given type.
func (r *TransactionResponse) Created(objectType string) (suiops.ObjectID, error) {
	for _, c := range r.ObjectChanges {
		if c.Type == ChangeCreated && c.ObjectType == objectType {
			return c.ObjectID, nil
		}
	}
	return suiops.ZeroAddress, errors.Wrapf(errors.ErrMissingData, "no created %s object", objectType)
}

type objectOptions struct {
	ShowType  bool `json:"showType"`
	ShowOwner bool `json:"showOwner"`
}

type objectResponse struct {
	Data  *objectData     `json:"data"`
	Error json.RawMessage `json:"error"`
}

type objectData struct {
	ObjectID suiops.ObjectID `json:"objectId"`
	Version  string          `json:"version"`
	Digest   suiops.Digest   `json:"digest"`
	Type     string          `json:"type"`
	Owner    json.RawMessage `json:"owner"`
}

type coinPage struct {
	Data        []coinData `json:"data"`
	NextCursor  *string    `json:"nextCursor"`
	HasNextPage bool       `json:"hasNextPage"`
}

type coinData struct {
	CoinType     string          `json:"coinType"`
	CoinObjectID suiops.ObjectID `json:"coinObjectId"`
	Version      string          `json:"version"`
	Digest       suiops.Digest   `json:"digest"`
	Balance      string          `json:"balance"`
}

type dryRunResponse struct {
	Effects Effects `json:"effects"`
}

type responseOptions struct {
	ShowEffects        bool `json:"showEffects"`
	ShowEvents         bool `json:"showEvents"`
	ShowObjectChanges  bool `json:"showObjectChanges"`
	ShowBalanceChanges bool `json:"showBalanceChanges"`
	ShowInput          bool `json:"showInput"`
	ShowRawInput       bool `json:"showRawInput"`
}

// bigint is an integer that the node renders either as a JSON number or as
// a string.
type bigint uint64

func (b *bigint) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		s = string(raw)
	}
	v, err := parseUint(s)
	if err != nil {
		return err
	}
	*b = bigint(v)
	return nil
}

func parseUint(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrNetwork, "malformed number %q", s)
	}
	return v, nil
}

// parseOwner decodes the owner representation used by the node:
// {"AddressOwner": "0x.."}, {"ObjectOwner": "0x.."},
// {"Shared": {"initial_shared_version": n}} or "Immutable".
func parseOwner(raw json.RawMessage) (tx.Owner, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "Immutable" {
			return tx.Owner{Kind: tx.OwnerImmutable}, nil
		}
		return tx.Owner{}, errors.Wrapf(errors.ErrNetwork, "unknown owner %q", s)
	}

	var o struct {
		AddressOwner *suiops.Address `json:"AddressOwner"`
		ObjectOwner  *suiops.Address `json:"ObjectOwner"`
		Shared       *struct {
			InitialSharedVersion bigint `json:"initial_shared_version"`
		} `json:"Shared"`
	}
	if err := json.Unmarshal(raw, &o); err != nil {
		return tx.Owner{}, errors.Wrapf(errors.ErrNetwork, "malformed owner: %s", err)
	}
	switch {
	case o.AddressOwner != nil:
		return tx.Owner{Kind: tx.OwnerAddress, Address: *o.AddressOwner}, nil
	case o.ObjectOwner != nil:
		return tx.Owner{Kind: tx.OwnerObject, Address: *o.ObjectOwner}, nil
	case o.Shared != nil:
		return tx.Owner{Kind: tx.OwnerShared, InitialSharedVersion: uint64(o.Shared.InitialSharedVersion)}, nil
	default:
		return tx.Owner{}, errors.Wrapf(errors.ErrNetwork, "unknown owner %s", string(raw))
	}
}
