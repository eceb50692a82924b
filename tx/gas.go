package tx

import (
	"github.com/artfi/suiops"
	"github.com/artfi/suiops/errors"
)

const (
	// MaxGasBudget is the budget used to dry run a transaction in order to
	// estimate its cost.
	MaxGasBudget uint64 = 50000000000

	// GasSafeOverhead is the number of gas units, priced at the gas price,
	// added on top of the estimated computation cost.
	GasSafeOverhead uint64 = 1000
)

// GasCost is the cost summary of an executed or dry run transaction.
type GasCost struct {
	ComputationCost uint64
	StorageCost     uint64
	StorageRebate   uint64
}

// Net returns the amount charged: computation and storage costs less the
// storage rebate. The result is negative when the rebate is larger.
func (c GasCost) Net() int64 {
	return int64(c.ComputationCost) + int64(c.StorageCost) - int64(c.StorageRebate)
}

// EstimateBudget returns a gas budget for a transaction of given dry run
// cost. The budget covers the computation with a safety overhead and the
// storage cost less the rebate, but is never lower than the computation
// with overhead.
func EstimateBudget(cost GasCost, price uint64) uint64 {
	base := cost.ComputationCost + GasSafeOverhead*price
	if total := base + cost.StorageCost; total > cost.StorageRebate && total-cost.StorageRebate > base {
		return total - cost.StorageRebate
	}
	return base
}

// SelectGasCoins returns references to coins that together cover the
// budget. Coins that are used as transaction inputs are never selected.
func SelectGasCoins(coins []Coin, budget uint64, exclude []suiops.ObjectID) ([]ObjectRef, error) {
	excluded := make(map[suiops.ObjectID]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}

	var (
		refs  []ObjectRef
		total uint64
	)
	for _, c := range coins {
		if excluded[c.Ref.ObjectID] || c.Balance == 0 {
			continue
		}
		refs = append(refs, c.Ref)
		total += c.Balance
		if total >= budget {
			return refs, nil
		}
		if len(refs) == MaxGasObjects {
			break
		}
	}
	if len(refs) == 0 {
		return nil, errors.Wrap(errors.ErrNotFound, "no coins available for gas payment")
	}
	return nil, errors.Wrapf(errors.ErrState, "insufficient gas: coins balance %d, budget %d", total, budget)
}
