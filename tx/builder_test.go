package tx

import (
	"context"
	"testing"

	"github.com/artfi/suiops"
	"github.com/artfi/suiops/errors"
	"github.com/stretchr/testify/require"
)

type fakeChain struct {
	objects  map[suiops.ObjectID]*Object
	price    uint64
	coins    []Coin
	cost     *GasCost
	dryRuns  [][]byte
	coinsFor []suiops.Address
}

var _ ChainReader = (*fakeChain)(nil)

func (c *fakeChain) GetObject(ctx context.Context, id suiops.ObjectID) (*Object, error) {
	obj, ok := c.objects[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "object %s", id)
	}
	return obj, nil
}

func (c *fakeChain) ReferenceGasPrice(context.Context) (uint64, error) {
	return c.price, nil
}

func (c *fakeChain) GasCoins(ctx context.Context, owner suiops.Address) ([]Coin, error) {
	c.coinsFor = append(c.coinsFor, owner)
	return c.coins, nil
}

func (c *fakeChain) DryRun(ctx context.Context, txBytes []byte) (*GasCost, error) {
	c.dryRuns = append(c.dryRuns, txBytes)
	return c.cost, nil
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		objects: map[suiops.ObjectID]*Object{
			filled(0x22): {
				Ref:   ObjectRef{ObjectID: filled(0x22), Version: 7, Digest: filled(0x03)},
				Owner: Owner{Kind: OwnerAddress, Address: filled(0x11)},
			},
			filled(0x23): {
				Ref:   ObjectRef{ObjectID: filled(0x23), Version: 12, Digest: filled(0x05)},
				Owner: Owner{Kind: OwnerShared, InitialSharedVersion: 2},
			},
		},
		price: 1000,
		coins: []Coin{
			{Ref: ObjectRef{ObjectID: filled(0x22), Version: 7, Digest: filled(0x03)}, Balance: 1 << 40},
			{Ref: ObjectRef{ObjectID: filled(0x33), Version: 9, Digest: filled(0x04)}, Balance: 1 << 40},
		},
		cost: &GasCost{ComputationCost: 1000000, StorageCost: 2000000, StorageRebate: 1000000},
	}
}

func TestBuildTransfer(t *testing.T) {
	chain := newFakeChain()

	b := NewBuilder(filled(0x11))
	obj := b.Object(filled(0x22))
	require.Equal(t, obj, b.Object(filled(0x22)), "same object must be a single input")
	b.TransferObjects([]Argument{obj}, b.PureAddress(filled(0xaa)))
	b.SetGasBudget(5000000)

	data, err := b.Build(context.Background(), chain)
	require.NoError(t, err)
	require.Empty(t, chain.dryRuns, "budget is set, no dry run expected")

	// Object 0x22 is an input, so it is not used for gas even though it
	// is a coin.
	require.Equal(t, transferFixture().Bytes(), data.Bytes())
	require.Equal(t, []suiops.Address{filled(0x11)}, chain.coinsFor)
}

func TestBuildEstimatesBudget(t *testing.T) {
	chain := newFakeChain()

	b := NewBuilder(filled(0x11))
	shared := b.Object(filled(0x23))
	b.MoveCall("0x2::clock::touch", nil, shared)

	data, err := b.Build(context.Background(), chain)
	require.NoError(t, err)
	require.Len(t, chain.dryRuns, 1)

	dry, err := Unmarshal(chain.dryRuns[0])
	require.NoError(t, err)
	require.Equal(t, MaxGasBudget, dry.Gas.Budget)
	require.Empty(t, dry.Gas.Payment)

	require.Equal(t, uint64(1000000+1000*1000+2000000-1000000), data.Gas.Budget)
	require.Equal(t, uint64(1000), data.Gas.Price)
	require.Len(t, data.Gas.Payment, 1)

	arg := data.Kind.Inputs[0].Object
	require.NotNil(t, arg.Shared)
	require.Equal(t, uint64(2), arg.Shared.InitialSharedVersion)
	require.True(t, arg.Shared.Mutable)
}

func TestBuildErrors(t *testing.T) {
	chain := newFakeChain()

	b := NewBuilder(filled(0x11))
	b.TransferObjects([]Argument{b.Object(filled(0x99))}, b.PureAddress(filled(0xaa)))
	_, err := b.Build(context.Background(), chain)
	if !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}

	b = NewBuilder(filled(0x11))
	b.MoveCall("not a target", nil)
	_, err = b.Build(context.Background(), chain)
	if !errors.ErrInput.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}

	b = NewBuilder(suiops.ZeroAddress)
	b.TransferObjects([]Argument{GasCoin()}, b.PureAddress(filled(0xaa)))
	_, err = b.Build(context.Background(), chain)
	if !errors.ErrEmpty.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}

	chain.coins = nil
	b = NewBuilder(filled(0x11))
	b.TransferObjects([]Argument{b.Object(filled(0x22))}, b.PureAddress(filled(0xaa)))
	_, err = b.Build(context.Background(), chain)
	if !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestBuildPublish(t *testing.T) {
	chain := newFakeChain()
	sender := suiops.Address(filled(0x11))

	b := NewBuilder(sender)
	upgradeCap := b.Publish([][]byte{{0xa1, 0x1c, 0xeb, 0x0b}}, []suiops.ObjectID{suiops.MustParseAddress("0x1"), suiops.MustParseAddress("0x2")})
	b.TransferObjects([]Argument{upgradeCap}, b.PureAddress(sender))
	b.SetGasBudget(100000000)

	data, err := b.Build(context.Background(), chain)
	require.NoError(t, err)
	require.Len(t, data.Kind.Commands, 2)
	require.Equal(t, Result(0), data.Kind.Commands[1].(*TransferObjects).Objects[0])
	require.Equal(t, Input(0), data.Kind.Commands[1].(*TransferObjects).Address)
	require.Equal(t, sender[:], data.Kind.Inputs[0].Pure)
}
