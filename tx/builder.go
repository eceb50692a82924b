package tx

import (
	"context"
	"encoding/binary"
	"strings"

	"github.com/artfi/suiops"
	"github.com/artfi/suiops/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// ChainReader provides the chain state required to build a transaction.
type ChainReader interface {
	// GetObject returns the current version and ownership of an object.
	GetObject(ctx context.Context, id suiops.ObjectID) (*Object, error)
	// ReferenceGasPrice returns the gas price of the current epoch.
	ReferenceGasPrice(ctx context.Context) (uint64, error)
	// GasCoins returns SUI coins owned by given address.
	GasCoins(ctx context.Context, owner suiops.Address) ([]Coin, error)
	// DryRun executes serialized transaction without committing it and
	// returns its cost.
	DryRun(ctx context.Context, txBytes []byte) (*GasCost, error)
}

// input is a transaction input that is either already resolved or an
// object that is resolved when building.
type input struct {
	arg    CallArg
	object suiops.ObjectID
}

func (in input) resolved() bool {
	return in.arg.Pure != nil || in.arg.Object != nil
}

// Builder creates programmable transactions. Methods that add inputs or
// commands return an Argument that refers to them. Errors are collected and
// returned by Build.
type Builder struct {
	sender   suiops.Address
	inputs   []input
	commands []Command
	gas      GasData
	err      error
	logger   log.Logger
}

// NewBuilder returns a builder of a transaction sent by given address.
func NewBuilder(sender suiops.Address) *Builder {
	return &Builder{
		sender: sender,
		logger: log.NewNopLogger(),
	}
}

// WithLogger sets the logger used to report resolved values.
func (b *Builder) WithLogger(l log.Logger) *Builder {
	b.logger = l.With("module", "tx")
	return b
}

func (b *Builder) addInput(in input) Argument {
	b.inputs = append(b.inputs, in)
	return Input(uint16(len(b.inputs) - 1))
}

// Pure adds a pure input of already serialized value.
func (b *Builder) Pure(serialized []byte) Argument {
	if serialized == nil {
		serialized = []byte{}
	}
	return b.addInput(input{arg: CallArg{Pure: serialized}})
}

// PureAddress adds an address input.
func (b *Builder) PureAddress(a suiops.Address) Argument {
	return b.Pure(append([]byte(nil), a[:]...))
}

// PureU64 adds an u64 input.
func (b *Builder) PureU64(v uint64) Argument {
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint64(raw, v)
	return b.Pure(raw)
}

// Object adds an object input. Its reference is resolved when building.
// Adding the same object twice returns the same argument.
func (b *Builder) Object(id suiops.ObjectID) Argument {
	for i, in := range b.inputs {
		if in.arg.Object != nil && in.arg.Object.ID() == id || !in.resolved() && in.object == id {
			return Input(uint16(i))
		}
	}
	return b.addInput(input{object: id})
}

// ObjectArg adds an object input of a known reference.
func (b *Builder) ObjectArg(arg ObjectArg) Argument {
	if err := arg.Validate(); err != nil {
		b.fail(err)
	}
	return b.addInput(input{arg: CallArg{Object: &arg}})
}

// Command adds a command and returns its result.
func (b *Builder) Command(c Command) Argument {
	b.commands = append(b.commands, c)
	return Result(uint16(len(b.commands) - 1))
}

// TransferObjects sends objects to the recipient.
func (b *Builder) TransferObjects(objects []Argument, recipient Argument) Argument {
	return b.Command(&TransferObjects{Objects: objects, Address: recipient})
}

// SplitCoins splits given amounts from a coin.
func (b *Builder) SplitCoins(coin Argument, amounts ...Argument) Argument {
	return b.Command(&SplitCoins{Coin: coin, Amounts: amounts})
}

// MergeCoins merges sources into the destination coin.
func (b *Builder) MergeCoins(destination Argument, sources ...Argument) Argument {
	return b.Command(&MergeCoins{Destination: destination, Sources: sources})
}

// Publish publishes compiled modules. The result is the UpgradeCap.
func (b *Builder) Publish(modules [][]byte, dependencies []suiops.ObjectID) Argument {
	return b.Command(&Publish{Modules: modules, Dependencies: dependencies})
}

// MoveCall calls a function given by its target "<package>::<module>::<function>".
func (b *Builder) MoveCall(target string, typeArgs []TypeTag, args ...Argument) Argument {
	parts := strings.Split(target, "::")
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		b.fail(errors.Wrapf(errors.ErrInput, "invalid move call target %q", target))
		return Argument{}
	}
	pkg, err := suiops.ParseAddress(parts[0])
	if err != nil {
		b.fail(errors.Wrapf(err, "move call target %q", target))
		return Argument{}
	}
	return b.Command(&MoveCall{
		Package:       pkg,
		Module:        parts[1],
		Function:      parts[2],
		TypeArguments: typeArgs,
		Arguments:     args,
	})
}

func (b *Builder) fail(err error) {
	b.err = errors.Append(b.err, err)
}

// SetGasBudget sets the budget. Without a budget, it is estimated with a
// dry run.
func (b *Builder) SetGasBudget(budget uint64) *Builder {
	b.gas.Budget = budget
	return b
}

// Build resolves all missing information using the chain and returns the
// transaction.
func (b *Builder) Build(ctx context.Context, chain ChainReader) (*Data, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.sender.IsZero() {
		return nil, errors.Wrap(errors.ErrEmpty, "sender")
	}

	inputs, err := b.resolveInputs(ctx, chain)
	if err != nil {
		return nil, err
	}
	data := &Data{
		Kind: ProgrammableTransaction{
			Inputs:   inputs,
			Commands: append([]Command(nil), b.commands...),
		},
		Sender: b.sender,
		Gas:    b.gas,
	}
	if data.Gas.Owner.IsZero() {
		data.Gas.Owner = b.sender
	}

	if data.Gas.Price == 0 {
		if data.Gas.Price, err = chain.ReferenceGasPrice(ctx); err != nil {
			return nil, errors.Wrap(err, "reference gas price")
		}
	}

	if data.Gas.Budget == 0 {
		dry := *data
		dry.Gas.Budget = MaxGasBudget
		dry.Gas.Payment = nil
		cost, err := chain.DryRun(ctx, dry.Bytes())
		if err != nil {
			return nil, errors.Wrap(err, "dry run")
		}
		data.Gas.Budget = EstimateBudget(*cost, data.Gas.Price)
		b.logger.Debug("gas budget estimated",
			"computation", cost.ComputationCost,
			"storage", cost.StorageCost,
			"rebate", cost.StorageRebate,
			"budget", data.Gas.Budget)
	}

	if len(data.Gas.Payment) == 0 {
		coins, err := chain.GasCoins(ctx, data.Gas.Owner)
		if err != nil {
			return nil, errors.Wrap(err, "gas coins")
		}
		if data.Gas.Payment, err = SelectGasCoins(coins, data.Gas.Budget, data.InputObjects()); err != nil {
			return nil, errors.Wrapf(err, "gas owner %s", data.Gas.Owner)
		}
	}

	if err := data.Validate(); err != nil {
		return nil, err
	}
	b.logger.Debug("transaction built", "digest", data.Digest(), "sender", data.Sender)
	return data, nil
}

func (b *Builder) resolveInputs(ctx context.Context, chain ChainReader) ([]CallArg, error) {
	args := make([]CallArg, len(b.inputs))
	for i, in := range b.inputs {
		if in.resolved() {
			args[i] = in.arg
			continue
		}
		obj, err := chain.GetObject(ctx, in.object)
		if err != nil {
			return nil, errors.Wrapf(err, "object %s", in.object)
		}
		ref := obj.Ref
		var arg ObjectArg
		if obj.Owner.Kind == OwnerShared {
			arg.Shared = &SharedObject{
				ObjectID:             ref.ObjectID,
				InitialSharedVersion: obj.Owner.InitialSharedVersion,
				Mutable:              true,
			}
		} else {
			arg.ImmOrOwned = &ref
		}
		args[i] = CallArg{Object: &arg}
	}
	return args, nil
}
