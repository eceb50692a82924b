package tx

import (
	"github.com/artfi/suiops"
	"github.com/artfi/suiops/bcs"
	"github.com/artfi/suiops/errors"
)

// SharedObject is a reference to a shared object input.
type SharedObject struct {
	ObjectID             suiops.ObjectID
	InitialSharedVersion uint64
	Mutable              bool
}

// ObjectArg is an object input. Exactly one of the fields is set.
type ObjectArg struct {
	ImmOrOwned *ObjectRef
	Shared     *SharedObject
	Receiving  *ObjectRef
}

const (
	objectArgImmOrOwned = 0
	objectArgShared     = 1
	objectArgReceiving  = 2
)

// ID returns the identifier of the referenced object.
func (a ObjectArg) ID() suiops.ObjectID {
	switch {
	case a.ImmOrOwned != nil:
		return a.ImmOrOwned.ObjectID
	case a.Shared != nil:
		return a.Shared.ObjectID
	case a.Receiving != nil:
		return a.Receiving.ObjectID
	default:
		return suiops.ZeroAddress
	}
}

func (a ObjectArg) MarshalBCS(e *bcs.Encoder) {
	switch {
	case a.ImmOrOwned != nil:
		e.Variant(objectArgImmOrOwned)
		a.ImmOrOwned.MarshalBCS(e)
	case a.Shared != nil:
		e.Variant(objectArgShared)
		e.Fixed(a.Shared.ObjectID[:])
		e.U64(a.Shared.InitialSharedVersion)
		e.Bool(a.Shared.Mutable)
	case a.Receiving != nil:
		e.Variant(objectArgReceiving)
		a.Receiving.MarshalBCS(e)
	default:
		// Validate rejects such values before they are serialized.
		panic("empty object argument")
	}
}

func (a *ObjectArg) UnmarshalBCS(d *bcs.Decoder) {
	switch tag := d.Variant(); tag {
	case objectArgImmOrOwned:
		a.ImmOrOwned = new(ObjectRef)
		a.ImmOrOwned.UnmarshalBCS(d)
	case objectArgShared:
		var s SharedObject
		copy(s.ObjectID[:], d.Fixed(suiops.AddressLength))
		s.InitialSharedVersion = d.U64()
		s.Mutable = d.Bool()
		a.Shared = &s
	case objectArgReceiving:
		a.Receiving = new(ObjectRef)
		a.Receiving.UnmarshalBCS(d)
	default:
		d.Fail(errors.Wrapf(errors.ErrInput, "unknown object argument variant %d", tag))
	}
}

func (a ObjectArg) Validate() error {
	var n int
	for _, set := range []bool{a.ImmOrOwned != nil, a.Shared != nil, a.Receiving != nil} {
		if set {
			n++
		}
	}
	if n != 1 {
		return errors.Wrapf(errors.ErrState, "object argument must have exactly one reference, got %d", n)
	}
	return nil
}

// CallArg is a transaction input: either a pure value in its serialized
// form or an object.
type CallArg struct {
	Pure   []byte
	Object *ObjectArg
}

const (
	callArgPure   = 0
	callArgObject = 1
)

func (a CallArg) MarshalBCS(e *bcs.Encoder) {
	if a.Object != nil {
		e.Variant(callArgObject)
		a.Object.MarshalBCS(e)
		return
	}
	e.Variant(callArgPure)
	e.Bytes(a.Pure)
}

func (a *CallArg) UnmarshalBCS(d *bcs.Decoder) {
	switch tag := d.Variant(); tag {
	case callArgPure:
		a.Pure = d.Bytes()
		if a.Pure == nil && d.Err() == nil {
			a.Pure = []byte{}
		}
	case callArgObject:
		a.Object = new(ObjectArg)
		a.Object.UnmarshalBCS(d)
	default:
		d.Fail(errors.Wrapf(errors.ErrInput, "unknown call argument variant %d", tag))
	}
}

func (a CallArg) Validate() error {
	if a.Object != nil {
		if a.Pure != nil {
			return errors.Wrap(errors.ErrState, "call argument is both pure and object")
		}
		return a.Object.Validate()
	}
	if a.Pure == nil {
		return errors.Wrap(errors.ErrEmpty, "call argument")
	}
	return nil
}

// ArgumentKind tells what an Argument refers to.
type ArgumentKind uint8

const (
	ArgGasCoin      ArgumentKind = 0
	ArgInput        ArgumentKind = 1
	ArgResult       ArgumentKind = 2
	ArgNestedResult ArgumentKind = 3
)

// Argument is a command argument. It refers to the gas coin, a transaction
// input or a result of a previous command.
type Argument struct {
	Kind ArgumentKind
	// Index is the input index or the command index.
	Index uint16
	// Nested is the result index of a command returning multiple values.
	Nested uint16
}

// GasCoin returns an argument referring to the gas payment coin.
func GasCoin() Argument {
	return Argument{Kind: ArgGasCoin}
}

// Input returns an argument referring to the transaction input of given
// index.
func Input(i uint16) Argument {
	return Argument{Kind: ArgInput, Index: i}
}

// Result returns an argument referring to the result of given command.
func Result(cmd uint16) Argument {
	return Argument{Kind: ArgResult, Index: cmd}
}

// NestedResult returns an argument referring to a single value of a
// command returning multiple values.
func NestedResult(cmd, result uint16) Argument {
	return Argument{Kind: ArgNestedResult, Index: cmd, Nested: result}
}

func (a Argument) MarshalBCS(e *bcs.Encoder) {
	e.Variant(uint32(a.Kind))
	switch a.Kind {
	case ArgInput, ArgResult:
		e.U16(a.Index)
	case ArgNestedResult:
		e.U16(a.Index)
		e.U16(a.Nested)
	}
}

func (a *Argument) UnmarshalBCS(d *bcs.Decoder) {
	tag := d.Variant()
	switch a.Kind = ArgumentKind(tag); a.Kind {
	case ArgGasCoin:
	case ArgInput, ArgResult:
		a.Index = d.U16()
	case ArgNestedResult:
		a.Index = d.U16()
		a.Nested = d.U16()
	default:
		d.Fail(errors.Wrapf(errors.ErrInput, "unknown argument variant %d", tag))
	}
}

func marshalArguments(e *bcs.Encoder, args []Argument) {
	e.Len(len(args))
	for _, a := range args {
		a.MarshalBCS(e)
	}
}

func unmarshalArguments(d *bcs.Decoder) []Argument {
	n := d.Len()
	if d.Err() != nil {
		return nil
	}
	args := make([]Argument, n)
	for i := range args {
		args[i].UnmarshalBCS(d)
	}
	return args
}
