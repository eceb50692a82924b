package tx

import (
	"encoding/base64"
	"fmt"

	"github.com/artfi/suiops"
	"github.com/artfi/suiops/bcs"
	"github.com/artfi/suiops/errors"
	"golang.org/x/crypto/blake2b"
)

// MaxGasObjects is the largest number of coins that can pay for gas.
const MaxGasObjects = 256

// ProgrammableTransaction is the only transaction kind supported.
type ProgrammableTransaction struct {
	Inputs   []CallArg
	Commands []Command
}

func (p *ProgrammableTransaction) MarshalBCS(e *bcs.Encoder) {
	e.Len(len(p.Inputs))
	for _, in := range p.Inputs {
		in.MarshalBCS(e)
	}
	e.Len(len(p.Commands))
	for _, c := range p.Commands {
		marshalCommand(e, c)
	}
}

func (p *ProgrammableTransaction) UnmarshalBCS(d *bcs.Decoder) {
	n := d.Len()
	for i := 0; i < n && d.Err() == nil; i++ {
		var in CallArg
		in.UnmarshalBCS(d)
		p.Inputs = append(p.Inputs, in)
	}
	n = d.Len()
	for i := 0; i < n && d.Err() == nil; i++ {
		if c := unmarshalCommand(d); c != nil {
			p.Commands = append(p.Commands, c)
		}
	}
}

// GasData describes who pays for the transaction and how much.
type GasData struct {
	Payment []ObjectRef
	Owner   suiops.Address
	Price   uint64
	Budget  uint64
}

func (g *GasData) MarshalBCS(e *bcs.Encoder) {
	e.Len(len(g.Payment))
	for _, r := range g.Payment {
		r.MarshalBCS(e)
	}
	e.Fixed(g.Owner[:])
	e.U64(g.Price)
	e.U64(g.Budget)
}

func (g *GasData) UnmarshalBCS(d *bcs.Decoder) {
	n := d.Len()
	for i := 0; i < n && d.Err() == nil; i++ {
		var r ObjectRef
		r.UnmarshalBCS(d)
		g.Payment = append(g.Payment, r)
	}
	copy(g.Owner[:], d.Fixed(suiops.AddressLength))
	g.Price = d.U64()
	g.Budget = d.U64()
}

// Expiration is the epoch after which the transaction cannot be executed.
// Nil means no expiration.
type Expiration struct {
	Epoch *uint64
}

// Data is an unsigned transaction.
type Data struct {
	Kind       ProgrammableTransaction
	Sender     suiops.Address
	Gas        GasData
	Expiration Expiration
}

const (
	dataV1                 = 0
	kindProgrammable       = 0
	expirationNone         = 0
	expirationEpoch        = 1
	transactionDigestScope = "TransactionData::"
)

var (
	_ bcs.Marshaler   = (*Data)(nil)
	_ bcs.Unmarshaler = (*Data)(nil)
)

func (t *Data) MarshalBCS(e *bcs.Encoder) {
	e.Variant(dataV1)
	e.Variant(kindProgrammable)
	t.Kind.MarshalBCS(e)
	e.Fixed(t.Sender[:])
	t.Gas.MarshalBCS(e)
	if t.Expiration.Epoch == nil {
		e.Variant(expirationNone)
	} else {
		e.Variant(expirationEpoch)
		e.U64(*t.Expiration.Epoch)
	}
}

func (t *Data) UnmarshalBCS(d *bcs.Decoder) {
	if v := d.Variant(); d.Err() == nil && v != dataV1 {
		d.Fail(errors.Wrapf(errors.ErrInput, "unsupported transaction data version %d", v))
		return
	}
	if k := d.Variant(); d.Err() == nil && k != kindProgrammable {
		d.Fail(errors.Wrapf(errors.ErrInput, "unsupported transaction kind %d", k))
		return
	}
	t.Kind.UnmarshalBCS(d)
	copy(t.Sender[:], d.Fixed(suiops.AddressLength))
	t.Gas.UnmarshalBCS(d)
	switch exp := d.Variant(); {
	case d.Err() != nil:
	case exp == expirationNone:
	case exp == expirationEpoch:
		epoch := d.U64()
		t.Expiration.Epoch = &epoch
	default:
		d.Fail(errors.Wrapf(errors.ErrInput, "unknown expiration variant %d", exp))
	}
}

// Validate checks that the transaction is complete and can be signed.
func (t *Data) Validate() error {
	if t.Sender.IsZero() {
		return errors.Wrap(errors.ErrEmpty, "sender")
	}
	if len(t.Kind.Commands) == 0 {
		return errors.Wrap(errors.ErrEmpty, "commands")
	}
	for i, in := range t.Kind.Inputs {
		if err := in.Validate(); err != nil {
			return errors.Wrapf(err, "input %d", i)
		}
	}
	for i, c := range t.Kind.Commands {
		if err := validateCommand(c, len(t.Kind.Inputs), i); err != nil {
			return errors.Wrapf(err, "command %d", i)
		}
	}
	if len(t.Gas.Payment) == 0 {
		return errors.Wrap(errors.ErrEmpty, "gas payment")
	}
	if len(t.Gas.Payment) > MaxGasObjects {
		return errors.Wrapf(errors.ErrOverflow, "%d gas objects, max %d", len(t.Gas.Payment), MaxGasObjects)
	}
	if t.Gas.Budget == 0 {
		return errors.Wrap(errors.ErrEmpty, "gas budget")
	}
	if t.Gas.Price == 0 {
		return errors.Wrap(errors.ErrEmpty, "gas price")
	}
	return nil
}

func validateCommand(c Command, inputs, index int) error {
	var args []Argument
	switch c := c.(type) {
	case *MoveCall:
		args = c.Arguments
	case *TransferObjects:
		args = append(append(args, c.Objects...), c.Address)
		if len(c.Objects) == 0 {
			return errors.Wrap(errors.ErrEmpty, "objects to transfer")
		}
	case *SplitCoins:
		args = append(append(args, c.Coin), c.Amounts...)
	case *MergeCoins:
		args = append(append(args, c.Destination), c.Sources...)
	case *Publish:
		if len(c.Modules) == 0 {
			return errors.Wrap(errors.ErrEmpty, "modules")
		}
	case *MakeMoveVec:
		args = c.Elements
		if c.Type == nil && len(c.Elements) == 0 {
			return errors.Wrap(errors.ErrInput, "empty vector requires a type")
		}
	case *Upgrade:
		args = []Argument{c.Ticket}
	case nil:
		return errors.Wrap(errors.ErrEmpty, "command")
	}
	for _, a := range args {
		switch a.Kind {
		case ArgInput:
			if int(a.Index) >= inputs {
				return errors.Wrapf(errors.ErrInput, "input %d does not exist", a.Index)
			}
		case ArgResult, ArgNestedResult:
			if int(a.Index) >= index {
				return errors.Wrapf(errors.ErrInput, "result of command %d is not available", a.Index)
			}
		}
	}
	return nil
}

// Bytes returns the serialized transaction.
func (t *Data) Bytes() []byte {
	return bcs.Marshal(t)
}

// Base64 returns the base64 encoded serialized transaction, as accepted by
// the RPC.
func (t *Data) Base64() string {
	return base64.StdEncoding.EncodeToString(t.Bytes())
}

// Digest returns the transaction digest.
func (t *Data) Digest() suiops.Digest {
	return DigestOf(t.Bytes())
}

// DigestOf returns the digest of serialized transaction bytes: blake2b-256
// of the type name scope followed by the bytes.
func DigestOf(txBytes []byte) suiops.Digest {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(transactionDigestScope))
	h.Write(txBytes)
	var d suiops.Digest
	copy(d[:], h.Sum(nil))
	return d
}

// Unmarshal decodes serialized transaction bytes.
func Unmarshal(txBytes []byte) (*Data, error) {
	if len(txBytes) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "transaction bytes")
	}
	var t Data
	if err := bcs.Unmarshal(txBytes, &t); err != nil {
		return nil, errors.Wrap(err, "cannot decode transaction")
	}
	return &t, nil
}

// DecodeBase64 decodes base64 encoded serialized transaction.
func DecodeBase64(b64 string) (*Data, []byte, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, nil, errors.Wrapf(errors.ErrInput, "transaction is not base64 encoded: %s", err)
	}
	t, err := Unmarshal(raw)
	return t, raw, err
}

// InputObjects returns the identifiers of all object inputs.
func (t *Data) InputObjects() []suiops.ObjectID {
	var ids []suiops.ObjectID
	for _, in := range t.Kind.Inputs {
		if in.Object != nil {
			ids = append(ids, in.Object.ID())
		}
	}
	return ids
}

// String returns a short, human readable summary.
func (t *Data) String() string {
	return fmt.Sprintf("tx %s sender=%s inputs=%d commands=%d gas(budget=%d price=%d coins=%d)",
		t.Digest(), t.Sender, len(t.Kind.Inputs), len(t.Kind.Commands),
		t.Gas.Budget, t.Gas.Price, len(t.Gas.Payment))
}
