package tx

import (
	"github.com/artfi/suiops"
	"github.com/artfi/suiops/bcs"
	"github.com/artfi/suiops/errors"
)

// Command is a single step of a programmable transaction. The set of
// commands is closed, all implementations are declared in this file.
type Command interface {
	bcs.Marshaler
	commandTag() uint32
}

const (
	cmdMoveCall        = 0
	cmdTransferObjects = 1
	cmdSplitCoins      = 2
	cmdMergeCoins      = 3
	cmdPublish         = 4
	cmdMakeMoveVec     = 5
	cmdUpgrade         = 6
)

// MoveCall calls a Move function.
type MoveCall struct {
	Package       suiops.ObjectID
	Module        string
	Function      string
	TypeArguments []TypeTag
	Arguments     []Argument
}

func (*MoveCall) commandTag() uint32 { return cmdMoveCall }

func (c *MoveCall) MarshalBCS(e *bcs.Encoder) {
	e.Fixed(c.Package[:])
	e.Bytes([]byte(c.Module))
	e.Bytes([]byte(c.Function))
	e.Len(len(c.TypeArguments))
	for _, t := range c.TypeArguments {
		t.MarshalBCS(e)
	}
	marshalArguments(e, c.Arguments)
}

func (c *MoveCall) UnmarshalBCS(d *bcs.Decoder) {
	copy(c.Package[:], d.Fixed(suiops.AddressLength))
	c.Module = string(d.Bytes())
	c.Function = string(d.Bytes())
	n := d.Len()
	for i := 0; i < n && d.Err() == nil; i++ {
		var t TypeTag
		t.UnmarshalBCS(d)
		c.TypeArguments = append(c.TypeArguments, t)
	}
	c.Arguments = unmarshalArguments(d)
}

// TransferObjects sends objects to an address.
type TransferObjects struct {
	Objects []Argument
	Address Argument
}

func (*TransferObjects) commandTag() uint32 { return cmdTransferObjects }

func (c *TransferObjects) MarshalBCS(e *bcs.Encoder) {
	marshalArguments(e, c.Objects)
	c.Address.MarshalBCS(e)
}

func (c *TransferObjects) UnmarshalBCS(d *bcs.Decoder) {
	c.Objects = unmarshalArguments(d)
	c.Address.UnmarshalBCS(d)
}

// SplitCoins creates new coins of given amounts out of a coin.
type SplitCoins struct {
	Coin    Argument
	Amounts []Argument
}

func (*SplitCoins) commandTag() uint32 { return cmdSplitCoins }

func (c *SplitCoins) MarshalBCS(e *bcs.Encoder) {
	c.Coin.MarshalBCS(e)
	marshalArguments(e, c.Amounts)
}

func (c *SplitCoins) UnmarshalBCS(d *bcs.Decoder) {
	c.Coin.UnmarshalBCS(d)
	c.Amounts = unmarshalArguments(d)
}

// MergeCoins merges coins into the destination coin.
type MergeCoins struct {
	Destination Argument
	Sources     []Argument
}

func (*MergeCoins) commandTag() uint32 { return cmdMergeCoins }

func (c *MergeCoins) MarshalBCS(e *bcs.Encoder) {
	c.Destination.MarshalBCS(e)
	marshalArguments(e, c.Sources)
}

func (c *MergeCoins) UnmarshalBCS(d *bcs.Decoder) {
	c.Destination.UnmarshalBCS(d)
	c.Sources = unmarshalArguments(d)
}

// Publish publishes a Move package. Its result is the UpgradeCap of the
// new package.
type Publish struct {
	Modules      [][]byte
	Dependencies []suiops.ObjectID
}

func (*Publish) commandTag() uint32 { return cmdPublish }

func (c *Publish) MarshalBCS(e *bcs.Encoder) {
	e.Len(len(c.Modules))
	for _, m := range c.Modules {
		e.Bytes(m)
	}
	marshalIDs(e, c.Dependencies)
}

func (c *Publish) UnmarshalBCS(d *bcs.Decoder) {
	n := d.Len()
	for i := 0; i < n && d.Err() == nil; i++ {
		c.Modules = append(c.Modules, d.Bytes())
	}
	c.Dependencies = unmarshalIDs(d)
}

// MakeMoveVec creates a vector of given elements. Type is required only if
// there are no elements.
type MakeMoveVec struct {
	Type     *TypeTag
	Elements []Argument
}

func (*MakeMoveVec) commandTag() uint32 { return cmdMakeMoveVec }

func (c *MakeMoveVec) MarshalBCS(e *bcs.Encoder) {
	if c.Type == nil {
		e.U8(0)
	} else {
		e.U8(1)
		c.Type.MarshalBCS(e)
	}
	marshalArguments(e, c.Elements)
}

func (c *MakeMoveVec) UnmarshalBCS(d *bcs.Decoder) {
	if d.Bool() {
		c.Type = new(TypeTag)
		c.Type.UnmarshalBCS(d)
	}
	c.Elements = unmarshalArguments(d)
}

// Upgrade upgrades a published package, authorized by an upgrade ticket.
type Upgrade struct {
	Modules      [][]byte
	Dependencies []suiops.ObjectID
	Package      suiops.ObjectID
	Ticket       Argument
}

func (*Upgrade) commandTag() uint32 { return cmdUpgrade }

func (c *Upgrade) MarshalBCS(e *bcs.Encoder) {
	e.Len(len(c.Modules))
	for _, m := range c.Modules {
		e.Bytes(m)
	}
	marshalIDs(e, c.Dependencies)
	e.Fixed(c.Package[:])
	c.Ticket.MarshalBCS(e)
}

func (c *Upgrade) UnmarshalBCS(d *bcs.Decoder) {
	n := d.Len()
	for i := 0; i < n && d.Err() == nil; i++ {
		c.Modules = append(c.Modules, d.Bytes())
	}
	c.Dependencies = unmarshalIDs(d)
	copy(c.Package[:], d.Fixed(suiops.AddressLength))
	c.Ticket.UnmarshalBCS(d)
}

func marshalIDs(e *bcs.Encoder, ids []suiops.ObjectID) {
	e.Len(len(ids))
	for _, id := range ids {
		e.Fixed(id[:])
	}
}

func unmarshalIDs(d *bcs.Decoder) []suiops.ObjectID {
	n := d.Len()
	if d.Err() != nil {
		return nil
	}
	ids := make([]suiops.ObjectID, 0, n)
	for i := 0; i < n && d.Err() == nil; i++ {
		var id suiops.ObjectID
		copy(id[:], d.Fixed(suiops.AddressLength))
		ids = append(ids, id)
	}
	return ids
}

func marshalCommand(e *bcs.Encoder, c Command) {
	e.Variant(c.commandTag())
	c.MarshalBCS(e)
}

func unmarshalCommand(d *bcs.Decoder) Command {
	tag := d.Variant()
	if d.Err() != nil {
		return nil
	}
	var c interface {
		Command
		bcs.Unmarshaler
	}
	switch tag {
	case cmdMoveCall:
		c = new(MoveCall)
	case cmdTransferObjects:
		c = new(TransferObjects)
	case cmdSplitCoins:
		c = new(SplitCoins)
	case cmdMergeCoins:
		c = new(MergeCoins)
	case cmdPublish:
		c = new(Publish)
	case cmdMakeMoveVec:
		c = new(MakeMoveVec)
	case cmdUpgrade:
		c = new(Upgrade)
	default:
		d.Fail(errors.Wrapf(errors.ErrInput, "unknown command variant %d", tag))
		return nil
	}
	c.UnmarshalBCS(d)
	return c
}
