package tx

import (
	"github.com/artfi/suiops"
	"github.com/artfi/suiops/bcs"
	"github.com/artfi/suiops/errors"
)

// ObjectRef identifies a specific version of an object.
type ObjectRef struct {
	ObjectID suiops.ObjectID `json:"objectId"`
	Version  uint64          `json:"version,string"`
	Digest   suiops.Digest   `json:"digest"`
}

func (r ObjectRef) MarshalBCS(e *bcs.Encoder) {
	e.Fixed(r.ObjectID[:])
	e.U64(r.Version)
	// Digest is serialized as a vector, not as a fixed array.
	e.Bytes(r.Digest[:])
}

func (r *ObjectRef) UnmarshalBCS(d *bcs.Decoder) {
	copy(r.ObjectID[:], d.Fixed(suiops.AddressLength))
	r.Version = d.U64()
	digest := d.Bytes()
	if d.Err() != nil {
		return
	}
	if len(digest) != suiops.DigestLength {
		d.Fail(errors.Wrapf(errors.ErrInput, "object digest is %d bytes", len(digest)))
		return
	}
	copy(r.Digest[:], digest)
}

// OwnerKind tells how an object is owned.
type OwnerKind int

const (
	OwnerAddress OwnerKind = iota + 1
	OwnerObject
	OwnerShared
	OwnerImmutable
)

// Owner describes the ownership of an object.
type Owner struct {
	Kind OwnerKind
	// Address is set for address and object owned objects.
	Address suiops.Address
	// InitialSharedVersion is set for shared objects.
	InitialSharedVersion uint64
}

// Object is an object as known to the network.
type Object struct {
	Ref   ObjectRef
	Type  string
	Owner Owner
}

// Coin is a SUI coin object that can be used for gas payment.
type Coin struct {
	Ref     ObjectRef
	Balance uint64
}
