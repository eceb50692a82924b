package suiops

import (
	"encoding/json"

	"github.com/artfi/suiops/errors"
	"github.com/mr-tron/base58"
)

// DigestLength is the length of object and transaction digests.
const DigestLength = 32

// Digest is a 32 byte hash. Sui renders digests using base58.
type Digest [DigestLength]byte

// ParseDigest decodes a base58 encoded digest.
func ParseDigest(raw string) (Digest, error) {
	var d Digest
	b, err := base58.Decode(raw)
	if err != nil {
		return d, errors.Wrapf(errors.ErrInput, "digest %q: %s", raw, err)
	}
	if len(b) != DigestLength {
		return d, errors.Wrapf(errors.ErrInput, "digest %q is %d bytes, want %d", raw, len(b), DigestLength)
	}
	copy(d[:], b)
	return d, nil
}

func (d Digest) String() string {
	return base58.Encode(d[:])
}

func (d Digest) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Digest) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	val, err := ParseDigest(enc)
	if err != nil {
		return err
	}
	*d = val
	return nil
}
