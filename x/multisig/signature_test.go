package multisig

import (
	"testing"

	"github.com/artfi/suiops/crypto"
	"github.com/artfi/suiops/errors"
	"github.com/artfi/suiops/suitest"
	"github.com/artfi/suiops/suitest/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	keys []crypto.PrivateKey
	pk   *PublicKey
	tx   []byte
}

// newFixture returns a multisig of three keys, one of each scheme, with
// weights {1,1,1} and threshold 2.
func newFixture(t *testing.T) fixture {
	t.Helper()
	keys := []crypto.PrivateKey{
		suitest.SeededKey(t, crypto.Ed25519, "alice"),
		suitest.SeededKey(t, crypto.Secp256k1, "bob"),
		suitest.SeededKey(t, crypto.Secp256r1, "charlie"),
	}
	var ps []Participant
	for _, k := range keys {
		ps = append(ps, Participant{PublicKey: k.PublicKey(), Weight: 1})
	}
	pk, err := NewPublicKey(ps, 2)
	require.NoError(t, err)
	return fixture{keys: keys, pk: pk, tx: []byte("unsigned transaction bytes")}
}

func (f fixture) sign(t *testing.T, idx ...int) []*crypto.Signature {
	t.Helper()
	var sigs []*crypto.Signature
	for _, i := range idx {
		s, err := crypto.SignTransaction(f.keys[i], f.tx)
		require.NoError(t, err)
		sigs = append(sigs, s)
	}
	return sigs
}

func TestAnyTwoOfThreeCombine(t *testing.T) {
	f := newFixture(t)

	pairs := [][]int{{0, 1}, {0, 2}, {1, 2}, {2, 0}, {2, 1}}
	for _, pair := range pairs {
		sigs := f.sign(t, pair...)
		require.True(t, f.pk.HasThreshold(sigs))

		ms, err := f.pk.Combine(sigs)
		require.NoError(t, err, "pair %v", pair)
		require.NoError(t, ms.Verify(f.tx), "pair %v", pair)
		require.Len(t, ms.Sigs, 2)

		var want uint16
		for _, i := range pair {
			want |= 1 << uint(i)
		}
		require.Equal(t, want, ms.Bitmap)
	}

	for i := range f.keys {
		sigs := f.sign(t, i)
		require.False(t, f.pk.HasThreshold(sigs))
		_, err := f.pk.Combine(sigs)
		assert.IsErr(t, errors.ErrMissingSignatures, err)
	}
}

func TestCombineEmpty(t *testing.T) {
	f := newFixture(t)
	_, err := f.pk.Combine(nil)
	assert.IsErr(t, errors.ErrMissingSignatures, err)
}

func TestCombineRejectsUnknownAndDuplicated(t *testing.T) {
	f := newFixture(t)

	stranger, err := crypto.SignTransaction(suitest.SeededKey(t, crypto.Ed25519, "mallory"), f.tx)
	require.NoError(t, err)
	_, err = f.pk.Combine(append(f.sign(t, 0, 1), stranger))
	assert.IsErr(t, errors.ErrInvalidSignature, err)

	_, err = f.pk.Combine(f.sign(t, 0, 0))
	assert.IsErr(t, errors.ErrDuplicate, err)

	w, err := f.pk.Weigh(f.sign(t, 1, 2))
	require.NoError(t, err)
	require.Equal(t, 2, w)
}

func TestVerifyDetectsTampering(t *testing.T) {
	f := newFixture(t)

	t.Run("tampered signature byte", func(t *testing.T) {
		sigs := f.sign(t, 0, 1)
		sigs[1].Sig[10] ^= 0x01
		ms, err := f.pk.Combine(sigs)
		require.NoError(t, err)
		assert.IsErr(t, errors.ErrInvalidSignature, ms.Verify(f.tx))
	})

	t.Run("one byte change of the transaction", func(t *testing.T) {
		ms, err := f.pk.Combine(f.sign(t, 0, 2))
		require.NoError(t, err)
		require.NoError(t, ms.Verify(f.tx))

		changed := append([]byte(nil), f.tx...)
		changed[0] ^= 0xff
		assert.IsErr(t, errors.ErrInvalidSignature, ms.Verify(changed))
	})

	t.Run("signature of another transaction", func(t *testing.T) {
		other := fixture{keys: f.keys, pk: f.pk, tx: []byte("another transaction")}
		sigs := append(f.sign(t, 0), other.sign(t, 1)...)
		ms, err := f.pk.Combine(sigs)
		require.NoError(t, err)
		assert.IsErr(t, errors.ErrInvalidSignature, ms.Verify(f.tx))
	})

	t.Run("bitmap pointing to another participant", func(t *testing.T) {
		ms, err := f.pk.Combine(f.sign(t, 0, 1))
		require.NoError(t, err)
		ms.Bitmap = 1<<0 | 1<<2
		assert.IsErr(t, errors.ErrInvalidSignature, ms.Verify(f.tx))

		ms.Bitmap = 1<<0 | 1<<5
		assert.IsErr(t, errors.ErrInvalidSignature, ms.Verify(f.tx))

		ms.Bitmap = 1 << 0
		assert.IsErr(t, errors.ErrInvalidSignature, ms.Verify(f.tx))
	})
}

func TestSignatureSerialization(t *testing.T) {
	f := newFixture(t)
	ms, err := f.pk.Combine(f.sign(t, 2, 0))
	require.NoError(t, err)

	raw := ms.Bytes()
	require.Equal(t, crypto.MultiSigFlag, raw[0])

	decoded, err := DecodeSignature(ms.String())
	require.NoError(t, err)
	require.Equal(t, ms.Bitmap, decoded.Bitmap)
	require.Equal(t, ms.PublicKey.Address(), decoded.PublicKey.Address())
	require.Equal(t, raw, decoded.Bytes())
	require.NoError(t, decoded.Verify(f.tx))

	// Signatures are ordered by participant index, not by input order.
	require.Equal(t, crypto.Ed25519, decoded.Sigs[0].Scheme)
	require.Equal(t, crypto.Secp256r1, decoded.Sigs[1].Scheme)

	_, err = ParseSignature(nil)
	assert.IsErr(t, errors.ErrEmpty, err)
	_, err = ParseSignature(append([]byte{0x00}, raw[1:]...))
	assert.IsErr(t, errors.ErrType, err)
	_, err = ParseSignature(raw[:len(raw)-1])
	assert.IsErr(t, errors.ErrInput, err)
	_, err = DecodeSignature("!!")
	assert.IsErr(t, errors.ErrInput, err)
}

func TestVerifyRejectsInvalidPublicKey(t *testing.T) {
	f := newFixture(t)

	// A zero threshold would otherwise be satisfied by no signatures at
	// all.
	forged := &Signature{
		PublicKey: &PublicKey{
			Participants: []Participant{{PublicKey: f.keys[0].PublicKey(), Weight: 1}},
			Threshold:    0,
		},
	}
	assert.IsErr(t, errors.ErrInvalidSignature, forged.Verify([]byte("any transaction bytes at all")))

	_, err := ParseSignature(forged.Bytes())
	assert.IsErr(t, errors.ErrInvalidSignature, err)
	_, err = DecodeSignature(forged.String())
	assert.IsErr(t, errors.ErrInvalidSignature, err)

	empty := &Signature{PublicKey: f.pk}
	assert.IsErr(t, errors.ErrMissingSignatures, empty.Verify(f.tx))
	_, err = ParseSignature(empty.Bytes())
	require.NoError(t, err)
}
