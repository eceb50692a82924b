package main

import (
	"encoding/base64"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/artfi/suiops"
	"github.com/artfi/suiops/crypto"
	"github.com/artfi/suiops/errors"
	"github.com/artfi/suiops/suitest"
	"github.com/artfi/suiops/suitest/assert"
	"github.com/stretchr/testify/require"
)

func fill(b byte) string {
	return "0x" + strings.Repeat(hexByte(b), 32)
}

func hexByte(b byte) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[b>>4], digits[b&0x0f]})
}

func digestOf(b byte) suiops.Digest {
	var d suiops.Digest
	for i := range d {
		d[i] = b
	}
	return d
}

// serveChain makes the node answer queries needed to build a transfer of the
// object 0x22.. paid by the owner.
func serveChain(node *suitest.Node, owner suiops.Address) {
	node.RespondJSON("suix_getReferenceGasPrice", `"1000"`)
	node.RespondJSON("sui_getObject", `{"data": {
		"objectId": "`+fill(0x22)+`", "version": "7", "digest": "`+digestOf(0x03).String()+`",
		"type": "0x2::coin::Coin<0x2::sui::SUI>",
		"owner": {"AddressOwner": "`+owner.String()+`"}}}`)
	node.RespondJSON("suix_getCoins", `{"data": [{"coinType": "0x2::sui::SUI", "coinObjectId": "`+fill(0x33)+
		`", "version": "9", "digest": "`+digestOf(0x04).String()+`", "balance": "10000000000"}], "hasNextPage": false}`)
	node.RespondJSON("sui_executeTransactionBlock", `{
		"digest": "`+digestOf(0x07).String()+`",
		"effects": {"status": {"status": "success"}},
		"balanceChanges": [{"owner": {"AddressOwner": "`+owner.String()+`"}, "coinType": "0x2::sui::SUI", "amount": "-2000000"}]}`)
}

type signed struct {
	Digest string         `json:"digest"`
	Signer suiops.Address `json:"signer"`
	Bundle string         `json:"bundle"`
	Next   string         `json:"next"`
}

func TestMultisigTransfer(t *testing.T) {
	n := newTestnet(t)
	serveChain(n.node, n.pk.Address())
	bundlePath := filepath.Join(tempDir(t), "signatures", "testnet.json")

	transfer := []string{"-object", fill(0x22), "-recipient", fill(0xaa), "-gas-budget", "5000000", "-bundle", bundlePath}

	out, err := run(t, cmdMultisigTransfer, "",
		n.args(append([]string{"-action", "sign", "-key-type", "hex", "-key", hexKey(n.keys[0])}, transfer...)...)...)
	require.NoError(t, err)
	var first signed
	require.NoError(t, json.Unmarshal([]byte(out), &first))
	assert.Equal(t, n.keys[0].PublicKey().Address(), first.Signer)
	assert.Equal(t, bundlePath, first.Bundle)
	assert.Equal(t, "suicli multisig-transfer -action sign -digest "+first.Digest+" -bundle "+bundlePath, first.Next)

	// Not enough weight collected yet.
	_, err = run(t, cmdMultisigTransfer, "", n.args("-action", "combine", "-digest", first.Digest, "-bundle", bundlePath)...)
	assert.IsErr(t, errors.ErrMissingSignatures, err)
	assert.Equal(t, 0, len(n.node.Calls("sui_executeTransactionBlock")))

	// The second signer signs the stored transaction and checks that
	// the key is the one expected.
	out, err = run(t, cmdMultisigTransfer, hexKey(n.keys[2])+"\n",
		n.args("-action", "sign", "-key-type", "hex", "-digest", first.Digest, "-bundle", bundlePath,
			"-signer", n.keys[2].PublicKey().Address().String())...)
	require.NoError(t, err)
	var second signed
	require.NoError(t, json.Unmarshal([]byte(out), &second))
	assert.Equal(t, first.Digest, second.Digest)
	assert.Equal(t, "", second.Next)

	out, err = run(t, cmdMultisigTransfer, "", n.args("-action", "combine", "-digest", first.Digest, "-bundle", bundlePath)...)
	require.NoError(t, err)
	var res struct {
		Digest  string           `json:"digest"`
		Signers []suiops.Address `json:"signers"`
		Cost    string           `json:"cost"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, digestOf(0x07).String(), res.Digest)
	assert.Equal(t, "0.002", res.Cost)
	require.Len(t, res.Signers, 2)

	calls := n.node.Calls("sui_executeTransactionBlock")
	require.Len(t, calls, 1)
	var sigs []string
	require.NoError(t, json.Unmarshal(calls[0].Params[1], &sigs))
	require.Len(t, sigs, 1)
	raw, err := base64.StdEncoding.DecodeString(sigs[0])
	require.NoError(t, err)
	assert.Equal(t, crypto.MultiSigFlag, raw[0])

	// Submitted transaction is removed from the bundle.
	out, err = run(t, cmdBundleView, "", "-bundle", bundlePath)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestMultisigTransferInvalidAction(t *testing.T) {
	n := newTestnet(t)
	serveChain(n.node, n.pk.Address())

	_, err := run(t, cmdMultisigTransfer, "",
		n.args("-action", "approve", "-object", fill(0x22), "-recipient", fill(0xaa), "-bundle", filepath.Join(tempDir(t), "b.json"))...)
	assert.IsErr(t, errors.ErrInvalidAction, err)
	assert.Equal(t, 0, n.node.TotalCalls())
}

func TestMultisigTransferWrongSigner(t *testing.T) {
	n := newTestnet(t)
	serveChain(n.node, n.pk.Address())
	outsider := suitest.SeededKey(t, crypto.Ed25519, "mallory")

	_, err := run(t, cmdMultisigTransfer, "",
		n.args("-action", "sign", "-key-type", "hex", "-key", hexKey(outsider),
			"-object", fill(0x22), "-recipient", fill(0xaa), "-gas-budget", "5000000",
			"-bundle", filepath.Join(tempDir(t), "b.json"))...)
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestMultisigTransferNewTransactionNeedsBudget(t *testing.T) {
	n := newTestnet(t)
	serveChain(n.node, n.pk.Address())

	_, err := run(t, cmdMultisigTransfer, "",
		n.args("-action", "sign", "-key-type", "hex", "-key", hexKey(n.keys[0]),
			"-object", fill(0x22), "-recipient", fill(0xaa),
			"-bundle", filepath.Join(tempDir(t), "b.json"))...)
	assert.IsErr(t, errors.ErrConfiguration, err)
	assert.Equal(t, 0, n.node.TotalCalls())
}
