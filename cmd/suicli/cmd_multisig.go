package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/artfi/suiops"
	"github.com/artfi/suiops/crypto"
	"github.com/artfi/suiops/errors"
	"github.com/artfi/suiops/x/coordinator"
)

func cmdMultisigAddress(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the multisig address together with its participants.

The multisig is read from the network configuration file, unless a serialized
multisig public key is given.
`)
		fl.PrintDefaults()
	}
	var (
		netFl     = addNetworkFlags(fl)
		msigKeyFl = fl.String("multisig-key", env("SUICLI_MULTISIG_KEY", ""), "Hex encoded serialized multisig public key. You can use SUICLI_MULTISIG_KEY environment variable to set it.")
	)
	fl.Parse(args)

	conf, _, _, err := netFl.open()
	if err != nil {
		return err
	}
	pk, err := conf.MultisigKey(*msigKeyFl)
	if err != nil {
		return err
	}

	type signer struct {
		Address    suiops.Address `json:"address"`
		PublicKey  string         `json:"publicKey"`
		SchemeType string         `json:"schemeType"`
		Weight     int            `json:"weight"`
	}
	res := struct {
		Address   suiops.Address `json:"address"`
		PublicKey string         `json:"publicKey"`
		Threshold int            `json:"threshold"`
		Signers   []signer       `json:"signers"`
	}{
		Address:   pk.Address(),
		PublicKey: pk.Hex(),
		Threshold: int(pk.Threshold),
	}
	for i, s := range pk.Descriptor().Signers {
		res.Signers = append(res.Signers, signer{
			Address:    pk.Participants[i].PublicKey.Address(),
			PublicKey:  s.PublicKey,
			SchemeType: s.SchemeType,
			Weight:     s.Weight,
		})
	}
	return writeJSON(output, res)
}

func cmdMultisigTransfer(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Authorize a transfer of an object owned by the multisig.

The sign action adds a signature of the transaction to the bundle file. Each
participant signs with their own key. The combine action merges signatures
collected in the bundle and submits the transaction once their weight reaches
the threshold.

A transaction is built from the object and recipient flags, or taken from the
bundle when a digest is given. Building a new transaction requires the gas
budget, and every other signer must sign the printed digest so that all
signatures cover the same bytes.
`)
		fl.PrintDefaults()
	}
	var (
		netFl       = addNetworkFlags(fl)
		keyFl       = addKeyFlags(fl)
		actionFl    = fl.String("action", env("SUICLI_ACTION", string(coordinator.ActionSign)), "Action to run, sign or combine.")
		msigKeyFl   = fl.String("multisig-key", env("SUICLI_MULTISIG_KEY", ""), "Hex encoded serialized multisig public key. You can use SUICLI_MULTISIG_KEY environment variable to set it.")
		objectFl    = flAddress(fl, "object", env("SUICLI_OBJECT_ID", ""), "ID of the object to transfer.")
		recipientFl = flAddress(fl, "recipient", env("SUICLI_RECIPIENT", ""), "Address of the recipient.")
		digestFl    = fl.String("digest", "", "Digest of a transaction already present in the bundle.")
		bundleFl    = fl.String("bundle", env("SUICLI_BUNDLE", ""), "Path to the signature bundle file. Defaults to signatures/<env>.json. You can use SUICLI_BUNDLE environment variable to set it.")
		signerFl    = flAddress(fl, "signer", env("SUICLI_SIGNER", ""), "Expected address of the signing key.")
		budgetFl    = flUint64(fl, "gas-budget", env("SUICLI_GAS_BUDGET", ""), "Gas budget in MIST. Estimated when not set.")
	)
	fl.Parse(args)

	action, err := coordinator.ParseAction(*actionFl)
	if err != nil {
		return err
	}
	if action == coordinator.ActionSign && *digestFl == "" && *budgetFl == 0 {
		return errors.Wrap(errors.ErrConfiguration, "gas budget is required to sign a new transaction, an estimate may differ between signers")
	}

	conf, c, logger, err := netFl.open()
	if err != nil {
		return err
	}
	pk, err := conf.MultisigKey(*msigKeyFl)
	if err != nil {
		return err
	}

	req := coordinator.Request{
		Transfer: coordinator.Transfer{
			Recipient: *recipientFl,
			Object:    *objectFl,
			GasBudget: *budgetFl,
		},
		Digest: *digestFl,
		Bundle: *bundleFl,
		Signer: *signerFl,
	}
	if req.Bundle == "" {
		req.Bundle = defaultBundlePath(*netFl.network)
	}
	if action == coordinator.ActionSign {
		cred, err := keyFl.credential(input)
		if err != nil {
			return err
		}
		defer cred.Destroy()
		req.Credential = cred
	}

	ctx, stop := interruptContext()
	defer stop()

	coord := coordinator.NewCoordinator(pk, c).WithLogger(logger)
	logger.Info("multisig", "address", coord.Address(), "action", action)
	out, err := coord.Run(ctx, string(action), req)
	if err != nil {
		return err
	}

	switch action {
	case coordinator.ActionSign:
		var next string
		if *digestFl == "" {
			next = fmt.Sprintf("suicli multisig-transfer -action sign -digest %s -bundle %s", out.Digest, req.Bundle)
			logger.Info("new transaction signed, other signers must use its digest", "digest", out.Digest)
		}
		return writeJSON(output, struct {
			Digest    suiops.Digest     `json:"digest"`
			Signer    suiops.Address    `json:"signer"`
			Signature *crypto.Signature `json:"signature"`
			Bundle    string            `json:"bundle"`
			Next      string            `json:"next,omitempty"`
		}{
			Digest:    out.Digest,
			Signer:    out.Partial.Signer,
			Signature: out.Partial.Signature,
			Bundle:    req.Bundle,
			Next:      next,
		})
	default:
		return writeJSON(output, executionOf(out.Response, out.Signers, out.Cost))
	}
}
