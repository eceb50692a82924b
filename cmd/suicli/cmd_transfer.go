package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/artfi/suiops/coin"
	"github.com/artfi/suiops/crypto"
	"github.com/artfi/suiops/errors"
	"github.com/artfi/suiops/tx"
)

func cmdTransferObject(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Transfer an object owned by your key to the recipient and wait for the
transaction to be executed.
`)
		fl.PrintDefaults()
	}
	var (
		netFl       = addNetworkFlags(fl)
		keyFl       = addKeyFlags(fl)
		objectFl    = flAddress(fl, "object", env("SUICLI_OBJECT_ID", ""), "ID of the object to transfer.")
		recipientFl = flAddress(fl, "recipient", env("SUICLI_RECIPIENT", ""), "Address of the recipient.")
		budgetFl    = flUint64(fl, "gas-budget", env("SUICLI_GAS_BUDGET", ""), "Gas budget in MIST. Estimated when not set.")
	)
	fl.Parse(args)

	if objectFl.IsZero() {
		return errors.Wrap(errors.ErrInput, "object id not set")
	}
	if recipientFl.IsZero() {
		return errors.Wrap(errors.ErrInput, "recipient not set")
	}

	_, c, logger, err := netFl.open()
	if err != nil {
		return err
	}
	cred, err := keyFl.credential(input)
	if err != nil {
		return err
	}
	defer cred.Destroy()

	ctx, stop := interruptContext()
	defer stop()

	return crypto.WithSigner(cred, func(s crypto.Signer) error {
		sender := s.PublicKey().Address()
		logger.Info("transfer", "sender", sender, "object", *objectFl, "recipient", *recipientFl)

		b := tx.NewBuilder(sender).WithLogger(logger)
		b.TransferObjects([]tx.Argument{b.Object(*objectFl)}, b.PureAddress(*recipientFl))
		if *budgetFl != 0 {
			b.SetGasBudget(*budgetFl)
		}
		res, err := c.BuildAndExecute(ctx, b, s)
		if err != nil {
			return err
		}
		var cost *coin.Coin
		if amount, err := res.Cost(sender); err == nil {
			cost = &amount
		}
		return writeJSON(output, executionOf(res, nil, cost))
	})
}
