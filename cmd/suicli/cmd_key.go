package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/artfi/suiops/crypto"
)

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the wallet address associated with your private key.
`)
		fl.PrintDefaults()
	}
	keyFl := addKeyFlags(fl)
	fl.Parse(args)

	cred, err := keyFl.credential(input)
	if err != nil {
		return err
	}
	defer cred.Destroy()

	return crypto.WithSigner(cred, func(s crypto.Signer) error {
		_, err := fmt.Fprintln(output, s.PublicKey().Address())
		return err
	})
}
