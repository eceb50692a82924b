package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/artfi/suiops"
	"github.com/artfi/suiops/bundle"
)

func cmdBundleView(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
List transactions waiting in the signature bundle together with addresses that
signed each of them.
`)
		fl.PrintDefaults()
	}
	var (
		envFl    = fl.String("env", env("SUICLI_ENV", "testnet"), "Network name, used to find the default bundle file.")
		bundleFl = fl.String("bundle", env("SUICLI_BUNDLE", ""), "Path to the signature bundle file. Defaults to signatures/<env>.json.")
	)
	fl.Parse(args)

	path := *bundleFl
	if path == "" {
		path = defaultBundlePath(*envFl)
	}
	file, err := bundle.Load(path)
	if err != nil {
		return err
	}
	for _, digest := range file.Digests() {
		fmt.Fprintln(output, digest)
		d, err := suiops.ParseDigest(digest)
		if err != nil {
			fmt.Fprintln(output, "\tinvalid digest")
			continue
		}
		e, _ := file.Entry(d)
		for _, signer := range e.Signers() {
			fmt.Fprintf(output, "\t%s\n", signer)
		}
	}
	return nil
}
