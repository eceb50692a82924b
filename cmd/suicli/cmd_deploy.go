package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/artfi/suiops"
	"github.com/artfi/suiops/config"
	"github.com/artfi/suiops/deploy"
)

func cmdDeploy(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Compile and publish the Move package. The upgrade capability is transferred to
the deployer. Identifiers of the package and of the objects it creates are
written to the output file.

Package path, output file and the expected objects are read from the deploy
section of the network configuration. Flags take precedence.
`)
		fl.PrintDefaults()
	}
	var (
		netFl    = addNetworkFlags(fl)
		keyFl    = addKeyFlags(fl)
		pathFl   = fl.String("path", env("SUICLI_PACKAGE_PATH", ""), "Directory of the Move package. You can use SUICLI_PACKAGE_PATH environment variable to set it.")
		outputFl = fl.String("output", env("SUICLI_OUTPUT", ""), "Path of the deployment artifact. You can use SUICLI_OUTPUT environment variable to set it.")
		suiBinFl = fl.String("sui", env("SUICLI_SUI_BIN", "sui"), "Sui binary used to compile the package. You can use SUICLI_SUI_BIN environment variable to set it.")
		budgetFl = flUint64(fl, "gas-budget", env("SUICLI_GAS_BUDGET", ""), "Gas budget in MIST. Estimated when not set.")
	)
	fl.Parse(args)

	conf, c, logger, err := netFl.open()
	if err != nil {
		return err
	}
	dc := config.Deploy{Path: ".", Output: "deployed_addresses.json"}
	if conf.Deploy != nil {
		dc = *conf.Deploy
	}
	if *pathFl != "" {
		dc.Path = *pathFl
	}
	if *outputFl != "" {
		dc.Output = *outputFl
	}
	if *budgetFl != 0 {
		dc.GasBudget = *budgetFl
	}

	cred, err := keyFl.credential(input)
	if err != nil {
		return err
	}
	defer cred.Destroy()

	ctx, stop := interruptContext()
	defer stop()

	compiler := deploy.NewMoveCompiler(*suiBinFl).WithLogger(logger)
	res, err := deploy.NewDeployer(compiler, c).WithLogger(logger).Deploy(ctx, cred, dc)
	if err != nil {
		return err
	}

	printed := struct {
		Digest    string          `json:"digest"`
		Deployer  suiops.Address  `json:"deployer"`
		Cost      string          `json:"cost,omitempty"`
		PackageID suiops.ObjectID `json:"packageId"`
		Output    string          `json:"output"`
	}{
		Digest:    res.Digest,
		Deployer:  res.Deployer,
		PackageID: res.Artifact.PackageID,
		Output:    dc.Output,
	}
	if res.Cost != nil {
		printed.Cost = res.Cost.SUI().String()
	}
	return writeJSON(output, printed)
}
