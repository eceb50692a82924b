package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/artfi/suiops"
	"github.com/artfi/suiops/client"
	"github.com/artfi/suiops/coin"
	"github.com/artfi/suiops/config"
	"github.com/artfi/suiops/crypto"
	"github.com/artfi/suiops/errors"
	"github.com/tendermint/tendermint/libs/log"
	"golang.org/x/term"
)

// networkFlags select the network and where its configuration is read from.
type networkFlags struct {
	network  *string
	confDir  *string
	rpc      *string
	logLevel *string
}

func addNetworkFlags(fl *flag.FlagSet) *networkFlags {
	return &networkFlags{
		network:  fl.String("env", env("SUICLI_ENV", client.Testnet), "Network name, one of mainnet, testnet, devnet or localnet. You can use SUICLI_ENV environment variable to set it."),
		confDir:  fl.String("config-dir", env("SUICLI_CONFIG_DIR", "info"), "Directory holding <env>.json configuration files. You can use SUICLI_CONFIG_DIR environment variable to set it."),
		rpc:      fl.String("rpc", env("SUICLI_RPC_URL", ""), "Fullnode JSON-RPC address. Overrides the configuration. You can use SUICLI_RPC_URL environment variable to set it."),
		logLevel: fl.String("log-level", env("SUICLI_LOG_LEVEL", "info"), "Log level, one of debug, info, error or none."),
	}
}

// open loads the network configuration and returns a client connected to
// its fullnode.
func (n *networkFlags) open() (*config.Config, *client.Client, log.Logger, error) {
	logger, err := newLogger(os.Stderr, *n.logLevel)
	if err != nil {
		return nil, nil, nil, err
	}
	conf, err := config.Load(*n.confDir, *n.network)
	if err != nil {
		return nil, nil, nil, err
	}
	if *n.rpc != "" {
		conf.RPC = *n.rpc
	}
	endpoint, err := conf.Endpoint(*n.network)
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Debug("using fullnode", "env", *n.network, "rpc", endpoint)
	c := client.NewClient(client.NewHTTPConnection(endpoint)).WithLogger(logger)
	return conf, c, logger, nil
}

// newLogger returns a logger writing to w that filters out entries below
// given level.
func newLogger(w io.Writer, level string) (log.Logger, error) {
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfiguration, err.Error())
	}
	return log.NewFilter(log.NewTMLogger(log.NewSyncWriter(w)), opt), nil
}

// keyFlags describe the private key of the signer.
type keyFlags struct {
	scheme *crypto.Scheme
	format *string
	key    *string
	path   *string
}

func addKeyFlags(fl *flag.FlagSet) *keyFlags {
	return &keyFlags{
		scheme: flScheme(fl, "scheme", env("SUICLI_SCHEME", "ed25519"), "Signature scheme of the key, one of ed25519, secp256k1 or secp256r1. You can use SUICLI_SCHEME environment variable to set it."),
		format: fl.String("key-type", env("SUICLI_KEY_TYPE", string(crypto.FormatBech32)), "Encoding of the private key, one of bech32, hex, base64 or mnemonic. You can use SUICLI_KEY_TYPE environment variable to set it."),
		key:    fl.String("key", env("SUICLI_PRIVATE_KEY", ""), "Private key. Read from the input when not set. You can use SUICLI_PRIVATE_KEY environment variable to set it."),
		path:   fl.String("derivation-path", env("SUICLI_DERIVATION_PATH", ""), "Derivation path of a mnemonic key. Default path of the scheme is used when not set."),
	}
}

// credential returns the signer credential. When no key was given, it is
// read from the input.
func (k *keyFlags) credential(input io.Reader) (*crypto.Credential, error) {
	format, err := crypto.ParseKeyFormat(*k.format)
	if err != nil {
		return nil, err
	}
	material := *k.key
	if material == "" {
		if material, err = readSecret(input, "Private key: "); err != nil {
			return nil, err
		}
	}
	return crypto.NewCredential(*k.scheme, format, material, *k.path)
}

// readSecret reads a single line. A terminal is prompted and the typed value
// is not echoed.
func readSecret(input io.Reader, prompt string) (string, error) {
	if f, ok := input.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		os.Stderr.WriteString(prompt)
		raw, err := term.ReadPassword(int(f.Fd()))
		os.Stderr.WriteString("\n")
		if err != nil {
			return "", errors.Wrapf(errors.ErrConfiguration, "cannot read private key: %s", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrapf(errors.ErrConfiguration, "cannot read private key: %s", err)
	}
	return strings.TrimSpace(line), nil
}

func writeJSON(output io.Writer, v interface{}) error {
	enc := json.NewEncoder(output)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrapf(errors.ErrHuman, "cannot serialize result: %s", err)
	}
	return nil
}

// interruptContext returns a context that is cancelled when the process is
// interrupted.
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// defaultBundlePath returns the location of the signature bundle of a
// network.
func defaultBundlePath(network string) string {
	return filepath.Join("signatures", network+".json")
}

// execution is the printed result of a submitted transaction.
type execution struct {
	Digest   string                      `json:"digest"`
	Signers  []suiops.Address            `json:"signers,omitempty"`
	Cost     string                      `json:"cost,omitempty"`
	Response *client.TransactionResponse `json:"response"`
}

func executionOf(res *client.TransactionResponse, signers []suiops.Address, cost *coin.Coin) execution {
	e := execution{Digest: res.Digest, Signers: signers, Response: res}
	if cost != nil {
		e.Cost = cost.SUI().String()
	}
	return e
}
