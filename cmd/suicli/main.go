package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/artfi/suiops"
	"github.com/artfi/suiops/errors"
)

// commands is a register of all availables commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// When a cmd function is called it is given stdin, stdout and command line
// arguments except the program name and this command name. It is the
// responsibility of the command function to parse the arguments. Progress is
// logged to os.Stderr so that the output can be piped.
//
// A multisig transfer is authorized in two steps. The first signer builds
// and signs the transaction, the others sign its digest, then any of them
// submits:
//
//	$ suicli multisig-transfer -action sign -object 0x.. -recipient 0x.. -gas-budget 5000000
//	$ suicli multisig-transfer -action sign -digest <digest>
//	$ suicli multisig-transfer -action combine -digest <digest>
//
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"bundle-view":       cmdBundleView,
	"deploy":            cmdDeploy,
	"keyaddr":           cmdKeyaddr,
	"multisig-address":  cmdMultisigAddress,
	"multisig-transfer": cmdMultisigTransfer,
	"transfer-object":   cmdTransferObject,
	"version":           cmdVersion,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s is a command line client for Sui multisig operations.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	// Skip two first arguments. Second argument is the command name that
	// we just consumed.
	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		if env("SUICLI_DEBUG", "") != "" {
			fmt.Fprintf(os.Stderr, "%+v\n", err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps the error kind to the process exit code, so that scripts
// can tell a missing signature apart from a network failure.
func exitCode(err error) int {
	switch code := errors.Code(err); code {
	case 0:
		return 0
	case errors.ErrConfiguration.Code(),
		errors.ErrBuild.Code(),
		errors.ErrNetwork.Code(),
		errors.ErrMissingData.Code(),
		errors.ErrMissingSignatures.Code(),
		errors.ErrInvalidSignature.Code(),
		errors.ErrInvalidAction.Code():
		return int(code)
	default:
		return 1
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	fmt.Fprintln(out, suiops.Version(), gitHash)
	return nil
}

// gitHash is set during the compilation time.
var gitHash string = "dev"
