package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/artfi/suiops"
	"github.com/artfi/suiops/crypto"
)

// flAddress returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *suiops.Address {
	var a suiops.Address
	if defaultVal != "" {
		var err error
		a, err = suiops.ParseAddress(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q address flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&a, name, usage)
	return &a
}

// flScheme returns a signature scheme value, initialized with given default
// value and optionally overwritten by a command line argument.
// If given value cannot be deserialized to required type, process is
// terminated.
func flScheme(fl *flag.FlagSet, name, defaultVal, usage string) *crypto.Scheme {
	s, err := crypto.ParseScheme(defaultVal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot parse %q scheme flag value. %s", name, err)
		os.Exit(2)
	}
	fl.Var(&s, name, usage)
	return &s
}

// flUint64 is the flag.Uint64 that takes its default from a string, usually
// an environment variable.
// If given value cannot be deserialized to required type, process is
// terminated.
func flUint64(fl *flag.FlagSet, name, defaultVal, usage string) *uint64 {
	var n uint64
	if defaultVal != "" {
		var err error
		n, err = strconv.ParseUint(defaultVal, 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q number flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Uint64Var(&n, name, n, usage)
	return &n
}
