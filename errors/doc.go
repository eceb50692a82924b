/*
Package errors implements custom error interfaces for suiops.

The idea is to reuse as many errors from this package as possible and define custom package
errors when absolutely necessary.

Root errors follow the failure taxonomy of the authorization flow. Each of them requires a
different operator reaction, so callers must be able to tell them apart:

	ErrConfiguration      bad or missing multisig, key or network configuration
	ErrBuild              the Move compiler failed
	ErrNetwork            RPC unreachable, malformed response or rejected transaction
	ErrMissingData        an expected response field is absent
	ErrMissingSignatures  no signatures or not enough weight collected
	ErrInvalidSignature   cryptographic verification rejected a signature
	ErrInvalidAction      unknown action selector

If you want to register a custom error - use Register(code, description).
For reusing errors - use Errxxx.New and Errxxx.Newf.

There is also support for stacktraces. Please ensure you create the custom error using
ErrXyz.New("...") or errors.Wrap(err, "...") at the point of creation to ensure we attach
a stacktrace. If you wrap multiple times, we only record the first wrap with the stacktrace.

Once you have an error, you can use `fmt.Printf/Sprintf` to get more context for the error
	%s is just the error message
	%+v is the full stack trace
*/
package errors
