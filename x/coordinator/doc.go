/*
Package coordinator runs the multisig authorization of a transaction.

A transaction sent by the multisig address is authorized in two steps.
Every signer runs the sign action, which adds a partial signature to the
signature bundle. Once enough weight is collected, anyone runs the combine
action, which merges the partial signatures, verifies the result against
the transaction and only then submits it.

The bundle is the only state shared between the steps. See the bundle
package for its format.
*/
package coordinator
