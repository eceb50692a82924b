/*
Package sigs creates and checks partial signatures of multisig participants.

A partial signature is made by a single participant key over the exact
transaction bytes. Before it is accepted, the signer is derived from the
signature itself and checked against the multisig public key, so a key that
does not belong to the multisig is rejected at signing time rather than when
signatures are combined.
*/
package sigs
