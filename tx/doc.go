/*
Package tx implements the transaction data model of the network and its
binary (BCS) serialization.

Only programmable transactions are supported. A programmable transaction
is a list of inputs (pure values and objects) and a list of commands that
operate on the inputs and on results of previous commands.

Transactions are created with a Builder. Building resolves object inputs,
gas price, gas budget and gas payment using a ChainReader, so that the
result can be serialized and signed offline. Once built, the serialized
bytes are the identity of a transaction and must never be rebuilt: every
signer has to sign the very same bytes.
*/
package tx
