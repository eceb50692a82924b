/*
> Multisignature (multi-signature) is a digital signature scheme which allows a group of users to sign a single document.
https://en.wikipedia.org/wiki/Multisignature

This multisig package resolves a weighted threshold multisig identity. A
`PublicKey` is a list of participants, each a public key of any supported
scheme with a weight, and a threshold. It is created either from a
configuration `Descriptor` or from its serialized form.

A resolved public key provides the identity address, a threshold predicate
over collected partial signatures, a `Combine` operation merging partial
signatures into a multisig `Signature` and verification of a multisig
signature against transaction bytes.

Everything in this package is pure and deterministic. Resolving the same
configuration always produces the same address.
*/
package multisig
