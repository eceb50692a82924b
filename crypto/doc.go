/*
Package crypto implements the key schemes accepted by the network.

Scheme is a closed set of three variants: Ed25519, Secp256k1 and Secp256r1.
PublicKey and PrivateKey are sealed interfaces, only implemented inside this
package, one implementation per scheme. All scheme dependent behaviour is
selected by an exhaustive switch over Scheme in NewPublicKey and
NewPrivateKey, so an unsupported scheme can only be rejected while parsing
configuration and never later, while signing.

Every signature is produced over a 32 byte message digest, see
SigningDigest. Ed25519 signs the digest directly, the ECDSA schemes sign the
SHA-256 hash of it and always produce a low S, 64 byte r||s signature.

Private key material is acquired through a Credential and released with
WithSigner, which zeroes all secret bytes once the callback returns.
*/
package crypto
