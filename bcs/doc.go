/*
Package bcs implements the Binary Canonical Serialization used by Sui for
transaction data, public keys and signatures.

Only the subset required by this repository is provided: little endian
unsigned integers, booleans, ULEB128 lengths and enum variant tags, length
prefixed byte vectors and fixed size byte arrays. Primitives are encoded and
decoded by github.com/fardream/go-bcs. Composite types implement Marshaler and
Unmarshaler by calling the primitive methods in field order, which keeps enum
layouts explicit instead of relying on reflection.

Decoder errors are sticky. Once a read fails all following reads return zero
values and Err reports the first failure, so unmarshal functions can read a
whole structure and check the error once.
*/
package bcs
