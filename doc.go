/*

Package suiops defines the identifiers shared by all packages of this
repository: account and object addresses and base58 digests.

Look into x/multisig for the weighted threshold multisig identity and into
x/coordinator for the sign and combine authorization flow.

*/

package suiops
