/*
Package coin implements amounts of the native SUI coin.

All on-chain amounts are expressed in MIST, the smallest unit. One SUI is
10^9 MIST. Conversion between the two is exact, amounts are never handled as
floating point values.
*/
package coin
