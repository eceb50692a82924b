/*
Package client is a Sui JSON-RPC client limited to what the tooling needs.

It reads objects, coins and the reference gas price required to build a
transaction, estimates its cost with a dry run, and executes signed
transactions. Every failure to reach the node or to understand its answer is
reported as errors.ErrNetwork.
*/
package client
