// Package suitest provides helpers for writing tests: deterministic keys
// and an in-process JSON-RPC node.
package suitest
