// Package wire is the binary engine under the P2P message catalog.
//
// Ownership boundary:
// - Cursor reads over untrusted bytes with absolute offsets.
// - Big-endian primitives, bounded containers and the decoder combinators.
// - Writer and the encoder helpers that mirror every decoder.
// - The error taxonomy (Truncated, InvalidTag, SizeExceeded, InvalidValue).
//
// Nothing in this package logs, retries or keeps state between calls.
package wire
