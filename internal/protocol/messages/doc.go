// Package messages is the catalog of P2P shell messages: their typed shapes,
// the tag table peer messages are dispatched on and the Codec that decodes
// and encodes them under a fixed set of Limits.
//
// Ownership boundary:
// - Message types and their field schemas.
// - The static tag table (one entry per peer message).
// - Handshake messages (connection, metadata, ack), which carry no tag.
// - Message digests.
//
// Framing into chunks and reading from connections live in the chunk and
// stream packages.
package messages
