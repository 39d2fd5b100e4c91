package messages

import (
	"golang.org/x/crypto/blake2b"

	"github.com/danmuck/p2pcodec/internal/protocol/hash"
)

// Digest is the blake2b-256 of encoded bytes. Block and operation hashes
// are digests of their canonical encodings.
func Digest(b []byte) [32]byte {
	return blake2b.Sum256(b)
}

// Hash is the block hash of h.
func (h BlockHeader) Hash() (hash.BlockHash, error) {
	b, err := defaultCodec.EncodeBlockHeader(h)
	if err != nil {
		return hash.BlockHash{}, err
	}
	return hash.BlockHash(Digest(b)), nil
}

// Hash is the operation hash of op.
func (op Operation) Hash() (hash.OperationHash, error) {
	b, err := defaultCodec.EncodeOperation(op)
	if err != nil {
		return hash.OperationHash{}, err
	}
	return hash.OperationHash(Digest(b)), nil
}
