// Package hash holds the fixed-size identifiers carried on the wire. The
// codec treats them as opaque bytes; their text form is Tezos base58check
// so logs and CLI output match what node operators already read.
package hash

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/minio/sha256-simd"
	"github.com/mr-tron/base58"

	"github.com/danmuck/p2pcodec/internal/protocol/wire"
)

const (
	Size                       = 32
	ChainIDSize                = 4
	CryptoboxPublicKeyHashSize = 16
	checksumSize               = 4
)

var (
	ErrBadEncoding = errors.New("hash: bad base58 encoding")
	ErrBadChecksum = errors.New("hash: checksum mismatch")
	ErrBadPrefix   = errors.New("hash: unexpected prefix")
	ErrBadLength   = errors.New("hash: unexpected length")
)

type (
	BlockHash              [Size]byte
	OperationHash          [Size]byte
	OperationListListHash  [Size]byte
	ContextHash            [Size]byte
	ProtocolHash           [Size]byte
	ChainID                [ChainIDSize]byte
	CryptoboxPublicKeyHash [CryptoboxPublicKeyHashSize]byte
)

// kind describes one identifier: its name and base58 version prefix.
type kind struct {
	name   string
	prefix []byte
	size   int
}

var (
	blockHashKind             = kind{"block hash", []byte{1, 52}, Size}
	operationHashKind         = kind{"operation hash", []byte{5, 116}, Size}
	operationListListHashKind = kind{"operation list list hash", []byte{29, 159, 109}, Size}
	contextHashKind           = kind{"context hash", []byte{79, 199}, Size}
	protocolHashKind          = kind{"protocol hash", []byte{2, 170}, Size}
	chainIDKind               = kind{"chain id", []byte{87, 82, 0}, ChainIDSize}
	cryptoboxKind             = kind{"crypto box public key hash", []byte{153, 103}, CryptoboxPublicKeyHashSize}
)

func checksum(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:checksumSize]
}

func (k kind) encode(payload []byte) string {
	buf := make([]byte, 0, len(k.prefix)+len(payload)+checksumSize)
	buf = append(buf, k.prefix...)
	buf = append(buf, payload...)
	buf = append(buf, checksum(buf)...)
	return base58.Encode(buf)
}

func (k kind) decode(s string, dst []byte) error {
	raw, err := base58.Decode(s)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBadEncoding, k.name, err)
	}
	if len(raw) != len(k.prefix)+k.size+checksumSize {
		return fmt.Errorf("%w: %s: %d bytes", ErrBadLength, k.name, len(raw))
	}
	body, sum := raw[:len(raw)-checksumSize], raw[len(raw)-checksumSize:]
	if !bytes.Equal(checksum(body), sum) {
		return fmt.Errorf("%w: %s", ErrBadChecksum, k.name)
	}
	if !bytes.HasPrefix(body, k.prefix) {
		return fmt.Errorf("%w: %s", ErrBadPrefix, k.name)
	}
	copy(dst, body[len(k.prefix):])
	return nil
}

func (h BlockHash) String() string             { return blockHashKind.encode(h[:]) }
func (h OperationHash) String() string         { return operationHashKind.encode(h[:]) }
func (h OperationListListHash) String() string { return operationListListHashKind.encode(h[:]) }
func (h ContextHash) String() string           { return contextHashKind.encode(h[:]) }
func (h ProtocolHash) String() string          { return protocolHashKind.encode(h[:]) }
func (h ChainID) String() string               { return chainIDKind.encode(h[:]) }
func (h CryptoboxPublicKeyHash) String() string {
	return cryptoboxKind.encode(h[:])
}

func (h BlockHash) MarshalText() ([]byte, error)             { return []byte(h.String()), nil }
func (h OperationHash) MarshalText() ([]byte, error)         { return []byte(h.String()), nil }
func (h OperationListListHash) MarshalText() ([]byte, error) { return []byte(h.String()), nil }
func (h ContextHash) MarshalText() ([]byte, error)           { return []byte(h.String()), nil }
func (h ProtocolHash) MarshalText() ([]byte, error)          { return []byte(h.String()), nil }
func (h ChainID) MarshalText() ([]byte, error)               { return []byte(h.String()), nil }
func (h CryptoboxPublicKeyHash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *BlockHash) UnmarshalText(b []byte) error { return blockHashKind.decode(string(b), h[:]) }
func (h *OperationHash) UnmarshalText(b []byte) error {
	return operationHashKind.decode(string(b), h[:])
}
func (h *OperationListListHash) UnmarshalText(b []byte) error {
	return operationListListHashKind.decode(string(b), h[:])
}
func (h *ContextHash) UnmarshalText(b []byte) error { return contextHashKind.decode(string(b), h[:]) }
func (h *ProtocolHash) UnmarshalText(b []byte) error {
	return protocolHashKind.decode(string(b), h[:])
}
func (h *ChainID) UnmarshalText(b []byte) error { return chainIDKind.decode(string(b), h[:]) }
func (h *CryptoboxPublicKeyHash) UnmarshalText(b []byte) error {
	return cryptoboxKind.decode(string(b), h[:])
}

// ParseBlockHash reads the base58check form ("B...").
func ParseBlockHash(s string) (BlockHash, error) {
	var h BlockHash
	err := h.UnmarshalText([]byte(s))
	return h, err
}

// ParseChainID reads the base58check form ("Net...").
func ParseChainID(s string) (ChainID, error) {
	var h ChainID
	err := h.UnmarshalText([]byte(s))
	return h, err
}

// ChainIDFromHex reads the 8-digit hex form used in node configuration.
func ChainIDFromHex(s string) (ChainID, error) {
	var id ChainID
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("%w: chain id: %v", ErrBadEncoding, err)
	}
	if len(b) != ChainIDSize {
		return id, fmt.Errorf("%w: chain id: %d bytes", ErrBadLength, len(b))
	}
	copy(id[:], b)
	return id, nil
}

func DecodeBlockHash(c *wire.Cursor) (h BlockHash, err error) {
	err = c.Fixed(h[:])
	return
}

func DecodeOperationHash(c *wire.Cursor) (h OperationHash, err error) {
	err = c.Fixed(h[:])
	return
}

func DecodeOperationListListHash(c *wire.Cursor) (h OperationListListHash, err error) {
	err = c.Fixed(h[:])
	return
}

func DecodeContextHash(c *wire.Cursor) (h ContextHash, err error) {
	err = c.Fixed(h[:])
	return
}

func DecodeProtocolHash(c *wire.Cursor) (h ProtocolHash, err error) {
	err = c.Fixed(h[:])
	return
}

func DecodeChainID(c *wire.Cursor) (h ChainID, err error) {
	err = c.Fixed(h[:])
	return
}

func DecodeCryptoboxPublicKeyHash(c *wire.Cursor) (h CryptoboxPublicKeyHash, err error) {
	err = c.Fixed(h[:])
	return
}

func EncodeBlockHash(w *wire.Writer, h BlockHash) error {
	w.PutFixed(h[:])
	return nil
}

func EncodeOperationHash(w *wire.Writer, h OperationHash) error {
	w.PutFixed(h[:])
	return nil
}

func EncodeProtocolHash(w *wire.Writer, h ProtocolHash) error {
	w.PutFixed(h[:])
	return nil
}
