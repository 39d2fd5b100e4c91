package path

import (
	"github.com/danmuck/p2pcodec/internal/protocol/hash"
	"github.com/danmuck/p2pcodec/internal/protocol/wire"
)

// decodeRecursive is the straightforward one-call-per-level decoder. It is
// only safe on shallow inputs and exists to check Decode against.
func decodeRecursive(c *wire.Cursor, depth, maxDepth int) (Path, error) {
	at := c.Offset()
	tag, err := c.Uint8()
	if err != nil {
		return nil, err
	}
	switch tag {
	case TagOp:
		return Op{}, nil
	case TagLeft:
		if depth >= maxDepth {
			return nil, wire.Errorf(wire.KindSizeExceeded, at, "path deeper than %d", maxDepth)
		}
		sub, err := decodeRecursive(c, depth+1, maxDepth)
		if err != nil {
			return nil, err
		}
		right, err := hash.DecodeOperationListListHash(c)
		if err != nil {
			return nil, err
		}
		return &Left{Path: sub, Right: right}, nil
	case TagRight:
		if depth >= maxDepth {
			return nil, wire.Errorf(wire.KindSizeExceeded, at, "path deeper than %d", maxDepth)
		}
		left, err := hash.DecodeOperationListListHash(c)
		if err != nil {
			return nil, err
		}
		sub, err := decodeRecursive(c, depth+1, maxDepth)
		if err != nil {
			return nil, err
		}
		return &Right{Left: left, Path: sub}, nil
	default:
		return nil, wire.Errorf(wire.KindInvalidTag, at, "unknown path tag 0x%02x", tag)
	}
}
