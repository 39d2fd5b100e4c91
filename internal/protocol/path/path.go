// Package path encodes the operation-inclusion proof carried by the
// OperationHashesForBlocks and OperationsForBlocks messages.
//
// A path is a chain of Left/Right steps ending in Op. Each step carries the
// sibling hash at that level: a Left step is written as its tag, the subpath
// and then the right sibling; a Right step as its tag, the left sibling and
// then the subpath. Peers control the depth, so neither direction recurses.
package path

import (
	"github.com/danmuck/p2pcodec/internal/protocol/hash"
	"github.com/danmuck/p2pcodec/internal/protocol/wire"
)

const (
	TagOp    uint8 = 0x00
	TagRight uint8 = 0x0F
	TagLeft  uint8 = 0xF0

	// DefaultMaxDepth admits far deeper proofs than any real block needs
	// while keeping the frame stack bounded.
	DefaultMaxDepth = 1 << 16
)

// Path is one of *Left, *Right or Op.
type Path interface {
	isPath()
}

// Left: the proven operation is in the left subtree; Right is the hash of
// the right sibling.
type Left struct {
	Path  Path
	Right hash.OperationListListHash
}

// Right: the proven operation is in the right subtree; Left is the hash of
// the left sibling.
type Right struct {
	Left hash.OperationListListHash
	Path Path
}

// Op is the leaf.
type Op struct{}

func (*Left) isPath()  {}
func (*Right) isPath() {}
func (Op) isPath()     {}

// frame is one Left or Right step whose subpath is still being read.
type frame struct {
	left bool
	// sibling is the already-read left hash of a Right step.
	sibling hash.OperationListListHash
}

// Decoder returns a wire decoder for paths at most maxDepth steps deep.
func Decoder(maxDepth int) wire.Decoder[Path] {
	return func(c *wire.Cursor) (Path, error) {
		return Decode(c, maxDepth)
	}
}

// Decode reads one path. Deeper than maxDepth steps is SizeExceeded.
func Decode(c *wire.Cursor, maxDepth int) (Path, error) {
	var stack []frame
	for {
		at := c.Offset()
		tag, err := c.Uint8()
		if err != nil {
			return nil, err
		}
		switch tag {
		case TagLeft, TagRight:
			if len(stack) >= maxDepth {
				return nil, wire.Errorf(wire.KindSizeExceeded, at, "path deeper than %d", maxDepth)
			}
			f := frame{left: tag == TagLeft}
			if !f.left {
				if f.sibling, err = hash.DecodeOperationListListHash(c); err != nil {
					return nil, err
				}
			}
			stack = append(stack, f)
		case TagOp:
			return fold(c, stack)
		default:
			return nil, wire.Errorf(wire.KindInvalidTag, at, "unknown path tag 0x%02x", tag)
		}
	}
}

// fold closes the pending steps innermost first. A Left step reads its
// right sibling here, after its whole subpath.
func fold(c *wire.Cursor, stack []frame) (Path, error) {
	var p Path = Op{}
	for i := len(stack) - 1; i >= 0; i-- {
		f := stack[i]
		if !f.left {
			p = &Right{Left: f.sibling, Path: p}
			continue
		}
		right, err := hash.DecodeOperationListListHash(c)
		if err != nil {
			return nil, err
		}
		p = &Left{Path: p, Right: right}
	}
	return p, nil
}

// Encode writes p. Right siblings of Left steps are held until the leaf is
// written and then emitted innermost first.
func Encode(w *wire.Writer, p Path) error {
	var pending []hash.OperationListListHash
	for {
		switch n := p.(type) {
		case *Left:
			if n == nil {
				return wire.Errorf(wire.KindInvalidValue, w.Len(), "nil left step")
			}
			w.PutUint8(TagLeft)
			pending = append(pending, n.Right)
			p = n.Path
		case *Right:
			if n == nil {
				return wire.Errorf(wire.KindInvalidValue, w.Len(), "nil right step")
			}
			w.PutUint8(TagRight)
			w.PutFixed(n.Left[:])
			p = n.Path
		case Op:
			w.PutUint8(TagOp)
			for i := len(pending) - 1; i >= 0; i-- {
				w.PutFixed(pending[i][:])
			}
			return nil
		default:
			return wire.Errorf(wire.KindInvalidValue, w.Len(), "path node %T", p)
		}
	}
}

// Depth is the number of Left/Right steps above the leaf. A nil step ends
// the count.
func Depth(p Path) int {
	depth := 0
	for {
		switch n := p.(type) {
		case *Left:
			if n == nil {
				return depth
			}
			p = n.Path
		case *Right:
			if n == nil {
				return depth
			}
			p = n.Path
		default:
			return depth
		}
		depth++
	}
}

// Size is the encoded length of p in bytes.
func Size(p Path) int {
	return 1 + Depth(p)*(1+hash.Size)
}

// Equal compares two paths step by step. Nil nodes, typed or not, are
// equal only to a nil node of the same kind.
func Equal(a, b Path) bool {
	for {
		switch x := a.(type) {
		case nil:
			return b == nil
		case *Left:
			y, ok := b.(*Left)
			if !ok || (x == nil) != (y == nil) {
				return false
			}
			if x == nil {
				return true
			}
			if x.Right != y.Right {
				return false
			}
			a, b = x.Path, y.Path
		case *Right:
			y, ok := b.(*Right)
			if !ok || (x == nil) != (y == nil) {
				return false
			}
			if x == nil {
				return true
			}
			if x.Left != y.Left {
				return false
			}
			a, b = x.Path, y.Path
		case Op:
			_, ok := b.(Op)
			return ok
		default:
			return false
		}
	}
}
