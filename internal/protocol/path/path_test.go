package path

import (
	"bytes"
	"encoding/hex"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/danmuck/p2pcodec/internal/protocol/hash"
	"github.com/danmuck/p2pcodec/internal/protocol/wire"
)

func fill(b byte) hash.OperationListListHash {
	var h hash.OperationListListHash
	for i := range h {
		h[i] = b
	}
	return h
}

func encode(t testing.TB, p Path) []byte {
	t.Helper()
	w := wire.NewWriter(Size(p))
	require.NoError(t, Encode(w, p))
	return w.Bytes()
}

func TestDepthThreeRoundTrip(t *testing.T) {
	hashA, hashB, hashC := fill(0xaa), fill(0xbb), fill(0xcc)
	p := &Left{
		Path: &Right{
			Left: hashC,
			Path: &Left{Path: Op{}, Right: hashB},
		},
		Right: hashA,
	}

	b := encode(t, p)
	require.Len(t, b, Size(p))
	require.Equal(t, []byte{TagLeft, TagRight}, b[:2])
	require.Equal(t, hashC[:], b[2:34])
	require.Equal(t, []byte{TagLeft, TagOp}, b[34:36])
	require.Equal(t, hashB[:], b[36:68])
	require.Equal(t, hashA[:], b[68:100])

	got, n, err := wire.DecodePrefix(b, Decoder(DefaultMaxDepth))
	require.NoError(t, err)
	require.Equal(t, len(b), n)
	require.Empty(t, cmp.Diff(Path(p), got))
	require.True(t, Equal(p, got))
	require.Equal(t, 3, Depth(got))
}

func TestLeftLeftScenario(t *testing.T) {
	hashA, hashB := fill(0x0a), fill(0x0b)
	p := &Left{Path: &Left{Path: Op{}, Right: hashB}, Right: hashA}

	b := encode(t, p)
	want := append([]byte{TagLeft, TagLeft, TagOp}, hashB[:]...)
	want = append(want, hashA[:]...)
	require.Equal(t, want, b)

	got, err := wire.Decode(b, Decoder(DefaultMaxDepth))
	require.NoError(t, err)
	require.True(t, Equal(p, got))
}

func TestDecodesCapturedProof(t *testing.T) {
	// proof from an OperationsForBlocks message captured on mainnet
	raw, err := hex.DecodeString("f00ffe7601035ca2892f983c10203656479cfd2f8a4ea656f300cd9d68f74aa62587" +
		"f00f7c09f7c4d76ace86e1a7e1c7dc0a0c7edcaa8b284949320081131976a87760c300" +
		"32bc1d3a28df9a67b363aa1638f807214bb8987e5f9c0abcbd69531facffd1c8" +
		"0a37f18e2562ae14388716247be0d4e451d72ce38d1d4a30f92d2f6ef95b4919")
	require.NoError(t, err)

	got, err := wire.Decode(raw, Decoder(DefaultMaxDepth))
	require.NoError(t, err)
	require.Equal(t, 4, Depth(got))

	outer, ok := got.(*Left)
	require.True(t, ok)
	require.Equal(t, "LLoZQD2o1hNgoUhg6ha9dCVyRUY25GX1KN2TttXW2PZsyS8itbfpK", outer.Right.String())
	r1, ok := outer.Path.(*Right)
	require.True(t, ok)
	require.Equal(t, byte(0xfe), r1.Left[0])
	l2, ok := r1.Path.(*Left)
	require.True(t, ok)
	require.Equal(t, byte(0x32), l2.Right[0])
	r2, ok := l2.Path.(*Right)
	require.True(t, ok)
	require.Equal(t, byte(0x7c), r2.Left[0])
	require.Equal(t, Path(Op{}), r2.Path)

	require.Equal(t, raw, encode(t, got))
}

func deepPath(depth int) Path {
	var p Path = Op{}
	for i := 0; i < depth; i++ {
		if i%2 == 0 {
			p = &Left{Path: p, Right: fill(byte(i))}
		} else {
			p = &Right{Left: fill(byte(i)), Path: p}
		}
	}
	return p
}

func TestDeepPathDoesNotRecurse(t *testing.T) {
	const depth = 50_000
	p := deepPath(depth)
	b := encode(t, p)
	require.Len(t, b, 1+depth*(1+hash.Size))

	got, err := wire.Decode(b, Decoder(DefaultMaxDepth))
	require.NoError(t, err)
	require.Equal(t, depth, Depth(got))
	require.True(t, Equal(p, got))
	require.True(t, bytes.Equal(b, encode(t, got)))
}

func TestMaxDepthIsSizeExceeded(t *testing.T) {
	b := encode(t, deepPath(9))

	_, err := wire.Decode(b, Decoder(9))
	require.NoError(t, err)

	_, err = wire.Decode(b, Decoder(8))
	require.ErrorIs(t, err, wire.ErrSizeExceeded)

	_, refErr := decodeRecursive(wire.NewCursor(b), 0, 8)
	require.Equal(t, wire.OffsetOf(refErr), wire.OffsetOf(err))
}

func TestDecodeErrors(t *testing.T) {
	_, err := wire.Decode(nil, Decoder(DefaultMaxDepth))
	require.ErrorIs(t, err, wire.ErrTruncated)
	require.Equal(t, 0, wire.OffsetOf(err))

	_, err = wire.Decode([]byte{TagLeft, 0x33}, Decoder(DefaultMaxDepth))
	require.ErrorIs(t, err, wire.ErrInvalidTag)
	require.Equal(t, 1, wire.OffsetOf(err))

	// Left with its leaf but no right sibling
	_, err = wire.Decode([]byte{TagLeft, TagOp, 0x01}, Decoder(DefaultMaxDepth))
	require.ErrorIs(t, err, wire.ErrTruncated)
	require.Equal(t, 2, wire.OffsetOf(err))

	require.ErrorIs(t, Encode(wire.NewWriter(0), &Left{Right: fill(1)}), wire.ErrInvalidValue)
}

func TestNilStepsAreRejected(t *testing.T) {
	var left *Left
	w := wire.NewWriter(0)
	require.ErrorIs(t, Encode(w, left), wire.ErrInvalidValue)

	var right *Right
	require.ErrorIs(t, Encode(wire.NewWriter(0), right), wire.ErrInvalidValue)

	// nil below a real step reports the offset where it would start
	err := Encode(wire.NewWriter(0), &Right{Left: fill(2), Path: (*Left)(nil)})
	require.ErrorIs(t, err, wire.ErrInvalidValue)
	require.Equal(t, 1+hash.Size, wire.OffsetOf(err))

	require.Equal(t, 0, Depth(left))
	require.Equal(t, 1, Depth(&Left{Path: right}))
}

func TestEqualHandlesNil(t *testing.T) {
	var left *Left
	var right *Right
	require.True(t, Equal(nil, nil))
	require.True(t, Equal(left, (*Left)(nil)))
	require.False(t, Equal(left, right))
	require.False(t, Equal(nil, Op{}))
	require.False(t, Equal(Op{}, nil))
	require.False(t, Equal(left, &Left{Path: Op{}}))
	require.False(t, Equal(&Right{Path: Op{}}, right))
	require.True(t, Equal(&Left{Path: left, Right: fill(1)}, &Left{Path: left, Right: fill(1)}))
}

type outcome struct {
	Path     Path
	Consumed int
	Kind     wire.Kind
	Offset   int
}

func run(b []byte, maxDepth int, dec func(c *wire.Cursor) (Path, error)) outcome {
	c := wire.NewCursor(b)
	p, err := dec(c)
	if err != nil {
		kind, _ := wire.KindOf(err)
		return outcome{Kind: kind, Offset: wire.OffsetOf(err)}
	}
	return outcome{Path: p, Consumed: c.Offset()}
}

// randomPathBytes produces mostly well-formed proofs with the occasional
// bad tag, truncation or trailing byte.
func randomPathBytes(r *rand.Rand) []byte {
	w := wire.NewWriter(0)
	depth := r.Intn(24)
	p := Path(Op{})
	for i := 0; i < depth; i++ {
		var h hash.OperationListListHash
		r.Read(h[:])
		if r.Intn(2) == 0 {
			p = &Left{Path: p, Right: h}
		} else {
			p = &Right{Left: h, Path: p}
		}
	}
	_ = Encode(w, p)
	b := append([]byte(nil), w.Bytes()...)
	switch r.Intn(4) {
	case 0:
		b = b[:r.Intn(len(b)+1)]
	case 1:
		b[r.Intn(len(b))] = byte(r.Intn(256))
	case 2:
		b = append(b, byte(r.Intn(256)))
	}
	return b
}

func TestIterativeMatchesRecursive(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 5000; i++ {
		b := randomPathBytes(r)
		maxDepth := DefaultMaxDepth
		if i%5 == 0 {
			maxDepth = r.Intn(12)
		}
		got := run(b, maxDepth, func(c *wire.Cursor) (Path, error) { return Decode(c, maxDepth) })
		want := run(b, maxDepth, func(c *wire.Cursor) (Path, error) { return decodeRecursive(c, 0, maxDepth) })
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("input %x: iterative and recursive decoders differ (-recursive +iterative):\n%s", b, diff)
		}
	}
}

func FuzzDecode(f *testing.F) {
	f.Add([]byte{TagOp})
	f.Add([]byte{})
	f.Add(encodeSeed(deepPath(3)))
	f.Add(encodeSeed(deepPath(40)))
	f.Add([]byte{TagLeft, TagLeft, TagLeft})
	f.Fuzz(func(t *testing.T, b []byte) {
		got := run(b, 64, func(c *wire.Cursor) (Path, error) { return Decode(c, 64) })
		want := run(b, 64, func(c *wire.Cursor) (Path, error) { return decodeRecursive(c, 0, 64) })
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("decoders differ:\n%s", diff)
		}
		if got.Path == nil {
			return
		}
		w := wire.NewWriter(got.Consumed)
		if err := Encode(w, got.Path); err != nil {
			t.Fatalf("re-encode: %v", err)
		}
		if !bytes.Equal(w.Bytes(), b[:got.Consumed]) {
			t.Fatalf("re-encode mismatch")
		}
	})
}

func encodeSeed(p Path) []byte {
	w := wire.NewWriter(Size(p))
	_ = Encode(w, p)
	return w.Bytes()
}
