package stream

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/danmuck/p2pcodec/internal/protocol/chunk"
	"github.com/danmuck/p2pcodec/internal/protocol/hash"
	"github.com/danmuck/p2pcodec/internal/protocol/messages"
	"github.com/danmuck/p2pcodec/internal/protocol/path"
	"github.com/danmuck/p2pcodec/internal/protocol/wire"
	"github.com/danmuck/p2pcodec/internal/testutil/testlog"
)

func TestWriteThenReadAcrossChunks(t *testing.T) {
	log := testlog.Start(t)
	ctx := context.Background()
	codec := messages.DefaultCodec()

	big := strings.Repeat("x", 3*chunk.ContentMax/2)
	want := []messages.PeerMessage{
		messages.ProtocolMessage{Protocol: messages.Protocol{
			ExpectedEnvVersion: 1,
			Components:         []messages.Component{{Name: "Main", Implementation: big}},
		}},
		messages.OperationHashesForBlocks{
			Block:  messages.OperationsForBlock{Hash: hash.BlockHash{1}, ValidationPass: 2},
			Path:   &path.Left{Path: path.Op{}, Right: hash.OperationListListHash{3}},
			Hashes: []hash.OperationHash{{4}},
		},
		messages.Bootstrap{},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf, codec, log)
	for _, m := range want {
		require.NoError(t, w.WriteMessage(ctx, m))
	}

	r := NewReader(&buf, codec, log)
	for _, m := range want {
		resp, err := r.ReadResponse(ctx)
		require.NoError(t, err)
		require.Len(t, resp.Messages, 1)
		require.Empty(t, cmp.Diff(m, resp.Messages[0], cmpopts.EquateEmpty()))
	}
	_, err := r.ReadResponse(ctx)
	require.ErrorIs(t, err, io.EOF)
}

func TestSizePrefixSplitAcrossChunks(t *testing.T) {
	log := testlog.Start(t)
	var buf bytes.Buffer
	require.NoError(t, chunk.Write(&buf, []byte{0x00, 0x00}))
	require.NoError(t, chunk.Write(&buf, []byte{0x00, 0x02}))
	require.NoError(t, chunk.Write(&buf, []byte{0x00, 0x02}))

	resp, err := NewReader(&buf, messages.DefaultCodec(), log).ReadResponse(context.Background())
	require.NoError(t, err)
	require.Equal(t, []messages.PeerMessage{messages.Bootstrap{}}, resp.Messages)
}

func TestReaderRejectsBadInput(t *testing.T) {
	log := testlog.Start(t)
	ctx := context.Background()
	codec := messages.DefaultCodec()

	var tooBig bytes.Buffer
	require.NoError(t, chunk.Write(&tooBig, []byte{0x7f, 0xff, 0xff, 0xff}))
	_, err := NewReader(&tooBig, codec, log).ReadResponse(ctx)
	require.ErrorIs(t, err, wire.ErrSizeExceeded)

	var overrun bytes.Buffer
	require.NoError(t, chunk.Write(&overrun, []byte{0, 0, 0, 2, 0x00, 0x02, 0xaa}))
	_, err = NewReader(&overrun, codec, log).ReadResponse(ctx)
	require.ErrorIs(t, err, wire.ErrInvalidValue)
	require.Equal(t, 6, wire.OffsetOf(err))

	var badTag bytes.Buffer
	require.NoError(t, chunk.Write(&badTag, []byte{0, 0, 0, 2, 0x00, 0x07}))
	_, err = NewReader(&badTag, codec, log).ReadResponse(ctx)
	require.ErrorIs(t, err, wire.ErrInvalidTag)

	var cut bytes.Buffer
	require.NoError(t, chunk.Write(&cut, []byte{0, 0, 0, 8, 0x00, 0x02}))
	_, err = NewReader(&cut, codec, log).ReadResponse(ctx)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestContextCancelled(t *testing.T) {
	log := testlog.Start(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	w := NewWriter(&buf, messages.DefaultCodec(), log)
	err := w.WriteMessage(ctx, messages.Disconnect{})
	require.True(t, errors.Is(err, context.Canceled))
	require.Zero(t, buf.Len())

	require.NoError(t, w.WriteMessage(context.Background(), messages.Disconnect{}))
	_, err = NewReader(&buf, messages.DefaultCodec(), log).ReadResponse(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestConnectionRoundTrip(t *testing.T) {
	log := testlog.Start(t)
	ctx := context.Background()
	codec := messages.DefaultCodec()
	m := messages.ConnectionMessage{
		Port:      9732,
		PublicKey: messages.PublicKey{9},
		Version:   messages.NetworkVersion{ChainName: "TEZOS_MAINNET", P2PVersion: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf, codec, log).WriteConnection(ctx, m))
	got, err := NewReader(&buf, codec, log).ReadConnection(ctx)
	require.NoError(t, err)
	require.Equal(t, m, got)
}
