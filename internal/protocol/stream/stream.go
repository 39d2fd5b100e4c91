// Package stream moves whole messages over a chunked peer connection.
//
// Ownership boundary:
// - Reassembling one size-prefixed response from consecutive chunks.
// - Splitting an encoded response into chunks on the way out.
// - Recording codec metrics and logging rejected input.
//
// Decoding itself is the messages.Codec's job; this package never retries
// and never keeps bytes across calls.
package stream

import (
	"context"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/danmuck/p2pcodec/internal/observability"
	"github.com/danmuck/p2pcodec/internal/protocol/chunk"
	"github.com/danmuck/p2pcodec/internal/protocol/messages"
	"github.com/danmuck/p2pcodec/internal/protocol/path"
	"github.com/danmuck/p2pcodec/internal/protocol/wire"
)

type Reader struct {
	r     io.Reader
	codec *messages.Codec
	log   zerolog.Logger
}

func NewReader(r io.Reader, codec *messages.Codec, log zerolog.Logger) *Reader {
	return &Reader{r: r, codec: codec, log: log.With().Str("component", "stream_reader").Logger()}
}

// ReadResponse reads chunks until one response is complete and decodes it.
// A stream that ends cleanly between responses returns io.EOF.
func (r *Reader) ReadResponse(ctx context.Context) (messages.Response, error) {
	raw, err := r.readMessage(ctx)
	if err != nil {
		return messages.Response{}, err
	}
	observability.RecordBytes(observability.DirectionIn, len(raw))

	resp, err := r.codec.DecodeResponse(raw)
	if err != nil {
		r.reject(err, len(raw))
		return messages.Response{}, err
	}
	for _, m := range resp.Messages {
		name := m.Tag().String()
		observability.RecordDecoded(name)
		if p := proofOf(m); p != nil {
			observability.RecordPathDepth(path.Depth(p))
		}
		r.log.Debug().Str("message", name).Int("bytes", len(raw)).Msg("decoded")
	}
	return resp, nil
}

// ReadConnection reads the single-chunk connection message that opens a
// session.
func (r *Reader) ReadConnection(ctx context.Context) (messages.ConnectionMessage, error) {
	if err := ctx.Err(); err != nil {
		return messages.ConnectionMessage{}, err
	}
	c, err := chunk.Read(r.r)
	if err != nil {
		return messages.ConnectionMessage{}, errors.Wrap(err, "stream: read connection chunk")
	}
	observability.RecordBytes(observability.DirectionIn, len(c.Content()))
	m, err := r.codec.DecodeConnection(c.Content())
	if err != nil {
		r.reject(err, len(c.Content()))
		return messages.ConnectionMessage{}, err
	}
	r.log.Debug().
		Uint16("port", m.Port).
		Str("chain", m.Version.ChainName).
		Msg("decoded connection message")
	return m, nil
}

func (r *Reader) readMessage(ctx context.Context) ([]byte, error) {
	var buf []byte
	want := -1
	for want < 0 || len(buf) < want {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := chunk.Read(r.r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				if len(buf) == 0 {
					return nil, io.EOF
				}
				err = io.ErrUnexpectedEOF
			}
			return nil, errors.Wrap(err, "stream: read chunk")
		}
		buf = append(buf, c.Content()...)
		if want < 0 && len(buf) >= wire.LengthPrefixSize {
			size := binary.BigEndian.Uint32(buf)
			if max := r.codec.Limits().MessageMaxSize; uint64(size) > uint64(max) {
				err := wire.Errorf(wire.KindSizeExceeded, 0, "message of %d bytes above maximum %d", size, max)
				r.reject(err, len(buf))
				return nil, err
			}
			want = wire.LengthPrefixSize + int(size)
		}
	}
	if len(buf) > want {
		err := wire.Errorf(wire.KindInvalidValue, want, "last chunk runs %d bytes past the message", len(buf)-want)
		r.reject(err, len(buf))
		return nil, err
	}
	return buf, nil
}

func (r *Reader) reject(err error, n int) {
	kind, _ := wire.KindOf(err)
	observability.RecordDecodeError(kind.String())
	r.log.Warn().
		Err(err).
		Str("kind", kind.String()).
		Int("offset", wire.OffsetOf(err)).
		Int("bytes", n).
		Msg("rejected peer input")
}

func proofOf(m messages.PeerMessage) path.Path {
	switch v := m.(type) {
	case messages.OperationHashesForBlocks:
		return v.Path
	case messages.OperationsForBlocks:
		return v.Path
	default:
		return nil
	}
}

type Writer struct {
	w     io.Writer
	codec *messages.Codec
	log   zerolog.Logger
}

func NewWriter(w io.Writer, codec *messages.Codec, log zerolog.Logger) *Writer {
	return &Writer{w: w, codec: codec, log: log.With().Str("component", "stream_writer").Logger()}
}

// WriteResponse encodes resp and writes it as one or more chunks.
func (w *Writer) WriteResponse(ctx context.Context, resp messages.Response) error {
	b, err := w.codec.EncodeResponse(resp)
	if err != nil {
		return errors.Wrap(err, "stream: encode response")
	}
	parts := chunk.Split(b)
	for _, part := range parts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := chunk.Write(w.w, part); err != nil {
			return errors.Wrap(err, "stream: write chunk")
		}
	}
	observability.RecordBytes(observability.DirectionOut, len(b))
	w.log.Debug().Int("messages", len(resp.Messages)).Int("chunks", len(parts)).Int("bytes", len(b)).Msg("wrote response")
	return nil
}

// WriteMessage sends m as a response of one message.
func (w *Writer) WriteMessage(ctx context.Context, m messages.PeerMessage) error {
	return w.WriteResponse(ctx, messages.Response{Messages: []messages.PeerMessage{m}})
}

// WriteConnection sends the connection message as a single chunk.
func (w *Writer) WriteConnection(ctx context.Context, m messages.ConnectionMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := w.codec.EncodeConnection(m)
	if err != nil {
		return errors.Wrap(err, "stream: encode connection message")
	}
	if err := chunk.Write(w.w, b); err != nil {
		return errors.Wrap(err, "stream: write connection chunk")
	}
	observability.RecordBytes(observability.DirectionOut, len(b))
	return nil
}
