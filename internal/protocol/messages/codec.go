package messages

import (
	"github.com/danmuck/p2pcodec/internal/protocol/wire"
)

// Codec decodes and encodes every message under one set of Limits. It is
// immutable after NewCodec and safe for concurrent use.
type Codec struct {
	limits Limits
	peer   wire.Decoder[PeerMessage]
	ack    wire.Decoder[AckMessage]
}

var defaultCodec = NewCodec(DefaultLimits())

// DefaultCodec is shared and uses DefaultLimits.
func DefaultCodec() *Codec { return defaultCodec }

func NewCodec(limits Limits) *Codec {
	c := &Codec{limits: limits}

	table := make(wire.TagTable[Tag, PeerMessage], len(catalog))
	for tag, e := range catalog {
		decode := e.decode
		table[tag] = func(r *wire.Cursor) (PeerMessage, error) { return decode(c, r) }
	}
	c.peer = wire.Tagged(decodeTag, table)
	c.ack = wire.Tagged((*wire.Cursor).Uint8, wire.TagTable[uint8, AckMessage]{
		AckTagAck:    func(*wire.Cursor) (AckMessage, error) { return Ack{}, nil },
		AckTagNackV0: func(*wire.Cursor) (AckMessage, error) { return NackV0{}, nil },
		AckTagNack:   wire.Map(c.decodeNack, func(n Nack) AckMessage { return n }),
	})
	return c
}

func (c *Codec) Limits() Limits { return c.limits }

func decodeTag(r *wire.Cursor) (Tag, error) {
	v, err := r.Uint16()
	return Tag(v), err
}

func (c *Codec) decodeResponse(r *wire.Cursor) (Response, error) {
	msgs, err := wire.Dynamic(c.limits.MessageMaxSize,
		wire.BoundedList(c.limits.ResponseMaxMessages, c.peer))(r)
	return Response{Messages: msgs}, err
}

func (c *Codec) encodePeerMessage(w *wire.Writer, m PeerMessage) error {
	if m == nil {
		return wire.Errorf(wire.KindInvalidValue, w.Len(), "nil peer message")
	}
	e, ok := catalog[m.Tag()]
	if !ok {
		return wire.Errorf(wire.KindInvalidTag, w.Len(), "unknown peer message tag 0x%04x", uint16(m.Tag()))
	}
	w.PutUint16(uint16(m.Tag()))
	return e.encode(c, w, m)
}

// encodeResponse refuses a greedy message anywhere but last, since the
// decoder would read the following messages into its trailing field.
func (c *Codec) encodeResponse(w *wire.Writer, resp Response) error {
	last := len(resp.Messages) - 1
	i := 0
	return w.Dynamic(c.limits.MessageMaxSize, func(w *wire.Writer) error {
		return wire.EncodeList(w, c.limits.ResponseMaxMessages, resp.Messages, func(w *wire.Writer, m PeerMessage) error {
			pos := i
			i++
			if m != nil && pos < last {
				if e, ok := catalog[m.Tag()]; ok && e.greedy {
					return wire.Errorf(wire.KindInvalidValue, w.Len(),
						"%s at position %d of %d must be the last message", e.name, pos, last+1)
				}
			}
			return c.encodePeerMessage(w, m)
		})
	})
}

// DecodeResponse decodes one complete response: the u32 size prefix and the
// tagged messages it covers.
func (c *Codec) DecodeResponse(b []byte) (Response, error) {
	return wire.Decode(b, c.decodeResponse)
}

func (c *Codec) EncodeResponse(resp Response) ([]byte, error) {
	return wire.Encode(resp, c.encodeResponse)
}

// DecodePeerMessage decodes one tagged peer message with no size prefix.
func (c *Codec) DecodePeerMessage(b []byte) (PeerMessage, error) {
	return wire.Decode(b, c.peer)
}

func (c *Codec) EncodePeerMessage(m PeerMessage) ([]byte, error) {
	return wire.Encode(m, c.encodePeerMessage)
}

// DecodeBody decodes the body of the message registered under tag, with
// the tag itself already stripped.
func (c *Codec) DecodeBody(tag Tag, b []byte) (PeerMessage, error) {
	e, ok := catalog[tag]
	if !ok {
		return nil, wire.Errorf(wire.KindInvalidTag, 0, "unknown peer message tag 0x%04x", uint16(tag))
	}
	return wire.Decode(b, func(r *wire.Cursor) (PeerMessage, error) { return e.decode(c, r) })
}

// EncodeBody encodes m without its tag.
func (c *Codec) EncodeBody(m PeerMessage) ([]byte, error) {
	if m == nil {
		return nil, wire.Errorf(wire.KindInvalidValue, 0, "nil peer message")
	}
	e, ok := catalog[m.Tag()]
	if !ok {
		return nil, wire.Errorf(wire.KindInvalidTag, 0, "unknown peer message tag 0x%04x", uint16(m.Tag()))
	}
	return wire.Encode(m, func(w *wire.Writer, m PeerMessage) error { return e.encode(c, w, m) })
}

func (c *Codec) DecodeConnection(b []byte) (ConnectionMessage, error) {
	return wire.Decode(b, c.decodeConnection)
}

func (c *Codec) EncodeConnection(m ConnectionMessage) ([]byte, error) {
	return wire.Encode(m, c.encodeConnection)
}

func (c *Codec) DecodeMetadata(b []byte) (MetadataMessage, error) {
	return wire.Decode(b, decodeMetadata)
}

func (c *Codec) EncodeMetadata(m MetadataMessage) ([]byte, error) {
	return wire.Encode(m, encodeMetadata)
}

func (c *Codec) DecodeAck(b []byte) (AckMessage, error) {
	return wire.Decode(b, c.ack)
}

func (c *Codec) EncodeAck(m AckMessage) ([]byte, error) {
	return wire.Encode(m, c.encodeAck)
}

// DecodeResponse uses the default codec.
func DecodeResponse(b []byte) (Response, error) { return defaultCodec.DecodeResponse(b) }

// EncodeResponse uses the default codec.
func EncodeResponse(resp Response) ([]byte, error) { return defaultCodec.EncodeResponse(resp) }

// DecodePeerMessage uses the default codec.
func DecodePeerMessage(b []byte) (PeerMessage, error) { return defaultCodec.DecodePeerMessage(b) }

// EncodePeerMessage uses the default codec.
func EncodePeerMessage(m PeerMessage) ([]byte, error) { return defaultCodec.EncodePeerMessage(m) }

// EncodeBlockHeader encodes a bare block header, the form its hash is
// taken over.
func (c *Codec) EncodeBlockHeader(h BlockHeader) ([]byte, error) {
	return wire.Encode(h, c.encodeBlockHeader)
}

func (c *Codec) DecodeBlockHeader(b []byte) (BlockHeader, error) {
	return wire.Decode(b, c.decodeBlockHeader)
}

// EncodeOperation encodes a bare operation, the form its hash is taken
// over.
func (c *Codec) EncodeOperation(op Operation) ([]byte, error) {
	return wire.Encode(op, c.encodeOperation)
}

func (c *Codec) DecodeOperation(b []byte) (Operation, error) {
	return wire.Decode(b, c.decodeOperation)
}
