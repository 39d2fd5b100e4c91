package messages

import (
	"github.com/danmuck/p2pcodec/internal/protocol/hash"
	"github.com/danmuck/p2pcodec/internal/protocol/wire"
)

func str(max int) wire.Decoder[string] {
	return func(r *wire.Cursor) (string, error) { return r.String(max) }
}

func putStr(max int) wire.Encoder[string] {
	return func(w *wire.Writer, s string) error { return w.PutString(s, max) }
}

func rest(max int) wire.Decoder[[]byte] {
	return func(r *wire.Cursor) ([]byte, error) { return r.Rest(max) }
}

// hashes is a length-prefixed run of 32-byte hashes, at most max of them.
func hashes[H any](max int, d wire.Decoder[H]) wire.Decoder[[]H] {
	return wire.Dynamic(max*hash.Size, wire.BoundedList(max, d))
}

func putHashes[H any](w *wire.Writer, max int, hs []H, e wire.Encoder[H]) error {
	return w.Dynamic(max*hash.Size, func(w *wire.Writer) error {
		return wire.EncodeList(w, max, hs, e)
	})
}

func (c *Codec) fitnessMaxSize() int {
	return c.limits.FitnessMaxElements * (wire.LengthPrefixSize + c.limits.FitnessElementMaxSize)
}

func (c *Codec) decodeBlockHeader(r *wire.Cursor) (BlockHeader, error) {
	l := c.limits
	fitness := wire.Dynamic(c.fitnessMaxSize(),
		wire.BoundedList(l.FitnessMaxElements,
			wire.Dynamic(l.FitnessElementMaxSize, rest(l.FitnessElementMaxSize))))

	var h BlockHeader
	err := wire.Sequence(r,
		wire.Into(&h.Level, (*wire.Cursor).Int32),
		wire.Into(&h.Proto, (*wire.Cursor).Uint8),
		wire.Into(&h.Predecessor, hash.DecodeBlockHash),
		wire.Into(&h.Timestamp, (*wire.Cursor).Int64),
		wire.Into(&h.ValidationPass, (*wire.Cursor).Uint8),
		wire.Into(&h.OperationsHash, hash.DecodeOperationListListHash),
		wire.Into(&h.Fitness, fitness),
		wire.Into(&h.Context, hash.DecodeContextHash),
		wire.Into(&h.ProtocolData, rest(l.ProtocolDataMaxSize)),
	)
	return h, err
}

func (c *Codec) encodeBlockHeader(w *wire.Writer, h BlockHeader) error {
	l := c.limits
	w.PutInt32(h.Level)
	w.PutUint8(h.Proto)
	w.PutFixed(h.Predecessor[:])
	w.PutInt64(h.Timestamp)
	w.PutUint8(h.ValidationPass)
	w.PutFixed(h.OperationsHash[:])
	err := w.Dynamic(c.fitnessMaxSize(), func(w *wire.Writer) error {
		return wire.EncodeList(w, l.FitnessMaxElements, h.Fitness, func(w *wire.Writer, e []byte) error {
			return w.Dynamic(l.FitnessElementMaxSize, func(w *wire.Writer) error {
				return w.PutRest(e, l.FitnessElementMaxSize)
			})
		})
	})
	if err != nil {
		return err
	}
	w.PutFixed(h.Context[:])
	return w.PutRest(h.ProtocolData, l.ProtocolDataMaxSize)
}

// dynamicBlockHeader is a block header behind its own size prefix, as
// carried inside branch and head announcements.
func (c *Codec) dynamicBlockHeader(r *wire.Cursor) (BlockHeader, error) {
	return wire.Dynamic(c.limits.BlockHeaderMaxSize, c.decodeBlockHeader)(r)
}

func (c *Codec) putDynamicBlockHeader(w *wire.Writer, h BlockHeader) error {
	return wire.EncodeDynamic(w, c.limits.BlockHeaderMaxSize, h, c.encodeBlockHeader)
}

func (c *Codec) decodeOperation(r *wire.Cursor) (Operation, error) {
	var op Operation
	err := wire.Sequence(r,
		wire.Into(&op.Branch, hash.DecodeBlockHash),
		wire.Into(&op.Data, rest(c.limits.OperationMaxSize)),
	)
	return op, err
}

func (c *Codec) encodeOperation(w *wire.Writer, op Operation) error {
	w.PutFixed(op.Branch[:])
	return w.PutRest(op.Data, c.limits.OperationMaxSize)
}

func (c *Codec) operationMaxSize() int {
	return hash.Size + c.limits.OperationMaxSize
}

func (c *Codec) decodeMempool(r *wire.Cursor) (Mempool, error) {
	max := c.limits.MempoolMaxOperations
	var m Mempool
	err := wire.Sequence(r,
		wire.Into(&m.KnownValid, hashes(max, hash.DecodeOperationHash)),
		wire.Into(&m.Pending, wire.Dynamic(max*hash.Size+wire.LengthPrefixSize,
			hashes(max, hash.DecodeOperationHash))),
	)
	return m, err
}

func (c *Codec) encodeMempool(w *wire.Writer, m Mempool) error {
	max := c.limits.MempoolMaxOperations
	if err := putHashes(w, max, m.KnownValid, hash.EncodeOperationHash); err != nil {
		return err
	}
	return w.Dynamic(max*hash.Size+wire.LengthPrefixSize, func(w *wire.Writer) error {
		return putHashes(w, max, m.Pending, hash.EncodeOperationHash)
	})
}

func (c *Codec) decodeComponent(r *wire.Cursor) (Component, error) {
	max := c.limits.ProtocolComponentMaxSize
	var comp Component
	err := wire.Sequence(r,
		wire.Into(&comp.Name, str(max)),
		wire.Into(&comp.Interface, wire.Optional(str(max))),
		wire.Into(&comp.Implementation, str(max)),
	)
	return comp, err
}

func (c *Codec) encodeComponent(w *wire.Writer, comp Component) error {
	max := c.limits.ProtocolComponentMaxSize
	if err := w.PutString(comp.Name, max); err != nil {
		return err
	}
	if err := wire.EncodeOptional(w, comp.Interface, putStr(max)); err != nil {
		return err
	}
	return w.PutString(comp.Implementation, max)
}

func (c *Codec) decodeProtocol(r *wire.Cursor) (Protocol, error) {
	var p Protocol
	err := wire.Sequence(r,
		wire.Into(&p.ExpectedEnvVersion, (*wire.Cursor).Int16),
		wire.Into(&p.Components, wire.Dynamic(c.limits.MessageMaxSize,
			wire.BoundedList(c.limits.ProtocolMaxComponents, c.decodeComponent))),
	)
	return p, err
}

func (c *Codec) encodeProtocol(w *wire.Writer, p Protocol) error {
	w.PutInt16(p.ExpectedEnvVersion)
	return w.Dynamic(c.limits.MessageMaxSize, func(w *wire.Writer) error {
		return wire.EncodeList(w, c.limits.ProtocolMaxComponents, p.Components, c.encodeComponent)
	})
}

func decodeOperationsForBlock(r *wire.Cursor) (OperationsForBlock, error) {
	var ob OperationsForBlock
	err := wire.Sequence(r,
		wire.Into(&ob.Hash, hash.DecodeBlockHash),
		wire.Into(&ob.ValidationPass, (*wire.Cursor).Int8),
	)
	return ob, err
}

func encodeOperationsForBlock(w *wire.Writer, ob OperationsForBlock) error {
	w.PutFixed(ob.Hash[:])
	w.PutInt8(ob.ValidationPass)
	return nil
}

const operationsForBlockSize = hash.Size + 1
