package messages

import (
	"github.com/danmuck/p2pcodec/internal/protocol/hash"
	"github.com/danmuck/p2pcodec/internal/protocol/path"
	"github.com/danmuck/p2pcodec/internal/protocol/wire"
)

func (c *Codec) decodeDisconnect(*wire.Cursor) (Disconnect, error) { return Disconnect{}, nil }

func (c *Codec) encodeDisconnect(*wire.Writer, Disconnect) error { return nil }

func (c *Codec) decodeBootstrap(*wire.Cursor) (Bootstrap, error) { return Bootstrap{}, nil }

func (c *Codec) encodeBootstrap(*wire.Writer, Bootstrap) error { return nil }

// Advertise has no prefix: its points run to the end of the message.
func (c *Codec) decodeAdvertise(r *wire.Cursor) (Advertise, error) {
	ids, err := wire.BoundedList(c.limits.AdvertiseMaxIDs, str(c.limits.P2PPointMaxSize))(r)
	return Advertise{IDs: ids}, err
}

func (c *Codec) encodeAdvertise(w *wire.Writer, m Advertise) error {
	return wire.EncodeList(w, c.limits.AdvertiseMaxIDs, m.IDs, putStr(c.limits.P2PPointMaxSize))
}

func (c *Codec) decodeSwapRequest(r *wire.Cursor) (SwapRequest, error) {
	var m SwapRequest
	err := wire.Sequence(r,
		wire.Into(&m.Point, str(c.limits.P2PPointMaxSize)),
		wire.Into(&m.PeerID, hash.DecodeCryptoboxPublicKeyHash),
	)
	return m, err
}

func (c *Codec) encodeSwapRequest(w *wire.Writer, m SwapRequest) error {
	if err := w.PutString(m.Point, c.limits.P2PPointMaxSize); err != nil {
		return err
	}
	w.PutFixed(m.PeerID[:])
	return nil
}

func (c *Codec) decodeSwapAck(r *wire.Cursor) (SwapAck, error) {
	m, err := c.decodeSwapRequest(r)
	return SwapAck(m), err
}

func (c *Codec) encodeSwapAck(w *wire.Writer, m SwapAck) error {
	return c.encodeSwapRequest(w, SwapRequest(m))
}

func (c *Codec) decodeGetCurrentBranch(r *wire.Cursor) (GetCurrentBranch, error) {
	id, err := hash.DecodeChainID(r)
	return GetCurrentBranch{ChainID: id}, err
}

func (c *Codec) encodeGetCurrentBranch(w *wire.Writer, m GetCurrentBranch) error {
	w.PutFixed(m.ChainID[:])
	return nil
}

func (c *Codec) decodeCurrentBranch(r *wire.Cursor) (CurrentBranch, error) {
	var m CurrentBranch
	err := wire.Sequence(r,
		wire.Into(&m.ChainID, hash.DecodeChainID),
		wire.Into(&m.Branch.CurrentHead, c.dynamicBlockHeader),
		wire.Into(&m.Branch.History, wire.BoundedList(c.limits.CurrentBranchHistoryMax, hash.DecodeBlockHash)),
	)
	return m, err
}

func (c *Codec) encodeCurrentBranch(w *wire.Writer, m CurrentBranch) error {
	w.PutFixed(m.ChainID[:])
	if err := c.putDynamicBlockHeader(w, m.Branch.CurrentHead); err != nil {
		return err
	}
	return wire.EncodeList(w, c.limits.CurrentBranchHistoryMax, m.Branch.History, hash.EncodeBlockHash)
}

func (c *Codec) decodeDeactivate(r *wire.Cursor) (Deactivate, error) {
	id, err := hash.DecodeChainID(r)
	return Deactivate{ChainID: id}, err
}

func (c *Codec) encodeDeactivate(w *wire.Writer, m Deactivate) error {
	w.PutFixed(m.ChainID[:])
	return nil
}

func (c *Codec) decodeGetCurrentHead(r *wire.Cursor) (GetCurrentHead, error) {
	id, err := hash.DecodeChainID(r)
	return GetCurrentHead{ChainID: id}, err
}

func (c *Codec) encodeGetCurrentHead(w *wire.Writer, m GetCurrentHead) error {
	w.PutFixed(m.ChainID[:])
	return nil
}

func (c *Codec) decodeCurrentHead(r *wire.Cursor) (CurrentHead, error) {
	var m CurrentHead
	err := wire.Sequence(r,
		wire.Into(&m.ChainID, hash.DecodeChainID),
		wire.Into(&m.Header, c.dynamicBlockHeader),
		wire.Into(&m.Mempool, c.decodeMempool),
	)
	return m, err
}

func (c *Codec) encodeCurrentHead(w *wire.Writer, m CurrentHead) error {
	w.PutFixed(m.ChainID[:])
	if err := c.putDynamicBlockHeader(w, m.Header); err != nil {
		return err
	}
	return c.encodeMempool(w, m.Mempool)
}

func (c *Codec) decodeGetBlockHeaders(r *wire.Cursor) (GetBlockHeaders, error) {
	hs, err := hashes(c.limits.GetListMax, hash.DecodeBlockHash)(r)
	return GetBlockHeaders{Hashes: hs}, err
}

func (c *Codec) encodeGetBlockHeaders(w *wire.Writer, m GetBlockHeaders) error {
	return putHashes(w, c.limits.GetListMax, m.Hashes, hash.EncodeBlockHash)
}

func (c *Codec) decodeBlockHeaderMessage(r *wire.Cursor) (BlockHeaderMessage, error) {
	h, err := c.decodeBlockHeader(r)
	return BlockHeaderMessage{Header: h}, err
}

func (c *Codec) encodeBlockHeaderMessage(w *wire.Writer, m BlockHeaderMessage) error {
	return c.encodeBlockHeader(w, m.Header)
}

func (c *Codec) decodeGetOperations(r *wire.Cursor) (GetOperations, error) {
	hs, err := hashes(c.limits.GetListMax, hash.DecodeOperationHash)(r)
	return GetOperations{Hashes: hs}, err
}

func (c *Codec) encodeGetOperations(w *wire.Writer, m GetOperations) error {
	return putHashes(w, c.limits.GetListMax, m.Hashes, hash.EncodeOperationHash)
}

func (c *Codec) decodeOperationMessage(r *wire.Cursor) (OperationMessage, error) {
	op, err := c.decodeOperation(r)
	return OperationMessage{Operation: op}, err
}

func (c *Codec) encodeOperationMessage(w *wire.Writer, m OperationMessage) error {
	return c.encodeOperation(w, m.Operation)
}

func (c *Codec) decodeGetProtocols(r *wire.Cursor) (GetProtocols, error) {
	hs, err := hashes(c.limits.GetListMax, hash.DecodeProtocolHash)(r)
	return GetProtocols{Hashes: hs}, err
}

func (c *Codec) encodeGetProtocols(w *wire.Writer, m GetProtocols) error {
	return putHashes(w, c.limits.GetListMax, m.Hashes, hash.EncodeProtocolHash)
}

func (c *Codec) decodeProtocolMessage(r *wire.Cursor) (ProtocolMessage, error) {
	p, err := c.decodeProtocol(r)
	return ProtocolMessage{Protocol: p}, err
}

func (c *Codec) encodeProtocolMessage(w *wire.Writer, m ProtocolMessage) error {
	return c.encodeProtocol(w, m.Protocol)
}

func (c *Codec) blocks(r *wire.Cursor) ([]OperationsForBlock, error) {
	max := c.limits.GetListMax
	return wire.Dynamic(max*operationsForBlockSize, wire.BoundedList(max, decodeOperationsForBlock))(r)
}

func (c *Codec) putBlocks(w *wire.Writer, blocks []OperationsForBlock) error {
	max := c.limits.GetListMax
	return w.Dynamic(max*operationsForBlockSize, func(w *wire.Writer) error {
		return wire.EncodeList(w, max, blocks, encodeOperationsForBlock)
	})
}

func (c *Codec) decodeGetOperationHashesForBlocks(r *wire.Cursor) (GetOperationHashesForBlocks, error) {
	blocks, err := c.blocks(r)
	return GetOperationHashesForBlocks{Blocks: blocks}, err
}

func (c *Codec) encodeGetOperationHashesForBlocks(w *wire.Writer, m GetOperationHashesForBlocks) error {
	return c.putBlocks(w, m.Blocks)
}

func (c *Codec) decodeOperationHashesForBlocks(r *wire.Cursor) (OperationHashesForBlocks, error) {
	var m OperationHashesForBlocks
	err := wire.Sequence(r,
		wire.Into(&m.Block, decodeOperationsForBlock),
		wire.Into(&m.Path, path.Decoder(c.limits.MaxPathDepth)),
		wire.Into(&m.Hashes, wire.BoundedList(c.limits.OperationHashesMax, hash.DecodeOperationHash)),
	)
	return m, err
}

func (c *Codec) encodeOperationHashesForBlocks(w *wire.Writer, m OperationHashesForBlocks) error {
	_ = encodeOperationsForBlock(w, m.Block)
	if err := path.Encode(w, m.Path); err != nil {
		return err
	}
	return wire.EncodeList(w, c.limits.OperationHashesMax, m.Hashes, hash.EncodeOperationHash)
}

func (c *Codec) decodeGetOperationsForBlocks(r *wire.Cursor) (GetOperationsForBlocks, error) {
	blocks, err := c.blocks(r)
	return GetOperationsForBlocks{Blocks: blocks}, err
}

func (c *Codec) encodeGetOperationsForBlocks(w *wire.Writer, m GetOperationsForBlocks) error {
	return c.putBlocks(w, m.Blocks)
}

func (c *Codec) decodeOperationsForBlocks(r *wire.Cursor) (OperationsForBlocks, error) {
	var m OperationsForBlocks
	err := wire.Sequence(r,
		wire.Into(&m.Block, decodeOperationsForBlock),
		wire.Into(&m.Path, path.Decoder(c.limits.MaxPathDepth)),
		wire.Into(&m.Operations, wire.BoundedList(c.limits.OperationsMax,
			wire.Dynamic(c.operationMaxSize(), c.decodeOperation))),
	)
	return m, err
}

func (c *Codec) encodeOperationsForBlocks(w *wire.Writer, m OperationsForBlocks) error {
	_ = encodeOperationsForBlock(w, m.Block)
	if err := path.Encode(w, m.Path); err != nil {
		return err
	}
	return wire.EncodeList(w, c.limits.OperationsMax, m.Operations, func(w *wire.Writer, op Operation) error {
		return wire.EncodeDynamic(w, c.operationMaxSize(), op, c.encodeOperation)
	})
}
