package messages

import (
	"github.com/danmuck/p2pcodec/internal/protocol/hash"
	"github.com/danmuck/p2pcodec/internal/protocol/path"
)

// Tag is the u16 discriminant in front of every peer message.
type Tag uint16

const (
	TagDisconnect                  Tag = 0x01
	TagBootstrap                   Tag = 0x02
	TagAdvertise                   Tag = 0x03
	TagSwapRequest                 Tag = 0x04
	TagSwapAck                     Tag = 0x05
	TagGetCurrentBranch            Tag = 0x10
	TagCurrentBranch               Tag = 0x11
	TagDeactivate                  Tag = 0x12
	TagGetCurrentHead              Tag = 0x13
	TagCurrentHead                 Tag = 0x14
	TagGetBlockHeaders             Tag = 0x20
	TagBlockHeader                 Tag = 0x21
	TagGetOperations               Tag = 0x30
	TagOperation                   Tag = 0x31
	TagGetProtocols                Tag = 0x40
	TagProtocol                    Tag = 0x41
	TagGetOperationHashesForBlocks Tag = 0x50
	TagOperationHashesForBlocks    Tag = 0x51
	TagGetOperationsForBlocks      Tag = 0x60
	TagOperationsForBlocks         Tag = 0x61
)

// PeerMessage is any message exchanged after the handshake.
type PeerMessage interface {
	Tag() Tag
	isPeerMessage()
}

// Response is the unit read from and written to a peer connection: a
// length-prefixed run of tagged peer messages. Messages that end in a
// greedy list or rest field consume the rest of the response, so the
// encoder only accepts them as the last message.
type Response struct {
	Messages []PeerMessage
}

type Disconnect struct{}

type Bootstrap struct{}

// Advertise lists peer points ("host:port") the sender knows of.
type Advertise struct {
	IDs []string
}

type SwapRequest struct {
	Point  string
	PeerID hash.CryptoboxPublicKeyHash
}

// SwapAck has the same shape as SwapRequest.
type SwapAck SwapRequest

type GetCurrentBranch struct {
	ChainID hash.ChainID
}

type BranchInfo struct {
	CurrentHead BlockHeader
	History     []hash.BlockHash
}

type CurrentBranch struct {
	ChainID hash.ChainID
	Branch  BranchInfo
}

type Deactivate struct {
	ChainID hash.ChainID
}

type GetCurrentHead struct {
	ChainID hash.ChainID
}

type Mempool struct {
	KnownValid []hash.OperationHash
	Pending    []hash.OperationHash
}

type CurrentHead struct {
	ChainID hash.ChainID
	Header  BlockHeader
	Mempool Mempool
}

type GetBlockHeaders struct {
	Hashes []hash.BlockHash
}

type BlockHeader struct {
	Level          int32
	Proto          uint8
	Predecessor    hash.BlockHash
	Timestamp      int64
	ValidationPass uint8
	OperationsHash hash.OperationListListHash
	Fitness        [][]byte
	Context        hash.ContextHash
	ProtocolData   []byte
}

type BlockHeaderMessage struct {
	Header BlockHeader
}

type GetOperations struct {
	Hashes []hash.OperationHash
}

type Operation struct {
	Branch hash.BlockHash
	Data   []byte
}

type OperationMessage struct {
	Operation Operation
}

type GetProtocols struct {
	Hashes []hash.ProtocolHash
}

type Component struct {
	Name           string
	Interface      *string
	Implementation string
}

type Protocol struct {
	ExpectedEnvVersion int16
	Components         []Component
}

type ProtocolMessage struct {
	Protocol Protocol
}

// OperationsForBlock names one validation pass of one block.
type OperationsForBlock struct {
	Hash           hash.BlockHash
	ValidationPass int8
}

type GetOperationHashesForBlocks struct {
	Blocks []OperationsForBlock
}

// OperationHashesForBlocks answers with the hashes of one validation pass
// and the proof that they belong to the block.
type OperationHashesForBlocks struct {
	Block  OperationsForBlock
	Path   path.Path
	Hashes []hash.OperationHash
}

type GetOperationsForBlocks struct {
	Blocks []OperationsForBlock
}

type OperationsForBlocks struct {
	Block      OperationsForBlock
	Path       path.Path
	Operations []Operation
}

func (Disconnect) Tag() Tag                  { return TagDisconnect }
func (Bootstrap) Tag() Tag                   { return TagBootstrap }
func (Advertise) Tag() Tag                   { return TagAdvertise }
func (SwapRequest) Tag() Tag                 { return TagSwapRequest }
func (SwapAck) Tag() Tag                     { return TagSwapAck }
func (GetCurrentBranch) Tag() Tag            { return TagGetCurrentBranch }
func (CurrentBranch) Tag() Tag               { return TagCurrentBranch }
func (Deactivate) Tag() Tag                  { return TagDeactivate }
func (GetCurrentHead) Tag() Tag              { return TagGetCurrentHead }
func (CurrentHead) Tag() Tag                 { return TagCurrentHead }
func (GetBlockHeaders) Tag() Tag             { return TagGetBlockHeaders }
func (BlockHeaderMessage) Tag() Tag          { return TagBlockHeader }
func (GetOperations) Tag() Tag               { return TagGetOperations }
func (OperationMessage) Tag() Tag            { return TagOperation }
func (GetProtocols) Tag() Tag                { return TagGetProtocols }
func (ProtocolMessage) Tag() Tag             { return TagProtocol }
func (GetOperationHashesForBlocks) Tag() Tag { return TagGetOperationHashesForBlocks }
func (OperationHashesForBlocks) Tag() Tag    { return TagOperationHashesForBlocks }
func (GetOperationsForBlocks) Tag() Tag      { return TagGetOperationsForBlocks }
func (OperationsForBlocks) Tag() Tag         { return TagOperationsForBlocks }

func (Disconnect) isPeerMessage()                  {}
func (Bootstrap) isPeerMessage()                   {}
func (Advertise) isPeerMessage()                   {}
func (SwapRequest) isPeerMessage()                 {}
func (SwapAck) isPeerMessage()                     {}
func (GetCurrentBranch) isPeerMessage()            {}
func (CurrentBranch) isPeerMessage()               {}
func (Deactivate) isPeerMessage()                  {}
func (GetCurrentHead) isPeerMessage()              {}
func (CurrentHead) isPeerMessage()                 {}
func (GetBlockHeaders) isPeerMessage()             {}
func (BlockHeaderMessage) isPeerMessage()          {}
func (GetOperations) isPeerMessage()               {}
func (OperationMessage) isPeerMessage()            {}
func (GetProtocols) isPeerMessage()                {}
func (ProtocolMessage) isPeerMessage()             {}
func (GetOperationHashesForBlocks) isPeerMessage() {}
func (OperationHashesForBlocks) isPeerMessage()    {}
func (GetOperationsForBlocks) isPeerMessage()      {}
func (OperationsForBlocks) isPeerMessage()         {}
