package messages

import "github.com/danmuck/p2pcodec/internal/protocol/path"

// Limits bounds every variable-size field the catalog decodes. A Codec
// copies its Limits at construction.
type Limits struct {
	MaxPathDepth             int
	P2PPointMaxSize          int
	AdvertiseMaxIDs          int
	NackPeersMax             int
	ChainNameMaxSize         int
	CurrentBranchHistoryMax  int
	GetListMax               int
	BlockHeaderMaxSize       int
	FitnessMaxElements       int
	FitnessElementMaxSize    int
	ProtocolDataMaxSize      int
	OperationMaxSize         int
	OperationHashesMax       int
	OperationsMax            int
	MempoolMaxOperations     int
	ProtocolMaxComponents    int
	ProtocolComponentMaxSize int
	MessageMaxSize           int
	ResponseMaxMessages      int
}

func DefaultLimits() Limits {
	return Limits{
		MaxPathDepth:             path.DefaultMaxDepth,
		P2PPointMaxSize:          47,
		AdvertiseMaxIDs:          100,
		NackPeersMax:             100,
		ChainNameMaxSize:         128,
		CurrentBranchHistoryMax:  200,
		GetListMax:               10,
		BlockHeaderMaxSize:       8 * 1024,
		FitnessMaxElements:       16,
		FitnessElementMaxSize:    32,
		ProtocolDataMaxSize:      4 * 1024,
		OperationMaxSize:         32 * 1024,
		OperationHashesMax:       10_000,
		OperationsMax:            10_000,
		MempoolMaxOperations:     10_000,
		ProtocolMaxComponents:    256,
		ProtocolComponentMaxSize: 4 * 1024 * 1024,
		MessageMaxSize:           8 * 1024 * 1024,
		ResponseMaxMessages:      1024,
	}
}
