package config

import (
	"os"

	"github.com/danmuck/p2pcodec/internal/logging"
	"github.com/danmuck/p2pcodec/internal/protocol/messages"
)

func limitsFrom(l messages.Limits) LimitsConfig {
	return LimitsConfig{
		MaxPathDepth:             l.MaxPathDepth,
		P2PPointMaxSize:          l.P2PPointMaxSize,
		AdvertiseMaxIDs:          l.AdvertiseMaxIDs,
		NackPeersMax:             l.NackPeersMax,
		ChainNameMaxSize:         l.ChainNameMaxSize,
		CurrentBranchHistoryMax:  l.CurrentBranchHistoryMax,
		GetListMax:               l.GetListMax,
		BlockHeaderMaxSize:       l.BlockHeaderMaxSize,
		FitnessMaxElements:       l.FitnessMaxElements,
		FitnessElementMaxSize:    l.FitnessElementMaxSize,
		ProtocolDataMaxSize:      l.ProtocolDataMaxSize,
		OperationMaxSize:         l.OperationMaxSize,
		OperationHashesMax:       l.OperationHashesMax,
		OperationsMax:            l.OperationsMax,
		MempoolMaxOperations:     l.MempoolMaxOperations,
		ProtocolMaxComponents:    l.ProtocolMaxComponents,
		ProtocolComponentMaxSize: l.ProtocolComponentMaxSize,
		MessageMaxSize:           l.MessageMaxSize,
		ResponseMaxMessages:      l.ResponseMaxMessages,
	}
}

// CodecLimits converts the [limits] table for messages.NewCodec.
func (c Config) CodecLimits() messages.Limits {
	l := c.Limits
	return messages.Limits{
		MaxPathDepth:             l.MaxPathDepth,
		P2PPointMaxSize:          l.P2PPointMaxSize,
		AdvertiseMaxIDs:          l.AdvertiseMaxIDs,
		NackPeersMax:             l.NackPeersMax,
		ChainNameMaxSize:         l.ChainNameMaxSize,
		CurrentBranchHistoryMax:  l.CurrentBranchHistoryMax,
		GetListMax:               l.GetListMax,
		BlockHeaderMaxSize:       l.BlockHeaderMaxSize,
		FitnessMaxElements:       l.FitnessMaxElements,
		FitnessElementMaxSize:    l.FitnessElementMaxSize,
		ProtocolDataMaxSize:      l.ProtocolDataMaxSize,
		OperationMaxSize:         l.OperationMaxSize,
		OperationHashesMax:       l.OperationHashesMax,
		OperationsMax:            l.OperationsMax,
		MempoolMaxOperations:     l.MempoolMaxOperations,
		ProtocolMaxComponents:    l.ProtocolMaxComponents,
		ProtocolComponentMaxSize: l.ProtocolComponentMaxSize,
		MessageMaxSize:           l.MessageMaxSize,
		ResponseMaxMessages:      l.ResponseMaxMessages,
	}
}

// LoggingConfig converts the [log] table; environment overrides still win.
func (c Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig(logging.ProfileRuntime)
	if lvl, ok := logging.ParseLevel(c.Log.Level); ok {
		cfg.Level = lvl
	}
	cfg.Timestamp = c.Log.Timestamp
	cfg.NoColor = c.Log.NoColor
	cfg.JSON = c.Log.JSON
	cfg.Output = os.Stderr
	logging.ApplyEnv(&cfg)
	return cfg
}
