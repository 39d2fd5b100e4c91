package messages

import (
	"github.com/danmuck/p2pcodec/internal/protocol/hash"
	"github.com/danmuck/p2pcodec/internal/protocol/path"
)

func sampleHeader() BlockHeader {
	return BlockHeader{
		Level:          1_234_567,
		Proto:          12,
		Predecessor:    hash.BlockHash{1, 2, 3},
		Timestamp:      1_700_000_000,
		ValidationPass: 4,
		OperationsHash: hash.OperationListListHash{9},
		Fitness:        [][]byte{{0x02}, {0x00, 0x00, 0x01, 0x2c}, {}},
		Context:        hash.ContextHash{7},
		ProtocolData:   []byte{0xde, 0xad, 0xbe, 0xef},
	}
}

func sampleOperation() Operation {
	return Operation{Branch: hash.BlockHash{1, 2, 3}, Data: []byte{1, 2, 3, 4, 5}}
}

func samplePath() path.Path {
	return &path.Left{
		Path:  &path.Right{Left: hash.OperationListListHash{0xcc}, Path: path.Op{}},
		Right: hash.OperationListListHash{0xaa},
	}
}

var mainnet = hash.ChainID{0x7a, 0x06, 0xa7, 0x70}

// sampleMessages has one message per catalog entry.
func sampleMessages() []PeerMessage {
	iface := "module type S = sig end"
	return []PeerMessage{
		Disconnect{},
		Bootstrap{},
		Advertise{IDs: []string{"127.0.0.1:9732", "[::1]:19732"}},
		SwapRequest{Point: "10.0.0.1:9732", PeerID: hash.CryptoboxPublicKeyHash{0x11}},
		SwapAck{Point: "10.0.0.2:9732", PeerID: hash.CryptoboxPublicKeyHash{0x22}},
		GetCurrentBranch{ChainID: mainnet},
		CurrentBranch{
			ChainID: mainnet,
			Branch: BranchInfo{
				CurrentHead: sampleHeader(),
				History:     []hash.BlockHash{{0x01}, {0x02}, {0x03}},
			},
		},
		Deactivate{ChainID: mainnet},
		GetCurrentHead{ChainID: mainnet},
		CurrentHead{
			ChainID: mainnet,
			Header:  sampleHeader(),
			Mempool: Mempool{
				KnownValid: []hash.OperationHash{{0x0a}, {0x0b}},
				Pending:    []hash.OperationHash{{0x0c}},
			},
		},
		GetBlockHeaders{Hashes: []hash.BlockHash{{0x01}, {0x02}}},
		BlockHeaderMessage{Header: sampleHeader()},
		GetOperations{Hashes: []hash.OperationHash{{0x05}}},
		OperationMessage{Operation: sampleOperation()},
		GetProtocols{Hashes: []hash.ProtocolHash{{0x06}, {0x07}}},
		ProtocolMessage{Protocol: Protocol{
			ExpectedEnvVersion: 3,
			Components: []Component{
				{Name: "Main", Interface: &iface, Implementation: "let x = 1"},
				{Name: "Apply", Implementation: ""},
			},
		}},
		GetOperationHashesForBlocks{Blocks: []OperationsForBlock{{Hash: hash.BlockHash{0x01}, ValidationPass: 0}}},
		OperationHashesForBlocks{
			Block:  OperationsForBlock{Hash: hash.BlockHash{0x01}, ValidationPass: 3},
			Path:   samplePath(),
			Hashes: []hash.OperationHash{{0x0d}, {0x0e}},
		},
		GetOperationsForBlocks{Blocks: []OperationsForBlock{
			{Hash: hash.BlockHash{0x01}, ValidationPass: 1},
			{Hash: hash.BlockHash{0x02}, ValidationPass: -1},
		}},
		OperationsForBlocks{
			Block:      OperationsForBlock{Hash: hash.BlockHash{0x01}, ValidationPass: 2},
			Path:       path.Op{},
			Operations: []Operation{sampleOperation(), {Branch: hash.BlockHash{0x04}}},
		},
	}
}
