package main

import (
	"fmt"

	"github.com/danmuck/p2pcodec/internal/protocol/hash"
	"github.com/danmuck/p2pcodec/internal/protocol/messages"
	"github.com/danmuck/p2pcodec/internal/protocol/path"
)

type renderedMessage struct {
	Tag  string `json:"tag"`
	Name string `json:"name"`
	Body any    `json:"body,omitempty"`
}

type renderedResponse struct {
	Messages []renderedMessage `json:"messages"`
}

// pathStep is one level of a proof, root first. Sibling is empty on the leaf.
type pathStep struct {
	Step    string                      `json:"step"`
	Sibling *hash.OperationListListHash `json:"sibling,omitempty"`
}

type renderedHashes struct {
	Block  messages.OperationsForBlock `json:"block"`
	Path   []pathStep                  `json:"path"`
	Hashes []hash.OperationHash        `json:"hashes"`
}

type renderedOperations struct {
	Block      messages.OperationsForBlock `json:"block"`
	Path       []pathStep                  `json:"path"`
	Operations []messages.Operation        `json:"operations"`
}

func renderResponse(resp messages.Response) renderedResponse {
	out := renderedResponse{Messages: make([]renderedMessage, 0, len(resp.Messages))}
	for _, m := range resp.Messages {
		out.Messages = append(out.Messages, renderMessage(m))
	}
	return out
}

func renderMessage(m messages.PeerMessage) renderedMessage {
	tag := m.Tag()
	out := renderedMessage{Tag: fmt.Sprintf("0x%04x", uint16(tag)), Name: tag.String()}
	switch v := m.(type) {
	case messages.Disconnect, messages.Bootstrap:
	case messages.OperationHashesForBlocks:
		out.Body = renderedHashes{Block: v.Block, Path: renderPath(v.Path), Hashes: v.Hashes}
	case messages.OperationsForBlocks:
		out.Body = renderedOperations{Block: v.Block, Path: renderPath(v.Path), Operations: v.Operations}
	default:
		out.Body = m
	}
	return out
}

// renderPath flattens the proof spine so deep paths do not nest in JSON.
func renderPath(p path.Path) []pathStep {
	steps := make([]pathStep, 0, path.Depth(p)+1)
	for {
		switch n := p.(type) {
		case *path.Left:
			sibling := n.Right
			steps = append(steps, pathStep{Step: "left", Sibling: &sibling})
			p = n.Path
		case *path.Right:
			sibling := n.Left
			steps = append(steps, pathStep{Step: "right", Sibling: &sibling})
			p = n.Path
		default:
			return append(steps, pathStep{Step: "op"})
		}
	}
}

type renderedAck struct {
	Ack            string   `json:"ack"`
	Motive         string   `json:"motive,omitempty"`
	PotentialPeers []string `json:"potential_peers,omitempty"`
}

func renderAck(m messages.AckMessage) renderedAck {
	switch v := m.(type) {
	case messages.Nack:
		return renderedAck{Ack: "nack", Motive: v.Motive.String(), PotentialPeers: v.PotentialPeers}
	case messages.NackV0:
		return renderedAck{Ack: "nack_v0"}
	default:
		return renderedAck{Ack: "ack"}
	}
}
