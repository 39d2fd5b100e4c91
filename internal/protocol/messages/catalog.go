package messages

import (
	"fmt"
	"sort"

	"github.com/danmuck/p2pcodec/internal/protocol/wire"
)

// entry is one row of the peer message table.
type entry struct {
	name   string
	decode func(c *Codec, r *wire.Cursor) (PeerMessage, error)
	encode func(c *Codec, w *wire.Writer, m PeerMessage) error
	// greedy bodies end in a list or rest field that reads to the end of
	// the enclosing response.
	greedy bool
}

func tail(e entry) entry {
	e.greedy = true
	return e
}

func register[M PeerMessage](
	name string,
	dec func(*Codec, *wire.Cursor) (M, error),
	enc func(*Codec, *wire.Writer, M) error,
) entry {
	return entry{
		name: name,
		decode: func(c *Codec, r *wire.Cursor) (PeerMessage, error) {
			m, err := dec(c, r)
			if err != nil {
				return nil, err
			}
			return m, nil
		},
		encode: func(c *Codec, w *wire.Writer, m PeerMessage) error {
			v, ok := m.(M)
			if !ok {
				return wire.Errorf(wire.KindInvalidValue, w.Len(), "%T is not a %s message", m, name)
			}
			return enc(c, w, v)
		},
	}
}

// catalog is the complete set of peer messages. Adding a message means
// adding its type, its two functions and one row here. Rows wrapped in tail
// may only be the last message of a response.
var catalog = map[Tag]entry{
	TagDisconnect:                  register("Disconnect", (*Codec).decodeDisconnect, (*Codec).encodeDisconnect),
	TagBootstrap:                   register("Bootstrap", (*Codec).decodeBootstrap, (*Codec).encodeBootstrap),
	TagAdvertise:                   tail(register("Advertise", (*Codec).decodeAdvertise, (*Codec).encodeAdvertise)),
	TagSwapRequest:                 register("SwapRequest", (*Codec).decodeSwapRequest, (*Codec).encodeSwapRequest),
	TagSwapAck:                     register("SwapAck", (*Codec).decodeSwapAck, (*Codec).encodeSwapAck),
	TagGetCurrentBranch:            register("GetCurrentBranch", (*Codec).decodeGetCurrentBranch, (*Codec).encodeGetCurrentBranch),
	TagCurrentBranch:               tail(register("CurrentBranch", (*Codec).decodeCurrentBranch, (*Codec).encodeCurrentBranch)),
	TagDeactivate:                  register("Deactivate", (*Codec).decodeDeactivate, (*Codec).encodeDeactivate),
	TagGetCurrentHead:              register("GetCurrentHead", (*Codec).decodeGetCurrentHead, (*Codec).encodeGetCurrentHead),
	TagCurrentHead:                 register("CurrentHead", (*Codec).decodeCurrentHead, (*Codec).encodeCurrentHead),
	TagGetBlockHeaders:             register("GetBlockHeaders", (*Codec).decodeGetBlockHeaders, (*Codec).encodeGetBlockHeaders),
	TagBlockHeader:                 tail(register("BlockHeader", (*Codec).decodeBlockHeaderMessage, (*Codec).encodeBlockHeaderMessage)),
	TagGetOperations:               register("GetOperations", (*Codec).decodeGetOperations, (*Codec).encodeGetOperations),
	TagOperation:                   tail(register("Operation", (*Codec).decodeOperationMessage, (*Codec).encodeOperationMessage)),
	TagGetProtocols:                register("GetProtocols", (*Codec).decodeGetProtocols, (*Codec).encodeGetProtocols),
	TagProtocol:                    register("Protocol", (*Codec).decodeProtocolMessage, (*Codec).encodeProtocolMessage),
	TagGetOperationHashesForBlocks: register("GetOperationHashesForBlocks", (*Codec).decodeGetOperationHashesForBlocks, (*Codec).encodeGetOperationHashesForBlocks),
	TagOperationHashesForBlocks:    tail(register("OperationHashesForBlocks", (*Codec).decodeOperationHashesForBlocks, (*Codec).encodeOperationHashesForBlocks)),
	TagGetOperationsForBlocks:      register("GetOperationsForBlocks", (*Codec).decodeGetOperationsForBlocks, (*Codec).encodeGetOperationsForBlocks),
	TagOperationsForBlocks:         tail(register("OperationsForBlocks", (*Codec).decodeOperationsForBlocks, (*Codec).encodeOperationsForBlocks)),
}

func (t Tag) String() string {
	if e, ok := catalog[t]; ok {
		return e.name
	}
	return fmt.Sprintf("Tag(0x%04x)", uint16(t))
}

// Known reports whether t is in the catalog.
func (t Tag) Known() bool {
	_, ok := catalog[t]
	return ok
}

// Tags lists every catalogued tag in ascending order.
func Tags() []Tag {
	out := make([]Tag, 0, len(catalog))
	for t := range catalog {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// TagByName finds a tag by its message name, e.g. "CurrentHead".
func TagByName(name string) (Tag, bool) {
	for t, e := range catalog {
		if e.name == name {
			return t, true
		}
	}
	return 0, false
}
