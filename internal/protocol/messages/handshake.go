package messages

import (
	"fmt"

	"github.com/danmuck/p2pcodec/internal/protocol/wire"
)

const (
	PublicKeySize   = 32
	NonceSize       = 24
	ProofOfWorkSize = 24
)

type (
	PublicKey   [PublicKeySize]byte
	Nonce       [NonceSize]byte
	ProofOfWork [ProofOfWorkSize]byte
)

type NetworkVersion struct {
	ChainName            string
	DistributedDBVersion uint16
	P2PVersion           uint16
}

// ConnectionMessage is the first message each side sends, before
// encryption is set up.
type ConnectionMessage struct {
	Port             uint16
	PublicKey        PublicKey
	ProofOfWorkStamp ProofOfWork
	MessageNonce     Nonce
	Version          NetworkVersion
}

type MetadataMessage struct {
	DisableMempool bool
	PrivateNode    bool
}

const (
	AckTagAck    uint8 = 0x00
	AckTagNack   uint8 = 0x01
	AckTagNackV0 uint8 = 0xFF
)

// AckMessage is one of Ack, Nack or NackV0.
type AckMessage interface {
	AckTag() uint8
}

type Ack struct{}

// NackV0 is the refusal sent by peers that predate NackInfo.
type NackV0 struct{}

type Nack struct {
	Motive         NackMotive
	PotentialPeers []string
}

func (Ack) AckTag() uint8    { return AckTagAck }
func (NackV0) AckTag() uint8 { return AckTagNackV0 }
func (Nack) AckTag() uint8   { return AckTagNack }

// NackMotive says why a connection was refused.
type NackMotive uint16

const (
	NackNoMotive NackMotive = iota
	NackTooManyConnections
	NackUnknownChainName
	NackDeprecatedP2PVersion
	NackDeprecatedDistributedDBVersion
	NackAlreadyConnected
)

var nackMotiveNames = [...]string{
	NackNoMotive:                       "No_motive",
	NackTooManyConnections:             "Too_many_connections",
	NackUnknownChainName:               "Unknown_chain_name",
	NackDeprecatedP2PVersion:           "Deprecated_p2p_version",
	NackDeprecatedDistributedDBVersion: "Deprecated_distributed_db_version",
	NackAlreadyConnected:               "Already_connected",
}

func (m NackMotive) String() string {
	if int(m) < len(nackMotiveNames) {
		return nackMotiveNames[m]
	}
	return fmt.Sprintf("NackMotive(%d)", uint16(m))
}

func (m NackMotive) valid() bool { return int(m) < len(nackMotiveNames) }

func (c *Codec) decodeConnection(r *wire.Cursor) (ConnectionMessage, error) {
	var m ConnectionMessage
	err := wire.Sequence(r,
		wire.Into(&m.Port, (*wire.Cursor).Uint16),
		func(r *wire.Cursor) error { return r.Fixed(m.PublicKey[:]) },
		func(r *wire.Cursor) error { return r.Fixed(m.ProofOfWorkStamp[:]) },
		func(r *wire.Cursor) error { return r.Fixed(m.MessageNonce[:]) },
		wire.Into(&m.Version.ChainName, str(c.limits.ChainNameMaxSize)),
		wire.Into(&m.Version.DistributedDBVersion, (*wire.Cursor).Uint16),
		wire.Into(&m.Version.P2PVersion, (*wire.Cursor).Uint16),
	)
	return m, err
}

func (c *Codec) encodeConnection(w *wire.Writer, m ConnectionMessage) error {
	w.PutUint16(m.Port)
	w.PutFixed(m.PublicKey[:])
	w.PutFixed(m.ProofOfWorkStamp[:])
	w.PutFixed(m.MessageNonce[:])
	if err := w.PutString(m.Version.ChainName, c.limits.ChainNameMaxSize); err != nil {
		return err
	}
	w.PutUint16(m.Version.DistributedDBVersion)
	w.PutUint16(m.Version.P2PVersion)
	return nil
}

func decodeMetadata(r *wire.Cursor) (MetadataMessage, error) {
	var m MetadataMessage
	err := wire.Sequence(r,
		wire.Into(&m.DisableMempool, (*wire.Cursor).Bool),
		wire.Into(&m.PrivateNode, (*wire.Cursor).Bool),
	)
	return m, err
}

func encodeMetadata(w *wire.Writer, m MetadataMessage) error {
	w.PutBool(m.DisableMempool)
	w.PutBool(m.PrivateNode)
	return nil
}

func decodeNackMotive(r *wire.Cursor) (NackMotive, error) {
	at := r.Offset()
	v, err := r.Uint16()
	if err != nil {
		return 0, err
	}
	m := NackMotive(v)
	if !m.valid() {
		return 0, wire.Errorf(wire.KindInvalidTag, at, "unknown nack motive 0x%04x", v)
	}
	return m, nil
}

func (c *Codec) nackPeersMaxSize() int {
	return c.limits.NackPeersMax * (wire.LengthPrefixSize + c.limits.P2PPointMaxSize)
}

func (c *Codec) decodeNack(r *wire.Cursor) (Nack, error) {
	var n Nack
	err := wire.Sequence(r,
		wire.Into(&n.Motive, decodeNackMotive),
		wire.Into(&n.PotentialPeers, wire.Dynamic(c.nackPeersMaxSize(),
			wire.BoundedList(c.limits.NackPeersMax, str(c.limits.P2PPointMaxSize)))),
	)
	return n, err
}

func (c *Codec) encodeAck(w *wire.Writer, m AckMessage) error {
	switch v := m.(type) {
	case Ack:
		w.PutUint8(AckTagAck)
		return nil
	case NackV0:
		w.PutUint8(AckTagNackV0)
		return nil
	case Nack:
		w.PutUint8(AckTagNack)
		w.PutUint16(uint16(v.Motive))
		return w.Dynamic(c.nackPeersMaxSize(), func(w *wire.Writer) error {
			return wire.EncodeList(w, c.limits.NackPeersMax, v.PotentialPeers, putStr(c.limits.P2PPointMaxSize))
		})
	default:
		return wire.Errorf(wire.KindInvalidValue, w.Len(), "ack message %T", m)
	}
}
