package messages

import (
	"bytes"
	"testing"

	"github.com/danmuck/p2pcodec/internal/protocol/wire"
)

func FuzzDecodeResponse(f *testing.F) {
	codec := DefaultCodec()
	for _, m := range sampleMessages() {
		b, err := codec.EncodeResponse(Response{Messages: []PeerMessage{m}})
		if err != nil {
			f.Fatalf("seed %v: %v", m.Tag(), err)
		}
		f.Add(b)
		f.Add(b[:len(b)/2])
	}
	f.Add([]byte{})
	f.Add([]byte{0, 0, 0, 1, 0})
	f.Add([]byte{0xff, 0xff, 0xff, 0xff})

	f.Fuzz(func(t *testing.T, in []byte) {
		resp, err := codec.DecodeResponse(in)
		if err != nil {
			if _, ok := wire.KindOf(err); !ok {
				t.Fatalf("unclassified error: %v", err)
			}
			return
		}
		out, err := codec.EncodeResponse(resp)
		if err != nil {
			t.Fatalf("re-encode: %v", err)
		}
		if !bytes.Equal(in, out) {
			t.Fatalf("re-encode mismatch:\n in  %x\n out %x", in, out)
		}
	})
}

func FuzzDecodeHandshake(f *testing.F) {
	codec := DefaultCodec()
	conn, _ := codec.EncodeConnection(ConnectionMessage{Port: 9732, Version: NetworkVersion{ChainName: "TEZOS"}})
	f.Add(conn)
	f.Add([]byte{0x01, 0x00, 0x01, 0, 0, 0, 0})
	f.Add([]byte{0x00, 0x01})
	f.Fuzz(func(t *testing.T, in []byte) {
		for _, decode := range []func([]byte) (any, error){
			func(b []byte) (any, error) { return codec.DecodeConnection(b) },
			func(b []byte) (any, error) { return codec.DecodeMetadata(b) },
			func(b []byte) (any, error) { return codec.DecodeAck(b) },
		} {
			if _, err := decode(in); err != nil {
				if _, ok := wire.KindOf(err); !ok {
					t.Fatalf("unclassified error: %v", err)
				}
			}
		}
	})
}
