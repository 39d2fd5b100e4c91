// Package chunk frames bytes for a peer connection: a 2-byte big-endian
// content length followed by the content. One message may span several
// chunks; reassembly lives in the stream package.
package chunk

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	SizeFieldLen = 2
	ContentMax   = 1<<16 - 1
)

var (
	ErrOverflow      = errors.New("chunk: content too large")
	ErrMissingSize   = errors.New("chunk: missing size information")
	ErrIncorrectSize = errors.New("chunk: incorrect content size information")
	ErrShortContent  = errors.New("chunk: connection closed inside chunk")
)

// Chunk is one framed unit as sent on the wire, size field included.
type Chunk struct {
	raw []byte
}

// FromContent frames content.
func FromContent(content []byte) (Chunk, error) {
	if len(content) > ContentMax {
		return Chunk{}, fmt.Errorf("%w: %d bytes", ErrOverflow, len(content))
	}
	raw := make([]byte, SizeFieldLen+len(content))
	binary.BigEndian.PutUint16(raw, uint16(len(content)))
	copy(raw[SizeFieldLen:], content)
	return Chunk{raw: raw}, nil
}

// Parse checks that raw is exactly one chunk.
func Parse(raw []byte) (Chunk, error) {
	if len(raw) < SizeFieldLen {
		return Chunk{}, ErrMissingSize
	}
	expected := int(binary.BigEndian.Uint16(raw))
	if got := len(raw) - SizeFieldLen; got != expected {
		return Chunk{}, fmt.Errorf("%w: header says %d, have %d", ErrIncorrectSize, expected, got)
	}
	return Chunk{raw: append([]byte(nil), raw...)}, nil
}

func (c Chunk) Raw() []byte { return c.raw }

func (c Chunk) Content() []byte {
	if len(c.raw) < SizeFieldLen {
		return nil
	}
	return c.raw[SizeFieldLen:]
}

// Read reads one chunk. io.EOF is returned unchanged when r ends cleanly
// before a new chunk starts.
func Read(r io.Reader) (Chunk, error) {
	var size [SizeFieldLen]byte
	if _, err := io.ReadFull(r, size[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Chunk{}, ErrMissingSize
		}
		return Chunk{}, err
	}
	n := int(binary.BigEndian.Uint16(size[:]))
	raw := make([]byte, SizeFieldLen+n)
	copy(raw, size[:])
	if _, err := io.ReadFull(r, raw[SizeFieldLen:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Chunk{}, fmt.Errorf("%w: want %d bytes", ErrShortContent, n)
		}
		return Chunk{}, err
	}
	return Chunk{raw: raw}, nil
}

// Write frames content as one chunk and writes it.
func Write(w io.Writer, content []byte) error {
	c, err := FromContent(content)
	if err != nil {
		return err
	}
	_, err = w.Write(c.raw)
	return err
}

// Split cuts b into contents of at most ContentMax bytes. An empty b yields
// no chunks.
func Split(b []byte) [][]byte {
	var out [][]byte
	for len(b) > 0 {
		n := len(b)
		if n > ContentMax {
			n = ContentMax
		}
		out = append(out, b[:n])
		b = b[n:]
	}
	return out
}
