package wire

import (
	"encoding/binary"
	"math"
)

// Writer accumulates one encoded message.
type Writer struct {
	buf []byte
}

func NewWriter(sizeHint int) *Writer {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Writer{buf: make([]byte, 0, sizeHint)}
}

// Bytes returns the encoded bytes. The slice aliases the writer's buffer.
func (w *Writer) Bytes() []byte { return w.buf }

// Len is the number of bytes written so far, also the offset reported by
// encode errors.
func (w *Writer) Len() int { return len(w.buf) }

func (w *Writer) PutUint8(v uint8) { w.buf = append(w.buf, v) }

func (w *Writer) PutInt8(v int8) { w.buf = append(w.buf, byte(v)) }

func (w *Writer) PutUint16(v uint16) { w.buf = binary.BigEndian.AppendUint16(w.buf, v) }

func (w *Writer) PutInt16(v int16) { w.PutUint16(uint16(v)) }

func (w *Writer) PutUint32(v uint32) { w.buf = binary.BigEndian.AppendUint32(w.buf, v) }

func (w *Writer) PutInt32(v int32) { w.PutUint32(uint32(v)) }

func (w *Writer) PutUint64(v uint64) { w.buf = binary.BigEndian.AppendUint64(w.buf, v) }

func (w *Writer) PutInt64(v int64) { w.PutUint64(uint64(v)) }

func (w *Writer) PutBool(v bool) {
	if v {
		w.buf = append(w.buf, 0x01)
		return
	}
	w.buf = append(w.buf, 0x00)
}

// PutFixed writes b with no length prefix.
func (w *Writer) PutFixed(b []byte) { w.buf = append(w.buf, b...) }

// PutString writes a u32 length prefix and s, which may be at most max bytes.
func (w *Writer) PutString(s string, max int) error {
	if len(s) > max {
		return sizeExceeded(w.Len(), uint64(len(s)), max)
	}
	w.PutUint32(uint32(len(s)))
	w.buf = append(w.buf, s...)
	return nil
}

// PutRest writes b unprefixed as the tail of its block.
func (w *Writer) PutRest(b []byte, max int) error {
	if len(b) > max {
		return sizeExceeded(w.Len(), uint64(len(b)), max)
	}
	w.buf = append(w.buf, b...)
	return nil
}

// Dynamic reserves a u32 length prefix, runs body and back-patches the
// number of bytes body wrote. More than max bytes is SizeExceeded.
func (w *Writer) Dynamic(max int, body func(w *Writer) error) error {
	at := w.Len()
	w.PutUint32(0)
	if err := body(w); err != nil {
		return err
	}
	n := w.Len() - at - LengthPrefixSize
	if n > max || uint64(n) > math.MaxUint32 {
		return sizeExceeded(at, uint64(n), max)
	}
	binary.BigEndian.PutUint32(w.buf[at:], uint32(n))
	return nil
}
