package wire

import (
	"encoding/binary"
	"unicode/utf8"
)

// LengthPrefixSize is the width of every u32 size field.
const LengthPrefixSize = 4

func (c *Cursor) Uint8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) Int8() (int8, error) {
	v, err := c.Uint8()
	return int8(v), err
}

func (c *Cursor) Uint16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (c *Cursor) Int16() (int16, error) {
	v, err := c.Uint16()
	return int16(v), err
}

func (c *Cursor) Uint32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (c *Cursor) Int32() (int32, error) {
	v, err := c.Uint32()
	return int32(v), err
}

func (c *Cursor) Uint64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (c *Cursor) Int64() (int64, error) {
	v, err := c.Uint64()
	return int64(v), err
}

// Bool accepts exactly 0x00 and 0x01.
func (c *Cursor) Bool() (bool, error) {
	at := c.pos
	v, err := c.Uint8()
	if err != nil {
		return false, err
	}
	switch v {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return false, Errorf(KindInvalidValue, at, "bool byte 0x%02x", v)
	}
}

// Fixed fills dst with the next len(dst) bytes.
func (c *Cursor) Fixed(dst []byte) error {
	b, err := c.take(len(dst))
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

// Bytes returns a copy of the next n bytes.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	b, err := c.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// LengthPrefix reads a u32 size field. The maximum is checked before the
// remaining input so an oversized claim is SizeExceeded even when the bytes
// are there; a claim past the end of input is Truncated at the offset right
// after the prefix.
func (c *Cursor) LengthPrefix(max int) (int, error) {
	at := c.pos
	n, err := c.Uint32()
	if err != nil {
		return 0, err
	}
	if uint64(n) > uint64(max) {
		return 0, sizeExceeded(at, uint64(n), max)
	}
	if int(n) > c.Remaining() {
		return 0, truncated(c.pos, int(n), c.Remaining())
	}
	return int(n), nil
}

// String reads a u32 length-prefixed UTF-8 string of at most max bytes.
func (c *Cursor) String(max int) (string, error) {
	n, err := c.LengthPrefix(max)
	if err != nil {
		return "", err
	}
	at := c.pos
	b, err := c.take(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", Errorf(KindInvalidValue, at, "string is not valid utf-8")
	}
	return string(b), nil
}

// Rest consumes the whole remaining budget, which may be at most max bytes.
func (c *Cursor) Rest(max int) ([]byte, error) {
	if n := c.Remaining(); n > max {
		return nil, sizeExceeded(c.pos, uint64(n), max)
	}
	return c.Bytes(c.Remaining())
}
