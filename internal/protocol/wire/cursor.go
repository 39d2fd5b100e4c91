package wire

// Cursor is a read position over one immutable input buffer. Offsets are
// absolute in that buffer; limit caps how far reads may go and is narrowed
// while a length-delimited sub-block is being decoded.
type Cursor struct {
	buf   []byte
	pos   int
	limit int
}

func NewCursor(b []byte) *Cursor {
	return &Cursor{buf: b, limit: len(b)}
}

// Offset is the absolute position of the next read.
func (c *Cursor) Offset() int { return c.pos }

// Remaining is the number of bytes left in the current budget.
func (c *Cursor) Remaining() int { return c.limit - c.pos }

// Done reports whether the current budget is exhausted.
func (c *Cursor) Done() bool { return c.pos >= c.limit }

// take returns the next n bytes as a view into the input.
func (c *Cursor) take(n int) ([]byte, error) {
	if n < 0 {
		return nil, Errorf(KindInvalidValue, c.pos, "negative read length %d", n)
	}
	if n > c.Remaining() {
		return nil, truncated(c.pos, n, c.Remaining())
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// narrow caps the budget at n bytes from the current position and returns
// the previous limit for restore. The caller checked n <= Remaining().
func (c *Cursor) narrow(n int) int {
	saved := c.limit
	c.limit = c.pos + n
	return saved
}

func (c *Cursor) restore(limit int) { c.limit = limit }
