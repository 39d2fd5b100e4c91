package wire

import "errors"

// Decoder reads one T from the cursor. Decoders are plain functions so a
// method value, a method expression such as (*Cursor).Uint16, or a closure
// over limits all qualify.
type Decoder[T any] func(c *Cursor) (T, error)

// Step decodes one field into a destination bound by Into.
type Step func(c *Cursor) error

const (
	OptionNone uint8 = 0x00
	OptionSome uint8 = 0xFF
)

// Into binds a decoder to the field it fills.
func Into[T any](dst *T, d Decoder[T]) Step {
	return func(c *Cursor) error {
		v, err := d(c)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

// Sequence runs steps in order and stops at the first error.
func Sequence(c *Cursor, steps ...Step) error {
	for _, step := range steps {
		if err := step(c); err != nil {
			return err
		}
	}
	return nil
}

func Map[T, U any](d Decoder[T], f func(T) U) Decoder[U] {
	return func(c *Cursor) (U, error) {
		v, err := d(c)
		if err != nil {
			var zero U
			return zero, err
		}
		return f(v), nil
	}
}

// TagTable maps every accepted tag to the decoder of its variant.
type TagTable[K comparable, T any] map[K]Decoder[T]

// Tagged reads a tag with the given decoder and dispatches on table.
// Unknown tags fail with InvalidTag at the tag's offset.
func Tagged[K comparable, T any](tag Decoder[K], table TagTable[K, T]) Decoder[T] {
	return func(c *Cursor) (T, error) {
		var zero T
		at := c.pos
		k, err := tag(c)
		if err != nil {
			return zero, err
		}
		d, ok := table[k]
		if !ok {
			return zero, Errorf(KindInvalidTag, at, "unknown tag %v", k)
		}
		return d(c)
	}
}

// Optional reads a presence byte (0x00 none, 0xFF some) and then d.
func Optional[T any](d Decoder[T]) Decoder[*T] {
	return func(c *Cursor) (*T, error) {
		at := c.pos
		flag, err := c.Uint8()
		if err != nil {
			return nil, err
		}
		switch flag {
		case OptionNone:
			return nil, nil
		case OptionSome:
			v, err := d(c)
			if err != nil {
				return nil, err
			}
			return &v, nil
		default:
			return nil, Errorf(KindInvalidTag, at, "option tag 0x%02x", flag)
		}
	}
}

// BoundedList decodes elements back to back until the current budget is
// exhausted. More than max elements is SizeExceeded.
func BoundedList[T any](max int, d Decoder[T]) Decoder[[]T] {
	return func(c *Cursor) ([]T, error) {
		var out []T
		for !c.Done() {
			at := c.pos
			if len(out) == max {
				return nil, Errorf(KindSizeExceeded, at, "list longer than %d elements", max)
			}
			v, err := d(c)
			if err != nil {
				return nil, err
			}
			if c.pos == at {
				return nil, Errorf(KindInvalidValue, at, "list element consumed no input")
			}
			out = append(out, v)
		}
		return out, nil
	}
}

// CountedList reads a u32 element count, at most max, then that many
// elements.
func CountedList[T any](max int, d Decoder[T]) Decoder[[]T] {
	return func(c *Cursor) ([]T, error) {
		at := c.pos
		n, err := c.Uint32()
		if err != nil {
			return nil, err
		}
		if uint64(n) > uint64(max) {
			return nil, sizeExceeded(at, uint64(n), max)
		}
		var out []T
		for i := uint32(0); i < n; i++ {
			v, err := d(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
}

// Exactly decodes d from a sub-block of exactly n bytes. Leftover bytes in
// the block, or a field running past its end, are InvalidValue.
func Exactly[T any](n int, d Decoder[T]) Decoder[T] {
	return func(c *Cursor) (T, error) {
		return exactly(c, n, d)
	}
}

func exactly[T any](c *Cursor, n int, d Decoder[T]) (T, error) {
	var zero T
	if n < 0 {
		return zero, Errorf(KindInvalidValue, c.pos, "negative block length %d", n)
	}
	if n > c.Remaining() {
		return zero, truncated(c.pos, n, c.Remaining())
	}
	start := c.pos
	end := start + n
	saved := c.narrow(n)
	v, err := d(c)
	c.restore(saved)
	if err != nil {
		var we *Error
		if errors.As(err, &we) && we.Kind == KindTruncated {
			return zero, Errorf(KindInvalidValue, we.Offset, "field overruns %d-byte block at offset %d", n, start)
		}
		return zero, err
	}
	if c.pos != end {
		return zero, Errorf(KindInvalidValue, c.pos, "%d unread bytes in %d-byte block", end-c.pos, n)
	}
	return v, nil
}

// Dynamic is a u32 byte length of at most max followed by exactly that
// many bytes of d.
func Dynamic[T any](max int, d Decoder[T]) Decoder[T] {
	return func(c *Cursor) (T, error) {
		n, err := c.LengthPrefix(max)
		if err != nil {
			var zero T
			return zero, err
		}
		return exactly(c, n, d)
	}
}

// Bounded caps the budget seen by d at max bytes. A field that needs more
// than the cap is SizeExceeded rather than Truncated.
func Bounded[T any](max int, d Decoder[T]) Decoder[T] {
	return func(c *Cursor) (T, error) {
		if c.Remaining() <= max {
			return d(c)
		}
		saved := c.narrow(max)
		v, err := d(c)
		c.restore(saved)
		if err != nil {
			var we *Error
			if errors.As(err, &we) && we.Kind == KindTruncated {
				var zero T
				return zero, Errorf(KindSizeExceeded, we.Offset, "field exceeds bound of %d bytes", max)
			}
		}
		return v, err
	}
}

// Decode runs d over b and requires every byte to be consumed.
func Decode[T any](b []byte, d Decoder[T]) (T, error) {
	c := NewCursor(b)
	v, err := d(c)
	if err != nil {
		var zero T
		return zero, err
	}
	if !c.Done() {
		var zero T
		return zero, Errorf(KindInvalidValue, c.pos, "%d trailing bytes", c.Remaining())
	}
	return v, nil
}

// DecodePrefix runs d over the front of b and reports how many bytes it
// consumed.
func DecodePrefix[T any](b []byte, d Decoder[T]) (T, int, error) {
	c := NewCursor(b)
	v, err := d(c)
	if err != nil {
		var zero T
		return zero, 0, err
	}
	return v, c.pos, nil
}
