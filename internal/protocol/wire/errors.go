package wire

import (
	"errors"
	"fmt"
)

// Kind classifies a decode or encode failure.
type Kind uint8

const (
	KindTruncated Kind = iota + 1
	KindInvalidTag
	KindSizeExceeded
	KindInvalidValue
)

var (
	ErrTruncated    = errors.New("wire: truncated data")
	ErrInvalidTag   = errors.New("wire: invalid tag")
	ErrSizeExceeded = errors.New("wire: size exceeded")
	ErrInvalidValue = errors.New("wire: invalid value")
)

func (k Kind) String() string {
	switch k {
	case KindTruncated:
		return "truncated"
	case KindInvalidTag:
		return "invalid_tag"
	case KindSizeExceeded:
		return "size_exceeded"
	case KindInvalidValue:
		return "invalid_value"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindTruncated:
		return ErrTruncated
	case KindInvalidTag:
		return ErrInvalidTag
	case KindSizeExceeded:
		return ErrSizeExceeded
	default:
		return ErrInvalidValue
	}
}

// Error reports what went wrong and the absolute offset where the failing
// read (or write) began.
type Error struct {
	Kind   Kind
	Offset int
	Detail string
}

// Errorf builds an *Error with a formatted detail.
func Errorf(kind Kind, offset int, format string, args ...any) *Error {
	return &Error{Kind: kind, Offset: offset, Detail: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v at offset %d", e.Kind.sentinel(), e.Offset)
	}
	return fmt.Sprintf("%v at offset %d: %s", e.Kind.sentinel(), e.Offset, e.Detail)
}

// Unwrap exposes the kind sentinel so errors.Is(err, ErrTruncated) works.
func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var we *Error
	if errors.As(err, &we) {
		return we.Kind, true
	}
	return 0, false
}

// OffsetOf returns the offset of the first *Error in err's chain, or -1.
func OffsetOf(err error) int {
	var we *Error
	if errors.As(err, &we) {
		return we.Offset
	}
	return -1
}

func truncated(offset, need, have int) *Error {
	return Errorf(KindTruncated, offset, "need %d bytes, have %d", need, have)
}

func sizeExceeded(offset int, size uint64, max int) *Error {
	return Errorf(KindSizeExceeded, offset, "size %d above maximum %d", size, max)
}
