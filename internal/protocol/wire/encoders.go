package wire

// Encoder writes one T. It mirrors Decoder.
type Encoder[T any] func(w *Writer, v T) error

// Encode runs e over a fresh writer.
func Encode[T any](v T, e Encoder[T]) ([]byte, error) {
	w := NewWriter(64)
	if err := e(w, v); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// EncodeList writes items back to back with no prefix; it is the inverse of
// BoundedList.
func EncodeList[T any](w *Writer, max int, items []T, e Encoder[T]) error {
	if len(items) > max {
		return Errorf(KindSizeExceeded, w.Len(), "list of %d elements above maximum %d", len(items), max)
	}
	for _, item := range items {
		if err := e(w, item); err != nil {
			return err
		}
	}
	return nil
}

// EncodeCountedList is the inverse of CountedList.
func EncodeCountedList[T any](w *Writer, max int, items []T, e Encoder[T]) error {
	if len(items) > max {
		return Errorf(KindSizeExceeded, w.Len(), "list of %d elements above maximum %d", len(items), max)
	}
	w.PutUint32(uint32(len(items)))
	for _, item := range items {
		if err := e(w, item); err != nil {
			return err
		}
	}
	return nil
}

func EncodeOptional[T any](w *Writer, v *T, e Encoder[T]) error {
	if v == nil {
		w.PutUint8(OptionNone)
		return nil
	}
	w.PutUint8(OptionSome)
	return e(w, *v)
}

// EncodeDynamic writes v behind a u32 byte length of at most max.
func EncodeDynamic[T any](w *Writer, max int, v T, e Encoder[T]) error {
	return w.Dynamic(max, func(w *Writer) error {
		return e(w, v)
	})
}
