package messages

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockHeaderHash(t *testing.T) {
	h := sampleHeader()
	b, err := DefaultCodec().EncodeBlockHeader(h)
	require.NoError(t, err)
	require.Len(t, b, 135)

	id, err := h.Hash()
	require.NoError(t, err)
	require.Equal(t, "e8526646c0fb4509dbc82fd212842326e08bb9daba50e475205e3dc4f59dcbca", hex.EncodeToString(id[:]))
	require.Equal(t, Digest(b), [32]byte(id))

	h.Level++
	other, err := h.Hash()
	require.NoError(t, err)
	require.NotEqual(t, id, other)

	back, err := DefaultCodec().DecodeBlockHeader(b)
	require.NoError(t, err)
	again, err := back.Hash()
	require.NoError(t, err)
	require.Equal(t, id, again)
}

func TestOperationHash(t *testing.T) {
	id, err := sampleOperation().Hash()
	require.NoError(t, err)
	require.Equal(t, "fac540ed8dcdea73ba4d4ac206557751ec5d29821c3a63eebd07bc3b818c97aa", hex.EncodeToString(id[:]))

	op, err := DefaultCodec().DecodeOperation(append(make([]byte, 32), 0x01))
	require.NoError(t, err)
	require.Equal(t, []byte{0x01}, op.Data)
}
