package types

import (
	"testing"

	"github.com/monerokit/monerodb/testing/assert"
	"github.com/monerokit/monerodb/testing/require"
)

func TestLazy_FromBytes(t *testing.T) {
	want := &BlockHeight{Hash: hashOf(0x30), Height: 12}
	blob, err := want.MarshalRecord()
	require.NoError(t, err)

	lazy := LazyFromBytes[BlockHeight](blob)
	assert.Equal(t, false, lazy.Decoded())

	// Bytes never triggers a parse.
	raw, err := lazy.Bytes()
	require.NoError(t, err)
	require.DeepEqual(t, blob, raw)
	assert.Equal(t, false, lazy.Decoded())

	got, err := lazy.Record()
	require.NoError(t, err)
	require.DeepEqual(t, want, got)
	assert.Equal(t, true, lazy.Decoded())

	// The decoded form is memoized.
	again, err := lazy.Record()
	require.NoError(t, err)
	require.Equal(t, got, again)
}

func TestLazy_FromRecord(t *testing.T) {
	rec := &BlockHeight{Hash: hashOf(0x31), Height: 7}
	lazy := LazyFromRecord(rec)
	assert.Equal(t, true, lazy.Decoded())

	got, err := lazy.Record()
	require.NoError(t, err)
	require.Equal(t, rec, got)

	blob, err := rec.MarshalRecord()
	require.NoError(t, err)
	raw, err := lazy.Bytes()
	require.NoError(t, err)
	require.DeepEqual(t, blob, raw)
}

func TestLazy_DecodeError(t *testing.T) {
	lazy := LazyFromBytes[BlockHeight]([]byte{0x01, 0x02})
	_, err := lazy.Record()
	decodeErr, ok := err.(*DecodeError)
	require.Equal(t, true, ok)
	require.ErrorContains(t, "unexpected end of data", decodeErr)
	require.ErrorIs(t, err, errShortBuffer)
}
