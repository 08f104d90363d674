package kv

import (
	"context"
	"testing"

	"github.com/monerokit/monerodb/encoding/bytesutil"
	"github.com/monerokit/monerodb/testing/require"
	"github.com/monerokit/monerodb/types"
)

func testPrunedTx() *types.TransactionPruned {
	viewTag := byte(0x07)
	return &types.TransactionPruned{
		Prefix: types.TransactionPrefix{
			Version:    2,
			UnlockTime: 0,
			Inputs: []types.TxInput{{ToKey: &types.TxInToKey{
				Amount:     0,
				KeyOffsets: []uint64{57000000, 12, 3},
				KeyImage:   fillHash(0x21),
			}}},
			Outputs: []types.TxOutput{
				{Key: fillHash(0x31), ViewTag: &viewTag},
				{Key: fillHash(0x32), ViewTag: &viewTag},
			},
			Extra: []byte{0x01, 0xfe},
		},
		RctBase: &types.RctSigBase{
			Type:     types.RctTypeBulletproofPlus,
			TxnFee:   30720000,
			EcdhInfo: [][]byte{{1, 2, 3, 4, 5, 6, 7, 8}, {8, 7, 6, 5, 4, 3, 2, 1}},
			OutPk:    []types.Hash{fillHash(0x41), fillHash(0x42)},
		},
	}
}

func TestStore_TransactionPruned(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	want := testPrunedTx()
	blob, err := want.MarshalRecord()
	require.NoError(t, err)
	require.NoError(t, db.put(txsPrunedTable, heightKey(7), nil, blob))

	lazy, err := db.TransactionPruned(ctx, 7)
	require.NoError(t, err)
	got, err := lazy.Record()
	require.NoError(t, err)
	require.DeepEqual(t, want, got)

	raw, err := lazy.Bytes()
	require.NoError(t, err)
	require.DeepEqual(t, blob, raw)
}

func TestStore_TransactionPrunable(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	// Prunable blobs pass through opaque.
	blob := []byte{0xde, 0xad, 0xbe, 0xef}
	require.NoError(t, db.put(txsPrunableTable, heightKey(3), nil, blob))

	got, err := db.TransactionPrunable(ctx, 3)
	require.NoError(t, err)
	require.DeepEqual(t, blob, got)

	_, err = db.TransactionPrunable(ctx, 4)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_TransactionPrunableHash(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	want := fillHash(0x9a)
	require.NoError(t, db.put(txsPrunableHashTable, heightKey(8), want[:], want[:]))

	got, err := db.TransactionPrunableHash(ctx, 8)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func putPrunableTip(t *testing.T, db *Store, txnID, height uint64) {
	value := bytesutil.Uint64ToBytesLittleEndian(height)
	require.NoError(t, db.put(txsPrunableTipTable, heightKey(txnID), value, value))
}

func TestStore_PrunableTipHeight(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	_, err := db.PrunableTipHeight(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	putPrunableTip(t, db, 9, 50)
	putPrunableTip(t, db, 5, 100)

	// The global tip is the entry with the smallest transaction id.
	height, err := db.PrunableTipHeight(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(100), height)

	height, err = db.TransactionPrunableTipHeight(ctx, 9)
	require.NoError(t, err)
	require.Equal(t, uint64(50), height)
}

func TestStore_TransactionIndex(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	want := &types.TxIndex{Hash: fillHash(0x77), TxID: 1234, UnlockTime: 0, BlockID: 600}
	blob, err := want.MarshalRecord()
	require.NoError(t, err)
	require.NoError(t, db.put(txIndicesTable, zeroKey, want.Hash[:], blob))

	lazy, err := db.TransactionIndex(ctx, want.Hash[:])
	require.NoError(t, err)
	got, err := lazy.Record()
	require.NoError(t, err)
	require.DeepEqual(t, want, got)

	other := fillHash(0x78)
	_, err = db.TransactionIndex(ctx, other[:])
	require.ErrorIs(t, err, ErrNotFound)

	_, err = db.TransactionIndex(ctx, []byte("short"))
	require.ErrorContains(t, "hash must be 32 bytes", err)
}

func TestStore_TransactionOutputIndices(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	want := &types.TxOutputIndices{Indices: []uint64{11, 22, 33}}
	blob, err := want.MarshalRecord()
	require.NoError(t, err)
	require.NoError(t, db.put(txOutputsTable, heightKey(6), blob, blob))

	lazy, err := db.TransactionOutputIndices(ctx, 6)
	require.NoError(t, err)
	got, err := lazy.Record()
	require.NoError(t, err)
	require.DeepEqual(t, want, got)
}

func TestStore_TransactionCount(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	count, err := db.TransactionCount(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(0), count)

	blob, err := testPrunedTx().MarshalRecord()
	require.NoError(t, err)
	for id := uint64(0); id < 4; id++ {
		require.NoError(t, db.put(txsPrunedTable, heightKey(id), nil, blob))
	}

	count, err = db.TransactionCount(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(4), count)
}
