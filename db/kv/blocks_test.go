package kv

import (
	"context"
	"testing"

	"github.com/holiman/uint256"

	"github.com/monerokit/monerodb/testing/require"
	"github.com/monerokit/monerodb/types"
)

func fillHash(b byte) types.Hash {
	var h types.Hash
	for i := range h {
		h[i] = b
	}
	return h
}

func testBlock(height uint64) *types.Block {
	viewTag := byte(0x5d)
	return &types.Block{
		MajorVersion: 16,
		MinorVersion: 16,
		Timestamp:    1670000000 + height,
		PrevID:       fillHash(0xaa),
		Nonce:        12345,
		MinerTx: types.Transaction{
			Prefix: types.TransactionPrefix{
				Version:    2,
				UnlockTime: height + 60,
				Inputs:     []types.TxInput{{Gen: &types.TxInGen{Height: height}}},
				Outputs:    []types.TxOutput{{Amount: 600000000000, Key: fillHash(0xbb), ViewTag: &viewTag}},
				Extra:      []byte{0x01, 0x02, 0x03},
			},
			RctBase: &types.RctSigBase{Type: types.RctTypeNull},
		},
		TxHashes: []types.Hash{fillHash(0xcc), fillHash(0xcd)},
	}
}

func TestStore_Block(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	want := testBlock(10)
	blob, err := want.MarshalRecord()
	require.NoError(t, err)
	require.NoError(t, db.put(blocksTable, heightKey(10), nil, blob))

	lazy, err := db.Block(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, false, lazy.Decoded())
	got, err := lazy.Record()
	require.NoError(t, err)
	require.DeepEqual(t, want, got)

	_, err = db.Block(ctx, 11)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_SaveAltBlock(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	want := &types.AltBlock{
		Height:                   42,
		CumulativeWeight:         300000,
		CumulativeDifficultyLow:  1 << 40,
		CumulativeDifficultyHigh: 3,
		GeneratedCoins:           18000000,
		Block:                    *testBlock(42),
	}
	blockHash := fillHash(0xee)
	require.NoError(t, db.SaveAltBlock(ctx, blockHash[:], want))

	lazy, err := db.AltBlock(ctx, blockHash[:])
	require.NoError(t, err)
	got, err := lazy.Record()
	require.NoError(t, err)
	require.DeepEqual(t, want, got)
	require.Equal(t, true, got.CumulativeDifficulty().Eq(difficulty(1<<40, 3)))

	// The write path never overwrites.
	err = db.SaveAltBlock(ctx, blockHash[:], want)
	require.ErrorIs(t, err, ErrKeyExists)

	// Hash length is checked before the engine is touched.
	err = db.SaveAltBlock(ctx, blockHash[:31], want)
	require.ErrorContains(t, "hash must be 32 bytes", err)
}

func difficulty(lo, hi uint64) *uint256.Int {
	d := new(uint256.Int)
	d[0] = lo
	d[1] = hi
	return d
}

func putBlockInfo(t *testing.T, db *Store, info *types.BlockInfo) {
	blob, err := info.MarshalRecord()
	require.NoError(t, err)
	require.NoError(t, db.put(blockInfoTable, zeroKey, heightKey(info.Height), blob))
}

func TestStore_BlockInfoAndDifficulty(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	putBlockInfo(t, db, &types.BlockInfo{Height: 1, CumulativeDifficultyLow: 1000})
	putBlockInfo(t, db, &types.BlockInfo{Height: 2, CumulativeDifficultyLow: 1600, Hash: fillHash(0x11), Weight: 2000})

	lazy, err := db.BlockInfo(ctx, 2)
	require.NoError(t, err)
	info, err := lazy.Record()
	require.NoError(t, err)
	require.Equal(t, uint64(2000), info.Weight)
	require.Equal(t, fillHash(0x11), info.Hash)

	diff, err := db.BlockDifficulty(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, true, diff.Eq(uint256.NewInt(600)))

	// Height 0 has no predecessor to subtract.
	_, err = db.BlockDifficulty(ctx, 0)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_BlockDifficulty_HighWord(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	// The difference crosses the 64-bit boundary.
	putBlockInfo(t, db, &types.BlockInfo{Height: 4, CumulativeDifficultyLow: ^uint64(0), CumulativeDifficultyHigh: 1})
	putBlockInfo(t, db, &types.BlockInfo{Height: 5, CumulativeDifficultyLow: 99, CumulativeDifficultyHigh: 2})

	diff, err := db.BlockDifficulty(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, true, diff.Eq(uint256.NewInt(100)))
}

func TestStore_BlockHeightAndChainHeight(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	height, err := db.BlockchainHeight(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(0), height)

	for h := uint64(0); h < 3; h++ {
		rec := &types.BlockHeight{Hash: fillHash(byte(h + 1)), Height: h}
		blob, err := rec.MarshalRecord()
		require.NoError(t, err)
		require.NoError(t, db.put(blockHeightsTable, zeroKey, rec.Hash[:], blob))
	}

	height, err = db.BlockchainHeight(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(3), height)

	wantHash := fillHash(2)
	lazy, err := db.BlockHeight(ctx, wantHash[:])
	require.NoError(t, err)
	rec, err := lazy.Record()
	require.NoError(t, err)
	require.Equal(t, uint64(1), rec.Height)
	require.Equal(t, wantHash, rec.Hash)
}

func TestStore_HardForkVersion(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	require.NoError(t, db.put(hfVersionsTable, heightKey(100), nil, []byte{15}))

	v, err := db.HardForkVersion(ctx, 100)
	require.NoError(t, err)
	require.Equal(t, uint8(15), v)

	_, err = db.HardForkVersion(ctx, 101)
	require.ErrorIs(t, err, ErrNotFound)
}
