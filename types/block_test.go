package types

import (
	"testing"

	"github.com/holiman/uint256"

	"github.com/monerokit/monerodb/testing/assert"
	"github.com/monerokit/monerodb/testing/require"
)

func sampleBlock() *Block {
	viewTag := byte(0x2c)
	return &Block{
		MajorVersion: 16,
		MinorVersion: 16,
		Timestamp:    1670000000,
		PrevID:       hashOf(0x20),
		Nonce:        3735928559,
		MinerTx: Transaction{
			Prefix: TransactionPrefix{
				Version:    2,
				UnlockTime: 2700060,
				Inputs:     []TxInput{{Gen: &TxInGen{Height: 2700000}}},
				Outputs:    []TxOutput{{Amount: 600000000000, Key: hashOf(0x21), ViewTag: &viewTag}},
				Extra:      []byte{0x01, 0x02},
			},
			RctBase: &RctSigBase{Type: RctTypeNull},
		},
		TxHashes: []Hash{hashOf(0x22), hashOf(0x23), hashOf(0x24)},
	}
}

func TestBlock_RoundTrip(t *testing.T) {
	want := sampleBlock()
	blob, err := want.MarshalRecord()
	require.NoError(t, err)

	got := &Block{}
	require.NoError(t, got.UnmarshalRecord(blob))
	require.DeepEqual(t, want, got)
}

func TestBlock_MinerTxMustBeCoinbase(t *testing.T) {
	blob, err := sampleBlock().MarshalRecord()
	require.NoError(t, err)
	// The miner transaction's signature type byte sits right before the
	// transaction hash count; anything but the null type is invalid in
	// an embedded transaction.
	offset := len(blob) - 1 - 3*HashSize - 1
	require.Equal(t, byte(RctTypeNull), blob[offset])
	blob[offset] = RctTypeCLSAG
	err = (&Block{}).UnmarshalRecord(blob)
	require.ErrorContains(t, "embedded transaction carries ringct type", err)
}

func TestAltBlock_RoundTrip(t *testing.T) {
	want := &AltBlock{
		Height:                   2700001,
		CumulativeWeight:         176000000,
		CumulativeDifficultyLow:  0x123456789abcdef0,
		CumulativeDifficultyHigh: 0x1,
		GeneratedCoins:           18446744073709,
		Block:                    *sampleBlock(),
	}
	blob, err := want.MarshalRecord()
	require.NoError(t, err)

	got := &AltBlock{}
	require.NoError(t, got.UnmarshalRecord(blob))
	require.DeepEqual(t, want, got)

	diff := got.CumulativeDifficulty()
	wantDiff := new(uint256.Int)
	wantDiff[0] = 0x123456789abcdef0
	wantDiff[1] = 0x1
	require.Equal(t, true, diff.Eq(wantDiff))
}

func TestBlockInfo_RoundTrip(t *testing.T) {
	want := &BlockInfo{
		Height:                   2700000,
		Timestamp:                1670000000,
		GeneratedCoins:           18446744073709,
		Weight:                   176000,
		CumulativeDifficultyLow:  ^uint64(0),
		CumulativeDifficultyHigh: 7,
		Hash:                     hashOf(0x25),
		CumulativeRctOutputs:     61000000,
		LongTermWeight:           176000,
	}
	blob, err := want.MarshalRecord()
	require.NoError(t, err)
	assert.Equal(t, 96, len(blob))

	got := &BlockInfo{}
	require.NoError(t, got.UnmarshalRecord(blob))
	require.DeepEqual(t, want, got)

	// The 128-bit difficulty is assembled from the low and high words.
	require.Equal(t, true, got.CumulativeDifficulty().Eq(difficulty128(^uint64(0), 7)))
}

func TestBlockHeight_RoundTrip(t *testing.T) {
	want := &BlockHeight{Hash: hashOf(0x26), Height: 2700000}
	blob, err := want.MarshalRecord()
	require.NoError(t, err)
	assert.Equal(t, 40, len(blob))

	got := &BlockHeight{}
	require.NoError(t, got.UnmarshalRecord(blob))
	require.DeepEqual(t, want, got)
}
