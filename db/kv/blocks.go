package kv

import (
	"context"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"go.opencensus.io/trace"

	"github.com/monerokit/monerodb/encoding/bytesutil"
	"github.com/monerokit/monerodb/types"
)

// Block retrieves the block stored at a main-chain height.
func (s *Store) Block(ctx context.Context, height uint64) (*types.LazyBlock, error) {
	_, span := trace.StartSpan(ctx, "MoneroDB.Block")
	defer span.End()

	raw, err := s.getRaw(blocksTable, bytesutil.Uint64ToBytesBigEndian(height), nil, opSetKey)
	if err != nil {
		return nil, err
	}
	return types.LazyFromBytes[types.Block](raw), nil
}

// AltBlock retrieves a fork-candidate block by its hash.
func (s *Store) AltBlock(ctx context.Context, blockHash []byte) (*types.LazyAltBlock, error) {
	_, span := trace.StartSpan(ctx, "MoneroDB.AltBlock")
	defer span.End()

	if err := validateHash(blockHash); err != nil {
		return nil, err
	}
	raw, err := s.getRaw(altBlocksTable, blockHash, nil, opSetKey)
	if err != nil {
		return nil, err
	}
	return types.LazyFromBytes[types.AltBlock](raw), nil
}

// SaveAltBlock stores a fork-candidate block under its hash. The hash
// comes from the caller; this layer does not compute proof-of-work or
// block identifiers.
func (s *Store) SaveAltBlock(ctx context.Context, blockHash []byte, altBlock *types.AltBlock) error {
	_, span := trace.StartSpan(ctx, "MoneroDB.SaveAltBlock")
	defer span.End()

	if err := validateHash(blockHash); err != nil {
		return err
	}
	blob, err := altBlock.MarshalRecord()
	if err != nil {
		return err
	}
	return s.put(altBlocksTable, blockHash, nil, blob)
}

// BlockInfo retrieves the chain metadata record at a height.
func (s *Store) BlockInfo(ctx context.Context, height uint64) (*types.LazyBlockInfo, error) {
	_, span := trace.StartSpan(ctx, "MoneroDB.BlockInfo")
	defer span.End()

	raw, err := s.getRaw(blockInfoTable, zeroKey, bytesutil.Uint64ToBytesBigEndian(height), opDupSeek)
	if err != nil {
		return nil, err
	}
	return types.LazyFromBytes[types.BlockInfo](raw), nil
}

// BlockDifficulty computes the difficulty of the block at a height as
// the difference of cumulative difficulties at height and height-1.
// Height 0 has no predecessor and fails with a not-found error.
func (s *Store) BlockDifficulty(ctx context.Context, height uint64) (*uint256.Int, error) {
	ctx, span := trace.StartSpan(ctx, "MoneroDB.BlockDifficulty")
	defer span.End()

	if height == 0 {
		return nil, &StorageError{Table: string(blockInfoTable.name), Key: zeroKey, Err: ErrNotFound}
	}
	prev, err := s.BlockInfo(ctx, height-1)
	if err != nil {
		return nil, err
	}
	cur, err := s.BlockInfo(ctx, height)
	if err != nil {
		return nil, err
	}
	prevRec, err := prev.Record()
	if err != nil {
		return nil, err
	}
	curRec, err := cur.Record()
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).Sub(curRec.CumulativeDifficulty(), prevRec.CumulativeDifficulty()), nil
}

// BlockHeight retrieves the height record of a block hash.
func (s *Store) BlockHeight(ctx context.Context, blockHash []byte) (*types.LazyBlockHeight, error) {
	_, span := trace.StartSpan(ctx, "MoneroDB.BlockHeight")
	defer span.End()

	if err := validateHash(blockHash); err != nil {
		return nil, err
	}
	raw, err := s.getRaw(blockHeightsTable, zeroKey, blockHash, opDupSeek)
	if err != nil {
		return nil, err
	}
	return types.LazyFromBytes[types.BlockHeight](raw), nil
}

// BlockchainHeight returns 1 + the height of the top block, which by
// the contiguity invariant equals the number of entries in the height
// index.
func (s *Store) BlockchainHeight(ctx context.Context) (uint64, error) {
	_, span := trace.StartSpan(ctx, "MoneroDB.BlockchainHeight")
	defer span.End()

	return s.entryCount(blockHeightsTable, zeroKey)
}

// HardForkVersion returns the hard fork version of the block at a
// height.
func (s *Store) HardForkVersion(ctx context.Context, height uint64) (uint8, error) {
	_, span := trace.StartSpan(ctx, "MoneroDB.HardForkVersion")
	defer span.End()

	raw, err := s.getRaw(hfVersionsTable, bytesutil.Uint64ToBytesBigEndian(height), nil, opSetKey)
	if err != nil {
		return 0, err
	}
	if len(raw) < 1 {
		return 0, &types.DecodeError{Record: "hard fork version", Err: errors.New("empty value")}
	}
	return raw[0], nil
}
