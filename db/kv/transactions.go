package kv

import (
	"context"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"

	"github.com/monerokit/monerodb/encoding/bytesutil"
	"github.com/monerokit/monerodb/types"
)

// TransactionPruned retrieves the pruned part of a transaction by its
// compact id.
func (s *Store) TransactionPruned(ctx context.Context, txnID uint64) (*types.LazyTransactionPruned, error) {
	_, span := trace.StartSpan(ctx, "MoneroDB.TransactionPruned")
	defer span.End()

	raw, err := s.getRaw(txsPrunedTable, bytesutil.Uint64ToBytesBigEndian(txnID), nil, opSetKey)
	if err != nil {
		return nil, err
	}
	return types.LazyFromBytes[types.TransactionPruned](raw), nil
}

// TransactionPrunable retrieves the prunable part of a transaction.
// The blob is opaque to this layer and always returned raw.
func (s *Store) TransactionPrunable(ctx context.Context, txnID uint64) ([]byte, error) {
	_, span := trace.StartSpan(ctx, "MoneroDB.TransactionPrunable")
	defer span.End()

	return s.getRaw(txsPrunableTable, bytesutil.Uint64ToBytesBigEndian(txnID), nil, opSetKey)
}

// TransactionPrunableHash retrieves the hash of a transaction's
// prunable part.
func (s *Store) TransactionPrunableHash(ctx context.Context, txnID uint64) (types.Hash, error) {
	_, span := trace.StartSpan(ctx, "MoneroDB.TransactionPrunableHash")
	defer span.End()

	raw, err := s.getRaw(txsPrunableHashTable, bytesutil.Uint64ToBytesBigEndian(txnID), nil, opSetKey)
	if err != nil {
		return types.Hash{}, err
	}
	h, err := types.HashFromBytes(raw)
	if err != nil {
		return types.Hash{}, &types.DecodeError{Record: "prunable hash", Err: err}
	}
	return h, nil
}

// TransactionPrunableTipHeight returns the block height recorded for a
// transaction close enough to the chain tip to keep its prunable part.
func (s *Store) TransactionPrunableTipHeight(ctx context.Context, txnID uint64) (uint64, error) {
	_, span := trace.StartSpan(ctx, "MoneroDB.TransactionPrunableTipHeight")
	defer span.End()

	raw, err := s.getRaw(txsPrunableTipTable, bytesutil.Uint64ToBytesBigEndian(txnID), nil, opSetKey)
	if err != nil {
		return 0, err
	}
	return decodeHeight(raw)
}

// PrunableTipHeight returns the global prunable tip: the height stored
// in the record kept under transaction id 0, which sorts first in the
// table.
func (s *Store) PrunableTipHeight(ctx context.Context) (uint64, error) {
	_, span := trace.StartSpan(ctx, "MoneroDB.PrunableTipHeight")
	defer span.End()

	raw, err := s.getRaw(txsPrunableTipTable, nil, nil, opFirst)
	if err != nil {
		return 0, err
	}
	return decodeHeight(raw)
}

// TransactionIndex retrieves the compact identifiers of a transaction
// by its hash.
func (s *Store) TransactionIndex(ctx context.Context, txnHash []byte) (*types.LazyTxIndex, error) {
	_, span := trace.StartSpan(ctx, "MoneroDB.TransactionIndex")
	defer span.End()

	if err := validateHash(txnHash); err != nil {
		return nil, err
	}
	raw, err := s.getRaw(txIndicesTable, zeroKey, txnHash, opDupSeek)
	if err != nil {
		return nil, err
	}
	return types.LazyFromBytes[types.TxIndex](raw), nil
}

// TransactionOutputIndices retrieves the amount output indices of a
// transaction's outputs.
func (s *Store) TransactionOutputIndices(ctx context.Context, txnID uint64) (*types.LazyTxOutputIndices, error) {
	_, span := trace.StartSpan(ctx, "MoneroDB.TransactionOutputIndices")
	defer span.End()

	raw, err := s.getRaw(txOutputsTable, bytesutil.Uint64ToBytesBigEndian(txnID), nil, opSetKey)
	if err != nil {
		return nil, err
	}
	return types.LazyFromBytes[types.TxOutputIndices](raw), nil
}

// TransactionCount returns the number of transactions on the chain.
func (s *Store) TransactionCount(ctx context.Context) (uint64, error) {
	_, span := trace.StartSpan(ctx, "MoneroDB.TransactionCount")
	defer span.End()

	return s.entryCount(txsPrunedTable, nil)
}

func decodeHeight(raw []byte) (uint64, error) {
	if len(raw) != 8 {
		return 0, &types.DecodeError{Record: "height", Err: errors.Errorf("want 8 bytes, got %d", len(raw))}
	}
	return bytesutil.BytesToUint64LittleEndian(raw), nil
}
