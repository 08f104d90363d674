package kv

import (
	"context"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"

	"github.com/monerokit/monerodb/encoding/bytesutil"
	"github.com/monerokit/monerodb/types"
)

// OutputRctKey retrieves the output key record of a RingCT output,
// addressed by amount (0 for RingCT) and amount-local output index.
func (s *Store) OutputRctKey(ctx context.Context, amount, amountOutputIndex uint64) (*types.LazyRctOutputKey, error) {
	_, span := trace.StartSpan(ctx, "MoneroDB.OutputRctKey")
	defer span.End()

	raw, err := s.outputKeyBytes(amount, amountOutputIndex)
	if err != nil {
		return nil, err
	}
	return types.LazyFromBytes[types.RctOutputKey](raw), nil
}

// OutputPreRctKey retrieves the output key record of a pre-RingCT
// output. The table holds both shapes; the accessor chosen decides the
// decode.
func (s *Store) OutputPreRctKey(ctx context.Context, amount, amountOutputIndex uint64) (*types.LazyPreRctOutputKey, error) {
	_, span := trace.StartSpan(ctx, "MoneroDB.OutputPreRctKey")
	defer span.End()

	raw, err := s.outputKeyBytes(amount, amountOutputIndex)
	if err != nil {
		return nil, err
	}
	return types.LazyFromBytes[types.PreRctOutputKey](raw), nil
}

func (s *Store) outputKeyBytes(amount, amountOutputIndex uint64) ([]byte, error) {
	return s.getRaw(
		outputAmountsTable,
		bytesutil.Uint64ToBytesBigEndian(amount),
		bytesutil.Uint64ToBytesBigEndian(amountOutputIndex),
		opDupSeek,
	)
}

// OutputTransaction locates the transaction that created an output by
// the output's global id.
func (s *Store) OutputTransaction(ctx context.Context, outputID uint64) (*types.LazyOutputTx, error) {
	_, span := trace.StartSpan(ctx, "MoneroDB.OutputTransaction")
	defer span.End()

	raw, err := s.getRaw(outputTxsTable, zeroKey, bytesutil.Uint64ToBytesBigEndian(outputID), opDupSeek)
	if err != nil {
		return nil, err
	}
	return types.LazyFromBytes[types.OutputTx](raw), nil
}

// IsKeyImageSpent reports whether a key image appears in the spent-key
// set. Absence means unspent; this is the only accessor that treats
// not-found as a successful result.
func (s *Store) IsKeyImageSpent(ctx context.Context, keyImage []byte) (bool, error) {
	_, span := trace.StartSpan(ctx, "MoneroDB.IsKeyImageSpent")
	defer span.End()

	if err := validateHash(keyImage); err != nil {
		return false, err
	}
	_, err := s.getRaw(spentKeysTable, zeroKey, keyImage, opDupSeek)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
