package kv

import (
	"context"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"

	"github.com/monerokit/monerodb/types"
)

// TxPoolMeta retrieves the relay metadata of a pool transaction.
func (s *Store) TxPoolMeta(ctx context.Context, txnHash []byte) (*types.LazyTxPoolMeta, error) {
	_, span := trace.StartSpan(ctx, "MoneroDB.TxPoolMeta")
	defer span.End()

	if err := validateHash(txnHash); err != nil {
		return nil, err
	}
	raw, err := s.getRaw(txpoolMetaTable, txnHash, nil, opSetKey)
	if err != nil {
		return nil, err
	}
	return types.LazyFromBytes[types.TxPoolMeta](raw), nil
}

// TxPoolTransaction retrieves a pool transaction's blob.
func (s *Store) TxPoolTransaction(ctx context.Context, txnHash []byte) (*types.LazyTransaction, error) {
	_, span := trace.StartSpan(ctx, "MoneroDB.TxPoolTransaction")
	defer span.End()

	if err := validateHash(txnHash); err != nil {
		return nil, err
	}
	raw, err := s.getRaw(txpoolBlobTable, txnHash, nil, opSetKey)
	if err != nil {
		return nil, err
	}
	return types.LazyFromBytes[types.Transaction](raw), nil
}

// SaveTxPoolEntry stores a pool transaction's metadata and blob under
// its hash inside one write transaction: a failure on either leaves
// neither behind.
func (s *Store) SaveTxPoolEntry(ctx context.Context, txnHash []byte, meta *types.TxPoolMeta, tx *types.Transaction) error {
	_, span := trace.StartSpan(ctx, "MoneroDB.SaveTxPoolEntry")
	defer span.End()

	if err := validateHash(txnHash); err != nil {
		return err
	}
	if s.readOnly {
		return errors.Wrapf(ErrReadOnly, "table %s", txpoolMetaTable.name)
	}
	metaBlob, err := meta.MarshalRecord()
	if err != nil {
		return err
	}
	txBlob, err := tx.MarshalRecord()
	if err != nil {
		return err
	}
	return s.db.Update(func(btx *bolt.Tx) error {
		if err := putTx(btx, txpoolMetaTable, txnHash, nil, metaBlob); err != nil {
			return err
		}
		return putTx(btx, txpoolBlobTable, txnHash, nil, txBlob)
	})
}
