// Package iface defines the actual database interface used by the
// node, with each interface matching a particular underlying kv store
// implementation.
package iface

import (
	"context"
	"io"

	"github.com/holiman/uint256"

	"github.com/monerokit/monerodb/types"
)

// ReadOnlyDatabase defines a struct which only has read access to
// database methods.
type ReadOnlyDatabase interface {
	// Blocks related methods.
	Block(ctx context.Context, height uint64) (*types.LazyBlock, error)
	AltBlock(ctx context.Context, blockHash []byte) (*types.LazyAltBlock, error)
	BlockInfo(ctx context.Context, height uint64) (*types.LazyBlockInfo, error)
	BlockDifficulty(ctx context.Context, height uint64) (*uint256.Int, error)
	BlockHeight(ctx context.Context, blockHash []byte) (*types.LazyBlockHeight, error)
	BlockchainHeight(ctx context.Context) (uint64, error)
	HardForkVersion(ctx context.Context, height uint64) (uint8, error)
	// Transactions related methods.
	TransactionPruned(ctx context.Context, txnID uint64) (*types.LazyTransactionPruned, error)
	TransactionPrunable(ctx context.Context, txnID uint64) ([]byte, error)
	TransactionPrunableHash(ctx context.Context, txnID uint64) (types.Hash, error)
	TransactionPrunableTipHeight(ctx context.Context, txnID uint64) (uint64, error)
	PrunableTipHeight(ctx context.Context) (uint64, error)
	TransactionIndex(ctx context.Context, txnHash []byte) (*types.LazyTxIndex, error)
	TransactionOutputIndices(ctx context.Context, txnID uint64) (*types.LazyTxOutputIndices, error)
	TransactionCount(ctx context.Context) (uint64, error)
	// Outputs related methods.
	OutputRctKey(ctx context.Context, amount, amountOutputIndex uint64) (*types.LazyRctOutputKey, error)
	OutputPreRctKey(ctx context.Context, amount, amountOutputIndex uint64) (*types.LazyPreRctOutputKey, error)
	OutputTransaction(ctx context.Context, outputID uint64) (*types.LazyOutputTx, error)
	IsKeyImageSpent(ctx context.Context, keyImage []byte) (bool, error)
	// Transaction pool related methods.
	TxPoolMeta(ctx context.Context, txnHash []byte) (*types.LazyTxPoolMeta, error)
	TxPoolTransaction(ctx context.Context, txnHash []byte) (*types.LazyTransaction, error)
	// Store properties.
	DatabaseVersion(ctx context.Context) (uint32, error)
	PruningSeed(ctx context.Context) (uint32, error)
	MaxBlockSize(ctx context.Context) (uint64, error)
	IsReadOnly() bool
	DatabasePath() string
}

// NoHeadAccessDatabase defines a struct without access to chain head
// updates: the write surface stops at side records that do not move
// the main chain.
type NoHeadAccessDatabase interface {
	ReadOnlyDatabase

	SaveAltBlock(ctx context.Context, blockHash []byte, altBlock *types.AltBlock) error
	SaveTxPoolEntry(ctx context.Context, txnHash []byte, meta *types.TxPoolMeta, tx *types.Transaction) error

	ClearDB() error
}

// Database interface with full access.
type Database interface {
	io.Closer

	NoHeadAccessDatabase

	Backup(ctx context.Context) error
}
