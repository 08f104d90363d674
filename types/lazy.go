package types

import "fmt"

// RecordPtr constrains PT to a pointer to a record type.
type RecordPtr[T any] interface {
	*T
	Record
}

// Lazy holds a value read from the database either as the raw bytes
// the storage engine returned or as an already decoded record. Decode
// is deferred until Record is called, so callers that only need the
// bytes (to hash or re-serialize) never pay for a parse.
type Lazy[T any, PT RecordPtr[T]] struct {
	raw []byte
	rec PT
}

// LazyFromBytes wraps raw undecoded bytes.
func LazyFromBytes[T any, PT RecordPtr[T]](raw []byte) *Lazy[T, PT] {
	return &Lazy[T, PT]{raw: raw}
}

// LazyFromRecord wraps an already decoded record.
func LazyFromRecord[T any, PT RecordPtr[T]](rec PT) *Lazy[T, PT] {
	return &Lazy[T, PT]{rec: rec}
}

// Decoded reports whether the record form is available without a parse.
func (l *Lazy[T, PT]) Decoded() bool {
	return l.rec != nil
}

// Record returns the decoded record, parsing the raw bytes on first
// use. The decoded form is memoized.
func (l *Lazy[T, PT]) Record() (PT, error) {
	if l.rec != nil {
		return l.rec, nil
	}
	rec := PT(new(T))
	if err := rec.UnmarshalRecord(l.raw); err != nil {
		return nil, &DecodeError{Record: fmt.Sprintf("%T", *new(T)), Err: err}
	}
	l.rec = rec
	return rec, nil
}

// Bytes returns the encoded form, re-serializing only when the value
// was constructed from a decoded record.
func (l *Lazy[T, PT]) Bytes() ([]byte, error) {
	if l.raw != nil {
		return l.raw, nil
	}
	return l.rec.MarshalRecord()
}

// Aliases for the instantiations the accessor layer returns.
type (
	LazyBlock             = Lazy[Block, *Block]
	LazyAltBlock          = Lazy[AltBlock, *AltBlock]
	LazyBlockInfo         = Lazy[BlockInfo, *BlockInfo]
	LazyBlockHeight       = Lazy[BlockHeight, *BlockHeight]
	LazyTransaction       = Lazy[Transaction, *Transaction]
	LazyTransactionPruned = Lazy[TransactionPruned, *TransactionPruned]
	LazyTxIndex           = Lazy[TxIndex, *TxIndex]
	LazyTxOutputIndices   = Lazy[TxOutputIndices, *TxOutputIndices]
	LazyOutputTx          = Lazy[OutputTx, *OutputTx]
	LazyRctOutputKey      = Lazy[RctOutputKey, *RctOutputKey]
	LazyPreRctOutputKey   = Lazy[PreRctOutputKey, *PreRctOutputKey]
	LazyTxPoolMeta        = Lazy[TxPoolMeta, *TxPoolMeta]
)
