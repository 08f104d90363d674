package types

import (
	"github.com/holiman/uint256"
)

// Block is a consensus-encoded block: header, miner transaction and
// the hashes of the transactions it includes.
type Block struct {
	MajorVersion uint64
	MinorVersion uint64
	Timestamp    uint64
	PrevID       Hash
	Nonce        uint32
	MinerTx      Transaction
	TxHashes     []Hash
}

// MarshalRecord implements Record.
func (b *Block) MarshalRecord() ([]byte, error) {
	e := &encoder{}
	e.uvarint(b.MajorVersion)
	e.uvarint(b.MinorVersion)
	e.uvarint(b.Timestamp)
	e.hash(b.PrevID)
	e.uint32(b.Nonce)
	if err := b.MinerTx.Prefix.encodeTo(e); err != nil {
		return nil, err
	}
	if b.MinerTx.Prefix.Version >= 2 {
		// Coinbase transactions carry a Null ringct base only.
		e.uvarint(RctTypeNull)
	}
	e.uvarint(uint64(len(b.TxHashes)))
	for _, h := range b.TxHashes {
		e.hash(h)
	}
	return e.finish(), nil
}

// UnmarshalRecord implements Record.
func (b *Block) UnmarshalRecord(data []byte) error {
	d := newDecoder(data)
	b.decodeFrom(d)
	return d.finish()
}

func (b *Block) decodeFrom(d *decoder) {
	b.MajorVersion = d.uvarint()
	b.MinorVersion = d.uvarint()
	b.Timestamp = d.uvarint()
	b.PrevID = d.hash()
	b.Nonce = d.uint32()
	b.MinerTx.decodeFrom(d, true)
	if d.err != nil {
		return
	}
	n := d.count(HashSize)
	b.TxHashes = make([]Hash, 0, n)
	for i := 0; i < n && d.err == nil; i++ {
		b.TxHashes = append(b.TxHashes, d.hash())
	}
}

// AltBlock is a fork-candidate block with the chain context it was
// received under.
type AltBlock struct {
	Height                   uint64
	CumulativeWeight         uint64
	CumulativeDifficultyLow  uint64
	CumulativeDifficultyHigh uint64
	GeneratedCoins           uint64
	Block                    Block
}

// CumulativeDifficulty returns the 128-bit cumulative difficulty of
// the alternative chain at this block.
func (a *AltBlock) CumulativeDifficulty() *uint256.Int {
	return difficulty128(a.CumulativeDifficultyLow, a.CumulativeDifficultyHigh)
}

// MarshalRecord implements Record.
func (a *AltBlock) MarshalRecord() ([]byte, error) {
	e := &encoder{}
	e.uint64(a.Height)
	e.uint64(a.CumulativeWeight)
	e.uint64(a.CumulativeDifficultyLow)
	e.uint64(a.CumulativeDifficultyHigh)
	e.uint64(a.GeneratedCoins)
	blob, err := a.Block.MarshalRecord()
	if err != nil {
		return nil, err
	}
	e.bytes(blob)
	return e.finish(), nil
}

// UnmarshalRecord implements Record.
func (a *AltBlock) UnmarshalRecord(data []byte) error {
	d := newDecoder(data)
	a.Height = d.uint64()
	a.CumulativeWeight = d.uint64()
	a.CumulativeDifficultyLow = d.uint64()
	a.CumulativeDifficultyHigh = d.uint64()
	a.GeneratedCoins = d.uint64()
	if d.err == nil {
		a.Block.decodeFrom(d)
	}
	return d.finish()
}

// BlockInfo is the per-height chain metadata record kept in
// block_info. Fixed 96-byte layout.
type BlockInfo struct {
	Height                   uint64
	Timestamp                uint64
	GeneratedCoins           uint64
	Weight                   uint64
	CumulativeDifficultyLow  uint64
	CumulativeDifficultyHigh uint64
	Hash                     Hash
	CumulativeRctOutputs     uint64
	LongTermWeight           uint64
}

// CumulativeDifficulty returns the 128-bit cumulative difficulty up to
// and including this block.
func (b *BlockInfo) CumulativeDifficulty() *uint256.Int {
	return difficulty128(b.CumulativeDifficultyLow, b.CumulativeDifficultyHigh)
}

// MarshalRecord implements Record.
func (b *BlockInfo) MarshalRecord() ([]byte, error) {
	e := &encoder{}
	e.uint64(b.Height)
	e.uint64(b.Timestamp)
	e.uint64(b.GeneratedCoins)
	e.uint64(b.Weight)
	e.uint64(b.CumulativeDifficultyLow)
	e.uint64(b.CumulativeDifficultyHigh)
	e.hash(b.Hash)
	e.uint64(b.CumulativeRctOutputs)
	e.uint64(b.LongTermWeight)
	return e.finish(), nil
}

// UnmarshalRecord implements Record.
func (b *BlockInfo) UnmarshalRecord(data []byte) error {
	d := newDecoder(data)
	b.Height = d.uint64()
	b.Timestamp = d.uint64()
	b.GeneratedCoins = d.uint64()
	b.Weight = d.uint64()
	b.CumulativeDifficultyLow = d.uint64()
	b.CumulativeDifficultyHigh = d.uint64()
	b.Hash = d.hash()
	b.CumulativeRctOutputs = d.uint64()
	b.LongTermWeight = d.uint64()
	return d.finish()
}

// BlockHeight maps a block hash to its height in the main chain.
// Fixed 40-byte layout.
type BlockHeight struct {
	Hash   Hash
	Height uint64
}

// MarshalRecord implements Record.
func (b *BlockHeight) MarshalRecord() ([]byte, error) {
	e := &encoder{}
	e.hash(b.Hash)
	e.uint64(b.Height)
	return e.finish(), nil
}

// UnmarshalRecord implements Record.
func (b *BlockHeight) UnmarshalRecord(data []byte) error {
	d := newDecoder(data)
	b.Hash = d.hash()
	b.Height = d.uint64()
	return d.finish()
}

func difficulty128(lo, hi uint64) *uint256.Int {
	d := new(uint256.Int)
	d[0] = lo
	d[1] = hi
	return d
}
