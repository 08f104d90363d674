package types

// txPoolMetaPadding keeps the record at its fixed 192-byte size.
const txPoolMetaPadding = 72

// TxPoolMeta is the relay metadata kept for every pool transaction.
// Fixed 192-byte layout.
type TxPoolMeta struct {
	MaxUsedBlockID     Hash
	LastFailedID       Hash
	Weight             uint64
	Fee                uint64
	MaxUsedBlockHeight uint64
	LastFailedHeight   uint64
	ReceiveTime        uint64
	LastRelayedTime    uint64
	KeptByBlock        bool
	Relayed            bool
	DoNotRelay         bool
	DoubleSpendSeen    bool
	Pruned             bool
	IsLocal            bool
	DandelionStem      bool
	IsForwarding       bool
}

// MarshalRecord implements Record.
func (m *TxPoolMeta) MarshalRecord() ([]byte, error) {
	e := &encoder{}
	e.hash(m.MaxUsedBlockID)
	e.hash(m.LastFailedID)
	e.uint64(m.Weight)
	e.uint64(m.Fee)
	e.uint64(m.MaxUsedBlockHeight)
	e.uint64(m.LastFailedHeight)
	e.uint64(m.ReceiveTime)
	e.uint64(m.LastRelayedTime)
	e.byte(boolByte(m.KeptByBlock))
	e.byte(boolByte(m.Relayed))
	e.byte(boolByte(m.DoNotRelay))
	e.byte(boolByte(m.DoubleSpendSeen))
	e.byte(boolByte(m.Pruned))
	e.byte(boolByte(m.IsLocal))
	e.byte(boolByte(m.DandelionStem))
	e.byte(boolByte(m.IsForwarding))
	e.bytes(make([]byte, txPoolMetaPadding))
	return e.finish(), nil
}

// UnmarshalRecord implements Record.
func (m *TxPoolMeta) UnmarshalRecord(data []byte) error {
	d := newDecoder(data)
	m.MaxUsedBlockID = d.hash()
	m.LastFailedID = d.hash()
	m.Weight = d.uint64()
	m.Fee = d.uint64()
	m.MaxUsedBlockHeight = d.uint64()
	m.LastFailedHeight = d.uint64()
	m.ReceiveTime = d.uint64()
	m.LastRelayedTime = d.uint64()
	m.KeptByBlock = d.byte() != 0
	m.Relayed = d.byte() != 0
	m.DoNotRelay = d.byte() != 0
	m.DoubleSpendSeen = d.byte() != 0
	m.Pruned = d.byte() != 0
	m.IsLocal = d.byte() != 0
	m.DandelionStem = d.byte() != 0
	m.IsForwarding = d.byte() != 0
	d.bytes(txPoolMetaPadding)
	return d.finish()
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
