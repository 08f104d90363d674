package types

// OutputTx locates an output inside the transaction that created it.
// Fixed 48-byte layout.
type OutputTx struct {
	OutputID   uint64
	TxHash     Hash
	LocalIndex uint64
}

// MarshalRecord implements Record.
func (o *OutputTx) MarshalRecord() ([]byte, error) {
	e := &encoder{}
	e.uint64(o.OutputID)
	e.hash(o.TxHash)
	e.uint64(o.LocalIndex)
	return e.finish(), nil
}

// UnmarshalRecord implements Record.
func (o *OutputTx) UnmarshalRecord(data []byte) error {
	d := newDecoder(data)
	o.OutputID = d.uint64()
	o.TxHash = d.hash()
	o.LocalIndex = d.uint64()
	return d.finish()
}

// PreRctOutputKey is the output_amounts record for a pre-RingCT
// output. Fixed 64-byte layout.
type PreRctOutputKey struct {
	AmountIndex uint64
	OutputID    uint64
	PubKey      Hash
	UnlockTime  uint64
	Height      uint64
}

// MarshalRecord implements Record.
func (o *PreRctOutputKey) MarshalRecord() ([]byte, error) {
	e := &encoder{}
	e.uint64(o.AmountIndex)
	e.uint64(o.OutputID)
	e.hash(o.PubKey)
	e.uint64(o.UnlockTime)
	e.uint64(o.Height)
	return e.finish(), nil
}

// UnmarshalRecord implements Record.
func (o *PreRctOutputKey) UnmarshalRecord(data []byte) error {
	d := newDecoder(data)
	o.AmountIndex = d.uint64()
	o.OutputID = d.uint64()
	o.PubKey = d.hash()
	o.UnlockTime = d.uint64()
	o.Height = d.uint64()
	return d.finish()
}

// RctOutputKey is the output_amounts record for a RingCT output: the
// pre-RingCT fields plus the amount commitment. Fixed 96-byte layout.
// Both shapes share the table; the caller's accessor choice decides
// which decode applies.
type RctOutputKey struct {
	AmountIndex uint64
	OutputID    uint64
	PubKey      Hash
	UnlockTime  uint64
	Height      uint64
	Commitment  Hash
}

// MarshalRecord implements Record.
func (o *RctOutputKey) MarshalRecord() ([]byte, error) {
	e := &encoder{}
	e.uint64(o.AmountIndex)
	e.uint64(o.OutputID)
	e.hash(o.PubKey)
	e.uint64(o.UnlockTime)
	e.uint64(o.Height)
	e.hash(o.Commitment)
	return e.finish(), nil
}

// UnmarshalRecord implements Record.
func (o *RctOutputKey) UnmarshalRecord(data []byte) error {
	d := newDecoder(data)
	o.AmountIndex = d.uint64()
	o.OutputID = d.uint64()
	o.PubKey = d.hash()
	o.UnlockTime = d.uint64()
	o.Height = d.uint64()
	o.Commitment = d.hash()
	return d.finish()
}
