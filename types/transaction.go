package types

import "github.com/pkg/errors"

// Input and output target tags of the consensus wire format.
const (
	txInGenTag   = 0xff
	txInToKeyTag = 0x02

	txOutToKeyTag       = 0x02
	txOutToTaggedKeyTag = 0x03
)

// RingCT signature types.
const (
	RctTypeNull            = 0
	RctTypeFull            = 1
	RctTypeSimple          = 2
	RctTypeBulletproof     = 3
	RctTypeBulletproof2    = 4
	RctTypeCLSAG           = 5
	RctTypeBulletproofPlus = 6
)

// TxInGen is a coinbase input minting at a block height.
type TxInGen struct {
	Height uint64
}

// TxInToKey spends previous outputs referenced by relative offsets.
type TxInToKey struct {
	Amount     uint64
	KeyOffsets []uint64
	KeyImage   Hash
}

// TxInput is a tagged union; exactly one field is set.
type TxInput struct {
	Gen   *TxInGen
	ToKey *TxInToKey
}

// TxOutput is a transaction output. ViewTag is set for tagged-key
// targets (added in hard fork 15) and nil for plain key targets.
type TxOutput struct {
	Amount  uint64
	Key     Hash
	ViewTag *byte
}

// TransactionPrefix is the unsigned part shared by every transaction
// version.
type TransactionPrefix struct {
	Version    uint64
	UnlockTime uint64
	Inputs     []TxInput
	Outputs    []TxOutput
	Extra      []byte
}

func (p *TransactionPrefix) decodeFrom(d *decoder) {
	p.Version = d.uvarint()
	p.UnlockTime = d.uvarint()

	nIn := d.count(1)
	p.Inputs = make([]TxInput, 0, nIn)
	for i := 0; i < nIn && d.err == nil; i++ {
		switch tag := d.byte(); tag {
		case txInGenTag:
			p.Inputs = append(p.Inputs, TxInput{Gen: &TxInGen{Height: d.uvarint()}})
		case txInToKeyTag:
			in := &TxInToKey{Amount: d.uvarint()}
			nOff := d.count(1)
			in.KeyOffsets = make([]uint64, 0, nOff)
			for j := 0; j < nOff && d.err == nil; j++ {
				in.KeyOffsets = append(in.KeyOffsets, d.uvarint())
			}
			in.KeyImage = d.hash()
			p.Inputs = append(p.Inputs, TxInput{ToKey: in})
		default:
			d.fail(errors.Errorf("unknown input tag 0x%02x", tag))
		}
	}

	nOut := d.count(1)
	p.Outputs = make([]TxOutput, 0, nOut)
	for i := 0; i < nOut && d.err == nil; i++ {
		out := TxOutput{Amount: d.uvarint()}
		switch tag := d.byte(); tag {
		case txOutToKeyTag:
			out.Key = d.hash()
		case txOutToTaggedKeyTag:
			out.Key = d.hash()
			vt := d.byte()
			out.ViewTag = &vt
		default:
			d.fail(errors.Errorf("unknown output tag 0x%02x", tag))
		}
		p.Outputs = append(p.Outputs, out)
	}

	extraLen := d.count(1)
	p.Extra = d.bytes(extraLen)
}

func (p *TransactionPrefix) encodeTo(e *encoder) error {
	e.uvarint(p.Version)
	e.uvarint(p.UnlockTime)

	e.uvarint(uint64(len(p.Inputs)))
	for _, in := range p.Inputs {
		switch {
		case in.Gen != nil:
			e.byte(txInGenTag)
			e.uvarint(in.Gen.Height)
		case in.ToKey != nil:
			e.byte(txInToKeyTag)
			e.uvarint(in.ToKey.Amount)
			e.uvarint(uint64(len(in.ToKey.KeyOffsets)))
			for _, off := range in.ToKey.KeyOffsets {
				e.uvarint(off)
			}
			e.hash(in.ToKey.KeyImage)
		default:
			return errors.New("transaction input has no variant set")
		}
	}

	e.uvarint(uint64(len(p.Outputs)))
	for _, out := range p.Outputs {
		e.uvarint(out.Amount)
		if out.ViewTag != nil {
			e.byte(txOutToTaggedKeyTag)
			e.hash(out.Key)
			e.byte(*out.ViewTag)
		} else {
			e.byte(txOutToKeyTag)
			e.hash(out.Key)
		}
	}

	e.uvarint(uint64(len(p.Extra)))
	e.bytes(p.Extra)
	return nil
}

// RctSigBase is the non-prunable half of a RingCT signature. Range
// proofs and ring signature material live in the prunable part.
type RctSigBase struct {
	Type       uint8
	TxnFee     uint64
	PseudoOuts []Hash
	EcdhInfo   [][]byte
	OutPk      []Hash
}

// ecdhInfoSize returns the per-output ECDH tuple size for a signature
// type: 8 bytes once amounts-only encoding landed, 64 before.
func ecdhInfoSize(rctType uint8) int {
	if rctType >= RctTypeBulletproof2 {
		return 8
	}
	return 64
}

func (r *RctSigBase) decodeFrom(d *decoder, nInputs, nOutputs int) {
	r.Type = uint8(d.uvarint())
	if r.Type == RctTypeNull {
		return
	}
	if r.Type > RctTypeBulletproofPlus {
		d.fail(errors.Errorf("unknown ringct type %d", r.Type))
		return
	}
	r.TxnFee = d.uvarint()
	if r.Type == RctTypeSimple {
		r.PseudoOuts = make([]Hash, 0, nInputs)
		for i := 0; i < nInputs && d.err == nil; i++ {
			r.PseudoOuts = append(r.PseudoOuts, d.hash())
		}
	}
	size := ecdhInfoSize(r.Type)
	r.EcdhInfo = make([][]byte, 0, nOutputs)
	for i := 0; i < nOutputs && d.err == nil; i++ {
		r.EcdhInfo = append(r.EcdhInfo, d.bytes(size))
	}
	r.OutPk = make([]Hash, 0, nOutputs)
	for i := 0; i < nOutputs && d.err == nil; i++ {
		r.OutPk = append(r.OutPk, d.hash())
	}
}

func (r *RctSigBase) encodeTo(e *encoder) error {
	e.uvarint(uint64(r.Type))
	if r.Type == RctTypeNull {
		return nil
	}
	e.uvarint(r.TxnFee)
	for _, p := range r.PseudoOuts {
		e.hash(p)
	}
	size := ecdhInfoSize(r.Type)
	for _, ec := range r.EcdhInfo {
		if len(ec) != size {
			return errors.Errorf("ecdh tuple must be %d bytes for ringct type %d, got %d", size, r.Type, len(ec))
		}
		e.bytes(ec)
	}
	for _, pk := range r.OutPk {
		e.hash(pk)
	}
	return nil
}

// TransactionPruned is the pruned part of a transaction as stored in
// txs_pruned: the prefix plus, for version 2, the RingCT signature
// base.
type TransactionPruned struct {
	Prefix  TransactionPrefix
	RctBase *RctSigBase
}

// MarshalRecord implements Record.
func (t *TransactionPruned) MarshalRecord() ([]byte, error) {
	e := &encoder{}
	if err := t.Prefix.encodeTo(e); err != nil {
		return nil, err
	}
	if t.Prefix.Version >= 2 {
		if t.RctBase == nil {
			return nil, errors.New("version 2 transaction without ringct base")
		}
		if err := t.RctBase.encodeTo(e); err != nil {
			return nil, err
		}
	}
	return e.finish(), nil
}

// UnmarshalRecord implements Record.
func (t *TransactionPruned) UnmarshalRecord(data []byte) error {
	d := newDecoder(data)
	t.Prefix.decodeFrom(d)
	t.RctBase = nil
	if d.err == nil && t.Prefix.Version >= 2 {
		base := &RctSigBase{}
		base.decodeFrom(d, len(t.Prefix.Inputs), len(t.Prefix.Outputs))
		t.RctBase = base
	}
	return d.finish()
}

// Transaction is a full transaction as stored in txpool_blob. For
// version 1 the per-input ring signatures are decoded; for version 2
// the prunable RingCT material (range proofs, CLSAG/MLSAG rings) is
// carried as raw bytes since the database never needs to look inside
// it.
type Transaction struct {
	Prefix      TransactionPrefix
	Signatures  [][]byte
	RctBase     *RctSigBase
	RctPrunable []byte
}

const ringSignatureSize = 64

// MarshalRecord implements Record.
func (t *Transaction) MarshalRecord() ([]byte, error) {
	e := &encoder{}
	if err := t.Prefix.encodeTo(e); err != nil {
		return nil, err
	}
	if t.Prefix.Version == 1 {
		for _, sig := range t.Signatures {
			if len(sig) != ringSignatureSize {
				return nil, errors.Errorf("ring signature must be %d bytes, got %d", ringSignatureSize, len(sig))
			}
			e.bytes(sig)
		}
		return e.finish(), nil
	}
	if t.RctBase == nil {
		return nil, errors.New("version 2 transaction without ringct base")
	}
	if err := t.RctBase.encodeTo(e); err != nil {
		return nil, err
	}
	e.bytes(t.RctPrunable)
	return e.finish(), nil
}

// UnmarshalRecord implements Record.
func (t *Transaction) UnmarshalRecord(data []byte) error {
	d := newDecoder(data)
	t.decodeFrom(d, false)
	return d.finish()
}

// decodeFrom reads a transaction from the stream. Embedded
// transactions (a block's miner transaction) cannot consume the
// remainder greedily, so only the Null signature type is accepted
// there; coinbase transactions never carry any other.
func (t *Transaction) decodeFrom(d *decoder, embedded bool) {
	t.Prefix.decodeFrom(d)
	t.Signatures = nil
	t.RctBase = nil
	t.RctPrunable = nil
	if d.err != nil {
		return
	}
	if t.Prefix.Version == 1 {
		for _, in := range t.Prefix.Inputs {
			if in.ToKey == nil {
				continue
			}
			for range in.ToKey.KeyOffsets {
				sig := d.bytes(ringSignatureSize)
				if d.err != nil {
					return
				}
				t.Signatures = append(t.Signatures, sig)
			}
		}
		return
	}
	base := &RctSigBase{}
	base.decodeFrom(d, len(t.Prefix.Inputs), len(t.Prefix.Outputs))
	t.RctBase = base
	if d.err != nil {
		return
	}
	if embedded {
		if base.Type != RctTypeNull {
			d.fail(errors.Errorf("embedded transaction carries ringct type %d", base.Type))
		}
		return
	}
	if base.Type != RctTypeNull {
		t.RctPrunable = d.remaining()
	}
}

// TxIndex maps a transaction hash to its compact identifiers.
type TxIndex struct {
	Hash       Hash
	TxID       uint64
	UnlockTime uint64
	BlockID    uint64
}

// MarshalRecord implements Record.
func (t *TxIndex) MarshalRecord() ([]byte, error) {
	e := &encoder{}
	e.hash(t.Hash)
	e.uint64(t.TxID)
	e.uint64(t.UnlockTime)
	e.uint64(t.BlockID)
	return e.finish(), nil
}

// UnmarshalRecord implements Record.
func (t *TxIndex) UnmarshalRecord(data []byte) error {
	d := newDecoder(data)
	t.Hash = d.hash()
	t.TxID = d.uint64()
	t.UnlockTime = d.uint64()
	t.BlockID = d.uint64()
	return d.finish()
}

// TxOutputIndices is the list of amount-local output indices claimed
// by one transaction, stored as a packed uint64 array.
type TxOutputIndices struct {
	Indices []uint64
}

// MarshalRecord implements Record.
func (t *TxOutputIndices) MarshalRecord() ([]byte, error) {
	e := &encoder{}
	for _, idx := range t.Indices {
		e.uint64(idx)
	}
	return e.finish(), nil
}

// UnmarshalRecord implements Record.
func (t *TxOutputIndices) UnmarshalRecord(data []byte) error {
	if len(data)%8 != 0 {
		return errors.Errorf("output index array length %d is not a multiple of 8", len(data))
	}
	d := newDecoder(data)
	t.Indices = make([]uint64, 0, len(data)/8)
	for i := 0; i < len(data)/8; i++ {
		t.Indices = append(t.Indices, d.uint64())
	}
	return d.finish()
}
