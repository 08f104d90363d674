// Package types defines the record types stored in a Monero chain
// database together with their binary codecs. Layouts follow the
// on-disk format of database version 5: fixed-width little-endian
// integers inside fixed-layout records, base-128 varints inside
// consensus-encoded blocks and transactions.
package types

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Record is implemented by every entity that can be stored in or read
// from the database.
type Record interface {
	MarshalRecord() ([]byte, error)
	UnmarshalRecord(data []byte) error
}

// DecodeError reports that a value's bytes do not match the expected
// binary layout of its record type.
type DecodeError struct {
	Record string
	Err    error
}

func (e *DecodeError) Error() string {
	return "decode " + e.Record + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

var (
	errShortBuffer   = errors.New("unexpected end of data")
	errTrailingBytes = errors.New("trailing bytes after record")
	errBadVarint     = errors.New("malformed varint")
)

// decoder consumes a record's bytes front to back. The first failure
// sticks; callers check err once via finish.
type decoder struct {
	buf []byte
	off int
	err error
}

func newDecoder(buf []byte) *decoder {
	return &decoder{buf: buf}
}

func (d *decoder) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

func (d *decoder) remainingLen() int {
	return len(d.buf) - d.off
}

func (d *decoder) bytes(n int) []byte {
	if d.err != nil {
		return nil
	}
	if d.remainingLen() < n {
		d.fail(errShortBuffer)
		return nil
	}
	out := make([]byte, n)
	copy(out, d.buf[d.off:d.off+n])
	d.off += n
	return out
}

func (d *decoder) byte() byte {
	if d.err != nil {
		return 0
	}
	if d.remainingLen() < 1 {
		d.fail(errShortBuffer)
		return 0
	}
	b := d.buf[d.off]
	d.off++
	return b
}

func (d *decoder) uint32() uint32 {
	if d.err != nil {
		return 0
	}
	if d.remainingLen() < 4 {
		d.fail(errShortBuffer)
		return 0
	}
	v := binary.LittleEndian.Uint32(d.buf[d.off:])
	d.off += 4
	return v
}

func (d *decoder) uint64() uint64 {
	if d.err != nil {
		return 0
	}
	if d.remainingLen() < 8 {
		d.fail(errShortBuffer)
		return 0
	}
	v := binary.LittleEndian.Uint64(d.buf[d.off:])
	d.off += 8
	return v
}

func (d *decoder) uvarint() uint64 {
	if d.err != nil {
		return 0
	}
	v, n := binary.Uvarint(d.buf[d.off:])
	if n <= 0 {
		d.fail(errBadVarint)
		return 0
	}
	d.off += n
	return v
}

// count reads a varint element count and sanity-checks it against the
// bytes left, given a minimum encoded size per element.
func (d *decoder) count(minElemSize int) int {
	v := d.uvarint()
	if d.err != nil {
		return 0
	}
	if v > uint64(d.remainingLen()/minElemSize) {
		d.fail(errors.Wrapf(errShortBuffer, "element count %d", v))
		return 0
	}
	return int(v)
}

func (d *decoder) hash() Hash {
	var h Hash
	if d.err != nil {
		return h
	}
	if d.remainingLen() < HashSize {
		d.fail(errShortBuffer)
		return h
	}
	copy(h[:], d.buf[d.off:])
	d.off += HashSize
	return h
}

// remaining consumes and returns everything left in the buffer.
func (d *decoder) remaining() []byte {
	if d.err != nil {
		return nil
	}
	out := make([]byte, d.remainingLen())
	copy(out, d.buf[d.off:])
	d.off = len(d.buf)
	return out
}

// finish returns the sticky error, or complains about unconsumed bytes.
func (d *decoder) finish() error {
	if d.err != nil {
		return d.err
	}
	if d.off != len(d.buf) {
		return errors.Wrapf(errTrailingBytes, "%d bytes", len(d.buf)-d.off)
	}
	return nil
}

type encoder struct {
	buf []byte
}

func (e *encoder) bytes(b []byte) {
	e.buf = append(e.buf, b...)
}

func (e *encoder) byte(b byte) {
	e.buf = append(e.buf, b)
}

func (e *encoder) uint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *encoder) uint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *encoder) uvarint(v uint64) {
	var b [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(b[:], v)
	e.buf = append(e.buf, b[:n]...)
}

func (e *encoder) hash(h Hash) {
	e.buf = append(e.buf, h[:]...)
}

func (e *encoder) finish() []byte {
	return e.buf
}
