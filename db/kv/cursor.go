package kv

import (
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/monerokit/monerodb/encoding/bytesutil"
)

// cursorOp names the three retrieval modes of the accessor layer.
// The reference schema drives these with raw engine op codes (0, 2 and
// 15); call sites here read as intent instead.
type cursorOp int

const (
	// opFirst positions at the smallest entry of the whole table.
	opFirst cursorOp = iota
	// opSetKey positions at an exact primary key. On a duplicate table
	// it lands on the first entry of that key's duplicate set.
	opSetKey
	// opDupSeek positions at an exact sub-key inside an exact primary
	// key's duplicate set.
	opDupSeek
)

// seek positions inside the transaction according to op and returns
// the value found. Returned bytes alias engine pages and are only
// valid until the transaction closes.
func seek(tx *bolt.Tx, desc tableDescriptor, key, sub []byte, op cursorOp) ([]byte, error) {
	bkt := tx.Bucket(desc.name)
	if bkt == nil {
		return nil, errors.Wrap(errTableMissing, string(desc.name))
	}
	if !desc.dup {
		switch op {
		case opFirst:
			if _, v := bkt.Cursor().First(); v != nil {
				return v, nil
			}
			return nil, ErrNotFound
		case opSetKey:
			if v := bkt.Get(key); v != nil {
				return v, nil
			}
			return nil, ErrNotFound
		}
		return nil, errors.Errorf("cursor op %d not valid on single-value table %s", op, desc.name)
	}

	var dupSet *bolt.Bucket
	switch op {
	case opFirst:
		// Entries of a duplicate table are nested duplicate sets; the
		// smallest entry lives in the first one.
		k, _ := bkt.Cursor().First()
		if k == nil {
			return nil, ErrNotFound
		}
		dupSet = bkt.Bucket(k)
	case opSetKey, opDupSeek:
		dupSet = bkt.Bucket(key)
	default:
		return nil, errors.Errorf("cursor op %d not valid on duplicate table %s", op, desc.name)
	}
	if dupSet == nil {
		return nil, ErrNotFound
	}
	if op == opDupSeek {
		if v := dupSet.Get(sub); v != nil {
			return v, nil
		}
		return nil, ErrNotFound
	}
	if _, v := dupSet.Cursor().First(); v != nil {
		return v, nil
	}
	return nil, ErrNotFound
}

// getRaw runs one read transaction scoped to the call and returns a
// copy of the value at the cursor position. Every failure, not-found
// included, comes back as a StorageError naming the table and key.
func (s *Store) getRaw(desc tableDescriptor, key, sub []byte, op cursorOp) ([]byte, error) {
	var out []byte
	err := s.view(func(tx *bolt.Tx) error {
		v, err := seek(tx, desc, key, sub, op)
		if err != nil {
			return err
		}
		out = bytesutil.SafeCopyBytes(v)
		return nil
	})
	if err != nil {
		return nil, &StorageError{Table: string(desc.name), Key: key, Err: err}
	}
	return out, nil
}

// entryCount returns the number of entries in a table; for a duplicate
// table, the size of one primary key's duplicate set.
func (s *Store) entryCount(desc tableDescriptor, key []byte) (uint64, error) {
	var count uint64
	err := s.view(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(desc.name)
		if bkt == nil {
			return errors.Wrap(errTableMissing, string(desc.name))
		}
		if desc.dup {
			bkt = bkt.Bucket(key)
			if bkt == nil {
				// No duplicate set yet means zero entries.
				return nil
			}
		}
		count = uint64(bkt.Stats().KeyN)
		return nil
	})
	if err != nil {
		return 0, &StorageError{Table: string(desc.name), Key: key, Err: err}
	}
	return count, nil
}
