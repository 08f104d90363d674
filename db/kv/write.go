package kv

import (
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

// put inserts one record inside its own write transaction. See putTx
// for the no-overwrite contract.
func (s *Store) put(desc tableDescriptor, key, sub, value []byte) error {
	if s.readOnly {
		return errors.Wrapf(ErrReadOnly, "table %s", desc.name)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return putTx(tx, desc, key, sub, value)
	})
}

// putTx inserts one record into an open write transaction without
// overwriting: an existing record under the same key (and sub-key, on
// duplicate tables) fails with ErrKeyExists. Callers needing a
// multi-record atomic write run several putTx inside one transaction.
func putTx(tx *bolt.Tx, desc tableDescriptor, key, sub, value []byte) error {
	bkt := tx.Bucket(desc.name)
	if bkt == nil {
		return &StorageError{Table: string(desc.name), Key: key, Err: errTableMissing}
	}
	target, k := bkt, key
	if desc.dup {
		dupSet, err := bkt.CreateBucketIfNotExists(key)
		if err != nil {
			return &StorageError{Table: string(desc.name), Key: key, Err: err}
		}
		target, k = dupSet, sub
	}
	if existing := target.Get(k); existing != nil {
		return &StorageError{Table: string(desc.name), Key: key, Err: ErrKeyExists}
	}
	if err := target.Put(k, value); err != nil {
		return &StorageError{Table: string(desc.name), Key: key, Err: err}
	}
	return nil
}
