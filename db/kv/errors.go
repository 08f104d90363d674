package kv

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/monerokit/monerodb/types"
)

var (
	// ErrNotFound is returned when no record exists under the
	// requested key. Accessors surface it wrapped in a StorageError;
	// check with errors.Is.
	ErrNotFound = errors.New("record not found")
	// ErrReadOnly is returned by every write surface of a store opened
	// read-only.
	ErrReadOnly = errors.New("database is opened read-only")
	// ErrKeyExists is returned when a no-overwrite put hits an
	// existing record.
	ErrKeyExists = errors.New("record already exists")

	errTableMissing = errors.New("table missing from database")
)

// StorageError wraps a storage engine failure with the table and key
// it occurred on, so callers can log something actionable.
type StorageError struct {
	Table string
	Key   []byte
	Err   error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("table %s, key %#x: %v", e.Table, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ValueError reports a malformed caller input detected before the
// storage engine is touched.
type ValueError struct {
	Reason string
}

func (e *ValueError) Error() string {
	return "invalid input: " + e.Reason
}

// validateHash rejects hash inputs of the wrong length before they
// reach a 32-byte-keyed table.
func validateHash(h []byte) error {
	if len(h) != types.HashSize {
		return &ValueError{Reason: fmt.Sprintf("hash must be %d bytes, got %d", types.HashSize, len(h))}
	}
	return nil
}
