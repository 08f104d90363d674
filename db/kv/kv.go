// Package kv implements the chain database over BoltDB: the table
// registry, cursor positioning, typed accessors and the write path.
package kv

import (
	"os"
	"path"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/monerokit/monerodb/db/iface"
)

var _ iface.Database = (*Store)(nil)

const (
	databaseFileName = "monerochain.db"
	// mapSizeBudget mirrors the reference environment's 1 GiB map
	// budget.
	mapSizeBudget = 1 << 30
)

// Config options for the chain db.
type Config struct {
	// ReadOnly opens the environment without write capability; every
	// write surface then fails with ErrReadOnly. No writer process may
	// coexist with a read-only open.
	ReadOnly bool
	// InitialMmapSize overrides the computed initial map size.
	InitialMmapSize int
}

// Store defines an implementation of the chain Database interface
// using BoltDB as the underlying persistent kv-store for the monerod
// schema.
type Store struct {
	db           *bolt.DB
	databasePath string
	readOnly     bool
}

// NewKVStore initializes a new boltDB key-value store at the directory
// path specified, opens or verifies the schema tables, and stores an
// open connection db object as a property of the Store struct.
func NewKVStore(dirPath string, cfg *Config) (*Store, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if len(allTables) > maxTableCount {
		return nil, errors.Errorf("schema declares %d tables, environment ceiling is %d", len(allTables), maxTableCount)
	}
	if !cfg.ReadOnly {
		if err := os.MkdirAll(dirPath, 0700); err != nil {
			return nil, err
		}
	}
	datafile := path.Join(dirPath, databaseFileName)
	mmapSize := cfg.InitialMmapSize
	if mmapSize == 0 {
		mmapSize = initialMmapSize(datafile)
	}
	boltDB, err := bolt.Open(datafile, 0600, &bolt.Options{
		Timeout:         1 * time.Second,
		InitialMmapSize: mmapSize,
		ReadOnly:        cfg.ReadOnly,
	})
	if err != nil {
		if err == bolt.ErrTimeout {
			return nil, errors.New("cannot obtain database lock, database may be in use by another process")
		}
		return nil, err
	}

	kv := &Store{db: boltDB, databasePath: dirPath, readOnly: cfg.ReadOnly}
	if cfg.ReadOnly {
		// A read-only transaction cannot create tables; they must all
		// be there already.
		err = kv.db.View(verifyTables)
	} else {
		err = kv.db.Update(createTables)
	}
	if err != nil {
		if closeErr := boltDB.Close(); closeErr != nil {
			log.WithError(closeErr).Error("Failed to close database after open error")
		}
		return nil, err
	}
	return kv, nil
}

// initialMmapSize sizes the initial map at the configured budget, or
// at the file size when the store already outgrew the budget.
func initialMmapSize(datafile string) int {
	if fi, err := os.Stat(datafile); err == nil && fi.Size() > mapSizeBudget {
		log.WithField("size", fi.Size()).Debug("Database exceeds map size budget, resizing")
		return int(fi.Size())
	}
	return mapSizeBudget
}

func createTables(tx *bolt.Tx) error {
	for _, desc := range allTables {
		if _, err := tx.CreateBucketIfNotExists(desc.name); err != nil {
			return errors.Wrapf(err, "could not create table %s", desc.name)
		}
	}
	return nil
}

func verifyTables(tx *bolt.Tx) error {
	for _, desc := range allTables {
		if tx.Bucket(desc.name) == nil {
			return errors.Wrap(errTableMissing, string(desc.name))
		}
	}
	return nil
}

// view invokes fn within a read transaction.
func (s *Store) view(fn func(*bolt.Tx) error) error {
	return s.db.View(fn)
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DatabasePath at which this database writes files.
func (s *Store) DatabasePath() string {
	return s.databasePath
}

// IsReadOnly reports whether the store was opened read-only.
func (s *Store) IsReadOnly() bool {
	return s.readOnly
}

// ClearDB removes the previously stored database in the data
// directory.
func (s *Store) ClearDB() error {
	if s.readOnly {
		return ErrReadOnly
	}
	datafile := path.Join(s.databasePath, databaseFileName)
	if _, err := os.Stat(datafile); os.IsNotExist(err) {
		return nil
	}
	log.WithField("database", datafile).Info("Removing database")
	return os.Remove(datafile)
}
