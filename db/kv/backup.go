package kv

import (
	"context"
	"fmt"
	"os"
	"path"

	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

const backupsDirectoryName = "backups"

// Backup the database to the datadir backup directory.
// Example for a backup at height 345: $DATADIR/backups/monerochain_at_height_000000345.backup
func (s *Store) Backup(ctx context.Context) error {
	ctx, span := trace.StartSpan(ctx, "MoneroDB.Backup")
	defer span.End()

	backupsDir := path.Join(s.databasePath, backupsDirectoryName)
	height, err := s.BlockchainHeight(ctx)
	if err != nil {
		return err
	}
	// Ensure the backups directory exists.
	if err := os.MkdirAll(backupsDir, 0700); err != nil {
		return err
	}
	backupPath := path.Join(backupsDir, fmt.Sprintf("monerochain_at_height_%09d.backup", height))
	log.WithField("backup", backupPath).Info("Writing backup database.")
	return s.db.View(func(tx *bolt.Tx) error {
		return tx.CopyFile(backupPath, 0666)
	})
}
