package kv

import (
	"context"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"

	"github.com/monerokit/monerodb/encoding/bytesutil"
	"github.com/monerokit/monerodb/types"
)

// DatabaseVersion returns the schema version of the store; the current
// version is 5.
func (s *Store) DatabaseVersion(ctx context.Context) (uint32, error) {
	_, span := trace.StartSpan(ctx, "MoneroDB.DatabaseVersion")
	defer span.End()

	return s.propertyUint32(versionKey)
}

// PruningSeed returns the pruning seed of the store; 0 means unpruned.
func (s *Store) PruningSeed(ctx context.Context) (uint32, error) {
	_, span := trace.StartSpan(ctx, "MoneroDB.PruningSeed")
	defer span.End()

	return s.propertyUint32(pruningSeedKey)
}

// MaxBlockSize returns the recorded maximum block size.
func (s *Store) MaxBlockSize(ctx context.Context) (uint64, error) {
	_, span := trace.StartSpan(ctx, "MoneroDB.MaxBlockSize")
	defer span.End()

	raw, err := s.getRaw(propertiesTable, maxBlockSizeKey, nil, opSetKey)
	if err != nil {
		return 0, err
	}
	if len(raw) != 8 {
		return 0, &types.DecodeError{Record: "property", Err: errors.Errorf("want 8 bytes, got %d", len(raw))}
	}
	return bytesutil.BytesToUint64LittleEndian(raw), nil
}

func (s *Store) propertyUint32(key []byte) (uint32, error) {
	raw, err := s.getRaw(propertiesTable, key, nil, opSetKey)
	if err != nil {
		return 0, err
	}
	if len(raw) != 4 {
		return 0, &types.DecodeError{Record: "property", Err: errors.Errorf("want 4 bytes, got %d", len(raw))}
	}
	return bytesutil.BytesToUint32LittleEndian(raw), nil
}
