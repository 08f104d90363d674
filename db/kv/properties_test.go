package kv

import (
	"context"
	"testing"

	"github.com/monerokit/monerodb/encoding/bytesutil"
	"github.com/monerokit/monerodb/testing/require"
)

func TestStore_Properties(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	require.NoError(t, db.put(propertiesTable, versionKey, nil, bytesutil.Uint32ToBytesLittleEndian(5)))
	require.NoError(t, db.put(propertiesTable, pruningSeedKey, nil, bytesutil.Uint32ToBytesLittleEndian(0)))
	require.NoError(t, db.put(propertiesTable, maxBlockSizeKey, nil, bytesutil.Uint64ToBytesLittleEndian(600000)))

	version, err := db.DatabaseVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, uint32(5), version)

	seed, err := db.PruningSeed(ctx)
	require.NoError(t, err)
	require.Equal(t, uint32(0), seed)

	size, err := db.MaxBlockSize(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(600000), size)
}

func TestStore_Properties_Missing(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	_, err := db.DatabaseVersion(ctx)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Properties_BadWidth(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	require.NoError(t, db.put(propertiesTable, versionKey, nil, []byte{5, 0}))
	_, err := db.DatabaseVersion(ctx)
	require.ErrorContains(t, "want 4 bytes", err)
}
