package types

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

// HashSize is the length of every hash, key image, public key and
// commitment stored in the database.
const HashSize = 32

// Hash is a 32-byte value. Curve points (output keys, commitments,
// key images) share this representation since the database only moves
// them around structurally.
type Hash [HashSize]byte

// HashFromBytes converts a byte slice into a Hash, failing unless the
// slice is exactly 32 bytes long.
func HashFromBytes(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HashSize {
		return h, errors.Errorf("hash must be %d bytes, got %d", HashSize, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// Bytes returns the hash as a byte slice.
func (h Hash) Bytes() []byte {
	return h[:]
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}
