package bytesutil_test

import (
	"testing"

	"github.com/monerokit/monerodb/encoding/bytesutil"
	"github.com/monerokit/monerodb/testing/assert"
)

func TestUint64RoundTrips(t *testing.T) {
	values := []uint64{0, 1, 255, 256, 1 << 32, 1<<64 - 1}
	for _, v := range values {
		assert.Equal(t, v, bytesutil.BytesToUint64BigEndian(bytesutil.Uint64ToBytesBigEndian(v)))
		assert.Equal(t, v, bytesutil.BytesToUint64LittleEndian(bytesutil.Uint64ToBytesLittleEndian(v)))
	}
}

func TestBigEndianPreservesOrder(t *testing.T) {
	// 255 < 256 numerically must hold bytewise too.
	a := bytesutil.Uint64ToBytesBigEndian(255)
	b := bytesutil.Uint64ToBytesBigEndian(256)
	for i := range a {
		if a[i] != b[i] {
			if a[i] > b[i] {
				t.Fatalf("big endian encoding of 255 sorts after 256: %v vs %v", a, b)
			}
			break
		}
	}
}

func TestToBytes32(t *testing.T) {
	got := bytesutil.ToBytes32([]byte{1, 2, 3})
	assert.Equal(t, byte(1), got[0])
	assert.Equal(t, byte(3), got[2])
	assert.Equal(t, byte(0), got[31])
}
