// Package bytesutil defines helper methods for converting integers to
// byte slices.
package bytesutil

import "encoding/binary"

// Uint64ToBytesLittleEndian conversion.
func Uint64ToBytesLittleEndian(i uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, i)
	return buf
}

// Uint64ToBytesBigEndian conversion. Integer table keys are stored in
// this form so the storage engine's bytewise order matches numeric
// order.
func Uint64ToBytesBigEndian(i uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, i)
	return buf
}

// BytesToUint64LittleEndian conversion. Returns 0 if input is shorter
// than 8 bytes.
func BytesToUint64LittleEndian(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// BytesToUint64BigEndian conversion. Inverse of
// Uint64ToBytesBigEndian.
func BytesToUint64BigEndian(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// Uint32ToBytesLittleEndian conversion.
func Uint32ToBytesLittleEndian(i uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, i)
	return buf
}

// BytesToUint32LittleEndian conversion. Returns 0 if input is shorter
// than 4 bytes.
func BytesToUint32LittleEndian(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// ToBytes32 is a convenience method for converting a byte slice to a
// fixed-size byte array. This method will truncate the input if it is
// larger than 32 bytes.
func ToBytes32(x []byte) [32]byte {
	var y [32]byte
	copy(y[:], x)
	return y
}

// SafeCopyBytes will copy and return a non-nil byte slice, otherwise
// it returns nil.
func SafeCopyBytes(cp []byte) []byte {
	if cp != nil {
		copied := make([]byte, len(cp))
		copy(copied, cp)
		return copied
	}
	return nil
}
