package codec

import "encoding/binary"

// PutUint8 appends a single byte.
func PutUint8(buf []byte, v uint8) []byte {
	return append(buf, v)
}

// PutUint16LE appends v as two little-endian bytes.
func PutUint16LE(buf []byte, v uint16) []byte {
	tmp := make([]byte, 2)
	binary.LittleEndian.PutUint16(tmp, v)
	return append(buf, tmp...)
}

// PutUint32LE appends v as four little-endian bytes.
func PutUint32LE(buf []byte, v uint32) []byte {
	tmp := make([]byte, 4)
	binary.LittleEndian.PutUint32(tmp, v)
	return append(buf, tmp...)
}

// PutInt32LE appends v as four little-endian bytes (two's complement).
func PutInt32LE(buf []byte, v int32) []byte {
	return PutUint32LE(buf, uint32(v))
}

// PutUint64LE appends v as eight little-endian bytes.
func PutUint64LE(buf []byte, v uint64) []byte {
	tmp := make([]byte, 8)
	binary.LittleEndian.PutUint64(tmp, v)
	return append(buf, tmp...)
}

// PutInt64LE appends v as eight little-endian bytes (two's complement).
func PutInt64LE(buf []byte, v int64) []byte {
	return PutUint64LE(buf, uint64(v))
}

// ReadUint16LE reads two little-endian bytes from the front of buf.
func ReadUint16LE(buf []byte) (uint16, error) {
	if len(buf) < 2 {
		return 0, errShortBuffer(2, len(buf))
	}
	return binary.LittleEndian.Uint16(buf), nil
}

// ReadUint32LE reads four little-endian bytes from the front of buf.
func ReadUint32LE(buf []byte) (uint32, error) {
	if len(buf) < 4 {
		return 0, errShortBuffer(4, len(buf))
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// ReadInt64LE reads eight little-endian bytes from the front of buf.
func ReadInt64LE(buf []byte) (int64, error) {
	if len(buf) < 8 {
		return 0, errShortBuffer(8, len(buf))
	}
	return int64(binary.LittleEndian.Uint64(buf)), nil
}

// ReadUint32LEAt reads four little-endian bytes starting at offset off.
func ReadUint32LEAt(buf []byte, off int) (uint32, error) {
	if off < 0 || off+4 > len(buf) {
		return 0, errShortBuffer(off+4, len(buf))
	}
	return binary.LittleEndian.Uint32(buf[off:]), nil
}
