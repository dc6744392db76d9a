// Package codec implements the binary primitives the bridge needs to
// assemble and parse raw Dash transactions: Bitcoin-style compact-size
// integers, fixed-width little-endian integers, hex, and base58check.
package codec

import (
	"encoding/binary"
	"fmt"
	"io"
)

// WriteCompactSize appends n encoded as a Bitcoin/Dash compact-size
// (varint) integer to buf and returns the result.
func WriteCompactSize(buf []byte, n uint64) []byte {
	switch {
	case n < 0xfd:
		return append(buf, byte(n))
	case n <= 0xffff:
		tmp := make([]byte, 3)
		tmp[0] = 0xfd
		binary.LittleEndian.PutUint16(tmp[1:], uint16(n))
		return append(buf, tmp...)
	case n <= 0xffffffff:
		tmp := make([]byte, 5)
		tmp[0] = 0xfe
		binary.LittleEndian.PutUint32(tmp[1:], uint32(n))
		return append(buf, tmp...)
	default:
		tmp := make([]byte, 9)
		tmp[0] = 0xff
		binary.LittleEndian.PutUint64(tmp[1:], n)
		return append(buf, tmp...)
	}
}

// ReadCompactSize decodes a compact-size integer from the front of buf,
// returning its value and the number of consumed bytes.
func ReadCompactSize(buf []byte) (uint64, int, error) {
	if len(buf) == 0 {
		return 0, 0, io.ErrUnexpectedEOF
	}
	first := buf[0]
	switch {
	case first < 0xfd:
		return uint64(first), 1, nil
	case first == 0xfd:
		if len(buf) < 3 {
			return 0, 0, io.ErrUnexpectedEOF
		}
		return uint64(binary.LittleEndian.Uint16(buf[1:3])), 3, nil
	case first == 0xfe:
		if len(buf) < 5 {
			return 0, 0, io.ErrUnexpectedEOF
		}
		return uint64(binary.LittleEndian.Uint32(buf[1:5])), 5, nil
	default:
		if len(buf) < 9 {
			return 0, 0, io.ErrUnexpectedEOF
		}
		return binary.LittleEndian.Uint64(buf[1:9]), 9, nil
	}
}

// WriteVarBytes length-prefixes data with a compact-size integer and
// appends both to buf.
func WriteVarBytes(buf []byte, data []byte) []byte {
	buf = WriteCompactSize(buf, uint64(len(data)))
	return append(buf, data...)
}

// ReadVarBytes reads a compact-size length followed by that many bytes
// from the front of buf.
func ReadVarBytes(buf []byte) ([]byte, int, error) {
	n, consumed, err := ReadCompactSize(buf)
	if err != nil {
		return nil, 0, err
	}
	end := consumed + int(n)
	if end > len(buf) || end < consumed {
		return nil, 0, fmt.Errorf("codec: var bytes length %d exceeds remaining buffer", n)
	}
	return buf[consumed:end], end, nil
}
