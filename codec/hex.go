package codec

import (
	"encoding/hex"
	"fmt"
)

// EncodeHex lowercase-encodes b.
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// DecodeHex parses s case-insensitively, rejecting odd-length input.
func DecodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("codec: hex string %q has odd length", s)
	}
	return hex.DecodeString(s)
}

// Reverse returns a new slice with b's bytes in reverse order. Used to
// convert transaction ids between display order (big-endian-ish, as
// printed by explorers) and internal wire order.
func Reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
