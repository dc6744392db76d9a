package codec

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// Base58CheckEncode encodes version||payload with a 4-byte
// double-SHA256 checksum suffix, matching Bitcoin/Dash's Base58Check.
func Base58CheckEncode(version byte, payload []byte) string {
	return base58.CheckEncode(payload, version)
}

// Base58CheckDecode reverses Base58CheckEncode, returning the decoded
// payload and its version byte.
func Base58CheckDecode(s string) (payload []byte, version byte, err error) {
	payload, version, err = base58.CheckDecode(s)
	if err != nil {
		return nil, 0, fmt.Errorf("codec: base58check decode: %w", err)
	}
	return payload, version, nil
}
