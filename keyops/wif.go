package keyops

import (
	"errors"

	"github.com/dashpay/asset-lock-bridge/codec"
	"github.com/dashpay/asset-lock-bridge/networkparams"
)

// ErrInvalidWIF covers malformed length, bad checksum, or a bad
// compression flag. The version prefix is not checked here.
var ErrInvalidWIF = errors.New("keyops: invalid WIF")

const wifCompressedSuffix = 0x01

// PrivateKeyToWIF encodes sk as base58check(net.WIFPrefix || sk ||
// (compressed ? 0x01 : "")).
func PrivateKeyToWIF(sk []byte, net networkparams.Params, compressed bool) (string, error) {
	if len(sk) != 32 {
		return "", ErrInvalidWIF
	}
	payload := make([]byte, 32, 33)
	copy(payload, sk)
	if compressed {
		payload = append(payload, wifCompressedSuffix)
	}
	return codec.Base58CheckEncode(net.WIFPrefix, payload), nil
}

// DecodedWIF is the result of parsing a WIF string.
type DecodedWIF struct {
	PrivateKey []byte
	Compressed bool
	Prefix     byte
}

// WIFToPrivateKey decodes a WIF string, independent of which network
// it claims to belong to — callers check Prefix against the session's
// network themselves (see FindMatchingKey, which bridgestate's dpns and
// manage paths call).
func WIFToPrivateKey(wif string) (*DecodedWIF, error) {
	payload, version, err := codec.Base58CheckDecode(wif)
	if err != nil {
		return nil, ErrInvalidWIF
	}
	switch len(payload) {
	case 33:
		if payload[32] != wifCompressedSuffix {
			return nil, ErrInvalidWIF
		}
		return &DecodedWIF{PrivateKey: payload[:32], Compressed: true, Prefix: version}, nil
	case 32:
		return &DecodedWIF{PrivateKey: payload, Compressed: false, Prefix: version}, nil
	default:
		return nil, ErrInvalidWIF
	}
}
