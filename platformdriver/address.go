package platformdriver

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/dashpay/asset-lock-bridge/networkparams"
)

// InvalidPlatformAddress is returned when a bech32m string fails to
// decode, or decodes under an HRP that doesn't match the session's
// network — checked before any key material is touched, per the
// HRP-enforcement invariant.
type InvalidPlatformAddress struct {
	Address string
	Reason  string
}

func (e *InvalidPlatformAddress) Error() string {
	return fmt.Sprintf("platformdriver: invalid platform address %q: %s", e.Address, e.Reason)
}

// DecodeAddress bech32m-decodes address and requires its HRP to equal
// net.PlatformHRP, failing fast before any deposit polling or key
// derivation happens for the wrong network. DecodeGeneric (rather than
// DecodeNoLimit) is required here: DecodeNoLimit accepts either the
// legacy bech32 (Version0) or bech32m (VersionM) checksum and discards
// which one matched, so it would silently accept a Platform address
// encoded with the wrong checksum.
func DecodeAddress(address string, net networkparams.Params) ([]byte, error) {
	hrp, data, version, err := bech32.DecodeGeneric(address)
	if err != nil {
		return nil, &InvalidPlatformAddress{Address: address, Reason: err.Error()}
	}
	if version != bech32.VersionM {
		return nil, &InvalidPlatformAddress{
			Address: address,
			Reason:  "address is encoded with bech32, not bech32m",
		}
	}
	if hrp != net.PlatformHRP {
		return nil, &InvalidPlatformAddress{
			Address: address,
			Reason:  fmt.Sprintf("HRP %q does not match network HRP %q", hrp, net.PlatformHRP),
		}
	}
	converted, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, &InvalidPlatformAddress{Address: address, Reason: err.Error()}
	}
	return converted, nil
}

// EncodeAddress bech32m-encodes payload under net's Platform HRP.
func EncodeAddress(payload []byte, net networkparams.Params) (string, error) {
	converted, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.EncodeM(net.PlatformHRP, converted)
}
