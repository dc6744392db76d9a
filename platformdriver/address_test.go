package platformdriver

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dashpay/asset-lock-bridge/networkparams"
)

func TestEncodeDecodeAddressRoundTrip(t *testing.T) {
	testnet := networkparams.For("testnet")
	payload := make([]byte, 20)
	for i := range payload {
		payload[i] = byte(i)
	}

	addr, err := EncodeAddress(payload, testnet)
	require.NoError(t, err)
	assert.Equal(t, "tdash1", addr[:6])

	decoded, err := DecodeAddress(addr, testnet)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestDecodeAddressRejectsHRPMismatch(t *testing.T) {
	mainnet := networkparams.For("mainnet")
	testnet := networkparams.For("testnet")
	payload := make([]byte, 20)

	addr, err := EncodeAddress(payload, mainnet)
	require.NoError(t, err)

	_, err = DecodeAddress(addr, testnet)
	require.Error(t, err)
	var invalidErr *InvalidPlatformAddress
	assert.ErrorAs(t, err, &invalidErr)
}

func TestDecodeAddressRejectsMalformedInput(t *testing.T) {
	testnet := networkparams.For("testnet")
	_, err := DecodeAddress("not-a-valid-bech32-address", testnet)
	assert.Error(t, err)
}

func TestDecodeAddressRejectsLegacyBech32Checksum(t *testing.T) {
	testnet := networkparams.For("testnet")
	payload := make([]byte, 20)

	converted, err := bech32.ConvertBits(payload, 8, 5, true)
	require.NoError(t, err)
	legacy, err := bech32.Encode(testnet.PlatformHRP, converted)
	require.NoError(t, err)

	_, err = DecodeAddress(legacy, testnet)
	require.Error(t, err)
	var invalidErr *InvalidPlatformAddress
	assert.ErrorAs(t, err, &invalidErr)
}
