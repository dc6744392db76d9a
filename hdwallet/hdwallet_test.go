package hdwallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dashpay/asset-lock-bridge/keyops"
	"github.com/dashpay/asset-lock-bridge/networkparams"
)

const testVectorMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func deriveAssetLockKey(t *testing.T, mnemonic string, net networkparams.Params) *keyops.KeyPair {
	seed, err := SeedFromMnemonic(mnemonic, "")
	require.NoError(t, err)
	master, err := Master(seed)
	require.NoError(t, err)
	leaf, err := DerivePath(master, AssetLockPath(net.BIP44CoinType))
	require.NoError(t, err)
	priv, err := PrivateKey(leaf)
	require.NoError(t, err)
	kp, err := keyops.KeyPairFromPrivateKey(priv.Serialize())
	require.NoError(t, err)
	return kp
}

func TestHDDeterminism(t *testing.T) {
	mainnet := networkparams.For("mainnet")
	a := deriveAssetLockKey(t, testVectorMnemonic, mainnet)
	b := deriveAssetLockKey(t, testVectorMnemonic, mainnet)
	assert.Equal(t, a.PrivateKey, b.PrivateKey)
}

func TestHDKeyVectorMainnetAddressPrefix(t *testing.T) {
	mainnet := networkparams.For("mainnet")
	kp := deriveAssetLockKey(t, testVectorMnemonic, mainnet)
	addr := kp.Address(mainnet)
	assert.Equal(t, byte('X'), addr[0])
}

func TestHDKeyVectorTestnetAddressPrefix(t *testing.T) {
	testnet := networkparams.For("testnet")
	kp := deriveAssetLockKey(t, testVectorMnemonic, testnet)
	addr := kp.Address(testnet)
	assert.Equal(t, byte('y'), addr[0])
}

func TestCoinTypeChangesDerivedKey(t *testing.T) {
	mainnet := networkparams.For("mainnet")
	testnet := networkparams.For("testnet")
	a := deriveAssetLockKey(t, testVectorMnemonic, mainnet)
	b := deriveAssetLockKey(t, testVectorMnemonic, testnet)
	assert.NotEqual(t, a.PrivateKey, b.PrivateKey)
}

func TestIdentityKeyPathIsFullyHardenedFromFifthLevel(t *testing.T) {
	path := IdentityKeyPath(5, 2, 3)
	require.Len(t, path, 7)
	for _, idx := range path {
		assert.GreaterOrEqual(t, idx, uint32(1<<31))
	}
	assert.Equal(t, "m/9'/5'/5'/0'/0'/2'/3'", IdentityKeyPathString(5, 2, 3))
}

func TestValidateMnemonicRejectsGarbage(t *testing.T) {
	assert.False(t, ValidateMnemonic("not a real mnemonic at all"))
	assert.True(t, ValidateMnemonic(testVectorMnemonic))
}

func TestNewMnemonicWordCount(t *testing.T) {
	m12, err := NewMnemonic(Strength12Words)
	require.NoError(t, err)
	assert.Len(t, splitWords(m12), 12)

	m24, err := NewMnemonic(Strength24Words)
	require.NoError(t, err)
	assert.Len(t, splitWords(m24), 24)
}

func splitWords(s string) []string {
	var words []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ' ' {
			if i > start {
				words = append(words, s[start:i])
			}
			start = i + 1
		}
	}
	return words
}
