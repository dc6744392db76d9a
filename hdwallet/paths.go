package hdwallet

import "fmt"

// AssetLockPath returns the BIP-44-shaped derivation indices for the
// bridge's single-use asset-lock key: m/44'/{coinType}'/0'/0/0.
func AssetLockPath(coinType uint32) []uint32 {
	return []uint32{
		hardened(44),
		hardened(coinType),
		hardened(0),
		0,
		0,
	}
}

// AssetLockPathString renders AssetLockPath in human-readable form.
func AssetLockPathString(coinType uint32) string {
	return fmt.Sprintf("m/44'/%d'/0'/0/0", coinType)
}

// IdentityKeyPath returns the DIP-0013 derivation indices for a
// Platform identity key: m/9'/{coinType}'/5'/0'/0'/{identityIndex}'/{keyIndex}'.
// Every level from the fifth component on is hardened; this is
// load-bearing for compatibility with other DIP-0013 wallets recovering
// from the same mnemonic — it must never be "simplified" to a
// non-hardened suffix.
func IdentityKeyPath(coinType, identityIndex, keyIndex uint32) []uint32 {
	return []uint32{
		hardened(9),
		hardened(coinType),
		hardened(5),
		hardened(0),
		hardened(0),
		hardened(identityIndex),
		hardened(keyIndex),
	}
}

// IdentityKeyPathString renders IdentityKeyPath in human-readable form.
func IdentityKeyPathString(coinType, identityIndex, keyIndex uint32) string {
	return fmt.Sprintf("m/9'/%d'/5'/0'/0'/%d'/%d'", coinType, identityIndex, keyIndex)
}
