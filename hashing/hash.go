// Package hashing implements the single/double SHA-256 and hash160
// primitives used throughout the bridge's address and transaction-id
// derivations.
package hashing

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // still the correct primitive for hash160
)

// Sha256 returns the single SHA-256 digest of data.
func Sha256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// Hash256 returns SHA-256(SHA-256(data)), Dash/Bitcoin's "double hash",
// used for transaction ids and Base58Check checksums.
func Hash256(data []byte) [32]byte {
	first := sha256.Sum256(data)
	return sha256.Sum256(first[:])
}

// Hash160 returns RIPEMD-160(SHA-256(data)), used to turn a public key
// into the 20-byte payload of a P2PKH address.
func Hash160(data []byte) [20]byte {
	shaDigest := sha256.Sum256(data)
	ripemd := ripemd160.New()
	ripemd.Write(shaDigest[:])
	var out [20]byte
	copy(out[:], ripemd.Sum(nil))
	return out
}
