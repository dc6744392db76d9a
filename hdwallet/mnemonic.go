// Package hdwallet implements BIP-39 mnemonic handling and BIP-32/
// DIP-0013 key derivation for the bridge's two key families: the
// single-use asset-lock key (BIP-44-shaped) and the identity keys
// (DIP-0013-shaped).
package hdwallet

import (
	"errors"

	"github.com/tyler-smith/go-bip39"
)

// ErrInvalidMnemonic is returned when a mnemonic's checksum bits don't
// match its entropy, or its word count is not a BIP-39 length (12, 15,
// 18, 21 or 24).
var ErrInvalidMnemonic = errors.New("hdwallet: invalid mnemonic")

// Strength selects how many bits of entropy back a new mnemonic: 128
// bits yields 12 words, 256 bits yields 24 words. These are the only
// two strengths the bridge's key-backup UI exposes.
type Strength int

const (
	Strength12Words Strength = 128
	Strength24Words Strength = 256
)

// NewMnemonic generates a fresh BIP-39 mnemonic at the given strength
// using a cryptographically secure entropy source.
func NewMnemonic(strength Strength) (string, error) {
	entropy, err := bip39.NewEntropy(int(strength))
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

// ValidateMnemonic checks the checksum of a mnemonic phrase against the
// English BIP-39 wordlist.
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}

// SeedFromMnemonic derives the 64-byte BIP-39 seed from a mnemonic and
// optional passphrase: PBKDF2-HMAC-SHA512(mnemonic NFKD, "mnemonic"+
// passphrase, 2048 rounds, 64 bytes). Fails ErrInvalidMnemonic if the
// mnemonic's checksum doesn't validate.
func SeedFromMnemonic(mnemonic, passphrase string) ([]byte, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	return bip39.NewSeed(mnemonic, passphrase), nil
}
