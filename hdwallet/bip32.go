package hdwallet

import (
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

// ErrDerivationOverflow is returned when a derived child's private
// scalar would be zero or >= the curve order. BIP-32 callers are
// expected to retry at the next index; the probability is ~2^-127 so
// callers hitting this in practice have a bug elsewhere.
var ErrDerivationOverflow = errors.New("hdwallet: derived child key out of range, retry next index")

// hardened turns a plain index into its hardened-derivation form.
func hardened(i uint32) uint32 {
	return i + hdkeychain.HardenedKeyStart
}

// Master derives the BIP-32 master extended key from a BIP-39 seed.
// The chain params only affect the extended key's base58 serialization
// version bytes (never produced here); mainnet params are used
// unconditionally since the bridge derives raw scalars, not xprv
// strings.
func Master(seed []byte) (*hdkeychain.ExtendedKey, error) {
	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, translateDeriveErr(err)
	}
	return key, nil
}

// DerivePath walks an extended key through a sequence of child
// indices, each already encoded with the hardened bit if required.
func DerivePath(master *hdkeychain.ExtendedKey, indices []uint32) (*hdkeychain.ExtendedKey, error) {
	key := master
	for _, idx := range indices {
		var err error
		key, err = key.Derive(idx)
		if err != nil {
			return nil, translateDeriveErr(err)
		}
	}
	return key, nil
}

func translateDeriveErr(err error) error {
	if errors.Is(err, hdkeychain.ErrInvalidChild) {
		return ErrDerivationOverflow
	}
	return err
}

// PrivateKey extracts the secp256k1 private key from a leaf extended
// key.
func PrivateKey(leaf *hdkeychain.ExtendedKey) (*btcec.PrivateKey, error) {
	return leaf.ECPrivKey()
}
