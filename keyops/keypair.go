// Package keyops implements secp256k1 key generation, WIF encoding,
// P2PKH address derivation, and the key-matching rules the state
// machine uses to validate a user-supplied private key against an
// identity's on-chain public keys.
package keyops

import (
	"bytes"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/dashpay/asset-lock-bridge/codec"
	"github.com/dashpay/asset-lock-bridge/hashing"
	"github.com/dashpay/asset-lock-bridge/networkparams"
)

// ErrInvalidPrivateKey is returned for a scalar outside [1, n-1].
var ErrInvalidPrivateKey = errors.New("keyops: private scalar out of range")

// KeyPair is a secp256k1 keypair: a 32-byte private scalar and its
// 33-byte compressed public key.
type KeyPair struct {
	PrivateKey []byte // 32 bytes, 0 < k < n
	PublicKey  []byte // 33 bytes, 0x02/0x03 prefix
}

// GenerateKeyPair produces a cryptographically random keypair.
func GenerateKeyPair() (*KeyPair, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	return fromBtcecPrivate(priv), nil
}

// KeyPairFromPrivateKey rebuilds a KeyPair from a raw 32-byte scalar,
// validating it lies in [1, n-1].
func KeyPairFromPrivateKey(sk []byte) (*KeyPair, error) {
	if len(sk) != 32 {
		return nil, ErrInvalidPrivateKey
	}
	priv, pub := btcec.PrivKeyFromBytes(sk)
	// PrivKeyFromBytes reduces sk mod n, so a scalar >= n serializes
	// back to different bytes.
	if priv == nil || isZero(sk) || !bytes.Equal(priv.Serialize(), sk) {
		return nil, ErrInvalidPrivateKey
	}
	_ = pub
	return fromBtcecPrivate(priv), nil
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

func fromBtcecPrivate(priv *btcec.PrivateKey) *KeyPair {
	return &KeyPair{
		PrivateKey: priv.Serialize(),
		PublicKey:  priv.PubKey().SerializeCompressed(),
	}
}

// BtcecPrivateKey returns the btcec representation, needed by the
// signer package.
func (kp *KeyPair) BtcecPrivateKey() *btcec.PrivateKey {
	priv, _ := btcec.PrivKeyFromBytes(kp.PrivateKey)
	return priv
}

// Hash160 returns hash160(compressed pubkey), the payload of a P2PKH
// address and of a PAY_TO_ADDRESS script.
func (kp *KeyPair) Hash160() [20]byte {
	return hashing.Hash160(kp.PublicKey)
}

// Address derives the P2PKH address for this keypair on the given
// network: base58check(net.AddressVersion || hash160(pubkey)).
func (kp *KeyPair) Address(net networkparams.Params) string {
	h := kp.Hash160()
	return codec.Base58CheckEncode(net.AddressVersion, h[:])
}
