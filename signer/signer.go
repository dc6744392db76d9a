// Package signer produces the sighash preimage, DER/low-S ECDSA
// signature, and scriptSig for a Dash transaction input, using the
// same legacy (non-segwit) signing scheme as standard P2PKH spends —
// Type-8 asset-lock inputs sign identically, only the outer
// transaction's serialization differs.
package signer

import (
	"github.com/btcsuite/btcd/txscript"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/dashpay/asset-lock-bridge/codec"
	"github.com/dashpay/asset-lock-bridge/hashing"
	"github.com/dashpay/asset-lock-bridge/keyops"
	"github.com/dashpay/asset-lock-bridge/txbuilder"
	"github.com/dashpay/asset-lock-bridge/utxo"
)

// Preimage builds the SIGHASH_ALL preimage for input index i of tx,
// using prevScriptPubKey as the scriptCode: clone tx, clear every
// input's scriptSig, set input i's scriptSig to prevScriptPubKey, then
// append the sighash type.
func Preimage(tx *txbuilder.Transaction, inputIndex int, prevScriptPubKey []byte) []byte {
	clone := cloneForSighash(tx, inputIndex, prevScriptPubKey)
	buf := clone.Serialize()
	return codec.PutUint32LE(buf, txbuilder.SighashAll)
}

func cloneForSighash(tx *txbuilder.Transaction, inputIndex int, scriptCode []byte) *txbuilder.Transaction {
	clone := &txbuilder.Transaction{
		Version:      tx.Version,
		TxType:       tx.TxType,
		Vin:          make([]txbuilder.TxIn, len(tx.Vin)),
		Vout:         tx.Vout,
		LockTime:     tx.LockTime,
		ExtraPayload: tx.ExtraPayload,
	}
	for i, in := range tx.Vin {
		clone.Vin[i] = txbuilder.TxIn{Outpoint: in.Outpoint, Sequence: in.Sequence}
		if i == inputIndex {
			clone.Vin[i].ScriptSig = scriptCode
		}
	}
	return clone
}

// Sighash is hash256(Preimage(...)).
func Sighash(tx *txbuilder.Transaction, inputIndex int, prevScriptPubKey []byte) [32]byte {
	return hashing.Hash256(Preimage(tx, inputIndex, prevScriptPubKey))
}

// SignInput signs input i of tx against its previous output's
// scriptPubKey, RFC6979-deterministic with enforced low-S, DER
// encoded, and assembles the resulting scriptSig (push(sig||SIGHASH_ALL)
// push(pubkey)).
func SignInput(tx *txbuilder.Transaction, inputIndex int, prevScriptPubKey []byte, kp *keyops.KeyPair) ([]byte, error) {
	sighash := Sighash(tx, inputIndex, prevScriptPubKey)

	priv := secp256k1.PrivKeyFromBytes(kp.PrivateKey)
	sig := ecdsa.Sign(priv, sighash[:])

	der := sig.Serialize()
	der = append(der, byte(txbuilder.SighashAll))

	return assembleScriptSig(der, kp.PublicKey), nil
}

func assembleScriptSig(sigWithHashType, pubKey []byte) []byte {
	script, err := txscript.NewScriptBuilder().
		AddData(sigWithHashType).
		AddData(pubKey).
		Script()
	if err != nil {
		panic(err) // signature/pubkey lengths are always well under OP_PUSHDATA1
	}
	return script
}

// SignTransaction signs every input of tx against the matching entry
// in prevOutputs (by index), mutating and returning tx. The bridge
// only ever calls this with a single input, so the loop runs once —
// it is written generally because the signature sub-structures (e.g.
// the asset-lock private key signing InstantSend-adjacent material)
// are naturally multi-input shaped in the wider Dash wallet ecosystem.
func SignTransaction(tx *txbuilder.Transaction, prevOutputs []*utxo.UTXO, kp *keyops.KeyPair) (*txbuilder.Transaction, error) {
	for i, prev := range prevOutputs {
		scriptSig, err := SignInput(tx, i, prev.ScriptPubKey, kp)
		if err != nil {
			return nil, err
		}
		tx.Vin[i].ScriptSig = scriptSig
	}
	return tx, nil
}
