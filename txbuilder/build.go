package txbuilder

import (
	"errors"

	"github.com/btcsuite/btcd/txscript"

	"github.com/dashpay/asset-lock-bridge/hashing"
	"github.com/dashpay/asset-lock-bridge/utxo"
)

// ErrInsufficientFunds is returned when the UTXO's value doesn't cover
// the fee.
var ErrInsufficientFunds = errors.New("txbuilder: UTXO value does not cover fee")

// BurnScript returns OP_RETURN push-0-bytes, Dash's layer-1 burn
// output script for asset locks. txscript's opcode set is coin-agnostic
// at this level, so it builds Dash's scripts the same way it builds
// Bitcoin's.
func BurnScript() []byte {
	script, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_RETURN).
		AddData(nil). // canonicalizes to OP_0, matching Dash's burn script exactly
		Script()
	if err != nil {
		panic(err) // fixed, always-valid script
	}
	return script
}

// P2PKHScript returns the standard pay-to-public-key-hash locking
// script for a 20-byte hash160.
func P2PKHScript(hash160 [20]byte) []byte {
	script, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_DUP).
		AddOp(txscript.OP_HASH160).
		AddData(hash160[:]).
		AddOp(txscript.OP_EQUALVERIFY).
		AddOp(txscript.OP_CHECKSIG).
		Script()
	if err != nil {
		panic(err) // fixed, always-valid script
	}
	return script
}

// BuildAssetLockTx constructs the Type-8 transaction burning u's value
// (minus fee) into a single credit output paid to assetLockPubKey.
//
// Policy: exactly one input, one wire output (the OP_RETURN burn), no
// change output — the entire lockAmount is accounted for by the burn
// output and mirrored by the payload's credit output.
func BuildAssetLockTx(u *utxo.UTXO, assetLockPubKey []byte, feeDuffs int64) (*Transaction, error) {
	lockAmount := u.Value - feeDuffs
	if lockAmount <= 0 {
		return nil, ErrInsufficientFunds
	}

	outpoint, err := OutpointFromDisplayTxID(u.TxID, u.Vout)
	if err != nil {
		return nil, err
	}

	vin := []TxIn{{
		Outpoint:  outpoint,
		ScriptSig: nil, // filled in by the signer
		Sequence:  0xffffffff,
	}}

	vout := []TxOut{{
		Value:        lockAmount,
		ScriptPubKey: BurnScript(),
	}}

	creditHash := hashing.Hash160(assetLockPubKey)
	payload := AssetLockPayload{
		Version: 1,
		CreditOutputs: []TxOut{{
			Value:        lockAmount,
			ScriptPubKey: P2PKHScript(creditHash),
		}},
	}

	return &Transaction{
		Version:      AssetLockTxVersion,
		TxType:       AssetLockTxType,
		Vin:          vin,
		Vout:         vout,
		LockTime:     0,
		ExtraPayload: payload.Serialize(),
	}, nil
}
