// Package txbuilder assembles Dash Type-8 ("asset lock") special
// transactions: the single input/output shape the bridge burns a UTXO
// through, its exact wire serialization, and its scripts.
//
// This does not build on btcsuite/btcd/wire.MsgTx: Dash's special
// transactions pack the type into the version word and append a
// length-prefixed extra payload after the locktime, neither of which
// wire.MsgTx's Bitcoin-shaped serializer supports. See DESIGN.md for
// the full rationale.
package txbuilder

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/dashpay/asset-lock-bridge/codec"
	"github.com/dashpay/asset-lock-bridge/hashing"
)

const (
	// AssetLockTxVersion is the fixed version field of a Type-8 tx.
	AssetLockTxVersion uint16 = 3
	// AssetLockTxType is Dash's "asset lock" special transaction type.
	AssetLockTxType uint16 = 8
	// SighashAll is the only sighash flag the bridge ever uses.
	SighashAll uint32 = 1
)

// Outpoint references a previous output: the internal (wire) byte
// order txid and the output index. chainhash.Hash stores the raw hash
// bytes and reverses them on demand in String(), so it is the natural
// carrier for this internal-vs-display distinction.
type Outpoint struct {
	TxID chainhash.Hash
	Vout uint32
}

// OutpointFromDisplayTxID builds an Outpoint from a display-order
// (explorer-style) hex txid.
func OutpointFromDisplayTxID(displayTxIDHex string, vout uint32) (Outpoint, error) {
	h, err := chainhash.NewHashFromStr(displayTxIDHex)
	if err != nil {
		return Outpoint{}, err
	}
	return Outpoint{TxID: *h, Vout: vout}, nil
}

func (o Outpoint) serialize(buf []byte) []byte {
	buf = append(buf, o.TxID[:]...)
	return codec.PutUint32LE(buf, o.Vout)
}

// TxIn is one transaction input.
type TxIn struct {
	Outpoint  Outpoint
	ScriptSig []byte
	Sequence  uint32
}

func (in *TxIn) serialize(buf []byte) []byte {
	buf = in.Outpoint.serialize(buf)
	buf = codec.WriteVarBytes(buf, in.ScriptSig)
	return codec.PutUint32LE(buf, in.Sequence)
}

// TxOut is one transaction output: a value in duffs and a locking
// script. The same shape serializes both wire outputs and
// AssetLockPayload credit outputs.
type TxOut struct {
	Value        int64
	ScriptPubKey []byte
}

func (o *TxOut) serialize(buf []byte) []byte {
	buf = codec.PutInt64LE(buf, o.Value)
	return codec.WriteVarBytes(buf, o.ScriptPubKey)
}

// AssetLockPayload is the Type-8 extra payload: a version byte and the
// ordered list of credit outputs describing how the burned value
// materializes as Platform credits.
type AssetLockPayload struct {
	Version       uint8
	CreditOutputs []TxOut
}

// Serialize encodes the payload: version u8, compact-size count, then
// each credit output serialized as value||varbytes(script).
func (p *AssetLockPayload) Serialize() []byte {
	buf := make([]byte, 0, 1+1+len(p.CreditOutputs)*34)
	buf = codec.PutUint8(buf, p.Version)
	buf = codec.WriteCompactSize(buf, uint64(len(p.CreditOutputs)))
	for i := range p.CreditOutputs {
		buf = p.CreditOutputs[i].serialize(buf)
	}
	return buf
}

// Transaction is a Dash Type-8 asset-lock transaction.
type Transaction struct {
	Version      uint16
	TxType       uint16
	Vin          []TxIn
	Vout         []TxOut
	LockTime     uint32
	ExtraPayload []byte
}

// Serialize encodes the transaction per the wire layout:
// (version | txType<<16 as i32 LE) || compactsize(len(vin)) || vin...
// || compactsize(len(vout)) || vout... || u32LE(lockTime) ||
// [if txType != 0] lengthPrefixed(extraPayload).
func (tx *Transaction) Serialize() []byte {
	versionWord := uint32(tx.Version) | (uint32(tx.TxType) << 16)

	buf := make([]byte, 0, 128)
	buf = codec.PutUint32LE(buf, versionWord)

	buf = codec.WriteCompactSize(buf, uint64(len(tx.Vin)))
	for i := range tx.Vin {
		buf = tx.Vin[i].serialize(buf)
	}

	buf = codec.WriteCompactSize(buf, uint64(len(tx.Vout)))
	for i := range tx.Vout {
		buf = tx.Vout[i].serialize(buf)
	}

	buf = codec.PutUint32LE(buf, tx.LockTime)

	if tx.TxType != 0 {
		buf = codec.WriteVarBytes(buf, tx.ExtraPayload)
	}

	return buf
}

// TxID returns hash256(serialize(tx)) as a chainhash.Hash; its
// String() form is the display-order (explorer-style) transaction id.
func (tx *Transaction) TxID() chainhash.Hash {
	return chainhash.Hash(hashing.Hash256(tx.Serialize()))
}

// TxIDHex is TxID in display-order hex.
func (tx *Transaction) TxIDHex() string {
	id := tx.TxID()
	return id.String()
}
