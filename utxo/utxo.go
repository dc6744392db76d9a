// Package utxo holds the UTXO data type shared between InsightClient
// (which lists and selects them) and TxBuilder (which spends them).
package utxo

// UTXO is one unspent transaction output as reported by Insight.
type UTXO struct {
	TxID          string // display byte-order hex, as printed by explorers
	Vout          uint32
	Value         int64 // duffs
	ScriptPubKey  []byte
	Confirmations int
}

// AmountHuman returns Value converted to whole DASH for display.
func (u *UTXO) AmountHuman() float64 {
	return float64(u.Value) / 1e8
}
