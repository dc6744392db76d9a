// Package proofbuilder assembles the InstantSend asset-lock proof
// that witnesses a Platform identity-create/top-up/fund state
// transition, and derives the identity id implied by it.
//
// The real identity-id derivation lives inside the Platform SDK —
// PlatformDriver, not this package, is the source of truth once a
// real SDK is wired in.
// CreateIdentityID here is this module's best-effort stand-in so the
// core's tests can assert the binding property (same triple -> same
// id, any byte changed -> different id) without a live SDK.
package proofbuilder

import (
	"errors"

	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/dashpay/asset-lock-bridge/hashing"
)

// ErrInvalidOutputIndex is returned for any output index other than 0
// — the bridge only ever builds a single credit output.
var ErrInvalidOutputIndex = errors.New("proofbuilder: output index must be 0")

// Proof is the (tx, islock, outputIndex) triple that is the identity
// creation witness.
type Proof struct {
	TxBytes     []byte
	IslockBytes []byte
	OutputIndex uint32
}

// BuildInstantAssetLockProof assembles a Proof, validating the output
// index is the one and only credit output the bridge ever produces.
func BuildInstantAssetLockProof(signedTxBytes, islockBytes []byte, outputIndex uint32) (*Proof, error) {
	if outputIndex != 0 {
		return nil, ErrInvalidOutputIndex
	}
	return &Proof{
		TxBytes:     signedTxBytes,
		IslockBytes: islockBytes,
		OutputIndex: outputIndex,
	}, nil
}

// CreateIdentityID derives the deterministic identity id implied by
// the proof: base58(hash256(txBytes || islockBytes || outputIndex)).
// Any byte of the triple changing changes the id; the same triple
// always yields the same id.
func (p *Proof) CreateIdentityID() string {
	buf := make([]byte, 0, len(p.TxBytes)+len(p.IslockBytes)+4)
	buf = append(buf, p.TxBytes...)
	buf = append(buf, p.IslockBytes...)
	buf = append(buf,
		byte(p.OutputIndex),
		byte(p.OutputIndex>>8),
		byte(p.OutputIndex>>16),
		byte(p.OutputIndex>>24),
	)
	digest := hashing.Hash256(buf)
	return base58.Encode(digest[:])
}
