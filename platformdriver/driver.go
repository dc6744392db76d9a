// Package platformdriver is the thin contract over the layer-2 SDK:
// identity create/top-up/update, funding a platform address from an
// asset-lock proof, and the identity/DPNS read paths the state machine
// needs. The concrete SDK client lives outside this module — Driver is
// the seam a real implementation plugs into; this package ships the
// request/response shapes, the bech32m address codec, and the DPNS
// sub-contract everything else in the bridge depends on (the DPNS
// label normalization rule itself lives in package dpns).
package platformdriver

import (
	"context"
	"fmt"

	"github.com/dashpay/asset-lock-bridge/keyops"
	"github.com/dashpay/asset-lock-bridge/proofbuilder"
)

// SdkError wraps any failure the underlying Platform SDK reports.
type SdkError struct {
	Op  string
	Err error
}

func (e *SdkError) Error() string {
	return fmt.Sprintf("platformdriver: %s: %v", e.Op, e.Err)
}

func (e *SdkError) Unwrap() error { return e.Err }

// IdentityShell is the local view of an identity: its id plus its
// declared public-key list. Signer is not part of the shell — it is
// supplied per-call so the same shell can be reused across operations.
type IdentityShell struct {
	ID   string
	Keys []*keyops.IdentityKey
}

// Signer holds the private material needed to produce key-ownership
// proofs for a state transition. It is intentionally minimal: a map
// from key id to its KeyPair.
type Signer struct {
	KeysByID map[uint32]*keyops.KeyPair
}

// NewSigner builds a Signer from a flat key list, indexing by ID.
func NewSigner(keys ...*keyops.IdentityKey) *Signer {
	s := &Signer{KeysByID: make(map[uint32]*keyops.KeyPair, len(keys))}
	for _, k := range keys {
		if k.KeyPair != nil {
			s.KeysByID[k.ID] = k.KeyPair
		}
	}
	return s
}

// CreateRequest is the input to Driver.Create.
type CreateRequest struct {
	Identity            IdentityShell
	Proof               *proofbuilder.Proof
	AssetLockPrivateKey *keyops.KeyPair
	Signer              *Signer
}

// CreateResult is the output of Driver.Create.
type CreateResult struct {
	IdentityID string
}

// TopUpRequest is the input to Driver.TopUp.
type TopUpRequest struct {
	Identity            IdentityShell
	Proof               *proofbuilder.Proof
	AssetLockPrivateKey *keyops.KeyPair
}

// UpdateRequest is the input to Driver.Update.
type UpdateRequest struct {
	Identity          IdentityShell
	Signer            *Signer
	AddPublicKeys     []*keyops.IdentityKey
	DisablePublicKeys []uint32
}

// FundOutput is one credit transfer destination inside FundFromAssetLock.
type FundOutput struct {
	PlatformAddress string
	AmountCredits   int64
}

// FundFromAssetLockRequest is the input to Driver.FundFromAssetLock.
type FundFromAssetLockRequest struct {
	Proof               *proofbuilder.Proof
	AssetLockPrivateKey *keyops.KeyPair
	Outputs             []FundOutput
	Signer              *Signer // empty when every output is a third-party address
}

// Driver is the contract the bridge's state machine drives. Every
// method may fail with *SdkError; Create/TopUp/Update/FundFromAssetLock
// are expected to be wrapped in retry.WithRetry by the caller, since
// the underlying transport is best-effort.
type Driver interface {
	Create(ctx context.Context, req CreateRequest) (*CreateResult, error)
	TopUp(ctx context.Context, req TopUpRequest) error
	Update(ctx context.Context, req UpdateRequest) error
	FundFromAssetLock(ctx context.Context, req FundFromAssetLockRequest) error
	FetchIdentity(ctx context.Context, id string) (*IdentityShell, error)

	DPNS() DPNS
}

// DPNS is the name-service sub-contract used by the dpns bridge mode.
type DPNS interface {
	IsNameAvailable(ctx context.Context, label string) (bool, error)
	RegisterName(ctx context.Context, req RegisterNameRequest) error
}

// RegisterNameRequest is the input to DPNS.RegisterName.
type RegisterNameRequest struct {
	Label            string
	Identity         IdentityShell
	IdentityKey      *keyops.IdentityKey
	Signer           *Signer
	PreorderCallback func(label string)
}
