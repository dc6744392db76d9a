// Package bridgestate is the state machine driving one bridge session
// from key generation through the final layer-2 state transition. The
// state is an immutable value; every transition returns a new State
// rather than mutating in place — there is no shared mutable state
// between sessions.
package bridgestate

import (
	"github.com/google/uuid"

	"github.com/dashpay/asset-lock-bridge/keyops"
	"github.com/dashpay/asset-lock-bridge/networkparams"
	"github.com/dashpay/asset-lock-bridge/platformdriver"
	"github.com/dashpay/asset-lock-bridge/proofbuilder"
	"github.com/dashpay/asset-lock-bridge/retry"
	"github.com/dashpay/asset-lock-bridge/utxo"
)

// Mode selects which of the four layer-2 state transitions (plus the
// two supplemental sub-flows) terminates the pipeline.
type Mode int

const (
	ModeCreate Mode = iota
	ModeTopUp
	ModeFundAddress
	ModeSendToAddress
	ModeDPNS
	ModeManage
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeTopUp:
		return "topup"
	case ModeFundAddress:
		return "fundAddress"
	case ModeSendToAddress:
		return "sendToAddress"
	case ModeDPNS:
		return "dpns"
	case ModeManage:
		return "manage"
	default:
		return "unknown"
	}
}

// Step is one point in the pipeline.
type Step int

const (
	StepInit Step = iota
	StepConfigureKeys
	StepGeneratingKeys
	StepAwaitingDeposit
	StepDetectingDeposit
	StepBuildingTransaction
	StepSigningTransaction
	StepBroadcasting
	StepWaitingIslock
	StepRegisteringIdentity
	StepToppingUp
	StepFundingAddress
	StepSendingToAddress
	StepRegisteringName
	StepUpdatingIdentity
	StepComplete
	StepError
)

func (s Step) String() string {
	names := map[Step]string{
		StepInit:                "init",
		StepConfigureKeys:       "configure_keys",
		StepGeneratingKeys:      "generating_keys",
		StepAwaitingDeposit:     "awaiting_deposit",
		StepDetectingDeposit:    "detecting_deposit",
		StepBuildingTransaction: "building_transaction",
		StepSigningTransaction:  "signing_transaction",
		StepBroadcasting:        "broadcasting",
		StepWaitingIslock:       "waiting_islock",
		StepRegisteringIdentity: "registering_identity",
		StepToppingUp:           "topping_up",
		StepFundingAddress:      "funding_address",
		StepSendingToAddress:    "sending_to_address",
		StepRegisteringName:     "registering_name",
		StepUpdatingIdentity:    "updating_identity",
		StepComplete:            "complete",
		StepError:               "error",
	}
	if n, ok := names[s]; ok {
		return n
	}
	return "unknown"
}

// DPNSState carries the dpns-mode sub-flow's working data.
type DPNSState struct {
	Label            string
	TargetIdentityID string
	IdentityKeyID    uint32
}

// ManageState carries the manage-mode sub-flow's working data.
type ManageState struct {
	TargetIdentityID  string
	AddPublicKeys     []*keyops.IdentityKey
	DisablePublicKeys []uint32
}

// State is the bridge session's sole persistent value.
type State struct {
	SessionID string // correlates every log line this session emits; carries no secret material
	Network   networkparams.Params
	Mode      Mode
	Step      Step

	Mnemonic        string
	AssetLockKeyPair *keyops.KeyPair
	IdentityKeys     []*keyops.IdentityKey

	DepositAddress        string
	DetectedUTXO          *utxo.UTXO
	DetectedDepositAmount int64
	DepositTimedOut       bool

	UnsignedTx      []byte
	SignedTxHex     string
	BroadcastTxID   string
	IslockBytes     []byte
	AssetLockProof  *proofbuilder.Proof
	IdentityID      string

	// Mode-specific fields.
	TargetIdentityID         string
	OperatorPlatformAddress  string // fundAddress mode: a platform address the operator controls
	RecipientPlatformAddress string // sendToAddress mode: a third-party platform address
	DPNS                     *DPNSState
	Manage                   *ManageState

	Retry    retry.Status
	LastError error
}

// NewState starts a fresh session at StepInit for the given network
// and mode. Selecting a new network at StepInit (the only legal point
// to do so) always starts from here, discarding whatever mnemonic or
// identity-key material a prior session on another network held.
func NewState(network networkparams.Params, mode Mode) *State {
	return &State{SessionID: uuid.NewString(), Network: network, Mode: mode, Step: StepInit}
}

// clone returns a shallow copy of s; transition functions build on top
// of this rather than mutating the receiver.
func (s *State) clone() *State {
	out := *s
	return &out
}

// WithError returns a new State transitioned to StepError, carrying
// err. Reachable from any processing step.
func (s *State) WithError(err error) *State {
	out := s.clone()
	out.Step = StepError
	out.LastError = err
	return out
}

// Reset returns a fresh StepInit state for the same network, as the
// "Try Again" action does: network selection survives, every session
// secret does not.
func (s *State) Reset() *State {
	return NewState(s.Network, s.Mode)
}

// IdentityShell projects the state's identity material into the shape
// platformdriver.Driver calls expect.
func (s *State) IdentityShell() platformdriver.IdentityShell {
	return platformdriver.IdentityShell{ID: s.IdentityID, Keys: s.IdentityKeys}
}
