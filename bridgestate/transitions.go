package bridgestate

import (
	"github.com/dashpay/asset-lock-bridge/keyops"
	"github.com/dashpay/asset-lock-bridge/proofbuilder"
	"github.com/dashpay/asset-lock-bridge/retry"
	"github.com/dashpay/asset-lock-bridge/txbuilder"
	"github.com/dashpay/asset-lock-bridge/utxo"
)

// Pure transition functions. Each takes the current state and the
// event's payload and returns a new State; none perform I/O — the
// Driver calls these after awaiting the corresponding collaborator.

// EnterConfigureKeys begins create mode's key-generation sub-flow.
func (s *State) EnterConfigureKeys() *State {
	out := s.clone()
	out.Step = StepConfigureKeys
	return out
}

// WithGeneratedKeys records the freshly derived/generated asset-lock
// keypair, identity keys (create mode only), and the resulting
// deposit address, advancing to StepAwaitingDeposit.
func (s *State) WithGeneratedKeys(mnemonic string, assetLockKey *keyops.KeyPair, identityKeys []*keyops.IdentityKey, depositAddress string) *State {
	out := s.clone()
	out.Mnemonic = mnemonic
	out.AssetLockKeyPair = assetLockKey
	out.IdentityKeys = identityKeys
	out.DepositAddress = depositAddress
	out.Step = StepAwaitingDeposit
	return out
}

// WithDepositDetected records a sufficient UTXO and advances to
// building the transaction.
func (s *State) WithDepositDetected(u *utxo.UTXO, total int64) *State {
	out := s.clone()
	out.DetectedUTXO = u
	out.DetectedDepositAmount = total
	out.DepositTimedOut = false
	out.Step = StepBuildingTransaction
	return out
}

// WithDepositTimedOut records a timed-out poll. Per the recheck
// invariant, the asset-lock keypair and deposit address are untouched
// — only DepositTimedOut, the observed total, and the step
// (StepDetectingDeposit) change.
func (s *State) WithDepositTimedOut(total int64) *State {
	out := s.clone()
	out.DetectedDepositAmount = total
	out.DepositTimedOut = true
	out.Step = StepDetectingDeposit
	return out
}

// EnterDetectingDeposit marks the start of a (re)check poll.
func (s *State) EnterDetectingDeposit() *State {
	out := s.clone()
	out.Step = StepDetectingDeposit
	return out
}

// WithBuiltTransaction records the unsigned transaction bytes and
// advances to signing.
func (s *State) WithBuiltTransaction(unsigned *txbuilder.Transaction) *State {
	out := s.clone()
	out.UnsignedTx = unsigned.Serialize()
	out.Step = StepSigningTransaction
	return out
}

// WithSignedTransaction records the signed transaction's hex encoding
// and advances to broadcasting.
func (s *State) WithSignedTransaction(signedHex string) *State {
	out := s.clone()
	out.SignedTxHex = signedHex
	out.Step = StepBroadcasting
	return out
}

// WithBroadcastTxID records the txid Insight accepted and advances to
// waiting for the InstantSend lock.
func (s *State) WithBroadcastTxID(txid string) *State {
	out := s.clone()
	out.BroadcastTxID = txid
	out.Step = StepWaitingIslock
	return out
}

// WithIslock records the InstantSend-lock bytes, builds the asset-lock
// proof from signedTxBytes, and advances to the mode-specific final
// step. signedTxBytes is passed in rather than derived from
// s.SignedTxHex so this function stays pure and decoding-error-free;
// the Driver owns hex decoding.
func (s *State) WithIslock(signedTxBytes, islockBytes []byte) (*State, error) {
	proof, err := proofbuilder.BuildInstantAssetLockProof(signedTxBytes, islockBytes, 0)
	if err != nil {
		return nil, err
	}
	out := s.clone()
	out.IslockBytes = islockBytes
	out.AssetLockProof = proof
	out.Step = out.finalStep()
	return out, nil
}

// finalStep maps the four modes that run the full L1 pipeline (derive
// -> wait -> build -> sign -> broadcast -> islock -> proof, the common
// prefix every one of them shares) to their mode-specific last stage.
// dpns and manage never call WithIslock — neither needs an asset-lock
// proof — so they are not represented here; see EnterDPNS/EnterManage.
func (s *State) finalStep() Step {
	switch s.Mode {
	case ModeCreate:
		return StepRegisteringIdentity
	case ModeTopUp:
		return StepToppingUp
	case ModeFundAddress:
		return StepFundingAddress
	case ModeSendToAddress:
		return StepSendingToAddress
	default:
		return StepError
	}
}

// EnterDPNS transitions directly from key configuration to the DPNS
// registration step: no L1 deposit, transaction, or asset-lock proof
// is involved in registering a name against an existing identity.
func (s *State) EnterDPNS(label string, identityKeyID uint32) *State {
	out := s.clone()
	out.DPNS = &DPNSState{Label: label, IdentityKeyID: identityKeyID}
	out.Step = StepRegisteringName
	return out
}

// EnterManage transitions directly from key configuration to the
// identity-update step: like dpns, no L1 flow is involved.
func (s *State) EnterManage(targetIdentityID string, add []*keyops.IdentityKey, disable []uint32) *State {
	out := s.clone()
	out.Manage = &ManageState{TargetIdentityID: targetIdentityID, AddPublicKeys: add, DisablePublicKeys: disable}
	out.TargetIdentityID = targetIdentityID
	out.Step = StepUpdatingIdentity
	return out
}

// WithIdentityCreated finishes create mode, recording the identity id
// the Platform SDK committed (which must equal proof.CreateIdentityID()).
func (s *State) WithIdentityCreated(identityID string) *State {
	out := s.clone()
	out.IdentityID = identityID
	out.Step = StepComplete
	return out
}

// WithComplete finishes any mode whose final step carries no
// additional state to record (topup/fundAddress/sendToAddress/dpns/
// manage all just need the final SDK call to have succeeded).
func (s *State) WithComplete() *State {
	out := s.clone()
	out.Step = StepComplete
	return out
}

// WithRetryStatus publishes an in-flight retry's progress without
// otherwise changing step; the Driver calls this from a retry.Options
// OnRetry callback to keep State.Retry current for the presenter.
func (s *State) WithRetryStatus(status retry.Status) *State {
	out := s.clone()
	out.Retry = status
	return out
}
