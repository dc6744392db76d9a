package bridgestate

import (
	"context"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/dashpay/asset-lock-bridge/codec"
	"github.com/dashpay/asset-lock-bridge/hdwallet"
	"github.com/dashpay/asset-lock-bridge/insightclient"
	"github.com/dashpay/asset-lock-bridge/islockclient"
	"github.com/dashpay/asset-lock-bridge/keyops"
	"github.com/dashpay/asset-lock-bridge/platformdriver"
	"github.com/dashpay/asset-lock-bridge/retry"
	"github.com/dashpay/asset-lock-bridge/signer"
	"github.com/dashpay/asset-lock-bridge/txbuilder"
	"github.com/dashpay/asset-lock-bridge/utxo"
)

// Collaborators bundles the external services one bridge session's
// Driver talks to. A collaborator may be nil when the session never
// reaches the step that calls it; the key-generation tests leave every
// field unset.
type Collaborators struct {
	Insight     *insightclient.Client
	Islock      *islockclient.Client
	Platform    platformdriver.Driver
	MinUTXOValue int64
}

// Driver runs one bridge session's pipeline as a single cooperative
// task: exactly one collaborator call is in flight at any time, and
// every step is driven by this goroutine alone — there is no shared
// mutable state between sessions.
type Driver struct {
	collab   Collaborators
	progress chan *State
}

// NewDriver builds a Driver. progress, if non-nil, receives every new
// State the pipeline produces — the presenter's only way to observe
// it, matching the "subscribes via a channel or callback" design note.
func NewDriver(collab Collaborators, progress chan *State) *Driver {
	return &Driver{collab: collab, progress: progress}
}

func (d *Driver) publish(s *State) *State {
	if d.progress != nil {
		select {
		case d.progress <- s:
		default:
		}
	}
	return s
}

// GenerateKeysForCreate derives a fresh mnemonic (or reuses one if the
// caller already has it, e.g. resuming), the HD asset-lock key, and an
// initial single AUTHENTICATION/MASTER identity key, then computes the
// deposit address. This is create mode's StepGeneratingKeys handler.
func (d *Driver) GenerateKeysForCreate(s *State, mnemonic string, strength hdwallet.Strength) (*State, error) {
	if mnemonic == "" {
		var err error
		mnemonic, err = hdwallet.NewMnemonic(strength)
		if err != nil {
			return nil, err
		}
	}

	seed, err := hdwallet.SeedFromMnemonic(mnemonic, "")
	if err != nil {
		return nil, ErrInvalidMnemonic
	}
	master, err := hdwallet.Master(seed)
	if err != nil {
		return nil, err
	}

	assetLockLeaf, err := hdwallet.DerivePath(master, hdwallet.AssetLockPath(s.Network.BIP44CoinType))
	if err != nil {
		return nil, err
	}
	assetLockPriv, err := hdwallet.PrivateKey(assetLockLeaf)
	if err != nil {
		return nil, err
	}
	assetLockKP, err := keyops.KeyPairFromPrivateKey(assetLockPriv.Serialize())
	if err != nil {
		return nil, err
	}

	identityLeaf, err := hdwallet.DerivePath(master, hdwallet.IdentityKeyPath(s.Network.BIP44CoinType, 0, 0))
	if err != nil {
		return nil, err
	}
	identityPriv, err := hdwallet.PrivateKey(identityLeaf)
	if err != nil {
		return nil, err
	}
	identityKP, err := keyops.KeyPairFromPrivateKey(identityPriv.Serialize())
	if err != nil {
		return nil, err
	}

	identityKey := &keyops.IdentityKey{
		ID:             1,
		DisplayName:    "master",
		KeyType:        keyops.ECDSASecp256k1,
		Purpose:        keyops.PurposeAuthentication,
		SecurityLevel:  keyops.SecurityMaster,
		KeyPair:        identityKP,
		DerivationPath: hdwallet.IdentityKeyPathString(s.Network.BIP44CoinType, 0, 0),
		PayloadData:    identityKP.PublicKey,
	}
	if err := keyops.ValidateKeyList([]*keyops.IdentityKey{identityKey}); err != nil {
		return nil, err
	}

	depositAddress := assetLockKP.Address(s.Network)

	next := s.WithGeneratedKeys(mnemonic, assetLockKP, []*keyops.IdentityKey{identityKey}, depositAddress)
	return d.publish(next), nil
}

// GenerateOneTimeAssetLockKey produces a random (non-HD) asset-lock
// key for topup/fundAddress/sendToAddress modes, per the design note
// that these must never be derivable from the create-mode mnemonic.
func (d *Driver) GenerateOneTimeAssetLockKey(s *State) (*State, error) {
	kp, err := keyops.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	depositAddress := kp.Address(s.Network)
	next := s.WithGeneratedKeys("", kp, nil, depositAddress)
	return d.publish(next), nil
}

// WaitForDeposit drives StepAwaitingDeposit/StepDetectingDeposit:
// polls Insight for the deposit address's UTXOs until one (or their
// sum) reaches the minimum, or the timeout elapses.
func (d *Driver) WaitForDeposit(ctx context.Context, s *State, timeout, pollInterval time.Duration) (*State, error) {
	s = d.publish(s.EnterDetectingDeposit())

	result, err := d.collab.Insight.WaitForUTXO(ctx, s.DepositAddress, d.collab.MinUTXOValue, timeout, pollInterval, func(remaining time.Duration, total int64) {
		logger.WithFields(logger.Fields{"session": s.SessionID, "remaining": remaining, "total": total}).Debug("bridgestate: polling for deposit")
	})
	if err != nil {
		return nil, err
	}
	if result.TimedOut {
		return d.publish(s.WithDepositTimedOut(result.TotalAmount)), nil
	}
	return d.publish(s.WithDepositDetected(result.UTXO, result.TotalAmount)), nil
}

// BuildAndSignTransaction drives StepBuildingTransaction and
// StepSigningTransaction.
func (d *Driver) BuildAndSignTransaction(s *State) (*State, error) {
	unsigned, err := txbuilder.BuildAssetLockTx(s.DetectedUTXO, s.AssetLockKeyPair.PublicKey, s.Network.MinFeeDuffs)
	if err != nil {
		return nil, err
	}
	s = d.publish(s.WithBuiltTransaction(unsigned))

	signed, err := signer.SignTransaction(unsigned, []*utxo.UTXO{s.DetectedUTXO}, s.AssetLockKeyPair)
	if err != nil {
		return nil, err
	}
	signedHex := codec.EncodeHex(signed.Serialize())
	return d.publish(s.WithSignedTransaction(signedHex)), nil
}

// Broadcast drives StepBroadcasting.
func (d *Driver) Broadcast(ctx context.Context, s *State) (*State, error) {
	txid, err := d.collab.Insight.Broadcast(ctx, s.SignedTxHex)
	if err != nil {
		return nil, err
	}
	return d.publish(s.WithBroadcastTxID(txid)), nil
}

// WaitForIslock drives StepWaitingIslock; a timeout here is fatal
// (*islockclient.TimeoutError), unlike the deposit wait.
func (d *Driver) WaitForIslock(ctx context.Context, s *State, timeout, pollInterval time.Duration) (*State, error) {
	lockBytes, err := d.collab.Islock.WaitForInstantSendLock(ctx, s.BroadcastTxID, timeout, pollInterval)
	if err != nil {
		return nil, err
	}
	signedTxBytes, err := codec.DecodeHex(s.SignedTxHex)
	if err != nil {
		return nil, err
	}
	next, err := s.WithIslock(signedTxBytes, lockBytes)
	if err != nil {
		return nil, err
	}
	return d.publish(next), nil
}

// FinalStep drives whichever PlatformDriver call the session's mode
// demands, wrapped in retry.WithRetry per the SDK contract ("best-
// effort transport").
func (d *Driver) FinalStep(ctx context.Context, s *State) (*State, error) {
	opts := retry.DefaultOptions()
	opts.OnRetry = func(status retry.Status) { d.publish(s.WithRetryStatus(status)) }

	switch s.Mode {
	case ModeCreate:
		res, err := retry.WithRetry(ctx, func(ctx context.Context) (*platformdriver.CreateResult, error) {
			return d.collab.Platform.Create(ctx, platformdriver.CreateRequest{
				Identity:            s.IdentityShell(),
				Proof:               s.AssetLockProof,
				AssetLockPrivateKey: s.AssetLockKeyPair,
				Signer:              platformdriver.NewSigner(s.IdentityKeys...),
			})
		}, opts)
		if err != nil {
			return nil, err
		}
		return d.publish(s.WithIdentityCreated(res.IdentityID)), nil

	case ModeTopUp:
		_, err := retry.WithRetry(ctx, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, d.collab.Platform.TopUp(ctx, platformdriver.TopUpRequest{
				Identity:            s.IdentityShell(),
				Proof:               s.AssetLockProof,
				AssetLockPrivateKey: s.AssetLockKeyPair,
			})
		}, opts)
		if err != nil {
			return nil, err
		}
		return d.publish(s.WithComplete()), nil

	case ModeFundAddress:
		// Self-owned destination: the operator's signer must be present
		// so FundFromAssetLock can prove ownership of the receiving
		// platform address.
		_, err := retry.WithRetry(ctx, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, d.collab.Platform.FundFromAssetLock(ctx, platformdriver.FundFromAssetLockRequest{
				Proof:               s.AssetLockProof,
				AssetLockPrivateKey: s.AssetLockKeyPair,
				Outputs:             []platformdriver.FundOutput{{PlatformAddress: s.OperatorPlatformAddress}},
				Signer:              platformdriver.NewSigner(s.IdentityKeys...),
			})
		}, opts)
		if err != nil {
			return nil, err
		}
		return d.publish(s.WithComplete()), nil

	case ModeSendToAddress:
		// Third-party destination: no signer needed, the recipient does
		// not have to prove anything to receive credits.
		_, err := retry.WithRetry(ctx, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, d.collab.Platform.FundFromAssetLock(ctx, platformdriver.FundFromAssetLockRequest{
				Proof:               s.AssetLockProof,
				AssetLockPrivateKey: s.AssetLockKeyPair,
				Outputs:             []platformdriver.FundOutput{{PlatformAddress: s.RecipientPlatformAddress}},
				Signer:              nil,
			})
		}, opts)
		if err != nil {
			return nil, err
		}
		return d.publish(s.WithComplete()), nil

	default:
		return nil, ErrInvalidIdentityID
	}
}

// matchSigningKey fetches targetIdentityID's declared public keys from
// the Platform SDK and matches wif against them — the common prefix of
// both the dpns and manage sub-flows, neither of which derives or
// generates its own identity key (they operate against a key the user
// already controls).
func (d *Driver) matchSigningKey(ctx context.Context, s *State, targetIdentityID, wif string) (*State, *keyops.MatchedKey, error) {
	shell, err := d.collab.Platform.FetchIdentity(ctx, targetIdentityID)
	if err != nil {
		return nil, nil, err
	}
	matched, err := keyops.FindMatchingKey(wif, shell.Keys, s.Network)
	if err != nil {
		return nil, nil, err
	}
	decoded, err := keyops.WIFToPrivateKey(wif)
	if err != nil {
		return nil, nil, err
	}
	kp, err := keyops.KeyPairFromPrivateKey(decoded.PrivateKey)
	if err != nil {
		return nil, nil, err
	}

	out := s.clone()
	out.TargetIdentityID = targetIdentityID
	out.IdentityID = shell.ID
	out.IdentityKeys = []*keyops.IdentityKey{{
		ID:            matched.ID,
		Purpose:       matched.Purpose,
		SecurityLevel: matched.SecurityLevel,
		KeyPair:       kp,
		PayloadData:   matched.PublicKey,
	}}
	return out, matched, nil
}

// EnterManageWithKey resolves manage mode's signer by matching a
// user-supplied WIF against targetIdentityID's on-chain keys, then
// enforces RequireMasterForUpdate before entering StepUpdatingIdentity
// — only a MASTER key may add or disable another identity key.
func (d *Driver) EnterManageWithKey(ctx context.Context, s *State, targetIdentityID, wif string, add []*keyops.IdentityKey, disable []uint32) (*State, error) {
	matchedState, matched, err := d.matchSigningKey(ctx, s, targetIdentityID, wif)
	if err != nil {
		return nil, err
	}
	if err := keyops.RequireMasterForUpdate(matched); err != nil {
		return nil, err
	}
	for _, k := range add {
		if err := keyops.RejectTransferBelowCritical(k); err != nil {
			return nil, err
		}
	}
	return d.publish(matchedState.EnterManage(targetIdentityID, add, disable)), nil
}

// EnterDPNSWithKey resolves dpns mode's signer the same way, enforcing
// RequireAuthCriticalOrHighForDPNS: only an AUTHENTICATION key at
// CRITICAL or HIGH security may register a name for this identity.
func (d *Driver) EnterDPNSWithKey(ctx context.Context, s *State, targetIdentityID, wif, label string) (*State, error) {
	matchedState, matched, err := d.matchSigningKey(ctx, s, targetIdentityID, wif)
	if err != nil {
		return nil, err
	}
	if err := keyops.RequireAuthCriticalOrHighForDPNS(matched); err != nil {
		return nil, err
	}
	return d.publish(matchedState.EnterDPNS(label, matched.ID)), nil
}

// RegisterDPNSName drives dpns mode's final step: availability check
// then registration, guarded by RequireAuthCriticalOrHighForDPNS at
// the caller (state construction) level.
func (d *Driver) RegisterDPNSName(ctx context.Context, s *State) (*State, error) {
	available, err := d.collab.Platform.DPNS().IsNameAvailable(ctx, s.DPNS.Label)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, &platformdriver.SdkError{Op: "dpns.registerName", Err: ErrInvalidIdentityID}
	}

	var signerKey *keyops.IdentityKey
	for _, k := range s.IdentityKeys {
		if k.ID == s.DPNS.IdentityKeyID {
			signerKey = k
			break
		}
	}

	opts := retry.DefaultOptions()
	opts.OnRetry = func(status retry.Status) { d.publish(s.WithRetryStatus(status)) }
	_, err = retry.WithRetry(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, d.collab.Platform.DPNS().RegisterName(ctx, platformdriver.RegisterNameRequest{
			Label:       s.DPNS.Label,
			Identity:    s.IdentityShell(),
			IdentityKey: signerKey,
			Signer:      platformdriver.NewSigner(s.IdentityKeys...),
		})
	}, opts)
	if err != nil {
		return nil, err
	}
	return d.publish(s.WithComplete()), nil
}

// UpdateIdentity drives manage mode's final step: add/disable public
// keys, guarded by RequireMasterForUpdate at the caller level.
func (d *Driver) UpdateIdentity(ctx context.Context, s *State) (*State, error) {
	opts := retry.DefaultOptions()
	opts.OnRetry = func(status retry.Status) { d.publish(s.WithRetryStatus(status)) }
	_, err := retry.WithRetry(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, d.collab.Platform.Update(ctx, platformdriver.UpdateRequest{
			Identity:          s.IdentityShell(),
			Signer:            platformdriver.NewSigner(s.IdentityKeys...),
			AddPublicKeys:     s.Manage.AddPublicKeys,
			DisablePublicKeys: s.Manage.DisablePublicKeys,
		})
	}, opts)
	if err != nil {
		return nil, err
	}
	return d.publish(s.WithComplete()), nil
}
