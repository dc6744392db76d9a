package bridgestate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dashpay/asset-lock-bridge/hdwallet"
	"github.com/dashpay/asset-lock-bridge/keyops"
	"github.com/dashpay/asset-lock-bridge/networkparams"
	"github.com/dashpay/asset-lock-bridge/platformdriver"
)

// fakeDPNS and fakePlatformDriver are in-memory stand-ins for the
// layer-2 SDK collaborator, matching the design note that
// platformdriver.Driver must be fake-able for core tests.
type fakeDPNS struct {
	available bool
}

func (f *fakeDPNS) IsNameAvailable(ctx context.Context, label string) (bool, error) {
	return f.available, nil
}

func (f *fakeDPNS) RegisterName(ctx context.Context, req platformdriver.RegisterNameRequest) error {
	return nil
}

type fakePlatformDriver struct {
	createCalls int
	dpns        *fakeDPNS
	identities  map[string]*platformdriver.IdentityShell
}

func (f *fakePlatformDriver) Create(ctx context.Context, req platformdriver.CreateRequest) (*platformdriver.CreateResult, error) {
	f.createCalls++
	return &platformdriver.CreateResult{IdentityID: req.Proof.CreateIdentityID()}, nil
}

func (f *fakePlatformDriver) TopUp(ctx context.Context, req platformdriver.TopUpRequest) error { return nil }

func (f *fakePlatformDriver) Update(ctx context.Context, req platformdriver.UpdateRequest) error { return nil }

func (f *fakePlatformDriver) FundFromAssetLock(ctx context.Context, req platformdriver.FundFromAssetLockRequest) error {
	return nil
}

func (f *fakePlatformDriver) FetchIdentity(ctx context.Context, id string) (*platformdriver.IdentityShell, error) {
	if shell, ok := f.identities[id]; ok {
		return shell, nil
	}
	return &platformdriver.IdentityShell{ID: id}, nil
}

func (f *fakePlatformDriver) DPNS() platformdriver.DPNS { return f.dpns }

func TestGenerateKeysForCreateProducesDepositAddress(t *testing.T) {
	net := networkparams.For("testnet")
	d := NewDriver(Collaborators{}, nil)
	s := NewState(net, ModeCreate).EnterConfigureKeys()

	next, err := d.GenerateKeysForCreate(s, "", hdwallet.Strength12Words)
	require.NoError(t, err)
	assert.Equal(t, StepAwaitingDeposit, next.Step)
	assert.NotEmpty(t, next.DepositAddress)
	assert.NotNil(t, next.AssetLockKeyPair)
	require.Len(t, next.IdentityKeys, 1)
	assert.Equal(t, byte('y'), next.DepositAddress[0])
}

func TestGenerateKeysForCreateIsDeterministicAcrossResume(t *testing.T) {
	net := networkparams.For("testnet")
	d := NewDriver(Collaborators{}, nil)
	mnemonic, err := hdwallet.NewMnemonic(hdwallet.Strength12Words)
	require.NoError(t, err)

	s := NewState(net, ModeCreate)
	first, err := d.GenerateKeysForCreate(s, mnemonic, hdwallet.Strength12Words)
	require.NoError(t, err)
	second, err := d.GenerateKeysForCreate(s, mnemonic, hdwallet.Strength12Words)
	require.NoError(t, err)

	assert.Equal(t, first.DepositAddress, second.DepositAddress)
	assert.Equal(t, first.AssetLockKeyPair.PrivateKey, second.AssetLockKeyPair.PrivateKey)
}

func TestRecheckPreservesKeyAndAddressAcrossTimeout(t *testing.T) {
	net := networkparams.For("testnet")
	d := NewDriver(Collaborators{}, nil)
	s := NewState(net, ModeCreate)
	generated, err := d.GenerateKeysForCreate(s, "", hdwallet.Strength12Words)
	require.NoError(t, err)

	timedOut := generated.WithDepositTimedOut(0)
	assert.True(t, timedOut.DepositTimedOut)
	assert.Equal(t, generated.DepositAddress, timedOut.DepositAddress)
	assert.Equal(t, generated.AssetLockKeyPair, timedOut.AssetLockKeyPair)

	rechecked := timedOut.EnterDetectingDeposit()
	assert.Equal(t, generated.DepositAddress, rechecked.DepositAddress)
	assert.Equal(t, generated.AssetLockKeyPair, rechecked.AssetLockKeyPair)
}

func TestFinalStepCreateProducesMatchingIdentityID(t *testing.T) {
	net := networkparams.For("testnet")
	fake := &fakePlatformDriver{}
	d := NewDriver(Collaborators{Platform: fake}, nil)

	s := NewState(net, ModeCreate)
	s.AssetLockProof = nil
	generated, err := d.GenerateKeysForCreate(s, "", hdwallet.Strength12Words)
	require.NoError(t, err)

	signedTxBytes := []byte("signed-tx")
	islockBytes := []byte("islock")
	withProof, err := generated.WithIslock(signedTxBytes, islockBytes)
	require.NoError(t, err)

	final, err := d.FinalStep(context.Background(), withProof)
	require.NoError(t, err)
	assert.Equal(t, StepComplete, final.Step)
	assert.Equal(t, withProof.AssetLockProof.CreateIdentityID(), final.IdentityID)
	assert.Equal(t, 1, fake.createCalls)
}

func TestEnterManageWithKeyRequiresMasterKey(t *testing.T) {
	net := networkparams.For("testnet")
	kp, err := keyops.GenerateKeyPair()
	require.NoError(t, err)
	wif, err := keyops.PrivateKeyToWIF(kp.PrivateKey, net, true)
	require.NoError(t, err)

	fake := &fakePlatformDriver{identities: map[string]*platformdriver.IdentityShell{
		"identity-1": {ID: "identity-1", Keys: []*keyops.IdentityKey{{
			ID: 7, KeyType: keyops.ECDSASecp256k1, Purpose: keyops.PurposeAuthentication,
			SecurityLevel: keyops.SecurityCritical, PayloadData: kp.PublicKey,
		}}},
	}}
	d := NewDriver(Collaborators{Platform: fake}, nil)
	s := NewState(net, ModeManage)

	_, err = d.EnterManageWithKey(context.Background(), s, "identity-1", wif, nil, []uint32{2})
	require.Error(t, err)
}

func TestEnterManageWithKeySucceedsWithMasterKey(t *testing.T) {
	net := networkparams.For("testnet")
	kp, err := keyops.GenerateKeyPair()
	require.NoError(t, err)
	wif, err := keyops.PrivateKeyToWIF(kp.PrivateKey, net, true)
	require.NoError(t, err)

	fake := &fakePlatformDriver{identities: map[string]*platformdriver.IdentityShell{
		"identity-1": {ID: "identity-1", Keys: []*keyops.IdentityKey{{
			ID: 7, KeyType: keyops.ECDSASecp256k1, Purpose: keyops.PurposeAuthentication,
			SecurityLevel: keyops.SecurityMaster, PayloadData: kp.PublicKey,
		}}},
	}}
	d := NewDriver(Collaborators{Platform: fake}, nil)
	s := NewState(net, ModeManage)

	next, err := d.EnterManageWithKey(context.Background(), s, "identity-1", wif, nil, []uint32{2})
	require.NoError(t, err)
	assert.Equal(t, StepUpdatingIdentity, next.Step)
	assert.Equal(t, "identity-1", next.TargetIdentityID)
}

func TestEnterDPNSWithKeyRejectsNonAuthenticationKey(t *testing.T) {
	net := networkparams.For("testnet")
	kp, err := keyops.GenerateKeyPair()
	require.NoError(t, err)
	wif, err := keyops.PrivateKeyToWIF(kp.PrivateKey, net, true)
	require.NoError(t, err)

	fake := &fakePlatformDriver{identities: map[string]*platformdriver.IdentityShell{
		"identity-1": {ID: "identity-1", Keys: []*keyops.IdentityKey{{
			ID: 3, KeyType: keyops.ECDSASecp256k1, Purpose: keyops.PurposeVoting,
			SecurityLevel: keyops.SecurityCritical, PayloadData: kp.PublicKey,
		}}},
	}}
	d := NewDriver(Collaborators{Platform: fake}, nil)
	s := NewState(net, ModeDPNS)

	_, err = d.EnterDPNSWithKey(context.Background(), s, "identity-1", wif, "satoshi")
	require.Error(t, err)
}

func TestEnterDPNSAndEnterManageSkipTheL1Pipeline(t *testing.T) {
	net := networkparams.For("testnet")
	s := NewState(net, ModeDPNS)

	dpnsState := s.EnterDPNS("satoshi", 1)
	assert.Equal(t, StepRegisteringName, dpnsState.Step)
	assert.Equal(t, "satoshi", dpnsState.DPNS.Label)

	manageState := s.EnterManage("target-id", nil, []uint32{2})
	assert.Equal(t, StepUpdatingIdentity, manageState.Step)
	assert.Equal(t, "target-id", manageState.Manage.TargetIdentityID)
}
