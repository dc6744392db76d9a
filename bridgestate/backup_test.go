package bridgestate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dashpay/asset-lock-bridge/keyops"
	"github.com/dashpay/asset-lock-bridge/networkparams"
)

func TestBuildKeyBackupFilenamePrefersIdentityID(t *testing.T) {
	net := networkparams.For("testnet")
	kp, err := keyops.GenerateKeyPair()
	require.NoError(t, err)

	s := NewState(net, ModeCreate)
	s.AssetLockKeyPair = kp
	s.DepositAddress = kp.Address(net)
	s.IdentityID = "abc123identityid"

	backup, err := BuildKeyBackup(s, "2026-08-03T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "dash-identity-abc123identityid.json", backup.Filename())
}

func TestBuildKeyBackupFilenameFallsBackToPendingDeposit(t *testing.T) {
	net := networkparams.For("testnet")
	kp, err := keyops.GenerateKeyPair()
	require.NoError(t, err)

	s := NewState(net, ModeCreate)
	s.AssetLockKeyPair = kp
	s.DepositAddress = kp.Address(net)

	backup, err := BuildKeyBackup(s, "2026-08-03T00:00:00Z")
	require.NoError(t, err)
	assert.Contains(t, backup.Filename(), "dash-keys-")
	assert.Contains(t, backup.Filename(), "-pending.json")
}

func TestBuildKeyBackupTopUpFilename(t *testing.T) {
	net := networkparams.For("testnet")
	kp, err := keyops.GenerateKeyPair()
	require.NoError(t, err)

	s := NewState(net, ModeTopUp)
	s.AssetLockKeyPair = kp
	s.TargetIdentityID = "12345678identity"

	backup, err := BuildKeyBackup(s, "2026-08-03T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "dash-topup-12345678-recovery.json", backup.Filename())
}

func TestBuildKeyBackupIncludesMnemonicOnlyForCreate(t *testing.T) {
	net := networkparams.For("testnet")
	kp, err := keyops.GenerateKeyPair()
	require.NoError(t, err)

	s := NewState(net, ModeCreate)
	s.AssetLockKeyPair = kp
	s.Mnemonic = "some mnemonic words here"

	backup, err := BuildKeyBackup(s, "2026-08-03T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "some mnemonic words here", backup.Mnemonic)

	topup := NewState(net, ModeTopUp)
	topup.AssetLockKeyPair = kp
	topupBackup, err := BuildKeyBackup(topup, "2026-08-03T00:00:00Z")
	require.NoError(t, err)
	assert.Empty(t, topupBackup.Mnemonic)
}
