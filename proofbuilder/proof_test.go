package proofbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIdentityIDIsDeterministic(t *testing.T) {
	p1, err := BuildInstantAssetLockProof([]byte("tx-bytes"), []byte("islock-bytes"), 0)
	require.NoError(t, err)
	p2, err := BuildInstantAssetLockProof([]byte("tx-bytes"), []byte("islock-bytes"), 0)
	require.NoError(t, err)

	assert.Equal(t, p1.CreateIdentityID(), p2.CreateIdentityID())
}

func TestCreateIdentityIDChangesWithAnyByte(t *testing.T) {
	base, err := BuildInstantAssetLockProof([]byte("tx-bytes"), []byte("islock-bytes"), 0)
	require.NoError(t, err)
	baseID := base.CreateIdentityID()

	changedTx, err := BuildInstantAssetLockProof([]byte("tx-bytexx"), []byte("islock-bytes"), 0)
	require.NoError(t, err)
	assert.NotEqual(t, baseID, changedTx.CreateIdentityID())

	changedIslock, err := BuildInstantAssetLockProof([]byte("tx-bytes"), []byte("islock-bytesx"), 0)
	require.NoError(t, err)
	assert.NotEqual(t, baseID, changedIslock.CreateIdentityID())
}

func TestBuildInstantAssetLockProofRejectsNonZeroOutputIndex(t *testing.T) {
	_, err := BuildInstantAssetLockProof([]byte("tx"), []byte("islock"), 1)
	assert.ErrorIs(t, err, ErrInvalidOutputIndex)
}
