package keyops

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/dashpay/asset-lock-bridge/networkparams"
)

// KeyType selects how an identity key's public material is encoded on
// Platform: the raw compressed pubkey, or its hash160.
type KeyType int

const (
	ECDSASecp256k1 KeyType = iota
	ECDSAHash160
)

// Purpose is what an identity key may be used for.
type Purpose int

const (
	PurposeAuthentication Purpose = iota
	PurposeEncryption
	PurposeDecryption
	PurposeTransfer
	PurposeVoting
	PurposeOwner
)

// SecurityLevel bounds how sensitive an operation a key may authorize.
type SecurityLevel int

const (
	SecurityMaster SecurityLevel = iota
	SecurityCritical
	SecurityHigh
	SecurityMedium
)

func (s SecurityLevel) String() string {
	switch s {
	case SecurityMaster:
		return "MASTER"
	case SecurityCritical:
		return "CRITICAL"
	case SecurityHigh:
		return "HIGH"
	case SecurityMedium:
		return "MEDIUM"
	default:
		return "UNKNOWN"
	}
}

// IdentityKey is one entry in an identity's public key list, plus
// (when the bridge itself derived or was handed the private half) the
// KeyPair that backs it.
type IdentityKey struct {
	ID             uint32
	DisplayName    string
	KeyType        KeyType
	Purpose        Purpose
	SecurityLevel  SecurityLevel
	KeyPair        *KeyPair // nil if only the public payload is known
	DerivationPath string   // empty for keys not derived by this session

	// PayloadData is what actually gets submitted on-chain for this
	// key: the 33-byte compressed pubkey for ECDSASecp256k1, or its
	// 20-byte hash160 for ECDSAHash160.
	PayloadData []byte
}

// ErrKeyPayloadWidth is returned when PayloadData's length doesn't
// match what KeyType demands (33 bytes for SECP256K1, 20 for HASH160).
var ErrKeyPayloadWidth = errors.New("keyops: identity key payload width mismatch")

// Validate enforces the IdentityKey invariants: TRANSFER requires
// CRITICAL, and payload width matches key type. ID uniqueness/
// positivity is a property of the owning identity's key list, checked
// by ValidateKeyList.
func (k *IdentityKey) Validate() error {
	switch k.KeyType {
	case ECDSASecp256k1:
		if len(k.PayloadData) != 33 {
			return ErrKeyPayloadWidth
		}
	case ECDSAHash160:
		if len(k.PayloadData) != 20 {
			return ErrKeyPayloadWidth
		}
	default:
		return fmt.Errorf("keyops: unknown key type %d", k.KeyType)
	}
	if k.Purpose == PurposeTransfer && k.SecurityLevel != SecurityCritical {
		return fmt.Errorf("keyops: TRANSFER key %d must be CRITICAL, got %s", k.ID, k.SecurityLevel)
	}
	return nil
}

// ValidateKeyList checks that every key in keys validates individually
// and that ids within the list are unique and positive.
func ValidateKeyList(keys []*IdentityKey) error {
	seen := make(map[uint32]bool, len(keys))
	for _, k := range keys {
		if k.ID == 0 {
			return fmt.Errorf("keyops: key id must be positive, got 0")
		}
		if seen[k.ID] {
			return fmt.Errorf("keyops: duplicate key id %d", k.ID)
		}
		seen[k.ID] = true
		if err := k.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// NormalizeTransferSecurityLevel resolves TRANSFER-purpose keys'
// inconsistent security-level handling: when building a new identity
// key locally (this function), TRANSFER is silently coerced to
// CRITICAL rather than rejected. The SDK call path
// (RejectTransferBelowCritical) rejects instead — see DESIGN.md
// "TRANSFER purpose / security-level handling".
func NormalizeTransferSecurityLevel(k *IdentityKey) {
	if k.Purpose == PurposeTransfer && k.SecurityLevel != SecurityCritical {
		k.SecurityLevel = SecurityCritical
	}
}

// MatchedKey is what FindMatchingKey returns on success.
type MatchedKey struct {
	ID            uint32
	SecurityLevel SecurityLevel
	Purpose       Purpose
	PublicKey     []byte // compressed pubkey, regardless of candidate's KeyType
}

// ErrNoMatchingKey is returned when no candidate key's public material
// matches the given WIF's derived public key.
var ErrNoMatchingKey = errors.New("keyops: no matching key")

// ErrWIFNetworkMismatch is returned when a WIF's prefix byte doesn't
// belong to net.
var ErrWIFNetworkMismatch = errors.New("keyops: WIF prefix does not match network")

// FindMatchingKey decodes wif, rejects it outright if its prefix
// doesn't belong to net, derives its public key, and scans candidates
// for a bytewise match (comparing the compressed pubkey directly for
// ECDSASecp256k1 candidates, or its hash160 for ECDSAHash160 ones).
func FindMatchingKey(wif string, candidates []*IdentityKey, net networkparams.Params) (*MatchedKey, error) {
	decoded, err := WIFToPrivateKey(wif)
	if err != nil {
		return nil, err
	}
	if decoded.Prefix != net.WIFPrefix {
		return nil, ErrWIFNetworkMismatch
	}
	kp, err := KeyPairFromPrivateKey(decoded.PrivateKey)
	if err != nil {
		return nil, err
	}
	h160 := kp.Hash160()

	for _, cand := range candidates {
		switch cand.KeyType {
		case ECDSASecp256k1:
			if bytes.Equal(cand.PayloadData, kp.PublicKey) {
				return &MatchedKey{ID: cand.ID, SecurityLevel: cand.SecurityLevel, Purpose: cand.Purpose, PublicKey: kp.PublicKey}, nil
			}
		case ECDSAHash160:
			if bytes.Equal(cand.PayloadData, h160[:]) {
				return &MatchedKey{ID: cand.ID, SecurityLevel: cand.SecurityLevel, Purpose: cand.Purpose, PublicKey: kp.PublicKey}, nil
			}
		}
	}
	return nil, ErrNoMatchingKey
}
