package bridgestate

import (
	"encoding/json"
	"fmt"

	"github.com/dashpay/asset-lock-bridge/keyops"
)

// IdentityKeyBackup is one entry of a create-mode backup's identityKeys
// list.
type IdentityKeyBackup struct {
	ID             uint32 `json:"id"`
	Name           string `json:"name"`
	KeyType        string `json:"keyType"`
	Purpose        string `json:"purpose"`
	SecurityLevel  string `json:"securityLevel"`
	PrivateKeyWIF  string `json:"privateKeyWif"`
	PrivateKeyHex  string `json:"privateKeyHex"`
	PublicKeyHex   string `json:"publicKeyHex"`
	DerivationPath string `json:"derivationPath"`
}

// AssetLockKeyBackup carries the single-use (or HD-derived, for
// create mode) asset-lock keypair.
type AssetLockKeyBackup struct {
	WIF            string `json:"wif"`
	PublicKeyHex   string `json:"publicKeyHex"`
	DerivationPath string `json:"derivationPath,omitempty"`
	Note           string `json:"note,omitempty"`
}

// KeyBackup is the single recoverable artifact the bridge ever
// exports: everything needed to resume a stranded session or to prove
// ownership of funds already sent, since on-device persistence is out
// of scope.
type KeyBackup struct {
	Network       string `json:"network"`
	Created       string `json:"created"` // ISO-8601 UTC
	Mode          string `json:"mode"`
	DepositAddress string `json:"depositAddress,omitempty"`
	TxID          string `json:"txid,omitempty"`

	// create mode only.
	Mnemonic      string               `json:"mnemonic,omitempty"`
	IdentityID    string               `json:"identityId,omitempty"`
	IdentityKeys  []IdentityKeyBackup  `json:"identityKeys,omitempty"`
	AssetLockKey  *AssetLockKeyBackup  `json:"assetLockKey,omitempty"`

	// topup/fundAddress/sendToAddress only.
	TargetIdentityID         string `json:"targetIdentityId,omitempty"`
	RecipientPlatformAddress string `json:"recipientPlatformAddress,omitempty"`
}

// BuildKeyBackup projects s into its exportable backup shape. created
// must be supplied by the caller (ISO-8601 UTC) since this package
// cannot call time.Now itself without breaking deterministic replay
// of a resumed session in tests.
func BuildKeyBackup(s *State, created string) (*KeyBackup, error) {
	net := string(s.Network.Name)
	b := &KeyBackup{
		Network:        net,
		Created:        created,
		Mode:           s.Mode.String(),
		DepositAddress: s.DepositAddress,
		TxID:           s.BroadcastTxID,
	}

	if s.AssetLockKeyPair != nil {
		wif, err := keyops.PrivateKeyToWIF(s.AssetLockKeyPair.PrivateKey, s.Network, true)
		if err != nil {
			return nil, err
		}
		assetLock := &AssetLockKeyBackup{
			WIF:          wif,
			PublicKeyHex: fmt.Sprintf("%x", s.AssetLockKeyPair.PublicKey),
		}
		if s.Mode == ModeCreate {
			b.AssetLockKey = assetLock
		} else {
			assetLock.Note = "single-use; do not reuse across sessions"
			b.AssetLockKey = assetLock
		}
	}

	switch s.Mode {
	case ModeCreate:
		b.Mnemonic = s.Mnemonic
		b.IdentityID = s.IdentityID
		for _, k := range s.IdentityKeys {
			entry := IdentityKeyBackup{
				ID:             k.ID,
				Name:           k.DisplayName,
				KeyType:        keyTypeName(k.KeyType),
				Purpose:        purposeName(k.Purpose),
				SecurityLevel:  k.SecurityLevel.String(),
				DerivationPath: k.DerivationPath,
				PublicKeyHex:   fmt.Sprintf("%x", k.PayloadData),
			}
			if k.KeyPair != nil {
				wif, err := keyops.PrivateKeyToWIF(k.KeyPair.PrivateKey, s.Network, true)
				if err != nil {
					return nil, err
				}
				entry.PrivateKeyWIF = wif
				entry.PrivateKeyHex = fmt.Sprintf("%x", k.KeyPair.PrivateKey)
			}
			b.IdentityKeys = append(b.IdentityKeys, entry)
		}
	case ModeTopUp, ModeFundAddress:
		b.TargetIdentityID = s.TargetIdentityID
	case ModeSendToAddress:
		b.RecipientPlatformAddress = s.RecipientPlatformAddress
	}

	return b, nil
}

func keyTypeName(t keyops.KeyType) string {
	if t == keyops.ECDSAHash160 {
		return "ECDSA_HASH160"
	}
	return "ECDSA_SECP256K1"
}

func purposeName(p keyops.Purpose) string {
	names := [...]string{"AUTHENTICATION", "ENCRYPTION", "DECRYPTION", "TRANSFER", "VOTING", "OWNER"}
	if int(p) < len(names) {
		return names[p]
	}
	return "UNKNOWN"
}

// MarshalJSON-friendly helper: ToJSON renders the backup as indented
// JSON, matching the export format users download.
func (b *KeyBackup) ToJSON() ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

// Filename derives the backup's download name per the bridge's naming
// convention, which prioritizes the most specific identifier known at
// export time.
func (b *KeyBackup) Filename() string {
	switch {
	case b.IdentityID != "":
		return fmt.Sprintf("dash-identity-%s.json", b.IdentityID)
	case b.Mode == ModeTopUp.String() && len(b.TargetIdentityID) >= 8:
		return fmt.Sprintf("dash-topup-%s-recovery.json", b.TargetIdentityID[:8])
	case b.Mode == ModeSendToAddress.String() && len(b.RecipientPlatformAddress) >= 8:
		addr := b.RecipientPlatformAddress
		return fmt.Sprintf("dash-send-to-address-%s-recovery.json", addr[len(addr)-8:])
	case b.DepositAddress != "":
		prefix, suffix := shortFingerprint(b.DepositAddress)
		return fmt.Sprintf("dash-keys-%s-%s-pending.json", prefix, suffix)
	default:
		return "dash-keys-pending.json"
	}
}

func shortFingerprint(s string) (prefix, suffix string) {
	if len(s) <= 8 {
		return s, s
	}
	return s[:4], s[len(s)-4:]
}
