package bridgestate

import (
	"github.com/pkg/errors"
)

// Sentinel errors the driver and key-validation paths surface, created
// with github.com/pkg/errors. They are returned as they are: no
// collaborator failure is wrapped inside them, and collaborator errors
// reach the caller unwrapped.
var (
	ErrInvalidIdentityID       = errors.New("bridgestate: invalid identity id")
	ErrInvalidPlatformAddress  = errors.New("bridgestate: invalid platform address")
	ErrInvalidMnemonic         = errors.New("bridgestate: invalid mnemonic")
	ErrKeyPurposeNotAllowed    = errors.New("bridgestate: key purpose not allowed for this operation")
	ErrKeySecurityLevelNotAllowed = errors.New("bridgestate: key security level not allowed for this operation")
	ErrWifNetworkMismatch      = errors.New("bridgestate: WIF prefix does not match session network")
	ErrNoMatchingKey           = errors.New("bridgestate: no identity key matches the supplied private key")
	ErrUserCancelled           = errors.New("bridgestate: session cancelled while a request was in flight")
	ErrIslockTimeout           = errors.New("bridgestate: timed out waiting for InstantSend lock")
	ErrConfirmationTimeout     = errors.New("bridgestate: timed out waiting for confirmation")
)

// KeySecurityLevelNotAllowedError carries the offending level so the
// presenter can render it verbatim, e.g.
// KeySecurityLevelNotAllowed("CRITICAL").
type KeySecurityLevelNotAllowedError struct {
	Level string
}

func (e *KeySecurityLevelNotAllowedError) Error() string {
	return "bridgestate: key security level not allowed: " + e.Level
}
