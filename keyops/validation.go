package keyops

import "fmt"

// KeyValidationError is the typed error surfaced when a matched key
// doesn't satisfy an operation's purpose/security-level requirement.
type KeyValidationError struct {
	Operation string
	Cause     string
}

func (e *KeyValidationError) Error() string {
	return fmt.Sprintf("keyops: key validation failed for %s: %s", e.Operation, e.Cause)
}

// RequireMasterForUpdate enforces the rule that identity updates (add/
// disable keys) require a MASTER-level key, regardless of purpose.
func RequireMasterForUpdate(mk *MatchedKey) error {
	if mk.SecurityLevel != SecurityMaster {
		return &KeyValidationError{Operation: "identity update", Cause: mk.SecurityLevel.String()}
	}
	return nil
}

// RequireAuthCriticalOrHighForDPNS enforces DPNS registration's rule:
// AUTHENTICATION purpose, CRITICAL or HIGH security level.
func RequireAuthCriticalOrHighForDPNS(mk *MatchedKey) error {
	if mk.Purpose != PurposeAuthentication {
		return &KeyValidationError{Operation: "DPNS registration", Cause: "purpose is not AUTHENTICATION"}
	}
	if mk.SecurityLevel != SecurityCritical && mk.SecurityLevel != SecurityHigh {
		return &KeyValidationError{Operation: "DPNS registration", Cause: mk.SecurityLevel.String()}
	}
	return nil
}

// RejectTransferBelowCritical implements the SDK call path's explicit
// rejection of TRANSFER-purpose keys below CRITICAL (the counterpart
// to NormalizeTransferSecurityLevel's silent coercion of locally
// built keys — see DESIGN.md).
func RejectTransferBelowCritical(k *IdentityKey) error {
	if k.Purpose == PurposeTransfer && k.SecurityLevel != SecurityCritical {
		return &KeyValidationError{Operation: "identity key submission", Cause: fmt.Sprintf("TRANSFER key %d has security level %s, not CRITICAL", k.ID, k.SecurityLevel)}
	}
	return nil
}
