package main

import (
	"context"
	"fmt"

	"github.com/dashpay/asset-lock-bridge/platformdriver"
)

// unconfiguredPlatform satisfies platformdriver.Driver so the terminal
// tool can drive every L1 step (keys, deposit, build, sign, broadcast,
// islock, proof) without a real Platform SDK wired in. The final
// PlatformDriver call — the only piece this module does not own, per
// platformdriver's package doc — fails with a clear message instead of
// a nil-pointer panic.
type unconfiguredPlatform struct{}

var errPlatformNotConfigured = fmt.Errorf("platform SDK endpoint not configured for this build; see platformdriver.Driver")

func (unconfiguredPlatform) Create(ctx context.Context, req platformdriver.CreateRequest) (*platformdriver.CreateResult, error) {
	return nil, &platformdriver.SdkError{Op: "create", Err: errPlatformNotConfigured}
}

func (unconfiguredPlatform) TopUp(ctx context.Context, req platformdriver.TopUpRequest) error {
	return &platformdriver.SdkError{Op: "topup", Err: errPlatformNotConfigured}
}

func (unconfiguredPlatform) Update(ctx context.Context, req platformdriver.UpdateRequest) error {
	return &platformdriver.SdkError{Op: "update", Err: errPlatformNotConfigured}
}

func (unconfiguredPlatform) FundFromAssetLock(ctx context.Context, req platformdriver.FundFromAssetLockRequest) error {
	return &platformdriver.SdkError{Op: "fundFromAssetLock", Err: errPlatformNotConfigured}
}

func (unconfiguredPlatform) FetchIdentity(ctx context.Context, id string) (*platformdriver.IdentityShell, error) {
	return nil, &platformdriver.SdkError{Op: "fetchIdentity", Err: errPlatformNotConfigured}
}

func (unconfiguredPlatform) DPNS() platformdriver.DPNS { return unconfiguredDPNS{} }

type unconfiguredDPNS struct{}

func (unconfiguredDPNS) IsNameAvailable(ctx context.Context, label string) (bool, error) {
	return false, &platformdriver.SdkError{Op: "dpns.isNameAvailable", Err: errPlatformNotConfigured}
}

func (unconfiguredDPNS) RegisterName(ctx context.Context, req platformdriver.RegisterNameRequest) error {
	return &platformdriver.SdkError{Op: "dpns.registerName", Err: errPlatformNotConfigured}
}
