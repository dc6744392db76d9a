// Package networkparams holds the per-network constants the rest of
// the bridge is parameterized on: address/WIF version bytes, fee and
// dust policy, Platform HRP, and the service endpoints.
package networkparams

import "fmt"

// Network identifies which Dash network a bridge session targets.
type Network string

const (
	Testnet Network = "testnet"
	Mainnet Network = "mainnet"
)

// Params is the immutable configuration for one bridge session.
type Params struct {
	Name Network

	InsightBaseURL string
	IslockRPCURL   string
	FaucetBaseURL  string // empty on mainnet

	AddressVersion byte
	WIFPrefix      byte

	MinFeeDuffs     int64
	DustThreshold   int64
	PlatformHRP     string
	BIP44CoinType   uint32
}

var testnetParams = Params{
	Name:            Testnet,
	InsightBaseURL:  "https://insight.testnet.networks.dash.org/insight-api",
	IslockRPCURL:    "https://trpc.digitalcash.dev",
	FaucetBaseURL:   "https://faucet.testnet.networks.dash.org",
	AddressVersion:  140, // 0x8c
	WIFPrefix:       239, // 0xef
	MinFeeDuffs:     1000,
	DustThreshold:   546,
	PlatformHRP:     "tdash",
	BIP44CoinType:   1,
}

var mainnetParams = Params{
	Name:            Mainnet,
	InsightBaseURL:  "https://insight.dash.org/insight-api",
	IslockRPCURL:    "https://rpc.digitalcash.dev",
	FaucetBaseURL:   "",
	AddressVersion:  76, // 0x4c
	WIFPrefix:       204, // 0xcc
	MinFeeDuffs:     1000,
	DustThreshold:   546,
	PlatformHRP:     "dash",
	BIP44CoinType:   5,
}

// For looks up the canonical parameters for a network name. Any value
// other than "mainnet" resolves to testnet, matching the `?network=`
// URL contract: unrecognized or absent values default safely to the
// non-production network.
func For(name string) Params {
	if name == string(Mainnet) {
		return mainnetParams
	}
	return testnetParams
}

// WithOverrides returns a copy of p with the given non-empty URL
// overrides applied
// (used by config.Load to repoint Insight/islock/faucet URLs without
// touching the network's monetary constants).
func (p Params) WithOverrides(insightURL, islockURL, faucetURL string) Params {
	out := p
	if insightURL != "" {
		out.InsightBaseURL = insightURL
	}
	if islockURL != "" {
		out.IslockRPCURL = islockURL
	}
	if faucetURL != "" {
		out.FaucetBaseURL = faucetURL
	}
	return out
}

func (p Params) String() string {
	return fmt.Sprintf("networkparams.Params{%s}", p.Name)
}
