// Package config loads one bridge session's runtime configuration
// from a viper-backed file, repointing the network's default Insight,
// islock, and faucet endpoints when an operator runs their own.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/dashpay/asset-lock-bridge/networkparams"
)

// Config is everything cmd/bridge_cmd needs to start a session.
type Config struct {
	Network      networkparams.Params
	InsightURL   string
	IslockURL    string
	FaucetURL    string
	MinUTXOValue int64
	LogLevel     string // passed to bridgelog.ConfigureFromStrings; default "info"
	LogFormat    string // "text" or "json"; default "text"
}

// FileExists reports whether path names a file viper can read and
// parse; the command-line tool runs it before calling Load.
func FileExists(path string) bool {
	v := viper.New()
	v.SetConfigFile(path)
	return v.ReadInConfig() == nil
}

// Load reads path (any format viper supports: yaml, toml, json, ini)
// and resolves it against the named network's defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	net := networkparams.For(v.GetString("NETWORK"))
	net = net.WithOverrides(v.GetString("INSIGHT_URL"), v.GetString("ISLOCK_URL"), v.GetString("FAUCET_URL"))

	minUTXO := v.GetInt64("MIN_UTXO_VALUE_DUFFS")
	if minUTXO <= 0 {
		minUTXO = net.DustThreshold
	}

	logLevel := v.GetString("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logFormat := v.GetString("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "text"
	}

	return &Config{
		Network:      net,
		InsightURL:   net.InsightBaseURL,
		IslockURL:    net.IslockRPCURL,
		FaucetURL:    net.FaucetBaseURL,
		MinUTXOValue: minUTXO,
		LogLevel:     logLevel,
		LogFormat:    logFormat,
	}, nil
}
