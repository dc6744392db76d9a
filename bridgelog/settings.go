// Package bridgelog configures the process-wide logrus logger used by
// every component of the bridge core.
package bridgelog

import (
	myLogger "github.com/sirupsen/logrus"
)

// Format selects the logrus formatter Configure installs.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Settings is the full set of knobs Configure applies. The three
// named presets below (ConfigDebugLogger/ConfigInfoLogger/
// ConfigProductionLogger) are just literal Settings values passed
// through the same call, so a session driven by config.Config's
// LogLevel/LogFormat fields goes through the identical code path.
type Settings struct {
	Level        myLogger.Level
	Format       Format
	ReportCaller bool
	ForceColors  bool
}

// Configure installs s as the process-wide logrus configuration.
func Configure(s Settings) {
	myLogger.SetReportCaller(s.ReportCaller)
	myLogger.SetLevel(s.Level)
	if s.Format == FormatJSON {
		myLogger.SetFormatter(&myLogger.JSONFormatter{})
		return
	}
	myLogger.SetFormatter(&myLogger.TextFormatter{
		ForceColors:            s.ForceColors,
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
		PadLevelText:           true,
	})
}

// ConfigureFromStrings resolves level/format strings as read from a
// config file (e.g. config.Config's LogLevel/LogFormat) into Settings
// and applies them, defaulting to the same text/info preset
// ConfigInfoLogger uses when either string is empty or unrecognized.
func ConfigureFromStrings(level, format string, reportCaller bool) {
	lv, err := myLogger.ParseLevel(level)
	if err != nil {
		lv = myLogger.InfoLevel
	}
	f := FormatText
	if Format(format) == FormatJSON {
		f = FormatJSON
	}
	Configure(Settings{Level: lv, Format: f, ReportCaller: reportCaller, ForceColors: f == FormatText})
}

// ConfigDebugLogger is this output format used in the test (has terminal).
func ConfigDebugLogger() {
	Configure(Settings{Level: myLogger.DebugLevel, Format: FormatText, ReportCaller: true, ForceColors: true})
}

// ConfigInfoLogger is the default interactive cmd/bridge_cmd preset.
func ConfigInfoLogger() {
	Configure(Settings{Level: myLogger.InfoLevel, Format: FormatText, ReportCaller: false, ForceColors: true})
}

// ConfigProductionLogger is this output format used in production:
// JSON lines, no caller info.
func ConfigProductionLogger() {
	Configure(Settings{Level: myLogger.InfoLevel, Format: FormatJSON, ReportCaller: false, ForceColors: false})
}

// WithSession returns a logger entry carrying the bridge session's
// network and mode, the two fields every pipeline log line needs.
func WithSession(network, mode string) *myLogger.Entry {
	return myLogger.WithFields(myLogger.Fields{
		"network": network,
		"mode":    mode,
	})
}
