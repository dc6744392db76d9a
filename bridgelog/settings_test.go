package bridgelog

import (
	"testing"

	myLogger "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestConfigureSelectsJSONFormatter(t *testing.T) {
	Configure(Settings{Level: myLogger.WarnLevel, Format: FormatJSON})
	assert.Equal(t, myLogger.WarnLevel, myLogger.GetLevel())
	_, ok := myLogger.StandardLogger().Formatter.(*myLogger.JSONFormatter)
	assert.True(t, ok)
}

func TestConfigureSelectsTextFormatter(t *testing.T) {
	Configure(Settings{Level: myLogger.DebugLevel, Format: FormatText})
	assert.Equal(t, myLogger.DebugLevel, myLogger.GetLevel())
	_, ok := myLogger.StandardLogger().Formatter.(*myLogger.TextFormatter)
	assert.True(t, ok)
}

func TestConfigureFromStringsDefaultsOnUnrecognizedLevel(t *testing.T) {
	ConfigureFromStrings("not-a-level", "json", false)
	assert.Equal(t, myLogger.InfoLevel, myLogger.GetLevel())
	_, ok := myLogger.StandardLogger().Formatter.(*myLogger.JSONFormatter)
	assert.True(t, ok)
}

func TestConfigureFromStringsDefaultsFormatToText(t *testing.T) {
	ConfigureFromStrings("debug", "", false)
	assert.Equal(t, myLogger.DebugLevel, myLogger.GetLevel())
	_, ok := myLogger.StandardLogger().Formatter.(*myLogger.TextFormatter)
	assert.True(t, ok)
}
