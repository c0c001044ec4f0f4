package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}

func TestInitLoggerTo(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerTo(&buf, "warn")

	logger := GetLogger()
	logger.Info().Msg("hidden")
	logger.Warn().Int("ability", 17962).Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "ability=17962")
}

func TestGetLogger_FollowsReinit(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerTo(&buf, "info")
	logger := GetLogger()

	// The CLIs grab the logger before the config level is known.
	InitLoggerTo(&buf, "error")
	logger.Warn().Msg("suppressed")
	logger.Error().Msg("kept")

	out := buf.String()
	assert.NotContains(t, out, "suppressed")
	assert.Contains(t, out, "kept")
}
