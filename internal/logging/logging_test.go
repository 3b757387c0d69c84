package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetupWriter_Levels(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.WarnLevel)

	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		SetupWriter(&buf, tt.verbosity)
		assert.Equal(t, tt.want, zerolog.GlobalLevel(), "verbosity %d", tt.verbosity)
	}
}

func TestGet_TagsComponent(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.WarnLevel)

	var buf bytes.Buffer
	SetupWriter(&buf, 0)

	logger := Get("catalog")
	logger.Warn().Msg("duplicate template type")

	out := buf.String()
	assert.Contains(t, out, "duplicate template type")
	assert.Contains(t, out, "component=catalog")
}

func TestSetupWriter_SuppressesBelowLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.WarnLevel)

	var buf bytes.Buffer
	SetupWriter(&buf, 0)

	logger := Get("render")
	logger.Debug().Msg("hidden")

	assert.NotContains(t, buf.String(), "hidden")
}
