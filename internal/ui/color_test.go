package ui

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

// captureOutput redirects ui output into a buffer with colors disabled.
func captureOutput(fn func()) string {
	oldNoColor := color.NoColor
	oldOut := Out

	color.NoColor = true
	var buf bytes.Buffer
	Out = &buf

	fn()

	Out = oldOut
	color.NoColor = oldNoColor

	return buf.String()
}

func TestSuccess(t *testing.T) {
	output := captureOutput(func() {
		Success("wrote %d files", 3)
	})
	assert.Equal(t, "✓ wrote 3 files\n", output)
}

func TestError(t *testing.T) {
	output := captureOutput(func() {
		Error("failed with code %d: %s", 2, "template missing")
	})
	assert.Equal(t, "✗ failed with code 2: template missing\n", output)
}

func TestWarning(t *testing.T) {
	output := captureOutput(func() {
		Warning("skipping %s", "smtp")
	})
	assert.Equal(t, "⚠ skipping smtp\n", output)
}

func TestInfo(t *testing.T) {
	output := captureOutput(func() {
		Info("version: %s", "1.0.0")
	})
	assert.Equal(t, "version: 1.0.0\n", output)
}

func TestHeader(t *testing.T) {
	output := captureOutput(func() {
		Header("Service types (%d)", 2)
	})
	assert.Equal(t, "Service types (2)\n", output)
}

func TestItem(t *testing.T) {
	output := captureOutput(func() {
		Item("ping", "templates/service/ping.t")
	})
	assert.Contains(t, output, "ping")
	assert.Contains(t, output, "templates/service/ping.t")

	output = captureOutput(func() {
		Item("server", "")
	})
	assert.Equal(t, "  server\n", output)
}

func TestColorsAreInitialized(t *testing.T) {
	for _, c := range []*color.Color{Red, Green, Yellow, Blue, Cyan, Bold} {
		assert.NotNil(t, c)
	}
}
