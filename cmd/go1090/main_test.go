package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go1090/internal/app"
)

// Smoke-tests the defaults main.go hands to cobra, since main() itself
// blocks on device init and a shutdown signal and isn't unit-testable.
func TestDefaultConfigValues(t *testing.T) {
	cfg := app.NewDefaultConfig()

	assert.Equal(t, uint32(1090000000), cfg.Frequency)
	assert.Equal(t, uint32(2000000), cfg.SampleRate)
	assert.Equal(t, 40, cfg.Gain)
	assert.False(t, cfg.Aggressive)
	assert.False(t, cfg.LoopFile)
	assert.Empty(t, cfg.InputFile)
}
