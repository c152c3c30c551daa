package adsb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSNRZeroWhenBelowFloor(t *testing.T) {
	s := NewSignalStats()
	assert.Equal(t, 0.0, s.SNRDb(50))
}

func TestShouldTryPhaseCorrectionBand(t *testing.T) {
	s := &SignalStats{noiseFloor: 100}
	// SNR = 20*log10(signal/noise); pick a signal in [2,8]dB above floor.
	assert.True(t, s.ShouldTryPhaseCorrection(150))
	assert.False(t, s.ShouldTryPhaseCorrection(1000))
}

func TestUpdateNoiseFloorIgnoresShortWindows(t *testing.T) {
	s := NewSignalStats()
	before := s.NoiseFloor()
	s.UpdateNoiseFloor(make([]uint16, 4))
	assert.Equal(t, before, s.NoiseFloor())
}
