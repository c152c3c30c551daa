package adsb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMagnitudeLUTSymmetric(t *testing.T) {
	lut := NewMagnitudeLUT()
	for i := uint8(0); i < 255; i += 17 {
		for q := uint8(0); q < 255; q += 17 {
			assert.Equal(t, lut.Lookup(i, q), lut.Lookup(q, i))
		}
	}
}

func TestMagnitudeLUTExtremes(t *testing.T) {
	lut := NewMagnitudeLUT()
	assert.Greater(t, int(lut.Lookup(255, 255)), 65000)
	assert.InDelta(t, 46080, int(lut.Lookup(255, 127)), 10)
	assert.Less(t, int(lut.Lookup(127, 127)), 100)
}

func TestComputeMagnitudeVectorLength(t *testing.T) {
	lut := NewMagnitudeLUT()
	iq := make([]byte, 20)
	out := lut.ComputeMagnitudeVector(iq, nil)
	assert.Len(t, out, 10)
}
