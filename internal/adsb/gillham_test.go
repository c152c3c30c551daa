package adsb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGillhamRejectsOutOfRange(t *testing.T) {
	_, ok := gillhamToAltitude(0)
	assert.False(t, ok)
}

func TestDecodeAC13QBitFeet(t *testing.T) {
	// N=0 with Q set should yield -1000 ft.
	alt, ok := decodeAC13(0x00, 0x10)
	assert.True(t, ok)
	assert.Equal(t, -1000, alt)
}

func TestGillhamRoundTripIsIdentityAcrossTheGrid(t *testing.T) {
	for alt := -1200; alt <= 126700; alt += 100 {
		id13, ok := encodeGillham(alt)
		if !assert.True(t, ok, "altitude %d ft has no Gillham encoding", alt) {
			continue
		}
		got, ok := gillhamToAltitude(decodeGillhamID(id13))
		assert.True(t, ok, "altitude %d ft round-trip failed to decode", alt)
		assert.Equal(t, alt, got, "altitude %d ft did not round-trip", alt)
	}
}

func TestEncodeGillhamRejectsOffGridAltitude(t *testing.T) {
	_, ok := encodeGillham(-1250)
	assert.False(t, ok)
}
