package adsb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func knownGoodFrame() []byte {
	return []byte{0x8D, 0x48, 0x40, 0xD6, 0x20, 0x2C, 0xC3, 0x71, 0xC3, 0x2C, 0xE0, 0x57, 0x60, 0x98}
}

func TestChecksumMatchesExtractOnValidFrame(t *testing.T) {
	frame := knownGoodFrame()
	assert.True(t, Verify(frame, longFrameBits))
}

func TestFixSingleNoOpOnValidFrame(t *testing.T) {
	frame := knownGoodFrame()
	_, ok := FixSingle(frame, longFrameBits)
	assert.False(t, ok)
}

func TestFixSingleRepairsEveryBitPosition(t *testing.T) {
	for bit := 0; bit < longFrameBits; bit++ {
		original := knownGoodFrame()
		corrupted := knownGoodFrame()
		flipBit(corrupted, bit)

		fixed, ok := FixSingle(corrupted, longFrameBits)
		assert.True(t, ok, "bit %d", bit)
		assert.Equal(t, bit, fixed)
		assert.Equal(t, original, corrupted)
	}
}

func TestFixSingleBit23(t *testing.T) {
	frame := knownGoodFrame()
	flipBit(frame, 23)
	bit, ok := FixSingle(frame, longFrameBits)
	assert.True(t, ok)
	assert.Equal(t, 23, bit)
	assert.Equal(t, knownGoodFrame(), frame)
}

func TestRecoverICAOIsZeroWhenAddressInBytes(t *testing.T) {
	frame := knownGoodFrame()
	assert.Equal(t, uint32(0), Checksum(frame, longFrameBits)^Extract(frame, longFrameBits))
}
