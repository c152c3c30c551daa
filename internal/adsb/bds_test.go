package adsb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifyBDSDataLinkCapability(t *testing.T) {
	mb := [7]byte{0x10, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	r := IdentifyBDS(mb)
	assert.Equal(t, BdsDataLinkCapability, r.Kind)
}

func TestIdentifyBDSAircraftIdentification(t *testing.T) {
	mb := [7]byte{0x20, 0x15, 0x10, 0x82, 0x28, 0x20, 0x00}
	r := IdentifyBDS(mb)
	assert.Equal(t, BdsAircraftIdentification, r.Kind)
	assert.NotEmpty(t, r.Callsign)
}

func TestIdentifyBDSUnknownFallsThrough(t *testing.T) {
	mb := [7]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	r := IdentifyBDS(mb)
	assert.Equal(t, BdsUnknown, r.Kind)
}

func TestIdentifyBDS40RejectsHighAltitude(t *testing.T) {
	// MCP status bit set with a raw value scaling well beyond 50000ft.
	mb := [7]byte{0xff, 0xf8, 0x00, 0x00, 0x00, 0x00, 0x00}
	r := IdentifyBDS(mb)
	assert.NotEqual(t, BdsSelectedVerticalIntention, r.Kind)
}
