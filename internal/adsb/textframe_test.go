package adsb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHexFrameRoundTrip(t *testing.T) {
	raw, bits, err := ParseHexFrame("*8D4840D6202CC371C32CE0576098;")
	assert.NoError(t, err)
	assert.Equal(t, longFrameBits, bits)
	assert.Equal(t, "*8D4840D6202CC371C32CE0576098;", FormatHexFrame(raw, bits))
}

func TestParseHexFrameRejectsMalformed(t *testing.T) {
	cases := []string{"8D4840D6;", "*8D4840D6", "*8D4840D", "*" + string(make([]byte, 30)) + ";"}
	for _, c := range cases {
		_, _, err := ParseHexFrame(c)
		assert.Error(t, err, c)
	}
}
