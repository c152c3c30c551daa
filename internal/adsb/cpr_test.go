package adsb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCPRNLTableMonotonic(t *testing.T) {
	assert.Equal(t, 59, cprNL(0))
	assert.Equal(t, 1, cprNL(89))
}

func TestCPRNLChangesAcrossFirstBoundary(t *testing.T) {
	assert.NotEqual(t, cprNL(10.0), cprNL(11.0))
}

func TestSolveGlobalCPRWithinExpectedWindow(t *testing.T) {
	even := CPRFragment{RawLat: 93000, RawLon: 51372}
	odd := CPRFragment{RawLat: 74158, RawLon: 50194}

	lat, lon, ok := SolveGlobalCPR(even, odd, false)
	assert.True(t, ok)
	assert.Greater(t, lat, 51.0)
	assert.Less(t, lat, 52.5)
	assert.Greater(t, lon, -1.0)
	assert.Less(t, lon, 1.5)
}

func TestCprModFloatAlwaysNonNegative(t *testing.T) {
	assert.GreaterOrEqual(t, cprModFloat(-5, 3), 0.0)
	assert.GreaterOrEqual(t, cprModFloat(-100.5, 59), 0.0)
}
