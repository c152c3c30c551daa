package adsb

import "math"

// CPRFragment is one half of a paired global airborne CPR position report.
type CPRFragment struct {
	RawLat uint32
	RawLon uint32
}

// SolveGlobalCPR combines an even and an odd airborne-position fragment
// into a single WGS-84 fix. oddIsNewer selects which fragment's longitude
// zone is used to resolve the ambiguous longitude. Returns ok=false when
// the pair straddles an NL boundary (the two fragments disagree on the
// number of longitude zones) and no solve is possible.
func SolveGlobalCPR(even, odd CPRFragment, oddIsNewer bool) (lat, lon float64, ok bool) {
	latE := float64(even.RawLat)
	latO := float64(odd.RawLat)

	j := math.Floor((59*latE-60*latO)/131072 + 0.5)

	rlatEven := cprDLatEven * (cprModFloat(j, 60) + latE/131072)
	rlatOdd := cprDLatOdd * (cprModFloat(j, 59) + latO/131072)
	if rlatEven >= 270 {
		rlatEven -= 360
	}
	if rlatOdd >= 270 {
		rlatOdd -= 360
	}

	nlEven := cprNL(rlatEven)
	nlOdd := cprNL(rlatOdd)
	if nlEven != nlOdd {
		return 0, 0, false
	}

	if oddIsNewer {
		nlOddLat := cprNL(rlatOdd)
		ni := nlOddLat - 1
		if ni < 1 {
			ni = 1
		}
		lonE := float64(even.RawLon)
		lonO := float64(odd.RawLon)
		m := math.Floor((lonE*float64(nlOddLat-1)-lonO*float64(nlOddLat))/131072 + 0.5)
		lon := (360.0 / float64(ni)) * (cprModFloat(m, float64(ni)) + lonO/131072)
		lat = rlatOdd
		lon = normalizeLongitude(lon)
		return lat, lon, true
	}

	ni := cprNL(rlatEven)
	if ni < 1 {
		ni = 1
	}
	lonE := float64(even.RawLon)
	lonO := float64(odd.RawLon)
	m := math.Floor((lonE*float64(cprNL(rlatEven)-1)-lonO*float64(cprNL(rlatEven)))/131072 + 0.5)
	lon = (360.0 / float64(ni)) * (cprModFloat(m, float64(ni)) + lonE/131072)
	lat = rlatEven
	lon = normalizeLongitude(lon)
	return lat, lon, true
}

func normalizeLongitude(lon float64) float64 {
	if lon > 180 {
		lon -= 360
	}
	return lon
}

// cprModFloat is the always-non-negative modulo used throughout CPR math.
func cprModFloat(a, b float64) float64 {
	r := math.Mod(a, b)
	if r < 0 {
		r += b
	}
	return r
}

// cprNLTable holds the latitude thresholds (in degrees): entry i is the
// upper bound (exclusive) of the band where NL = 59 - i.
var cprNLTable = [59]float64{
	10.47047130, 14.82817437, 18.18626357, 21.02939493, 23.54504487, 25.82924707, 27.93898710, 29.91135686,
	31.77209708, 33.53993436, 35.22899598, 36.85025108, 38.41241892, 39.92256684, 41.38651832, 42.80914012,
	44.19454951, 45.54626723, 46.86733252, 48.16039128, 49.42776439, 50.67150166, 51.89342469, 53.09516153,
	54.27817472, 55.44378444, 56.59318756, 57.72747354, 58.84763776, 59.95459277, 61.04917774, 62.13216659,
	63.20427479, 64.26616523, 65.31845310, 66.36171008, 67.39646774, 68.42322022, 69.44242631, 70.45451075,
	71.45986473, 72.45884545, 73.45177442, 74.43893416, 75.42056257, 76.39684391, 77.36789461, 78.33374083,
	79.29428225, 80.24923213, 81.19801349, 82.13956981, 83.07199445, 83.99173563, 84.89166191, 85.75541621,
	86.53536998, 87.00000000, 90.00000000,
}

// cprNL returns the number of longitude zones for the given latitude.
func cprNL(lat float64) int {
	if lat < 0 {
		lat = -lat
	}
	for i, threshold := range cprNLTable {
		if lat < threshold {
			return 59 - i
		}
	}
	return 1
}
