package adsb

// AISCharset is the 64-entry 6-bit character set used by Mode S aircraft
// identification messages (DF17/18 ME type 1-4, and BDS 2,0). Unused
// indices map to '?', which the callsign decoder treats as a rejection
// signal for the BDS 2,0 structural probe but tolerates elsewhere.
const AISCharset = "?ABCDEFGHIJKLMNOPQRSTUVWXYZ????? 0123456789?????????????????????"

// CPR decoding constants.
const (
	CPRLatBits = 17
	CPRLonBits = 17
	CPRLatMax  = 131072 // 2^17
	CPRLonMax  = 131072 // 2^17

	cprDLatEven = 360.0 / 60.0
	cprDLatOdd  = 360.0 / 59.0

	// cprPairMaxAge is how stale the opposite-parity fragment may be
	// before a pair is no longer eligible for a global CPR solve.
	cprPairMaxAge = 10 // seconds
)

// Squawk code bit manipulation constants.
const (
	SquawkA4A2A1Mask = 0x07
	SquawkB4B2B1Mask = 0x07
	SquawkC4C2C1Mask = 0x07
	SquawkD4D2D1Mask = 0x07

	SquawkA4A2A1Shift = 9
	SquawkB4B2B1Shift = 6
	SquawkC4C2C1Shift = 3
	SquawkD4D2D1Shift = 0

	SquawkAMultiplier = 1000
	SquawkBMultiplier = 100
	SquawkCMultiplier = 10
	SquawkDMultiplier = 1
)

// BDS register numeric scales (see BDS 4,0/5,0/6,0 structural checks).
const (
	mcpAltScaleFt    = 16.0
	baroSettingBase  = 800.0
	baroSettingScale = 0.1
	rollScaleDeg     = 45.0 / 256.0
	trackScaleDeg    = 90.0 / 512.0
	speedScaleKt     = 2.0
	headingScaleDeg  = 90.0 / 512.0
	machScale        = 0.008
	vertRateScaleFpm = 32.0

	maxMCPAltitudeFt = 50000.0
	minBaroSettingMb = 850.0
	maxBaroSettingMb = 1100.0
	maxRollDeg       = 60.0
	maxGroundSpeedKt = 600.0
	maxTASKt         = 600.0
	maxIASKt         = 500.0
	maxMach          = 1.0
)

// Downlink formats handled by the message parser.
const (
	dfShortAirSurveillance    = 0
	dfSurveillanceAltitude    = 4
	dfSurveillanceIdentity    = 5
	dfAllCallReply            = 11
	dfLongAirAir              = 16
	dfExtendedSquitter        = 17
	dfExtendedSquitterNonICAO = 18
	dfCommBAltitude           = 20
	dfCommBIdentity           = 21
)

const (
	shortFrameBits = 56
	longFrameBits  = 112
	frameBytes     = 14

	// ShortFrameBits and LongFrameBits are the public names used by
	// collaborators outside this package (e.g. the Beast codec) that
	// need to size a frame buffer before calling ParseFrame.
	ShortFrameBits = shortFrameBits
	LongFrameBits  = longFrameBits
)
