package adsb

import (
	"math"
	"time"
)

// DecodedFrame is the record the demodulator emits and the tracker
// consumes: a parsed, CRC-checked Mode S reply.
type DecodedFrame struct {
	Raw   [frameBytes]byte
	Bits  int // 56 or 112
	DF    uint8
	ICAO  uint32

	CRCReceived uint32
	CRCOk       bool
	ErrorBit    int // -1 if no correction was applied
	ErrorBit2   int // -1 if no two-bit correction was applied

	PhaseCorrected bool
	SignalLevel    float64
	Timestamp      time.Time

	FlightStatus uint8
	HasAltitude  bool
	AltitudeFt   int
	HasSquawk    bool
	Squawk       uint16

	METype int
	MESub  int

	HasCallsign bool
	Callsign    string

	HasPosition bool
	FFlag       uint8 // 0 even, 1 odd
	TFlag       bool
	RawLat      uint32
	RawLon      uint32

	HasVelocity  bool
	GroundSpeed  float64
	Track        float64
	HasVertRate  bool
	VertRateFpm  int

	BDS BdsRecord
}

// ParseFrame interprets a byte-aligned, CRC-validated frame into a
// DecodedFrame. icao and crcOk must already be established by the
// caller (see the address-binding rules in the demodulator/tracker),
// since the source of the address differs by downlink format.
func ParseFrame(raw [frameBytes]byte, bits int, icao uint32, crcOk bool) DecodedFrame {
	f := DecodedFrame{
		Raw:         raw,
		Bits:        bits,
		DF:          raw[0] >> 3,
		ICAO:        icao,
		CRCReceived: Extract(raw[:], bits),
		CRCOk:       crcOk,
		ErrorBit:    -1,
		ErrorBit2:   -1,
	}

	switch f.DF {
	case dfShortAirSurveillance:
		f.parseAC13(raw[2], raw[3])
	case dfSurveillanceAltitude, dfLongAirAir:
		f.FlightStatus = (raw[0] >> 0) & 0x07
		f.parseAC13(raw[2], raw[3])
	case dfSurveillanceIdentity, dfCommBIdentity:
		f.FlightStatus = raw[0] & 0x07
		f.parseSquawk(raw[2], raw[3])
		if bits == longFrameBits {
			f.identifyCommB(raw)
		}
	case dfCommBAltitude:
		f.FlightStatus = raw[0] & 0x07
		f.parseAC13(raw[2], raw[3])
		f.identifyCommB(raw)
	case dfAllCallReply:
		// Address-binding only; no additional payload fields defined.
	case dfExtendedSquitter, dfExtendedSquitterNonICAO:
		f.parseExtendedSquitter(raw)
	}

	return f
}

func (f *DecodedFrame) parseAC13(b2, b3 byte) {
	alt, ok := decodeAC13(b2, b3)
	if ok {
		f.HasAltitude = true
		f.AltitudeFt = alt
	}
}

func (f *DecodedFrame) parseSquawk(b2, b3 byte) {
	// De-interleave the 13-bit identity field into A B C D octal groups.
	g := decodeGillhamID(uint16(b2&0x1f)<<8 | uint16(b3))
	raw := ((g>>12)&7)<<SquawkA4A2A1Shift | ((g>>8)&7)<<SquawkB4B2B1Shift |
		((g>>4)&7)<<SquawkC4C2C1Shift | (g&7)<<SquawkD4D2D1Shift
	a := (raw >> SquawkA4A2A1Shift) & SquawkA4A2A1Mask
	b := (raw >> SquawkB4B2B1Shift) & SquawkB4B2B1Mask
	c := (raw >> SquawkC4C2C1Shift) & SquawkC4C2C1Mask
	d := (raw >> SquawkD4D2D1Shift) & SquawkD4D2D1Mask
	f.HasSquawk = true
	f.Squawk = a*SquawkAMultiplier + b*SquawkBMultiplier + c*SquawkCMultiplier + d*SquawkDMultiplier
}

func (f *DecodedFrame) identifyCommB(raw [frameBytes]byte) {
	var mb [7]byte
	copy(mb[:], raw[4:11])
	f.BDS = IdentifyBDS(mb)
}

func (f *DecodedFrame) parseExtendedSquitter(raw [frameBytes]byte) {
	meType := int(raw[4] >> 3)
	meSub := int(raw[4] & 0x07)
	f.METype = meType
	f.MESub = meSub

	switch {
	case meType >= 1 && meType <= 4:
		f.Callsign = decodeCallsign(raw[5:11])
		f.HasCallsign = true
	case meType >= 9 && meType <= 18:
		f.parseAirbornePosition(raw)
	case meType == 19 && (meSub == 1 || meSub == 2):
		f.parseAirborneVelocity(raw)
	case meType == 19 && (meSub == 3 || meSub == 4):
		f.parseAirborneHeading(raw)
	}
}

func decodeCallsign(me []byte) string {
	bits := uint64(me[0])<<40 | uint64(me[1])<<32 | uint64(me[2])<<24 |
		uint64(me[3])<<16 | uint64(me[4])<<8 | uint64(me[5])

	buf := make([]byte, 8)
	for i := 0; i < 8; i++ {
		shift := uint(42 - 6*i)
		idx := (bits >> shift) & 0x3f
		buf[i] = AISCharset[idx]
	}
	end := len(buf)
	for end > 0 && (buf[end-1] == ' ' || buf[end-1] == '?') {
		end--
	}
	return string(buf[:end])
}

func (f *DecodedFrame) parseAirbornePosition(raw [frameBytes]byte) {
	field := uint16(raw[5])<<4 | uint16(raw[6])>>4
	alt, ok := decodeAC12(field)
	if ok {
		f.HasAltitude = true
		f.AltitudeFt = alt
	}

	f.TFlag = raw[6]&0x08 != 0
	f.FFlag = (raw[6] >> 2) & 0x01
	f.RawLat = (uint32(raw[6]&0x03) << 15) | (uint32(raw[7]) << 7) | (uint32(raw[8]) >> 1)
	f.RawLon = (uint32(raw[8]&0x01) << 16) | (uint32(raw[9]) << 8) | uint32(raw[10])
	f.HasPosition = true
}

func (f *DecodedFrame) parseAirborneVelocity(raw [frameBytes]byte) {
	ewDir := (raw[5] >> 2) & 0x01
	ewVel := int(raw[5]&0x03)<<8 | int(raw[6])
	nsDir := (raw[7] >> 7) & 0x01
	nsVel := int(raw[7]&0x7f)<<3 | int(raw[8])>>5

	ewSigned := ewVel - 1
	if ewDir != 0 {
		ewSigned = -ewSigned
	}
	nsSigned := nsVel - 1
	if nsDir != 0 {
		nsSigned = -nsSigned
	}

	f.GroundSpeed = math.Sqrt(float64(ewSigned*ewSigned + nsSigned*nsSigned))
	heading := math.Atan2(float64(ewSigned), float64(nsSigned)) * 180 / math.Pi
	if heading < 0 {
		heading += 360
	}
	f.Track = heading
	f.HasVelocity = true

	vrSign := (raw[8] >> 3) & 0x01
	vr := int(raw[8]&0x07)<<6 | int(raw[9])>>2
	if vr > 0 {
		rate := (vr - 1) * 64
		if vrSign != 0 {
			rate = -rate
		}
		f.HasVertRate = true
		f.VertRateFpm = rate
	}
}

func (f *DecodedFrame) parseAirborneHeading(raw [frameBytes]byte) {
	headingValid := raw[5]&0x04 != 0
	if !headingValid {
		return
	}
	raw11 := int(raw[5]&0x03)<<8 | int(raw[6])
	f.Track = float64(raw11) * 360.0 / 128.0
	f.HasVelocity = true
}
