package adsb

import (
	"strconv"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

const (
	preambleSamples  = 8 * 2  // 8us preamble, 2 samples/us
	minWindowSamples = (8 + longFrameBits/8*8) * 2
)

// DemodStats are counters updated in place by Demodulator.ProcessSamples; safe to
// read after the demodulator has stopped, not safe for concurrent reads
// while it is running.
type DemodStats struct {
	PreamblesSeen      uint64
	FramesAccepted     uint64
	FramesCorrupted    uint64
	UnknownAddress     uint64
	SingleBitRepairs   uint64
	TwoBitRepairs      uint64
	PhaseCorrections   uint64
}

// Demodulator owns the ICAO-known-address set and the signal statistics
// estimator, and is the single producer of DecodedFrame values onto a
// bounded channel. It must not be shared across goroutines.
type Demodulator struct {
	lut        *MagnitudeLUT
	stats      *SignalStats
	known      *cache.Cache
	aggressive bool
	logger     *logrus.Logger

	Counters DemodStats
}

// knownAddressTTL is how long an ICAO address recovered from a
// CRC-validated DF11/17/18 frame stays eligible to bind a later
// address-in-CRC frame (DF0/4/5/16/20/21).
const knownAddressTTL = 60 * time.Second

// NewDemodulator constructs a Demodulator. aggressive enables the O(n^2)
// two-bit CRC repair search for DF17 frames.
func NewDemodulator(aggressive bool, logger *logrus.Logger) *Demodulator {
	return &Demodulator{
		lut:        NewMagnitudeLUT(),
		stats:      NewSignalStats(),
		known:      cache.New(knownAddressTTL, knownAddressTTL/2),
		aggressive: aggressive,
		logger:     logger,
	}
}

// ProcessSamples scans one magnitude window for Mode S frames, emitting
// each accepted DecodedFrame on out. out must have enough capacity that
// a full channel implements backpressure rather than silently blocking
// forever on shutdown; callers are expected to select on a cancellation
// context around the send in their own read loop (ProcessSamples itself
// performs a blocking send, matching the no-drop policy).
func (d *Demodulator) ProcessSamples(mag []uint16, out chan<- DecodedFrame) {
	d.stats.UpdateNoiseFloor(mag)

	for j := 0; j+minWindowSamples <= len(mag); {
		if !preambleMatches(mag, j) {
			j++
			continue
		}
		d.Counters.PreamblesSeen++

		peak := preamblePeak(mag, j)
		frame, bits, ok := sliceBits(mag, j)
		if !ok {
			j++
			continue
		}

		decoded, accepted := d.validateAndParse(frame, bits, peak, false)
		if !accepted && d.stats.ShouldTryPhaseCorrection(peak) && j+1+minWindowSamples <= len(mag) {
			if frame, bits, ok = sliceBits(mag, j+1); ok {
				decoded, accepted = d.validateAndParse(frame, bits, peak, true)
				if accepted {
					d.Counters.PhaseCorrections++
				}
			}
		}
		if accepted {
			out <- decoded
			d.Counters.FramesAccepted++
			j += (8 + bits) * 2
		} else {
			j++
		}
	}
}

// preambleMatches implements the exact Mode S preamble predicate: pulses
// at 0, 1.0, 3.5 and 4.5us (samples j, j+2, j+7, j+9), with samples
// j+4..j+6 below the first pulse, followed by a data-start gap check.
func preambleMatches(m []uint16, j int) bool {
	if j+14 >= len(m) {
		return false
	}
	if !(m[j] > m[j+1] && m[j+1] < m[j+2] && m[j+2] > m[j+3] && m[j+3] < m[j]) {
		return false
	}
	if !(m[j+4] < m[j] && m[j+5] < m[j] && m[j+6] < m[j]) {
		return false
	}
	if !(m[j+7] > m[j+8] && m[j+8] < m[j+9] && m[j+9] > m[j+6]) {
		return false
	}

	high := (uint32(m[j]) + uint32(m[j+2]) + uint32(m[j+7]) + uint32(m[j+9])) / 6
	if uint32(m[j+4]) >= high || uint32(m[j+5]) >= high {
		return false
	}
	for k := 11; k <= 14; k++ {
		if uint32(m[j+k]) >= high {
			return false
		}
	}
	return true
}

func preamblePeak(m []uint16, j int) float64 {
	return float64(uint32(m[j])+uint32(m[j+2])+uint32(m[j+7])+uint32(m[j+9])) / 4
}

// sliceBits demodulates 112 candidate bits starting at the half-chip
// offsets j+16+2i, trims to the frame's actual length from byte 0, and
// reports whether enough samples were available.
func sliceBits(m []uint16, j int) ([frameBytes]byte, int, bool) {
	var out [frameBytes]byte
	prevBit := byte(0)
	for i := 0; i < longFrameBits; i++ {
		first := j + 16 + 2*i
		second := first + 1
		if second >= len(m) {
			return out, 0, false
		}

		var bit byte
		switch {
		case m[first] > m[second]:
			bit = 1
		case m[first] < m[second]:
			bit = 0
		default:
			bit = prevBit
		}
		prevBit = bit

		if bit == 1 {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}

	df := out[0] >> 3
	bits := shortFrameBits
	switch df {
	case 16, 17, 19, 20, 21:
		bits = longFrameBits
	}
	return out, bits, true
}

// validateAndParse runs CRC validation, address recovery, and optional
// error correction, then dispatches through the known-address state
// machine described for address-in-CRC downlink formats.
func (d *Demodulator) validateAndParse(raw [frameBytes]byte, bits int, signal float64, phaseCorrected bool) (DecodedFrame, bool) {
	df := raw[0] >> 3

	switch df {
	case dfAllCallReply, dfExtendedSquitter:
		errBit := -1
		if !Verify(raw[:], bits) {
			if bit, ok := FixSingle(raw[:], bits); ok {
				errBit = bit
				d.Counters.SingleBitRepairs++
			} else if d.aggressive && df == dfExtendedSquitter {
				if b1, b2, ok := FixTwo(raw[:], bits); ok {
					frame := ParseFrame(raw, bits, icaoFromBytes(raw), true)
					frame.ErrorBit, frame.ErrorBit2 = b1, b2
					frame.SignalLevel = signal
					frame.PhaseCorrected = phaseCorrected
					frame.Timestamp = time.Now()
					d.Counters.TwoBitRepairs++
					d.rememberAddress(frame.ICAO)
					return frame, true
				}
				d.Counters.FramesCorrupted++
				return DecodedFrame{}, false
			} else {
				d.Counters.FramesCorrupted++
				return DecodedFrame{}, false
			}
		}
		icao := icaoFromBytes(raw)
		frame := ParseFrame(raw, bits, icao, true)
		frame.ErrorBit = errBit
		frame.SignalLevel = signal
		frame.PhaseCorrected = phaseCorrected
		frame.Timestamp = time.Now()
		d.rememberAddress(icao)
		return frame, true

	case dfExtendedSquitterNonICAO:
		// DF18 never gets single- or two-bit CRC repair: only DF11 and
		// DF17 are eligible, so a CRC mismatch here is corruption, not a
		// correctable bit flip.
		if !Verify(raw[:], bits) {
			d.Counters.FramesCorrupted++
			return DecodedFrame{}, false
		}
		icao := icaoFromBytes(raw)
		frame := ParseFrame(raw, bits, icao, true)
		frame.SignalLevel = signal
		frame.PhaseCorrected = phaseCorrected
		frame.Timestamp = time.Now()
		d.rememberAddress(icao)
		return frame, true

	case dfShortAirSurveillance, dfSurveillanceAltitude, dfSurveillanceIdentity, dfLongAirAir, dfCommBAltitude, dfCommBIdentity:
		icao := RecoverICAO(raw[:], bits)
		if !d.isKnown(icao) {
			d.Counters.UnknownAddress++
			return DecodedFrame{}, false
		}
		frame := ParseFrame(raw, bits, icao, true)
		frame.SignalLevel = signal
		frame.PhaseCorrected = phaseCorrected
		frame.Timestamp = time.Now()
		return frame, true

	default:
		return DecodedFrame{}, false
	}
}

func icaoFromBytes(raw [frameBytes]byte) uint32 {
	return uint32(raw[1])<<16 | uint32(raw[2])<<8 | uint32(raw[3])
}

func (d *Demodulator) rememberAddress(icao uint32) {
	d.known.SetDefault(icaoKey(icao), struct{}{})
}

func (d *Demodulator) isKnown(icao uint32) bool {
	_, ok := d.known.Get(icaoKey(icao))
	return ok
}

func icaoKey(icao uint32) string {
	return strconv.FormatUint(uint64(icao), 16)
}
