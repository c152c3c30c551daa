package adsb

import (
	"fmt"
	"sync"
	"time"
)

// Aircraft is the tracker's per-address record. The tracker is the sole
// mutator; external readers receive copies via Snapshot.
type Aircraft struct {
	ICAO     uint32
	Hex      string
	Callsign string
	Squawk   uint16

	AltitudeFt  int
	HasAltitude bool
	GroundSpeed float64
	Track       float64
	HasVelocity bool
	Lat, Lon    float64
	HasPosition bool

	RollDeg        float64
	HasRoll        bool
	TrueAirspeedKt float64
	HasTAS         bool
	IndicatedASKt  float64
	HasIAS         bool
	Mach           float64
	HasMach        bool
	MagHeadingDeg  float64
	HasMagHeading  bool
	VertRateFpm    float64
	HasVertRate    bool
	SelectedAltFt  float64
	HasSelectedAlt bool
	BaroSettingMb  float64
	HasBaroSetting bool

	oddLat, oddLon   uint32
	oddTime          time.Time
	evenLat, evenLon uint32
	evenTime         time.Time

	FirstSeen        time.Time
	LastSeen         time.Time
	Messages         uint64
	PhaseCorrections uint64
	SignalLevel      float64
}

// Tracker maintains the live aircraft database: one update goroutine,
// any number of snapshot readers.
type Tracker struct {
	mu          sync.RWMutex
	aircraft    map[uint32]*Aircraft
	ttl         time.Duration
	minMessages uint64
}

// NewTracker constructs a Tracker with the given eviction TTL and ghost
// filter ("messages >= minMessages" before appearing in a snapshot).
func NewTracker(ttl time.Duration, minMessages uint64) *Tracker {
	return &Tracker{
		aircraft:    make(map[uint32]*Aircraft),
		ttl:         ttl,
		minMessages: minMessages,
	}
}

// Update applies one DecodedFrame to the tracker, creating the Aircraft
// record on first sight and resolving global CPR position when a fresh
// opposite-parity fragment is available.
func (t *Tracker) Update(f DecodedFrame) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := f.Timestamp
	if now.IsZero() {
		now = time.Now()
	}

	a, ok := t.aircraft[f.ICAO]
	if !ok {
		a = &Aircraft{
			ICAO:      f.ICAO,
			Hex:       fmt.Sprintf("%06x", f.ICAO),
			FirstSeen: now,
		}
		t.aircraft[f.ICAO] = a
	}

	a.LastSeen = now
	a.Messages++
	if f.PhaseCorrected {
		a.PhaseCorrections++
	}
	if f.SignalLevel > 0 {
		if a.SignalLevel == 0 {
			a.SignalLevel = f.SignalLevel
		} else {
			a.SignalLevel = (a.SignalLevel*7 + f.SignalLevel) / 8
		}
	}

	if f.HasAltitude {
		a.AltitudeFt = f.AltitudeFt
		a.HasAltitude = true
	}
	if f.HasSquawk {
		a.Squawk = f.Squawk
	}
	if f.HasCallsign {
		a.Callsign = f.Callsign
	}
	if f.HasVelocity {
		a.GroundSpeed = f.GroundSpeed
		a.Track = f.Track
		a.HasVelocity = true
	}
	if f.HasVertRate {
		a.VertRateFpm = float64(f.VertRateFpm)
		a.HasVertRate = true
	}

	if f.HasPosition {
		if f.FFlag == 0 {
			a.evenLat, a.evenLon, a.evenTime = f.RawLat, f.RawLon, now
		} else {
			a.oddLat, a.oddLon, a.oddTime = f.RawLat, f.RawLon, now
		}
		t.tryResolvePosition(a)
	}

	t.applyBDS(a, f.BDS)
}

func (t *Tracker) tryResolvePosition(a *Aircraft) {
	if a.evenTime.IsZero() || a.oddTime.IsZero() {
		return
	}
	if abs(a.evenTime.Sub(a.oddTime)) > cprPairMaxAge*time.Second {
		return
	}

	even := CPRFragment{RawLat: a.evenLat, RawLon: a.evenLon}
	odd := CPRFragment{RawLat: a.oddLat, RawLon: a.oddLon}
	oddIsNewer := a.oddTime.After(a.evenTime)

	lat, lon, ok := SolveGlobalCPR(even, odd, oddIsNewer)
	if !ok {
		return
	}
	a.Lat, a.Lon = lat, lon
	a.HasPosition = true
}

func abs(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func (t *Tracker) applyBDS(a *Aircraft, bds BdsRecord) {
	switch bds.Kind {
	case BdsSelectedVerticalIntention:
		if bds.HasMCPAltitude {
			a.SelectedAltFt = bds.MCPAltitudeFt
			a.HasSelectedAlt = true
		}
		if bds.HasBaroSetting {
			a.BaroSettingMb = bds.BaroSettingMb
			a.HasBaroSetting = true
		}
	case BdsTrackAndTurnReport:
		if bds.HasRoll {
			a.RollDeg = bds.RollDeg
			a.HasRoll = true
		}
		if bds.HasTAS {
			a.TrueAirspeedKt = bds.TASKt
			a.HasTAS = true
		}
		if bds.HasGroundSpeed {
			a.GroundSpeed = bds.GroundSpeedKt
			a.HasVelocity = true
		}
		if bds.HasTrueTrack {
			a.Track = bds.TrueTrackDeg
			a.HasVelocity = true
		}
	case BdsHeadingAndSpeedReport:
		if bds.HasMagHeading {
			a.MagHeadingDeg = bds.MagHeadingDeg
			a.HasMagHeading = true
		}
		if bds.HasIAS {
			a.IndicatedASKt = bds.IASKt
			a.HasIAS = true
		}
		if bds.HasMach {
			a.Mach = bds.Mach
			a.HasMach = true
		}
		if bds.HasBaroAltRate {
			a.VertRateFpm = bds.BaroAltRateFpm
			a.HasVertRate = true
		} else if bds.HasInertialAltRate {
			a.VertRateFpm = bds.InertialAltRateFpm
			a.HasVertRate = true
		}
	}
}

// Prune removes every record whose last_seen exceeds the tracker's TTL
// as of now.
func (t *Tracker) Prune(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for icao, a := range t.aircraft {
		if now.Sub(a.LastSeen) > t.ttl {
			delete(t.aircraft, icao)
		}
	}
}

// Snapshot returns copies of every Aircraft with at least minMessages
// observed, safe for the caller to read without further locking.
func (t *Tracker) Snapshot() []Aircraft {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Aircraft, 0, len(t.aircraft))
	for _, a := range t.aircraft {
		if a.Messages < t.minMessages {
			continue
		}
		out = append(out, *a)
	}
	return out
}

// Len reports the number of tracked aircraft regardless of the ghost
// filter, primarily for statistics reporting.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.aircraft)
}
