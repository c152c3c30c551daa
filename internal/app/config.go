package app

import "time"

// Default configuration constants.
const (
	DefaultFrequency       = 1090000000 // 1090 MHz
	DefaultSampleRate      = 2000000    // 2 Msps, per the preamble/bit-timing contract
	DefaultGain            = 40         // Manual gain, tenths of dB after scaling
	DefaultTTL             = 60 * time.Second
	DefaultMinMessages     = 2
	DefaultChannelCapacity = 1024
)

// Config holds application configuration.
type Config struct {
	Frequency    uint32
	SampleRate   uint32
	Gain         int
	DeviceIndex  int
	LogDir       string
	LogRotateUTC bool
	Verbose      bool
	ShowVersion  bool

	// InputFile, when set, replays I/Q samples from a recorded capture
	// instead of opening a live RTL-SDR device.
	InputFile string
	LoopFile  bool

	// TTL is how long an aircraft may go unseen before the tracker
	// prunes it.
	TTL time.Duration
	// MinMessages is the tracker's ghost filter: an aircraft must be
	// seen at least this many times before it appears in a snapshot.
	MinMessages uint64
	// Aggressive enables the two-bit CRC repair search for DF17 frames.
	Aggressive bool
	// ChannelCapacity sizes the bounded FIFO between the demodulator
	// and the tracker.
	ChannelCapacity int

	// BeastListenAddr, when set, opens a TCP listener (dump1090's "raw
	// input" port by convention) that accepts Beast-format Mode S
	// messages from a third-party receiver and feeds them into the same
	// tracker/SBS pipeline as locally demodulated frames.
	BeastListenAddr string
}

// NewDefaultConfig returns a Config populated with the package defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Frequency:       DefaultFrequency,
		SampleRate:      DefaultSampleRate,
		Gain:            DefaultGain,
		TTL:             DefaultTTL,
		MinMessages:     DefaultMinMessages,
		ChannelCapacity: DefaultChannelCapacity,
	}
}
