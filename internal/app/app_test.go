package app

import (
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go1090/internal/adsb"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, uint32(DefaultFrequency), cfg.Frequency)
	assert.Equal(t, uint32(DefaultSampleRate), cfg.SampleRate)
	assert.Equal(t, DefaultGain, cfg.Gain)
	assert.Equal(t, DefaultTTL, cfg.TTL)
	assert.Equal(t, uint64(DefaultMinMessages), cfg.MinMessages)
	assert.Equal(t, DefaultChannelCapacity, cfg.ChannelCapacity)
}

func TestNewApplication(t *testing.T) {
	app := NewApplication(Config{Verbose: true})

	assert.NotNil(t, app)
	assert.NotNil(t, app.logger)
	assert.True(t, app.verbose)
}

func TestInitializeComponentsAppliesDefaults(t *testing.T) {
	app := NewApplication(Config{LogDir: t.TempDir()})

	err := app.initializeComponents()
	require.NoError(t, err)
	require.NotNil(t, app.demodulator)
	require.NotNil(t, app.tracker)
	require.NotNil(t, app.baseStation)

	app.logRotator.Close()
}

func TestPositionForNoPosition(t *testing.T) {
	app := NewApplication(Config{})
	app.tracker = adsb.NewTracker(time.Minute, 1)

	lat, lon, ok := app.positionFor(adsb.DecodedFrame{HasPosition: false})
	assert.False(t, ok)
	assert.Zero(t, lat)
	assert.Zero(t, lon)
}

func TestPositionForResolvedPosition(t *testing.T) {
	app := NewApplication(Config{})
	app.tracker = adsb.NewTracker(time.Minute, 1)

	even := adsb.DecodedFrame{
		ICAO: 0x4840D6, DF: 17, METype: 11, HasPosition: true, FFlag: 0,
		RawLat: 93000, RawLon: 51372, Timestamp: time.Now(),
	}
	odd := adsb.DecodedFrame{
		ICAO: 0x4840D6, DF: 17, METype: 11, HasPosition: true, FFlag: 1,
		RawLat: 74158, RawLon: 50194, Timestamp: time.Now().Add(time.Second),
	}
	app.tracker.Update(even)
	app.tracker.Update(odd)

	lat, lon, ok := app.positionFor(odd)
	assert.True(t, ok)
	assert.NotZero(t, lat)
	assert.NotZero(t, lon)
}

func TestReplayOnceMissingFileErrors(t *testing.T) {
	app := NewApplication(Config{InputFile: "/nonexistent/path/to/file.bin"})
	err := app.replayOnce(1024, make(chan []byte, 1))
	assert.Error(t, err)
}

func TestReplayFileReadsChunks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "capture.bin")
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(i % 256)
	}
	require.NoError(t, os.WriteFile(path, data, 0o644))

	app := NewApplication(Config{InputFile: path})
	dataChan := make(chan []byte, 16)
	done := make(chan error, 1)
	go func() { done <- app.replayFile(dataChan) }()

	var total int
	timeout := time.After(2 * time.Second)
loop:
	for {
		select {
		case chunk := <-dataChan:
			total += len(chunk)
		case err := <-done:
			require.NoError(t, err)
			break loop
		case <-timeout:
			t.Fatal("replayFile did not finish")
		}
	}

	assert.Equal(t, len(data), total)
}

func TestHandleBeastConnForwardsDecodedFrame(t *testing.T) {
	application := NewApplication(Config{})

	server, client := net.Pipe()
	frameChan := make(chan adsb.DecodedFrame, 1)

	done := make(chan struct{})
	go func() {
		application.handleBeastConn(server, frameChan)
		close(done)
	}()

	beastFrame := []byte{
		0x1A, 0x33,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x02,
		0x03,
		0x8D, 0x48, 0x44, 0x12, 0x34, 0x56, 0x78, 0x9A,
		0xBC, 0xDE, 0xF0, 0x12, 0x34, 0x56,
	}
	go func() {
		client.Write(beastFrame)
		client.Close()
	}()

	select {
	case frame := <-frameChan:
		assert.Equal(t, uint32(0x484412), frame.ICAO)
		assert.Equal(t, uint8(17), frame.DF)
	case <-time.After(2 * time.Second):
		t.Fatal("no frame forwarded from beast connection")
	}

	<-done
}
