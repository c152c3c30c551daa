package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"go1090/internal/adsb"
	"go1090/internal/basestation"
	"go1090/internal/beast"
	"go1090/internal/logging"
	"go1090/internal/rtlsdr"
)

// Application wires the sample source, demodulator, tracker, and SBS
// writer into the running program and owns their lifecycle.
type Application struct {
	config      Config
	logger      *logrus.Logger
	rtlsdr      *rtlsdr.RTLSDRDevice
	demodulator *adsb.Demodulator
	tracker     *adsb.Tracker
	baseStation *basestation.Writer
	logRotator  *logging.LogRotator
	beastLn     net.Listener
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	producers   sync.WaitGroup
	verbose     bool
}

// NewApplication creates a new application instance.
func NewApplication(config Config) *Application {
	ctx, cancel := context.WithCancel(context.Background())

	logger := logrus.New()
	if config.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Application{
		config:  config,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		verbose: config.Verbose,
	}
}

// Start starts the application.
func (app *Application) Start() error {
	app.logger.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	}).Info("Starting ADS-B decoder")

	if err := app.initializeComponents(); err != nil {
		return fmt.Errorf("failed to initialize components: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if err := app.run(); err != nil {
		app.logger.WithError(err).Error("Application error")
		return err
	}

	<-sigChan
	app.logger.Info("Received shutdown signal")
	app.shutdown()

	return nil
}

// initializeComponents initializes all application components.
func (app *Application) initializeComponents() error {
	ttl := app.config.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	minMessages := app.config.MinMessages
	if minMessages == 0 {
		minMessages = DefaultMinMessages
	}

	app.demodulator = adsb.NewDemodulator(app.config.Aggressive, app.logger)
	app.tracker = adsb.NewTracker(ttl, minMessages)

	var err error
	app.logRotator, err = logging.NewLogRotator(app.config.LogDir, app.config.LogRotateUTC, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize log rotator: %w", err)
	}
	app.baseStation = basestation.NewWriter(app.logRotator, app.logger)

	if app.config.InputFile == "" {
		app.rtlsdr, err = rtlsdr.NewRTLSDRDevice(app.config.DeviceIndex)
		if err != nil {
			return fmt.Errorf("failed to initialize RTL-SDR: %w", err)
		}
		if err := app.rtlsdr.Configure(app.config.Frequency, app.config.SampleRate, app.config.Gain); err != nil {
			return fmt.Errorf("failed to configure RTL-SDR: %w", err)
		}
	}

	return nil
}

// run starts the capture, demodulation, tracking, and reporting
// goroutines.
func (app *Application) run() error {
	app.logger.Info("Starting capture and demodulation")

	capacity := app.config.ChannelCapacity
	if capacity <= 0 {
		capacity = DefaultChannelCapacity
	}
	dataChan := make(chan []byte, capacity)
	frameChan := make(chan adsb.DecodedFrame, capacity)

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		app.logRotator.Start(app.ctx)
	}()

	app.producers.Add(1)
	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		defer app.producers.Done()
		var err error
		if app.config.InputFile != "" {
			err = app.replayFile(dataChan)
		} else {
			err = app.rtlsdr.StartCapture(app.ctx, dataChan)
		}
		if err != nil {
			app.logger.WithError(err).Error("Sample capture failed")
		}
	}()

	app.producers.Add(1)
	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		defer app.producers.Done()
		app.demodulate(dataChan, frameChan)
	}()

	if app.config.BeastListenAddr != "" {
		ln, err := net.Listen("tcp", app.config.BeastListenAddr)
		if err != nil {
			return fmt.Errorf("failed to listen for beast input: %w", err)
		}
		app.beastLn = ln

		app.producers.Add(1)
		app.wg.Add(1)
		go func() {
			defer app.wg.Done()
			defer app.producers.Done()
			app.serveBeastInput(ln, frameChan)
		}()

		app.logger.WithField("addr", app.config.BeastListenAddr).Info("Listening for Beast-format input")
	}

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		app.producers.Wait()
		close(frameChan)
	}()

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		app.track(frameChan)
	}()

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		app.prune()
	}()

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		app.reportStatistics()
	}()

	app.logger.Info("All components started successfully")
	return nil
}

// replayFile streams a recorded I/Q capture file onto dataChan in
// fixed-size chunks, optionally looping, instead of opening a live
// RTL-SDR device.
func (app *Application) replayFile(dataChan chan<- []byte) error {
	const chunkSize = 16 * 16384

	for {
		if err := app.replayOnce(chunkSize, dataChan); err != nil {
			return err
		}
		if !app.config.LoopFile {
			return nil
		}
		select {
		case <-app.ctx.Done():
			return nil
		default:
		}
	}
}

func (app *Application) replayOnce(chunkSize int, dataChan chan<- []byte) error {
	f, err := os.Open(app.config.InputFile)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	r := bufio.NewReaderSize(f, chunkSize)
	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case dataChan <- chunk:
			case <-app.ctx.Done():
				return nil
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
	}
}

// demodulate converts raw I/Q byte chunks into magnitude vectors and
// runs them through the demodulator, forwarding every accepted frame
// onto frameChan.
func (app *Application) demodulate(dataChan <-chan []byte, frameChan chan<- adsb.DecodedFrame) {
	lut := adsb.NewMagnitudeLUT()
	var mag []uint16

	for {
		select {
		case <-app.ctx.Done():
			app.logger.Info("Demodulation stopped")
			return
		case data, ok := <-dataChan:
			if !ok {
				return
			}
			mag = lut.ComputeMagnitudeVector(data, mag)
			app.demodulator.ProcessSamples(mag, frameChan)
		}
	}
}

// serveBeastInput accepts Beast-format Mode S messages from a
// third-party receiver over TCP and forwards each one, re-parsed
// through the Message Parser, onto frameChan alongside locally
// demodulated frames. The listener is closed by shutdown, which
// unblocks Accept with a "use of closed network connection" error.
func (app *Application) serveBeastInput(ln net.Listener, frameChan chan<- adsb.DecodedFrame) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-app.ctx.Done():
				return
			default:
				app.logger.WithError(err).Debug("Beast input accept failed")
				return
			}
		}

		app.producers.Add(1)
		app.wg.Add(1)
		go func() {
			defer app.wg.Done()
			defer app.producers.Done()
			app.handleBeastConn(conn, frameChan)
		}()
	}
}

// handleBeastConn decodes Beast messages from a single connection and
// forwards every successfully re-parsed frame onto frameChan until the
// connection closes or the application shuts down.
func (app *Application) handleBeastConn(conn net.Conn, frameChan chan<- adsb.DecodedFrame) {
	defer conn.Close()

	decoder := beast.NewDecoder(app.logger)
	buf := make([]byte, 4096)

	for {
		select {
		case <-app.ctx.Done():
			return
		default:
		}

		n, err := conn.Read(buf)
		if n > 0 {
			messages, decErr := decoder.Decode(buf[:n])
			if decErr != nil {
				app.logger.WithError(decErr).Debug("Failed to decode beast stream")
				continue
			}
			for _, msg := range messages {
				frame, ok := msg.ToFrame()
				if !ok {
					continue
				}
				select {
				case frameChan <- frame:
				case <-app.ctx.Done():
					return
				}
			}
		}
		if err != nil {
			if err != io.EOF {
				app.logger.WithError(err).Debug("Beast connection read failed")
			}
			return
		}
	}
}

// track applies every accepted frame to the tracker and emits it in
// BaseStation format.
func (app *Application) track(frameChan <-chan adsb.DecodedFrame) {
	for f := range frameChan {
		app.tracker.Update(f)

		lat, lon, hasPosition := app.positionFor(f)
		if err := app.baseStation.WriteFrame(f, lat, lon, hasPosition); err != nil {
			app.logger.WithError(err).Debug("Failed to write SBS message")
		}
	}
}

// positionFor looks up the tracker's resolved position for the
// frame's aircraft, if any, so the SBS writer can attach lat/lon to
// airborne position messages even though CPR resolution happens
// across a pair of frames rather than within one.
func (app *Application) positionFor(f adsb.DecodedFrame) (float64, float64, bool) {
	if !f.HasPosition {
		return 0, 0, false
	}
	for _, a := range app.tracker.Snapshot() {
		if a.ICAO == f.ICAO && a.HasPosition {
			return a.Lat, a.Lon, true
		}
	}
	return 0, 0, false
}

// prune periodically evicts aircraft the tracker has not heard from
// within its TTL.
func (app *Application) prune() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-app.ctx.Done():
			return
		case now := <-ticker.C:
			app.tracker.Prune(now)
		}
	}
}

// reportStatistics reports demodulator and tracker counters
// periodically.
func (app *Application) reportStatistics() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-app.ctx.Done():
			return
		case <-ticker.C:
			stats := app.demodulator.Counters
			app.logger.WithFields(logrus.Fields{
				"preambles_seen":   stats.PreamblesSeen,
				"frames_accepted":  stats.FramesAccepted,
				"frames_corrupted": stats.FramesCorrupted,
				"unknown_address":  stats.UnknownAddress,
				"single_bit_fixes": stats.SingleBitRepairs,
				"two_bit_fixes":    stats.TwoBitRepairs,
				"tracked_aircraft": app.tracker.Len(),
			}).Info("ADS-B processing statistics")
		}
	}
}

// shutdown gracefully shuts down the application.
func (app *Application) shutdown() {
	app.logger.Info("Shutting down application")
	app.cancel()

	if app.beastLn != nil {
		app.beastLn.Close()
	}

	done := make(chan struct{})
	go func() {
		app.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		app.logger.Info("All goroutines finished")
	case <-time.After(5 * time.Second):
		app.logger.Warn("Shutdown timeout, forcing exit")
	}

	if app.rtlsdr != nil {
		app.rtlsdr.Close()
	}
	if app.logRotator != nil {
		app.logRotator.Close()
	}

	app.logger.Info("Shutdown completed")
}
