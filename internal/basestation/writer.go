package basestation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"go1090/internal/adsb"
	"go1090/internal/logging"
)

// BaseStation message types.
const (
	SEL = "SEL"
	ID  = "ID"
	AIR = "AIR"
	STA = "STA"
	CLK = "CLK"
	MSG = "MSG"
)

// BaseStation transmission types.
const (
	TransmissionESIDCat      = 1
	TransmissionESSurface    = 2
	TransmissionESAirborne   = 3
	TransmissionESVelocity   = 4
	TransmissionSurveillance = 5
	TransmissionSurvID       = 6
	TransmissionAirToAir     = 7
	TransmissionAllCall      = 8
)

// Message represents a BaseStation format message.
type Message struct {
	MessageType      string
	TransmissionType int
	SessionID        int
	AircraftID       int
	HexIdent         string
	FlightID         int
	DateGenerated    time.Time
	TimeGenerated    time.Time
	DateLogged       time.Time
	TimeLogged       time.Time
	Callsign         string
	Altitude         string
	GroundSpeed      string
	Track            string
	Latitude         string
	Longitude        string
	VerticalRate     string
	Squawk           string
	Alert            string
	Emergency        string
	SPI              string
	IsOnGround       string
}

// Writer writes decoded frames in BaseStation (SBS) CSV format.
type Writer struct {
	logRotator *logging.LogRotator
	logger     *logrus.Logger
	sessionID  int
	aircraftID int
}

// NewWriter creates a new BaseStation writer.
func NewWriter(logRotator *logging.LogRotator, logger *logrus.Logger) *Writer {
	return &Writer{
		logRotator: logRotator,
		logger:     logger,
		sessionID:  1,
		aircraftID: 1,
	}
}

// WriteFrame converts a decoded frame (plus any resolved position) into
// an SBS line and appends it to the active log file. Frames with no
// SBS-relevant transmission type are silently skipped.
func (w *Writer) WriteFrame(f adsb.DecodedFrame, lat, lon float64, hasPosition bool) error {
	msg := w.convertFrame(f, lat, lon, hasPosition)
	if msg == nil {
		return nil
	}

	writer, err := w.logRotator.GetWriter()
	if err != nil {
		return fmt.Errorf("failed to get log writer: %w", err)
	}
	if _, err := writer.Write([]byte(w.formatCSV(msg) + "\n")); err != nil {
		return fmt.Errorf("failed to write to log: %w", err)
	}
	return nil
}

func (w *Writer) convertFrame(f adsb.DecodedFrame, lat, lon float64, hasPosition bool) *Message {
	now := time.Now()
	ts := f.Timestamp
	if ts.IsZero() {
		ts = now
	}

	msg := &Message{
		MessageType:   MSG,
		SessionID:     w.sessionID,
		AircraftID:    w.aircraftID,
		FlightID:      w.aircraftID,
		HexIdent:      fmt.Sprintf("%06X", f.ICAO),
		DateGenerated: ts,
		TimeGenerated: ts,
		DateLogged:    now,
		TimeLogged:    now,
	}

	switch f.DF {
	case 4, 5, 20, 21:
		msg.TransmissionType = TransmissionSurveillance
		if f.DF == 5 || f.DF == 21 {
			msg.TransmissionType = TransmissionSurvID
		}
		if f.HasAltitude {
			msg.Altitude = strconv.Itoa(f.AltitudeFt)
		}
		if f.HasSquawk {
			msg.Squawk = fmt.Sprintf("%04d", f.Squawk)
		}
		if f.FlightStatus == 1 || f.FlightStatus == 3 {
			msg.IsOnGround = "1"
		}
		if f.FlightStatus == 2 || f.FlightStatus == 3 || f.FlightStatus == 4 {
			msg.Alert = "1"
		}
		if f.FlightStatus == 4 || f.FlightStatus == 5 {
			msg.SPI = "1"
		}

	case 11:
		msg.TransmissionType = TransmissionAllCall

	case 17, 18:
		switch {
		case f.METype >= 1 && f.METype <= 4:
			msg.TransmissionType = TransmissionESIDCat
			msg.Callsign = f.Callsign
		case f.METype >= 5 && f.METype <= 8:
			msg.TransmissionType = TransmissionESSurface
		case f.METype >= 9 && f.METype <= 18:
			msg.TransmissionType = TransmissionESAirborne
			if f.HasAltitude {
				msg.Altitude = strconv.Itoa(f.AltitudeFt)
			}
			if hasPosition {
				msg.Latitude = fmt.Sprintf("%.6f", lat)
				msg.Longitude = fmt.Sprintf("%.6f", lon)
			}
		case f.METype == 19:
			msg.TransmissionType = TransmissionESVelocity
			if f.HasVelocity {
				msg.GroundSpeed = strconv.Itoa(int(f.GroundSpeed))
				msg.Track = fmt.Sprintf("%.1f", f.Track)
			}
			if f.HasVertRate {
				msg.VerticalRate = strconv.Itoa(f.VertRateFpm)
			}
		default:
			return nil
		}

	default:
		return nil
	}

	if f.HasSquawk && (f.Squawk == 7500 || f.Squawk == 7600 || f.Squawk == 7700) {
		msg.Emergency = "1"
	}

	return msg
}

func (w *Writer) formatCSV(msg *Message) string {
	fields := []string{
		msg.MessageType,
		strconv.Itoa(msg.TransmissionType),
		strconv.Itoa(msg.SessionID),
		strconv.Itoa(msg.AircraftID),
		msg.HexIdent,
		strconv.Itoa(msg.FlightID),
		msg.DateGenerated.Format("2006/01/02"),
		msg.TimeGenerated.Format("15:04:05.000"),
		msg.DateLogged.Format("2006/01/02"),
		msg.TimeLogged.Format("15:04:05.000"),
		msg.Callsign,
		msg.Altitude,
		msg.GroundSpeed,
		msg.Track,
		msg.Latitude,
		msg.Longitude,
		msg.VerticalRate,
		msg.Squawk,
		msg.Alert,
		msg.Emergency,
		msg.SPI,
		msg.IsOnGround,
	}
	return strings.Join(fields, ",")
}
