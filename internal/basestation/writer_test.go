package basestation

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"go1090/internal/adsb"
)

func TestConvertFrameIdentification(t *testing.T) {
	w := NewWriter(nil, logrus.New())
	f := adsb.DecodedFrame{DF: 17, METype: 4, Callsign: "KLM1023", ICAO: 0x4840D6}

	msg := w.convertFrame(f, 0, 0, false)
	assert.Equal(t, TransmissionESIDCat, msg.TransmissionType)
	assert.Equal(t, "KLM1023", msg.Callsign)
}

func TestConvertFrameSurfacePositionHasNoLatLon(t *testing.T) {
	w := NewWriter(nil, logrus.New())
	f := adsb.DecodedFrame{DF: 17, METype: 6}
	msg := w.convertFrame(f, 12.3, 45.6, false)
	assert.Equal(t, TransmissionESSurface, msg.TransmissionType)
	assert.Empty(t, msg.Latitude)
}

func TestConvertFrameUnhandledDFReturnsNil(t *testing.T) {
	w := NewWriter(nil, logrus.New())
	msg := w.convertFrame(adsb.DecodedFrame{DF: 28}, 0, 0, false)
	assert.Nil(t, msg)
}
