package rtlsdr

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func unopenedDevice() *RTLSDRDevice {
	return &RTLSDRDevice{
		logger: logrus.New(),
		index:  0,
		isOpen: false,
	}
}

func TestStartCaptureOnClosedDeviceErrors(t *testing.T) {
	device := unopenedDevice()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := device.StartCapture(ctx, make(chan []byte, 10))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not open")
}

func TestCloseOnUnopenedDeviceIsNoop(t *testing.T) {
	device := unopenedDevice()
	assert.NoError(t, device.Close())
	assert.False(t, device.isOpen)
}

func TestMultipleCloseCallsAreSafe(t *testing.T) {
	device := unopenedDevice()
	assert.NoError(t, device.Close())
	assert.NoError(t, device.Close())
}

func TestConcurrentCloseIsRaceFree(t *testing.T) {
	device := unopenedDevice()

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			device.Close()
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
	assert.False(t, device.isOpen)
}
