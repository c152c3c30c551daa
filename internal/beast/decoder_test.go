package beast

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func TestDecodeModeSShort(t *testing.T) {
	decoder := NewDecoder(testLogger())
	input := []byte{
		0x1A, 0x32,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x01,
		0x02,
		0x5D, 0x48, 0x44, 0x12, 0x34, 0x56, 0x78,
	}

	messages, err := decoder.Decode(input)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, ModeS, messages[0].MessageType)
	assert.Equal(t, byte(0x02), messages[0].Signal)
}

func TestDecodeModeSLong(t *testing.T) {
	decoder := NewDecoder(testLogger())
	input := []byte{
		0x1A, 0x33,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x02,
		0x03,
		0x8D, 0x48, 0x44, 0x12, 0x34, 0x56, 0x78, 0x9A,
		0xBC, 0xDE, 0xF0, 0x12, 0x34, 0x56,
	}

	messages, err := decoder.Decode(input)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, ModeSLong, messages[0].MessageType)
	assert.Len(t, messages[0].Data, 14)
}

func TestDecodeUnescapesSyncByteInPayload(t *testing.T) {
	decoder := NewDecoder(testLogger())
	input := []byte{
		0x1A, 0x31,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x03,
		0x04,
		0x1A, 0x1A, 0x34,
	}

	messages, err := decoder.Decode(input)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, []byte{0x1A, 0x34}, messages[0].Data)
}

func TestDecodeBuffersIncompleteMessage(t *testing.T) {
	decoder := NewDecoder(testLogger())

	messages, err := decoder.Decode([]byte{0x1A, 0x32, 0x00, 0x00})
	require.NoError(t, err)
	assert.Empty(t, messages)

	rest := []byte{0x00, 0x00, 0x00, 0x01, 0x02, 0x5D, 0x48, 0x44, 0x12, 0x34, 0x56, 0x78}
	messages, err = decoder.Decode(rest)
	require.NoError(t, err)
	require.Len(t, messages, 1)
}

func TestDecodeSkipsUnknownMessageType(t *testing.T) {
	decoder := NewDecoder(testLogger())
	input := []byte{0x1A, 0xFF, 0x1A, 0x31, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03, 0x04, 0x02, 0x34}

	messages, err := decoder.Decode(input)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, ModeAC, messages[0].MessageType)
}
