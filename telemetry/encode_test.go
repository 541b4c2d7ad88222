package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	now := time.Now()
	for _, position := range []int{0, 7, 328, 820, 1639, 9999} {
		frame, err := Encode(position, 123)
		require.NoError(t, err)
		require.Len(t, frame, 9)

		obs, err := Decode(frame, now)
		require.NoError(t, err)
		assert.Equal(t, position, obs.Position)
		assert.Equal(t, 123, obs.Width)
	}
}

func TestEncode(t *testing.T) {
	frame, err := Encode(500, 200)
	require.NoError(t, err)
	assert.Equal(t, "0500,0200", string(frame))

	frame, err = EncodeBox(700, 240)
	require.NoError(t, err)
	assert.Equal(t, "0820,0240", string(frame))

	_, err = Encode(-1, 10)
	assert.ErrorIs(t, err, ErrFieldRange)

	_, err = Encode(10, 10000)
	assert.ErrorIs(t, err, ErrFieldRange)
}
