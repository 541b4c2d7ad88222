package controller

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/calvinmclean/chocorobo/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweep(t *testing.T) {
	s := NewSweep(100, 20, 30)

	xs := []int{}
	for i := 0; i < 8; i++ {
		x, width, ok := s.Next()
		require.True(t, ok)
		assert.Equal(t, 20, width)
		xs = append(xs, x)
	}
	assert.Equal(t, []int{0, 30, 60, 80, 50, 20, 0, 30}, xs)
}

func TestSweepFaceWiderThanSensor(t *testing.T) {
	s := NewSweep(100, 200, 30)
	x, width, ok := s.Next()
	assert.True(t, ok)
	assert.Equal(t, 0, x)
	assert.Equal(t, 200, width)
}

func TestSenderSend(t *testing.T) {
	var buf bytes.Buffer
	s := NewSender(&buf, NewSweep(1640, 240, 10), time.Millisecond)

	require.NoError(t, s.Send(700, 240))
	assert.Equal(t, "0820,0240", buf.String())

	err := s.Send(9990, 240)
	assert.ErrorIs(t, err, telemetry.ErrFieldRange)
}

// countedSource stops producing faces after limit calls and cancels the sender
type countedSource struct {
	limit  int
	calls  int
	cancel context.CancelFunc
}

func (c *countedSource) Next() (int, int, bool) {
	c.calls++
	if c.calls >= c.limit {
		c.cancel()
	}
	return 100 * c.calls, 50, c.calls <= c.limit
}

func TestSenderRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var buf bytes.Buffer
	source := &countedSource{limit: 3, cancel: cancel}
	s := NewSender(&buf, source, time.Millisecond)

	require.NoError(t, s.Run(ctx))
	assert.Equal(t, "0125,00500225,00500325,0050", buf.String())
}

func TestSenderRunInvalidInterval(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		var buf bytes.Buffer
		s := NewSender(&buf, NewSweep(1640, 240, 10), interval)

		err := s.Run(context.Background())
		assert.ErrorIs(t, err, ErrInvalidInterval)
		assert.Empty(t, buf.String())
	}
}
