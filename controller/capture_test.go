package controller

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/calvinmclean/chocorobo/control"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCapture(t *testing.T) {
	input := `# recorded in the kitchen
0 0820,0100

100 0500,0200
150 0820 0100
150 bad frame
`
	frames, err := ParseCapture(strings.NewReader(input))
	require.NoError(t, err)

	expected := []CaptureFrame{
		{Offset: 0, Frame: []byte("0820,0100")},
		{Offset: 100 * time.Millisecond, Frame: []byte("0500,0200")},
		{Offset: 150 * time.Millisecond, Frame: []byte("0820 0100")},
		{Offset: 150 * time.Millisecond, Frame: []byte("bad frame")},
	}
	if diff := cmp.Diff(expected, frames); diff != "" {
		t.Errorf("unexpected frames (-want +got):\n%s", diff)
	}
}

func TestParseCaptureErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"NoFrame", "100\n"},
		{"BadOffset", "abc 0820,0100\n"},
		{"NegativeOffset", "-5 0820,0100\n"},
		{"ShortFrame", "0 0820,010\n"},
		{"Backwards", "100 0820,0100\n50 0820,0100\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCapture(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, ErrInvalidCapture)
		})
	}
}

func TestWriteCaptureRoundTrip(t *testing.T) {
	frames := []CaptureFrame{
		{Offset: 0, Frame: []byte("0820,0100")},
		{Offset: 33 * time.Millisecond, Frame: []byte("0100,0600")},
		{Offset: 2 * time.Second, Frame: []byte("1639,0650")},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCapture(&buf, frames))
	assert.Equal(t, "0 0820,0100\n33 0100,0600\n2000 1639,0650\n", buf.String())

	parsed, err := ParseCapture(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(frames, parsed); diff != "" {
		t.Errorf("unexpected frames (-want +got):\n%s", diff)
	}
}

type sliceFrames struct {
	clock  *control.ManualClock
	frames []string
}

func (s *sliceFrames) ReadFrame() ([]byte, error) {
	s.clock.Advance(40 * time.Millisecond)
	if len(s.frames) == 0 {
		return nil, assert.AnError
	}
	frame := s.frames[0]
	s.frames = s.frames[1:]
	return []byte(frame), nil
}

func TestRecordingReader(t *testing.T) {
	clock := control.NewManualClock(replayEpoch)
	var buf bytes.Buffer
	r := newRecordingReader(&sliceFrames{clock: clock, frames: []string{"0820,0100", "0700,0100"}}, clock, &buf)

	for i := 0; i < 2; i++ {
		_, err := r.ReadFrame()
		require.NoError(t, err)
	}
	_, err := r.ReadFrame()
	assert.ErrorIs(t, err, assert.AnError)

	assert.Equal(t, "40 0820,0100\n80 0700,0100\n", buf.String())
}
