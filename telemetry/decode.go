// Package telemetry handles the frames sent by the vision sensor. Each frame is a fixed
// 9 byte ASCII message "NNNN,NNNN": the horizontal center of the detected face followed by
// the width of its bounding box, both zero-padded to 4 digits.
package telemetry

import (
	"errors"
	"fmt"
	"time"

	"github.com/calvinmclean/chocorobo"
)

const (
	fieldSize    = 4
	separatorIdx = fieldSize
)

var (
	// ErrShortFrame is returned when a frame is missing or does not have exactly FrameSize bytes
	ErrShortFrame = errors.New("short frame")
	// ErrMalformedFrame is returned when a frame has the right size but cannot be split into two numbers
	ErrMalformedFrame = errors.New("malformed frame")
)

// Observation is a single face detection. It is replaced, never modified, when a newer frame arrives
type Observation struct {
	Position  int
	Width     int
	Timestamp time.Time
}

// Decode parses a frame received at now
func Decode(frame []byte, now time.Time) (Observation, error) {
	if len(frame) != chocorobo.FrameSize {
		return Observation{}, fmt.Errorf("%w: got %d bytes, want %d", ErrShortFrame, len(frame), chocorobo.FrameSize)
	}

	if isDigit(frame[separatorIdx]) {
		return Observation{}, fmt.Errorf("%w: %q has no separator", ErrMalformedFrame, frame)
	}

	position, err := parseField(frame[:separatorIdx])
	if err != nil {
		return Observation{}, fmt.Errorf("%w: position in %q: %w", ErrMalformedFrame, frame, err)
	}

	width, err := parseField(frame[separatorIdx+1:])
	if err != nil {
		return Observation{}, fmt.Errorf("%w: width in %q: %w", ErrMalformedFrame, frame, err)
	}

	return Observation{
		Position:  position,
		Width:     width,
		Timestamp: now,
	}, nil
}

// parseField reads exactly fieldSize ASCII digits
func parseField(b []byte) (int, error) {
	if len(b) != fieldSize {
		return 0, fmt.Errorf("field has %d bytes", len(b))
	}

	result := 0
	for _, c := range b {
		if !isDigit(c) {
			return 0, fmt.Errorf("unexpected byte %q", c)
		}
		result = result*10 + int(c-'0')
	}
	return result, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
