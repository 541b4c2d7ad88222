package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/calvinmclean/chocorobo/telemetry"
)

// ErrInvalidInterval is returned by Run when the interval between frames is not positive
var ErrInvalidInterval = errors.New("interval must be positive")

// FaceSource produces face bounding boxes for a Sender. ok is false when no face is visible
type FaceSource interface {
	Next() (x, width int, ok bool)
}

// Sweep is a FaceSource with a face drifting back and forth across the sensor
type Sweep struct {
	SensorWidth int
	FaceWidth   int
	Step        int

	x   int
	dir int
}

// NewSweep creates a Sweep starting at the left edge
func NewSweep(sensorWidth, faceWidth, step int) *Sweep {
	return &Sweep{
		SensorWidth: sensorWidth,
		FaceWidth:   faceWidth,
		Step:        step,
		dir:         1,
	}
}

// Next returns the current box and moves it by Step, bouncing off the edges
func (s *Sweep) Next() (int, int, bool) {
	x := s.x

	maxX := s.SensorWidth - s.FaceWidth
	if maxX <= 0 {
		return 0, s.FaceWidth, true
	}

	s.x += s.dir * s.Step
	switch {
	case s.x >= maxX:
		s.x = maxX
		s.dir = -1
	case s.x <= 0:
		s.x = 0
		s.dir = 1
	}

	return x, s.FaceWidth, true
}

// Sender writes frames the way the vision sensor does. It is used to drive a robot or the
// bench without a camera
type Sender struct {
	w        io.Writer
	source   FaceSource
	interval time.Duration
}

// NewSender creates a Sender writing one frame from source to w every interval
func NewSender(w io.Writer, source FaceSource, interval time.Duration) *Sender {
	return &Sender{w: w, source: source, interval: interval}
}

// Send writes one frame for a box at x with width
func (s *Sender) Send(x, width int) error {
	frame, err := telemetry.EncodeBox(x, width)
	if err != nil {
		return err
	}

	_, err = s.w.Write(frame)
	if err != nil {
		return fmt.Errorf("error writing frame: %w", err)
	}
	return nil
}

// Run sends frames until ctx is done
func (s *Sender) Run(ctx context.Context) error {
	if s.interval <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidInterval, s.interval)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		x, width, ok := s.source.Next()
		if ok {
			err := s.Send(x, width)
			if err != nil {
				return err
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
