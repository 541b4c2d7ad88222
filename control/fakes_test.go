package control

import (
	"errors"
	"image/color"
	"time"

	"github.com/calvinmclean/chocorobo/telemetry"
)

// scriptedFrames plays back frames and moves the clock forward by tick on every read, like a
// port whose read blocks until a frame or the timeout
type scriptedFrames struct {
	clock  *ManualClock
	tick   time.Duration
	frames []string
	reads  int
}

func (s *scriptedFrames) ReadFrame() ([]byte, error) {
	s.clock.Advance(s.tick)
	s.reads++
	if len(s.frames) == 0 {
		return nil, telemetry.ErrNoData
	}

	frame := s.frames[0]
	s.frames = s.frames[1:]
	if frame == "" {
		return nil, telemetry.ErrNoData
	}
	return []byte(frame), nil
}

type recordingMotors struct {
	commands []MotorCommand
	err      error
}

func (m *recordingMotors) SetThrottle(left, right float64) error {
	m.commands = append(m.commands, MotorCommand{Left: left, Right: right})
	return m.err
}

func (m *recordingMotors) last() MotorCommand {
	if len(m.commands) == 0 {
		return MotorCommand{}
	}
	return m.commands[len(m.commands)-1]
}

type recordingPixels struct {
	buf   [10]color.RGBA
	shows int
	err   error
}

func (p *recordingPixels) SetPixel(i int, c color.RGBA) {
	p.buf[i] = c
}

func (p *recordingPixels) Show() error {
	p.shows++
	return p.err
}

func (p *recordingPixels) lit() []int {
	result := []int{}
	for i, c := range p.buf {
		if c != (color.RGBA{}) {
			result = append(result, i)
		}
	}
	return result
}

var errSink = errors.New("sink failed")
