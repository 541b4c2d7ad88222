package controller

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/calvinmclean/chocorobo"
	"github.com/calvinmclean/chocorobo/control"
	"github.com/calvinmclean/chocorobo/telemetry"
)

// replayEpoch is an arbitrary start time for replays so results do not depend on the wall clock
var replayEpoch = time.Date(2018, 9, 1, 0, 0, 0, 0, time.UTC)

// ErrInvalidTick is returned by Replay when tick is not positive
var ErrInvalidTick = errors.New("tick must be positive")

// ReplaySummary describes what the loop did with a capture
type ReplaySummary struct {
	Iterations int
	States     map[chocorobo.LoopState]int
	Frames     int // frames handed to the loop
	Decoded    int // frames that decoded into an observation
	Duration   time.Duration

	// Throttle statistics while tracking
	LeftMean    float64
	LeftStdDev  float64
	RightMean   float64
	RightStdDev float64
}

// Dropped is the number of frames that failed to decode
func (s ReplaySummary) Dropped() int {
	return s.Frames - s.Decoded
}

// Write prints the summary in a readable form
func (s ReplaySummary) Write(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "iterations: %d over %v\n", s.Iterations, s.Duration)
	fmt.Fprintf(&sb, "frames: %d decoded, %d dropped\n", s.Decoded, s.Dropped())
	for _, state := range []chocorobo.LoopState{
		chocorobo.LoopStateTracking,
		chocorobo.LoopStateHaltNear,
		chocorobo.LoopStateHaltStale,
		chocorobo.LoopStateIdleScan,
	} {
		fmt.Fprintf(&sb, "%s: %d\n", state, s.States[state])
	}
	fmt.Fprintf(&sb, "left throttle: mean=%.3f stddev=%.3f\n", s.LeftMean, s.LeftStdDev)
	fmt.Fprintf(&sb, "right throttle: mean=%.3f stddev=%.3f\n", s.RightMean, s.RightStdDev)

	_, err := io.WriteString(w, sb.String())
	return err
}

// Replay runs the loop over a capture using a manual clock. Each read returns the next frame
// if it arrives within tick, otherwise it times out after tick, like a port with a read
// timeout of tick. The replay ends once every frame has been read
func Replay(cfg control.Config, frames []CaptureFrame, tick time.Duration) (ReplaySummary, error) {
	if tick <= 0 {
		return ReplaySummary{}, ErrInvalidTick
	}

	clock := control.NewManualClock(replayEpoch)
	reader := &replayReader{clock: clock, start: replayEpoch, tick: tick, frames: frames}

	loop, err := control.NewLoop(cfg, clock, reader, nopMotors{}, nopPixels{})
	if err != nil {
		return ReplaySummary{}, fmt.Errorf("error creating loop: %w", err)
	}

	summary := ReplaySummary{States: map[chocorobo.LoopState]int{}}
	var left, right []float64
	loop.OnStep = func(it control.Iteration) {
		summary.Iterations++
		summary.States[it.State]++
		if it.Fresh {
			summary.Decoded++
		}
		if it.State == chocorobo.LoopStateTracking {
			left = append(left, it.Command.Left)
			right = append(right, it.Command.Right)
		}
	}

	for len(reader.frames) > 0 {
		loop.Step()
	}

	summary.Frames = len(frames)
	summary.Duration = clock.Now().Sub(replayEpoch)
	summary.LeftMean, summary.LeftStdDev = meanStdDev(left)
	summary.RightMean, summary.RightStdDev = meanStdDev(right)

	return summary, nil
}

func meanStdDev(x []float64) (float64, float64) {
	switch len(x) {
	case 0:
		return 0, 0
	case 1:
		return x[0], 0
	default:
		return stat.MeanStdDev(x, nil)
	}
}

type replayReader struct {
	clock  *control.ManualClock
	start  time.Time
	tick   time.Duration
	frames []CaptureFrame
}

func (r *replayReader) ReadFrame() ([]byte, error) {
	if len(r.frames) == 0 {
		r.clock.Advance(r.tick)
		return nil, telemetry.ErrNoData
	}

	next := r.frames[0]
	elapsed := r.clock.Now().Sub(r.start)
	if next.Offset > elapsed+r.tick {
		r.clock.Advance(r.tick)
		return nil, telemetry.ErrNoData
	}

	if next.Offset > elapsed {
		r.clock.Set(r.start.Add(next.Offset))
	}
	r.frames = r.frames[1:]
	return next.Frame, nil
}

type nopMotors struct{}

func (nopMotors) SetThrottle(float64, float64) error { return nil }

type nopPixels struct{}

func (nopPixels) SetPixel(int, color.RGBA) {}
func (nopPixels) Show() error             { return nil }
