package control

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/calvinmclean/chocorobo"
	"github.com/calvinmclean/chocorobo/telemetry"
)

// FrameReader returns one telemetry frame per call. It must give up after a short timeout
// instead of blocking, since the loop keeps driving while no face is seen
type FrameReader interface {
	ReadFrame() ([]byte, error)
}

// Iteration records what one Step did
type Iteration struct {
	Time        time.Time
	State       chocorobo.LoopState
	Elapsed     time.Duration
	Observation telemetry.Observation
	// Fresh is true when Observation was decoded during this Step
	Fresh      bool
	Correction float64
	Command    MotorCommand
	Zone       int
}

func (it Iteration) String() string {
	return fmt.Sprintf(
		"%s pos=%d width=%d elapsed=%v fresh=%t corr=%.4f %s zone=%d",
		it.State, it.Observation.Position, it.Observation.Width,
		it.Elapsed.Round(time.Millisecond), it.Fresh, it.Correction, it.Command, it.Zone,
	)
}

// Loop reads the face sensor and drives the motors and indicator. It is not safe for
// concurrent use
type Loop struct {
	cfg       Config
	clock     Clock
	frames    FrameReader
	motors    Motors
	pd        *PDController
	indicator *Indicator

	last  telemetry.Observation
	state chocorobo.LoopState

	// seen is set by the first decoded frame. Until then the loop never steers
	seen bool
	// readFailing is set while the frame reader keeps returning errors other than timeouts
	readFailing bool

	// OnStep is called at the end of every Step
	OnStep func(Iteration)
}

// NewLoop creates a Loop and lights the indicator for the center of the frame. Until the first
// frame arrives the loop is halted, and it starts idle scanning once IdleScanStart has passed
// since it was created
func NewLoop(cfg Config, clock Clock, frames FrameReader, motors Motors, pixels Pixels) (*Loop, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	l := &Loop{
		cfg:       cfg,
		clock:     clock,
		frames:    frames,
		motors:    motors,
		pd:        NewPDController(cfg),
		indicator: NewIndicator(pixels, cfg),
		last: telemetry.Observation{
			Position:  cfg.CenterPosition,
			Width:     0,
			Timestamp: clock.Now(),
		},
	}

	_, err = l.indicator.Init(l.last.Position)
	if err != nil {
		Logf("error initializing indicator: %v", err)
	}

	return l, nil
}

// Step runs one iteration: read a frame, classify, compute the command, drive the motors and
// then update the indicator with the same position the command was computed from
func (l *Loop) Step() Iteration {
	it := Iteration{}

	frame, err := l.frames.ReadFrame()
	it.Time = l.clock.Now()
	l.checkReadError(err)
	if err == nil {
		var obs telemetry.Observation
		obs, err = telemetry.Decode(frame, it.Time)
		if err == nil {
			l.last = obs
			l.seen = true
			it.Fresh = true
		}
	}
	if err != nil && l.cfg.Verbose && !errors.Is(err, telemetry.ErrNoData) {
		Logf("dropped frame: %v", err)
	}

	it.Observation = l.last
	it.Elapsed = it.Time.Sub(l.last.Timestamp)
	it.State = Classify(it.Elapsed, l.last.Width, l.cfg)
	if !l.seen && it.State == chocorobo.LoopStateTracking {
		it.State = chocorobo.LoopStateHaltStale
	}

	switch it.State {
	case chocorobo.LoopStateIdleScan:
		it.Command = Scan(l.cfg)
	case chocorobo.LoopStateHaltNear, chocorobo.LoopStateHaltStale:
		it.Command = Halt()
		l.pd.Reset()
	default:
		it.Correction = l.pd.Update(l.last.Position)
		it.Command = Steer(it.Correction, l.cfg)
	}

	err = it.Command.Apply(l.motors)
	if err != nil {
		Logf("error setting throttle: %v", err)
	}

	it.Zone, err = l.indicator.Show(l.last.Position)
	if err != nil {
		Logf("error showing indicator: %v", err)
	}

	if l.cfg.Verbose && it.State != l.state {
		Logf("state changed from %s to %s", l.state, it.State)
	}
	l.state = it.State

	if l.OnStep != nil {
		l.OnStep(it)
	}

	return it
}

// checkReadError logs the first of a run of reader failures and the recovery after it. Timeouts
// and partial frames are expected and are not logged here
func (l *Loop) checkReadError(err error) {
	failed := err != nil && (errors.Is(err, telemetry.ErrRead) || !errors.Is(err, telemetry.ErrShortFrame))
	switch {
	case failed && !l.readFailing:
		Logf("error reading frame: %v", err)
	case !failed && l.readFailing:
		Logf("reading frames again")
	}
	l.readFailing = failed
}

// Run calls Step until ctx is done and returns ctx.Err(). The motors are stopped before returning
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			err := Halt().Apply(l.motors)
			if err != nil {
				Logf("error stopping motors: %v", err)
			}
			return ctx.Err()
		default:
		}

		l.Step()
	}
}

// State returns the state chosen by the most recent Step
func (l *Loop) State() chocorobo.LoopState {
	return l.state
}

// Observation returns the observation the loop is currently acting on
func (l *Loop) Observation() telemetry.Observation {
	return l.last
}

// LastError returns the PD controller's most recent error
func (l *Loop) LastError() float64 {
	return l.pd.LastError()
}

// Config returns the loop's configuration
func (l *Loop) Config() Config {
	return l.cfg
}
