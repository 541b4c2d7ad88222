package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/calvinmclean/chocorobo/control"
	"github.com/calvinmclean/chocorobo/telemetry"
)

// Controller runs the control loop on a computer attached to the vision sensor. Instead of
// motors and pixels it prints what the robot would do
type Controller struct {
	cfg     Config
	loopCfg control.Config
	port    io.ReadCloser
	clock   control.Clock
	views   []View
}

// New creates a Controller reading frames from port
func New(cfg Config, loopCfg control.Config, port io.ReadCloser) *Controller {
	if cfg.ReadTimeout > 0 {
		loopCfg.ReadTimeout = cfg.ReadTimeout
	}
	loopCfg.Verbose = loopCfg.Verbose || cfg.Verbose

	return &Controller{
		cfg:     cfg,
		loopCfg: loopCfg,
		port:    port,
		clock:   control.SystemClock{},
	}
}

// NewFromConfig opens the serial port described by cfg and creates a Controller
func NewFromConfig(cfg Config, loopCfg control.Config) (*Controller, error) {
	port, err := OpenPort(cfg)
	if err != nil {
		return nil, err
	}
	return New(cfg, loopCfg, port), nil
}

// AddView adds a View that is updated alongside the console. It must be called before Run
func (c *Controller) AddView(v View) {
	c.views = append(c.views, v)
}

// Run drives the loop until ctx is cancelled, printing motor and indicator changes to out
func (c *Controller) Run(ctx context.Context, out io.Writer) error {
	var frames control.FrameReader = telemetry.NewReader(c.port)

	if c.cfg.RecordPath != "" {
		f, err := os.Create(c.cfg.RecordPath)
		if err != nil {
			return fmt.Errorf("error creating capture file: %w", err)
		}
		defer f.Close()

		frames = newRecordingReader(frames, c.clock, f)
	}

	motors := multiMotors{&consoleMotors{out: out}}
	pixels := multiPixels{&consolePixels{out: out}}
	for _, v := range c.views {
		motors = append(motors, v)
		pixels = append(pixels, v)
	}

	loop, err := control.NewLoop(c.loopCfg, c.clock, frames, motors, pixels)
	if err != nil {
		return fmt.Errorf("error creating loop: %w", err)
	}

	if c.cfg.Verbose {
		loop.OnStep = func(it control.Iteration) {
			if it.Fresh {
				fmt.Fprintln(out, it)
			}
		}
	}

	err = loop.Run(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// Close closes the serial port
func (c *Controller) Close() error {
	return c.port.Close()
}
