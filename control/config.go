// Package control turns face observations into motor throttles and an indicator zone. It has
// no hardware dependencies so the same loop runs in the firmware, the host bench and tests.
package control

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the tunables for the control loop
type Config struct {
	// Throttle applied to each side when the face is centered. The motors are not matched, so
	// these differ
	BaseSpeedLeft  float64
	BaseSpeedRight float64

	// Multipliers applied to the PD correction for each side
	CorrectionLeft  float64
	CorrectionRight float64

	// Throttles used while rotating in place to look for a face. The right side is reversed
	ScanSpeedLeft  float64
	ScanSpeedRight float64

	Kp float64 // Proportional gain
	Kd float64 // Derivative gain

	CenterPosition int // Sensor x coordinate of the center of the frame
	SensorWidth    int // Horizontal resolution of the sensor
	MaxFaceWidth   int // Stop approaching once the face is wider than this

	// How long the last observation is trusted before the robot stops
	FreshnessMargin time.Duration

	// Idle scanning repeats every IdleScanEnd and is allowed after IdleScanStart within that window
	IdleScanStart time.Duration
	IdleScanEnd   time.Duration

	// While idle scanning is allowed, rotate after ScanIncrementStart in every ScanIncrementEnd window
	ScanIncrementStart time.Duration
	ScanIncrementEnd   time.Duration

	// Longest a single frame read may block. Must stay below FreshnessMargin
	ReadTimeout time.Duration

	IndicatorColor color.RGBA

	// Log state changes and dropped frames
	Verbose bool
}

// DefaultConfig returns the values the robot was tuned with
func DefaultConfig() Config {
	return Config{
		BaseSpeedLeft:      0.425,
		BaseSpeedRight:     0.5,
		CorrectionLeft:     0.90,
		CorrectionRight:    1.05,
		ScanSpeedLeft:      0.425,
		ScanSpeedRight:     0.5,
		Kp:                 0.0003,
		Kd:                 0.0005,
		CenterPosition:     820,
		SensorWidth:        1640,
		MaxFaceWidth:       650,
		FreshnessMargin:    180 * time.Millisecond,
		IdleScanStart:      10 * time.Second,
		IdleScanEnd:        30 * time.Second,
		ScanIncrementStart: 1300 * time.Millisecond,
		ScanIncrementEnd:   1500 * time.Millisecond,
		ReadTimeout:        50 * time.Millisecond,
		IndicatorColor:     color.RGBA{R: 0, G: 0x10, B: 0, A: 0xff},
	}
}

// Validate checks that the loop can run with this Config
func (c Config) Validate() error {
	for name, speed := range map[string]float64{
		"BaseSpeedLeft":  c.BaseSpeedLeft,
		"BaseSpeedRight": c.BaseSpeedRight,
		"ScanSpeedLeft":  c.ScanSpeedLeft,
		"ScanSpeedRight": c.ScanSpeedRight,
	} {
		if math.IsNaN(speed) || speed < -1 || speed > 1 {
			return fmt.Errorf("%w: %s must be in [-1, 1], got %v", ErrInvalidConfig, name, speed)
		}
	}

	if c.SensorWidth < NumZones {
		return fmt.Errorf("%w: SensorWidth must be at least %d, got %d", ErrInvalidConfig, NumZones, c.SensorWidth)
	}
	if c.CenterPosition < 0 || c.CenterPosition >= c.SensorWidth {
		return fmt.Errorf("%w: CenterPosition %d is outside the sensor", ErrInvalidConfig, c.CenterPosition)
	}
	if c.MaxFaceWidth <= 0 {
		return fmt.Errorf("%w: MaxFaceWidth must be positive", ErrInvalidConfig)
	}

	if c.FreshnessMargin <= 0 {
		return fmt.Errorf("%w: FreshnessMargin must be positive", ErrInvalidConfig)
	}
	if err := validateWindow("IdleScan", c.IdleScanStart, c.IdleScanEnd); err != nil {
		return err
	}
	if err := validateWindow("ScanIncrement", c.ScanIncrementStart, c.ScanIncrementEnd); err != nil {
		return err
	}

	if c.ReadTimeout < 0 || c.ReadTimeout >= c.FreshnessMargin {
		return fmt.Errorf("%w: ReadTimeout %v must be less than FreshnessMargin %v", ErrInvalidConfig, c.ReadTimeout, c.FreshnessMargin)
	}

	return nil
}

func validateWindow(name string, start, end time.Duration) error {
	if end <= 0 {
		return fmt.Errorf("%w: %sEnd must be positive", ErrInvalidConfig, name)
	}
	if start < 0 || start >= end {
		return fmt.Errorf("%w: %sStart %v must be in [0, %v)", ErrInvalidConfig, name, start, end)
	}
	return nil
}
