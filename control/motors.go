package control

import (
	"fmt"
	"math"
)

// Motors drives the left and right wheels. Throttles are in [-1, 1], negative is reverse
type Motors interface {
	SetThrottle(left, right float64) error
}

// MotorCommand is the pair of throttles for one iteration
type MotorCommand struct {
	Left  float64
	Right float64
}

func (m MotorCommand) String() string {
	return fmt.Sprintf("L=%.2f R=%.2f", m.Left, m.Right)
}

// Apply sends the command to the motors
func (m MotorCommand) Apply(motors Motors) error {
	return motors.SetThrottle(m.Left, m.Right)
}

// Steer turns a PD correction into throttles. A positive correction slows the left wheel and
// speeds up the right one, turning the robot left
func Steer(correction float64, cfg Config) MotorCommand {
	return MotorCommand{
		Left:  clampThrottle(cfg.BaseSpeedLeft - correction*cfg.CorrectionLeft),
		Right: clampThrottle(cfg.BaseSpeedRight + correction*cfg.CorrectionRight),
	}
}

// Scan rotates the robot in place
func Scan(cfg Config) MotorCommand {
	return MotorCommand{
		Left:  clampThrottle(cfg.ScanSpeedLeft),
		Right: clampThrottle(-cfg.ScanSpeedRight),
	}
}

// Halt stops both wheels
func Halt() MotorCommand {
	return MotorCommand{}
}

func clampThrottle(t float64) float64 {
	if math.IsNaN(t) {
		return 0
	}
	return clamp(t, -1, 1)
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
