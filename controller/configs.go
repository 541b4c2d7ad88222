package controller

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DefaultBaudRate    = 115200
	DefaultReadTimeout = 50 * time.Millisecond
)

// ErrInvalidConfig is returned when an environment variable cannot be parsed
var ErrInvalidConfig = errors.New("invalid config")

// Config has the values for connecting to the vision sensor from a computer
type Config struct {
	// SerialPort is the device the sensor is attached to. If empty, the first USB serial port is used
	SerialPort string
	BaudRate   int
	// ReadTimeout bounds each frame read and is also used for the control loop
	ReadTimeout time.Duration
	// RecordPath is a file to write received frames to. Recording is off when empty
	RecordPath string
	Verbose    bool
}

// DefaultConfig returns a Config matching the sensor's settings
func DefaultConfig() Config {
	return Config{
		BaudRate:    DefaultBaudRate,
		ReadTimeout: DefaultReadTimeout,
	}
}

// NewConfigFromEnv reads CHOCOROBO_SERIAL_PORT, CHOCOROBO_BAUD_RATE, CHOCOROBO_READ_TIMEOUT and
// CHOCOROBO_RECORD on top of DefaultConfig
func NewConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	cfg.SerialPort = os.Getenv("CHOCOROBO_SERIAL_PORT")
	cfg.RecordPath = os.Getenv("CHOCOROBO_RECORD")

	if v := os.Getenv("CHOCOROBO_BAUD_RATE"); v != "" {
		baud, err := strconv.Atoi(v)
		if err != nil || baud <= 0 {
			return Config{}, fmt.Errorf("%w: CHOCOROBO_BAUD_RATE %q", ErrInvalidConfig, v)
		}
		cfg.BaudRate = baud
	}

	if v := os.Getenv("CHOCOROBO_READ_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil || timeout <= 0 {
			return Config{}, fmt.Errorf("%w: CHOCOROBO_READ_TIMEOUT %q", ErrInvalidConfig, v)
		}
		cfg.ReadTimeout = timeout
	}

	return cfg, nil
}
