package control

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"BaseSpeedTooHigh", func(c *Config) { c.BaseSpeedLeft = 1.5 }},
		{"BaseSpeedNaN", func(c *Config) { c.BaseSpeedRight = math.NaN() }},
		{"ScanSpeedTooLow", func(c *Config) { c.ScanSpeedRight = -2 }},
		{"TinySensor", func(c *Config) { c.SensorWidth = 3 }},
		{"CenterOffSensor", func(c *Config) { c.CenterPosition = 1640 }},
		{"ZeroMaxFaceWidth", func(c *Config) { c.MaxFaceWidth = 0 }},
		{"ZeroFreshness", func(c *Config) { c.FreshnessMargin = 0 }},
		{"ZeroIdleScanEnd", func(c *Config) { c.IdleScanEnd = 0 }},
		{"IdleScanStartAfterEnd", func(c *Config) { c.IdleScanStart = 31 * time.Second }},
		{"ScanIncrementStartEqualsEnd", func(c *Config) { c.ScanIncrementStart = c.ScanIncrementEnd }},
		{"NegativeScanIncrementStart", func(c *Config) { c.ScanIncrementStart = -time.Second }},
		{"ReadTimeoutTooLong", func(c *Config) { c.ReadTimeout = 200 * time.Millisecond }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestManualClock(t *testing.T) {
	start := time.Date(2018, 9, 1, 0, 0, 0, 0, time.UTC)
	c := NewManualClock(start)
	assert.Equal(t, start, c.Now())

	c.Advance(1500 * time.Millisecond)
	assert.Equal(t, start.Add(1500*time.Millisecond), c.Now())

	c.Set(start)
	assert.Equal(t, start, c.Now())
}

func TestSetLogger(t *testing.T) {
	orig := Logf
	defer func() { Logf = orig }()

	var got []string
	SetLogger(func(format string, v ...any) {
		got = append(got, format)
	})
	Logf("hello %d", 1)
	assert.Equal(t, []string{"hello %d"}, got)

	SetLogger(nil)
	assert.NotPanics(t, func() { Logf("muted") })
	assert.Len(t, got, 1)
}
