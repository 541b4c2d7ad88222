package control

import (
	"testing"
	"time"

	"github.com/calvinmclean/chocorobo"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		elapsed  time.Duration
		width    int
		expected chocorobo.LoopState
	}{
		{"JustSeen", 0, 100, chocorobo.LoopStateTracking},
		{"AtFreshnessMargin", 180 * time.Millisecond, 100, chocorobo.LoopStateTracking},
		{"TooClose", 100 * time.Millisecond, 651, chocorobo.LoopStateHaltNear},
		{"AtMaxWidth", 100 * time.Millisecond, 650, chocorobo.LoopStateTracking},
		{"Stale", 181 * time.Millisecond, 100, chocorobo.LoopStateHaltStale},
		{"StaleAndTooClose", time.Second, 700, chocorobo.LoopStateHaltStale},
		{"IncrementGateOnlyBeforeIdle", 4400 * time.Millisecond, 100, chocorobo.LoopStateHaltStale},
		{"IdlePausedBetweenBursts", 10200 * time.Millisecond, 100, chocorobo.LoopStateHaltStale},
		{"IdleBurst", 10400 * time.Millisecond, 100, chocorobo.LoopStateIdleScan},
		{"IdleBurstIgnoresWidth", 10400 * time.Millisecond, 900, chocorobo.LoopStateIdleScan},
		{"IdleBurstEndOfWindow", 29900 * time.Millisecond, 100, chocorobo.LoopStateIdleScan},
		{"WindowWrapsAround", 31400 * time.Millisecond, 100, chocorobo.LoopStateHaltStale},
		{"SecondWindow", 40400 * time.Millisecond, 100, chocorobo.LoopStateIdleScan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.elapsed, tt.width, cfg))
		})
	}
}
