package control

import (
	"time"

	"github.com/calvinmclean/chocorobo"
)

// Classify picks the loop state from how long ago the last face was seen and how wide it was.
// The first matching rule wins:
//
//  1. Idle scan when elapsed falls in the late part of the IdleScanEnd window and in the late
//     part of the ScanIncrementEnd window. Rotating continuously blurs the sensor's video, so
//     the robot turns in short bursts and pauses in between.
//  2. Halt when the observation is older than FreshnessMargin, or the face is too close.
//  3. Otherwise track the face.
func Classify(elapsed time.Duration, width int, cfg Config) chocorobo.LoopState {
	switch {
	case elapsed%cfg.IdleScanEnd > cfg.IdleScanStart && elapsed%cfg.ScanIncrementEnd > cfg.ScanIncrementStart:
		return chocorobo.LoopStateIdleScan
	case elapsed > cfg.FreshnessMargin:
		return chocorobo.LoopStateHaltStale
	case width > cfg.MaxFaceWidth:
		return chocorobo.LoopStateHaltNear
	default:
		return chocorobo.LoopStateTracking
	}
}
