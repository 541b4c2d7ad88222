package chocorobo

// FrameSize is the length of one telemetry frame from the vision sensor: "NNNN,NNNN"
const FrameSize = 9

// LoopState is the decision the control loop made for one iteration
type LoopState int

const (
	LoopStateUnknown LoopState = iota
	LoopStateTracking
	LoopStateHaltNear
	LoopStateHaltStale
	LoopStateIdleScan
)

func (ls LoopState) String() string {
	switch ls {
	case LoopStateTracking:
		return "Tracking"
	case LoopStateHaltNear:
		return "HaltNear"
	case LoopStateHaltStale:
		return "HaltStale"
	case LoopStateIdleScan:
		return "IdleScan"
	default:
		fallthrough
	case LoopStateUnknown:
		return "Unknown"
	}
}

// Halted is true for both stop states. They share the same action: motors at zero and
// the controller's error memory cleared
func (ls LoopState) Halted() bool {
	return ls == LoopStateHaltNear || ls == LoopStateHaltStale
}
