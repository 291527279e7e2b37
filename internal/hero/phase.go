// Package hero sequences the hero section's background clip through its
// playback phases.
//
// The clip autoplays from 0s to the forward cutoff, waits for the first
// downward scroll, plays the locked segment up to the segment end while the
// page is pinned, and then hands the next downward scroll to the following
// section. An upward scroll back into the hero rewinds the segment so the
// sequence can replay.
//
// Machine is the pure transition function. Controller feeds it events and
// applies the effects it returns to a Media element and a Document.
package hero

// Phase is the single active mode of the choreographer.
type Phase int

const (
	PhaseIdle            Phase = iota // Not mounted yet
	PhaseAutoplayForward              // Playing 0s → forward cutoff unattended
	PhaseArmedForward                 // Parked at the cutoff, waiting for a downward scroll
	PhaseLockedForward                // Playing cutoff → segment end, document pinned
	PhaseCompleteArmed                // Parked at segment end, next downward scroll leaves the hero
	PhaseReleased                     // Completion scroll fired, clip rests at segment end
	PhaseRewindActive                 // Easing segment end → cutoff, document pinned
	PhaseTornDown                     // Unmounted, all resources released
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAutoplayForward:
		return "autoplay_forward"
	case PhaseArmedForward:
		return "armed_forward"
	case PhaseLockedForward:
		return "locked_forward"
	case PhaseCompleteArmed:
		return "complete_armed"
	case PhaseReleased:
		return "released"
	case PhaseRewindActive:
		return "rewind_active"
	case PhaseTornDown:
		return "torn_down"
	default:
		return "unknown"
	}
}

// Locked reports whether the document scroll lock belongs to this phase.
func (p Phase) Locked() bool {
	return p == PhaseLockedForward || p == PhaseRewindActive
}

// Direction classifies a scroll sample against the previous one.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "none"
	}
}

func classify(previous, current float64) Direction {
	switch {
	case current > previous:
		return DirectionDown
	case current < previous:
		return DirectionUp
	default:
		return DirectionNone
	}
}
