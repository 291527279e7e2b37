package hero

import "fmt"

// Event is a message delivered to the Machine.
type Event interface {
	isEvent()
}

// Mounted starts the autoplay phase. Offset is the document scroll offset
// at mount time and seeds the direction sample.
type Mounted struct {
	Offset float64
}

// TimeUpdate reports the media element's current position in seconds.
type TimeUpdate struct {
	Position float64
}

// PlayRejected reports that the runtime refused to start playback.
type PlayRejected struct{}

// Scroll reports a document scroll notification.
type Scroll struct {
	Offset      float64
	HeroVisible bool
}

// RewindFrame reports normalized rewind progress in [0, 1].
type RewindFrame struct {
	Progress float64
}

// Teardown releases everything the choreographer holds.
type Teardown struct{}

func (Mounted) isEvent()      {}
func (TimeUpdate) isEvent()   {}
func (PlayRejected) isEvent() {}
func (Scroll) isEvent()       {}
func (RewindFrame) isEvent()  {}
func (Teardown) isEvent()     {}

// EffectKind names a side effect requested by the Machine.
type EffectKind int

const (
	EffectPlay EffectKind = iota + 1
	EffectPause
	EffectSeek
	EffectLock
	EffectUnlock
	EffectScrollTo
	EffectStartRewind
	EffectCancelRewind
)

func (k EffectKind) String() string {
	switch k {
	case EffectPlay:
		return "play"
	case EffectPause:
		return "pause"
	case EffectSeek:
		return "seek"
	case EffectLock:
		return "lock"
	case EffectUnlock:
		return "unlock"
	case EffectScrollTo:
		return "scroll_to"
	case EffectStartRewind:
		return "start_rewind"
	case EffectCancelRewind:
		return "cancel_rewind"
	default:
		return "unknown"
	}
}

// Effect is one side effect. Position is set for EffectSeek, Offset for
// EffectLock and Anchor for EffectScrollTo.
type Effect struct {
	Kind     EffectKind
	Position float64
	Offset   float64
	Anchor   string
}

func (e Effect) String() string {
	switch e.Kind {
	case EffectSeek:
		return fmt.Sprintf("seek(%.3f)", e.Position)
	case EffectLock:
		return fmt.Sprintf("lock(%.1f)", e.Offset)
	case EffectScrollTo:
		return fmt.Sprintf("scroll_to(#%s)", e.Anchor)
	default:
		return e.Kind.String()
	}
}

func play() Effect { return Effect{Kind: EffectPlay} }
func pause() Effect { return Effect{Kind: EffectPause} }
func seek(position float64) Effect { return Effect{Kind: EffectSeek, Position: position} }
func lock(offset float64) Effect { return Effect{Kind: EffectLock, Offset: offset} }
func unlock() Effect { return Effect{Kind: EffectUnlock} }
func scrollTo(anchor string) Effect { return Effect{Kind: EffectScrollTo, Anchor: anchor} }
func startRewind() Effect { return Effect{Kind: EffectStartRewind} }
func cancelRewind() Effect { return Effect{Kind: EffectCancelRewind} }
