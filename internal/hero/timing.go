package hero

import "time"

const (
	// ForwardCutoff is where autoplay stops and the locked segment resumes.
	ForwardCutoff = 4.0
	// SegmentEnd is where the locked segment stops.
	SegmentEnd = 8.0
	// RewindDuration is how long the eased rewind from SegmentEnd to
	// ForwardCutoff takes.
	RewindDuration = 1200 * time.Millisecond
	// NextAnchor is the section the completion scroll moves to.
	NextAnchor = "about"
)

// Options tunes the choreography. The zero value is not usable; start from
// DefaultOptions.
type Options struct {
	ForwardCutoff  float64
	SegmentEnd     float64
	RewindDuration time.Duration
	NextAnchor     string
	// Rewind enables the upward-scroll rewind back to the cutoff.
	Rewind bool
}

func DefaultOptions() Options {
	return Options{
		ForwardCutoff:  ForwardCutoff,
		SegmentEnd:     SegmentEnd,
		RewindDuration: RewindDuration,
		NextAnchor:     NextAnchor,
		Rewind:         true,
	}
}

// EaseInOutQuad accelerates through the first half of p and decelerates
// through the second. p is clamped to [0, 1].
func EaseInOutQuad(p float64) float64 {
	p = clamp(p, 0, 1)
	if p < 0.5 {
		return 2 * p * p
	}
	q := 1 - p
	return 1 - 2*q*q
}

// RewindPosition is the clip position at normalized progress p of a rewind
// from → to.
func RewindPosition(from, to, p float64) float64 {
	return lerp(from, to, EaseInOutQuad(p))
}

// Progress normalizes elapsed against total, clamped to [0, 1]. A
// non-positive total is already complete.
func Progress(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	return clamp(float64(elapsed)/float64(total), 0, 1)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
