package hero

import "time"

// Settings is the JSON document the page fetches to configure the
// choreographer and the role typewriter.
type Settings struct {
	ForwardCutoff float64  `json:"forwardCutoff"`
	SegmentEnd    float64  `json:"segmentEnd"`
	RewindMs      int64    `json:"rewindMs"`
	NextAnchor    string   `json:"nextAnchor"`
	Rewind        bool     `json:"rewind"`
	LoaderMs      int64    `json:"loaderMs"`
	Roles         []string `json:"roles"`
}

func NewSettings(o Options, roles []string, loader time.Duration) Settings {
	return Settings{
		ForwardCutoff: o.ForwardCutoff,
		SegmentEnd:    o.SegmentEnd,
		RewindMs:      o.RewindDuration.Milliseconds(),
		NextAnchor:    o.NextAnchor,
		Rewind:        o.Rewind,
		LoaderMs:      loader.Milliseconds(),
		Roles:         roles,
	}
}

// Options converts back to machine options. Missing or inconsistent
// timings fall back to the defaults.
func (s Settings) Options() Options {
	o := DefaultOptions()
	if s.ForwardCutoff > 0 && s.SegmentEnd > s.ForwardCutoff {
		o.ForwardCutoff = s.ForwardCutoff
		o.SegmentEnd = s.SegmentEnd
	}
	if s.RewindMs > 0 {
		o.RewindDuration = time.Duration(s.RewindMs) * time.Millisecond
	}
	if s.NextAnchor != "" {
		o.NextAnchor = s.NextAnchor
	}
	o.Rewind = s.Rewind
	return o
}
