package hero

import (
	"errors"
	"sync"
	"time"
)

type fakeMedia struct {
	playErr  error
	plays    int
	pauses   int
	position float64
	seeks    []float64
}

func (m *fakeMedia) Play() error {
	m.plays++
	return m.playErr
}

func (m *fakeMedia) Pause() { m.pauses++ }

func (m *fakeMedia) Seek(position float64) {
	m.position = position
	m.seeks = append(m.seeks, position)
}

var errAutoplayBlocked = errors.New("NotAllowedError: play() failed because the user didn't interact")

type fakeDocument struct {
	offset   float64
	pinned   bool
	pinnedAt float64
	anchors  map[string]float64
	scrolled []string
	restored []float64
}

func newFakeDocument() *fakeDocument {
	return &fakeDocument{anchors: map[string]float64{"about": 900}}
}

func (d *fakeDocument) ScrollOffset() float64 {
	if d.pinned {
		return 0
	}
	return d.offset
}

func (d *fakeDocument) Pin(offset float64) {
	d.pinned = true
	d.pinnedAt = offset
}

func (d *fakeDocument) Unpin() { d.pinned = false }

func (d *fakeDocument) ScrollTo(offset float64) {
	d.offset = offset
	d.restored = append(d.restored, offset)
}

func (d *fakeDocument) ScrollIntoView(anchor string) bool {
	y, ok := d.anchors[anchor]
	if !ok {
		return false
	}
	d.scrolled = append(d.scrolled, anchor)
	d.offset = y
	return true
}

// manualClock fires frames only when the test advances it.
type manualClock struct {
	mu      sync.Mutex
	now     time.Time
	pending []*manualFrame
}

type manualFrame struct {
	fn        func()
	cancelled bool
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) RequestFrame(fn func()) Cancel {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := &manualFrame{fn: fn}
	c.pending = append(c.pending, f)
	return func() {
		c.mu.Lock()
		f.cancelled = true
		c.mu.Unlock()
	}
}

// Advance moves time forward by d and runs the frames that were pending.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	frames := c.pending
	c.pending = nil
	c.mu.Unlock()

	for _, f := range frames {
		c.mu.Lock()
		cancelled := f.cancelled
		c.mu.Unlock()
		if !cancelled {
			f.fn()
		}
	}
}

func (c *manualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, f := range c.pending {
		if !f.cancelled {
			n++
		}
	}
	return n
}
