package hero

import (
	"sync"
	"sync/atomic"
	"time"
)

// Cancel withdraws a scheduled frame callback. Calling it more than once,
// or after the callback ran, is harmless.
type Cancel func()

// FrameClock schedules callbacks on display refresh. RequestFrame must not
// run fn before returning.
type FrameClock interface {
	Now() time.Time
	RequestFrame(fn func()) Cancel
}

// TimerClock approximates display refresh with a timer. It is used where no
// real frame source exists.
type TimerClock struct {
	Interval time.Duration
}

func (c TimerClock) Now() time.Time { return time.Now() }

func (c TimerClock) RequestFrame(fn func()) Cancel {
	interval := c.Interval
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	t := time.AfterFunc(interval, fn)
	return func() { t.Stop() }
}

// frameTask reports eased-animation progress once per frame until it
// reaches 1 or is stopped. A stopped task never reports again.
type frameTask struct {
	clock    FrameClock
	duration time.Duration
	report   func(progress float64)
	start    time.Time

	stopped atomic.Bool
	mu      sync.Mutex
	cancel  Cancel
}

func startFrameTask(clock FrameClock, duration time.Duration, report func(float64)) *frameTask {
	t := &frameTask{
		clock:    clock,
		duration: duration,
		report:   report,
		start:    clock.Now(),
	}
	t.schedule()
	return t
}

func (t *frameTask) schedule() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped.Load() {
		return
	}
	t.cancel = t.clock.RequestFrame(t.frame)
}

func (t *frameTask) frame() {
	if t.stopped.Load() {
		return
	}
	p := Progress(t.clock.Now().Sub(t.start), t.duration)
	if p >= 1 {
		t.stopped.Store(true)
	}
	t.report(p)
	if p < 1 {
		t.schedule()
	}
}

// Stop cancels the pending frame. It is safe on a nil task.
func (t *frameTask) Stop() {
	if t == nil {
		return
	}
	t.stopped.Store(true)
	t.mu.Lock()
	cancel := t.cancel
	t.cancel = nil
	t.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (t *frameTask) Active() bool {
	return t != nil && !t.stopped.Load()
}
