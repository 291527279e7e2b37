package hero

import (
	"log/slog"
	"sync"
)

// Media is the clip's playback surface.
type Media interface {
	// Play starts playback. A non-nil error means the runtime refused.
	// Implementations that learn about refusal asynchronously return nil
	// and dispatch PlayRejected themselves.
	Play() error
	Pause()
	Seek(position float64)
}

type Config struct {
	Options  Options
	Media    Media
	Document Document
	Clock    FrameClock
	Logger   *slog.Logger
}

// Snapshot is a point-in-time view of a Controller.
type Snapshot struct {
	Phase     Phase
	Position  float64
	Locked    bool
	Rewinding bool
}

// Controller owns a Machine and the resources its effects touch.
//
// Events go through a mailbox: whichever goroutine finds it idle drains it,
// later callers only enqueue. Transitions are therefore applied one at a
// time and in arrival order, including events posted by effects.
type Controller struct {
	media  Media
	doc    Document
	clock  FrameClock
	logger *slog.Logger

	mu       sync.Mutex
	queue    []Event
	draining bool

	stateMu sync.Mutex
	machine *Machine
	lock    *ScrollLock
	rewind  *frameTask
}

func NewController(cfg Config) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		media:   cfg.Media,
		doc:     cfg.Document,
		clock:   cfg.Clock,
		logger:  logger.With("component", "hero"),
		machine: NewMachine(cfg.Options),
		lock:    NewScrollLock(cfg.Document),
	}
}

// Mount starts the choreography from the document's current offset.
func (c *Controller) Mount() {
	var offset float64
	if c.doc != nil {
		offset = c.doc.ScrollOffset()
	}
	c.Dispatch(Mounted{Offset: offset})
}

// Teardown stops playback, cancels a running rewind and releases the lock.
func (c *Controller) Teardown() {
	c.Dispatch(Teardown{})
}

func (c *Controller) Dispatch(ev Event) {
	c.mu.Lock()
	c.queue = append(c.queue, ev)
	if c.draining {
		c.mu.Unlock()
		return
	}
	c.draining = true
	c.mu.Unlock()

	for {
		c.mu.Lock()
		if len(c.queue) == 0 {
			c.draining = false
			c.mu.Unlock()
			return
		}
		next := c.queue[0]
		c.queue = c.queue[1:]
		c.mu.Unlock()

		c.handle(next)
	}
}

func (c *Controller) Snapshot() Snapshot {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return Snapshot{
		Phase:     c.machine.Phase(),
		Position:  c.machine.Position(),
		Locked:    c.lock.Held(),
		Rewinding: c.rewind.Active(),
	}
}

func (c *Controller) handle(ev Event) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	before := c.machine.Phase()
	effects := c.machine.Handle(ev)
	if after := c.machine.Phase(); after != before {
		c.logger.Debug("phase transition",
			"from", before.String(),
			"to", after.String(),
			"position", c.machine.Position(),
			"effects", len(effects),
		)
	}
	for _, eff := range effects {
		c.apply(eff)
	}
}

func (c *Controller) apply(eff Effect) {
	switch eff.Kind {
	case EffectPlay:
		// No media element: degrade the same way as a refused play.
		if c.media == nil {
			c.post(PlayRejected{})
			return
		}
		if err := c.media.Play(); err != nil {
			c.logger.Debug("playback refused", "error", err)
			c.post(PlayRejected{})
		}
	case EffectPause:
		if c.media != nil {
			c.media.Pause()
		}
	case EffectSeek:
		if c.media != nil {
			c.media.Seek(eff.Position)
		}
	case EffectLock:
		if err := c.lock.Acquire(eff.Offset); err != nil {
			c.logger.Warn("scroll lock not acquired", "phase", c.machine.Phase().String(), "error", err)
		}
	case EffectUnlock:
		c.lock.Release()
	case EffectScrollTo:
		if c.doc == nil || !c.doc.ScrollIntoView(eff.Anchor) {
			c.logger.Debug("scroll target missing", "anchor", eff.Anchor)
		}
	case EffectStartRewind:
		c.rewind.Stop()
		c.rewind = nil
		if c.clock == nil {
			c.post(RewindFrame{Progress: 1})
			return
		}
		c.rewind = startFrameTask(c.clock, c.machine.Options().RewindDuration, func(p float64) {
			c.Dispatch(RewindFrame{Progress: p})
		})
	case EffectCancelRewind:
		c.rewind.Stop()
		c.rewind = nil
	}
}

// post enqueues an event raised while applying effects. The current drain
// loop picks it up after the remaining effects have run.
func (c *Controller) post(ev Event) {
	c.mu.Lock()
	c.queue = append(c.queue, ev)
	c.mu.Unlock()
}
