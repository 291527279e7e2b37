// Package typewriter cycles a label through a list of roles, typing each one
// out, holding it, and deleting it before moving to the next.
package typewriter

import (
	"context"
	"errors"
	"time"
)

const (
	TypeDelay   = 60 * time.Millisecond
	DeleteDelay = 30 * time.Millisecond
	Dwell       = 2000 * time.Millisecond
)

var ErrNoRoles = errors.New("typewriter: no roles")

// Cycler is not safe for concurrent use; Run owns it while it runs.
type Cycler struct {
	roles    [][]rune
	index    int
	shown    int
	deleting bool
}

func New(roles []string) (*Cycler, error) {
	if len(roles) == 0 {
		return nil, ErrNoRoles
	}
	c := &Cycler{roles: make([][]rune, len(roles))}
	for i, r := range roles {
		c.roles[i] = []rune(r)
	}
	return c, nil
}

// Text is the currently displayed prefix.
func (c *Cycler) Text() string { return string(c.roles[c.index][:c.shown]) }

// Role is the full role currently being typed or deleted.
func (c *Cycler) Role() string { return string(c.roles[c.index]) }

func (c *Cycler) Index() int { return c.index }

func (c *Cycler) Deleting() bool { return c.deleting }

// Delay is how long to wait before the next Advance.
func (c *Cycler) Delay() time.Duration {
	switch {
	case c.holding():
		return Dwell
	case c.exhausted():
		return 0
	case c.deleting:
		return DeleteDelay
	default:
		return TypeDelay
	}
}

// Advance performs one step: start deleting a fully typed role, move to the
// next role once deleted, or grow/shrink the prefix by one character.
func (c *Cycler) Advance() {
	switch {
	case c.holding():
		c.deleting = true
	case c.exhausted():
		c.deleting = false
		c.index = (c.index + 1) % len(c.roles)
	case c.deleting:
		c.shown--
	default:
		c.shown++
	}
}

func (c *Cycler) holding() bool {
	return !c.deleting && c.shown == len(c.roles[c.index])
}

func (c *Cycler) exhausted() bool {
	return c.deleting && c.shown == 0
}

// Run advances the cycler on its own schedule and calls fn whenever the
// displayed text changes. It returns the context's error once cancelled.
func (c *Cycler) Run(ctx context.Context, fn func(text string)) error {
	timer := time.NewTimer(c.Delay())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			before := c.Text()
			c.Advance()
			if text := c.Text(); text != before {
				fn(text)
			}
			timer.Reset(c.Delay())
		}
	}
}
