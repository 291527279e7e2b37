// Package loop runs jobs one at a time on a single goroutine. Callers that
// must not block, such as browser event callbacks, enqueue and return.
package loop

import (
	"context"
	"sync"
)

// Queue has two lanes. Offer is for samples that a later sample
// supersedes: they are dropped when the lane is full. Push never drops.
type Queue struct {
	samples chan func()
	wake    chan struct{}

	mu      sync.Mutex
	pending []func()
}

func New(size int) *Queue {
	return &Queue{
		samples: make(chan func(), size),
		wake:    make(chan struct{}, 1),
	}
}

// Offer enqueues job unless the sample lane is full, and reports whether
// it was accepted.
func (q *Queue) Offer(job func()) bool {
	select {
	case q.samples <- job:
		return true
	default:
		return false
	}
}

// Push enqueues job without limit.
func (q *Queue) Push(job func()) {
	q.mu.Lock()
	q.pending = append(q.pending, job)
	q.mu.Unlock()
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Run executes jobs on the calling goroutine until ctx is done.
func (q *Queue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case job := <-q.samples:
			job()
		case <-q.wake:
			for _, job := range q.take() {
				job()
			}
		}
	}
}

func (q *Queue) take() []func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	jobs := q.pending
	q.pending = nil
	return jobs
}
