package hero

import "errors"

var ErrLockHeld = errors.New("hero: scroll lock already held")

// Document is the scrollable page surrounding the hero.
type Document interface {
	// ScrollOffset is the current vertical scroll offset.
	ScrollOffset() float64
	// Pin fixes the page in place at offset and suppresses scrolling.
	Pin(offset float64)
	// Unpin undoes Pin.
	Unpin()
	// ScrollTo jumps to offset without animation.
	ScrollTo(offset float64)
	// ScrollIntoView smoothly scrolls to the element with the given id. It
	// reports false when there is no such element.
	ScrollIntoView(anchor string) bool
}

// ScrollLock pins a Document and restores its exact offset on release.
// A nil Document is tolerated: the lock still tracks ownership.
type ScrollLock struct {
	doc    Document
	held   bool
	offset float64
}

func NewScrollLock(doc Document) *ScrollLock {
	return &ScrollLock{doc: doc}
}

// Acquire pins the document at offset and remembers it for Release. The
// caller passes the offset it last observed rather than re-reading the
// document, which may have moved since.
func (l *ScrollLock) Acquire(offset float64) error {
	if l.held {
		return ErrLockHeld
	}
	l.offset = offset
	if l.doc != nil {
		l.doc.Pin(offset)
	}
	l.held = true
	return nil
}

// Release unpins the document and restores the captured offset. Releasing
// a free lock does nothing.
func (l *ScrollLock) Release() {
	if !l.held {
		return
	}
	l.held = false
	if l.doc != nil {
		l.doc.Unpin()
		l.doc.ScrollTo(l.offset)
	}
}

func (l *ScrollLock) Held() bool { return l.held }

// Offset is the offset pinned by the last Acquire.
func (l *ScrollLock) Offset() float64 { return l.offset }
