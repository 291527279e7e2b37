package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// limiter is a per-client token bucket. Idle clients are swept out on
// later calls instead of by a background goroutine.
type limiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	rate      float64
	burst     float64
	now       func() time.Time
	lastSweep time.Time
}

const (
	sweepInterval = 5 * time.Minute
	idleAfter     = 10 * time.Minute
)

func newLimiter(perMinute, burst int) *limiter {
	return &limiter{
		buckets: make(map[string]*bucket),
		rate:    float64(perMinute) / 60,
		burst:   float64(burst),
		now:     time.Now,
	}
}

func (l *limiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		l.buckets[key] = &bucket{tokens: l.burst - 1, lastSeen: now}
		return true
	}

	b.tokens += now.Sub(b.lastSeen).Seconds() * l.rate
	b.lastSeen = now
	if b.tokens > l.burst {
		b.tokens = l.burst
	}
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (l *limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < sweepInterval {
		return
	}
	l.lastSweep = now
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > idleAfter {
			delete(l.buckets, key)
		}
	}
}

// middleware hands over-limit clients to reject, which must abort.
func (l *limiter) middleware(reject gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.allow(c.ClientIP()) {
			c.Next()
			return
		}
		c.Header("Retry-After", "60")
		reject(c)
	}
}

// contactRejected answers 429, except to htmx which gets a 200 error
// fragment so the form can show it in place.
func contactRejected(c *gin.Context) {
	if c.GetHeader("HX-Request") == "true" {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Too many messages. Please wait a minute and try again.",
		})
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
}

// loginRejected re-renders the sign-in page with a 429.
func loginRejected(c *gin.Context) {
	c.HTML(http.StatusTooManyRequests, "admin-login.html", gin.H{
		"title": "Admin Login",
		"error": "Too many sign-in attempts. Please wait a minute and try again.",
	})
	c.Abort()
}
