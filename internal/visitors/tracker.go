package visitors

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Recorder persists visits.
type Recorder interface {
	Record(ctx context.Context, v Visit) error
}

// Locator resolves an address to an ISO country code, or "".
type Locator interface {
	Country(ip string) string
}

var untrackedPrefixes = []string{
	"/static/",
	"/images/",
	"/admin",
	"/api/",
	"/favicon",
	"/privacy",
	"/healthz",
}

const recordTimeout = 5 * time.Second

// Tracker is gin middleware that records page views in the background.
type Tracker struct {
	store  Recorder
	hasher *Hasher
	geo    Locator
	logger *slog.Logger
	now    func() time.Time
	wg     sync.WaitGroup
}

func NewTracker(store Recorder, hasher *Hasher, geo Locator, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		store:  store,
		hasher: hasher,
		geo:    geo,
		logger: logger.With("component", "visitors"),
		now:    time.Now,
	}
}

func (t *Tracker) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !t.trackable(c.Request) {
			c.Next()
			return
		}

		// gin recycles the context, so copy what the goroutine needs.
		ip := c.ClientIP()
		ua := c.GetHeader("User-Agent")
		path := c.Request.URL.Path
		at := t.now()

		t.wg.Add(1)
		go func() {
			defer t.wg.Done()
			t.record(ip, ua, path, at)
		}()
		c.Next()
	}
}

func (t *Tracker) trackable(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}
	if r.Header.Get("DNT") == "1" || r.Header.Get("Sec-GPC") == "1" {
		return false
	}
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return false
		}
	}
	return true
}

func (t *Tracker) record(ip, ua, path string, at time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	agent := Classify(ua)
	v := Visit{
		HashedIP:  t.hasher.Hash(ip),
		UserAgent: ua,
		Browser:   agent.Browser,
		OS:        agent.OS,
		Device:    agent.Device,
		Path:      path,
		VisitedAt: at,
	}
	if t.geo != nil {
		v.Country = t.geo.Country(ip)
	}

	if err := t.store.Record(ctx, v); err != nil {
		t.logger.Error("failed to record visit", "path", path, "error", err)
	}
}

// Wait blocks until in-flight background inserts finish.
func (t *Tracker) Wait() {
	t.wg.Wait()
}
