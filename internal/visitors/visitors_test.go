package visitors

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vsm-0/portfolio/internal/database"
)

const (
	chromeUA    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	iphoneUA    = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	googlebotUA = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewStore(db)
}

func TestHasher_StablePerSalt(t *testing.T) {
	a := NewHasher("salt-a")
	b := NewHasher("salt-b")

	h := a.Hash("192.0.2.1")
	if len(h) != 16 {
		t.Fatalf("expected 16 hex chars, got %q", h)
	}
	if a.Hash("192.0.2.1") != h {
		t.Error("expected same hash for same address and salt")
	}
	if a.Hash("192.0.2.2") == h {
		t.Error("expected different addresses to hash differently")
	}
	if b.Hash("192.0.2.1") == h {
		t.Error("expected different salts to hash differently")
	}
}

func TestRandomHasher_UsesFreshSalt(t *testing.T) {
	a, err := RandomHasher()
	if err != nil {
		t.Fatalf("RandomHasher: %v", err)
	}
	b, _ := RandomHasher()
	if a.Hash("192.0.2.1") == b.Hash("192.0.2.1") {
		t.Error("expected independent salts")
	}
}

func TestClassify(t *testing.T) {
	chrome := Classify(chromeUA)
	if chrome.Browser != "Chrome" || chrome.Device != DeviceDesktop {
		t.Errorf("unexpected desktop classification %+v", chrome)
	}
	if !strings.Contains(chrome.OS, "Windows") {
		t.Errorf("expected Windows OS, got %q", chrome.OS)
	}

	if got := Classify(iphoneUA).Device; got != DeviceMobile {
		t.Errorf("expected mobile, got %s", got)
	}
	if got := Classify(googlebotUA).Device; got != DeviceBot {
		t.Errorf("expected bot, got %s", got)
	}
	if got := Classify(""); got.Browser != "" || got.Device != DeviceDesktop {
		t.Errorf("unexpected classification of empty header %+v", got)
	}
}

func TestResolver_Disabled(t *testing.T) {
	for _, r := range []*Resolver{OpenResolver(""), OpenResolver("/nonexistent/GeoLite2-Country.mmdb"), nil} {
		if got := r.Country("8.8.8.8"); got != "" {
			t.Errorf("expected empty country, got %q", got)
		}
		if err := r.Close(); err != nil {
			t.Errorf("expected no error closing disabled resolver, got %v", err)
		}
	}
}

func TestStore_RecordRecentAndStats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)

	visits := []Visit{
		{HashedIP: "aaaa", Path: "/", Browser: "Chrome", Device: DeviceDesktop, Country: "IN", VisitedAt: now.Add(-time.Hour)},
		{HashedIP: "aaaa", Path: "/", Browser: "Chrome", Device: DeviceDesktop, Country: "IN", VisitedAt: now.Add(-2 * time.Hour)},
		{HashedIP: "bbbb", Path: "/contact-form", Browser: "Safari", Device: DeviceMobile, VisitedAt: now.Add(-3 * 24 * time.Hour)},
		{HashedIP: "cccc", Path: "/", Browser: "Firefox", Device: DeviceDesktop, Country: "US", VisitedAt: now.Add(-30 * 24 * time.Hour)},
	}
	for _, v := range visits {
		if err := store.Record(ctx, v); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 || !recent[0].VisitedAt.Equal(visits[0].VisitedAt) {
		t.Fatalf("expected newest visits first, got %+v", recent)
	}
	if recent[0].Device != DeviceDesktop || recent[0].Country != "IN" {
		t.Errorf("expected fields round-tripped, got %+v", recent[0])
	}

	stats, err := store.Stats(ctx, now)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalVisits != 4 || stats.UniqueVisitors != 3 {
		t.Errorf("expected 4 visits from 3 visitors, got %d/%d", stats.TotalVisits, stats.UniqueVisitors)
	}
	if stats.VisitsToday != 2 || stats.VisitsThisWeek != 3 {
		t.Errorf("expected 2 today and 3 this week, got %d/%d", stats.VisitsToday, stats.VisitsThisWeek)
	}
	if len(stats.TopPaths) == 0 || stats.TopPaths[0] != (Count{Label: "/", Count: 3}) {
		t.Errorf("unexpected top paths %+v", stats.TopPaths)
	}
	if len(stats.TopCountries) != 2 || stats.TopCountries[0].Label != "IN" {
		t.Errorf("expected empty countries excluded, got %+v", stats.TopCountries)
	}
	if len(stats.RecentVisits) != 4 {
		t.Errorf("expected 4 recent visits, got %d", len(stats.RecentVisits))
	}
}

func TestStore_DeleteOlderThanAndForget(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	store.Record(ctx, Visit{HashedIP: "old", Path: "/", VisitedAt: now.AddDate(-1, -1, 0)})
	store.Record(ctx, Visit{HashedIP: "new", Path: "/", VisitedAt: now})
	store.Record(ctx, Visit{HashedIP: "new", Path: "/contact-form", VisitedAt: now})

	removed, err := Purge(ctx, store, 365*24*time.Hour, now)
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 old visit removed, got %d", removed)
	}

	forgotten, err := store.Forget(ctx, "new")
	if err != nil {
		t.Fatalf("Forget: %v", err)
	}
	if forgotten != 2 {
		t.Errorf("expected 2 visits forgotten, got %d", forgotten)
	}
}

type fakeRecorder struct {
	mu     sync.Mutex
	visits []Visit
	err    error
}

func (f *fakeRecorder) Record(_ context.Context, v Visit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visits = append(f.visits, v)
	return f.err
}

func (f *fakeRecorder) recorded() []Visit {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Visit(nil), f.visits...)
}

type fixedLocator string

func (l fixedLocator) Country(string) string { return string(l) }

func newTrackedRouter(tracker *Tracker) *gin.Engine {
	r := gin.New()
	r.Use(tracker.Middleware())
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/", ok)
	r.GET("/static/site.css", ok)
	r.GET("/admin/dashboard", ok)
	r.POST("/contact", ok)
	return r
}

func TestTracker_RecordsPageViews(t *testing.T) {
	rec := &fakeRecorder{}
	hasher := NewHasher("salt")
	tracker := NewTracker(rec, hasher, fixedLocator("IN"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	router := newTrackedRouter(tracker)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:5555"
	req.Header.Set("User-Agent", chromeUA)
	router.ServeHTTP(httptest.NewRecorder(), req)
	tracker.Wait()

	visits := rec.recorded()
	if len(visits) != 1 {
		t.Fatalf("expected 1 visit, got %d", len(visits))
	}
	v := visits[0]
	if v.HashedIP != hasher.Hash("192.0.2.7") {
		t.Errorf("expected hashed client address, got %q", v.HashedIP)
	}
	if strings.Contains(v.HashedIP, "192.0.2.7") {
		t.Error("raw address must never be stored")
	}
	if v.Path != "/" || v.Browser != "Chrome" || v.Country != "IN" || v.VisitedAt.IsZero() {
		t.Errorf("unexpected visit %+v", v)
	}
}

func TestTracker_SkipsUntrackedRequests(t *testing.T) {
	rec := &fakeRecorder{}
	tracker := NewTracker(rec, NewHasher("salt"), nil, nil)
	router := newTrackedRouter(tracker)

	requests := []*http.Request{
		httptest.NewRequest(http.MethodGet, "/static/site.css", nil),
		httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil),
		httptest.NewRequest(http.MethodPost, "/contact", nil),
	}
	dnt := httptest.NewRequest(http.MethodGet, "/", nil)
	dnt.Header.Set("DNT", "1")
	gpc := httptest.NewRequest(http.MethodGet, "/", nil)
	gpc.Header.Set("Sec-GPC", "1")
	requests = append(requests, dnt, gpc)

	for _, req := range requests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("%s %s: expected request to pass through, got %d", req.Method, req.URL.Path, w.Code)
		}
	}
	tracker.Wait()

	if got := rec.recorded(); len(got) != 0 {
		t.Errorf("expected no visits recorded, got %+v", got)
	}
}

func TestTracker_RecordFailureDoesNotBlockRequest(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("disk full")}
	tracker := NewTracker(rec, NewHasher("salt"), nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	router := newTrackedRouter(tracker)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	tracker.Wait()

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

type countingPurger struct {
	mu    sync.Mutex
	calls int
}

func (p *countingPurger) DeleteOlderThan(context.Context, time.Time) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return 0, nil
}

func TestRunCleanup_PurgesUntilCancelled(t *testing.T) {
	p := &countingPurger{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- RunCleanup(ctx, p, time.Hour, 10*time.Millisecond) }()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil on cancellation, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("RunCleanup did not stop after cancellation")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.calls < 2 {
		t.Errorf("expected immediate and periodic purges, got %d", p.calls)
	}
}
