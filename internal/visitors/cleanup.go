package visitors

import (
	"context"
	"log/slog"
	"time"
)

// Purger deletes visits older than a cutoff.
type Purger interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Purge deletes visits older than retention and logs how many went.
func Purge(ctx context.Context, store Purger, retention time.Duration, now time.Time) (int64, error) {
	removed, err := store.DeleteOlderThan(ctx, now.Add(-retention))
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		slog.Info("privacy cleanup: removed old visits", "count", removed, "retention", retention.String())
	}
	return removed, nil
}

// RunCleanup purges immediately and then once per interval until ctx is
// done. Failed passes are logged and retried on the next tick.
func RunCleanup(ctx context.Context, store Purger, retention, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := Purge(ctx, store, retention, time.Now()); err != nil && ctx.Err() == nil {
			slog.Error("privacy cleanup failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
