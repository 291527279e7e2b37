package visitors

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Count is one row of a ranked breakdown.
type Count struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type Stats struct {
	TotalVisits    int64   `json:"total_visits"`
	UniqueVisitors int64   `json:"unique_visitors"`
	VisitsToday    int64   `json:"visits_today"`
	VisitsThisWeek int64   `json:"visits_this_week"`
	TopPaths       []Count `json:"top_paths"`
	TopBrowsers    []Count `json:"top_browsers"`
	TopCountries   []Count `json:"top_countries"`
	Devices        []Count `json:"devices"`
	RecentVisits   []Visit `json:"recent_visits"`
}

const (
	topLimit    = 10
	recentLimit = 50
)

func (s *Store) Record(ctx context.Context, v Visit) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visits (hashed_ip, user_agent, browser, os, device, path, country, visited_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, v.HashedIP, v.UserAgent, v.Browser, v.OS, string(v.Device), v.Path, v.Country, v.VisitedAt.UTC())
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// Recent returns the newest visits first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, user_agent, browser, os, device, path, country, visited_at
		FROM visits
		ORDER BY visited_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent visits: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		var device string
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Browser, &v.OS, &device, &v.Path, &v.Country, &v.VisitedAt); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		v.Device = Device(device)
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// Stats aggregates the dashboard figures. "Today" starts at midnight UTC of
// now; "this week" is the trailing seven days.
func (s *Store) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	week := now.Add(-7 * 24 * time.Hour)

	stats := &Stats{}
	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisits, `SELECT COUNT(*) FROM visits`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visits`, nil},
		{&stats.VisitsToday, `SELECT COUNT(*) FROM visits WHERE visited_at >= ?`, []any{today}},
		{&stats.VisitsThisWeek, `SELECT COUNT(*) FROM visits WHERE visited_at >= ?`, []any{week}},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("count visits: %w", err)
		}
	}

	var err error
	if stats.TopPaths, err = s.top(ctx, "path"); err != nil {
		return nil, err
	}
	if stats.TopBrowsers, err = s.top(ctx, "browser"); err != nil {
		return nil, err
	}
	if stats.TopCountries, err = s.top(ctx, "country"); err != nil {
		return nil, err
	}
	if stats.Devices, err = s.top(ctx, "device"); err != nil {
		return nil, err
	}
	if stats.RecentVisits, err = s.Recent(ctx, recentLimit); err != nil {
		return nil, err
	}
	return stats, nil
}

// top ranks the non-empty values of column. column is never user input.
func (s *Store) top(ctx context.Context, column string) ([]Count, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %[1]s, COUNT(*) AS n
		FROM visits
		WHERE %[1]s != ''
		GROUP BY %[1]s
		ORDER BY n DESC, %[1]s ASC
		LIMIT ?
	`, column), topLimit)
	if err != nil {
		return nil, fmt.Errorf("rank visits by %s: %w", column, err)
	}
	defer rows.Close()

	var out []Count
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Label, &c.Count); err != nil {
			return nil, fmt.Errorf("scan %s count: %w", column, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteOlderThan removes visits recorded before cutoff.
func (s *Store) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM visits WHERE visited_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete old visits: %w", err)
	}
	return res.RowsAffected()
}

// Forget removes every visit recorded for one hashed address.
func (s *Store) Forget(ctx context.Context, hashedIP string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM visits WHERE hashed_ip = ?`, hashedIP)
	if err != nil {
		return 0, fmt.Errorf("forget visitor: %w", err)
	}
	return res.RowsAffected()
}
