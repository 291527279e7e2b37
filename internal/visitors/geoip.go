package visitors

import (
	"log/slog"
	"net"

	"github.com/oschwald/maxminddb-golang"
)

// Resolver maps addresses to ISO country codes using a MaxMind database.
// A Resolver without a database resolves everything to "".
type Resolver struct {
	db *maxminddb.Reader
}

type geoResult struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// OpenResolver loads the database at path. An empty path or an unreadable
// file disables lookups rather than failing start-up.
func OpenResolver(path string) *Resolver {
	if path == "" {
		return &Resolver{}
	}
	db, err := maxminddb.Open(path)
	if err != nil {
		slog.Warn("geoip: failed to open database, country lookup disabled", "path", path, "error", err)
		return &Resolver{}
	}
	slog.Info("geoip: loaded database", "path", path)
	return &Resolver{db: db}
}

func (r *Resolver) Country(ip string) string {
	if r == nil || r.db == nil || ip == "" {
		return ""
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}
	var result geoResult
	if err := r.db.Lookup(parsed, &result); err != nil {
		return ""
	}
	return result.Country.ISOCode
}

func (r *Resolver) Close() error {
	if r != nil && r.db != nil {
		return r.db.Close()
	}
	return nil
}
