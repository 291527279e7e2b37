// Package config reads the site configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAdminUsername = "admin"
	devAdminPassword     = "admin123"
	releaseMode          = "release"
)

type Config struct {
	Port      string
	BaseURL   string
	GinMode   string
	LogLevel  string
	LogFormat string

	DatabasePath     string
	GeoIPPath        string
	VisitorRetention time.Duration
	// VisitorHashSalt keeps visitor hashes stable across restarts. Empty
	// means a fresh random salt per process.
	VisitorHashSalt string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	ToEmail  string

	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string
	SessionSecret     string
	// AdminDevPassword is set when the development fallback password is in
	// use.
	AdminDevPassword bool

	ContactRatePerMinute    int
	AdminLoginRatePerMinute int
	HeroRewind              bool
}

// FromEnv builds a Config using getenv, normally os.Getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	env := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		Port:      env("PORT", "8080"),
		BaseURL:   strings.TrimRight(env("BASE_URL", "http://localhost:8080"), "/"),
		GinMode:   env("GIN_MODE", "debug"),
		LogLevel:  env("LOG_LEVEL", "info"),
		LogFormat: env("LOG_FORMAT", "text"),

		DatabasePath:    env("DATABASE_PATH", "data/portfolio.db"),
		GeoIPPath:       env("GEOIP_DB_PATH", ""),
		VisitorHashSalt: env("VISITOR_HASH_SALT", ""),

		SMTPHost: env("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort: env("SMTP_PORT", "587"),
		SMTPUser: env("SMTP_USER", ""),
		SMTPPass: env("SMTP_PASS", ""),

		AdminUsername:     env("ADMIN_USERNAME", defaultAdminUsername),
		AdminPassword:     env("ADMIN_PASSWORD", ""),
		AdminPasswordHash: env("ADMIN_PASSWORD_HASH", ""),
		SessionSecret:     env("SESSION_SECRET", ""),
	}
	cfg.ToEmail = env("TO_EMAIL", cfg.SMTPUser)

	var errs []error

	retention, err := parseRetention(env("VISITOR_RETENTION", "365d"))
	if err != nil {
		errs = append(errs, fmt.Errorf("VISITOR_RETENTION: %w", err))
	}
	cfg.VisitorRetention = retention

	rate, err := strconv.Atoi(env("CONTACT_RATE_PER_MINUTE", "5"))
	if err != nil || rate <= 0 {
		errs = append(errs, errors.New("CONTACT_RATE_PER_MINUTE: must be a positive integer"))
	}
	cfg.ContactRatePerMinute = rate

	loginRate, err := strconv.Atoi(env("ADMIN_LOGIN_RATE_PER_MINUTE", "10"))
	if err != nil || loginRate <= 0 {
		errs = append(errs, errors.New("ADMIN_LOGIN_RATE_PER_MINUTE: must be a positive integer"))
	}
	cfg.AdminLoginRatePerMinute = loginRate

	rewind, err := strconv.ParseBool(env("HERO_REWIND", "true"))
	if err != nil {
		errs = append(errs, fmt.Errorf("HERO_REWIND: %w", err))
	}
	cfg.HeroRewind = rewind

	if p, err := strconv.Atoi(cfg.Port); err != nil || p <= 0 || p > 65535 {
		errs = append(errs, fmt.Errorf("PORT: %q is not a valid port", cfg.Port))
	}
	if u, err := url.Parse(cfg.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("BASE_URL: %q is not an absolute URL", cfg.BaseURL))
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT: must be text or json, got %q", cfg.LogFormat))
	}
	switch cfg.GinMode {
	case "debug", releaseMode, "test":
	default:
		errs = append(errs, fmt.Errorf("GIN_MODE: must be debug, release or test, got %q", cfg.GinMode))
	}

	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" && !cfg.Release() {
		cfg.AdminPassword = devAdminPassword
		cfg.AdminDevPassword = true
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

func (c *Config) Release() bool {
	return c.GinMode == releaseMode
}

// AdminEnabled reports whether an admin password is available. Release
// builds without one serve no admin routes.
func (c *Config) AdminEnabled() bool {
	return c.AdminPassword != "" || c.AdminPasswordHash != ""
}

// SecureCookies reports whether the site is served over HTTPS.
func (c *Config) SecureCookies() bool {
	return strings.HasPrefix(c.BaseURL, "https://")
}

// parseRetention accepts Go durations ("720h") and whole days ("365d").
func parseRetention(s string) (time.Duration, error) {
	var d time.Duration
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid day count %q", s)
		}
		d = time.Duration(n) * 24 * time.Hour
	} else {
		var err error
		if d, err = time.ParseDuration(s); err != nil {
			return 0, err
		}
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %q", s)
	}
	return d, nil
}
