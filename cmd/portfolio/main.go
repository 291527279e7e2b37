package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/sync/errgroup"

	"github.com/vsm-0/portfolio/internal/admin"
	"github.com/vsm-0/portfolio/internal/config"
	"github.com/vsm-0/portfolio/internal/contact"
	"github.com/vsm-0/portfolio/internal/content"
	"github.com/vsm-0/portfolio/internal/database"
	"github.com/vsm-0/portfolio/internal/hero"
	"github.com/vsm-0/portfolio/internal/logs"
	"github.com/vsm-0/portfolio/internal/server"
	"github.com/vsm-0/portfolio/internal/visitors"
	"github.com/vsm-0/portfolio/web"
)

const (
	cleanupInterval = 24 * time.Hour
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("portfolio stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv(os.Getenv)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logs.New(os.Stderr, logs.Options{Format: cfg.LogFormat, Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	gin.SetMode(cfg.GinMode)

	profile, err := content.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." && cfg.DatabasePath != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
	}
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	db, err := database.Open(openCtx, cfg.DatabasePath)
	cancel()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return err
	}

	geo := visitors.OpenResolver(cfg.GeoIPPath)
	defer geo.Close()

	hasher := visitors.NewHasher(cfg.VisitorHashSalt)
	if cfg.VisitorHashSalt == "" {
		if hasher, err = visitors.RandomHasher(); err != nil {
			return err
		}
	}
	store := visitors.NewStore(db)
	tracker := visitors.NewTracker(store, hasher, geo, logger)
	slog.Info("privacy: visitor tracking enabled with hashed IP addresses", "retention", cfg.VisitorRetention.String())

	adminHandler, err := newAdmin(cfg, store, hasher, logger)
	if err != nil {
		return err
	}

	tmpl, err := web.Templates()
	if err != nil {
		return err
	}

	heroOpts := hero.DefaultOptions()
	heroOpts.Rewind = cfg.HeroRewind

	srv, err := server.New(server.Config{
		Profile:   profile,
		Templates: tmpl,
		Static:    web.Static(),
		BaseURL:   cfg.BaseURL,
		Hero:      heroOpts,
		Sender: contact.NewSMTPSender(contact.SMTPConfig{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			To:   cfg.ToEmail,
		}),
		ContactRatePerMinute: cfg.ContactRatePerMinute,
		LoginRatePerMinute:   cfg.AdminLoginRatePerMinute,
		Tracker:              tracker.Middleware(),
		Admin:                adminHandler,
		Forgetter:            store,
		Hasher:               hasher,
		Pinger:               db,
		Retention:            cfg.VisitorRetention,
		GeoIPEnabled:         cfg.GeoIPPath != "",
		Logger:               logger,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("portfolio listening", "addr", httpServer.Addr, "base_url", cfg.BaseURL)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return visitors.RunCleanup(gctx, store, cfg.VisitorRetention, cleanupInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		tracker.Wait()
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("shutdown complete")
	return nil
}

func newAdmin(cfg *config.Config, store *visitors.Store, hasher *visitors.Hasher, logger *slog.Logger) (*admin.Handler, error) {
	if !cfg.AdminEnabled() {
		slog.Warn("admin disabled: set ADMIN_PASSWORD or ADMIN_PASSWORD_HASH")
		return nil, nil
	}
	if cfg.AdminDevPassword {
		slog.Warn("using default admin password, set ADMIN_PASSWORD for anything but local development")
	}

	creds, err := admin.NewCredentials(cfg.AdminUsername, cfg.AdminPassword, cfg.AdminPasswordHash)
	if err != nil {
		return nil, err
	}
	sessions, err := admin.NewSessions(cfg.SessionSecret)
	if err != nil {
		return nil, err
	}
	if cfg.SessionSecret == "" {
		slog.Info("SESSION_SECRET not set, admin sessions end on restart")
	}

	slog.Info("admin access available", "path", "/admin/login")
	return admin.NewHandler(admin.Config{
		Credentials:  creds,
		Sessions:     sessions,
		Store:        store,
		Hasher:       hasher,
		Retention:    cfg.VisitorRetention,
		SecureCookie: cfg.SecureCookies(),
		Logger:       logger,
	}), nil
}
