package admin

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vsm-0/portfolio/internal/visitors"
)

// Store is the slice of the visitor store the dashboard reads and prunes.
type Store interface {
	Stats(ctx context.Context, now time.Time) (*visitors.Stats, error)
	Recent(ctx context.Context, limit int) ([]visitors.Visit, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type Config struct {
	Credentials *Credentials
	Sessions    *Sessions
	Store       Store
	Hasher      *visitors.Hasher
	// Retention is the age past which the privacy cleanup deletes visits.
	Retention time.Duration
	// SecureCookie marks the session cookie HTTPS-only.
	SecureCookie bool
	Logger       *slog.Logger
}

type Handler struct {
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

const visitorsPageLimit = 200

func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{cfg: cfg, logger: logger.With("component", "admin"), now: time.Now}
}

// Register mounts the admin routes. loginGuard runs in front of the login
// POST only.
func (h *Handler) Register(r gin.IRouter, loginGuard ...gin.HandlerFunc) {
	r.GET("/admin/login", h.loginPage)
	r.POST("/admin/login", append(loginGuard, h.login)...)
	r.GET("/admin/logout", h.logout)

	g := r.Group("/admin")
	g.Use(h.RequireSession())
	g.GET("/dashboard", h.dashboard)
	g.GET("/api/stats", h.statsJSON)
	g.GET("/visitors", h.visitors)
	g.GET("/export/stats", h.export)
	g.POST("/privacy/cleanup", h.cleanup)
}

// RequireSession rejects requests without a valid session cookie: API
// calls get 401, pages redirect to the login form.
func (h *Handler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err == nil {
			var claims *Claims
			if claims, err = h.cfg.Sessions.Validate(token); err == nil {
				c.Set("admin", claims.Username)
				c.Next()
				return
			}
		}

		if strings.HasPrefix(c.Request.URL.Path, "/admin/api/") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Redirect(http.StatusFound, "/admin/login")
		c.Abort()
	}
}

func (h *Handler) clientHash(c *gin.Context) string {
	if h.cfg.Hasher == nil {
		return ""
	}
	return h.cfg.Hasher.Hash(c.ClientIP())
}

func (h *Handler) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "admin-login.html", gin.H{
		"title": "Admin Login",
	})
}

func (h *Handler) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if !h.cfg.Credentials.Check(username, password) {
		h.logger.Warn("failed admin login", "client", h.clientHash(c))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
		return
	}

	token, err := h.cfg.Sessions.Issue(username)
	if err != nil {
		h.logger.Error("failed to issue session", "error", err)
		c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
			"error": "Could not start a session",
		})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookie, token, int(SessionDuration.Seconds()), "/admin", "", h.cfg.SecureCookie, true)
	h.logger.Info("admin login", "client", h.clientHash(c))
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (h *Handler) logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookie, "", -1, "/admin", "", h.cfg.SecureCookie, true)
	h.logger.Info("admin logout", "client", h.clientHash(c))
	c.Redirect(http.StatusFound, "/admin/login")
}

func (h *Handler) dashboard(c *gin.Context) {
	stats, err := h.cfg.Store.Stats(c.Request.Context(), h.now())
	if err != nil {
		h.logger.Error("failed to load stats", "error", err)
		c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
			"error": "Failed to load statistics",
		})
		return
	}

	c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
		"title": "Dashboard",
		"stats": stats,
		"host":  CollectHostStats(c.Request.Context()),
	})
}

func (h *Handler) statsJSON(c *gin.Context) {
	stats, err := h.cfg.Store.Stats(c.Request.Context(), h.now())
	if err != nil {
		h.logger.Error("failed to load stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stats": stats,
		"host":  CollectHostStats(c.Request.Context()),
	})
}

func (h *Handler) visitors(c *gin.Context) {
	list, err := h.cfg.Store.Recent(c.Request.Context(), visitorsPageLimit)
	if err != nil {
		h.logger.Error("failed to load visitors", "error", err)
		c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
			"error": "Failed to load visitors",
		})
		return
	}
	c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
		"title":    "Visitors",
		"visitors": list,
	})
}

func (h *Handler) export(c *gin.Context) {
	stats, err := h.cfg.Store.Stats(c.Request.Context(), h.now())
	if err != nil {
		h.logger.Error("failed to export stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
	h.logger.Info("admin stats exported", "client", h.clientHash(c))
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) cleanup(c *gin.Context) {
	removed, err := visitors.Purge(c.Request.Context(), h.cfg.Store, h.cfg.Retention, h.now())
	if err != nil {
		h.logger.Error("privacy cleanup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "privacy cleanup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete", "removed": removed})
}
