// Package server wires the portfolio's HTTP routes.
package server

import (
	"context"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vsm-0/portfolio/internal/admin"
	"github.com/vsm-0/portfolio/internal/contact"
	"github.com/vsm-0/portfolio/internal/content"
	"github.com/vsm-0/portfolio/internal/hero"
)

// LoaderDuration is how long the splash stays up before the hero mounts.
const LoaderDuration = 10 * time.Second

const qrSize = 256

const (
	defaultContactRate = 5
	defaultLoginRate   = 10
	loginBurst         = 5
)

// Forgetter deletes the visits recorded for one visitor.
type Forgetter interface {
	Forget(ctx context.Context, hashedIP string) (int64, error)
}

// Hasher maps a client address to its stored identifier.
type Hasher interface {
	Hash(ip string) string
}

// Pinger reports database health.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Config struct {
	Profile   *content.Profile
	Templates *template.Template
	Static    fs.FS
	BaseURL   string

	Hero hero.Options

	Sender               contact.Sender
	ContactRatePerMinute int
	// LoginRatePerMinute limits admin sign-in attempts per client.
	LoginRatePerMinute   int

	// Tracker, Admin, Forgetter and Pinger are optional.
	Tracker   gin.HandlerFunc
	Admin     *admin.Handler
	Forgetter Forgetter
	Hasher    Hasher
	Pinger    Pinger

	Retention    time.Duration
	GeoIPEnabled bool
	Logger       *slog.Logger
}

type Server struct {
	cfg    Config
	engine *gin.Engine
	logger *slog.Logger
	qrPNG  []byte
	now    func() time.Time
}

func New(cfg Config) (*Server, error) {
	if cfg.Profile == nil {
		return nil, errors.New("server: profile is required")
	}
	if cfg.Templates == nil {
		return nil, errors.New("server: templates are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	qr, err := contact.QRCode(contact.VCard(cfg.Profile), qrSize)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		engine: gin.New(),
		logger: logger,
		qrPNG:  qr,
		now:    time.Now,
	}
	s.routes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := s.engine
	r.SetHTMLTemplate(s.cfg.Templates)

	r.Use(gin.Recovery())
	r.Use(requestLogger(s.logger))
	r.Use(securityHeaders(s.cfg.BaseURL))
	if s.cfg.Tracker != nil {
		r.Use(s.cfg.Tracker)
	}

	if s.cfg.Static != nil {
		r.StaticFS("/static", http.FS(s.cfg.Static))
	}

	r.GET("/", s.index)
	r.GET("/healthz", s.healthz)
	r.GET("/api/hero", s.heroSettings)

	rate := s.cfg.ContactRatePerMinute
	if rate <= 0 {
		rate = defaultContactRate
	}
	contactLimit := newLimiter(rate, rate)

	r.GET("/contact-form", s.contactForm)
	r.POST("/contact", contactLimit.middleware(contactRejected), s.contactSubmit)
	r.GET("/contact/qr.png", s.contactQR)
	r.GET("/contact/vcard.vcf", s.contactVCard)

	r.GET("/privacy", s.privacy)
	r.POST("/privacy/forget", s.forget)

	if s.cfg.Admin != nil {
		loginRate := s.cfg.LoginRatePerMinute
		if loginRate <= 0 {
			loginRate = defaultLoginRate
		}
		loginLimit := newLimiter(loginRate, min(loginRate, loginBurst))
		s.cfg.Admin.Register(r, loginLimit.middleware(loginRejected))
	}
}
