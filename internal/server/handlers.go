package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	g "maragu.dev/gomponents"

	"github.com/vsm-0/portfolio/internal/contact"
	"github.com/vsm-0/portfolio/internal/hero"
	"github.com/vsm-0/portfolio/internal/sections"
)

const sendTimeout = 15 * time.Second

func (s *Server) render(c *gin.Context, status int, node g.Node) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := node.Render(c.Writer); err != nil {
		s.logger.Error("failed to render page", "path", c.Request.URL.Path, "error", err)
	}
}

func (s *Server) index(c *gin.Context) {
	s.render(c, http.StatusOK, sections.Page(s.cfg.Profile, sections.PageOptions{Nonce: nonce(c)}))
}

func (s *Server) healthz(c *gin.Context) {
	if s.cfg.Pinger != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.cfg.Pinger.PingContext(ctx); err != nil {
			s.logger.Error("health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) heroSettings(c *gin.Context) {
	c.Header("Cache-Control", "no-cache")
	c.JSON(http.StatusOK, hero.NewSettings(s.cfg.Hero, s.cfg.Profile.Hero.Roles, LoaderDuration))
}

// HTMX contact form endpoint, returns just the form HTML
func (s *Server) contactForm(c *gin.Context) {
	s.render(c, http.StatusOK, sections.ContactForm())
}

// contactSubmit answers with 200 fragments even on failure: htmx only
// swaps successful responses.
func (s *Server) contactSubmit(c *gin.Context) {
	msg, err := contact.NewMessage(c.PostForm("fullName"), c.PostForm("email"), c.PostForm("message"), s.now())
	if err != nil {
		var fe *contact.FieldError
		field := ""
		if errors.As(err, &fe) {
			field = fe.Field
		}
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Please fill in your name, a valid email address and a message.",
			"field": fieldLabel(field),
		})
		return
	}

	if s.cfg.Sender == nil {
		err = contact.ErrNotConfigured
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), sendTimeout)
		defer cancel()
		err = s.cfg.Sender.Send(ctx, msg)
	}
	if err != nil {
		s.logger.Error("failed to send contact email", "error", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}

func fieldLabel(field string) string {
	switch field {
	case "fullName":
		return "name"
	case "email", "message":
		return field
	}
	return ""
}

func (s *Server) contactQR(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", s.qrPNG)
}

func (s *Server) contactVCard(c *gin.Context) {
	name := strings.ToLower(strings.ReplaceAll(s.cfg.Profile.ShortName, " ", "-"))
	if name == "" {
		name = "contact"
	}
	c.Header("Content-Disposition", "attachment; filename="+name+".vcf")
	c.Data(http.StatusOK, "text/vcard; charset=utf-8", []byte(contact.VCard(s.cfg.Profile)))
}

func (s *Server) privacyData() gin.H {
	return gin.H{
		"title":     "Privacy Policy",
		"geoip":     s.cfg.GeoIPEnabled,
		"retention": retentionLabel(s.cfg.Retention),
	}
}

func (s *Server) privacy(c *gin.Context) {
	c.HTML(http.StatusOK, "privacy.html", s.privacyData())
}

// forget lets a visitor delete the visits stored under their own hashed
// address.
func (s *Server) forget(c *gin.Context) {
	if s.cfg.Forgetter == nil || s.cfg.Hasher == nil {
		c.HTML(http.StatusOK, "privacy.html", s.privacyData())
		return
	}

	removed, err := s.cfg.Forgetter.Forget(c.Request.Context(), s.cfg.Hasher.Hash(c.ClientIP()))
	if err != nil {
		s.logger.Error("failed to forget visitor", "error", err)
		data := s.privacyData()
		data["error"] = "Could not delete your data. Please try again later."
		c.HTML(http.StatusInternalServerError, "privacy.html", data)
		return
	}

	data := s.privacyData()
	data["forgotten"] = true
	data["removed"] = removed
	c.HTML(http.StatusOK, "privacy.html", data)
}

func retentionLabel(d time.Duration) string {
	days := int(d / (24 * time.Hour))
	switch {
	case days == 365:
		return "12 months"
	case days > 1:
		return strconv.Itoa(days) + " days"
	case days == 1:
		return "1 day"
	}
	return d.String()
}
