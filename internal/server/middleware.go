package server

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vsm-0/portfolio/internal/sections"
)

const nonceKey = "cspNonce"

func generateNonce() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("generate nonce: %v", err))
	}
	return base64.StdEncoding.EncodeToString(b)
}

// nonce returns the CSP nonce securityHeaders stored for this request.
func nonce(c *gin.Context) string {
	return c.GetString(nonceKey)
}

func scriptOrigin(src string) string {
	if i := strings.Index(src[len("https://"):], "/"); i >= 0 {
		return src[:len("https://")+i]
	}
	return src
}

func securityHeaders(baseURL string) gin.HandlerFunc {
	strictTransport := strings.HasPrefix(baseURL, "https://")
	scriptOrigins := scriptOrigin(sections.HTMXScript) + " " + scriptOrigin(sections.IconifyScript)

	return func(c *gin.Context) {
		n := generateNonce()
		c.Set(nonceKey, n)

		h := c.Writer.Header()
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

		csp := fmt.Sprintf(
			"default-src 'self'; img-src 'self' data:; media-src 'self'; "+
				"script-src 'self' 'nonce-%s' 'wasm-unsafe-eval' %s; "+
				"style-src 'self' 'nonce-%s'; style-src-attr 'unsafe-inline'; "+
				"connect-src 'self' https://api.iconify.design; frame-ancestors 'self'; form-action 'self';",
			n, scriptOrigins, n,
		)
		h.Set("Content-Security-Policy", csp)

		if strictTransport {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/healthz" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.ClientIP(),
		)
	}
}
