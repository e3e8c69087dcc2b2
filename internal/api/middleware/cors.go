package middleware

import (
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSConfig defines CORS configuration options.
type CORSConfig struct {
	// AllowOrigins are accepted verbatim in addition to loopback and webview origins
	AllowOrigins []string
	AllowMethods []string
	AllowHeaders []string
	MaxAge       time.Duration
}

// DefaultCORSConfig returns the configuration for a local desktop shell.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Accept",
			"Origin",
			"X-Request-ID",
			"X-Span-ID",
		},
		MaxAge: 12 * time.Hour,
	}
}

// webviewSchemes are origins used by embedded desktop webviews
var webviewSchemes = map[string]bool{
	"tauri": true,
	"app":   true,
}

// CORS creates a CORS middleware that only admits local callers.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	explicit := make(map[string]bool, len(cfg.AllowOrigins))
	for _, o := range cfg.AllowOrigins {
		explicit[strings.TrimSuffix(o, "/")] = true
	}

	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return explicit[origin] || IsLocalOrigin(origin)
		},
		AllowMethods:  cfg.AllowMethods,
		AllowHeaders:  cfg.AllowHeaders,
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        cfg.MaxAge,
	})
}

// IsLocalOrigin reports whether origin is a loopback page or a desktop webview.
func IsLocalOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	if webviewSchemes[u.Scheme] {
		return true
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	hostname := u.Hostname()
	if hostname == "localhost" || strings.HasSuffix(hostname, ".localhost") {
		return true
	}
	ip := net.ParseIP(hostname)
	return ip != nil && ip.IsLoopback()
}
