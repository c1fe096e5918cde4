package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// buildContentSecurityPolicy allows inline section scripts and embedded
// media from the given extra sources.
func buildContentSecurityPolicy(mediaSources, frameSources []string) string {
	media := append([]string{"'self'", "data:", "blob:"}, mediaSources...)
	frames := append([]string{"'self'"}, frameSources...)

	directives := []string{
		"default-src 'self'",
		"script-src 'self' 'unsafe-inline'",
		"style-src 'self' 'unsafe-inline'",
		"img-src " + strings.Join(media, " "),
		"media-src " + strings.Join(media, " "),
		"frame-src " + strings.Join(frames, " "),
		"object-src 'none'",
		"base-uri 'self'",
		"frame-ancestors 'self'",
	}
	return strings.Join(directives, "; ")
}

// SecurityHeadersMiddleware sets the browser hardening headers. Rendered
// pages may be framed by the builder itself for previews.
func SecurityHeadersMiddleware(mediaSources, frameSources []string) gin.HandlerFunc {
	policy := buildContentSecurityPolicy(mediaSources, frameSources)
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "SAMEORIGIN")
		c.Header("Cross-Origin-Opener-Policy", "same-origin")
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Header("Content-Security-Policy", policy)
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}
