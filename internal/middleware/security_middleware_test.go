package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestBuildContentSecurityPolicyAddsMediaSrc(t *testing.T) {
	policy := buildContentSecurityPolicy(nil, nil)
	directives := parseContentSecurityPolicy(policy)

	mediaSrc, ok := directives["media-src"]
	if !ok {
		t.Fatalf("expected media-src directive to be present in policy: %s", policy)
	}

	for _, required := range []string{"'self'", "data:", "blob:"} {
		if _, allowed := mediaSrc[required]; !allowed {
			t.Fatalf("expected media-src to allow %s, policy: %s", required, policy)
		}
	}
}

func TestBuildContentSecurityPolicyAddsExtraSources(t *testing.T) {
	policy := buildContentSecurityPolicy([]string{"https://cdn.example.com"}, []string{"https://www.youtube.com"})
	directives := parseContentSecurityPolicy(policy)

	if _, ok := directives["img-src"]["https://cdn.example.com"]; !ok {
		t.Fatalf("expected img-src to allow the cdn, policy: %s", policy)
	}
	if _, ok := directives["media-src"]["https://cdn.example.com"]; !ok {
		t.Fatalf("expected media-src to allow the cdn, policy: %s", policy)
	}
	if _, ok := directives["frame-src"]["https://www.youtube.com"]; !ok {
		t.Fatalf("expected frame-src to allow youtube, policy: %s", policy)
	}
	if _, ok := directives["script-src"]["'unsafe-inline'"]; !ok {
		t.Fatalf("expected inline scripts to be allowed, policy: %s", policy)
	}
}

func TestSecurityHeadersMiddlewareSetsHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SecurityHeadersMiddleware(nil, nil))
	router.GET("/p/home", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/p/home", nil))

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("unexpected X-Content-Type-Options %q", got)
	}
	if got := w.Header().Get("X-Frame-Options"); got != "SAMEORIGIN" {
		t.Fatalf("unexpected X-Frame-Options %q", got)
	}
	if w.Header().Get("Strict-Transport-Security") != "" {
		t.Fatalf("HSTS must not be sent over plain http")
	}
	if !strings.Contains(w.Header().Get("Content-Security-Policy"), "frame-ancestors 'self'") {
		t.Fatalf("missing frame-ancestors in %q", w.Header().Get("Content-Security-Policy"))
	}
}

func parseContentSecurityPolicy(policy string) map[string]map[string]struct{} {
	result := make(map[string]map[string]struct{})

	for _, directive := range strings.Split(policy, ";") {
		directive = strings.TrimSpace(directive)
		if directive == "" {
			continue
		}

		parts := strings.Fields(directive)
		if len(parts) == 0 {
			continue
		}

		name := parts[0]
		values := make(map[string]struct{}, len(parts)-1)
		for _, value := range parts[1:] {
			values[value] = struct{}{}
		}

		result[name] = values
	}

	return result
}
