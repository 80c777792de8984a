package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func redactRouter(opts RedactOptions, status int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.Use(RedactingLogger(opts))
	r.GET("/ok", func(c *gin.Context) { c.Status(status) })
	return r
}

func TestRedactingLogger_ScrubsQueryPII(t *testing.T) {
	buf := captureLogs(t)
	r := redactRouter(RedactOptions{}, http.StatusOK)

	target := "/ok?email=jane.doe@example.com&id=123e4567-e89b-42d3-a456-426614174000&phone=%2B1-555-123-4567"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

	out := buf.String()
	if strings.Contains(out, "jane.doe@example.com") {
		t.Fatalf("email leaked: %s", out)
	}
	if strings.Contains(out, "123e4567-e89b-42d3-a456-426614174000") {
		t.Fatalf("uuid leaked: %s", out)
	}
	if !strings.Contains(out, "[REDACTED:email]") || !strings.Contains(out, "[REDACTED:id]") {
		t.Fatalf("redaction markers missing: %s", out)
	}
}

func TestRedactingLogger_MasksSensitiveHeaders(t *testing.T) {
	buf := captureLogs(t)
	r := redactRouter(RedactOptions{MaskHeaders: []string{"X-API-Key"}}, http.StatusOK)

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("Authorization", "Bearer super-secret-token")
	req.Header.Set("X-API-Key", "key-material")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	out := buf.String()
	if strings.Contains(out, "super-secret-token") || strings.Contains(out, "key-material") {
		t.Fatalf("secret leaked: %s", out)
	}
	if !strings.Contains(out, "[REDACTED]") {
		t.Fatalf("mask marker missing: %s", out)
	}
}

func TestRedactingLogger_LevelFollowsStatus(t *testing.T) {
	cases := []struct {
		status int
		level  string
	}{
		{http.StatusOK, `"level":"info"`},
		{http.StatusNotFound, `"level":"warn"`},
		{http.StatusInternalServerError, `"level":"error"`},
	}
	for _, tc := range cases {
		buf := captureLogs(t)
		r := redactRouter(RedactOptions{}, tc.status)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
		if !strings.Contains(buf.String(), tc.level) {
			t.Fatalf("status %d: expected %s in %s", tc.status, tc.level, buf.String())
		}
	}
}

func TestRedactingLogger_AttachesRequestLogger(t *testing.T) {
	_ = captureLogs(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.Use(RedactingLogger(RedactOptions{}))

	var attached bool
	r.GET("/ok", func(c *gin.Context) {
		_, attached = c.Get("logger")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if !attached {
		t.Fatalf("request-scoped logger missing")
	}
}
