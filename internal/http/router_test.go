package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-faq-backend/internal/config"
	"github.com/tbourn/go-faq-backend/internal/repo"
)

type fixedCompleter struct {
	reply string
	calls int
}

func (f *fixedCompleter) Complete(ctx context.Context, message string) (string, error) {
	f.calls++
	return f.reply, nil
}

func testConfig() config.Config {
	return config.Config{
		RateRPS:        1000,
		RateBurst:      1000,
		IdempotencyTTL: time.Hour,
		APIBasePath:    "/",
		OTEL:           config.OTELConfig{ServiceName: "test"},
	}
}

func newApp(t *testing.T, comp *fixedCompleter, cfg config.Config) (*gin.Engine, *gorm.DB) {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, db, comp, cfg)
	return r, db
}

func do(t *testing.T, r *gin.Engine, method, path string, body any, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	r, _ := newApp(t, &fixedCompleter{}, testConfig())

	w := do(t, r, http.MethodGet, "/health", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"status":"ok"`)) {
		t.Fatalf("body: %s", w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing request id header")
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	r, _ := newApp(t, &fixedCompleter{}, testConfig())

	w := do(t, r, http.MethodGet, "/metrics", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("http_requests_total")) {
		t.Fatalf("prometheus exposition missing")
	}
}

func TestRouter_NoRouteEnvelope(t *testing.T) {
	r, _ := newApp(t, &fixedCompleter{}, testConfig())

	w := do(t, r, http.MethodGet, "/nope", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"code":"not_found"`)) {
		t.Fatalf("body: %s", w.Body.String())
	}
}

func TestRouter_NoMethodEnvelope(t *testing.T) {
	r, _ := newApp(t, &fixedCompleter{}, testConfig())

	w := do(t, r, http.MethodDelete, "/chat", nil, nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"code":"method_not_allowed"`)) {
		t.Fatalf("body: %s", w.Body.String())
	}
}

func TestRouter_ChatFlowEndToEnd(t *testing.T) {
	comp := &fixedCompleter{reply: "generated answer"}
	r, _ := newApp(t, comp, testConfig())

	// Seed an FAQ through the admin endpoint.
	seed := do(t, r, http.MethodPost, "/admin/faqs", gin.H{
		"question": "What are your hours?",
		"answer":   "9 to 5.",
	}, nil)
	if seed.Code != http.StatusOK {
		t.Fatalf("seed faq: %d %s", seed.Code, seed.Body.String())
	}

	// Case-insensitive FAQ hit, no completion call.
	hit := do(t, r, http.MethodPost, "/chat", gin.H{"user_message": "WHAT ARE YOUR HOURS?"}, nil)
	if hit.Code != http.StatusOK {
		t.Fatalf("faq hit: %d %s", hit.Code, hit.Body.String())
	}
	if !bytes.Contains(hit.Body.Bytes(), []byte(`"bot_response":"9 to 5."`)) {
		t.Fatalf("faq answer missing: %s", hit.Body.String())
	}
	if comp.calls != 0 {
		t.Fatalf("completion ran on FAQ hit")
	}

	// FAQ miss goes to the completion client and lands in history.
	miss := do(t, r, http.MethodPost, "/chat", gin.H{"user_message": "something else"}, nil)
	if miss.Code != http.StatusOK || comp.calls != 1 {
		t.Fatalf("fallback: %d calls=%d", miss.Code, comp.calls)
	}

	hist := do(t, r, http.MethodGet, "/history", nil, nil)
	if hist.Code != http.StatusOK {
		t.Fatalf("history: %d", hist.Code)
	}
	if !bytes.Contains(hist.Body.Bytes(), []byte(`"user_message":"something else"`)) {
		t.Fatalf("history missing exchange: %s", hist.Body.String())
	}
	// The FAQ-served exchange is not recorded.
	if bytes.Contains(hist.Body.Bytes(), []byte("WHAT ARE YOUR HOURS?")) {
		t.Fatalf("faq hit leaked into history: %s", hist.Body.String())
	}
}

func TestRouter_IdempotentChatReplay(t *testing.T) {
	comp := &fixedCompleter{reply: "only once"}
	r, _ := newApp(t, comp, testConfig())

	hdr := map[string]string{
		"X-User-ID":       "42",
		"Idempotency-Key": "req-001",
	}
	first := do(t, r, http.MethodPost, "/chat", gin.H{"user_message": "charge me"}, hdr)
	if first.Code != http.StatusOK || comp.calls != 1 {
		t.Fatalf("first: %d calls=%d", first.Code, comp.calls)
	}

	second := do(t, r, http.MethodPost, "/chat", gin.H{"user_message": "charge me"}, hdr)
	if second.Code != http.StatusOK {
		t.Fatalf("second: %d %s", second.Code, second.Body.String())
	}
	if comp.calls != 1 {
		t.Fatalf("retry reached the upstream, calls=%d", comp.calls)
	}
	if second.Header().Get("Idempotency-Replayed") != "true" {
		t.Fatalf("missing replay header")
	}
	if !bytes.Contains(second.Body.Bytes(), []byte(`"bot_response":"only once"`)) {
		t.Fatalf("replayed body: %s", second.Body.String())
	}
}

func TestRouter_InvalidIdempotencyKey(t *testing.T) {
	r, _ := newApp(t, &fixedCompleter{}, testConfig())

	w := do(t, r, http.MethodPost, "/chat", gin.H{"user_message": "hi"}, map[string]string{
		"Idempotency-Key": "bad key with spaces",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d", w.Code)
	}
}

func TestRouter_RateLimitExceeded(t *testing.T) {
	cfg := testConfig()
	cfg.RateRPS = 0.001
	cfg.RateBurst = 1
	r, _ := newApp(t, &fixedCompleter{}, cfg)

	hdr := map[string]string{"X-User-ID": "limited"}
	if w := do(t, r, http.MethodGet, "/history", nil, hdr); w.Code != http.StatusOK {
		t.Fatalf("first: %d", w.Code)
	}
	w := do(t, r, http.MethodGet, "/history", nil, hdr)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
}

func TestRouter_CORSAllowAllByDefault(t *testing.T) {
	r, _ := newApp(t, &fixedCompleter{}, testConfig())

	w := do(t, r, http.MethodGet, "/health", nil, nil)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("ACAO %q", got)
	}
}

func TestRouter_SecurityHeadersApplied(t *testing.T) {
	r, _ := newApp(t, &fixedCompleter{}, testConfig())

	w := do(t, r, http.MethodGet, "/health", nil, nil)
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("security headers missing")
	}
}

func TestRouter_BasePathMounting(t *testing.T) {
	cfg := testConfig()
	cfg.APIBasePath = "/api/v1"
	r, _ := newApp(t, &fixedCompleter{reply: "r"}, cfg)

	if w := do(t, r, http.MethodGet, "/api/v1/history", nil, nil); w.Code != http.StatusOK {
		t.Fatalf("prefixed route: %d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/history", nil, nil); w.Code != http.StatusNotFound {
		t.Fatalf("unprefixed route should be gone: %d", w.Code)
	}
}

func TestGroupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if g := groupWithPrefix(r, ""); g.BasePath() != "/" {
		t.Fatalf("empty prefix: %q", g.BasePath())
	}
	if g := groupWithPrefix(r, "/"); g.BasePath() != "/" {
		t.Fatalf("root prefix: %q", g.BasePath())
	}
	if g := groupWithPrefix(r, "/api"); g.BasePath() != "/api" {
		t.Fatalf("api prefix: %q", g.BasePath())
	}
}
