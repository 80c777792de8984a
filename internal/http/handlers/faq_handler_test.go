package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-faq-backend/internal/domain"
	"github.com/tbourn/go-faq-backend/internal/repo"
	"github.com/tbourn/go-faq-backend/internal/services"
)

// ---------- POST /admin/faqs ----------

func TestCreateFAQ_Success(t *testing.T) {
	r, db := realRouter(t, &stubCompleter{})

	w := doJSON(t, r, http.MethodPost, "/admin/faqs", gin.H{
		"question": "What are your hours?",
		"answer":   "9 to 5.",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var resp CreateFAQResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Message != "FAQ added successfully" {
		t.Fatalf("message %q", resp.Message)
	}

	rows, _ := repo.ListFAQs(context.Background(), db)
	if len(rows) != 1 || rows[0].Question != "What are your hours?" {
		t.Fatalf("stored rows unexpected: %+v", rows)
	}
}

func TestCreateFAQ_DuplicateCaseInsensitive(t *testing.T) {
	r, db := realRouter(t, &stubCompleter{})

	first := doJSON(t, r, http.MethodPost, "/admin/faqs", gin.H{
		"question": "Refund Policy",
		"answer":   "30 days",
	}, nil)
	if first.Code != http.StatusOK {
		t.Fatalf("first insert: %d", first.Code)
	}

	second := doJSON(t, r, http.MethodPost, "/admin/faqs", gin.H{
		"question": "refund policy",
		"answer":   "something else",
	}, nil)
	if second.Code != http.StatusBadRequest {
		t.Fatalf("duplicate status %d: %s", second.Code, second.Body.String())
	}
	var er ErrorResponse
	_ = json.Unmarshal(second.Body.Bytes(), &er)
	if er.Code != ErrCodeDuplicateFAQ {
		t.Fatalf("code %q", er.Code)
	}

	if n, _ := repo.CountFAQs(context.Background(), db); n != 1 {
		t.Fatalf("duplicate must not add a row, got %d", n)
	}
}

func TestCreateFAQ_MissingFields(t *testing.T) {
	r, _ := realRouter(t, &stubCompleter{})

	bodies := []gin.H{
		{"question": "", "answer": "a"},
		{"question": "q", "answer": ""},
		{"question": "   ", "answer": "a"},
		{"answer": "a"},
		{"question": "q"},
		{},
	}
	for _, body := range bodies {
		w := doJSON(t, r, http.MethodPost, "/admin/faqs", body, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %v: status %d", body, w.Code)
		}
		var er ErrorResponse
		_ = json.Unmarshal(w.Body.Bytes(), &er)
		if er.Code != ErrCodeBadRequest {
			t.Fatalf("body %v: code %q", body, er.Code)
		}
	}
}

func TestCreateFAQ_MalformedJSON(t *testing.T) {
	r, _ := realRouter(t, &stubCompleter{})

	req := httptest.NewRequest(http.MethodPost, "/admin/faqs", bytes.NewBufferString("{oops"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d", w.Code)
	}
}

func TestCreateFAQ_ServiceError(t *testing.T) {
	h := New(stubChatSvc{
		answer: func(ctx context.Context, userID *uint, message string) (*services.ChatExchange, error) {
			return nil, nil
		},
	}, stubFAQSvc{
		add: func(ctx context.Context, question, answer string) (*domain.FAQ, error) {
			return nil, context.DeadlineExceeded
		},
	}, time.Hour)
	r := newRouter(h)

	w := doJSON(t, r, http.MethodPost, "/admin/faqs", gin.H{"question": "q", "answer": "a"}, nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status %d", w.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &er)
	if er.Code != ErrCodeInternal {
		t.Fatalf("code %q", er.Code)
	}
}

// ---------- GET /admin/faqs ----------

func TestListFAQs_AllPairs(t *testing.T) {
	r, _ := realRouter(t, &stubCompleter{})

	for _, q := range []string{"first", "second"} {
		w := doJSON(t, r, http.MethodPost, "/admin/faqs", gin.H{"question": q, "answer": "a-" + q}, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("seed %q: %d", q, w.Code)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/admin/faqs", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var items []domain.FAQ
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 2 || items[0].Question != "first" || items[1].Question != "second" {
		t.Fatalf("items unexpected: %+v", items)
	}
}

func TestListFAQs_EmptyArray(t *testing.T) {
	r, _ := realRouter(t, &stubCompleter{})

	w := doJSON(t, r, http.MethodGet, "/admin/faqs", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if got := bytes.TrimSpace(w.Body.Bytes()); string(got) != "[]" {
		t.Fatalf("expected empty JSON array, got %s", got)
	}
}

func TestListFAQs_ETagNotModified(t *testing.T) {
	r, _ := realRouter(t, &stubCompleter{})

	seed := doJSON(t, r, http.MethodPost, "/admin/faqs", gin.H{"question": "q", "answer": "a"}, nil)
	if seed.Code != http.StatusOK {
		t.Fatalf("seed: %d", seed.Code)
	}

	first := doJSON(t, r, http.MethodGet, "/admin/faqs", nil, nil)
	etag := first.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("expected ETag header")
	}

	second := doJSON(t, r, http.MethodGet, "/admin/faqs", nil, map[string]string{"If-None-Match": etag})
	if second.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", second.Code)
	}
}
