package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountsRequestsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics())
	r.GET("/widgets/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/widgets/:id", "200"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/widgets/42", nil))

	after := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/widgets/:id", "200"))
	if after != before+1 {
		t.Fatalf("counter before=%v after=%v", before, after)
	}
}

func TestMetrics_RawPathFallbackOn404(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics())

	before := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/missing", "404"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	after := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/missing", "404"))
	if after != before+1 {
		t.Fatalf("counter before=%v after=%v", before, after)
	}
}

func TestCountChatAnswer(t *testing.T) {
	before := testutil.ToFloat64(chatAnswers.WithLabelValues("faq"))
	CountChatAnswer("faq")
	after := testutil.ToFloat64(chatAnswers.WithLabelValues("faq"))
	if after != before+1 {
		t.Fatalf("chat counter before=%v after=%v", before, after)
	}
}
