package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_RequestCountersAndInflight(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())
	r.GET("/products", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"items": []string{"p1"}})
	})
	// 204 leaves the response size at -1, which the size histogram skips.
	r.DELETE("/cart", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	// Counters are process-global, so assert deltas against the current value.
	baseList := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/products", "200"))
	baseMiss := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/storefront", "404"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /products -> %d", w.Code)
	}

	// Unrouted paths fall back to the raw URL as the path label.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/storefront", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /storefront -> %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/cart", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("DELETE /cart -> %d", w.Code)
	}

	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/products", "200")); got != baseList+1 {
		t.Fatalf("products counter = %v, want %v", got, baseList+1)
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/storefront", "404")); got != baseMiss+1 {
		t.Fatalf("404 fallback counter = %v, want %v", got, baseMiss+1)
	}
	if inFlight := testutil.ToFloat64(httpInflight); inFlight != 0 {
		t.Fatalf("httpInflight = %v after requests drained, want 0", inFlight)
	}
}
