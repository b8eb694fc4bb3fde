package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type stubVerifier struct {
	claims AdminClaims
	err    error
}

func (s stubVerifier) VerifyToken(string) (AdminClaims, error) { return s.claims, s.err }

func TestCustomerID_HeaderAndGuestFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CustomerID())
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, CustomerFrom(c))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(HeaderCustomerID, "  cust_1  ") // trimmed
	r.ServeHTTP(w, req)
	if w.Body.String() != "cust_1" {
		t.Fatalf("customer id = %q; want cust_1", w.Body.String())
	}

	// Missing header falls back to guest
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	if w2.Body.String() != "guest" {
		t.Fatalf("customer id = %q; want guest", w2.Body.String())
	}
}

func TestCustomerFrom_DefaultsWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if got := CustomerFrom(c); got != "guest" {
		t.Fatalf("CustomerFrom = %q; want guest", got)
	}
}

func TestRequireAdmin_MissingOrMalformedHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequireAdmin(stubVerifier{claims: AdminClaims{Role: "admin"}}))
	r.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, header := range []string{"", "Token abc", "Bearer ", "Bearer    "} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status = %d; want 401", header, w.Code)
		}
		if got := w.Header().Get("WWW-Authenticate"); got == "" {
			t.Fatalf("header %q: expected WWW-Authenticate challenge", header)
		}
	}
}

func TestRequireAdmin_InvalidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequireAdmin(stubVerifier{err: errors.New("bad token")}))
	r.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d; want 401", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["code"] != "unauthorized" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestRequireAdmin_NonAdminRoleForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequireAdmin(stubVerifier{claims: AdminClaims{UserID: "u1", Role: "customer"}}))
	r.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer ok")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d; want 403", w.Code)
	}
}

func TestRequireAdmin_SetsAdminIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequireAdmin(stubVerifier{claims: AdminClaims{UserID: "adm_1", Email: "ops@example.com", Role: "admin"}}))
	r.GET("/admin", func(c *gin.Context) {
		id, email := AdminFrom(c)
		if id != "adm_1" || email != "ops@example.com" {
			t.Fatalf("AdminFrom = %q %q", id, email)
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer ok")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}
}
