// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file resolves the two request identities the API works with:
//
//   - Customers are pseudonymous. The storefront client generates a stable
//     identifier and sends it as X-Customer-ID; the server keys carts and
//     last orders by it. No account or authentication is implied.
//   - Admins authenticate via POST /admin/login and carry a Bearer session
//     token; RequireAdmin gates the back-office routes.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// HeaderCustomerID carries the storefront client's pseudonymous identity.
	HeaderCustomerID = "X-Customer-ID"

	ctxKeyCustomerID = "customerID"
	ctxKeyAdminID    = "adminID"
	ctxKeyAdminEmail = "adminEmail"
)

// CustomerID stashes the caller's customer identity in the context. Requests
// without the header fall back to "guest" so cart endpoints stay usable from
// a bare curl.
func CustomerID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderCustomerID))
		if id == "" {
			id = "guest"
		}
		c.Set(ctxKeyCustomerID, id)
		c.Next()
	}
}

// CustomerFrom returns the customer identity resolved by CustomerID().
func CustomerFrom(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyCustomerID); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "guest"
}

// AdminClaims is the subset of session claims the middleware needs.
type AdminClaims struct {
	UserID string
	Email  string
	Role   string
}

// TokenVerifier validates a session token. The auth gateway is the production
// implementation.
type TokenVerifier interface {
	VerifyToken(token string) (AdminClaims, error)
}

// RequireAdmin gates a route group behind a valid admin Bearer token. It
// rejects missing/malformed headers with 401 and valid sessions whose role is
// not admin with 403, and stashes the admin identity for audit logging.
func RequireAdmin(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			unauthorized(c, "missing bearer token")
			return
		}
		claims, err := verifier.VerifyToken(strings.TrimSpace(token))
		if err != nil {
			unauthorized(c, "invalid or expired token")
			return
		}
		if claims.Role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"request_id": c.Writer.Header().Get(requestIDHeader),
				"code":       "forbidden",
				"message":    "admin role required",
			})
			return
		}
		c.Set(ctxKeyAdminID, claims.UserID)
		c.Set(ctxKeyAdminEmail, claims.Email)
		c.Next()
	}
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", `Bearer realm="admin"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.Writer.Header().Get(requestIDHeader),
		"code":       "unauthorized",
		"message":    msg,
	})
}

// AdminFrom returns the admin identity set by RequireAdmin, or empty strings
// on public routes.
func AdminFrom(c *gin.Context) (id, email string) {
	if v, ok := c.Get(ctxKeyAdminID); ok {
		id, _ = v.(string)
	}
	if v, ok := c.Get(ctxKeyAdminEmail); ok {
		email, _ = v.(string)
	}
	return id, email
}
