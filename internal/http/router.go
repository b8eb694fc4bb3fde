// Package httpapi wires the HTTP transport (Gin) to the storefront and back
// office services, middleware, and route handlers. It centralizes cross-cutting
// concerns such as tracing, correlation IDs, logging/redaction, panic recovery,
// metrics, CORS, security headers, idempotency, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/avelineco/go-shop-backend/docs"
	"github.com/avelineco/go-shop-backend/internal/auth"
	"github.com/avelineco/go-shop-backend/internal/config"
	"github.com/avelineco/go-shop-backend/internal/http/handlers"
	"github.com/avelineco/go-shop-backend/internal/http/middleware"
	"github.com/avelineco/go-shop-backend/internal/store"
)

// gatewayVerifier adapts the auth gateway to the middleware.TokenVerifier
// interface so RequireAdmin stays decoupled from the auth package.
type gatewayVerifier struct {
	gw *auth.Gateway
}

// VerifyToken proxies Gateway.Verify and flattens its claims.
func (v gatewayVerifier) VerifyToken(token string) (middleware.AdminClaims, error) {
	claims, err := v.gw.Verify(token)
	if err != nil {
		return middleware.AdminClaims{}, err
	}
	return middleware.AdminClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), idempotency and rate
// limiting, CORS and security headers, health and metrics endpoints, and then
// mounts the versioned public API and the guarded /admin surface under the
// configured base path.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. CustomerID: resolve the storefront actor (before logging and limits)
//  4. RedactingLogger: structured logs with PII scrubbing
//  5. Recovery: capture panics after logger
//  6. Body size limiter, gzip
//  7. Metrics
//  8. Idempotency validator (before rate limiter to allow bypass on replay)
//  9. Rate limiter (per admin/customer/IP, bypass on replay)
//  10. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, deps handlers.Deps, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Resolve the storefront actor for carts, orders, and rate keys
	r.Use(middleware.CustomerID())

	// 4) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key", // project-specific sensitive header example
		},
	}))

	// 5) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 6) Global body size limit (1 MiB) and response compression
	r.Use(limitBody(1 << 20))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Idempotency validation (before rate limiting). Without a DB the key
	// is still validated and stashed, but replays are never detected.
	var lookup middleware.IdempotencyLookup
	if db != nil {
		lookup = func(ctx context.Context, customerID, key string, now time.Time) (bool, error) {
			rec, err := store.GetIdempotency(ctx, db, customerID, key, now)
			if err != nil || rec == nil {
				return false, nil
			}
			return true, nil
		}
	}
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
		},
		lookup,
	))

	// 9) Token-bucket rate limiter per admin/customer/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByActorOrIP())
	r.Use(rl.Handler())

	// 10) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Customer-ID", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Customer-ID", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(deps)

	// Public storefront API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Catalog
		api.GET("/products", h.ListProducts)
		api.GET("/products/:slug", h.GetProduct)
		api.GET("/products/:slug/reviews", h.ListProductReviews)
		api.GET("/collections", h.ListCollections)

		// Cart
		api.GET("/cart", h.GetCart)
		api.POST("/cart/items", h.AddCartItem)
		api.PUT("/cart/items", h.UpdateCartItem)
		api.DELETE("/cart/items", h.RemoveCartItem)
		api.DELETE("/cart", h.ClearCart)

		// Checkout
		api.POST("/checkout", h.PlaceOrder)
		api.GET("/orders/last", h.LastOrder)
		api.POST("/coupons/validate", h.ValidateCoupon)

		// Shipping quotes
		api.GET("/shipping/rates", h.QuoteShippingRates)

		// Reviews and returns
		api.POST("/reviews", h.CreateReview)
		api.POST("/returns", h.CreateReturn)
		api.GET("/returns", h.ListMyReturns)

		// Support tickets
		api.POST("/tickets", h.CreateTicket)
		api.GET("/tickets", h.ListMyTickets)
		api.POST("/tickets/:id/messages", h.AddTicketMessage)

		// Content
		api.GET("/blog", h.ListBlogPosts)
		api.GET("/blog/:slug", h.GetBlogPost)
		api.GET("/seo", h.GetSEOSettings)

		// Newsletter
		api.POST("/subscribe", h.Subscribe)
		api.POST("/unsubscribe", h.Unsubscribe)
	}

	// Back office. Login is the only admin route outside the token gate.
	api.POST("/admin/login", h.Login)

	admin := api.Group("/admin")
	admin.Use(middleware.RequireAdmin(gatewayVerifier{gw: deps.Auth}))
	{
		// Catalog management
		admin.POST("/products", h.CreateProduct)
		admin.PUT("/products/:id", h.UpdateProduct)
		admin.DELETE("/products/:id", h.DeleteProduct)
		admin.POST("/collections", h.CreateCollection)
		admin.PUT("/collections/:id", h.UpdateCollection)
		admin.DELETE("/collections/:id", h.DeleteCollection)

		// Coupons
		admin.GET("/coupons", h.ListCoupons)
		admin.POST("/coupons", h.CreateCoupon)
		admin.PUT("/coupons/:id", h.UpdateCoupon)
		admin.DELETE("/coupons/:id", h.DeleteCoupon)

		// Returns pipeline
		admin.GET("/returns", h.ListReturns)
		admin.POST("/returns/:id/approve", h.ApproveReturn)
		admin.POST("/returns/:id/reject", h.RejectReturn)
		admin.POST("/returns/:id/receive", h.ReceiveReturn)
		admin.POST("/returns/:id/refund", h.RefundReturn)

		// Review moderation
		admin.GET("/reviews", h.ListReviews)
		admin.POST("/reviews/:id/approve", h.ApproveReview)
		admin.POST("/reviews/:id/reject", h.RejectReview)
		admin.DELETE("/reviews/:id", h.DeleteReview)

		// Support desk
		admin.GET("/tickets", h.ListTickets)
		admin.POST("/tickets/:id/assign", h.AssignTicket)
		admin.POST("/tickets/:id/messages", h.ReplyTicket)
		admin.PUT("/tickets/:id/status", h.SetTicketStatus)

		// Shipping and tax
		admin.GET("/shipping/zones", h.ListShippingZones)
		admin.POST("/shipping/zones", h.CreateShippingZone)
		admin.PUT("/shipping/zones/:id", h.UpdateShippingZone)
		admin.DELETE("/shipping/zones/:id", h.DeleteShippingZone)
		admin.PUT("/shipping/zones/:id/methods/:methodId", h.SetShippingMethodEnabled)
		admin.GET("/tax", h.GetTaxSettings)
		admin.PUT("/tax", h.UpdateTaxSettings)

		// Content and media
		admin.GET("/blog", h.ListAllBlogPosts)
		admin.POST("/blog", h.CreateBlogPost)
		admin.PUT("/blog/:id", h.UpdateBlogPost)
		admin.DELETE("/blog/:id", h.DeleteBlogPost)
		admin.PUT("/seo", h.UpdateSEOSettings)
		admin.GET("/media", h.ListMedia)
		admin.POST("/media", h.CreateMedia)
		admin.POST("/media/:id/attach", h.AttachMedia)
		admin.POST("/media/:id/detach", h.DetachMedia)
		admin.GET("/media/:id/delete-request", h.RequestMediaDelete)
		admin.DELETE("/media/:id", h.ConfirmMediaDelete)

		// Marketing
		admin.GET("/subscribers", h.ListSubscribers)
		admin.GET("/campaigns", h.ListCampaigns)
		admin.POST("/campaigns", h.CreateCampaign)
		admin.POST("/campaigns/:id/send", h.SendCampaign)
		admin.DELETE("/campaigns/:id", h.DeleteCampaign)

		// Notifications
		admin.GET("/notifications/templates", h.ListTemplates)
		admin.POST("/notifications/templates", h.CreateTemplate)
		admin.PUT("/notifications/templates/:id", h.UpdateTemplate)
		admin.DELETE("/notifications/templates/:id", h.DeleteTemplate)
		admin.POST("/notifications/send", h.SendNotification)
		admin.GET("/notifications/logs", h.ListNotificationLogs)

		// Audit trail
		admin.GET("/activity", h.ListActivityLogs)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
