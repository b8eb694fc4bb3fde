// Handler wiring shared by every endpoint group.
//
// Handlers are transport-thin: they validate input, call the domain containers
// and services, and translate results (including sentinel errors) into HTTP
// responses.
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/avelineco/go-shop-backend/internal/auth"
	"github.com/avelineco/go-shop-backend/internal/cart"
	"github.com/avelineco/go-shop-backend/internal/checkout"
	"github.com/avelineco/go-shop-backend/internal/containers"
	"github.com/avelineco/go-shop-backend/internal/http/middleware"
	"github.com/avelineco/go-shop-backend/internal/utils"
)

// Deps collects everything the HTTP layer depends on. All fields are required
// unless noted.
type Deps struct {
	Products      *containers.Products
	Collections   *containers.Collections
	Coupons       *containers.Coupons
	Zones         *containers.ShippingZones
	Tax           *containers.Tax
	Returns       *containers.Returns
	Reviews       *containers.Reviews
	Tickets       *containers.Tickets
	Media         *containers.Media
	Blog          *containers.Blog
	SEO           *containers.SEO
	Subscribers   *containers.Subscribers
	Campaigns     *containers.Campaigns
	Notifications *containers.Notifications
	Activity      *containers.ActivityLogs

	Carts    *cart.Service
	Checkout *checkout.Service
	Auth     *auth.Gateway

	// DB backs the idempotency records for checkout replays. Optional: when
	// nil, retried checkouts place fresh orders.
	DB *gorm.DB
	// IdemTTL bounds how long a checkout replay is honored. Zero means 24h.
	IdemTTL time.Duration
}

// Handlers groups the HTTP endpoints for the storefront and the back office.
type Handlers struct {
	deps Deps
}

// New constructs a Handlers instance bound to the given dependencies.
func New(d Deps) *Handlers {
	if d.IdemTTL <= 0 {
		d.IdemTTL = 24 * time.Hour
	}
	return &Handlers{deps: d}
}

// audit records an admin mutation in the activity log. The actor is the admin
// identity stashed by RequireAdmin; audit is a no-op on public routes.
func (h *Handlers) audit(c *gin.Context, action, target, detail string) {
	if h.deps.Activity == nil {
		return
	}
	id, email := middleware.AdminFrom(c)
	if id == "" {
		return
	}
	actor := email
	if actor == "" {
		actor = id
	}
	h.deps.Activity.Record(c.Request.Context(), actor, action, target, detail)
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// clampPagination parses and bounds the page and page_size query params,
// returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPageSize = 20
		maxPageSize     = 100
	)
	return utils.ClampPage(c.Query("page")),
		utils.ClampPageSize(c.Query("page_size"), defaultPageSize, maxPageSize)
}

// paginate slices items for the requested page and fills the metadata.
func paginate[T any](items []T, page, pageSize int) ([]T, Pagination) {
	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return items[start:end], Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}
