package containers

import (
	"context"
	"strings"
	"time"

	"github.com/avelineco/go-shop-backend/internal/domain"
	"github.com/avelineco/go-shop-backend/internal/store"
)

// Coupon validation failure reasons, surfaced verbatim to the UI. Checked in
// this order, short-circuiting on the first failure.
const (
	ReasonNotFound     = "not found"
	ReasonNotActive    = "not active"
	ReasonMinimumOrder = "minimum order value not met"
	ReasonUsageLimit   = "usage limit reached"
)

// CouponResult is the outcome of a side-effect-free validation call.
type CouponResult struct {
	Valid    bool          `json:"valid"`
	Reason   string        `json:"reason,omitempty"`
	Coupon   domain.Coupon `json:"-"`
	Discount int64         `json:"discount,omitempty"`
}

// Coupons owns the discount codes. Statuses are derived: they are recomputed
// from dates and usage on load and on every mutation, and a stored status is
// never trusted across a restart.
type Coupons struct {
	*collection[domain.Coupon]
	now func() time.Time
}

// NewCoupons rehydrates the coupon collection and immediately recomputes
// every derived status against the current clock.
func NewCoupons(ctx context.Context, s store.Store, defaults []domain.Coupon) *Coupons {
	c := &Coupons{
		collection: newCollection(ctx, s, keyCoupons, defaults, func(x domain.Coupon) string { return x.ID }, false),
		now:        time.Now,
	}
	c.Refresh(ctx)
	return c
}

// Refresh recomputes all derived statuses, persisting only when one changed.
func (c *Coupons) Refresh(ctx context.Context) {
	now := c.now().UTC()
	c.mutateAll(ctx, func(cp *domain.Coupon) bool {
		derived := cp.DeriveStatus(now)
		if cp.Status == derived {
			return false
		}
		cp.Status = derived
		return true
	})
}

// Add creates a coupon: usage starts at zero, status is derived from the
// validity window. Codes are unique case-insensitively.
func (c *Coupons) Add(ctx context.Context, in domain.Coupon) (domain.Coupon, error) {
	if _, err := c.ByCode(in.Code); err == nil {
		return domain.Coupon{}, ErrCodeTaken
	}
	now := c.now().UTC()
	in.ID = domain.NewID("coupon", now)
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	in.CurrentUsage = 0
	in.Status = in.DeriveStatus(now)
	in.CreatedAt = now
	c.add(ctx, in)
	return in, nil
}

// Update merges the partial update and recomputes the derived status in the
// same mutation, so the status is never stale relative to the new fields.
func (c *Coupons) Update(ctx context.Context, id string, mutate func(*domain.Coupon)) (domain.Coupon, error) {
	now := c.now().UTC()
	return c.update(ctx, id, func(cp *domain.Coupon) {
		mutate(cp)
		cp.Status = cp.DeriveStatus(now)
	})
}

// Remove deletes the coupon outright.
func (c *Coupons) Remove(ctx context.Context, id string) error { return c.remove(ctx, id) }

// ByCode looks a coupon up case-insensitively.
func (c *Coupons) ByCode(code string) (domain.Coupon, error) {
	code = strings.TrimSpace(code)
	if cp, ok := c.find(func(x domain.Coupon) bool { return strings.EqualFold(x.Code, code) }); ok {
		return cp, nil
	}
	return domain.Coupon{}, ErrNotFound
}

// Validate checks whether code can be applied to an order of the given
// subtotal. It is side-effect-free and safely repeatable: usage is only
// consumed by an explicit IncrementUsage call after the order completes.
//
// Failure reasons, checked in order: not found, not active, minimum order
// value not met, usage limit reached.
func (c *Coupons) Validate(code string, orderValue int64) CouponResult {
	cp, err := c.ByCode(code)
	if err != nil {
		return CouponResult{Reason: ReasonNotFound}
	}
	// Usage exhaustion folds into the derived expired status, so it is carved
	// out of the status gate here; otherwise the usage reason could never be
	// reported.
	exhausted := cp.MaxUsage > 0 && cp.CurrentUsage >= cp.MaxUsage
	if !exhausted && cp.DeriveStatus(c.now().UTC()) != domain.CouponActive {
		return CouponResult{Reason: ReasonNotActive}
	}
	if cp.MinimumOrderValue > 0 && orderValue < cp.MinimumOrderValue {
		return CouponResult{Reason: ReasonMinimumOrder}
	}
	if exhausted {
		return CouponResult{Reason: ReasonUsageLimit}
	}
	return CouponResult{Valid: true, Coupon: cp, Discount: cp.Discount(orderValue)}
}

// IncrementUsage consumes one use of the coupon and recomputes its status
// (exhausting the cap flips it to expired immediately).
func (c *Coupons) IncrementUsage(ctx context.Context, code string) error {
	cp, err := c.ByCode(code)
	if err != nil {
		return err
	}
	now := c.now().UTC()
	_, err = c.update(ctx, cp.ID, func(x *domain.Coupon) {
		x.CurrentUsage++
		x.Status = x.DeriveStatus(now)
	})
	return err
}

// ByStatus returns coupons whose derived status matches (pure read).
func (c *Coupons) ByStatus(status string) []domain.Coupon {
	now := c.now().UTC()
	return c.filter(func(x domain.Coupon) bool { return x.DeriveStatus(now) == status })
}
