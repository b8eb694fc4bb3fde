package domain

import "time"

// Coupon discount kinds.
const (
	CouponPercentage   = "percentage"    // Value is a percent of the order subtotal
	CouponFixed        = "fixed"         // Value is an absolute amount in minor units
	CouponFreeShipping = "free_shipping" // Value unused; waives the shipping charge
)

// Coupon lifecycle statuses. Status is derived, never authoritative: it is
// recomputed from dates and usage on every persist and on every read after a
// reload. A stored status is only a display hint.
const (
	CouponActive    = "active"
	CouponScheduled = "scheduled"
	CouponExpired   = "expired"
)

// Coupon is a discount code. Codes are matched case-insensitively and must be
// unique within the collection.
type Coupon struct {
	ID                string    `json:"id"`
	Code              string    `json:"code"`
	Type              string    `json:"type"`
	Value             int64     `json:"value"`
	MinimumOrderValue int64     `json:"minimumOrderValue,omitempty"`
	MaxUsage          int       `json:"maxUsage,omitempty"`
	CurrentUsage      int       `json:"currentUsage"`
	ValidFrom         time.Time `json:"validFrom"`
	ValidUntil        time.Time `json:"validUntil"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
}

// DeriveStatus computes the coupon status as a pure function of the clock and
// the coupon's own fields. Precedence:
//
//  1. usage exhausted (MaxUsage > 0 and CurrentUsage >= MaxUsage) -> expired
//  2. now before ValidFrom                                        -> scheduled
//  3. now after ValidUntil                                        -> expired
//  4. otherwise                                                   -> active
//
// Usage exhaustion deliberately wins over the date window checks.
func (c Coupon) DeriveStatus(now time.Time) string {
	if c.MaxUsage > 0 && c.CurrentUsage >= c.MaxUsage {
		return CouponExpired
	}
	if now.Before(c.ValidFrom) {
		return CouponScheduled
	}
	if !c.ValidUntil.IsZero() && now.After(c.ValidUntil) {
		return CouponExpired
	}
	return CouponActive
}

// Discount returns the amount this coupon takes off an order subtotal, in
// minor units. Free-shipping coupons discount nothing here; the shipping
// charge is waived by the pricing layer instead.
func (c Coupon) Discount(subtotal int64) int64 {
	switch c.Type {
	case CouponPercentage:
		return subtotal * c.Value / 100
	case CouponFixed:
		if c.Value > subtotal {
			return subtotal
		}
		return c.Value
	default:
		return 0
	}
}
