// Package checkout validates the shipping form and turns a cart into an
// order.
package checkout

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/avelineco/go-shop-backend/internal/cart"
	"github.com/avelineco/go-shop-backend/internal/containers"
	"github.com/avelineco/go-shop-backend/internal/domain"
	"github.com/avelineco/go-shop-backend/internal/store"
)

// ErrEmptyCart rejects checkout on an empty cart.
var ErrEmptyCart = errors.New("cart is empty")

// ErrNoOrder indicates the customer has no completed order on record.
var ErrNoOrder = errors.New("no order")

// CouponError carries the validation reason for a rejected code.
type CouponError struct {
	Reason string
}

func (e *CouponError) Error() string { return "coupon rejected: " + e.Reason }

// FieldErrors maps form field names to their validation messages. Checkout
// collects every failing field before reporting, rather than stopping at the
// first.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "invalid fields: " + strings.Join(fields, ", ")
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateAddress checks the required shipping fields and returns every
// failure at once. A nil map means the form is valid.
func ValidateAddress(addr domain.ShippingAddress) FieldErrors {
	errs := FieldErrors{}
	require := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			errs[field] = "required"
		}
	}
	require("name", addr.Name)
	require("phone", addr.Phone)
	require("address1", addr.Address1)
	require("city", addr.City)
	require("state", addr.State)
	require("zip", addr.Zip)
	switch {
	case strings.TrimSpace(addr.Email) == "":
		errs["email"] = "required"
	case !emailPattern.MatchString(addr.Email):
		errs["email"] = "invalid format"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Service orchestrates checkout: form validation, coupon application, order
// synthesis, last-order persistence and cart clearing.
type Service struct {
	carts   *cart.Service
	coupons *containers.Coupons
	store   store.Store
}

// NewService wires the orchestrator.
func NewService(carts *cart.Service, coupons *containers.Coupons, s store.Store) *Service {
	return &Service{carts: carts, coupons: coupons, store: s}
}

func orderKey(customerID string) string { return "lastOrder:" + customerID }

// PlaceOrder runs the full checkout. On success the synthesized order is
// persisted as the customer's single last-order slot, the cart is cleared,
// and the coupon's usage (if any) is consumed.
//
// Failures, in order: ErrEmptyCart, FieldErrors, CouponError. None of them
// mutate the cart or the coupon.
func (s *Service) PlaceOrder(ctx context.Context, customerID string, addr domain.ShippingAddress, couponCode string) (domain.Order, error) {
	lines := s.carts.Lines(ctx, customerID)
	if len(lines) == 0 {
		return domain.Order{}, ErrEmptyCart
	}
	if errs := ValidateAddress(addr); errs != nil {
		return domain.Order{}, errs
	}

	totals := s.carts.Totals(ctx, customerID)

	var discount int64
	couponCode = strings.TrimSpace(couponCode)
	if couponCode != "" {
		res := s.coupons.Validate(couponCode, totals.Subtotal)
		if !res.Valid {
			return domain.Order{}, &CouponError{Reason: res.Reason}
		}
		discount = res.Discount
		couponCode = res.Coupon.Code
	}

	total := totals.Total - discount
	if total < 0 {
		total = 0
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:              domain.NewID("order", now),
		CustomerID:      customerID,
		Items:           lines,
		ShippingAddress: addr,
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		Shipping:        totals.Shipping,
		Total:           total,
		CouponCode:      couponCode,
		Status:          domain.OrderConfirmed,
		OrderDate:       now,
	}

	store.SaveObject(ctx, s.store, orderKey(customerID), order)
	s.carts.Clear(ctx, customerID)
	if couponCode != "" {
		// Usage is consumed only now, after the order exists; Validate
		// alone never spends it.
		_ = s.coupons.IncrementUsage(ctx, couponCode)
	}
	return order, nil
}

// LastOrder returns the customer's most recent completed order.
func (s *Service) LastOrder(ctx context.Context, customerID string) (domain.Order, error) {
	order := store.LoadObject(ctx, s.store, orderKey(customerID), domain.Order{})
	if order.ID == "" {
		return domain.Order{}, ErrNoOrder
	}
	return order, nil
}
