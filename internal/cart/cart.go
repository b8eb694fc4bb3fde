// Package cart implements the per-customer cart and its derived pricing.
//
// Totals are never stored: item count, subtotal, tax, shipping and total are
// recomputed from the lines on every read, so they cannot go stale. The
// subtotal sums each line's base price; sale prices are a display concern and
// deliberately do not feed the pricing engine.
package cart

import (
	"context"
	"math"
	"sync"

	"github.com/avelineco/go-shop-backend/internal/domain"
	"github.com/avelineco/go-shop-backend/internal/store"
)

// RateSource supplies the flat tax rate applied to cart subtotals. The tax
// settings container is the production implementation.
type RateSource interface {
	CartRate() float64
}

// Config carries the pricing constants, in the engine's currency unit.
type Config struct {
	FreeShippingThreshold int64
	ShippingCost          int64
}

// Totals is the derived pricing snapshot for one cart.
type Totals struct {
	ItemCount int   `json:"itemCount"`
	Subtotal  int64 `json:"subtotal"`
	Tax       int64 `json:"tax"`
	Shipping  int64 `json:"shipping"`
	Total     int64 `json:"total"`
}

// Service holds one cart per customer. Each cart is persisted wholesale as a
// single document and rehydrated verbatim on first touch; there is no default
// cart to merge against.
type Service struct {
	mu    sync.Mutex
	store store.Store
	rates RateSource
	cfg   Config
	carts map[string][]domain.CartLine
}

// NewService builds the cart engine on top of the document store.
func NewService(s store.Store, rates RateSource, cfg Config) *Service {
	return &Service{
		store: s,
		rates: rates,
		cfg:   cfg,
		carts: make(map[string][]domain.CartLine),
	}
}

func cartKey(customerID string) string { return "cart:" + customerID }

// linesLocked returns the customer's lines, rehydrating from storage on first
// touch. The caller must hold s.mu.
func (s *Service) linesLocked(ctx context.Context, customerID string) []domain.CartLine {
	if lines, ok := s.carts[customerID]; ok {
		return lines
	}
	lines := store.LoadObject(ctx, s.store, cartKey(customerID), []domain.CartLine(nil))
	s.carts[customerID] = lines
	return lines
}

func (s *Service) persistLocked(ctx context.Context, customerID string) {
	store.SaveObject(ctx, s.store, cartKey(customerID), s.carts[customerID])
}

// AddItem appends a line, or increments the quantity of the line with the
// same (productID, size, color) key. The product is snapshotted by value;
// later catalog edits do not reprice the line. Quantities below one are
// treated as one.
func (s *Service) AddItem(ctx context.Context, customerID string, product domain.Product, size, color string, qty int) {
	if qty < 1 {
		qty = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.linesLocked(ctx, customerID)
	for i := range lines {
		if lines[i].SameKey(product.ID, size, color) {
			lines[i].Quantity += qty
			s.persistLocked(ctx, customerID)
			return
		}
	}
	s.carts[customerID] = append(lines, domain.CartLine{
		Product:  product,
		Size:     size,
		Color:    color,
		Quantity: qty,
	})
	s.persistLocked(ctx, customerID)
}

// UpdateQuantity sets (not increments) the matching line's quantity. A
// quantity of zero or below removes the line, keeping the never-persist-≤0
// invariant. Missing lines are a no-op.
func (s *Service) UpdateQuantity(ctx context.Context, customerID, productID, size, color string, qty int) {
	if qty <= 0 {
		s.RemoveItem(ctx, customerID, productID, size, color)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.linesLocked(ctx, customerID)
	for i := range lines {
		if lines[i].SameKey(productID, size, color) {
			lines[i].Quantity = qty
			s.persistLocked(ctx, customerID)
			return
		}
	}
}

// RemoveItem deletes the matching line; no-op if absent.
func (s *Service) RemoveItem(ctx context.Context, customerID, productID, size, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.linesLocked(ctx, customerID)
	for i := range lines {
		if lines[i].SameKey(productID, size, color) {
			s.carts[customerID] = append(lines[:i], lines[i+1:]...)
			s.persistLocked(ctx, customerID)
			return
		}
	}
}

// Clear empties the customer's cart.
func (s *Service) Clear(ctx context.Context, customerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.linesLocked(ctx, customerID)
	s.carts[customerID] = nil
	s.persistLocked(ctx, customerID)
}

// Lines returns a copy of the customer's cart in insertion order.
func (s *Service) Lines(ctx context.Context, customerID string) []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CartLine(nil), s.linesLocked(ctx, customerID)...)
}

// Totals derives the pricing snapshot from the current lines: subtotal over
// base prices, a flat tax rate from the rate source, free shipping at or
// above the threshold.
func (s *Service) Totals(ctx context.Context, customerID string) Totals {
	s.mu.Lock()
	lines := s.linesLocked(ctx, customerID)
	var t Totals
	for _, l := range lines {
		t.ItemCount += l.Quantity
		t.Subtotal += l.Product.Price * int64(l.Quantity)
	}
	s.mu.Unlock()

	t.Tax = int64(math.Round(float64(t.Subtotal) * s.rates.CartRate()))
	// Empty carts ship nothing, so they owe nothing.
	if t.Subtotal > 0 && t.Subtotal < s.cfg.FreeShippingThreshold {
		t.Shipping = s.cfg.ShippingCost
	}
	t.Total = t.Subtotal + t.Tax + t.Shipping
	return t
}
