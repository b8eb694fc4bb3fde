package containers

import (
	"context"
	"sync"

	"github.com/avelineco/go-shop-backend/internal/domain"
	"github.com/avelineco/go-shop-backend/internal/store"
)

// Tax owns the single global TaxSettings document. It is the authoritative
// tax configuration; the cart engine's flat rate is sourced from it.
type Tax struct {
	mu       sync.Mutex
	store    store.Store
	settings domain.TaxSettings
}

// NewTax rehydrates the settings document, falling back to def on a missing
// or malformed document.
func NewTax(ctx context.Context, s store.Store, def domain.TaxSettings) *Tax {
	return &Tax{
		store:    s,
		settings: store.LoadObject(ctx, s, keyTaxSettings, def),
	}
}

// Settings returns a snapshot of the current configuration.
func (t *Tax) Settings() domain.TaxSettings {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.settings
}

// Update applies mutate to the settings and persists the document.
func (t *Tax) Update(ctx context.Context, mutate func(*domain.TaxSettings)) domain.TaxSettings {
	t.mu.Lock()
	defer t.mu.Unlock()
	mutate(&t.settings)
	store.SaveObject(ctx, t.store, keyTaxSettings, t.settings)
	return t.settings
}

// RateFor resolves the effective rate for a product/region pair (pure read).
func (t *Tax) RateFor(productID, category, state string) float64 {
	return t.Settings().RateFor(productID, category, state)
}

// CartRate is the flat rate the cart engine applies to subtotals: the global
// default when tax is enabled, zero otherwise.
func (t *Tax) CartRate() float64 {
	return t.Settings().EffectiveDefaultRate()
}
