package containers

import (
	"context"
	"sync"

	"github.com/avelineco/go-shop-backend/internal/store"
)

// Persisted document keys, one per domain collection.
const (
	keyProducts      = "products"
	keyCollections   = "collections"
	keyCoupons       = "coupons"
	keyShippingZones = "shippingZones"
	keyTaxSettings   = "taxSettings"
	keyReturns       = "returns"
	keyReviews       = "reviews"
	keyTickets       = "supportTickets"
	keyMedia         = "mediaLibrary"
	keyBlogPosts     = "blogPosts"
	keySEO           = "seoSettings"
	keySubscribers   = "emailSubscribers"
	keyCampaigns     = "emailCampaigns"
	keyTemplates     = "notificationTemplates"
	keyNotifyLogs    = "notificationLogs"
	keyActivityLogs  = "activityLogs"
)

// collection is the shared core of every domain container: an in-memory
// ordered slice guarded by a mutex, persisted wholesale after each mutation.
//
// The original runs single-threaded; HTTP handlers here are concurrent, so
// the mutex stands in for the UI thread.
type collection[T any] struct {
	mu      sync.Mutex
	store   store.Store
	key     string
	items   []T
	idOf    func(T) string
	prepend bool // log-like domains list newest-first
}

// newCollection rehydrates the collection: stored records win over defaults
// on id collision, defaults missing from storage are appended.
func newCollection[T any](ctx context.Context, s store.Store, key string, defaults []T, idOf func(T) string, prepend bool) *collection[T] {
	return &collection[T]{
		store:   s,
		key:     key,
		items:   store.LoadCollection(ctx, s, key, defaults, idOf),
		idOf:    idOf,
		prepend: prepend,
	}
}

// List returns a copy of the collection in display order.
func (c *collection[T]) List() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

// Get returns the entity with the given id.
func (c *collection[T]) Get(id string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.index(id); i >= 0 {
		return c.items[i], nil
	}
	var zero T
	return zero, ErrNotFound
}

// add inserts the entity (prepending for log-like domains) and persists.
func (c *collection[T]) add(ctx context.Context, item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.prepend {
		c.items = append([]T{item}, c.items...)
	} else {
		c.items = append(c.items, item)
	}
	c.persistLocked(ctx)
}

// update applies mutate to the entity in place and persists. Derived fields
// must be recomputed inside mutate so they are never left stale.
func (c *collection[T]) update(ctx context.Context, id string, mutate func(*T)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		var zero T
		return zero, ErrNotFound
	}
	mutate(&c.items[i])
	c.persistLocked(ctx)
	return c.items[i], nil
}

// updateErr is update for mutations that can themselves fail (transition
// guards). The collection persists only when mutate succeeds.
func (c *collection[T]) updateErr(ctx context.Context, id string, mutate func(*T) error) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		var zero T
		return zero, ErrNotFound
	}
	if err := mutate(&c.items[i]); err != nil {
		return c.items[i], err
	}
	c.persistLocked(ctx)
	return c.items[i], nil
}

// remove deletes the entity outright and persists.
func (c *collection[T]) remove(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return ErrNotFound
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.persistLocked(ctx)
	return nil
}

// filter returns the entities matching keep, in display order. Pure read.
func (c *collection[T]) filter(keep func(T) bool) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, 0, len(c.items))
	for _, it := range c.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// find returns the first entity matching pred.
func (c *collection[T]) find(pred func(T) bool) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if pred(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// mutateAll applies mutate to every entity and persists once. Used for
// collection-wide derived-field recomputation (coupon statuses).
func (c *collection[T]) mutateAll(ctx context.Context, mutate func(*T) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	changed := false
	for i := range c.items {
		if mutate(&c.items[i]) {
			changed = true
		}
	}
	if changed {
		c.persistLocked(ctx)
	}
}

func (c *collection[T]) index(id string) int {
	for i, it := range c.items {
		if c.idOf(it) == id {
			return i
		}
	}
	return -1
}

// persistLocked writes the full collection back, fire-and-forget. The caller
// must hold c.mu.
func (c *collection[T]) persistLocked(ctx context.Context) {
	store.SaveCollection(ctx, c.store, c.key, c.items)
}
