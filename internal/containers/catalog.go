package containers

import (
	"context"
	"strings"
	"time"

	"github.com/avelineco/go-shop-backend/internal/domain"
	"github.com/avelineco/go-shop-backend/internal/store"
)

// Products owns the product catalog.
type Products struct {
	*collection[domain.Product]
}

// NewProducts rehydrates the catalog, merging stored products over the
// compiled-in defaults (stored wins on id collision).
func NewProducts(ctx context.Context, s store.Store, defaults []domain.Product) *Products {
	return &Products{newCollection(ctx, s, keyProducts, defaults, func(p domain.Product) string { return p.ID }, false)}
}

// Add assigns id, slug and timestamps, then appends and persists.
func (p *Products) Add(ctx context.Context, in domain.Product) domain.Product {
	now := time.Now().UTC()
	in.ID = domain.NewID("prod", now)
	in.Slug = domain.Slugify(in.Name)
	in.CreatedAt = now
	in.UpdatedAt = now
	if in.Currency == "" {
		in.Currency = "USD"
	}
	p.add(ctx, in)
	return in
}

// Update merges the partial update applied by mutate and recomputes the slug
// from the (possibly renamed) product before persisting.
func (p *Products) Update(ctx context.Context, id string, mutate func(*domain.Product)) (domain.Product, error) {
	return p.update(ctx, id, func(prod *domain.Product) {
		mutate(prod)
		prod.Slug = domain.Slugify(prod.Name)
		prod.UpdatedAt = time.Now().UTC()
	})
}

// Remove deletes the product outright.
func (p *Products) Remove(ctx context.Context, id string) error { return p.remove(ctx, id) }

// BySlug returns the product with the given slug.
func (p *Products) BySlug(slug string) (domain.Product, error) {
	if prod, ok := p.find(func(x domain.Product) bool { return x.Slug == slug }); ok {
		return prod, nil
	}
	return domain.Product{}, ErrNotFound
}

// ByCategory returns products in a category, in catalog order.
func (p *Products) ByCategory(category string) []domain.Product {
	return p.filter(func(x domain.Product) bool { return x.Category == category })
}

// ByCollection returns products assigned to a collection.
func (p *Products) ByCollection(collectionID string) []domain.Product {
	return p.filter(func(x domain.Product) bool { return x.Collection == collectionID })
}

// Featured returns the featured products.
func (p *Products) Featured() []domain.Product {
	return p.filter(func(x domain.Product) bool { return x.Featured })
}

// Collections owns the merchandising collections (stable, configuration-like
// order).
type Collections struct {
	*collection[domain.Collection]
}

// NewCollections rehydrates the collection list.
func NewCollections(ctx context.Context, s store.Store, defaults []domain.Collection) *Collections {
	return &Collections{newCollection(ctx, s, keyCollections, defaults, func(c domain.Collection) string { return c.ID }, false)}
}

// Add assigns id, slug and creation time, then appends and persists.
func (c *Collections) Add(ctx context.Context, in domain.Collection) domain.Collection {
	now := time.Now().UTC()
	in.ID = domain.NewID("col", now)
	in.Slug = domain.Slugify(in.Name)
	in.CreatedAt = now
	c.add(ctx, in)
	return in
}

// Update applies mutate and recomputes the slug before persisting.
func (c *Collections) Update(ctx context.Context, id string, mutate func(*domain.Collection)) (domain.Collection, error) {
	return c.update(ctx, id, func(col *domain.Collection) {
		mutate(col)
		col.Slug = domain.Slugify(col.Name)
	})
}

// Remove deletes the collection outright.
func (c *Collections) Remove(ctx context.Context, id string) error { return c.remove(ctx, id) }

// BySlug returns the collection with the given slug (case-insensitive).
func (c *Collections) BySlug(slug string) (domain.Collection, error) {
	if col, ok := c.find(func(x domain.Collection) bool { return strings.EqualFold(x.Slug, slug) }); ok {
		return col, nil
	}
	return domain.Collection{}, ErrNotFound
}
