package containers

import (
	"context"
	"sync"
	"time"

	"github.com/avelineco/go-shop-backend/internal/domain"
	"github.com/avelineco/go-shop-backend/internal/store"
)

// Blog owns the blog posts.
type Blog struct {
	*collection[domain.BlogPost]
}

// NewBlog rehydrates the blog posts.
func NewBlog(ctx context.Context, s store.Store, defaults []domain.BlogPost) *Blog {
	return &Blog{newCollection(ctx, s, keyBlogPosts, defaults, func(b domain.BlogPost) string { return b.ID }, false)}
}

// Add creates a post (draft unless Published is set), deriving the slug from
// the title.
func (b *Blog) Add(ctx context.Context, in domain.BlogPost) domain.BlogPost {
	now := time.Now().UTC()
	in.ID = domain.NewID("post", now)
	in.Slug = domain.Slugify(in.Title)
	in.CreatedAt = now
	in.UpdatedAt = now
	b.add(ctx, in)
	return in
}

// Update applies mutate and recomputes the slug from the (possibly changed)
// title.
func (b *Blog) Update(ctx context.Context, id string, mutate func(*domain.BlogPost)) (domain.BlogPost, error) {
	return b.update(ctx, id, func(post *domain.BlogPost) {
		mutate(post)
		post.Slug = domain.Slugify(post.Title)
		post.UpdatedAt = time.Now().UTC()
	})
}

// Remove deletes the post outright.
func (b *Blog) Remove(ctx context.Context, id string) error { return b.remove(ctx, id) }

// Published returns only published posts, in collection order.
func (b *Blog) Published() []domain.BlogPost {
	return b.filter(func(x domain.BlogPost) bool { return x.Published })
}

// BySlug returns the post with the given slug.
func (b *Blog) BySlug(slug string) (domain.BlogPost, error) {
	if post, ok := b.find(func(x domain.BlogPost) bool { return x.Slug == slug }); ok {
		return post, nil
	}
	return domain.BlogPost{}, ErrNotFound
}

// SEO owns the single global SEO settings document.
type SEO struct {
	mu       sync.Mutex
	store    store.Store
	settings domain.SEOSettings
}

// NewSEO rehydrates the settings document.
func NewSEO(ctx context.Context, s store.Store, def domain.SEOSettings) *SEO {
	return &SEO{store: s, settings: store.LoadObject(ctx, s, keySEO, def)}
}

// Settings returns a snapshot of the current configuration.
func (s *SEO) Settings() domain.SEOSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Update applies mutate and persists the document.
func (s *SEO) Update(ctx context.Context, mutate func(*domain.SEOSettings)) domain.SEOSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	mutate(&s.settings)
	store.SaveObject(ctx, s.store, keySEO, s.settings)
	return s.settings
}

// ActivityLogs owns the append-only audit trail, listed newest-first.
type ActivityLogs struct {
	*collection[domain.ActivityLog]
}

// NewActivityLogs rehydrates the audit trail.
func NewActivityLogs(ctx context.Context, s store.Store) *ActivityLogs {
	return &ActivityLogs{newCollection(ctx, s, keyActivityLogs, nil, func(a domain.ActivityLog) string { return a.ID }, true)}
}

// Record prepends an audit entry. Ids carry a random suffix because admin
// actions can land several entries in one millisecond.
func (a *ActivityLogs) Record(ctx context.Context, actor, action, target, detail string) domain.ActivityLog {
	now := time.Now().UTC()
	entry := domain.ActivityLog{
		ID:        domain.NewSuffixedID("log", now),
		Actor:     actor,
		Action:    action,
		Target:    target,
		Detail:    detail,
		CreatedAt: now,
	}
	a.add(ctx, entry)
	return entry
}
