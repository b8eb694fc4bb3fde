package containers

import (
	"context"
	"time"

	"github.com/avelineco/go-shop-backend/internal/domain"
	"github.com/avelineco/go-shop-backend/internal/store"
)

// Reviews owns product reviews and their moderation state.
type Reviews struct {
	*collection[domain.Review]
}

// NewReviews rehydrates the review collection.
func NewReviews(ctx context.Context, s store.Store, defaults []domain.Review) *Reviews {
	return &Reviews{newCollection(ctx, s, keyReviews, defaults, func(r domain.Review) string { return r.ID }, false)}
}

// Add submits a review into the pending moderation queue.
func (r *Reviews) Add(ctx context.Context, in domain.Review) domain.Review {
	now := time.Now().UTC()
	in.ID = domain.NewID("review", now)
	in.Status = domain.ReviewPending
	in.CreatedAt = now
	r.add(ctx, in)
	return in
}

// Approve publishes the review. Decisions are overridable: a previously
// rejected review may be approved later by the same call.
func (r *Reviews) Approve(ctx context.Context, id string) (domain.Review, error) {
	return r.update(ctx, id, func(rv *domain.Review) { rv.Status = domain.ReviewApproved })
}

// Reject hides the review. Overridable, like Approve.
func (r *Reviews) Reject(ctx context.Context, id string) (domain.Review, error) {
	return r.update(ctx, id, func(rv *domain.Review) { rv.Status = domain.ReviewRejected })
}

// Remove deletes the review outright.
func (r *Reviews) Remove(ctx context.Context, id string) error { return r.remove(ctx, id) }

// ByStatus returns reviews in the given moderation state (pure read).
func (r *Reviews) ByStatus(status string) []domain.Review {
	return r.filter(func(x domain.Review) bool { return x.Status == status })
}

// ApprovedForProduct returns the published reviews for a product, the only
// ones the storefront shows.
func (r *Reviews) ApprovedForProduct(productID string) []domain.Review {
	return r.filter(func(x domain.Review) bool {
		return x.ProductID == productID && x.Status == domain.ReviewApproved
	})
}

// AverageRating is the mean rating of a product's approved reviews, 0 when
// there are none.
func (r *Reviews) AverageRating(productID string) float64 {
	approved := r.ApprovedForProduct(productID)
	if len(approved) == 0 {
		return 0
	}
	sum := 0
	for _, rv := range approved {
		sum += rv.Rating
	}
	return float64(sum) / float64(len(approved))
}
