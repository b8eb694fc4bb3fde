package containers

import (
	"context"
	"time"

	"github.com/avelineco/go-shop-backend/internal/domain"
	"github.com/avelineco/go-shop-backend/internal/store"
)

// Returns owns the return-request lifecycle. Transitions never remove a
// record; rejected and refunded are terminal.
type Returns struct {
	*collection[domain.ReturnRequest]
}

// NewReturns rehydrates the return requests.
func NewReturns(ctx context.Context, s store.Store, defaults []domain.ReturnRequest) *Returns {
	return &Returns{newCollection(ctx, s, keyReturns, defaults, func(r domain.ReturnRequest) string { return r.ID }, false)}
}

// Add files a new request in the pending state.
func (r *Returns) Add(ctx context.Context, in domain.ReturnRequest) domain.ReturnRequest {
	now := time.Now().UTC()
	in.ID = domain.NewID("return", now)
	in.Status = domain.ReturnPending
	in.CreatedAt = now
	in.ProcessedAt = nil
	in.ReceivedAt = nil
	in.RefundedAt = nil
	r.add(ctx, in)
	return in
}

// Approve moves a pending request to approved, stamping ProcessedAt and the
// optional admin notes. ProcessedAt is set here once; later transitions do
// not overwrite it.
func (r *Returns) Approve(ctx context.Context, id, notes string) (domain.ReturnRequest, error) {
	return r.transition(ctx, id, domain.ReturnApproved, func(req *domain.ReturnRequest, now time.Time) {
		req.ProcessedAt = &now
		if notes != "" {
			req.Notes = notes
		}
	})
}

// Reject moves a pending request to rejected (terminal), stamping ProcessedAt
// and the optional admin notes.
func (r *Returns) Reject(ctx context.Context, id, notes string) (domain.ReturnRequest, error) {
	return r.transition(ctx, id, domain.ReturnRejected, func(req *domain.ReturnRequest, now time.Time) {
		req.ProcessedAt = &now
		if notes != "" {
			req.Notes = notes
		}
	})
}

// MarkReceived records that the returned goods arrived.
func (r *Returns) MarkReceived(ctx context.Context, id string) (domain.ReturnRequest, error) {
	return r.transition(ctx, id, domain.ReturnItemReceived, func(req *domain.ReturnRequest, now time.Time) {
		req.ReceivedAt = &now
	})
}

// ProcessRefund issues the refund and closes the lifecycle (terminal).
func (r *Returns) ProcessRefund(ctx context.Context, id string, amount int64) (domain.ReturnRequest, error) {
	return r.transition(ctx, id, domain.ReturnRefunded, func(req *domain.ReturnRequest, now time.Time) {
		req.RefundedAt = &now
		if amount > 0 {
			req.RefundAmount = amount
		}
	})
}

func (r *Returns) transition(ctx context.Context, id, to string, stamp func(*domain.ReturnRequest, time.Time)) (domain.ReturnRequest, error) {
	now := time.Now().UTC()
	return r.updateErr(ctx, id, func(req *domain.ReturnRequest) error {
		if !req.CanTransition(req.Status, to) {
			return ErrInvalidTransition
		}
		req.Status = to
		stamp(req, now)
		return nil
	})
}

// ByStatus returns requests in the given state (pure read).
func (r *Returns) ByStatus(status string) []domain.ReturnRequest {
	return r.filter(func(x domain.ReturnRequest) bool { return x.Status == status })
}

// ByCustomer returns a customer's requests (pure read).
func (r *Returns) ByCustomer(customerID string) []domain.ReturnRequest {
	return r.filter(func(x domain.ReturnRequest) bool { return x.CustomerID == customerID })
}
