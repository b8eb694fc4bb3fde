package containers

import (
	"context"
	"time"

	"github.com/avelineco/go-shop-backend/internal/domain"
	"github.com/avelineco/go-shop-backend/internal/store"
)

// Tickets owns the support ticket lifecycle.
type Tickets struct {
	*collection[domain.SupportTicket]
}

// NewTickets rehydrates the ticket collection.
func NewTickets(ctx context.Context, s store.Store, defaults []domain.SupportTicket) *Tickets {
	return &Tickets{newCollection(ctx, s, keyTickets, defaults, func(t domain.SupportTicket) string { return t.ID }, false)}
}

// Add opens a ticket with the customer's initial message.
func (t *Tickets) Add(ctx context.Context, in domain.SupportTicket, body string) domain.SupportTicket {
	now := time.Now().UTC()
	in.ID = domain.NewID("ticket", now)
	in.Status = domain.TicketOpen
	in.CreatedAt = now
	in.UpdatedAt = now
	in.Messages = nil
	if body != "" {
		in.Messages = []domain.TicketMessage{{
			ID:        domain.NewSuffixedID("msg", now),
			Author:    in.CustomerID,
			Body:      body,
			CreatedAt: now,
		}}
	}
	t.add(ctx, in)
	return in
}

// Assign sets the handling agent. Assigning an open ticket auto-transitions
// it to in_progress; re-assignment keeps whatever status the ticket has.
func (t *Tickets) Assign(ctx context.Context, id, agent string) (domain.SupportTicket, error) {
	now := time.Now().UTC()
	return t.update(ctx, id, func(tk *domain.SupportTicket) {
		tk.AssignedTo = agent
		if tk.Status == domain.TicketOpen {
			tk.Status = domain.TicketInProgress
		}
		tk.UpdatedAt = now
	})
}

// AddMessage appends to the conversation. The first admin-authored message
// stamps FirstResponseAt exactly once.
func (t *Tickets) AddMessage(ctx context.Context, id, author, body string, fromAdmin bool) (domain.SupportTicket, error) {
	now := time.Now().UTC()
	return t.update(ctx, id, func(tk *domain.SupportTicket) {
		tk.Messages = append(tk.Messages, domain.TicketMessage{
			ID:        domain.NewSuffixedID("msg", now),
			Author:    author,
			FromAdmin: fromAdmin,
			Body:      body,
			CreatedAt: now,
		})
		if fromAdmin && tk.FirstResponseAt == nil {
			tk.FirstResponseAt = &now
		}
		tk.UpdatedAt = now
	})
}

// SetStatus moves the ticket to the given status. The first transition to
// resolved stamps ResolvedAt; a later re-resolve does not restamp it.
func (t *Tickets) SetStatus(ctx context.Context, id, status string) (domain.SupportTicket, error) {
	now := time.Now().UTC()
	return t.updateErr(ctx, id, func(tk *domain.SupportTicket) error {
		switch status {
		case domain.TicketOpen, domain.TicketInProgress, domain.TicketResolved, domain.TicketClosed:
		default:
			return ErrInvalidTransition
		}
		tk.Status = status
		if status == domain.TicketResolved && tk.ResolvedAt == nil {
			tk.ResolvedAt = &now
		}
		tk.UpdatedAt = now
		return nil
	})
}

// ByStatus returns tickets in the given state (pure read).
func (t *Tickets) ByStatus(status string) []domain.SupportTicket {
	return t.filter(func(x domain.SupportTicket) bool { return x.Status == status })
}

// ByCustomer returns a customer's tickets (pure read).
func (t *Tickets) ByCustomer(customerID string) []domain.SupportTicket {
	return t.filter(func(x domain.SupportTicket) bool { return x.CustomerID == customerID })
}
