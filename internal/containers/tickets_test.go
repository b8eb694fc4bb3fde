package containers

import (
	"context"
	"errors"
	"testing"

	"github.com/avelineco/go-shop-backend/internal/domain"
	"github.com/avelineco/go-shop-backend/internal/store"
)

func TestTickets_AssignFlipsOpenToInProgress(t *testing.T) {
	ctx := context.Background()
	tc := NewTickets(ctx, store.NullStore{}, nil)

	tk := tc.Add(ctx, domain.SupportTicket{CustomerID: "cust_1", Subject: "Where is my order?"}, "It has been a week.")
	if tk.Status != domain.TicketOpen || len(tk.Messages) != 1 {
		t.Fatalf("unexpected new ticket: %+v", tk)
	}

	assigned, err := tc.Assign(ctx, tk.ID, "adminX")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if assigned.Status != domain.TicketInProgress || assigned.AssignedTo != "adminX" {
		t.Fatalf("assign did not transition: %+v", assigned)
	}

	// Re-assignment changes the agent but never reverts the status.
	reassigned, err := tc.Assign(ctx, tk.ID, "adminY")
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if reassigned.Status != domain.TicketInProgress || reassigned.AssignedTo != "adminY" {
		t.Fatalf("reassign reverted status: %+v", reassigned)
	}
}

func TestTickets_FirstResponseStampedOnce(t *testing.T) {
	ctx := context.Background()
	tc := NewTickets(ctx, store.NullStore{}, nil)
	tk := tc.Add(ctx, domain.SupportTicket{CustomerID: "cust_1", Subject: "Sizing"}, "Does it run small?")

	// Customer messages never stamp the first response.
	afterCustomer, err := tc.AddMessage(ctx, tk.ID, "cust_1", "Any update?", false)
	if err != nil {
		t.Fatalf("customer message: %v", err)
	}
	if afterCustomer.FirstResponseAt != nil {
		t.Fatalf("customer message stamped FirstResponseAt")
	}

	first, err := tc.AddMessage(ctx, tk.ID, "adminX", "Runs true to size.", true)
	if err != nil {
		t.Fatalf("admin message: %v", err)
	}
	if first.FirstResponseAt == nil {
		t.Fatalf("admin message did not stamp FirstResponseAt")
	}
	stamp := *first.FirstResponseAt

	second, err := tc.AddMessage(ctx, tk.ID, "adminY", "Anything else?", true)
	if err != nil {
		t.Fatalf("second admin message: %v", err)
	}
	if !second.FirstResponseAt.Equal(stamp) {
		t.Fatalf("FirstResponseAt restamped: %v vs %v", second.FirstResponseAt, stamp)
	}
	if len(second.Messages) != 4 {
		t.Fatalf("message count = %d, want 4", len(second.Messages))
	}
}

func TestTickets_ResolveStampsOnce(t *testing.T) {
	ctx := context.Background()
	tc := NewTickets(ctx, store.NullStore{}, nil)
	tk := tc.Add(ctx, domain.SupportTicket{CustomerID: "cust_1", Subject: "Refund"}, "")

	resolved, err := tc.SetStatus(ctx, tk.ID, domain.TicketResolved)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ResolvedAt == nil {
		t.Fatalf("resolve did not stamp ResolvedAt")
	}
	stamp := *resolved.ResolvedAt

	// Reopen and resolve again: the original stamp is kept.
	if _, err := tc.SetStatus(ctx, tk.ID, domain.TicketOpen); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	again, err := tc.SetStatus(ctx, tk.ID, domain.TicketResolved)
	if err != nil {
		t.Fatalf("re-resolve: %v", err)
	}
	if !again.ResolvedAt.Equal(stamp) {
		t.Fatalf("ResolvedAt restamped: %v vs %v", again.ResolvedAt, stamp)
	}

	if _, err := tc.SetStatus(ctx, tk.ID, "escalated"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("unknown status accepted: %v", err)
	}
}
