package domain

import "time"

// Support ticket lifecycle.
const (
	TicketOpen       = "open"
	TicketInProgress = "in_progress"
	TicketResolved   = "resolved"
	TicketClosed     = "closed"
)

// TicketMessage is one entry in a ticket's conversation thread.
type TicketMessage struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	FromAdmin bool      `json:"fromAdmin"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// SupportTicket is a customer support request.
//
// Invariants enforced by the tickets container:
//   - assigning an agent to an open ticket flips it to in_progress;
//     re-assignment never reverts the status.
//   - FirstResponseAt is stamped once, on the first admin-authored message.
//   - ResolvedAt is stamped once, on the first transition to resolved.
type SupportTicket struct {
	ID              string          `json:"id"`
	CustomerID      string          `json:"customerId"`
	CustomerEmail   string          `json:"customerEmail,omitempty"`
	Subject         string          `json:"subject"`
	Status          string          `json:"status"`
	Priority        string          `json:"priority,omitempty"`
	AssignedTo      string          `json:"assignedTo,omitempty"`
	Messages        []TicketMessage `json:"messages"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	FirstResponseAt *time.Time      `json:"firstResponseAt,omitempty"`
	ResolvedAt      *time.Time      `json:"resolvedAt,omitempty"`
}
