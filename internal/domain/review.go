package domain

import "time"

// Review moderation statuses. pending is initial. A moderation decision may
// be revised later by a direct update, so approved/rejected are terminal only
// per decision, not one-way.
const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

// Review is a customer product review awaiting (or past) moderation.
type Review struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"productId"`
	CustomerID string    `json:"customerId"`
	Author     string    `json:"author"`
	Rating     int       `json:"rating"`
	Title      string    `json:"title,omitempty"`
	Body       string    `json:"body"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}
