package domain

import "time"

// Return request lifecycle. pending is initial; rejected and refunded are
// terminal. No transition ever removes the record.
const (
	ReturnPending      = "pending"
	ReturnApproved     = "approved"
	ReturnRejected     = "rejected"
	ReturnItemReceived = "item_received"
	ReturnRefunded     = "refunded"
)

// ReturnRequest tracks a customer's request to send an order item back.
//
// ProcessedAt is stamped exactly once, at the admin approve/reject decision;
// the later received/refunded transitions never overwrite it.
type ReturnRequest struct {
	ID           string     `json:"id"`
	OrderID      string     `json:"orderId"`
	CustomerID   string     `json:"customerId"`
	ProductID    string     `json:"productId"`
	Reason       string     `json:"reason"`
	Status       string     `json:"status"`
	Notes        string     `json:"notes,omitempty"`
	RefundAmount int64      `json:"refundAmount,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	ProcessedAt  *time.Time `json:"processedAt,omitempty"`
	ReceivedAt   *time.Time `json:"receivedAt,omitempty"`
	RefundedAt   *time.Time `json:"refundedAt,omitempty"`
}

// returnTransitions enumerates the legal status edges.
var returnTransitions = map[string][]string{
	ReturnPending:      {ReturnApproved, ReturnRejected},
	ReturnApproved:     {ReturnItemReceived},
	ReturnItemReceived: {ReturnRefunded},
}

// CanTransition reports whether a return in `from` may move to `to`.
func (ReturnRequest) CanTransition(from, to string) bool {
	for _, next := range returnTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
