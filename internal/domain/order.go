package domain

import "time"

// CartLine is one cart entry, keyed by (product id, size, color). The Product
// field is a snapshot-by-value taken when the line was added; later catalog
// edits do not reprice an existing line.
//
// Quantity is never persisted at zero or below: the cart engine converts such
// updates into a removal.
type CartLine struct {
	Product  Product `json:"product"`
	Size     string  `json:"selectedSize"`
	Color    string  `json:"selectedColor"`
	Quantity int     `json:"quantity"`
}

// SameKey reports whether the line matches the (productID, size, color) key.
func (l CartLine) SameKey(productID, size, color string) bool {
	return l.Product.ID == productID && l.Size == size && l.Color == color
}

// ShippingAddress is the checkout form payload.
type ShippingAddress struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	Country  string `json:"country,omitempty"`
}

// OrderConfirmed is the only status checkout writes. Payment is a stubbed
// client-side callback; a real deployment must verify settlement server-side
// before trusting this status.
const OrderConfirmed = "confirmed"

// Order is the synthesized record of a completed checkout. Only the most
// recent order is retained (single slot, not a history).
type Order struct {
	ID              string          `json:"id"`
	CustomerID      string          `json:"customerId"`
	Items           []CartLine      `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Subtotal        int64           `json:"subtotal"`
	Tax             int64           `json:"tax"`
	Shipping        int64           `json:"shipping"`
	Total           int64           `json:"total"`
	CouponCode      string          `json:"couponCode,omitempty"`
	Status          string          `json:"status"`
	OrderDate       time.Time       `json:"orderDate"`
}
