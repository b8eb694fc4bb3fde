package domain

import "time"

// Product is a sellable catalog item. Prices are integer minor units (cents).
//
// Fields:
//   - ID: "prod_{epochMillis}".
//   - Slug: derived from Name on create and on every rename (never stale).
//   - Price: base price; SalePrice, when > 0, is a promotional display price.
//     The cart engine intentionally sums base Price (see cart package).
//   - Sizes / Colors: the variant axes a cart line must choose from.
//   - Stock: advisory quantity-on-hand; the cart does not enforce it.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"`
	SalePrice   int64     `json:"salePrice,omitempty"`
	Currency    string    `json:"currency"`
	Category    string    `json:"category,omitempty"`
	Collection  string    `json:"collectionId,omitempty"`
	Sizes       []string  `json:"sizes,omitempty"`
	Colors      []string  `json:"colors,omitempty"`
	Images      []string  `json:"images,omitempty"`
	Stock       int       `json:"stock"`
	Featured    bool      `json:"featured,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Collection groups products for merchandising. Slug is derived from Name.
type Collection struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
}
