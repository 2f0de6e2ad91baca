package domain

import "time"

type Cart struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	Items     []CartItem `json:"products"`
}

// CartItem pairs a product reference with a quantity. Within one cart at
// most one item references a given product id; the store enforces this.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	// Product is resolved against the catalog at read time. It is nil when
	// the referenced product has been deleted since the item was added.
	Product *Product `json:"product,omitempty"`
}
