package domain

import "time"

type Product struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	Code        string                 `json:"code"`
	Category    string                 `json:"category"`
	PriceCents  int64                  `json:"priceCents"`
	Status      bool                   `json:"status"`
	Stock       int                    `json:"stock"`
	Attributes  map[string]interface{} `json:"attributes,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
}
