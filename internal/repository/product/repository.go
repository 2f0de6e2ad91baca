package product

import (
	"context"

	"perfumeshop/internal/domain"
)

// Filter selects catalog rows by the single query token. An empty token
// matches everything. A non-empty token matches rows whose category equals
// the token, or whose availability matches when the token is the literal
// "true"/"false". A category literally named "true" therefore also matches
// the availability clause; that ambiguity is part of the API contract.
type Filter struct {
	Query string
}

// ListParams bounds and orders one page of the catalog. Sort is "" for
// store order (newest first), "asc"/"desc" for price.
type ListParams struct {
	Filter Filter
	Sort   string
	Limit  int
	Offset int
}

type CreateInput struct {
	Title       string
	Description string
	Code        string
	Category    string
	PriceCents  int64
	Status      bool
	Stock       int
	Attributes  map[string]interface{}
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	Title       *string
	Description *string
	Code        *string
	Category    *string
	PriceCents  *int64
	Status      *bool
	Stock       *int
	Attributes  map[string]interface{}
}

type Repository interface {
	List(ctx context.Context, params ListParams) ([]domain.Product, error)
	Count(ctx context.Context, filter Filter) (int, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in CreateInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in UpdateInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
