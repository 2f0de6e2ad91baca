package cart

import (
	"context"

	"perfumeshop/internal/domain"
)

// Service implements cart reconciliation: one line item per product id,
// quantities always >= 1, and two distinct removal semantics. DecrementOne
// backs the JSON API DELETE route; RemoveEntirely backs the storefront
// delete button.
type Service struct {
	repo     cartRepo
	products productGetter
}

type cartRepo interface {
	Create(ctx context.Context) (*domain.Cart, error)
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
	AddItem(ctx context.Context, cartID, productID string, quantity int) error
	SetItemQuantity(ctx context.Context, cartID, productID string, quantity int) error
	DecrementItem(ctx context.Context, cartID, productID string) error
	RemoveItem(ctx context.Context, cartID, productID string) error
	ReplaceItems(ctx context.Context, cartID string, items []domain.CartItem) error
	Clear(ctx context.Context, cartID string) error
}

type productGetter interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartRepo, products productGetter) *Service {
	return &Service{repo: repo, products: products}
}

// Create returns a new empty cart.
func (s *Service) Create(ctx context.Context) (*domain.Cart, error) {
	return s.repo.Create(ctx)
}

// Get returns the cart with line items resolved against the current catalog.
func (s *Service) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	return s.repo.GetByID(ctx, cartID)
}

// AddProduct merges quantity into an existing line item for the product or
// appends a new one. A quantity below 1 means "one unit".
func (s *Service) AddProduct(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	if err := s.repo.AddItem(ctx, cartID, productID, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, cartID)
}

// SetQuantity sets the line item's quantity outright. Zero or negative
// removes the line item entirely rather than keeping a zero line.
func (s *Service) SetQuantity(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error) {
	if err := s.repo.SetItemQuantity(ctx, cartID, productID, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, cartID)
}

// DecrementOne takes one unit off the line item, removing it when the last
// unit goes.
func (s *Service) DecrementOne(ctx context.Context, cartID, productID string) (*domain.Cart, error) {
	if err := s.repo.DecrementItem(ctx, cartID, productID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, cartID)
}

// RemoveEntirely drops the line item regardless of quantity. It is
// idempotent: removing a product that is not in the cart succeeds.
func (s *Service) RemoveEntirely(ctx context.Context, cartID, productID string) (*domain.Cart, error) {
	if err := s.repo.RemoveItem(ctx, cartID, productID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, cartID)
}

// ReplaceAll swaps the cart's entire line-item collection for the given
// one. Referenced products are not validated against the catalog, matching
// the API contract; dangling references surface later as unresolved items.
// An omitted quantity defaults to one unit; a negative quantity is invalid.
func (s *Service) ReplaceAll(ctx context.Context, cartID string, items []domain.CartItem) (*domain.Cart, error) {
	normalized := make([]domain.CartItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		if item.Quantity == 0 {
			item.Quantity = 1
		}
		item.Product = nil
		normalized = append(normalized, item)
	}
	if err := s.repo.ReplaceItems(ctx, cartID, normalized); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, cartID)
}

// Clear empties the cart's line items.
func (s *Service) Clear(ctx context.Context, cartID string) (*domain.Cart, error) {
	if err := s.repo.Clear(ctx, cartID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, cartID)
}
