package cart

import (
	"context"

	"perfumeshop/internal/domain"
)

// Repository persists carts and their line items. Line-item mutations are
// atomic at the store level (single conditional statements, no
// read-modify-write) so concurrent calls on the same cart cannot lose
// updates.
type Repository interface {
	Create(ctx context.Context) (*domain.Cart, error)
	// GetByID resolves line items against the current catalog. Items whose
	// product has been deleted keep their reference with a nil Product.
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
	// AddItem appends a line item or increments an existing one by quantity.
	AddItem(ctx context.Context, cartID, productID string, quantity int) error
	// SetItemQuantity sets (not increments) the quantity; quantity <= 0
	// removes the line item.
	SetItemQuantity(ctx context.Context, cartID, productID string, quantity int) error
	// DecrementItem lowers the quantity by one, removing the line item when
	// it reaches zero.
	DecrementItem(ctx context.Context, cartID, productID string) error
	// RemoveItem drops the line item regardless of quantity. Removing an
	// absent item is not an error.
	RemoveItem(ctx context.Context, cartID, productID string) error
	// ReplaceItems swaps the whole line-item collection. Referenced products
	// are not checked for existence; duplicate product ids are merged.
	ReplaceItems(ctx context.Context, cartID string, items []domain.CartItem) error
	Clear(ctx context.Context, cartID string) error
}
