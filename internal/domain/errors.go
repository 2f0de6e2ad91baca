package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates a malformed or out-of-range request value.
	ErrInvalidInput = errors.New("invalid input")
)

// Entity-specific sentinels wrap ErrNotFound so the boundary can map all of
// them to 404 while callers still distinguish which lookup failed.
var (
	ErrProductNotFound  = fmt.Errorf("product %w", ErrNotFound)
	ErrCartNotFound     = fmt.Errorf("cart %w", ErrNotFound)
	ErrLineItemNotFound = fmt.Errorf("product not in cart: %w", ErrNotFound)
)
