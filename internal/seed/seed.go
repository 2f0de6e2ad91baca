package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Title       string
	Description string
	Code        string
	Category    string
	PriceCents  int64
	Status      bool
	Stock       int
}

// Apply inserts demo perfume catalog data for manual testing. It is
// idempotent via ON CONFLICT on the product code.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Title:       "Midnight Rose",
			Description: "Dark rose with amber and patchouli",
			Code:        "PRF-ROSE-50",
			Category:    "Feminine",
			PriceCents:  7499,
			Status:      true,
			Stock:       25,
		},
		{
			Title:       "Cedar & Vetiver",
			Description: "Dry woods over a smoky vetiver base",
			Code:        "PRF-CEDAR-100",
			Category:    "Masculine",
			PriceCents:  8999,
			Status:      true,
			Stock:       18,
		},
		{
			Title:       "Citrus Neroli",
			Description: "Bright neroli and bergamot cologne",
			Code:        "PRF-NEROLI-75",
			Category:    "Unisex",
			PriceCents:  6250,
			Status:      true,
			Stock:       40,
		},
		{
			Title:       "Oud Royale",
			Description: "Heavy oud, currently out of rotation",
			Code:        "PRF-OUD-50",
			Category:    "Unisex",
			PriceCents:  15900,
			Status:      false,
			Stock:       0,
		},
		{
			Title:       "Vanilla Orchid",
			Description: "Warm vanilla with white florals",
			Code:        "PRF-VANILLA-50",
			Category:    "Feminine",
			PriceCents:  5400,
			Status:      true,
			Stock:       33,
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Code, err)
		}
	}
	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (title, description, code, category, price_cents, status, stock)
VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7)
ON CONFLICT (code) DO UPDATE SET
    title = EXCLUDED.title,
    description = EXCLUDED.description,
    category = EXCLUDED.category,
    price_cents = EXCLUDED.price_cents,
    status = EXCLUDED.status,
    stock = EXCLUDED.stock
`
	_, err := pool.Exec(ctx, q, p.Title, p.Description, p.Code, p.Category, p.PriceCents, p.Status, p.Stock)
	return err
}
