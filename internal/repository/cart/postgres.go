package cart

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"perfumeshop/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context) (*domain.Cart, error) {
	const q = `
INSERT INTO carts DEFAULT VALUES
RETURNING id::text, created_at
`
	var cart domain.Cart
	if err := r.pool.QueryRow(ctx, q).Scan(&cart.ID, &cart.CreatedAt); err != nil {
		r.logger.Printf("cart repo: create error=%v", err)
		return nil, err
	}
	cart.Items = []domain.CartItem{}
	r.logger.Printf("cart repo: created id=%s", cart.ID)
	return &cart, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Cart, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrCartNotFound
	}

	var cart domain.Cart
	err := r.pool.QueryRow(ctx, `SELECT id::text, created_at FROM carts WHERE id = $1`, id).
		Scan(&cart.ID, &cart.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCartNotFound
		}
		r.logger.Printf("cart repo: get id=%s error=%v", id, err)
		return nil, err
	}

	const itemsQuery = `
SELECT ci.product_id::text, ci.quantity,
       p.id::text, p.title, COALESCE(p.description, ''), p.code, p.category,
       p.price_cents, p.status, p.stock, p.attributes, p.created_at
FROM cart_items ci
LEFT JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $1
ORDER BY ci.created_at ASC
`
	rows, err := r.pool.Query(ctx, itemsQuery, cart.ID)
	if err != nil {
		r.logger.Printf("cart repo: items id=%s error=%v", id, err)
		return nil, err
	}
	defer rows.Close()

	cart.Items = []domain.CartItem{}
	for rows.Next() {
		var item domain.CartItem
		var (
			pID         *string
			pTitle      *string
			pDesc       *string
			pCode       *string
			pCategory   *string
			pPriceCents *int64
			pStatus     *bool
			pStock      *int
			pAttributes map[string]interface{}
			pCreatedAt  *time.Time
		)
		if err := rows.Scan(
			&item.ProductID, &item.Quantity,
			&pID, &pTitle, &pDesc, &pCode, &pCategory,
			&pPriceCents, &pStatus, &pStock, &pAttributes, &pCreatedAt,
		); err != nil {
			return nil, err
		}
		if pID != nil {
			item.Product = &domain.Product{
				ID:          *pID,
				Title:       *pTitle,
				Description: *pDesc,
				Code:        *pCode,
				Category:    *pCategory,
				PriceCents:  *pPriceCents,
				Status:      *pStatus,
				Stock:       *pStock,
				Attributes:  pAttributes,
				CreatedAt:   *pCreatedAt,
			}
		} else {
			r.logger.Printf("cart repo: cart=%s references deleted product=%s", cart.ID, item.ProductID)
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &cart, nil
}

// AddItem is a single upsert so concurrent adds to the same line item
// cannot lose increments.
func (r *postgresRepo) AddItem(ctx context.Context, cartID, productID string, quantity int) error {
	if err := r.ensureCart(ctx, cartID); err != nil {
		return err
	}
	const q = `
INSERT INTO cart_items (cart_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (cart_id, product_id) DO UPDATE
SET quantity = cart_items.quantity + EXCLUDED.quantity
`
	if _, err := r.pool.Exec(ctx, q, cartID, productID, quantity); err != nil {
		r.logger.Printf("cart repo: add item cart=%s product=%s error=%v", cartID, productID, err)
		return err
	}
	return nil
}

func (r *postgresRepo) SetItemQuantity(ctx context.Context, cartID, productID string, quantity int) error {
	if err := r.ensureCart(ctx, cartID); err != nil {
		return err
	}
	if _, err := uuid.Parse(productID); err != nil {
		return domain.ErrLineItemNotFound
	}

	var cmd pgconn.CommandTag
	var err error
	if quantity <= 0 {
		cmd, err = r.pool.Exec(ctx, `
DELETE FROM cart_items
WHERE cart_id = $1 AND product_id = $2
`, cartID, productID)
	} else {
		cmd, err = r.pool.Exec(ctx, `
UPDATE cart_items
SET quantity = $3
WHERE cart_id = $1 AND product_id = $2
`, cartID, productID, quantity)
	}
	if err != nil {
		r.logger.Printf("cart repo: set quantity cart=%s product=%s error=%v", cartID, productID, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrLineItemNotFound
	}
	return nil
}

func (r *postgresRepo) DecrementItem(ctx context.Context, cartID, productID string) error {
	if err := r.ensureCart(ctx, cartID); err != nil {
		return err
	}
	if _, err := uuid.Parse(productID); err != nil {
		return domain.ErrLineItemNotFound
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// The quantity >= 1 check constraint forbids decrementing to zero, so a
	// last-unit line item is deleted instead.
	cmd, err := tx.Exec(ctx, `
DELETE FROM cart_items
WHERE cart_id = $1 AND product_id = $2 AND quantity = 1
`, cartID, productID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		cmd, err = tx.Exec(ctx, `
UPDATE cart_items
SET quantity = quantity - 1
WHERE cart_id = $1 AND product_id = $2 AND quantity > 1
`, cartID, productID)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrLineItemNotFound
		}
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) RemoveItem(ctx context.Context, cartID, productID string) error {
	if err := r.ensureCart(ctx, cartID); err != nil {
		return err
	}
	if _, err := uuid.Parse(productID); err != nil {
		return nil
	}
	if _, err := r.pool.Exec(ctx, `
DELETE FROM cart_items
WHERE cart_id = $1 AND product_id = $2
`, cartID, productID); err != nil {
		r.logger.Printf("cart repo: remove item cart=%s product=%s error=%v", cartID, productID, err)
		return err
	}
	return nil
}

func (r *postgresRepo) ReplaceItems(ctx context.Context, cartID string, items []domain.CartItem) error {
	if err := r.ensureCart(ctx, cartID); err != nil {
		return err
	}
	for _, item := range items {
		if _, err := uuid.Parse(item.ProductID); err != nil {
			return domain.ErrInvalidInput
		}
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return err
	}
	for _, item := range items {
		if _, err := tx.Exec(ctx, `
INSERT INTO cart_items (cart_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (cart_id, product_id) DO UPDATE
SET quantity = cart_items.quantity + EXCLUDED.quantity
`, cartID, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) Clear(ctx context.Context, cartID string) error {
	if err := r.ensureCart(ctx, cartID); err != nil {
		return err
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		r.logger.Printf("cart repo: clear cart=%s error=%v", cartID, err)
		return err
	}
	return nil
}

func (r *postgresRepo) ensureCart(ctx context.Context, cartID string) error {
	if _, err := uuid.Parse(cartID); err != nil {
		return domain.ErrCartNotFound
	}
	var one int
	err := r.pool.QueryRow(ctx, `SELECT 1 FROM carts WHERE id = $1`, cartID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrCartNotFound
		}
		return err
	}
	return nil
}
