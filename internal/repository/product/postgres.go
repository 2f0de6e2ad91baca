package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"perfumeshop/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
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

const productColumns = `id::text, title, COALESCE(description, ''), code, category, price_cents, status, stock, attributes, created_at`

// filterClause implements the dual-purpose query token: category equality
// OR availability equality when the token is "true"/"false". $1 is the token.
const filterClause = `($1 = '' OR category = $1 OR ($1 IN ('true', 'false') AND status = ($1 = 'true')))`

func (r *postgresRepo) List(ctx context.Context, params ListParams) ([]domain.Product, error) {
	order := "created_at DESC"
	switch params.Sort {
	case "asc":
		order = "price_cents ASC, created_at DESC"
	case "desc":
		order = "price_cents DESC, created_at DESC"
	}
	q := fmt.Sprintf(`
SELECT %s
FROM products
WHERE %s
ORDER BY %s
LIMIT $2 OFFSET $3
`, productColumns, filterClause, order)

	rows, err := r.pool.Query(ctx, q, params.Filter.Query, params.Limit, params.Offset)
	if err != nil {
		r.logger.Printf("product repo: list query=%q error=%v", params.Filter.Query, err)
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *postgresRepo) Count(ctx context.Context, filter Filter) (int, error) {
	q := fmt.Sprintf(`SELECT COUNT(*) FROM products WHERE %s`, filterClause)
	var count int
	if err := r.pool.QueryRow(ctx, q, filter.Query).Scan(&count); err != nil {
		r.logger.Printf("product repo: count query=%q error=%v", filter.Query, err)
		return 0, err
	}
	return count, nil
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Product, error) {
	q := fmt.Sprintf(`
SELECT %s
FROM products
ORDER BY created_at DESC
`, productColumns)
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list all error=%v", err)
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrProductNotFound
	}
	q := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.Code, &p.Category,
		&p.PriceCents, &p.Status, &p.Stock, &p.Attributes, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	q := fmt.Sprintf(`
INSERT INTO products (title, description, code, category, price_cents, status, stock, attributes)
VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, COALESCE($8, '{}'::jsonb))
RETURNING %s
`, productColumns)
	var p domain.Product
	err := r.pool.QueryRow(ctx, q,
		in.Title, in.Description, in.Code, in.Category,
		in.PriceCents, in.Status, in.Stock, in.Attributes,
	).Scan(
		&p.ID, &p.Title, &p.Description, &p.Code, &p.Category,
		&p.PriceCents, &p.Status, &p.Stock, &p.Attributes, &p.CreatedAt,
	)
	if err != nil {
		r.logger.Printf("product repo: create code=%s error=%v", in.Code, err)
		return nil, err
	}
	r.logger.Printf("product repo: created id=%s code=%s", p.ID, p.Code)
	return &p, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, in UpdateInput) (*domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrProductNotFound
	}

	var sets []string
	var args []interface{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if in.Title != nil {
		add("title", *in.Title)
	}
	if in.Description != nil {
		add("description", *in.Description)
	}
	if in.Code != nil {
		add("code", *in.Code)
	}
	if in.Category != nil {
		add("category", *in.Category)
	}
	if in.PriceCents != nil {
		add("price_cents", *in.PriceCents)
	}
	if in.Status != nil {
		add("status", *in.Status)
	}
	if in.Stock != nil {
		add("stock", *in.Stock)
	}
	if in.Attributes != nil {
		add("attributes", in.Attributes)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	q := fmt.Sprintf(`
UPDATE products
SET %s
WHERE id = $%d
RETURNING %s
`, strings.Join(sets, ", "), len(args), productColumns)

	var p domain.Product
	err := r.pool.QueryRow(ctx, q, args...).Scan(
		&p.ID, &p.Title, &p.Description, &p.Code, &p.Category,
		&p.PriceCents, &p.Status, &p.Stock, &p.Attributes, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		r.logger.Printf("product repo: update id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrProductNotFound
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	r.logger.Printf("product repo: deleted id=%s", id)
	return nil
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Code, &p.Category,
			&p.PriceCents, &p.Status, &p.Stock, &p.Attributes, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
