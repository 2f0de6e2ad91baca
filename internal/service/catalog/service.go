package catalog

import (
	"context"

	"perfumeshop/internal/domain"
	productrepo "perfumeshop/internal/repository/product"
)

// DefaultLimit is the page size used when the caller gives none, zero, or
// garbage.
const DefaultLimit = 10

type Service struct {
	repo productRepo
}

type productRepo interface {
	List(ctx context.Context, params productrepo.ListParams) ([]domain.Product, error)
	Count(ctx context.Context, filter productrepo.Filter) (int, error)
}

func New(repo productRepo) *Service {
	return &Service{repo: repo}
}

// ListQuery is a raw catalog request. Query is the dual-purpose filter token
// (category name, or "true"/"false" for availability). Sort is "asc"/"desc"
// by price; anything else means store order. Page and Limit are taken as
// given and normalized here.
type ListQuery struct {
	Query string
	Sort  string
	Page  int
	Limit int
}

// List produces one bounded catalog page. Sorting applies to the whole
// filtered set before pagination, and the total count is computed against
// the filter independently of the returned slice. A page past the end
// yields an empty slice, not an error.
func (s *Service) List(ctx context.Context, q ListQuery) (*domain.CatalogPage, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	sort := ""
	if q.Sort == "asc" || q.Sort == "desc" {
		sort = q.Sort
	}
	filter := productrepo.Filter{Query: q.Query}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.List(ctx, productrepo.ListParams{
		Filter: filter,
		Sort:   sort,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}

	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	result := &domain.CatalogPage{
		Products:    products,
		Total:       total,
		TotalPages:  totalPages,
		Page:        page,
		Limit:       limit,
		HasPrevPage: page > 1,
		HasNextPage: page < totalPages,
	}
	if result.HasPrevPage {
		prev := page - 1
		result.PrevPage = &prev
	}
	if result.HasNextPage {
		next := page + 1
		result.NextPage = &next
	}
	return result, nil
}
