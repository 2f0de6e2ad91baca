package catalog

import (
	"context"
	"testing"

	"perfumeshop/internal/domain"
	productrepo "perfumeshop/internal/repository/product"
)

type stubRepo struct {
	products   []domain.Product
	total      int
	listErr    error
	countErr   error
	lastParams productrepo.ListParams
	lastFilter productrepo.Filter
}

func (s *stubRepo) List(_ context.Context, params productrepo.ListParams) ([]domain.Product, error) {
	s.lastParams = params
	if s.listErr != nil {
		return nil, s.listErr
	}
	if params.Offset >= len(s.products) {
		return nil, nil
	}
	end := params.Offset + params.Limit
	if end > len(s.products) {
		end = len(s.products)
	}
	return s.products[params.Offset:end], nil
}

func (s *stubRepo) Count(_ context.Context, filter productrepo.Filter) (int, error) {
	s.lastFilter = filter
	return s.total, s.countErr
}

func makeProducts(n int) []domain.Product {
	products := make([]domain.Product, n)
	for i := range products {
		products[i] = domain.Product{ID: string(rune('a' + i)), Title: "P", PriceCents: int64(i * 100)}
	}
	return products
}

func TestList_DefaultsLimitAndPage(t *testing.T) {
	repo := &stubRepo{products: makeProducts(3), total: 3}
	svc := New(repo)

	page, err := svc.List(context.Background(), ListQuery{Limit: 0, Page: 0})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if repo.lastParams.Limit != DefaultLimit {
		t.Fatalf("expected default limit %d, got %d", DefaultLimit, repo.lastParams.Limit)
	}
	if repo.lastParams.Offset != 0 {
		t.Fatalf("expected offset 0, got %d", repo.lastParams.Offset)
	}
	if page.Page != 1 || page.TotalPages != 1 {
		t.Fatalf("unexpected page meta %+v", page)
	}
	if page.HasPrevPage || page.HasNextPage {
		t.Fatalf("expected single page, got %+v", page)
	}
}

func TestList_NegativeLimitDefaults(t *testing.T) {
	repo := &stubRepo{total: 0}
	svc := New(repo)

	if _, err := svc.List(context.Background(), ListQuery{Limit: -5, Page: -3}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if repo.lastParams.Limit != DefaultLimit || repo.lastParams.Offset != 0 {
		t.Fatalf("unexpected params %+v", repo.lastParams)
	}
}

func TestList_TwelveProductsAcrossTwoPages(t *testing.T) {
	repo := &stubRepo{products: makeProducts(12), total: 12}
	svc := New(repo)

	first, err := svc.List(context.Background(), ListQuery{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List page 1: %v", err)
	}
	if len(first.Products) != 10 {
		t.Fatalf("expected 10 items on page 1, got %d", len(first.Products))
	}
	if !first.HasNextPage || first.NextPage == nil || *first.NextPage != 2 {
		t.Fatalf("expected next page 2, got %+v", first)
	}
	if first.HasPrevPage || first.PrevPage != nil {
		t.Fatalf("expected no prev page, got %+v", first)
	}

	second, err := svc.List(context.Background(), ListQuery{Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if len(second.Products) != 2 {
		t.Fatalf("expected 2 items on page 2, got %d", len(second.Products))
	}
	if second.HasNextPage || second.NextPage != nil {
		t.Fatalf("expected no next page, got %+v", second)
	}
	if !second.HasPrevPage || second.PrevPage == nil || *second.PrevPage != 1 {
		t.Fatalf("expected prev page 1, got %+v", second)
	}
}

func TestList_PagePastEndYieldsEmpty(t *testing.T) {
	repo := &stubRepo{products: makeProducts(12), total: 12}
	svc := New(repo)

	page, err := svc.List(context.Background(), ListQuery{Page: 5, Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Products) != 0 {
		t.Fatalf("expected empty page, got %d items", len(page.Products))
	}
	if page.HasNextPage {
		t.Fatalf("expected hasNextPage=false past the end")
	}
	if page.Products == nil {
		t.Fatalf("expected non-nil empty slice")
	}
}

func TestList_EmptyCatalogHasOnePage(t *testing.T) {
	repo := &stubRepo{total: 0}
	svc := New(repo)

	page, err := svc.List(context.Background(), ListQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.TotalPages != 1 || page.HasNextPage || page.HasPrevPage {
		t.Fatalf("unexpected meta for empty catalog %+v", page)
	}
}

func TestList_SortNormalization(t *testing.T) {
	repo := &stubRepo{total: 0}
	svc := New(repo)

	for give, want := range map[string]string{
		"asc":   "asc",
		"desc":  "desc",
		"":      "",
		"ASC":   "",
		"price": "",
	} {
		if _, err := svc.List(context.Background(), ListQuery{Sort: give}); err != nil {
			t.Fatalf("List sort=%q: %v", give, err)
		}
		if repo.lastParams.Sort != want {
			t.Fatalf("sort %q: expected %q passed to repo, got %q", give, want, repo.lastParams.Sort)
		}
	}
}

func TestList_FilterTokenPassedThrough(t *testing.T) {
	repo := &stubRepo{total: 0}
	svc := New(repo)

	if _, err := svc.List(context.Background(), ListQuery{Query: "Feminine"}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if repo.lastFilter.Query != "Feminine" {
		t.Fatalf("expected filter query passed through, got %q", repo.lastFilter.Query)
	}
	if repo.lastParams.Filter.Query != "Feminine" {
		t.Fatalf("count and list filters must match, got %q", repo.lastParams.Filter.Query)
	}
}
