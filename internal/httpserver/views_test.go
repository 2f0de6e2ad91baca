package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"perfumeshop/internal/domain"
)

func TestHomeView(t *testing.T) {
	products := &stubProductSvc{products: []domain.Product{
		{ID: "p1", Title: "Midnight Rose", Code: "MR-50", Category: "floral", PriceCents: 12900, Status: true, Stock: 5},
	}}
	router := testRouter(t, Deps{ProductSvc: products})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Fatalf("expected html content type, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Midnight Rose") {
		t.Fatalf("expected product title in rendered page")
	}
}

func TestProductsView_ForwardsQueryParams(t *testing.T) {
	catalog := &stubCatalogSvc{page: &domain.CatalogPage{
		Products:   []domain.Product{{ID: "p1", Title: "Cedar & Vetiver", PriceCents: 9900}},
		TotalPages: 3,
		Page:       2,
		Limit:      5,
	}}
	router := testRouter(t, Deps{CatalogSvc: catalog})

	req := httptest.NewRequest(http.MethodGet, "/products?limit=5&page=2&sort=asc&query=woody", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	q := catalog.lastQuery
	if q.Limit != 5 || q.Page != 2 || q.Sort != "asc" || q.Query != "woody" {
		t.Fatalf("unexpected catalog query %+v", q)
	}
	if !strings.Contains(rec.Body.String(), "Cedar &amp; Vetiver") {
		t.Fatalf("expected product title in rendered page")
	}
}

func TestProductDetailView_NotFound(t *testing.T) {
	products := &stubProductSvc{getErr: domain.ErrProductNotFound}
	router := testRouter(t, Deps{ProductSvc: products})

	req := httptest.NewRequest(http.MethodGet, "/products/ghost", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); strings.Contains(ct, "application/json") {
		t.Fatalf("view errors should be plain text, got %q", ct)
	}
}

func TestCartView(t *testing.T) {
	price := int64(12900)
	carts := &stubCartSvc{cart: &domain.Cart{
		ID: "c1",
		Items: []domain.CartItem{
			{ProductID: "p1", Quantity: 2, Product: &domain.Product{ID: "p1", Title: "Oud Royale", PriceCents: price}},
		},
	}}
	router := testRouter(t, Deps{CartSvc: carts})

	req := httptest.NewRequest(http.MethodGet, "/carts/c1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Oud Royale") {
		t.Fatalf("expected line item title in rendered page")
	}
}

func TestCartView_NotFound(t *testing.T) {
	carts := &stubCartSvc{err: domain.ErrCartNotFound}
	router := testRouter(t, Deps{CartSvc: carts})

	req := httptest.NewRequest(http.MethodGet, "/carts/ghost", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
