package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"perfumeshop/internal/domain"
)

func TestListProducts_PaginationContract(t *testing.T) {
	next := 2
	catalog := &stubCatalogSvc{page: &domain.CatalogPage{
		Products:    []domain.Product{{ID: "p1", Title: "Midnight Rose"}},
		TotalPages:  2,
		Page:        1,
		HasNextPage: true,
		NextPage:    &next,
	}}
	router := testRouter(t, Deps{CatalogSvc: catalog})

	req := httptest.NewRequest(http.MethodGet, "/api/products?limit=10&page=1&sort=asc&query=Feminine", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if catalog.lastQuery.Query != "Feminine" || catalog.lastQuery.Sort != "asc" ||
		catalog.lastQuery.Page != 1 || catalog.lastQuery.Limit != 10 {
		t.Fatalf("unexpected query passed to engine: %+v", catalog.lastQuery)
	}

	var resp listProductsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "success" || len(resp.Payload) != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.NextLink == nil || *resp.NextLink != "/api/products?page=2" {
		t.Fatalf("unexpected next link %+v", resp.NextLink)
	}
	if resp.PrevLink != nil {
		t.Fatalf("expected null prev link, got %v", *resp.PrevLink)
	}
}

func TestListProducts_NonNumericParamsFallBack(t *testing.T) {
	catalog := &stubCatalogSvc{page: &domain.CatalogPage{Products: []domain.Product{}, TotalPages: 1, Page: 1}}
	router := testRouter(t, Deps{CatalogSvc: catalog})

	req := httptest.NewRequest(http.MethodGet, "/api/products?limit=ten&page=two", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if catalog.lastQuery.Limit != 0 || catalog.lastQuery.Page != 0 {
		t.Fatalf("expected zero values for engine defaulting, got %+v", catalog.lastQuery)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	products := &stubProductSvc{getErr: domain.ErrProductNotFound}
	router := testRouter(t, Deps{ProductSvc: products})

	req := httptest.NewRequest(http.MethodGet, "/api/products/ghost", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"error"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCreateProduct_Created(t *testing.T) {
	products := &stubProductSvc{product: &domain.Product{ID: "p1", Title: "Midnight Rose"}}
	router := testRouter(t, Deps{ProductSvc: products})

	body := `{"title":"Midnight Rose","code":"PRF-1","category":"Feminine","priceCents":7499}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !products.lastCreate.Status {
		t.Fatalf("expected status to default to available")
	}
}

func TestCreateProduct_MissingFields(t *testing.T) {
	router := testRouter(t, Deps{})

	body := `{"title":"No Code","category":"Feminine"}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Code") {
		t.Fatalf("expected failing field in message: %s", rec.Body.String())
	}
}

func TestCreateProduct_NegativePrice(t *testing.T) {
	router := testRouter(t, Deps{})

	body := `{"title":"Broken","code":"PRF-X","category":"Unisex","priceCents":-5}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	products := &stubProductSvc{updateErr: domain.ErrProductNotFound}
	router := testRouter(t, Deps{ProductSvc: products})

	req := httptest.NewRequest(http.MethodPut, "/api/products/ghost", strings.NewReader(`{"title":"New"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDeleteProduct(t *testing.T) {
	products := &stubProductSvc{}
	router := testRouter(t, Deps{ProductSvc: products})

	req := httptest.NewRequest(http.MethodDelete, "/api/products/p1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if products.lastDelete != "p1" {
		t.Fatalf("expected delete of p1, got %q", products.lastDelete)
	}

	products.deleteErr = domain.ErrProductNotFound
	req = httptest.NewRequest(http.MethodDelete, "/api/products/ghost", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
