package domain

// CatalogPage is a bounded slice of the catalog plus pagination metadata.
// It is derived from a query and never persisted; the HTTP layer owns the
// wire representation.
type CatalogPage struct {
	Products    []Product
	Total       int
	TotalPages  int
	Page        int
	Limit       int
	HasPrevPage bool
	HasNextPage bool
	PrevPage    *int
	NextPage    *int
}
