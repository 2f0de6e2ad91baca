package product

import (
	"context"
	"io"
	"log"
	"strings"

	"perfumeshop/internal/domain"
	productrepo "perfumeshop/internal/repository/product"
)

// Notifier receives the full product snapshot after catalog changes. The
// websocket hub implements it; a nil notifier disables broadcasting.
type Notifier interface {
	PublishCatalog(products []domain.Product)
}

type Service struct {
	repo     productrepo.Repository
	notifier Notifier
	logger   *log.Logger
}

func New(repo productrepo.Repository, notifier Notifier, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates required fields, persists the product and pushes a fresh
// catalog snapshot to connected viewers.
func (s *Service) Create(ctx context.Context, in productrepo.CreateInput) (*domain.Product, error) {
	if strings.TrimSpace(in.Title) == "" ||
		strings.TrimSpace(in.Code) == "" ||
		strings.TrimSpace(in.Category) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.PriceCents < 0 || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	created, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.broadcast(ctx)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, in productrepo.UpdateInput) (*domain.Product, error) {
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.PriceCents != nil && *in.PriceCents < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Stock != nil && *in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	return s.repo.Update(ctx, id, in)
}

// Delete removes the product and pushes a fresh catalog snapshot. Carts
// keep any line items referencing the deleted product; those resolve to
// unavailable at read time.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.broadcast(ctx)
	return nil
}

func (s *Service) broadcast(ctx context.Context) {
	if s.notifier == nil {
		return
	}
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Printf("product service: snapshot for broadcast failed: %v", err)
		return
	}
	s.notifier.PublishCatalog(products)
}
