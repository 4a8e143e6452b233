package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cryptogear/backend/pkg/enums"
	pkgerrors "github.com/cryptogear/backend/pkg/errors"
)

// Service exposes read access to the product catalog.
type Service interface {
	List(ctx context.Context, category string) ([]ProductDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	Seed(ctx context.Context) (int, error)
}

type service struct {
	repo Repository
}

// NewService builds a catalog service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// List returns the products in the given category, or the whole catalog when
// the category is empty or the "all" keyword.
func (s *service) List(ctx context.Context, category string) ([]ProductDTO, error) {
	if category == enums.CategoryAll {
		category = ""
	}

	products, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return NewProductDTOs(products), nil
}

// Get returns a single product by id.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	dto := NewProductDTO(product)
	return &dto, nil
}

// Seed inserts the fixture catalog once; repeated calls are no-ops.
func (s *service) Seed(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}
	if count > 0 {
		return 0, nil
	}

	fixtures := seedProducts()
	if err := s.repo.CreateBatch(ctx, fixtures); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed products")
	}
	return len(fixtures), nil
}
