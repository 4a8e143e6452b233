package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cryptogear/backend/pkg/db/models"
	"github.com/cryptogear/backend/pkg/enums"
	pkgerrors "github.com/cryptogear/backend/pkg/errors"
)

type stubCatalogRepo struct {
	products    []models.Product
	lastListCat string
	created     []models.Product
	count       int64
}

func (s *stubCatalogRepo) ListByCategory(_ context.Context, category string) ([]models.Product, error) {
	s.lastListCat = category
	if category == "" {
		return s.products, nil
	}
	var out []models.Product
	for _, p := range s.products {
		if p.Category.String() == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubCatalogRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCatalogRepo) Count(context.Context) (int64, error) {
	return s.count, nil
}

func (s *stubCatalogRepo) CreateBatch(_ context.Context, products []models.Product) error {
	s.created = append(s.created, products...)
	return nil
}

func TestListTreatsAllAsNoFilter(t *testing.T) {
	t.Parallel()

	repo := &stubCatalogRepo{products: seedProducts()}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dtos, err := svc.List(context.Background(), enums.CategoryAll)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.lastListCat != "" {
		t.Fatalf("expected empty filter for %q, got %q", enums.CategoryAll, repo.lastListCat)
	}
	if len(dtos) != len(repo.products) {
		t.Fatalf("expected full catalog, got %d", len(dtos))
	}
}

func TestListFiltersByCategory(t *testing.T) {
	t.Parallel()

	repo := &stubCatalogRepo{products: seedProducts()}
	svc, _ := NewService(repo)

	dtos, err := svc.List(context.Background(), "phones")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(dtos) != 2 {
		t.Fatalf("expected 2 phones in fixtures, got %d", len(dtos))
	}
	for _, dto := range dtos {
		if dto.Category != "phones" {
			t.Fatalf("unexpected category %q", dto.Category)
		}
	}
}

func TestGetUnknownProductIsNotFound(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(&stubCatalogRepo{})
	_, err := svc.Get(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	t.Parallel()

	repo := &stubCatalogRepo{}
	svc, _ := NewService(repo)

	inserted, err := svc.Seed(context.Background())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if inserted != 8 {
		t.Fatalf("expected 8 fixtures, got %d", inserted)
	}

	repo.count = int64(inserted)
	inserted, err = svc.Seed(context.Background())
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("second seed must be a no-op, inserted %d", inserted)
	}
}

func TestSeedPricesAreExactDecimals(t *testing.T) {
	t.Parallel()

	for _, p := range seedProducts() {
		if p.Price.Exponent() < -2 {
			t.Fatalf("price %s of %q has more than 2 decimal places", p.Price, p.Name)
		}
	}
}
