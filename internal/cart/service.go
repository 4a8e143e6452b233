package cart

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cryptogear/backend/pkg/db/models"
	"github.com/cryptogear/backend/pkg/errors"
)

// productLoader is the slice of the catalog the cart service needs:
// stock and denormalized display fields for new line items.
type productLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// txRunner runs a function inside a database transaction.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// AddItemInput is the request payload for adding a product to a cart.
// Clients send a display snapshot alongside the identifier; the stored
// line item is always snapshotted from the catalog row, so the client
// fields are accepted but not trusted.
type AddItemInput struct {
	ProductID string          `json:"product_id" validate:"required,uuid4"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url"`
}

// Service owns cart state for authenticated users. Reads always return
// the authoritative server-side cart; a missing cart reads as empty.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (DTO, error)
	AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (DTO, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (DTO, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo     Repository
	products productLoader
	tx       txRunner
}

// NewService wires the cart service with its repository, a catalog
// loader for stock checks, and a transaction runner.
func NewService(repo Repository, products productLoader, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart: repository is required")
	}
	if products == nil {
		return nil, fmt.Errorf("cart: product loader is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("cart: transaction runner is required")
	}
	return &service{repo: repo, products: products, tx: tx}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (DTO, error) {
	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return DTO{}, err
	}
	return NewDTO(cart), nil
}

func (s *service) AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (DTO, error) {
	if input.Quantity < 1 {
		return DTO{}, errors.New(errors.CodeValidation, "quantity must be at least 1")
	}
	productID, err := uuid.Parse(input.ProductID)
	if err != nil {
		return DTO{}, errors.New(errors.CodeValidation, "product_id must be a valid UUID")
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return DTO{}, errors.New(errors.CodeNotFound, "product not found")
		}
		return DTO{}, errors.Wrap(errors.CodeInternal, err, "load product")
	}
	if product.Stock <= 0 {
		return DTO{}, errors.New(errors.CodeValidation, "product is out of stock")
	}

	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return DTO{}, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := repo.FindItem(ctx, cart.ID, productID)
		if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrap(errors.CodeInternal, err, "load cart item")
		}

		current := 0
		if existing != nil {
			current = existing.Quantity
		}
		merged := current + input.Quantity
		if merged > product.Stock {
			return errors.New(errors.CodeValidation,
				fmt.Sprintf("only %d of %q in stock", product.Stock, product.Name))
		}

		if existing != nil {
			if err := repo.UpdateItemQuantity(ctx, existing.ID, merged); err != nil {
				return errors.Wrap(errors.CodeInternal, err, "update cart item")
			}
			return nil
		}
		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  input.Quantity,
			ImageURL:  product.ImageURL,
		}
		if err := repo.CreateItem(ctx, item); err != nil {
			return errors.Wrap(errors.CodeInternal, err, "create cart item")
		}
		return nil
	})
	if err != nil {
		return DTO{}, err
	}

	return s.reload(ctx, userID)
}

func (s *service) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (DTO, error) {
	cart, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return DTO{}, errors.New(errors.CodeNotFound, "cart not found")
		}
		return DTO{}, errors.Wrap(errors.CodeInternal, err, "load cart")
	}

	// Removing a product that is not in the cart is a no-op success.
	if err := s.repo.DeleteItemByProduct(ctx, cart.ID, productID); err != nil {
		return DTO{}, errors.Wrap(errors.CodeInternal, err, "remove cart item")
	}

	return s.reload(ctx, userID)
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			// Nothing to clear.
			return nil
		}
		return errors.Wrap(errors.CodeInternal, err, "load cart")
	}
	if err := s.repo.DeleteItems(ctx, cart.ID); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "clear cart")
	}
	return nil
}

func (s *service) getOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.repo.FindByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(errors.CodeInternal, err, "load cart")
	}
	created, err := s.repo.Create(ctx, &models.Cart{UserID: userID})
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "create cart")
	}
	return created, nil
}

func (s *service) reload(ctx context.Context, userID uuid.UUID) (DTO, error) {
	cart, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return DTO{}, errors.Wrap(errors.CodeInternal, err, "reload cart")
	}
	return NewDTO(cart), nil
}
