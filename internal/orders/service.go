package orders

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cryptogear/backend/pkg/db/models"
	"github.com/cryptogear/backend/pkg/enums"
	"github.com/cryptogear/backend/pkg/errors"
	"github.com/cryptogear/backend/pkg/types"
)

// cartEmptier clears the submitting user's cart once the order is
// recorded. The cart is only emptied after the order write succeeds.
type cartEmptier interface {
	Clear(ctx context.Context, userID uuid.UUID) error
}

// txRunner runs a function inside a database transaction.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// LineItemInput is one submitted cart line. Price is the price the buyer
// saw at submission time and is stored verbatim.
type LineItemInput struct {
	ProductID string          `json:"product_id" validate:"required,uuid4"`
	Name      string          `json:"name" validate:"required"`
	Price     decimal.Decimal `json:"price" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	ImageURL  string          `json:"image_url"`
}

// CreateInput is the checkout submission payload.
type CreateInput struct {
	Items           []LineItemInput       `json:"items" validate:"required,min=1,dive"`
	Total           decimal.Decimal       `json:"total" validate:"required"`
	ShippingAddress types.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                `json:"payment_method" validate:"required"`
	CryptoTxHash    *string               `json:"crypto_tx_hash"`
}

// Service records submitted checkouts and serves the order history.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateInput) (DTO, error)
	List(ctx context.Context, userID uuid.UUID) ([]DTO, error)
	Get(ctx context.Context, userID, orderID uuid.UUID) (DTO, error)
}

type service struct {
	repo  Repository
	carts cartEmptier
	tx    txRunner
}

// NewService wires the order service with its repository, the cart
// service used to empty carts on submission, and a transaction runner.
func NewService(repo Repository, carts cartEmptier, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders: repository is required")
	}
	if carts == nil {
		return nil, fmt.Errorf("orders: cart service is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("orders: transaction runner is required")
	}
	return &service{repo: repo, carts: carts, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (DTO, error) {
	order, err := buildOrder(userID, input)
	if err != nil {
		return DTO{}, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		created, err := repo.Create(ctx, order)
		if err != nil {
			return errors.Wrap(errors.CodeInternal, err, "create order")
		}
		order = created
		if err := s.carts.Clear(ctx, userID); err != nil {
			return errors.Wrap(errors.CodeInternal, err, "clear cart after order")
		}
		return nil
	})
	if err != nil {
		return DTO{}, err
	}

	return NewDTO(order), nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]DTO, error) {
	records, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "list orders")
	}
	return NewDTOs(records), nil
}

func (s *service) Get(ctx context.Context, userID, orderID uuid.UUID) (DTO, error) {
	record, err := s.repo.FindByID(ctx, userID, orderID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return DTO{}, errors.New(errors.CodeNotFound, "order not found")
		}
		return DTO{}, errors.Wrap(errors.CodeInternal, err, "load order")
	}
	return NewDTO(record), nil
}

// buildOrder validates a submission and assembles the order model. Card
// payments settle immediately; crypto payments stay pending until the
// chain confirms the supplied transaction hash.
func buildOrder(userID uuid.UUID, input CreateInput) (*models.Order, error) {
	method, err := enums.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, errors.New(errors.CodeValidation, "unknown payment method")
	}
	if len(input.Items) == 0 {
		return nil, errors.New(errors.CodeValidation, "order must contain at least one item")
	}
	if !input.ShippingAddress.HasRequiredFields() {
		return nil, errors.New(errors.CodeValidation, "shipping name, address and city are required")
	}

	items := make([]models.OrderLineItem, 0, len(input.Items))
	sum := decimal.Zero
	for _, line := range input.Items {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			return nil, errors.New(errors.CodeValidation, "item product_id must be a valid UUID")
		}
		if line.Quantity < 1 {
			return nil, errors.New(errors.CodeValidation, "item quantity must be at least 1")
		}
		if line.Price.IsNegative() {
			return nil, errors.New(errors.CodeValidation, "item price must not be negative")
		}
		items = append(items, models.OrderLineItem{
			ProductID: productID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			ImageURL:  line.ImageURL,
		})
		sum = sum.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	if !sum.Equal(input.Total) {
		return nil, errors.New(errors.CodeValidation, "total does not match item prices")
	}

	var txHash *string
	if method == enums.PaymentMethodCrypto {
		hash := ""
		if input.CryptoTxHash != nil {
			hash = strings.TrimSpace(*input.CryptoTxHash)
		}
		if hash == "" {
			return nil, errors.New(errors.CodeValidation, "crypto payments require a transaction hash")
		}
		txHash = &hash
	}

	paymentStatus := enums.PaymentStatusPending
	if method == enums.PaymentMethodCard {
		paymentStatus = enums.PaymentStatusCompleted
	}

	return &models.Order{
		UserID:          userID,
		Items:           items,
		Total:           input.Total,
		PaymentMethod:   method,
		PaymentStatus:   paymentStatus,
		OrderStatus:     enums.OrderStatusProcessing,
		CryptoTxHash:    txHash,
		ShippingAddress: input.ShippingAddress,
	}, nil
}
