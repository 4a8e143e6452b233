package orders

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cryptogear/backend/pkg/db/models"
	"github.com/cryptogear/backend/pkg/errors"
	"github.com/cryptogear/backend/pkg/types"
)

type stubOrderRepo struct {
	orders []*models.Order
}

func (s *stubOrderRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubOrderRepo) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	order.ID = uuid.New()
	for i := range order.Items {
		order.Items[i].ID = uuid.New()
		order.Items[i].OrderID = order.ID
	}
	s.orders = append(s.orders, order)
	return order, nil
}

func (s *stubOrderRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]models.Order, error) {
	var out []models.Order
	for i := len(s.orders) - 1; i >= 0; i-- {
		if s.orders[i].UserID == userID {
			out = append(out, *s.orders[i])
		}
	}
	return out, nil
}

func (s *stubOrderRepo) FindByID(_ context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	for _, order := range s.orders {
		if order.ID == orderID && order.UserID == userID {
			return order, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type recordingCartEmptier struct {
	cleared []uuid.UUID
}

func (r *recordingCartEmptier) Clear(_ context.Context, userID uuid.UUID) error {
	r.cleared = append(r.cleared, userID)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newOrderFixture(t *testing.T) (Service, *stubOrderRepo, *recordingCartEmptier) {
	t.Helper()
	repo := &stubOrderRepo{}
	carts := &recordingCartEmptier{}
	svc, err := NewService(repo, carts, passthroughTx{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, repo, carts
}

func validInput() CreateInput {
	return CreateInput{
		Items: []LineItemInput{
			{
				ProductID: uuid.New().String(),
				Name:      "NeoPhone X",
				Price:     decimal.RequireFromString("999.99"),
				Quantity:  2,
			},
		},
		Total:         decimal.RequireFromString("1999.98"),
		PaymentMethod: "card",
		ShippingAddress: types.ShippingAddress{
			Name:    "Ada Lovelace",
			Address: "12 Analytical Way",
			City:    "London",
		},
	}
}

func TestCreateCardOrder(t *testing.T) {
	t.Parallel()

	svc, _, carts := newOrderFixture(t)
	userID := uuid.New()

	dto, err := svc.Create(context.Background(), userID, validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if dto.PaymentStatus != "completed" {
		t.Errorf("payment status = %s, want completed", dto.PaymentStatus)
	}
	if dto.OrderStatus != "processing" {
		t.Errorf("order status = %s, want processing", dto.OrderStatus)
	}
	if dto.CryptoTxHash != nil {
		t.Errorf("crypto tx hash = %v, want nil for card orders", *dto.CryptoTxHash)
	}
	if len(carts.cleared) != 1 || carts.cleared[0] != userID {
		t.Errorf("cart clears = %v, want one clear for %s", carts.cleared, userID)
	}
}

func TestCreateCryptoOrderStaysPending(t *testing.T) {
	t.Parallel()

	svc, _, _ := newOrderFixture(t)
	input := validInput()
	input.PaymentMethod = "crypto"
	hash := "0xdeadbeef"
	input.CryptoTxHash = &hash

	dto, err := svc.Create(context.Background(), uuid.New(), input)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if dto.PaymentStatus != "pending" {
		t.Errorf("payment status = %s, want pending", dto.PaymentStatus)
	}
	if dto.CryptoTxHash == nil || *dto.CryptoTxHash != hash {
		t.Errorf("crypto tx hash = %v, want %s", dto.CryptoTxHash, hash)
	}
}

func TestCreateCryptoOrderRequiresTxHash(t *testing.T) {
	t.Parallel()

	svc, _, _ := newOrderFixture(t)
	for _, hash := range []*string{nil, ptr(""), ptr("   ")} {
		input := validInput()
		input.PaymentMethod = "crypto"
		input.CryptoTxHash = hash

		_, err := svc.Create(context.Background(), uuid.New(), input)
		if errors.CodeOf(err) != errors.CodeValidation {
			t.Errorf("hash %v: err = %v, want validation error", hash, err)
		}
	}
}

func TestCreateRejectsTotalMismatch(t *testing.T) {
	t.Parallel()

	svc, _, carts := newOrderFixture(t)
	input := validInput()
	input.Total = decimal.RequireFromString("1999.97")

	_, err := svc.Create(context.Background(), uuid.New(), input)
	if errors.CodeOf(err) != errors.CodeValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
	if len(carts.cleared) != 0 {
		t.Errorf("cart cleared despite rejected order")
	}
}

func TestCreateRejectsEmptyItems(t *testing.T) {
	t.Parallel()

	svc, _, _ := newOrderFixture(t)
	input := validInput()
	input.Items = nil
	input.Total = decimal.Zero

	_, err := svc.Create(context.Background(), uuid.New(), input)
	if errors.CodeOf(err) != errors.CodeValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestCreateAddressGating(t *testing.T) {
	t.Parallel()

	svc, _, _ := newOrderFixture(t)

	// Postal code and country never gate submission.
	input := validInput()
	input.ShippingAddress.PostalCode = ""
	input.ShippingAddress.Country = ""
	if _, err := svc.Create(context.Background(), uuid.New(), input); err != nil {
		t.Fatalf("Create without postal code and country: %v", err)
	}

	for _, mutate := range []func(*types.ShippingAddress){
		func(a *types.ShippingAddress) { a.Name = "" },
		func(a *types.ShippingAddress) { a.Address = "  " },
		func(a *types.ShippingAddress) { a.City = "" },
	} {
		input := validInput()
		mutate(&input.ShippingAddress)
		_, err := svc.Create(context.Background(), uuid.New(), input)
		if errors.CodeOf(err) != errors.CodeValidation {
			t.Errorf("err = %v, want validation error for missing gated field", err)
		}
	}
}

func TestCreateRejectsUnknownPaymentMethod(t *testing.T) {
	t.Parallel()

	svc, _, _ := newOrderFixture(t)
	input := validInput()
	input.PaymentMethod = "barter"

	_, err := svc.Create(context.Background(), uuid.New(), input)
	if errors.CodeOf(err) != errors.CodeValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestCryptoTxHashSerializesAsNull(t *testing.T) {
	t.Parallel()

	svc, _, _ := newOrderFixture(t)
	dto, err := svc.Create(context.Background(), uuid.New(), validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	raw, err := json.Marshal(dto)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"crypto_tx_hash":null`) {
		t.Errorf("payload = %s, want crypto_tx_hash rendered as null", raw)
	}
}

func TestListNewestFirstAndGet(t *testing.T) {
	t.Parallel()

	svc, _, _ := newOrderFixture(t)
	userID := uuid.New()

	first, err := svc.Create(context.Background(), userID, validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := svc.Create(context.Background(), userID, validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	listed, err := svc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("orders = %d, want 2", len(listed))
	}
	if listed[0].ID != second.ID || listed[1].ID != first.ID {
		t.Errorf("order of orders = [%s %s], want newest first", listed[0].ID, listed[1].ID)
	}

	got, err := svc.Get(context.Background(), userID, uuid.MustParse(first.ID))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != first.ID {
		t.Errorf("got order %s, want %s", got.ID, first.ID)
	}

	if _, err := svc.Get(context.Background(), uuid.New(), uuid.MustParse(first.ID)); errors.CodeOf(err) != errors.CodeNotFound {
		t.Errorf("cross-user Get err = %v, want not-found", err)
	}
}

func ptr(s string) *string { return &s }
