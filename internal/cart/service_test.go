package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cryptogear/backend/pkg/db/models"
	"github.com/cryptogear/backend/pkg/errors"
)

type stubCartRepo struct {
	carts map[uuid.UUID]*models.Cart // keyed by user ID
	items map[uuid.UUID][]*models.CartItem
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{
		carts: map[uuid.UUID]*models.Cart{},
		items: map[uuid.UUID][]*models.CartItem{},
	}
}

func (s *stubCartRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubCartRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, ok := s.carts[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *cart
	copied.Items = nil
	for _, item := range s.items[cart.ID] {
		copied.Items = append(copied.Items, *item)
	}
	return &copied, nil
}

func (s *stubCartRepo) Create(_ context.Context, cart *models.Cart) (*models.Cart, error) {
	cart.ID = uuid.New()
	s.carts[cart.UserID] = cart
	return cart, nil
}

func (s *stubCartRepo) FindItem(_ context.Context, cartID, productID uuid.UUID) (*models.CartItem, error) {
	for _, item := range s.items[cartID] {
		if item.ProductID == productID {
			return item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCartRepo) CreateItem(_ context.Context, item *models.CartItem) error {
	item.ID = uuid.New()
	s.items[item.CartID] = append(s.items[item.CartID], item)
	return nil
}

func (s *stubCartRepo) UpdateItemQuantity(_ context.Context, itemID uuid.UUID, quantity int) error {
	for _, items := range s.items {
		for _, item := range items {
			if item.ID == itemID {
				item.Quantity = quantity
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *stubCartRepo) DeleteItemByProduct(_ context.Context, cartID, productID uuid.UUID) error {
	kept := s.items[cartID][:0]
	for _, item := range s.items[cartID] {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	s.items[cartID] = kept
	return nil
}

func (s *stubCartRepo) DeleteItems(_ context.Context, cartID uuid.UUID) error {
	s.items[cartID] = nil
	return nil
}

type stubProductLoader struct {
	products map[uuid.UUID]*models.Product
}

func (s *stubProductLoader) GetByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	product, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

type passthroughTx struct{}

func (passthroughTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newCartFixture(t *testing.T, products ...*models.Product) (Service, *stubCartRepo) {
	t.Helper()
	repo := newStubCartRepo()
	loader := &stubProductLoader{products: map[uuid.UUID]*models.Product{}}
	for _, p := range products {
		loader.products[p.ID] = p
	}
	svc, err := NewService(repo, loader, passthroughTx{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, repo
}

func newTestProduct(name string, price string, stock int) *models.Product {
	return &models.Product{
		ID:    uuid.New(),
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}
}

func TestGetCreatesEmptyCart(t *testing.T) {
	t.Parallel()

	svc, _ := newCartFixture(t)
	userID := uuid.New()

	dto, err := svc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if dto.UserID != userID.String() {
		t.Errorf("user id = %s, want %s", dto.UserID, userID)
	}
	if dto.Items == nil || len(dto.Items) != 0 {
		t.Errorf("items = %v, want empty non-nil slice", dto.Items)
	}
}

func TestAddItemMergesQuantity(t *testing.T) {
	t.Parallel()

	product := newTestProduct("NeoPhone X", "999.99", 10)
	svc, _ := newCartFixture(t, product)
	userID := uuid.New()
	input := AddItemInput{ProductID: product.ID.String(), Quantity: 2}

	if _, err := svc.AddItem(context.Background(), userID, input); err != nil {
		t.Fatalf("first AddItem: %v", err)
	}
	dto, err := svc.AddItem(context.Background(), userID, input)
	if err != nil {
		t.Fatalf("second AddItem: %v", err)
	}

	if len(dto.Items) != 1 {
		t.Fatalf("items = %d, want 1 merged line", len(dto.Items))
	}
	if dto.Items[0].Quantity != 4 {
		t.Errorf("quantity = %d, want 4", dto.Items[0].Quantity)
	}
}

func TestAddItemRejectsOutOfStock(t *testing.T) {
	t.Parallel()

	product := newTestProduct("Ghost Cam", "449.99", 0)
	svc, _ := newCartFixture(t, product)

	_, err := svc.AddItem(context.Background(), uuid.New(), AddItemInput{
		ProductID: product.ID.String(),
		Quantity:  1,
	})
	if errors.CodeOf(err) != errors.CodeValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestAddItemEnforcesStockCeiling(t *testing.T) {
	t.Parallel()

	product := newTestProduct("MetaGlass Pro", "599.99", 3)
	svc, _ := newCartFixture(t, product)
	userID := uuid.New()

	if _, err := svc.AddItem(context.Background(), userID, AddItemInput{
		ProductID: product.ID.String(), Quantity: 3,
	}); err != nil {
		t.Fatalf("AddItem within stock: %v", err)
	}

	_, err := svc.AddItem(context.Background(), userID, AddItemInput{
		ProductID: product.ID.String(), Quantity: 1,
	})
	if errors.CodeOf(err) != errors.CodeValidation {
		t.Fatalf("err = %v, want validation error when merged quantity exceeds stock", err)
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	t.Parallel()

	svc, _ := newCartFixture(t)
	_, err := svc.AddItem(context.Background(), uuid.New(), AddItemInput{
		ProductID: uuid.New().String(),
		Quantity:  1,
	})
	if errors.CodeOf(err) != errors.CodeNotFound {
		t.Fatalf("err = %v, want not-found error", err)
	}
}

func TestRemoveItemAbsentProductIsNoOp(t *testing.T) {
	t.Parallel()

	product := newTestProduct("HoloLens Ultra", "1299.99", 5)
	svc, _ := newCartFixture(t, product)
	userID := uuid.New()

	if _, err := svc.AddItem(context.Background(), userID, AddItemInput{
		ProductID: product.ID.String(), Quantity: 1,
	}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	dto, err := svc.RemoveItem(context.Background(), userID, uuid.New())
	if err != nil {
		t.Fatalf("RemoveItem of absent product: %v", err)
	}
	if len(dto.Items) != 1 {
		t.Errorf("items = %d, want untouched single line", len(dto.Items))
	}
}

func TestRemoveItemWithoutCart(t *testing.T) {
	t.Parallel()

	svc, _ := newCartFixture(t)
	_, err := svc.RemoveItem(context.Background(), uuid.New(), uuid.New())
	if errors.CodeOf(err) != errors.CodeNotFound {
		t.Fatalf("err = %v, want not-found error", err)
	}
}

func TestClearEmptiesCart(t *testing.T) {
	t.Parallel()

	product := newTestProduct("NeoPhone X", "999.99", 10)
	svc, _ := newCartFixture(t, product)
	userID := uuid.New()

	if _, err := svc.AddItem(context.Background(), userID, AddItemInput{
		ProductID: product.ID.String(), Quantity: 2,
	}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := svc.Clear(context.Background(), userID); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	dto, err := svc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(dto.Items) != 0 {
		t.Errorf("items = %d, want 0 after clear", len(dto.Items))
	}
}

func TestClearWithoutCartIsNoOp(t *testing.T) {
	t.Parallel()

	svc, _ := newCartFixture(t)
	if err := svc.Clear(context.Background(), uuid.New()); err != nil {
		t.Fatalf("Clear without cart: %v", err)
	}
}
