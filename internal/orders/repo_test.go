package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cryptogear/backend/pkg/db/models"
	"github.com/cryptogear/backend/pkg/enums"
	"github.com/cryptogear/backend/pkg/types"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  total TEXT NOT NULL,
  payment_method TEXT NOT NULL,
  payment_status TEXT NOT NULL,
  order_status TEXT NOT NULL,
  crypto_tx_hash TEXT,
  shipping_address TEXT,
  created_at DATETIME
);`
	lineItems := `
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  name TEXT NOT NULL,
  price TEXT NOT NULL,
  image_url TEXT NOT NULL
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(lineItems).Error)
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, userID uuid.UUID, created time.Time, total string) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:            uuid.New(),
		UserID:        userID,
		Total:         decimal.RequireFromString(total),
		PaymentMethod: enums.PaymentMethodCard,
		PaymentStatus: enums.PaymentStatusCompleted,
		OrderStatus:   enums.OrderStatusProcessing,
		ShippingAddress: types.ShippingAddress{
			Name:    "Ada Shopper",
			Address: "1 Loop Rd",
			City:    "Norman",
		},
		CreatedAt: created,
	}
	require.NoError(t, db.Create(order).Error)

	item := &models.OrderLineItem{
		ID:        uuid.New(),
		OrderID:   order.ID,
		ProductID: uuid.New(),
		Quantity:  2,
		Name:      "NeoPhone X",
		Price:     decimal.RequireFromString("29.99"),
		ImageURL:  "https://img.test/neophone.png",
	}
	require.NoError(t, db.Create(item).Error)
	return order
}

func TestRepositoryListByUserID_newestFirst(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New()
	now := time.Now().UTC()
	older := seedOrder(t, db, userID, now.Add(-time.Hour), "59.98")
	newer := seedOrder(t, db, userID, now, "29.99")
	seedOrder(t, db, uuid.New(), now, "10.00")

	list, err := repo.ListByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
	require.Len(t, list[0].Items, 1)
	assert.Equal(t, "NeoPhone X", list[0].Items[0].Name)
}

func TestRepositoryFindByID_scopedToOwner(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	owner := uuid.New()
	order := seedOrder(t, db, owner, time.Now().UTC(), "59.98")

	found, err := repo.FindByID(context.Background(), owner, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
	assert.True(t, found.Total.Equal(decimal.RequireFromString("59.98")))

	_, err = repo.FindByID(context.Background(), uuid.New(), order.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryCreate_persistsNullTxHash(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New()
	order := &models.Order{
		ID:            uuid.New(),
		UserID:        userID,
		Total:         decimal.RequireFromString("10.00"),
		PaymentMethod: enums.PaymentMethodCard,
		PaymentStatus: enums.PaymentStatusCompleted,
		OrderStatus:   enums.OrderStatusProcessing,
		CreatedAt:     time.Now().UTC(),
	}
	_, err := repo.Create(context.Background(), order)
	require.NoError(t, err)

	found, err := repo.FindByID(context.Background(), userID, order.ID)
	require.NoError(t, err)
	assert.Nil(t, found.CryptoTxHash)
}
