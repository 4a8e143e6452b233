package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLineItem snapshots one cart line at submission time. Price is the
// price the buyer saw, frozen forever.
type OrderLineItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	Name      string          `gorm:"column:name;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	ImageURL  string          `gorm:"column:image_url;not null"`
}
