package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cryptogear/backend/pkg/enums"
	"github.com/cryptogear/backend/pkg/types"
)

// Order is an immutable record of a completed checkout. Total always equals
// the sum of its own line-item prices times quantities; it is never
// recomputed from live catalog prices.
type Order struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID             `gorm:"column:user_id;type:uuid;not null;index"`
	Items           []OrderLineItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Total           decimal.Decimal       `gorm:"column:total;type:numeric(10,2);not null"`
	PaymentMethod   enums.PaymentMethod   `gorm:"column:payment_method;not null"`
	PaymentStatus   enums.PaymentStatus   `gorm:"column:payment_status;not null"`
	OrderStatus     enums.OrderStatus     `gorm:"column:order_status;not null"`
	CryptoTxHash    *string               `gorm:"column:crypto_tx_hash"`
	ShippingAddress types.ShippingAddress `gorm:"column:shipping_address;type:jsonb;serializer:json"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
}
