package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/cryptogear/backend/pkg/enums"
)

// Product is a catalog listing. Price values are fixed-point with two
// decimal places; CryptoPrice is the precomputed USD-equivalent shown for
// crypto checkout, not a live conversion.
type Product struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string                `gorm:"column:name;not null"`
	Description string                `gorm:"column:description;not null"`
	Price       decimal.Decimal       `gorm:"column:price;type:numeric(10,2);not null"`
	CryptoPrice decimal.Decimal       `gorm:"column:crypto_price;type:numeric(10,2);not null"`
	Category    enums.ProductCategory `gorm:"column:category;not null;index"`
	ImageURL    string                `gorm:"column:image_url;not null"`
	Stock       int                   `gorm:"column:stock;not null;default:0"`
	Features    pq.StringArray        `gorm:"column:features;type:text[];not null;default:ARRAY[]::text[]"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
}
