package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart is the single server-authoritative cart for one user, created lazily
// on first use and emptied when its contents become an order.
type Cart struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
