package cart

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cryptogear/backend/pkg/db/models"
)

// ItemDTO is the wire shape of a single cart line.
type ItemDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image_url"`
}

// DTO is the wire shape of a cart.
type DTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Items     []ItemDTO `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDTO maps a cart model onto its wire shape. Items is always a
// slice, never nil, so an empty cart serializes as [].
func NewDTO(cart *models.Cart) DTO {
	items := make([]ItemDTO, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, ItemDTO{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			ImageURL:  item.ImageURL,
		})
	}
	return DTO{
		ID:        cart.ID.String(),
		UserID:    cart.UserID.String(),
		Items:     items,
		UpdatedAt: cart.UpdatedAt,
	}
}
