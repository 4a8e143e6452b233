package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cryptogear/backend/pkg/db/models"
	"github.com/cryptogear/backend/pkg/types"
)

// LineItemDTO is the wire shape of one order line.
type LineItemDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image_url"`
}

// DTO is the wire shape of an order. CryptoTxHash serializes as null for
// card orders, never as an empty string.
type DTO struct {
	ID              string                `json:"id"`
	UserID          string                `json:"user_id"`
	Items           []LineItemDTO         `json:"items"`
	Total           decimal.Decimal       `json:"total"`
	PaymentMethod   string                `json:"payment_method"`
	PaymentStatus   string                `json:"payment_status"`
	OrderStatus     string                `json:"order_status"`
	CryptoTxHash    *string               `json:"crypto_tx_hash"`
	ShippingAddress types.ShippingAddress `json:"shipping_address"`
	CreatedAt       time.Time             `json:"created_at"`
}

// NewDTO maps an order model onto its wire shape.
func NewDTO(order *models.Order) DTO {
	items := make([]LineItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, LineItemDTO{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			ImageURL:  item.ImageURL,
		})
	}
	return DTO{
		ID:              order.ID.String(),
		UserID:          order.UserID.String(),
		Items:           items,
		Total:           order.Total,
		PaymentMethod:   order.PaymentMethod.String(),
		PaymentStatus:   order.PaymentStatus.String(),
		OrderStatus:     order.OrderStatus.String(),
		CryptoTxHash:    order.CryptoTxHash,
		ShippingAddress: order.ShippingAddress,
		CreatedAt:       order.CreatedAt,
	}
}

// NewDTOs maps a slice of order models.
func NewDTOs(orders []models.Order) []DTO {
	dtos := make([]DTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, NewDTO(&orders[i]))
	}
	return dtos
}
