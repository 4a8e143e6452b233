package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cryptogear/backend/pkg/db/models"
)

// ProductDTO is the wire representation of a catalog product.
type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CryptoPrice decimal.Decimal `json:"crypto_price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url"`
	Stock       int             `json:"stock"`
	Features    []string        `json:"features"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewProductDTO maps the persisted product onto its wire shape.
func NewProductDTO(product *models.Product) ProductDTO {
	features := make([]string, len(product.Features))
	copy(features, product.Features)

	return ProductDTO{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		CryptoPrice: product.CryptoPrice,
		Category:    product.Category.String(),
		ImageURL:    product.ImageURL,
		Stock:       product.Stock,
		Features:    features,
		CreatedAt:   product.CreatedAt,
	}
}

// NewProductDTOs maps a product slice onto wire shapes, preserving order.
func NewProductDTOs(products []models.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, NewProductDTO(&products[i]))
	}
	return dtos
}
