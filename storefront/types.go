package storefront

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the catalog collaborator's product record. Immutable from
// this side; the authoritative copy lives with the collaborator.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CryptoPrice decimal.Decimal `json:"crypto_price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url"`
	Stock       int             `json:"stock"`
	Features    []string        `json:"features"`
}

// CartLineItem is one product/quantity pair, carrying the denormalized
// name/price/image snapshot captured at add time.
type CartLineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image_url"`
}

// Cart is the server-authoritative selection set for one user.
type Cart struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Items     []CartLineItem `json:"items"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ShippingAddress is the checkout destination form.
type ShippingAddress struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// PaymentMethod selects how an order settles.
type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentCrypto PaymentMethod = "crypto"
)

// OrderLineItem snapshots one cart line at submission time.
type OrderLineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image_url"`
}

// Order is one immutable ledger entry. PaymentStatus and OrderStatus are
// independent lifecycles and may disagree.
type Order struct {
	ID              string          `json:"id"`
	Items           []OrderLineItem `json:"items"`
	Total           decimal.Decimal `json:"total"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentStatus   string          `json:"payment_status"`
	OrderStatus     string          `json:"order_status"`
	CryptoTxHash    *string         `json:"crypto_tx_hash"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	CreatedAt       time.Time       `json:"created_at"`
}

// OrderRequest is the checkout submission payload. CryptoTxHash is nil
// for card orders; it is never sent as an empty string.
type OrderRequest struct {
	Items           []OrderLineItem `json:"items"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	CryptoTxHash    *string         `json:"crypto_tx_hash"`
}

// AddItemRequest is the cart mutation payload. Name, price and image are
// the add-time display snapshot; the collaborator stores its own
// authoritative copy.
type AddItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url"`
}

// Recommendation is the advisory collaborator's reply: the matched
// products plus the model's own wording.
type Recommendation struct {
	Products    []Product `json:"recommendations"`
	Explanation string    `json:"explanation"`
}
