package storefront

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

// cartClient is the slice of the collaborator the cart manager needs.
type cartClient interface {
	Authenticated() bool
	FetchCart(ctx context.Context) (Cart, error)
	AddCartItem(ctx context.Context, req AddItemRequest) error
	RemoveCartItem(ctx context.Context, productID string) error
}

// CartManager owns the view's copy of the authoritative cart. Every
// mutation goes to the collaborator and is followed by a re-fetch; the
// manager never merges locally, so it cannot disagree with the server
// about whether an add merged into an existing line.
type CartManager struct {
	client cartClient

	mu   sync.Mutex
	seq  uint64
	cart Cart
}

// NewCartManager builds a cart view backed by the collaborator.
func NewCartManager(client cartClient) (*CartManager, error) {
	if client == nil {
		return nil, newError(KindValidation, "cart client is required")
	}
	return &CartManager{client: client}, nil
}

// Cart returns the last fetched authoritative cart.
func (m *CartManager) Cart() Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart
}

// Refresh re-reads the authoritative cart. An unauthenticated session
// reads as an empty cart, not an error.
func (m *CartManager) Refresh(ctx context.Context) (Cart, error) {
	if !m.client.Authenticated() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.cart = Cart{Items: []CartLineItem{}}
		return m.cart, nil
	}
	return m.fetch(ctx)
}

// AddItem merges quantity of product into the cart. The collaborator
// decides whether to merge into an existing line or append; the result
// rendered here is always the post-mutation re-fetch.
func (m *CartManager) AddItem(ctx context.Context, product Product, quantity int) (Cart, error) {
	if !m.client.Authenticated() {
		return Cart{}, newError(KindAuthRequired, "sign in to add items to the cart")
	}
	if quantity < 1 {
		return Cart{}, newError(KindValidation, "quantity must be at least 1")
	}
	if product.Stock <= 0 {
		return Cart{}, newError(KindValidation, "product is out of stock")
	}

	err := m.client.AddCartItem(ctx, AddItemRequest{
		ProductID: product.ID,
		Quantity:  quantity,
		Name:      product.Name,
		Price:     product.Price,
		ImageURL:  product.ImageURL,
	})
	if err != nil {
		return Cart{}, err
	}

	return m.fetch(ctx)
}

// RemoveItem drops a product line. Removing a product that is not in the
// cart is not an error from the caller's perspective.
func (m *CartManager) RemoveItem(ctx context.Context, productID string) (Cart, error) {
	if !m.client.Authenticated() {
		return Cart{}, newError(KindAuthRequired, "sign in to modify the cart")
	}

	if err := m.client.RemoveCartItem(ctx, productID); err != nil {
		return Cart{}, err
	}

	return m.fetch(ctx)
}

// fetch issues an authoritative read and applies it only if no newer
// fetch started in the meantime, so a late response from a superseded
// read never overwrites a later one.
func (m *CartManager) fetch(ctx context.Context) (Cart, error) {
	m.mu.Lock()
	m.seq++
	token := m.seq
	m.mu.Unlock()

	cart, err := m.client.FetchCart(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		return Cart{}, wrapError(KindNetwork, err, "refresh cart")
	}
	if token != m.seq {
		// Superseded; return the newer state already applied.
		return m.cart, nil
	}
	m.cart = cart
	return cart, nil
}

// ComputeSubtotal sums price times quantity over the cart's own line
// items. It only ever uses the denormalized per-item price, never a
// live catalog price, and performs no I/O.
func ComputeSubtotal(cart Cart) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range cart.Items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal
}

// ClampQuantity steps a detail-view quantity into [1, stock]. Stepping
// below 1 sticks at 1; stepping above the stock ceiling sticks at the
// ceiling.
func ClampQuantity(quantity, stock int) int {
	if stock < 1 {
		return 1
	}
	if quantity < 1 {
		return 1
	}
	if quantity > stock {
		return stock
	}
	return quantity
}

// CanAddToCart reports whether the add-to-cart action is available at
// all for a product. Zero stock disables it regardless of quantity.
func CanAddToCart(product Product) bool {
	return product.Stock > 0
}
