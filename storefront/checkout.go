package storefront

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// CheckoutState names the step a checkout flow is on.
type CheckoutState string

const (
	StateCollectingAddress CheckoutState = "collecting-address"
	StateCollectingPayment CheckoutState = "collecting-payment"
	StateSubmitting        CheckoutState = "submitting"
	StateSubmitted         CheckoutState = "submitted"
	StateFailed            CheckoutState = "failed"
)

// ErrSubmitInFlight is returned when Submit is triggered while an
// earlier submission is still on the wire. The caller should ignore it;
// exactly one order is created.
var ErrSubmitInFlight = newError(KindValidation, "order submission already in progress")

// orderCreator is the slice of the collaborator a checkout needs.
type orderCreator interface {
	CreateOrder(ctx context.Context, req OrderRequest) (Order, error)
}

// Checkout walks a single cart through address entry, payment entry and
// submission. A Checkout is good for one order; build a fresh one per
// flow.
type Checkout struct {
	client orderCreator

	mu       sync.Mutex
	state    CheckoutState
	items    []CartLineItem
	total    decimal.Decimal
	address  ShippingAddress
	method   PaymentMethod
	txHash   string
	order    Order
	inFlight bool
}

// NewCheckout enters the flow for a cart. An empty cart cannot enter
// checkout.
func NewCheckout(client orderCreator, cart Cart) (*Checkout, error) {
	if client == nil {
		return nil, newError(KindValidation, "order client is required")
	}
	if len(cart.Items) == 0 {
		return nil, newError(KindValidation, "cart is empty")
	}

	items := make([]CartLineItem, len(cart.Items))
	copy(items, cart.Items)

	return &Checkout{
		client: client,
		state:  StateCollectingAddress,
		items:  items,
		total:  ComputeSubtotal(cart),
		method: PaymentCard,
	}, nil
}

// State reports the current step.
func (c *Checkout) State() CheckoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Order returns the created order once the flow has reached submitted.
func (c *Checkout) Order() (Order, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order, c.state == StateSubmitted
}

// SetAddress records the shipping address fields as entered so far. It
// never rejects; gating happens on ContinueToPayment.
func (c *Checkout) SetAddress(addr ShippingAddress) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.address = addr
}

// Address returns the address as entered so far.
func (c *Checkout) Address() ShippingAddress {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.address
}

// ContinueToPayment advances from address entry to payment entry. Name,
// street address and city must be present; postal code and country are
// collected but do not gate the transition.
func (c *Checkout) ContinueToPayment() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateCollectingAddress && c.state != StateFailed {
		return newError(KindValidation, "checkout is not collecting an address")
	}
	if missing := missingAddressFields(c.address); len(missing) > 0 {
		return newError(KindValidation, "missing required fields: "+strings.Join(missing, ", "))
	}
	c.state = StateCollectingPayment
	return nil
}

func missingAddressFields(addr ShippingAddress) []string {
	var missing []string
	if strings.TrimSpace(addr.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(addr.Address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(addr.City) == "" {
		missing = append(missing, "city")
	}
	return missing
}

// SetPaymentMethod selects card or crypto payment.
func (c *Checkout) SetPaymentMethod(method PaymentMethod) error {
	if method != PaymentCard && method != PaymentCrypto {
		return newError(KindValidation, "unknown payment method")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.method = method
	return nil
}

// SetTransactionHash records the crypto transaction hash as entered.
// The hash is opaque; only presence is checked, at submit time.
func (c *Checkout) SetTransactionHash(hash string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.txHash = hash
}

// Submit places the order. At most one submission is ever in flight;
// a second trigger while the first is on the wire returns
// ErrSubmitInFlight and sends nothing. On failure the flow moves to
// failed with everything entered so far preserved, so the buyer can
// retry without retyping.
func (c *Checkout) Submit(ctx context.Context) (Order, error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return Order{}, ErrSubmitInFlight
	}
	switch c.state {
	case StateCollectingPayment, StateFailed:
	case StateSubmitted:
		c.mu.Unlock()
		return Order{}, newError(KindValidation, "order already submitted")
	default:
		c.mu.Unlock()
		return Order{}, newError(KindValidation, "checkout is not ready to submit")
	}

	var txHash *string
	if c.method == PaymentCrypto {
		trimmed := strings.TrimSpace(c.txHash)
		if trimmed == "" {
			c.mu.Unlock()
			return Order{}, newError(KindValidation, "transaction hash is required for crypto payment")
		}
		txHash = &trimmed
	}

	req := OrderRequest{
		Items:           make([]OrderLineItem, 0, len(c.items)),
		Total:           c.total,
		PaymentMethod:   c.method,
		ShippingAddress: c.address,
		CryptoTxHash:    txHash,
	}
	for _, item := range c.items {
		req.Items = append(req.Items, OrderLineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	c.inFlight = true
	c.state = StateSubmitting
	c.mu.Unlock()

	order, err := c.client.CreateOrder(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if err != nil {
		c.state = StateFailed
		return Order{}, err
	}
	c.state = StateSubmitted
	c.order = order
	return order, nil
}
