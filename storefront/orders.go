package storefront

import "context"

// orderLister is the slice of the collaborator the ledger needs.
type orderLister interface {
	Authenticated() bool
	ListOrders(ctx context.Context) ([]Order, error)
}

// OrderLedger reads the buyer's order history. Orders are immutable
// from this side; the collaborator owns their status transitions.
type OrderLedger struct {
	client orderLister
}

// NewOrderLedger builds an order history view.
func NewOrderLedger(client orderLister) (*OrderLedger, error) {
	if client == nil {
		return nil, newError(KindValidation, "order client is required")
	}
	return &OrderLedger{client: client}, nil
}

// List returns the buyer's orders, newest first, as the collaborator
// reports them. An unauthenticated session must sign in first.
func (l *OrderLedger) List(ctx context.Context) ([]Order, error) {
	if !l.client.Authenticated() {
		return nil, newError(KindAuthRequired, "sign in to view order history")
	}
	orders, err := l.client.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []Order{}
	}
	return orders, nil
}
