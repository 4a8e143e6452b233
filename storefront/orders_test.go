package storefront

import (
	"context"
	"testing"
)

type stubOrderLister struct {
	authed bool
	orders []Order
	err    error
	calls  int
}

func (s *stubOrderLister) Authenticated() bool { return s.authed }

func (s *stubOrderLister) ListOrders(_ context.Context) ([]Order, error) {
	s.calls++
	return s.orders, s.err
}

func TestOrderHistoryRequiresAuthentication(t *testing.T) {
	t.Parallel()

	stub := &stubOrderLister{authed: false}
	ledger, err := NewOrderLedger(stub)
	if err != nil {
		t.Fatalf("NewOrderLedger: %v", err)
	}

	_, err = ledger.List(context.Background())
	if !IsAuthRequired(err) {
		t.Fatalf("kind = %v, want auth required", KindOf(err))
	}
	if stub.calls != 0 {
		t.Error("unauthenticated list reached the network")
	}
}

func TestOrderHistoryEmptyIsNotAnError(t *testing.T) {
	t.Parallel()

	ledger, _ := NewOrderLedger(&stubOrderLister{authed: true})
	orders, err := ledger.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if orders == nil || len(orders) != 0 {
		t.Errorf("orders = %v, want empty non-nil slice", orders)
	}
}

func TestOrderHistoryPassesThroughEntries(t *testing.T) {
	t.Parallel()

	ledger, _ := NewOrderLedger(&stubOrderLister{authed: true, orders: []Order{{ID: "o2"}, {ID: "o1"}}})
	orders, err := ledger.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(orders) != 2 || orders[0].ID != "o2" {
		t.Errorf("orders = %v, want collaborator order preserved", orders)
	}
}
