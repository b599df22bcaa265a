package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestCart_Aggregates(t *testing.T) {
	cart := &Cart{
		ID:     1,
		Status: CartStatusActive,
		Items: []CartItem{
			{ID: 1, Quantity: dec(t, "2"), LineSubtotal: dec(t, "20.00")},
			{ID: 2, Quantity: dec(t, "1.5"), LineSubtotal: dec(t, "15.00")},
			{ID: 3, Quantity: dec(t, "3"), LineSubtotal: dec(t, "9.00")},
		},
	}

	if got := cart.ItemCount(); !got.Equal(dec(t, "6.5")) {
		t.Fatalf("expected item count 6.5, got %s", got)
	}
	if got := cart.Subtotal(); !got.Equal(dec(t, "44.00")) {
		t.Fatalf("expected subtotal 44.00, got %s", got)
	}
}

func TestCart_AggregatesNilAndEmpty(t *testing.T) {
	var cart *Cart
	if !cart.ItemCount().IsZero() || !cart.Subtotal().IsZero() {
		t.Fatalf("nil cart must aggregate to zero")
	}

	empty := &Cart{Status: CartStatusActive}
	if !empty.ItemCount().IsZero() || !empty.Subtotal().IsZero() {
		t.Fatalf("empty cart must aggregate to zero")
	}
}

func TestCart_Item(t *testing.T) {
	cart := &Cart{Items: []CartItem{{ID: 7, Quantity: dec(t, "1")}}}

	if item := cart.Item(7); item == nil || item.ID != 7 {
		t.Fatalf("expected item 7, got %+v", item)
	}
	if item := cart.Item(8); item != nil {
		t.Fatalf("expected nil for unknown item, got %+v", item)
	}

	var nilCart *Cart
	if item := nilCart.Item(7); item != nil {
		t.Fatalf("expected nil from nil cart, got %+v", item)
	}
}

func TestCart_CloneIsIndependent(t *testing.T) {
	cart := &Cart{Items: []CartItem{{ID: 1, Quantity: dec(t, "2")}}}

	clone := cart.Clone()
	clone.Items[0].Quantity = dec(t, "99")

	if !cart.Items[0].Quantity.Equal(dec(t, "2")) {
		t.Fatalf("mutating a clone must not affect the original")
	}

	var nilCart *Cart
	if nilCart.Clone() != nil {
		t.Fatalf("clone of nil must be nil")
	}
}
