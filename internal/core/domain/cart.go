package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartStatus represents the lifecycle state of a cart.
type CartStatus string

const (
	CartStatusActive    CartStatus = "active"
	CartStatusConverted CartStatus = "converted"
	CartStatusCancelled CartStatus = "cancelled"
)

// CartItem is one product-presentation line within a cart. Quantity is
// decimal-capable because units may be fractional (e.g. 1.5 kg). UnitPrice
// and LineSubtotal are computed by the server and carried as opaque display
// values; the client never derives LineSubtotal from Quantity × UnitPrice.
type CartItem struct {
	ID             int64           `json:"id"`
	PresentationID int64           `json:"presentation_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	LineSubtotal   decimal.Decimal `json:"line_subtotal"`
	Note           string          `json:"note,omitempty"`
}

// Cart is the server-authoritative snapshot of a customer's open cart.
// The client never constructs one: the server creates it implicitly on the
// first item add and every mutation returns a fresh snapshot.
type Cart struct {
	ID         int64      `json:"id"`
	CustomerID int64      `json:"customer_id"`
	Status     CartStatus `json:"status"`
	Note       string     `json:"note,omitempty"`
	Items      []CartItem `json:"items"`
	CreatedAt  time.Time  `json:"created_at,omitempty"`
	UpdatedAt  time.Time  `json:"updated_at,omitempty"`
}

// ItemCount sums the item quantities of the snapshot. Recomputed on every
// call so it can never go stale relative to the snapshot. Nil-safe.
func (c *Cart) ItemCount() decimal.Decimal {
	total := decimal.Zero
	if c == nil {
		return total
	}
	for _, item := range c.Items {
		total = total.Add(item.Quantity)
	}
	return total
}

// Subtotal sums the server-computed line subtotals of the snapshot.
// Recomputed on every call. Nil-safe.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	if c == nil {
		return total
	}
	for _, item := range c.Items {
		total = total.Add(item.LineSubtotal)
	}
	return total
}

// Item returns the line with the given id, or nil if not present.
func (c *Cart) Item(itemID int64) *CartItem {
	if c == nil {
		return nil
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}

// Clone returns a copy of the snapshot with its own item slice, so callers
// can hold it without aliasing the store's current snapshot.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Items = make([]CartItem, len(c.Items))
	copy(clone.Items, c.Items)
	return &clone
}
