package domain

import "github.com/shopspring/decimal"

// OrderConfirmation is what the server returns when an active cart is
// atomically converted into a confirmed order. TotalAmount is final and
// server-computed; the cart is unusable afterwards.
type OrderConfirmation struct {
	OrderID     int64           `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
