package rest

import (
	"github.com/shopspring/decimal"

	"github.com/thedeposit/storefront-client/internal/core/domain"
)

// Wire envelopes for the storefront backend. Errors always arrive in the
// canonical {"error": "<message>"} envelope.

type errorResponse struct {
	Error string `json:"error"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type profileResponse struct {
	User *domain.User `json:"user"`
}

// cartResponse is returned by the add and update endpoints: every
// successful mutation carries the entire updated cart snapshot.
type cartResponse struct {
	Message string       `json:"message,omitempty"`
	Cart    *domain.Cart `json:"cart"`
}

// ackResponse is returned by the remove and clear endpoints, which
// acknowledge without a snapshot.
type ackResponse struct {
	Message string `json:"message,omitempty"`
}

type confirmResponse struct {
	Message     string          `json:"message,omitempty"`
	OrderID     int64           `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
