package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/thedeposit/storefront-client/internal/core/domain"
)

// Credentials identify a user at login time.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration carries the data needed to create a new customer account.
type Registration struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthResult is returned by the login and registration endpoints.
type AuthResult struct {
	Token string
	User  *domain.User
}

// CartItemInput adds a new line to the cart.
type CartItemInput struct {
	PresentationID int64           `json:"presentation_id" validate:"required,gt=0"`
	Quantity       decimal.Decimal `json:"quantity"`
	Note           string          `json:"note,omitempty"`
}

// CartItemUpdate is a partial update of an existing line. Nil fields are
// left untouched by the server.
type CartItemUpdate struct {
	Quantity *decimal.Decimal `json:"quantity,omitempty"`
	Note     *string          `json:"note,omitempty"`
}

// ConfirmInput converts the active cart into an order at the given
// fulfillment location.
type ConfirmInput struct {
	FulfillmentLocationID int64  `json:"fulfillment_location_id" validate:"required,gt=0"`
	Notes                 string `json:"notes,omitempty"`
}

// BackendGateway is the remote API boundary. Every cart mutation except
// RemoveItem and ClearCart returns the entire updated cart snapshot; the
// remove and clear endpoints acknowledge only, so callers re-synchronize
// (or reset) local state themselves.
type BackendGateway interface {
	Login(ctx context.Context, creds Credentials) (*AuthResult, error)
	Register(ctx context.Context, reg Registration) (*AuthResult, error)
	Profile(ctx context.Context) (*domain.User, error)

	FetchCart(ctx context.Context) (*domain.Cart, error)
	AddItem(ctx context.Context, input CartItemInput) (*domain.Cart, error)
	UpdateItem(ctx context.Context, itemID int64, update CartItemUpdate) (*domain.Cart, error)
	RemoveItem(ctx context.Context, itemID int64) error
	ClearCart(ctx context.Context) error
	ConfirmCart(ctx context.Context, input ConfirmInput) (*domain.OrderConfirmation, error)
}
