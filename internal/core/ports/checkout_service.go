package ports

import (
	"context"

	"github.com/thedeposit/storefront-client/internal/core/domain"
)

// CheckoutState is the checkout lifecycle state.
type CheckoutState string

const (
	CheckoutReviewing  CheckoutState = "reviewing"
	CheckoutConfirming CheckoutState = "confirming"
	CheckoutConfirmed  CheckoutState = "confirmed"
)

// CheckoutService converts the active cart into a confirmed order in one
// atomic remote call.
type CheckoutService interface {
	// Confirm validates the input locally (fulfillment location selected,
	// cart non-empty) and issues the confirm call. On success the local
	// cart snapshot is discarded. On failure the server's message is
	// surfaced verbatim and the cart is left untouched so the user can
	// adjust and retry.
	Confirm(ctx context.Context, input ConfirmInput) (*domain.OrderConfirmation, error)

	State() CheckoutState
}
