package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/thedeposit/storefront-client/internal/core/domain"
)

// CartService holds the authoritative cart snapshot and coordinates line
// mutations against the backend. The snapshot is only ever replaced
// wholesale with what the server returned; no local deltas are applied to
// quantities or totals.
type CartService interface {
	// Fetch replaces the snapshot with the server's current cart. When the
	// session is unauthenticated the snapshot is set to nil and no network
	// call is made. On failure the snapshot is nil; callers retry by
	// calling Fetch again.
	Fetch(ctx context.Context) error

	// AddItem adds a new line and replaces the snapshot with the response.
	AddItem(ctx context.Context, input CartItemInput) error
	// UpdateItem partially updates a line. A requested quantity below 1 is
	// translated into RemoveItem and never sent as an update.
	UpdateItem(ctx context.Context, itemID int64, update CartItemUpdate) error
	// RemoveItem deletes a line, then re-fetches the full cart. The remove
	// endpoint acknowledges only, so the extra round trip is required.
	RemoveItem(ctx context.Context, itemID int64) error
	// Clear empties the cart remotely and drops the local snapshot.
	Clear(ctx context.Context) error
	// Discard drops the local snapshot without any network call. Used after
	// checkout conversion, when the server-side cart no longer exists.
	Discard()

	// Cart returns a copy of the current snapshot, or nil when none.
	Cart() *domain.Cart
	// ItemCount and Subtotal are recomputed from the current snapshot on
	// every call; they are never cached.
	ItemCount() decimal.Decimal
	Subtotal() decimal.Decimal
	// ItemBusy reports whether the given line has a mutation in flight.
	ItemBusy(itemID int64) bool
}
