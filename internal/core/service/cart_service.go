package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/thedeposit/storefront-client/internal/api/metrics"
	"github.com/thedeposit/storefront-client/internal/core/domain"
	"github.com/thedeposit/storefront-client/internal/core/ports"
)

// CartService holds the authoritative cart snapshot and coordinates line
// mutations against the backend.
//
// Two rules keep the snapshot consistent without any merge logic:
//   - The snapshot is only ever replaced wholesale with a *successful*
//     server response. No local deltas, no recomputed totals.
//   - Mutations are tracked per line, not globally: while one line has a
//     call in flight a second mutation on that line fails fast with
//     domain.ErrItemBusy, but other lines remain independently operable.
type CartService struct {
	gateway ports.BackendGateway
	session ports.SessionService
	logger  zerolog.Logger

	mu       sync.Mutex
	snapshot *domain.Cart
	busy     map[int64]struct{}
}

func NewCartService(gateway ports.BackendGateway, session ports.SessionService, logger zerolog.Logger) *CartService {
	return &CartService{
		gateway: gateway,
		session: session,
		logger:  logger,
		busy:    make(map[int64]struct{}),
	}
}

// Fetch replaces the snapshot with the server's current cart. When the
// session is unauthenticated the snapshot is set to nil without a network
// call. On failure the snapshot is nil and the error is returned; callers
// retry by calling Fetch again — there is no automatic retry or backoff.
func (s *CartService) Fetch(ctx context.Context) error {
	if !s.session.IsAuthenticated() {
		s.replace(nil)
		return nil
	}

	cart, err := s.gateway.FetchCart(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("cart fetch failed")
		s.replace(nil)
		return err
	}

	s.replace(cart)
	return nil
}

// AddItem adds a new line to the cart and replaces the snapshot with the
// returned cart. Requires an authenticated session. Adds are not tracked in
// the busy set: the line has no identity until the server responds.
func (s *CartService) AddItem(ctx context.Context, input ports.CartItemInput) error {
	if !s.session.IsAuthenticated() {
		return domain.ErrAuthRequired
	}

	cart, err := s.gateway.AddItem(ctx, input)
	if err != nil {
		metrics.CartMutationsTotal.WithLabelValues("add", "error").Inc()
		return err
	}

	s.replace(cart)
	metrics.CartMutationsTotal.WithLabelValues("add", "success").Inc()
	s.logger.Debug().Int64("presentation_id", input.PresentationID).Msg("cart line added")
	return nil
}

// UpdateItem partially updates a line. A requested quantity below 1 is a
// removal: zero or negative quantities are never sent to the server as an
// update.
func (s *CartService) UpdateItem(ctx context.Context, itemID int64, update ports.CartItemUpdate) error {
	if update.Quantity != nil && update.Quantity.LessThan(decimal.NewFromInt(1)) {
		return s.RemoveItem(ctx, itemID)
	}

	if err := s.beginLine(itemID); err != nil {
		metrics.CartMutationsTotal.WithLabelValues("update", "busy").Inc()
		return err
	}
	defer s.endLine(itemID)

	cart, err := s.gateway.UpdateItem(ctx, itemID, update)
	if err != nil {
		metrics.CartMutationsTotal.WithLabelValues("update", "error").Inc()
		return err
	}

	s.replace(cart)
	metrics.CartMutationsTotal.WithLabelValues("update", "success").Inc()
	s.logger.Debug().Int64("item_id", itemID).Msg("cart line updated")
	return nil
}

// RemoveItem deletes a line, then re-fetches the full cart. The remove
// endpoint acknowledges only — it does not return a snapshot — so the
// extra round trip is required to keep local state consistent.
func (s *CartService) RemoveItem(ctx context.Context, itemID int64) error {
	if err := s.beginLine(itemID); err != nil {
		metrics.CartMutationsTotal.WithLabelValues("remove", "busy").Inc()
		return err
	}
	defer s.endLine(itemID)

	if err := s.gateway.RemoveItem(ctx, itemID); err != nil {
		metrics.CartMutationsTotal.WithLabelValues("remove", "error").Inc()
		return err
	}

	if err := s.Fetch(ctx); err != nil {
		metrics.CartMutationsTotal.WithLabelValues("remove", "error").Inc()
		return err
	}

	metrics.CartMutationsTotal.WithLabelValues("remove", "success").Inc()
	s.logger.Debug().Int64("item_id", itemID).Msg("cart line removed")
	return nil
}

// Clear empties the cart remotely, then sets the local snapshot to nil
// directly: empty is already known, no re-fetch needed.
func (s *CartService) Clear(ctx context.Context) error {
	if err := s.gateway.ClearCart(ctx); err != nil {
		metrics.CartMutationsTotal.WithLabelValues("clear", "error").Inc()
		return err
	}

	s.replace(nil)
	metrics.CartMutationsTotal.WithLabelValues("clear", "success").Inc()
	s.logger.Debug().Msg("cart cleared")
	return nil
}

// Discard drops the local snapshot without a network call. Used after a
// successful checkout conversion, when the server-side cart is gone.
func (s *CartService) Discard() {
	s.replace(nil)
}

// Cart returns a copy of the current snapshot, or nil when none is held.
func (s *CartService) Cart() *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.Clone()
}

// ItemCount sums the quantities of the current snapshot. Recomputed on
// every call, never cached.
func (s *CartService) ItemCount() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.ItemCount()
}

// Subtotal sums the server-computed line subtotals of the current
// snapshot. Recomputed on every call, never cached.
func (s *CartService) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.Subtotal()
}

// ItemBusy reports whether the given line has a mutation in flight.
func (s *CartService) ItemBusy(itemID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, busy := s.busy[itemID]
	return busy
}

// replace installs a new snapshot wholesale.
func (s *CartService) replace(cart *domain.Cart) {
	s.mu.Lock()
	s.snapshot = cart
	s.mu.Unlock()
}

// beginLine marks a line busy for the duration of its remote call. The
// mutex is not held across the call itself, so mutations on other lines
// proceed concurrently.
func (s *CartService) beginLine(itemID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.busy[itemID]; busy {
		return domain.ErrItemBusy
	}
	s.busy[itemID] = struct{}{}
	metrics.CartLinesBusy.Inc()
	return nil
}

func (s *CartService) endLine(itemID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.busy, itemID)
	metrics.CartLinesBusy.Dec()
}
