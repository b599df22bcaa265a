package service

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/thedeposit/storefront-client/internal/core/domain"
	"github.com/thedeposit/storefront-client/internal/core/ports"
)

// CheckoutService converts the active cart into a confirmed order in one
// atomic remote call. Local preconditions (fulfillment location selected,
// cart non-empty) are checked before any network round trip.
type CheckoutService struct {
	gateway  ports.BackendGateway
	cart     ports.CartService
	validate *validator.Validate
	logger   zerolog.Logger

	mu    sync.Mutex
	state ports.CheckoutState
}

func NewCheckoutService(gateway ports.BackendGateway, cart ports.CartService, logger zerolog.Logger) *CheckoutService {
	return &CheckoutService{
		gateway:  gateway,
		cart:     cart,
		validate: validator.New(),
		logger:   logger,
		state:    ports.CheckoutReviewing,
	}
}

// Confirm issues the one-shot confirm call. On success the server has
// atomically converted the cart, so the local snapshot is discarded and
// the state becomes confirmed (terminal). On failure the server's message
// is surfaced verbatim and the cart is left untouched: the user can adjust
// and retry from the reviewing state.
func (s *CheckoutService) Confirm(ctx context.Context, input ports.ConfirmInput) (*domain.OrderConfirmation, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, domain.NewValidationError("a fulfillment location must be selected")
	}

	cart := s.cart.Cart()
	if cart == nil || len(cart.Items) == 0 {
		return nil, domain.NewValidationError("cart is empty")
	}

	if err := s.begin(); err != nil {
		return nil, err
	}

	order, err := s.gateway.ConfirmCart(ctx, input)
	if err != nil {
		s.setState(ports.CheckoutReviewing)
		s.logger.Warn().Err(err).Msg("cart confirmation failed")
		return nil, err
	}

	s.cart.Discard()
	s.setState(ports.CheckoutConfirmed)
	s.logger.Info().
		Int64("order_id", order.OrderID).
		Str("total_amount", order.TotalAmount.StringFixed(2)).
		Msg("cart converted to order")
	return order, nil
}

func (s *CheckoutService) State() ports.CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *CheckoutService) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == ports.CheckoutConfirming {
		return domain.NewValidationError("a confirmation is already in progress")
	}
	s.state = ports.CheckoutConfirming
	return nil
}

func (s *CheckoutService) setState(state ports.CheckoutState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
