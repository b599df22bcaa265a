package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/thedeposit/storefront-client/internal/core/domain"
	"github.com/thedeposit/storefront-client/internal/core/ports"
)

// gatewayStub implements ports.BackendGateway with per-operation hooks and
// a recorded call log.
type gatewayStub struct {
	mu    sync.Mutex
	calls []string

	loginFn    func(creds ports.Credentials) (*ports.AuthResult, error)
	registerFn func(reg ports.Registration) (*ports.AuthResult, error)
	profileFn  func() (*domain.User, error)
	fetchFn    func() (*domain.Cart, error)
	addFn      func(input ports.CartItemInput) (*domain.Cart, error)
	updateFn   func(itemID int64, update ports.CartItemUpdate) (*domain.Cart, error)
	removeFn   func(itemID int64) error
	clearFn    func() error
	confirmFn  func(input ports.ConfirmInput) (*domain.OrderConfirmation, error)
}

var errStubUnset = errors.New("stub operation not configured")

func (g *gatewayStub) record(op string) {
	g.mu.Lock()
	g.calls = append(g.calls, op)
	g.mu.Unlock()
}

func (g *gatewayStub) callLog() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

func (g *gatewayStub) Login(_ context.Context, creds ports.Credentials) (*ports.AuthResult, error) {
	g.record("login")
	if g.loginFn == nil {
		return nil, errStubUnset
	}
	return g.loginFn(creds)
}

func (g *gatewayStub) Register(_ context.Context, reg ports.Registration) (*ports.AuthResult, error) {
	g.record("register")
	if g.registerFn == nil {
		return nil, errStubUnset
	}
	return g.registerFn(reg)
}

func (g *gatewayStub) Profile(_ context.Context) (*domain.User, error) {
	g.record("profile")
	if g.profileFn == nil {
		return nil, errStubUnset
	}
	return g.profileFn()
}

func (g *gatewayStub) FetchCart(_ context.Context) (*domain.Cart, error) {
	g.record("fetch_cart")
	if g.fetchFn == nil {
		return nil, errStubUnset
	}
	return g.fetchFn()
}

func (g *gatewayStub) AddItem(_ context.Context, input ports.CartItemInput) (*domain.Cart, error) {
	g.record("add_item")
	if g.addFn == nil {
		return nil, errStubUnset
	}
	return g.addFn(input)
}

func (g *gatewayStub) UpdateItem(_ context.Context, itemID int64, update ports.CartItemUpdate) (*domain.Cart, error) {
	g.record("update_item")
	if g.updateFn == nil {
		return nil, errStubUnset
	}
	return g.updateFn(itemID, update)
}

func (g *gatewayStub) RemoveItem(_ context.Context, itemID int64) error {
	g.record("remove_item")
	if g.removeFn == nil {
		return errStubUnset
	}
	return g.removeFn(itemID)
}

func (g *gatewayStub) ClearCart(_ context.Context) error {
	g.record("clear_cart")
	if g.clearFn == nil {
		return errStubUnset
	}
	return g.clearFn()
}

func (g *gatewayStub) ConfirmCart(_ context.Context, input ports.ConfirmInput) (*domain.OrderConfirmation, error) {
	g.record("confirm_cart")
	if g.confirmFn == nil {
		return nil, errStubUnset
	}
	return g.confirmFn(input)
}

// sessionStub implements ports.SessionService with a fixed state.
type sessionStub struct {
	authenticated bool
	user          *domain.User
}

func (s *sessionStub) Login(context.Context, ports.Credentials) error { return nil }

func (s *sessionStub) Register(context.Context, ports.Registration) error { return nil }

func (s *sessionStub) RefreshProfile(context.Context) error { return nil }

func (s *sessionStub) Logout(context.Context) {}

func (s *sessionStub) IsAuthenticated() bool { return s.authenticated }

func (s *sessionStub) CurrentUser() *domain.User { return s.user }
func (s *sessionStub) State() ports.SessionState {
	if s.authenticated {
		return ports.SessionAuthenticated
	}
	return ports.SessionUnauthenticated
}

// tokenStoreStub is an in-memory token store with optional failure hooks.
type tokenStoreStub struct {
	mu      sync.Mutex
	token   string
	loadErr error
	saveErr error
}

func (s *tokenStoreStub) Save(_ context.Context, token string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *tokenStoreStub) Load(_ context.Context) (string, error) {
	if s.loadErr != nil {
		return "", s.loadErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *tokenStoreStub) Clear(_ context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return nil
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func decPtr(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d := dec(t, s)
	return &d
}
