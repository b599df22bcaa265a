package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/thedeposit/storefront-client/internal/core/domain"
	"github.com/thedeposit/storefront-client/internal/core/ports"
)

func testUser() *domain.User {
	return &domain.User{ID: 1, Name: "Alice", Email: "alice@example.com", Role: domain.RoleCustomer, Active: true}
}

func TestSessionService_StartsAuthenticating(t *testing.T) {
	svc := NewSessionService(&gatewayStub{}, &tokenStoreStub{}, zerolog.Nop())

	if got := svc.State(); got != ports.SessionAuthenticating {
		t.Fatalf("expected authenticating, got %s", got)
	}
	if svc.IsAuthenticated() {
		t.Fatalf("must not report authenticated before the first refresh")
	}
}

func TestSessionService_LoginSuccess(t *testing.T) {
	gw := &gatewayStub{
		loginFn: func(creds ports.Credentials) (*ports.AuthResult, error) {
			if creds.Email != "alice@example.com" {
				t.Fatalf("unexpected email %q", creds.Email)
			}
			return &ports.AuthResult{Token: "tok-1", User: testUser()}, nil
		},
	}
	tokens := &tokenStoreStub{}
	svc := NewSessionService(gw, tokens, zerolog.Nop())

	err := svc.Login(context.Background(), ports.Credentials{Email: "alice@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if got := svc.State(); got != ports.SessionAuthenticated {
		t.Fatalf("expected authenticated, got %s", got)
	}
	if token, _ := tokens.Load(context.Background()); token != "tok-1" {
		t.Fatalf("token not persisted, got %q", token)
	}
	if user := svc.CurrentUser(); user == nil || user.ID != 1 {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestSessionService_LoginInvalidCredentials(t *testing.T) {
	// The gateway maps any 401 to ErrAuthRequired; on the login path that
	// means the credentials were rejected.
	gw := &gatewayStub{
		loginFn: func(ports.Credentials) (*ports.AuthResult, error) {
			return nil, domain.ErrAuthRequired
		},
	}
	svc := NewSessionService(gw, &tokenStoreStub{}, zerolog.Nop())

	err := svc.Login(context.Background(), ports.Credentials{Email: "alice@example.com", Password: "wrong"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if svc.IsAuthenticated() {
		t.Fatalf("must not be authenticated after failed login")
	}
}

func TestSessionService_RegisterSuccess(t *testing.T) {
	gw := &gatewayStub{
		registerFn: func(reg ports.Registration) (*ports.AuthResult, error) {
			return &ports.AuthResult{Token: "tok-2", User: testUser()}, nil
		},
	}
	tokens := &tokenStoreStub{}
	svc := NewSessionService(gw, tokens, zerolog.Nop())

	err := svc.Register(context.Background(), ports.Registration{Name: "Alice", Email: "alice@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if !svc.IsAuthenticated() {
		t.Fatalf("expected authenticated after registration")
	}
	if token, _ := tokens.Load(context.Background()); token != "tok-2" {
		t.Fatalf("token not persisted, got %q", token)
	}
}

func TestSessionService_RefreshWithoutToken(t *testing.T) {
	gw := &gatewayStub{}
	svc := NewSessionService(gw, &tokenStoreStub{}, zerolog.Nop())

	if err := svc.RefreshProfile(context.Background()); err != nil {
		t.Fatalf("refresh without token must not error: %v", err)
	}
	if got := svc.State(); got != ports.SessionUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", got)
	}
	if calls := gw.callLog(); len(calls) != 0 {
		t.Fatalf("expected zero network calls, got %v", calls)
	}
}

func TestSessionService_RefreshSuccess(t *testing.T) {
	gw := &gatewayStub{profileFn: func() (*domain.User, error) { return testUser(), nil }}
	tokens := &tokenStoreStub{token: "tok-1"}
	svc := NewSessionService(gw, tokens, zerolog.Nop())

	if err := svc.RefreshProfile(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if !svc.IsAuthenticated() {
		t.Fatalf("expected authenticated after refresh")
	}
	if user := svc.CurrentUser(); user == nil || user.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestSessionService_RefreshFailureInvalidatesSession(t *testing.T) {
	gw := &gatewayStub{profileFn: func() (*domain.User, error) { return nil, domain.ErrAuthRequired }}
	tokens := &tokenStoreStub{token: "expired"}
	svc := NewSessionService(gw, tokens, zerolog.Nop())

	err := svc.RefreshProfile(context.Background())
	if !errors.Is(err, domain.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
	if got := svc.State(); got != ports.SessionUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", got)
	}
	if token, _ := tokens.Load(context.Background()); token != "" {
		t.Fatalf("expected token cleared, got %q", token)
	}
	if svc.CurrentUser() != nil {
		t.Fatalf("expected profile cleared")
	}
}

func TestSessionService_LogoutIsLocalOnly(t *testing.T) {
	gw := &gatewayStub{
		loginFn: func(ports.Credentials) (*ports.AuthResult, error) {
			return &ports.AuthResult{Token: "tok-1", User: testUser()}, nil
		},
	}
	tokens := &tokenStoreStub{}
	svc := NewSessionService(gw, tokens, zerolog.Nop())

	if err := svc.Login(context.Background(), ports.Credentials{Email: "alice@example.com", Password: "s3cret"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	svc.Logout(context.Background())

	if got := svc.State(); got != ports.SessionUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", got)
	}
	if token, _ := tokens.Load(context.Background()); token != "" {
		t.Fatalf("expected token cleared, got %q", token)
	}
	if calls := gw.callLog(); len(calls) != 1 {
		t.Fatalf("logout must not call the network, got %v", calls)
	}
}
