package ports

import (
	"context"

	"github.com/thedeposit/storefront-client/internal/core/domain"
)

// SessionState is the authentication lifecycle state.
type SessionState string

const (
	// SessionAuthenticating is the initial state: a token may exist in
	// storage but the identity behind it has not been confirmed yet.
	SessionAuthenticating  SessionState = "authenticating"
	SessionAuthenticated   SessionState = "authenticated"
	SessionUnauthenticated SessionState = "unauthenticated"
)

// SessionService tracks the current authenticated identity.
type SessionService interface {
	// Login authenticates against the backend, persists the returned token
	// and stores the profile. Invalid credentials surface as
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, creds Credentials) error
	// Register creates an account; same contract as Login on success.
	Register(ctx context.Context, reg Registration) error
	// RefreshProfile re-fetches the profile for the stored token. Any
	// failure invalidates the session (token cleared, unauthenticated).
	// This is the sole mechanism for detecting session expiry.
	RefreshProfile(ctx context.Context) error
	// Logout clears token and profile synchronously. No network call.
	Logout(ctx context.Context)

	State() SessionState
	IsAuthenticated() bool
	// CurrentUser returns the stored profile, or nil when unauthenticated.
	CurrentUser() *domain.User
}
