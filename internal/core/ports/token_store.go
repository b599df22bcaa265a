package ports

import "context"

// TokenStore persists the opaque bearer token between process runs. It is
// the equivalent of browser local storage in the original storefront: a
// token may be present on startup before the identity behind it has been
// confirmed by a profile refresh.
type TokenStore interface {
	// Save persists the token, replacing any previous one.
	Save(ctx context.Context, token string) error
	// Load returns the stored token, or "" when none is stored.
	Load(ctx context.Context) (string, error)
	// Clear removes the stored token. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error
}
