package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/thedeposit/storefront-client/internal/core/domain"
	"github.com/thedeposit/storefront-client/internal/core/ports"
)

// SessionService tracks the current authenticated identity. It starts in
// the authenticating state: a token may already exist in the token store
// (e.g. after a restart) but the identity behind it is unconfirmed until
// the first RefreshProfile resolves.
type SessionService struct {
	gateway ports.BackendGateway
	tokens  ports.TokenStore
	logger  zerolog.Logger

	mu    sync.Mutex
	user  *domain.User
	state ports.SessionState
}

func NewSessionService(gateway ports.BackendGateway, tokens ports.TokenStore, logger zerolog.Logger) *SessionService {
	return &SessionService{
		gateway: gateway,
		tokens:  tokens,
		logger:  logger,
		state:   ports.SessionAuthenticating,
	}
}

// Login authenticates against the backend and, on success, persists the
// returned token and stores the profile. A 401 from the login endpoint
// means the credentials were rejected, not that a session is missing, so
// it is surfaced as domain.ErrInvalidCredentials.
func (s *SessionService) Login(ctx context.Context, creds ports.Credentials) error {
	result, err := s.gateway.Login(ctx, creds)
	if err != nil {
		return credentialError(err)
	}
	return s.establish(ctx, result)
}

// Register creates an account; on success the session is established the
// same way as Login.
func (s *SessionService) Register(ctx context.Context, reg ports.Registration) error {
	result, err := s.gateway.Register(ctx, reg)
	if err != nil {
		return credentialError(err)
	}
	return s.establish(ctx, result)
}

// RefreshProfile fetches the profile for the stored token. On success the
// stored profile is updated. On any failure the token is considered
// invalid: token and profile are cleared and the session transitions to
// unauthenticated. This is the sole mechanism for detecting expiry.
func (s *SessionService) RefreshProfile(ctx context.Context) error {
	token, err := s.tokens.Load(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load stored token")
		s.invalidate(ctx)
		return err
	}
	if token == "" {
		s.invalidate(ctx)
		return nil
	}

	user, err := s.gateway.Profile(ctx)
	if err != nil {
		s.logger.Info().Err(err).Msg("profile refresh failed, session invalidated")
		s.invalidate(ctx)
		return err
	}

	s.mu.Lock()
	s.user = user
	s.state = ports.SessionAuthenticated
	s.mu.Unlock()
	return nil
}

// Logout clears token and profile synchronously. No network call is made.
func (s *SessionService) Logout(ctx context.Context) {
	s.invalidate(ctx)
	s.logger.Info().Msg("logged out")
}

func (s *SessionService) State() ports.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *SessionService) IsAuthenticated() bool {
	return s.State() == ports.SessionAuthenticated
}

// CurrentUser returns a copy of the stored profile, or nil.
func (s *SessionService) CurrentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

func (s *SessionService) establish(ctx context.Context, result *ports.AuthResult) error {
	if err := s.tokens.Save(ctx, result.Token); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist token")
		return err
	}

	s.mu.Lock()
	s.user = result.User
	s.state = ports.SessionAuthenticated
	s.mu.Unlock()

	s.logger.Info().Int64("user_id", result.User.ID).Str("role", result.User.Role).Msg("session established")
	return nil
}

func (s *SessionService) invalidate(ctx context.Context) {
	if err := s.tokens.Clear(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to clear stored token")
	}

	s.mu.Lock()
	s.user = nil
	s.state = ports.SessionUnauthenticated
	s.mu.Unlock()
}

// credentialError re-labels a 401 as invalid credentials; other errors pass
// through unchanged.
func credentialError(err error) error {
	if errors.Is(err, domain.ErrAuthRequired) {
		return domain.ErrInvalidCredentials
	}
	return err
}
