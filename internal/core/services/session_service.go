package services

import (
	"context"
	"sync"

	"ftms-portal/internal/adapters/api"
	"ftms-portal/internal/adapters/storage"
	"ftms-portal/internal/core/domain"

	"go.uber.org/zap"
)

// SessionService owns the session state: the current bearer token, the
// current user, and the bootstrap loading flag. It is the only
// long-lived in-memory state in the client; everything else is
// re-fetched on demand.
//
// States: Bootstrapping (loading) -> Unauthenticated or Authenticated.
// IsAuthenticated holds exactly when both token and user are present.
type SessionService struct {
	auth   *api.AuthClient
	tokens storage.TokenStore
	log    *zap.Logger

	mu      sync.RWMutex
	token   string
	user    *domain.User
	loading bool
}

// NewSessionService creates a session in the Bootstrapping state.
// Call Bootstrap once at process start to resolve it.
func NewSessionService(auth *api.AuthClient, tokens storage.TokenStore, log *zap.Logger) *SessionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionService{
		auth:    auth,
		tokens:  tokens,
		log:     log,
		loading: true,
	}
}

// Bootstrap resolves the initial session state from the persisted
// token. With no stored token the session becomes Unauthenticated
// immediately. With one, the token is set optimistically and the user
// is hydrated via /auth/me; any hydration failure resets the session
// to Unauthenticated after clearing the stored token. The failure is
// swallowed on purpose: this is a recovery path, not a fatal one.
func (s *SessionService) Bootstrap(ctx context.Context) {
	defer s.setLoading(false)

	token, err := s.tokens.Get()
	if err != nil {
		s.log.Warn("failed to read stored token", zap.Error(err))
	}
	if token == "" {
		return
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		s.log.Warn("failed to hydrate user from stored token", zap.Error(err))
		if clearErr := s.tokens.Clear(); clearErr != nil {
			s.log.Warn("failed to clear stored token", zap.Error(clearErr))
		}
		s.mu.Lock()
		s.token = ""
		s.user = nil
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

// Login authenticates with the given credentials, persists the
// returned token, and hydrates the current user. On success the
// hydrated user is returned. On failure at either step the error
// propagates unchanged and no cleanup is performed here; the caller
// decides how to recover.
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Set(token); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return user, nil
}

// Logout clears the persisted token and all in-memory session state.
// No network call is issued.
func (s *SessionService) Logout() {
	if err := s.tokens.Clear(); err != nil {
		s.log.Warn("failed to clear stored token on logout", zap.Error(err))
	}
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
}

// IsAuthenticated reports whether both a token and a user are present
func (s *SessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// User returns the current user, or nil when unauthenticated
func (s *SessionService) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Token returns the current in-memory bearer token
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Loading reports whether a bootstrap or login is still in flight
func (s *SessionService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *SessionService) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
