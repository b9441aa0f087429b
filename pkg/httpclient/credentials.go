package httpclient

import (
	"context"
	"log/slog"
	"sync"
)

// TokenPersister mirrors credentials into device storage so they survive a restart.
type TokenPersister interface {
	LoadTokens(ctx context.Context) (access, refresh string, err error)
	SaveTokens(ctx context.Context, access, refresh string) error
	ClearTokens(ctx context.Context) error
}

// CredentialStore holds the bearer and refresh credentials in memory and mirrors
// every change to a TokenPersister. Persistence failures are logged and ignored;
// the in-memory values stay authoritative for the running process.
type CredentialStore struct {
	mu        sync.RWMutex
	access    string
	refresh   string
	persister TokenPersister
	logger    *slog.Logger
}

// NewCredentialStore creates an empty store. persister may be nil.
func NewCredentialStore(persister TokenPersister, logger *slog.Logger) *CredentialStore {
	return &CredentialStore{persister: persister, logger: logger}
}

// Init hydrates the store from the persister.
func (s *CredentialStore) Init(ctx context.Context) {
	if s.persister == nil {
		return
	}
	access, refresh, err := s.persister.LoadTokens(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "could not restore credentials", slog.String("error", err.Error()))
		return
	}
	s.mu.Lock()
	s.access, s.refresh = access, refresh
	s.mu.Unlock()
}

// Set stores a new access credential. An empty refresh keeps the current one,
// since the backend only returns a refresh credential when it rotates it.
func (s *CredentialStore) Set(ctx context.Context, access, refresh string) {
	s.mu.Lock()
	s.access = access
	if refresh != "" {
		s.refresh = refresh
	}
	access, refresh = s.access, s.refresh
	s.mu.Unlock()

	if s.persister == nil {
		return
	}
	if err := s.persister.SaveTokens(ctx, access, refresh); err != nil {
		s.logger.WarnContext(ctx, "could not persist credentials", slog.String("error", err.Error()))
	}
}

// Clear forgets both credentials.
func (s *CredentialStore) Clear(ctx context.Context) {
	s.mu.Lock()
	s.access, s.refresh = "", ""
	s.mu.Unlock()

	if s.persister == nil {
		return
	}
	if err := s.persister.ClearTokens(ctx); err != nil {
		s.logger.WarnContext(ctx, "could not clear persisted credentials", slog.String("error", err.Error()))
	}
}

// AccessToken returns the current bearer credential, or "".
func (s *CredentialStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

// RefreshToken returns the current refresh credential, or "".
func (s *CredentialStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}
