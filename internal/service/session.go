package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/domain"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/repository"
	apperrors "github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/errors"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/httpclient"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/logger"
)

// SessionService owns the signed-in user. Credentials live in the
// CredentialStore shared with the AuthClient; the user snapshot is persisted
// next to them so a restart keeps the session.
type SessionService struct {
	mu        sync.RWMutex
	user      *domain.User
	backend   SessionBackend
	creds     *httpclient.CredentialStore
	repo      repository.SessionRepository
	notifier  *Notifications
	listeners []SessionListener
	logger    *slog.Logger
}

// NewSessionService creates a signed-out session service. notifier may be nil.
func NewSessionService(
	backend SessionBackend,
	creds *httpclient.CredentialStore,
	repo repository.SessionRepository,
	notifier *Notifications,
	logger *slog.Logger,
) *SessionService {
	return &SessionService{
		backend:  backend,
		creds:    creds,
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// Subscribe registers l for session start and end. Call before Hydrate.
func (s *SessionService) Subscribe(l SessionListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Hydrate restores credentials and the user snapshot saved by a previous run.
// Read failures leave the session signed out.
func (s *SessionService) Hydrate(ctx context.Context) {
	s.creds.Init(ctx)

	snap, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "saved session could not be restored",
			slog.String("error", err.Error()),
		)
		return
	}
	if snap == nil || snap.User == nil {
		return
	}
	if s.creds.AccessToken() == "" && snap.Token != "" {
		s.creds.Set(ctx, snap.Token, "")
	}

	user := *snap.User
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "session restored", slog.String("user_id", user.ID.String()))
	s.notify(ctx, SessionListener.SessionStarted)
}

// Login signs in with email and password.
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	res, err := s.backend.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}
	return s.begin(ctx, res)
}

// Register creates an account and signs it in.
func (s *SessionService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	res, err := s.backend.Register(ctx, strings.TrimSpace(name), strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}
	return s.begin(ctx, res)
}

func (s *SessionService) begin(ctx context.Context, res *domain.AuthResult) (*domain.User, error) {
	if res.AccessToken == "" {
		return nil, apperrors.Internal(errors.New("auth response carried no access credential"))
	}

	s.creds.Set(ctx, res.AccessToken, res.RefreshToken)

	user := res.User
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()

	if err := s.repo.SaveSnapshot(ctx, domain.SessionSnapshot{User: &user, Token: res.AccessToken}); err != nil {
		s.logger.WarnContext(ctx, "failed to persist session snapshot", slog.String("error", err.Error()))
	}

	ctx = logger.WithUserID(ctx, user.ID.String())
	s.logger.InfoContext(ctx, "session started", slog.String("user_id", user.ID.String()))
	s.notify(ctx, SessionListener.SessionStarted)

	out := user
	return &out, nil
}

// Logout ends the session. The backend call is best effort; local state is
// always torn down.
func (s *SessionService) Logout(ctx context.Context) {
	if err := s.backend.Logout(ctx); err != nil {
		s.logger.WarnContext(ctx, "backend logout failed", slog.String("error", err.Error()))
	}
	s.creds.Clear(ctx)
	s.end(ctx)
}

// Expire tears down the session after the credentials could not be refreshed.
// The AuthClient has already cleared them.
func (s *SessionService) Expire(ctx context.Context) {
	if s.Current() == nil {
		return
	}
	if s.notifier != nil {
		s.notifier.Push(domain.NotificationInfo, "your session has expired, please log in again")
	}
	s.end(ctx)
}

func (s *SessionService) end(ctx context.Context) {
	s.mu.Lock()
	prev := s.user
	s.user = nil
	s.mu.Unlock()

	if err := s.repo.DeleteSnapshot(ctx); err != nil {
		s.logger.WarnContext(ctx, "failed to remove session snapshot", slog.String("error", err.Error()))
	}
	if prev == nil {
		return
	}
	s.logger.InfoContext(ctx, "session ended", slog.String("user_id", prev.ID.String()))
	s.notify(ctx, SessionListener.SessionEnded)
}

// Current returns a copy of the signed-in user, nil when signed out.
func (s *SessionService) Current() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Lookup reports the signed-in user id. It backs the session middleware.
func (s *SessionService) Lookup(context.Context) (string, bool) {
	u := s.Current()
	if u == nil {
		return "", false
	}
	if u.ID == "" {
		return u.Email, true
	}
	return u.ID.String(), true
}

func (s *SessionService) notify(ctx context.Context, fn func(SessionListener, context.Context)) {
	s.mu.RLock()
	listeners := append([]SessionListener(nil), s.listeners...)
	s.mu.RUnlock()
	for _, l := range listeners {
		fn(l, ctx)
	}
}
