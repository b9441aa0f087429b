package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/domain"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/storage"
)

// SessionRepository implements repository.SessionRepository. The snapshot and
// the raw credentials live under separate keys.
type SessionRepository struct {
	store storage.Store
}

// NewSessionRepository creates a session repository over store.
func NewSessionRepository(store storage.Store) *SessionRepository {
	return &SessionRepository{store: store}
}

func (r *SessionRepository) LoadSnapshot(ctx context.Context) (*domain.SessionSnapshot, error) {
	var snap domain.SessionSnapshot
	found, err := getJSON(ctx, r.store, SessionKey, &snap)
	if err != nil || !found {
		return nil, err
	}
	return &snap, nil
}

func (r *SessionRepository) SaveSnapshot(ctx context.Context, snap domain.SessionSnapshot) error {
	return setJSON(ctx, r.store, SessionKey, snap)
}

func (r *SessionRepository) DeleteSnapshot(ctx context.Context) error {
	if err := r.store.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("delete %s: %w", SessionKey, err)
	}
	return nil
}

// LoadTokens returns empty strings for credentials that were never saved.
func (r *SessionRepository) LoadTokens(ctx context.Context) (access, refresh string, err error) {
	if access, err = r.get(ctx, AccessTokenKey); err != nil {
		return "", "", err
	}
	if refresh, err = r.get(ctx, RefreshTokenKey); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// SaveTokens writes both credentials. An empty refresh credential removes the key.
func (r *SessionRepository) SaveTokens(ctx context.Context, access, refresh string) error {
	if err := r.store.Set(ctx, AccessTokenKey, access); err != nil {
		return fmt.Errorf("write %s: %w", AccessTokenKey, err)
	}
	if refresh == "" {
		return r.delete(ctx, RefreshTokenKey)
	}
	if err := r.store.Set(ctx, RefreshTokenKey, refresh); err != nil {
		return fmt.Errorf("write %s: %w", RefreshTokenKey, err)
	}
	return nil
}

// ClearTokens removes both credentials, attempting each even if one fails.
func (r *SessionRepository) ClearTokens(ctx context.Context) error {
	return errors.Join(r.delete(ctx, AccessTokenKey), r.delete(ctx, RefreshTokenKey))
}

func (r *SessionRepository) get(ctx context.Context, key string) (string, error) {
	v, err := r.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return v, nil
}

func (r *SessionRepository) delete(ctx context.Context, key string) error {
	if err := r.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
