package repository

import (
	"context"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/domain"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/httpclient"
)

// CartRepository persists the cart line list.
type CartRepository interface {
	// Load returns the persisted lines, or an empty list when nothing was saved.
	// A value that cannot be decoded is an error.
	Load(ctx context.Context) ([]domain.CartLine, error)

	// Save replaces the persisted lines.
	Save(ctx context.Context, lines []domain.CartLine) error
}

// SessionRepository persists the session snapshot and the raw credentials.
type SessionRepository interface {
	httpclient.TokenPersister

	// LoadSnapshot returns nil when no session was saved.
	LoadSnapshot(ctx context.Context) (*domain.SessionSnapshot, error)
	SaveSnapshot(ctx context.Context, snap domain.SessionSnapshot) error
	DeleteSnapshot(ctx context.Context) error
}

// RecentlyViewedRepository persists the recently viewed list, most recent first.
type RecentlyViewedRepository interface {
	Load(ctx context.Context) ([]domain.ProductSnapshot, error)
	Save(ctx context.Context, items []domain.ProductSnapshot) error
}
