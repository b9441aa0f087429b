package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/domain"
	apperrors "github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/errors"
)

// Favorites is the signed-in user's set of favorite products. Toggle is
// optimistic: the local set changes first and is put back if the backend
// rejects the change.
type Favorites struct {
	mu       sync.Mutex
	ids      map[domain.ID]struct{}
	gen      uint64 // bumped whenever ids is replaced wholesale
	backend  FavoritesBackend
	session  SessionState
	notifier *Notifications
	logger   *slog.Logger
}

// NewFavorites creates an empty favorites set.
func NewFavorites(backend FavoritesBackend, session SessionState, notifier *Notifications, logger *slog.Logger) *Favorites {
	return &Favorites{
		ids:      make(map[domain.ID]struct{}),
		backend:  backend,
		session:  session,
		notifier: notifier,
		logger:   logger,
	}
}

// Load replaces the local set with the backend's. A failed load leaves the set
// empty; favorites are a passive read.
func (f *Favorites) Load(ctx context.Context) {
	ids, err := f.backend.Favorites(ctx)
	if err != nil {
		f.logger.WarnContext(ctx, "failed to load favorites", slog.String("error", err.Error()))
		ids = nil
	}

	set := make(map[domain.ID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	f.mu.Lock()
	f.ids = set
	f.gen++
	f.mu.Unlock()
}

// Reset forgets every favorite.
func (f *Favorites) Reset() {
	f.mu.Lock()
	f.ids = make(map[domain.ID]struct{})
	f.gen++
	f.mu.Unlock()
}

// Toggle flips productID and returns whether it is now a favorite. On backend
// failure the product's previous state is restored, a notification is pushed
// and the error returned. The restore is skipped when the set was reset or
// reloaded while the backend call was in flight.
func (f *Favorites) Toggle(ctx context.Context, productID string) (bool, error) {
	if f.session.Current() == nil {
		return false, apperrors.Unauthorized("please log in to use favorites")
	}
	id := domain.ID(productID)

	f.mu.Lock()
	_, was := f.ids[id]
	f.set(id, !was)
	gen := f.gen
	f.mu.Unlock()

	var err error
	if was {
		err = f.backend.RemoveFavorite(ctx, productID)
	} else {
		err = f.backend.AddFavorite(ctx, productID)
	}
	if err == nil {
		return !was, nil
	}

	f.mu.Lock()
	if f.gen == gen {
		f.set(id, was)
	}
	f.mu.Unlock()

	f.logger.WarnContext(ctx, "favorite toggle rolled back",
		slog.String("product_id", productID),
		slog.String("error", err.Error()),
	)
	f.notifier.Push(domain.NotificationError, "could not update favorites")
	return was, fmt.Errorf("toggle favorite: %w", err)
}

// must be called with f.mu held.
func (f *Favorites) set(id domain.ID, on bool) {
	if on {
		f.ids[id] = struct{}{}
		return
	}
	delete(f.ids, id)
}

// Contains reports whether productID is a favorite.
func (f *Favorites) Contains(productID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.ids[domain.ID(productID)]
	return ok
}

// List returns the favorite product ids in sorted order.
func (f *Favorites) List() []domain.ID {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.ID, 0, len(f.ids))
	for id := range f.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// SessionStarted loads the new user's favorites.
func (f *Favorites) SessionStarted(ctx context.Context) { f.Load(ctx) }

// SessionEnded drops the previous user's favorites.
func (f *Favorites) SessionEnded(context.Context) { f.Reset() }
