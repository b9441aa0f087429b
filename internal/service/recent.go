package service

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/domain"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/repository"
)

// MaxRecentlyViewed caps the recently viewed list.
const MaxRecentlyViewed = 20

// RecentlyViewed is the most-recent-first list of products the user opened.
type RecentlyViewed struct {
	mu     sync.Mutex
	items  []domain.ProductSnapshot
	repo   repository.RecentlyViewedRepository
	logger *slog.Logger
}

// NewRecentlyViewed creates the list hydrated from repo; read failures start empty.
func NewRecentlyViewed(ctx context.Context, repo repository.RecentlyViewedRepository, logger *slog.Logger) *RecentlyViewed {
	r := &RecentlyViewed{repo: repo, logger: logger, items: []domain.ProductSnapshot{}}
	items, err := repo.Load(ctx)
	if err != nil {
		logger.WarnContext(ctx, "recently viewed list could not be restored",
			slog.String("error", err.Error()),
		)
		return r
	}
	if len(items) > MaxRecentlyViewed {
		items = items[:MaxRecentlyViewed]
	}
	r.items = items
	return r
}

// Record moves snap to the front, removing any older entry for the same product.
func (r *RecentlyViewed) Record(ctx context.Context, snap domain.ProductSnapshot) {
	if snap.ID == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]domain.ProductSnapshot, 0, min(len(r.items)+1, MaxRecentlyViewed))
	items = append(items, snap)
	for _, it := range r.items {
		if len(items) == MaxRecentlyViewed {
			break
		}
		if it.ID != snap.ID {
			items = append(items, it)
		}
	}
	r.items = items

	if err := r.repo.Save(ctx, slices.Clone(items)); err != nil {
		r.logger.WarnContext(ctx, "failed to persist recently viewed list",
			slog.String("error", err.Error()),
		)
	}
}

// List returns a copy of the list, most recent first.
func (r *RecentlyViewed) List() []domain.ProductSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.items)
}
