package kv

import (
	"context"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/domain"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/storage"
)

// RecentlyViewedRepository implements repository.RecentlyViewedRepository.
type RecentlyViewedRepository struct {
	store storage.Store
}

// NewRecentlyViewedRepository creates a recently viewed repository over store.
func NewRecentlyViewedRepository(store storage.Store) *RecentlyViewedRepository {
	return &RecentlyViewedRepository{store: store}
}

func (r *RecentlyViewedRepository) Load(ctx context.Context) ([]domain.ProductSnapshot, error) {
	var items []domain.ProductSnapshot
	if _, err := getJSON(ctx, r.store, RecentlyViewedKey, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.ProductSnapshot{}
	}
	return items, nil
}

func (r *RecentlyViewedRepository) Save(ctx context.Context, items []domain.ProductSnapshot) error {
	if items == nil {
		items = []domain.ProductSnapshot{}
	}
	return setJSON(ctx, r.store, RecentlyViewedKey, items)
}
