package kv

import (
	"context"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/domain"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/storage"
)

// CartRepository implements repository.CartRepository.
type CartRepository struct {
	store storage.Store
}

// NewCartRepository creates a cart repository over store.
func NewCartRepository(store storage.Store) *CartRepository {
	return &CartRepository{store: store}
}

// Load returns the saved cart lines. A missing key is an empty cart.
func (r *CartRepository) Load(ctx context.Context) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	if _, err := getJSON(ctx, r.store, CartKey, &lines); err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return lines, nil
}

// Save writes lines as a JSON array; an empty cart is saved as [].
func (r *CartRepository) Save(ctx context.Context, lines []domain.CartLine) error {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return setJSON(ctx, r.store, CartKey, lines)
}
