package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/domain"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/repository/kv"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/storage/memory"
)

func TestRecentlyViewed_MostRecentFirstWithoutDuplicates(t *testing.T) {
	ctx := context.Background()
	r := NewRecentlyViewed(ctx, kv.NewRecentlyViewedRepository(memory.New()), newTestLogger())

	r.Record(ctx, domain.ProductSnapshot{ID: "p1"})
	r.Record(ctx, domain.ProductSnapshot{ID: "p2"})
	r.Record(ctx, domain.ProductSnapshot{ID: "p1", Name: "updated"})

	items := r.List()
	require.Len(t, items, 2)
	assert.Equal(t, domain.ID("p1"), items[0].ID)
	assert.Equal(t, "updated", items[0].Name)
	assert.Equal(t, domain.ID("p2"), items[1].ID)
}

func TestRecentlyViewed_CappedAt20(t *testing.T) {
	ctx := context.Background()
	r := NewRecentlyViewed(ctx, kv.NewRecentlyViewedRepository(memory.New()), newTestLogger())

	for i := range 25 {
		r.Record(ctx, domain.ProductSnapshot{ID: domain.ID(fmt.Sprintf("p%d", i))})
	}

	items := r.List()
	require.Len(t, items, MaxRecentlyViewed)
	assert.Equal(t, domain.ID("p24"), items[0].ID)
	assert.Equal(t, domain.ID("p5"), items[MaxRecentlyViewed-1].ID)
}

func TestRecentlyViewed_PersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	repo := kv.NewRecentlyViewedRepository(memory.New())

	first := NewRecentlyViewed(ctx, repo, newTestLogger())
	first.Record(ctx, domain.ProductSnapshot{ID: "p1"})
	first.Record(ctx, domain.ProductSnapshot{ID: "p2"})

	second := NewRecentlyViewed(ctx, repo, newTestLogger())
	assert.Equal(t, first.List(), second.List())
}

func TestRecentlyViewed_IgnoresEmptyID(t *testing.T) {
	ctx := context.Background()
	r := NewRecentlyViewed(ctx, kv.NewRecentlyViewedRepository(memory.New()), newTestLogger())

	r.Record(ctx, domain.ProductSnapshot{})

	assert.Empty(t, r.List())
}

type failingRecentRepo struct{}

func (failingRecentRepo) Load(context.Context) ([]domain.ProductSnapshot, error) {
	return nil, errors.New("corrupt")
}

func (failingRecentRepo) Save(context.Context, []domain.ProductSnapshot) error {
	return errors.New("quota exceeded")
}

func TestRecentlyViewed_StorageFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	r := NewRecentlyViewed(ctx, failingRecentRepo{}, newTestLogger())

	r.Record(ctx, domain.ProductSnapshot{ID: "p1"})

	assert.Len(t, r.List(), 1)
}
