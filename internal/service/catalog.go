package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"golang.org/x/sync/singleflight"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/domain"
	apperrors "github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/errors"
)

// CatalogService reads the catalog. List loads are passive: a failure yields
// an empty list. Identical loads in flight at the same time share one backend
// call, and a result that arrives after the caller gave up is discarded.
type CatalogService struct {
	backend CatalogBackend
	recent  *RecentlyViewed
	group   singleflight.Group
	logger  *slog.Logger
}

// NewCatalogService creates a catalog service. recent may be nil.
func NewCatalogService(backend CatalogBackend, recent *RecentlyViewed, logger *slog.Logger) *CatalogService {
	return &CatalogService{backend: backend, recent: recent, logger: logger}
}

// Categories lists categories, empty when the backend cannot be reached.
func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	cats, err := load(ctx, s, "categories", func(ctx context.Context) ([]domain.Category, error) {
		return s.backend.Categories(ctx)
	})
	if err != nil {
		return degrade[domain.Category](ctx, s.logger, "categories", err)
	}
	return slices.Clone(cats), nil
}

// Products lists products matching q, empty when the backend cannot be reached.
func (s *CatalogService) Products(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	key := "products?" + q.Values().Encode()
	products, err := load(ctx, s, key, func(ctx context.Context) ([]domain.Product, error) {
		return s.backend.Products(ctx, q)
	})
	if err != nil {
		return degrade[domain.Product](ctx, s.logger, "products", err)
	}
	out := make([]domain.Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out, nil
}

// Product fetches one product and records it as recently viewed.
func (s *CatalogService) Product(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	p, err := load(ctx, s, "product:"+id, func(ctx context.Context) (*domain.Product, error) {
		return s.backend.Product(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	if s.recent != nil {
		s.recent.Record(ctx, p.Snapshot())
	}
	out := p.Clone()
	return &out, nil
}

// load runs fn once per key across concurrent callers. The shared call is
// detached from any single caller's cancellation; a caller whose context ends
// first gets ctx.Err() and the late result is dropped for it.
func load[T any](ctx context.Context, s *CatalogService, key string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	ch := s.group.DoChan(key, func() (any, error) {
		return fn(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// degrade turns a failed passive load into an empty list. Cancellation is
// still reported so the caller does not render a stale result.
func degrade[T any](ctx context.Context, logger *slog.Logger, what string, err error) ([]T, error) {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return nil, ctxErr
	}
	logger.WarnContext(ctx, "catalog load failed, serving empty list",
		slog.String("what", what),
		slog.String("error", err.Error()),
	)
	return []T{}, nil
}
