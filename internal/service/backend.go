package service

import (
	"context"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/domain"
)

// The backend calls each service depends on. *backend.Client implements all of them.

// SessionBackend issues and revokes credentials.
type SessionBackend interface {
	Login(ctx context.Context, email, password string) (*domain.AuthResult, error)
	Register(ctx context.Context, name, email, password string) (*domain.AuthResult, error)
	Logout(ctx context.Context) error
}

// CatalogBackend reads the catalog.
type CatalogBackend interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Products(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error)
	Product(ctx context.Context, id string) (*domain.Product, error)
}

// FavoritesBackend reads and changes the user's favorites.
type FavoritesBackend interface {
	Favorites(ctx context.Context) ([]domain.ID, error)
	AddFavorite(ctx context.Context, productID string) error
	RemoveFavorite(ctx context.Context, productID string) error
}

// OrderBackend starts payments and lists orders.
type OrderBackend interface {
	StartPayment(ctx context.Context, req domain.PaymentRequest, idempotencyKey string) (string, error)
	MyOrders(ctx context.Context) ([]domain.Order, error)
}

// SessionState reports the signed-in user, nil when signed out.
type SessionState interface {
	Current() *domain.User
}

// SessionListener is told when a session starts or ends.
type SessionListener interface {
	SessionStarted(ctx context.Context)
	SessionEnded(ctx context.Context)
}
