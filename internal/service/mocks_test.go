package service

import (
	"context"
	"log/slog"
	"os"

	"github.com/stretchr/testify/mock"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/domain"
)

// --- Mock Repositories ---

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Load(ctx context.Context) ([]domain.CartLine, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CartLine), args.Error(1)
}

func (m *mockCartRepository) Save(ctx context.Context, lines []domain.CartLine) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

// --- Mock Backends ---

type mockSessionBackend struct {
	mock.Mock
}

func (m *mockSessionBackend) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

func (m *mockSessionBackend) Register(ctx context.Context, name, email, password string) (*domain.AuthResult, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

func (m *mockSessionBackend) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockCatalogBackend struct {
	mock.Mock
}

func (m *mockCatalogBackend) Categories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *mockCatalogBackend) Products(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockCatalogBackend) Product(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

type mockFavoritesBackend struct {
	mock.Mock
}

func (m *mockFavoritesBackend) Favorites(ctx context.Context) ([]domain.ID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ID), args.Error(1)
}

func (m *mockFavoritesBackend) AddFavorite(ctx context.Context, productID string) error {
	return m.Called(ctx, productID).Error(0)
}

func (m *mockFavoritesBackend) RemoveFavorite(ctx context.Context, productID string) error {
	return m.Called(ctx, productID).Error(0)
}

type mockOrderBackend struct {
	mock.Mock
}

func (m *mockOrderBackend) StartPayment(ctx context.Context, req domain.PaymentRequest, idempotencyKey string) (string, error) {
	args := m.Called(ctx, req, idempotencyKey)
	return args.String(0), args.Error(1)
}

func (m *mockOrderBackend) MyOrders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fixedSession is a SessionState with a constant user.
type fixedSession struct {
	user *domain.User
}

func (s fixedSession) Current() *domain.User { return s.user }

var signedIn = fixedSession{user: &domain.User{ID: "7", Name: "Ayşe", Email: "ayse@example.com"}}
