package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/domain"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/repository/kv"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/service"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/storage/memory"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/health"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/httpclient"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/httputil"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/middleware"
)

// ============================================================================
// Mock backend
// ============================================================================

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

func (m *mockBackend) Register(ctx context.Context, name, email, password string) (*domain.AuthResult, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

func (m *mockBackend) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockBackend) Categories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *mockBackend) Products(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockBackend) Product(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockBackend) Favorites(ctx context.Context) ([]domain.ID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ID), args.Error(1)
}

func (m *mockBackend) AddFavorite(ctx context.Context, productID string) error {
	return m.Called(ctx, productID).Error(0)
}

func (m *mockBackend) RemoveFavorite(ctx context.Context, productID string) error {
	return m.Called(ctx, productID).Error(0)
}

func (m *mockBackend) StartPayment(ctx context.Context, req domain.PaymentRequest, idempotencyKey string) (string, error) {
	args := m.Called(ctx, req, idempotencyKey)
	return args.String(0), args.Error(1)
}

func (m *mockBackend) MyOrders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

// ============================================================================
// Test helpers
// ============================================================================

const testPaymentPage = "https://pay.example.com/iframe/"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

type testAPI struct {
	router  http.Handler
	backend *mockBackend
	svc     Services
}

// setupAPI wires real services over in-memory storage behind the production
// router; only the remote backend is mocked.
func setupAPI(t *testing.T) *testAPI {
	t.Helper()
	ctx := context.Background()
	logger := testLogger()
	store := memory.New()
	backend := &mockBackend{}
	t.Cleanup(func() { backend.AssertExpectations(t) })

	sessionRepo := kv.NewSessionRepository(store)
	creds := httpclient.NewCredentialStore(sessionRepo, logger)
	notifications := service.NewNotifications(service.DefaultNotificationLimit)
	cart := service.NewCartStore(ctx, kv.NewCartRepository(store), logger)
	recent := service.NewRecentlyViewed(ctx, kv.NewRecentlyViewedRepository(store), logger)
	sessions := service.NewSessionService(backend, creds, sessionRepo, notifications, logger)
	favorites := service.NewFavorites(backend, sessions, notifications, logger)
	sessions.Subscribe(favorites)

	svc := Services{
		Cart:          cart,
		Sessions:      sessions,
		Catalog:       service.NewCatalogService(backend, recent, logger),
		Recent:        recent,
		Favorites:     favorites,
		Checkout:      service.NewCheckoutService(cart, backend, sessions, notifications, testPaymentPage, logger),
		Notifications: notifications,
	}

	router := NewRouter(svc, health.NewHandler(), logger, RouterConfig{
		CORS:                middleware.DefaultCORSConfig(),
		CatalogCacheSeconds: 60,
	})
	return &testAPI{router: router, backend: backend, svc: svc}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// signIn logs the test user in through the API.
func (a *testAPI) signIn(t *testing.T, favorites ...domain.ID) {
	t.Helper()
	a.backend.On("Login", mock.Anything, "ayse@example.com", "secret").Return(&domain.AuthResult{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		User:         domain.User{ID: "7", Name: "Ayşe", Email: "ayse@example.com"},
	}, nil).Once()
	if favorites == nil {
		favorites = []domain.ID{}
	}
	a.backend.On("Favorites", mock.Anything).Return(favorites, nil).Once()

	rec := a.do(t, http.MethodPost, "/api/v1/session/login", LoginRequest{Email: "ayse@example.com", Password: "secret"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

type envelope[T any] struct {
	Data  T                       `json:"data"`
	Error *httputil.ErrorResponse `json:"error"`
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	require.Nil(t, env.Error)
	return env.Data
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *httputil.ErrorResponse {
	t.Helper()
	var env envelope[json.RawMessage]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	require.NotNil(t, env.Error)
	return env.Error
}

func newRequest(method, path, body string) *http.Request {
	return httptest.NewRequest(method, path, bytes.NewBufferString(body))
}

func serve(a *testAPI, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}
