package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/config"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/domain"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/logger"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/tracing"
)

func testConfig(apiBase string) *config.Config {
	return &config.Config{
		Environment:        "test",
		HTTPPort:           0,
		CORSAllowedOrigins: []string{"*"},
		CatalogCacheSecs:   30,
		APIBase:            apiBase,
		HTTPTimeoutSecs:    5,
		HTTPMaxRetries:     0,
		RefreshTimeoutSecs: 2,
		PaymentPageURL:     "https://pay.example.com/",
		StorageBackend:     config.StorageMemory,
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a, err := NewApp(cfg, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.store.Close() })
	return a
}

func call(t *testing.T, a *App, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestOpenStore_Backends(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := t.TempDir()

	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"memory", config.Config{StorageBackend: config.StorageMemory}},
		{"file", config.Config{StorageBackend: config.StorageFile, StorageDir: filepath.Join(dir, "kv")}},
		{"sqlite", config.Config{StorageBackend: config.StorageSQLite, SQLitePath: filepath.Join(dir, "sf.db")}},
		{"redis", config.Config{StorageBackend: config.StorageRedis, RedisAddr: mr.Addr(), StorageNamespace: "sf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s, err := openStore(ctx, &tt.cfg, logger.Discard())
			require.NoError(t, err)
			defer s.Close()

			require.NoError(t, s.Set(ctx, "cart:v1", "[]"))
			got, err := s.Get(ctx, "cart:v1")
			require.NoError(t, err)
			assert.Equal(t, "[]", got)
			assert.NoError(t, s.Ping(ctx))
		})
	}
}

func TestOpenStore_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := openStore(context.Background(), &config.Config{StorageBackend: config.StorageRedis, RedisAddr: addr}, logger.Discard())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to redis")
}

func TestOpenStore_UnknownBackend(t *testing.T) {
	_, err := openStore(context.Background(), &config.Config{StorageBackend: "etcd"}, logger.Discard())
	assert.Error(t, err)
}

func TestNewApp_InvalidBackendURL(t *testing.T) {
	_, err := NewApp(testConfig("not a url"), logger.Discard())
	assert.Error(t, err)
}

func TestNewApp_FailureShutsDownTracer(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"storage fails to open", func(c *config.Config) { c.StorageBackend = "etcd" }},
		{"auth client rejects base url", func(c *config.Config) { c.APIBase = "not a url" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var shutdowns atomic.Int32
			orig := initTracer
			initTracer = func(context.Context, tracing.Config) (func(context.Context) error, error) {
				return func(context.Context) error {
					shutdowns.Add(1)
					return nil
				}, nil
			}
			t.Cleanup(func() { initTracer = orig })

			cfg := testConfig("http://127.0.0.1:1")
			tt.mutate(cfg)
			_, err := NewApp(cfg, logger.Discard())

			require.Error(t, err)
			assert.Equal(t, int32(1), shutdowns.Load())
		})
	}
}

func TestNewApp_ReadinessUp(t *testing.T) {
	a := newTestApp(t, testConfig("http://127.0.0.1:1"))

	rec := call(t, a, http.MethodGet, "/health/ready", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// A failed credential refresh ends the storefront session: the user is signed
// out, favorites are forgotten and an expiry notice is queued.
func TestSessionExpiresWhenRefreshFails(t *testing.T) {
	var refreshCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"accessToken":"a1","refreshToken":"r1","user":{"id":7,"name":"Ayşe","email":"ayse@example.com"}}`))
	})
	mux.HandleFunc("GET /api/favorites", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[3]`))
	})
	mux.HandleFunc("POST /api/favorites/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("POST /api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	backendSrv := httptest.NewServer(mux)
	t.Cleanup(backendSrv.Close)

	a := newTestApp(t, testConfig(backendSrv.URL))

	rec := call(t, a, http.MethodPost, "/api/v1/session/login", map[string]string{"email": "ayse@example.com", "password": "secret"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = call(t, a, http.MethodGet, "/api/v1/favorites", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"3"`)

	rec = call(t, a, http.MethodPost, "/api/v1/favorites/9/toggle", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, int32(1), refreshCalls.Load())

	rec = call(t, a, http.MethodGet, "/api/v1/session", nil)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)

	rec = call(t, a, http.MethodGet, "/api/v1/favorites", nil)
	assert.Contains(t, rec.Body.String(), `"productIds":[]`)

	rec = call(t, a, http.MethodGet, "/api/v1/notifications", nil)
	var env struct {
		Data []domain.Notification `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	require.NotEmpty(t, env.Data)
	assert.Equal(t, "your session has expired, please log in again", env.Data[0].Message)
}
