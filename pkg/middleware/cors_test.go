package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func corsServe(cfg CORSConfig, method, origin string) *httptest.ResponseRecorder {
	handler := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(method, "/api/v1/cart", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	if method == http.MethodOptions {
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestCORS_DevMode_AllowsWildcard(t *testing.T) {
	rr := corsServe(CORSConfig{Environment: "development"}, http.MethodGet, "https://shop.local")

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCORS_ProdMode_AllowedOrigin(t *testing.T) {
	cfg := CORSConfig{AllowedOrigins: []string{"https://tuagiyim.com", "https://www.tuagiyim.com"}, Environment: "production"}

	for _, origin := range cfg.AllowedOrigins {
		rr := corsServe(cfg, http.MethodGet, origin)
		assert.Equal(t, origin, rr.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Origin", rr.Header().Get("Vary"))
	}
}

func TestCORS_ProdMode_RejectedOrigin(t *testing.T) {
	rr := corsServe(CORSConfig{AllowedOrigins: []string{"https://tuagiyim.com"}, Environment: "production"}, http.MethodGet, "https://evil.example")

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, rr.Code, "the request itself is still served")
}

func TestCORS_ProdMode_WildcardInList_AllowsAll(t *testing.T) {
	rr := corsServe(CORSConfig{AllowedOrigins: []string{"*"}, Environment: "production"}, http.MethodGet, "https://any.example")
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_CredentialsEchoOriginInsteadOfWildcard(t *testing.T) {
	rr := corsServe(CORSConfig{AllowedOrigins: []string{"*"}, AllowCredentials: true}, http.MethodGet, "https://shop.local")

	assert.Equal(t, "https://shop.local", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_Preflight_Returns204(t *testing.T) {
	rr := corsServe(DefaultCORSConfig(), http.MethodOptions, "https://shop.local")

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "GET, POST, PUT, PATCH, DELETE, OPTIONS", rr.Header().Get("Access-Control-Allow-Methods"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), CorrelationHeader)
	assert.Equal(t, "3600", rr.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_PlainOptionsReachesHandler(t *testing.T) {
	handler := CORS(DefaultCORSConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCORS_ExposedHeaders(t *testing.T) {
	rr := corsServe(DefaultCORSConfig(), http.MethodGet, "")
	assert.Equal(t, CorrelationHeader, rr.Header().Get("Access-Control-Expose-Headers"))
}

func TestCORS_CustomMaxAge(t *testing.T) {
	rr := corsServe(CORSConfig{MaxAge: 60, Environment: "development"}, http.MethodGet, "")
	assert.Equal(t, "60", rr.Header().Get("Access-Control-Max-Age"))
}
