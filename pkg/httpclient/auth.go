package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/codes"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/tracing"
)

// Credential-issuing endpoints of the backend. A 401 from any of them is final.
const (
	LoginPath    = "/api/auth/login"
	RegisterPath = "/api/auth/register"
	RefreshPath  = "/api/auth/refresh"
)

// RefreshState is the state of the refresh coordinator.
type RefreshState int

const (
	RefreshIdle RefreshState = iota
	RefreshInFlight
)

func (s RefreshState) String() string {
	if s == RefreshInFlight {
		return "refreshing"
	}
	return "idle"
}

var errSessionEnded = errors.New("session ended")

var (
	refreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_auth_refresh_total",
			Help: "Credential refresh calls by result",
		},
		[]string{"result"},
	)

	refreshWaitersTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_auth_refresh_waiters_total",
			Help: "Requests that joined a refresh already in flight",
		},
	)
)

func init() {
	prometheus.MustRegister(refreshTotal, refreshWaitersTotal)
}

// AuthConfig configures an AuthClient.
type AuthConfig struct {
	// BaseURL is the backend origin the refresh endpoint is resolved against.
	BaseURL string
	// RefreshTimeout bounds a single refresh call. Defaults to 10s.
	RefreshTimeout time.Duration
	// OnSessionExpired runs once per failed refresh, after the credentials
	// were cleared and before any waiter is released.
	OnSessionExpired func(ctx context.Context)
}

// refreshCall is one refresh cycle; every request that hit a 401 during the
// cycle waits on done.
type refreshCall struct {
	done  chan struct{}
	token string
	err   error
}

// AuthClient attaches the bearer credential to every request and recovers from
// expired credentials with a single-flight refresh followed by one retry.
type AuthClient struct {
	next           Doer
	creds          *CredentialStore
	refreshURL     string
	refreshTimeout time.Duration
	onExpired      func(ctx context.Context)
	logger         *slog.Logger

	mu       sync.Mutex
	inflight *refreshCall
}

// NewAuthClient wraps next. The refresh call goes straight to next and never
// through the auth pipeline itself.
func NewAuthClient(next Doer, creds *CredentialStore, cfg AuthConfig, logger *slog.Logger) (*AuthClient, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid backend base url %q", cfg.BaseURL)
	}
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = 10 * time.Second
	}
	return &AuthClient{
		next:           next,
		creds:          creds,
		refreshURL:     strings.TrimRight(base.String(), "/") + RefreshPath,
		refreshTimeout: cfg.RefreshTimeout,
		onExpired:      cfg.OnSessionExpired,
		logger:         logger,
	}, nil
}

// State reports whether a refresh is currently in flight.
func (c *AuthClient) State() RefreshState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight != nil {
		return RefreshInFlight
	}
	return RefreshIdle
}

// Do sends req with the current bearer credential. A 401 from a non-credential
// endpoint waits for a refresh (starting one if none is running) and retries the
// request once. If the refresh fails the caller gets its own original 401 response.
func (c *AuthClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	body, err := snapshotBody(req)
	if err != nil {
		return nil, err
	}

	sent := c.creds.AccessToken()
	resp, err := c.next.Do(ctx, authorize(ctx, req, body, sent))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || isCredentialEndpoint(req.URL.Path) {
		return resp, nil
	}

	original, err := bufferResponse(resp)
	if err != nil {
		return nil, err
	}

	token, err := c.awaitRefresh(ctx, sent)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return original, nil
	}

	// The retry goes to next directly: a second 401 is returned as is.
	return c.next.Do(ctx, authorize(ctx, req, body, token))
}

// awaitRefresh returns the credential to retry with. Deciding between joining the
// in-flight refresh and starting a new one happens under c.mu.
func (c *AuthClient) awaitRefresh(ctx context.Context, sent string) (string, error) {
	c.mu.Lock()
	call := c.inflight
	if call == nil {
		// The credential moved on since this request was sent: a refresh
		// finished (or the session ended) in between.
		if current := c.creds.AccessToken(); current != sent {
			c.mu.Unlock()
			if current == "" {
				return "", errSessionEnded
			}
			return current, nil
		}
		call = &refreshCall{done: make(chan struct{})}
		c.inflight = call
		go c.runRefresh(context.WithoutCancel(ctx), call)
	} else {
		refreshWaitersTotal.Inc()
	}
	c.mu.Unlock()

	select {
	case <-call.done:
		return call.token, call.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *AuthClient) runRefresh(ctx context.Context, call *refreshCall) {
	ctx, span := tracing.Tracer("storefront/httpclient").Start(ctx, "auth.refresh")
	defer span.End()

	refreshCtx, cancel := context.WithTimeout(ctx, c.refreshTimeout)
	token, err := c.refresh(refreshCtx)
	cancel()

	if err != nil {
		refreshTotal.WithLabelValues("failure").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "refresh failed")
		c.logger.WarnContext(ctx, "credential refresh failed, ending session",
			slog.String("error", err.Error()),
		)
		c.creds.Clear(ctx)
		if c.onExpired != nil {
			c.onExpired(ctx)
		}
	} else {
		refreshTotal.WithLabelValues("success").Inc()
		c.logger.DebugContext(ctx, "credential refreshed")
	}

	c.mu.Lock()
	call.token, call.err = token, err
	c.inflight = nil
	c.mu.Unlock()
	close(call.done)
}

type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// refresh calls the refresh endpoint. The refresh credential travels in the
// cookie jar of next, and additionally in the body and as a bearer when held.
func (c *AuthClient) refresh(ctx context.Context) (string, error) {
	rt := c.creds.RefreshToken()
	payload := map[string]string{}
	if rt != "" {
		payload["rt"] = rt
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode refresh request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.refreshURL, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("create refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if rt != "" {
		req.Header.Set("Authorization", "Bearer "+rt)
	}

	resp, err := c.next.Do(ctx, req)
	if err != nil {
		return "", fmt.Errorf("refresh: %w", err)
	}

	var out refreshResponse
	if err := DecodeJSON(resp, &out, "refresh"); err != nil {
		return "", err
	}
	access := out.AccessToken
	if access == "" {
		access = out.Token
	}
	if access == "" {
		return "", errors.New("refresh: response carried no access token")
	}

	c.creds.Set(ctx, access, out.RefreshToken)
	return access, nil
}

func isCredentialEndpoint(path string) bool {
	path = strings.TrimRight(path, "/")
	return strings.HasSuffix(path, LoginPath) ||
		strings.HasSuffix(path, RegisterPath) ||
		strings.HasSuffix(path, RefreshPath)
}

// authorize returns a sendable copy of req carrying token as bearer.
func authorize(ctx context.Context, req *http.Request, body []byte, token string) *http.Request {
	out := withBody(ctx, req, body)
	if token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	}
	return out
}

// bufferResponse reads resp's body into memory so the response can be handed
// back after the connection was released.
func bufferResponse(resp *http.Response) (*http.Response, error) {
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read unauthorized response: %w", err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(b))
	resp.ContentLength = int64(len(b))
	return resp, nil
}
