// Package backend is the typed client of the storefront REST backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/domain"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/httpclient"
)

// Backend paths.
const (
	loginPath        = httpclient.LoginPath
	registerPath     = httpclient.RegisterPath
	logoutPath       = "/api/auth/logout"
	categoriesPath   = "/api/categories"
	productsPath     = "/api/products"
	favoritesPath    = "/api/favorites"
	myOrdersPath     = "/api/orders/my"
	paymentStartPath = "/api/payment/start"
)

// IdempotencyHeader carries the client-generated key of a payment start.
const IdempotencyHeader = "Idempotency-Key"

// Client calls the backend. Session-bound calls go through the authenticated
// pipeline; passive catalog reads go through the catalog pipeline, which may
// add a circuit breaker in front of it.
type Client struct {
	baseURL string
	auth    httpclient.Doer
	catalog httpclient.Doer
	logger  *slog.Logger
}

// New creates a backend client. catalog defaults to auth when nil.
func New(baseURL string, auth, catalog httpclient.Doer, logger *slog.Logger) *Client {
	if catalog == nil {
		catalog = auth
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		auth:    auth,
		catalog: catalog,
		logger:  logger,
	}
}

// Login exchanges email and password for credentials.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	payload := map[string]string{"email": email, "password": password}
	var res domain.AuthResult
	if err := c.send(ctx, c.auth, http.MethodPost, loginPath, nil, payload, &res, "login"); err != nil {
		return nil, err
	}
	return &res, nil
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, name, email, password string) (*domain.AuthResult, error) {
	payload := map[string]string{"name": name, "email": email, "password": password}
	var res domain.AuthResult
	if err := c.send(ctx, c.auth, http.MethodPost, registerPath, nil, payload, &res, "register"); err != nil {
		return nil, err
	}
	return &res, nil
}

// Logout ends the session on the backend and drops the refresh cookie.
func (c *Client) Logout(ctx context.Context) error {
	return c.send(ctx, c.auth, http.MethodPost, logoutPath, nil, nil, nil, "logout")
}

// Categories lists catalog categories.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var cats listOf[domain.Category]
	if err := c.send(ctx, c.catalog, http.MethodGet, categoriesPath, nil, nil, &cats, "list categories"); err != nil {
		return nil, err
	}
	return cats.list(), nil
}

// Products lists products matching q.
func (c *Client) Products(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	var products listOf[domain.Product]
	if err := c.send(ctx, c.catalog, http.MethodGet, productsPath, q.Values(), nil, &products, "list products"); err != nil {
		return nil, err
	}
	return products.list(), nil
}

// Product fetches a product by id or slug.
func (c *Client) Product(ctx context.Context, id string) (*domain.Product, error) {
	var p productEnvelope
	if err := c.send(ctx, c.catalog, http.MethodGet, productsPath+"/"+url.PathEscape(id), nil, nil, &p, "product"); err != nil {
		return nil, err
	}
	return &p.Product, nil
}

// Favorites returns the product ids the signed-in user marked as favorite.
func (c *Client) Favorites(ctx context.Context) ([]domain.ID, error) {
	var favs listOf[favoriteEntry]
	if err := c.send(ctx, c.auth, http.MethodGet, favoritesPath, nil, nil, &favs, "list favorites"); err != nil {
		return nil, err
	}
	ids := make([]domain.ID, 0, len(favs.list()))
	for _, f := range favs.list() {
		if f.ID != "" {
			ids = append(ids, f.ID)
		}
	}
	return ids, nil
}

// AddFavorite marks productID as favorite.
func (c *Client) AddFavorite(ctx context.Context, productID string) error {
	return c.send(ctx, c.auth, http.MethodPost, favoritesPath+"/"+url.PathEscape(productID), nil, nil, nil, "add favorite")
}

// RemoveFavorite unmarks productID.
func (c *Client) RemoveFavorite(ctx context.Context, productID string) error {
	return c.send(ctx, c.auth, http.MethodDelete, favoritesPath+"/"+url.PathEscape(productID), nil, nil, nil, "remove favorite")
}

// MyOrders lists the signed-in user's orders.
func (c *Client) MyOrders(ctx context.Context) ([]domain.Order, error) {
	var orders listOf[domain.Order]
	if err := c.send(ctx, c.auth, http.MethodGet, myOrdersPath, nil, nil, &orders, "list orders"); err != nil {
		return nil, err
	}
	return orders.list(), nil
}

// StartPayment opens a hosted payment session and returns its token.
func (c *Client) StartPayment(ctx context.Context, req domain.PaymentRequest, idempotencyKey string) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal payment request: %w", err)
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, paymentStartPath, nil, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		httpReq.Header.Set(IdempotencyHeader, idempotencyKey)
	}

	resp, err := c.auth.Do(ctx, httpReq)
	if err != nil {
		return "", fmt.Errorf("start payment: %w", err)
	}

	var res struct {
		Token       string `json:"token"`
		IframeToken string `json:"iframeToken"`
	}
	if err := httpclient.DecodeJSON(resp, &res, "start payment"); err != nil {
		return "", err
	}
	token := res.Token
	if token == "" {
		token = res.IframeToken
	}
	if token == "" {
		return "", fmt.Errorf("start payment: response carried no token")
	}
	c.logger.InfoContext(ctx, "payment session started",
		slog.Int("items", len(req.Items)),
		slog.String("idempotency_key", idempotencyKey),
	)
	return token, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// send encodes payload (when not nil) as the JSON body, runs the request
// through doer and decodes a 2xx body into dst (when not nil).
func (c *Client) send(ctx context.Context, doer httpclient.Doer, method, path string, query url.Values, payload, dst any, op string) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := doer.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return httpclient.DecodeJSON(resp, dst, op)
}
