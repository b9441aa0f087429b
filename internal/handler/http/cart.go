package http

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/domain"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/service"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/httputil"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	cart   *service.CartStore
	logger *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(cart *service.CartStore, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		cart:   cart,
		logger: logger,
	}
}

// UpdateQuantityRequest is the JSON request body for setting a line's quantity.
// Values below 1 are raised to 1 by the cart.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"lte=999"`
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.cart.View())
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear(r.Context())
	httputil.WriteData(w, http.StatusOK, h.cart.View())
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req domain.AddItemInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := h.cart.AddItem(r.Context(), req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, h.cart.View())
}

// UpdateQuantity handles PUT /api/v1/cart/items/{key}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	key, ok := lineKey(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.cart.UpdateQty(r.Context(), key, req.Quantity)
	httputil.WriteData(w, http.StatusOK, h.cart.View())
}

// RemoveItem handles DELETE /api/v1/cart/items/{key}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	key, ok := lineKey(w, r)
	if !ok {
		return
	}
	h.cart.RemoveItem(r.Context(), key)
	httputil.WriteData(w, http.StatusOK, h.cart.View())
}

// Increment handles POST /api/v1/cart/items/{key}/increment
func (h *CartHandler) Increment(w http.ResponseWriter, r *http.Request) {
	key, ok := lineKey(w, r)
	if !ok {
		return
	}
	h.cart.Increment(r.Context(), key)
	httputil.WriteData(w, http.StatusOK, h.cart.View())
}

// Decrement handles POST /api/v1/cart/items/{key}/decrement
func (h *CartHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	key, ok := lineKey(w, r)
	if !ok {
		return
	}
	h.cart.Decrement(r.Context(), key)
	httputil.WriteData(w, http.StatusOK, h.cart.View())
}

// Open handles POST /api/v1/cart/open
func (h *CartHandler) Open(w http.ResponseWriter, r *http.Request) {
	h.cart.OpenCart()
	httputil.WriteData(w, http.StatusOK, h.cart.View())
}

// Close handles POST /api/v1/cart/close
func (h *CartHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.cart.CloseCart()
	httputil.WriteData(w, http.StatusOK, h.cart.View())
}

// Toggle handles POST /api/v1/cart/toggle
func (h *CartHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	h.cart.ToggleCart()
	httputil.WriteData(w, http.StatusOK, h.cart.View())
}

// lineKey reads the {key} path parameter. Keys contain ':' separators and may
// arrive percent-encoded.
func lineKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "key")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}
	return httputil.ParseID(w, "key", raw)
}
