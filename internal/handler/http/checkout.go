package http

import (
	"log/slog"
	"net/http"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/service"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/httputil"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/validator"
)

// CheckoutHandler starts hosted payments and lists past orders.
type CheckoutHandler struct {
	checkout *service.CheckoutService
	logger   *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(checkout *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		logger:   logger,
	}
}

// StartCheckout handles POST /api/v1/checkout
func (h *CheckoutHandler) StartCheckout(w http.ResponseWriter, r *http.Request) {
	var req service.CheckoutInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	session, err := h.checkout.Start(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, session)
}

// CompleteCheckout handles POST /api/v1/checkout/complete
func (h *CheckoutHandler) CompleteCheckout(w http.ResponseWriter, r *http.Request) {
	h.checkout.Complete(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// ListOrders handles GET /api/v1/orders
func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.checkout.Orders(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, orders)
}
