package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/domain"
	apperrors "github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/errors"
)

// CheckoutInput is the shipping data of a payment start. Either a saved
// address id or an inline address is required.
type CheckoutInput struct {
	ShippingAddressID string           `json:"shippingAddressId,omitempty"`
	Shipping          *domain.Shipping `json:"shipping,omitempty"`
}

// CheckoutService turns the cart into a hosted payment session.
type CheckoutService struct {
	cart           *CartStore
	backend        OrderBackend
	session        SessionState
	notifier       *Notifications
	paymentPageURL string
	logger         *slog.Logger
}

// NewCheckoutService creates a checkout service. paymentPageURL is the hosted
// payment page the session token is appended to.
func NewCheckoutService(
	cart *CartStore,
	backend OrderBackend,
	session SessionState,
	notifier *Notifications,
	paymentPageURL string,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		cart:           cart,
		backend:        backend,
		session:        session,
		notifier:       notifier,
		paymentPageURL: paymentPageURL,
		logger:         logger,
	}
}

// Start sends the cart to the backend and returns the hosted payment session.
// The cart is left untouched until Complete.
func (s *CheckoutService) Start(ctx context.Context, in CheckoutInput) (*domain.PaymentSession, error) {
	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}
	in.ShippingAddressID = strings.TrimSpace(in.ShippingAddressID)
	if in.ShippingAddressID == "" && in.Shipping == nil {
		return nil, apperrors.InvalidInput("a shipping address is required")
	}

	req := domain.PaymentRequest{
		Items:             domain.PaymentItemsFrom(lines),
		ShippingAddressID: in.ShippingAddressID,
		Shipping:          in.Shipping,
	}
	idempotencyKey := uuid.NewString()

	token, err := s.backend.StartPayment(ctx, req, idempotencyKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			return nil, apperrors.Unauthorized("please log in to complete your order")
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.ErrorContext(ctx, "payment start failed",
			slog.String("idempotency_key", idempotencyKey),
			slog.String("error", err.Error()),
		)
		s.notifier.Push(domain.NotificationError, "payment could not be started")

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && errors.Is(err, apperrors.ErrPaymentFailed) {
			return nil, appErr
		}
		return nil, apperrors.PaymentFailed("payment could not be started")
	}

	return &domain.PaymentSession{
		Token:      token,
		PaymentURL: s.paymentPageURL + token,
	}, nil
}

// Complete is called once the hosted page reports a successful payment. The
// order now exists on the backend, so the cart is cleared.
func (s *CheckoutService) Complete(ctx context.Context) {
	s.cart.Clear(ctx)
	s.notifier.Push(domain.NotificationSuccess, "your order has been received")
	s.logger.InfoContext(ctx, "checkout completed")
}

// Orders lists the signed-in user's orders.
func (s *CheckoutService) Orders(ctx context.Context) ([]domain.Order, error) {
	if s.session.Current() == nil {
		return nil, apperrors.Unauthorized("please log in to see your orders")
	}
	orders, err := s.backend.MyOrders(ctx)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}
