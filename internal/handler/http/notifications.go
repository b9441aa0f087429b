package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/service"
	apperrors "github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/errors"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/httputil"
)

// NotificationHandler exposes pending toasts.
type NotificationHandler struct {
	notifications *service.Notifications
	logger        *slog.Logger
}

// NewNotificationHandler creates a new notification HTTP handler.
func NewNotificationHandler(notifications *service.Notifications, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		logger:        logger,
	}
}

// ListNotifications handles GET /api/v1/notifications
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.notifications.List())
}

// Dismiss handles DELETE /api/v1/notifications/{id}
func (h *NotificationHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, "id", chi.URLParam(r, "id"))
	if !ok {
		return
	}
	if !h.notifications.Dismiss(id) {
		httputil.WriteError(w, r, apperrors.NotFound("notification", id), h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
