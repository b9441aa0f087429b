package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/domain"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/service"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/httputil"
)

// FavoritesHandler exposes the signed-in user's favorite products.
type FavoritesHandler struct {
	favorites *service.Favorites
	logger    *slog.Logger
}

// NewFavoritesHandler creates a new favorites HTTP handler.
func NewFavoritesHandler(favorites *service.Favorites, logger *slog.Logger) *FavoritesHandler {
	return &FavoritesHandler{
		favorites: favorites,
		logger:    logger,
	}
}

// FavoritesResponse lists favorite product ids.
type FavoritesResponse struct {
	ProductIDs []domain.ID `json:"productIds"`
}

// ToggleResponse is the state of a product after a toggle.
type ToggleResponse struct {
	ProductID string `json:"productId"`
	Favorite  bool   `json:"favorite"`
}

// ListFavorites handles GET /api/v1/favorites
func (h *FavoritesHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, FavoritesResponse{ProductIDs: h.favorites.List()})
}

// Toggle handles POST /api/v1/favorites/{productId}/toggle
func (h *FavoritesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseID(w, "productId", chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	on, err := h.favorites.Toggle(r.Context(), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, ToggleResponse{ProductID: productID, Favorite: on})
}
