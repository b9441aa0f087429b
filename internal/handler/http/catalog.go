package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/domain"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/service"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/httputil"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/pagination"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/validator"
)

// CatalogHandler serves categories, product listings, product details and the
// recently viewed list.
type CatalogHandler struct {
	catalog *service.CatalogService
	recent  *service.RecentlyViewed
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(catalog *service.CatalogService, recent *service.RecentlyViewed, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		recent:  recent,
		logger:  logger,
	}
}

// productListParams are the free-text query parameters of a product listing.
type productListParams struct {
	Category string `json:"category" validate:"max=100"`
	Search   string `json:"q" validate:"max=200"`
	Sort     string `json:"sort" validate:"max=30"`
}

// ListCategories handles GET /api/v1/catalog/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.catalog.Categories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, cats)
}

// ListProducts handles GET /api/v1/catalog/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q, err := parseProductQuery(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	products, err := h.catalog.Products(r.Context(), q)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, products)
}

// GetProduct handles GET /api/v1/catalog/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, "id", chi.URLParam(r, "id"))
	if !ok {
		return
	}

	product, err := h.catalog.Product(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, product)
}

// RecentlyViewed handles GET /api/v1/recently-viewed
func (h *CatalogHandler) RecentlyViewed(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.recent.List())
}

func parseProductQuery(v url.Values) (domain.ProductQuery, error) {
	p := productListParams{
		Category: strings.TrimSpace(v.Get("category")),
		Search:   strings.TrimSpace(v.Get("q")),
		Sort:     strings.TrimSpace(v.Get("sort")),
	}
	if err := validator.Validate(p); err != nil {
		return domain.ProductQuery{}, err
	}

	page, err := pagination.FromQuery(v)
	if err != nil {
		return domain.ProductQuery{}, err
	}

	return domain.ProductQuery{
		Category: p.Category,
		Search:   p.Search,
		Sort:     p.Sort,
		Page:     page.Page,
		Limit:    page.Limit,
	}, nil
}
