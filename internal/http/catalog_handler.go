package http

import (
	"log/slog"
	"net/http"

	"github.com/NyquistJnr/cherrylconcept-sub001/internal/catalog"
)

// CatalogHandler proxies the upstream product API. Upstream failures
// degrade to an empty-result shape with a logged diagnostic instead of
// an error response.
type CatalogHandler struct {
	catalog *catalog.Client
	log     *slog.Logger
}

func NewCatalogHandler(c *catalog.Client, log *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: c, log: log}
}

func (h *CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.Products(r.Context(), r.URL.Query())
	if err != nil {
		h.log.Error("product fetch degraded to empty", slog.Any("err", err))
		respondJSON(w, http.StatusOK, catalog.ProductPage{Data: []catalog.Product{}})
		return
	}
	if page.Data == nil {
		page.Data = []catalog.Product{}
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.Categories(r.Context())
	if err != nil {
		h.log.Error("category fetch degraded to empty", slog.Any("err", err))
		respondJSON(w, http.StatusOK, catalog.CategoryList{Data: []catalog.Category{}})
		return
	}
	if list.Data == nil {
		list.Data = []catalog.Category{}
	}
	respondJSON(w, http.StatusOK, list)
}
