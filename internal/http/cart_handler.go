package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/NyquistJnr/cherrylconcept-sub001/internal/cart"
	"github.com/NyquistJnr/cherrylconcept-sub001/internal/domain"
	"github.com/NyquistJnr/cherrylconcept-sub001/internal/session"
)

// CartIDCookie names the anonymous cart owner cookie. The cart is
// decoupled from login state and survives it.
const CartIDCookie = "cartId"

const cartIDTTL = 30 * 24 * time.Hour

type CartHandler struct {
	carts *cart.Manager
	log   *slog.Logger
}

func NewCartHandler(carts *cart.Manager, log *slog.Logger) *CartHandler {
	return &CartHandler{carts: carts, log: log}
}

type AddItemRequest struct {
	Product  domain.ProductSummary `json:"product"`
	Color    string                `json:"color"`
	Size     string                `json:"size"`
	Quantity int                   `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	Items  []domain.LineItem `json:"items"`
	Totals domain.Totals     `json:"totals"`
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	s := h.store(w, r)
	respondJSON(w, http.StatusOK, CartResponse{Items: s.Items(), Totals: s.Totals()})
}

func (h *CartHandler) Totals(w http.ResponseWriter, r *http.Request) {
	s := h.store(w, r)
	respondJSON(w, http.StatusOK, s.Totals())
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Product.ID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product", "product id is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	s := h.store(w, r)
	s.Add(r.Context(), req.Product, req.Color, req.Size, req.Quantity)
	respondJSON(w, http.StatusCreated, CartResponse{Items: s.Items(), Totals: s.Totals()})
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item id is required")
		return
	}

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	s := h.store(w, r)
	s.UpdateQuantity(r.Context(), itemID, req.Quantity)
	respondJSON(w, http.StatusOK, CartResponse{Items: s.Items(), Totals: s.Totals()})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item id is required")
		return
	}

	s := h.store(w, r)
	s.Remove(r.Context(), itemID)
	respondJSON(w, http.StatusOK, CartResponse{Items: s.Items(), Totals: s.Totals()})
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	s := h.store(w, r)
	s.Clear(r.Context())
	respondJSON(w, http.StatusOK, CartResponse{Items: s.Items(), Totals: s.Totals()})
}

// store resolves the cart owner for the request: the userId cookie
// when logged in, else the cartId cookie, minted on first use.
func (h *CartHandler) store(w http.ResponseWriter, r *http.Request) *cart.Store {
	owner := cookieValue(r, session.UserIDCookie)
	if owner == "" {
		owner = cookieValue(r, CartIDCookie)
	}
	if owner == "" {
		owner = uuid.New().String()
		http.SetCookie(w, &http.Cookie{
			Name:     CartIDCookie,
			Value:    owner,
			Path:     "/",
			MaxAge:   int(cartIDTTL / time.Second),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return h.carts.Store(r.Context(), owner)
}
