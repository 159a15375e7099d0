package http

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"github.com/NyquistJnr/cherrylconcept-sub001/internal/session"
)

const maxOrderBody = 1 << 20 // 1MB

// OrderHandler submits orders upstream through the authenticated
// client, inheriting its one-refresh-one-retry behaviour on 401.
type OrderHandler struct {
	client    *session.Client
	ordersURL string
	log       *slog.Logger
}

func NewOrderHandler(client *session.Client, ordersURL string, log *slog.Logger) *OrderHandler {
	return &OrderHandler{client: client, ordersURL: ordersURL, log: log}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxOrderBody))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "could not read request body")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, h.ordersURL, bytes.NewReader(body))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		h.log.Error("order submission failed", slog.Any("err", err))
		respondError(w, http.StatusBadGateway, "upstream_unavailable", "order service unavailable")
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		h.log.Error("order response copy failed", slog.Any("err", err))
	}
}
