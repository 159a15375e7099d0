package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterConfig struct {
	Auth           *AuthHandler
	Cart           *CartHandler
	Catalog        *CatalogHandler
	Orders         *OrderHandler
	RequestTimeout time.Duration
	Log            *slog.Logger
}

// NewRouter wires the middleware stack and every route of the
// storefront surface.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(RouteGuard(cfg.Log))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/set-tokens", cfg.Auth.SetTokens)
			r.Post("/clear-tokens", cfg.Auth.ClearTokens)
			r.Get("/session", cfg.Auth.Session)
			r.Post("/logout", cfg.Auth.Logout)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cfg.Cart.Get)
			r.Get("/totals", cfg.Cart.Totals)
			r.Post("/items", cfg.Cart.AddItem)
			r.Put("/items/{id}", cfg.Cart.UpdateQuantity)
			r.Delete("/items/{id}", cfg.Cart.RemoveItem)
			r.Delete("/", cfg.Cart.Clear)
		})

		r.Get("/products", cfg.Catalog.Products)
		r.Get("/products/categories", cfg.Catalog.Categories)

		r.Post("/orders", cfg.Orders.Create)
	})

	return r
}
