// Package httpapi exposes the storefront over a JSON HTTP API.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts every storefront route on a chi router.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", handler.Health)

	r.Get("/products", handler.ListProducts)
	r.Get("/products/{id}", handler.GetProduct)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", handler.GetCart)
		r.Delete("/", handler.ClearCart)
		r.Get("/totals", handler.CartTotals)
		r.Post("/items", handler.AddItem)
		r.Put("/items/{id}", handler.UpdateItem)
		r.Delete("/items/{id}", handler.RemoveItem)
	})

	r.Post("/discounts/validate", handler.ValidateDiscount)
	r.Post("/checkout", handler.Checkout)

	r.Get("/orders", handler.ListOrders)
	r.Get("/orders/{id}", handler.GetOrder)

	r.Route("/admin", func(r chi.Router) {
		r.Get("/stats", handler.AdminStats)
		r.Post("/discount-codes", handler.GenerateDiscountCode)
	})
	return r
}
