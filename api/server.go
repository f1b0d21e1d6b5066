/*
server.go - HTTP router and middleware configuration

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the mobile/web client

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Earnings routes
		r.Route("/earnings", func(r chi.Router) {
			r.Get("/", h.ListEarnings)
			r.Post("/", h.AddEarning)
			r.Post("/archive", h.ArchiveEarnings)
			r.Delete("/{id}", h.DeleteEarning)
		})

		// Expense routes
		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", h.ListExpenses)
			r.Post("/", h.AddExpense)
			r.Delete("/{id}", h.DeleteExpense)
		})

		// Archive routes
		r.Route("/archive", func(r chi.Router) {
			r.Get("/", h.ListArchivedMonths)
			r.Get("/{month}", h.GetArchivedMonth)
			r.Delete("/{month}", h.DeleteArchivedMonth)
		})

		// Catalog routes
		r.Route("/items", func(r chi.Router) {
			r.Get("/", h.ListItems)
			r.Post("/", h.CreateItem)
			r.Put("/{id}", h.UpdateItem)
			r.Delete("/{id}", h.DeleteItem)
		})
		r.Route("/shops", func(r chi.Router) {
			r.Get("/", h.ListShops)
			r.Post("/", h.CreateShop)
			r.Delete("/{id}", h.DeleteShop)
		})

		// Customer ledger routes
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", h.ListCustomers)
			r.Post("/purchases", h.RecordPurchase)
			r.Delete("/{id}", h.DeleteCustomer)
		})

		// Order ledger routes
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.ListOrders)
			r.Post("/", h.RecordOrder)
			r.Delete("/{id}", h.ClearOrder)
			r.Get("/{id}/bill", h.GetOrderBill)
		})

		// Statistics
		r.Get("/stats", h.GetStats)
	})

	return r
}
