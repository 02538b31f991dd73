// Package api exposes the marketplace services over JSON HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/safar/artisan-market/internal/cart"
	"github.com/safar/artisan-market/internal/catalog"
	"github.com/safar/artisan-market/internal/orders"
	"github.com/safar/artisan-market/internal/reviews"
	"github.com/safar/artisan-market/internal/seller"
	"github.com/safar/artisan-market/internal/shops"
)

// Services holds everything the handlers call into.
type Services struct {
	Catalog   *catalog.Service
	Orders    *orders.Service
	Reviews   *reviews.Service
	Shops     *shops.Service
	Dashboard *seller.Dashboard
	Registrar *seller.Registrar
	Carts     *cart.Sessions
	Validate  *validator.Validate
}

type Server struct {
	Services
	logger zerolog.Logger
}

func NewServer(services Services, logger zerolog.Logger) *Server {
	return &Server{Services: services, logger: logger}
}

// Routes builds the router with the request id and logging middleware installed.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(RequestIDMiddleware)
	r.Use(LoggerMiddleware(s.logger))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.handleSearchProducts)
			r.Post("/", s.handleCreateProduct)
			r.Get("/featured", s.handleFeaturedProducts)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetProduct)
				r.Patch("/", s.handleUpdateProduct)
				r.Delete("/", s.handleDeleteProduct)
				r.Get("/reviews", s.handleProductReviews)
				r.Post("/reviews", s.handleCreateReview)
			})
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/pending", s.handlePendingReviews)
			r.Get("/{id}", s.handleGetReview)
			r.Post("/{id}/approve", s.handleApproveReview)
			r.Delete("/{id}", s.handleDeleteReview)
		})

		r.Route("/shops", func(r chi.Router) {
			r.Get("/", s.handleListShops)
			r.Post("/", s.handleCreateShop)
			r.Get("/by-url/{slug}", s.handleShopByURL)
			r.Get("/{id}", s.handleGetShop)
			r.Patch("/{id}", s.handleUpdateShop)
			r.Delete("/{id}", s.handleDeleteShop)
			r.Get("/{id}/products", s.handleShopProducts)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", s.handleGetCart)
			r.Delete("/", s.handleClearCart)
			r.Post("/items", s.handleAddCartItem)
			r.Put("/items/{productID}", s.handleUpdateCartItem)
			r.Delete("/items/{productID}", s.handleRemoveCartItem)
		})

		r.Get("/checkout", s.handleCheckoutSummary)
		r.Post("/checkout", s.handleCheckout)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", s.handleListOrders)
			r.Get("/{id}", s.handleGetOrder)
			r.Patch("/{id}", s.handleUpdateOrder)
			r.Put("/{id}/status", s.handleUpdateOrderStatus)
		})

		r.Get("/seller/dashboard", s.handleSellerDashboard)
		r.Post("/seller/register", s.handleSellerRegister)

		r.Get("/preferences/role", s.handleGetRole)
		r.Put("/preferences/role", s.handleSetRole)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
