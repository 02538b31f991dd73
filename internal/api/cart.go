package api

import (
	"net/http"

	"github.com/safar/artisan-market/internal/cart"
	"github.com/safar/artisan-market/internal/checkout"
	"github.com/safar/artisan-market/internal/models"
	"github.com/shopspring/decimal"
)

type notice struct {
	Level   cart.Level `json:"level"`
	Message string     `json:"message"`
}

type cartView struct {
	Items     []models.CartItem `json:"items"`
	ItemCount int               `json:"item_count"`
	Quantity  int               `json:"quantity"`
	Total     decimal.Decimal   `json:"total"`
	Quote     checkout.Quote    `json:"quote"`
	Notices   []notice          `json:"notices"`
}

type addCartItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// withCart runs fn on the session's cart and answers with the resulting cart view.
func (s *Server) withCart(w http.ResponseWriter, r *http.Request, fn func(*cart.Cart) error) {
	notices := []notice{}
	collect := cart.NotifierFunc(func(level cart.Level, message string) {
		notices = append(notices, notice{Level: level, Message: message})
	})

	var view cartView
	err := s.Carts.With(r.Context(), sessionID(r), func(c *cart.Cart) error {
		if err := fn(c); err != nil {
			return err
		}
		view = cartView{
			Items:     c.Items(),
			ItemCount: c.Len(),
			Quantity:  c.Quantity(),
			Total:     c.Total(),
			Quote:     checkout.NewQuote(c.Total()),
		}
		return nil
	}, cart.WithNotifier(collect))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	view.Notices = notices
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	s.withCart(w, r, func(*cart.Cart) error { return nil })
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	s.withCart(w, r, func(c *cart.Cart) error {
		return c.Clear(r.Context())
	})
}

func (s *Server) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	product, err := s.Catalog.GetByID(r.Context(), req.ProductID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.withCart(w, r, func(c *cart.Cart) error {
		return c.AddToCart(r.Context(), *product, req.Quantity)
	})
}

func (s *Server) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productID")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req updateCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	// quantities below one are raised to one, never stored
	quantity := max(1, req.Quantity)
	s.withCart(w, r, func(c *cart.Cart) error {
		return c.UpdateQuantity(r.Context(), productID, quantity)
	})
}

func (s *Server) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productID")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.withCart(w, r, func(c *cart.Cart) error {
		return c.RemoveFromCart(r.Context(), productID)
	})
}
