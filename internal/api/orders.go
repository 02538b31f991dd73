package api

import (
	"net/http"
	"strconv"

	"github.com/safar/artisan-market/internal/orders"
)

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	var (
		f   orders.ListFilter
		err error
	)
	if f.CustomerID, err = queryInt64(r, "customer_id"); err != nil {
		s.fail(w, r, err)
		return
	}
	if f.ShopID, err = queryInt64(r, "shop_id"); err != nil {
		s.fail(w, r, err)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	page, err := s.Orders.ListPage(r.Context(), f, r.URL.Query().Get("cursor"), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	order, err := s.Orders.GetByID(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var patch orders.Patch
	if err := decodeJSON(r, &patch); err != nil {
		s.fail(w, r, err)
		return
	}

	order, err := s.Orders.Update(r.Context(), id, patch)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	order, err := s.Orders.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}
