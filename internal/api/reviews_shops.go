package api

import (
	"net/http"

	"github.com/safar/artisan-market/internal/shops"
)

func (s *Server) handlePendingReviews(w http.ResponseWriter, r *http.Request) {
	pending, err := s.Reviews.ListPending(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, pending)
}

func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	review, err := s.Reviews.GetByID(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, review)
}

func (s *Server) handleApproveReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	review, err := s.Reviews.Approve(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, review)
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.Reviews.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListShops(w http.ResponseWriter, r *http.Request) {
	list, err := s.Shops.GetAll(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateShop(w http.ResponseWriter, r *http.Request) {
	var req shops.CreateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	shop, err := s.Shops.Create(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, shop)
}

func (s *Server) handleGetShop(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	shop, err := s.Shops.GetByID(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, shop)
}

func (s *Server) handleShopByURL(w http.ResponseWriter, r *http.Request) {
	shop, err := s.Shops.GetByCustomURL(r.Context(), urlParam(r, "slug"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, shop)
}

func (s *Server) handleUpdateShop(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req shops.UpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	shop, err := s.Shops.Update(r.Context(), id, req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, shop)
}

func (s *Server) handleDeleteShop(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.Shops.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleShopProducts(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if _, err := s.Shops.GetByID(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}

	products, err := s.Catalog.GetByShopID(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}
