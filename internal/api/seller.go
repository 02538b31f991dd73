package api

import (
	"net/http"

	"github.com/safar/artisan-market/internal/models"
	"github.com/safar/artisan-market/internal/prefs"
	"github.com/safar/artisan-market/internal/seller"
)

type roleBody struct {
	Role models.Role `json:"role"`
}

func (s *Server) handleSellerDashboard(w http.ResponseWriter, r *http.Request) {
	shopID, err := queryInt64(r, "shop_id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	stats, err := s.Dashboard.Stats(r.Context(), shopID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleSellerRegister(w http.ResponseWriter, r *http.Request) {
	var reg seller.Registration
	if err := decodeJSON(r, &reg); err != nil {
		s.fail(w, r, err)
		return
	}

	shop, err := s.Registrar.Register(r.Context(), reg)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, shop)
}

func (s *Server) handleGetRole(w http.ResponseWriter, r *http.Request) {
	role, err := prefs.Role(r.Context(), s.Carts.Store(sessionID(r)))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, roleBody{Role: role})
}

func (s *Server) handleSetRole(w http.ResponseWriter, r *http.Request) {
	var body roleBody
	if err := decodeJSON(r, &body); err != nil {
		s.fail(w, r, err)
		return
	}

	if err := prefs.SetRole(r.Context(), s.Carts.Store(sessionID(r)), body.Role); err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, body)
}
