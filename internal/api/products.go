package api

import (
	"net/http"
	"strconv"

	"github.com/safar/artisan-market/internal/catalog"
	"github.com/safar/artisan-market/internal/models"
	"github.com/safar/artisan-market/internal/reviews"
	"github.com/safar/artisan-market/internal/store"
	"github.com/shopspring/decimal"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	featuredCount   = 8
)

type createProductRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ProductType string          `json:"product_type" validate:"required,oneof=physical digital customizable"`
	Images      []string        `json:"images" validate:"omitempty,dive,url"`
	Inventory   int             `json:"inventory" validate:"gte=0"`
	ShopID      int64           `json:"shop_id" validate:"required"`
}

func searchFilter(r *http.Request) (catalog.Filter, error) {
	q := r.URL.Query()
	f := catalog.Filter{
		Query:       q.Get("q"),
		Category:    q.Get("category"),
		ProductType: models.ProductType(q.Get("type")),
		SortBy:      q.Get("sort"),
	}

	for name, dst := range map[string]**decimal.Decimal{"min_price": &f.MinPrice, "max_price": &f.MaxPrice} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return f, badRequest("invalid %s", name)
		}
		*dst = &v
	}

	if raw := q.Get("min_rating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return f, badRequest("invalid min_rating")
		}
		f.MinRating = &v
	}

	return f, nil
}

func pageParams(r *http.Request) (page, pageSize int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	return page, pageSize
}

func (s *Server) handleSearchProducts(w http.ResponseWriter, r *http.Request) {
	f, err := searchFilter(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	products, err := s.Catalog.Search(r.Context(), f)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	page, pageSize := pageParams(r)
	respondJSON(w, http.StatusOK, store.Paginate(products, page, pageSize))
}

func (s *Server) handleFeaturedProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.Catalog.Featured(r.Context(), featuredCount)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.Validate.Struct(req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Price.IsNegative() {
		s.fail(w, r, badRequest("price must not be negative"))
		return
	}
	if _, err := s.Shops.GetByID(r.Context(), req.ShopID); err != nil {
		s.fail(w, r, err)
		return
	}

	product, err := s.Catalog.Create(r.Context(), models.Product{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ProductType: models.ProductType(req.ProductType),
		Images:      req.Images,
		Inventory:   req.Inventory,
		ShopID:      req.ShopID,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	product, err := s.Catalog.GetByID(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var update models.ProductUpdate
	if err := decodeJSON(r, &update); err != nil {
		s.fail(w, r, err)
		return
	}
	if update.Price != nil && update.Price.IsNegative() {
		s.fail(w, r, badRequest("price must not be negative"))
		return
	}
	if update.ProductType != nil && !update.ProductType.Valid() {
		s.fail(w, r, badRequest("invalid product_type"))
		return
	}

	product, err := s.Catalog.Update(r.Context(), id, update)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.Catalog.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProductReviews(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	list, err := s.Reviews.ListForProduct(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req reviews.CreateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	req.ProductID = id

	if _, err := s.Catalog.GetByID(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}

	review, err := s.Reviews.Create(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, review)
}
