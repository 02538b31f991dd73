// Package reviews moderates product reviews. New reviews stay hidden until approved.
package reviews

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/safar/artisan-market/internal/models"
	"github.com/safar/artisan-market/internal/store"
)

type CreateRequest struct {
	ProductID    int64    `json:"product_id" validate:"required"`
	CustomerName string   `json:"customer_name" validate:"required"`
	Rating       int      `json:"rating" validate:"min=1,max=5"`
	Text         string   `json:"text"`
	Media        []string `json:"media" validate:"omitempty,dive,url"`
}

type Service struct {
	reviews  store.ReviewRepository
	validate *validator.Validate
	now      func() time.Time
}

func NewService(reviews store.ReviewRepository, validate *validator.Validate) *Service {
	return &Service{reviews: reviews, validate: validate, now: time.Now}
}

// ListForProduct returns the approved reviews of a product.
func (s *Service) ListForProduct(ctx context.Context, productID int64) ([]models.Review, error) {
	all, err := s.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews for product %d: %w", productID, err)
	}

	approved := make([]models.Review, 0, len(all))
	for _, r := range all {
		if r.IsApproved {
			approved = append(approved, r)
		}
	}
	return approved, nil
}

func (s *Service) ListPending(ctx context.Context) ([]models.Review, error) {
	all, err := s.reviews.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	pending := make([]models.Review, 0)
	for _, r := range all {
		if !r.IsApproved {
			pending = append(pending, r)
		}
	}
	return pending, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	review, err := s.reviews.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get review %d: %w", id, err)
	}
	return review, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Review, error) {
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return nil, err
	}

	media := req.Media
	if media == nil {
		media = []string{}
	}

	review, err := s.reviews.Create(ctx, models.Review{
		ProductID:    req.ProductID,
		CustomerName: req.CustomerName,
		Rating:       req.Rating,
		Text:         req.Text,
		Media:        media,
		IsApproved:   false,
		CreatedAt:    s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return review, nil
}

func (s *Service) Approve(ctx context.Context, id int64) (*models.Review, error) {
	review, err := s.reviews.SetApproved(ctx, id, true)
	if err != nil {
		return nil, fmt.Errorf("approve review %d: %w", id, err)
	}
	return review, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.reviews.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete review %d: %w", id, err)
	}
	return nil
}
