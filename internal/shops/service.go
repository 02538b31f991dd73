// Package shops manages seller storefronts addressed by a unique custom URL.
package shops

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/safar/artisan-market/internal/models"
	"github.com/safar/artisan-market/internal/store"
)

var ErrInvalidShop = errors.New("shop name or custom url is empty")

type CreateRequest struct {
	Name        string `json:"name"`
	CustomURL   string `json:"custom_url"`
	Description string `json:"description"`
}

type UpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	CustomURL   *string `json:"custom_url,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type Service struct {
	shops store.ShopRepository
	now   func() time.Time
}

func NewService(shops store.ShopRepository) *Service {
	return &Service{shops: shops, now: time.Now}
}

// Slugify lowercases name and joins its letter and digit runs with single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

func (s *Service) GetAll(ctx context.Context) ([]models.Shop, error) {
	shops, err := s.shops.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	return shops, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*models.Shop, error) {
	shop, err := s.shops.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get shop %d: %w", id, err)
	}
	return shop, nil
}

func (s *Service) GetByCustomURL(ctx context.Context, customURL string) (*models.Shop, error) {
	shop, err := s.shops.GetByCustomURL(ctx, customURL)
	if err != nil {
		return nil, fmt.Errorf("get shop %q: %w", customURL, err)
	}
	return shop, nil
}

// Create opens an active shop. An empty custom URL is derived from the name.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Shop, error) {
	customURL := Slugify(req.CustomURL)
	if customURL == "" {
		customURL = Slugify(req.Name)
	}
	if strings.TrimSpace(req.Name) == "" || customURL == "" {
		return nil, ErrInvalidShop
	}

	shop, err := s.shops.Create(ctx, models.Shop{
		Name:        strings.TrimSpace(req.Name),
		CustomURL:   customURL,
		Description: req.Description,
		IsActive:    true,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create shop: %w", err)
	}
	return shop, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*models.Shop, error) {
	shop, err := s.shops.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get shop %d: %w", id, err)
	}

	if req.Name != nil {
		shop.Name = strings.TrimSpace(*req.Name)
	}
	if req.CustomURL != nil {
		shop.CustomURL = Slugify(*req.CustomURL)
	}
	if req.Description != nil {
		shop.Description = *req.Description
	}
	if req.IsActive != nil {
		shop.IsActive = *req.IsActive
	}
	if shop.Name == "" || shop.CustomURL == "" {
		return nil, ErrInvalidShop
	}

	saved, err := s.shops.Save(ctx, *shop)
	if err != nil {
		return nil, fmt.Errorf("save shop %d: %w", id, err)
	}
	return saved, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.shops.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete shop %d: %w", id, err)
	}
	return nil
}
