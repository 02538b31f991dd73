package seller

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/safar/artisan-market/internal/models"
	"github.com/safar/artisan-market/internal/shops"
)

const MaxDocumentSize = 10 << 20

type Document struct {
	Name        string `json:"name" validate:"required"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size" validate:"lte=10485760"`
}

type Registration struct {
	BusinessName        string     `json:"business_name" validate:"required"`
	BusinessEmail       string     `json:"business_email" validate:"required,email"`
	BusinessPhone       string     `json:"business_phone" validate:"required"`
	BusinessAddress     string     `json:"business_address"`
	BusinessDescription string     `json:"business_description"`
	TaxID               string     `json:"tax_id" validate:"required"`
	BankAccountNumber   string     `json:"bank_account_number"`
	BankRoutingNumber   string     `json:"bank_routing_number"`
	BusinessDocuments   []Document `json:"business_documents" validate:"min=1,max=3,dive"`
	IdentityDocuments   []Document `json:"identity_documents" validate:"min=1,max=2,dive"`
}

type ShopCreator interface {
	Create(ctx context.Context, req shops.CreateRequest) (*models.Shop, error)
}

type Registrar struct {
	shops    ShopCreator
	validate *validator.Validate
}

func NewRegistrar(shops ShopCreator, validate *validator.Validate) *Registrar {
	return &Registrar{shops: shops, validate: validate}
}

// Register validates the application and opens a shop named after the business.
func (r *Registrar) Register(ctx context.Context, reg Registration) (*models.Shop, error) {
	if err := r.validate.StructCtx(ctx, reg); err != nil {
		return nil, err
	}

	shop, err := r.shops.Create(ctx, shops.CreateRequest{
		Name:        reg.BusinessName,
		Description: reg.BusinessDescription,
	})
	if err != nil {
		return nil, fmt.Errorf("register seller: %w", err)
	}
	return shop, nil
}
