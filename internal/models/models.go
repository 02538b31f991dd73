package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductType string

const (
	ProductTypePhysical     ProductType = "physical"
	ProductTypeDigital      ProductType = "digital"
	ProductTypeCustomizable ProductType = "customizable"
)

func (t ProductType) Valid() bool {
	switch t {
	case ProductTypePhysical, ProductTypeDigital, ProductTypeCustomizable:
		return true
	}
	return false
}

type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ProductType ProductType     `json:"product_type"`
	Images      []string        `json:"images"`
	Rating      float64         `json:"rating"`
	ReviewCount int             `json:"review_count"`
	SalesCount  int             `json:"sales_count"`
	Inventory   int             `json:"inventory"`
	ShopID      int64           `json:"shop_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PrimaryImage returns the first image URL, or "" when the product has none.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// ProductUpdate carries the fields of a partial product update. Nil fields are left untouched.
type ProductUpdate struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    *string          `json:"category,omitempty"`
	ProductType *ProductType     `json:"product_type,omitempty"`
	Images      []string         `json:"images,omitempty"`
	Inventory   *int             `json:"inventory,omitempty"`
}

// Apply merges the non-nil fields of u into p.
func (u ProductUpdate) Apply(p *Product) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.ProductType != nil {
		p.ProductType = *u.ProductType
	}
	if u.Images != nil {
		p.Images = append([]string(nil), u.Images...)
	}
	if u.Inventory != nil {
		p.Inventory = *u.Inventory
	}
}

type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal is price × quantity.
func (c CartItem) LineTotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

type ShippingAddress struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Zip     string `json:"zip" validate:"required"`
	Country string `json:"country" validate:"required"`
}

type CustomizationFile struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

type Order struct {
	ID                  int64               `json:"id"`
	CustomerID          int64               `json:"customer_id"`
	CustomerName        string              `json:"customer_name"`
	ShopID              int64               `json:"shop_id"`
	ProductID           int64               `json:"product_id"`
	ProductTitle        string              `json:"product_title"`
	ProductImage        string              `json:"product_image"`
	Quantity            int                 `json:"quantity"`
	TotalAmount         decimal.Decimal     `json:"total_amount"`
	PlatformFee         decimal.Decimal     `json:"platform_fee"`
	SellerPayout        decimal.Decimal     `json:"seller_payout"`
	ShippingAddress     ShippingAddress     `json:"shipping_address"`
	CustomizationFiles  []CustomizationFile `json:"customization_files"`
	SpecialInstructions string              `json:"special_instructions,omitempty"`
	PaymentReference    string              `json:"payment_reference,omitempty"`
	Status              string              `json:"status"`
	TrackingNumber      string              `json:"tracking_number"`
	ShippingLabelURL    string              `json:"shipping_label_url"`
	CreatedAt           time.Time           `json:"created_at"`
	ShippedAt           *time.Time          `json:"shipped_at"`
}

const (
	OrderStatusNew       = "new"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

type Review struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"product_id"`
	CustomerName string    `json:"customer_name"`
	Rating       int       `json:"rating"`
	Text         string    `json:"text"`
	Media        []string  `json:"media"`
	IsApproved   bool      `json:"is_approved"`
	CreatedAt    time.Time `json:"created_at"`
}

type Shop struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	CustomURL   string    `json:"custom_url"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}
