package checkout

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/safar/artisan-market/internal/cart"
	"github.com/safar/artisan-market/internal/models"
	"github.com/safar/artisan-market/internal/orders"
)

const defaultCountry = "USA"

// OrderPlacer is the part of the order service checkout needs.
type OrderPlacer interface {
	Create(ctx context.Context, req orders.CreateRequest) (*models.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Order, error)
}

type Customization struct {
	Files               map[int64][]models.CustomizationFile `json:"files"`
	SpecialInstructions string                               `json:"special_instructions"`
}

// Payment is checked for presence only; no card is charged.
type Payment struct {
	CardNumber string `json:"card_number" validate:"required"`
	CardName   string `json:"card_name" validate:"required"`
	ExpiryDate string `json:"expiry_date" validate:"required"`
	CVV        string `json:"cvv" validate:"required"`
}

type Result struct {
	Orders []models.Order `json:"orders"`
	Quote  Quote          `json:"quote"`
}

// PlacementError reports a checkout whose orders could not all be created.
// Orders created before the failure were cancelled; CompensationErrors lists
// the cancellations that failed too.
type PlacementError struct {
	Err                error
	Created            []int64
	CompensationErrors []error
}

func (e *PlacementError) Error() string {
	msg := fmt.Sprintf("place orders: %v (%d created and cancelled", e.Err, len(e.Created))
	if len(e.CompensationErrors) > 0 {
		msg += fmt.Sprintf(", %d cancellations failed", len(e.CompensationErrors))
	}
	return msg + ")"
}

func (e *PlacementError) Unwrap() error {
	return e.Err
}

type Flow struct {
	cart       *cart.Cart
	placer     OrderPlacer
	validate   *validator.Validate
	logger     zerolog.Logger
	wizard     *Wizard
	customerID int64

	shipping     models.ShippingAddress
	files        map[int64][]models.CustomizationFile
	instructions string
	placed       bool

	newPaymentReference func() string
}

// NewFlow starts a checkout of c for customerID. An empty cart cannot be checked out.
func NewFlow(c *cart.Cart, placer OrderPlacer, validate *validator.Validate, logger zerolog.Logger, customerID int64) (*Flow, error) {
	if c.Len() == 0 {
		return nil, ErrEmptyCart
	}
	return &Flow{
		cart:                c,
		placer:              placer,
		validate:            validate,
		logger:              logger,
		wizard:              NewWizard(c.HasCustomizable()),
		customerID:          customerID,
		files:               map[int64][]models.CustomizationFile{},
		newPaymentReference: PaymentReference,
	}, nil
}

func (f *Flow) Wizard() *Wizard {
	return f.wizard
}

// Quote prices the cart as it is now.
func (f *Flow) Quote() Quote {
	return NewQuote(f.cart.Total())
}

func (f *Flow) SubmitShipping(ctx context.Context, address models.ShippingAddress) error {
	if err := f.wizard.expect(StepShipping); err != nil {
		return err
	}
	if address.Country == "" {
		address.Country = defaultCountry
	}
	if err := f.validate.StructCtx(ctx, address); err != nil {
		return err
	}

	f.shipping = address
	return f.wizard.Next()
}

func (f *Flow) SubmitCustomization(ctx context.Context, c Customization) error {
	if err := f.wizard.expect(StepCustomization); err != nil {
		return err
	}

	inCart := map[int64]bool{}
	for _, item := range f.cart.Items() {
		inCart[item.ID] = true
	}

	files := make(map[int64][]models.CustomizationFile, len(c.Files))
	for productID, list := range c.Files {
		if !inCart[productID] {
			return fmt.Errorf("%w: %d", ErrNotInCart, productID)
		}
		if err := validateFiles(productID, list); err != nil {
			return err
		}
		files[productID] = append([]models.CustomizationFile(nil), list...)
	}

	f.files = files
	f.instructions = c.SpecialInstructions
	return f.wizard.Next()
}

// SubmitPayment places one order per cart line, in cart order. If any placement fails the
// orders already placed are cancelled, the cart is kept and a *PlacementError is returned.
// On success the cart is cleared.
func (f *Flow) SubmitPayment(ctx context.Context, p Payment) (*Result, error) {
	if f.placed {
		return nil, fmt.Errorf("%w: orders already placed", ErrWrongStep)
	}
	if err := f.wizard.expect(StepPayment); err != nil {
		return nil, err
	}
	if err := f.validate.StructCtx(ctx, p); err != nil {
		return nil, err
	}

	quote := f.Quote()
	items := f.cart.Items()
	placed := make([]models.Order, 0, len(items))

	for _, item := range items {
		files := f.files[item.ID]
		if files == nil {
			files = []models.CustomizationFile{}
		}

		order, err := f.placer.Create(ctx, orders.CreateRequest{
			CustomerID:          f.customerID,
			CustomerName:        f.shipping.Name,
			ShopID:              item.ShopID,
			ProductID:           item.ID,
			ProductTitle:        item.Title,
			ProductImage:        item.PrimaryImage(),
			Quantity:            item.Quantity,
			TotalAmount:         item.LineTotal(),
			ShippingAddress:     f.shipping,
			CustomizationFiles:  files,
			SpecialInstructions: f.instructions,
			PaymentReference:    f.newPaymentReference(),
		})
		if err != nil {
			return nil, f.compensate(ctx, placed, fmt.Errorf("product %d: %w", item.ID, err))
		}
		placed = append(placed, *order)
	}

	f.placed = true
	if err := f.cart.Clear(ctx); err != nil {
		f.logger.Error().Err(err).Int("orders", len(placed)).Msg("orders placed but cart not cleared")
	}

	return &Result{Orders: placed, Quote: quote}, nil
}

func (f *Flow) compensate(ctx context.Context, placed []models.Order, cause error) *PlacementError {
	perr := &PlacementError{Err: cause}

	// cancellations must run even when the request context is gone
	ctx = context.WithoutCancel(ctx)
	for _, order := range placed {
		perr.Created = append(perr.Created, order.ID)
		if _, err := f.placer.UpdateStatus(ctx, order.ID, models.OrderStatusCancelled); err != nil {
			perr.CompensationErrors = append(perr.CompensationErrors, fmt.Errorf("cancel order %d: %w", order.ID, err))
		}
	}

	f.logger.Warn().
		Err(cause).
		Ints64("cancelled", perr.Created).
		Int("cancel_failures", len(perr.CompensationErrors)).
		Msg("checkout failed, placed orders cancelled")
	return perr
}

// PaymentReference returns a synthetic payment id: "pi_" and 9 base-36 characters.
func PaymentReference() string {
	id := uuid.New()
	digits := new(big.Int).SetBytes(id[:]).Text(36)
	if len(digits) < 9 {
		digits = strings.Repeat("0", 9-len(digits)) + digits
	}
	return "pi_" + digits[len(digits)-9:]
}
