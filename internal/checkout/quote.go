package checkout

import "github.com/shopspring/decimal"

var (
	FreeShippingThreshold = decimal.NewFromInt(50)
	FlatShippingRate      = decimal.RequireFromString("5.99")
)

type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// NewQuote ships free from FreeShippingThreshold up, and at the flat rate below it.
func NewQuote(subtotal decimal.Decimal) Quote {
	shipping := FlatShippingRate
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}
