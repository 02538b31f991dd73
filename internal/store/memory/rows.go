package memory

import "github.com/safar/artisan-market/internal/models"

type (
	productRow models.Product
	orderRow   models.Order
	reviewRow  models.Review
	shopRow    models.Shop
)

func (r productRow) id() int64 { return r.ID }
func (r orderRow) id() int64   { return r.ID }
func (r reviewRow) id() int64  { return r.ID }
func (r shopRow) id() int64    { return r.ID }

// Rows never share slices with callers; every read and write copies.
// Nil stays nil and empty stays empty so JSON output keeps its shape.

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

func cloneProduct(p models.Product) models.Product {
	p.Images = cloneSlice(p.Images)
	return p
}

func cloneOrder(o models.Order) models.Order {
	o.CustomizationFiles = cloneSlice(o.CustomizationFiles)
	if o.ShippedAt != nil {
		shippedAt := *o.ShippedAt
		o.ShippedAt = &shippedAt
	}
	return o
}

func cloneReview(r models.Review) models.Review {
	r.Media = cloneSlice(r.Media)
	return r
}
