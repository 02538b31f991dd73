// Package catalog searches and manages marketplace products.
package catalog

import (
	"sort"
	"strings"

	"github.com/safar/artisan-market/internal/models"
	"github.com/shopspring/decimal"
)

const (
	SortNewest    = "newest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortRating    = "rating"
	SortPopular   = "popular"

	// CategoryAll disables the category filter.
	CategoryAll = "all"
)

// Filter narrows a product search. Zero values and nil pointers disable a criterion.
type Filter struct {
	Query       string
	Category    string
	ProductType models.ProductType
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	MinRating   *float64
	SortBy      string
}

// Search returns the products matching every criterion of f, sorted by f.SortBy.
// The input slice is never modified. An unknown sort key keeps the input order.
func Search(products []models.Product, f Filter) []models.Product {
	query := strings.ToLower(f.Query)

	result := make([]models.Product, 0, len(products))
	for _, p := range products {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Title), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		if f.Category != "" && f.Category != CategoryAll && p.Category != f.Category {
			continue
		}
		if f.ProductType != "" && p.ProductType != f.ProductType {
			continue
		}
		if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
			continue
		}
		if f.MinRating != nil && p.Rating < *f.MinRating {
			continue
		}
		result = append(result, p)
	}

	sortBy := f.SortBy
	if sortBy == "" {
		sortBy = SortNewest
	}

	switch sortBy {
	case SortPriceAsc:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price.LessThan(result[j].Price) })
	case SortPriceDesc:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price.GreaterThan(result[j].Price) })
	case SortRating:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Rating > result[j].Rating })
	case SortPopular:
		sort.SliceStable(result, func(i, j int) bool { return result[i].SalesCount > result[j].SalesCount })
	case SortNewest:
		sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	}

	return result
}
