package catalog

import (
	"testing"
	"time"

	"github.com/safar/artisan-market/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureProducts() []models.Product {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	return []models.Product{
		{ID: 1, Title: "Stoneware Mug", Description: "Glazed by hand", Price: decimal.NewFromInt(28), Category: "Pottery & Ceramics", ProductType: models.ProductTypePhysical, Rating: 4.8, SalesCount: 310, CreatedAt: day(1)},
		{ID: 2, Title: "Pet Portrait Mug", Description: "Custom painted", Price: decimal.NewFromInt(45), Category: "Pottery & Ceramics", ProductType: models.ProductTypeCustomizable, Rating: 4.9, SalesCount: 96, CreatedAt: day(5)},
		{ID: 3, Title: "Silver Ring", Description: "A hammered band", Price: decimal.NewFromInt(60), Category: "Jewelry", ProductType: models.ProductTypePhysical, Rating: 4.5, SalesCount: 120, CreatedAt: day(3)},
		{ID: 4, Title: "Wall Calendar", Description: "Printable MUG-free art", Price: decimal.RequireFromString("9.99"), Category: "Digital Downloads", ProductType: models.ProductTypeDigital, Rating: 4.5, SalesCount: 500, CreatedAt: day(2)},
	}
}

func ids(products []models.Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestSearchQueryMatchesTitleOrDescriptionCaseInsensitive(t *testing.T) {
	got := Search(fixtureProducts(), Filter{Query: "mug", SortBy: "none"})
	assert.Equal(t, []int64{1, 2, 4}, ids(got))
}

func TestSearchCategory(t *testing.T) {
	got := Search(fixtureProducts(), Filter{Category: "Jewelry"})
	assert.Equal(t, []int64{3}, ids(got))

	all := Search(fixtureProducts(), Filter{Category: CategoryAll})
	assert.Len(t, all, 4)
}

func TestSearchTypeAndBounds(t *testing.T) {
	minPrice := decimal.NewFromInt(28)
	maxPrice := decimal.NewFromInt(60)
	got := Search(fixtureProducts(), Filter{
		ProductType: models.ProductTypePhysical,
		MinPrice:    &minPrice,
		MaxPrice:    &maxPrice,
		SortBy:      SortPriceAsc,
	})
	assert.Equal(t, []int64{1, 3}, ids(got))

	minRating := 4.8
	rated := Search(fixtureProducts(), Filter{MinRating: &minRating, SortBy: SortRating})
	assert.Equal(t, []int64{2, 1}, ids(rated))
}

func TestSearchZeroBoundsAreApplied(t *testing.T) {
	zero := decimal.Zero
	got := Search(fixtureProducts(), Filter{MaxPrice: &zero})
	assert.Empty(t, got)
}

func TestSearchSorts(t *testing.T) {
	products := fixtureProducts()

	tests := []struct {
		sortBy string
		want   []int64
	}{
		{"", []int64{2, 3, 4, 1}},
		{SortNewest, []int64{2, 3, 4, 1}},
		{SortPriceAsc, []int64{4, 1, 2, 3}},
		{SortPriceDesc, []int64{3, 2, 1, 4}},
		{SortRating, []int64{2, 1, 3, 4}},
		{SortPopular, []int64{4, 1, 3, 2}},
		{"alphabetical", []int64{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Search(products, Filter{SortBy: tt.sortBy})))
		})
	}
}

func TestSearchDoesNotMutateInput(t *testing.T) {
	products := fixtureProducts()
	Search(products, Filter{SortBy: SortPriceDesc})
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(products))
}

func TestSearchPriceAscIsNonDecreasing(t *testing.T) {
	got := Search(fixtureProducts(), Filter{SortBy: SortPriceAsc})
	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Price.LessThan(got[i-1].Price))
	}
}
