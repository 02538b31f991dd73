package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/safar/artisan-market/internal/models"
)

// Seed holds the static collections a store starts from.
type Seed struct {
	Products []models.Product
	Orders   []models.Order
	Reviews  []models.Review
	Shops    []models.Shop
}

// LoadSeed reads products.json, orders.json, reviews.json and shops.json from fsys.
// A missing file yields an empty collection.
func LoadSeed(fsys fs.FS) (*Seed, error) {
	seed := &Seed{}

	files := []struct {
		name string
		dst  any
	}{
		{"products.json", &seed.Products},
		{"orders.json", &seed.Orders},
		{"reviews.json", &seed.Reviews},
		{"shops.json", &seed.Shops},
	}

	for _, f := range files {
		data, err := fs.ReadFile(fsys, f.name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read seed %s: %w", f.name, err)
		}
		if err := json.Unmarshal(data, f.dst); err != nil {
			return nil, fmt.Errorf("decode seed %s: %w", f.name, err)
		}
	}

	return seed, nil
}
