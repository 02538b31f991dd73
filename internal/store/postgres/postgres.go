// Package postgres implements the store repositories on PostgreSQL through database/sql and lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/safar/artisan-market/internal/database"
	"github.com/safar/artisan-market/internal/store"
)

func Repositories(db *sql.DB) store.Repositories {
	return store.Repositories{
		Products: NewProductRepo(db),
		Orders:   NewOrderRepo(db),
		Reviews:  NewReviewRepo(db),
		Shops:    NewShopRepo(db),
	}
}

// Seed inserts the seed collections with their ids kept, skipping rows that
// already exist, then moves every id sequence past the highest id.
func Seed(ctx context.Context, db *sql.DB, seed *store.Seed) error {
	return database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		for _, s := range seed.Shops {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO shops (id, name, custom_url, description, is_active, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (id) DO NOTHING`,
				s.ID, s.Name, s.CustomURL, s.Description, s.IsActive, s.CreatedAt)
			if err != nil {
				return fmt.Errorf("seed shop %d: %w", s.ID, err)
			}
		}

		for _, p := range seed.Products {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO products (id, title, description, price, category, product_type, images,
					rating, review_count, sales_count, inventory, shop_id, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
				ON CONFLICT (id) DO NOTHING`,
				p.ID, p.Title, p.Description, p.Price, p.Category, p.ProductType, pq.Array(p.Images),
				p.Rating, p.ReviewCount, p.SalesCount, p.Inventory, p.ShopID, p.CreatedAt)
			if err != nil {
				return fmt.Errorf("seed product %d: %w", p.ID, err)
			}
		}

		for _, o := range seed.Orders {
			address, files, err := encodeOrderDocs(o)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO orders (id, customer_id, customer_name, shop_id, product_id, product_title,
					product_image, quantity, total_amount, platform_fee, seller_payout, shipping_address,
					customization_files, special_instructions, payment_reference, status, tracking_number,
					shipping_label_url, created_at, shipped_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
				ON CONFLICT (id) DO NOTHING`,
				o.ID, o.CustomerID, o.CustomerName, o.ShopID, o.ProductID, o.ProductTitle,
				o.ProductImage, o.Quantity, o.TotalAmount, o.PlatformFee, o.SellerPayout, address,
				files, o.SpecialInstructions, o.PaymentReference, o.Status, o.TrackingNumber,
				o.ShippingLabelURL, o.CreatedAt, o.ShippedAt)
			if err != nil {
				return fmt.Errorf("seed order %d: %w", o.ID, err)
			}
		}

		for _, r := range seed.Reviews {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO reviews (id, product_id, customer_name, rating, text, media, is_approved, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				ON CONFLICT (id) DO NOTHING`,
				r.ID, r.ProductID, r.CustomerName, r.Rating, r.Text, pq.Array(r.Media), r.IsApproved, r.CreatedAt)
			if err != nil {
				return fmt.Errorf("seed review %d: %w", r.ID, err)
			}
		}

		for _, table := range []string{"shops", "products", "orders", "reviews"} {
			query := fmt.Sprintf(
				`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)`,
				table)
			if _, err := tx.ExecContext(ctx, query); err != nil {
				return fmt.Errorf("reset %s sequence: %w", table, err)
			}
		}

		return nil
	})
}
