package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/safar/artisan-market/internal/database"
	"github.com/safar/artisan-market/internal/models"
)

const productColumns = `id, title, description, price, category, product_type, images,
	rating, review_count, sales_count, inventory, shop_id, created_at`

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	product := &models.Product{}
	var images []string
	err := row.Scan(
		&product.ID,
		&product.Title,
		&product.Description,
		&product.Price,
		&product.Category,
		&product.ProductType,
		pq.Array(&images),
		&product.Rating,
		&product.ReviewCount,
		&product.SalesCount,
		&product.Inventory,
		&product.ShopID,
		&product.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	product.Images = images
	return product, nil
}

func (r *ProductRepo) List(ctx context.Context) ([]models.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
}

func (r *ProductRepo) ListByShop(ctx context.Context, shopID int64) ([]models.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products WHERE shop_id = $1 ORDER BY id`, shopID)
}

func (r *ProductRepo) query(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return products, nil
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (*models.Product, error) {
	product, err := scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

func (r *ProductRepo) Create(ctx context.Context, p models.Product) (*models.Product, error) {
	query := `
		INSERT INTO products (title, description, price, category, product_type, images,
			rating, review_count, sales_count, inventory, shop_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + productColumns

	product, err := scanProduct(r.db.QueryRowContext(ctx, query,
		p.Title, p.Description, p.Price, p.Category, p.ProductType, pq.Array(p.Images),
		p.Rating, p.ReviewCount, p.SalesCount, p.Inventory, p.ShopID, p.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// Update reads and rewrites the row under FOR UPDATE so concurrent partial
// updates of different fields do not overwrite each other.
func (r *ProductRepo) Update(ctx context.Context, id int64, update models.ProductUpdate) (*models.Product, error) {
	var updated *models.Product

	err := database.WithRetry(ctx, r.db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		product, err := scanProduct(tx.QueryRowContext(ctx,
			`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return database.ErrProductNotFound
			}
			return fmt.Errorf("lock product: %w", err)
		}

		update.Apply(product)

		updated, err = scanProduct(tx.QueryRowContext(ctx, `
			UPDATE products
			SET title = $1, description = $2, price = $3, category = $4,
			    product_type = $5, images = $6, inventory = $7
			WHERE id = $8
			RETURNING `+productColumns,
			product.Title, product.Description, product.Price, product.Category,
			product.ProductType, pq.Array(product.Images), product.Inventory, id))
		if err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return requireAffected(result, database.ErrProductNotFound)
}

func requireAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
