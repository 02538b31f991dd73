package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/safar/artisan-market/internal/database"
	"github.com/safar/artisan-market/internal/models"
)

const orderColumns = `id, customer_id, customer_name, shop_id, product_id, product_title, product_image,
	quantity, total_amount, platform_fee, seller_payout, shipping_address, customization_files,
	special_instructions, payment_reference, status, tracking_number, shipping_label_url,
	created_at, shipped_at`

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func scanOrder(row rowScanner) (*models.Order, error) {
	order := &models.Order{}
	var address, files []byte
	var shippedAt sql.NullTime

	err := row.Scan(
		&order.ID,
		&order.CustomerID,
		&order.CustomerName,
		&order.ShopID,
		&order.ProductID,
		&order.ProductTitle,
		&order.ProductImage,
		&order.Quantity,
		&order.TotalAmount,
		&order.PlatformFee,
		&order.SellerPayout,
		&address,
		&files,
		&order.SpecialInstructions,
		&order.PaymentReference,
		&order.Status,
		&order.TrackingNumber,
		&order.ShippingLabelURL,
		&order.CreatedAt,
		&shippedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(address, &order.ShippingAddress); err != nil {
		return nil, fmt.Errorf("decode shipping address: %w", err)
	}
	if err := json.Unmarshal(files, &order.CustomizationFiles); err != nil {
		return nil, fmt.Errorf("decode customization files: %w", err)
	}
	if shippedAt.Valid {
		order.ShippedAt = &shippedAt.Time
	}

	return order, nil
}

func encodeOrderDocs(order models.Order) (address, files []byte, err error) {
	address, err = json.Marshal(order.ShippingAddress)
	if err != nil {
		return nil, nil, fmt.Errorf("encode shipping address: %w", err)
	}

	customization := order.CustomizationFiles
	if customization == nil {
		customization = []models.CustomizationFile{}
	}
	files, err = json.Marshal(customization)
	if err != nil {
		return nil, nil, fmt.Errorf("encode customization files: %w", err)
	}
	return address, files, nil
}

func (r *OrderRepo) List(ctx context.Context) ([]models.Order, error) {
	return r.query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY id`)
}

func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID int64) ([]models.Order, error) {
	return r.query(ctx, `SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 ORDER BY id`, customerID)
}

func (r *OrderRepo) ListByShop(ctx context.Context, shopID int64) ([]models.Order, error) {
	return r.query(ctx, `SELECT `+orderColumns+` FROM orders WHERE shop_id = $1 ORDER BY id`, shopID)
}

func (r *OrderRepo) query(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return orders, nil
}

func (r *OrderRepo) Get(ctx context.Context, id int64) (*models.Order, error) {
	order, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

func (r *OrderRepo) Create(ctx context.Context, o models.Order) (*models.Order, error) {
	address, files, err := encodeOrderDocs(o)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO orders (customer_id, customer_name, shop_id, product_id, product_title, product_image,
			quantity, total_amount, platform_fee, seller_payout, shipping_address, customization_files,
			special_instructions, payment_reference, status, tracking_number, shipping_label_url,
			created_at, shipped_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING ` + orderColumns

	order, err := scanOrder(r.db.QueryRowContext(ctx, query,
		o.CustomerID, o.CustomerName, o.ShopID, o.ProductID, o.ProductTitle, o.ProductImage,
		o.Quantity, o.TotalAmount, o.PlatformFee, o.SellerPayout, address, files,
		o.SpecialInstructions, o.PaymentReference, o.Status, o.TrackingNumber, o.ShippingLabelURL,
		o.CreatedAt, o.ShippedAt))
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

func (r *OrderRepo) Save(ctx context.Context, o models.Order) (*models.Order, error) {
	address, files, err := encodeOrderDocs(o)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE orders
		SET customer_name = $1, shipping_address = $2, customization_files = $3,
		    special_instructions = $4, status = $5, tracking_number = $6,
		    shipping_label_url = $7, shipped_at = $8
		WHERE id = $9
		RETURNING ` + orderColumns

	order, err := scanOrder(r.db.QueryRowContext(ctx, query,
		o.CustomerName, address, files, o.SpecialInstructions, o.Status, o.TrackingNumber,
		o.ShippingLabelURL, o.ShippedAt, o.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrOrderNotFound
		}
		return nil, fmt.Errorf("save order: %w", err)
	}
	return order, nil
}
