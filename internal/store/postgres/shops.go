package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/safar/artisan-market/internal/database"
	"github.com/safar/artisan-market/internal/models"
)

const shopColumns = `id, name, custom_url, description, is_active, created_at`

type ShopRepo struct {
	db *sql.DB
}

func NewShopRepo(db *sql.DB) *ShopRepo {
	return &ShopRepo{db: db}
}

func scanShop(row rowScanner) (*models.Shop, error) {
	shop := &models.Shop{}
	err := row.Scan(
		&shop.ID,
		&shop.Name,
		&shop.CustomURL,
		&shop.Description,
		&shop.IsActive,
		&shop.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return shop, nil
}

func (r *ShopRepo) List(ctx context.Context) ([]models.Shop, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+shopColumns+` FROM shops ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	defer rows.Close()

	shops := []models.Shop{}
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shop: %w", err)
		}
		shops = append(shops, *shop)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return shops, nil
}

func (r *ShopRepo) Get(ctx context.Context, id int64) (*models.Shop, error) {
	return r.getOne(ctx, `SELECT `+shopColumns+` FROM shops WHERE id = $1`, id)
}

func (r *ShopRepo) GetByCustomURL(ctx context.Context, customURL string) (*models.Shop, error) {
	return r.getOne(ctx, `SELECT `+shopColumns+` FROM shops WHERE custom_url = $1`, customURL)
}

func (r *ShopRepo) getOne(ctx context.Context, query string, arg any) (*models.Shop, error) {
	shop, err := scanShop(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrShopNotFound
		}
		return nil, fmt.Errorf("get shop: %w", err)
	}
	return shop, nil
}

func (r *ShopRepo) Create(ctx context.Context, s models.Shop) (*models.Shop, error) {
	query := `
		INSERT INTO shops (name, custom_url, description, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + shopColumns

	shop, err := scanShop(r.db.QueryRowContext(ctx, query,
		s.Name, s.CustomURL, s.Description, s.IsActive, s.CreatedAt))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, database.ErrShopURLTaken
		}
		return nil, fmt.Errorf("create shop: %w", err)
	}
	return shop, nil
}

func (r *ShopRepo) Save(ctx context.Context, s models.Shop) (*models.Shop, error) {
	query := `
		UPDATE shops
		SET name = $1, custom_url = $2, description = $3, is_active = $4
		WHERE id = $5
		RETURNING ` + shopColumns

	shop, err := scanShop(r.db.QueryRowContext(ctx, query,
		s.Name, s.CustomURL, s.Description, s.IsActive, s.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrShopNotFound
		}
		if database.IsUniqueViolation(err) {
			return nil, database.ErrShopURLTaken
		}
		return nil, fmt.Errorf("save shop: %w", err)
	}
	return shop, nil
}

func (r *ShopRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM shops WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shop: %w", err)
	}
	return requireAffected(result, database.ErrShopNotFound)
}
