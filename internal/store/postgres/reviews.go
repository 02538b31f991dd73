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

const reviewColumns = `id, product_id, customer_name, rating, text, media, is_approved, created_at`

type ReviewRepo struct {
	db *sql.DB
}

func NewReviewRepo(db *sql.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

func scanReview(row rowScanner) (*models.Review, error) {
	review := &models.Review{}
	var media []string
	err := row.Scan(
		&review.ID,
		&review.ProductID,
		&review.CustomerName,
		&review.Rating,
		&review.Text,
		pq.Array(&media),
		&review.IsApproved,
		&review.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	review.Media = media
	return review, nil
}

func (r *ReviewRepo) List(ctx context.Context) ([]models.Review, error) {
	return r.query(ctx, `SELECT `+reviewColumns+` FROM reviews ORDER BY id`)
}

func (r *ReviewRepo) ListByProduct(ctx context.Context, productID int64) ([]models.Review, error) {
	return r.query(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE product_id = $1 ORDER BY id`, productID)
}

func (r *ReviewRepo) query(ctx context.Context, query string, args ...any) ([]models.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, *review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return reviews, nil
}

func (r *ReviewRepo) Get(ctx context.Context, id int64) (*models.Review, error) {
	review, err := scanReview(r.db.QueryRowContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrReviewNotFound
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return review, nil
}

func (r *ReviewRepo) Create(ctx context.Context, rv models.Review) (*models.Review, error) {
	query := `
		INSERT INTO reviews (product_id, customer_name, rating, text, media, is_approved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + reviewColumns

	review, err := scanReview(r.db.QueryRowContext(ctx, query,
		rv.ProductID, rv.CustomerName, rv.Rating, rv.Text, pq.Array(rv.Media), rv.IsApproved, rv.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return review, nil
}

func (r *ReviewRepo) SetApproved(ctx context.Context, id int64, approved bool) (*models.Review, error) {
	review, err := scanReview(r.db.QueryRowContext(ctx,
		`UPDATE reviews SET is_approved = $1 WHERE id = $2 RETURNING `+reviewColumns, approved, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrReviewNotFound
		}
		return nil, fmt.Errorf("approve review: %w", err)
	}
	return review, nil
}

func (r *ReviewRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return requireAffected(result, database.ErrReviewNotFound)
}
