package memory

import (
	"context"

	"github.com/safar/artisan-market/internal/database"
	"github.com/safar/artisan-market/internal/models"
)

type ReviewRepo struct {
	db *DB
}

func (r *ReviewRepo) List(ctx context.Context) ([]models.Review, error) {
	return r.filter(ctx, func(models.Review) bool { return true })
}

func (r *ReviewRepo) ListByProduct(ctx context.Context, productID int64) ([]models.Review, error) {
	return r.filter(ctx, func(rv models.Review) bool { return rv.ProductID == productID })
}

func (r *ReviewRepo) filter(ctx context.Context, keep func(models.Review) bool) ([]models.Review, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	reviews := []models.Review{}
	for _, row := range r.db.reviews {
		if review := models.Review(row); keep(review) {
			reviews = append(reviews, cloneReview(review))
		}
	}
	return reviews, nil
}

func (r *ReviewRepo) Get(ctx context.Context, id int64) (*models.Review, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	i := indexOf(r.db.reviews, id)
	if i == -1 {
		return nil, database.ErrReviewNotFound
	}
	review := cloneReview(models.Review(r.db.reviews[i]))
	return &review, nil
}

func (r *ReviewRepo) Create(ctx context.Context, review models.Review) (*models.Review, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	review = cloneReview(review)
	review.ID = assignID(r.db.reviews, &r.db.lastReviewID)
	r.db.reviews = append(r.db.reviews, reviewRow(review))

	created := cloneReview(review)
	return &created, nil
}

func (r *ReviewRepo) SetApproved(ctx context.Context, id int64, approved bool) (*models.Review, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	i := indexOf(r.db.reviews, id)
	if i == -1 {
		return nil, database.ErrReviewNotFound
	}
	r.db.reviews[i].IsApproved = approved

	review := cloneReview(models.Review(r.db.reviews[i]))
	return &review, nil
}

func (r *ReviewRepo) Delete(ctx context.Context, id int64) error {
	if err := r.db.wait(ctx); err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	i := indexOf(r.db.reviews, id)
	if i == -1 {
		return database.ErrReviewNotFound
	}
	r.db.reviews = append(r.db.reviews[:i], r.db.reviews[i+1:]...)
	return nil
}
