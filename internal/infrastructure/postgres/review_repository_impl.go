package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shoprates/ratings-review-api/internal/domain/entity"
	"github.com/shoprates/ratings-review-api/internal/domain/repository"
)

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *entity.Review) error {
	images := rv.Images
	if images == nil {
		images = []string{}
	}
	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO reviews (user_id, product_id, rating, review_text, images)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)
		RETURNING id, created_at
	`, rv.UserID, rv.ProductID, rv.Rating, rv.Text, imagesJSON)

	return translate(row.Scan(&rv.ID, &rv.CreatedAt))
}

func (r *ReviewRepository) ListByProduct(ctx context.Context, productID string) ([]entity.Review, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.user_id, r.product_id, r.rating,
		       COALESCE(r.review_text, ''), r.images, r.created_at, u.username
		FROM reviews r
		JOIN users u ON r.user_id = u.id
		WHERE r.product_id = $1
		ORDER BY r.created_at DESC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Review
	for rows.Next() {
		var rv entity.Review
		var rawImages []byte
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.ProductID, &rv.Rating,
			&rv.Text, &rawImages, &rv.CreatedAt, &rv.Username); err != nil {
			return nil, err
		}
		rv.Images = decodeImages(rawImages)
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *ReviewRepository) ListRatings(ctx context.Context, productID string) ([]entity.Review, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT product_id, rating
		FROM reviews
		WHERE product_id = $1
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRatingRows(rows)
}

func (r *ReviewRepository) ListAllRatings(ctx context.Context) ([]entity.Review, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT product_id, rating
		FROM reviews
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRatingRows(rows)
}

func (r *ReviewRepository) FindByUserAndProduct(ctx context.Context, userID, productID string) (*entity.Review, error) {
	rv := &entity.Review{}
	var rawImages []byte
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, product_id, rating, COALESCE(review_text, ''), images, created_at
		FROM reviews
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID)
	if err := row.Scan(&rv.ID, &rv.UserID, &rv.ProductID, &rv.Rating,
		&rv.Text, &rawImages, &rv.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	rv.Images = decodeImages(rawImages)
	return rv, nil
}

func scanRatingRows(rows pgx.Rows) ([]entity.Review, error) {
	var out []entity.Review
	for rows.Next() {
		var rv entity.Review
		if err := rows.Scan(&rv.ProductID, &rv.Rating); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// decodeImages tolerates corrupt image JSON: a row written outside our
// control must read back as "no images", never fail the whole listing.
func decodeImages(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var images []string
	if err := json.Unmarshal(raw, &images); err != nil {
		return nil
	}
	if len(images) == 0 {
		return nil
	}
	return images
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)
