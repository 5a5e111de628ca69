package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shoprates/ratings-review-api/internal/domain/entity"
	"github.com/shoprates/ratings-review-api/internal/domain/repository"
)

type TagRepository struct {
	pool *pgxpool.Pool
}

func NewTagRepository(pool *pgxpool.Pool) *TagRepository {
	return &TagRepository{pool: pool}
}

func (r *TagRepository) CreateBatch(ctx context.Context, reviewID string, values []string) error {
	if len(values) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, v := range values {
		batch.Queue(`INSERT INTO review_tags (review_id, tag) VALUES ($1, $2)`, reviewID, v)
	}
	return r.pool.SendBatch(ctx, batch).Close()
}

func (r *TagRepository) ListByReview(ctx context.Context, reviewID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT tag
		FROM review_tags
		WHERE review_id = $1
		ORDER BY created_at, id
	`, reviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		out = append(out, tag)
	}
	return out, rows.Err()
}

func (r *TagRepository) ListByProduct(ctx context.Context, productID string) ([]entity.Tag, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT rt.id, rt.review_id, rt.tag, rt.created_at
		FROM review_tags rt
		JOIN reviews r ON rt.review_id = r.id
		WHERE r.product_id = $1
		ORDER BY rt.created_at, rt.id
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Tag
	for rows.Next() {
		var t entity.Tag
		if err := rows.Scan(&t.ID, &t.ReviewID, &t.Tag, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

var _ repository.TagRepository = (*TagRepository)(nil)
