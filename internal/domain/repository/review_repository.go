package repository

import (
	"context"

	"github.com/shoprates/ratings-review-api/internal/domain/entity"
)

// ReviewRepository defines the interface for review persistence.
//
// The one-review-per-(user, product) invariant lives in the store as a
// unique constraint; Create surfaces a violation as ErrDuplicate so
// concurrent first-review races resolve without in-process locking.
type ReviewRepository interface {
	Create(ctx context.Context, r *entity.Review) error
	// ListByProduct returns a product's reviews newest-first with the
	// reviewer's username joined in.
	ListByProduct(ctx context.Context, productID string) ([]entity.Review, error)
	// ListRatings returns lightweight rating rows for one product,
	// enough for aggregation and nothing more.
	ListRatings(ctx context.Context, productID string) ([]entity.Review, error)
	// ListAllRatings returns rating rows across every product so a
	// catalog listing can aggregate without a query per product.
	ListAllRatings(ctx context.Context) ([]entity.Review, error)
	FindByUserAndProduct(ctx context.Context, userID, productID string) (*entity.Review, error)
}

// TagRepository defines the interface for review tag persistence.
type TagRepository interface {
	CreateBatch(ctx context.Context, reviewID string, values []string) error
	ListByReview(ctx context.Context, reviewID string) ([]string, error)
	// ListByProduct returns every tag row attached to a product's
	// reviews, in insertion order.
	ListByProduct(ctx context.Context, productID string) ([]entity.Tag, error)
}
