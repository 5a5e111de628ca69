package repository

import (
	"context"

	"github.com/shoprates/ratings-review-api/internal/domain/entity"
)

// ProductRepository defines the interface for catalog reads. Products
// enter the system through seeding, not through this layer.
type ProductRepository interface {
	List(ctx context.Context) ([]entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}
