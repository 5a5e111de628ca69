package repository

import (
	"context"

	"github.com/shoprates/ratings-review-api/internal/domain/entity"
)

// UserRepository defines the interface for account persistence.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindByEmailOrUsername returns whichever existing user collides
	// with a registration attempt, or ErrNotFound when both are free.
	FindByEmailOrUsername(ctx context.Context, email, username string) (*entity.User, error)
}
