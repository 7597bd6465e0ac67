package ports

import (
	"context"

	"github.com/backendgym/admin-auth-api/internal/core/domain"
)

// UserRepository defines the interface for user credential persistence.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// UpdateRefreshTokenHash overwrites the stored refresh-token hash for the
	// given user in a single write; passing nil clears it.
	UpdateRefreshTokenHash(ctx context.Context, id string, hash *string) error
	// Create is used by the seed routine only.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
