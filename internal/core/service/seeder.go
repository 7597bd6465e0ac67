package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/backendgym/admin-auth-api/internal/core/domain"
	"github.com/backendgym/admin-auth-api/internal/core/ports"
	"github.com/backendgym/admin-auth-api/internal/pkg/password"
)

// SeedAdminInput carries the credentials for the initial admin account.
type SeedAdminInput struct {
	Email    string
	Password string
	Name     string
}

// SeedAdmin provisions the first admin user through the repository. It is a
// no-op when an account with the email already exists, so it is safe to run
// on every deploy.
func SeedAdmin(ctx context.Context, repo ports.UserRepository, in SeedAdminInput, logger zerolog.Logger) error {
	existing, err := repo.FindByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	if existing != nil {
		logger.Info().Str("email", in.Email).Msg("admin user already exists, skipping seed")
		return nil
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = repo.Create(ctx, &domain.User{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			logger.Info().Str("email", in.Email).Msg("admin user already exists, skipping seed")
			return nil
		}
		return err
	}

	logger.Info().Str("email", in.Email).Msg("admin user created")
	return nil
}
