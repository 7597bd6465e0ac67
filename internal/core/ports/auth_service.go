package ports

import (
	"context"

	"github.com/backendgym/admin-auth-api/internal/core/domain"
)

// LoginResult is the payload returned by a successful admin login.
type LoginResult struct {
	User   UserSummary       `json:"user"`
	Tokens *domain.TokenPair `json:"tokens"`
}

// UserSummary is the public projection of a user; hashes never appear here.
type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type AuthService interface {
	AdminLogin(ctx context.Context, email, password string) (*LoginResult, error)
	RefreshTokens(ctx context.Context, userID, refreshToken string) (*domain.TokenPair, error)
	Logout(ctx context.Context, userID string) error
}
