package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/backendgym/admin-auth-api/internal/core/domain"
	"github.com/backendgym/admin-auth-api/internal/core/ports"
	"github.com/backendgym/admin-auth-api/internal/pkg/password"
)

// AuthService implements admin login, refresh-token rotation, and logout.
type AuthService struct {
	repo   ports.UserRepository
	issuer *TokenIssuer
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, issuer *TokenIssuer, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, issuer: issuer, logger: logger}
}

// AdminLogin authenticates an admin by email and password and starts a new
// session, replacing any previous one. A missing account and a wrong password
// surface the same error so account existence cannot be probed.
func (s *AuthService) AdminLogin(ctx context.Context, email, pass string) (*ports.LoginResult, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsAdmin() {
		return nil, domain.ErrAdminRequired
	}

	if !user.IsActive {
		return nil, domain.ErrInactiveAccount
	}

	if !password.Verify(pass, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	tokens, err := s.rotate(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("admin login")

	return &ports.LoginResult{
		User: ports.UserSummary{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
		Tokens: tokens,
	}, nil
}

// RefreshTokens rotates the caller's token pair. The refresh guard has
// already validated the presented token; the checks here are repeated so the
// service stays correct without the guard in front of it.
func (s *AuthService) RefreshTokens(ctx context.Context, userID, refreshToken string) (*domain.TokenPair, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrAccessDenied
		}
		return nil, err
	}

	if user.RefreshTokenHash == nil || !password.VerifyToken(refreshToken, *user.RefreshTokenHash) {
		return nil, domain.ErrAccessDenied
	}

	tokens, err := s.rotate(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("refresh token rotated")
	return tokens, nil
}

// Logout clears the stored refresh-token hash. Idempotent: a second call, or
// a call for a user with no active session, succeeds the same way.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.repo.UpdateRefreshTokenHash(ctx, userID, nil); err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	s.logger.Info().Str("user_id", userID).Msg("logout")
	return nil
}

// rotate issues a new pair and persists the new refresh-token hash. The old
// refresh token becomes unusable as soon as the write lands.
func (s *AuthService) rotate(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	tokens, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}

	hash, err := password.HashToken(tokens.RefreshToken)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateRefreshTokenHash(ctx, user.ID, &hash); err != nil {
		return nil, err
	}
	return tokens, nil
}
