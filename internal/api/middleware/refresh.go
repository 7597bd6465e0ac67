package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/backendgym/admin-auth-api/internal/core/domain"
	"github.com/backendgym/admin-auth-api/internal/core/ports"
	"github.com/backendgym/admin-auth-api/internal/pkg/password"
)

// RefreshGuard authenticates the bearer refresh token ahead of the refresh
// endpoint: signature and expiry first, then the token must match the hash
// stored on the user it claims to belong to. On success the user id, email,
// and the raw token are attached to the context for the handler.
func RefreshGuard(refreshSecret string, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err != nil {
				return err
			}

			claims, err := parseHS256(raw, refreshSecret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
			}

			sub, _ := claims["sub"].(string)
			if sub == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
			}

			user, err := users.FindByID(c.Request().Context(), sub)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "access denied")
				}
				return err
			}

			if user.RefreshTokenHash == nil || !password.VerifyToken(raw, *user.RefreshTokenHash) {
				return echo.NewHTTPError(http.StatusUnauthorized, "access denied")
			}

			c.Set(CtxUserID, user.ID)
			c.Set(CtxEmail, user.Email)
			c.Set(CtxRefreshToken, raw)

			return next(c)
		}
	}
}
