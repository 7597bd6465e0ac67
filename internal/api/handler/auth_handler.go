package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/backendgym/admin-auth-api/internal/api/metrics"
	"github.com/backendgym/admin-auth-api/internal/api/middleware"
	"github.com/backendgym/admin-auth-api/internal/core/domain"
	"github.com/backendgym/admin-auth-api/internal/core/ports"
)

// AuthHandler handles HTTP requests for the authentication operations.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// AdminLogin authenticates an admin and returns a token pair.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Admin credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.authService.AdminLogin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginFailureReason(err)).Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		User: userResponse{
			ID:    res.User.ID,
			Email: res.User.Email,
			Name:  res.User.Name,
			Role:  res.User.Role,
		},
		Tokens: tokensResponse{
			AccessToken:  res.Tokens.AccessToken,
			RefreshToken: res.Tokens.RefreshToken,
		},
	})
}

// Refresh rotates the caller's token pair. The refresh guard has already
// validated the bearer refresh token and stashed it in the context.
//
// @Summary      Rotate refresh token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  tokensResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	userID, refreshToken, err := refreshPrincipal(c)
	if err != nil {
		return err
	}

	tokens, err := h.authService.RefreshTokens(c.Request().Context(), userID, refreshToken)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("denied").Inc()
		return err
	}
	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, tokensResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// Logout invalidates the caller's active session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, _ := c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	if err := h.authService.Logout(c.Request().Context(), userID); err != nil {
		return err
	}
	metrics.LogoutsTotal.Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

// refreshPrincipal extracts what the refresh guard attached. Empty values
// mean the guard did not run; fail closed.
func refreshPrincipal(c echo.Context) (userID, refreshToken string, err error) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	refreshToken, _ = c.Get(middleware.CtxRefreshToken).(string)
	if userID == "" || refreshToken == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, refreshToken, nil
}

func loginFailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrAdminRequired):
		return "role_denied"
	case errors.Is(err, domain.ErrInactiveAccount):
		return "inactive"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	default:
		return "error"
	}
}
