package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/backendgym/admin-auth-api/internal/core/domain"
	"github.com/backendgym/admin-auth-api/internal/pkg/password"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateRefreshTokenHash(_ context.Context, id string, hash *string) error {
	if u, ok := r.users[id]; ok {
		u.RefreshTokenHash = hash
		return nil
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.users[user.ID] = user
	return user, nil
}

func signedRefreshToken(t *testing.T, secret, sub string, ttl time.Duration) string {
	t.Helper()
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub,
		"email": "admin@x.com",
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func repoWithSession(t *testing.T, token string) *stubUserRepo {
	t.Helper()
	hash, err := password.HashToken(token)
	if err != nil {
		t.Fatalf("hash token: %v", err)
	}
	return &stubUserRepo{users: map[string]*domain.User{
		"u1": {ID: "u1", Email: "admin@x.com", Role: domain.RoleAdmin, IsActive: true, RefreshTokenHash: &hash},
	}}
}

func refreshRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestRefreshGuard_ValidToken(t *testing.T) {
	token := signedRefreshToken(t, "refresh-secret", "u1", time.Hour)
	repo := repoWithSession(t, token)

	called := false
	rec := runGuard(t, RefreshGuard("refresh-secret", repo), refreshRequest(token), func(c echo.Context) error {
		called = true
		if c.Get(CtxUserID) != "u1" || c.Get(CtxEmail) != "admin@x.com" {
			t.Fatalf("principal not injected")
		}
		if c.Get(CtxRefreshToken) != token {
			t.Fatalf("raw refresh token not injected")
		}
		return c.NoContent(http.StatusOK)
	})

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRefreshGuard_ExpiredToken(t *testing.T) {
	token := signedRefreshToken(t, "refresh-secret", "u1", -time.Hour)
	repo := repoWithSession(t, token)

	rec := runGuard(t, RefreshGuard("refresh-secret", repo), refreshRequest(token), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRefreshGuard_TamperedToken(t *testing.T) {
	token := signedRefreshToken(t, "refresh-secret", "u1", time.Hour)
	repo := repoWithSession(t, token)

	rec := runGuard(t, RefreshGuard("refresh-secret", repo), refreshRequest(token+"x"), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRefreshGuard_AccessSecretSignedTokenRejected(t *testing.T) {
	// A token signed with the access secret must not pass the refresh guard,
	// whether or not its subject exists.
	token := signedRefreshToken(t, "access-secret", "u1", time.Hour)
	repo := repoWithSession(t, token)

	rec := runGuard(t, RefreshGuard("refresh-secret", repo), refreshRequest(token), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRefreshGuard_UnknownUser(t *testing.T) {
	token := signedRefreshToken(t, "refresh-secret", "ghost", time.Hour)
	repo := &stubUserRepo{users: map[string]*domain.User{}}

	rec := runGuard(t, RefreshGuard("refresh-secret", repo), refreshRequest(token), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRefreshGuard_NoStoredSession(t *testing.T) {
	token := signedRefreshToken(t, "refresh-secret", "u1", time.Hour)
	repo := &stubUserRepo{users: map[string]*domain.User{
		"u1": {ID: "u1", Email: "admin@x.com", Role: domain.RoleAdmin, IsActive: true},
	}}

	rec := runGuard(t, RefreshGuard("refresh-secret", repo), refreshRequest(token), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRefreshGuard_RotatedOutToken(t *testing.T) {
	old := signedRefreshToken(t, "refresh-secret", "u1", time.Hour)
	// The stored hash belongs to a newer token; the old one must be rejected
	// even though its signature is still valid.
	current := signedRefreshToken(t, "refresh-secret", "u1", 2*time.Hour)
	repo := repoWithSession(t, current)

	rec := runGuard(t, RefreshGuard("refresh-secret", repo), refreshRequest(old), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRefreshGuard_MissingHeader(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*domain.User{}}
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)

	rec := runGuard(t, RefreshGuard("refresh-secret", repo), req, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
