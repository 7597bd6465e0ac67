package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/backendgym/admin-auth-api/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       "64f1b2c3d4e5f60718293a4b",
		Email:    "admin@x.com",
		Name:     "Admin User",
		Role:     domain.RoleAdmin,
		IsActive: true,
	}
}

func TestNewTokenIssuer_Validation(t *testing.T) {
	if _, err := NewTokenIssuer("", "r", time.Minute, time.Hour); err == nil {
		t.Fatalf("expected error for empty access secret")
	}
	if _, err := NewTokenIssuer("a", "r", time.Hour, time.Minute); err == nil {
		t.Fatalf("expected error when access TTL >= refresh TTL")
	}
	if _, err := NewTokenIssuer("a", "r", time.Hour, time.Hour); err == nil {
		t.Fatalf("expected error when TTLs are equal")
	}
}

func TestTokenIssuer_AccessClaims(t *testing.T) {
	issuer, err := NewTokenIssuer("access-secret", "refresh-secret", 15*time.Minute, 168*time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	pair, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Fatalf("access and refresh tokens must differ")
	}

	claims := &AccessClaims{}
	parsed, err := jwt.ParseWithClaims(pair.AccessToken, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("access-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("access token invalid: %v", err)
	}
	if claims.Subject != "64f1b2c3d4e5f60718293a4b" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Email != "admin@x.com" || claims.Role != "admin" || claims.Name != "Admin User" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatalf("expected iat and exp to be set")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 15*time.Minute {
		t.Fatalf("unexpected access lifetime: %v", got)
	}
}

func TestTokenIssuer_RefreshClaimsAreMinimal(t *testing.T) {
	issuer, _ := NewTokenIssuer("access-secret", "refresh-secret", 15*time.Minute, 168*time.Hour)

	pair, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(pair.RefreshToken, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("refresh-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("refresh token invalid: %v", err)
	}
	if claims["sub"] != "64f1b2c3d4e5f60718293a4b" || claims["email"] != "admin@x.com" {
		t.Fatalf("unexpected refresh claims: %v", claims)
	}
	if _, ok := claims["role"]; ok {
		t.Fatalf("refresh token must not carry a role claim")
	}
	if _, ok := claims["name"]; ok {
		t.Fatalf("refresh token must not carry a name claim")
	}
}

func TestTokenIssuer_SecretsAreIndependent(t *testing.T) {
	issuer, _ := NewTokenIssuer("access-secret", "refresh-secret", 15*time.Minute, 168*time.Hour)

	pair, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// An access token must not validate under the refresh secret and vice versa.
	_, err = jwt.Parse(pair.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte("refresh-secret"), nil
	})
	if err == nil {
		t.Fatalf("access token validated with refresh secret")
	}

	_, err = jwt.Parse(pair.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return []byte("access-secret"), nil
	})
	if err == nil {
		t.Fatalf("refresh token validated with access secret")
	}
}
