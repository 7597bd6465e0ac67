// Package password wraps bcrypt hashing and verification for account secrets
// and refresh tokens. Comparison is constant-time via the bcrypt library.
package password

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// Hash produces a salted bcrypt hash of the secret.
func Hash(secret string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether secret matches the stored bcrypt hash.
func Verify(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

// HashToken hashes a refresh token for storage. Tokens exceed bcrypt's
// 72-byte input limit, so they are digested with sha256 first.
func HashToken(token string) (string, error) {
	return Hash(digest(token))
}

// VerifyToken reports whether token matches a hash produced by HashToken.
func VerifyToken(token, hash string) bool {
	return Verify(digest(token), hash)
}

func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawStdEncoding.EncodeToString(sum[:])
}
