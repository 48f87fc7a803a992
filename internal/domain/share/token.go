package share

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"parley-server/services/chat-api/internal/utils/crypto"
)

// tokenBytes is the entropy of a share token. 16 bytes encode to 22
// base64url characters; existing stored tokens use this exact format.
const tokenBytes = 16

// GenerateToken produces a URL-safe random share token. No collision
// check happens here; the store's unique constraint on the token
// column is the backstop.
func GenerateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashPassword digests a share password. The digest is unsalted on
// purpose, matching previously stored hashes; share passwords gate
// casual link access, not sensitive secrets.
func HashPassword(secret string) string {
	return crypto.HashSHA256Hex(secret)
}

// VerifyPassword checks a candidate password against a stored digest.
func VerifyPassword(secret, storedHash string) bool {
	return crypto.VerifySHA256Hex(secret, storedHash)
}
