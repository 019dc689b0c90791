// File: internal/platform/crypto/generator.go
package crypto

import (
	"crypto/rand"
	"encoding/base64"
)

// sessionIDBytes gives 256 bits of entropy per session id.
const sessionIDBytes = 32

// GenerateSecureRandomString creates a cryptographically secure random string.
// n is the number of bytes of randomness, resulting string length will be larger due to base64 encoding.
func GenerateSecureRandomString(n int) (string, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// NewSessionID returns a fresh opaque browser session id.
func NewSessionID() (string, error) {
	return GenerateSecureRandomString(sessionIDBytes)
}
