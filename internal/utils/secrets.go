package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// SecretBytes is the entropy of each generated signing secret (256 bits)
const SecretBytes = 32

// GenerateSecret returns n random bytes hex-encoded
func GenerateSecret(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("secret length must be positive, got %d", n)
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateJWTSecrets returns a distinct access and refresh signing secret
func GenerateJWTSecrets() (access, refresh string, err error) {
	if access, err = GenerateSecret(SecretBytes); err != nil {
		return "", "", fmt.Errorf("access secret: %w", err)
	}
	if refresh, err = GenerateSecret(SecretBytes); err != nil {
		return "", "", fmt.Errorf("refresh secret: %w", err)
	}
	return access, refresh, nil
}
