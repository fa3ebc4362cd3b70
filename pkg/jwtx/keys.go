package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// MinSecretSize is the smallest HS256 key accepted, 256 bits.
const MinSecretSize = 32

var ErrWeakSecret = errors.New("jwtx: secret key too short")

// GenerateSecret returns a fresh random HS256 key, base64 encoded, suitable
// for AUTH_JWT_SECRET.
func GenerateSecret() (string, error) {
	b := make([]byte, MinSecretSize)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("jwtx: generate secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// ParseSecret decodes a base64 HS256 key and checks its length.
func ParseSecret(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, errors.New("jwtx: empty secret")
	}

	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		// Accept unpadded keys too
		b, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
		if err != nil {
			return nil, fmt.Errorf("jwtx: decode secret: %w", err)
		}
	}

	if len(b) < MinSecretSize {
		return nil, fmt.Errorf("%w: need at least %d bytes, got %d", ErrWeakSecret, MinSecretSize, len(b))
	}
	return b, nil
}
