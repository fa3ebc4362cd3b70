package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fintrack/fintrack/pkg/jwtx"
)

var ErrNoSigningKey = errors.New("no signing key configured: set AUTH_JWT_SECRET or AUTH_JWT_SECRET_FILE (generate one with `fintrack keygen`)")

// LoadSigningKey resolves the HS256 key used for every token.
//
// Sources, in order:
//   - AUTH_JWT_SECRET: base64 key inline.
//   - AUTH_JWT_SECRET_FILE: file holding the base64 key.
//   - ENV=dev only: a random key generated on startup. Tokens issued with it
//     stop validating when the process restarts.
func LoadSigningKey(cfg Config, logger *slog.Logger) ([]byte, error) {
	switch {
	case cfg.JWTSecret != "":
		key, err := jwtx.ParseSecret(cfg.JWTSecret)
		if err != nil {
			return nil, fmt.Errorf("AUTH_JWT_SECRET: %w", err)
		}
		logger.Info("signing key loaded", "source", "env")
		return key, nil

	case cfg.JWTSecretFile != "":
		b, err := os.ReadFile(filepath.Clean(cfg.JWTSecretFile))
		if err != nil {
			return nil, fmt.Errorf("read AUTH_JWT_SECRET_FILE: %w", err)
		}
		key, err := jwtx.ParseSecret(string(b))
		if err != nil {
			return nil, fmt.Errorf("AUTH_JWT_SECRET_FILE: %w", err)
		}
		logger.Info("signing key loaded", "source", "file", "path", cfg.JWTSecretFile)
		return key, nil

	case cfg.IsDev():
		encoded, err := jwtx.GenerateSecret()
		if err != nil {
			return nil, err
		}
		key, err := jwtx.ParseSecret(encoded)
		if err != nil {
			return nil, err
		}
		logger.Warn("generated ephemeral signing key, tokens will not survive a restart")
		return key, nil
	}

	return nil, ErrNoSigningKey
}
