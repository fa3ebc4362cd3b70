package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fintrack/fintrack/internal/auth/domain"
	"github.com/fintrack/fintrack/pkg/cryptox"
	"github.com/fintrack/fintrack/pkg/slogx"
)

// PasswordVerifier checks a plaintext password against a stored hash.
type PasswordVerifier interface {
	Verify(password, encodedHash string) error
}

// CredentialAdapter narrows a Store plus a password hasher down to the three
// calls the login core needs. It is read-only.
type CredentialAdapter struct {
	store  Store
	hasher PasswordVerifier
}

// NewCredentialAdapter creates a CredentialAdapter over store.
func NewCredentialAdapter(store Store, hasher PasswordVerifier) *CredentialAdapter {
	return &CredentialAdapter{store: store, hasher: hasher}
}

// FindByUsername returns ErrNotFound when no account has that username.
func (a *CredentialAdapter) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return a.store.Users().GetUserByUsername(ctx, username)
}

// FindByEmail returns ErrNotFound when no account has that email.
func (a *CredentialAdapter) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return a.store.Users().GetUserByEmail(ctx, email)
}

// VerifyPassword reports whether plain matches hash. An unparseable hash is
// a mismatch, logged so a corrupted row gets noticed.
func (a *CredentialAdapter) VerifyPassword(ctx context.Context, plain, hash string) bool {
	err := a.hasher.Verify(plain, hash)
	if err == nil {
		return true
	}
	if !errors.Is(err, cryptox.ErrMismatch) {
		slogx.FromContext(ctx).Warn("stored password hash is unusable", slog.Any("error", err))
	}
	return false
}
