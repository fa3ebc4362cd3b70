package store_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fintrack/fintrack/internal/auth/domain"
	"github.com/fintrack/fintrack/internal/auth/store"
	"github.com/fintrack/fintrack/pkg/cryptox"
	"github.com/fintrack/fintrack/pkg/slogx"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	store.Users
	byUsername map[string]domain.User
	byEmail    map[string]domain.User
}

func (f fakeUsers) GetUserByUsername(_ context.Context, username string) (domain.User, error) {
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return domain.User{}, store.ErrNotFound
}

func (f fakeUsers) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return domain.User{}, store.ErrNotFound
}

type fakeStore struct {
	store.Store
	users fakeUsers
}

func (f fakeStore) Users() store.Users { return f.users }

type verifierFunc func(password, hash string) error

func (f verifierFunc) Verify(password, hash string) error { return f(password, hash) }

func TestCredentialAdapter(t *testing.T) {
	bob := domain.User{ID: "1", Username: "bob", Email: "bob@x.com", PasswordHash: "hash:pw123"}
	st := fakeStore{users: fakeUsers{
		byUsername: map[string]domain.User{"bob": bob},
		byEmail:    map[string]domain.User{"bob@x.com": bob},
	}}

	a := store.NewCredentialAdapter(st, verifierFunc(func(password, hash string) error {
		switch {
		case hash == "corrupt":
			return cryptox.ErrInvalidHash
		case hash != "hash:"+password:
			return cryptox.ErrMismatch
		}
		return nil
	}))
	ctx := context.Background()

	u, err := a.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, bob, u)

	u, err = a.FindByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	require.Equal(t, bob, u)

	_, err = a.FindByUsername(ctx, "bob@x.com")
	require.True(t, errors.Is(err, store.ErrNotFound))

	require.True(t, a.VerifyPassword(ctx, "pw123", bob.PasswordHash))
	require.False(t, a.VerifyPassword(ctx, "wrong", bob.PasswordHash))
}

func TestCredentialAdapterLogsUnusableHash(t *testing.T) {
	a := store.NewCredentialAdapter(fakeStore{}, verifierFunc(func(password, hash string) error {
		if hash == "corrupt" {
			return cryptox.ErrInvalidHash
		}
		return cryptox.ErrMismatch
	}))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil)).With("req_id", "req-42")
	ctx := slogx.WithContext(context.Background(), logger)

	require.False(t, a.VerifyPassword(ctx, "pw123", "wrong"))
	require.Empty(t, buf.String())

	require.False(t, a.VerifyPassword(ctx, "pw123", "corrupt"))
	require.Contains(t, buf.String(), "stored password hash is unusable")
	require.Contains(t, buf.String(), "req_id=req-42")
}

func TestDuplicateErrorsWrapAlreadyExists(t *testing.T) {
	require.ErrorIs(t, store.ErrUsernameExists, store.ErrAlreadyExists)
	require.ErrorIs(t, store.ErrEmailExists, store.ErrAlreadyExists)
	require.NotErrorIs(t, store.ErrUsernameExists, store.ErrEmailExists)
}
