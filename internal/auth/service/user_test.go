package service_test

import (
	"context"
	"testing"

	"github.com/fintrack/fintrack/internal/auth/domain"
	"github.com/fintrack/fintrack/internal/auth/service"
	"github.com/fintrack/fintrack/internal/auth/store"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u, err := env.Accounts.Register(ctx, service.Registration{
		Username: "bob",
		Email:    "Bob@X.com",
		Password: "pw123",
		FullName: "Bob Builder",
	})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.Equal(t, "bob@x.com", u.Email)
	require.NotEqual(t, "pw123", u.PasswordHash)

	t.Run("username taken", func(t *testing.T) {
		_, err := env.Accounts.Register(ctx, service.Registration{Username: "bob", Email: "other@x.com", Password: "pw"})
		require.ErrorIs(t, err, service.ErrUsernameTaken)
	})

	t.Run("email taken regardless of case", func(t *testing.T) {
		_, err := env.Accounts.Register(ctx, service.Registration{Username: "robert", Email: "BOB@x.com", Password: "pw"})
		require.ErrorIs(t, err, service.ErrEmailTaken)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := env.Accounts.Register(ctx, service.Registration{Username: "carol", Password: "pw"})
		require.ErrorIs(t, err, service.ErrInvalidRequest)
	})

	t.Run("availability", func(t *testing.T) {
		ok, err := env.Accounts.UsernameExists(ctx, "bob")
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = env.Accounts.EmailExists(ctx, "BOB@X.COM")
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = env.Accounts.UsernameExists(ctx, "carol")
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	bobID := env.register(t, "bob", "bob@x.com", "pw123")
	env.register(t, "alice", "alice@x.com", "secret")

	u, err := env.Accounts.UpdateProfile(ctx, bobID, "Robert", "")
	require.NoError(t, err)
	require.Equal(t, "Robert", u.FullName)
	require.Equal(t, "bob@x.com", u.Email)

	u, err = env.Accounts.UpdateProfile(ctx, bobID, "", "Robert@X.com")
	require.NoError(t, err)
	require.Equal(t, "Robert", u.FullName)
	require.Equal(t, "robert@x.com", u.Email)

	_, err = env.Accounts.UpdateProfile(ctx, bobID, "", "alice@x.com")
	require.ErrorIs(t, err, service.ErrEmailTaken)

	_, err = env.Accounts.UpdateProfile(ctx, "missing", "x", "")
	require.ErrorIs(t, err, service.ErrPrincipalNotFound)

	// Login follows the new email
	_, err = env.Auth.Login(ctx, "robert@x.com", "pw123")
	require.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.register(t, "bob", "bob@x.com", "pw123")

	old, err := env.Auth.Login(ctx, "bob", "pw123")
	require.NoError(t, err)

	require.ErrorIs(t, env.Accounts.ChangePassword(ctx, id, "wrong", "new-pass"), service.ErrIncorrectPassword)
	require.ErrorIs(t, env.Accounts.ChangePassword(ctx, id, "pw123", ""), service.ErrInvalidRequest)
	require.NoError(t, env.Accounts.ChangePassword(ctx, id, "pw123", "new-pass"))

	_, err = env.Auth.Login(ctx, "bob", "pw123")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = env.Auth.Login(ctx, "bob", "new-pass")
	require.NoError(t, err)

	// No revocation: the token minted before the change still works
	p, err := env.Authn.ValidateAndResolve(ctx, old.Token)
	require.NoError(t, err)
	require.Equal(t, id, p.ID)
}

func TestDeleteAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.register(t, "bob", "bob@x.com", "pw123")

	require.NoError(t, env.Accounts.DeleteAccount(ctx, id))
	require.ErrorIs(t, env.Accounts.DeleteAccount(ctx, id), service.ErrPrincipalNotFound)

	_, err := env.Accounts.Profile(ctx, id)
	require.ErrorIs(t, err, service.ErrPrincipalNotFound)

	_, err = env.Auth.Login(ctx, "bob", "pw123")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestPreferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.register(t, "bob", "bob@x.com", "pw123")

	p, err := env.Accounts.Preferences(ctx, id)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultPreferences(id).Currency, p.Currency)
	require.Equal(t, "MM/DD/YYYY", p.DateFormat)
	require.Equal(t, "light", p.Theme)
	require.Equal(t, "blue", p.ColorTheme)
	require.False(t, p.UpdatedAt.IsZero())

	// The first read saved the row
	stored, err := env.Store.Preferences().GetPreferences(ctx, id)
	require.NoError(t, err)
	require.Equal(t, p.Currency, stored.Currency)

	_, err = env.Accounts.Preferences(ctx, "missing")
	require.ErrorIs(t, err, service.ErrPrincipalNotFound)
}

func TestUpdatePreferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.register(t, "bob", "bob@x.com", "pw123")

	// Works before the first read
	p, err := env.Accounts.UpdatePreferences(ctx, id, service.PreferencesUpdate{Currency: "EUR (€)"})
	require.NoError(t, err)
	require.Equal(t, "EUR (€)", p.Currency)
	require.Equal(t, "MM/DD/YYYY", p.DateFormat)

	p, err = env.Accounts.UpdatePreferences(ctx, id, service.PreferencesUpdate{Theme: "dark", ColorTheme: "purple"})
	require.NoError(t, err)
	require.Equal(t, "EUR (€)", p.Currency)
	require.Equal(t, "dark", p.Theme)
	require.Equal(t, "purple", p.ColorTheme)

	// Notifications are untouched by display changes
	require.Equal(t, domain.DefaultPreferences(id).Notifications, p.Notifications)

	_, err = env.Accounts.UpdatePreferences(ctx, "missing", service.PreferencesUpdate{Theme: "dark"})
	require.ErrorIs(t, err, service.ErrPrincipalNotFound)
}

func TestUpdateNotifications(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.register(t, "bob", "bob@x.com", "pw123")

	_, err := env.Accounts.UpdatePreferences(ctx, id, service.PreferencesUpdate{Theme: "dark"})
	require.NoError(t, err)

	want := domain.NotificationSettings{WeeklySummary: true}
	p, err := env.Accounts.UpdateNotifications(ctx, id, want)
	require.NoError(t, err)
	require.Equal(t, want, p.Notifications)
	require.Equal(t, "dark", p.Theme)

	got, err := env.Accounts.Preferences(ctx, id)
	require.NoError(t, err)
	require.Equal(t, want, got.Notifications)

	_, err = env.Accounts.UpdateNotifications(ctx, "missing", want)
	require.ErrorIs(t, err, service.ErrPrincipalNotFound)
}

func TestDeleteAccountRemovesPreferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.register(t, "bob", "bob@x.com", "pw123")

	_, err := env.Accounts.Preferences(ctx, id)
	require.NoError(t, err)
	require.NoError(t, env.Accounts.DeleteAccount(ctx, id))

	_, err = env.Store.Preferences().GetPreferences(ctx, id)
	require.ErrorIs(t, err, store.ErrNotFound)
}
