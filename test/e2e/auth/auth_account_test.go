//go:build e2e

package auth_test

import (
	"testing"

	"github.com/fintrack/fintrack/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestRegistrationConflicts(t *testing.T) {
	client := authsdk.NewSDKClient(setupContainer(t))
	registerUser(t, client, "alice", "alice@x.com", "secret1")

	_, err := client.Register(t.Context(), authsdk.RegisterRequest{Username: "alice", Email: "a2@x.com", Password: "secret1"})
	require.ErrorIs(t, err, authsdk.ErrUsernameTaken)

	_, err = client.Register(t.Context(), authsdk.RegisterRequest{Username: "alice2", Email: "ALICE@x.com", Password: "secret1"})
	require.ErrorIs(t, err, authsdk.ErrEmailTaken)

	exists, err := client.EmailExists(t.Context(), "alice@x.com")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = client.UsernameExists(t.Context(), "nobody")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestProfileAndPassword(t *testing.T) {
	client := authsdk.NewSDKClient(setupContainer(t))
	registerUser(t, client, "dave", "dave@x.com", "first-pass")

	s, err := client.Authenticate(t.Context(), "dave", "first-pass")
	require.NoError(t, err)

	updated, err := s.UpdateProfile(t.Context(), authsdk.UpdateProfileRequest{FullName: "Dave D", Email: "dave@y.com"})
	require.NoError(t, err)
	require.Equal(t, "Dave D", updated.FullName)
	require.Equal(t, "dave@y.com", updated.Email)

	err = s.ChangePassword(t.Context(), "wrong", "second-pass")
	require.ErrorIs(t, err, authsdk.ErrCurrentPasswordIncorrect)

	require.NoError(t, s.ChangePassword(t.Context(), "first-pass", "second-pass"))

	// Tokens are not revoked by a password change
	_, err = s.GetProfile(t.Context())
	require.NoError(t, err)

	_, err = client.Authenticate(t.Context(), "dave", "first-pass")
	require.ErrorIs(t, err, authsdk.ErrInvalidCredentials)
	_, err = client.Authenticate(t.Context(), "dave@y.com", "second-pass")
	require.NoError(t, err)
}

func TestPreferences(t *testing.T) {
	client := authsdk.NewSDKClient(setupContainer(t))
	registerUser(t, client, "erin", "erin@x.com", "secret1")

	s, err := client.Authenticate(t.Context(), "erin", "secret1")
	require.NoError(t, err)

	prefs, err := s.GetPreferences(t.Context())
	require.NoError(t, err)
	require.Equal(t, "USD ($)", prefs.Currency)
	require.True(t, prefs.NotificationSettings.BudgetAlerts)

	require.NoError(t, s.UpdatePreferences(t.Context(), authsdk.UpdatePreferencesRequest{DateFormat: "YYYY-MM-DD"}))
	require.NoError(t, s.UpdateNotifications(t.Context(), authsdk.NotificationSettings{EmailNotifications: true}))

	prefs, err = s.GetPreferences(t.Context())
	require.NoError(t, err)
	require.Equal(t, "YYYY-MM-DD", prefs.DateFormat)
	require.Equal(t, "light", prefs.Theme)
	require.Equal(t, authsdk.NotificationSettings{EmailNotifications: true}, prefs.NotificationSettings)

	// The preferences row goes with the account
	require.NoError(t, s.DeleteAccount(t.Context()))
	_, err = s.GetPreferences(t.Context())
	require.ErrorIs(t, err, authsdk.ErrUnauthorized)
}
