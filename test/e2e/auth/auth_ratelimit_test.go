//go:build e2e

package auth_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/fintrack/fintrack/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestLoginRateLimit hammers login with production limits until it trips.
func TestLoginRateLimit(t *testing.T) {
	client := authsdk.NewSDKClient(setupContainerWithDefaultRateLimits(t))
	limit := 0

	for i := range 50 {
		_, err := client.Authenticate(t.Context(), "mallory", "guess")

		var apiErr *authsdk.APIError
		require.True(t, errors.As(err, &apiErr), "attempt %d: %v", i+1, err)
		if apiErr.StatusCode == http.StatusTooManyRequests {
			limit = i
			break
		}
		require.ErrorIs(t, err, authsdk.ErrInvalidCredentials)
	}

	require.Positive(t, limit, "login should be rate limited within 50 attempts")
	t.Logf("login limited after %d attempts", limit)
}
