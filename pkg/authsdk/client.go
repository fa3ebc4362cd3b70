package authsdk

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the fintrack API. It covers the public
// endpoints and creates authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client with a 10 second timeout.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Authenticate logs in with a username or email and returns a Session
// holding the issued token.
func (c *SDKClient) Authenticate(ctx context.Context, identifier, password string) (*Session, error) {
	req := LoginRequest{Username: identifier, Password: password}
	if strings.Contains(identifier, "@") {
		req = LoginRequest{Email: identifier, Password: password}
	}

	resp, err := c.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	return newSession(c, resp), nil
}

// NewSessionFromToken wraps a token obtained elsewhere. Its expiry is not
// known client-side, so the server decides.
func (c *SDKClient) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}

// ErrSessionExpired is returned before sending a request on a session whose
// token has passed its known expiry. There is no refresh; log in again.
var ErrSessionExpired = errors.New("authsdk: session expired")
