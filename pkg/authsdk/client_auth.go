package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Login calls POST /api/auth/login.
func (c *SDKClient) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", "", req)
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register calls POST /api/auth/register.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*MessageResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/register", "", req)
	if err != nil {
		return nil, err
	}

	var out MessageResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// EmailExists reports whether an account already uses email.
func (c *SDKClient) EmailExists(ctx context.Context, email string) (bool, error) {
	return c.exists(ctx, "/api/auth/check-email?email="+url.QueryEscape(email))
}

// UsernameExists reports whether username is taken.
func (c *SDKClient) UsernameExists(ctx context.Context, username string) (bool, error) {
	return c.exists(ctx, "/api/auth/check-username?username="+url.QueryEscape(username))
}

func (c *SDKClient) exists(ctx context.Context, path string) (bool, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return false, err
	}

	var out AvailabilityResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return false, err
	}
	return out.Exists, nil
}
