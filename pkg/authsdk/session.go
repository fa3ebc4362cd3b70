package authsdk

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Session holds one bearer token. Tokens are not refreshable, so once the
// token expires the session is done.
type Session struct {
	client *SDKClient

	mu        sync.RWMutex
	token     string
	expiresAt time.Time // zero when unknown
	principal PrincipalResponse
}

func newSession(client *SDKClient, resp *LoginResponse) *Session {
	var expiresAt time.Time
	if resp.ExpiresIn > 0 {
		expiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}

	return &Session{
		client:    client,
		token:     resp.Token,
		expiresAt: expiresAt,
		principal: resp.Principal,
	}
}

// Token returns the raw bearer token.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Principal returns the identity reported at login.
func (s *Session) Principal() PrincipalResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal
}

// Expired reports whether the token is past its known expiry.
func (s *Session) Expired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.expiresAt.IsZero() && !time.Now().Before(s.expiresAt)
}

// doAuthRequest performs a request carrying the session's token.
func (s *Session) doAuthRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	if s.Expired() {
		return nil, ErrSessionExpired
	}
	return s.client.doRequest(ctx, method, path, s.Token(), body)
}
