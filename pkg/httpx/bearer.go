package httpx

import (
	"net/http"
	"strings"
)

// BearerPrefix is matched case-sensitively, including the space.
const BearerPrefix = "Bearer "

// BearerToken returns the token from an "Authorization: Bearer <token>"
// header. ok is false when the header is absent, uses another scheme or
// carries an empty token.
func BearerToken(r *http.Request) (token string, ok bool) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, BearerPrefix) {
		return "", false
	}

	token = strings.TrimSpace(authz[len(BearerPrefix):])
	if token == "" {
		return "", false
	}
	return token, true
}

// WriteBearerChallenge sets the RFC 6750 challenge header. The caller still
// writes the status and body.
func WriteBearerChallenge(w http.ResponseWriter, realm string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="`+realm+`"`)
}
