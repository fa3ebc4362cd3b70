package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	authhttp "github.com/fintrack/fintrack/internal/auth/http"
	"github.com/fintrack/fintrack/internal/auth/domain"
	"github.com/fintrack/fintrack/internal/auth/metrics"
	"github.com/fintrack/fintrack/internal/auth/service"
	"github.com/fintrack/fintrack/pkg/authsdk"
	"github.com/fintrack/fintrack/pkg/jwtx"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

// tamperSignature flips one character in the middle of the signature segment.
func tamperSignature(token string) string {
	i := strings.LastIndex(token, ".") + 5
	b := []byte(token)
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}
	return string(b)
}

// tamperLastChar swaps the final signature character for its neighbour in
// the base64url alphabet. Only the unused low bits differ, so a lenient
// decoder would still see the original signature bytes.
func tamperLastChar(token string) string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	i := strings.IndexByte(alphabet, token[len(token)-1])
	return token[:len(token)-1] + string(alphabet[i^1])
}

func TestProtectedEndpointsRejectUniformly(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "bob", "bob@x.com", "pw123")
	s.register(t, "gone", "gone@x.com", "pw123")
	good := s.login(t, authsdk.LoginRequest{Username: "bob", Password: "pw123"}).Token

	past, err := jwtx.NewTokenService(jwtx.Options{
		Secret: testSecret,
		TTL:    time.Hour,
		Issuer: "fintrack",
		Now:    func() time.Time { return time.Now().Add(-2 * time.Hour) },
	})
	require.NoError(t, err)
	expired, err := past.Issue("bob")
	require.NoError(t, err)

	orphan := s.login(t, authsdk.LoginRequest{Username: "gone", Password: "pw123"}).Token
	rec := s.do(t, http.MethodDelete, "/api/users/delete-account", orphan, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cases := map[string]string{
		"missing":   "",
		"garbage":   "not-a-token",
		"expired":   expired,
		"forged":    tamperSignature(good),
		"last char": tamperLastChar(good),
		"orphaned":  orphan,
		"truncated": good[:len(good)/2],
	}

	var first string
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, "/api/auth/user-info", token, nil)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Equal(t, `Bearer realm="fintrack"`, rec.Header().Get("WWW-Authenticate"))

			body := rec.Body.String()
			require.Contains(t, body, authsdk.ErrorCodeUnauthorized)
			if first == "" {
				first = body
			}
			require.Equal(t, first, body)
		})
	}

	// Sanity: the good token works
	rec = s.do(t, http.MethodGet, "/api/auth/user-info", good, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestInterceptorNeverAborts(t *testing.T) {
	s := newTestServer(t)

	// A public route still answers behind a broken token
	rec := s.do(t, http.MethodGet, "/livez", "garbage.token.here", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, 1.0, testutil.ToFloat64(s.Metrics.AuthnTotal.WithLabelValues(jwtx.ReasonMalformed)))
}

func TestAuthenticateMiddleware(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "bob", "bob@x.com", "pw123")
	token := s.login(t, authsdk.LoginRequest{Username: "bob", Password: "pw123"}).Token

	m, err := metrics.New(nil)
	require.NoError(t, err)
	mw := authhttp.Authenticate(s.Router.Authenticator, m)

	var (
		got    string
		called bool
	)
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		p, ok := service.PrincipalFromContext(r.Context())
		if ok {
			got = p.Username
		}
	}))

	serve := func(authz string) {
		called, got = false, ""
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if authz != "" {
			req.Header.Set("Authorization", authz)
		}
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	serve("Bearer " + token)
	require.True(t, called)
	require.Equal(t, "bob", got)

	// Scheme is matched case-sensitively
	serve("bearer " + token)
	require.True(t, called)
	require.Empty(t, got)

	serve("Basic Ym9iOnB3MTIz")
	require.True(t, called)
	require.Empty(t, got)

	serve("Bearer " + tamperSignature(token))
	require.True(t, called)
	require.Empty(t, got)

	require.Equal(t, 1.0, testutil.ToFloat64(m.AuthnTotal.WithLabelValues(metrics.AuthnAuthenticated)))
	require.Equal(t, 2.0, testutil.ToFloat64(m.AuthnTotal.WithLabelValues(metrics.AuthnAnonymous)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.AuthnTotal.WithLabelValues(jwtx.ReasonBadSignature)))
}

func TestAuthenticateIsRequestScoped(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "bob", "bob@x.com", "pw123")
	s.register(t, "alice", "alice@x.com", "secret1")
	tokens := map[string]string{
		"bob":   s.login(t, authsdk.LoginRequest{Username: "bob", Password: "pw123"}).Token,
		"alice": s.login(t, authsdk.LoginRequest{Username: "alice", Password: "secret1"}).Token,
		"":      "",
	}

	h := authhttp.Authenticate(s.Router.Authenticator, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, _ := service.PrincipalFromContext(r.Context())
		_, _ = w.Write([]byte(p.Username))
	}))

	var wg sync.WaitGroup
	for range 20 {
		for want, token := range tokens {
			wg.Add(1)
			go func() {
				defer wg.Done()
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				if token != "" {
					req.Header.Set("Authorization", "Bearer "+token)
				}
				rec := httptest.NewRecorder()
				h.ServeHTTP(rec, req)
				if rec.Body.String() != want {
					t.Errorf("got principal %q, want %q", rec.Body.String(), want)
				}
			}()
		}
	}
	wg.Wait()
}

func TestRequireAuthenticated(t *testing.T) {
	h := authhttp.RequireAuthenticated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(service.WithPrincipal(req.Context(), domain.Principal{ID: "u-1", Username: "bob"}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
}
