package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	authhttp "github.com/fintrack/fintrack/internal/auth/http"
	"github.com/fintrack/fintrack/internal/auth/metrics"
	"github.com/fintrack/fintrack/internal/auth/service"
	"github.com/fintrack/fintrack/internal/auth/store"
	"github.com/fintrack/fintrack/internal/auth/store/drivers/sqlite"
	"github.com/fintrack/fintrack/pkg/authsdk"
	"github.com/fintrack/fintrack/pkg/cryptox"
	"github.com/fintrack/fintrack/pkg/httpx"
	"github.com/fintrack/fintrack/pkg/jwtx"
	"github.com/fintrack/fintrack/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type testServer struct {
	Router  *authhttp.Router
	Store   *sqlite.Store
	Tokens  *jwtx.TokenService
	Metrics *metrics.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "http.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	hasher := cryptox.NewPasswordHasher("pepper").WithParams(cryptox.Params{
		Memory: 64, Iterations: 1, Parallelism: 1, KeyLength: 32, SaltLength: 16,
	})

	tokens, err := jwtx.NewTokenService(jwtx.Options{Secret: testSecret, TTL: time.Hour, Issuer: "fintrack"})
	require.NoError(t, err)

	m, err := metrics.New(nil)
	require.NoError(t, err)

	// Generous limits so only the dedicated test hits them
	limit := httpx.RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}

	resolver := &service.PrincipalResolver{Credentials: store.NewCredentialAdapter(st, hasher)}
	r := authhttp.NewRouter(authhttp.RouterConfig{
		BuildVersion: "test",
		Logger:       slogx.Discard(),
		Store:        st,
		Tokens:       tokens,
		Metrics:      m,
		RateLimits:   httpx.RateLimits{Strict: limit, Moderate: limit, Lenient: limit},
	})
	r.AuthService = &service.AuthService{Resolver: resolver, Tokens: tokens, TTL: tokens.TTL()}
	r.Authenticator = &service.Authenticator{Tokens: tokens, Resolver: resolver}
	r.AccountService = &service.AccountService{Store: st, Hasher: hasher}
	r.ApplyRoutes()

	return &testServer{Router: r, Store: st, Tokens: tokens, Metrics: m}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "192.0.2.1:1234"
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) register(t *testing.T, username, email, password string) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/register", "", authsdk.RegisterRequest{
		Username: username, Email: email, Password: password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func (s *testServer) login(t *testing.T, req authsdk.LoginRequest) authsdk.LoginResponse {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/login", "", req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out authsdk.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "test", decode[authsdk.HealthResponse](t, rec).Version)

	rec = s.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[authsdk.HealthResponse](t, rec)
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "ok", health.Checks.Database)
	require.Equal(t, "ok", health.Checks.Tokens)
}

func TestReadyzReportsDatabaseDown(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.Store.Close())

	rec := s.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	health := decode[authsdk.HealthResponse](t, rec)
	require.Equal(t, "degraded", health.Status)
	require.Equal(t, "error", health.Checks.Database)
}

func TestRequestIDEchoed(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/livez", "", nil)
	require.NotEmpty(t, rec.Header().Get(slogx.RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)

	require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/livez", "", nil)

	rec := s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `fintrack_http_requests_total{method="GET",route="GET /livez",status="200"} 1`)
}

func TestSwaggerServed(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "/api/auth/login")
}

func TestLoginRateLimited(t *testing.T) {
	s := newTestServer(t)

	// Rebuild with a tiny strict limit
	strict := httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}
	lenient := httpx.RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
	r := authhttp.NewRouter(authhttp.RouterConfig{
		Logger:     slogx.Discard(),
		Store:      s.Store,
		Tokens:     s.Tokens,
		Metrics:    s.Metrics,
		RateLimits: httpx.RateLimits{Strict: strict, Moderate: lenient, Lenient: lenient},
	})
	r.AuthService = s.Router.AuthService
	r.Authenticator = s.Router.Authenticator
	r.AccountService = s.Router.AccountService
	r.ApplyRoutes()
	s.Router = r

	body := authsdk.LoginRequest{Username: "alice", Password: "x"}
	for range 2 {
		require.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodPost, "/api/auth/login", "", body).Code)
	}

	rec := s.do(t, http.MethodPost, "/api/auth/login", "", body)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, 1.0, testutil.ToFloat64(s.Metrics.RateLimitedTotal.WithLabelValues("POST /api/auth/login")))

	// Another identifier from the same address has its own bucket
	rec = s.do(t, http.MethodPost, "/api/auth/login", "", authsdk.LoginRequest{Username: "bob", Password: "x"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
