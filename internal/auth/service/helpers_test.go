package service_test

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/fintrack/fintrack/internal/auth/service"
	"github.com/fintrack/fintrack/internal/auth/store"
	"github.com/fintrack/fintrack/internal/auth/store/drivers/sqlite"
	"github.com/fintrack/fintrack/pkg/cryptox"
	"github.com/fintrack/fintrack/pkg/jwtx"
	"github.com/fintrack/fintrack/pkg/slogx"
	"github.com/stretchr/testify/require"
)

var testParams = cryptox.Params{Memory: 64, Iterations: 1, Parallelism: 1, KeyLength: 32, SaltLength: 16}

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type testEnv struct {
	Store    *sqlite.Store
	Hasher   *cryptox.PasswordHasher
	Tokens   *jwtx.TokenService
	Resolver *service.PrincipalResolver
	Auth     *service.AuthService
	Authn    *service.Authenticator
	Accounts *service.AccountService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	hasher := cryptox.NewPasswordHasher("pepper").WithParams(testParams)

	tokens, err := jwtx.NewTokenService(jwtx.Options{Secret: testSecret, TTL: time.Hour, Issuer: "fintrack"})
	require.NoError(t, err)

	dummy, err := hasher.Hash("dummy-password")
	require.NoError(t, err)

	resolver := &service.PrincipalResolver{Credentials: store.NewCredentialAdapter(st, hasher)}

	return &testEnv{
		Store:    st,
		Hasher:   hasher,
		Tokens:   tokens,
		Resolver: resolver,
		Auth: &service.AuthService{
			Resolver:  resolver,
			Tokens:    tokens,
			TTL:       tokens.TTL(),
			DummyHash: dummy,
		},
		Authn:    &service.Authenticator{Tokens: tokens, Resolver: resolver},
		Accounts: &service.AccountService{Store: st, Hasher: hasher},
	}
}

func (e *testEnv) register(t *testing.T, username, email, password string) string {
	t.Helper()
	u, err := e.Accounts.Register(context.Background(), service.Registration{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return u.ID
}

// captureLogs returns a context whose logger writes text lines to the buffer.
func captureLogs() (context.Context, *bytes.Buffer) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return slogx.WithContext(context.Background(), l), &buf
}
