package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintrack/fintrack/internal/auth/domain"
	"github.com/fintrack/fintrack/pkg/jwtx"
	"github.com/fintrack/fintrack/pkg/slogx"
)

var ErrInvalidCredentials = errors.New("invalid_credentials")

// LoginResult is what a successful login hands back to the caller.
type LoginResult struct {
	Token     string
	ExpiresIn time.Duration
	Principal domain.Principal
}

type AuthService struct {
	Resolver *PrincipalResolver
	Tokens   jwtx.Signer
	TTL      time.Duration

	// DummyHash is verified against when the identifier is unknown so both
	// failure paths spend the same time hashing.
	DummyHash string
}

// Login exchanges an identifier (username or email) and password for a
// token. Unknown identifiers and wrong passwords both yield
// ErrInvalidCredentials. The credential store is never written.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (LoginResult, error) {
	l := slogx.FromContext(ctx)
	creds := s.Resolver.Credentials

	// 1. Resolve the principal
	res, err := s.Resolver.ResolveForLogin(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) {
			if s.DummyHash != "" {
				creds.VerifyPassword(ctx, password, s.DummyHash)
			}
			l.Info("login failed", slog.String("reason", "unknown_identifier"))
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	// 2. Check the password
	if !creds.VerifyPassword(ctx, password, res.Credential.PasswordHash) {
		l.Info("login failed",
			slog.String("reason", "bad_password"),
			slog.String("user_id", res.Principal.ID),
		)
		return LoginResult{}, ErrInvalidCredentials
	}

	// 3. Mint the token for the canonical username
	token, err := s.Tokens.Issue(res.Principal.Username)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}

	l.Info("login succeeded",
		slog.String("user_id", res.Principal.ID),
		slog.String("matched_by", string(res.MatchedBy)),
	)

	return LoginResult{
		Token:     token,
		ExpiresIn: s.TTL,
		Principal: res.Principal,
	}, nil
}
