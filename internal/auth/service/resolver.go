package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fintrack/fintrack/internal/auth/domain"
	"github.com/fintrack/fintrack/internal/auth/store"
	"github.com/fintrack/fintrack/pkg/slogx"
)

var ErrPrincipalNotFound = errors.New("principal not found")

// CredentialStore is the read-only view of user records the auth core needs.
// Lookups return store.ErrNotFound for an unknown identifier.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	VerifyPassword(ctx context.Context, plain, hash string) bool
}

// MatchedBy records which identifier kind a login resolved through.
type MatchedBy string

const (
	MatchedUsername MatchedBy = "username"
	MatchedEmail    MatchedBy = "email"
)

// Resolved is a login-time resolution: the principal plus the credential
// record needed to check the password.
type Resolved struct {
	Principal  domain.Principal
	Credential domain.User
	MatchedBy  MatchedBy
}

type PrincipalResolver struct {
	Credentials CredentialStore
}

// ResolveForLogin looks identifier up as a username first and as an email
// second. An empty identifier never reaches the store.
func (r *PrincipalResolver) ResolveForLogin(ctx context.Context, identifier string) (Resolved, error) {
	if identifier == "" {
		return Resolved{}, ErrPrincipalNotFound
	}

	u, err := r.Credentials.FindByUsername(ctx, identifier)
	if err == nil {
		if strings.Contains(identifier, "@") {
			r.warnOnCollision(ctx, identifier, u)
		}
		return resolved(u, MatchedUsername), nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return Resolved{}, fmt.Errorf("lookup by username: %w", err)
	}

	u, err = r.Credentials.FindByEmail(ctx, strings.ToLower(identifier))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Resolved{}, ErrPrincipalNotFound
		}
		return Resolved{}, fmt.Errorf("lookup by email: %w", err)
	}
	return resolved(u, MatchedEmail), nil
}

// ResolveBySubject maps a token subject back to a principal. Subjects are
// always canonical usernames, so email is never consulted.
func (r *PrincipalResolver) ResolveBySubject(ctx context.Context, username string) (domain.Principal, error) {
	if username == "" {
		return domain.Principal{}, ErrPrincipalNotFound
	}

	u, err := r.Credentials.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Principal{}, ErrPrincipalNotFound
		}
		return domain.Principal{}, fmt.Errorf("lookup by username: %w", err)
	}
	return domain.NewPrincipal(u), nil
}

// warnOnCollision flags an identifier that is one account's username and
// another account's email. The username match still wins.
func (r *PrincipalResolver) warnOnCollision(ctx context.Context, identifier string, byUsername domain.User) {
	other, err := r.Credentials.FindByEmail(ctx, strings.ToLower(identifier))
	if err != nil || other.ID == byUsername.ID {
		return
	}

	slogx.FromContext(ctx).Warn("login identifier collision",
		slog.String("username_match", byUsername.ID),
		slog.String("email_match", other.ID),
	)
}

func resolved(u domain.User, by MatchedBy) Resolved {
	return Resolved{
		Principal:  domain.NewPrincipal(u),
		Credential: u,
		MatchedBy:  by,
	}
}
