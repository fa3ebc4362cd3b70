package service

import (
	"context"

	"github.com/fintrack/fintrack/internal/auth/domain"
	"github.com/fintrack/fintrack/pkg/jwtx"
)

// Authenticator turns a bearer token into a principal.
type Authenticator struct {
	Tokens   jwtx.Verifier
	Resolver *PrincipalResolver
}

// ValidateAndResolve verifies token and loads the account named by its
// subject. Errors wrap one of the jwtx sentinels or ErrPrincipalNotFound;
// callers are expected to collapse them into "unauthenticated".
func (a *Authenticator) ValidateAndResolve(ctx context.Context, token string) (domain.Principal, error) {
	claims, err := a.Tokens.Validate(token)
	if err != nil {
		return domain.Principal{}, err
	}
	return a.Resolver.ResolveBySubject(ctx, claims.Subject)
}
