package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fintrack/fintrack/internal/auth/metrics"
	"github.com/fintrack/fintrack/internal/auth/service"
	"github.com/fintrack/fintrack/pkg/authsdk"
	"github.com/fintrack/fintrack/pkg/cryptox"
	"github.com/fintrack/fintrack/pkg/httpx"
	"github.com/fintrack/fintrack/pkg/jwtx"
	"github.com/fintrack/fintrack/pkg/slogx"
)

// Authenticate resolves a bearer token into a principal and attaches it to
// the request context. Requests without a usable token continue
// unauthenticated; rejecting them is up to RequireAuthenticated.
func Authenticate(authn *service.Authenticator, m *metrics.Metrics) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := httpx.BearerToken(r)
			if !ok || authn == nil {
				m.Authn(metrics.AuthnAnonymous)
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			p, err := authn.ValidateAndResolve(ctx, token)
			if err != nil {
				reason := authnFailure(err)
				m.Authn(reason)

				level := slog.LevelDebug
				if reason == metrics.AuthnError || reason == jwtx.ReasonBadSignature {
					level = slog.LevelWarn
				}
				slogx.FromContext(ctx).Log(ctx, level, "bearer token rejected",
					slog.String("reason", reason),
					slog.String("token_fp", cryptox.Fingerprint(token)),
					slog.Any("error", err),
				)

				next.ServeHTTP(w, r)
				return
			}

			m.Authn(metrics.AuthnAuthenticated)
			ctx = service.WithPrincipal(ctx, p)
			ctx = slogx.With(ctx, slog.String("user_id", p.ID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authnFailure(err error) string {
	switch {
	case errors.Is(err, service.ErrPrincipalNotFound):
		return metrics.AuthnPrincipalNotFound
	case errors.Is(err, jwtx.ErrExpired), errors.Is(err, jwtx.ErrInvalidSig), errors.Is(err, jwtx.ErrMalformed):
		return jwtx.Reason(err)
	default:
		return metrics.AuthnError
	}
}

// RequireAuthenticated rejects requests that reached it without a
// principal. Every cause (no token, expired, forged, deleted account)
// gets the same 401.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := service.PrincipalFromContext(r.Context()); !ok {
			httpx.WriteBearerChallenge(w, Realm)
			authsdk.ErrUnauthorized.WriteError(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PrincipalKeyExtractor keys rate limits on the authenticated user id.
func PrincipalKeyExtractor(r *http.Request) string {
	p, ok := service.PrincipalFromContext(r.Context())
	if !ok {
		return ""
	}
	return p.ID
}
