package jwtx

import (
	"time"

	"github.com/fintrack/fintrack/pkg/idx"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of a login token. There is no refresh
// flow, so a token is good for exactly this long after it is minted.
const DefaultTokenTTL = 24 * time.Hour

// Claims are the claims carried by a login token. The subject is always
// the canonical username, never an email.
type Claims struct {
	jwt.RegisteredClaims
}

// NewClaims builds claims for subject issued at now and expiring after ttl.
// Each call gets a fresh jti, so two logins in the same second still yield
// distinct tokens.
func NewClaims(subject, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        idx.NewAt(now).String(),
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// IssuedAtTime returns iat, or the zero time when absent.
func (c Claims) IssuedAtTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

// ExpiresAtTime returns exp, or the zero time when absent.
func (c Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
