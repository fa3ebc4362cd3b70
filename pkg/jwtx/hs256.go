package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Options configures a TokenService.
type Options struct {
	// Secret is the HS256 key, used for both signing and verification.
	Secret []byte

	// TTL is applied to every token. Zero means DefaultTokenTTL.
	TTL time.Duration

	// Issuer is written to iss and enforced on validation when set.
	Issuer string

	// Now overrides the clock, mostly for tests.
	Now func() time.Time
}

// TokenService signs and validates HS256 tokens with a single process-wide
// key. The algorithm is fixed; the token header never selects it.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
	parser *jwt.Parser
}

var (
	_ Signer   = (*TokenService)(nil)
	_ Verifier = (*TokenService)(nil)
)

// NewTokenService validates opts and builds a TokenService. The secret is
// copied so later changes to the caller's slice have no effect.
func NewTokenService(opts Options) (*TokenService, error) {
	if len(opts.Secret) < MinSecretSize {
		return nil, fmt.Errorf("%w: need at least %d bytes, got %d", ErrWeakSecret, MinSecretSize, len(opts.Secret))
	}

	ttl := opts.TTL
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	if ttl < 0 {
		return nil, fmt.Errorf("jwtx: ttl must be positive, got %s", ttl)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithTimeFunc(now),
		jwt.WithExpirationRequired(),
		// Reject non-canonical base64 so every character of the signature counts
		jwt.WithStrictDecoding(),
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}

	secret := make([]byte, len(opts.Secret))
	copy(secret, opts.Secret)

	return &TokenService{
		secret: secret,
		ttl:    ttl,
		issuer: opts.Issuer,
		now:    now,
		parser: jwt.NewParser(parserOpts...),
	}, nil
}

// TTL reports the lifetime given to every issued token.
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue mints a token for subject, valid from now until now+TTL.
func (s *TokenService) Issue(subject string) (string, error) {
	if subject == "" {
		return "", ErrInvalidSubject
	}

	claims := NewClaims(subject, s.issuer, s.ttl, s.now().UTC())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign token: %w", err)
	}
	return signed, nil
}

// Validate checks the signature first and then the temporal claims, in a
// single call. The returned error wraps ErrMalformed, ErrInvalidSig or
// ErrExpired.
func (s *TokenService) Validate(tokenStr string) (Claims, error) {
	var claims Claims

	token, err := s.parser.ParseWithClaims(tokenStr, &claims, s.keyFunc)
	if err != nil {
		return Claims{}, classify(err)
	}
	if !token.Valid {
		return Claims{}, ErrMalformed
	}

	// We never mint subject-less tokens, so one is not ours to trust.
	if claims.Subject == "" {
		return Claims{}, fmt.Errorf("%w: missing subject", ErrMalformed)
	}

	return claims, nil
}

// SubjectOf validates the token and projects its subject.
func (s *TokenService) SubjectOf(tokenStr string) (string, error) {
	claims, err := s.Validate(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (s *TokenService) keyFunc(t *jwt.Token) (any, error) {
	// Pin the method instead of trusting the header's alg
	if t.Method != jwt.SigningMethodHS256 {
		return nil, fmt.Errorf("%w: got %v", errAlgMismatch, t.Header["alg"])
	}
	return s.secret, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, errAlgMismatch):
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrInvalidSig, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrExpired, err)
	default:
		// Unknown alg, missing exp, wrong issuer and friends
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
}
