package jwtx

import (
	"errors"
)

// Verifier validates a token and gives you back the claims if it's legit.
type Verifier interface {
	Validate(token string) (Claims, error)
}

// Every validation failure wraps exactly one of these.
var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrExpired    = errors.New("jwtx: token expired")
)

// ErrInvalidSubject is returned by Issue for an empty subject.
var ErrInvalidSubject = errors.New("jwtx: invalid subject")

// errAlgMismatch never leaves the package, it is folded into ErrMalformed.
var errAlgMismatch = errors.New("jwtx: algorithm mismatch")

// Failure reasons, used as log and metric labels.
const (
	ReasonMalformed    = "malformed"
	ReasonBadSignature = "bad_signature"
	ReasonExpired      = "expired"
)

// Reason maps a validation error onto a short label.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrExpired):
		return ReasonExpired
	case errors.Is(err, ErrInvalidSig):
		return ReasonBadSignature
	default:
		return ReasonMalformed
	}
}
