package jwtx

// Signer is our interface for anything that can mint tokens.
type Signer interface {
	Issue(subject string) (string, error)
}
