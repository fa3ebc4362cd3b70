package domain

import "time"

// User is a stored account. It is the only type that carries the password
// hash and never leaves the service layer.
type User struct {
	ID           string
	Username     string
	Email        string // stored lowercased
	FullName     string
	PasswordHash string // argon2id PHC string
	Roles        []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
