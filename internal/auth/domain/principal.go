package domain

import "slices"

// Principal is the identity attached to an authenticated request. Build it
// with NewPrincipal from a stored User; it never holds the password hash.
type Principal struct {
	ID       string
	Username string
	Email    string
	Roles    []string
}

// NewPrincipal projects u into a Principal.
func NewPrincipal(u User) Principal {
	roles := u.Roles
	if len(roles) == 0 {
		roles = DefaultRoles()
	}

	return Principal{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Roles:    slices.Clone(roles),
	}
}

// HasRole reports whether p was granted role.
func (p Principal) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}
