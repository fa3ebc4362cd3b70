package domain

import "strings"

// RoleUser is granted to every account at registration.
const RoleUser = "ROLE_USER"

// DefaultRoles returns the roles a new account starts with.
func DefaultRoles() []string {
	return []string{RoleUser}
}

// EncodeRoles joins roles for storage in a single column.
func EncodeRoles(roles []string) string {
	return strings.Join(roles, " ")
}

// DecodeRoles splits a stored roles column. An empty column still yields
// the default role so older rows keep working.
func DecodeRoles(s string) []string {
	roles := strings.Fields(s)
	if len(roles) == 0 {
		return DefaultRoles()
	}
	return roles
}
