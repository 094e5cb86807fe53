package model

import "fmt"

// Role is the closed set of principal roles. Anything outside the set is a
// configuration error, caught at user creation time rather than silently
// denied at authorization time.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the recognized roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// ParseRole converts a raw role string into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q (must be %q or %q)", s, RoleUser, RoleAdmin)
	}
	return r, nil
}

func (r Role) String() string {
	return string(r)
}
