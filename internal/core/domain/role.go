package domain

import "fmt"

// Role represents a user role in the system
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTrainer Role = "TRAINER"
	RoleMember  Role = "MEMBER"
)

// ParseRole converts a raw string into a Role
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleTrainer, RoleMember:
		return Role(s), nil
	}
	return "", fmt.Errorf("invalid role: %q", s)
}

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTrainer, RoleMember:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
