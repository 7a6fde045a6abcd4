package domain

import (
	"errors"
	"time"
)

// Role is the closed set of access levels a user can hold.
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Authorities maps a role to the authority strings embedded in tokens and
// checked by the RBAC layer. One role yields exactly one authority.
func (r Role) Authorities() []string {
	switch r {
	case RoleAdmin:
		return []string{"ROLE_ADMIN"}
	case RoleManager:
		return []string{"ROLE_MANAGER"}
	case RoleUser:
		return []string{"ROLE_USER"}
	}
	return nil
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the per-request authenticated caller, rebuilt from a validated
// token plus a fresh user lookup. It is never shared across requests.
type Identity struct {
	Username    string
	Role        Role
	Authorities []string
}

// HasAnyRole reports whether the identity holds one of the given roles.
func (id Identity) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if id.Role == r {
			return true
		}
	}
	return false
}

// IsManagerOrAdmin reports whether the identity may see admin projections.
func (id Identity) IsManagerOrAdmin() bool {
	return id.HasAnyRole(RoleManager, RoleAdmin)
}
