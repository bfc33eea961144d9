package models

import "time"

// Role determines which feature gates apply to a user: standard accounts are
// capped at a fixed note count and cannot attach images; premium accounts
// have neither restriction.
type Role string

const (
	RoleStandard Role = "standard"
	RolePremium  Role = "premium"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleStandard || r == RolePremium
}

// User is the identity record. PasswordHash never leaves the server.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
