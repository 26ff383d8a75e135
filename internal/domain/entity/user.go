package entity

import "time"

// User is an account bound to exactly one role plus an optional set of
// per-user permission overrides. Overrides are additive only: they can grant
// keys on top of the role but never revoke one.
type User struct {
	ID           string
	FullName     string
	Email        string // stored lower-cased; uniqueness is case-insensitive
	PasswordHash string // bcrypt hash, never plaintext past signup
	RoleID       string
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
