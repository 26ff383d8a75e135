package entity

import "time"

// Default role assigned at signup when none is requested.
const DefaultRoleName = "Viewer"

// Built-in role names seeded by cmd/seed. Roles are data, not code: nothing
// outside the seed depends on this exact set.
const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleStaff   = "Staff"
	RoleViewer  = "Viewer"
)

// Role is a named bundle of permissions. Permission membership lives in the
// role_permissions join table and is resolved explicitly by the repository,
// never followed as a live object reference.
//
// UserCount is a cached derived value: the count of active users whose
// role_id points here. It is recomputed after every membership mutation and
// again on every role read, so a failed recompute only leaves it stale until
// the next read.
type Role struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Color       string
	IsActive    bool
	UserCount   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
