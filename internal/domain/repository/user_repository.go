package repository

import (
	"time"

	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/entity"
)

// ListUsersParams filters for the paginated user listing. Search matches
// fullname or email as a case-insensitive substring.
type ListUsersParams struct {
	RoleID     string
	Search     string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// UserRepository defines the persistence port for user accounts and their
// per-user permission overrides. Lookups return (nil, nil) when absent.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	// GetByEmail matches case-insensitively (emails are stored lower-cased).
	GetByEmail(email string) (*entity.User, error)
	GetByFullName(fullname string) (*entity.User, error)
	Update(u *entity.User) error
	UpdateLastLogin(id string, at time.Time) error
	List(params ListUsersParams) ([]*entity.User, int, error)
	// CountActiveByRole is the authoritative membership count behind the
	// Role.UserCount cache.
	CountActiveByRole(roleID string) (int, error)
	// ReplaceOverrides swaps the user's override set wholesale inside one
	// transaction.
	ReplaceOverrides(userID string, permissionIDs []string) error
	// GetOverrides returns every override the user references, active or not.
	GetOverrides(userID string) ([]*entity.Permission, error)
}
