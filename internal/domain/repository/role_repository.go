package repository

import "github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/entity"

// RoleRepository defines the persistence port for roles and their permission
// membership. The role_permissions join is resolved explicitly through
// GetPermissions, never embedded in the Role entity.
type RoleRepository interface {
	Create(r *entity.Role) error
	GetByID(id string) (*entity.Role, error)
	GetByName(name string) (*entity.Role, error)
	List(activeOnly bool) ([]*entity.Role, error)
	Update(r *entity.Role) error
	// Delete removes the role row and its join rows. Reference checks are the
	// use case's job; the repository does not refuse.
	Delete(id string) error
	// ReplacePermissions swaps the role's permission set wholesale inside one
	// transaction (delete + insert), last write wins.
	ReplacePermissions(roleID string, permissionIDs []string) error
	// GetPermissions returns every permission the role references, active or
	// not; active filtering happens at decision time.
	GetPermissions(roleID string) ([]*entity.Permission, error)
	SetUserCount(roleID string, count int) error
}
