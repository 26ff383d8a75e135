package repository

import "github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/entity"

// PermissionRepository defines the persistence port for the permission catalog.
// Lookups return (nil, nil) when no row matches.
type PermissionRepository interface {
	Create(p *entity.Permission) error
	GetByID(id string) (*entity.Permission, error)
	GetByResourceAction(resource, action string) (*entity.Permission, error)
	// List returns catalog entries in insertion order (created_at). With
	// activeOnly, deactivated entries are excluded.
	List(activeOnly bool) ([]*entity.Permission, error)
	// GetActiveByIDs resolves ids to active permissions only; callers compare
	// the result length against len(ids) for all-or-nothing reference checks.
	GetActiveByIDs(ids []string) ([]*entity.Permission, error)
	Update(p *entity.Permission) error
}
