package dto

import (
	"time"

	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/entity"
)

// CreateRoleRequest input to create a role with an initial permission set.
type CreateRoleRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=100"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	Icon        string   `json:"icon"`
	Color       string   `json:"color"`
	Permissions []string `json:"permissions"` // permission ids
}

// UpdateRoleRequest partial update; nil fields stay untouched.
type UpdateRoleRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color"`
	IsActive    *bool   `json:"isActive"`
}

// ReplaceRolePermissionsRequest wholesale permission set replacement.
type ReplaceRolePermissionsRequest struct {
	Permissions []string `json:"permissions"` // permission ids, all-or-nothing
}

// RoleResponse output for one role with its permission set resolved and
// user count freshly recomputed.
type RoleResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Icon        string               `json:"icon"`
	Color       string               `json:"color"`
	IsActive    bool                 `json:"isActive"`
	UserCount   int                  `json:"userCount"`
	Permissions []PermissionResponse `json:"permissions"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// RoleListResponse listing of roles.
type RoleListResponse struct {
	Roles []RoleResponse `json:"roles"`
}

// ToRoleResponse maps a role entity plus its resolved permissions.
func ToRoleResponse(r *entity.Role, perms []*entity.Permission) RoleResponse {
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Icon:        r.Icon,
		Color:       r.Color,
		IsActive:    r.IsActive,
		UserCount:   r.UserCount,
		Permissions: ToPermissionResponses(perms),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
