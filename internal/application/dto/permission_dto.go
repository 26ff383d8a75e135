package dto

import (
	"time"

	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/entity"
)

// CreatePermissionRequest input to create a catalog entry.
type CreatePermissionRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Category    string `json:"category" validate:"required,oneof=invoices reports user_management system"`
	Resource    string `json:"resource" validate:"required,min=1,max=100"`
	Action      string `json:"action" validate:"required,oneof=create read update delete approve validate export"`
}

// UpdatePermissionRequest partial update; nil fields stay untouched.
type UpdatePermissionRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	IsActive    *bool   `json:"isActive"`
}

// PermissionResponse output for one catalog entry.
type PermissionResponse struct {
	ID          string    `json:"id"`
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Resource    string    `json:"resource"`
	Action      string    `json:"action"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PermissionCategoryResponse one group of the grouped catalog listing.
type PermissionCategoryResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Permissions []PermissionResponse `json:"permissions"`
}

// PermissionCatalogResponse the grouped catalog listing.
type PermissionCatalogResponse struct {
	PermissionCategories []PermissionCategoryResponse `json:"permissionCategories"`
}

// ToPermissionResponse maps an entity to its response shape.
func ToPermissionResponse(p *entity.Permission) PermissionResponse {
	return PermissionResponse{
		ID:          p.ID,
		Key:         p.Key,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Resource:    p.Resource,
		Action:      p.Action,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToPermissionResponses maps a slice of entities.
func ToPermissionResponses(perms []*entity.Permission) []PermissionResponse {
	out := make([]PermissionResponse, 0, len(perms))
	for _, p := range perms {
		out = append(out, ToPermissionResponse(p))
	}
	return out
}
