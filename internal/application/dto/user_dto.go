package dto

import (
	"time"

	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/entity"
)

// SignupRequest input for account creation (password in plaintext, hashed in
// the use case). RoleName is optional; the Viewer role is assigned by default.
type SignupRequest struct {
	FullName string `json:"fullname" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	RoleName string `json:"roleName" validate:"omitempty,max=100"`
}

// SigninRequest input for authentication.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionUser is the principal snapshot returned with a token: role name plus
// the merged effective permission keys. Clients cache it for route guards.
type SessionUser struct {
	ID          string   `json:"id"`
	FullName    string   `json:"fullname"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// AuthResponse output of signup/signin.
type AuthResponse struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

// RoleSummary compact role reference embedded in user listings.
type RoleSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

// UserResponse output for one user in directory listings. Never carries the
// credential.
type UserResponse struct {
	ID          string               `json:"id"`
	FullName    string               `json:"fullname"`
	Email       string               `json:"email"`
	IsActive    bool                 `json:"isActive"`
	LastLogin   *time.Time           `json:"lastLogin,omitempty"`
	Role        RoleSummary          `json:"role"`
	Permissions []PermissionResponse `json:"permissions"` // per-user overrides
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// UserListResponse paginated user listing.
type UserListResponse struct {
	Users       []UserResponse `json:"users"`
	Total       int            `json:"total"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
}

// UpdateUserRoleRequest role reassignment by role name.
type UpdateUserRoleRequest struct {
	RoleName string `json:"roleName" validate:"required"`
}

// UpdateUserPermissionsRequest wholesale override set replacement.
type UpdateUserPermissionsRequest struct {
	Permissions []string `json:"permissions"` // permission ids, all-or-nothing
}

// ToUserResponse maps a user entity plus its resolved role and overrides.
func ToUserResponse(u *entity.User, role *entity.Role, overrides []*entity.Permission) UserResponse {
	resp := UserResponse{
		ID:          u.ID,
		FullName:    u.FullName,
		Email:       u.Email,
		IsActive:    u.IsActive,
		LastLogin:   u.LastLogin,
		Permissions: ToPermissionResponses(overrides),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	if role != nil {
		resp.Role = RoleSummary{
			ID:          role.ID,
			Name:        role.Name,
			Description: role.Description,
			Icon:        role.Icon,
			Color:       role.Color,
		}
	}
	return resp
}
