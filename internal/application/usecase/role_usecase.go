package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/application/dto"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/entity"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/repository"
)

// RoleUseCase business rules for the role registry. Role names are unique
// case-SENSITIVELY (exact match), applied the same way on the create and
// update paths.
type RoleUseCase struct {
	roleRepo repository.RoleRepository
	permRepo repository.PermissionRepository
	userRepo repository.UserRepository
	counter  *RoleCounter
}

// NewRoleUseCase builds the use case with its persistence ports.
func NewRoleUseCase(
	roleRepo repository.RoleRepository,
	permRepo repository.PermissionRepository,
	userRepo repository.UserRepository,
	counter *RoleCounter,
) *RoleUseCase {
	return &RoleUseCase{roleRepo: roleRepo, permRepo: permRepo, userRepo: userRepo, counter: counter}
}

// List returns roles with permissions resolved and the user count recomputed
// for each role before the response (recompute-on-read; the stored count is
// never trusted on a read path).
func (uc *RoleUseCase) List(activeOnly bool) (*dto.RoleListResponse, error) {
	roles, err := uc.roleRepo.List(activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleResponse, 0, len(roles))
	for _, role := range roles {
		n, err := uc.counter.Recompute(role.ID)
		if err != nil {
			return nil, err
		}
		role.UserCount = n
		perms, err := uc.roleRepo.GetPermissions(role.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.ToRoleResponse(role, perms))
	}
	return &dto.RoleListResponse{Roles: out}, nil
}

// GetByID returns one role with permissions resolved and a fresh count.
func (uc *RoleUseCase) GetByID(id string) (*dto.RoleResponse, error) {
	role, err := uc.roleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrRoleNotFound
	}
	return uc.resolve(role)
}

// Create creates a role with an initial permission set. Fails with
// ErrDuplicate when the name is taken (active or inactive alike) and with
// InvalidPermissionsError when any permission id is unknown or inactive
// (all-or-nothing, nothing is written).
func (uc *RoleUseCase) Create(in dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: role name is required", domain.ErrValidation)
	}
	existing, err := uc.roleRepo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.checkPermissionIDs(in.Permissions); err != nil {
		return nil, err
	}

	now := time.Now()
	role := &entity.Role{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Icon:        in.Icon,
		Color:       in.Color,
		IsActive:    true,
		UserCount:   0, // no members yet, no recompute needed
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.roleRepo.Create(role); err != nil {
		return nil, err
	}
	if len(in.Permissions) > 0 {
		if err := uc.roleRepo.ReplacePermissions(role.ID, in.Permissions); err != nil {
			return nil, err
		}
	}
	return uc.resolve(role)
}

// Update changes role metadata. A name change re-checks uniqueness excluding
// the role itself.
func (uc *RoleUseCase) Update(id string, in dto.UpdateRoleRequest) (*dto.RoleResponse, error) {
	role, err := uc.roleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrRoleNotFound
	}

	if in.Name != nil && *in.Name != role.Name {
		existing, err := uc.roleRepo.GetByName(*in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != role.ID {
			return nil, domain.ErrDuplicate
		}
		role.Name = *in.Name
	}
	if in.Description != nil {
		role.Description = *in.Description
	}
	if in.Icon != nil {
		role.Icon = *in.Icon
	}
	if in.Color != nil {
		role.Color = *in.Color
	}
	if in.IsActive != nil {
		role.IsActive = *in.IsActive
	}
	role.UpdatedAt = time.Now()

	if err := uc.roleRepo.Update(role); err != nil {
		return nil, err
	}
	return uc.resolve(role)
}

// ReplacePermissions swaps the role's permission set wholesale. Every id must
// resolve to an active permission or nothing is applied. Concurrent
// replacements are last-write-wins; there is no version check.
func (uc *RoleUseCase) ReplacePermissions(roleID string, permissionIDs []string) (*dto.RoleResponse, error) {
	role, err := uc.roleRepo.GetByID(roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrRoleNotFound
	}
	if err := uc.checkPermissionIDs(permissionIDs); err != nil {
		return nil, err
	}
	if err := uc.roleRepo.ReplacePermissions(roleID, permissionIDs); err != nil {
		return nil, err
	}
	return uc.resolve(role)
}

// Delete removes a role. Refused with RoleInUseError while any ACTIVE user
// still references it; the error carries the exact live count. Deactivated
// users do not block deletion.
func (uc *RoleUseCase) Delete(id string) error {
	role, err := uc.roleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if role == nil {
		return domain.ErrRoleNotFound
	}
	count, err := uc.userRepo.CountActiveByRole(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &domain.RoleInUseError{RoleID: id, UserCount: count}
	}
	return uc.roleRepo.Delete(id)
}

// checkPermissionIDs enforces the all-or-nothing active reference check.
func (uc *RoleUseCase) checkPermissionIDs(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	matched, err := uc.permRepo.GetActiveByIDs(ids)
	if err != nil {
		return err
	}
	if len(matched) != len(ids) {
		return &domain.InvalidPermissionsError{Requested: len(ids), Matched: len(matched)}
	}
	return nil
}

func (uc *RoleUseCase) resolve(role *entity.Role) (*dto.RoleResponse, error) {
	n, err := uc.counter.Recompute(role.ID)
	if err != nil {
		return nil, err
	}
	role.UserCount = n
	perms, err := uc.roleRepo.GetPermissions(role.ID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToRoleResponse(role, perms)
	return &resp, nil
}
