package usecase

import (
	"fmt"
	"time"

	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/application/dto"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/entity"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/repository"
)

// UserUseCase business rules for the user directory (admin operations;
// signup/signin live in application/auth).
type UserUseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	permRepo repository.PermissionRepository
	counter  *RoleCounter
}

// NewUserUseCase builds the use case with its persistence ports.
func NewUserUseCase(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	permRepo repository.PermissionRepository,
	counter *RoleCounter,
) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, roleRepo: roleRepo, permRepo: permRepo, counter: counter}
}

// List returns a page of active users. roleName filters by role; search
// matches fullname or email case-insensitively as a substring. Responses
// resolve role and overrides and never carry the credential.
func (uc *UserUseCase) List(page dto.PageRequest, roleName, search string) (*dto.UserListResponse, error) {
	page.DefaultPage()

	roleID := ""
	if roleName != "" {
		role, err := uc.roleRepo.GetByName(roleName)
		if err != nil {
			return nil, err
		}
		// Unknown role name filters nothing out, same as no filter matching —
		// the listing just comes back empty.
		if role == nil {
			return &dto.UserListResponse{Users: []dto.UserResponse{}, CurrentPage: page.Page}, nil
		}
		roleID = role.ID
	}

	users, total, err := uc.userRepo.List(repository.ListUsersParams{
		RoleID:     roleID,
		Search:     search,
		ActiveOnly: true,
		Limit:      page.Limit,
		Offset:     page.Offset(),
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		resolved, err := uc.resolve(u)
		if err != nil {
			return nil, err
		}
		out = append(out, *resolved)
	}

	totalPages := (total + page.Limit - 1) / page.Limit
	return &dto.UserListResponse{
		Users:       out,
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page.Page,
	}, nil
}

// GetByID returns one user with role and overrides resolved.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return uc.resolve(user)
}

// UpdateRole reassigns the user to an ACTIVE role resolved by name, then
// refreshes the cached count of both the previous and the new role. When old
// and new are the same role the recompute runs twice against the same live
// count, which is a harmless no-op.
func (uc *UserUseCase) UpdateRole(userID, roleName string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	newRole, err := uc.roleRepo.GetByName(roleName)
	if err != nil {
		return nil, err
	}
	if newRole == nil || !newRole.IsActive {
		return nil, fmt.Errorf("%w: unknown or inactive role %q", domain.ErrValidation, roleName)
	}

	oldRoleID := user.RoleID
	user.RoleID = newRole.ID
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}

	// Cache refresh runs after the committed role-pointer write; a failure
	// here leaves a stale count that the next read-triggered recompute heals.
	if _, err := uc.counter.Recompute(oldRoleID); err != nil {
		return nil, err
	}
	if _, err := uc.counter.Recompute(newRole.ID); err != nil {
		return nil, err
	}
	return uc.resolve(user)
}

// UpdateOverridePermissions swaps the user's override set wholesale. Every id
// must resolve to an active permission or nothing is applied.
func (uc *UserUseCase) UpdateOverridePermissions(userID string, permissionIDs []string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if len(permissionIDs) > 0 {
		matched, err := uc.permRepo.GetActiveByIDs(permissionIDs)
		if err != nil {
			return nil, err
		}
		if len(matched) != len(permissionIDs) {
			return nil, &domain.InvalidPermissionsError{Requested: len(permissionIDs), Matched: len(matched)}
		}
	}
	if err := uc.userRepo.ReplaceOverrides(userID, permissionIDs); err != nil {
		return nil, err
	}
	return uc.resolve(user)
}

// Deactivate soft-disables an account. Self-deactivation is forbidden.
func (uc *UserUseCase) Deactivate(userID, requestingUserID string) error {
	if userID == requestingUserID {
		return fmt.Errorf("%w: cannot deactivate your own account", domain.ErrForbidden)
	}
	return uc.setActive(userID, false)
}

// Activate re-enables an account.
func (uc *UserUseCase) Activate(userID string) error {
	return uc.setActive(userID, true)
}

func (uc *UserUseCase) setActive(userID string, active bool) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	user.IsActive = active
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return err
	}
	_, err = uc.counter.Recompute(user.RoleID)
	return err
}

func (uc *UserUseCase) resolve(u *entity.User) (*dto.UserResponse, error) {
	role, err := uc.roleRepo.GetByID(u.RoleID)
	if err != nil {
		return nil, err
	}
	overrides, err := uc.userRepo.GetOverrides(u.ID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(u, role, overrides)
	return &resp, nil
}
