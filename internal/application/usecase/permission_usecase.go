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

// PermissionUseCase business rules for the permission catalog.
type PermissionUseCase struct {
	permRepo repository.PermissionRepository
}

// NewPermissionUseCase builds the use case with its persistence port.
func NewPermissionUseCase(permRepo repository.PermissionRepository) *PermissionUseCase {
	return &PermissionUseCase{permRepo: permRepo}
}

// List returns the catalog grouped by category. Group order follows discovery
// order: the first permission encountered in a category defines where that
// group appears, there is no fixed category ordering. Labels come from the
// fixed lookup table; unknown categories fall back to the raw string.
func (uc *PermissionUseCase) List(activeOnly bool) (*dto.PermissionCatalogResponse, error) {
	perms, err := uc.permRepo.List(activeOnly)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	groups := make([]dto.PermissionCategoryResponse, 0)
	for _, p := range perms {
		i, ok := index[p.Category]
		if !ok {
			label, known := entity.CategoryLabels[p.Category]
			if !known {
				label = entity.CategoryLabel{Name: p.Category}
			}
			i = len(groups)
			index[p.Category] = i
			groups = append(groups, dto.PermissionCategoryResponse{
				ID:          p.Category,
				Name:        label.Name,
				Description: label.Description,
			})
		}
		groups[i].Permissions = append(groups[i].Permissions, dto.ToPermissionResponse(p))
	}
	return &dto.PermissionCatalogResponse{PermissionCategories: groups}, nil
}

// Create adds a catalog entry. The permission key is derived as
// "<resource>.<action>"; the (resource, action) pair must be unique.
func (uc *PermissionUseCase) Create(in dto.CreatePermissionRequest) (*dto.PermissionResponse, error) {
	if in.Name == "" || in.Resource == "" {
		return nil, fmt.Errorf("%w: name and resource are required", domain.ErrValidation)
	}
	if !entity.ValidCategory(in.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, in.Category)
	}
	if !entity.ValidAction(in.Action) {
		return nil, fmt.Errorf("%w: unknown action %q", domain.ErrValidation, in.Action)
	}

	existing, err := uc.permRepo.GetByResourceAction(in.Resource, in.Action)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	perm := &entity.Permission{
		ID:          uuid.New().String(),
		Key:         in.Resource + "." + in.Action,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Resource:    in.Resource,
		Action:      in.Action,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.permRepo.Create(perm); err != nil {
		return nil, err
	}
	resp := dto.ToPermissionResponse(perm)
	return &resp, nil
}

// Update changes only the provided fields of a catalog entry. Resource and
// action are immutable: they define the key and the uniqueness pair.
func (uc *PermissionUseCase) Update(id string, in dto.UpdatePermissionRequest) (*dto.PermissionResponse, error) {
	perm, err := uc.permRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if perm == nil {
		return nil, domain.ErrPermissionNotFound
	}

	if in.Name != nil {
		perm.Name = *in.Name
	}
	if in.Description != nil {
		perm.Description = *in.Description
	}
	if in.Category != nil {
		if !entity.ValidCategory(*in.Category) {
			return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, *in.Category)
		}
		perm.Category = *in.Category
	}
	if in.IsActive != nil {
		perm.IsActive = *in.IsActive
	}
	perm.UpdatedAt = time.Now()

	if err := uc.permRepo.Update(perm); err != nil {
		return nil, err
	}
	resp := dto.ToPermissionResponse(perm)
	return &resp, nil
}

// Deactivate soft-deletes a catalog entry. Roles and users keep their
// references; effective-permission computation filters by the active flag at
// read time, so the entry simply stops counting on the next evaluation.
func (uc *PermissionUseCase) Deactivate(id string) error {
	perm, err := uc.permRepo.GetByID(id)
	if err != nil {
		return err
	}
	if perm == nil {
		return domain.ErrPermissionNotFound
	}
	perm.IsActive = false
	perm.UpdatedAt = time.Now()
	return uc.permRepo.Update(perm)
}
