// Package authz resolves a principal's live authorization state from the
// directory. This is the server-boundary data source for the pure decision
// functions in pkg/authz: every protected request reloads the user, its role
// and its overrides, so a permission deactivated a second ago never counts —
// unlike the client snapshot, which stays as issued until re-authentication.
package authz

import (
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/entity"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/repository"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/pkg/authz"
)

// Principal is a fully resolved authenticated identity: the user row, its
// role, and the decision snapshot computed from live data.
type Principal struct {
	User     *entity.User
	Role     *entity.Role
	Snapshot authz.Snapshot
}

// Resolver loads principals with role and overrides joined.
type Resolver struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

// NewResolver builds the resolver over the directory ports.
func NewResolver(userRepo repository.UserRepository, roleRepo repository.RoleRepository) *Resolver {
	return &Resolver{userRepo: userRepo, roleRepo: roleRepo}
}

// Resolve loads the principal by user id. Returns ErrUserNotFound for a
// missing or inactive account — to the middleware both are the same 401.
func (r *Resolver) Resolve(userID string) (*Principal, error) {
	user, err := r.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrUserNotFound
	}
	return r.resolveUser(user)
}

// SnapshotFor computes the effective-permission snapshot for an already
// loaded user (used at token issuance).
func (r *Resolver) SnapshotFor(user *entity.User) (authz.Snapshot, error) {
	p, err := r.resolveUser(user)
	if err != nil {
		return authz.Snapshot{}, err
	}
	return p.Snapshot, nil
}

func (r *Resolver) resolveUser(user *entity.User) (*Principal, error) {
	role, err := r.roleRepo.GetByID(user.RoleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrRoleNotFound
	}
	rolePerms, err := r.roleRepo.GetPermissions(role.ID)
	if err != nil {
		return nil, err
	}
	overrides, err := r.userRepo.GetOverrides(user.ID)
	if err != nil {
		return nil, err
	}
	return &Principal{
		User: user,
		Role: role,
		Snapshot: authz.Snapshot{
			UserID:      user.ID,
			FullName:    user.FullName,
			Email:       user.Email,
			Role:        role.Name,
			Permissions: authz.EffectivePermissions(rolePerms, overrides),
		},
	}, nil
}
