package usecase

import "github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/repository"

// RoleCounter is the single entry point for refreshing the Role.UserCount
// cache. Every mutation path that changes role membership (user creation,
// role reassignment, activation, deactivation) calls Recompute here instead
// of repeating a count-and-write at each call site; list/get reads call it
// too, which makes a stale count self-healing rather than fatal.
type RoleCounter struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

// NewRoleCounter builds the counter over the directory ports.
func NewRoleCounter(userRepo repository.UserRepository, roleRepo repository.RoleRepository) *RoleCounter {
	return &RoleCounter{userRepo: userRepo, roleRepo: roleRepo}
}

// Recompute sets the role's cached user count to the live count of active
// users referencing it. The count read happens after the caller's primary
// mutation has been committed, so it always sees a post-mutation snapshot.
func (c *RoleCounter) Recompute(roleID string) (int, error) {
	if roleID == "" {
		return 0, nil
	}
	n, err := c.userRepo.CountActiveByRole(roleID)
	if err != nil {
		return 0, err
	}
	if err := c.roleRepo.SetUserCount(roleID, n); err != nil {
		return 0, err
	}
	return n, nil
}
