package usecase_test

import (
	"strings"
	"time"

	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/entity"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes for the persistence ports
// ──────────────────────────────────────────────────────────────────────────────

type fakePermissionRepo struct {
	perms map[string]*entity.Permission // by id
	order []string
}

func newFakePermissionRepo(perms ...*entity.Permission) *fakePermissionRepo {
	r := &fakePermissionRepo{perms: make(map[string]*entity.Permission)}
	for _, p := range perms {
		cp := *p
		r.perms[p.ID] = &cp
		r.order = append(r.order, p.ID)
	}
	return r
}

func (r *fakePermissionRepo) Create(p *entity.Permission) error {
	cp := *p
	r.perms[p.ID] = &cp
	r.order = append(r.order, p.ID)
	return nil
}

func (r *fakePermissionRepo) GetByID(id string) (*entity.Permission, error) {
	p, ok := r.perms[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePermissionRepo) GetByResourceAction(resource, action string) (*entity.Permission, error) {
	for _, id := range r.order {
		p := r.perms[id]
		if p.Resource == resource && p.Action == action {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePermissionRepo) List(activeOnly bool) ([]*entity.Permission, error) {
	var out []*entity.Permission
	for _, id := range r.order {
		p := r.perms[id]
		if activeOnly && !p.IsActive {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePermissionRepo) GetActiveByIDs(ids []string) ([]*entity.Permission, error) {
	var out []*entity.Permission
	for _, id := range ids {
		if p, ok := r.perms[id]; ok && p.IsActive {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePermissionRepo) Update(p *entity.Permission) error {
	cp := *p
	r.perms[p.ID] = &cp
	return nil
}

type fakeRoleRepo struct {
	roles     map[string]*entity.Role // by id
	grants    map[string][]string     // roleID -> permission ids
	permRepo  *fakePermissionRepo
	deleted   []string
	setCounts map[string]int
}

func newFakeRoleRepo(permRepo *fakePermissionRepo, roles ...*entity.Role) *fakeRoleRepo {
	r := &fakeRoleRepo{
		roles:     make(map[string]*entity.Role),
		grants:    make(map[string][]string),
		permRepo:  permRepo,
		setCounts: make(map[string]int),
	}
	for _, role := range roles {
		cp := *role
		r.roles[role.ID] = &cp
	}
	return r
}

func (r *fakeRoleRepo) Create(role *entity.Role) error {
	cp := *role
	r.roles[role.ID] = &cp
	return nil
}

func (r *fakeRoleRepo) GetByID(id string) (*entity.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, nil
	}
	cp := *role
	return &cp, nil
}

func (r *fakeRoleRepo) GetByName(name string) (*entity.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			cp := *role
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRoleRepo) List(activeOnly bool) ([]*entity.Role, error) {
	var out []*entity.Role
	for _, role := range r.roles {
		if activeOnly && !role.IsActive {
			continue
		}
		cp := *role
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRoleRepo) Update(role *entity.Role) error {
	cp := *role
	r.roles[role.ID] = &cp
	return nil
}

func (r *fakeRoleRepo) Delete(id string) error {
	delete(r.roles, id)
	delete(r.grants, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeRoleRepo) ReplacePermissions(roleID string, permissionIDs []string) error {
	r.grants[roleID] = append([]string(nil), permissionIDs...)
	return nil
}

func (r *fakeRoleRepo) GetPermissions(roleID string) ([]*entity.Permission, error) {
	var out []*entity.Permission
	for _, id := range r.grants[roleID] {
		if p, ok := r.permRepo.perms[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRoleRepo) SetUserCount(roleID string, count int) error {
	if role, ok := r.roles[roleID]; ok {
		role.UserCount = count
	}
	r.setCounts[roleID] = count
	return nil
}

type fakeUserRepo struct {
	users     map[string]*entity.User // by id
	overrides map[string][]string     // userID -> permission ids
	permRepo  *fakePermissionRepo
}

func newFakeUserRepo(permRepo *fakePermissionRepo, users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{
		users:     make(map[string]*entity.User),
		overrides: make(map[string][]string),
		permRepo:  permRepo,
	}
	for _, u := range users {
		cp := *u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	email = strings.ToLower(email)
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByFullName(fullname string) (*entity.User, error) {
	for _, u := range r.users {
		if u.FullName == fullname {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(id string, at time.Time) error {
	if u, ok := r.users[id]; ok {
		t := at
		u.LastLogin = &t
	}
	return nil
}

func (r *fakeUserRepo) List(params repository.ListUsersParams) ([]*entity.User, int, error) {
	var matched []*entity.User
	for _, u := range r.users {
		if params.ActiveOnly && !u.IsActive {
			continue
		}
		if params.RoleID != "" && u.RoleID != params.RoleID {
			continue
		}
		if params.Search != "" {
			s := strings.ToLower(params.Search)
			if !strings.Contains(strings.ToLower(u.FullName), s) &&
				!strings.Contains(u.Email, s) {
				continue
			}
		}
		cp := *u
		matched = append(matched, &cp)
	}
	total := len(matched)
	if params.Offset >= total {
		return nil, total, nil
	}
	end := params.Offset + params.Limit
	if end > total {
		end = total
	}
	return matched[params.Offset:end], total, nil
}

func (r *fakeUserRepo) CountActiveByRole(roleID string) (int, error) {
	n := 0
	for _, u := range r.users {
		if u.IsActive && u.RoleID == roleID {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) ReplaceOverrides(userID string, permissionIDs []string) error {
	r.overrides[userID] = append([]string(nil), permissionIDs...)
	return nil
}

func (r *fakeUserRepo) GetOverrides(userID string) ([]*entity.Permission, error) {
	var out []*entity.Permission
	for _, id := range r.overrides[userID] {
		if p, ok := r.permRepo.perms[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Interface conformance
var (
	_ repository.PermissionRepository = (*fakePermissionRepo)(nil)
	_ repository.RoleRepository       = (*fakeRoleRepo)(nil)
	_ repository.UserRepository       = (*fakeUserRepo)(nil)
)
