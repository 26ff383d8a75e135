package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/application/dto"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/application/usecase"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/entity"
)

type userFixture struct {
	perms *fakePermissionRepo
	roles *fakeRoleRepo
	users *fakeUserRepo
	uc    *usecase.UserUseCase
}

func newUserFixture(perms []*entity.Permission, roles []*entity.Role, users []*entity.User) userFixture {
	permRepo := newFakePermissionRepo(perms...)
	roleRepo := newFakeRoleRepo(permRepo, roles...)
	userRepo := newFakeUserRepo(permRepo, users...)
	counter := usecase.NewRoleCounter(userRepo, roleRepo)
	return userFixture{
		perms: permRepo,
		roles: roleRepo,
		users: userRepo,
		uc:    usecase.NewUserUseCase(userRepo, roleRepo, permRepo, counter),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateRole — membership counts of both roles refresh
// ──────────────────────────────────────────────────────────────────────────────

func TestUserUpdateRole_RefreshesBothRoleCounts(t *testing.T) {
	f := newUserFixture(nil,
		[]*entity.Role{activeRole("r-staff", "Staff"), activeRole("r-mgr", "Manager")},
		[]*entity.User{activeUser("u1", "r-staff"), activeUser("u2", "r-staff")},
	)

	out, err := f.uc.UpdateRole("u1", "Manager")
	require.NoError(t, err)

	assert.Equal(t, "Manager", out.Role.Name)
	assert.Equal(t, 1, f.roles.setCounts["r-staff"], "previous role lost a member")
	assert.Equal(t, 1, f.roles.setCounts["r-mgr"], "new role gained a member")
}

// Reassigning to the same role is a harmless double recompute.
func TestUserUpdateRole_SameRole(t *testing.T) {
	f := newUserFixture(nil,
		[]*entity.Role{activeRole("r-staff", "Staff")},
		[]*entity.User{activeUser("u1", "r-staff")},
	)

	out, err := f.uc.UpdateRole("u1", "Staff")
	require.NoError(t, err)

	assert.Equal(t, "Staff", out.Role.Name)
	assert.Equal(t, 1, f.roles.setCounts["r-staff"])
}

// Role assignment requires the target role to EXIST and be ACTIVE — the same
// rule as at signup.
func TestUserUpdateRole_InactiveRoleRejected(t *testing.T) {
	inactive := activeRole("r-old", "Legacy")
	inactive.IsActive = false
	f := newUserFixture(nil,
		[]*entity.Role{activeRole("r-staff", "Staff"), inactive},
		[]*entity.User{activeUser("u1", "r-staff")},
	)

	_, err := f.uc.UpdateRole("u1", "Legacy")

	assert.ErrorIs(t, err, domain.ErrValidation)
	u, _ := f.users.GetByID("u1")
	assert.Equal(t, "r-staff", u.RoleID, "a refused reassignment changes nothing")
}

func TestUserUpdateRole_UnknownRoleRejected(t *testing.T) {
	f := newUserFixture(nil,
		[]*entity.Role{activeRole("r-staff", "Staff")},
		[]*entity.User{activeUser("u1", "r-staff")},
	)

	_, err := f.uc.UpdateRole("u1", "Ghost")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUserUpdateRole_UnknownUser(t *testing.T) {
	f := newUserFixture(nil, []*entity.Role{activeRole("r-staff", "Staff")}, nil)

	_, err := f.uc.UpdateRole("ghost", "Staff")

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Override permissions
// ──────────────────────────────────────────────────────────────────────────────

func TestUserUpdateOverrides_Wholesale(t *testing.T) {
	f := newUserFixture(
		[]*entity.Permission{activePerm("pA", "invoice.create"), activePerm("pB", "report.export")},
		[]*entity.Role{activeRole("r1", "Viewer")},
		[]*entity.User{activeUser("u1", "r1")},
	)

	out, err := f.uc.UpdateOverridePermissions("u1", []string{"pA", "pB"})
	require.NoError(t, err)
	assert.Len(t, out.Permissions, 2)

	// Replacement, not accumulation.
	out, err = f.uc.UpdateOverridePermissions("u1", []string{"pB"})
	require.NoError(t, err)
	require.Len(t, out.Permissions, 1)
	assert.Equal(t, "report.export", out.Permissions[0].Key)
}

func TestUserUpdateOverrides_UnknownIDRejectsAll(t *testing.T) {
	f := newUserFixture(
		[]*entity.Permission{activePerm("pA", "invoice.create")},
		[]*entity.Role{activeRole("r1", "Viewer")},
		[]*entity.User{activeUser("u1", "r1")},
	)

	_, err := f.uc.UpdateOverridePermissions("u1", []string{"pA", "ghost"})

	var invalid *domain.InvalidPermissionsError
	require.ErrorAs(t, err, &invalid)
	overrides, _ := f.users.GetOverrides("u1")
	assert.Empty(t, overrides, "nothing may be written on a failed reference check")
}

// ──────────────────────────────────────────────────────────────────────────────
// Activate / Deactivate
// ──────────────────────────────────────────────────────────────────────────────

func TestUserDeactivate_SelfForbidden(t *testing.T) {
	f := newUserFixture(nil,
		[]*entity.Role{activeRole("r1", "Admin")},
		[]*entity.User{activeUser("u1", "r1")},
	)

	err := f.uc.Deactivate("u1", "u1")

	assert.ErrorIs(t, err, domain.ErrForbidden)
	u, _ := f.users.GetByID("u1")
	assert.True(t, u.IsActive)
}

func TestUserDeactivate_RefreshesRoleCount(t *testing.T) {
	f := newUserFixture(nil,
		[]*entity.Role{activeRole("r1", "Staff")},
		[]*entity.User{activeUser("u1", "r1"), activeUser("u2", "r1")},
	)

	require.NoError(t, f.uc.Deactivate("u1", "admin-id"))

	u, _ := f.users.GetByID("u1")
	assert.False(t, u.IsActive)
	assert.Equal(t, 1, f.roles.setCounts["r1"], "deactivated member leaves the count")
}

func TestUserActivate_CountsAgain(t *testing.T) {
	inactive := activeUser("u1", "r1")
	inactive.IsActive = false
	f := newUserFixture(nil, []*entity.Role{activeRole("r1", "Staff")},
		[]*entity.User{inactive})

	require.NoError(t, f.uc.Activate("u1"))

	u, _ := f.users.GetByID("u1")
	assert.True(t, u.IsActive)
	assert.Equal(t, 1, f.roles.setCounts["r1"])
}

// ──────────────────────────────────────────────────────────────────────────────
// List — active only, role filter, search
// ──────────────────────────────────────────────────────────────────────────────

func TestUserList_FiltersInactiveAndResolvesRole(t *testing.T) {
	gone := activeUser("u2", "r1")
	gone.IsActive = false
	f := newUserFixture(nil,
		[]*entity.Role{activeRole("r1", "Staff")},
		[]*entity.User{activeUser("u1", "r1"), gone},
	)

	out, err := f.uc.List(dto.PageRequest{}, "", "")
	require.NoError(t, err)

	require.Len(t, out.Users, 1)
	assert.Equal(t, 1, out.Total)
	assert.Equal(t, "Staff", out.Users[0].Role.Name)
	assert.Equal(t, 1, out.CurrentPage)
}

// A role filter naming no existing role yields an empty page, not an error.
func TestUserList_UnknownRoleFilter(t *testing.T) {
	f := newUserFixture(nil,
		[]*entity.Role{activeRole("r1", "Staff")},
		[]*entity.User{activeUser("u1", "r1")},
	)

	out, err := f.uc.List(dto.PageRequest{}, "Ghost", "")
	require.NoError(t, err)

	assert.Empty(t, out.Users)
	assert.Zero(t, out.Total)
}

func TestUserList_SearchByEmailSubstring(t *testing.T) {
	u1 := activeUser("u1", "r1")
	u1.Email = "ayesha@fbr.gov.pk"
	u2 := activeUser("u2", "r1")
	u2.Email = "bilal@fbr.gov.pk"
	f := newUserFixture(nil, []*entity.Role{activeRole("r1", "Staff")},
		[]*entity.User{u1, u2})

	out, err := f.uc.List(dto.PageRequest{}, "", "ayesha")
	require.NoError(t, err)

	require.Len(t, out.Users, 1)
	assert.Equal(t, "ayesha@fbr.gov.pk", out.Users[0].Email)
}
