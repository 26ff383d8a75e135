package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/pkg/authz"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/pkg/guard"
)

// ──────────────────────────────────────────────────────────────────────────────
// Navigation decisions against the cached snapshot
// ──────────────────────────────────────────────────────────────────────────────

func signedIn(role string, perms ...string) *guard.Store {
	s := guard.NewStore()
	s.Set(authz.Snapshot{UserID: "u1", Role: role, Permissions: perms})
	return s
}

// Signed out: every guarded navigation redirects to sign-in.
func TestDecide_SignedOut_RedirectsToSignIn(t *testing.T) {
	s := guard.NewStore()

	d := s.Decide(guard.Rule{})

	assert.False(t, d.Allow)
	assert.Equal(t, guard.SignInRoute, d.RedirectTo)
}

// Zero-value rule only requires being signed in.
func TestDecide_SignedIn_NoRestrictions_Allows(t *testing.T) {
	s := signedIn("Viewer")

	d := s.Decide(guard.Rule{})

	assert.True(t, d.Allow)
	assert.Empty(t, d.RedirectTo)
}

// Role restriction: mismatch redirects to the default page, not to sign-in.
func TestDecide_RoleMismatch_RedirectsToDefault(t *testing.T) {
	s := signedIn("Staff")

	d := s.Decide(guard.Rule{AllowedRoles: []string{"Admin"}})

	assert.False(t, d.Allow)
	assert.Equal(t, guard.DefaultRoute, d.RedirectTo)
}

// Permission rule passes when ANY of the listed keys is held.
func TestDecide_AnyPermissionSuffices(t *testing.T) {
	s := signedIn("Staff", "invoice.read")

	d := s.Decide(guard.Rule{RequiredPermissions: []string{"invoice.create", "invoice.read"}})

	assert.True(t, d.Allow)
}

func TestDecide_MissingPermission_RedirectsToDefault(t *testing.T) {
	s := signedIn("Viewer", "invoice.read")

	d := s.Decide(guard.Rule{RequiredPermissions: []string{"report.export"}})

	assert.False(t, d.Allow)
	assert.Equal(t, guard.DefaultRoute, d.RedirectTo)
}

// Role and permission restrictions combine: both must pass.
func TestDecide_RoleAndPermissionCombined(t *testing.T) {
	s := signedIn("Manager", "report.export")

	allowed := s.Decide(guard.Rule{
		AllowedRoles:        []string{"Admin", "Manager"},
		RequiredPermissions: []string{"report.export"},
	})
	assert.True(t, allowed.Allow)

	blocked := s.Decide(guard.Rule{
		AllowedRoles:        []string{"Admin"},
		RequiredPermissions: []string{"report.export"},
	})
	assert.False(t, blocked.Allow)
}

// The cached snapshot is evaluated as issued: a permission revoked server-side
// after sign-in still passes here until the snapshot is replaced. Clear
// returns the store to the signed-out state.
func TestStore_SetAndClearLifecycle(t *testing.T) {
	s := signedIn("Admin", "invoice.create")

	_, ok := s.Snapshot()
	assert.True(t, ok)

	s.Clear()

	_, ok = s.Snapshot()
	assert.False(t, ok)
	d := s.Decide(guard.Rule{})
	assert.Equal(t, guard.SignInRoute, d.RedirectTo)
}
