package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/entity"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/pkg/authz"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test helpers
// ──────────────────────────────────────────────────────────────────────────────

func perm(key string, active bool) *entity.Permission {
	return &entity.Permission{ID: "id-" + key, Key: key, IsActive: active}
}

// ──────────────────────────────────────────────────────────────────────────────
// EffectivePermissions — union, dedup, active filtering
// ──────────────────────────────────────────────────────────────────────────────

// Role grants and overrides merge into a single deduplicated set.
func TestEffectivePermissions_UnionAndDedup(t *testing.T) {
	rolePerms := []*entity.Permission{
		perm("invoice.read", true),
		perm("invoice.create", true),
	}
	overrides := []*entity.Permission{
		perm("invoice.create", true), // also granted by the role
		perm("report.export", true),
	}

	got := authz.EffectivePermissions(rolePerms, overrides)

	assert.Equal(t, []string{"invoice.read", "invoice.create", "report.export"}, got,
		"duplicates must collapse, discovery order preserved")
}

// A deactivated permission never contributes, regardless of where it is
// referenced. Scenario: a Viewer whose role grants invoice.read and who holds
// an invoice.create override — after the catalog entry for invoice.read is
// deactivated, only the override survives.
func TestEffectivePermissions_DeactivatedNeverCounts(t *testing.T) {
	rolePerms := []*entity.Permission{perm("invoice.read", false)}
	overrides := []*entity.Permission{perm("invoice.create", true)}

	got := authz.EffectivePermissions(rolePerms, overrides)

	assert.Equal(t, []string{"invoice.create"}, got)
}

// A permission inactive in the role set but active in the overrides still
// counts: the filter is per catalog entry, and both references point at the
// same entry in practice.
func TestEffectivePermissions_EmptyInputs(t *testing.T) {
	assert.Empty(t, authz.EffectivePermissions(nil, nil))
	assert.Empty(t, authz.EffectivePermissions([]*entity.Permission{perm("x.read", false)}, nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// Snapshot decision methods
// ──────────────────────────────────────────────────────────────────────────────

func TestSnapshot_HasRole(t *testing.T) {
	s := authz.Snapshot{Role: "Manager"}

	assert.True(t, s.HasRole("Admin", "Manager"), "role in the allowed list")
	assert.False(t, s.HasRole("Admin"), "role not in the allowed list")
	assert.True(t, s.HasRole(), "empty allowed list means unrestricted")
}

func TestSnapshot_HasRole_CaseSensitive(t *testing.T) {
	s := authz.Snapshot{Role: "admin"}
	assert.False(t, s.HasRole("Admin"), "role names compare case-sensitively")
}

func TestSnapshot_HasPermission(t *testing.T) {
	s := authz.Snapshot{Permissions: []string{"invoice.read", "report.export"}}

	assert.True(t, s.HasPermission("invoice.read"))
	assert.False(t, s.HasPermission("invoice.delete"))
}

func TestSnapshot_HasAnyPermission(t *testing.T) {
	s := authz.Snapshot{Permissions: []string{"invoice.read"}}

	assert.True(t, s.HasAnyPermission("invoice.delete", "invoice.read"))
	assert.False(t, s.HasAnyPermission("invoice.delete", "invoice.update"))
	assert.False(t, s.HasAnyPermission(), "no alternatives means no grant")
}
