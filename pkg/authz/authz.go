// Package authz holds the pure authorization decision functions shared by the
// server middleware and the client-side navigation guard. It performs no I/O:
// both enforcement boundaries feed it data of different freshness (the server
// a live directory load, the client a snapshot cached at sign-in) and get
// identical decisions for identical data.
package authz

import "github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/entity"

// Snapshot is the {role, merged permissions} view of a principal that the
// decision functions operate on. Permissions holds effective permission keys,
// already deduplicated and filtered to active catalog entries.
type Snapshot struct {
	UserID      string   `json:"user_id"`
	FullName    string   `json:"fullname"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// EffectivePermissions merges role-granted and user-override permissions into
// the effective key set: (role ∩ active) ∪ (overrides ∩ active), deduplicated.
// Overrides are additive only, so plain union needs no precedence rule.
// Deactivated permissions never contribute, no matter where they are referenced.
func EffectivePermissions(rolePerms, overridePerms []*entity.Permission) []string {
	seen := make(map[string]struct{}, len(rolePerms)+len(overridePerms))
	keys := make([]string, 0, len(rolePerms)+len(overridePerms))
	appendActive := func(perms []*entity.Permission) {
		for _, p := range perms {
			if p == nil || !p.IsActive {
				continue
			}
			if _, ok := seen[p.Key]; ok {
				continue
			}
			seen[p.Key] = struct{}{}
			keys = append(keys, p.Key)
		}
	}
	appendActive(rolePerms)
	appendActive(overridePerms)
	return keys
}

// HasRole reports whether the snapshot's role name matches one of allowed.
// An empty allowed set means the route carries no role restriction.
func (s Snapshot) HasRole(allowed ...string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, r := range allowed {
		if s.Role == r {
			return true
		}
	}
	return false
}

// HasPermission reports whether key is in the snapshot's effective set.
func (s Snapshot) HasPermission(key string) bool {
	for _, k := range s.Permissions {
		if k == key {
			return true
		}
	}
	return false
}

// HasAnyPermission reports whether at least one of keys is in the effective
// set. Used by surfaces that accept several alternative permissions.
func (s Snapshot) HasAnyPermission(keys ...string) bool {
	for _, k := range keys {
		if s.HasPermission(k) {
			return true
		}
	}
	return false
}
