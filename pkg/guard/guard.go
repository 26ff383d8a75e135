// Package guard is the client-boundary route guard: the counterpart of the
// server middleware for UI navigation. It evaluates the snapshot cached at the
// last successful sign-in, so its data can lag behind the server (an admin may
// revoke a permission mid-session). That staleness is accepted until the next
// re-authentication; the server remains authoritative for every request.
package guard

import (
	"sync"

	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/pkg/authz"
)

// Routes the guard redirects to when a check fails.
const (
	SignInRoute  = "/signin"
	DefaultRoute = "/dashboard"
)

// Rule is the protection attached to a UI route. Zero-value Rule means the
// route only requires being signed in.
type Rule struct {
	// AllowedRoles restricts by role name; empty means no role restriction.
	AllowedRoles []string
	// RequiredPermissions grants access when ANY of the keys is held.
	RequiredPermissions []string
}

// Decision is the guard verdict for one navigation.
type Decision struct {
	Allow      bool
	RedirectTo string // set when Allow is false
}

// Store keeps the cached {role, permissions} snapshot between sign-in and
// sign-out. Safe for concurrent navigation checks.
type Store struct {
	mu       sync.RWMutex
	snapshot *authz.Snapshot
}

// NewStore returns an empty snapshot store (signed-out state).
func NewStore() *Store { return &Store{} }

// Set caches the snapshot returned by a successful authentication.
func (s *Store) Set(snap authz.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = &snap
}

// Clear drops the cached snapshot (sign-out).
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
}

// Snapshot returns the cached snapshot, or false when signed out.
func (s *Store) Snapshot() (authz.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return authz.Snapshot{}, false
	}
	return *s.snapshot, true
}

// Decide evaluates a navigation against the cached snapshot:
//   - no snapshot → redirect to sign-in;
//   - role or permission check fails → redirect to the default page;
//   - otherwise allow.
//
// Failed checks redirect silently rather than surface an error (matching the
// server's 403 in outcome, not in presentation).
func (s *Store) Decide(rule Rule) Decision {
	snap, ok := s.Snapshot()
	if !ok {
		return Decision{RedirectTo: SignInRoute}
	}
	if !snap.HasRole(rule.AllowedRoles...) {
		return Decision{RedirectTo: DefaultRoute}
	}
	if len(rule.RequiredPermissions) > 0 && !snap.HasAnyPermission(rule.RequiredPermissions...) {
		return Decision{RedirectTo: DefaultRoute}
	}
	return Decision{Allow: true}
}
