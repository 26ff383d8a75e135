package domain

import (
	"errors"
	"fmt"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrRoleNotFound       = errors.New("role not found")
	ErrPermissionNotFound = errors.New("permission not found")
	ErrEmailAlreadyExists = errors.New("email is already registered")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrValidation         = errors.New("invalid input")
	// ErrInvalidCredentials is returned for unknown email, wrong password and
	// inactive account alike, so the response never reveals which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access denied")
	ErrConflict           = errors.New("conflict with current state")
)

// RoleInUseError blocks role deletion while active users still reference the role.
// UserCount is the exact count of active users found at deletion time.
type RoleInUseError struct {
	RoleID    string
	UserCount int
}

func (e *RoleInUseError) Error() string {
	return fmt.Sprintf("role is still assigned to %d active user(s)", e.UserCount)
}

func (e *RoleInUseError) Unwrap() error { return ErrConflict }

// InvalidPermissionsError reports an all-or-nothing permission reference check
// that failed: fewer active permissions matched than ids were requested.
type InvalidPermissionsError struct {
	Requested int
	Matched   int
}

func (e *InvalidPermissionsError) Error() string {
	return fmt.Sprintf("%d of %d permission ids do not resolve to an active permission",
		e.Requested-e.Matched, e.Requested)
}

func (e *InvalidPermissionsError) Unwrap() error { return ErrValidation }

// UpstreamError wraps a failed call to the FBR gateway. RawBody carries the
// upstream payload verbatim for audit; it is returned to the caller, never dropped.
type UpstreamError struct {
	Op      string // "post" or "validate"
	Status  int    // HTTP status from the gateway, 0 on transport failure
	RawBody string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fbr %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("fbr %s: gateway returned status %d", e.Op, e.Status)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
