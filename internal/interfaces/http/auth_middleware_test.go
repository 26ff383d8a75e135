package http_test

import (
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauthz "github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/application/authz"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/entity"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/repository"
	apphttp "github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/interfaces/http"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/pkg/jwt"
)

const testSecret = "middleware-test-secret"

// ──────────────────────────────────────────────────────────────────────────────
// Directory fakes — just enough of the ports for the resolver
// ──────────────────────────────────────────────────────────────────────────────

type dirUserRepo struct {
	users     map[string]*entity.User
	overrides map[string][]*entity.Permission
}

func (r *dirUserRepo) Create(*entity.User) error { return nil }
func (r *dirUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}
func (r *dirUserRepo) GetByEmail(string) (*entity.User, error) { return nil, nil }
func (r *dirUserRepo) GetByFullName(string) (*entity.User, error) { return nil, nil }
func (r *dirUserRepo) Update(*entity.User) error { return nil }
func (r *dirUserRepo) UpdateLastLogin(string, time.Time) error { return nil }
func (r *dirUserRepo) List(repository.ListUsersParams) ([]*entity.User, int, error) {
	return nil, 0, nil
}
func (r *dirUserRepo) CountActiveByRole(string) (int, error) { return 0, nil }
func (r *dirUserRepo) ReplaceOverrides(string, []string) error { return nil }
func (r *dirUserRepo) GetOverrides(userID string) ([]*entity.Permission, error) {
	return r.overrides[userID], nil
}

type dirRoleRepo struct {
	roles  map[string]*entity.Role
	grants map[string][]*entity.Permission
}

func (r *dirRoleRepo) Create(*entity.Role) error { return nil }
func (r *dirRoleRepo) GetByID(id string) (*entity.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, nil
	}
	cp := *role
	return &cp, nil
}
func (r *dirRoleRepo) GetByName(string) (*entity.Role, error) { return nil, nil }
func (r *dirRoleRepo) List(bool) ([]*entity.Role, error) { return nil, nil }
func (r *dirRoleRepo) Update(*entity.Role) error { return nil }
func (r *dirRoleRepo) Delete(string) error { return nil }
func (r *dirRoleRepo) ReplacePermissions(string, []string) error { return nil }
func (r *dirRoleRepo) GetPermissions(roleID string) ([]*entity.Permission, error) {
	return r.grants[roleID], nil
}
func (r *dirRoleRepo) SetUserCount(string, int) error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

func activePerm(key string) *entity.Permission {
	return &entity.Permission{ID: "p-" + key, Key: key, IsActive: true}
}

// buildTestApp wires the middleware over an in-memory directory with two
// users: u-admin (role Admin, invoice.* permissions) and u-staff (role Staff,
// invoice.read only), plus the deactivated u-gone.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()

	roleRepo := &dirRoleRepo{
		roles: map[string]*entity.Role{
			"r-admin": {ID: "r-admin", Name: entity.RoleAdmin, IsActive: true},
			"r-staff": {ID: "r-staff", Name: entity.RoleStaff, IsActive: true},
		},
		grants: map[string][]*entity.Permission{
			"r-admin": {activePerm("invoice.create"), activePerm("invoice.read"), activePerm("invoice.delete")},
			"r-staff": {activePerm("invoice.read")},
		},
	}
	userRepo := &dirUserRepo{
		users: map[string]*entity.User{
			"u-admin": {ID: "u-admin", FullName: "Admin", Email: "admin@fbr.gov.pk", RoleID: "r-admin", IsActive: true},
			"u-staff": {ID: "u-staff", FullName: "Staff", Email: "staff@fbr.gov.pk", RoleID: "r-staff", IsActive: true},
			"u-gone":  {ID: "u-gone", FullName: "Gone", Email: "gone@fbr.gov.pk", RoleID: "r-staff", IsActive: false},
		},
		overrides: map[string][]*entity.Permission{
			// staff additionally granted report.export via override
			"u-staff": {activePerm("report.export")},
		},
	}
	resolver := appauthz.NewResolver(userRepo, roleRepo)

	app := fiber.New()
	api := app.Group("/api", apphttp.AuthMiddleware(testSecret, resolver))
	api.Get("/whoami", func(c *fiber.Ctx) error {
		p := apphttp.GetPrincipal(c)
		return c.JSON(fiber.Map{"user_id": p.User.ID, "role": p.Snapshot.Role})
	})
	api.Get("/admin-only", apphttp.RequireRole(entity.RoleAdmin), ok)
	api.Get("/delete-invoices", apphttp.RequirePermission("invoice.delete"), ok)
	api.Get("/export", apphttp.RequireAnyPermission("report.export", "report.read"), ok)
	return app
}

func ok(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

func token(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := jwt.Generate(testSecret, userID, "Test", "test@fbr.gov.pk", role, "test", 60)
	require.NoError(t, err)
	return tok
}

func request(t *testing.T, app *fiber.App, path, bearer string) (*nethttp.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	var decoded map[string]any
	if len(body) > 0 {
		_ = json.Unmarshal(body, &decoded)
	}
	return resp, decoded
}

// ──────────────────────────────────────────────────────────────────────────────
// Authentication
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ValidToken(t *testing.T) {
	app := buildTestApp(t)

	resp, body := request(t, app, "/api/whoami", "Bearer "+token(t, "u-admin", entity.RoleAdmin))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "u-admin", body["user_id"])
	assert.Equal(t, entity.RoleAdmin, body["role"])
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	app := buildTestApp(t)

	resp, body := request(t, app, "/api/whoami", "")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	app := buildTestApp(t)

	resp, body := request(t, app, "/api/whoami", "Token abc123")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	app := buildTestApp(t)

	resp, body := request(t, app, "/api/whoami", "Bearer not.a.jwt")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	app := buildTestApp(t)

	forged, err := jwt.Generate("some-other-secret", "u-admin", "Admin", "a@b.pk", entity.RoleAdmin, "test", 60)
	require.NoError(t, err)

	resp, _ := request(t, app, "/api/whoami", "Bearer "+forged)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// A deactivated account keeps a cryptographically valid token until expiry,
// but the per-request directory reload rejects it immediately.
func TestAuthMiddleware_DeactivatedAccount(t *testing.T) {
	app := buildTestApp(t)

	resp, body := request(t, app, "/api/whoami", "Bearer "+token(t, "u-gone", entity.RoleStaff))

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestAuthMiddleware_UnknownUser(t *testing.T) {
	app := buildTestApp(t)

	resp, _ := request(t, app, "/api/whoami", "Bearer "+token(t, "u-ghost", entity.RoleStaff))

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Role guard
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_Allowed(t *testing.T) {
	app := buildTestApp(t)

	resp, _ := request(t, app, "/api/admin-only", "Bearer "+token(t, "u-admin", entity.RoleAdmin))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_Forbidden(t *testing.T) {
	app := buildTestApp(t)

	resp, body := request(t, app, "/api/admin-only", "Bearer "+token(t, "u-staff", entity.RoleStaff))

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body["code"])
	assert.Equal(t, entity.RoleStaff, body["current"])
	assert.Contains(t, body["required"], entity.RoleAdmin)
}

// The role claim inside the token carries no authority: what counts is the
// role loaded from the directory.
func TestRequireRole_TokenClaimDoesNotEscalate(t *testing.T) {
	app := buildTestApp(t)

	resp, _ := request(t, app, "/api/admin-only", "Bearer "+token(t, "u-staff", entity.RoleAdmin))

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Permission guards
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission_Allowed(t *testing.T) {
	app := buildTestApp(t)

	resp, _ := request(t, app, "/api/delete-invoices", "Bearer "+token(t, "u-admin", entity.RoleAdmin))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequirePermission_Missing(t *testing.T) {
	app := buildTestApp(t)

	resp, body := request(t, app, "/api/delete-invoices", "Bearer "+token(t, "u-staff", entity.RoleStaff))

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body["code"])
	assert.Contains(t, body["required"], "invoice.delete")
}

// report.export reaches u-staff through a per-user override, not the role.
func TestRequireAnyPermission_OverrideGrantCounts(t *testing.T) {
	app := buildTestApp(t)

	resp, _ := request(t, app, "/api/export", "Bearer "+token(t, "u-staff", entity.RoleStaff))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAnyPermission_NoneHeld(t *testing.T) {
	app := buildTestApp(t)

	// admin has invoice.* but neither report key
	resp, _ := request(t, app, "/api/export", "Bearer "+token(t, "u-admin", entity.RoleAdmin))

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
