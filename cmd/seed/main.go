// seed provisions the permission catalog, the built-in roles and the default
// admin account. Safe to re-run: existing rows are kept, missing ones added.
//
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/entity"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/infrastructure/postgres"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/pkg/config"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/pkg/logger"
)

type permSeed struct {
	name, description, category, resource, action string
}

var permissionCatalog = []permSeed{
	// Invoice management
	{"Create Invoice", "Create new invoices", entity.CategoryInvoices, "invoice", entity.ActionCreate},
	{"Edit Invoice", "Modify existing invoices", entity.CategoryInvoices, "invoice", entity.ActionUpdate},
	{"Delete Invoice", "Remove invoices from system", entity.CategoryInvoices, "invoice", entity.ActionDelete},
	{"Approve Invoice", "Approve invoices for processing", entity.CategoryInvoices, "invoice", entity.ActionApprove},
	{"Validate Invoice", "Validate invoice data and format", entity.CategoryInvoices, "invoice", entity.ActionValidate},
	{"View Invoice", "View invoice details", entity.CategoryInvoices, "invoice", entity.ActionRead},

	// Reports and analytics
	{"View Reports", "Access standard reports", entity.CategoryReports, "report", entity.ActionRead},
	{"Create Reports", "Generate custom reports", entity.CategoryReports, "report", entity.ActionCreate},
	{"Export Reports", "Export reports to various formats", entity.CategoryReports, "report", entity.ActionExport},
	{"Analytics Dashboard", "Access advanced analytics", entity.CategoryReports, "analytics", entity.ActionRead},

	// User management
	{"Create User", "Add new users to system", entity.CategoryUserManagement, "user", entity.ActionCreate},
	{"Edit User", "Modify user information", entity.CategoryUserManagement, "user", entity.ActionUpdate},
	{"Delete User", "Remove users from system", entity.CategoryUserManagement, "user", entity.ActionDelete},
	{"Assign Roles", "Assign and modify user roles", entity.CategoryUserManagement, "user_role", entity.ActionUpdate},
	{"View Users", "View user information", entity.CategoryUserManagement, "user", entity.ActionRead},

	// System administration
	{"System Configuration", "Modify system settings", entity.CategorySystem, "system_config", entity.ActionUpdate},
	{"Audit Logs", "Access system audit logs", entity.CategorySystem, "audit_log", entity.ActionRead},
	{"Backup & Restore", "Manage system backups", entity.CategorySystem, "backup", entity.ActionCreate},
	{"Maintenance Mode", "Enable/disable maintenance mode", entity.CategorySystem, "maintenance", entity.ActionUpdate},
}

type roleSeed struct {
	name, description, icon, color string
	// grant reports whether the role receives the given permission
	grant func(p *entity.Permission) bool
}

var roleCatalog = []roleSeed{
	{
		name:        entity.RoleAdmin,
		description: "Full system access with all administrative privileges",
		icon:        "👑",
		color:       "from-primary to-primary-glow",
		grant:       func(*entity.Permission) bool { return true },
	},
	{
		name:        entity.RoleManager,
		description: "Management level access with approval rights",
		icon:        "📊",
		color:       "from-accent to-emerald-500",
		grant:       func(p *entity.Permission) bool { return p.Category != entity.CategorySystem },
	},
	{
		name:        entity.RoleStaff,
		description: "Standard user with invoice processing capabilities",
		icon:        "👨‍💼",
		color:       "from-blue-500 to-blue-600",
		grant: func(p *entity.Permission) bool {
			return (p.Category == entity.CategoryInvoices && p.Action != entity.ActionDelete) ||
				(p.Category == entity.CategoryReports && p.Action == entity.ActionRead)
		},
	},
	{
		name:        entity.RoleViewer,
		description: "Read-only access to system data and reports",
		icon:        "👁️",
		color:       "from-gray-500 to-gray-600",
		grant:       func(p *entity.Permission) bool { return p.Action == entity.ActionRead },
	},
}

const (
	adminFullName = "admin"
	adminEmail    = "admin@fbr.gov.pk"
	adminPassword = "admin123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("ensure schema")
	}

	permRepo := postgres.NewPermissionRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	// Permissions
	created := 0
	perms := make([]*entity.Permission, 0, len(permissionCatalog))
	for _, s := range permissionCatalog {
		existing, err := permRepo.GetByResourceAction(s.resource, s.action)
		if err != nil {
			log.Fatal().Err(err).Str("resource", s.resource).Msg("lookup permission")
		}
		if existing != nil {
			perms = append(perms, existing)
			continue
		}
		now := time.Now()
		p := &entity.Permission{
			ID:          uuid.New().String(),
			Key:         s.resource + "." + s.action,
			Name:        s.name,
			Description: s.description,
			Category:    s.category,
			Resource:    s.resource,
			Action:      s.action,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := permRepo.Create(p); err != nil {
			log.Fatal().Err(err).Str("key", p.Key).Msg("create permission")
		}
		perms = append(perms, p)
		created++
	}
	log.Info().Int("created", created).Int("total", len(perms)).Msg("permissions seeded")

	// Roles with their permission grants
	var adminRoleID string
	for _, s := range roleCatalog {
		role, err := roleRepo.GetByName(s.name)
		if err != nil {
			log.Fatal().Err(err).Str("role", s.name).Msg("lookup role")
		}
		if role == nil {
			now := time.Now()
			role = &entity.Role{
				ID:          uuid.New().String(),
				Name:        s.name,
				Description: s.description,
				Icon:        s.icon,
				Color:       s.color,
				IsActive:    true,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := roleRepo.Create(role); err != nil {
				log.Fatal().Err(err).Str("role", s.name).Msg("create role")
			}
		}

		var grantIDs []string
		for _, p := range perms {
			if s.grant(p) {
				grantIDs = append(grantIDs, p.ID)
			}
		}
		if err := roleRepo.ReplacePermissions(role.ID, grantIDs); err != nil {
			log.Fatal().Err(err).Str("role", s.name).Msg("assign permissions")
		}
		if s.name == entity.RoleAdmin {
			adminRoleID = role.ID
		}
		log.Info().Str("role", s.name).Int("permissions", len(grantIDs)).Msg("role seeded")
	}

	// Default admin account
	admin, err := userRepo.GetByEmail(adminEmail)
	if err != nil {
		log.Fatal().Err(err).Msg("lookup admin user")
	}
	if admin == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash admin password")
		}
		now := time.Now()
		admin = &entity.User{
			ID:           uuid.New().String(),
			FullName:     adminFullName,
			Email:        adminEmail,
			PasswordHash: string(hash),
			RoleID:       adminRoleID,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(admin); err != nil {
			log.Fatal().Err(err).Msg("create admin user")
		}
		log.Info().Str("email", adminEmail).Msg("admin user created")
	}

	// Refresh the user-count caches
	roles, err := roleRepo.List(false)
	if err != nil {
		log.Fatal().Err(err).Msg("list roles")
	}
	for _, r := range roles {
		n, err := userRepo.CountActiveByRole(r.ID)
		if err != nil {
			log.Fatal().Err(err).Str("role", r.Name).Msg("count role members")
		}
		if err := roleRepo.SetUserCount(r.ID, n); err != nil {
			log.Fatal().Err(err).Str("role", r.Name).Msg("store user count")
		}
	}

	log.Info().Msg("database seeding completed")
}
