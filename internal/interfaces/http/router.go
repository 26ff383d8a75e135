package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/application/auth"
	appauthz "github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/application/authz"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/application/billing"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/application/usecase"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	RoleUC       *usecase.RoleUseCase
	PermissionUC *usecase.PermissionUseCase
	UserUC       *usecase.UserUseCase
	InvoiceUC    *billing.InvoiceUseCase
	PDFUC        *billing.PDFUseCase
	Resolver     *appauthz.Resolver
	JWTSecret    string
}

// Router registers the API routes. Management surfaces are guarded by role,
// invoice operations by permission keys, so a custom role holding the right
// permissions can work invoices without being Admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/signin", authHandler.Signin)

	// Protected routes (Bearer token, principal resolved live)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Resolver))

	// Roles (Admin)
	roles := protected.Group("/roles", RequireRole(entity.RoleAdmin))
	roleHandler := NewRoleHandler(deps.RoleUC)
	roles.Get("/", roleHandler.List)
	roles.Post("/", roleHandler.Create)
	roles.Get("/:id", roleHandler.GetByID)
	roles.Put("/:id", roleHandler.Update)
	roles.Delete("/:id", roleHandler.Delete)
	roles.Put("/:id/permissions", roleHandler.ReplacePermissions)

	// Permission catalog (Admin)
	permissions := protected.Group("/permissions", RequireRole(entity.RoleAdmin))
	permissionHandler := NewPermissionHandler(deps.PermissionUC)
	permissions.Get("/", permissionHandler.List)
	permissions.Post("/", permissionHandler.Create)
	permissions.Put("/:id", permissionHandler.Update)
	permissions.Delete("/:id", permissionHandler.Deactivate)

	// User directory (listing open to Admin and Manager, mutations Admin)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", RequireRole(entity.RoleAdmin, entity.RoleManager), userHandler.List)
	// self-or-admin rule enforced inside the handler
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id/role", RequireRole(entity.RoleAdmin), userHandler.UpdateRole)
	users.Put("/:id/permissions", RequireRole(entity.RoleAdmin), userHandler.UpdatePermissions)
	users.Put("/:id/deactivate", RequireRole(entity.RoleAdmin), userHandler.Deactivate)
	users.Put("/:id/activate", RequireRole(entity.RoleAdmin), userHandler.Activate)

	// Invoices (permission-guarded)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	invoices.Post("/", RequirePermission("invoice.create"), invoiceHandler.Post)
	invoices.Post("/validate", RequirePermission("invoice.validate"), invoiceHandler.Validate)
	invoices.Get("/", RequirePermission("invoice.read"), invoiceHandler.List)
	invoices.Get("/:id", RequirePermission("invoice.read"), invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", RequirePermission("report.export"), invoiceHandler.DownloadPDF)
}
