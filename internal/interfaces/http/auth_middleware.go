package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	appauthz "github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/application/authz"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/application/dto"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/pkg/jwt"
)

// Locals key for the resolved principal in Fiber.
const LocalPrincipal = "principal"

// AuthMiddleware validates the Bearer JWT and resolves the principal from the
// directory on every request. The token only identifies the user; role and
// permissions are always loaded live, so a revocation takes effect on the
// very next request instead of waiting for the token to expire.
func AuthMiddleware(jwtSecret string, resolver *appauthz.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header required"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "format: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "empty token"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "invalid or expired token"})
		}
		principal, err := resolver.Resolve(claims.UserID)
		if err != nil {
			// missing and deactivated accounts both end here
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "account not found or inactive"})
		}
		c.Locals(LocalPrincipal, principal)
		return c.Next()
	}
}

// GetPrincipal returns the resolved principal (after AuthMiddleware).
func GetPrincipal(c *fiber.Ctx) *appauthz.Principal {
	v := c.Locals(LocalPrincipal)
	if v == nil {
		return nil
	}
	p, _ := v.(*appauthz.Principal)
	return p
}

// RequireRole allows only principals whose role name is in the list. An empty
// list means any authenticated principal passes.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"})
		}
		if !p.Snapshot.HasRole(roles...) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:     "FORBIDDEN",
				Message:  "role not allowed for this resource",
				Required: roles,
				Current:  p.Snapshot.Role,
			})
		}
		return c.Next()
	}
}

// RequirePermission allows only principals holding every listed permission.
func RequirePermission(keys ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"})
		}
		for _, key := range keys {
			if !p.Snapshot.HasPermission(key) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Code:     "FORBIDDEN",
					Message:  "missing required permission",
					Required: keys,
					Current:  p.Snapshot.Role,
				})
			}
		}
		return c.Next()
	}
}

// RequireAnyPermission allows principals holding at least one listed
// permission.
func RequireAnyPermission(keys ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"})
		}
		if !p.Snapshot.HasAnyPermission(keys...) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:     "FORBIDDEN",
				Message:  "missing required permission",
				Required: keys,
				Current:  p.Snapshot.Role,
			})
		}
		return c.Next()
	}
}
