package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/application/dto"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain"
)

// respondError maps a use-case error to an HTTP response. Use cases wrap the
// domain sentinels with context, so matching goes through errors.Is/As rather
// than equality.
func respondError(c *fiber.Ctx, err error) error {
	var inUse *domain.RoleInUseError
	if errors.As(err, &inUse) {
		count := inUse.UserCount
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:      "ROLE_IN_USE",
			Message:   inUse.Error(),
			UserCount: &count,
		})
	}
	var badPerms *domain.InvalidPermissionsError
	if errors.As(err, &badPerms) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PERMISSIONS", Message: badPerms.Error()})
	}
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		// the raw gateway payload rides along for audit
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code:     "FBR_GATEWAY",
			Message:  upstream.Error(),
			Upstream: upstream.RawBody,
		})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid credentials"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "email is already registered"})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrRoleNotFound),
		errors.Is(err, domain.ErrPermissionNotFound),
		errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
