package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/application/dto"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/application/usecase"
)

// PermissionHandler handles the permission catalog (Admin only).
type PermissionHandler struct {
	uc *usecase.PermissionUseCase
}

// NewPermissionHandler builds the permission handler.
func NewPermissionHandler(uc *usecase.PermissionUseCase) *PermissionHandler {
	return &PermissionHandler{uc: uc}
}

// List godoc
// @Summary      Permission catalog grouped by category
// @Tags         permissions
// @Produce      json
// @Param        activeOnly  query  bool  false  "only active permissions"
// @Success      200  {object}  dto.PermissionCatalogResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/permissions [get]
func (h *PermissionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.QueryBool("activeOnly"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Add a catalog entry
// @Tags         permissions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePermissionRequest  true  "name, category, resource, action"
// @Success      201   {object}  dto.PermissionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/permissions [post]
func (h *PermissionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePermissionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Update a catalog entry (resource and action are immutable)
// @Tags         permissions
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "permission id"
// @Param        body  body  dto.UpdatePermissionRequest  true  "fields to change"
// @Success      200   {object}  dto.PermissionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/permissions/{id} [put]
func (h *PermissionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePermissionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Soft-delete a catalog entry
// @Tags         permissions
// @Produce      json
// @Param        id   path  string  true  "permission id"
// @Success      204  "deactivated"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/permissions/{id} [delete]
func (h *PermissionHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
