package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/editorial-api/internal/application/dto"
	"github.com/jhoicas/editorial-api/internal/domain"
)

// parseID lee un parámetro de ruta numérico (> 0).
func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidation(name, "debe ser un entero positivo")
	}
	return id, nil
}

// respondError traduce errores de dominio al código HTTP y cuerpo correspondientes.
// Los errores con detalle estructurado (faltantes de material) lo adjuntan en Data.
func respondError(c *fiber.Ctx, err error) error {
	var (
		shortage     *domain.ShortageError
		insufficient *domain.InsufficientStockError
		transition   *domain.StateTransitionError
		noSupplier   *domain.NoSupplierError
	)
	switch {
	case errors.As(err, &shortage):
		items := make([]dto.ShortageItemDTO, 0, len(shortage.Items))
		for _, it := range shortage.Items {
			items = append(items, dto.ShortageItemDTO{
				MaterialID:   it.MaterialID,
				MaterialName: it.MaterialName,
				Unit:         it.Unit,
				Required:     it.Required,
				Available:    it.Available,
				Shortfall:    it.Shortfall,
			})
		}
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error(), Data: items})
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.As(err, &transition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STATE_TRANSITION", Message: err.Error()})
	case errors.Is(err, domain.ErrUsernameTaken):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "USERNAME_TAKEN", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.As(err, &noSupplier):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_SUPPLIER", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// okJSON responde 200 con la envoltura estándar.
func okJSON(c *fiber.Ctx, message string, data any) error {
	return c.JSON(dto.OK(message, data))
}

// createdJSON responde 201 con la envoltura estándar.
func createdJSON(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(dto.OK(message, data))
}

// invalidBody responde 400 por cuerpo no parseable.
func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
