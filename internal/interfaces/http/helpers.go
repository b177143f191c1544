package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Mantenimiento-api/internal/application/dto"
	"github.com/jhoicas/Mantenimiento-api/internal/domain"
)

// errorStatus mapa error de dominio -> (status, code). Todo lo no mapeado es 500.
var errorStatus = map[error]struct {
	status int
	code   string
}{
	domain.ErrInvalidInput:           {fiber.StatusBadRequest, "VALIDATION"},
	domain.ErrInvalidQuantity:        {fiber.StatusBadRequest, "INVALID_QUANTITY"},
	domain.ErrNotFound:               {fiber.StatusNotFound, "NOT_FOUND"},
	domain.ErrUserNotFound:           {fiber.StatusNotFound, "USER_NOT_FOUND"},
	domain.ErrDuplicate:              {fiber.StatusConflict, "DUPLICATE"},
	domain.ErrEmailAlreadyExists:     {fiber.StatusConflict, "EMAIL_EXISTS"},
	domain.ErrInsufficientStock:      {fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	domain.ErrInvalidTransition:      {fiber.StatusConflict, "INVALID_TRANSITION"},
	domain.ErrIncompleteResolution:   {fiber.StatusUnprocessableEntity, "INCOMPLETE_RESOLUTION"},
	domain.ErrWorkOrderTerminal:      {fiber.StatusConflict, "WORK_ORDER_TERMINAL"},
	domain.ErrWorkOrderNotCompleted:  {fiber.StatusConflict, "WORK_ORDER_NOT_COMPLETED"},
	domain.ErrAlreadyConfirmed:       {fiber.StatusConflict, "ALREADY_CONFIRMED"},
	domain.ErrConcurrentModification: {fiber.StatusConflict, "CONCURRENT_MODIFICATION"},
	domain.ErrPartInUse:              {fiber.StatusConflict, "PART_IN_USE"},
	domain.ErrTechnicianRequired:     {fiber.StatusUnprocessableEntity, "TECHNICIAN_REQUIRED"},
	domain.ErrUnauthorized:           {fiber.StatusUnauthorized, "UNAUTHORIZED"},
	domain.ErrForbidden:              {fiber.StatusForbidden, "FORBIDDEN"},
}

// domainError responde el error tipado con su status HTTP y código estable.
func domainError(c *fiber.Ctx, err error) error {
	for derr, m := range errorStatus {
		if errors.Is(err, derr) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: derr.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// badBody respuesta estándar para JSON de entrada inválido.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
