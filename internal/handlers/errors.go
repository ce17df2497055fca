package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"orgblog/internal/dto"
	"orgblog/internal/services"
)

// writeServiceError maps service-layer failures onto the HTTP error
// taxonomy. Opaque failures are logged here; their detail never reaches the
// client.
func writeServiceError(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: "validation_error", Message: "Invalid input data", Details: verr.Fields,
		})
	}

	switch {
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: "conflict", Message: err.Error(),
		})
	case errors.Is(err, services.ErrSelfDelete):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: "self_delete_forbidden", Message: err.Error(),
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Code: "not_found", Message: "Not found",
		})
	case errors.Is(err, services.ErrUnauthorized):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Code: "unauthorized", Message: "You are not authorized to perform this action",
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Code: "invalid_credentials", Message: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidToken):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Code: "invalid_token", Message: err.Error(),
		})
	case errors.Is(err, services.ErrCommentRejected):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: "content_rejected", Message: err.Error(),
		})
	case errors.Is(err, services.ErrOperationFailed):
		slog.Error("operation failed", "method", c.Method(), "path", c.Path(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Code: "operation_failed", Message: "Operation failed",
		})
	default:
		slog.Error("unexpected error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Code: "internal_error", Message: "Internal server error",
		})
	}
}

func badRequestBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Code: "validation_error", Message: "Invalid request body",
	})
}
