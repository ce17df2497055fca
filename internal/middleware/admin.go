package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"orgblog/internal/authz"
	"orgblog/internal/dto"
)

// AdminRequired gates application-wide admin routes. Every request performs a
// fresh role lookup through the authorization service so a role change takes
// effect immediately, without waiting for token expiry.
func AdminRequired(az *authz.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := CurrentUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Code: string(authz.ReasonNotAuthenticated), Message: "Unauthorized",
			})
		}

		result, err := az.CheckGlobalAdmin(c.UserContext(), callerID)
		if err != nil {
			slog.Error("admin check failed", "action", "admin_check", "user_id", callerID.String(), "error", err.Error())
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Code: "internal_error", Message: "Internal server error",
			})
		}
		if !result.Authorized {
			status := fiber.StatusForbidden
			if result.Reason == authz.ReasonNotAuthenticated {
				status = fiber.StatusUnauthorized
			}
			return c.Status(status).JSON(dto.ErrorResponse{
				Error: true, Code: "unauthorized", Message: "Admin access required",
			})
		}

		c.Locals("caller_id", callerID)
		return c.Next()
	}
}
