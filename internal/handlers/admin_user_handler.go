package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"orgblog/internal/dto"
	"orgblog/internal/middleware"
	"orgblog/internal/services"
)

// AdminUserHandler exposes user management to application admins. The
// AdminRequired middleware has already run when these are reached.
type AdminUserHandler struct {
	userService *services.UserService
}

func NewAdminUserHandler(userService *services.UserService) *AdminUserHandler {
	return &AdminUserHandler{userService: userService}
}

func (h *AdminUserHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	user, err := h.userService.Create(c.UserContext(), &req)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": dto.NewUserResponse(user),
	})
}

func (h *AdminUserHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequestBody(c)
	}

	user, err := h.userService.Get(c.UserContext(), id)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(fiber.Map{"user": dto.NewUserResponse(user)})
}

func (h *AdminUserHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	users, total, err := h.userService.List(c.UserContext(), limit, offset)
	if err != nil {
		return writeServiceError(c, err)
	}

	resp := dto.UserListResponse{Total: total, Users: make([]dto.UserResponse, 0, len(users))}
	for i := range users {
		resp.Users = append(resp.Users, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(resp)
}

func (h *AdminUserHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequestBody(c)
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	user, err := h.userService.Update(c.UserContext(), id, &req)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(fiber.Map{"user": dto.NewUserResponse(user)})
}

func (h *AdminUserHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequestBody(c)
	}

	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Code: "not_authenticated", Message: "Unauthorized",
		})
	}

	if err := h.userService.Delete(c.UserContext(), callerID, id); err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
