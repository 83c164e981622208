package handler

import (
	"maitri-medico/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetUsers lists back-office accounts
// GET /api/v1/superadmin/users
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// CreateUser handles admin account creation
// POST /api/v1/superadmin/users
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, err := h.userService.CreateUser(c.UserContext(), actorFrom(c), &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

// DeleteUser
// DELETE /api/v1/superadmin/users/:id
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.userService.DeleteUser(c.UserContext(), actorFrom(c), id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
