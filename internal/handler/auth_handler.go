package handler

import (
	"strings"

	"maitri-medico/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest represents the change password request body
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Login handles user authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "email and password are required")
	}

	response, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(response)
}

// Me returns the authenticated user
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.authService.Me(c.UserContext(), actorFrom(c).ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// ChangePassword handles password change for the authenticated user
// POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if req.OldPassword == "" || req.NewPassword == "" {
		return badRequest(c, "old_password and new_password are required")
	}

	if err := h.authService.ChangePassword(c.UserContext(), actorFrom(c).ID, req.OldPassword, req.NewPassword); err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}
